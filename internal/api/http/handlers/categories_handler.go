package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-console/internal/api/dto"
	"github.com/spec-kit/ticket-console/internal/service"
	apperrors "github.com/spec-kit/ticket-console/pkg/util"
)

// CategoriesHandler manages issue category endpoints.
type CategoriesHandler struct {
	service *service.CategoryService
}

// NewCategoriesHandler constructs handler.
func NewCategoriesHandler(categoryService *service.CategoryService) *CategoriesHandler {
	return &CategoriesHandler{service: categoryService}
}

// List GET /issue/category/issue-categories.
func (h *CategoriesHandler) List(c *fiber.Ctx) error {
	categories, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	resp := make([]dto.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		resp = append(resp, dto.NewCategoryResponse(category))
	}
	return success(c, http.StatusOK, "Categories fetched successfully", resp)
}

// Create POST /issue/category/issue-categories.
func (h *CategoriesHandler) Create(c *fiber.Ctx) error {
	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	category, err := h.service.Create(c.UserContext(), req.Name)
	if err != nil {
		return err
	}
	return success(c, http.StatusCreated, "Category created successfully", dto.NewCategoryResponse(*category))
}

// Update PUT /issue/category/update-category/:id.
func (h *CategoriesHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError("invalid category id", map[string]any{"id": c.Params("id")})
	}
	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	category, err := h.service.Rename(c.UserContext(), id, req.Name)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, "Category updated successfully", dto.NewCategoryResponse(*category))
}

// Delete DELETE /issue/category/delete-category/:id.
func (h *CategoriesHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError("invalid category id", map[string]any{"id": c.Params("id")})
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return success(c, http.StatusOK, "Category deleted successfully", fiber.Map{"category_id": id})
}
