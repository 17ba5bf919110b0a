package dto

import "github.com/spec-kit/ticket-console/internal/domain"

// CategoryRequest payload for creating or renaming a category.
type CategoryRequest struct {
	Name string `json:"category_name"`
}

// CategoryResponse is the wire shape of an issue category.
type CategoryResponse struct {
	ID   int    `json:"category_id"`
	Name string `json:"category_name"`
}

func (c CategoryResponse) ToDomain() domain.IssueCategory {
	return domain.IssueCategory{ID: c.ID, Name: c.Name}
}

func NewCategoryResponse(c domain.IssueCategory) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name}
}
