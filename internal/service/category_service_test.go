package service

import (
	"context"
	"testing"

	"github.com/spec-kit/ticket-console/internal/domain"
	"github.com/spec-kit/ticket-console/internal/repository"
	apperrors "github.com/spec-kit/ticket-console/pkg/util"
)

func TestCategoryServiceRejectsBlankAndDuplicate(t *testing.T) {
	ctx := context.Background()
	svc := NewCategoryService(repository.NewMemoryStore().Categories)

	if _, err := svc.Create(ctx, "   "); !apperrors.IsCode(err, apperrors.CodeValidationFailed) {
		t.Fatalf("blank Create err = %v", err)
	}
	first, err := svc.Create(ctx, "Network")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(ctx, "Network"); !apperrors.IsCode(err, apperrors.CodeValidationFailed) {
		t.Fatalf("duplicate Create err = %v", err)
	}
	if _, err := svc.Rename(ctx, first.ID+100, "Other"); !apperrors.IsCode(err, apperrors.CodeNotFound) {
		t.Fatalf("Rename missing err = %v", err)
	}
	if err := svc.Delete(ctx, first.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}

func TestTicketServiceRules(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	category := &domain.IssueCategory{Name: "Hardware"}
	_ = store.Categories.Create(ctx, category)
	svc := NewTicketService(store.Tickets, store.Categories)

	customer := domain.User{ID: 7, Role: domain.RoleCustomer}
	agent := domain.User{ID: 8, Role: domain.RoleAgent}

	tests := []struct {
		name       string
		requester  domain.User
		desc       string
		categoryID int
		code       string
	}{
		{"non-customer", agent, "printer jam", category.ID, apperrors.CodeForbidden},
		{"blank description", customer, "  ", category.ID, apperrors.CodeValidationFailed},
		{"unknown category", customer, "printer jam", category.ID + 1, apperrors.CodeValidationFailed},
		{"ok", customer, "printer jam", category.ID, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ticket, err := svc.Create(ctx, tt.requester, tt.desc, tt.categoryID)
			if tt.code != "" {
				if !apperrors.IsCode(err, tt.code) {
					t.Fatalf("err = %v, want %s", err, tt.code)
				}
				return
			}
			if err != nil {
				t.Fatalf("Create: %v", err)
			}
			if ticket.ID == 0 || ticket.Status != domain.TicketStatusNew || ticket.CreatedBy != customer.ID {
				t.Errorf("ticket = %+v", ticket)
			}
		})
	}

	mine, _ := svc.ListMine(ctx, customer)
	if len(mine) != 1 {
		t.Errorf("ListMine = %+v", mine)
	}
}
