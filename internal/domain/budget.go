package domain

import (
	"context"
	"strings"
	"time"
)

// Budget is a named collection of entries under one category
type Budget struct {
	ID           int64          `json:"id"`
	UserID       int64          `json:"userId"`
	CategoryID   int64          `json:"categoryId"`
	CategoryName string         `json:"categoryName"`
	Name         string         `json:"name"`
	CreatedAt    time.Time      `json:"createdAt"`
	Entries      []*BudgetEntry `json:"entries,omitempty"`
}

// BudgetInput is the decoded budget payload. Malformed holds the fields that could not be
// decoded; they are reported only once the caller is allowed to write.
type BudgetInput struct {
	Name       *string
	CategoryID *int64
	Malformed  []FieldError
}

// BudgetFilter narrows budget lists
type BudgetFilter struct {
	// Category is matched as a case-insensitive substring of the category name
	Category string
}

// Matches reports whether a budget with the given category name passes the filter
func (f BudgetFilter) Matches(categoryName string) bool {
	if f.Category == "" {
		return true
	}
	return strings.Contains(strings.ToLower(categoryName), strings.ToLower(f.Category))
}

// BudgetRepository defines the interface for budget persistence operations.
// Reads populate CategoryName; they never populate Entries.
type BudgetRepository interface {
	Create(ctx context.Context, budget *Budget) (*Budget, error)
	GetByID(ctx context.Context, scope Scope, id int64) (*Budget, error)
	List(ctx context.Context, scope Scope, filter BudgetFilter, page PageRequest) ([]*Budget, error)
	Count(ctx context.Context, scope Scope, filter BudgetFilter) (int64, error)
	Update(ctx context.Context, scope Scope, budget *Budget) (*Budget, error)
	// Delete removes the budget and all of its entries atomically and returns
	// the number of entries removed
	Delete(ctx context.Context, scope Scope, id int64) (int64, error)
}
