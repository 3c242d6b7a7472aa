package domain

import (
	"context"
	"time"
)

// Category groups budgets. It is owned by exactly one user.
type Category struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// CategoryInput is the decoded category payload
type CategoryInput struct {
	Name      *string
	Malformed []FieldError
}

// CategoryRepository defines the interface for category persistence operations.
// Every read and write is narrowed by the given scope; records outside it are reported
// as ErrCategoryNotFound.
type CategoryRepository interface {
	Create(ctx context.Context, category *Category) (*Category, error)
	GetByID(ctx context.Context, scope Scope, id int64) (*Category, error)
	List(ctx context.Context, scope Scope, page PageRequest) ([]*Category, error)
	Count(ctx context.Context, scope Scope) (int64, error)
	Update(ctx context.Context, scope Scope, category *Category) (*Category, error)
	// Delete returns ErrCategoryInUse while any budget references the category
	Delete(ctx context.Context, scope Scope, id int64) error
}
