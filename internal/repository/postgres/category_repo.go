package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dafibh/budgetbook/budgetbook-backend/db/sqlc"
	"github.com/dafibh/budgetbook/budgetbook-backend/internal/domain"
)

// CategoryRepository implements domain.CategoryRepository using PostgreSQL
type CategoryRepository struct {
	pool    *pgxpool.Pool
	queries *sqlc.Queries
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{
		pool:    pool,
		queries: sqlc.New(pool),
	}
}

// Create creates a new category owned by category.UserID
func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	created, err := r.queries.CreateCategory(ctx, sqlc.CreateCategoryParams{
		UserID: category.UserID,
		Name:   category.Name,
	})
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return sqlcCategoryToDomain(created), nil
}

// GetByID retrieves a category visible under scope
func (r *CategoryRepository) GetByID(ctx context.Context, scope domain.Scope, id int64) (*domain.Category, error) {
	category, err := r.queries.GetCategory(ctx, sqlc.GetCategoryParams{
		ID:      id,
		OwnerID: scopeOwner(scope),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return sqlcCategoryToDomain(category), nil
}

// List returns one page of categories ordered by name
func (r *CategoryRepository) List(ctx context.Context, scope domain.Scope, page domain.PageRequest) ([]*domain.Category, error) {
	limit, offset := pageArgs(page)
	rows, err := r.queries.ListCategories(ctx, sqlc.ListCategoriesParams{
		OwnerID:    scopeOwner(scope),
		PageLimit:  limit,
		PageOffset: offset,
	})
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	result := make([]*domain.Category, len(rows))
	for i, c := range rows {
		result[i] = sqlcCategoryToDomain(c)
	}
	return result, nil
}

// Count returns the number of categories visible under scope
func (r *CategoryRepository) Count(ctx context.Context, scope domain.Scope) (int64, error) {
	count, err := r.queries.CountCategories(ctx, scopeOwner(scope))
	if err != nil {
		return 0, fmt.Errorf("count categories: %w", err)
	}
	return count, nil
}

// Update renames a category visible under scope
func (r *CategoryRepository) Update(ctx context.Context, scope domain.Scope, category *domain.Category) (*domain.Category, error) {
	updated, err := r.queries.UpdateCategory(ctx, sqlc.UpdateCategoryParams{
		Name:    category.Name,
		ID:      category.ID,
		OwnerID: scopeOwner(scope),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("update category: %w", err)
	}
	return sqlcCategoryToDomain(updated), nil
}

// Delete removes a category visible under scope.
// Budgets still pointing at it make the delete fail with domain.ErrCategoryInUse.
func (r *CategoryRepository) Delete(ctx context.Context, scope domain.Scope, id int64) error {
	rows, err := r.queries.DeleteCategory(ctx, sqlc.DeleteCategoryParams{
		ID:      id,
		OwnerID: scopeOwner(scope),
	})
	if err != nil {
		if isPgForeignKeyViolation(err) {
			return domain.ErrCategoryInUse
		}
		return fmt.Errorf("delete category: %w", err)
	}
	if rows == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

func sqlcCategoryToDomain(c sqlc.Category) *domain.Category {
	return &domain.Category{
		ID:        c.ID,
		UserID:    c.UserID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt.Time,
	}
}
