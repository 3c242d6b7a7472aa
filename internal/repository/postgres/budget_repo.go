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

// BudgetRepository implements domain.BudgetRepository using PostgreSQL
type BudgetRepository struct {
	pool    *pgxpool.Pool
	queries *sqlc.Queries
}

// NewBudgetRepository creates a new BudgetRepository
func NewBudgetRepository(pool *pgxpool.Pool) *BudgetRepository {
	return &BudgetRepository{
		pool:    pool,
		queries: sqlc.New(pool),
	}
}

// Create creates a new budget and returns it with its category name
func (r *BudgetRepository) Create(ctx context.Context, budget *domain.Budget) (*domain.Budget, error) {
	created, err := r.queries.CreateBudget(ctx, sqlc.CreateBudgetParams{
		UserID:     budget.UserID,
		CategoryID: budget.CategoryID,
		Name:       budget.Name,
	})
	if err != nil {
		if isPgForeignKeyViolation(err) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("create budget: %w", err)
	}
	return r.GetByID(ctx, domain.OwnedBy(domain.EntityBudget, domain.IntentRetrieve, created.UserID), created.ID)
}

// GetByID retrieves a budget visible under scope
func (r *BudgetRepository) GetByID(ctx context.Context, scope domain.Scope, id int64) (*domain.Budget, error) {
	row, err := r.queries.GetBudget(ctx, sqlc.GetBudgetParams{
		ID:      id,
		OwnerID: scopeOwner(scope),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBudgetNotFound
		}
		return nil, fmt.Errorf("get budget: %w", err)
	}
	return &domain.Budget{
		ID:           row.ID,
		UserID:       row.UserID,
		CategoryID:   row.CategoryID,
		CategoryName: row.CategoryName,
		Name:         row.Name,
		CreatedAt:    row.CreatedAt.Time,
	}, nil
}

// List returns one page of budgets ordered by name
func (r *BudgetRepository) List(ctx context.Context, scope domain.Scope, filter domain.BudgetFilter, page domain.PageRequest) ([]*domain.Budget, error) {
	limit, offset := pageArgs(page)
	rows, err := r.queries.ListBudgets(ctx, sqlc.ListBudgetsParams{
		OwnerID:      scopeOwner(scope),
		CategoryName: filter.Category,
		PageLimit:    limit,
		PageOffset:   offset,
	})
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}

	result := make([]*domain.Budget, len(rows))
	for i, row := range rows {
		result[i] = &domain.Budget{
			ID:           row.ID,
			UserID:       row.UserID,
			CategoryID:   row.CategoryID,
			CategoryName: row.CategoryName,
			Name:         row.Name,
			CreatedAt:    row.CreatedAt.Time,
		}
	}
	return result, nil
}

// Count returns the number of budgets matching scope and filter
func (r *BudgetRepository) Count(ctx context.Context, scope domain.Scope, filter domain.BudgetFilter) (int64, error) {
	count, err := r.queries.CountBudgets(ctx, sqlc.CountBudgetsParams{
		OwnerID:      scopeOwner(scope),
		CategoryName: filter.Category,
	})
	if err != nil {
		return 0, fmt.Errorf("count budgets: %w", err)
	}
	return count, nil
}

// Update changes name and category of a budget visible under scope
func (r *BudgetRepository) Update(ctx context.Context, scope domain.Scope, budget *domain.Budget) (*domain.Budget, error) {
	updated, err := r.queries.UpdateBudget(ctx, sqlc.UpdateBudgetParams{
		Name:       budget.Name,
		CategoryID: budget.CategoryID,
		ID:         budget.ID,
		OwnerID:    scopeOwner(scope),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBudgetNotFound
		}
		if isPgForeignKeyViolation(err) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("update budget: %w", err)
	}
	return r.GetByID(ctx, scope, updated.ID)
}

// Delete removes a budget and its entries in one transaction.
// The entries go through the ON DELETE CASCADE of budget_entries.budget_id.
func (r *BudgetRepository) Delete(ctx context.Context, scope domain.Scope, id int64) (int64, error) {
	var removed int64
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		qtx := r.queries.WithTx(tx)

		// 1. Lock the budget row so no entry can be attached meanwhile
		if _, err := qtx.LockBudget(ctx, sqlc.LockBudgetParams{ID: id, OwnerID: scopeOwner(scope)}); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrBudgetNotFound
			}
			return err
		}

		// 2. Count the entries that go with it
		count, err := qtx.CountBudgetEntriesByBudget(ctx, id)
		if err != nil {
			return err
		}

		// 3. Delete
		rows, err := qtx.DeleteBudget(ctx, id)
		if err != nil {
			return err
		}
		if rows == 0 {
			return domain.ErrBudgetNotFound
		}
		removed = count
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrBudgetNotFound) {
			return 0, err
		}
		return 0, fmt.Errorf("delete budget: %w", err)
	}
	return removed, nil
}
