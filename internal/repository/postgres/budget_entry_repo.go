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

// BudgetEntryRepository implements domain.BudgetEntryRepository using PostgreSQL
type BudgetEntryRepository struct {
	pool    *pgxpool.Pool
	queries *sqlc.Queries
}

// NewBudgetEntryRepository creates a new BudgetEntryRepository
func NewBudgetEntryRepository(pool *pgxpool.Pool) *BudgetEntryRepository {
	return &BudgetEntryRepository{
		pool:    pool,
		queries: sqlc.New(pool),
	}
}

// Create creates a new entry under entry.BudgetID
func (r *BudgetEntryRepository) Create(ctx context.Context, entry *domain.BudgetEntry) (*domain.BudgetEntry, error) {
	value, err := decimalToPgNumeric(entry.Value)
	if err != nil {
		return nil, err
	}

	created, err := r.queries.CreateBudgetEntry(ctx, sqlc.CreateBudgetEntryParams{
		BudgetID: entry.BudgetID,
		Name:     entry.Name,
		Value:    value,
		Type:     string(entry.Type),
	})
	if err != nil {
		if isPgForeignKeyViolation(err) {
			return nil, domain.ErrBudgetNotFound
		}
		return nil, fmt.Errorf("create budget entry: %w", err)
	}
	return sqlcEntryToDomain(created), nil
}

// GetByID retrieves an entry whose budget is visible under scope
func (r *BudgetEntryRepository) GetByID(ctx context.Context, scope domain.Scope, id int64) (*domain.BudgetEntry, error) {
	entry, err := r.queries.GetBudgetEntry(ctx, sqlc.GetBudgetEntryParams{
		ID:      id,
		OwnerID: scopeOwner(scope),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, fmt.Errorf("get budget entry: %w", err)
	}
	return sqlcEntryToDomain(entry), nil
}

// Update rewrites an entry whose current budget is visible under scope
func (r *BudgetEntryRepository) Update(ctx context.Context, scope domain.Scope, entry *domain.BudgetEntry) (*domain.BudgetEntry, error) {
	value, err := decimalToPgNumeric(entry.Value)
	if err != nil {
		return nil, err
	}

	updated, err := r.queries.UpdateBudgetEntry(ctx, sqlc.UpdateBudgetEntryParams{
		Name:     entry.Name,
		Value:    value,
		Type:     string(entry.Type),
		BudgetID: entry.BudgetID,
		ID:       entry.ID,
		OwnerID:  scopeOwner(scope),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}
		if isPgForeignKeyViolation(err) {
			return nil, domain.ErrBudgetNotFound
		}
		return nil, fmt.Errorf("update budget entry: %w", err)
	}
	return sqlcEntryToDomain(updated), nil
}

// Delete removes an entry whose budget is visible under scope
func (r *BudgetEntryRepository) Delete(ctx context.Context, scope domain.Scope, id int64) error {
	rows, err := r.queries.DeleteBudgetEntry(ctx, sqlc.DeleteBudgetEntryParams{
		ID:      id,
		OwnerID: scopeOwner(scope),
	})
	if err != nil {
		return fmt.Errorf("delete budget entry: %w", err)
	}
	if rows == 0 {
		return domain.ErrEntryNotFound
	}
	return nil
}

// ListByBudgets returns the entries of the given budgets
func (r *BudgetEntryRepository) ListByBudgets(ctx context.Context, budgetIDs []int64) ([]*domain.BudgetEntry, error) {
	if len(budgetIDs) == 0 {
		return []*domain.BudgetEntry{}, nil
	}

	rows, err := r.queries.ListBudgetEntriesByBudgetIDs(ctx, budgetIDs)
	if err != nil {
		return nil, fmt.Errorf("list budget entries: %w", err)
	}

	result := make([]*domain.BudgetEntry, len(rows))
	for i, e := range rows {
		result[i] = sqlcEntryToDomain(e)
	}
	return result, nil
}

func sqlcEntryToDomain(e sqlc.BudgetEntry) *domain.BudgetEntry {
	return &domain.BudgetEntry{
		ID:        e.ID,
		BudgetID:  e.BudgetID,
		Name:      e.Name,
		Value:     pgNumericToDecimal(e.Value),
		Type:      domain.EntryType(e.Type),
		CreatedAt: e.CreatedAt.Time,
	}
}
