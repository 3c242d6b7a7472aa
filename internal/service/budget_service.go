package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/dafibh/budgetbook/budgetbook-backend/internal/access"
	"github.com/dafibh/budgetbook/budgetbook-backend/internal/domain"
	"github.com/dafibh/budgetbook/budgetbook-backend/internal/websocket"
)

// BudgetService handles budget business logic
type BudgetService struct {
	eventSource
	budgetRepo   domain.BudgetRepository
	categoryRepo domain.CategoryRepository
	entryRepo    domain.BudgetEntryRepository
}

// NewBudgetService creates a new BudgetService
func NewBudgetService(budgetRepo domain.BudgetRepository, categoryRepo domain.CategoryRepository, entryRepo domain.BudgetEntryRepository) *BudgetService {
	return &BudgetService{
		budgetRepo:   budgetRepo,
		categoryRepo: categoryRepo,
		entryRepo:    entryRepo,
	}
}

// List returns one page of the caller's budgets ordered by name, entries included
func (s *BudgetService) List(ctx context.Context, principal *domain.Principal, filter domain.BudgetFilter, page domain.PageRequest) (*domain.Page[*domain.Budget], error) {
	scope, err := access.Resolve(domain.EntityBudget, principal, domain.IntentList)
	if err != nil {
		return nil, err
	}

	count, err := s.budgetRepo.Count(ctx, scope, filter)
	if err != nil {
		return nil, err
	}
	if err := page.Check(count); err != nil {
		return nil, err
	}

	budgets, err := s.budgetRepo.List(ctx, scope, filter, page)
	if err != nil {
		return nil, err
	}
	if err := s.attachEntries(ctx, budgets...); err != nil {
		return nil, err
	}
	return domain.NewPage(page, budgets, count), nil
}

// Get retrieves a budget with its entries. Anonymous callers may read any budget by id.
func (s *BudgetService) Get(ctx context.Context, principal *domain.Principal, id int64) (*domain.Budget, error) {
	scope, err := access.Resolve(domain.EntityBudget, principal, domain.IntentRetrieve)
	if err != nil {
		return nil, err
	}

	budget, err := s.budgetRepo.GetByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if err := s.attachEntries(ctx, budget); err != nil {
		return nil, err
	}
	return budget, nil
}

// Create creates a budget owned by the caller under one of the caller's categories
func (s *BudgetService) Create(ctx context.Context, principal *domain.Principal, in domain.BudgetInput) (*domain.Budget, error) {
	scope, err := access.Resolve(domain.EntityBudget, principal, domain.IntentCreate)
	if err != nil {
		return nil, err
	}

	budget := &domain.Budget{UserID: scope.OwnerID}
	if err := s.apply(ctx, principal, budget, in, false); err != nil {
		return nil, err
	}

	created, err := s.budgetRepo.Create(ctx, budget)
	if err != nil {
		log.Error().Err(err).Int64("user_id", scope.OwnerID).Msg("Failed to create budget")
		return nil, err
	}

	log.Info().
		Int64("user_id", created.UserID).
		Int64("budget_id", created.ID).
		Int64("category_id", created.CategoryID).
		Msg("Budget created")
	s.publishEvent(created.UserID, websocket.BudgetCreated(created))
	return created, nil
}

// Update changes one of the caller's budgets. With partial set, absent fields keep their value.
func (s *BudgetService) Update(ctx context.Context, principal *domain.Principal, id int64, in domain.BudgetInput, partial bool) (*domain.Budget, error) {
	scope, err := access.Resolve(domain.EntityBudget, principal, domain.IntentMutate)
	if err != nil {
		return nil, err
	}

	existing, err := s.budgetRepo.GetByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, principal, existing, in, partial); err != nil {
		return nil, err
	}

	updated, err := s.budgetRepo.Update(ctx, scope, existing)
	if err != nil {
		return nil, err
	}

	log.Info().Int64("user_id", updated.UserID).Int64("budget_id", updated.ID).Msg("Budget updated")
	s.publishEvent(updated.UserID, websocket.BudgetUpdated(updated))
	return updated, nil
}

// Delete removes one of the caller's budgets together with all of its entries
func (s *BudgetService) Delete(ctx context.Context, principal *domain.Principal, id int64) error {
	scope, err := access.Resolve(domain.EntityBudget, principal, domain.IntentMutate)
	if err != nil {
		return err
	}

	removed, err := s.budgetRepo.Delete(ctx, scope, id)
	if err != nil {
		return err
	}

	log.Info().
		Int64("user_id", scope.OwnerID).
		Int64("budget_id", id).
		Int64("entries_removed", removed).
		Msg("Budget deleted")
	s.publishEvent(scope.OwnerID, websocket.BudgetDeleted(map[string]int64{"id": id, "entriesRemoved": removed}))
	return nil
}

// apply validates in and copies the present fields onto budget
func (s *BudgetService) apply(ctx context.Context, principal *domain.Principal, budget *domain.Budget, in domain.BudgetInput, partial bool) error {
	verr := domain.NewValidationError(in.Malformed...)
	if verr.Has(domain.NonFieldErrors) {
		return verr
	}

	if name := domain.ValidateName(verr, "name", in.Name, partial); in.Name != nil {
		budget.Name = name
	}

	if in.CategoryID == nil {
		verr.Require("category", partial)
	} else {
		category, err := s.chooseCategory(ctx, principal, *in.CategoryID)
		switch {
		case errors.Is(err, domain.ErrCategoryNotFound):
			verr.Add("category", domain.InvalidPKMessage(*in.CategoryID))
		case err != nil:
			return err
		default:
			budget.CategoryID = category.ID
			budget.CategoryName = category.Name
		}
	}

	return verr.OrNil()
}

// chooseCategory looks the id up among the categories the caller may reference
func (s *BudgetService) chooseCategory(ctx context.Context, principal *domain.Principal, id int64) (*domain.Category, error) {
	choices, err := access.Choices(domain.EntityCategory, principal)
	if err != nil {
		return nil, err
	}
	return s.categoryRepo.GetByID(ctx, choices, id)
}

// attachEntries loads the entries of every budget with one query
func (s *BudgetService) attachEntries(ctx context.Context, budgets ...*domain.Budget) error {
	if len(budgets) == 0 {
		return nil
	}

	ids := make([]int64, len(budgets))
	byID := make(map[int64]*domain.Budget, len(budgets))
	for i, b := range budgets {
		ids[i] = b.ID
		b.Entries = []*domain.BudgetEntry{}
		byID[b.ID] = b
	}

	entries, err := s.entryRepo.ListByBudgets(ctx, ids)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if b, ok := byID[e.BudgetID]; ok {
			b.Entries = append(b.Entries, e)
		}
	}
	return nil
}
