package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/dafibh/budgetbook/budgetbook-backend/internal/access"
	"github.com/dafibh/budgetbook/budgetbook-backend/internal/domain"
	"github.com/dafibh/budgetbook/budgetbook-backend/internal/websocket"
)

// BudgetEntryService handles budget entry business logic
type BudgetEntryService struct {
	eventSource
	entryRepo  domain.BudgetEntryRepository
	budgetRepo domain.BudgetRepository
}

// NewBudgetEntryService creates a new BudgetEntryService
func NewBudgetEntryService(entryRepo domain.BudgetEntryRepository, budgetRepo domain.BudgetRepository) *BudgetEntryService {
	return &BudgetEntryService{
		entryRepo:  entryRepo,
		budgetRepo: budgetRepo,
	}
}

// Get retrieves an entry of one of the caller's budgets
func (s *BudgetEntryService) Get(ctx context.Context, principal *domain.Principal, id int64) (*domain.BudgetEntry, error) {
	scope, err := access.Resolve(domain.EntityBudgetEntry, principal, domain.IntentRetrieve)
	if err != nil {
		return nil, err
	}
	return s.entryRepo.GetByID(ctx, scope, id)
}

// Create adds an entry to one of the caller's budgets
func (s *BudgetEntryService) Create(ctx context.Context, principal *domain.Principal, in domain.BudgetEntryInput) (*domain.BudgetEntry, error) {
	scope, err := access.Resolve(domain.EntityBudgetEntry, principal, domain.IntentCreate)
	if err != nil {
		return nil, err
	}

	entry := &domain.BudgetEntry{}
	if err := s.apply(ctx, principal, entry, in, false); err != nil {
		return nil, err
	}

	created, err := s.entryRepo.Create(ctx, entry)
	if err != nil {
		log.Error().Err(err).Int64("user_id", scope.OwnerID).Int64("budget_id", entry.BudgetID).Msg("Failed to create budget entry")
		return nil, err
	}

	log.Info().
		Int64("user_id", scope.OwnerID).
		Int64("budget_id", created.BudgetID).
		Int64("entry_id", created.ID).
		Str("type", string(created.Type)).
		Str("value", created.Value.StringFixed(domain.MaxValueDecimalPlaces)).
		Msg("Budget entry created")
	s.publishEvent(scope.OwnerID, websocket.BudgetEntryCreated(created))
	return created, nil
}

// Update changes an entry of one of the caller's budgets. It may move the entry to
// another budget of the caller.
func (s *BudgetEntryService) Update(ctx context.Context, principal *domain.Principal, id int64, in domain.BudgetEntryInput, partial bool) (*domain.BudgetEntry, error) {
	scope, err := access.Resolve(domain.EntityBudgetEntry, principal, domain.IntentMutate)
	if err != nil {
		return nil, err
	}

	existing, err := s.entryRepo.GetByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, principal, existing, in, partial); err != nil {
		return nil, err
	}

	updated, err := s.entryRepo.Update(ctx, scope, existing)
	if err != nil {
		return nil, err
	}

	log.Info().
		Int64("user_id", scope.OwnerID).
		Int64("budget_id", updated.BudgetID).
		Int64("entry_id", updated.ID).
		Msg("Budget entry updated")
	s.publishEvent(scope.OwnerID, websocket.BudgetEntryUpdated(updated))
	return updated, nil
}

// Delete removes an entry of one of the caller's budgets
func (s *BudgetEntryService) Delete(ctx context.Context, principal *domain.Principal, id int64) error {
	scope, err := access.Resolve(domain.EntityBudgetEntry, principal, domain.IntentMutate)
	if err != nil {
		return err
	}

	if err := s.entryRepo.Delete(ctx, scope, id); err != nil {
		return err
	}

	log.Info().Int64("user_id", scope.OwnerID).Int64("entry_id", id).Msg("Budget entry deleted")
	s.publishEvent(scope.OwnerID, websocket.BudgetEntryDeleted(map[string]int64{"id": id}))
	return nil
}

// apply validates in and copies the present fields onto entry
func (s *BudgetEntryService) apply(ctx context.Context, principal *domain.Principal, entry *domain.BudgetEntry, in domain.BudgetEntryInput, partial bool) error {
	verr := domain.NewValidationError(in.Malformed...)
	if verr.Has(domain.NonFieldErrors) {
		return verr
	}

	if name := domain.ValidateName(verr, "name", in.Name, partial); in.Name != nil {
		entry.Name = name
	}

	switch {
	case in.Type == nil:
		verr.Require("type", partial)
	default:
		if t, ok := domain.ParseEntryType(*in.Type); ok {
			entry.Type = t
		} else {
			verr.Addf("type", "\"%s\" is not a valid choice.", *in.Type)
		}
	}

	switch {
	case in.Value == nil:
		verr.Require("value", partial)
	default:
		if value, msg := domain.ParseEntryValue(*in.Value); msg != "" {
			verr.Add("value", msg)
		} else {
			entry.Value = value
		}
	}

	if in.BudgetID == nil {
		verr.Require("budget", partial)
	} else {
		budget, err := s.chooseBudget(ctx, principal, *in.BudgetID)
		switch {
		case errors.Is(err, domain.ErrBudgetNotFound):
			verr.Add("budget", domain.InvalidPKMessage(*in.BudgetID))
		case err != nil:
			return err
		default:
			entry.BudgetID = budget.ID
		}
	}

	return verr.OrNil()
}

// chooseBudget looks the id up among the budgets the caller may attach entries to
func (s *BudgetEntryService) chooseBudget(ctx context.Context, principal *domain.Principal, id int64) (*domain.Budget, error) {
	choices, err := access.Choices(domain.EntityBudget, principal)
	if err != nil {
		return nil, err
	}
	return s.budgetRepo.GetByID(ctx, choices, id)
}
