package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/dafibh/budgetbook/budgetbook-backend/internal/access"
	"github.com/dafibh/budgetbook/budgetbook-backend/internal/domain"
	"github.com/dafibh/budgetbook/budgetbook-backend/internal/websocket"
)

// CategoryService handles category business logic
type CategoryService struct {
	eventSource
	categoryRepo domain.CategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo domain.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// List returns one page of the caller's categories ordered by name
func (s *CategoryService) List(ctx context.Context, principal *domain.Principal, page domain.PageRequest) (*domain.Page[*domain.Category], error) {
	scope, err := access.Resolve(domain.EntityCategory, principal, domain.IntentList)
	if err != nil {
		return nil, err
	}

	count, err := s.categoryRepo.Count(ctx, scope)
	if err != nil {
		return nil, err
	}
	if err := page.Check(count); err != nil {
		return nil, err
	}

	items, err := s.categoryRepo.List(ctx, scope, page)
	if err != nil {
		return nil, err
	}
	return domain.NewPage(page, items, count), nil
}

// Get retrieves one of the caller's categories
func (s *CategoryService) Get(ctx context.Context, principal *domain.Principal, id int64) (*domain.Category, error) {
	scope, err := access.Resolve(domain.EntityCategory, principal, domain.IntentRetrieve)
	if err != nil {
		return nil, err
	}
	return s.categoryRepo.GetByID(ctx, scope, id)
}

// Create creates a category owned by the caller
func (s *CategoryService) Create(ctx context.Context, principal *domain.Principal, in domain.CategoryInput) (*domain.Category, error) {
	scope, err := access.Resolve(domain.EntityCategory, principal, domain.IntentCreate)
	if err != nil {
		return nil, err
	}

	verr := domain.NewValidationError(in.Malformed...)
	name := domain.ValidateName(verr, "name", in.Name, false)
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	created, err := s.categoryRepo.Create(ctx, &domain.Category{
		UserID: scope.OwnerID,
		Name:   name,
	})
	if err != nil {
		log.Error().Err(err).Int64("user_id", scope.OwnerID).Msg("Failed to create category")
		return nil, err
	}

	log.Info().Int64("user_id", created.UserID).Int64("category_id", created.ID).Msg("Category created")
	s.publishEvent(created.UserID, websocket.CategoryCreated(created))
	return created, nil
}

// Update changes one of the caller's categories. With partial set, absent fields keep their value.
func (s *CategoryService) Update(ctx context.Context, principal *domain.Principal, id int64, in domain.CategoryInput, partial bool) (*domain.Category, error) {
	scope, err := access.Resolve(domain.EntityCategory, principal, domain.IntentMutate)
	if err != nil {
		return nil, err
	}

	existing, err := s.categoryRepo.GetByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	verr := domain.NewValidationError(in.Malformed...)
	if name := domain.ValidateName(verr, "name", in.Name, partial); in.Name != nil {
		existing.Name = name
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	updated, err := s.categoryRepo.Update(ctx, scope, existing)
	if err != nil {
		return nil, err
	}

	log.Info().Int64("user_id", updated.UserID).Int64("category_id", updated.ID).Msg("Category updated")
	s.publishEvent(updated.UserID, websocket.CategoryUpdated(updated))
	return updated, nil
}

// Delete removes one of the caller's categories unless a budget still uses it
func (s *CategoryService) Delete(ctx context.Context, principal *domain.Principal, id int64) error {
	scope, err := access.Resolve(domain.EntityCategory, principal, domain.IntentMutate)
	if err != nil {
		return err
	}

	if err := s.categoryRepo.Delete(ctx, scope, id); err != nil {
		if errors.Is(err, domain.ErrCategoryInUse) {
			log.Info().Int64("user_id", scope.OwnerID).Int64("category_id", id).Msg("Category delete blocked by budgets")
		}
		return err
	}

	log.Info().Int64("user_id", scope.OwnerID).Int64("category_id", id).Msg("Category deleted")
	s.publishEvent(scope.OwnerID, websocket.CategoryDeleted(map[string]int64{"id": id}))
	return nil
}
