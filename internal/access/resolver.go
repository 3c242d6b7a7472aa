// Package access decides which records a caller may see for a given entity and intent.
package access

import (
	"fmt"

	"github.com/dafibh/budgetbook/budgetbook-backend/internal/domain"
)

// Resolve returns the scope for principal acting on entity with intent.
// principal is nil for anonymous callers.
func Resolve(entity domain.EntityType, principal *domain.Principal, intent domain.Intent) (domain.Scope, error) {
	switch entity {
	case domain.EntityCategory, domain.EntityBudget, domain.EntityBudgetEntry:
	default:
		return domain.Scope{}, fmt.Errorf("access: unknown entity %q", entity)
	}

	switch intent {
	case domain.IntentList, domain.IntentRetrieve, domain.IntentCreate, domain.IntentMutate:
	default:
		return domain.Scope{}, fmt.Errorf("access: unknown intent %q", intent)
	}

	// Budgets can be read by anyone holding the id
	if entity == domain.EntityBudget && intent == domain.IntentRetrieve {
		return domain.Unrestricted(entity, intent), nil
	}

	if principal == nil {
		return domain.Scope{}, domain.ErrUnauthorized
	}
	return domain.OwnedBy(entity, intent, principal.UserID), nil
}

// Choices returns the scope applied to related ids of entity on writes,
// e.g. the categories a budget may reference.
func Choices(entity domain.EntityType, principal *domain.Principal) (domain.Scope, error) {
	return Resolve(entity, principal, domain.IntentList)
}
