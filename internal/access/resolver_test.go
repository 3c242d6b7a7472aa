package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dafibh/budgetbook/budgetbook-backend/internal/domain"
)

func TestResolve(t *testing.T) {
	alice := &domain.Principal{UserID: 1, Username: "alice"}

	entities := []domain.EntityType{domain.EntityCategory, domain.EntityBudget, domain.EntityBudgetEntry}
	intents := []domain.Intent{domain.IntentList, domain.IntentRetrieve, domain.IntentCreate, domain.IntentMutate}

	for _, entity := range entities {
		for _, intent := range intents {
			name := string(entity) + "/" + string(intent)
			openRead := entity == domain.EntityBudget && intent == domain.IntentRetrieve

			t.Run(name+"/authenticated", func(t *testing.T) {
				scope, err := Resolve(entity, alice, intent)
				require.NoError(t, err)
				assert.Equal(t, entity, scope.Entity)
				assert.Equal(t, intent, scope.Intent)
				if openRead {
					assert.False(t, scope.Restricted)
				} else {
					assert.True(t, scope.Restricted)
					assert.Equal(t, int64(1), scope.OwnerID)
				}
			})

			t.Run(name+"/anonymous", func(t *testing.T) {
				scope, err := Resolve(entity, nil, intent)
				if openRead {
					require.NoError(t, err)
					assert.False(t, scope.Restricted)
				} else {
					assert.ErrorIs(t, err, domain.ErrUnauthorized)
				}
			})
		}
	}
}

func TestResolveRejectsUnknownValues(t *testing.T) {
	alice := &domain.Principal{UserID: 1}

	_, err := Resolve("invoice", alice, domain.IntentList)
	assert.Error(t, err)

	_, err = Resolve(domain.EntityBudget, alice, "export")
	assert.Error(t, err)
}

func TestChoices(t *testing.T) {
	scope, err := Choices(domain.EntityCategory, &domain.Principal{UserID: 9})
	require.NoError(t, err)
	assert.True(t, scope.Restricted)
	assert.Equal(t, int64(9), scope.OwnerID)
	assert.True(t, scope.Permits(9))
	assert.False(t, scope.Permits(10))

	_, err = Choices(domain.EntityBudget, nil)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
