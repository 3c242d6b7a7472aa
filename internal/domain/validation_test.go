package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestValidateName(t *testing.T) {
	t.Run("trims surrounding whitespace", func(t *testing.T) {
		verr := NewValidationError()
		assert.Equal(t, "Food", ValidateName(verr, "name", strPtr("  Food "), false))
		assert.True(t, verr.Empty())
	})

	t.Run("missing is required on full payload", func(t *testing.T) {
		verr := NewValidationError()
		ValidateName(verr, "name", nil, false)
		require.Len(t, verr.Errors, 1)
		assert.Equal(t, FieldError{Field: "name", Message: MsgRequired}, verr.Errors[0])
	})

	t.Run("missing is fine on partial payload", func(t *testing.T) {
		verr := NewValidationError()
		ValidateName(verr, "name", nil, true)
		assert.NoError(t, verr.OrNil())
	})

	t.Run("blank", func(t *testing.T) {
		verr := NewValidationError()
		ValidateName(verr, "name", strPtr("   "), true)
		assert.True(t, verr.Has("name"))
		assert.Equal(t, MsgBlank, verr.Errors[0].Message)
	})

	t.Run("too long", func(t *testing.T) {
		verr := NewValidationError()
		ValidateName(verr, "name", strPtr(strings.Repeat("a", MaxNameLength+1)), false)
		assert.Equal(t, "Ensure this field has no more than 255 characters.", verr.Errors[0].Message)
	})
}

func TestValidationErrorRequire(t *testing.T) {
	verr := NewValidationError(FieldError{Field: "budget", Message: "Incorrect type. Expected pk value, received str."})

	verr.Require("budget", false)
	verr.Require("value", true)
	verr.Require("name", false)

	assert.Equal(t, []FieldError{
		{Field: "budget", Message: "Incorrect type. Expected pk value, received str."},
		{Field: "name", Message: MsgRequired},
	}, verr.Errors)
}

func TestValidationErrorIsInvalidInput(t *testing.T) {
	verr := NewValidationError()
	verr.Add(NonFieldErrors, "Password does not match!")

	var err error = verr
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.Contains(t, err.Error(), "non_field_errors: Password does not match!")
}

func TestInvalidPKMessage(t *testing.T) {
	assert.Equal(t, `Invalid pk "42" - object does not exist.`, InvalidPKMessage(42))
}

func TestBudgetFilterMatches(t *testing.T) {
	assert.True(t, BudgetFilter{}.Matches("Anything"))
	assert.True(t, BudgetFilter{Category: "food"}.Matches("Food"))
	assert.True(t, BudgetFilter{Category: "OO"}.Matches("Food"))
	assert.False(t, BudgetFilter{Category: "food"}.Matches("Groceries"))
}

func TestScopePermits(t *testing.T) {
	assert.True(t, Unrestricted(EntityBudget, IntentRetrieve).Permits(7))
	owned := OwnedBy(EntityBudget, IntentList, 3)
	assert.True(t, owned.Permits(3))
	assert.False(t, owned.Permits(7))
}
