package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dafibh/budgetbook/budgetbook-backend/internal/domain"
	"github.com/dafibh/budgetbook/budgetbook-backend/internal/testutil"
)

func newEntryService(f *fixture) *BudgetEntryService {
	svc := NewBudgetEntryService(f.store.Entries(), f.store.Budgets())
	svc.SetEventPublisher(f.publisher)
	return svc
}

func TestEntryCreate_Rent(t *testing.T) {
	f := newFixture()
	svc := newEntryService(f)
	alice := f.factory.User()
	category := f.factory.Category(alice.ID)
	budget := f.factory.Budget(alice.ID, category.ID)

	created, err := svc.Create(ctx(), testutil.Principal(alice), domain.BudgetEntryInput{
		Name:     strPtr("Rent"),
		Type:     strPtr("EXP"),
		Value:    strPtr("1200.00"),
		BudgetID: int64Ptr(budget.ID),
	})
	require.NoError(t, err)

	assert.Equal(t, "Rent", created.Name)
	assert.Equal(t, domain.EntryTypeExpense, created.Type)
	assert.Equal(t, "1200.00", created.Value.StringFixed(2))
	assert.Equal(t, budget.ID, created.BudgetID)
	assert.Equal(t, []int64{created.ID}, f.store.EntriesOf(budget.ID))
	assert.Equal(t, []string{"budget_entry.created"}, f.publisher.Types())
}

func TestEntryCreate_Validation(t *testing.T) {
	f := newFixture()
	svc := newEntryService(f)
	alice := f.factory.User()
	bob := f.factory.User()
	foreignBudget := f.factory.Budget(bob.ID, f.factory.Category(bob.ID).ID)

	t.Run("budget of another user", func(t *testing.T) {
		_, err := svc.Create(ctx(), testutil.Principal(alice), domain.BudgetEntryInput{
			Name:     strPtr("Rent"),
			Type:     strPtr("EXP"),
			Value:    strPtr("10"),
			BudgetID: int64Ptr(foreignBudget.ID),
		})
		requireFieldError(t, err, "budget", domain.InvalidPKMessage(foreignBudget.ID))
		assert.Empty(t, f.store.EntriesOf(foreignBudget.ID))
	})

	t.Run("bad type and value", func(t *testing.T) {
		_, err := svc.Create(ctx(), testutil.Principal(alice), domain.BudgetEntryInput{
			Name:  strPtr("Rent"),
			Type:  strPtr("SPEND"),
			Value: strPtr("1.234"),
		})
		requireFieldError(t, err, "type", `"SPEND" is not a valid choice.`)
		requireFieldError(t, err, "value", "Ensure that there are no more than 2 decimal places.")
		requireFieldError(t, err, "budget", domain.MsgRequired)
	})

	t.Run("everything missing", func(t *testing.T) {
		_, err := svc.Create(ctx(), testutil.Principal(alice), domain.BudgetEntryInput{})
		for _, field := range []string{"name", "type", "value", "budget"} {
			requireFieldError(t, err, field, domain.MsgRequired)
		}
	})

	t.Run("anonymous", func(t *testing.T) {
		_, err := svc.Create(ctx(), nil, domain.BudgetEntryInput{})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}

func TestEntryCreate_LabelsAndNegativeValues(t *testing.T) {
	f := newFixture()
	svc := newEntryService(f)
	alice := f.factory.User()
	budget := f.factory.Budget(alice.ID, f.factory.Category(alice.ID).ID)

	created, err := svc.Create(ctx(), testutil.Principal(alice), domain.BudgetEntryInput{
		Name:     strPtr("Refund"),
		Type:     strPtr("INCOME"),
		Value:    strPtr("-15.5"),
		BudgetID: int64Ptr(budget.ID),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.EntryTypeIncome, created.Type)
	assert.True(t, created.Value.Equal(decimal.RequireFromString("-15.50")))
}

func TestEntry_NonOwner(t *testing.T) {
	f := newFixture()
	svc := newEntryService(f)
	alice := f.factory.User()
	bob := f.factory.User()
	budget := f.factory.Budget(alice.ID, f.factory.Category(alice.ID).ID)
	entry := f.factory.Entry(budget.ID, func(e *domain.BudgetEntry) { e.Name = "Rent" })

	_, err := svc.Get(ctx(), testutil.Principal(bob), entry.ID)
	assert.ErrorIs(t, err, domain.ErrEntryNotFound)

	_, err = svc.Update(ctx(), testutil.Principal(bob), entry.ID, domain.BudgetEntryInput{Name: strPtr("Mine")}, true)
	assert.ErrorIs(t, err, domain.ErrEntryNotFound)

	assert.ErrorIs(t, svc.Delete(ctx(), testutil.Principal(bob), entry.ID), domain.ErrEntryNotFound)

	got, err := svc.Get(ctx(), testutil.Principal(alice), entry.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rent", got.Name)
}

func TestEntryUpdate(t *testing.T) {
	f := newFixture()
	svc := newEntryService(f)
	alice := f.factory.User()
	bob := f.factory.User()
	category := f.factory.Category(alice.ID)
	march := f.factory.Budget(alice.ID, category.ID)
	april := f.factory.Budget(alice.ID, category.ID)
	foreign := f.factory.Budget(bob.ID, f.factory.Category(bob.ID).ID)
	entry := f.factory.Entry(march.ID, func(e *domain.BudgetEntry) {
		e.Name = "Rent"
		e.Type = domain.EntryTypeExpense
		e.Value = decimal.NewFromInt(1200)
	})

	t.Run("partial value change", func(t *testing.T) {
		updated, err := svc.Update(ctx(), testutil.Principal(alice), entry.ID, domain.BudgetEntryInput{Value: strPtr("1250")}, true)
		require.NoError(t, err)
		assert.Equal(t, "1250.00", updated.Value.StringFixed(2))
		assert.Equal(t, "Rent", updated.Name)
		assert.Equal(t, domain.EntryTypeExpense, updated.Type)
	})

	t.Run("move to another own budget", func(t *testing.T) {
		updated, err := svc.Update(ctx(), testutil.Principal(alice), entry.ID, domain.BudgetEntryInput{BudgetID: int64Ptr(april.ID)}, true)
		require.NoError(t, err)
		assert.Equal(t, april.ID, updated.BudgetID)
		assert.Empty(t, f.store.EntriesOf(march.ID))
	})

	t.Run("cannot move to a foreign budget", func(t *testing.T) {
		_, err := svc.Update(ctx(), testutil.Principal(alice), entry.ID, domain.BudgetEntryInput{BudgetID: int64Ptr(foreign.ID)}, true)
		requireFieldError(t, err, "budget", domain.InvalidPKMessage(foreign.ID))
	})

	t.Run("full update requires every field", func(t *testing.T) {
		_, err := svc.Update(ctx(), testutil.Principal(alice), entry.ID, domain.BudgetEntryInput{Name: strPtr("Rent")}, false)
		requireFieldError(t, err, "type", domain.MsgRequired)
		requireFieldError(t, err, "value", domain.MsgRequired)
		requireFieldError(t, err, "budget", domain.MsgRequired)
	})
}

func TestEntryDelete(t *testing.T) {
	f := newFixture()
	svc := newEntryService(f)
	alice := f.factory.User()
	budget := f.factory.Budget(alice.ID, f.factory.Category(alice.ID).ID)
	entry := f.factory.Entry(budget.ID)

	require.NoError(t, svc.Delete(ctx(), testutil.Principal(alice), entry.ID))
	assert.Empty(t, f.store.EntriesOf(budget.ID))
	assert.Equal(t, []string{"budget_entry.deleted"}, f.publisher.Types())
}
