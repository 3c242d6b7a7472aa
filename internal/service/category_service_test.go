package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dafibh/budgetbook/budgetbook-backend/internal/domain"
	"github.com/dafibh/budgetbook/budgetbook-backend/internal/testutil"
)

func newCategoryService(f *fixture) *CategoryService {
	svc := NewCategoryService(f.store.Categories())
	svc.SetEventPublisher(f.publisher)
	return svc
}

func TestCategoryCreate_AssignsCallerAsOwner(t *testing.T) {
	f := newFixture()
	svc := newCategoryService(f)
	alice := f.factory.User()

	created, err := svc.Create(ctx(), testutil.Principal(alice), domain.CategoryInput{Name: strPtr("  Food ")})
	require.NoError(t, err)

	assert.Equal(t, "Food", created.Name)
	assert.Equal(t, alice.ID, created.UserID)
	assert.Equal(t, []string{"category.created"}, f.publisher.Types())
	assert.Equal(t, alice.ID, f.publisher.Events[0].UserID)
}

func TestCategoryCreate_Validation(t *testing.T) {
	f := newFixture()
	svc := newCategoryService(f)
	alice := testutil.Principal(f.factory.User())

	_, err := svc.Create(ctx(), alice, domain.CategoryInput{})
	requireFieldError(t, err, "name", domain.MsgRequired)

	_, err = svc.Create(ctx(), alice, domain.CategoryInput{Name: strPtr(" ")})
	requireFieldError(t, err, "name", domain.MsgBlank)
	assert.Empty(t, f.publisher.Events)
}

func TestCategory_AnonymousIsUnauthorized(t *testing.T) {
	svc := newCategoryService(newFixture())

	_, err := svc.List(ctx(), nil, firstPage())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = svc.Create(ctx(), nil, domain.CategoryInput{Name: strPtr("Food")})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	assert.ErrorIs(t, svc.Delete(ctx(), nil, 1), domain.ErrUnauthorized)
}

func TestCategoryList_OwnerOnlyOrderedByName(t *testing.T) {
	f := newFixture()
	svc := newCategoryService(f)
	alice := f.factory.User()
	bob := f.factory.User()

	f.factory.Category(alice.ID, func(c *domain.Category) { c.Name = "Travel" })
	f.factory.Category(alice.ID, func(c *domain.Category) { c.Name = "Food" })
	f.factory.Category(bob.ID, func(c *domain.Category) { c.Name = "Bills" })

	page, err := svc.List(ctx(), testutil.Principal(alice), firstPage())
	require.NoError(t, err)

	require.Len(t, page.Items, 2)
	assert.Equal(t, int64(2), page.Count)
	assert.Equal(t, "Food", page.Items[0].Name)
	assert.Equal(t, "Travel", page.Items[1].Name)
}

func TestCategoryList_InvalidPage(t *testing.T) {
	f := newFixture()
	svc := newCategoryService(f)
	alice := f.factory.User()
	f.factory.Category(alice.ID)

	_, err := svc.List(ctx(), testutil.Principal(alice), domain.NewPageRequest(2, 10, 10))
	assert.ErrorIs(t, err, domain.ErrInvalidPage)
}

func TestCategory_NonOwnerSeesNotFound(t *testing.T) {
	f := newFixture()
	svc := newCategoryService(f)
	alice := f.factory.User()
	bob := f.factory.User()
	category := f.factory.Category(alice.ID, func(c *domain.Category) { c.Name = "Food" })

	_, err := svc.Get(ctx(), testutil.Principal(bob), category.ID)
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)

	_, err = svc.Update(ctx(), testutil.Principal(bob), category.ID, domain.CategoryInput{Name: strPtr("Hijacked")}, false)
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)

	err = svc.Delete(ctx(), testutil.Principal(bob), category.ID)
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)

	unchanged, err := svc.Get(ctx(), testutil.Principal(alice), category.ID)
	require.NoError(t, err)
	assert.Equal(t, "Food", unchanged.Name)
}

func TestCategoryUpdate(t *testing.T) {
	f := newFixture()
	svc := newCategoryService(f)
	alice := f.factory.User()
	category := f.factory.Category(alice.ID, func(c *domain.Category) { c.Name = "Food" })

	t.Run("full update requires name", func(t *testing.T) {
		_, err := svc.Update(ctx(), testutil.Principal(alice), category.ID, domain.CategoryInput{}, false)
		requireFieldError(t, err, "name", domain.MsgRequired)
	})

	t.Run("partial update without fields keeps values", func(t *testing.T) {
		updated, err := svc.Update(ctx(), testutil.Principal(alice), category.ID, domain.CategoryInput{}, true)
		require.NoError(t, err)
		assert.Equal(t, "Food", updated.Name)
	})

	t.Run("rename", func(t *testing.T) {
		updated, err := svc.Update(ctx(), testutil.Principal(alice), category.ID, domain.CategoryInput{Name: strPtr("Groceries")}, false)
		require.NoError(t, err)
		assert.Equal(t, "Groceries", updated.Name)
	})
}

func TestCategoryDelete_ProtectedWhileReferenced(t *testing.T) {
	f := newFixture()
	svc := newCategoryService(f)
	alice := f.factory.User()
	category := f.factory.Category(alice.ID)
	budget := f.factory.Budget(alice.ID, category.ID)

	err := svc.Delete(ctx(), testutil.Principal(alice), category.ID)
	assert.ErrorIs(t, err, domain.ErrCategoryInUse)

	_, err = f.store.Budgets().Delete(ctx(), domain.Unrestricted(domain.EntityBudget, domain.IntentMutate), budget.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx(), testutil.Principal(alice), category.ID))
	assert.Equal(t, []string{"category.deleted"}, f.publisher.Types())
}
