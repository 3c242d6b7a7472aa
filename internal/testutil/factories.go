package testutil

import (
	"context"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"

	"github.com/dafibh/budgetbook/budgetbook-backend/internal/domain"
)

// Factory creates randomized records directly in a Store
type Factory struct {
	store *Store
	faker *gofakeit.Faker
}

// NewFactory creates a Factory; seed 0 picks a random seed
func NewFactory(store *Store, seed int64) *Factory {
	return &Factory{store: store, faker: gofakeit.New(seed)}
}

// Principal returns the principal acting as user
func Principal(user *domain.User) *domain.Principal {
	return &domain.Principal{UserID: user.ID, Username: user.Username}
}

// User stores a user with a unique random username and an unusable password hash
func (f *Factory) User(overrides ...func(*domain.User)) *domain.User {
	u := &domain.User{
		Username:     f.faker.Username() + f.faker.DigitN(6),
		PasswordHash: "!",
	}
	for _, o := range overrides {
		o(u)
	}
	created, err := f.store.Users().Create(context.Background(), u)
	if err != nil {
		panic(err)
	}
	return created
}

// Category stores a category owned by userID
func (f *Factory) Category(userID int64, overrides ...func(*domain.Category)) *domain.Category {
	c := &domain.Category{
		UserID: userID,
		Name:   f.faker.Noun(),
	}
	for _, o := range overrides {
		o(c)
	}
	created, err := f.store.Categories().Create(context.Background(), c)
	if err != nil {
		panic(err)
	}
	return created
}

// Budget stores a budget owned by userID under categoryID
func (f *Factory) Budget(userID, categoryID int64, overrides ...func(*domain.Budget)) *domain.Budget {
	b := &domain.Budget{
		UserID:     userID,
		CategoryID: categoryID,
		Name:       f.faker.MonthString() + " " + f.faker.Word(),
	}
	for _, o := range overrides {
		o(b)
	}
	created, err := f.store.Budgets().Create(context.Background(), b)
	if err != nil {
		panic(err)
	}
	return created
}

// Entry stores an entry under budgetID with a random type and a value of at most 8 whole digits
func (f *Factory) Entry(budgetID int64, overrides ...func(*domain.BudgetEntry)) *domain.BudgetEntry {
	entryType := domain.EntryTypeExpense
	if f.faker.Bool() {
		entryType = domain.EntryTypeIncome
	}
	e := &domain.BudgetEntry{
		BudgetID: budgetID,
		Name:     f.faker.Word(),
		Value:    decimal.NewFromFloat(f.faker.Price(1, 5000)).Round(2),
		Type:     entryType,
	}
	for _, o := range overrides {
		o(e)
	}
	created, err := f.store.Entries().Create(context.Background(), e)
	if err != nil {
		panic(err)
	}
	return created
}
