package domain

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// EntryType is the stored three-letter code of an entry kind
type EntryType string

const (
	EntryTypeExpense EntryType = "EXP"
	EntryTypeIncome  EntryType = "INC"
)

// Value precision limits, NUMERIC(10,2)
const (
	MaxValueDigits        = 10
	MaxValueDecimalPlaces = 2
)

// ParseEntryType accepts the stored codes and the EXPENSE/INCOME labels
func ParseEntryType(s string) (EntryType, bool) {
	switch s {
	case string(EntryTypeExpense), "EXPENSE":
		return EntryTypeExpense, true
	case string(EntryTypeIncome), "INCOME":
		return EntryTypeIncome, true
	}
	return "", false
}

// Label returns the human readable name of the type
func (t EntryType) Label() string {
	switch t {
	case EntryTypeExpense:
		return "Expense"
	case EntryTypeIncome:
		return "Income"
	}
	return string(t)
}

// BudgetEntry is a single income or expense line of a budget.
// Its owner is the owner of the budget it belongs to.
type BudgetEntry struct {
	ID        int64           `json:"id"`
	BudgetID  int64           `json:"budgetId"`
	Name      string          `json:"name"`
	Value     decimal.Decimal `json:"value"`
	Type      EntryType       `json:"type"`
	CreatedAt time.Time       `json:"createdAt"`
}

// BudgetEntryInput is the decoded entry payload. Value carries the textual number as sent.
type BudgetEntryInput struct {
	Name     *string
	Type     *string
	Value    *string
	BudgetID *int64

	Malformed []FieldError
}

// ParseEntryValue parses a decimal and enforces the NUMERIC(10,2) precision.
// Negative values are accepted. The returned message is empty on success.
func ParseEntryValue(raw string) (decimal.Decimal, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, MsgInvalidNum
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, MsgInvalidNum
	}

	digits := len(d.Coefficient().Text(10))
	if d.Sign() < 0 {
		digits-- // minus sign
	}
	exp := int(d.Exponent())

	var total, whole, places int
	switch {
	case exp >= 0:
		total = digits + exp
		whole = total
	case digits > -exp:
		total = digits
		places = -exp
		whole = total - places
	default:
		total = -exp
		places = total
	}

	if total > MaxValueDigits {
		return decimal.Zero, fmt.Sprintf("Ensure that there are no more than %d digits in total.", MaxValueDigits)
	}
	if places > MaxValueDecimalPlaces {
		return decimal.Zero, fmt.Sprintf("Ensure that there are no more than %d decimal places.", MaxValueDecimalPlaces)
	}
	if maxWhole := MaxValueDigits - MaxValueDecimalPlaces; whole > maxWhole {
		return decimal.Zero, fmt.Sprintf("Ensure that there are no more than %d digits before the decimal point.", maxWhole)
	}
	return d.Round(MaxValueDecimalPlaces), ""
}

// BudgetEntryRepository defines the interface for budget entry persistence operations.
// Scopes are applied through the owning budget.
type BudgetEntryRepository interface {
	Create(ctx context.Context, entry *BudgetEntry) (*BudgetEntry, error)
	GetByID(ctx context.Context, scope Scope, id int64) (*BudgetEntry, error)
	Update(ctx context.Context, scope Scope, entry *BudgetEntry) (*BudgetEntry, error)
	Delete(ctx context.Context, scope Scope, id int64) error
	// ListByBudgets returns the entries of the given budgets ordered by budget and id
	ListByBudgets(ctx context.Context, budgetIDs []int64) ([]*BudgetEntry, error)
}
