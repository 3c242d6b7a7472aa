package handler

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/dafibh/budgetbook/budgetbook-backend/internal/domain"
)

// BudgetShape selects how a budget is rendered
type BudgetShape int

const (
	// BudgetCompact renders {id, category, name} with the category id
	BudgetCompact BudgetShape = iota
	// BudgetDetailed renders {id, name, category, entries} with the category name
	BudgetDetailed
)

// budgetAction is the operation a budget response answers
type budgetAction int

const (
	actionList budgetAction = iota
	actionRetrieve
	actionCreate
	actionUpdate
)

// budgetShapeFor picks the shape for an action. Writes echo the compact shape.
func budgetShapeFor(action budgetAction) BudgetShape {
	switch action {
	case actionCreate, actionUpdate:
		return BudgetCompact
	default:
		return BudgetDetailed
	}
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// BudgetCompactResponse is the budget shape returned by writes
type BudgetCompactResponse struct {
	ID       int64  `json:"id"`
	Category int64  `json:"category"`
	Name     string `json:"name"`
}

// BudgetDetailResponse is the budget shape returned by reads
type BudgetDetailResponse struct {
	ID       int64                 `json:"id"`
	Name     string                `json:"name"`
	Category string                `json:"category"`
	Entries  []BudgetEntryResponse `json:"entries"`
}

// BudgetEntryResponse represents a budget entry in API responses
type BudgetEntryResponse struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	Value  string `json:"value"`
	Budget int64  `json:"budget"`
}

func toCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name}
}

func toBudgetResponse(b *domain.Budget, shape BudgetShape) any {
	switch shape {
	case BudgetCompact:
		return BudgetCompactResponse{ID: b.ID, Category: b.CategoryID, Name: b.Name}
	default:
		return toBudgetDetailResponse(b)
	}
}

func toBudgetDetailResponse(b *domain.Budget) BudgetDetailResponse {
	entries := make([]BudgetEntryResponse, 0, len(b.Entries))
	for _, e := range b.Entries {
		entries = append(entries, toBudgetEntryResponse(e))
	}
	return BudgetDetailResponse{
		ID:       b.ID,
		Name:     b.Name,
		Category: b.CategoryName,
		Entries:  entries,
	}
}

func toBudgetEntryResponse(e *domain.BudgetEntry) BudgetEntryResponse {
	return BudgetEntryResponse{
		ID:     e.ID,
		Name:   e.Name,
		Type:   string(e.Type),
		Value:  e.Value.StringFixed(domain.MaxValueDecimalPlaces),
		Budget: e.BudgetID,
	}
}

// isAbsent reports whether a raw JSON field was omitted or sent as null
// bindRequest decodes the body into req. A body that is not a JSON object comes back
// as a non-field problem for the service to report after its access checks.
func bindRequest(c echo.Context, req any) []domain.FieldError {
	if err := c.Bind(req); err != nil {
		return []domain.FieldError{{Field: domain.NonFieldErrors, Message: detailInvalidBody}}
	}
	return nil
}

func isAbsent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// decodeString reads a JSON string field
func decodeString(verr *domain.ValidationError, field string, raw json.RawMessage) *string {
	if isAbsent(raw) {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		verr.Add(field, "Not a valid string.")
		return nil
	}
	return &s
}

// decodePK reads a primary key sent either as a JSON number or a numeric string
func decodePK(verr *domain.ValidationError, field string, raw json.RawMessage) *int64 {
	if isAbsent(raw) {
		return nil
	}

	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		text = string(bytes.TrimSpace(raw))
	}
	id, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		verr.Addf(field, "Incorrect type. Expected pk value, received %s.", jsonKind(raw))
		return nil
	}
	return &id
}

// decodeNumber reads a decimal sent either as a JSON number or a string, keeping its text
func decodeNumber(verr *domain.ValidationError, field string, raw json.RawMessage) *string {
	if isAbsent(raw) {
		return nil
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return &text
	}
	var num json.Number
	if err := json.Unmarshal(raw, &num); err != nil {
		verr.Add(field, domain.MsgInvalidNum)
		return nil
	}
	text = num.String()
	return &text
}

// jsonKind names the JSON type of a raw value for error messages
func jsonKind(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "null"
	}
	switch trimmed[0] {
	case '"':
		return "str"
	case '{':
		return "dict"
	case '[':
		return "list"
	case 't', 'f':
		return "bool"
	default:
		return "float"
	}
}
