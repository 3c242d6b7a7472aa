package handler

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dafibh/budgetbook/budgetbook-backend/internal/domain"
	"github.com/dafibh/budgetbook/budgetbook-backend/internal/middleware"
	"github.com/dafibh/budgetbook/budgetbook-backend/internal/service"
)

// BudgetEntryHandler handles budget entry HTTP requests
type BudgetEntryHandler struct {
	entryService *service.BudgetEntryService
}

// NewBudgetEntryHandler creates a new BudgetEntryHandler
func NewBudgetEntryHandler(entryService *service.BudgetEntryService) *BudgetEntryHandler {
	return &BudgetEntryHandler{entryService: entryService}
}

// BudgetEntryRequest represents the request body for writing a budget entry
type BudgetEntryRequest struct {
	Name   json.RawMessage `json:"name"`
	Type   json.RawMessage `json:"type"`
	Value  json.RawMessage `json:"value"`
	Budget json.RawMessage `json:"budget"`
}

func (r BudgetEntryRequest) input(malformed []domain.FieldError) domain.BudgetEntryInput {
	verr := domain.NewValidationError(malformed...)
	in := domain.BudgetEntryInput{
		Name:     decodeString(verr, "name", r.Name),
		Type:     decodeString(verr, "type", r.Type),
		Value:    decodeNumber(verr, "value", r.Value),
		BudgetID: decodePK(verr, "budget", r.Budget),
	}
	in.Malformed = verr.Errors
	return in
}

// GetEntry handles GET /budget_entries/:id
func (h *BudgetEntryHandler) GetEntry(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return NewNotFoundError(c, detailNotFound)
	}

	entry, err := h.entryService.Get(c.Request().Context(), middleware.GetPrincipal(c), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toBudgetEntryResponse(entry))
}

// CreateEntry handles POST /budget_entries
func (h *BudgetEntryHandler) CreateEntry(c echo.Context) error {
	var req BudgetEntryRequest
	malformed := bindRequest(c, &req)
	in := req.input(malformed)

	entry, err := h.entryService.Create(c.Request().Context(), middleware.GetPrincipal(c), in)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, toBudgetEntryResponse(entry))
}

// UpdateEntry handles PUT and PATCH /budget_entries/:id
func (h *BudgetEntryHandler) UpdateEntry(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return NewNotFoundError(c, detailNotFound)
	}

	var req BudgetEntryRequest
	malformed := bindRequest(c, &req)
	in := req.input(malformed)

	entry, err := h.entryService.Update(c.Request().Context(), middleware.GetPrincipal(c), id, in, isPartial(c))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toBudgetEntryResponse(entry))
}

// DeleteEntry handles DELETE /budget_entries/:id
func (h *BudgetEntryHandler) DeleteEntry(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return NewNotFoundError(c, detailNotFound)
	}

	if err := h.entryService.Delete(c.Request().Context(), middleware.GetPrincipal(c), id); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
