package handler

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dafibh/budgetbook/budgetbook-backend/internal/domain"
	"github.com/dafibh/budgetbook/budgetbook-backend/internal/middleware"
	"github.com/dafibh/budgetbook/budgetbook-backend/internal/service"
)

// BudgetHandler handles budget HTTP requests
type BudgetHandler struct {
	budgetService *service.BudgetService
	pageSize      int
}

// NewBudgetHandler creates a new BudgetHandler
func NewBudgetHandler(budgetService *service.BudgetService, pageSize int) *BudgetHandler {
	return &BudgetHandler{
		budgetService: budgetService,
		pageSize:      pageSize,
	}
}

// BudgetRequest represents the request body for writing a budget.
// Entries are read-only and ignored when sent.
type BudgetRequest struct {
	Name     json.RawMessage `json:"name"`
	Category json.RawMessage `json:"category"`
}

func (r BudgetRequest) input(malformed []domain.FieldError) domain.BudgetInput {
	verr := domain.NewValidationError(malformed...)
	in := domain.BudgetInput{
		Name:       decodeString(verr, "name", r.Name),
		CategoryID: decodePK(verr, "category", r.Category),
	}
	in.Malformed = verr.Errors
	return in
}

// ListBudgets handles GET /budget with the optional category filter
func (h *BudgetHandler) ListBudgets(c echo.Context) error {
	page := pageRequest(c, h.pageSize)
	filter := domain.BudgetFilter{Category: c.QueryParam("category")}

	result, err := h.budgetService.List(c.Request().Context(), middleware.GetPrincipal(c), filter, page)
	if err != nil {
		return writeServiceError(c, err)
	}
	shape := budgetShapeFor(actionList)
	return c.JSON(http.StatusOK, paginate(c, result, func(b *domain.Budget) any {
		return toBudgetResponse(b, shape)
	}))
}

// GetBudget handles GET /budget/:id
func (h *BudgetHandler) GetBudget(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return NewNotFoundError(c, detailNotFound)
	}

	budget, err := h.budgetService.Get(c.Request().Context(), middleware.GetPrincipal(c), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toBudgetResponse(budget, budgetShapeFor(actionRetrieve)))
}

// CreateBudget handles POST /budget
func (h *BudgetHandler) CreateBudget(c echo.Context) error {
	var req BudgetRequest
	malformed := bindRequest(c, &req)
	in := req.input(malformed)

	budget, err := h.budgetService.Create(c.Request().Context(), middleware.GetPrincipal(c), in)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, toBudgetResponse(budget, budgetShapeFor(actionCreate)))
}

// UpdateBudget handles PUT and PATCH /budget/:id
func (h *BudgetHandler) UpdateBudget(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return NewNotFoundError(c, detailNotFound)
	}

	var req BudgetRequest
	malformed := bindRequest(c, &req)
	in := req.input(malformed)

	budget, err := h.budgetService.Update(c.Request().Context(), middleware.GetPrincipal(c), id, in, isPartial(c))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toBudgetResponse(budget, budgetShapeFor(actionUpdate)))
}

// DeleteBudget handles DELETE /budget/:id; its entries go with it
func (h *BudgetHandler) DeleteBudget(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return NewNotFoundError(c, detailNotFound)
	}

	if err := h.budgetService.Delete(c.Request().Context(), middleware.GetPrincipal(c), id); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
