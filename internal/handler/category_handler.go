package handler

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dafibh/budgetbook/budgetbook-backend/internal/domain"
	"github.com/dafibh/budgetbook/budgetbook-backend/internal/middleware"
	"github.com/dafibh/budgetbook/budgetbook-backend/internal/service"
)

// CategoryHandler handles category HTTP requests
type CategoryHandler struct {
	categoryService *service.CategoryService
	pageSize        int
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *service.CategoryService, pageSize int) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		pageSize:        pageSize,
	}
}

// CategoryRequest represents the request body for writing a category
type CategoryRequest struct {
	Name json.RawMessage `json:"name"`
}

func (r CategoryRequest) input(malformed []domain.FieldError) domain.CategoryInput {
	verr := domain.NewValidationError(malformed...)
	in := domain.CategoryInput{Name: decodeString(verr, "name", r.Name)}
	in.Malformed = verr.Errors
	return in
}

// ListCategories handles GET /category
func (h *CategoryHandler) ListCategories(c echo.Context) error {
	page := pageRequest(c, h.pageSize)

	result, err := h.categoryService.List(c.Request().Context(), middleware.GetPrincipal(c), page)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, paginate(c, result, toCategoryResponse))
}

// GetCategory handles GET /category/:id
func (h *CategoryHandler) GetCategory(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return NewNotFoundError(c, detailNotFound)
	}

	category, err := h.categoryService.Get(c.Request().Context(), middleware.GetPrincipal(c), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toCategoryResponse(category))
}

// CreateCategory handles POST /category
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	var req CategoryRequest
	malformed := bindRequest(c, &req)
	in := req.input(malformed)

	category, err := h.categoryService.Create(c.Request().Context(), middleware.GetPrincipal(c), in)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, toCategoryResponse(category))
}

// UpdateCategory handles PUT and PATCH /category/:id
func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return NewNotFoundError(c, detailNotFound)
	}

	var req CategoryRequest
	malformed := bindRequest(c, &req)
	in := req.input(malformed)

	category, err := h.categoryService.Update(c.Request().Context(), middleware.GetPrincipal(c), id, in, isPartial(c))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toCategoryResponse(category))
}

// DeleteCategory handles DELETE /category/:id
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return NewNotFoundError(c, detailNotFound)
	}

	if err := h.categoryService.Delete(c.Request().Context(), middleware.GetPrincipal(c), id); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
