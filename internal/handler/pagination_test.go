package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dafibh/budgetbook/budgetbook-backend/internal/domain"
)

func TestPageRequest(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		wantPage int
		wantSize int
	}{
		{name: "defaults", query: "", wantPage: 1, wantSize: 10},
		{name: "explicit page and size", query: "page=3&page_size=25", wantPage: 3, wantSize: 25},
		{name: "size capped", query: "page_size=1000", wantPage: 1, wantSize: domain.MaxPageSize},
		{name: "malformed size falls back", query: "page_size=lots", wantPage: 1, wantSize: 10},
		{name: "zero page", query: "page=0", wantPage: 0, wantSize: 10},
		{name: "word page", query: "page=first", wantPage: 0, wantSize: 10},
	}

	e := echo.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/budget?"+tt.query, nil), httptest.NewRecorder())

			got := pageRequest(c, 10)
			assert.Equal(t, tt.wantPage, got.Page)
			assert.Equal(t, tt.wantSize, got.PageSize)
			if tt.wantPage == 0 {
				assert.ErrorIs(t, got.Check(0), domain.ErrInvalidPage)
			}
		})
	}
}

func TestPaginate_LinksKeepOtherParams(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/budget?category=food&page=2&page_size=1", nil), httptest.NewRecorder())

	req := domain.NewPageRequest(2, 1, 10)
	page := domain.NewPage(req, []int{7}, 3)

	resp := paginate(c, page, func(v int) int { return v * 2 })

	assert.Equal(t, int64(3), resp.Count)
	assert.Equal(t, []int{14}, resp.Results)
	require.NotNil(t, resp.Next)
	require.NotNil(t, resp.Previous)
	assert.Equal(t, "http://example.com/budget?category=food&page=3&page_size=1", *resp.Next)
	assert.Equal(t, "http://example.com/budget?category=food&page_size=1", *resp.Previous)
}

func TestBudgetShapeFor(t *testing.T) {
	assert.Equal(t, BudgetCompact, budgetShapeFor(actionCreate))
	assert.Equal(t, BudgetCompact, budgetShapeFor(actionUpdate))
	assert.Equal(t, BudgetDetailed, budgetShapeFor(actionList))
	assert.Equal(t, BudgetDetailed, budgetShapeFor(actionRetrieve))

	budget := &domain.Budget{ID: 1, CategoryID: 2, CategoryName: "Food", Name: "Groceries"}
	assert.Equal(t, BudgetCompactResponse{ID: 1, Category: 2, Name: "Groceries"}, toBudgetResponse(budget, BudgetCompact))
	assert.Equal(t, BudgetDetailResponse{ID: 1, Name: "Groceries", Category: "Food", Entries: []BudgetEntryResponse{}}, toBudgetResponse(budget, BudgetDetailed))
}
