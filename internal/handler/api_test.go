package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/dafibh/budgetbook/budgetbook-backend/internal/domain"
	"github.com/dafibh/budgetbook/budgetbook-backend/internal/middleware"
	"github.com/dafibh/budgetbook/budgetbook-backend/internal/service"
	"github.com/dafibh/budgetbook/budgetbook-backend/internal/testutil"
	"github.com/dafibh/budgetbook/budgetbook-backend/internal/token"
)

var testSecret = []byte("budgetbook-test-secret-0123456789abcdef")

// testAPI is the full route table wired to in-memory repositories
type testAPI struct {
	e         *echo.Echo
	store     *testutil.Store
	factory   *testutil.Factory
	issuer    *token.Issuer
	publisher *testutil.MockEventPublisher
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	store := testutil.NewStore()
	issuer, err := token.NewIssuer(testSecret, "budgetbook", "budgetbook-api", time.Hour)
	require.NoError(t, err)
	verifier, err := token.NewVerifier(testSecret, "budgetbook", "budgetbook-api")
	require.NoError(t, err)

	publisher := &testutil.MockEventPublisher{}
	categoryService := service.NewCategoryService(store.Categories())
	categoryService.SetEventPublisher(publisher)
	budgetService := service.NewBudgetService(store.Budgets(), store.Categories(), store.Entries())
	budgetService.SetEventPublisher(publisher)
	entryService := service.NewBudgetEntryService(store.Entries(), store.Budgets())
	entryService.SetEventPublisher(publisher)

	limiter := middleware.NewRateLimiterWithConfig(6000, 1000)
	t.Cleanup(limiter.Stop)

	e := echo.New()
	RegisterRoutes(e, middleware.NewAuthMiddleware(verifier, store.Users()), limiter, Handlers{
		User:        NewUserHandler(service.NewUserService(store.Users())),
		Auth:        NewAuthHandler(service.NewAuthService(store.Users(), issuer)),
		Category:    NewCategoryHandler(categoryService, domain.DefaultPageSize),
		Budget:      NewBudgetHandler(budgetService, domain.DefaultPageSize),
		BudgetEntry: NewBudgetEntryHandler(entryService),
	})

	return &testAPI{
		e:         e,
		store:     store,
		factory:   testutil.NewFactory(store, 0),
		issuer:    issuer,
		publisher: publisher,
	}
}

// tokenFor issues a bearer token for user
func (a *testAPI) tokenFor(t *testing.T, user *domain.User) string {
	t.Helper()
	raw, _, err := a.issuer.Issue(user.ID, user.Username)
	require.NoError(t, err)
	return raw
}

// do sends a request through the router. A string body is sent verbatim, anything else as JSON.
func (a *testAPI) do(t *testing.T, method, path string, body any, bearer string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if bearer != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

// fieldMessage returns the message recorded for field in a problem response
func fieldMessage(t *testing.T, rec *httptest.ResponseRecorder, field string) string {
	t.Helper()
	problem := decodeBody[ProblemDetails](t, rec)
	for _, fe := range problem.Errors {
		if fe.Field == field {
			return fe.Message
		}
	}
	t.Fatalf("no error for field %q in %s", field, rec.Body.String())
	return ""
}
