package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dafibh/budgetbook/budgetbook-backend/internal/domain"
	"github.com/dafibh/budgetbook/budgetbook-backend/internal/testutil"
)

func strPtr(s string) *string { return &s }

func int64Ptr(v int64) *int64 { return &v }

func firstPage() domain.PageRequest {
	return domain.NewPageRequest(1, 0, domain.DefaultPageSize)
}

// requireFieldError asserts err is a validation error carrying message for field
func requireFieldError(t *testing.T, err error, field, message string) {
	t.Helper()
	require.Error(t, err)
	verr, ok := err.(*domain.ValidationError)
	require.True(t, ok, "expected *domain.ValidationError, got %T: %v", err, err)
	for _, fe := range verr.Errors {
		if fe.Field == field {
			require.Equal(t, message, fe.Message)
			return
		}
	}
	t.Fatalf("no error for field %q in %v", field, verr.Errors)
}

type fixture struct {
	store     *testutil.Store
	factory   *testutil.Factory
	publisher *testutil.MockEventPublisher
}

func newFixture() *fixture {
	store := testutil.NewStore()
	return &fixture{
		store:     store,
		factory:   testutil.NewFactory(store, 0),
		publisher: &testutil.MockEventPublisher{},
	}
}

func ctx() context.Context { return context.Background() }
