package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObtainToken(t *testing.T) {
	api := newTestAPI(t)
	require.Equal(t, http.StatusCreated, api.do(t, http.MethodPost, "/user/", map[string]string{
		"username":  "alice",
		"password1": "correct-horse",
		"password2": "correct-horse",
	}, "").Code)

	t.Run("valid credentials", func(t *testing.T) {
		rec := api.do(t, http.MethodPost, "/auth/token/", map[string]string{
			"username": "alice",
			"password": "correct-horse",
		}, "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		body := decodeBody[TokenResponse](t, rec)
		require.NotEmpty(t, body.Token)
		assert.Equal(t, "alice", body.Username)

		// The token opens protected routes
		rec = api.do(t, http.MethodGet, "/category/", nil, body.Token)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := api.do(t, http.MethodPost, "/auth/token/", map[string]string{
			"username": "alice",
			"password": "wrong-horse",
		}, "")
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Unable to log in with provided credentials.", fieldMessage(t, rec, "non_field_errors"))
	})
}

func TestObtainToken_MissingFields(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/auth/token", map[string]string{"username": ""}, "")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "This field may not be blank.", fieldMessage(t, rec, "username"))
	assert.Equal(t, "This field is required.", fieldMessage(t, rec, "password"))
}

func TestObtainToken_UnknownUser(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/auth/token", map[string]string{"username": "nobody", "password": "whatever-it-is"}, "")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Unable to log in with provided credentials.", fieldMessage(t, rec, "non_field_errors"))
}
