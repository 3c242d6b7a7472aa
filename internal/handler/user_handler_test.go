package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_Success(t *testing.T) {
	api := newTestAPI(t)
	before := api.store.UserCount()

	rec := api.do(t, http.MethodPost, "/user/", map[string]string{
		"username":  "alice",
		"password1": "correct-horse",
		"password2": "correct-horse",
	}, "")

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decodeBody[RegisterResponse](t, rec)
	assert.Equal(t, "User created", body.Detail)
	assert.Equal(t, "alice", body.Username)
	assert.Equal(t, before+1, api.store.UserCount())
}

func TestRegister_PasswordMismatch(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/user", map[string]string{
		"username":  "alice",
		"password1": "correct-horse",
		"password2": "correct-horsf",
	}, "")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Password does not match!", fieldMessage(t, rec, "non_field_errors"))
	assert.Equal(t, 0, api.store.UserCount())
}

func TestRegister_FieldErrors(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/user/", map[string]string{
		"username":  "alice",
		"password1": "short",
		"password2": "short",
	}, "")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Ensure this field has at least 10 characters.", fieldMessage(t, rec, "password1"))

	rec = api.do(t, http.MethodPost, "/user/", map[string]string{}, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "This field is required.", fieldMessage(t, rec, "username"))
	assert.Equal(t, "This field is required.", fieldMessage(t, rec, "password2"))
}

func TestRegister_DuplicateUsername(t *testing.T) {
	api := newTestAPI(t)
	payload := map[string]string{
		"username":  "alice",
		"password1": "correct-horse",
		"password2": "correct-horse",
	}

	require.Equal(t, http.StatusCreated, api.do(t, http.MethodPost, "/user/", payload, "").Code)
	rec := api.do(t, http.MethodPost, "/user/", payload, "")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	problem := decodeBody[ProblemDetails](t, rec)
	assert.Equal(t, "Something went wrong.", problem.Detail)
	assert.Empty(t, problem.Errors)
	assert.Equal(t, 1, api.store.UserCount())
}

func TestRegister_MalformedBody(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/user/", `{"username":`, "")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid request body", decodeBody[ProblemDetails](t, rec).Detail)
}
