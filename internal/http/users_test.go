package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmaren/bookannex/internal/entities"
)

func TestUsers_SeededAdmin(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, "GET", "/admin/users")
	assert.Equal(t, http.StatusOK, w.Code)

	var users []entities.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	require.Len(t, users, 1)
	assert.Equal(t, "admin", users[0].Username)
	assert.True(t, users[0].IsAdmin())

	// Password hash never leaves the server
	assert.NotContains(t, w.Body.String(), "password")
}

func TestUsers_CreateUser(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, "POST", "/admin/users", `{"username": "reader", "password": "secret"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var user entities.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	assert.Equal(t, "reader", user.Username)
	assert.False(t, user.IsAdmin())

	t.Run("duplicate username", func(t *testing.T) {
		w := doJSON(t, router, "POST", "/admin/users", `{"username": "reader", "password": "other"}`)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("empty password", func(t *testing.T) {
		w := doJSON(t, router, "POST", "/admin/users", `{"username": "nopass", "password": ""}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUsers_DeleteUser(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, "POST", "/admin/users", `{"username": "victim", "password": "secret"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var user entities.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))

	w = doRequest(t, router, "DELETE", "/admin/users/2")
	assert.Equal(t, http.StatusOK, w.Code)

	t.Run("admin is protected", func(t *testing.T) {
		w := doRequest(t, router, "DELETE", "/admin/users/1")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown user", func(t *testing.T) {
		w := doRequest(t, router, "DELETE", "/admin/users/42")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUsers_ChangePassword(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, "PUT", "/admin/users/1/password", `{"password": "better-password"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	t.Run("empty password", func(t *testing.T) {
		w := doJSON(t, router, "PUT", "/admin/users/1/password", `{"password": ""}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown user", func(t *testing.T) {
		w := doJSON(t, router, "PUT", "/admin/users/42/password", `{"password": "x"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUsers_ChangeProfile(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, "PUT", "/admin/users/1/profile", `{"role": 1, "languages": "en,de", "tags": "classic"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, "GET", "/admin/users/1")
	require.Equal(t, http.StatusOK, w.Code)

	var user entities.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	assert.Equal(t, "en,de", user.Languages)
	assert.Equal(t, "classic", user.Tags)
}
