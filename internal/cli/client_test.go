package cli

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josuelns/authapi/internal/server/models"
)

func TestAPIClient_Login(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/auth", r.URL.Path)

		var payload loginPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "ana@x.com", payload.Email)

		json.NewEncoder(w).Encode(loginReply{
			User:  models.UserResponse{ID: 1, Email: "ana@x.com"},
			Token: "tok",
		})
	}))
	defer srv.Close()

	c := NewAPIClient(srv.URL)
	user, err := c.Login(context.Background(), "ana@x.com", []byte("Abc123!@"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "tok", c.token)
}

func TestAPIClient_Login_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
	}))
	defer srv.Close()

	c := NewAPIClient(srv.URL)
	_, err := c.Login(context.Background(), "ana@x.com", []byte("wrong"))
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAPIClient_DeleteUser_SendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/api/user/7", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		json.NewEncoder(w).Encode(models.UserResponse{ID: 7})
	}))
	defer srv.Close()

	c := NewAPIClient(srv.URL)
	c.SetToken("tok")

	user, err := c.DeleteUser(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
}

func TestAPIClient_CreateUser_ValidationError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"error": "validation failed",
			"fields": []map[string]string{
				{"field": "email", "message": "invalid email"},
			},
		})
	}))
	defer srv.Close()

	c := NewAPIClient(srv.URL)
	_, err := c.CreateUser(context.Background(), &models.CreateUserRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email")
}

func TestAPIClient_ListUsers_EmptyTable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "not found"})
	}))
	defer srv.Close()

	c := NewAPIClient(srv.URL)
	users, err := c.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)
}
