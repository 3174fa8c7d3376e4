// Package httpapi exposes the user-management operations over HTTP using
// chi. Handlers depend on small service interfaces so tests can swap in
// fakes.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/josuelns/authapi/internal/common"
	"github.com/josuelns/authapi/internal/server/models"
	"github.com/josuelns/authapi/internal/server/services"
)

// UserServiceInterface is the part of the user service the handlers need.
type UserServiceInterface interface {
	Login(ctx context.Context, email, password string) (*services.LoginResult, error)
	Create(ctx context.Context, req *models.CreateUserRequest) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Update(ctx context.Context, id int64, req *models.UpdateUserRequest) (*models.User, error)
	Delete(ctx context.Context, id int64) (*models.User, error)
}

// AvatarServiceInterface is the part of the avatar service the handlers need.
type AvatarServiceInterface interface {
	IssueUploadURL(ctx context.Context, userID int64) (string, string, error)
	GetDownloadURL(ctx context.Context, userID int64) (string, error)
}

// UserHandler serves the /api/auth and /api/user endpoints.
type UserHandler struct {
	users   UserServiceInterface
	avatars AvatarServiceInterface
}

// NewUserHandler constructs a UserHandler.
func NewUserHandler(users UserServiceInterface, avatars AvatarServiceInterface) *UserHandler {
	return &UserHandler{users: users, avatars: avatars}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	User  models.UserResponse `json:"user"`
	Token string              `json:"token"`
}

// Login verifies credentials and returns the record plus a bearer token.
// POST /api/auth
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		User:  models.NewUserResponse(result.User),
		Token: result.Token,
	})
}

// Create registers a new user.
// POST /api/user
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	user, err := h.users.Create(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, models.NewUserResponse(user))
}

// List returns every user. An empty table yields 404.
// GET /api/user
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if len(users) == 0 {
		writeError(w, common.ErrorNotFound)
		return
	}

	out := make([]models.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, models.NewUserResponse(u))
	}
	writeJSON(w, http.StatusOK, out)
}

// Get returns one user.
// GET /api/user/{id}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	user, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.NewUserResponse(user))
}

// Update applies a partial update.
// PUT /api/user/{id}
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	var req models.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	user, err := h.users.Update(r.Context(), id, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.NewUserResponse(user))
}

// Delete removes a user and returns the removed record.
// DELETE /api/user/{id}
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	user, err := h.users.Delete(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.NewUserResponse(user))
}

type avatarUploadResponse struct {
	Key       string `json:"key"`
	UploadURL string `json:"uploadUrl"`
}

type avatarDownloadResponse struct {
	URL string `json:"url"`
}

// IssueAvatarUpload returns a presigned PUT URL for the user's avatar.
// POST /api/user/{id}/avatar
func (h *UserHandler) IssueAvatarUpload(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	key, url, err := h.avatars.IssueUploadURL(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, avatarUploadResponse{Key: key, UploadURL: url})
}

// GetAvatarDownload returns a presigned GET URL for the user's avatar.
// GET /api/user/{id}/avatar
func (h *UserHandler) GetAvatarDownload(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	url, err := h.avatars.GetDownloadURL(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, avatarDownloadResponse{URL: url})
}

// idParam parses the {id} route parameter, writing a 400 on failure.
func idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid user id"})
		return 0, false
	}
	return id, true
}
