package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/josuelns/authapi/internal/server/models"
)

// ErrUnauthorized is returned when the server rejects the credentials or
// the bearer token.
var ErrUnauthorized = errors.New("unauthorized")

// APIClient is a thin HTTP client over the user-management API.
type APIClient struct {
	baseURL string
	http    *http.Client
	token   string
}

// NewAPIClient constructs a client for the API at baseURL, e.g.
// "http://localhost:8080".
func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// SetToken stores the bearer token used on protected endpoints.
func (c *APIClient) SetToken(token string) {
	c.token = token
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginReply struct {
	User  models.UserResponse `json:"user"`
	Token string              `json:"token"`
}

type apiError struct {
	Error  string `json:"error"`
	Fields []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"fields"`
}

func (c *APIClient) do(ctx context.Context, method, path string, payload, out any) error {
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode >= 400 {
		var ae apiError
		if err := json.NewDecoder(resp.Body).Decode(&ae); err == nil && ae.Error != "" {
			msg := ae.Error
			for _, f := range ae.Fields {
				msg += fmt.Sprintf("; %s: %s", f.Field, f.Message)
			}
			return errors.New(msg)
		}
		return fmt.Errorf("server returned %s", resp.Status)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// Login authenticates and remembers the returned token for later calls.
func (c *APIClient) Login(ctx context.Context, email string, password []byte) (*models.UserResponse, error) {
	var reply loginReply
	err := c.do(ctx, http.MethodPost, "/api/auth", loginPayload{Email: email, Password: string(password)}, &reply)
	if err != nil {
		return nil, err
	}
	c.token = reply.Token
	return &reply.User, nil
}

// CreateUser registers a new user.
func (c *APIClient) CreateUser(ctx context.Context, req *models.CreateUserRequest) (*models.UserResponse, error) {
	var user models.UserResponse
	if err := c.do(ctx, http.MethodPost, "/api/user", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers returns all users. An empty table comes back as an empty slice.
func (c *APIClient) ListUsers(ctx context.Context) ([]models.UserResponse, error) {
	var users []models.UserResponse
	err := c.do(ctx, http.MethodGet, "/api/user", nil, &users)
	if err != nil {
		// the API reports an empty table as not found
		if err.Error() == "not found" {
			return nil, nil
		}
		return nil, err
	}
	return users, nil
}

type avatarUploadReply struct {
	Key       string `json:"key"`
	UploadURL string `json:"uploadUrl"`
}

type avatarDownloadReply struct {
	URL string `json:"url"`
}

// IssueAvatarUpload asks the server for a presigned avatar upload URL.
// Requires a prior Login.
func (c *APIClient) IssueAvatarUpload(ctx context.Context, id int64) (string, string, error) {
	var reply avatarUploadReply
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/user/%d/avatar", id), nil, &reply); err != nil {
		return "", "", err
	}
	return reply.Key, reply.UploadURL, nil
}

// GetAvatarDownloadURL returns a presigned download URL for the user's avatar.
func (c *APIClient) GetAvatarDownloadURL(ctx context.Context, id int64) (string, error) {
	var reply avatarDownloadReply
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/user/%d/avatar", id), nil, &reply); err != nil {
		return "", err
	}
	return reply.URL, nil
}

// DeleteUser removes a user by id. Requires a prior Login.
func (c *APIClient) DeleteUser(ctx context.Context, id int64) (*models.UserResponse, error) {
	var user models.UserResponse
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/user/%d", id), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
