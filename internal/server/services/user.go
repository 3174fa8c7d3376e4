// Package services contains server-side business logic. This file implements
// UserService, which handles credential verification, token issuance, and
// CRUD on user records.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/josuelns/authapi/internal/common"
	"github.com/josuelns/authapi/internal/logging"
	"github.com/josuelns/authapi/internal/server/auth"
	"github.com/josuelns/authapi/internal/server/config"
	"github.com/josuelns/authapi/internal/server/models"
	"github.com/josuelns/authapi/internal/server/repositories/users"
	"github.com/josuelns/authapi/internal/server/validation"
)

// LoginResult bundles the authenticated record and its bearer token.
type LoginResult struct {
	User  *models.User
	Token string
}

// UserService provides the user-management operations:
//   - Login: verify credentials and mint a token
//   - Create: validate, reject duplicates, hash, store
//   - GetByID / List / Update / Delete
type UserService struct {
	repo                  users.Repository
	logger                logging.Logger
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using the users repository and
// server config.
func NewUserService(repo users.Repository, logger logging.Logger, cfg *config.Config) *UserService {
	return &UserService{
		repo:                  repo,
		logger:                logger.With("module", "user_service"),
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// Login verifies the supplied credentials and, on success, returns the
// record plus a signed token. Unknown email and wrong password both come
// back as common.ErrorUnauthorized; a store failure is common.ErrorInternal,
// never conflated with a credential mismatch.
func (s *UserService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// burn a hash comparison so the unknown-email path takes as
			// long as the wrong-password path
			auth.CompareDummy(password)
			return nil, common.ErrorUnauthorized
		}
		s.logger.Error(ctx, "user lookup failed", "error", err)
		return nil, common.ErrorInternal
	}

	ok, err := auth.VerifyPassword(user.PasswordHash, password)
	if err != nil {
		s.logger.Error(ctx, "password verification failed", "error", err)
		return nil, common.ErrorInternal
	}
	if !ok {
		return nil, common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user.ID, user.Email, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		s.logger.Error(ctx, "token signing failed", "error", err)
		return nil, common.ErrorInternal
	}

	return &LoginResult{User: user, Token: token}, nil
}

// Create validates the payload, rejects duplicate emails, hashes the
// password, and stores the record.
func (s *UserService) Create(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
	if err := validation.ValidateCreate(req); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return nil, common.ErrorAlreadyExists
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error checking existing user: %w", err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	birthday, err := time.Parse(models.BirthdayLayout, req.Birthday)
	if err != nil {
		// validation guarantees parseability; treat as internal otherwise
		return nil, fmt.Errorf("error parsing birthday: %w", err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
		Surname:      req.Surname,
		Address:      req.Address,
		Phone:        req.Phone,
		BloodType:    req.BloodType,
		Sex:          req.Sex,
		Birthday:     birthday,
	}

	// the unique index backstops the precheck against concurrent creates
	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return created, nil
}

// GetByID fetches one record.
func (s *UserService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns all records.
func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	return s.repo.List(ctx)
}

// Update applies a partial update to an existing record. The password hash
// is recomputed only when the payload carries a new non-empty plaintext
// password; otherwise the stored hash is left untouched.
func (s *UserService) Update(ctx context.Context, id int64, req *models.UpdateUserRequest) (*models.User, error) {
	if err := validation.ValidateUpdate(req); err != nil {
		return nil, err
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Surname != nil {
		user.Surname = *req.Surname
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Address != nil {
		user.Address = *req.Address
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.BloodType != nil {
		user.BloodType = *req.BloodType
	}
	if req.Sex != nil {
		user.Sex = *req.Sex
	}
	if req.Birthday != nil {
		birthday, err := time.Parse(models.BirthdayLayout, *req.Birthday)
		if err != nil {
			return nil, fmt.Errorf("error parsing birthday: %w", err)
		}
		user.Birthday = birthday
	}
	if req.Password != nil && *req.Password != "" {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("error hashing password: %w", err)
		}
		user.PasswordHash = hash
	}

	return s.repo.Update(ctx, user)
}

// Delete removes a record and returns it.
func (s *UserService) Delete(ctx context.Context, id int64) (*models.User, error) {
	return s.repo.Delete(ctx, id)
}
