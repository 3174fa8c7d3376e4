// Package users provides persistence for user records.
package users

import (
	"context"

	"github.com/josuelns/authapi/internal/server/models"
)

// Repository is the store contract consumed by the service layer. Missing
// rows surface as common.ErrorNotFound; duplicate emails surface as
// common.ErrorAlreadyExists.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Update(ctx context.Context, user *models.User) (*models.User, error)
	Delete(ctx context.Context, id int64) (*models.User, error)
}
