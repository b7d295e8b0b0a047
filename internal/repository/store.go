package repository

import (
	"context"
	"errors"

	"github.com/eaglebank/user-directory/internal/models"
)

// Sentinel errors for the storage layer. Services decide how to map them
// into client-facing errors.
var (
	ErrNotFound       = errors.New("user record not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// UserStore is the record store behind the user directory.
type UserStore interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	UpdateByID(ctx context.Context, id int64, patch models.UserPatch) error
	DeleteByID(ctx context.Context, id int64) (bool, error)
	FindAll(ctx context.Context) ([]models.User, error)
}
