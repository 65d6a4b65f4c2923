package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/model"
)

var (
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when the store rejects a duplicate email.
	ErrEmailTaken = errors.New("email already taken")
)

// UserListQuery pages through users. Search is a case-insensitive substring
// matched against name, first name, last name and email.
type UserListQuery struct {
	Skip   int
	Limit  int
	Search string
}

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	// email must already be normalized
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// Update writes every mutable column. The id is never changed.
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, q UserListQuery) ([]model.User, int64, error)
}
