package auth

import (
	"context"
	"errors"

	"github.com/storefront/backend/internal/apperr"
	"github.com/storefront/backend/internal/domain/model"
)

// EnsureAdmin creates the bootstrap admin unless the email is already registered.
// It goes through the same validation as Execute, admin signup setting aside.
func (u *RegisterUserUsecase) EnsureAdmin(ctx context.Context, email, password, name string) (bool, error) {
	seeder := *u
	seeder.allowAdminSignup = true

	_, err := seeder.Execute(ctx, RegisterUserInput{
		Email:    email,
		Password: password,
		Name:     name,
		Role:     string(model.RoleAdmin),
	})
	if errors.Is(err, apperr.ErrEmailAlreadyExists) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
