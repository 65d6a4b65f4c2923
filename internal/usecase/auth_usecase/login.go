package auth

import (
	"context"
	"errors"
	"time"

	"github.com/storefront/backend/internal/apperr"
	"github.com/storefront/backend/internal/domain/model"
	"github.com/storefront/backend/internal/repository"
)

type LoginInput struct {
	Email    string
	Password string
}

type LoginOutput struct {
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
	UserRole    model.Role `json:"user_role"`
	ExpiresIn   int        `json:"expires_in"`
	User        model.User `json:"user"`
}

type LoginUsecase struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
	codec    TokenCodec
	lockout  LockoutPolicy
	clock    Clock
	tokenTTL time.Duration
}

func NewLoginUsecase(
	userRepo repository.UserRepository,
	hasher PasswordHasher,
	codec TokenCodec,
	lockout LockoutPolicy,
	clock Clock,
	tokenTTL time.Duration,
) *LoginUsecase {
	return &LoginUsecase{
		userRepo: userRepo,
		hasher:   hasher,
		codec:    codec,
		lockout:  lockout,
		clock:    clock,
		tokenTTL: tokenTTL,
	}
}

// Execute reserves a lockout slot before anything else, so a locked email gets the same
// answer whether or not it exists and whatever password was sent.
// Unknown email and wrong password keep the slot and return the same error.
// A correct password clears the counter.
func (u *LoginUsecase) Execute(ctx context.Context, in LoginInput) (LoginOutput, error) {
	var out LoginOutput

	email := model.NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return out, apperr.ErrValidation.WithMessage("email and password are required")
	}

	now := u.clock.Now()
	if err := u.lockout.Reserve(ctx, email, now); err != nil {
		return out, err
	}

	user, err := u.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return out, apperr.ErrInvalidCredentials
		}
		return out, apperr.ErrDatabase.Wrap(err)
	}

	if !u.hasher.Verify(in.Password, user.PasswordHash) {
		return out, apperr.ErrInvalidCredentials
	}

	if err := u.lockout.Reset(ctx, email); err != nil {
		return out, err
	}

	if !user.IsActive {
		return out, apperr.ErrUserInactive
	}

	token, expiresAt, err := u.codec.Issue(model.TokenClaims{
		Subject: user.ID.String(),
		Email:   user.Email,
		Role:    user.Role,
	}, u.tokenTTL)
	if err != nil {
		return out, apperr.ErrInternal.Wrap(err)
	}

	out.AccessToken = token
	out.TokenType = "bearer"
	out.UserRole = user.Role
	out.ExpiresIn = int(expiresAt.Sub(now).Seconds())
	out.User = *user
	return out, nil
}
