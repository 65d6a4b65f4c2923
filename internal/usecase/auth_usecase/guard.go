package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/apperr"
	"github.com/storefront/backend/internal/domain/model"
	"github.com/storefront/backend/internal/repository"
)

// AccessGuard resolves bearer tokens to users and enforces roles. It never writes.
type AccessGuard struct {
	codec    TokenCodec
	userRepo repository.UserRepository
}

func NewAccessGuard(codec TokenCodec, userRepo repository.UserRepository) *AccessGuard {
	return &AccessGuard{codec: codec, userRepo: userRepo}
}

// Authenticate verifies token and loads its subject.
// Token failures come back as ErrUnauthorized carrying the precise code in Detail.
func (g *AccessGuard) Authenticate(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, apperr.ErrUnauthorized
	}

	claims, err := g.codec.Verify(token)
	if err != nil {
		return nil, unauthorized(err)
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, unauthorized(apperr.ErrTokenMalformed)
	}

	user, err := g.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperr.ErrUserNotFound
		}
		return nil, apperr.ErrDatabase.Wrap(err)
	}

	if !user.IsActive {
		return nil, apperr.ErrUserInactive
	}
	return user, nil
}

// RequireRole passes user through when it holds role.
func (g *AccessGuard) RequireRole(user *model.User, role model.Role) (*model.User, error) {
	if user == nil {
		return nil, apperr.ErrUnauthorized
	}
	if user.Role != role {
		return nil, apperr.ErrForbidden
	}
	return user, nil
}

func unauthorized(cause error) error {
	code := apperr.ErrTokenExpiredOrInvalid.Code
	if ae, ok := apperr.As(cause); ok {
		code = ae.Code
	}
	return apperr.ErrUnauthorized.WithDetail(map[string]string{"reason": code}).Wrap(cause)
}
