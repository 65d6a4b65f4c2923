package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/storefront/backend/internal/apperr"
	"github.com/storefront/backend/internal/domain/model"
	"github.com/storefront/backend/internal/repository"
)

type RegisterUserInput struct {
	Email    string
	Password string
	Name     string
	Role     string // empty means client
}

type RegisterUserOutput struct {
	User model.User
}

type RegisterUserUsecase struct {
	userRepo         repository.UserRepository
	hasher           PasswordHasher
	idGen            IDGenerator
	clock            Clock
	allowAdminSignup bool
}

func NewRegisterUserUsecase(
	userRepo repository.UserRepository,
	hasher PasswordHasher,
	idGen IDGenerator,
	clock Clock,
	allowAdminSignup bool,
) *RegisterUserUsecase {
	return &RegisterUserUsecase{
		userRepo:         userRepo,
		hasher:           hasher,
		idGen:            idGen,
		clock:            clock,
		allowAdminSignup: allowAdminSignup,
	}
}

// Execute validates input, rejects taken emails and weak passwords, then stores the hashed user.
func (u *RegisterUserUsecase) Execute(ctx context.Context, in RegisterUserInput) (RegisterUserOutput, error) {
	var out RegisterUserOutput

	email := model.NormalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)

	if !model.ValidEmail(email) {
		return out, apperr.ErrValidation.WithMessage("invalid email format")
	}
	if !model.ValidName(name) {
		return out, apperr.ErrValidation.WithMessage("name must be between 2 and 50 characters")
	}

	role := model.RoleClient
	if strings.TrimSpace(in.Role) != "" {
		r, ok := model.ParseRole(in.Role)
		if !ok {
			return out, apperr.ErrInvalidRole
		}
		role = r
	}
	if role == model.RoleAdmin && !u.allowAdminSignup {
		return out, apperr.ErrRoleNotAllowed
	}

	existing, err := u.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return out, apperr.ErrEmailAlreadyExists
	}
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return out, apperr.ErrDatabase.Wrap(err)
	}

	if problems := PasswordProblems(in.Password); len(problems) > 0 {
		return out, apperr.ErrWeakPassword.WithDetail(problems)
	}

	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return out, apperr.ErrInternal.Wrap(err)
	}

	now := u.clock.Now()
	user := &model.User{
		ID:           u.idGen.NewID(),
		Email:        email,
		PasswordHash: hashed,
		Name:         name,
		Role:         role,
		IsActive:     true,
		IsVerified:   false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, repository.ErrEmailTaken) {
			return out, apperr.ErrEmailAlreadyExists
		}
		return out, apperr.ErrDatabase.Wrap(err)
	}

	out.User = *user
	return out, nil
}
