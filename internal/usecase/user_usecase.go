package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/apperr"
	"github.com/storefront/backend/internal/domain/model"
	repo "github.com/storefront/backend/internal/repository"
)

const (
	defaultUserListLimit = 10
	maxUserListLimit     = 100
)

// UserPatch carries only the profile fields the caller wants to change.
type UserPatch struct {
	Email     *string `json:"email"`
	Name      *string `json:"name"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
	Address   *string `json:"address"`
}

// ListUsersInput pages the user list. A nil Limit means the default page size.
type ListUsersInput struct {
	Skip   int
	Limit  *int
	Search string
}

type UserListOutput struct {
	Users []model.User `json:"users"`
	Total int64        `json:"total"`
	Skip  int          `json:"skip"`
	Limit int          `json:"limit"`
}

type UserUsecase struct {
	users repo.UserRepository
	tx    repo.TransactionManager
	guard RoleChecker
	audit *AuditRecorder
	clock Clock
}

func NewUserUsecase(
	users repo.UserRepository,
	tx repo.TransactionManager,
	guard RoleChecker,
	audit *AuditRecorder,
	clock Clock,
) *UserUsecase {
	return &UserUsecase{
		users: users,
		tx:    tx,
		guard: guard,
		audit: audit,
		clock: clock,
	}
}

func (u *UserUsecase) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := u.users.FindByID(ctx, id)
	if err != nil {
		return nil, userRepoError(err)
	}
	return user, nil
}

// UpdateProfile applies patch to the user's own record.
func (u *UserUsecase) UpdateProfile(ctx context.Context, id uuid.UUID, patch UserPatch) (*model.User, error) {
	if err := validatePatch(&patch); err != nil {
		return nil, err
	}

	var updated *model.User
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		user, _, err := u.applyPatch(ctx, r.Users(), id, patch)
		updated = user
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteSelf removes the caller's own account. Admin accounts are kept.
func (u *UserUsecase) DeleteSelf(ctx context.Context, self *model.User) error {
	if self == nil {
		return apperr.ErrUnauthorized
	}
	if self.IsAdmin() {
		return apperr.ErrUserDeletionNotAllowed
	}
	if err := u.users.Delete(ctx, self.ID); err != nil {
		return userRepoError(err)
	}
	return nil
}

func (u *UserUsecase) AdminGetUser(ctx context.Context, actor *model.User, id uuid.UUID) (*model.User, error) {
	if _, err := u.guard.RequireRole(actor, model.RoleAdmin); err != nil {
		return nil, err
	}
	return u.GetByID(ctx, id)
}

// ListUsers pages through users ordered by creation time.
func (u *UserUsecase) ListUsers(ctx context.Context, actor *model.User, in ListUsersInput) (UserListOutput, error) {
	if _, err := u.guard.RequireRole(actor, model.RoleAdmin); err != nil {
		return UserListOutput{}, err
	}

	limit, err := pageLimit(in.Limit, defaultUserListLimit, maxUserListLimit)
	if err != nil {
		return UserListOutput{}, err
	}
	if in.Skip < 0 {
		return UserListOutput{}, apperr.ErrValidation.WithMessage("skip must be >= 0")
	}
	search := strings.TrimSpace(in.Search)
	if len(search) > 100 {
		return UserListOutput{}, apperr.ErrValidation.WithMessage("search too long")
	}

	users, total, err := u.users.List(ctx, repo.UserListQuery{
		Skip:   in.Skip,
		Limit:  limit,
		Search: search,
	})
	if err != nil {
		return UserListOutput{}, apperr.ErrDatabase.Wrap(err)
	}
	if users == nil {
		users = []model.User{}
	}

	return UserListOutput{
		Users: users,
		Total: total,
		Skip:  in.Skip,
		Limit: limit,
	}, nil
}

func (u *UserUsecase) AdminUpdateUser(ctx context.Context, actor *model.User, id uuid.UUID, patch UserPatch) (*model.User, error) {
	if _, err := u.guard.RequireRole(actor, model.RoleAdmin); err != nil {
		return nil, err
	}
	if err := validatePatch(&patch); err != nil {
		return nil, err
	}

	var updated *model.User
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		user, before, err := u.applyPatch(ctx, r.Users(), id, patch)
		if err != nil {
			return err
		}
		updated = user
		return u.recordUser(ctx, r, actor, model.AuditActionUpdateUser, before, *user)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (u *UserUsecase) AdminDeleteUser(ctx context.Context, actor *model.User, id uuid.UUID) error {
	if _, err := u.guard.RequireRole(actor, model.RoleAdmin); err != nil {
		return err
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		target, err := r.Users().FindByID(ctx, id)
		if err != nil {
			return userRepoError(err)
		}
		if target.IsAdmin() {
			return apperr.ErrUserDeletionNotAllowed
		}
		if err := r.Users().Delete(ctx, id); err != nil {
			return userRepoError(err)
		}
		return u.audit.record(ctx, r.AuditLogs(), auditEntry{
			actor:        actor.ID,
			action:       model.AuditActionDeleteUser,
			resourceType: model.AuditResourceUser,
			resourceID:   id.String(),
			before:       auditUserView(*target),
		})
	})
}

// ChangeRole sets a user's role. The new role must be a known one.
func (u *UserUsecase) ChangeRole(ctx context.Context, actor *model.User, id uuid.UUID, role string) (*model.User, error) {
	if _, err := u.guard.RequireRole(actor, model.RoleAdmin); err != nil {
		return nil, err
	}
	newRole, ok := model.ParseRole(role)
	if !ok {
		return nil, apperr.ErrInvalidRole
	}

	return u.mutate(ctx, actor, id, model.AuditActionChangeRole, func(user *model.User) error {
		user.Role = newRole
		return nil
	})
}

func (u *UserUsecase) Activate(ctx context.Context, actor *model.User, id uuid.UUID) (*model.User, error) {
	if _, err := u.guard.RequireRole(actor, model.RoleAdmin); err != nil {
		return nil, err
	}
	return u.mutate(ctx, actor, id, model.AuditActionActivateUser, func(user *model.User) error {
		if user.IsActive {
			return apperr.ErrUserAlreadyActive
		}
		user.IsActive = true
		return nil
	})
}

func (u *UserUsecase) Deactivate(ctx context.Context, actor *model.User, id uuid.UUID) (*model.User, error) {
	if _, err := u.guard.RequireRole(actor, model.RoleAdmin); err != nil {
		return nil, err
	}
	return u.mutate(ctx, actor, id, model.AuditActionDeactivateUser, func(user *model.User) error {
		if !user.IsActive {
			return apperr.ErrUserAlreadyInactive
		}
		user.IsActive = false
		return nil
	})
}

// mutate loads the user, applies change, saves and audits in one transaction.
func (u *UserUsecase) mutate(
	ctx context.Context,
	actor *model.User,
	id uuid.UUID,
	action model.AuditAction,
	change func(user *model.User) error,
) (*model.User, error) {
	var updated *model.User
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		user, err := r.Users().FindByID(ctx, id)
		if err != nil {
			return userRepoError(err)
		}
		before := *user

		if err := change(user); err != nil {
			return err
		}
		user.UpdatedAt = u.clock.Now()

		if err := r.Users().Update(ctx, user); err != nil {
			return userRepoError(err)
		}
		updated = user
		return u.recordUser(ctx, r, actor, action, before, *user)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (u *UserUsecase) applyPatch(ctx context.Context, users repo.UserRepository, id uuid.UUID, patch UserPatch) (*model.User, model.User, error) {
	user, err := users.FindByID(ctx, id)
	if err != nil {
		return nil, model.User{}, userRepoError(err)
	}
	before := *user

	if patch.Email != nil && *patch.Email != user.Email {
		other, err := users.FindByEmail(ctx, *patch.Email)
		if err == nil && other != nil && other.ID != user.ID {
			return nil, before, apperr.ErrEmailAlreadyExists
		}
		if err != nil && !errors.Is(err, repo.ErrUserNotFound) {
			return nil, before, apperr.ErrDatabase.Wrap(err)
		}
		user.Email = *patch.Email
	}
	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.FirstName != nil {
		user.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		user.LastName = *patch.LastName
	}
	if patch.Phone != nil {
		user.Phone = *patch.Phone
	}
	if patch.Address != nil {
		user.Address = *patch.Address
	}
	user.UpdatedAt = u.clock.Now()

	if err := users.Update(ctx, user); err != nil {
		return nil, before, userRepoError(err)
	}
	return user, before, nil
}

func (u *UserUsecase) recordUser(ctx context.Context, r repo.TxRepos, actor *model.User, action model.AuditAction, before, after model.User) error {
	return u.audit.record(ctx, r.AuditLogs(), auditEntry{
		actor:        actor.ID,
		action:       action,
		resourceType: model.AuditResourceUser,
		resourceID:   after.ID.String(),
		before:       auditUserView(before),
		after:        auditUserView(after),
	})
}

// validatePatch trims and normalizes in place.
func validatePatch(p *UserPatch) error {
	if p.Email != nil {
		e := model.NormalizeEmail(*p.Email)
		if !model.ValidEmail(e) {
			return apperr.ErrValidation.WithMessage("invalid email format")
		}
		p.Email = &e
	}
	if p.Name != nil {
		n := strings.TrimSpace(*p.Name)
		if !model.ValidName(n) {
			return apperr.ErrValidation.WithMessage("name must be between 2 and 50 characters")
		}
		p.Name = &n
	}
	fields := []struct {
		name  string
		value *string
		max   int
	}{
		{"first_name", p.FirstName, model.MaxFirstNameLen},
		{"last_name", p.LastName, model.MaxLastNameLen},
		{"phone", p.Phone, model.MaxPhoneLen},
		{"address", p.Address, model.MaxAddressLen},
	}
	for _, f := range fields {
		if f.value == nil {
			continue
		}
		*f.value = strings.TrimSpace(*f.value)
		if utf8.RuneCountInString(*f.value) > f.max {
			return apperr.ErrValidation.
				WithMessage(fmt.Sprintf("%s must be at most %d characters", f.name, f.max)).
				WithDetail(map[string]any{"field": f.name, "max": f.max})
		}
	}
	return nil
}

type auditUser struct {
	Email    string     `json:"email"`
	Name     string     `json:"name"`
	Role     model.Role `json:"role"`
	IsActive bool       `json:"is_active"`
}

func auditUserView(u model.User) auditUser {
	return auditUser{Email: u.Email, Name: u.Name, Role: u.Role, IsActive: u.IsActive}
}

func userRepoError(err error) error {
	switch {
	case errors.Is(err, repo.ErrUserNotFound):
		return apperr.ErrUserNotFound
	case errors.Is(err, repo.ErrEmailTaken):
		return apperr.ErrEmailAlreadyExists
	default:
		return apperr.ErrDatabase.Wrap(err)
	}
}
