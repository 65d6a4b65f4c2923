package usecase

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/apperr"
	"github.com/storefront/backend/internal/domain/model"
	repo "github.com/storefront/backend/internal/repository"
)

type CategoryUsecase struct {
	categories repo.CategoryRepository
	tx         repo.TransactionManager
	audit      *AuditRecorder
	ids        IDGenerator
	clock      Clock
}

func NewCategoryUsecase(
	categories repo.CategoryRepository,
	tx repo.TransactionManager,
	audit *AuditRecorder,
	ids IDGenerator,
	clock Clock,
) *CategoryUsecase {
	return &CategoryUsecase{categories: categories, tx: tx, audit: audit, ids: ids, clock: clock}
}

type CategoryInput struct {
	Name        *string
	Description *string
	IsActive    *bool
}

func (u *CategoryUsecase) List(ctx context.Context) ([]model.Category, error) {
	cs, err := u.categories.List(ctx)
	if err != nil {
		return nil, apperr.ErrDatabase.Wrap(err)
	}
	if cs == nil {
		cs = []model.Category{}
	}
	return cs, nil
}

func (u *CategoryUsecase) Get(ctx context.Context, id uuid.UUID) (model.Category, error) {
	c, err := u.categories.FindByID(ctx, id)
	if err != nil {
		return model.Category{}, categoryRepoError(err)
	}
	return c, nil
}

func (u *CategoryUsecase) AdminCreate(ctx context.Context, actor *model.User, in CategoryInput) (model.Category, error) {
	if in.Name == nil {
		return model.Category{}, apperr.ErrValidation.WithMessage("name required")
	}
	name := strings.TrimSpace(*in.Name)
	if err := validateCategoryName(name); err != nil {
		return model.Category{}, err
	}

	c := model.Category{
		ID:       u.ids.NewID(),
		Name:     name,
		IsActive: true,
	}
	if in.Description != nil {
		c.Description = strings.TrimSpace(*in.Description)
	}
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
	c.CreatedAt = u.clock.Now()
	c.UpdatedAt = c.CreatedAt

	var created model.Category
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := ensureUniqueCategoryName(ctx, r.Categories(), name, uuid.Nil); err != nil {
			return err
		}
		saved, err := r.Categories().Create(ctx, c)
		if err != nil {
			return categoryRepoError(err)
		}
		created = saved
		return u.audit.record(ctx, r.AuditLogs(), auditEntry{
			actor:        actor.ID,
			action:       model.AuditActionCreateCategory,
			resourceType: model.AuditResourceCategory,
			resourceID:   saved.ID.String(),
			after:        saved,
		})
	})
	if err != nil {
		return model.Category{}, err
	}
	return created, nil
}

func (u *CategoryUsecase) AdminUpdate(ctx context.Context, actor *model.User, id uuid.UUID, in CategoryInput) (model.Category, error) {
	var updated model.Category
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		c, err := r.Categories().FindByID(ctx, id)
		if err != nil {
			return categoryRepoError(err)
		}
		before := c

		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if err := validateCategoryName(name); err != nil {
				return err
			}
			if !strings.EqualFold(name, c.Name) {
				if err := ensureUniqueCategoryName(ctx, r.Categories(), name, c.ID); err != nil {
					return err
				}
			}
			c.Name = name
		}
		if in.Description != nil {
			c.Description = strings.TrimSpace(*in.Description)
		}
		if in.IsActive != nil {
			c.IsActive = *in.IsActive
		}
		c.UpdatedAt = u.clock.Now()

		if err := r.Categories().Update(ctx, c); err != nil {
			return categoryRepoError(err)
		}
		updated = c
		return u.audit.record(ctx, r.AuditLogs(), auditEntry{
			actor:        actor.ID,
			action:       model.AuditActionUpdateCategory,
			resourceType: model.AuditResourceCategory,
			resourceID:   c.ID.String(),
			before:       before,
			after:        c,
		})
	})
	if err != nil {
		return model.Category{}, err
	}
	return updated, nil
}

// AdminDelete refuses while any product, soft deleted ones included, still points at the category.
func (u *CategoryUsecase) AdminDelete(ctx context.Context, actor *model.User, id uuid.UUID) error {
	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		c, err := r.Categories().FindByID(ctx, id)
		if err != nil {
			return categoryRepoError(err)
		}
		n, err := r.Products().CountByCategory(ctx, id)
		if err != nil {
			return apperr.ErrDatabase.Wrap(err)
		}
		if n > 0 {
			return apperr.ErrCategoryInUse.WithDetail(map[string]int64{"products": n})
		}
		if err := r.Categories().Delete(ctx, id); err != nil {
			return categoryRepoError(err)
		}
		return u.audit.record(ctx, r.AuditLogs(), auditEntry{
			actor:        actor.ID,
			action:       model.AuditActionDeleteCategory,
			resourceType: model.AuditResourceCategory,
			resourceID:   id.String(),
			before:       c,
		})
	})
}

func validateCategoryName(name string) error {
	if n := utf8.RuneCountInString(name); n < 2 || n > 100 {
		return apperr.ErrValidation.WithMessage("name must be between 2 and 100 characters")
	}
	return nil
}

func ensureUniqueCategoryName(ctx context.Context, categories repo.CategoryRepository, name string, self uuid.UUID) error {
	existing, err := categories.FindByName(ctx, name)
	if err == nil && existing.ID != self {
		return apperr.ErrDuplicateCategory
	}
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return apperr.ErrDatabase.Wrap(err)
	}
	return nil
}

func categoryRepoError(err error) error {
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return apperr.ErrCategoryNotFound
	case errors.Is(err, repo.ErrDuplicate):
		return apperr.ErrDuplicateCategory
	default:
		return apperr.ErrDatabase.Wrap(err)
	}
}
