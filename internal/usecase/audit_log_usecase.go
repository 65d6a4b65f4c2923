package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/apperr"
	"github.com/storefront/backend/internal/domain/model"
	repo "github.com/storefront/backend/internal/repository"
)

type AuditLogUsecase struct {
	logs  repo.AuditLogRepository
	guard RoleChecker
}

func NewAuditLogUsecase(logs repo.AuditLogRepository, guard RoleChecker) *AuditLogUsecase {
	return &AuditLogUsecase{logs: logs, guard: guard}
}

type ListAuditLogsInput struct {
	ActorUserID  string
	Action       string
	ResourceType string
	ResourceID   string
	Limit        *int // nil means 50
	Offset       int
}

// List returns matching entries, newest first.
func (u *AuditLogUsecase) List(ctx context.Context, actor *model.User, in ListAuditLogsInput) ([]model.AuditLog, error) {
	if _, err := u.guard.RequireRole(actor, model.RoleAdmin); err != nil {
		return nil, err
	}
	limit, err := pageLimit(in.Limit, 50, 200)
	if err != nil {
		return nil, err
	}
	if in.Offset < 0 {
		return nil, apperr.ErrValidation.WithMessage("offset must be >= 0")
	}

	f := repo.AuditLogFilter{Limit: limit, Offset: in.Offset}
	if in.ActorUserID != "" {
		id, err := uuid.Parse(in.ActorUserID)
		if err != nil {
			return nil, apperr.ErrValidation.WithMessage("invalid actor_user_id")
		}
		f.ActorUserID = &id
	}
	if in.Action != "" {
		a := model.AuditAction(in.Action)
		f.Action = &a
	}
	if in.ResourceType != "" {
		rt := model.AuditResourceType(in.ResourceType)
		f.ResourceType = &rt
	}
	if in.ResourceID != "" {
		f.ResourceID = &in.ResourceID
	}

	logs, err := u.logs.List(ctx, f)
	if err != nil {
		return nil, apperr.ErrDatabase.Wrap(err)
	}
	if logs == nil {
		logs = []model.AuditLog{}
	}
	return logs, nil
}

// InventoryHistory lists the stock adjustments of one product, newest first.
type InventoryHistory struct {
	inventory repo.InventoryRepository
	products  repo.ProductRepository
}

func NewInventoryHistory(inventory repo.InventoryRepository, products repo.ProductRepository) *InventoryHistory {
	return &InventoryHistory{inventory: inventory, products: products}
}

// List returns at most limit entries, 50 when limit is nil.
func (h *InventoryHistory) List(ctx context.Context, productID uuid.UUID, limit *int) ([]model.InventoryAdjustment, error) {
	n, err := pageLimit(limit, 50, 200)
	if err != nil {
		return nil, err
	}
	if _, err := h.products.FindByID(ctx, productID); err != nil {
		return nil, productRepoError(err)
	}
	adjs, err := h.inventory.ListAdjustments(ctx, productID, n)
	if err != nil {
		return nil, apperr.ErrDatabase.Wrap(err)
	}
	if adjs == nil {
		adjs = []model.InventoryAdjustment{}
	}
	return adjs, nil
}
