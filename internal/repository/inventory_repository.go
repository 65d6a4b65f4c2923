package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/model"
)

type InventoryRepository interface {
	SetStock(ctx context.Context, productID uuid.UUID, newStock int64) error
	CreateAdjustment(ctx context.Context, adjustment model.InventoryAdjustment) error
	ListAdjustments(ctx context.Context, productID uuid.UUID, limit int) ([]model.InventoryAdjustment, error)
}
