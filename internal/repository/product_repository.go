package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when a unique constraint rejects a write.
var ErrDuplicate = errors.New("duplicate")

type StockFilter int

const (
	StockAny StockFilter = iota
	StockIn
	StockOut
	StockLow // stock <= LowStockThreshold
)

type ProductListQuery struct {
	Skip              int
	Limit             int
	Q                 string
	MinPrice          *int64
	MaxPrice          *int64
	Sort              string
	CategoryID        *uuid.UUID
	Stock             StockFilter
	LowStockThreshold int64
	// IncludeInactive is set for admin listings.
	IncludeInactive bool
}

type ProductRepository interface {
	List(ctx context.Context, q ProductListQuery) ([]model.Product, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (model.Product, error)
	// FindByName matches case-insensitively.
	FindByName(ctx context.Context, name string) (model.Product, error)
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type CategoryRepository interface {
	List(ctx context.Context) ([]model.Category, error)
	FindByID(ctx context.Context, id uuid.UUID) (model.Category, error)
	FindByName(ctx context.Context, name string) (model.Category, error)
	Create(ctx context.Context, c model.Category) (model.Category, error)
	Update(ctx context.Context, c model.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}
