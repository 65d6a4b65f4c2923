package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/apperr"
	"github.com/storefront/backend/internal/domain/model"
	repo "github.com/storefront/backend/internal/repository"
)

const (
	defaultProductListLimit = 20
	maxProductListLimit     = 100
)

type ProductUsecase struct {
	products   repo.ProductRepository
	categories repo.CategoryRepository
	tx         repo.TransactionManager
	audit      *AuditRecorder
	ids        IDGenerator
	clock      Clock
}

func NewProductUsecase(
	products repo.ProductRepository,
	categories repo.CategoryRepository,
	tx repo.TransactionManager,
	audit *AuditRecorder,
	ids IDGenerator,
	clock Clock,
) *ProductUsecase {
	return &ProductUsecase{
		products:   products,
		categories: categories,
		tx:         tx,
		audit:      audit,
		ids:        ids,
		clock:      clock,
	}
}

// ListProductsInput is the query of GET /products and its stock variants.
type ListProductsInput struct {
	Skip       int
	Limit      *int // nil means the default page size
	Q          string
	MinPrice   *int64
	MaxPrice   *int64
	Sort       string
	CategoryID *uuid.UUID
}

type ProductListOutput struct {
	Items []model.Product `json:"items"`
	Total int64           `json:"total"`
	Skip  int             `json:"skip"`
	Limit int             `json:"limit"`
}

func (u *ProductUsecase) ListProducts(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	return u.list(ctx, in, repo.StockAny, 0)
}

func (u *ProductUsecase) ListInStock(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	return u.list(ctx, in, repo.StockIn, 0)
}

func (u *ProductUsecase) ListOutOfStock(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	return u.list(ctx, in, repo.StockOut, 0)
}

// ListLowStock returns products whose stock is at or below threshold.
func (u *ProductUsecase) ListLowStock(ctx context.Context, in ListProductsInput, threshold int64) (ProductListOutput, error) {
	if threshold < 0 {
		return ProductListOutput{}, apperr.ErrValidation.WithMessage("threshold must be >= 0")
	}
	return u.list(ctx, in, repo.StockLow, threshold)
}

// ListByPriceRange requires both bounds.
func (u *ProductUsecase) ListByPriceRange(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	if in.MinPrice == nil || in.MaxPrice == nil {
		return ProductListOutput{}, apperr.ErrValidation.WithMessage("min_price and max_price are required")
	}
	return u.list(ctx, in, repo.StockAny, 0)
}

func (u *ProductUsecase) list(ctx context.Context, in ListProductsInput, stock repo.StockFilter, threshold int64) (ProductListOutput, error) {
	limit, err := pageLimit(in.Limit, defaultProductListLimit, maxProductListLimit)
	if err != nil {
		return ProductListOutput{}, err
	}
	if in.Skip < 0 {
		return ProductListOutput{}, apperr.ErrValidation.WithMessage("skip must be >= 0")
	}
	if len(in.Q) > 100 {
		return ProductListOutput{}, apperr.ErrValidation.WithMessage("q too long")
	}
	if in.MinPrice != nil && *in.MinPrice < 0 {
		return ProductListOutput{}, apperr.ErrValidation.WithMessage("min_price must be >= 0")
	}
	if in.MaxPrice != nil && *in.MaxPrice < 0 {
		return ProductListOutput{}, apperr.ErrValidation.WithMessage("max_price must be >= 0")
	}
	if in.MinPrice != nil && in.MaxPrice != nil && *in.MinPrice > *in.MaxPrice {
		return ProductListOutput{}, apperr.ErrValidation.WithMessage("min_price must be <= max_price")
	}
	switch in.Sort {
	case "", "new", "price_asc", "price_desc", "name", "stock_asc":
	default:
		return ProductListOutput{}, apperr.ErrValidation.WithMessage("invalid sort")
	}

	items, total, err := u.products.List(ctx, repo.ProductListQuery{
		Skip:              in.Skip,
		Limit:             limit,
		Q:                 strings.TrimSpace(in.Q),
		MinPrice:          in.MinPrice,
		MaxPrice:          in.MaxPrice,
		Sort:              in.Sort,
		CategoryID:        in.CategoryID,
		Stock:             stock,
		LowStockThreshold: threshold,
	})
	if err != nil {
		return ProductListOutput{}, apperr.ErrDatabase.Wrap(err)
	}
	if items == nil {
		items = []model.Product{}
	}

	return ProductListOutput{
		Items: items,
		Total: total,
		Skip:  in.Skip,
		Limit: limit,
	}, nil
}

// GetProduct hides inactive products from the public.
func (u *ProductUsecase) GetProduct(ctx context.Context, id uuid.UUID) (model.Product, error) {
	p, err := u.products.FindByID(ctx, id)
	if err != nil {
		return model.Product{}, productRepoError(err)
	}
	if !p.IsActive {
		return model.Product{}, apperr.ErrProductNotFound
	}
	return p, nil
}

type StockOutput struct {
	ProductID uuid.UUID `json:"product_id"`
	Stock     int64     `json:"stock"`
	InStock   bool      `json:"in_stock"`
}

func (u *ProductUsecase) StockOf(ctx context.Context, id uuid.UUID) (StockOutput, error) {
	p, err := u.GetProduct(ctx, id)
	if err != nil {
		return StockOutput{}, err
	}
	return StockOutput{ProductID: p.ID, Stock: p.Stock, InStock: p.Stock > 0}, nil
}

type CreateProductInput struct {
	Name        string
	Description string
	Price       int64
	ImageURL    string
	Stock       int64
	IsActive    *bool // default true
	CategoryID  uuid.UUID
}

func (u *ProductUsecase) AdminCreateProduct(ctx context.Context, actor *model.User, in CreateProductInput) (model.Product, error) {
	name := strings.TrimSpace(in.Name)
	if err := validateProductFields(name, in.Price, in.Stock); err != nil {
		return model.Product{}, err
	}
	if in.CategoryID == uuid.Nil {
		return model.Product{}, apperr.ErrValidation.WithMessage("category_id required")
	}

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}

	var created model.Product
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := ensureUniqueProductName(ctx, r.Products(), name, uuid.Nil); err != nil {
			return err
		}
		if _, err := r.Categories().FindByID(ctx, in.CategoryID); err != nil {
			return categoryRepoError(err)
		}

		now := u.clock.Now()
		p, err := r.Products().Create(ctx, model.Product{
			ID:          u.ids.NewID(),
			Name:        name,
			Description: strings.TrimSpace(in.Description),
			Price:       in.Price,
			ImageURL:    strings.TrimSpace(in.ImageURL),
			Stock:       in.Stock,
			IsActive:    active,
			CategoryID:  in.CategoryID,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			return productRepoError(err)
		}
		created = p

		return u.audit.record(ctx, r.AuditLogs(), auditEntry{
			actor:        actor.ID,
			action:       model.AuditActionCreateProduct,
			resourceType: model.AuditResourceProduct,
			resourceID:   p.ID.String(),
			after:        auditProductView(p),
		})
	})
	if err != nil {
		return model.Product{}, err
	}
	return created, nil
}

// UpdateProductInput is a partial update, nil fields are left as they are.
type UpdateProductInput struct {
	Name        *string
	Description *string
	Price       *int64
	ImageURL    *string
	Stock       *int64
	IsActive    *bool
	CategoryID  *uuid.UUID
}

func (u *ProductUsecase) AdminUpdateProduct(ctx context.Context, actor *model.User, id uuid.UUID, in UpdateProductInput) (model.Product, error) {
	var updated model.Product
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p, err := r.Products().FindByID(ctx, id)
		if err != nil {
			return productRepoError(err)
		}
		before := p

		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if !strings.EqualFold(name, p.Name) {
				if err := ensureUniqueProductName(ctx, r.Products(), name, p.ID); err != nil {
					return err
				}
			}
			p.Name = name
		}
		if in.Description != nil {
			p.Description = strings.TrimSpace(*in.Description)
		}
		if in.Price != nil {
			p.Price = *in.Price
		}
		if in.ImageURL != nil {
			p.ImageURL = strings.TrimSpace(*in.ImageURL)
		}
		if in.Stock != nil {
			p.Stock = *in.Stock
		}
		if in.IsActive != nil {
			p.IsActive = *in.IsActive
		}
		if in.CategoryID != nil && *in.CategoryID != p.CategoryID {
			c, err := r.Categories().FindByID(ctx, *in.CategoryID)
			if err != nil {
				return categoryRepoError(err)
			}
			p.CategoryID = c.ID
			p.Category = &c
		}
		if err := validateProductFields(p.Name, p.Price, p.Stock); err != nil {
			return err
		}
		p.UpdatedAt = u.clock.Now()

		if err := r.Products().Update(ctx, p); err != nil {
			return productRepoError(err)
		}
		updated = p

		return u.audit.record(ctx, r.AuditLogs(), auditEntry{
			actor:        actor.ID,
			action:       model.AuditActionUpdateProduct,
			resourceType: model.AuditResourceProduct,
			resourceID:   p.ID.String(),
			before:       auditProductView(before),
			after:        auditProductView(p),
		})
	})
	if err != nil {
		return model.Product{}, err
	}
	return updated, nil
}

func (u *ProductUsecase) AdminDeleteProduct(ctx context.Context, actor *model.User, id uuid.UUID) error {
	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p, err := r.Products().FindByID(ctx, id)
		if err != nil {
			return productRepoError(err)
		}
		if err := r.Products().SoftDelete(ctx, id); err != nil {
			return productRepoError(err)
		}
		return u.audit.record(ctx, r.AuditLogs(), auditEntry{
			actor:        actor.ID,
			action:       model.AuditActionDeleteProduct,
			resourceType: model.AuditResourceProduct,
			resourceID:   id.String(),
			before:       auditProductView(p),
		})
	})
}

// AdminUpdateInventory sets the stock, records the delta and audits it in one transaction.
func (u *ProductUsecase) AdminUpdateInventory(ctx context.Context, actor *model.User, productID uuid.UUID, newStock int64, reason string) (StockOutput, error) {
	if newStock < 0 {
		return StockOutput{}, apperr.ErrValidation.WithMessage("stock must be >= 0")
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return StockOutput{}, apperr.ErrValidation.WithMessage("reason required")
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p, err := r.Products().FindByID(ctx, productID)
		if err != nil {
			return productRepoError(err)
		}

		if err := r.Inventory().SetStock(ctx, productID, newStock); err != nil {
			return productRepoError(err)
		}

		if err := r.Inventory().CreateAdjustment(ctx, model.InventoryAdjustment{
			ProductID:   productID,
			AdminUserID: actor.ID,
			Delta:       newStock - p.Stock,
			Reason:      reason,
			CreatedAt:   u.clock.Now(),
		}); err != nil {
			return apperr.ErrDatabase.Wrap(err)
		}

		return u.audit.record(ctx, r.AuditLogs(), auditEntry{
			actor:        actor.ID,
			action:       model.AuditActionUpdateStock,
			resourceType: model.AuditResourceProduct,
			resourceID:   productID.String(),
			before:       map[string]int64{"stock": p.Stock},
			after:        map[string]int64{"stock": newStock},
		})
	})
	if err != nil {
		return StockOutput{}, err
	}
	return StockOutput{ProductID: productID, Stock: newStock, InStock: newStock > 0}, nil
}

func validateProductFields(name string, price, stock int64) error {
	if n := len([]rune(name)); n < 2 || n > 255 {
		return apperr.ErrValidation.WithMessage("name must be between 2 and 255 characters")
	}
	if price <= 0 {
		return apperr.ErrValidation.WithMessage("price must be > 0")
	}
	if stock < 0 {
		return apperr.ErrValidation.WithMessage("stock must be >= 0")
	}
	return nil
}

func ensureUniqueProductName(ctx context.Context, products repo.ProductRepository, name string, self uuid.UUID) error {
	existing, err := products.FindByName(ctx, name)
	if err == nil && existing.ID != self {
		return apperr.ErrDuplicateProductName
	}
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return apperr.ErrDatabase.Wrap(err)
	}
	return nil
}

type auditProduct struct {
	Name       string    `json:"name"`
	Price      int64     `json:"price"`
	Stock      int64     `json:"stock"`
	IsActive   bool      `json:"is_active"`
	CategoryID uuid.UUID `json:"category_id"`
}

func auditProductView(p model.Product) auditProduct {
	return auditProduct{Name: p.Name, Price: p.Price, Stock: p.Stock, IsActive: p.IsActive, CategoryID: p.CategoryID}
}

func productRepoError(err error) error {
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return apperr.ErrProductNotFound
	case errors.Is(err, repo.ErrDuplicate):
		return apperr.ErrDuplicateProductName
	default:
		return apperr.ErrDatabase.Wrap(err)
	}
}
