package usecase_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/storefront/backend/internal/apperr"
	"github.com/storefront/backend/internal/domain/model"
	repo "github.com/storefront/backend/internal/repository"
	"github.com/storefront/backend/internal/usecase"
)

func newProductUsecase(t *testing.T, ids ...uuid.UUID) (*usecase.ProductUsecase, *txFake) {
	t.Helper()
	tx := newTxFake()
	uc := usecase.NewProductUsecase(tx.products, tx.categories, tx, newRecorder(t), &seqIDs{next: ids}, fixedClock{t: testNow})
	return uc, tx
}

// =====================
// Public: List / Detail
// =====================

func TestProductUsecase_List_InvalidInput(t *testing.T) {
	uc, _ := newProductUsecase(t)
	ctx := context.Background()

	cases := map[string]usecase.ListProductsInput{
		"negative skip":  {Skip: -1},
		"limit too big":  {Limit: ptr(101)},
		"explicit zero":  {Limit: ptr(0)},
		"negative price": {MinPrice: ptr(int64(-1))},
		"min over max":   {MinPrice: ptr(int64(500)), MaxPrice: ptr(int64(100))},
		"unknown sort":   {Sort: "random"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uc.ListProducts(ctx, in)
			assert.ErrorIs(t, err, apperr.ErrValidation)
		})
	}
}

func TestProductUsecase_List_Success(t *testing.T) {
	uc, tx := newProductUsecase(t)

	q := repo.ProductListQuery{Skip: 0, Limit: 20, Q: "coffee", Sort: "price_asc"}
	items := []model.Product{{ID: uuid.New(), Name: "Coffee", IsActive: true}}
	tx.products.On("List", mock.Anything, q).Return(items, int64(1), nil)

	out, err := uc.ListProducts(context.Background(), usecase.ListProductsInput{Q: " coffee ", Sort: "price_asc"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), out.Total)
	assert.Equal(t, 20, out.Limit)
	assert.Len(t, out.Items, 1)
	tx.products.AssertExpectations(t)
}

func TestProductUsecase_ListLowStock(t *testing.T) {
	uc, tx := newProductUsecase(t)

	_, err := uc.ListLowStock(context.Background(), usecase.ListProductsInput{}, -1)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	tx.products.On("List", mock.Anything, mock.MatchedBy(func(q repo.ProductListQuery) bool {
		return q.Stock == repo.StockLow && q.LowStockThreshold == 5
	})).Return(nil, int64(0), nil)

	out, err := uc.ListLowStock(context.Background(), usecase.ListProductsInput{}, 5)
	require.NoError(t, err)
	assert.NotNil(t, out.Items)
}

func TestProductUsecase_ListInAndOutOfStock(t *testing.T) {
	uc, tx := newProductUsecase(t)
	tx.products.On("List", mock.Anything, mock.MatchedBy(func(q repo.ProductListQuery) bool { return q.Stock == repo.StockIn })).
		Return([]model.Product{{Stock: 3}}, int64(1), nil).Once()
	tx.products.On("List", mock.Anything, mock.MatchedBy(func(q repo.ProductListQuery) bool { return q.Stock == repo.StockOut })).
		Return([]model.Product{{Stock: 0}}, int64(1), nil).Once()

	in, err := uc.ListInStock(context.Background(), usecase.ListProductsInput{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), in.Items[0].Stock)

	out, err := uc.ListOutOfStock(context.Background(), usecase.ListProductsInput{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), out.Items[0].Stock)
	tx.products.AssertExpectations(t)
}

func TestProductUsecase_ListByPriceRange_RequiresBounds(t *testing.T) {
	uc, _ := newProductUsecase(t)

	_, err := uc.ListByPriceRange(context.Background(), usecase.ListProductsInput{MinPrice: ptr(int64(10))})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestProductUsecase_GetProduct_InactiveIsNotFound(t *testing.T) {
	uc, tx := newProductUsecase(t)
	id := uuid.New()
	tx.products.On("FindByID", mock.Anything, id).Return(model.Product{ID: id, IsActive: false}, nil)

	_, err := uc.GetProduct(context.Background(), id)
	assert.ErrorIs(t, err, apperr.ErrProductNotFound)
}

func TestProductUsecase_StockOf(t *testing.T) {
	uc, tx := newProductUsecase(t)
	id := uuid.New()
	tx.products.On("FindByID", mock.Anything, id).Return(model.Product{ID: id, IsActive: true, Stock: 4}, nil)

	out, err := uc.StockOf(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, usecase.StockOutput{ProductID: id, Stock: 4, InStock: true}, out)
}

// =====================
// Admin
// =====================

func TestProductUsecase_AdminCreate_DuplicateName(t *testing.T) {
	uc, tx := newProductUsecase(t)
	tx.products.On("FindByName", mock.Anything, "Coffee").Return(model.Product{ID: uuid.New(), Name: "coffee"}, nil)

	_, err := uc.AdminCreateProduct(context.Background(), adminUser(), usecase.CreateProductInput{
		Name: "Coffee", Price: 100, Stock: 1, CategoryID: uuid.New(),
	})
	assert.ErrorIs(t, err, apperr.ErrDuplicateProductName)
	tx.products.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProductUsecase_AdminCreate_UnknownCategory(t *testing.T) {
	uc, tx := newProductUsecase(t)
	catID := uuid.New()
	tx.products.On("FindByName", mock.Anything, "Coffee").Return(nil, repo.ErrNotFound)
	tx.categories.On("FindByID", mock.Anything, catID).Return(nil, repo.ErrNotFound)

	_, err := uc.AdminCreateProduct(context.Background(), adminUser(), usecase.CreateProductInput{
		Name: "Coffee", Price: 100, Stock: 1, CategoryID: catID,
	})
	assert.ErrorIs(t, err, apperr.ErrCategoryNotFound)
}

func TestProductUsecase_AdminCreate_Validation(t *testing.T) {
	uc, _ := newProductUsecase(t)
	ctx := context.Background()

	cases := map[string]usecase.CreateProductInput{
		"blank name":     {Name: " ", Price: 1, CategoryID: uuid.New()},
		"zero price":     {Name: "Tea", Price: 0, CategoryID: uuid.New()},
		"negative stock": {Name: "Tea", Price: 1, Stock: -1, CategoryID: uuid.New()},
		"no category":    {Name: "Tea", Price: 1},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uc.AdminCreateProduct(ctx, adminUser(), in)
			assert.ErrorIs(t, err, apperr.ErrValidation)
		})
	}
}

func TestProductUsecase_AdminCreate_Success(t *testing.T) {
	id := uuid.New()
	uc, tx := newProductUsecase(t, id)
	catID := uuid.New()
	actor := adminUser()

	tx.products.On("FindByName", mock.Anything, "Coffee").Return(nil, repo.ErrNotFound)
	tx.categories.On("FindByID", mock.Anything, catID).Return(model.Category{ID: catID, Name: "Drinks"}, nil)
	tx.products.On("Create", mock.Anything, mock.MatchedBy(func(p model.Product) bool {
		return p.ID == id && p.Name == "Coffee" && p.IsActive && p.CreatedAt.Equal(testNow)
	})).Return(model.Product{ID: id, Name: "Coffee", Price: 100, Stock: 10, IsActive: true, CategoryID: catID}, nil)
	tx.audit.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionCreateProduct && l.ResourceID == id.String() && l.ActorUserID == actor.ID
	})).Return(nil)

	p, err := uc.AdminCreateProduct(context.Background(), actor, usecase.CreateProductInput{
		Name: " Coffee ", Price: 100, Stock: 10, CategoryID: catID,
	})
	require.NoError(t, err)
	assert.Equal(t, id, p.ID)
	tx.products.AssertExpectations(t)
	tx.audit.AssertExpectations(t)
}

func TestProductUsecase_AdminUpdate_Partial(t *testing.T) {
	uc, tx := newProductUsecase(t)
	id := uuid.New()
	current := model.Product{ID: id, Name: "Coffee", Price: 100, Stock: 10, IsActive: true, CategoryID: uuid.New()}
	tx.products.On("FindByID", mock.Anything, id).Return(current, nil)
	tx.products.On("Update", mock.Anything, mock.MatchedBy(func(p model.Product) bool {
		return p.Name == "Coffee" && p.Price == 150 && p.Stock == 10
	})).Return(nil)
	tx.audit.On("Create", mock.Anything, mock.Anything).Return(nil)

	p, err := uc.AdminUpdateProduct(context.Background(), adminUser(), id, usecase.UpdateProductInput{Price: ptr(int64(150))})
	require.NoError(t, err)
	assert.Equal(t, int64(150), p.Price)
	tx.products.AssertNotCalled(t, "FindByName", mock.Anything, mock.Anything)
}

func TestProductUsecase_AdminDelete_NotFound(t *testing.T) {
	uc, tx := newProductUsecase(t)
	id := uuid.New()
	tx.products.On("FindByID", mock.Anything, id).Return(nil, repo.ErrNotFound)

	err := uc.AdminDeleteProduct(context.Background(), adminUser(), id)
	assert.ErrorIs(t, err, apperr.ErrProductNotFound)
}

func TestProductUsecase_AdminUpdateInventory(t *testing.T) {
	uc, tx := newProductUsecase(t)
	id := uuid.New()
	actor := adminUser()

	tx.products.On("FindByID", mock.Anything, id).Return(model.Product{ID: id, Stock: 10}, nil)
	tx.inventory.On("SetStock", mock.Anything, id, int64(4)).Return(nil)
	tx.inventory.On("CreateAdjustment", mock.Anything, mock.MatchedBy(func(a model.InventoryAdjustment) bool {
		return a.Delta == -6 && a.Reason == "broken" && a.AdminUserID == actor.ID
	})).Return(nil)
	tx.audit.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionUpdateStock &&
			l.BeforeJSON == `{"stock":10}` &&
			l.AfterJSON == `{"stock":4}`
	})).Return(nil)

	out, err := uc.AdminUpdateInventory(context.Background(), actor, id, 4, " broken ")
	require.NoError(t, err)
	assert.Equal(t, int64(4), out.Stock)
	assert.True(t, out.InStock)
	tx.inventory.AssertExpectations(t)
	tx.audit.AssertExpectations(t)
}

func TestProductUsecase_AdminUpdateInventory_Validation(t *testing.T) {
	uc, tx := newProductUsecase(t)

	_, err := uc.AdminUpdateInventory(context.Background(), adminUser(), uuid.New(), -1, "x")
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = uc.AdminUpdateInventory(context.Background(), adminUser(), uuid.New(), 1, "  ")
	assert.ErrorIs(t, err, apperr.ErrValidation)
	assert.Equal(t, 0, tx.calls)
}
