package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/storefront/backend/internal/domain/model"
	"github.com/storefront/backend/internal/infra/idgen"
	repo "github.com/storefront/backend/internal/repository"
	"github.com/storefront/backend/internal/usecase"
	auth "github.com/storefront/backend/internal/usecase/auth_usecase"
)

// =====================
// Mocks
// =====================

type UserRepoMock struct{ mock.Mock }

var _ repo.UserRepository = (*UserRepoMock)(nil)

func (m *UserRepoMock) Create(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *UserRepoMock) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) Update(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *UserRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *UserRepoMock) List(ctx context.Context, q repo.UserListQuery) ([]model.User, int64, error) {
	args := m.Called(ctx, q)
	users, _ := args.Get(0).([]model.User)
	return users, args.Get(1).(int64), args.Error(2)
}

type ProductRepoMock struct{ mock.Mock }

var _ repo.ProductRepository = (*ProductRepoMock)(nil)

func (m *ProductRepoMock) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, id uuid.UUID) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) FindByName(ctx context.Context, name string) (model.Product, error) {
	args := m.Called(ctx, name)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	args := m.Called(ctx, categoryID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.Product)
	return created, args.Error(1)
}

func (m *ProductRepoMock) Update(ctx context.Context, p model.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *ProductRepoMock) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type CategoryRepoMock struct{ mock.Mock }

var _ repo.CategoryRepository = (*CategoryRepoMock)(nil)

func (m *CategoryRepoMock) List(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	cs, _ := args.Get(0).([]model.Category)
	return cs, args.Error(1)
}

func (m *CategoryRepoMock) FindByID(ctx context.Context, id uuid.UUID) (model.Category, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(model.Category)
	return c, args.Error(1)
}

func (m *CategoryRepoMock) FindByName(ctx context.Context, name string) (model.Category, error) {
	args := m.Called(ctx, name)
	c, _ := args.Get(0).(model.Category)
	return c, args.Error(1)
}

func (m *CategoryRepoMock) Create(ctx context.Context, c model.Category) (model.Category, error) {
	args := m.Called(ctx, c)
	created, _ := args.Get(0).(model.Category)
	return created, args.Error(1)
}

func (m *CategoryRepoMock) Update(ctx context.Context, c model.Category) error {
	return m.Called(ctx, c).Error(0)
}

func (m *CategoryRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type InventoryRepoMock struct{ mock.Mock }

var _ repo.InventoryRepository = (*InventoryRepoMock)(nil)

func (m *InventoryRepoMock) SetStock(ctx context.Context, productID uuid.UUID, newStock int64) error {
	return m.Called(ctx, productID, newStock).Error(0)
}

func (m *InventoryRepoMock) CreateAdjustment(ctx context.Context, adj model.InventoryAdjustment) error {
	return m.Called(ctx, adj).Error(0)
}

func (m *InventoryRepoMock) ListAdjustments(ctx context.Context, productID uuid.UUID, limit int) ([]model.InventoryAdjustment, error) {
	args := m.Called(ctx, productID, limit)
	adjs, _ := args.Get(0).([]model.InventoryAdjustment)
	return adjs, args.Error(1)
}

type AuditRepoMock struct{ mock.Mock }

var _ repo.AuditLogRepository = (*AuditRepoMock)(nil)

func (m *AuditRepoMock) Create(ctx context.Context, log model.AuditLog) error {
	return m.Called(ctx, log).Error(0)
}

func (m *AuditRepoMock) List(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	args := m.Called(ctx, filter)
	logs, _ := args.Get(0).([]model.AuditLog)
	return logs, args.Error(1)
}

// =====================
// Transaction fake
// =====================

// txFake runs fn directly against the mocks. It does not roll anything back.
type txFake struct {
	users      *UserRepoMock
	products   *ProductRepoMock
	categories *CategoryRepoMock
	inventory  *InventoryRepoMock
	audit      *AuditRepoMock
	calls      int
}

func newTxFake() *txFake {
	return &txFake{
		users:      new(UserRepoMock),
		products:   new(ProductRepoMock),
		categories: new(CategoryRepoMock),
		inventory:  new(InventoryRepoMock),
		audit:      new(AuditRepoMock),
	}
}

func (f *txFake) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	f.calls++
	return fn(f)
}

func (f *txFake) Users() repo.UserRepository          { return f.users }
func (f *txFake) Products() repo.ProductRepository    { return f.products }
func (f *txFake) Categories() repo.CategoryRepository { return f.categories }
func (f *txFake) Inventory() repo.InventoryRepository { return f.inventory }
func (f *txFake) AuditLogs() repo.AuditLogRepository  { return f.audit }

// =====================
// helpers
// =====================

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type seqIDs struct{ next []uuid.UUID }

func (s *seqIDs) NewID() uuid.UUID {
	id := s.next[0]
	s.next = s.next[1:]
	return id
}

func newRecorder(t *testing.T) *usecase.AuditRecorder {
	t.Helper()
	sf, err := idgen.NewSnowflake(1)
	require.NoError(t, err)
	return usecase.NewAuditRecorder(sf, fixedClock{t: testNow})
}

// RequireRole does not touch the codec or the repository.
func newRoleChecker() usecase.RoleChecker {
	return auth.NewAccessGuard(nil, nil)
}

func adminUser() *model.User {
	return &model.User{ID: uuid.New(), Email: "root@example.com", Name: "Root", Role: model.RoleAdmin, IsActive: true}
}

func clientUser() *model.User {
	return &model.User{ID: uuid.New(), Email: "alice@example.com", Name: "Alice", Role: model.RoleClient, IsActive: true}
}

func ptr[T any](v T) *T { return &v }
