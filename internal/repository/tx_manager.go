package repository

import "context"

// TxRepos are repositories bound to one transaction.
type TxRepos interface {
	Users() UserRepository
	Products() ProductRepository
	Categories() CategoryRepository
	Inventory() InventoryRepository
	AuditLogs() AuditLogRepository
}

// TransactionManager hides begin/commit/rollback from usecases.
// fn returning an error rolls everything back.
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
