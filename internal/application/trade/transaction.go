package trade

import (
	"context"

	"github.com/stockflow/backend/internal/domain/trade"
)

// TransactionalRepositories provides access to trade repositories bound
// to a single transaction
type TransactionalRepositories interface {
	OrderRepo() trade.OrderRepository
	ShipmentRepo() trade.ShipmentRepository
}

// TransactionScope executes a function atomically. All repository
// operations inside fn either commit together or roll back together.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}
