package purchasing

import (
	"context"

	"github.com/maxsonaraujo/pdc-api/internal/domain/repository"
)

// ReceivingRepos repositorios atados a la transacción de recepción.
type ReceivingRepos struct {
	Purchases   repository.PurchaseRepository
	Supplies    repository.SupplyRepository
	Movements   repository.StockMovementRepository
	Idempotency repository.IdempotencyRepository
}

// TxRunner ejecuta una recepción completa de forma atómica.
type TxRunner interface {
	RunReceiving(ctx context.Context, fn func(repos ReceivingRepos) error) error
}
