package inventory

import (
	"context"

	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

// TxRunner runs fn inside one database transaction with repositories bound to it.
// Returning an error from fn rolls everything back.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		operationRepo repository.OperationRepository,
		movementRepo repository.StockMovementRepository,
	) error) error
}
