//go:generate mockgen -source=contracts.go -destination=orders_mocks_test.go -package=orders_test

package orders

import (
	"context"

	"marketplace-dispatch/internal/domain"
)

// DeliveryPort abstracts the subset of dispatch operations
// needed by orders Processor when handling order events
type DeliveryPort interface {
	CreateForOrder(ctx context.Context, orderID int64) (*domain.Delivery, bool, error)
	CancelForOrder(ctx context.Context, orderID int64, reason string) (*domain.Delivery, error)
}
