//go:generate mockgen -source=contracts.go -destination=dispatch_mocks_test.go -package=dispatch_test

package dispatch

import (
	"context"

	"marketplace-dispatch/internal/domain"
	"marketplace-dispatch/internal/ports/dispatchtx"
)

type deliveryRepository interface {
	WithTx(ctx context.Context, fn func(tx dispatchtx.Repository) error) error
	Get(ctx context.Context, id int64) (*domain.Delivery, error)
	GetLiveByOrder(ctx context.Context, orderID int64) (*domain.Delivery, error)
	ListByOrder(ctx context.Context, orderID int64) ([]domain.Delivery, error)
	ListByPartner(ctx context.Context, partnerID int64) ([]domain.Delivery, error)
	ListPending(ctx context.Context, partnerID int64) ([]domain.PendingDelivery, error)
	ListActive(ctx context.Context, f domain.ActiveFilter) ([]domain.Delivery, error)
	Offer(ctx context.Context, deliveryID, partnerID int64) (*domain.Delivery, error)
	UpdateLocation(ctx context.Context, deliveryID, partnerID int64, lat, lon float64) (bool, error)
}

type orderReader interface {
	GetDispatchInfo(ctx context.Context, orderID int64) (*domain.OrderDispatchInfo, error)
}

type partnerReader interface {
	Get(ctx context.Context, id int64) (*domain.DeliveryPartner, error)
}

type feeQuoter interface {
	Quote(ctx context.Context, distance float64) (domain.FeeQuote, error)
}

// RejectionStore remembers which pending deliveries a partner turned down so they
// are hidden from that partner's list.
type RejectionStore interface {
	Add(ctx context.Context, partnerID, deliveryID int64) error
	Rejected(ctx context.Context, partnerID int64) (map[int64]struct{}, error)
}
