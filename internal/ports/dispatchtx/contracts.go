package dispatchtx

import (
	"context"
	"time"

	"marketplace-dispatch/internal/domain"
)

// Repository is the set of delivery writes that run inside one transaction.
type Repository interface {
	InsertDelivery(ctx context.Context, d *domain.Delivery) error
	InsertNotification(ctx context.Context, n *domain.Notification) error
	AppendTrackingEvent(ctx context.Context, e *domain.TrackingEvent) error
	Claim(ctx context.Context, deliveryID, partnerID int64, at time.Time) (*domain.Delivery, error)
	TransitionStatus(
		ctx context.Context,
		deliveryID int64,
		to domain.DeliveryStatus,
		from []domain.DeliveryStatus,
		actor *int64,
		at time.Time,
	) (*domain.Delivery, error)
	GetDelivery(ctx context.Context, id int64) (*domain.Delivery, error)
}

// Runner is a transaction runner
type Runner interface {
	WithTx(ctx context.Context, fn func(tx Repository) error) error
}
