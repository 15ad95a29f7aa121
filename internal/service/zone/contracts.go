package zone

import (
	"context"

	"marketplace-dispatch/internal/domain"
)

// zoneRepository defines storage operations on delivery zones.
type zoneRepository interface {
	List(ctx context.Context) ([]domain.DeliveryZone, error)
	Get(ctx context.Context, id int64) (*domain.DeliveryZone, error)
	Create(ctx context.Context, z *domain.DeliveryZone) (int64, error)
	Update(ctx context.Context, z domain.DeliveryZone) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// storeReader resolves pickup locations.
type storeReader interface {
	Get(ctx context.Context, id int64) (*domain.Store, error)
}
