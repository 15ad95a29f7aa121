package partner

import (
	"context"

	"marketplace-dispatch/internal/domain"
)

// partnerRepository defines storage operations on delivery partners.
type partnerRepository interface {
	Get(ctx context.Context, id int64) (*domain.DeliveryPartner, error)
	List(ctx context.Context, status *domain.PartnerStatus) ([]domain.DeliveryPartner, error)
	Create(ctx context.Context, p *domain.DeliveryPartner) (int64, error)
	Decide(ctx context.Context, d domain.PartnerDecision) (*domain.DeliveryPartner, error)
}
