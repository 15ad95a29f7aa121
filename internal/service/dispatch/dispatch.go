package dispatch

import (
	"context"
	"time"

	"marketplace-dispatch/internal/apperr"
	"marketplace-dispatch/internal/domain"
	"marketplace-dispatch/internal/logx"
	"marketplace-dispatch/internal/metrics"
)

// Service runs the delivery assignment workflow: creation from placed orders,
// partner visibility, exclusive claims and status progression.
type Service struct {
	repo             deliveryRepository
	orders           orderReader
	partners         partnerReader
	fees             feeQuoter
	rejections       RejectionStore
	operationTimeout time.Duration
	logger           logx.Logger
	metrics          *metrics.Dispatch
	now              func() time.Time
}

// NewService creates a dispatch Service. m may be nil.
func NewService(
	r deliveryRepository,
	orders orderReader,
	partners partnerReader,
	fees feeQuoter,
	rejections RejectionStore,
	timeout time.Duration,
	logger logx.Logger,
	m *metrics.Dispatch,
) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{
		repo:             r,
		orders:           orders,
		partners:         partners,
		fees:             fees,
		rejections:       rejections,
		operationTimeout: timeout,
		logger:           logger,
		metrics:          m,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// Get returns a delivery by id.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Delivery, error) {
	if id <= 0 {
		return nil, apperr.ErrInvalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	d, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, apperr.ErrNotFound
	}
	return d, nil
}

// ListActive returns deliveries in progress for a store or a partner. Storage
// failures yield an empty list.
func (s *Service) ListActive(ctx context.Context, f domain.ActiveFilter) ([]domain.Delivery, error) {
	if f.StoreID != nil && f.PartnerID != nil {
		return nil, apperr.ErrInvalid
	}
	if (f.StoreID != nil && *f.StoreID <= 0) || (f.PartnerID != nil && *f.PartnerID <= 0) {
		return nil, apperr.ErrInvalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	list, err := s.repo.ListActive(ctx, f)
	if err != nil {
		s.degrade("list_active", err)
		return []domain.Delivery{}, nil
	}
	return list, nil
}

// ListByOrder returns every delivery created for an order.
func (s *Service) ListByOrder(ctx context.Context, orderID int64) ([]domain.Delivery, error) {
	if orderID <= 0 {
		return nil, apperr.ErrInvalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	list, err := s.repo.ListByOrder(ctx, orderID)
	if err != nil {
		s.degrade("list_by_order", err)
		return []domain.Delivery{}, nil
	}
	return list, nil
}

// ListByPartner returns the delivery history of a partner.
func (s *Service) ListByPartner(ctx context.Context, partnerID int64) ([]domain.Delivery, error) {
	if partnerID <= 0 {
		return nil, apperr.ErrInvalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	list, err := s.repo.ListByPartner(ctx, partnerID)
	if err != nil {
		s.degrade("list_by_partner", err)
		return []domain.Delivery{}, nil
	}
	return list, nil
}

// approvedPartner loads a partner and checks it may take deliveries.
func (s *Service) approvedPartner(ctx context.Context, partnerID int64) (*domain.DeliveryPartner, error) {
	p, err := s.partners.Get(ctx, partnerID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.ErrNotFound
	}
	if p.Status != domain.PartnerApproved {
		return nil, apperr.ErrForbidden
	}
	return p, nil
}

func (s *Service) degrade(op string, err error) {
	s.logger.Warn("read degraded to empty result",
		logx.String("op", op),
		logx.Err(err),
	)
	if s.metrics != nil {
		s.metrics.ReadDegraded.WithLabelValues(op).Inc()
	}
}

func (s *Service) countClaim(result string) {
	if s.metrics != nil {
		s.metrics.Claims.WithLabelValues(result).Inc()
	}
}

func defaultDescription(st domain.DeliveryStatus) string {
	switch st {
	case domain.DeliveryPending:
		return "Order placed, waiting for a delivery partner"
	case domain.DeliveryAssigned:
		return "Delivery partner assigned"
	case domain.DeliveryPickedUp:
		return "Order picked up from the store"
	case domain.DeliveryInTransit:
		return "Order is on the way"
	case domain.DeliveryDelivered:
		return "Order delivered"
	case domain.DeliveryCancelled:
		return "Delivery cancelled"
	default:
		return string(st)
	}
}
