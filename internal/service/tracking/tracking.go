package tracking

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"marketplace-dispatch/internal/apperr"
	"marketplace-dispatch/internal/domain"
	"marketplace-dispatch/internal/logx"
)

type trackingRepository interface {
	Snapshot(ctx context.Context, deliveryID int64) (*domain.TrackingSnapshot, error)
	ListByOrder(ctx context.Context, orderID int64) ([]domain.TrackingEvent, error)
}

// Service answers tracking queries for customers and stores.
type Service struct {
	repo             trackingRepository
	operationTimeout time.Duration
	logger           logx.Logger
	degraded         *prometheus.CounterVec
}

// NewService creates a tracking Service. degraded may be nil.
func NewService(r trackingRepository, timeout time.Duration, logger logx.Logger, degraded *prometheus.CounterVec) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{repo: r, operationTimeout: timeout, logger: logger, degraded: degraded}
}

// GetTrackingData returns the current state of a delivery with its partner.
func (s *Service) GetTrackingData(ctx context.Context, deliveryID int64) (*domain.TrackingSnapshot, error) {
	if deliveryID <= 0 {
		return nil, apperr.ErrInvalid
	}
	ctx, cancel := context.WithTimeout(ctx, s.operationTimeout)
	defer cancel()

	snap, err := s.repo.Snapshot(ctx, deliveryID)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, apperr.ErrNotFound
	}
	return snap, nil
}

// GetOrderTracking returns the event history of an order, newest first. Storage
// failures yield an empty history.
func (s *Service) GetOrderTracking(ctx context.Context, orderID int64) ([]domain.TrackingEvent, error) {
	if orderID <= 0 {
		return nil, apperr.ErrInvalid
	}
	ctx, cancel := context.WithTimeout(ctx, s.operationTimeout)
	defer cancel()

	events, err := s.repo.ListByOrder(ctx, orderID)
	if err != nil {
		s.logger.Warn("read degraded to empty result",
			logx.String("op", "order_tracking"),
			logx.Int64("order_id", orderID),
			logx.Err(err),
		)
		if s.degraded != nil {
			s.degraded.WithLabelValues("order_tracking").Inc()
		}
		return []domain.TrackingEvent{}, nil
	}
	return events, nil
}
