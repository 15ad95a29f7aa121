package dispatch

import (
	"context"
	"fmt"
	"math"
	"strings"

	"marketplace-dispatch/internal/apperr"
	"marketplace-dispatch/internal/domain"
	"marketplace-dispatch/internal/logx"
	"marketplace-dispatch/internal/ports/dispatchtx"
)

// UpdateStatus advances a delivery. Assignment only happens through Accept, so
// pending and assigned are not valid targets here. When actor is set the delivery
// must be held by that partner.
func (s *Service) UpdateStatus(ctx context.Context, change domain.StatusChange, actor *int64) (*domain.Delivery, error) {
	if change.DeliveryID <= 0 || !change.To.Valid() {
		return nil, apperr.ErrInvalid
	}
	if change.To == domain.DeliveryPending || change.To == domain.DeliveryAssigned {
		return nil, fmt.Errorf("status %s is set by claiming: %w", change.To, apperr.ErrInvalid)
	}
	if actor != nil && *actor <= 0 {
		return nil, apperr.ErrInvalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	from := domain.Predecessors(change.To)
	description := strings.TrimSpace(change.Description)
	if description == "" {
		description = defaultDescription(change.To)
	}

	now := s.now()
	var updated *domain.Delivery
	err := s.repo.WithTx(ctx, func(tx dispatchtx.Repository) error {
		d, err := tx.TransitionStatus(ctx, change.DeliveryID, change.To, from, actor, now)
		if err != nil {
			return err
		}
		if d == nil {
			cur, err := tx.GetDelivery(ctx, change.DeliveryID)
			if err != nil {
				return err
			}
			if cur == nil {
				return apperr.ErrNotFound
			}
			if actor != nil && !assignedTo(cur, *actor) {
				return apperr.ErrForbidden
			}
			return fmt.Errorf("delivery %d cannot move from %s to %s: %w",
				cur.ID, cur.Status, change.To, apperr.ErrConflict)
		}
		updated = d
		return tx.AppendTrackingEvent(ctx, &domain.TrackingEvent{
			OrderID:     d.OrderID,
			DeliveryID:  d.ID,
			Status:      change.To,
			Description: description,
			Latitude:    d.CurrentLatitude,
			Longitude:   d.CurrentLongitude,
			CreatedAt:   now,
		})
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.Transitions.WithLabelValues(string(change.To)).Inc()
	}
	s.logger.Info("delivery status changed",
		logx.String("event", "delivery_status_changed"),
		logx.Int64("delivery_id", updated.ID),
		logx.Int64("order_id", updated.OrderID),
		logx.String("status", string(change.To)),
	)
	return updated, nil
}

// CancelForOrder cancels the live delivery of an order.
func (s *Service) CancelForOrder(ctx context.Context, orderID int64, reason string) (*domain.Delivery, error) {
	d, err := s.liveByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return s.UpdateStatus(ctx, domain.StatusChange{
		DeliveryID:  d.ID,
		To:          domain.DeliveryCancelled,
		Description: reason,
	}, nil)
}

// UpdateLocation records the position reported by the partner holding a delivery.
func (s *Service) UpdateLocation(ctx context.Context, deliveryID, partnerID int64, lat, lon float64) error {
	if deliveryID <= 0 || partnerID <= 0 || !validCoord(lat, 90) || !validCoord(lon, 180) {
		return apperr.ErrInvalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	ok, err := s.repo.UpdateLocation(ctx, deliveryID, partnerID, lat, lon)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}

	d, err := s.repo.Get(ctx, deliveryID)
	if err != nil {
		return err
	}
	switch {
	case d == nil:
		return apperr.ErrNotFound
	case !assignedTo(d, partnerID):
		return apperr.ErrForbidden
	default:
		return fmt.Errorf("delivery %d is %s: %w", deliveryID, d.Status, apperr.ErrConflict)
	}
}

func validCoord(v, limit float64) bool {
	return !math.IsNaN(v) && v >= -limit && v <= limit
}

func assignedTo(d *domain.Delivery, partnerID int64) bool {
	return d.PartnerID != nil && *d.PartnerID == partnerID
}
