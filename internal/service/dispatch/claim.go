package dispatch

import (
	"context"
	"errors"
	"fmt"

	"marketplace-dispatch/internal/apperr"
	"marketplace-dispatch/internal/domain"
	"marketplace-dispatch/internal/logx"
	"marketplace-dispatch/internal/metrics"
	"marketplace-dispatch/internal/ports/dispatchtx"
)

// ListPending returns the pending deliveries visible to a partner: unassigned ones
// plus those offered to it, minus the ones it already rejected. Entries whose
// payload cannot be decoded are skipped.
func (s *Service) ListPending(ctx context.Context, partnerID int64) ([]domain.PendingDelivery, error) {
	if partnerID <= 0 {
		return nil, apperr.ErrInvalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if _, err := s.approvedPartner(ctx, partnerID); err != nil {
		if errors.Is(err, apperr.ErrNotFound) || errors.Is(err, apperr.ErrForbidden) {
			return nil, err
		}
		s.degrade("list_pending", err)
		return []domain.PendingDelivery{}, nil
	}

	list, err := s.repo.ListPending(ctx, partnerID)
	if err != nil {
		s.degrade("list_pending", err)
		return []domain.PendingDelivery{}, nil
	}

	rejected, err := s.rejections.Rejected(ctx, partnerID)
	if err != nil {
		s.logger.Warn("rejection store unavailable, listing without suppression",
			logx.Int64("partner_id", partnerID),
			logx.Err(err),
		)
		rejected = nil
	}

	out := make([]domain.PendingDelivery, 0, len(list))
	for _, p := range list {
		if _, ok := rejected[p.DeliveryID]; ok {
			continue
		}
		data, err := domain.DecodeNotificationData(p.Payload)
		if err != nil {
			s.logger.Warn("skipping notification with malformed payload",
				logx.Int64("notification_id", p.NotificationID),
				logx.Int64("delivery_id", p.DeliveryID),
				logx.Err(err),
			)
			continue
		}
		p.Data = data
		out = append(out, p)
	}
	return out, nil
}

// Offer directs a pending delivery at one approved partner. Other partners stop
// seeing it until it is cancelled or reoffered.
func (s *Service) Offer(ctx context.Context, deliveryID, partnerID int64) (*domain.Delivery, error) {
	if deliveryID <= 0 || partnerID <= 0 {
		return nil, apperr.ErrInvalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if _, err := s.approvedPartner(ctx, partnerID); err != nil {
		return nil, err
	}

	d, err := s.repo.Offer(ctx, deliveryID, partnerID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		cur, err := s.repo.Get(ctx, deliveryID)
		if err != nil {
			return nil, err
		}
		if cur == nil {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("delivery %d is %s: %w", deliveryID, cur.Status, apperr.ErrConflict)
	}

	s.logger.Info("delivery offered",
		logx.Int64("delivery_id", deliveryID),
		logx.Int64("partner_id", partnerID),
	)
	return d, nil
}

// Accept claims a pending delivery for a partner. Exactly one of any number of
// concurrent callers succeeds; the others get apperr.ErrConflict.
func (s *Service) Accept(ctx context.Context, deliveryID, partnerID int64) (*domain.Delivery, error) {
	if deliveryID <= 0 || partnerID <= 0 {
		return nil, apperr.ErrInvalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	partner, err := s.approvedPartner(ctx, partnerID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var claimed *domain.Delivery
	err = s.repo.WithTx(ctx, func(tx dispatchtx.Repository) error {
		d, err := tx.Claim(ctx, deliveryID, partnerID, now)
		if err != nil {
			return err
		}
		if d == nil {
			cur, err := tx.GetDelivery(ctx, deliveryID)
			if err != nil {
				return err
			}
			if cur == nil {
				return apperr.ErrNotFound
			}
			return apperr.ErrConflict
		}
		claimed = d
		return tx.AppendTrackingEvent(ctx, &domain.TrackingEvent{
			OrderID:     d.OrderID,
			DeliveryID:  d.ID,
			Status:      domain.DeliveryAssigned,
			Description: fmt.Sprintf("Delivery partner %s accepted the order", partner.Name),
			CreatedAt:   now,
		})
	})
	switch {
	case errors.Is(err, apperr.ErrConflict):
		s.countClaim(metrics.ClaimConflict)
		s.logger.Info("delivery claim lost",
			logx.String("event", "delivery_claim_conflict"),
			logx.Int64("delivery_id", deliveryID),
			logx.Int64("partner_id", partnerID),
		)
		return nil, err
	case errors.Is(err, apperr.ErrNotFound):
		return nil, err
	case err != nil:
		s.countClaim(metrics.ClaimError)
		return nil, err
	}

	s.countClaim(metrics.ClaimAccepted)
	s.logger.Info("delivery accepted",
		logx.String("event", "delivery_claimed"),
		logx.Int64("delivery_id", claimed.ID),
		logx.Int64("order_id", claimed.OrderID),
		logx.Int64("partner_id", partnerID),
	)
	return claimed, nil
}

// AcceptForOrder claims the live delivery of an order.
func (s *Service) AcceptForOrder(ctx context.Context, orderID, partnerID int64) (*domain.Delivery, error) {
	d, err := s.liveByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return s.Accept(ctx, d.ID, partnerID)
}

// Reject hides a delivery from one partner. It never changes the delivery itself,
// so every other partner can still claim it.
func (s *Service) Reject(ctx context.Context, deliveryID, partnerID int64) error {
	if deliveryID <= 0 || partnerID <= 0 {
		return apperr.ErrInvalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	p, err := s.partners.Get(ctx, partnerID)
	if err != nil {
		return err
	}
	if p == nil {
		return apperr.ErrNotFound
	}
	d, err := s.repo.Get(ctx, deliveryID)
	if err != nil {
		return err
	}
	if d == nil {
		return apperr.ErrNotFound
	}

	if err := s.rejections.Add(ctx, partnerID, deliveryID); err != nil {
		return fmt.Errorf("remember rejection of delivery %d: %w", deliveryID, err)
	}
	if s.metrics != nil {
		s.metrics.Rejections.Inc()
	}
	s.logger.Info("delivery rejected by partner",
		logx.String("event", "delivery_rejected"),
		logx.Int64("delivery_id", deliveryID),
		logx.Int64("order_id", d.OrderID),
		logx.Int64("partner_id", partnerID),
	)
	return nil
}

// RejectForOrder rejects the live delivery of an order.
func (s *Service) RejectForOrder(ctx context.Context, orderID, partnerID int64) error {
	d, err := s.liveByOrder(ctx, orderID)
	if err != nil {
		return err
	}
	return s.Reject(ctx, d.ID, partnerID)
}

func (s *Service) liveByOrder(ctx context.Context, orderID int64) (*domain.Delivery, error) {
	if orderID <= 0 {
		return nil, apperr.ErrInvalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	d, err := s.repo.GetLiveByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, apperr.ErrNotFound
	}
	return d, nil
}
