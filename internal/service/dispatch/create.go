package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"marketplace-dispatch/internal/apperr"
	"marketplace-dispatch/internal/domain"
	"marketplace-dispatch/internal/geo"
	"marketplace-dispatch/internal/logx"
	"marketplace-dispatch/internal/ports/dispatchtx"
)

// CreateForOrder creates the pending delivery of a placed order together with the
// broadcast notification partners are polled for. It is idempotent: if the order
// already has a live delivery that one is returned and created is false.
func (s *Service) CreateForOrder(ctx context.Context, orderID int64) (d *domain.Delivery, created bool, err error) {
	if orderID <= 0 {
		return nil, false, apperr.ErrInvalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	existing, err := s.repo.GetLiveByOrder(ctx, orderID)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	info, err := s.orders.GetDispatchInfo(ctx, orderID)
	if err != nil {
		return nil, false, err
	}
	if info == nil {
		return nil, false, apperr.ErrNotFound
	}
	if isClosedOrder(info.Status) {
		return nil, false, fmt.Errorf("order %d is %s: %w", orderID, info.Status, apperr.ErrConflict)
	}

	distance := 0.0
	if info.Latitude != nil && info.Longitude != nil {
		distance = geo.Round2(geo.Distance(
			geo.Point{Lat: info.Store.Latitude, Lon: info.Store.Longitude},
			geo.Point{Lat: *info.Latitude, Lon: *info.Longitude},
		))
	} else {
		s.logger.Warn("order has no delivery coordinates, quoting zero distance",
			logx.Int64("order_id", orderID),
		)
	}

	quote, err := s.fees.Quote(ctx, distance)
	if err != nil {
		return nil, false, err
	}

	payload, err := domain.EncodeNotificationData(notificationData(info, distance, quote))
	if err != nil {
		return nil, false, err
	}

	d = &domain.Delivery{
		OrderID:           orderID,
		StoreID:           info.Store.ID,
		Status:            domain.DeliveryPending,
		PickupAddress:     info.Store.Address,
		DeliveryAddress:   info.ShippingAddress,
		EstimatedDistance: distance,
		DeliveryFee:       quote.Fee,
	}
	now := s.now()

	err = s.repo.WithTx(ctx, func(tx dispatchtx.Repository) error {
		if err := tx.InsertDelivery(ctx, d); err != nil {
			return err
		}
		if err := tx.InsertNotification(ctx, &domain.Notification{
			DeliveryID: &d.ID,
			Type:       domain.NotificationTypeDelivery,
			Payload:    payload,
		}); err != nil {
			return err
		}
		return tx.AppendTrackingEvent(ctx, &domain.TrackingEvent{
			OrderID:     orderID,
			DeliveryID:  d.ID,
			Status:      domain.DeliveryPending,
			Description: defaultDescription(domain.DeliveryPending),
			CreatedAt:   now,
		})
	})
	if errors.Is(err, apperr.ErrConflict) {
		// Another creator won the unique live-order index.
		existing, getErr := s.repo.GetLiveByOrder(ctx, orderID)
		if getErr != nil {
			return nil, false, getErr
		}
		if existing != nil {
			return existing, false, nil
		}
		return nil, false, err
	}
	if err != nil {
		return nil, false, err
	}

	if s.metrics != nil {
		s.metrics.Created.Inc()
	}
	s.logger.Info("delivery created",
		logx.String("event", "delivery_created"),
		logx.Int64("delivery_id", d.ID),
		logx.Int64("order_id", orderID),
		logx.Int64("store_id", d.StoreID),
		logx.Float64("distance_km", distance),
		logx.String("fee", d.DeliveryFee.StringFixed(2)),
	)
	return d, true, nil
}

func isClosedOrder(status string) bool {
	switch strings.ToLower(status) {
	case "cancelled", "canceled", "delivered", "refunded":
		return true
	default:
		return false
	}
}

func notificationData(info *domain.OrderDispatchInfo, distance float64, quote domain.FeeQuote) domain.NotificationData {
	fee := quote.Fee.InexactFloat64()
	data := domain.NotificationData{
		OrderID:           info.OrderID,
		CustomerName:      info.CustomerName,
		CustomerPhone:     info.CustomerPhone,
		TotalAmount:       info.TotalAmount.StringFixed(2),
		PickupAddress:     info.Store.Address,
		DeliveryAddress:   info.ShippingAddress,
		EstimatedDistance: distance,
		EstimatedEarnings: fee,
		PickupGoogleMapsLink: geo.MapsLink(geo.Point{
			Lat: info.Store.Latitude,
			Lon: info.Store.Longitude,
		}),
		DeliveryFee: &fee,
		StoreDetails: &domain.StoreDetails{
			Name:  info.Store.Name,
			Phone: info.Store.Phone,
		},
	}
	if info.Latitude != nil && info.Longitude != nil {
		data.Latitude = geo.FormatCoord(*info.Latitude)
		data.Longitude = geo.FormatCoord(*info.Longitude)
		data.DeliveryGoogleMapsLink = geo.MapsLink(geo.Point{Lat: *info.Latitude, Lon: *info.Longitude})
	}
	return data
}
