package handlers

import (
	"context"

	"marketplace-dispatch/internal/domain"
	"marketplace-dispatch/internal/geo"
)

type dispatchUsecase interface {
	CreateForOrder(ctx context.Context, orderID int64) (*domain.Delivery, bool, error)
	CancelForOrder(ctx context.Context, orderID int64, reason string) (*domain.Delivery, error)
	Get(ctx context.Context, id int64) (*domain.Delivery, error)
	ListActive(ctx context.Context, f domain.ActiveFilter) ([]domain.Delivery, error)
	ListByOrder(ctx context.Context, orderID int64) ([]domain.Delivery, error)
	ListByPartner(ctx context.Context, partnerID int64) ([]domain.Delivery, error)
	ListPending(ctx context.Context, partnerID int64) ([]domain.PendingDelivery, error)
	Offer(ctx context.Context, deliveryID, partnerID int64) (*domain.Delivery, error)
	AcceptForOrder(ctx context.Context, orderID, partnerID int64) (*domain.Delivery, error)
	RejectForOrder(ctx context.Context, orderID, partnerID int64) error
	UpdateStatus(ctx context.Context, change domain.StatusChange, actor *int64) (*domain.Delivery, error)
	UpdateLocation(ctx context.Context, deliveryID, partnerID int64, lat, lon float64) error
}

type trackingUsecase interface {
	GetTrackingData(ctx context.Context, deliveryID int64) (*domain.TrackingSnapshot, error)
	GetOrderTracking(ctx context.Context, orderID int64) ([]domain.TrackingEvent, error)
}

type zoneUsecase interface {
	Quote(ctx context.Context, distance float64) (domain.FeeQuote, error)
	QuoteRoute(ctx context.Context, storeID int64, to geo.Point) (domain.FeeQuote, error)
	List(ctx context.Context) ([]domain.DeliveryZone, error)
	Get(ctx context.Context, id int64) (*domain.DeliveryZone, error)
	Create(ctx context.Context, z *domain.DeliveryZone) (int64, error)
	Update(ctx context.Context, z domain.DeliveryZone) error
	Delete(ctx context.Context, id int64) error
}

type partnerUsecase interface {
	Register(ctx context.Context, p *domain.DeliveryPartner) (int64, error)
	Get(ctx context.Context, id int64) (*domain.DeliveryPartner, error)
	List(ctx context.Context, status *domain.PartnerStatus) ([]domain.DeliveryPartner, error)
	Approve(ctx context.Context, id, adminID int64) (*domain.DeliveryPartner, error)
	Reject(ctx context.Context, id, adminID int64, reason string) (*domain.DeliveryPartner, error)
}

type storeUsecase interface {
	Nearby(ctx context.Context, lat, lon float64, storeType domain.StoreType) ([]domain.StoreDistance, error)
}

type notificationUsecase interface {
	MarkRead(ctx context.Context, id int64) error
	MarkAllRead(ctx context.Context, userID int64) (int64, error)
}

type maintenanceUsecase interface {
	ResetStoreData(ctx context.Context, storeID int64) (map[string]int64, error)
	ResetAllSystemData(ctx context.Context) (map[string]int64, error)
}
