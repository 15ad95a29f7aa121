package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DeliveryStatus represents the lifecycle state of a delivery.
type DeliveryStatus string

// Delivery is the fulfillment record tracking transport of one order from store to customer.
// PartnerID is set while a partner holds the delivery; on a pending delivery it marks a
// direct offer to that partner.
type Delivery struct {
	ID                int64
	OrderID           int64
	StoreID           int64
	PartnerID         *int64
	Status            DeliveryStatus
	PickupAddress     string
	DeliveryAddress   string
	EstimatedDistance float64
	DeliveryFee       decimal.Decimal
	CurrentLatitude   *float64
	CurrentLongitude  *float64
	AssignedAt        *time.Time
	DeliveredAt       *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// HeldBy reports whether the delivery is currently held by the given partner.
func (d *Delivery) HeldBy(partnerID int64) bool {
	return d.PartnerID != nil && *d.PartnerID == partnerID && d.Status.Held()
}

// ActiveFilter selects active deliveries either for a store or for a partner.
// At most one of the fields may be set; neither selects every active delivery.
type ActiveFilter struct {
	StoreID   *int64
	PartnerID *int64
}

// StatusChange describes a requested status transition.
type StatusChange struct {
	DeliveryID  int64
	To          DeliveryStatus
	Description string
}
