package handlers

import (
	"time"

	"github.com/shopspring/decimal"
)

type deliveryDTO struct {
	ID                int64      `json:"id"`
	OrderID           int64      `json:"order_id"`
	StoreID           int64      `json:"store_id"`
	PartnerID         *int64     `json:"delivery_partner_id"`
	Status            string     `json:"status"`
	PickupAddress     string     `json:"pickup_address"`
	DeliveryAddress   string     `json:"delivery_address"`
	EstimatedDistance float64    `json:"estimated_distance"`
	DeliveryFee       string     `json:"delivery_fee"`
	CurrentLatitude   *float64   `json:"current_latitude"`
	CurrentLongitude  *float64   `json:"current_longitude"`
	AssignedAt        *time.Time `json:"assigned_at,omitempty"`
	DeliveredAt       *time.Time `json:"delivered_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

type createDeliveryResponse struct {
	Delivery deliveryDTO `json:"delivery"`
	Created  bool        `json:"created"`
}

// pendingDTO is the wire shape polled by partners.
type pendingDTO struct {
	ID               int64     `json:"id"`
	DeliveryID       int64     `json:"delivery_id"`
	OrderID          int64     `json:"order_id"`
	PartnerID        *int64    `json:"delivery_partner_id"`
	Status           string    `json:"status"`
	NotificationData string    `json:"notification_data"`
	CreatedAt        time.Time `json:"created_at"`
	CustomerName     string    `json:"customer_name"`
	TotalAmount      string    `json:"total_amount"`
	ShippingAddress  string    `json:"shipping_address"`
	StoreName        string    `json:"store_name"`
}

type partnerDecisionRequest struct {
	DeliveryPartnerID int64 `json:"deliveryPartnerId" validate:"required,gt=0"`
}

type cancelRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

type locationRequest struct {
	PartnerID int64    `json:"partner_id" validate:"required,gt=0"`
	Latitude  *float64 `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" validate:"required,gte=-180,lte=180"`
}

type statusRequest struct {
	Status      string `json:"status" validate:"required"`
	Description string `json:"description" validate:"max=500"`
}

type trackingEventDTO struct {
	ID          int64     `json:"id"`
	OrderID     int64     `json:"order_id"`
	DeliveryID  int64     `json:"delivery_id"`
	Status      string    `json:"status"`
	Description string    `json:"description"`
	Latitude    *float64  `json:"latitude"`
	Longitude   *float64  `json:"longitude"`
	CreatedAt   time.Time `json:"created_at"`
}

type trackingSnapshotDTO struct {
	Delivery deliveryDTO `json:"delivery"`
	Partner  *partnerDTO `json:"partner"`
}

type zoneDTO struct {
	ID          int64     `json:"id"`
	MinDistance float64   `json:"min_distance"`
	MaxDistance float64   `json:"max_distance"`
	DeliveryFee string    `json:"delivery_fee"`
	CreatedAt   time.Time `json:"created_at"`
}

type zoneRequest struct {
	MinDistance *float64        `json:"min_distance" validate:"required,gte=0"`
	MaxDistance *float64        `json:"max_distance" validate:"required,gte=0"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
}

type quoteDTO struct {
	Distance    float64  `json:"distance"`
	DeliveryFee string   `json:"delivery_fee"`
	Zone        *zoneDTO `json:"zone"`
}

type storeDistanceDTO struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Phone     string  `json:"phone"`
	Address   string  `json:"address"`
	StoreType string  `json:"store_type"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Distance  float64 `json:"distance"`
}

type partnerDTO struct {
	ID              int64      `json:"id"`
	UserID          int64      `json:"user_id"`
	Name            string     `json:"name"`
	Phone           string     `json:"phone"`
	VehicleType     string     `json:"vehicle_type"`
	Status          string     `json:"status"`
	ApprovedBy      *int64     `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

type registerPartnerRequest struct {
	UserID      int64  `json:"user_id" validate:"required,gt=0"`
	Name        string `json:"name" validate:"required,max=255"`
	Phone       string `json:"phone" validate:"required"`
	VehicleType string `json:"vehicle_type" validate:"required,max=50"`
}

type approvePartnerRequest struct {
	AdminID int64 `json:"admin_id" validate:"required,gt=0"`
}

type rejectPartnerRequest struct {
	AdminID int64  `json:"admin_id" validate:"required,gt=0"`
	Reason  string `json:"reason" validate:"required,max=500"`
}

type idResponse struct {
	ID int64 `json:"id"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type markAllReadResponse struct {
	Updated int64 `json:"updated"`
}

type resetResponse struct {
	Deleted map[string]int64 `json:"deleted"`
}
