package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// NotificationTypeDelivery marks notifications announcing a new delivery.
const NotificationTypeDelivery = "delivery"

// ErrMalformedPayload is returned when a stored notification payload cannot be used.
var ErrMalformedPayload = errors.New("malformed notification payload")

// Notification is a stored notification. A nil UserID means broadcast.
type Notification struct {
	ID         int64
	UserID     *int64
	DeliveryID *int64
	Type       string
	Payload    string
	IsRead     bool
	CreatedAt  time.Time
}

// StoreDetails is the pickup store as shown to partners.
type StoreDetails struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

// NotificationData is the delivery snapshot embedded into a notification payload.
// Coordinates and the total are strings on the wire.
type NotificationData struct {
	OrderID                int64         `json:"orderId"`
	CustomerName           string        `json:"customerName"`
	CustomerPhone          string        `json:"customerPhone"`
	TotalAmount            string        `json:"totalAmount"`
	PickupAddress          string        `json:"pickupAddress"`
	DeliveryAddress        string        `json:"deliveryAddress"`
	EstimatedDistance      float64       `json:"estimatedDistance"`
	EstimatedEarnings      float64       `json:"estimatedEarnings"`
	Latitude               string        `json:"latitude"`
	Longitude              string        `json:"longitude"`
	PickupGoogleMapsLink   string        `json:"pickupGoogleMapsLink,omitempty"`
	DeliveryGoogleMapsLink string        `json:"deliveryGoogleMapsLink,omitempty"`
	DeliveryFee            *float64      `json:"deliveryFee,omitempty"`
	Urgent                 bool          `json:"urgent,omitempty"`
	StoreDetails           *StoreDetails `json:"storeDetails,omitempty"`
}

// EncodeNotificationData serializes the payload for storage.
func EncodeNotificationData(d NotificationData) (string, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("encode notification data: %w", err)
	}
	return string(b), nil
}

// DecodeNotificationData parses a stored payload. Payloads that are not JSON objects or
// do not reference an order are reported as ErrMalformedPayload.
func DecodeNotificationData(raw string) (NotificationData, error) {
	var d NotificationData
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		return NotificationData{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if d.OrderID <= 0 {
		return NotificationData{}, fmt.Errorf("%w: missing orderId", ErrMalformedPayload)
	}
	return d, nil
}

// PendingDelivery is a pending delivery as listed to a partner, joined with its
// notification and order summary.
type PendingDelivery struct {
	NotificationID  int64
	DeliveryID      int64
	OrderID         int64
	PartnerID       *int64
	Status          DeliveryStatus
	Payload         string
	Data            NotificationData
	CustomerName    string
	TotalAmount     decimal.Decimal
	ShippingAddress string
	StoreName       string
	CreatedAt       time.Time
}
