package domain

import "time"

// TrackingEvent is a discrete, timestamped status/location record in a delivery's history.
type TrackingEvent struct {
	ID          int64
	OrderID     int64
	DeliveryID  int64
	Status      DeliveryStatus
	Description string
	Latitude    *float64
	Longitude   *float64
	CreatedAt   time.Time
}

// TrackingSnapshot is the current state of a delivery for display.
type TrackingSnapshot struct {
	Delivery Delivery
	Partner  *DeliveryPartner
}
