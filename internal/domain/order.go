package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StoreType distinguishes restaurants from retail shops.
type StoreType string

// Store is a seller location deliveries are picked up from.
type Store struct {
	ID        int64
	Name      string
	Phone     string
	Address   string
	Type      StoreType
	Latitude  float64
	Longitude float64
}

// StoreDistance is a store together with its distance (km) to a reference point.
type StoreDistance struct {
	Store    Store
	Distance float64
}

// OrderDispatchInfo is what the dispatch workflow needs to know about a placed order.
type OrderDispatchInfo struct {
	OrderID         int64
	CustomerID      int64
	CustomerName    string
	CustomerPhone   string
	TotalAmount     decimal.Decimal
	Status          string
	ShippingAddress string
	Latitude        *float64
	Longitude       *float64
	CreatedAt       time.Time
	Store           Store
}
