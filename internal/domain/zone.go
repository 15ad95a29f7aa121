package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DeliveryZone is a distance bracket (km, both ends inclusive) mapped to a fixed fee.
type DeliveryZone struct {
	ID          int64
	MinDistance float64
	MaxDistance float64
	DeliveryFee decimal.Decimal
	CreatedAt   time.Time
}

// Contains reports whether distance falls into the zone.
func (z DeliveryZone) Contains(distance float64) bool {
	return z.MinDistance <= distance && distance <= z.MaxDistance
}

// Overlaps reports whether two zones share at least one distance.
func (z DeliveryZone) Overlaps(o DeliveryZone) bool {
	return z.MinDistance < o.MaxDistance && o.MinDistance < z.MaxDistance
}

// FeeQuote is the result of resolving a distance against the zone table.
// Zone is nil when no zone matched; the fee is zero then.
type FeeQuote struct {
	Distance float64
	Fee      decimal.Decimal
	Zone     *DeliveryZone
}
