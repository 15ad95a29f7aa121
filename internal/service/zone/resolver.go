package zone

import (
	"sort"

	"github.com/shopspring/decimal"

	"marketplace-dispatch/internal/domain"
)

// Resolve maps a distance (km) to a fee bracket. Zones are scanned by ascending
// MinDistance and the first zone with Min <= distance <= Max wins, so on a shared
// boundary the lower zone is chosen. A distance covered by no zone resolves to a
// zero fee and a nil zone.
func Resolve(zones []domain.DeliveryZone, distance float64) domain.FeeQuote {
	ordered := make([]domain.DeliveryZone, len(zones))
	copy(ordered, zones)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].MinDistance < ordered[j].MinDistance
	})

	for i := range ordered {
		if ordered[i].Contains(distance) {
			z := ordered[i]
			return domain.FeeQuote{Distance: distance, Fee: z.DeliveryFee, Zone: &z}
		}
	}
	return domain.FeeQuote{Distance: distance, Fee: decimal.Zero}
}
