// Package geo holds great-circle distance helpers used for fee estimation
// and proximity ranking.
package geo

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"marketplace-dispatch/internal/domain"
)

// EarthRadiusKm is the mean Earth radius used by Distance.
const EarthRadiusKm = 6371.0

// Point is a coordinate pair in decimal degrees.
type Point struct {
	Lat float64
	Lon float64
}

// Distance returns the haversine distance between a and b in kilometers.
// Out-of-range coordinates are not rejected.
func Distance(a, b Point) float64 {
	dLat := toRad(b.Lat - a.Lat)
	dLon := toRad(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Lat))*math.Cos(toRad(b.Lat))*math.Sin(dLon/2)*math.Sin(dLon/2)
	// rounding can push h slightly past 1 for antipodal points
	h = math.Min(1, math.Max(0, h))

	return EarthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func toRad(deg float64) float64 { return deg * math.Pi / 180 }

// Round2 rounds a distance to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// RankStores returns stores with their distance to origin, nearest first.
// An empty storeType keeps every store.
func RankStores(origin Point, stores []domain.Store, storeType domain.StoreType) []domain.StoreDistance {
	out := make([]domain.StoreDistance, 0, len(stores))
	for _, s := range stores {
		if storeType != "" && s.Type != storeType {
			continue
		}
		d := Distance(origin, Point{Lat: s.Latitude, Lon: s.Longitude})
		out = append(out, domain.StoreDistance{Store: s, Distance: Round2(d)})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Distance < out[j].Distance })
	return out
}

// MapsLink returns a Google Maps search link for p.
func MapsLink(p Point) string {
	return fmt.Sprintf("https://www.google.com/maps?q=%s,%s", FormatCoord(p.Lat), FormatCoord(p.Lon))
}

// FormatCoord renders a coordinate the way it is embedded in notification payloads.
func FormatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
