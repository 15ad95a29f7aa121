package store

import (
	"context"
	"math"
	"time"

	"marketplace-dispatch/internal/apperr"
	"marketplace-dispatch/internal/domain"
	"marketplace-dispatch/internal/geo"
)

type storeRepository interface {
	List(ctx context.Context) ([]domain.Store, error)
}

// Service answers store proximity queries.
type Service struct {
	repo             storeRepository
	operationTimeout time.Duration
}

// NewService creates a store Service.
func NewService(r storeRepository, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{repo: r, operationTimeout: timeout}
}

// Nearby returns stores ordered by distance from the given point, optionally
// restricted to one store type.
func (s *Service) Nearby(ctx context.Context, lat, lon float64, storeType domain.StoreType) ([]domain.StoreDistance, error) {
	if math.IsNaN(lat) || math.IsNaN(lon) || lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return nil, apperr.ErrInvalid
	}
	if storeType != "" && !storeType.Valid() {
		return nil, apperr.ErrInvalid
	}
	ctx, cancel := context.WithTimeout(ctx, s.operationTimeout)
	defer cancel()

	stores, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return geo.RankStores(geo.Point{Lat: lat, Lon: lon}, stores, storeType), nil
}
