package zone

import (
	"context"
	"math"
	"slices"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"marketplace-dispatch/internal/apperr"
	"marketplace-dispatch/internal/domain"
	"marketplace-dispatch/internal/geo"
	"marketplace-dispatch/internal/logx"
)

// Service manages the zone table and quotes delivery fees from it.
type Service struct {
	repo             zoneRepository
	stores           storeReader
	operationTimeout time.Duration
	logger           logx.Logger
	misses           prometheus.Counter
}

// NewService creates a zone Service. misses may be nil.
func NewService(r zoneRepository, stores storeReader, timeout time.Duration, logger logx.Logger, misses prometheus.Counter) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{
		repo:             r,
		stores:           stores,
		operationTimeout: timeout,
		logger:           logger,
		misses:           misses,
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// Quote resolves the fee for a distance in km.
func (s *Service) Quote(ctx context.Context, distance float64) (domain.FeeQuote, error) {
	if math.IsNaN(distance) || math.IsInf(distance, 0) || distance < 0 {
		return domain.FeeQuote{}, apperr.ErrInvalid
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	zones, err := s.repo.List(ctx)
	if err != nil {
		return domain.FeeQuote{}, err
	}

	q := Resolve(zones, distance)
	if q.Zone == nil {
		// coverage gap in the zone table; the zero fee is kept on purpose
		s.logger.Warn("no delivery zone matches distance",
			logx.String("event", "zone_miss"),
			logx.Float64("distance_km", distance),
			logx.Int("zones", len(zones)),
		)
		if s.misses != nil {
			s.misses.Inc()
		}
	}
	return q, nil
}

// QuoteRoute quotes the fee from a store to a drop-off point.
func (s *Service) QuoteRoute(ctx context.Context, storeID int64, to geo.Point) (domain.FeeQuote, error) {
	if storeID <= 0 {
		return domain.FeeQuote{}, apperr.ErrInvalid
	}

	lookupCtx, cancel := s.withTimeout(ctx)
	store, err := s.stores.Get(lookupCtx, storeID)
	cancel()
	if err != nil {
		return domain.FeeQuote{}, err
	}
	if store == nil {
		return domain.FeeQuote{}, apperr.ErrNotFound
	}

	d := geo.Round2(geo.Distance(geo.Point{Lat: store.Latitude, Lon: store.Longitude}, to))
	return s.Quote(ctx, d)
}

// List returns zones ordered by ascending minimum distance.
func (s *Service) List(ctx context.Context) ([]domain.DeliveryZone, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.List(ctx)
}

// Get returns a zone by id.
func (s *Service) Get(ctx context.Context, id int64) (*domain.DeliveryZone, error) {
	if id <= 0 {
		return nil, apperr.ErrInvalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	z, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if z == nil {
		return nil, apperr.ErrNotFound
	}
	return z, nil
}

// Create adds a zone. Zones may share a boundary but must not overlap.
func (s *Service) Create(ctx context.Context, z *domain.DeliveryZone) (int64, error) {
	if z == nil {
		return 0, apperr.ErrInvalid
	}
	if err := validateZone(*z); err != nil {
		return 0, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.checkOverlap(ctx, *z); err != nil {
		return 0, err
	}
	id, err := s.repo.Create(ctx, z)
	if err != nil {
		return 0, err
	}
	s.logger.Info("delivery zone created",
		logx.String("event", "zone_created"),
		logx.Int64("zone_id", id),
		logx.Float64("min_km", z.MinDistance),
		logx.Float64("max_km", z.MaxDistance),
		logx.String("fee", z.DeliveryFee.String()),
	)
	return id, nil
}

// Update replaces a zone's bracket and fee.
func (s *Service) Update(ctx context.Context, z domain.DeliveryZone) error {
	if z.ID <= 0 {
		return apperr.ErrInvalid
	}
	if err := validateZone(z); err != nil {
		return err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	zones, err := s.repo.List(ctx)
	if err != nil {
		return err
	}
	if !slices.ContainsFunc(zones, func(other domain.DeliveryZone) bool { return other.ID == z.ID }) {
		return apperr.ErrNotFound
	}
	if overlapsAny(zones, z) {
		return apperr.ErrConflict
	}
	// the zone may still vanish between List and Update
	ok, err := s.repo.Update(ctx, z)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.ErrNotFound
	}
	return nil
}

// Delete removes a zone.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperr.ErrInvalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.ErrNotFound
	}
	return nil
}

func (s *Service) checkOverlap(ctx context.Context, z domain.DeliveryZone) error {
	zones, err := s.repo.List(ctx)
	if err != nil {
		return err
	}
	if overlapsAny(zones, z) {
		return apperr.ErrConflict
	}
	return nil
}

// overlapsAny ignores the zone with z's own id.
func overlapsAny(zones []domain.DeliveryZone, z domain.DeliveryZone) bool {
	for _, other := range zones {
		if other.ID != z.ID && z.Overlaps(other) {
			return true
		}
	}
	return false
}

func validateZone(z domain.DeliveryZone) error {
	if math.IsNaN(z.MinDistance) || math.IsNaN(z.MaxDistance) || math.IsInf(z.MaxDistance, 0) {
		return apperr.ErrInvalid
	}
	if z.MinDistance < 0 || z.MinDistance >= z.MaxDistance {
		return apperr.ErrInvalid
	}
	if z.DeliveryFee.IsNegative() {
		return apperr.ErrInvalid
	}
	return nil
}
