package maintenance

import (
	"context"
	"time"

	"marketplace-dispatch/internal/apperr"
	"marketplace-dispatch/internal/logx"
)

type maintenanceRepository interface {
	ResetStoreData(ctx context.Context, storeID int64) (map[string]int64, bool, error)
	ResetAllSystemData(ctx context.Context) (map[string]int64, error)
}

// Service wipes operational data for demos and test environments.
type Service struct {
	repo    maintenanceRepository
	timeout time.Duration
	logger  logx.Logger
}

// NewService creates a maintenance Service. Resets touch many tables, so the
// timeout is usually longer than the per-request one.
func NewService(r maintenanceRepository, timeout time.Duration, logger logx.Logger) *Service {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{repo: r, timeout: timeout, logger: logger}
}

// ResetStoreData deletes the orders, deliveries and catalog of one store and
// returns the deleted row counts per table.
func (s *Service) ResetStoreData(ctx context.Context, storeID int64) (map[string]int64, error) {
	if storeID <= 0 {
		return nil, apperr.ErrInvalid
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	counts, found, err := s.repo.ResetStoreData(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperr.ErrNotFound
	}
	s.logger.Warn("store data reset", logx.Int64("store_id", storeID), logx.Any("deleted", counts))
	return counts, nil
}

// ResetAllSystemData deletes all operational data. Users, partners and zones survive.
func (s *Service) ResetAllSystemData(ctx context.Context) (map[string]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	counts, err := s.repo.ResetAllSystemData(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Warn("system data reset", logx.Any("deleted", counts))
	return counts, nil
}
