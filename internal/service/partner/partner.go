package partner

import (
	"context"
	"fmt"
	"strings"
	"time"

	"marketplace-dispatch/internal/apperr"
	"marketplace-dispatch/internal/domain"
	"marketplace-dispatch/internal/logx"
)

// Service manages partner registration and admin approval.
type Service struct {
	repo             partnerRepository
	operationTimeout time.Duration
	logger           logx.Logger
	now              func() time.Time
}

// NewService creates a partner Service.
func NewService(r partnerRepository, timeout time.Duration, logger logx.Logger) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{
		repo:             r,
		operationTimeout: timeout,
		logger:           logger,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

func validateRegister(p *domain.DeliveryPartner) error {
	if p == nil || p.UserID <= 0 {
		return apperr.ErrInvalid
	}
	p.Name = strings.TrimSpace(p.Name)
	p.VehicleType = strings.TrimSpace(p.VehicleType)
	if p.Name == "" || p.VehicleType == "" {
		return apperr.ErrInvalid
	}
	if !domain.ValidatePhone(p.Phone) {
		return apperr.ErrInvalid
	}
	return nil
}

// Register creates a partner awaiting approval.
func (s *Service) Register(ctx context.Context, p *domain.DeliveryPartner) (int64, error) {
	if err := validateRegister(p); err != nil {
		return 0, err
	}
	p.Status = domain.PartnerPending

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	id, err := s.repo.Create(ctx, p)
	if err != nil {
		return 0, err
	}
	s.logger.Info("delivery partner registered",
		logx.Int64("partner_id", id),
		logx.Int64("user_id", p.UserID),
	)
	return id, nil
}

// Get returns a partner by id.
func (s *Service) Get(ctx context.Context, id int64) (*domain.DeliveryPartner, error) {
	if id <= 0 {
		return nil, apperr.ErrInvalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.ErrNotFound
	}
	return p, nil
}

// List returns partners, optionally filtered by status.
func (s *Service) List(ctx context.Context, status *domain.PartnerStatus) ([]domain.DeliveryPartner, error) {
	if status != nil && !status.Valid() {
		return nil, apperr.ErrInvalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.List(ctx, status)
}

// Approve lets a pending partner start claiming deliveries.
func (s *Service) Approve(ctx context.Context, id, adminID int64) (*domain.DeliveryPartner, error) {
	return s.decide(ctx, domain.PartnerDecision{
		PartnerID: id,
		AdminID:   adminID,
		Status:    domain.PartnerApproved,
	})
}

// Reject turns a pending partner down. A reason is required.
func (s *Service) Reject(ctx context.Context, id, adminID int64, reason string) (*domain.DeliveryPartner, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, apperr.ErrInvalid
	}
	return s.decide(ctx, domain.PartnerDecision{
		PartnerID: id,
		AdminID:   adminID,
		Status:    domain.PartnerRejected,
		Reason:    &reason,
	})
}

func (s *Service) decide(ctx context.Context, d domain.PartnerDecision) (*domain.DeliveryPartner, error) {
	if d.PartnerID <= 0 || d.AdminID <= 0 {
		return nil, apperr.ErrInvalid
	}
	d.At = s.now()

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	p, err := s.repo.Decide(ctx, d)
	if err != nil {
		return nil, err
	}
	if p == nil {
		cur, err := s.repo.Get(ctx, d.PartnerID)
		if err != nil {
			return nil, err
		}
		if cur == nil {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("partner %d is already %s: %w", d.PartnerID, cur.Status, apperr.ErrConflict)
	}

	s.logger.Info("delivery partner reviewed",
		logx.String("event", "partner_"+string(p.Status)),
		logx.Int64("partner_id", p.ID),
		logx.Int64("admin_id", d.AdminID),
		logx.String("status", string(p.Status)),
	)
	return p, nil
}
