package notification

import (
	"context"
	"time"

	"marketplace-dispatch/internal/apperr"
	"marketplace-dispatch/internal/logx"
)

type notificationRepository interface {
	MarkRead(ctx context.Context, id int64) (bool, error)
	MarkAllRead(ctx context.Context, userID int64) (int64, error)
}

// Service updates the read state of notifications.
type Service struct {
	repo             notificationRepository
	operationTimeout time.Duration
	logger           logx.Logger
}

// NewService creates a notification Service.
func NewService(r notificationRepository, timeout time.Duration, logger logx.Logger) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{repo: r, operationTimeout: timeout, logger: logger}
}

// MarkRead marks one notification read.
func (s *Service) MarkRead(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperr.ErrInvalid
	}
	ctx, cancel := context.WithTimeout(ctx, s.operationTimeout)
	defer cancel()

	ok, err := s.repo.MarkRead(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.ErrNotFound
	}
	return nil
}

// MarkAllRead marks every notification addressed to a user read and returns how
// many changed.
func (s *Service) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	if userID <= 0 {
		return 0, apperr.ErrInvalid
	}
	ctx, cancel := context.WithTimeout(ctx, s.operationTimeout)
	defer cancel()

	n, err := s.repo.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, err
	}
	s.logger.Debug("notifications marked read", logx.Int64("user_id", userID), logx.Int64("count", n))
	return n, nil
}
