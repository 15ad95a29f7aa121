package poller

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"marketplace-dispatch/internal/logx"
)

// RetryConfig describes how RetryingAPI backs off.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// DefaultRetryConfig is used by the partner-poller binary.
var DefaultRetryConfig = RetryConfig{MaxAttempts: 3, BaseDelay: 200 * time.Millisecond, MaxDelay: 2 * time.Second}

// RetryingAPI retries idempotent dispatch API calls on transient failures.
// Accept is never retried: a claim that timed out may already have succeeded.
type RetryingAPI struct {
	next   api
	logger logx.Logger
	cfg    RetryConfig
}

// NewRetryingAPI wraps next. Returns nil if next is nil.
func NewRetryingAPI(next api, logger logx.Logger, cfg RetryConfig) *RetryingAPI {
	if next == nil {
		return nil
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &RetryingAPI{next: next, logger: logger, cfg: cfg}
}

// Pending implements api.
func (r *RetryingAPI) Pending(ctx context.Context) ([]Notification, error) {
	var out []Notification
	err := r.retry(ctx, "pending", func() error {
		var err error
		out, err = r.next.Pending(ctx)
		return err
	})
	return out, err
}

// Accept implements api.
func (r *RetryingAPI) Accept(ctx context.Context, orderID int64) error {
	return r.next.Accept(ctx, orderID)
}

// Reject implements api. Rejecting twice is harmless.
func (r *RetryingAPI) Reject(ctx context.Context, orderID int64) error {
	return r.retry(ctx, "reject", func() error { return r.next.Reject(ctx, orderID) })
}

func (r *RetryingAPI) retry(ctx context.Context, method string, call func() error) error {
	var lastErr error
	for attempt := 1; attempt <= r.cfg.MaxAttempts; attempt++ {
		lastErr = call()
		if lastErr == nil {
			return nil
		}
		if ctx.Err() != nil || attempt == r.cfg.MaxAttempts || !isTransient(lastErr) {
			break
		}

		delay := backoff(r.cfg.BaseDelay, r.cfg.MaxDelay, attempt)
		r.logger.Warn("dispatch api retry",
			logx.String("method", method),
			logx.Int("attempt", attempt),
			logx.Duration("delay", delay),
			logx.Err(lastErr),
		)
		if !sleepCtx(ctx, delay) {
			break
		}
	}
	return lastErr
}

// isTransient reports errors worth another attempt: throttling, gateway
// failures and network timeouts.
func isTransient(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusTooManyRequests, http.StatusBadGateway,
			http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return true
		}
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

func backoff(base, max time.Duration, attempt int) time.Duration {
	d := base << (attempt - 1)
	if d > max || d <= 0 {
		return max
	}
	return d
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
