package poller

import (
	"context"
	"errors"
	"sync"
	"time"

	"marketplace-dispatch/internal/apperr"
	"marketplace-dispatch/internal/domain"
	"marketplace-dispatch/internal/logx"
)

// DefaultInterval is how often the pending list is refreshed.
const DefaultInterval = 3 * time.Second

// Item is a pending delivery with its decoded payload.
type Item struct {
	NotificationID int64
	DeliveryID     int64
	OrderID        int64
	CreatedAt      time.Time
	Data           domain.NotificationData
}

type api interface {
	Pending(ctx context.Context) ([]Notification, error)
	Accept(ctx context.Context, orderID int64) error
	Reject(ctx context.Context, orderID int64) error
}

// Poller periodically fetches the partner's pending deliveries and alerts once
// per delivery that was not there before.
type Poller struct {
	api      api
	session  *Session
	alerter  Alerter
	logger   logx.Logger
	interval time.Duration

	mu      sync.RWMutex
	current []Item
}

// New creates a Poller. A non-positive interval selects DefaultInterval.
func New(c api, alerter Alerter, interval time.Duration, logger logx.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if logger == nil {
		logger = logx.Nop()
	}
	s := NewSession()
	return &Poller{
		api:      c,
		session:  s,
		alerter:  alerter,
		logger:   logger.With(logx.String("session_id", s.ID)),
		interval: interval,
	}
}

// Session returns the poller's session.
func (p *Poller) Session() *Session { return p.session }

// Current returns the list fetched by the latest successful poll.
func (p *Poller) Current() []Item {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]Item, len(p.current))
	copy(out, p.current)
	return out
}

// Run polls immediately and then every interval until ctx is done. Failed polls
// are logged and retried on the next tick.
func (p *Poller) Run(ctx context.Context) error {
	p.logger.Info("poller started", logx.Duration("interval", p.interval))

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		if _, err := p.PollOnce(ctx); err != nil && ctx.Err() == nil {
			p.logger.Warn("poll failed", logx.Err(err))
		}
		select {
		case <-ctx.Done():
			p.logger.Info("poller stopped")
			return nil
		case <-ticker.C:
		}
	}
}

// PollOnce fetches the pending list, alerts on new deliveries and returns the
// visible list.
func (p *Poller) PollOnce(ctx context.Context) ([]Item, error) {
	raw, err := p.api.Pending(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(raw))
	for _, n := range raw {
		data, err := domain.DecodeNotificationData(n.NotificationData)
		if err != nil {
			p.logger.Warn("skipping notification with malformed payload",
				logx.Int64("notification_id", n.ID),
				logx.Err(err),
			)
			continue
		}
		items = append(items, Item{
			NotificationID: n.ID,
			DeliveryID:     n.DeliveryID,
			OrderID:        n.OrderID,
			CreatedAt:      n.CreatedAt,
			Data:           data,
		})
	}
	items = p.session.Visible(items)

	if fresh := p.session.Diff(items); len(fresh) > 0 && p.alerter != nil {
		p.alerter.Alert(ctx, fresh)
	}

	p.mu.Lock()
	p.current = items
	p.mu.Unlock()
	return items, nil
}

// Accept claims the delivery of orderID and refreshes the list. A lost race is
// reported as apperr.ErrConflict.
func (p *Poller) Accept(ctx context.Context, orderID int64) error {
	err := p.api.Accept(ctx, orderID)
	if err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			p.logger.Info("order already taken by another partner", logx.Int64("order_id", orderID))
		}
	} else {
		p.logger.Info("order accepted", logx.Int64("order_id", orderID))
	}
	if _, rerr := p.PollOnce(ctx); rerr != nil {
		p.logger.Warn("refresh after accept failed", logx.Err(rerr))
	}
	return err
}

// Reject declines the delivery of orderID, hides it locally and refreshes.
func (p *Poller) Reject(ctx context.Context, orderID int64) error {
	if err := p.api.Reject(ctx, orderID); err != nil {
		return err
	}
	for _, it := range p.Current() {
		if it.OrderID == orderID {
			p.session.MarkRejected(it.DeliveryID)
		}
	}
	p.logger.Info("order rejected", logx.Int64("order_id", orderID))
	if _, err := p.PollOnce(ctx); err != nil {
		p.logger.Warn("refresh after reject failed", logx.Err(err))
	}
	return nil
}
