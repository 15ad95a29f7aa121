package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"marketplace-dispatch/internal/apperr"
	"marketplace-dispatch/internal/logx"
)

// Outcomes reported in the order events counter.
const (
	outcomeApplied = "applied"
	outcomeSkipped = "skipped"
	outcomeFailed  = "failed"
)

// ErrBadEvent marks events that can never be applied.
var ErrBadEvent = errors.New("bad order event")

// Processor processes orders events
type Processor struct {
	delivery DeliveryPort
	factory  *actionFactory
	logger   logx.Logger
	events   *prometheus.CounterVec
}

// NewProcessor creates a new orders.Processor. events may be nil.
func NewProcessor(deliverySvc DeliveryPort, logger logx.Logger, events *prometheus.CounterVec) *Processor {
	if logger == nil {
		logger = logx.Nop()
	}
	p := &Processor{
		delivery: deliverySvc,
		logger:   logger,
		events:   events,
	}
	p.factory = newActionFactory(p.onPlaced, p.onCancelled)
	return p
}

// Handle processes a single orders.Event. Events are delivered at least once, so
// replays that hit an existing or missing delivery are not errors. Errors
// wrapping ErrBadEvent will fail again on every retry.
func (p *Processor) Handle(ctx context.Context, e Event) error {
	if e.OrderID <= 0 {
		return fmt.Errorf("order id %d: %w", e.OrderID, ErrBadEvent)
	}
	a, ok := p.factory.get(e.Status)
	if !ok {
		p.count(actionIgnore, outcomeSkipped)
		return nil
	}

	err := a.fn(ctx, e)
	switch {
	case err == nil:
		p.count(a.name, outcomeApplied)
		return nil
	case errors.Is(err, apperr.ErrNotFound), errors.Is(err, apperr.ErrConflict):
		p.logger.Info("order event skipped",
			logx.Int64("order_id", e.OrderID),
			logx.String("status", e.Status),
			logx.Err(err),
		)
		p.count(a.name, outcomeSkipped)
		return nil
	case errors.Is(err, apperr.ErrInvalid):
		p.count(a.name, outcomeFailed)
		return fmt.Errorf("%w: %v", ErrBadEvent, err)
	default:
		p.count(a.name, outcomeFailed)
		return err
	}
}

func (p *Processor) onPlaced(ctx context.Context, e Event) error {
	_, _, err := p.delivery.CreateForOrder(ctx, e.OrderID)
	return err
}

func (p *Processor) onCancelled(ctx context.Context, e Event) error {
	reason := e.Reason
	if reason == "" {
		reason = "Order cancelled"
	}
	_, err := p.delivery.CancelForOrder(ctx, e.OrderID, reason)
	return err
}

func (p *Processor) count(action, outcome string) {
	if p.events != nil {
		p.events.WithLabelValues(action, outcome).Inc()
	}
}
