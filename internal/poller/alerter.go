package poller

import (
	"context"
	"fmt"
	"io"
	"sync"

	"marketplace-dispatch/internal/logx"
)

// Alerter is told about deliveries that appeared since the previous poll.
type Alerter interface {
	Alert(ctx context.Context, items []Item)
}

// LogAlerter reports new deliveries through a logger.
type LogAlerter struct {
	Logger logx.Logger
}

// Alert implements Alerter.
func (a LogAlerter) Alert(_ context.Context, items []Item) {
	for _, it := range items {
		a.Logger.Info("new delivery available",
			logx.Int64("order_id", it.OrderID),
			logx.Int64("delivery_id", it.DeliveryID),
			logx.String("pickup", it.Data.PickupAddress),
			logx.String("drop", it.Data.DeliveryAddress),
			logx.Float64("distance_km", it.Data.EstimatedDistance),
			logx.Float64("earnings", it.Data.EstimatedEarnings),
		)
	}
}

// WriterAlerter prints one line per new delivery, ringing the terminal bell.
type WriterAlerter struct {
	mu sync.Mutex
	W  io.Writer
}

// Alert implements Alerter.
func (a *WriterAlerter) Alert(_ context.Context, items []Item) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, it := range items {
		fmt.Fprintf(a.W, "\a[order #%d] %s -> %s  %.2f km  earn %.2f\n",
			it.OrderID, it.Data.PickupAddress, it.Data.DeliveryAddress,
			it.Data.EstimatedDistance, it.Data.EstimatedEarnings)
	}
}
