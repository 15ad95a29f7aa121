package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"marketplace-dispatch/internal/service/orders"
	"marketplace-dispatch/internal/transport/kafka"
)

// With the consumer's doubling redelivery pause (1s up to 30s) the attempt
// budget gives a failing order roughly two and a half minutes before it is
// dropped.
const (
	orderEventTimeout     = 5 * time.Second
	orderEventMaxAttempts = 10
)

type orderEventHandler interface {
	Handle(ctx context.Context, e orders.Event) error
}

// makeOrdersKafka bounds each event with its own deadline. An order whose
// events keep failing is given up on after maxAttempts consecutive failures so
// one poison message cannot stall the partition.
func makeOrdersKafka(h orderEventHandler, timeout time.Duration, maxAttempts int) kafka.HandleFunc {
	if timeout <= 0 {
		timeout = orderEventTimeout
	}
	if maxAttempts <= 0 {
		maxAttempts = orderEventMaxAttempts
	}

	var (
		mu       sync.Mutex
		failures = make(map[int64]int)
	)
	return func(ctx context.Context, event orders.Event) error {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		err := h.Handle(ctx, event)

		mu.Lock()
		defer mu.Unlock()
		if err == nil || kafka.IsPermanent(err) || errors.Is(err, orders.ErrBadEvent) {
			delete(failures, event.OrderID)
			return err
		}
		failures[event.OrderID]++
		if n := failures[event.OrderID]; n >= maxAttempts {
			delete(failures, event.OrderID)
			return kafka.Permanent(fmt.Errorf("order %d: giving up after %d attempts: %w", event.OrderID, n, err))
		}
		return err
	}
}
