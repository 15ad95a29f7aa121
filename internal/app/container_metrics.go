package app

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"marketplace-dispatch/internal/metrics"
)

type metricsOut struct {
	dig.Out

	RateLimitExceededTotal prometheus.Counter     `name:"rate_limit_exceeded_total"`
	OrderEventsTotal       *prometheus.CounterVec `name:"order_events_total"`
	Dispatch               *metrics.Dispatch
	HTTP                   *metrics.HTTP
}

// provideMetrics registers the service collectors on reg. Collectors already
// registered by an earlier container in the same process are reused.
func provideMetrics(reg prometheus.Registerer) (metricsOut, error) {
	rl, err := registerOrReuse(reg, "rate_limit_exceeded_total", metrics.NewRateLimitExceededTotal())
	if err != nil {
		return metricsOut{}, err
	}
	events, err := registerOrReuse(reg, "dispatch_order_events_total", metrics.NewOrderEventsTotal())
	if err != nil {
		return metricsOut{}, err
	}
	d, err := registerDispatch(reg, metrics.NewDispatch())
	if err != nil {
		return metricsOut{}, err
	}
	h := metrics.NewHTTP()
	if h.Requests, err = registerOrReuse(reg, "http_requests_total", h.Requests); err != nil {
		return metricsOut{}, err
	}
	if h.Duration, err = registerOrReuse(reg, "http_request_duration_seconds", h.Duration); err != nil {
		return metricsOut{}, err
	}

	return metricsOut{
		RateLimitExceededTotal: rl,
		OrderEventsTotal:       events,
		Dispatch:               d,
		HTTP:                   h,
	}, nil
}

func registerDispatch(reg prometheus.Registerer, d *metrics.Dispatch) (*metrics.Dispatch, error) {
	var err error
	if d.Claims, err = registerOrReuse(reg, "dispatch_claims_total", d.Claims); err != nil {
		return nil, err
	}
	if d.Transitions, err = registerOrReuse(reg, "dispatch_status_transitions_total", d.Transitions); err != nil {
		return nil, err
	}
	if d.Rejections, err = registerOrReuse(reg, "dispatch_rejections_total", d.Rejections); err != nil {
		return nil, err
	}
	if d.Created, err = registerOrReuse(reg, "dispatch_deliveries_created_total", d.Created); err != nil {
		return nil, err
	}
	if d.ReadDegraded, err = registerOrReuse(reg, "dispatch_read_degraded_total", d.ReadDegraded); err != nil {
		return nil, err
	}
	if d.ZoneMisses, err = registerOrReuse(reg, "dispatch_zone_misses_total", d.ZoneMisses); err != nil {
		return nil, err
	}
	return d, nil
}

func registerOrReuse[C prometheus.Collector](reg prometheus.Registerer, name string, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		var zero C
		return zero, fmt.Errorf("register %s: %w", name, err)
	}
	return c, nil
}
