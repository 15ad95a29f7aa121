package metrics

import "github.com/prometheus/client_golang/prometheus"

// Claim results.
const (
	ClaimAccepted = "accepted"
	ClaimConflict = "conflict"
	ClaimError    = "error"
)

// Dispatch groups the collectors of the dispatch workflow.
type Dispatch struct {
	Claims       *prometheus.CounterVec
	Transitions  *prometheus.CounterVec
	Rejections   prometheus.Counter
	Created      prometheus.Counter
	ReadDegraded *prometheus.CounterVec
	ZoneMisses   prometheus.Counter
}

// NewDispatch creates unregistered dispatch collectors.
func NewDispatch() *Dispatch {
	return &Dispatch{
		Claims: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dispatch_claims_total",
			Help: "Delivery claim attempts by result",
		}, []string{"result"}),
		Transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dispatch_status_transitions_total",
			Help: "Delivery status transitions by target status",
		}, []string{"to"}),
		Rejections: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dispatch_rejections_total",
			Help: "Deliveries rejected by partners",
		}),
		Created: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dispatch_deliveries_created_total",
			Help: "Deliveries created from placed orders",
		}),
		ReadDegraded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dispatch_read_degraded_total",
			Help: "List reads answered with an empty result after a storage failure",
		}, []string{"op"}),
		ZoneMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dispatch_zone_misses_total",
			Help: "Fee quotes for distances not covered by any delivery zone",
		}),
	}
}

// Register registers all collectors on reg.
func (d *Dispatch) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{d.Claims, d.Transitions, d.Rejections, d.Created, d.ReadDegraded, d.ZoneMisses} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// NewRateLimitExceededTotal returns a Prometheus counter for the number of rejected HTTP requests due to rate limiting
func NewRateLimitExceededTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limit_exceeded_total",
		Help: "Total number of rejected HTTP requests due to rate limiting",
	})
}

// NewOrderEventsTotal returns a counter of consumed order events by outcome.
func NewOrderEventsTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dispatch_order_events_total",
		Help: "Order events consumed by the dispatch worker",
	}, []string{"action", "outcome"})
}

// HTTP groups the request collectors of the API server.
type HTTP struct {
	Requests *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

// NewHTTP creates unregistered HTTP collectors labelled by method, route and status.
func NewHTTP() *HTTP {
	labels := []string{"method", "path", "status"}
	return &HTTP{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, labels),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		}, labels),
	}
}
