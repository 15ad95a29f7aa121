package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"marketplace-dispatch/internal/http/handlers"
	mw "marketplace-dispatch/internal/http/middleware"
	"marketplace-dispatch/internal/http/middleware/ratelimit"
	"marketplace-dispatch/internal/logx"
	"marketplace-dispatch/internal/metrics"
)

// API groups the resource handlers mounted under /api.
type API struct {
	Deliveries    *handlers.DeliveryHandler
	Tracking      *handlers.TrackingHandler
	Zones         *handlers.ZoneHandler
	Partners      *handlers.PartnerHandler
	Stores        *handlers.StoreHandler
	Notifications *handlers.NotificationHandler
	Maintenance   *handlers.MaintenanceHandler
}

// Options holds the optional router collaborators. Nil fields are skipped.
type Options struct {
	// Limiter guards /api only.
	Limiter     *ratelimit.Middleware
	HTTPMetrics *metrics.HTTP
	// Metrics serves GET /metrics.
	Metrics http.Handler
}

// New constructs a chi-based http.Handler with base middleware and routes.
func New(logger logx.Logger, h *handlers.Handlers, api API, opts Options) http.Handler {
	if logger == nil {
		logger = logx.Nop()
	}
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(mw.Observability(logger, opts.HTTPMetrics))
	r.Use(middleware.Timeout(5 * time.Second))

	r.Get("/ping", h.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(h.HealthcheckHead))
	r.Get("/readyz", h.Ready)
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics)
	}
	r.NotFound(http.HandlerFunc(h.NotFound))
	r.MethodNotAllowed(http.HandlerFunc(h.MethodNotAllowed))

	r.Route("/api", func(r chi.Router) {
		if opts.Limiter != nil {
			r.Use(opts.Limiter.Handler())
		}

		r.Route("/delivery-notifications", func(r chi.Router) {
			r.Get("/", api.Deliveries.Notifications)
			r.Post("/{orderId}/accept", api.Deliveries.Accept)
			r.Post("/{orderId}/reject", api.Deliveries.Reject)
		})

		r.Route("/orders/{orderId}", func(r chi.Router) {
			r.Post("/delivery", api.Deliveries.Create)
			r.Post("/delivery/cancel", api.Deliveries.Cancel)
			r.Get("/deliveries", api.Deliveries.ListByOrder)
			r.Get("/tracking", api.Tracking.Order)
		})

		r.Route("/deliveries", func(r chi.Router) {
			r.Get("/active", api.Deliveries.Active)
			r.Get("/{id}", api.Deliveries.Get)
			r.Get("/{id}/tracking", api.Tracking.Delivery)
			r.Post("/{id}/offer", api.Deliveries.Offer)
			r.Post("/{id}/location", api.Deliveries.Location)
			r.Post("/{id}/status", api.Deliveries.Status)
		})

		r.Route("/delivery-zones", func(r chi.Router) {
			r.Get("/", api.Zones.List)
			r.Post("/", api.Zones.Create)
			r.Get("/quote", api.Zones.Quote)
			r.Get("/{id}", api.Zones.Get)
			r.Put("/{id}", api.Zones.Update)
			r.Delete("/{id}", api.Zones.Delete)
		})

		r.Get("/stores/nearby", api.Stores.Nearby)

		r.Route("/delivery-partners", func(r chi.Router) {
			r.Get("/", api.Partners.List)
			r.Post("/", api.Partners.Register)
			r.Get("/{id}", api.Partners.GetByID)
			r.Get("/{id}/deliveries", api.Deliveries.ListByPartner)
			r.Post("/{id}/approve", api.Partners.Approve)
			r.Post("/{id}/reject", api.Partners.Reject)
		})

		r.Post("/notifications/{id}/read", api.Notifications.MarkRead)
		r.Post("/users/{userId}/notifications/read-all", api.Notifications.MarkAllRead)

		r.Post("/admin/stores/{id}/reset", api.Maintenance.ResetStore)
		r.Post("/admin/reset", api.Maintenance.ResetAll)
	})

	return r
}
