package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/dig"

	"marketplace-dispatch/internal/cache"
	"marketplace-dispatch/internal/config"
	"marketplace-dispatch/internal/http/handlers"
	"marketplace-dispatch/internal/http/middleware/ratelimit"
	"marketplace-dispatch/internal/http/pprofserver"
	"marketplace-dispatch/internal/http/router"
	"marketplace-dispatch/internal/logx"
	"marketplace-dispatch/internal/metrics"
	"marketplace-dispatch/internal/repository"
	"marketplace-dispatch/internal/service/dispatch"
	"marketplace-dispatch/internal/service/maintenance"
	"marketplace-dispatch/internal/service/notification"
	"marketplace-dispatch/internal/service/partner"
	"marketplace-dispatch/internal/service/store"
	"marketplace-dispatch/internal/service/tracking"
	"marketplace-dispatch/internal/service/zone"
)

type (
	dbConnectFunc    func(context.Context, logx.Logger, config.DB) (*pgxpool.Pool, error)
	redisConnectFunc func(context.Context, config.Redis) (*redis.Client, error)
)

// cacheCloser releases the rejection store connection, if any.
type cacheCloser func() error

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	loadConfig   func() (*config.Config, error)
	dbConnect    dbConnectFunc
	redisConnect redisConnectFunc
	registerer   prometheus.Registerer
	gatherer     prometheus.Gatherer
	logFatalf    func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		loadConfig:   config.Load,
		dbConnect:    connectPostgres,
		redisConnect: cache.NewRedisClient,
		registerer:   prometheus.DefaultRegisterer,
		gatherer:     prometheus.DefaultGatherer,
		logFatalf:    log.Fatalf,
	}
}

// WithConfig replaces the env/flag config loader.
func (b *ContainerBuilder) WithConfig(fn func() (*config.Config, error)) *ContainerBuilder {
	if fn != nil {
		b.loadConfig = fn
	}
	return b
}

// WithDBConnect sets the database connection function
func (b *ContainerBuilder) WithDBConnect(fn dbConnectFunc) *ContainerBuilder {
	if fn != nil {
		b.dbConnect = fn
	}
	return b
}

// WithRedisConnect sets the redis connection function
func (b *ContainerBuilder) WithRedisConnect(fn redisConnectFunc) *ContainerBuilder {
	if fn != nil {
		b.redisConnect = fn
	}
	return b
}

// WithRegistry registers metrics on reg and serves /metrics from it.
func (b *ContainerBuilder) WithRegistry(reg *prometheus.Registry) *ContainerBuilder {
	if reg != nil {
		b.registerer = reg
		b.gatherer = reg
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds the HTTP API container.
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

// MustBuildWorker builds the order events worker container.
func (b *ContainerBuilder) MustBuildWorker(ctx context.Context) *dig.Container {
	container, err := b.buildWorker(ctx)
	if err != nil {
		b.logFatalf("failed to build worker container: %v", err)
	}
	return container
}

func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container, err := b.buildShared(ctx)
	if err != nil {
		return nil, err
	}
	if err := registerHTTP(container, b.gatherer); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	return container, nil
}

func (b *ContainerBuilder) buildWorker(ctx context.Context) (*dig.Container, error) {
	container, err := b.buildShared(ctx)
	if err != nil {
		return nil, err
	}
	if err := registerWorker(container); err != nil {
		return nil, fmt.Errorf("worker: %w", err)
	}
	return container, nil
}

func (b *ContainerBuilder) buildShared(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx, b.loadConfig, b.registerer); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerDb(container, b.dbConnect); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerCache(container, b.redisConnect); err != nil {
		return nil, fmt.Errorf("cache: %w", err)
	}
	if err := registerService(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds the HTTP API container with production defaults.
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

// MustBuildWorkerContainer builds the worker container with production defaults.
func MustBuildWorkerContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuildWorker(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

func registerCore(
	container *dig.Container,
	ctx context.Context,
	loadConfig func() (*config.Config, error),
	reg prometheus.Registerer,
) error {
	return provideAll(container,
		func() context.Context { return ctx },
		loadConfig,
		NewLogger,
		func() prometheus.Registerer { return reg },
		provideMetrics,
		func(cfg *config.Config) time.Duration { return cfg.Dispatch.OperationTimeout },
	)
}

func registerDb(container *dig.Container, dbConnect dbConnectFunc) error {
	providerDB := func(ctx context.Context, cfg *config.Config, logger logx.Logger) (*pgxpool.Pool, error) {
		return dbConnect(ctx, logger, cfg.DB)
	}
	return provideAll(container, providerDB)
}

type cacheOut struct {
	dig.Out

	Store  dispatch.RejectionStore
	Closer cacheCloser
}

func registerCache(container *dig.Container, redisConnect redisConnectFunc) error {
	provider := func(ctx context.Context, cfg *config.Config, logger logx.Logger) (cacheOut, error) {
		ttl := cfg.Dispatch.RejectionTTL
		if !cfg.Redis.Enabled() {
			logger.Warn("redis not configured, partner rejections are kept in process memory")
			return cacheOut{
				Store:  cache.NewMemoryRejections(ttl),
				Closer: func() error { return nil },
			}, nil
		}
		client, err := redisConnect(ctx, cfg.Redis)
		if err != nil {
			return cacheOut{}, err
		}
		return cacheOut{
			Store:  cache.NewRedisRejections(client, ttl),
			Closer: client.Close,
		}, nil
	}
	return provideAll(container, provider)
}

func registerService(container *dig.Container) error {
	return provideAll(container,
		repository.NewDeliveryRepo,
		repository.NewOrderRepo,
		repository.NewPartnerRepo,
		repository.NewStoreRepo,
		repository.NewZoneRepo,
		repository.NewTrackingRepo,
		repository.NewNotificationRepo,
		repository.NewMaintenanceRepo,
		func(r *repository.ZoneRepo, s *repository.StoreRepo, timeout time.Duration, logger logx.Logger, m *metrics.Dispatch) *zone.Service {
			return zone.NewService(r, s, timeout, logger, m.ZoneMisses)
		},
		func(r *repository.PartnerRepo, timeout time.Duration, logger logx.Logger) *partner.Service {
			return partner.NewService(r, timeout, logger)
		},
		func(
			r *repository.DeliveryRepo,
			orders *repository.OrderRepo,
			partners *repository.PartnerRepo,
			fees *zone.Service,
			rejections dispatch.RejectionStore,
			timeout time.Duration,
			logger logx.Logger,
			m *metrics.Dispatch,
		) *dispatch.Service {
			return dispatch.NewService(r, orders, partners, fees, rejections, timeout, logger, m)
		},
		func(r *repository.TrackingRepo, timeout time.Duration, logger logx.Logger, m *metrics.Dispatch) *tracking.Service {
			return tracking.NewService(r, timeout, logger, m.ReadDegraded)
		},
		func(r *repository.NotificationRepo, timeout time.Duration, logger logx.Logger) *notification.Service {
			return notification.NewService(r, timeout, logger)
		},
		func(r *repository.MaintenanceRepo, logger logx.Logger) *maintenance.Service {
			return maintenance.NewService(r, 0, logger)
		},
		func(r *repository.StoreRepo, timeout time.Duration) *store.Service {
			return store.NewService(r, timeout)
		},
	)
}

type routerIn struct {
	dig.In

	Logger        logx.Logger
	Base          *handlers.Handlers
	Deliveries    *handlers.DeliveryHandler
	Tracking      *handlers.TrackingHandler
	Zones         *handlers.ZoneHandler
	Partners      *handlers.PartnerHandler
	Stores        *handlers.StoreHandler
	Notifications *handlers.NotificationHandler
	Maintenance   *handlers.MaintenanceHandler
	RateLimit     *ratelimit.Middleware
	HTTPMetrics   *metrics.HTTP
}

type pprofOut struct {
	dig.Out

	Server *http.Server `name:"pprof_server"`
}

func registerHTTP(container *dig.Container, gatherer prometheus.Gatherer) error {
	serverProvider := func(cfg *config.Config, mux http.Handler) *http.Server {
		return &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
	}
	pprofProvider := func(cfg *config.Config) pprofOut {
		if !cfg.Pprof.Enabled {
			return pprofOut{}
		}
		return pprofOut{Server: pprofserver.New(pprofserver.Config{
			Addr: cfg.Pprof.Addr,
			User: cfg.Pprof.User,
			Pass: cfg.Pprof.Pass,
		})}
	}
	routerProvider := func(in routerIn) http.Handler {
		api := router.API{
			Deliveries:    in.Deliveries,
			Tracking:      in.Tracking,
			Zones:         in.Zones,
			Partners:      in.Partners,
			Stores:        in.Stores,
			Notifications: in.Notifications,
			Maintenance:   in.Maintenance,
		}
		return router.New(in.Logger, in.Base, api, router.Options{
			Limiter:     in.RateLimit,
			HTTPMetrics: in.HTTPMetrics,
			Metrics:     promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}),
		})
	}
	return provideAll(container,
		func(l logx.Logger, pool *pgxpool.Pool) *handlers.Handlers { return handlers.New(l).WithReadiness(pool) },
		func(l logx.Logger, s *dispatch.Service) *handlers.DeliveryHandler { return handlers.NewDeliveryHandler(l, s) },
		func(l logx.Logger, s *tracking.Service) *handlers.TrackingHandler { return handlers.NewTrackingHandler(l, s) },
		func(l logx.Logger, s *zone.Service) *handlers.ZoneHandler { return handlers.NewZoneHandler(l, s) },
		func(l logx.Logger, s *partner.Service) *handlers.PartnerHandler { return handlers.NewPartnerHandler(l, s) },
		func(l logx.Logger, s *store.Service) *handlers.StoreHandler { return handlers.NewStoreHandler(l, s) },
		func(l logx.Logger, s *notification.Service) *handlers.NotificationHandler {
			return handlers.NewNotificationHandler(l, s)
		},
		func(l logx.Logger, s *maintenance.Service) *handlers.MaintenanceHandler {
			return handlers.NewMaintenanceHandler(l, s)
		},
		newRateLimitClock,
		newRateLimiter,
		newRateLimitMiddleware,
		routerProvider,
		serverProvider,
		pprofProvider,
	)
}
