package app

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/dig"
	"golang.org/x/sync/errgroup"

	"marketplace-dispatch/internal/logx"
)

const shutdownTimeout = 15 * time.Second

// MustRun starts the HTTP server using the provided DI container
func MustRun(container *dig.Container) {
	if err := run(container); err != nil {
		switch {
		case errors.Is(err, context.Canceled):
			log.Println("shutdown requested, exiting")
			return
		case errors.Is(err, context.DeadlineExceeded):
			log.Println("startup aborted: startup timeout exceeded")
			return
		default:
			log.Fatalf("run error: %v", err)
		}
	}
}

type serversIn struct {
	dig.In

	Ctx        context.Context
	API        *http.Server
	Pprof      *http.Server `name:"pprof_server" optional:"true"`
	Pool       *pgxpool.Pool
	Logger     logx.Logger
	CloseCache cacheCloser
}

func run(container *dig.Container) error {
	return container.Invoke(func(in serversIn) error {
		defer closeResources(in.Pool, in.CloseCache, in.Logger)

		g, gctx := errgroup.WithContext(in.Ctx)
		g.Go(func() error { return serve(gctx, in.API, in.Logger, shutdownTimeout) })
		if in.Pprof != nil {
			g.Go(func() error {
				return serve(gctx, in.Pprof, in.Logger.With(logx.String("server", "pprof")), shutdownTimeout)
			})
		}
		return g.Wait()
	})
}

// serve runs srv until ctx is done, then shuts it down gracefully.
func serve(ctx context.Context, srv *http.Server, logger logx.Logger, timeout time.Duration) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", logx.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server", logx.String("addr", srv.Addr))
		shCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := srv.Shutdown(shCtx); err != nil {
			logger.Error("graceful shutdown error", logx.Err(err))
			return err
		}
		return nil
	})

	return g.Wait()
}

func closeResources(pool *pgxpool.Pool, closeCache cacheCloser, logger logx.Logger) {
	if closeCache != nil {
		if err := closeCache(); err != nil {
			logger.Error("cache close error", logx.Err(err))
		}
	}
	if pool != nil {
		pool.Close()
	}
	_ = logger.Sync()
}
