package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"marketplace-dispatch/internal/config"
	"marketplace-dispatch/internal/logx"
	"marketplace-dispatch/internal/service/dispatch"
	"marketplace-dispatch/internal/service/orders"
	"marketplace-dispatch/internal/transport/kafka"
)

// WorkerRunner runs the order events consumer
type WorkerRunner struct {
	runFn func(*dig.Container) error
}

// NewWorkerRunner returns a new WorkerRunner
func NewWorkerRunner() *WorkerRunner {
	return &WorkerRunner{runFn: runWorker}
}

// MustRun consumes order events until the container context is cancelled.
func (r *WorkerRunner) MustRun(container *dig.Container) {
	err := r.runFn(container)
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}
	panic(err)
}

type processorIn struct {
	dig.In

	Delivery *dispatch.Service
	Logger   logx.Logger
	Events   *prometheus.CounterVec `name:"order_events_total"`
}

func registerWorker(container *dig.Container) error {
	return provideAll(container,
		func(in processorIn) *orders.Processor {
			return orders.NewProcessor(in.Delivery, in.Logger, in.Events)
		},
		func(cfg *config.Config, logger logx.Logger, p *orders.Processor) (*kafka.Consumer, error) {
			k := cfg.Kafka
			opts := kafka.Options{
				Brokers:   k.Brokers,
				GroupID:   k.GroupID,
				Topic:     k.Topic,
				ClientID:  k.ClientID,
				StartFrom: k.StartFrom,

				Backoff:    k.RetryBackoff,
				MaxBackoff: k.RetryMaxBackoff,
			}
			return kafka.NewConsumer(logger, opts, makeOrdersKafka(p, orderEventTimeout, orderEventMaxAttempts))
		},
	)
}

func runWorker(container *dig.Container) error {
	return container.Invoke(workerRun)
}

func workerRun(
	ctx context.Context,
	pool *pgxpool.Pool,
	logger logx.Logger,
	consumer *kafka.Consumer,
	closeCache cacheCloser,
) error {
	if consumer == nil {
		return fmt.Errorf("kafka consumer is nil: set KAFKA_BROKERS for the worker")
	}
	defer closeWorker(pool, logger, consumer, closeCache)

	logger.Info("dispatch-worker started")
	return consumer.Run(ctx)
}

func closeWorker(pool *pgxpool.Pool, logger logx.Logger, kafkaConsumer *kafka.Consumer, closeCache cacheCloser) {
	if kafkaConsumer != nil {
		if err := kafkaConsumer.Close(); err != nil {
			logger.Error("kafka close error", logx.Err(err))
		}
	}
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
