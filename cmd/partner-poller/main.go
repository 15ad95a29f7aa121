package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"marketplace-dispatch/internal/logx"
	"marketplace-dispatch/internal/poller"
)

func main() {
	apiURL := pflag.String("api", "http://localhost:8080", "dispatch API base url")
	partnerID := pflag.Int64("partner-id", 0, "delivery partner id")
	interval := pflag.Duration("interval", poller.DefaultInterval, "poll interval")
	quiet := pflag.Bool("quiet", false, "log new deliveries instead of ringing the terminal")
	level := pflag.String("log-level", "info", "log level")
	retries := pflag.Int("retries", poller.DefaultRetryConfig.MaxAttempts, "attempts per idempotent API call")
	pflag.Parse()

	if *partnerID <= 0 {
		log.Fatalf("--partner-id is required")
	}
	lvl, err := logx.ParseLevel(*level)
	if err != nil {
		log.Fatalf("log level: %v", err)
	}
	logger := logx.NewJSON(os.Stderr, lvl)

	var alerter poller.Alerter = &poller.WriterAlerter{W: os.Stdout}
	if *quiet {
		alerter = poller.LogAlerter{Logger: logger}
	}

	logger = logger.With(logx.Int64("partner_id", *partnerID))

	retryCfg := poller.DefaultRetryConfig
	retryCfg.MaxAttempts = *retries
	client := poller.NewClient(*apiURL, *partnerID, &http.Client{Timeout: 10 * time.Second})
	p := poller.New(poller.NewRetryingAPI(client, logger, retryCfg), alerter, *interval, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return p.Run(gctx) })
	g.Go(func() error {
		err := poller.RunCommands(gctx, os.Stdin, os.Stdout, p)
		if errors.Is(err, poller.ErrQuit) {
			stop()
			return nil
		}
		return err
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("partner-poller: %v", err)
	}
}
