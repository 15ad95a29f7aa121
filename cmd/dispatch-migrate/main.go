package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"marketplace-dispatch/internal/config"
	"marketplace-dispatch/internal/repository"
)

func main() {
	command := pflag.StringP("command", "c", "up", "goose command: up, down, status, version, reset, redo")
	timeout := pflag.Duration("timeout", 2*time.Minute, "overall migration timeout")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	if err := repository.Migrate(ctx, cfg.DB.DSN(), *command, pflag.Args()...); err != nil {
		log.Fatalf("migrate %s: %v", *command, err)
	}
	log.Printf("migrate %s: done", *command)
}
