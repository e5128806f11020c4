package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"enrolwatch/internal/api"
	"enrolwatch/internal/config"
	"enrolwatch/internal/dataset"
	"enrolwatch/internal/logging"
	"enrolwatch/internal/ml"
	"enrolwatch/internal/notify"
)

const version = "0.3.0"

func main() {
	configPath := flag.String("config", "enrolwatch.yaml", "path to config file (yaml or json)")
	writeDefault := flag.Bool("write-default-config", false, "write the default config to the config path and exit")
	flag.Parse()

	path := config.ResolvePath(*configPath)

	if *writeDefault {
		if err := config.Save(path, config.DefaultConfig()); err != nil {
			fmt.Fprintln(os.Stderr, "write default config:", err)
			os.Exit(1)
		}
		return
	}

	manager, err := config.NewManager(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}
	cfg := manager.Get()
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	logger.Info("starting enrolwatch", "version", version, "config", path)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	provider := dataset.NewProvider(cfg.Dataset, logger)
	adapter := ml.NewAdapter(cfg.Model, logger)
	publisher := notify.New(cfg.Publish, logger)
	defer publisher.Close()

	// Warm the dataset cache up front so the first request does not pay the
	// load cost; a failure here is fatal rather than deferred to request time.
	if _, err := provider.Dataset(ctx); err != nil {
		logger.Error("dataset load failed", "err", err)
		os.Exit(1)
	}

	server := api.Start(ctx, manager, provider, adapter, publisher, logger, version)
	if server == nil {
		logger.Error("api disabled; nothing to serve")
		os.Exit(1)
	}

	stop := make(chan struct{})
	go manager.Watch(3*time.Second,
		func(next *config.Config) {
			logger.Info("config reloaded", "path", path)
			if _, err := provider.Reload(ctx); err != nil {
				logger.Error("dataset reload failed", "err", err)
			}
		},
		func(err error) {
			logger.Warn("config watch error", "err", err)
		},
		stop,
	)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	logger.Info("shutting down")
	close(stop)
	cancel()
	time.Sleep(100 * time.Millisecond)
}
