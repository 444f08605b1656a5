package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/stellarweave/galaxysim/pkg/api"
	"github.com/stellarweave/galaxysim/pkg/galaxy"
	"github.com/stellarweave/galaxysim/pkg/logging"
	"github.com/stellarweave/galaxysim/pkg/metrics"
	"github.com/stellarweave/galaxysim/pkg/stream"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	port := flag.Int("port", 0, "HTTP server port (overrides config)")
	streamAddr := flag.String("stream", "", "Snapshot stream listen address, e.g. tcp://0.0.0.0:4800 (overrides config)")
	flag.Parse()

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		logging.NewDefaultLogger().Error("loading configuration", logging.Error(err))
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Port = *port
	}
	if *streamAddr != "" {
		cfg.StreamAddr = *streamAddr
	}

	log := logging.NewJSONLogger(os.Stdout, logging.ParseLevel(cfg.LogLevel))

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", logging.Error(err))
		os.Exit(1)
	}

	log.Info("galaxy server starting",
		logging.Int("port", cfg.Port),
		logging.String("mode", cfg.Mode),
		logging.String("strategy", cfg.Strategy),
		logging.Int("nodes", cfg.Nodes.Count),
		logging.Int("attributes", cfg.Nodes.Attributes),
	)

	nodes := galaxy.GenerateNodes(cfg.Nodes.Count, cfg.Nodes.Attributes, cfg.Nodes.TraitNames, cfg.Nodes.Seed)
	store, err := galaxy.NewStore(nodes)
	if err != nil {
		log.Error("initializing node store", logging.Error(err))
		os.Exit(1)
	}

	reg := metrics.NewRegistry()
	driver := galaxy.NewDriver(store, cfg.Physics,
		galaxy.Mode(cfg.Mode), galaxy.Strategy(cfg.Strategy), log, reg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Graceful shutdown on SIGINT/SIGTERM.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Info("shutting down", logging.String("signal", sig.String()))
		cancel()
	}()

	// Simulation tick loop.
	go func() {
		ticker := time.NewTicker(cfg.TickInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				driver.Tick(now)
			}
		}
	}()

	// Optional snapshot stream.
	if cfg.StreamAddr != "" {
		publisher, err := stream.NewPublisher(store, cfg.StreamAddr, log)
		if err != nil {
			log.Error("opening snapshot stream", logging.Error(err))
			os.Exit(1)
		}
		log.Info("snapshot stream listening", logging.String("addr", cfg.StreamAddr))
		go publisher.Run(ctx)
	}

	server := api.NewServer(store, driver, galaxy.Strategy(cfg.Strategy), reg, log, cfg.Port)
	if err := server.Start(ctx); err != nil {
		log.Error("api server", logging.Error(err))
		os.Exit(1)
	}
	log.Info("server exited")
}
