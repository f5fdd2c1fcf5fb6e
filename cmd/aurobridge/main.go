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

	"github.com/decred/slog"

	"github.com/aurora-chain/aurora-core/internal/bridge"
	"github.com/aurora-chain/aurora-core/internal/bridgeapi"
	"github.com/aurora-chain/aurora-core/internal/config"
	"github.com/aurora-chain/aurora-core/internal/instanceid"
	"github.com/aurora-chain/aurora-core/internal/ratelimit"
)

// wireLoggers builds a single stdout slog backend and hands each
// component package its own subsystem-tagged logger.
func wireLoggers() {
	backend := slog.NewBackend(os.Stdout)
	for subsystem, use := range map[string]func(slog.Logger){
		"BRDG": bridge.UseLogger,
		"RLIM": ratelimit.UseLogger,
		"BAPI": bridgeapi.UseLogger,
	} {
		l := backend.Logger(subsystem)
		l.SetLevel(slog.LevelInfo)
		use(l)
	}
}

func runBridge(cfg *config.BridgeConfig) *http.Server {
	log.Println("AUROBRIDGE: initializing pool...")
	pool := bridge.NewPool(cfg.SeedReserveA, cfg.SeedReserveB)

	guard := ratelimit.New(ratelimit.Limits{
		Daily:   cfg.DailyLimit,
		Monthly: cfg.MonthlyLimit,
	})

	return &http.Server{
		Addr:    cfg.ListenAddress,
		Handler: bridgeapi.New(pool, guard).Handler(),
	}
}

func main() {
	wireLoggers()
	log.Printf("AUROBRIDGE: starting, instance %s...", instanceid.String())

	cfg, err := config.ParseBridgeConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("AUROBRIDGE: configuration error: %v", err)
	}

	restServer := runBridge(cfg)

	go func() {
		log.Printf("AUROBRIDGE: serving REST on %s", cfg.ListenAddress)
		if err := restServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("AUROBRIDGE: REST server error: %v", err)
		}
	}()

	shutdownChannel := make(chan os.Signal, 1)
	signal.Notify(shutdownChannel, os.Interrupt, syscall.SIGTERM)
	sig := <-shutdownChannel
	log.Printf("AUROBRIDGE: caught signal %v, shutting down...", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = restServer.Shutdown(ctx)

	log.Println("AUROBRIDGE: shut down gracefully.")
}
