package main

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/decred/slog"

	"github.com/aurora-chain/aurora-core/internal/config"
	"github.com/aurora-chain/aurora-core/internal/consensus"
	"github.com/aurora-chain/aurora-core/internal/core"
	"github.com/aurora-chain/aurora-core/internal/crypto"
	"github.com/aurora-chain/aurora-core/internal/instanceid"
	"github.com/aurora-chain/aurora-core/internal/ledger"
	"github.com/aurora-chain/aurora-core/internal/mempool"
	"github.com/aurora-chain/aurora-core/internal/monetary"
	"github.com/aurora-chain/aurora-core/internal/nodeapi"
	"github.com/aurora-chain/aurora-core/internal/producer"
)

// wireLoggers builds a single stdout slog backend and hands each
// component package its own subsystem-tagged logger, mirroring the
// per-package UseLogger convention those packages expose.
func wireLoggers() {
	backend := slog.NewBackend(os.Stdout)
	for subsystem, use := range map[string]func(slog.Logger){
		"CRYP": crypto.UseLogger,
		"CORE": core.UseLogger,
		"CONS": consensus.UseLogger,
		"LEDG": ledger.UseLogger,
		"MEMP": mempool.UseLogger,
		"PROD": producer.UseLogger,
		"NAPI": nodeapi.UseLogger,
	} {
		l := backend.Logger(subsystem)
		l.SetLevel(slog.LevelInfo)
		use(l)
	}
}

func loadValidatorIdentity(cfg *config.NodeConfig) (crypto.PublicKey, crypto.PrivateKey, error) {
	if cfg.ValidatorSeedHex == "" {
		seed, err := crypto.NewRandomSeed()
		if err != nil {
			return crypto.PublicKey{}, crypto.PrivateKey{}, fmt.Errorf("generate validator seed: %w", err)
		}
		pub, priv := crypto.KeypairFromSeed(seed)
		log.Printf("AURONODE: generated ephemeral validator identity %s", pub)
		return pub, priv, nil
	}

	raw, err := hex.DecodeString(cfg.ValidatorSeedHex)
	if err != nil || len(raw) != crypto.SeedSize {
		return crypto.PublicKey{}, crypto.PrivateKey{}, errors.New("validator seed must be 64 hex characters")
	}
	var seed [crypto.SeedSize]byte
	copy(seed[:], raw)
	pub, priv := crypto.KeypairFromSeed(seed)
	return pub, priv, nil
}

func runNode(cfg *config.NodeConfig) (*producer.Producer, *mempool.Cleaner, *http.Server, error) {
	log.Println("AURONODE: initializing node components...")

	validatorPub, validatorPriv, err := loadValidatorIdentity(cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load validator identity: %w", err)
	}

	registry := consensus.NewRegistry()
	registry.RegisterValidator(validatorPub, validatorPub)

	consensusCfg := consensus.Config{
		ValidatorCount:   cfg.ValidatorCount,
		QuorumPercentage: cfg.QuorumPercentage,
	}
	ledgerCfg := ledger.Config{
		Consensus: consensusCfg,
		Monetary: monetary.Config{
			GrowthRatePerSemester: cfg.UDGrowthRate,
			SemesterDays:          cfg.SemesterDays,
			GenesisTime:           time.Now(),
		},
		CheckpointInterval: cfg.CheckpointInterval,
	}
	led := ledger.New(registry, ledgerCfg)
	log.Println("AURONODE: ledger initialized.")

	txMempool := mempool.New(cfg.MempoolCapacity, cfg.MempoolMaxAge())
	log.Println("AURONODE: mempool initialized.")

	blockProducer := producer.New(led, txMempool, registry, consensusCfg, validatorPub, validatorPriv, cfg.BlockInterval())
	blockProducer.Start()
	log.Println("AURONODE: block producer started.")

	mempoolCleaner := mempool.NewCleaner(txMempool, cfg.MempoolCleanupInterval())
	mempoolCleaner.Start()
	log.Println("AURONODE: mempool cleanup task started.")

	restServer := &http.Server{
		Addr:    cfg.ListenAddress,
		Handler: nodeapi.New(led, txMempool).Handler(),
	}

	return blockProducer, mempoolCleaner, restServer, nil
}

func main() {
	wireLoggers()
	log.Printf("AURONODE: starting, instance %s...", instanceid.String())

	cfg, err := config.ParseNodeConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("AURONODE: configuration error: %v", err)
	}

	blockProducer, mempoolCleaner, restServer, err := runNode(cfg)
	if err != nil {
		log.Fatalf("AURONODE: initialization failed: %v", err)
	}

	go func() {
		log.Printf("AURONODE: serving REST on %s", cfg.ListenAddress)
		if err := restServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("AURONODE: REST server error: %v", err)
		}
	}()

	shutdownChannel := make(chan os.Signal, 1)
	signal.Notify(shutdownChannel, os.Interrupt, syscall.SIGTERM)
	sig := <-shutdownChannel
	log.Printf("AURONODE: caught signal %v, shutting down...", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = restServer.Shutdown(ctx)

	blockProducer.Stop()
	mempoolCleaner.Stop()
	log.Println("AURONODE: shut down gracefully.")
}
