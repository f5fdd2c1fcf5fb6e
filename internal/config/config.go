// Package config parses the node and bridge processes' command-line
// configuration with go-flags, the option-parsing library used
// elsewhere in this module's dependency stack.
package config

import (
	"time"

	"github.com/jessevdk/go-flags"
)

// NodeConfig holds every tunable ledger parameter for the full-node
// process.
type NodeConfig struct {
	BlockIntervalSeconds int     `long:"block-interval" default:"5" description:"seconds between block-producer ticks"`
	ValidatorCount       int     `long:"validator-count" default:"10" description:"validators selected per RVS round"`
	QuorumPercentage     int     `long:"quorum-percentage" default:"67" description:"percent of active validators required for quorum"`
	UDGrowthRate         float64 `long:"ud-growth-rate" default:"0.0488" description:"Universal Dividend growth rate per semester"`
	SemesterDays         int64   `long:"semester-days" default:"183" description:"length of a semester in days"`
	CheckpointInterval   int64   `long:"checkpoint-interval" default:"100" description:"blocks between checkpoints"`
	MempoolCapacity      int     `long:"mempool-capacity" default:"10000" description:"maximum pending transactions held"`
	MempoolMaxAgeSeconds int     `long:"mempool-max-age" default:"3600" description:"seconds before a pending transaction is evicted"`
	MempoolCleanupSeconds int    `long:"mempool-cleanup-interval" default:"30" description:"seconds between mempool expiry sweeps"`
	ListenAddress        string  `long:"listen" default:":8080" description:"REST listen address"`
	ValidatorSeedHex     string  `long:"validator-seed" description:"hex-encoded 32-byte seed for this node's validator identity"`
}

// BridgeConfig holds every tunable parameter for the bridge process.
type BridgeConfig struct {
	SeedReserveA        float64 `long:"seed-reserve-a" default:"10000" description:"initial reserve of asset A"`
	SeedReserveB        float64 `long:"seed-reserve-b" default:"10000" description:"initial reserve of asset B"`
	DailyLimit          float64 `long:"daily-limit" default:"5000" description:"per-user daily exchange volume limit"`
	MonthlyLimit        float64 `long:"monthly-limit" default:"50000" description:"per-user monthly exchange volume limit"`
	ListenAddress       string  `long:"listen" default:":8081" description:"REST listen address"`
}

// BlockInterval returns the configured block-producer cadence as a
// time.Duration.
func (c NodeConfig) BlockInterval() time.Duration {
	return time.Duration(c.BlockIntervalSeconds) * time.Second
}

// MempoolMaxAge returns the configured mempool eviction age as a
// time.Duration.
func (c NodeConfig) MempoolMaxAge() time.Duration {
	return time.Duration(c.MempoolMaxAgeSeconds) * time.Second
}

// MempoolCleanupInterval returns the configured mempool expiry-sweep
// cadence as a time.Duration.
func (c NodeConfig) MempoolCleanupInterval() time.Duration {
	return time.Duration(c.MempoolCleanupSeconds) * time.Second
}

// ParseNodeConfig parses args (typically os.Args[1:]) into a NodeConfig,
// applying defaults for any flag not supplied.
func ParseNodeConfig(args []string) (*NodeConfig, error) {
	var cfg NodeConfig
	parser := flags.NewParser(&cfg, flags.Default)
	if _, err := parser.ParseArgs(args); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ParseBridgeConfig parses args into a BridgeConfig, applying defaults
// for any flag not supplied.
func ParseBridgeConfig(args []string) (*BridgeConfig, error) {
	var cfg BridgeConfig
	parser := flags.NewParser(&cfg, flags.Default)
	if _, err := parser.ParseArgs(args); err != nil {
		return nil, err
	}
	return &cfg, nil
}
