// Package ledger is the blockchain state machine: it applies blocks of
// transactions atomically against a balance map, mints and distributes
// the Universal Dividend on day boundaries, and emits checkpoints for
// light-client fast sync. It is grounded on the same struct-plus-RWMutex
// shape the rest of this module's stateful components use.
package ledger

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/decred/slog"

	"github.com/aurora-chain/aurora-core/internal/consensus"
	"github.com/aurora-chain/aurora-core/internal/core"
	"github.com/aurora-chain/aurora-core/internal/crypto"
	"github.com/aurora-chain/aurora-core/internal/ledgererrors"
	"github.com/aurora-chain/aurora-core/internal/monetary"
)

var log = slog.Disabled

// UseLogger sets the package-wide logger.
func UseLogger(logger slog.Logger) {
	log = logger
}

// Checkpoint summarizes a block and the ledger state at its height, so a
// light client can skip ahead without replaying every intervening block.
type Checkpoint struct {
	Height    int64
	BlockHash crypto.Hash
	StateHash crypto.Hash
	Timestamp time.Time
	Interval  int64
}

// Config holds the ledger's tunable parameters.
type Config struct {
	Consensus          consensus.Config
	Monetary           monetary.Config
	CheckpointInterval int64
}

// Ledger maintains the canonical chain of blocks, the balance map they
// produce, the validator registry, and periodic checkpoints.
type Ledger struct {
	mu sync.RWMutex

	blocks   []*core.Block
	balances map[crypto.PublicKey]core.Amount

	totalMass          core.Amount
	lastDUDistribution time.Time

	registry    *consensus.Registry
	cfg         Config
	checkpoints []Checkpoint
}

// New returns an empty ledger (no genesis block yet) wired to registry
// and configured by cfg.
func New(registry *consensus.Registry, cfg Config) *Ledger {
	return &Ledger{
		balances: make(map[crypto.PublicKey]core.Amount),
		registry: registry,
		cfg:      cfg,
	}
}

// CreateGenesis creates the height-0 block with an all-zero previous
// hash and no transactions, identified by validator. Fails if a block
// already exists.
func (l *Ledger) CreateGenesis(validator crypto.PublicKey) (*core.Block, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.blocks) > 0 {
		return nil, ledgererrors.ErrGenesisAlreadyExists
	}

	now := time.Now()
	genesis := core.NewBlock(0, crypto.ZeroHash, nil, validator, now.Unix())
	l.blocks = append(l.blocks, genesis)
	l.lastDUDistribution = now
	log.Infof("LEDGER: created genesis block %s", genesis.Hash())
	return genesis, nil
}

// CurrentHeight returns the height of the last appended block, or -1 if
// no block (not even genesis) has been appended.
func (l *Ledger) CurrentHeight() int64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return int64(len(l.blocks)) - 1
}

// GetLatestBlock returns the most recently appended block, or nil if the
// ledger is empty.
func (l *Ledger) GetLatestBlock() *core.Block {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if len(l.blocks) == 0 {
		return nil
	}
	return l.blocks[len(l.blocks)-1]
}

// GetBlockByHeight returns the block at height, or false if out of
// range.
func (l *Ledger) GetBlockByHeight(height int64) (*core.Block, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if height < 0 || height >= int64(len(l.blocks)) {
		return nil, false
	}
	return l.blocks[height], true
}

// GetBalance returns key's current balance. Unknown keys have a zero
// balance and are not members of the UD distribution.
func (l *Ledger) GetBalance(key crypto.PublicKey) core.Amount {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.balances[key]
}

// MemberCount returns the number of accounts currently tracked by the
// ledger, used as N in the Universal Dividend formula.
func (l *Ledger) MemberCount() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return uint64(len(l.balances))
}

// Credit directly credits key with amount, used to seed initial balances
// (e.g. a faucet or a bridge mint) outside of transaction application.
// It participates in the same lock as AddBlock.
func (l *Ledger) Credit(key crypto.PublicKey, amount core.Amount) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[key] += amount
	l.totalMass += amount
}

// AddBlock validates block against the current chain tip, applies its
// transactions atomically, distributes the Universal Dividend if a day
// boundary has elapsed, and — on a checkpoint height — records a
// checkpoint. Any failure leaves the ledger completely unmodified.
func (l *Ledger) AddBlock(block *core.Block) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	prevHash := crypto.ZeroHash
	if len(l.blocks) > 0 {
		prevHash = l.blocks[len(l.blocks)-1].Hash()
	}

	if err := block.Validate(prevHash); err != nil {
		return err
	}
	if block.Header.Height != int64(len(l.blocks)) {
		return ledgererrors.ErrWrongHeight
	}
	if total := l.registry.Count(); total > 0 && !block.HasQuorum(total) {
		return ledgererrors.ErrInvalidQuorum
	}

	// Apply against a working copy so a mid-block failure cannot leave
	// partial debits/credits visible.
	working := make(map[crypto.PublicKey]core.Amount, len(l.balances))
	for k, v := range l.balances {
		working[k] = v
	}
	workingMass := l.totalMass

	for _, tx := range block.Transactions {
		senderBalance := working[tx.Sender]
		if senderBalance < tx.Amount+tx.Fee {
			return fmt.Errorf("%w: sender %s has %d, needs %d", ledgererrors.ErrInsufficientBalance, tx.Sender, senderBalance, tx.Amount+tx.Fee)
		}
		working[tx.Sender] = senderBalance - tx.Amount - tx.Fee
		working[tx.Recipient] += tx.Amount
		workingMass -= tx.Fee
	}

	now := time.Unix(block.Header.Timestamp, 0)
	if now.Sub(l.lastDUDistribution) >= 24*time.Hour {
		du := l.cfg.Monetary.DailyUDPerMember(workingMass.Float64(), uint64(len(working)), now)
		duAmount := core.AmountFromFloat64(du)
		if duAmount > 0 {
			for k := range working {
				working[k] += duAmount
			}
			workingMass += duAmount * core.Amount(len(working))
		}
		l.lastDUDistribution = now
	}

	l.balances = working
	l.totalMass = workingMass
	l.blocks = append(l.blocks, block)

	height := int64(len(l.blocks) - 1)
	if l.cfg.CheckpointInterval > 0 && height > 0 && height%l.cfg.CheckpointInterval == 0 {
		l.checkpoints = append(l.checkpoints, Checkpoint{
			Height:    height,
			BlockHash: block.Hash(),
			StateHash: l.stateHashLocked(),
			Timestamp: now,
			Interval:  l.cfg.CheckpointInterval,
		})
	}

	log.Infof("LEDGER: appended block %s at height %d", block.Hash(), height)
	return nil
}

// Checkpoints returns every checkpoint recorded so far, oldest first.
func (l *Ledger) Checkpoints() []Checkpoint {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Checkpoint, len(l.checkpoints))
	copy(out, l.checkpoints)
	return out
}

// stateHashLocked computes the hash of the canonical serialization of the
// balances map; callers must hold l.mu.
func (l *Ledger) stateHashLocked() crypto.Hash {
	type balanceEntry struct {
		Key     crypto.PublicKey
		Balance core.Amount
	}
	entries := make([]balanceEntry, 0, len(l.balances))
	for k, v := range l.balances {
		entries = append(entries, balanceEntry{Key: k, Balance: v})
	}
	sort.Slice(entries, func(i, j int) bool {
		return lessPublicKey(entries[i].Key, entries[j].Key)
	})
	b, err := json.Marshal(entries)
	if err != nil {
		panic("ledger: canonical state encoding failed: " + err.Error())
	}
	return crypto.HashBytes(b)
}

func lessPublicKey(a, b crypto.PublicKey) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
