// Package mempool holds transactions awaiting block inclusion, ordered
// by a fee-to-amount priority and subject to capacity and age eviction.
package mempool

import (
	"sort"
	"sync"
	"time"

	"github.com/decred/slog"

	"github.com/aurora-chain/aurora-core/internal/core"
	"github.com/aurora-chain/aurora-core/internal/crypto"
	"github.com/aurora-chain/aurora-core/internal/ledgererrors"
)

var log = slog.Disabled

// UseLogger sets the package-wide logger.
func UseLogger(logger slog.Logger) {
	log = logger
}

// epsilon floors the denominator of the priority ratio (in whole coins),
// so a very small amount cannot inflate priority without bound. Zero
// amounts never reach the ratio: Add rejects them through Validate.
const epsilon = 0.001

// entry is one transaction held in the mempool along with its admission
// bookkeeping.
type entry struct {
	tx         *core.Transaction
	receivedAt time.Time
	priority   float64
}

// Mempool is a capacity-bounded, age-bounded pool of pending
// transactions keyed by content hash.
type Mempool struct {
	mu       sync.RWMutex
	entries  map[crypto.Hash]*entry
	order    []crypto.Hash // insertion order, oldest first, for capacity eviction
	capacity int
	maxAge   time.Duration
}

// New returns an empty mempool bounded by capacity entries and maxAge.
func New(capacity int, maxAge time.Duration) *Mempool {
	return &Mempool{
		entries:  make(map[crypto.Hash]*entry),
		capacity: capacity,
		maxAge:   maxAge,
	}
}

// Add validates tx, rejects duplicates by hash, evicts the oldest entry
// if the pool is at capacity, then admits tx with its computed priority.
func (mp *Mempool) Add(tx *core.Transaction) error {
	if err := tx.Validate(); err != nil {
		return ledgererrors.ErrInvalidTransaction
	}

	mp.mu.Lock()
	defer mp.mu.Unlock()

	h := tx.Hash()
	if _, exists := mp.entries[h]; exists {
		return ledgererrors.ErrAlreadyExists
	}

	if mp.capacity > 0 && len(mp.entries) >= mp.capacity {
		mp.evictOldestLocked()
	}

	priority := float64(tx.Fee) / max64(float64(tx.Amount), epsilon*core.MicroUnitsPerUnit)
	mp.entries[h] = &entry{tx: tx, receivedAt: time.Now(), priority: priority}
	mp.order = append(mp.order, h)
	log.Debugf("MEMPOOL: admitted %s priority=%.6f", h, priority)
	return nil
}

func (mp *Mempool) evictOldestLocked() {
	for len(mp.order) > 0 {
		oldest := mp.order[0]
		mp.order = mp.order[1:]
		if _, ok := mp.entries[oldest]; ok {
			delete(mp.entries, oldest)
			return
		}
	}
}

// GetTransactionsForBlock returns up to max transactions, excluding any
// older than maxAge, ordered by priority descending (ties broken by
// older received-at first).
func (mp *Mempool) GetTransactionsForBlock(max int) []*core.Transaction {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	now := time.Now()
	live := make([]*entry, 0, len(mp.entries))
	for _, e := range mp.entries {
		if now.Sub(e.receivedAt) > mp.maxAge {
			continue
		}
		live = append(live, e)
	}

	sort.Slice(live, func(i, j int) bool {
		if live[i].priority != live[j].priority {
			return live[i].priority > live[j].priority
		}
		return live[i].receivedAt.Before(live[j].receivedAt)
	})

	if max > 0 && len(live) > max {
		live = live[:max]
	}

	out := make([]*core.Transaction, len(live))
	for i, e := range live {
		out[i] = e.tx
	}
	return out
}

// Remove drops each given hash from the pool; hashes not present are
// ignored.
func (mp *Mempool) Remove(hashes []crypto.Hash) {
	mp.mu.Lock()
	defer mp.mu.Unlock()
	for _, h := range hashes {
		delete(mp.entries, h)
	}
}

// CleanupExpired drops every entry whose age exceeds maxAge.
func (mp *Mempool) CleanupExpired() int {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	now := time.Now()
	removed := 0
	for h, e := range mp.entries {
		if now.Sub(e.receivedAt) > mp.maxAge {
			delete(mp.entries, h)
			removed++
		}
	}
	return removed
}

// Count returns the number of transactions currently held.
func (mp *Mempool) Count() int {
	mp.mu.RLock()
	defer mp.mu.RUnlock()
	return len(mp.entries)
}

func max64(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
