// Package ratelimit guards per-user transfer volume with sliding daily
// and monthly windows, used by the bridge to bound how much a single
// wallet can move.
package ratelimit

import (
	"sync"
	"time"

	"github.com/decred/slog"

	"github.com/aurora-chain/aurora-core/internal/crypto"
	"github.com/aurora-chain/aurora-core/internal/ledgererrors"
)

var log = slog.Disabled

// UseLogger sets the package-wide logger.
func UseLogger(logger slog.Logger) {
	log = logger
}

const (
	// DailyWindow is the duration of the daily sliding window.
	DailyWindow = 86_400 * time.Second
	// MonthlyWindow is the duration of the monthly sliding window.
	MonthlyWindow = 2_592_000 * time.Second
)

// record is one user's rolling volume bookkeeping.
type record struct {
	dailyVolume        float64
	dailyWindowStart   time.Time
	monthlyVolume      float64
	monthlyWindowStart time.Time
}

// Limits bounds the volume a user may move within each window.
type Limits struct {
	Daily   float64
	Monthly float64
}

// Guard tracks per-user rate-limit state. Check both decides and
// mutates atomically under the guard's single lock, so a check can
// never race its own update.
type Guard struct {
	mu      sync.Mutex
	records map[crypto.PublicKey]*record
	limits  Limits
}

// New returns a guard enforcing the given daily/monthly limits.
func New(limits Limits) *Guard {
	return &Guard{
		records: make(map[crypto.PublicKey]*record),
		limits:  limits,
	}
}

// Check evaluates whether user may move amount now: resets any window
// that has fully elapsed, rejects if either limit would be exceeded, and
// otherwise records the volume and succeeds.
func (g *Guard) Check(user crypto.PublicKey, amount float64, now time.Time) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	r, ok := g.records[user]
	if !ok {
		r = &record{dailyWindowStart: now, monthlyWindowStart: now}
		g.records[user] = r
	}

	if now.Sub(r.dailyWindowStart) >= DailyWindow {
		r.dailyVolume = 0
		r.dailyWindowStart = now
	}
	if now.Sub(r.monthlyWindowStart) >= MonthlyWindow {
		r.monthlyVolume = 0
		r.monthlyWindowStart = now
	}

	if r.dailyVolume+amount > g.limits.Daily {
		return ledgererrors.ErrDailyLimitExceeded
	}
	if r.monthlyVolume+amount > g.limits.Monthly {
		return ledgererrors.ErrMonthlyLimitExceeded
	}

	r.dailyVolume += amount
	r.monthlyVolume += amount
	return nil
}
