// Package bridge implements the constant-product automated market maker
// that exchanges the native ledger token against an external
// complementary currency.
package bridge

import (
	"encoding/hex"
	"math"
	"sync"

	"github.com/decred/slog"

	"github.com/aurora-chain/aurora-core/internal/crypto"
	"github.com/aurora-chain/aurora-core/internal/ledgererrors"
)

var log = slog.Disabled

// UseLogger sets the package-wide logger.
func UseLogger(logger slog.Logger) {
	log = logger
}

// Direction identifies which asset is the trade's input.
type Direction int

const (
	// DirectionAToB trades asset A for asset B.
	DirectionAToB Direction = iota
	// DirectionBToA trades asset B for asset A.
	DirectionBToA
)

// DefaultFee is phi, the AMM's per-trade fee rate (0.1%).
const DefaultFee = 0.001

// Quote is the outcome of pricing a trade without executing it.
type Quote struct {
	Input  float64
	Output float64
	Fee    float64
	Rate   float64
}

// ExchangeResult is the outcome of an executed trade.
type ExchangeResult struct {
	TxHash         string
	AmountReceived float64
	Fee            float64
}

// Pool is a two-asset constant-product AMM pool. quote is lock-free over
// a snapshot taken under a read lock; execute serializes over the pool
// under a write lock, so reserves never change mid-trade.
type Pool struct {
	mu        sync.RWMutex
	reserveA  float64
	reserveB  float64
	k         float64
	fee       float64
	tradeSeq  uint64
}

// NewPool returns a pool seeded with reserveA and reserveB at the
// default fee rate.
func NewPool(reserveA, reserveB float64) *Pool {
	return &Pool{
		reserveA: reserveA,
		reserveB: reserveB,
		k:        reserveA * reserveB,
		fee:      DefaultFee,
	}
}

// Reserves returns the current pool reserves and product invariant.
func (p *Pool) Reserves() (reserveA, reserveB, k float64) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.reserveA, p.reserveB, p.k
}

// Quote prices a trade of x units in the given direction without
// mutating the pool.
func (p *Pool) Quote(direction Direction, x float64) (Quote, error) {
	p.mu.RLock()
	reserveA, reserveB := p.reserveA, p.reserveB
	k, fee := p.k, p.fee
	p.mu.RUnlock()

	return quoteAgainst(reserveA, reserveB, k, fee, direction, x)
}

func quoteAgainst(reserveA, reserveB, k, fee float64, direction Direction, x float64) (Quote, error) {
	if x <= 0 {
		return Quote{}, ledgererrors.ErrAmountTooSmall
	}

	in, out := reserveA, reserveB
	if direction == DirectionBToA {
		in, out = reserveB, reserveA
	}

	xPrime := x * (1 - fee)
	newIn := in + xPrime
	newOut := k / newIn
	y := out - newOut
	if y <= 0 {
		return Quote{}, ledgererrors.ErrInsufficientReserves
	}

	return Quote{
		Input:  x,
		Output: y,
		Fee:    x * fee,
		Rate:   y / x,
	}, nil
}

// Execute prices and applies a trade of x units in the given direction,
// mutating reserves and recomputing k. Only the fee-net input
// x*(1-fee) is added to the inbound reserve, so the fee is not retained
// in the pool and k after a trade equals k before it up to
// floating-point rounding.
func (p *Pool) Execute(direction Direction, x float64) (ExchangeResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	quote, err := quoteAgainst(p.reserveA, p.reserveB, p.k, p.fee, direction, x)
	if err != nil {
		return ExchangeResult{}, err
	}

	xNet := x * (1 - p.fee)
	switch direction {
	case DirectionAToB:
		p.reserveA += xNet
		p.reserveB -= quote.Output
	case DirectionBToA:
		p.reserveB += xNet
		p.reserveA -= quote.Output
	}
	p.k = p.reserveA * p.reserveB
	p.tradeSeq++

	txHash := tradeHash(direction, x, p.tradeSeq)
	log.Infof("BRIDGE: executed trade %s direction=%d amount=%.6f output=%.6f", txHash, direction, x, quote.Output)

	return ExchangeResult{
		TxHash:         txHash,
		AmountReceived: quote.Output,
		Fee:            quote.Fee,
	}, nil
}

func tradeHash(direction Direction, x float64, seq uint64) string {
	buf := make([]byte, 0, 17)
	buf = append(buf, byte(direction))
	buf = append(buf, uint64ToBytes(math.Float64bits(x))...)
	buf = append(buf, uint64ToBytes(seq)...)
	h := crypto.HashBytes(buf)
	return hex.EncodeToString(h[:])
}

func uint64ToBytes(v uint64) []byte {
	out := make([]byte, 8)
	for i := 0; i < 8; i++ {
		out[i] = byte(v >> (8 * i))
	}
	return out
}
