// Package consensus implements Random Validator Selection (RVS): a
// reputation-weighted, previous-block-hash-seeded deterministic
// selection of the validators eligible to sign the next block, plus the
// quorum arithmetic used to decide whether a block has enough
// signatures to be accepted.
package consensus

import "github.com/decred/slog"

var log = slog.Disabled

// UseLogger sets the package-wide logger.
func UseLogger(logger slog.Logger) {
	log = logger
}
