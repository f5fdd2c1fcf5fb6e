package consensus

import (
	"encoding/binary"
	"sort"
	"time"

	"github.com/aurora-chain/aurora-core/internal/crypto"
)

// Config holds the tunable parameters of the RVS round: how many
// validators to select per block and what fraction of them must sign
// for a block to reach quorum.
type Config struct {
	ValidatorCount   int
	QuorumPercentage int
}

// DefaultConfig returns the default RVS parameters: 10 validators
// selected per round, 67% quorum.
func DefaultConfig() Config {
	return Config{ValidatorCount: 10, QuorumPercentage: 67}
}

// Selection is the deterministic outcome of one round of validator
// selection.
type Selection struct {
	SelectedValidators []crypto.PublicKey
	PreviousBlockHash  crypto.Hash
	Timestamp          time.Time
}

// candidate pairs a validator key with its adjusted selection score.
type candidate struct {
	key   crypto.PublicKey
	score uint64
}

// SelectValidators deterministically picks up to cfg.ValidatorCount
// validators from the registry, seeded by previousBlockHash. For each
// registered validator it hashes previousBlockHash‖publicKey, takes the
// first 8 bytes little-endian as a base score, scales it by the
// validator's reputation, then sorts descending by that adjusted score
// (ties broken by ascending public key). The result is a pure function
// of the registry snapshot and the seed: any two nodes with the same
// registry state compute the same selection.
func (r *Registry) SelectValidators(previousBlockHash crypto.Hash, cfg Config) Selection {
	validators := r.snapshot()
	candidates := make([]candidate, len(validators))
	for i, v := range validators {
		candidates[i] = candidate{
			key:   v.PublicKey,
			score: adjustedScore(previousBlockHash, v.PublicKey, v.Reputation),
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return lessPublicKey(candidates[i].key, candidates[j].key)
	})

	n := cfg.ValidatorCount
	if n > len(candidates) {
		n = len(candidates)
	}
	selected := make([]crypto.PublicKey, n)
	for i := 0; i < n; i++ {
		selected[i] = candidates[i].key
	}

	return Selection{
		SelectedValidators: selected,
		PreviousBlockHash:  previousBlockHash,
		Timestamp:          time.Now(),
	}
}

func adjustedScore(previousBlockHash crypto.Hash, key crypto.PublicKey, reputation float64) uint64 {
	message := make([]byte, 0, crypto.HashSize+crypto.PublicKeySize)
	message = append(message, previousBlockHash[:]...)
	message = append(message, key[:]...)
	h := crypto.HashBytes(message)
	base := binary.LittleEndian.Uint64(h[:8])
	return uint64(float64(base) * reputation)
}

// IsValidatorSelected reports whether key appears in selection.
func IsValidatorSelected(key crypto.PublicKey, selection Selection) bool {
	for _, v := range selection.SelectedValidators {
		if v == key {
			return true
		}
	}
	return false
}

// RequiredQuorum returns ceil(cfg.ValidatorCount * cfg.QuorumPercentage / 100).
func RequiredQuorum(cfg Config) int {
	return (cfg.ValidatorCount*cfg.QuorumPercentage + 99) / 100
}
