package consensus

import (
	"sort"
	"sync"
	"time"

	"github.com/aurora-chain/aurora-core/internal/crypto"
)

// reputationFloor and reputationCeiling bound a validator's reputation
// score; it starts at 1.0 and is nudged by UpdateReputation after every
// round.
const (
	reputationFloor   = 0.1
	reputationCeiling = 2.0
	reputationInitial = 1.0
	reputationSuccessFactor = 1.01
	reputationFailureFactor = 0.95
)

// ValidatorInfo is a registered validator's reputation and liveness
// record.
type ValidatorInfo struct {
	PublicKey     crypto.PublicKey
	WalletAddress crypto.PublicKey
	Reputation    float64
	LastActive    time.Time
}

// Registry is the set of validators eligible for selection, guarded by a
// read-write lock since reads (selection) vastly outnumber writes
// (register/unregister/reputation updates).
type Registry struct {
	mu         sync.RWMutex
	validators map[crypto.PublicKey]*ValidatorInfo
}

// NewRegistry returns an empty validator registry.
func NewRegistry() *Registry {
	return &Registry{validators: make(map[crypto.PublicKey]*ValidatorInfo)}
}

// RegisterValidator adds a validator with starting reputation 1.0. Called
// again for an already-registered key resets its reputation.
func (r *Registry) RegisterValidator(key, wallet crypto.PublicKey) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.validators[key] = &ValidatorInfo{
		PublicKey:     key,
		WalletAddress: wallet,
		Reputation:    reputationInitial,
		LastActive:    time.Now(),
	}
	log.Debugf("CONSENSUS: registered validator %s", key)
}

// UnregisterValidator removes a validator from the registry.
func (r *Registry) UnregisterValidator(key crypto.PublicKey) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.validators, key)
	log.Debugf("CONSENSUS: unregistered validator %s", key)
}

// UpdateReputation applies the success/failure reputation rule and
// refreshes the validator's last-active timestamp. A no-op if key is not
// registered.
func (r *Registry) UpdateReputation(key crypto.PublicKey, success bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	info, ok := r.validators[key]
	if !ok {
		return
	}
	if success {
		info.Reputation = min(info.Reputation*reputationSuccessFactor, reputationCeiling)
	} else {
		info.Reputation = max(info.Reputation*reputationFailureFactor, reputationFloor)
	}
	info.LastActive = time.Now()
}

// Count returns the number of registered validators.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.validators)
}

// snapshot returns a stable-ordered copy of the current registry, sorted
// by public key ascending so selection ties break deterministically.
func (r *Registry) snapshot() []ValidatorInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]ValidatorInfo, 0, len(r.validators))
	for _, info := range r.validators {
		out = append(out, *info)
	}
	sort.Slice(out, func(i, j int) bool {
		return lessPublicKey(out[i].PublicKey, out[j].PublicKey)
	})
	return out
}

func lessPublicKey(a, b crypto.PublicKey) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
