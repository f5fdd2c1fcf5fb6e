// Package wallet is the key-management and transaction-construction
// backend for mobile and CLI wallet embeddings: keypair derivation
// (from a stored seed or a biometric fingerprint digest), transaction
// building, and signing.
package wallet

import (
	"github.com/aurora-chain/aurora-core/internal/core"
	"github.com/aurora-chain/aurora-core/internal/crypto"
)

// Wallet holds a single Ed25519 keypair and builds signed transactions
// from it.
type Wallet struct {
	PublicKey  crypto.PublicKey
	privateKey crypto.PrivateKey
}

// New constructs a wallet from an already-derived keypair.
func New(pub crypto.PublicKey, priv crypto.PrivateKey) *Wallet {
	return &Wallet{PublicKey: pub, privateKey: priv}
}

// FromSeed deterministically derives a wallet's keypair from a 32-byte
// seed phrase digest.
func FromSeed(seed [crypto.SeedSize]byte) *Wallet {
	pub, priv := crypto.KeypairFromSeed(seed)
	return New(pub, priv)
}

// FromBiometric derives a wallet's keypair from a 32-byte biometric
// fingerprint digest, the mobile-embedding path that skips a stored
// seed phrase entirely.
func FromBiometric(fingerprint [32]byte) *Wallet {
	pub, priv := crypto.DeriveFromBiometric(fingerprint)
	return New(pub, priv)
}

// BuildTransaction constructs and signs a transaction sending amount (in
// whole coins) to recipient, tagged tag, with the given fee and
// timestamp.
func (w *Wallet) BuildTransaction(recipient crypto.PublicKey, amount, fee float64, tag core.TransactionTag, timestamp int64, memo string) *core.Transaction {
	tx := &core.Transaction{
		Sender:    w.PublicKey,
		Recipient: recipient,
		Amount:    core.AmountFromFloat64(amount),
		Fee:       core.AmountFromFloat64(fee),
		Timestamp: timestamp,
		Tag:       tag,
		Memo:      memo,
	}
	tx.Sign(w.privateKey)
	return tx
}
