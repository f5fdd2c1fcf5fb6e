// Package crypto implements the hashing, signing, and key-derivation
// primitives shared by every other package in the ledger core: Blake3
// content hashing and Ed25519 signatures, both used for transactions,
// blocks, and validator identity.
package crypto

import (
	"bytes"
	"crypto/rand"

	"github.com/agl/ed25519"
	"github.com/decred/slog"
	"lukechampine.com/blake3"
)

var log = slog.Disabled

// UseLogger sets the package-wide logger; nothing in this package
// writes to it.
func UseLogger(logger slog.Logger) {
	log = logger
}

const (
	// HashSize is the length in bytes of a Blake3 digest.
	HashSize = 32
	// PublicKeySize is the length in bytes of an Ed25519 public key.
	PublicKeySize = ed25519.PublicKeySize
	// PrivateKeySize is the length in bytes of an Ed25519 expanded private key.
	PrivateKeySize = ed25519.PrivateKeySize
	// SignatureSize is the length in bytes of an Ed25519 signature.
	SignatureSize = ed25519.SignatureSize
	// SeedSize is the length in bytes of the seed used for deterministic
	// keypair derivation.
	SeedSize = 32
)

// Hash is a 32-byte Blake3 digest.
type Hash [HashSize]byte

// PublicKey is a 32-byte Ed25519 public key.
type PublicKey [PublicKeySize]byte

// PrivateKey is a 64-byte Ed25519 expanded private key (seed || public key).
type PrivateKey [PrivateKeySize]byte

// Signature is a 64-byte Ed25519 signature.
type Signature [SignatureSize]byte

// ZeroHash is the all-zero hash used as the previous-hash of the genesis block.
var ZeroHash Hash

// HashBytes computes the Blake3 digest of data.
func HashBytes(data []byte) Hash {
	return Hash(blake3.Sum256(data))
}

// Sign computes an Ed25519 signature over data using priv.
func Sign(data []byte, priv PrivateKey) Signature {
	privCopy := priv
	sig := ed25519.Sign((*[ed25519.PrivateKeySize]byte)(&privCopy), data)
	return Signature(*sig)
}

// Verify reports whether sig is a valid Ed25519 signature over data under pub.
func Verify(data []byte, sig Signature, pub PublicKey) bool {
	pubCopy := pub
	sigCopy := sig
	return ed25519.Verify((*[ed25519.PublicKeySize]byte)(&pubCopy), data, (*[ed25519.SignatureSize]byte)(&sigCopy))
}

// KeypairFromSeed deterministically derives an Ed25519 keypair from a
// 32-byte seed: identical seeds always yield identical keys. Used for
// wallet derivation (including from a biometric fingerprint digest) and
// validator identity.
func KeypairFromSeed(seed [SeedSize]byte) (PublicKey, PrivateKey) {
	pub, priv, err := ed25519.GenerateKey(bytes.NewReader(seed[:]))
	if err != nil {
		// bytes.Reader over a fixed 32-byte buffer never errors short of a
		// library version mismatch; a panic here indicates that mismatch.
		panic("crypto: deterministic keypair derivation failed: " + err.Error())
	}
	return PublicKey(*pub), PrivateKey(*priv)
}

// DeriveFromBiometric derives a keypair from a 32-byte biometric
// fingerprint digest, used by mobile wallet embeddings that seed identity
// from a device sensor rather than a stored seed phrase.
func DeriveFromBiometric(fingerprint [32]byte) (PublicKey, PrivateKey) {
	return KeypairFromSeed(fingerprint)
}

// NewRandomSeed returns a cryptographically random 32-byte seed, for
// callers that do not need deterministic derivation.
func NewRandomSeed() ([SeedSize]byte, error) {
	var seed [SeedSize]byte
	if _, err := rand.Read(seed[:]); err != nil {
		return seed, err
	}
	return seed, nil
}

// Bytes returns the hash as a byte slice.
func (h Hash) Bytes() []byte { return h[:] }

// String returns the lowercase hex encoding of the hash.
func (h Hash) String() string {
	return hexEncode(h[:])
}

// String returns the lowercase hex encoding of the public key.
func (p PublicKey) String() string {
	return hexEncode(p[:])
}

// IsZero reports whether h is the all-zero hash.
func (h Hash) IsZero() bool {
	return h == ZeroHash
}

func hexEncode(b []byte) string {
	const hextable = "0123456789abcdef"
	out := make([]byte, len(b)*2)
	for i, v := range b {
		out[i*2] = hextable[v>>4]
		out[i*2+1] = hextable[v&0x0f]
	}
	return string(out)
}
