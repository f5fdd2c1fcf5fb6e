package core

import (
	"encoding/json"

	"github.com/aurora-chain/aurora-core/internal/crypto"
	"github.com/aurora-chain/aurora-core/internal/ledgererrors"
	"github.com/aurora-chain/aurora-core/internal/merkle"
)

// ProtocolVersion is the block header version produced by this build.
const ProtocolVersion uint32 = 1

// BlockHeader is the hashed portion of a block. The block hash is
// derived from the header alone so that validator signatures, which
// bind to the block hash, are well-defined.
type BlockHeader struct {
	Height              int64
	PreviousHash        crypto.Hash
	MerkleRoot          crypto.Hash
	Timestamp           int64
	ValidatorPublicKey  crypto.PublicKey
	Version             uint32
}

// ValidatorSignature binds a block hash to a validator's key.
type ValidatorSignature struct {
	Validator crypto.PublicKey
	Signature crypto.Signature
}

// Block is a header plus its ordered transactions and the validator
// signatures gathered for it.
type Block struct {
	Header       BlockHeader
	Transactions []*Transaction
	Signatures   []ValidatorSignature

	hash    crypto.Hash
	hasHash bool
}

// NewBlock constructs a block at height with the given previous hash and
// transactions, computing its Merkle root and caching its hash.
func NewBlock(height int64, previousHash crypto.Hash, txs []*Transaction, proposer crypto.PublicKey, timestamp int64) *Block {
	b := &Block{
		Header: BlockHeader{
			Height:             height,
			PreviousHash:       previousHash,
			Timestamp:          timestamp,
			ValidatorPublicKey: proposer,
			Version:            ProtocolVersion,
		},
		Transactions: txs,
	}
	b.Header.MerkleRoot = merkleRootOf(txs)
	b.Hash()
	return b
}

func merkleRootOf(txs []*Transaction) crypto.Hash {
	leaves := make([]crypto.Hash, len(txs))
	for i, tx := range txs {
		leaves[i] = tx.Hash()
	}
	return merkle.BuildRoot(leaves)
}

// canonicalHeader mirrors BlockHeader field-for-field; its purpose is to
// document that the block hash is a pure function of the header, same as
// canonicalTransaction does for transactions.
type canonicalHeader = BlockHeader

// CanonicalBytes returns the deterministic encoding of the block header
// that is hashed to produce the block hash.
func (b *Block) CanonicalBytes() []byte {
	out, err := json.Marshal(canonicalHeader(b.Header))
	if err != nil {
		panic("core: canonical block header encoding failed: " + err.Error())
	}
	return out
}

// Hash returns the block's hash, computed over CanonicalBytes and cached
// after the first call.
func (b *Block) Hash() crypto.Hash {
	if !b.hasHash {
		b.hash = crypto.HashBytes(b.CanonicalBytes())
		b.hasHash = true
	}
	return b.hash
}

// AddValidatorSignature appends sig for validator if no signature from
// that key is already present.
func (b *Block) AddValidatorSignature(validator crypto.PublicKey, sig crypto.Signature) error {
	for _, existing := range b.Signatures {
		if existing.Validator == validator {
			return ledgererrors.ErrDuplicateValidatorSignature
		}
	}
	b.Signatures = append(b.Signatures, ValidatorSignature{Validator: validator, Signature: sig})
	return nil
}

// RequiredQuorum returns the smallest integer count of signatures that is
// at least 67% of totalValidators, rounding up.
func RequiredQuorum(totalValidators int) int {
	return ceilPercentage(totalValidators, 67)
}

func ceilPercentage(total, percentage int) int {
	return (total*percentage + 99) / 100
}

// HasQuorum reports whether the block carries at least
// ceil(0.67 * totalValidators) validator signatures. With zero
// validators registered, quorum is trivially satisfied.
func (b *Block) HasQuorum(totalValidators int) bool {
	if totalValidators == 0 {
		return true
	}
	return len(b.Signatures) >= RequiredQuorum(totalValidators)
}

// Validate checks the block's structural invariants against the
// expected previous hash: previousHash must match the header, height
// must be positive when a non-zero previous hash is supplied, every
// transaction must individually validate, the computed Merkle root must
// match the header, and every validator signature must verify against
// the block hash.
func (b *Block) Validate(previousHash crypto.Hash) error {
	if b.Header.PreviousHash != previousHash {
		return ledgererrors.ErrWrongPreviousHash
	}
	if !previousHash.IsZero() && b.Header.Height <= 0 {
		return ledgererrors.ErrWrongHeight
	}
	for _, tx := range b.Transactions {
		if err := tx.Validate(); err != nil {
			return ledgererrors.ErrInvalidTransactionInBlock
		}
	}
	if merkleRootOf(b.Transactions) != b.Header.MerkleRoot {
		return ledgererrors.ErrMerkleMismatch
	}
	blockHash := b.Hash()
	for _, vs := range b.Signatures {
		if !crypto.Verify(blockHash[:], vs.Signature, vs.Validator) {
			return ledgererrors.ErrInvalidValidatorSignature
		}
	}
	return nil
}
