package core

import (
	"encoding/json"
	"fmt"

	"github.com/aurora-chain/aurora-core/internal/crypto"
	"github.com/aurora-chain/aurora-core/internal/ledgererrors"
)

// TransactionTag classifies the purpose of a transaction. The only tag
// that permits sender == recipient is TagUniversalDividend, since a
// dividend credit has no natural distinct sender.
type TransactionTag int

const (
	TagTransfer TransactionTag = iota
	TagRentalPayment
	TagShopPurchase
	TagTeleport
	TagUniversalDividend
	TagNFT
)

func (t TransactionTag) String() string {
	switch t {
	case TagTransfer:
		return "Transfer"
	case TagRentalPayment:
		return "RentalPayment"
	case TagShopPurchase:
		return "ShopPurchase"
	case TagTeleport:
		return "Teleport"
	case TagUniversalDividend:
		return "UniversalDividend"
	case TagNFT:
		return "NFT"
	default:
		return "Unknown"
	}
}

// maxMemoBytes bounds the free-text memo field carried by a transaction.
const maxMemoBytes = 256

// Transaction is a signed transfer of Amount from Sender to Recipient.
type Transaction struct {
	Sender    crypto.PublicKey
	Recipient crypto.PublicKey
	Amount    Amount
	Fee       Amount
	Timestamp int64
	Tag       TransactionTag
	Memo      string
	Signature crypto.Signature

	hash    crypto.Hash
	hasHash bool
}

// canonicalTransaction is the exact set of fields hashed to produce a
// transaction's content hash. The signature and any cached hash are
// deliberately excluded: the struct's field order is what makes
// json.Marshal deterministic here, so it must never be reordered without
// treating that as a wire-format break.
type canonicalTransaction struct {
	Sender    crypto.PublicKey
	Recipient crypto.PublicKey
	Amount    Amount
	Fee       Amount
	Timestamp int64
	Tag       TransactionTag
	Memo      string
}

// CanonicalBytes returns the deterministic byte encoding hashed to
// produce the transaction's content hash.
func (t *Transaction) CanonicalBytes() []byte {
	b, err := json.Marshal(canonicalTransaction{
		Sender:    t.Sender,
		Recipient: t.Recipient,
		Amount:    t.Amount,
		Fee:       t.Fee,
		Timestamp: t.Timestamp,
		Tag:       t.Tag,
		Memo:      t.Memo,
	})
	if err != nil {
		// canonicalTransaction contains only fixed-size and string fields;
		// json.Marshal cannot fail on it.
		panic("core: canonical transaction encoding failed: " + err.Error())
	}
	return b
}

// Hash returns the transaction's content hash, computed over
// CanonicalBytes and cached after the first call.
func (t *Transaction) Hash() crypto.Hash {
	if !t.hasHash {
		t.hash = crypto.HashBytes(t.CanonicalBytes())
		t.hasHash = true
	}
	return t.hash
}

// Sign computes the canonical hash and signs it with priv, setting
// Signature. The caller is responsible for ensuring priv corresponds to
// Sender.
func (t *Transaction) Sign(priv crypto.PrivateKey) {
	t.hasHash = false
	h := t.Hash()
	t.Signature = crypto.Sign(h[:], priv)
}

// Validate reports whether the transaction satisfies the structural
// invariants: the signature verifies against Sender over the
// recomputed canonical hash, Amount > 0, Fee >= 0, and Sender != Recipient
// unless Tag is TagUniversalDividend.
func (t *Transaction) Validate() error {
	if t.Amount <= 0 {
		return ledgererrors.ErrNonPositiveAmount
	}
	if t.Fee < 0 {
		return ledgererrors.ErrNegativeFee
	}
	if t.Sender == t.Recipient && t.Tag != TagUniversalDividend {
		return ledgererrors.ErrSelfTransferDisallowed
	}
	if len(t.Memo) > maxMemoBytes {
		return fmt.Errorf("%w: memo exceeds %d bytes", ledgererrors.ErrInvalidTransaction, maxMemoBytes)
	}
	t.hasHash = false
	h := t.Hash()
	if !crypto.Verify(h[:], t.Signature, t.Sender) {
		return ledgererrors.ErrBadSignature
	}
	return nil
}

// SplitRoyalty divides amount between a seller and the original creator
// of an NFT-tagged transaction according to royaltyBps basis points
// (1bps = 0.01%). A 5% royalty (500 bps) on 100 units yields
// sellerReceives=95, creatorReceives=5.
func SplitRoyalty(amount Amount, royaltyBps uint32) (sellerReceives, creatorReceives Amount) {
	creatorReceives = Amount(int64(amount) * int64(royaltyBps) / 10_000)
	sellerReceives = amount - creatorReceives
	return sellerReceives, creatorReceives
}
