package core_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aurora-chain/aurora-core/internal/core"
	"github.com/aurora-chain/aurora-core/internal/crypto"
	"github.com/aurora-chain/aurora-core/internal/ledgererrors"
)

func newKeypair(t *testing.T, seedByte byte) (crypto.PublicKey, crypto.PrivateKey) {
	t.Helper()
	var seed [crypto.SeedSize]byte
	for i := range seed {
		seed[i] = seedByte
	}
	return crypto.KeypairFromSeed(seed)
}

func TestTransactionValidate(t *testing.T) {
	senderPub, senderPriv := newKeypair(t, 1)
	recipientPub, _ := newKeypair(t, 2)

	tx := &core.Transaction{
		Sender:    senderPub,
		Recipient: recipientPub,
		Amount:    core.AmountFromFloat64(10),
		Fee:       core.AmountFromFloat64(0.1),
		Timestamp: 1_700_000_000,
		Tag:       core.TagTransfer,
	}
	tx.Sign(senderPriv)

	require.NoError(t, tx.Validate())
}

func TestTransactionValidateBadSignature(t *testing.T) {
	senderPub, _ := newKeypair(t, 1)
	_, otherPriv := newKeypair(t, 3)
	recipientPub, _ := newKeypair(t, 2)

	tx := &core.Transaction{
		Sender:    senderPub,
		Recipient: recipientPub,
		Amount:    core.AmountFromFloat64(10),
		Timestamp: 1_700_000_000,
		Tag:       core.TagTransfer,
	}
	tx.Sign(otherPriv)

	require.ErrorIs(t, tx.Validate(), ledgererrors.ErrBadSignature)
}

func TestTransactionNonPositiveAmount(t *testing.T) {
	senderPub, senderPriv := newKeypair(t, 1)
	recipientPub, _ := newKeypair(t, 2)

	tx := &core.Transaction{
		Sender:    senderPub,
		Recipient: recipientPub,
		Amount:    0,
		Timestamp: 1_700_000_000,
		Tag:       core.TagTransfer,
	}
	tx.Sign(senderPriv)

	require.ErrorIs(t, tx.Validate(), ledgererrors.ErrNonPositiveAmount)
}

func TestTransactionSelfTransferDisallowedUnlessUD(t *testing.T) {
	pub, priv := newKeypair(t, 1)

	tx := &core.Transaction{
		Sender:    pub,
		Recipient: pub,
		Amount:    core.AmountFromFloat64(1),
		Timestamp: 1_700_000_000,
		Tag:       core.TagTransfer,
	}
	tx.Sign(priv)
	require.ErrorIs(t, tx.Validate(), ledgererrors.ErrSelfTransferDisallowed)

	tx.Tag = core.TagUniversalDividend
	tx.Sign(priv)
	require.NoError(t, tx.Validate())
}

func TestTransactionHashStableAcrossCalls(t *testing.T) {
	senderPub, senderPriv := newKeypair(t, 1)
	recipientPub, _ := newKeypair(t, 2)

	tx := &core.Transaction{
		Sender:    senderPub,
		Recipient: recipientPub,
		Amount:    core.AmountFromFloat64(10),
		Timestamp: 1_700_000_000,
		Tag:       core.TagTransfer,
	}
	tx.Sign(senderPriv)

	h1 := tx.Hash()
	h2 := tx.Hash()
	require.Equal(t, h1, h2)
}

func TestSplitRoyalty(t *testing.T) {
	seller, creator := core.SplitRoyalty(core.AmountFromFloat64(100), 500)
	require.Equal(t, core.AmountFromFloat64(95), seller)
	require.Equal(t, core.AmountFromFloat64(5), creator)
}
