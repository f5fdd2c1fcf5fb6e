package ledger_test

import (
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"

	"github.com/aurora-chain/aurora-core/internal/consensus"
	"github.com/aurora-chain/aurora-core/internal/core"
	"github.com/aurora-chain/aurora-core/internal/crypto"
	"github.com/aurora-chain/aurora-core/internal/ledger"
	"github.com/aurora-chain/aurora-core/internal/ledgererrors"
	"github.com/aurora-chain/aurora-core/internal/monetary"
)

func keyFromByte(b byte) (crypto.PublicKey, crypto.PrivateKey) {
	var seed [crypto.SeedSize]byte
	for i := range seed {
		seed[i] = b
	}
	return crypto.KeypairFromSeed(seed)
}

func newTestLedger() *ledger.Ledger {
	registry := consensus.NewRegistry()
	cfg := ledger.Config{
		Consensus:          consensus.DefaultConfig(),
		Monetary:           monetary.DefaultConfig(time.Unix(0, 0)),
		CheckpointInterval: 10,
	}
	return ledger.New(registry, cfg)
}

func TestCreateGenesisUniqueness(t *testing.T) {
	l := newTestLedger()
	validatorPub, _ := keyFromByte(1)

	_, err := l.CreateGenesis(validatorPub)
	require.NoError(t, err)

	_, err = l.CreateGenesis(validatorPub)
	require.ErrorIs(t, err, ledgererrors.ErrGenesisAlreadyExists)
}

func TestAddBlockAppliesTransactionsAtomically(t *testing.T) {
	l := newTestLedger()
	validatorPub, _ := keyFromByte(1)
	genesis, err := l.CreateGenesis(validatorPub)
	require.NoError(t, err)

	senderPub, senderPriv := keyFromByte(2)
	recipientPub, _ := keyFromByte(3)
	l.Credit(senderPub, core.AmountFromFloat64(100))

	tx := &core.Transaction{
		Sender:    senderPub,
		Recipient: recipientPub,
		Amount:    core.AmountFromFloat64(10),
		Fee:       core.AmountFromFloat64(1),
		Timestamp: time.Now().Unix(),
		Tag:       core.TagTransfer,
	}
	tx.Sign(senderPriv)

	block := core.NewBlock(1, genesis.Hash(), []*core.Transaction{tx}, validatorPub, time.Now().Unix())
	require.NoError(t, l.AddBlock(block))

	senderBalance := l.GetBalance(senderPub)
	recipientBalance := l.GetBalance(recipientPub)
	dump := spew.Sdump(map[string]core.Amount{"sender": senderBalance, "recipient": recipientBalance})

	require.Equal(t, core.AmountFromFloat64(89), senderBalance, "post-apply balances:\n%s", dump)
	require.Equal(t, core.AmountFromFloat64(10), recipientBalance, "post-apply balances:\n%s", dump)
}

func TestAddBlockInsufficientBalanceLeavesLedgerUnchanged(t *testing.T) {
	l := newTestLedger()
	validatorPub, _ := keyFromByte(1)
	genesis, err := l.CreateGenesis(validatorPub)
	require.NoError(t, err)

	senderPub, senderPriv := keyFromByte(2)
	recipientPub, _ := keyFromByte(3)

	tx := &core.Transaction{
		Sender:    senderPub,
		Recipient: recipientPub,
		Amount:    core.AmountFromFloat64(10),
		Timestamp: time.Now().Unix(),
		Tag:       core.TagTransfer,
	}
	tx.Sign(senderPriv)

	block := core.NewBlock(1, genesis.Hash(), []*core.Transaction{tx}, validatorPub, time.Now().Unix())
	require.ErrorIs(t, l.AddBlock(block), ledgererrors.ErrInsufficientBalance)
	require.Equal(t, int64(0), l.CurrentHeight())
	require.Equal(t, core.Amount(0), l.GetBalance(senderPub))
}

func TestAddBlockWrongHeightRejected(t *testing.T) {
	l := newTestLedger()
	validatorPub, _ := keyFromByte(1)
	genesis, err := l.CreateGenesis(validatorPub)
	require.NoError(t, err)

	block := core.NewBlock(5, genesis.Hash(), nil, validatorPub, time.Now().Unix())
	require.ErrorIs(t, l.AddBlock(block), ledgererrors.ErrWrongHeight)
}

func TestAddBlockDistributesUniversalDividendAcrossDayBoundary(t *testing.T) {
	l := newTestLedger()
	validatorPub, _ := keyFromByte(1)
	genesis, err := l.CreateGenesis(validatorPub)
	require.NoError(t, err)

	memberA, _ := keyFromByte(2)
	memberB, _ := keyFromByte(3)
	l.Credit(memberA, core.AmountFromFloat64(1000))
	l.Credit(memberB, core.AmountFromFloat64(2000))

	mass := l.GetBalance(memberA).Float64() + l.GetBalance(memberB).Float64()
	memberCount := l.MemberCount()

	futureTime := time.Now().Add(25 * time.Hour)
	futureTimestamp := futureTime.Unix()

	cfg := monetary.DefaultConfig(time.Unix(0, 0))
	expectedDividend := core.AmountFromFloat64(cfg.DailyUDPerMember(mass, memberCount, time.Unix(futureTimestamp, 0)))
	require.Greater(t, expectedDividend, core.Amount(0))

	block := core.NewBlock(1, genesis.Hash(), nil, validatorPub, futureTimestamp)
	require.NoError(t, l.AddBlock(block))

	require.Equal(t, core.AmountFromFloat64(1000)+expectedDividend, l.GetBalance(memberA))
	require.Equal(t, core.AmountFromFloat64(2000)+expectedDividend, l.GetBalance(memberB))
}

func TestAddBlockNoDividendBeforeDayBoundary(t *testing.T) {
	l := newTestLedger()
	validatorPub, _ := keyFromByte(1)
	genesis, err := l.CreateGenesis(validatorPub)
	require.NoError(t, err)

	memberA, _ := keyFromByte(2)
	l.Credit(memberA, core.AmountFromFloat64(1000))

	block := core.NewBlock(1, genesis.Hash(), nil, validatorPub, time.Now().Unix())
	require.NoError(t, l.AddBlock(block))

	require.Equal(t, core.AmountFromFloat64(1000), l.GetBalance(memberA))
}

func TestAddBlockRecordsCheckpointAtInterval(t *testing.T) {
	l := newTestLedger()
	validatorPub, _ := keyFromByte(1)
	genesis, err := l.CreateGenesis(validatorPub)
	require.NoError(t, err)

	require.Empty(t, l.Checkpoints())

	baseTime := time.Now()
	prevHash := genesis.Hash()
	var lastBlock *core.Block
	for height := int64(1); height <= 10; height++ {
		block := core.NewBlock(height, prevHash, nil, validatorPub, baseTime.Add(time.Duration(height)*time.Second).Unix())
		require.NoError(t, l.AddBlock(block))
		prevHash = block.Hash()
		lastBlock = block
	}

	checkpoints := l.Checkpoints()
	require.Len(t, checkpoints, 1)
	require.Equal(t, int64(10), checkpoints[0].Height)
	require.Equal(t, lastBlock.Hash(), checkpoints[0].BlockHash)
	require.NotEqual(t, crypto.ZeroHash, checkpoints[0].StateHash)
	require.Equal(t, int64(10), checkpoints[0].Interval)
}
