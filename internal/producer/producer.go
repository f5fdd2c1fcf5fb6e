// Package producer assembles and finalizes blocks at a fixed cadence,
// draining the mempool's highest-priority transactions into each block
// it submits to the ledger. Built on a ticker-plus-stopChan goroutine
// lifecycle, the same shape mempool.Cleaner uses.
package producer

import (
	"sync"
	"time"

	"github.com/decred/slog"

	"github.com/aurora-chain/aurora-core/internal/consensus"
	"github.com/aurora-chain/aurora-core/internal/core"
	"github.com/aurora-chain/aurora-core/internal/crypto"
	"github.com/aurora-chain/aurora-core/internal/ledger"
	"github.com/aurora-chain/aurora-core/internal/mempool"
)

var log = slog.Disabled

// UseLogger sets the package-wide logger.
func UseLogger(logger slog.Logger) {
	log = logger
}

// maxTransactionsPerBlock bounds how many mempool entries a single tick
// drains into a block.
const maxTransactionsPerBlock = 100

// Producer periodically assembles a block from the mempool's top
// transactions, signs it as its validator identity when the RVS round
// selects that identity, and submits it to the ledger.
type Producer struct {
	ledger        *ledger.Ledger
	mempool       *mempool.Mempool
	registry      *consensus.Registry
	consensusCfg  consensus.Config
	validatorPub  crypto.PublicKey
	validatorPriv crypto.PrivateKey
	interval      time.Duration

	stopChan chan struct{}
	wg       sync.WaitGroup
}

// New returns a producer that proposes blocks as validator (identified
// by validatorPub/validatorPriv) at the given tick interval (default
// 5s), consulting registry for RVS selection and reputation updates.
func New(l *ledger.Ledger, mp *mempool.Mempool, registry *consensus.Registry, consensusCfg consensus.Config, validatorPub crypto.PublicKey, validatorPriv crypto.PrivateKey, interval time.Duration) *Producer {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &Producer{
		ledger:        l,
		mempool:       mp,
		registry:      registry,
		consensusCfg:  consensusCfg,
		validatorPub:  validatorPub,
		validatorPriv: validatorPriv,
		interval:      interval,
		stopChan:      make(chan struct{}),
	}
}

// Start begins the periodic production loop in a background goroutine.
// If the ledger has no genesis block yet, the loop creates one before
// its first tick.
func (p *Producer) Start() {
	p.wg.Add(1)
	go p.run()
	log.Info("PRODUCER: started")
}

// Stop signals the production loop to exit and waits for it to finish.
func (p *Producer) Stop() {
	close(p.stopChan)
	p.wg.Wait()
	log.Info("PRODUCER: stopped")
}

func (p *Producer) run() {
	defer p.wg.Done()

	if p.ledger.GetLatestBlock() == nil {
		if _, err := p.ledger.CreateGenesis(p.validatorPub); err != nil {
			log.Errorf("PRODUCER: failed to create genesis: %v", err)
		}
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.stopChan:
			return
		case <-ticker.C:
			p.tick()
		}
	}
}

// tick performs one best-effort production attempt: any failure is
// logged and retried on the next tick. A tick is skipped outright if
// this producer's validator identity is not part of the RVS-selected
// set for the round (vacuously selected when no validators are
// registered at all, matching the ledger's own quorum bypass).
func (p *Producer) tick() {
	latest := p.ledger.GetLatestBlock()
	if latest == nil {
		log.Warn("PRODUCER: no genesis block yet, skipping tick")
		return
	}

	height := latest.Header.Height + 1
	prevHash := latest.Hash()

	if p.registry.Count() > 0 {
		selection := p.registry.SelectValidators(prevHash, p.consensusCfg)
		if !consensus.IsValidatorSelected(p.validatorPub, selection) {
			log.Debugf("PRODUCER: not selected for round at height %d, skipping tick", height)
			return
		}
	}

	txs := p.mempool.GetTransactionsForBlock(maxTransactionsPerBlock)
	block := core.NewBlock(height, prevHash, txs, p.validatorPub, time.Now().Unix())

	blockHash := block.Hash()
	sig := crypto.Sign(blockHash[:], p.validatorPriv)
	if err := block.AddValidatorSignature(p.validatorPub, sig); err != nil {
		log.Errorf("PRODUCER: failed to attach validator signature at height %d: %v", height, err)
		return
	}

	if err := p.ledger.AddBlock(block); err != nil {
		log.Errorf("PRODUCER: failed to add block at height %d: %v", height, err)
		p.registry.UpdateReputation(p.validatorPub, false)
		return
	}
	p.registry.UpdateReputation(p.validatorPub, true)

	hashes := make([]crypto.Hash, len(txs))
	for i, tx := range txs {
		hashes[i] = tx.Hash()
	}
	p.mempool.Remove(hashes)

	log.Infof("PRODUCER: produced block %s at height %d with %d transactions", block.Hash(), height, len(txs))
}
