// Package nodeapi is the thin net/http boundary adapter exposing the
// node's REST surface. No router library appears anywhere in this
// module's dependency stack, so this boundary layer — explicitly out of
// core scope — is built directly on net/http rather than adopting one.
package nodeapi

import (
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/decred/slog"

	"github.com/aurora-chain/aurora-core/internal/core"
	"github.com/aurora-chain/aurora-core/internal/crypto"
	"github.com/aurora-chain/aurora-core/internal/instanceid"
	"github.com/aurora-chain/aurora-core/internal/ledger"
	"github.com/aurora-chain/aurora-core/internal/mempool"
)

var log = slog.Disabled

// UseLogger sets the package-wide logger.
func UseLogger(logger slog.Logger) {
	log = logger
}

// Server serves the node's REST surface over the given ledger and
// mempool.
type Server struct {
	ledger  *ledger.Ledger
	mempool *mempool.Mempool
}

// New returns a node REST server.
func New(l *ledger.Ledger, mp *mempool.Mempool) *Server {
	return &Server{ledger: l, mempool: mp}
}

// Handler returns the http.Handler implementing every route in the
// node REST surface.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /blockchain/height", s.handleHeight)
	mux.HandleFunc("GET /blockchain/last_block", s.handleLastBlock)
	mux.HandleFunc("GET /blockchain/block/{height}", s.handleBlockByHeight)
	mux.HandleFunc("GET /blockchain/balance/{key}", s.handleBalance)
	mux.HandleFunc("POST /transaction/submit", s.handleSubmitTransaction)
	mux.HandleFunc("GET /mempool/size", s.handleMempoolSize)
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":      "ok",
		"service":     "auronode",
		"instance_id": instanceid.String(),
	})
}

func (s *Server) handleHeight(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]int64{"height": s.ledger.CurrentHeight()})
}

func (s *Server) handleLastBlock(w http.ResponseWriter, r *http.Request) {
	block := s.ledger.GetLatestBlock()
	if block == nil {
		writeError(w, http.StatusNotFound, "no blocks yet")
		return
	}
	writeJSON(w, http.StatusOK, blockToWire(block))
}

func (s *Server) handleBlockByHeight(w http.ResponseWriter, r *http.Request) {
	height, err := strconv.ParseInt(r.PathValue("height"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed height")
		return
	}
	block, ok := s.ledger.GetBlockByHeight(height)
	if !ok {
		writeError(w, http.StatusNotFound, "block not found")
		return
	}
	writeJSON(w, http.StatusOK, blockToWire(block))
}

func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	raw := r.PathValue("key")
	key, err := decodePublicKey(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed hex public key")
		return
	}
	balance := s.ledger.GetBalance(key)
	writeJSON(w, http.StatusOK, map[string]any{
		"address": hex.EncodeToString(key[:]),
		"balance": balance.Float64(),
	})
}

type submitTransactionRequest struct {
	Sender    string  `json:"sender"`
	Recipient string  `json:"recipient"`
	Amount    float64 `json:"amount"`
	Fee       float64 `json:"fee"`
	Timestamp int64   `json:"timestamp"`
	Tag       int     `json:"tag"`
	Memo      string  `json:"memo"`
	Signature string  `json:"signature"`
}

func (s *Server) handleSubmitTransaction(w http.ResponseWriter, r *http.Request) {
	var req submitTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	sender, err := decodePublicKey(req.Sender)
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed sender key")
		return
	}
	recipient, err := decodePublicKey(req.Recipient)
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed recipient key")
		return
	}
	sig, err := decodeSignature(req.Signature)
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed signature")
		return
	}

	tx := &core.Transaction{
		Sender:    sender,
		Recipient: recipient,
		Amount:    core.AmountFromFloat64(req.Amount),
		Fee:       core.AmountFromFloat64(req.Fee),
		Timestamp: req.Timestamp,
		Tag:       core.TransactionTag(req.Tag),
		Memo:      req.Memo,
		Signature: sig,
	}

	if err := s.mempool.Add(tx); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "accepted",
		"tx_hash": tx.Hash().String(),
	})
}

func (s *Server) handleMempoolSize(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]int{"size": s.mempool.Count()})
}

type wireBlock struct {
	Height             int64                `json:"height"`
	PreviousHash       string               `json:"previous_hash"`
	MerkleRoot         string               `json:"merkle_root"`
	Timestamp          int64                `json:"timestamp"`
	ValidatorPublicKey string               `json:"validator_public_key"`
	Version            uint32               `json:"version"`
	TransactionCount   int                  `json:"transaction_count"`
	SignatureCount     int                  `json:"signature_count"`
}

func blockToWire(b *core.Block) wireBlock {
	return wireBlock{
		Height:             b.Header.Height,
		PreviousHash:       b.Header.PreviousHash.String(),
		MerkleRoot:         b.Header.MerkleRoot.String(),
		Timestamp:          b.Header.Timestamp,
		ValidatorPublicKey: b.Header.ValidatorPublicKey.String(),
		Version:            b.Header.Version,
		TransactionCount:   len(b.Transactions),
		SignatureCount:     len(b.Signatures),
	}
}

func decodePublicKey(s string) (crypto.PublicKey, error) {
	var out crypto.PublicKey
	raw, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil || len(raw) != crypto.PublicKeySize {
		return out, errMalformedHex
	}
	copy(out[:], raw)
	return out, nil
}

func decodeSignature(s string) (crypto.Signature, error) {
	var out crypto.Signature
	raw, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil || len(raw) != crypto.SignatureSize {
		return out, errMalformedHex
	}
	copy(out[:], raw)
	return out, nil
}

var errMalformedHex = &malformedHexError{}

type malformedHexError struct{}

func (*malformedHexError) Error() string { return "malformed hex encoding or length" }

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
