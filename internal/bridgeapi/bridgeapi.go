// Package bridgeapi is the thin net/http boundary adapter exposing the
// bridge's REST surface, mirroring nodeapi's stdlib-only approach since
// no router library appears anywhere in this module's dependency stack.
package bridgeapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/decred/slog"

	"github.com/aurora-chain/aurora-core/internal/bridge"
	"github.com/aurora-chain/aurora-core/internal/crypto"
	"github.com/aurora-chain/aurora-core/internal/instanceid"
	"github.com/aurora-chain/aurora-core/internal/ratelimit"
)

var log = slog.Disabled

// UseLogger sets the package-wide logger.
func UseLogger(logger slog.Logger) {
	log = logger
}

// Server serves the bridge's REST surface over the given pool and
// rate-limit guard.
type Server struct {
	pool  *bridge.Pool
	guard *ratelimit.Guard
}

// New returns a bridge REST server.
func New(pool *bridge.Pool, guard *ratelimit.Guard) *Server {
	return &Server{pool: pool, guard: guard}
}

// Handler returns the http.Handler implementing every route in the
// bridge REST surface.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /bridge/stats", s.handleStats)
	mux.HandleFunc("POST /bridge/quote", s.handleQuote)
	mux.HandleFunc("POST /bridge/exchange", s.handleExchange)
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":      "ok",
		"service":     "aurobridge",
		"instance_id": instanceid.String(),
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	reserveA, reserveB, k := s.pool.Reserves()
	writeJSON(w, http.StatusOK, map[string]any{
		"reserves": map[string]float64{"a": reserveA, "b": reserveB},
		"pool": map[string]float64{
			"r_a":   reserveA,
			"r_b":   reserveB,
			"k":     k,
			"fee_%": bridge.DefaultFee * 100,
		},
	})
}

type directionRequest struct {
	Direction string  `json:"direction"`
	Amount    float64 `json:"amount"`
}

func parseDirection(s string) (bridge.Direction, bool) {
	switch s {
	case "a_to_b":
		return bridge.DirectionAToB, true
	case "b_to_a":
		return bridge.DirectionBToA, true
	default:
		return 0, false
	}
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	var req directionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	direction, ok := parseDirection(req.Direction)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown direction")
		return
	}

	quote, err := s.pool.Quote(direction, req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

type exchangeRequest struct {
	Direction     string  `json:"direction"`
	Amount        float64 `json:"amount"`
	WalletAddress string  `json:"wallet_address"`
}

func (s *Server) handleExchange(w http.ResponseWriter, r *http.Request) {
	var req exchangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	direction, ok := parseDirection(req.Direction)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown direction")
		return
	}

	if req.WalletAddress == "" {
		writeError(w, http.StatusBadRequest, "missing wallet address")
		return
	}
	user := walletAddressToKey(req.WalletAddress)

	if err := s.guard.Check(user, req.Amount, time.Now()); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.pool.Execute(direction, req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func walletAddressToKey(addr string) crypto.PublicKey {
	var key crypto.PublicKey
	h := crypto.HashBytes([]byte(addr))
	copy(key[:], h[:])
	return key
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
