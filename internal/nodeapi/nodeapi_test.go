package nodeapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aurora-chain/aurora-core/internal/consensus"
	"github.com/aurora-chain/aurora-core/internal/crypto"
	"github.com/aurora-chain/aurora-core/internal/ledger"
	"github.com/aurora-chain/aurora-core/internal/mempool"
	"github.com/aurora-chain/aurora-core/internal/monetary"
	"github.com/aurora-chain/aurora-core/internal/nodeapi"
)

func newTestServer(t *testing.T) (*nodeapi.Server, *ledger.Ledger, crypto.PublicKey) {
	t.Helper()
	registry := consensus.NewRegistry()
	l := ledger.New(registry, ledger.Config{
		Consensus:          consensus.DefaultConfig(),
		Monetary:           monetary.DefaultConfig(time.Now().Add(-time.Hour)),
		CheckpointInterval: 10,
	})

	var seed [crypto.SeedSize]byte
	seed[0] = 3
	validatorPub, _ := crypto.KeypairFromSeed(seed)
	_, err := l.CreateGenesis(validatorPub)
	require.NoError(t, err)

	mp := mempool.New(10, time.Hour)
	return nodeapi.New(l, mp), l, validatorPub
}

func TestHandleHealth(t *testing.T) {
	server, _, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "ok", body["status"])
	require.Equal(t, "auronode", body["service"])
}

func TestHandleHeightAndLastBlock(t *testing.T) {
	server, _, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/blockchain/height", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/blockchain/last_block", nil)
	rec = httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleBlockByHeightNotFound(t *testing.T) {
	server, _, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/blockchain/block/99", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleBalanceMalformedHex(t *testing.T) {
	server, _, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/blockchain/balance/not-hex", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleMempoolSize(t *testing.T) {
	server, _, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/mempool/size", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, 0, body["size"])
}
