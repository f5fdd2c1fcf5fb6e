package bridgeapi_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aurora-chain/aurora-core/internal/bridge"
	"github.com/aurora-chain/aurora-core/internal/bridgeapi"
	"github.com/aurora-chain/aurora-core/internal/ratelimit"
)

func newTestServer() *bridgeapi.Server {
	pool := bridge.NewPool(10000, 10000)
	guard := ratelimit.New(ratelimit.Limits{Daily: 5000, Monthly: 50000})
	return bridgeapi.New(pool, guard)
}

func TestHandleHealth(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleStats(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/bridge/stats", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleQuote(t *testing.T) {
	server := newTestServer()
	body, _ := json.Marshal(map[string]any{"direction": "a_to_b", "amount": 100})
	req := httptest.NewRequest(http.MethodPost, "/bridge/quote", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var quote bridge.Quote
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &quote))
	require.InDelta(t, 98.921, quote.Output, 0.01)
}

func TestHandleQuoteUnknownDirection(t *testing.T) {
	server := newTestServer()
	body, _ := json.Marshal(map[string]any{"direction": "sideways", "amount": 100})
	req := httptest.NewRequest(http.MethodPost, "/bridge/quote", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleExchange(t *testing.T) {
	server := newTestServer()
	body, _ := json.Marshal(map[string]any{
		"direction":      "a_to_b",
		"amount":         100,
		"wallet_address": "wallet-1",
	})
	req := httptest.NewRequest(http.MethodPost, "/bridge/exchange", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleExchangeMissingWalletAddress(t *testing.T) {
	server := newTestServer()
	body, _ := json.Marshal(map[string]any{"direction": "a_to_b", "amount": 100})
	req := httptest.NewRequest(http.MethodPost, "/bridge/exchange", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
