package moralis

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/walletping/walletping/internal/chains"
	transporthttp "github.com/walletping/walletping/internal/pkg/transport/http"
	"github.com/walletping/walletping/internal/streamsync"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(serverURL string) *Client {
	return NewClient(
		transporthttp.NewClient(transporthttp.WithRetryMax(0)),
		"test-api-key",
		WithEVMBaseURL(serverURL),
		WithSingleLedgerBaseURL(serverURL),
	)
}

func TestClient_CreateStream(t *testing.T) {
	t.Run("creates an EVM stream", func(t *testing.T) {
		var captured createStreamPayload
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPut, r.Method)
			assert.Equal(t, "/streams/evm", r.URL.Path)
			assert.Equal(t, "test-api-key", r.Header.Get("X-API-Key"))
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"id":"stream-1"}`))
		}))
		defer srv.Close()

		id, err := newTestClient(srv.URL).CreateStream(t.Context(), streamsync.StreamRequest{
			Family:        chains.FamilyEVM,
			ChainSelector: "0x1",
			Address:       "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
			WebhookURL:    "https://alerts.example.com/streams/moralis",
		})
		require.NoError(t, err)
		assert.Equal(t, "stream-1", id)

		assert.Equal(t, []string{"0x1"}, captured.ChainIDs)
		assert.Empty(t, captured.Network)
		assert.Equal(t, "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", captured.Address)
		assert.Equal(t, "https://alerts.example.com/streams/moralis", captured.WebhookURL)
		assert.NotEmpty(t, captured.Tag)
		assert.True(t, captured.IncludeNativeTxs)
		assert.True(t, captured.IncludeContractLogs)
	})

	t.Run("routes single-ledger streams to the network field and path", func(t *testing.T) {
		var captured createStreamPayload
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/streams/sl", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
			w.Write([]byte(`{"id":"stream-sol"}`))
		}))
		defer srv.Close()

		id, err := newTestClient(srv.URL).CreateStream(t.Context(), streamsync.StreamRequest{
			Family:        chains.FamilySingleLedger,
			ChainSelector: "mainnet",
			Address:       "4Nd1mYQMbZw8bSyPzAwoXBvkK3t2xMLnYEWkpzRrDdAu",
			WebhookURL:    "https://alerts.example.com/streams/moralis",
		})
		require.NoError(t, err)
		assert.Equal(t, "stream-sol", id)

		assert.Equal(t, "mainnet", captured.Network)
		assert.Empty(t, captured.ChainIDs)
	})

	t.Run("fails on a non-2xx status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		_, err := newTestClient(srv.URL).CreateStream(t.Context(), streamsync.StreamRequest{
			Family:        chains.FamilyEVM,
			ChainSelector: "0x1",
		})
		assert.ErrorContains(t, err, "status 401")
	})

	t.Run("fails when the response carries no stream id", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		_, err := newTestClient(srv.URL).CreateStream(t.Context(), streamsync.StreamRequest{
			Family:        chains.FamilyEVM,
			ChainSelector: "0x1",
		})
		assert.ErrorContains(t, err, "no id")
	})
}

func TestClient_DeleteStream(t *testing.T) {
	t.Run("deletes by stream id", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodDelete, r.Method)
			assert.Equal(t, "/streams/evm/stream-1", r.URL.Path)
			assert.Equal(t, "test-api-key", r.Header.Get("X-API-Key"))
			w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		require.NoError(t, newTestClient(srv.URL).DeleteStream(t.Context(), chains.FamilyEVM, "stream-1"))
	})

	t.Run("an already-absent stream deletes successfully", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		require.NoError(t, newTestClient(srv.URL).DeleteStream(t.Context(), chains.FamilyEVM, "stream-1"))
	})

	t.Run("uses the single-ledger path for that family", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/streams/sl/stream-sol", r.URL.Path)
			w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		require.NoError(t, newTestClient(srv.URL).DeleteStream(t.Context(), chains.FamilySingleLedger, "stream-sol"))
	})

	t.Run("fails on a server error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		err := newTestClient(srv.URL).DeleteStream(t.Context(), chains.FamilyEVM, "stream-1")
		assert.Error(t, err)
	})
}
