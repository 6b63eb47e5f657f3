package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"medichain-service/config"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func mirrorClient(tokenURL, mirrorURL string) *MirrorLedgerClient {
	return NewMirrorLedgerClient(config.LedgerConfig{
		TokenServiceURL: tokenURL,
		MirrorNodeURL:   mirrorURL,
		Timeout:         5 * time.Second,
	}, quietLogger())
}

func TestLocalLedgerClient_MintTokenIsDeterministic(t *testing.T) {
	client := NewLocalLedgerClient()

	first, err := client.MintToken(context.Background(), MintRequest{ConsultationID: "abc-123"})
	require.NoError(t, err)
	second, err := client.MintToken(context.Background(), MintRequest{ConsultationID: "abc-123"})
	require.NoError(t, err)
	other, err := client.MintToken(context.Background(), MintRequest{ConsultationID: "abc-124"})
	require.NoError(t, err)

	assert.Equal(t, first, second, "same consultation must mint the same token id")
	assert.NotEqual(t, first, other)
	assert.True(t, strings.HasPrefix(first, "0.0."))
}

func TestLocalLedgerClient_VerifyTransaction(t *testing.T) {
	client := NewLocalLedgerClient()

	ok, err := client.VerifyTransaction(context.Background(), "0xabc")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = client.VerifyTransaction(context.Background(), "")
	assert.ErrorIs(t, err, ErrTransactionNotFound)
}

func TestMirrorLedgerClient_MintToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/tokens/mint", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req MintRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "MEDPASS", req.Symbol)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"token_id": "0.0.98765"})
	}))
	defer server.Close()

	client := mirrorClient(server.URL, server.URL)

	tokenID, err := client.MintToken(context.Background(), MintRequest{
		ConsultationID: "c-1",
		Name:           "Dr. Sarah Johnson Consultation Pass",
		Symbol:         "MEDPASS",
	})

	require.NoError(t, err)
	assert.Equal(t, "0.0.98765", tokenID)
}

func TestMirrorLedgerClient_MintTokenServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := mirrorClient(server.URL, server.URL)

	_, err := client.MintToken(context.Background(), MintRequest{ConsultationID: "c-1"})
	assert.Error(t, err)
}

func TestMirrorLedgerClient_MintTokenEmptyTokenID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"token_id": ""})
	}))
	defer server.Close()

	client := mirrorClient(server.URL, server.URL)

	_, err := client.MintToken(context.Background(), MintRequest{ConsultationID: "c-1"})
	assert.Error(t, err)
}

func TestMirrorLedgerClient_VerifyTransaction(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/transactions/0xabc123", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"transactions": []map[string]string{{"result": "SUCCESS"}},
		})
	}))
	defer server.Close()

	client := mirrorClient(server.URL, server.URL)

	verified, err := client.VerifyTransaction(context.Background(), "0xabc123")
	require.NoError(t, err)
	assert.True(t, verified)
}

func TestMirrorLedgerClient_VerifyTransactionFailedResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"transactions": []map[string]string{{"result": "INSUFFICIENT_PAYER_BALANCE"}},
		})
	}))
	defer server.Close()

	client := mirrorClient(server.URL, server.URL)

	verified, err := client.VerifyTransaction(context.Background(), "0xabc123")
	require.NoError(t, err)
	assert.False(t, verified)
}

func TestMirrorLedgerClient_VerifyTransactionNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := mirrorClient(server.URL, server.URL)

	_, err := client.VerifyTransaction(context.Background(), "0xmissing")
	assert.ErrorIs(t, err, ErrTransactionNotFound)
}

func TestMirrorLedgerClient_VerifyTransactionEmptyList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"transactions": []map[string]string{}})
	}))
	defer server.Close()

	client := mirrorClient(server.URL, server.URL)

	_, err := client.VerifyTransaction(context.Background(), "0xabc123")
	assert.ErrorIs(t, err, ErrTransactionNotFound)
}

func TestMirrorLedgerClient_AccountTransactions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/transactions", r.URL.Path)
		assert.Equal(t, "0.0.5005", r.URL.Query().Get("account.id"))
		assert.Equal(t, "desc", r.URL.Query().Get("order"))

		json.NewEncoder(w).Encode(map[string]any{
			"transactions": []map[string]string{
				{
					"transaction_id":      "0.0.5005-1700000000-000000001",
					"name":                "CRYPTOTRANSFER",
					"result":              "SUCCESS",
					"consensus_timestamp": "1700000000.000000001",
				},
			},
		})
	}))
	defer server.Close()

	client := mirrorClient(server.URL, server.URL)

	transactions, err := client.AccountTransactions(context.Background(), "0.0.5005")
	require.NoError(t, err)
	require.Len(t, transactions, 1)

	tx := transactions[0]
	assert.Equal(t, "0.0.5005-1700000000-000000001", tx.TransactionID)
	assert.Equal(t, "CRYPTOTRANSFER", tx.Type)
	assert.Equal(t, "SUCCESS", tx.Result)
	assert.Equal(t, time.Unix(1700000000, 1).UTC(), tx.ConsensusAt)
}

func TestParseConsensusTimestamp(t *testing.T) {
	assert.Equal(t, time.Unix(1700000000, 123456789).UTC(), parseConsensusTimestamp("1700000000.123456789"))
	assert.True(t, parseConsensusTimestamp("garbage").IsZero())
	assert.True(t, parseConsensusTimestamp("").IsZero())
}
