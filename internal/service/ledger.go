package service

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"medichain-service/config"

	"github.com/sirupsen/logrus"
)

var (
	// ErrLedgerUnavailable is returned when the ledger backend cannot be reached
	ErrLedgerUnavailable = errors.New("ledger backend unavailable")
	// ErrTransactionNotFound is returned when the mirror node has no record of the hash
	ErrTransactionNotFound = errors.New("transaction not found on ledger")
)

// MintRequest carries everything the token service needs to mint a
// consultation-pass NFT.
type MintRequest struct {
	ConsultationID string `json:"consultation_id"`
	Name           string `json:"name"`
	Symbol         string `json:"symbol"`
	Memo           string `json:"memo,omitempty"`
}

// LedgerTransaction is a single entry from an account's transaction history.
type LedgerTransaction struct {
	TransactionID string    `json:"transaction_id"`
	Type          string    `json:"type"`
	Result        string    `json:"result"`
	ConsensusAt   time.Time `json:"consensus_at"`
}

// LedgerClient is the capability boundary to the Hedera network. Every
// operation returns an explicit error; there is no always-true verification
// path outside the local client.
type LedgerClient interface {
	MintToken(ctx context.Context, req MintRequest) (string, error)
	VerifyTransaction(ctx context.Context, transactionHash string) (bool, error)
	AccountTransactions(ctx context.Context, accountID string) ([]LedgerTransaction, error)
}

// NewLedgerClient selects the client implementation from config. The local
// client never serves production traffic.
func NewLedgerClient(cfg config.LedgerConfig, log *logrus.Logger) LedgerClient {
	if cfg.Mode == "mirror" {
		return NewMirrorLedgerClient(cfg, log)
	}
	log.Warn("Ledger running in local mode, tokens are simulated")
	return NewLocalLedgerClient()
}

// =============================================================================
// Mirror-node backed client
// =============================================================================

// MirrorLedgerClient mints through the token service and reads transaction
// state from a Hedera mirror node.
type MirrorLedgerClient struct {
	tokenServiceURL string
	mirrorNodeURL   string
	httpClient      *http.Client
	log             *logrus.Logger
}

func NewMirrorLedgerClient(cfg config.LedgerConfig, log *logrus.Logger) *MirrorLedgerClient {
	return &MirrorLedgerClient{
		tokenServiceURL: strings.TrimRight(cfg.TokenServiceURL, "/"),
		mirrorNodeURL:   strings.TrimRight(cfg.MirrorNodeURL, "/"),
		httpClient:      &http.Client{Timeout: cfg.Timeout},
		log:             log,
	}
}

func (c *MirrorLedgerClient) MintToken(ctx context.Context, req MintRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenServiceURL+"/tokens/mint", strings.NewReader(string(body)))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.log.Warnf("Token service unreachable: %+v", err)
		return "", ErrLedgerUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("token service returned status %d", resp.StatusCode)
	}

	var result struct {
		TokenID string `json:"token_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	if result.TokenID == "" {
		return "", errors.New("token service returned empty token id")
	}

	return result.TokenID, nil
}

func (c *MirrorLedgerClient) VerifyTransaction(ctx context.Context, transactionHash string) (bool, error) {
	endpoint := fmt.Sprintf("%s/api/v1/transactions/%s", c.mirrorNodeURL, url.PathEscape(transactionHash))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.log.Warnf("Mirror node unreachable: %+v", err)
		return false, ErrLedgerUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return false, ErrTransactionNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("mirror node returned status %d", resp.StatusCode)
	}

	var result struct {
		Transactions []struct {
			Result string `json:"result"`
		} `json:"transactions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, err
	}
	if len(result.Transactions) == 0 {
		return false, ErrTransactionNotFound
	}

	return result.Transactions[0].Result == "SUCCESS", nil
}

func (c *MirrorLedgerClient) AccountTransactions(ctx context.Context, accountID string) ([]LedgerTransaction, error) {
	endpoint := fmt.Sprintf("%s/api/v1/transactions?account.id=%s&order=desc", c.mirrorNodeURL, url.QueryEscape(accountID))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.log.Warnf("Mirror node unreachable: %+v", err)
		return nil, ErrLedgerUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("mirror node returned status %d", resp.StatusCode)
	}

	var result struct {
		Transactions []struct {
			TransactionID      string `json:"transaction_id"`
			Name               string `json:"name"`
			Result             string `json:"result"`
			ConsensusTimestamp string `json:"consensus_timestamp"`
		} `json:"transactions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	transactions := make([]LedgerTransaction, 0, len(result.Transactions))
	for _, tx := range result.Transactions {
		transactions = append(transactions, LedgerTransaction{
			TransactionID: tx.TransactionID,
			Type:          tx.Name,
			Result:        tx.Result,
			ConsensusAt:   parseConsensusTimestamp(tx.ConsensusTimestamp),
		})
	}
	return transactions, nil
}

// parseConsensusTimestamp converts the mirror node's "seconds.nanos" format.
func parseConsensusTimestamp(ts string) time.Time {
	var sec, nsec int64
	if _, err := fmt.Sscanf(ts, "%d.%d", &sec, &nsec); err != nil {
		return time.Time{}
	}
	return time.Unix(sec, nsec).UTC()
}

// =============================================================================
// Local client
// =============================================================================

// LocalLedgerClient simulates the ledger for dev and tests. Token ids are
// derived from the consultation id, so repeated mints of the same
// consultation produce the same id instead of a random one.
type LocalLedgerClient struct{}

func NewLocalLedgerClient() *LocalLedgerClient {
	return &LocalLedgerClient{}
}

func (c *LocalLedgerClient) MintToken(ctx context.Context, req MintRequest) (string, error) {
	sum := sha256.Sum256([]byte(req.ConsultationID))
	num := binary.BigEndian.Uint32(sum[:4]) % 1000000
	return fmt.Sprintf("0.0.%d", num), nil
}

func (c *LocalLedgerClient) VerifyTransaction(ctx context.Context, transactionHash string) (bool, error) {
	if transactionHash == "" {
		return false, ErrTransactionNotFound
	}
	return true, nil
}

func (c *LocalLedgerClient) AccountTransactions(ctx context.Context, accountID string) ([]LedgerTransaction, error) {
	return []LedgerTransaction{}, nil
}
