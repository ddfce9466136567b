// Package moralis is the stream-provider client. It talks to the two
// provider sub-APIs (EVM streams and single-ledger streams) over a retrying
// HTTP client with bounded per-request timeouts.
package moralis

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/walletping/walletping/internal/chains"
	"github.com/walletping/walletping/internal/streamsync"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
)

const (
	defaultEVMBaseURL          = "https://api.moralis-streams.com"
	defaultSingleLedgerBaseURL = "https://api.sl-streams.moralis.com"

	evmStreamsPath          = "/streams/evm"
	singleLedgerStreamsPath = "/streams/sl"
)

// Client implements streamsync.StreamProvider against the provider's REST
// API.
type Client struct {
	http    *retryablehttp.Client
	apiKey  string
	evmBase string
	slBase  string
}

var _ streamsync.StreamProvider = (*Client)(nil)

// Option customizes the client.
type Option func(*Client)

// WithEVMBaseURL overrides the EVM sub-API base URL (tests, staging).
func WithEVMBaseURL(u string) Option {
	return func(c *Client) {
		c.evmBase = u
	}
}

// WithSingleLedgerBaseURL overrides the single-ledger sub-API base URL.
func WithSingleLedgerBaseURL(u string) Option {
	return func(c *Client) {
		c.slBase = u
	}
}

// NewClient builds a provider client authenticated with apiKey.
func NewClient(httpClient *retryablehttp.Client, apiKey string, opts ...Option) *Client {
	c := &Client{
		http:    httpClient,
		apiKey:  apiKey,
		evmBase: defaultEVMBaseURL,
		slBase:  defaultSingleLedgerBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// createStreamPayload is the subscription document sent on stream creation.
// ChainIDs is set for the EVM sub-API, Network for the single-ledger one.
type createStreamPayload struct {
	WebhookURL          string   `json:"webhookUrl"`
	Tag                 string   `json:"tag"`
	Address             string   `json:"address"`
	ChainIDs            []string `json:"chainIds,omitempty"`
	Network             string   `json:"network,omitempty"`
	IncludeNativeTxs    bool     `json:"includeNativeTxs"`
	IncludeContractLogs bool     `json:"includeContractLogs"`
}

type createStreamResponse struct {
	ID string `json:"id"`
}

// CreateStream implements streamsync.StreamProvider.
func (c *Client) CreateStream(ctx context.Context, req streamsync.StreamRequest) (string, error) {
	payload := createStreamPayload{
		WebhookURL:          req.WebhookURL,
		Tag:                 uuid.NewString(),
		Address:             req.Address,
		IncludeNativeTxs:    true,
		IncludeContractLogs: true,
	}

	switch req.Family {
	case chains.FamilyEVM:
		payload.ChainIDs = []string{req.ChainSelector}
	case chains.FamilySingleLedger:
		payload.Network = req.ChainSelector
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPut, c.baseURL(req.Family)+c.streamsPath(req.Family), body)
	if err != nil {
		return "", err
	}
	c.decorate(httpReq)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("stream creation returned status %d", resp.StatusCode)
	}

	var created createStreamResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", fmt.Errorf("decoding stream creation response: %w", err)
	}
	if created.ID == "" {
		return "", fmt.Errorf("stream creation response carried no id")
	}

	return created.ID, nil
}

// DeleteStream implements streamsync.StreamProvider. A 404 means the stream
// is already gone and counts as success, making release idempotent.
func (c *Client) DeleteStream(ctx context.Context, family chains.Family, streamID string) error {
	httpReq, err := retryablehttp.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL(family)+c.streamsPath(family)+"/"+streamID, nil)
	if err != nil {
		return err
	}
	c.decorate(httpReq)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return err
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusNotFound {
		return nil
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("stream deletion returned status %d", resp.StatusCode)
	}

	return nil
}

func (c *Client) baseURL(family chains.Family) string {
	if family == chains.FamilySingleLedger {
		return c.slBase
	}
	return c.evmBase
}

func (c *Client) streamsPath(family chains.Family) string {
	if family == chains.FamilySingleLedger {
		return singleLedgerStreamsPath
	}
	return evmStreamsPath
}

func (c *Client) decorate(req *retryablehttp.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)
}
