package dispatch

import (
	"encoding/json"
	"errors"
)

var (
	// ErrBadSignature reports a webhook whose signature header does not match
	// the HMAC of the received body. Rejected events are logged and never
	// produce deliveries.
	ErrBadSignature = errors.New("webhook signature mismatch")

	// ErrMalformedPayload reports a webhook body that is not a valid provider
	// event document.
	ErrMalformedPayload = errors.New("malformed webhook payload")

	// ErrWalletNotFound reports that no tracked wallet exists for a (chain,
	// address) lookup.
	ErrWalletNotFound = errors.New("tracked wallet not found")
)

// providerEvent is the transaction event document the stream provider posts
// to the webhook endpoint.
type providerEvent struct {
	ChainID        string          `json:"chainId"`
	Tag            string          `json:"tag"`
	Txs            []providerTx    `json:"txs"`
	ERC20Transfers []tokenTransfer `json:"erc20Transfers"`
}

// providerTx is one top-level transaction inside a provider event.
type providerTx struct {
	Hash        string `json:"hash"`
	FromAddress string `json:"fromAddress"`
	ToAddress   string `json:"toAddress"`
	Value       string `json:"value"`
	GasPrice    string `json:"gasPrice"`
	Gas         string `json:"gas"`
}

// tokenTransfer is one token movement sub-record. A transaction moving
// several tokens yields several sub-records, each producing its own alert.
type tokenTransfer struct {
	TransactionHash string `json:"transactionHash"`
	From            string `json:"from"`
	To              string `json:"to"`
	Value           string `json:"value"`
	Address         string `json:"address"`
	TokenName       string `json:"tokenName"`
	TokenSymbol     string `json:"tokenSymbol"`
	TokenDecimals   string `json:"tokenDecimals"`
}

// parseEvent decodes the raw webhook body.
func parseEvent(body []byte) (providerEvent, error) {
	var evt providerEvent
	if err := json.Unmarshal(body, &evt); err != nil {
		return providerEvent{}, ErrMalformedPayload
	}
	return evt, nil
}
