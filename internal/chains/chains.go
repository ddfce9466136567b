// Package chains holds the closed table of supported blockchain networks and
// the address validation rules for each chain family. The table is the single
// source of truth consumed by the tracking service, the stream registrar and
// the alert dispatcher; supporting a new chain is a one-entry edit here.
package chains

import "errors"

// ErrUnsupportedChain is returned when a ticker is not present in the chain
// table.
var ErrUnsupportedChain = errors.New("unsupported chain")

// Family groups chains that share one address shape, validation rule and
// stream-provider sub-API.
type Family int

const (
	// FamilyEVM covers chains with 20-byte hex addresses and EIP-55
	// checksumming, served by the provider's EVM streams API.
	FamilyEVM Family = iota

	// FamilySingleLedger covers chains with base58-encoded 32-byte public-key
	// addresses, served by the provider's single-ledger streams API.
	FamilySingleLedger
)

// String returns a short family label for logs.
func (f Family) String() string {
	switch f {
	case FamilyEVM:
		return "evm"
	case FamilySingleLedger:
		return "single-ledger"
	default:
		return "unknown"
	}
}

// Chain describes one supported network.
type Chain struct {
	Ticker           string // internal ticker, uppercase (e.g. "ETH")
	Name             string // human-readable network name
	Family           Family
	ProviderSelector string // provider-native chain identifier (hex chain id for EVM, network name otherwise)
	NativeSymbol     string // symbol used when rendering native-currency amounts
	NativeDecimals   int32  // decimals of the native currency
}

// supported is the closed chain table, indexed by ticker.
var supported = map[string]Chain{
	"ETH":   {Ticker: "ETH", Name: "Ethereum", Family: FamilyEVM, ProviderSelector: "0x1", NativeSymbol: "ETH", NativeDecimals: 18},
	"MATIC": {Ticker: "MATIC", Name: "Polygon", Family: FamilyEVM, ProviderSelector: "0x89", NativeSymbol: "MATIC", NativeDecimals: 18},
	"BNB":   {Ticker: "BNB", Name: "BNB Smart Chain", Family: FamilyEVM, ProviderSelector: "0x38", NativeSymbol: "BNB", NativeDecimals: 18},
	"AVAX":  {Ticker: "AVAX", Name: "Avalanche C-Chain", Family: FamilyEVM, ProviderSelector: "0xa86a", NativeSymbol: "AVAX", NativeDecimals: 18},
	"SOL":   {Ticker: "SOL", Name: "Solana", Family: FamilySingleLedger, ProviderSelector: "mainnet", NativeSymbol: "SOL", NativeDecimals: 9},
}

// bySelector is the reverse index from provider chain identifier to chain,
// built once at startup.
var bySelector = func() map[string]Chain {
	idx := make(map[string]Chain, len(supported))
	for _, c := range supported {
		idx[c.ProviderSelector] = c
	}
	return idx
}()

// ByTicker resolves a chain by its internal ticker. It returns
// ErrUnsupportedChain for anything outside the table.
func ByTicker(ticker string) (Chain, error) {
	c, ok := supported[ticker]
	if !ok {
		return Chain{}, ErrUnsupportedChain
	}
	return c, nil
}

// ByProviderSelector resolves a chain by the provider-native identifier
// carried in webhook events. The boolean is false for unknown identifiers;
// the dispatcher drops those events rather than erroring.
func ByProviderSelector(selector string) (Chain, bool) {
	c, ok := bySelector[selector]
	return c, ok
}

// Tickers lists every supported ticker, for help output and validation
// messages. Order is unspecified.
func Tickers() []string {
	out := make([]string, 0, len(supported))
	for t := range supported {
		out = append(out, t)
	}
	return out
}
