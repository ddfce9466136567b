// Package dispatch turns inbound stream-provider events into alerts fanned
// out to every subscriber of the affected wallets. An event moves through
// received → signature-verified → parsed → resolved → dispatched, terminating
// early as rejected on a bad signature or malformed body.
package dispatch

import "context"

// Wallet is the dispatcher's view of a tracked wallet record.
type Wallet struct {
	Chain       string
	Address     string // canonical display form
	Alias       string
	Subscribers []int64
}

// WalletFinder resolves tracked wallet records by their storage key.
type WalletFinder interface {
	// FindByChainAndAddress returns the record for the chain ticker and
	// normalized address key, or ErrWalletNotFound.
	FindByChainAndAddress(ctx context.Context, chain, addressKey string) (Wallet, error)
}

// AlertSender delivers one formatted alert to one recipient. Implementations
// must bound each delivery with a timeout.
type AlertSender interface {
	SendAlert(ctx context.Context, recipientID int64, message string) error
}

// Outcome summarizes how an event was handled.
type Outcome struct {
	// Probe is true for signature-less connectivity checks, which are
	// acknowledged without processing.
	Probe bool

	// Alerts is the number of alerts generated (wallet × movement pairs).
	Alerts int

	// Deliveries is the number of per-subscriber sends attempted.
	Deliveries int
}

// Service handles raw webhook bodies from the stream provider.
type Service interface {
	// HandleEvent verifies, parses, resolves and dispatches one event. It
	// returns ErrBadSignature or ErrMalformedPayload for rejected events and
	// passes storage errors through so the transport layer can answer with a
	// retryable status.
	HandleEvent(ctx context.Context, body []byte, signature string) (Outcome, error)
}

type service struct {
	walletFinder  WalletFinder
	alertSender   AlertSender
	webhookSecret string
}

var _ Service = (*service)(nil)

// New wires a dispatcher over the given wallet finder and alert sender.
// webhookSecret is the pre-shared secret the provider signs bodies with.
func New(walletFinder WalletFinder, alertSender AlertSender, webhookSecret string) *service {
	return &service{
		walletFinder:  walletFinder,
		alertSender:   alertSender,
		webhookSecret: webhookSecret,
	}
}
