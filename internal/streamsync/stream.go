package streamsync

import (
	"context"
	"errors"

	"github.com/walletping/walletping/internal/chains"
)

// ErrStreamProvision reports a provider failure while creating a stream. It
// is retryable: the wallet stays in the pending-stream state and a later
// EnsureStream may succeed. Provider detail is logged, not carried, so the
// chat layer can surface a plain "try again later".
var ErrStreamProvision = errors.New("stream provisioning failed")

// StreamRequest describes the provider-side subscription to create for one
// tracked wallet.
type StreamRequest struct {
	Family        chains.Family // selects the provider sub-API
	ChainSelector string        // provider-native chain identifier
	Address       string        // canonical wallet address to observe
	WebhookURL    string        // callback endpoint for transaction events
}

// StreamProvider is the outbound contract with the external streaming
// provider. Every call must carry a bounded timeout via its context.
type StreamProvider interface {
	// CreateStream registers a subscription pushing native transactions and
	// contract logs for the requested address to the webhook URL. It returns
	// the provider-assigned stream id.
	CreateStream(ctx context.Context, req StreamRequest) (string, error)

	// DeleteStream removes a subscription on the family's sub-API. Deleting
	// an already-absent stream must be reported as success.
	DeleteStream(ctx context.Context, family chains.Family, streamID string) error
}

// StreamBinder persists provider stream ids onto wallet records.
type StreamBinder interface {
	// AttachStreamID stores streamID on the (chain, address) record. It
	// returns false without error when the record no longer exists, which
	// happens when the last subscriber left while the stream was being
	// created; the registrar then owns releasing the orphan.
	AttachStreamID(ctx context.Context, chain, address, streamID string) (bool, error)
}
