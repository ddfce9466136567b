// Package streamsync keeps the external stream provider aligned with the
// local subscription store: exactly one provider subscription per tracked
// wallet that exists, none otherwise. Create and delete calls are routed to
// the provider sub-API matching the wallet's chain family.
package streamsync

import (
	"context"
	"fmt"

	"github.com/walletping/walletping/internal/chains"
	"github.com/walletping/walletping/internal/pkg/logger"
)

// Service reconciles provider streams with wallet record lifecycle events.
type Service interface {
	// EnsureStream guarantees a provider stream exists for the wallet. With
	// a non-empty streamID it is an idempotent no-op. On creation it persists
	// the new id through the StreamBinder; when the record vanished in the
	// meantime it releases the fresh stream itself and returns an empty id.
	EnsureStream(ctx context.Context, chain, address, streamID string) (string, error)

	// ReleaseStream deletes the provider stream for the given chain's
	// family. Already-absent streams release successfully.
	ReleaseStream(ctx context.Context, chain, streamID string) error
}

type service struct {
	provider StreamProvider
	binder   StreamBinder

	// deliveryEndpoint is the public webhook URL handed to the provider as
	// the callback target for every stream.
	deliveryEndpoint string
}

var _ Service = (*service)(nil)

// New wires a registrar over the given provider client and binder.
// deliveryEndpoint is the public URL of this service's webhook receiver.
func New(provider StreamProvider, binder StreamBinder, deliveryEndpoint string) *service {
	return &service{
		provider:         provider,
		binder:           binder,
		deliveryEndpoint: deliveryEndpoint,
	}
}

func (s *service) EnsureStream(ctx context.Context, chain, address, streamID string) (string, error) {
	if streamID != "" {
		return streamID, nil
	}

	c, err := chains.ByTicker(chain)
	if err != nil {
		// Tickers are validated before any record exists; reaching this
		// branch means a caller bypassed validation.
		return "", fmt.Errorf("resolving chain %q: %w", chain, err)
	}

	id, err := s.provider.CreateStream(ctx, StreamRequest{
		Family:        c.Family,
		ChainSelector: c.ProviderSelector,
		Address:       address,
		WebhookURL:    s.deliveryEndpoint,
	})
	if err != nil {
		logger.Error(ctx, "provider stream creation failed",
			"chain", chain,
			"wallet.address", address,
			"error", err,
		)
		return "", ErrStreamProvision
	}

	attached, err := s.binder.AttachStreamID(ctx, chain, address, id)
	if err != nil {
		// The stream exists provider-side but could not be recorded. Release
		// it so a retry starts clean instead of leaking subscriptions.
		s.releaseOrphan(ctx, c.Family, chain, address, id)
		return "", ErrStreamProvision
	}

	if !attached {
		// Last subscriber left while the stream was being created.
		logger.Warn(ctx, "wallet record vanished during stream creation, releasing fresh stream",
			"chain", chain,
			"wallet.address", address,
			"stream.id", id,
		)
		s.releaseOrphan(ctx, c.Family, chain, address, id)
		return "", nil
	}

	logger.Info(ctx, "provider stream created",
		"chain", chain,
		"wallet.address", address,
		"stream.id", id,
	)
	return id, nil
}

func (s *service) ReleaseStream(ctx context.Context, chain, streamID string) error {
	c, err := chains.ByTicker(chain)
	if err != nil {
		return fmt.Errorf("resolving chain %q: %w", chain, err)
	}

	return s.provider.DeleteStream(ctx, c.Family, streamID)
}

// releaseOrphan best-effort deletes a stream that has no backing wallet
// record. Failures are logged for out-of-band cleanup.
func (s *service) releaseOrphan(ctx context.Context, family chains.Family, chain, address, streamID string) {
	if err := s.provider.DeleteStream(ctx, family, streamID); err != nil {
		logger.Error(ctx, "orphaned stream release failed",
			"chain", chain,
			"wallet.address", address,
			"stream.id", streamID,
			"error", err,
		)
	}
}
