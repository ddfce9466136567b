package tracking

import (
	"context"
	"fmt"

	"github.com/walletping/walletping/internal/chains"
	"github.com/walletping/walletping/internal/pkg/logger"
)

// StartTracking subscribes the user to the wallet identified by (chain,
// address). The raw address is canonicalized first, so two spellings of the
// same EVM address always land on one record regardless of interleaving.
func (s *service) StartTracking(ctx context.Context, userID int64, chain, address, alias string) (TrackResult, error) {
	req, err := buildTrackRequest(userID, chain, address, alias)
	if err != nil {
		return TrackResult{}, err
	}

	canonical, err := chains.ValidateAddress(req.Address, req.Chain)
	if err != nil {
		return TrackResult{}, err
	}

	res, err := s.storage.Subscribe(ctx, req.UserID, req.Chain, canonical, req.Alias)
	if err != nil {
		return TrackResult{}, fmt.Errorf("subscribing user %d to %s %s: %w", req.UserID, req.Chain, canonical, err)
	}

	result := TrackResult{Created: res.Created, Wallet: res.Wallet}

	if res.Created {
		if err := s.provisionStream(ctx, res.Wallet); err != nil {
			// The subscription stays recorded; the wallet remains in the
			// pending-stream state until a later attempt succeeds.
			return result, err
		}
	}

	return result, nil
}

// StopTracking removes the user's subscription and, when the record was
// deleted, releases the orphaned provider stream. Stream release failures do
// not fail the untrack: the orphan is logged for out-of-band cleanup.
func (s *service) StopTracking(ctx context.Context, userID int64, chain, address string) error {
	req, err := buildTrackRequest(userID, chain, address, "")
	if err != nil {
		return err
	}

	canonical, err := chains.ValidateAddress(req.Address, req.Chain)
	if err != nil {
		return err
	}

	res, err := s.storage.Unsubscribe(ctx, req.UserID, req.Chain, canonical)
	if err != nil {
		return err
	}

	if res.Deleted && res.StreamID != "" {
		if err := s.registrar.ReleaseStream(ctx, req.Chain, res.StreamID); err != nil {
			logger.Error(ctx, "stream release failed, orphaned stream left for out-of-band cleanup",
				"chain", req.Chain,
				"wallet.address", canonical,
				"stream.id", res.StreamID,
				"error", err,
			)
		}
	}

	return nil
}

// ListTracked returns the user's tracked wallets. A non-empty chainFilter
// must name a supported ticker.
func (s *service) ListTracked(ctx context.Context, userID int64, chainFilter string) ([]TrackedWallet, error) {
	if chainFilter != "" {
		if _, err := chains.ByTicker(chainFilter); err != nil {
			return nil, err
		}
	}

	return s.storage.ListForUser(ctx, userID, chainFilter)
}

// provisionStream asks the registrar for a provider stream, retrying under
// the configured policy when one is set.
func (s *service) provisionStream(ctx context.Context, wallet TrackedWallet) error {
	operation := func() error {
		_, err := s.registrar.EnsureStream(ctx, wallet.Chain, wallet.Address, wallet.StreamID)
		return err
	}

	if s.provisionRetry != nil {
		return s.provisionRetry.Execute(ctx, operation)
	}

	return operation()
}
