package dispatch

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/walletping/walletping/internal/chains"
	"github.com/walletping/walletping/internal/pkg/logger"
	"github.com/walletping/walletping/internal/pkg/types"
)

// HandleEvent processes one raw provider webhook delivery.
func (s *service) HandleEvent(ctx context.Context, body []byte, signature string) (Outcome, error) {
	if signature == "" {
		logger.Debug(ctx, "signature-less webhook request acknowledged as connectivity probe")
		return Outcome{Probe: true}, nil
	}

	if !verifySignature(s.webhookSecret, body, signature) {
		logger.Warn(ctx, "webhook rejected: signature mismatch")
		return Outcome{}, ErrBadSignature
	}

	evt, err := parseEvent(body)
	if err != nil {
		logger.Warn(ctx, "webhook rejected: malformed payload", "error", err)
		return Outcome{}, err
	}

	chain, ok := chains.ByProviderSelector(evt.ChainID)
	if !ok {
		// Unknown chain identifiers are dropped, not errored: the provider
		// already accepted the stream, so receipt is acknowledged.
		logger.Warn(ctx, "webhook event dropped: unknown provider chain id",
			"provider.chain_id", evt.ChainID,
			"event.tag", evt.Tag,
		)
		return Outcome{}, nil
	}

	movements := extractMovements(chain, evt)
	if len(movements) == 0 {
		return Outcome{}, nil
	}

	wallets, movementsByKey, err := s.resolveWallets(ctx, chain, movements)
	if err != nil {
		return Outcome{}, err
	}

	var outcome Outcome
	for key, wallet := range wallets {
		for _, m := range movementsByKey.Get(key) {
			delivered, ok := s.dispatchAlert(ctx, chain, key, wallet, m)
			if !ok {
				continue
			}
			outcome.Alerts++
			outcome.Deliveries += delivered
		}
	}

	return outcome, nil
}

// resolveWallets collects the distinct normalized sender and recipient
// addresses across all movements, looks each up once, and indexes movements
// by address key. Addresses with no tracked wallet are skipped; storage
// failures abort the event so the provider retries it.
func (s *service) resolveWallets(ctx context.Context, chain chains.Chain, movements []movement) (map[string]Wallet, types.DefaultMap[string, []movement], error) {
	var (
		addressSet     = types.NewSet[string]()
		movementsByKey = types.NewDefaultMap[string](func() []movement { return nil })
	)

	for _, m := range movements {
		fromKey := chains.NormalizeForLookup(chain.Family, m.from)
		toKey := chains.NormalizeForLookup(chain.Family, m.to)

		addressSet.Add(fromKey, toKey)
		movementsByKey.Set(fromKey, append(movementsByKey.Get(fromKey), m))
		if toKey != fromKey {
			movementsByKey.Set(toKey, append(movementsByKey.Get(toKey), m))
		}
	}

	wallets := make(map[string]Wallet)
	for key := range addressSet.ToIter() {
		wallet, err := s.walletFinder.FindByChainAndAddress(ctx, chain.Ticker, key)
		if err != nil {
			if errors.Is(err, ErrWalletNotFound) {
				continue
			}
			return nil, movementsByKey, fmt.Errorf("looking up wallet %s %s: %w", chain.Ticker, key, err)
		}
		wallets[key] = wallet
	}

	return wallets, movementsByKey, nil
}

// dispatchAlert formats one alert and delivers it to every subscriber of the
// wallet in parallel. Per-subscriber failures are logged and isolated so one
// unreachable recipient never blocks the rest. It returns the number of
// deliveries attempted and whether an alert was built at all; movements with
// unparsable values produce no alert.
func (s *service) dispatchAlert(ctx context.Context, chain chains.Chain, trackedKey string, wallet Wallet, m movement) (int, bool) {
	amount, err := formatAmount(m.rawValue, m.decimals)
	if err != nil {
		logger.Warn(ctx, "movement skipped: unparsable transfer value",
			"chain", chain.Ticker,
			"tx.hash", m.txHash,
			"value", m.rawValue,
		)
		return 0, false
	}

	dir := movementDirection(chain.Family, trackedKey, m)
	message := buildMessage(chain, wallet, m, dir, amount)

	var wg sync.WaitGroup
	for _, recipientID := range wallet.Subscribers {
		wg.Add(1)
		go func(recipientID int64) {
			defer wg.Done()
			if err := s.alertSender.SendAlert(ctx, recipientID, message); err != nil {
				logger.Error(ctx, "alert delivery failed",
					"chain", chain.Ticker,
					"wallet.address", wallet.Address,
					"recipient.id", recipientID,
					"tx.hash", m.txHash,
					"error", err,
				)
			}
		}(recipientID)
	}
	wg.Wait()

	return len(wallet.Subscribers), true
}
