package tracking

import (
	"context"
	"errors"
	"regexp"

	"github.com/walletping/walletping/internal/pkg/validator"
)

var (
	// ErrNotSubscribed reports that an unsubscribe targeted a wallet the user
	// was never tracking. It is distinct from a successful removal so the
	// chat layer can answer "you were not tracking this" instead of "done".
	ErrNotSubscribed = errors.New("user is not subscribed to this wallet")

	// ErrInvalidAlias reports an alias that is too long or uses characters
	// outside the allowed set.
	ErrInvalidAlias = errors.New("invalid wallet alias")
)

// aliasPattern restricts aliases to a small, display-safe character set.
var aliasPattern = regexp.MustCompile(`^[a-zA-Z0-9 _.-]*$`)

// maxAliasLen bounds alias length.
const maxAliasLen = 32

// TrackedWallet is one monitored (chain, address) pair together with every
// user subscribed to it. A record exists if and only if Subscribers is
// non-empty. StreamID stays empty until the stream registrar provisions the
// provider-side subscription.
type TrackedWallet struct {
	Chain       string  // internal chain ticker
	Address     string  // canonical address (EIP-55 checksummed for EVM chains)
	Alias       string  // optional human label, set by the first subscriber
	Subscribers []int64 // chat-platform user ids, unordered, non-empty
	StreamID    string  // provider stream id, empty while provisioning is pending
}

// SubscribeResult reports the outcome of a store subscribe operation.
type SubscribeResult struct {
	// Created is true when this call brought the wallet record into
	// existence, meaning the caller must provision a provider stream.
	Created bool

	// Wallet is the record after the mutation.
	Wallet TrackedWallet
}

// UnsubscribeResult reports the outcome of a store unsubscribe operation.
type UnsubscribeResult struct {
	// Deleted is true when the last subscriber left and the record was
	// removed.
	Deleted bool

	// StreamID carries the now-orphaned provider stream id when Deleted is
	// true, so the caller can release it. Empty when no stream had been
	// provisioned yet.
	StreamID string
}

// SubscriptionStorage is the persistence contract for the wallet subscription
// store. Implementations must make every operation atomic with respect to the
// (chain, address) record it touches: concurrent subscribes and unsubscribes
// on one key serialize, operations on different keys proceed independently.
type SubscriptionStorage interface {
	// Subscribe adds userID to the wallet's subscriber set, creating the
	// record when it does not exist. Subscribing an already-subscribed user
	// is an idempotent no-op reported through SubscribeResult.Created=false
	// with the set unchanged.
	Subscribe(ctx context.Context, userID int64, chain, address, alias string) (SubscribeResult, error)

	// Unsubscribe removes userID from the wallet's subscriber set, deleting
	// the record when the set empties. It returns ErrNotSubscribed when the
	// user was not in the set.
	Unsubscribe(ctx context.Context, userID int64, chain, address string) (UnsubscribeResult, error)

	// ListForUser returns every wallet the user subscribes to, optionally
	// filtered to one chain ticker (empty filter means all chains).
	ListForUser(ctx context.Context, userID int64, chainFilter string) ([]TrackedWallet, error)
}

// StreamRegistrar keeps provider-side stream subscriptions aligned with the
// wallet records that exist locally.
type StreamRegistrar interface {
	// EnsureStream guarantees a provider stream exists for the wallet,
	// creating one when streamID is empty. It returns the effective stream
	// id, or a retryable error leaving the wallet in the pending state.
	EnsureStream(ctx context.Context, chain, address, streamID string) (string, error)

	// ReleaseStream deletes the provider stream. Releasing an already-absent
	// stream is success.
	ReleaseStream(ctx context.Context, chain, streamID string) error
}

// trackRequest is the validated form of a user-issued track/untrack command.
// Alias length and charset are checked separately so every alias defect maps
// to ErrInvalidAlias.
type trackRequest struct {
	UserID  int64  `validate:"required,gt=0"`
	Chain   string `validate:"required"`
	Address string `validate:"required"`
	Alias   string
}

// buildTrackRequest validates the raw command input before any store access.
func buildTrackRequest(userID int64, chain, address, alias string) (trackRequest, error) {
	req := trackRequest{
		UserID:  userID,
		Chain:   chain,
		Address: address,
		Alias:   alias,
	}

	if err := validator.Validate(req); err != nil {
		return trackRequest{}, err
	}

	if len(alias) > maxAliasLen || !aliasPattern.MatchString(alias) {
		return trackRequest{}, ErrInvalidAlias
	}

	return req, nil
}
