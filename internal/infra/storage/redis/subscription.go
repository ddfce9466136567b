package redis

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/walletping/walletping/internal/chains"
	"github.com/walletping/walletping/internal/dispatch"
	"github.com/walletping/walletping/internal/streamsync"
	"github.com/walletping/walletping/internal/tracking"

	redis "github.com/redis/go-redis/v9"
)

// Key layout:
//
//	wallet:{chain}:{addressKey}       HASH  address, alias, stream_id
//	wallet:{chain}:{addressKey}:subs  SET   subscriber user ids
//	user:{userID}:wallets             SET   "{chain}:{addressKey}" refs
//
// addressKey is the family-normalized spelling (lowercased for EVM), so
// case-divergent submissions of one address share a single record. The hash
// keeps the canonical display form in the "address" field.
func walletKey(chain, addressKey string) string {
	return fmt.Sprintf("wallet:%s:%s", chain, addressKey)
}

func walletSubscribersKey(chain, addressKey string) string {
	return walletKey(chain, addressKey) + ":subs"
}

func userWalletsKey(userID int64) string {
	return fmt.Sprintf("user:%d:wallets", userID)
}

func walletRef(chain, addressKey string) string {
	return chain + ":" + addressKey
}

// storageKey normalizes a canonical address into its storage spelling.
func storageKey(chain, address string) string {
	if c, err := chains.ByTicker(chain); err == nil {
		return chains.NormalizeForLookup(c.Family, address)
	}
	return address
}

// subscribeScript creates the wallet record when absent, adds the subscriber,
// records the user-side reference, and reports the record state in one atomic
// step, so a concurrent unsubscribe can never observe a record with an
// inconsistent subscriber set.
//
// Returns {created, added, address, alias, stream_id, subscribers}.
var subscribeScript = redis.NewScript(`
local created = 0
if redis.call("EXISTS", KEYS[1]) == 0 then
	redis.call("HSET", KEYS[1], "address", ARGV[2], "alias", ARGV[3], "stream_id", "")
	created = 1
end
local added = redis.call("SADD", KEYS[2], ARGV[1])
redis.call("SADD", KEYS[3], ARGV[4])
local rec = redis.call("HMGET", KEYS[1], "address", "alias", "stream_id")
local subs = redis.call("SMEMBERS", KEYS[2])
return {created, added, rec[1], rec[2], rec[3], subs}`)

// unsubscribeScript removes the subscriber and deletes the record when its
// set empties, returning the orphaned stream id for release.
//
// Returns {-1, ""} when the user was not subscribed, {1, streamID} when the
// record was deleted, {0, ""} when other subscribers remain.
var unsubscribeScript = redis.NewScript(`
local removed = redis.call("SREM", KEYS[2], ARGV[1])
redis.call("SREM", KEYS[3], ARGV[2])
if removed == 0 then
	return {-1, ""}
end
if redis.call("SCARD", KEYS[2]) == 0 then
	local stream = redis.call("HGET", KEYS[1], "stream_id") or ""
	redis.call("DEL", KEYS[1], KEYS[2])
	return {1, stream}
end
return {0, ""}`)

// attachStreamScript writes the stream id only while the record still exists,
// reporting whether it did.
var attachStreamScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 0 then
	return 0
end
redis.call("HSET", KEYS[1], "stream_id", ARGV[1])
return 1`)

// Subscribe implements tracking.SubscriptionStorage.
func (c *client) Subscribe(ctx context.Context, userID int64, chain, address, alias string) (tracking.SubscribeResult, error) {
	addressKey := storageKey(chain, address)

	keys := []string{
		walletKey(chain, addressKey),
		walletSubscribersKey(chain, addressKey),
		userWalletsKey(userID),
	}
	args := []any{userID, chain, address, alias, walletRef(chain, addressKey)}

	raw, err := subscribeScript.Run(ctx, c.conn, keys, args...).Result()
	if err != nil {
		return tracking.SubscribeResult{}, err
	}

	reply, ok := raw.([]any)
	if !ok || len(reply) != 6 {
		return tracking.SubscribeResult{}, fmt.Errorf("unexpected subscribe script reply: %v", raw)
	}

	subscribers, err := parseSubscriberIDs(reply[5])
	if err != nil {
		return tracking.SubscribeResult{}, err
	}

	return tracking.SubscribeResult{
		Created: asInt64(reply[0]) == 1,
		Wallet: tracking.TrackedWallet{
			Chain:       chain,
			Address:     asString(reply[2]),
			Alias:       asString(reply[3]),
			Subscribers: subscribers,
			StreamID:    asString(reply[4]),
		},
	}, nil
}

// Unsubscribe implements tracking.SubscriptionStorage.
func (c *client) Unsubscribe(ctx context.Context, userID int64, chain, address string) (tracking.UnsubscribeResult, error) {
	addressKey := storageKey(chain, address)

	keys := []string{
		walletKey(chain, addressKey),
		walletSubscribersKey(chain, addressKey),
		userWalletsKey(userID),
	}
	args := []any{userID, walletRef(chain, addressKey)}

	raw, err := unsubscribeScript.Run(ctx, c.conn, keys, args...).Result()
	if err != nil {
		return tracking.UnsubscribeResult{}, err
	}

	reply, ok := raw.([]any)
	if !ok || len(reply) != 2 {
		return tracking.UnsubscribeResult{}, fmt.Errorf("unexpected unsubscribe script reply: %v", raw)
	}

	switch asInt64(reply[0]) {
	case -1:
		return tracking.UnsubscribeResult{}, tracking.ErrNotSubscribed
	case 1:
		return tracking.UnsubscribeResult{Deleted: true, StreamID: asString(reply[1])}, nil
	default:
		return tracking.UnsubscribeResult{}, nil
	}
}

// ListForUser implements tracking.SubscriptionStorage.
func (c *client) ListForUser(ctx context.Context, userID int64, chainFilter string) ([]tracking.TrackedWallet, error) {
	refs, err := c.conn.SMembers(ctx, userWalletsKey(userID)).Result()
	if err != nil {
		return nil, err
	}

	wallets := make([]tracking.TrackedWallet, 0, len(refs))
	for _, ref := range refs {
		chain, addressKey, ok := strings.Cut(ref, ":")
		if !ok {
			continue
		}
		if chainFilter != "" && chain != chainFilter {
			continue
		}

		wallet, err := c.loadWallet(ctx, chain, addressKey)
		if err != nil {
			return nil, err
		}
		if wallet == nil {
			continue
		}

		wallets = append(wallets, *wallet)
	}

	return wallets, nil
}

// AttachStreamID implements streamsync.StreamBinder. The false return means
// the record vanished before the stream id could be recorded.
func (c *client) AttachStreamID(ctx context.Context, chain, address, streamID string) (bool, error) {
	addressKey := storageKey(chain, address)

	raw, err := attachStreamScript.Run(ctx, c.conn, []string{walletKey(chain, addressKey)}, streamID).Result()
	if err != nil {
		return false, err
	}

	return asInt64(raw) == 1, nil
}

// FindByChainAndAddress implements dispatch.WalletFinder.
func (c *client) FindByChainAndAddress(ctx context.Context, chain, addressKey string) (dispatch.Wallet, error) {
	wallet, err := c.loadWallet(ctx, chain, addressKey)
	if err != nil {
		return dispatch.Wallet{}, err
	}
	if wallet == nil {
		return dispatch.Wallet{}, dispatch.ErrWalletNotFound
	}

	return dispatch.Wallet{
		Chain:       wallet.Chain,
		Address:     wallet.Address,
		Alias:       wallet.Alias,
		Subscribers: wallet.Subscribers,
	}, nil
}

// loadWallet reads one wallet hash plus its subscriber set. It returns nil
// when the record does not exist.
func (c *client) loadWallet(ctx context.Context, chain, addressKey string) (*tracking.TrackedWallet, error) {
	fields, err := c.conn.HMGet(ctx, walletKey(chain, addressKey), "address", "alias", "stream_id").Result()
	if err != nil {
		return nil, err
	}
	if fields[0] == nil {
		return nil, nil
	}

	members, err := c.conn.SMembers(ctx, walletSubscribersKey(chain, addressKey)).Result()
	if err != nil {
		return nil, err
	}

	subscribers := make([]int64, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("corrupt subscriber id %q on %s:%s: %w", m, chain, addressKey, err)
		}
		subscribers = append(subscribers, id)
	}

	return &tracking.TrackedWallet{
		Chain:       chain,
		Address:     asString(fields[0]),
		Alias:       asString(fields[1]),
		Subscribers: subscribers,
		StreamID:    asString(fields[2]),
	}, nil
}

func parseSubscriberIDs(raw any) ([]int64, error) {
	members, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("unexpected subscriber set reply: %v", raw)
	}

	ids := make([]int64, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(asString(m), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("corrupt subscriber id %q: %w", m, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func asInt64(v any) int64 {
	n, _ := v.(int64)
	return n
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

// Compile-time interface assertions.
var (
	_ tracking.SubscriptionStorage = (*client)(nil)
	_ streamsync.StreamBinder      = (*client)(nil)
	_ dispatch.WalletFinder        = (*client)(nil)
)
