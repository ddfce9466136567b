// Package redis implements the subscription store on Redis. Wallet records
// are hashes, subscriber sets and per-user indexes are sets, and every
// mutation that must be atomic per (chain, address) key runs as a Lua script
// so Redis linearizes it server-side.
package redis

import (
	"context"

	redis "github.com/redis/go-redis/v9"
)

type client struct {
	conn *redis.Client
}

// NewClient connects to Redis and verifies the connection with a ping.
func NewClient(ctx context.Context, addr, username, password string, db int) (*client, error) {
	conn := redis.NewClient(&redis.Options{
		Addr:     addr,
		Username: username,
		Password: password,
		DB:       db,
	})

	if err := conn.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &client{conn: conn}, nil
}

func (c *client) Close() error {
	return c.conn.Close()
}
