// Package cli is the operator entrypoint: it mirrors the chat surface's
// track/untrack/list commands and hosts the serve command that runs the
// webhook receiver.
package cli

import (
	"context"
	"os"

	"github.com/walletping/walletping/internal/handlers/webhook"
	"github.com/walletping/walletping/internal/tracking"

	"github.com/urfave/cli/v3"
)

// CommandRateLimiter is the pluggable budget check consulted before any
// user-attributed command reaches the tracking service.
type CommandRateLimiter interface {
	Allow(ctx context.Context, userID int64) (bool, error)
}

// Run registers and executes the walletping CLI:
//
//   - `serve`: runs the provider webhook receiver until interrupted.
//   - `track`: subscribes a user to a wallet.
//   - `untrack`: removes a user's wallet subscription.
//   - `list`: prints a user's tracked wallets.
func Run(ctx context.Context, tracker tracking.Service, server *webhook.Server, limiter CommandRateLimiter) error {
	app := &cli.Command{
		EnableShellCompletion: true,
		Name:                  "walletping",
		Description:           "Wallet activity alerts: track blockchain addresses and receive a message for every transaction that touches them.",
		Usage:                 "walletping [command] [flags]",
		Commands: []*cli.Command{
			serveCommand(server),
			trackWalletCommand(tracker, limiter),
			untrackWalletCommand(tracker, limiter),
			listWalletsCommand(tracker),
		},
	}

	return app.Run(ctx, os.Args)
}
