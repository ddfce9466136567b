package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/walletping/walletping/internal/chains"
	"github.com/walletping/walletping/internal/streamsync"
	"github.com/walletping/walletping/internal/tracking"

	"github.com/urfave/cli/v3"
)

// errRateLimited is surfaced when a user exhausted their command budget.
var errRateLimited = errors.New("too many commands, slow down and try again in a minute")

func userFlag() *cli.Int64Flag {
	return &cli.Int64Flag{
		Name:     "user",
		Usage:    "Chat-platform user id the command acts for",
		Required: true,
	}
}

func chainFlag(required bool) *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "chain",
		Usage:    fmt.Sprintf("Chain ticker (%s)", strings.Join(chains.Tickers(), ", ")),
		Required: required,
	}
}

func addressFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "address",
		Usage:    "Wallet address to act on",
		Required: true,
	}
}

// checkBudget consults the pluggable rate limiter when one is configured.
func checkBudget(ctx context.Context, limiter CommandRateLimiter, userID int64) error {
	if limiter == nil {
		return nil
	}

	allowed, err := limiter.Allow(ctx, userID)
	if err != nil {
		return err
	}
	if !allowed {
		return errRateLimited
	}
	return nil
}

// trackWalletCommand subscribes a user to a wallet and provisions its
// provider stream when it is the first subscription.
//
// Usage example:
//
//	walletping track --user 42 --chain ETH --address 0xABC... --alias savings
func trackWalletCommand(tracker tracking.Service, limiter CommandRateLimiter) *cli.Command {
	return &cli.Command{
		Name:        "track",
		Description: "Subscribe a user to a wallet so every transaction touching it produces an alert.",
		Usage:       "Starts tracking a wallet for a user. Requires user, chain and address.",
		Flags: []cli.Flag{
			userFlag(),
			chainFlag(true),
			addressFlag(),
			&cli.StringFlag{
				Name:  "alias",
				Usage: "Optional human-readable label for the wallet",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			userID := c.Int64("user")

			if err := checkBudget(ctx, limiter, userID); err != nil {
				return err
			}

			result, err := tracker.StartTracking(ctx, userID, c.String("chain"), c.String("address"), c.String("alias"))
			switch {
			case errors.Is(err, streamsync.ErrStreamProvision):
				fmt.Println("subscription recorded, but stream setup is pending; try again later")
				return nil
			case err != nil:
				return err
			}

			if result.Created {
				fmt.Printf("now tracking %s on %s\n", result.Wallet.Address, result.Wallet.Chain)
			} else {
				fmt.Printf("already tracking %s on %s (%d subscribers)\n", result.Wallet.Address, result.Wallet.Chain, len(result.Wallet.Subscribers))
			}
			return nil
		},
	}
}

// untrackWalletCommand removes a user's subscription; the wallet record and
// its provider stream go away with the last subscriber.
//
// Usage example:
//
//	walletping untrack --user 42 --chain ETH --address 0xABC...
func untrackWalletCommand(tracker tracking.Service, limiter CommandRateLimiter) *cli.Command {
	return &cli.Command{
		Name:        "untrack",
		Description: "Remove a user's wallet subscription.",
		Usage:       "Stops tracking a wallet for a user. Requires user, chain and address.",
		Flags: []cli.Flag{
			userFlag(),
			chainFlag(true),
			addressFlag(),
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			userID := c.Int64("user")

			if err := checkBudget(ctx, limiter, userID); err != nil {
				return err
			}

			err := tracker.StopTracking(ctx, userID, c.String("chain"), c.String("address"))
			if errors.Is(err, tracking.ErrNotSubscribed) {
				fmt.Println("this wallet was not being tracked for that user")
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Println("stopped tracking")
			return nil
		},
	}
}

// listWalletsCommand prints a user's tracked wallets, optionally restricted
// to one chain.
//
// Usage example:
//
//	walletping list --user 42 --chain ETH
func listWalletsCommand(tracker tracking.Service) *cli.Command {
	return &cli.Command{
		Name:        "list",
		Description: "List the wallets a user is tracking, grouped by chain.",
		Usage:       "Lists tracked wallets. Requires user; chain filter is optional.",
		Flags: []cli.Flag{
			userFlag(),
			chainFlag(false),
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			wallets, err := tracker.ListTracked(ctx, c.Int64("user"), c.String("chain"))
			if err != nil {
				return err
			}

			if len(wallets) == 0 {
				fmt.Println("no tracked wallets")
				return nil
			}

			for _, w := range wallets {
				line := fmt.Sprintf("%s  %s", w.Chain, w.Address)
				if w.Alias != "" {
					line += fmt.Sprintf("  (%s)", w.Alias)
				}
				if w.StreamID == "" {
					line += "  [stream pending]"
				}
				fmt.Println(line)
			}
			return nil
		},
	}
}
