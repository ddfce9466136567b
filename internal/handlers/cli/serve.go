package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/walletping/walletping/internal/handlers/webhook"
	"github.com/walletping/walletping/internal/pkg/logger"

	"github.com/urfave/cli/v3"
)

// shutdownGrace bounds how long in-flight webhook deliveries may drain.
const shutdownGrace = 15 * time.Second

// serveCommand returns the CLI command that runs the provider webhook
// receiver until it receives an interrupt (SIGINT or SIGTERM).
//
// Usage example:
//
//	walletping serve
func serveCommand(server *webhook.Server) *cli.Command {
	return &cli.Command{
		Name:        "serve",
		Description: "Runs the webhook receiver that turns provider transaction events into subscriber alerts.",
		Usage:       "Starts the event receiver. Terminates gracefully on Ctrl+C or termination signals.",
		Action: func(ctx context.Context, c *cli.Command) error {
			quit := make(chan os.Signal, 1)
			defer close(quit)

			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				errCh <- server.Start()
			}()

			logger.Info(ctx, "webhook receiver started")

			select {
			case err := <-errCh:
				return err
			case <-quit:
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return err
			}

			return <-errCh
		},
	}
}
