package main

import (
	"context"
	"log"
	"time"

	"github.com/walletping/walletping/internal/config"
	"github.com/walletping/walletping/internal/dispatch"
	"github.com/walletping/walletping/internal/handlers/cli"
	"github.com/walletping/walletping/internal/handlers/webhook"
	"github.com/walletping/walletping/internal/infra/notify/telegram"
	"github.com/walletping/walletping/internal/infra/storage/redis"
	"github.com/walletping/walletping/internal/infra/streams/moralis"
	"github.com/walletping/walletping/internal/pkg/logger"
	"github.com/walletping/walletping/internal/pkg/retry"
	"github.com/walletping/walletping/internal/pkg/telemetry"
	transporthttp "github.com/walletping/walletping/internal/pkg/transport/http"
	"github.com/walletping/walletping/internal/pkg/validator"
	"github.com/walletping/walletping/internal/streamsync"
	"github.com/walletping/walletping/internal/tracking"
)

const serviceName = "walletping"

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading configuration: %v", err)
	}

	if cfg.TelemetryEnabled {
		shutdown, err := telemetry.Init(ctx, serviceName)
		if err != nil {
			log.Fatalf("initializing telemetry: %v", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			shutdown(shutdownCtx)
		}()
	}

	if err := logger.Init(logger.WithLevel(cfg.LogLevel)); err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	validator.Init()

	store, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Username, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Fatal(ctx, "connecting to redis", "error", err)
	}
	defer store.Close()

	streamProvider := moralis.NewClient(
		transporthttp.NewClient(transporthttp.WithTimeout(cfg.Streams.Timeout)),
		cfg.Streams.APIKey,
		moralisOptions(cfg.Streams)...,
	)

	sender, err := telegram.NewSender(cfg.Telegram.Token, cfg.Telegram.Timeout)
	if err != nil {
		logger.Fatal(ctx, "authenticating telegram bot", "error", err)
	}

	registrar := streamsync.New(streamProvider, store, cfg.Webhook.PublicURL+"/streams/moralis")

	tracker := tracking.New(store, registrar,
		tracking.WithProvisionRetry(retry.New(retry.WithAttempts(3))),
	)

	dispatcher := dispatch.New(store, sender, cfg.Webhook.Secret)
	server := webhook.New(dispatcher, cfg.Webhook.ListenAddr)
	limiter := redis.NewRateLimiter(store, cfg.RateLimit.Commands, cfg.RateLimit.Window)

	if err := cli.Run(ctx, tracker, server, limiter); err != nil {
		logger.Fatal(ctx, "command failed", "error", err)
	}
}

func moralisOptions(cfg config.Streams) []moralis.Option {
	var opts []moralis.Option
	if cfg.EVMBaseURL != "" {
		opts = append(opts, moralis.WithEVMBaseURL(cfg.EVMBaseURL))
	}
	if cfg.SingleLedgerBaseURL != "" {
		opts = append(opts, moralis.WithSingleLedgerBaseURL(cfg.SingleLedgerBaseURL))
	}
	return opts
}
