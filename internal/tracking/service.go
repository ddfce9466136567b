// Package tracking implements the user-facing subscription operations: start
// tracking a wallet, stop tracking it, and list what a user tracks. It
// validates and canonicalizes input, mutates the subscription store, and keeps
// the stream registrar in step with record creation and deletion.
package tracking

import (
	"context"

	"github.com/walletping/walletping/internal/pkg/retry"
)

// TrackResult is what a successful StartTracking reports back to the chat
// layer.
type TrackResult struct {
	// Created is true when this call created the wallet record (the user is
	// its first subscriber).
	Created bool

	// Wallet is the record after the mutation.
	Wallet TrackedWallet
}

// Service exposes the wallet tracking operations invoked by the chat command
// surface and the operator CLI.
type Service interface {
	// StartTracking validates and canonicalizes the address, subscribes the
	// user, and provisions a provider stream when this is the wallet's first
	// subscriber. A stream provisioning failure is returned as a retryable
	// error while the subscription itself remains recorded (pending stream).
	StartTracking(ctx context.Context, userID int64, chain, address, alias string) (TrackResult, error)

	// StopTracking removes the user's subscription. When the last subscriber
	// leaves, the wallet record is deleted and the provider stream released;
	// a release failure is logged, never surfaced, so the user is never stuck
	// tracking because of a provider outage.
	StopTracking(ctx context.Context, userID int64, chain, address string) error

	// ListTracked returns the user's tracked wallets, optionally restricted
	// to one chain ticker.
	ListTracked(ctx context.Context, userID int64, chainFilter string) ([]TrackedWallet, error)
}

type service struct {
	storage   SubscriptionStorage
	registrar StreamRegistrar

	provisionRetry retry.Retry
}

var _ Service = (*service)(nil)

// Option customizes the tracking service.
type Option func(*service)

// WithProvisionRetry retries stream provisioning with the given policy before
// surfacing a failure to the user. Creation calls may partially succeed
// provider-side, so the registrar tolerates "already exists" on reattempts.
func WithProvisionRetry(r retry.Retry) Option {
	return func(s *service) {
		s.provisionRetry = r
	}
}

// New wires a tracking service over the given storage and registrar.
func New(storage SubscriptionStorage, registrar StreamRegistrar, opts ...Option) *service {
	s := &service{
		storage:   storage,
		registrar: registrar,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
