package tracking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
)

// SubscriptionStorageMock is a testify mock for SubscriptionStorage.
type SubscriptionStorageMock struct {
	mock.Mock
}

func NewSubscriptionStorageMock(t *testing.T) *SubscriptionStorageMock {
	m := new(SubscriptionStorageMock)
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *SubscriptionStorageMock) Subscribe(ctx context.Context, userID int64, chain, address, alias string) (SubscribeResult, error) {
	args := m.Called(ctx, userID, chain, address, alias)
	return args.Get(0).(SubscribeResult), args.Error(1)
}

func (m *SubscriptionStorageMock) Unsubscribe(ctx context.Context, userID int64, chain, address string) (UnsubscribeResult, error) {
	args := m.Called(ctx, userID, chain, address)
	return args.Get(0).(UnsubscribeResult), args.Error(1)
}

func (m *SubscriptionStorageMock) ListForUser(ctx context.Context, userID int64, chainFilter string) ([]TrackedWallet, error) {
	args := m.Called(ctx, userID, chainFilter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]TrackedWallet), args.Error(1)
}

// StreamRegistrarMock is a testify mock for StreamRegistrar.
type StreamRegistrarMock struct {
	mock.Mock
}

func NewStreamRegistrarMock(t *testing.T) *StreamRegistrarMock {
	m := new(StreamRegistrarMock)
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *StreamRegistrarMock) EnsureStream(ctx context.Context, chain, address, streamID string) (string, error) {
	args := m.Called(ctx, chain, address, streamID)
	return args.String(0), args.Error(1)
}

func (m *StreamRegistrarMock) ReleaseStream(ctx context.Context, chain, streamID string) error {
	args := m.Called(ctx, chain, streamID)
	return args.Error(0)
}
