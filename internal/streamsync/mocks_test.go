package streamsync

import (
	"context"
	"testing"

	"github.com/walletping/walletping/internal/chains"

	"github.com/stretchr/testify/mock"
)

type StreamProviderMock struct {
	mock.Mock
}

func NewStreamProviderMock(t *testing.T) *StreamProviderMock {
	m := new(StreamProviderMock)
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *StreamProviderMock) CreateStream(ctx context.Context, req StreamRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *StreamProviderMock) DeleteStream(ctx context.Context, family chains.Family, streamID string) error {
	args := m.Called(ctx, family, streamID)
	return args.Error(0)
}

type StreamBinderMock struct {
	mock.Mock
}

func NewStreamBinderMock(t *testing.T) *StreamBinderMock {
	m := new(StreamBinderMock)
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *StreamBinderMock) AttachStreamID(ctx context.Context, chain, address, streamID string) (bool, error) {
	args := m.Called(ctx, chain, address, streamID)
	return args.Bool(0), args.Error(1)
}
