package dispatch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
)

type WalletFinderMock struct {
	mock.Mock
}

func NewWalletFinderMock(t *testing.T) *WalletFinderMock {
	m := new(WalletFinderMock)
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *WalletFinderMock) FindByChainAndAddress(ctx context.Context, chain, addressKey string) (Wallet, error) {
	args := m.Called(ctx, chain, addressKey)
	return args.Get(0).(Wallet), args.Error(1)
}

type AlertSenderMock struct {
	mock.Mock
}

func NewAlertSenderMock(t *testing.T) *AlertSenderMock {
	m := new(AlertSenderMock)
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *AlertSenderMock) SendAlert(ctx context.Context, recipientID int64, message string) error {
	args := m.Called(ctx, recipientID, message)
	return args.Error(0)
}
