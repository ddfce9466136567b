package streamsync

import (
	"os"
	"testing"

	"github.com/walletping/walletping/internal/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}

	os.Exit(m.Run())
}
