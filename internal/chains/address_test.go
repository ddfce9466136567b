package chains

import (
	"bytes"
	"strings"
	"testing"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checksummedAddr is the EIP-55 reference vector.
const checksummedAddr = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"

func TestValidateAddress_EVM(t *testing.T) {
	t.Run("returns the checksummed form for a lowercase address", func(t *testing.T) {
		canonical, err := ValidateAddress(strings.ToLower(checksummedAddr), "ETH")
		require.NoError(t, err)
		assert.Equal(t, checksummedAddr, canonical)
	})

	t.Run("returns the identical canonical form for any letter case", func(t *testing.T) {
		variants := []string{
			strings.ToLower(checksummedAddr),
			"0x" + strings.ToUpper(checksummedAddr[2:]),
			checksummedAddr,
		}

		for _, variant := range variants {
			canonical, err := ValidateAddress(variant, "ETH")
			require.NoError(t, err)
			assert.Equal(t, checksummedAddr, canonical)
		}
	})

	t.Run("rejects addresses without the 0x prefix", func(t *testing.T) {
		_, err := ValidateAddress(checksummedAddr[2:], "ETH")
		assert.ErrorIs(t, err, ErrInvalidFormat)
	})

	t.Run("rejects addresses of the wrong length", func(t *testing.T) {
		_, err := ValidateAddress("0x5aAeb6053F3E94C9b9A09f3366", "MATIC")
		assert.ErrorIs(t, err, ErrInvalidFormat)
	})

	t.Run("rejects non-hex characters", func(t *testing.T) {
		_, err := ValidateAddress("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAzz", "ETH")
		assert.ErrorIs(t, err, ErrInvalidFormat)
	})
}

func TestValidateAddress_SingleLedger(t *testing.T) {
	t.Run("accepts a base58 32-byte public key unchanged", func(t *testing.T) {
		raw := base58.Encode(bytes.Repeat([]byte{7}, 32))

		canonical, err := ValidateAddress(raw, "SOL")
		require.NoError(t, err)
		assert.Equal(t, raw, canonical)
	})

	t.Run("accepts the all-ones system address", func(t *testing.T) {
		raw := strings.Repeat("1", 32)

		canonical, err := ValidateAddress(raw, "SOL")
		require.NoError(t, err)
		assert.Equal(t, raw, canonical)
	})

	t.Run("rejects strings below the minimum length", func(t *testing.T) {
		_, err := ValidateAddress(strings.Repeat("1", 31), "SOL")
		assert.ErrorIs(t, err, ErrInvalidFormat)
	})

	t.Run("rejects strings above the maximum length", func(t *testing.T) {
		_, err := ValidateAddress(strings.Repeat("1", 45), "SOL")
		assert.ErrorIs(t, err, ErrInvalidFormat)
	})

	t.Run("rejects characters outside the base58 alphabet", func(t *testing.T) {
		_, err := ValidateAddress(strings.Repeat("1", 31)+"0", "SOL")
		assert.ErrorIs(t, err, ErrInvalidFormat)
	})

	t.Run("rejects keys that do not decode to 32 bytes", func(t *testing.T) {
		// 33 base58 digits sit inside the length gate but decode to fewer
		// than 32 bytes.
		_, err := ValidateAddress(strings.Repeat("2", 33), "SOL")
		assert.ErrorIs(t, err, ErrInvalidFormat)
	})
}

func TestValidateAddress_UnsupportedChain(t *testing.T) {
	t.Run("returns ErrUnsupportedChain, never ErrInvalidFormat, for unknown tickers", func(t *testing.T) {
		for _, ticker := range []string{"DOGE", "BTC", "", "eth"} {
			_, err := ValidateAddress(checksummedAddr, ticker)
			assert.ErrorIs(t, err, ErrUnsupportedChain)
			assert.NotErrorIs(t, err, ErrInvalidFormat)
		}
	})
}

func TestNormalizeForLookup(t *testing.T) {
	t.Run("lowercases EVM addresses", func(t *testing.T) {
		assert.Equal(t, strings.ToLower(checksummedAddr), NormalizeForLookup(FamilyEVM, checksummedAddr))
	})

	t.Run("keeps single-ledger addresses untouched", func(t *testing.T) {
		raw := base58.Encode(bytes.Repeat([]byte{9}, 32))
		assert.Equal(t, raw, NormalizeForLookup(FamilySingleLedger, raw))
	})
}
