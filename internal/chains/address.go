package chains

import (
	"errors"
	"strings"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/ethereum/go-ethereum/common"
)

// ErrInvalidFormat is returned when an address does not match its chain
// family's syntax.
var ErrInvalidFormat = errors.New("invalid address format")

const (
	// singleLedgerMinLen and singleLedgerMaxLen bound the base58 text length
	// of a 32-byte public key.
	singleLedgerMinLen = 32
	singleLedgerMaxLen = 44

	// singleLedgerKeyLen is the decoded public key size.
	singleLedgerKeyLen = 32
)

// ValidateAddress checks raw against the ticker's chain family and returns
// the canonical form used as the wallet uniqueness key.
//
// EVM addresses must be 0x-prefixed 40-digit hex; the canonical form is the
// EIP-55 checksummed rendering, which is identical for any letter-casing of
// the same address. Single-ledger addresses must be base58 text decoding to
// exactly 32 bytes; they are already canonical as supplied.
//
// The function is pure: identical inputs always yield identical outputs.
func ValidateAddress(raw, ticker string) (string, error) {
	chain, err := ByTicker(ticker)
	if err != nil {
		return "", err
	}

	switch chain.Family {
	case FamilyEVM:
		return canonicalEVMAddress(raw)
	case FamilySingleLedger:
		return canonicalSingleLedgerAddress(raw)
	default:
		return "", ErrUnsupportedChain
	}
}

// NormalizeForLookup derives the storage key spelling of an address. EVM
// addresses are lowercased so case-divergent spellings of the same address
// share one record; single-ledger addresses are case-significant and pass
// through unchanged.
func NormalizeForLookup(family Family, address string) string {
	if family == FamilyEVM {
		return strings.ToLower(address)
	}
	return address
}

func canonicalEVMAddress(raw string) (string, error) {
	if !strings.HasPrefix(raw, "0x") || !common.IsHexAddress(raw) {
		return "", ErrInvalidFormat
	}
	return common.HexToAddress(raw).Hex(), nil
}

func canonicalSingleLedgerAddress(raw string) (string, error) {
	if len(raw) < singleLedgerMinLen || len(raw) > singleLedgerMaxLen {
		return "", ErrInvalidFormat
	}

	decoded := base58.Decode(raw)
	if len(decoded) != singleLedgerKeyLen {
		return "", ErrInvalidFormat
	}

	return raw, nil
}
