package dispatch

import (
	"errors"
	"fmt"
	"html"
	"math/big"
	"strconv"

	"github.com/walletping/walletping/internal/chains"

	"github.com/shopspring/decimal"
)

// movement is one value transfer extracted from a provider event: either a
// token sub-record or a native-currency transaction.
type movement struct {
	txHash   string
	from     string
	to       string
	rawValue string
	symbol   string
	decimals int32
	token    bool
}

// extractMovements flattens a provider event into movements. Token-transfer
// sub-records take precedence: when present, each yields one movement (a
// single transaction moving several tokens alerts once per token). Otherwise
// each top-level transaction yields one native-currency movement.
func extractMovements(chain chains.Chain, evt providerEvent) []movement {
	if len(evt.ERC20Transfers) > 0 {
		movements := make([]movement, 0, len(evt.ERC20Transfers))
		for _, t := range evt.ERC20Transfers {
			decimals, err := strconv.ParseInt(t.TokenDecimals, 10, 32)
			if err != nil {
				decimals = int64(chain.NativeDecimals)
			}

			movements = append(movements, movement{
				txHash:   t.TransactionHash,
				from:     t.From,
				to:       t.To,
				rawValue: t.Value,
				symbol:   t.TokenSymbol,
				decimals: int32(decimals),
				token:    true,
			})
		}
		return movements
	}

	movements := make([]movement, 0, len(evt.Txs))
	for _, tx := range evt.Txs {
		movements = append(movements, movement{
			txHash:   tx.Hash,
			from:     tx.FromAddress,
			to:       tx.ToAddress,
			rawValue: tx.Value,
			symbol:   chain.NativeSymbol,
			decimals: chain.NativeDecimals,
		})
	}
	return movements
}

// errUnparsableValue reports a transfer value that is not a base-10 integer.
var errUnparsableValue = errors.New("unparsable transfer value")

// formatAmount renders a raw integer transfer value scaled down by 10^decimals
// using arbitrary-precision arithmetic. Trailing fractional zeros are trimmed
// and whole amounts carry no decimal point: "1.5" and "1", never "1.50" or
// "1.".
func formatAmount(rawValue string, decimals int32) (string, error) {
	n, ok := new(big.Int).SetString(rawValue, 10)
	if !ok {
		return "", errUnparsableValue
	}

	return decimal.NewFromBigInt(n, -decimals).String(), nil
}

// direction labels a movement relative to the tracked wallet.
type direction string

const (
	directionIncoming direction = "Incoming"
	directionOutgoing direction = "Outgoing"
)

// movementDirection is incoming exactly when the tracked address is the
// movement's recipient, compared through the family's lookup normalization so
// EVM letter case never flips the result.
func movementDirection(family chains.Family, trackedKey string, m movement) direction {
	if chains.NormalizeForLookup(family, m.to) == trackedKey {
		return directionIncoming
	}
	return directionOutgoing
}

// buildMessage renders the alert text delivered to every subscriber of the
// wallet. All user-controlled fields are HTML-escaped.
func buildMessage(chain chains.Chain, wallet Wallet, m movement, dir direction, amount string) string {
	label := html.EscapeString(wallet.Address)
	if wallet.Alias != "" {
		label = fmt.Sprintf("%s (%s)", label, html.EscapeString(wallet.Alias))
	}

	counterparty := m.from
	if dir == directionOutgoing {
		counterparty = m.to
	}

	msg := fmt.Sprintf(
		"🔔 <b>%s transfer</b> on %s\nWallet: <code>%s</code>\nAmount: %s %s\nCounterparty: <code>%s</code>",
		dir,
		html.EscapeString(chain.Name),
		label,
		amount,
		html.EscapeString(m.symbol),
		html.EscapeString(counterparty),
	)

	if m.txHash != "" {
		msg += fmt.Sprintf("\nTx: <code>%s</code>", html.EscapeString(m.txHash))
	}

	return msg
}
