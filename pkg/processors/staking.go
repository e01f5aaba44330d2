package processors

import (
	"context"
	"fmt"

	"github.com/chainledger/chainledger/pkg/ledger"
	"github.com/chainledger/chainledger/pkg/transaction"
	logparser "github.com/chainledger/chainledger/pkg/transactionLogParser"
)

// MsgDelegate emits one expense per delegate event and, unless reward
// detection is suppressed for this transaction, an income row per
// auto-claimed pending reward paid back to the wallet.
func MsgDelegate(ctx context.Context, pctx *Context, tx *transaction.Transaction, logs []transaction.Log) ([]ledger.Row, error) {
	rows := make([]ledger.Row, 0)

	for _, log := range logs {
		for _, event := range logparser.EventsOfType(log, "delegate") {
			for _, coin := range coinsOf(event.Attributes) {
				amount, symbol := pctx.resolveCoin(ctx, coin)

				fee, err := pctx.Fees.Compute(ctx, tx)
				if err != nil {
					return nil, err
				}
				rows = append(rows, ledger.Row{
					Type:        ledger.RowType_Expense,
					FeeAmount:   fee.Amount,
					FeeAsset:    fee.Asset,
					Description: fmt.Sprintf("Delegated %s %s", amount, symbol),
				})
			}
		}

		if pctx.SuppressDelegateRewards {
			continue
		}
		rows = append(rows, autoClaimedRewards(ctx, pctx, log, "Claimed Rewards from Delegating")...)
	}

	return rows, nil
}

// LegacyDelegate handles the flat pre-action delegate shape: one delegate
// event and an optional reward transfer per log, scaled at the chain's
// base precision.
func LegacyDelegate(ctx context.Context, pctx *Context, tx *transaction.Transaction, logs []transaction.Log) ([]ledger.Row, error) {
	rows := make([]ledger.Row, 0)

	for _, log := range logs {
		var amount string
		if event, ok := logparser.FirstEvent(log, "delegate"); ok {
			coins := coinsOf(event.Attributes)
			amount = ledger.ScaleAmount(coins[0].Amount, pctx.BaseDecimals)
		} else {
			amount = "0"
		}

		fee, err := pctx.Fees.Compute(ctx, tx)
		if err != nil {
			return nil, err
		}
		rows = append(rows, ledger.Row{
			Type:        ledger.RowType_Expense,
			FeeAmount:   fee.Amount,
			FeeAsset:    fee.Asset,
			Description: fmt.Sprintf("Delegated %s %s", amount, pctx.BaseSymbol),
		})

		if pctx.SuppressDelegateRewards {
			continue
		}

		if event, ok := logparser.FirstEvent(log, "transfer"); ok {
			recipient, _ := logparser.ValueOfKey(event.Attributes, "recipient")
			if recipient != pctx.Address {
				continue
			}
			for _, coin := range coinsOf(event.Attributes) {
				claimed, symbol := pctx.resolveCoin(ctx, coin)
				rows = append(rows, ledger.Row{
					Type:           ledger.RowType_Income,
					ReceivedAmount: claimed,
					ReceivedAsset:  symbol,
					Description:    fmt.Sprintf("Claimed %s %s", claimed, symbol),
				})
			}
		}
	}

	return rows, nil
}

// MsgBeginRedelegate emits one expense per redelegate event and an income
// row per auto-claimed reward transfer back to the wallet.
func MsgBeginRedelegate(ctx context.Context, pctx *Context, tx *transaction.Transaction, logs []transaction.Log) ([]ledger.Row, error) {
	rows := make([]ledger.Row, 0)

	for _, log := range logs {
		for _, event := range logparser.EventsOfType(log, "redelegate") {
			source, _ := logparser.ValueOfKey(event.Attributes, "source_validator")
			dest, _ := logparser.ValueOfKey(event.Attributes, "destination_validator")

			for _, coin := range coinsOf(event.Attributes) {
				amount, symbol := pctx.resolveCoin(ctx, coin)

				fee, err := pctx.Fees.Compute(ctx, tx)
				if err != nil {
					return nil, err
				}
				rows = append(rows, ledger.Row{
					Type:        ledger.RowType_Expense,
					FeeAmount:   fee.Amount,
					FeeAsset:    fee.Asset,
					Description: fmt.Sprintf("Redelegated %s %s from %s to %s", amount, symbol, source, dest),
				})
			}
		}

		rows = append(rows, autoClaimedRewards(ctx, pctx, log, "Claimed Rewards from Redelegating")...)
	}

	return rows, nil
}

// LegacyBeginRedelegate reads the flat redelegate shape and sums reward
// transfers at base precision, the only precision those logs carry.
func LegacyBeginRedelegate(ctx context.Context, pctx *Context, tx *transaction.Transaction, logs []transaction.Log) ([]ledger.Row, error) {
	rows := make([]ledger.Row, 0)

	for _, log := range logs {
		for _, event := range logparser.EventsOfType(log, "redelegate") {
			source, _ := logparser.ValueOfKey(event.Attributes, "source_validator")
			dest, _ := logparser.ValueOfKey(event.Attributes, "destination_validator")
			coins := coinsOf(event.Attributes)
			amount := ledger.ScaleAmount(coins[0].Amount, pctx.BaseDecimals)

			fee, err := pctx.Fees.Compute(ctx, tx)
			if err != nil {
				return nil, err
			}
			rows = append(rows, ledger.Row{
				Type:        ledger.RowType_Expense,
				FeeAmount:   fee.Amount,
				FeeAsset:    fee.Asset,
				Description: fmt.Sprintf("Redelegated %s %s from %s to %s", amount, pctx.BaseSymbol, source, dest),
			})
		}

		for _, event := range logparser.EventsOfType(log, "transfer") {
			sum := ledger.ScaleDecimal("0", 0)
			for _, attr := range event.Attributes {
				if attr.Key != "amount" {
					continue
				}
				coins := logparser.ParseCoins(attr.Value)
				sum = sum.Add(ledger.ScaleDecimal(coins[0].Amount, pctx.BaseDecimals))
			}
			if sum.IsZero() {
				continue
			}
			rows = append(rows, ledger.Row{
				Type:           ledger.RowType_Income,
				ReceivedAmount: sum.String(),
				ReceivedAsset:  pctx.BaseSymbol,
				Description:    "Claimed Rewards from Redelegating",
			})
		}
	}

	return rows, nil
}

// autoClaimedRewards finds transfer legs crediting the wallet in a log.
// Delegating or redelegating automatically pays out pending rewards, which
// surface as plain transfer events.
func autoClaimedRewards(ctx context.Context, pctx *Context, log transaction.Log, description string) []ledger.Row {
	rows := make([]ledger.Row, 0)
	for _, event := range logparser.EventsOfType(log, "transfer") {
		for _, leg := range logparser.GroupAttributes(event.Attributes) {
			recipient, _ := logparser.ValueOfKey(leg, "recipient")
			if recipient != pctx.Address {
				continue
			}
			for _, coin := range coinsOf(leg) {
				amount, symbol := pctx.resolveCoin(ctx, coin)
				rows = append(rows, ledger.Row{
					Type:           ledger.RowType_Income,
					ReceivedAmount: amount,
					ReceivedAsset:  symbol,
					Description:    description,
				})
			}
		}
	}
	return rows
}
