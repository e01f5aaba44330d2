package processors

import (
	"context"
	"fmt"

	"github.com/chainledger/chainledger/pkg/ledger"
	"github.com/chainledger/chainledger/pkg/transaction"
	logparser "github.com/chainledger/chainledger/pkg/transactionLogParser"
)

// MsgSend classifies bank sends. Transfer events are grouped into per-leg
// (recipient, sender, amount) records; legs crediting the wallet become
// deposits, legs debiting it become transfers plus a fee expense.
func MsgSend(ctx context.Context, pctx *Context, tx *transaction.Transaction, logs []transaction.Log) ([]ledger.Row, error) {
	rows := make([]ledger.Row, 0)

	for _, log := range logs {
		for _, event := range logparser.EventsOfType(log, "transfer") {
			for _, leg := range logparser.GroupAttributes(event.Attributes) {
				recipient, _ := logparser.ValueOfKey(leg, "recipient")
				sender, _ := logparser.ValueOfKey(leg, "sender")

				switch pctx.Address {
				case recipient:
					for _, coin := range coinsOf(leg) {
						amount, symbol := pctx.resolveCoin(ctx, coin)
						rows = append(rows, ledger.Row{
							Type:           ledger.RowType_Deposit,
							ReceivedAmount: amount,
							ReceivedAsset:  symbol,
							Description:    fmt.Sprintf("Received from %s", sender),
						})
					}
				case sender:
					for _, coin := range coinsOf(leg) {
						amount, symbol := pctx.resolveCoin(ctx, coin)
						rows = append(rows, ledger.Row{
							Type:        ledger.RowType_Transfer,
							SentAmount:  amount,
							SentAsset:   symbol,
							Description: fmt.Sprintf("Sent to %s", recipient),
						})
					}

					fee, err := pctx.Fees.Compute(ctx, tx)
					if err != nil {
						return nil, err
					}
					rows = append(rows, ledger.Row{
						Type:        ledger.RowType_Expense,
						FeeAmount:   fee.Amount,
						FeeAsset:    fee.Asset,
						Description: "Fee for Transfer",
					})
				}
			}
		}
	}

	return rows, nil
}

// MsgMultiSend credits the wallet for every output leg addressed to it.
func MsgMultiSend(ctx context.Context, pctx *Context, tx *transaction.Transaction, logs []transaction.Log) ([]ledger.Row, error) {
	rows := make([]ledger.Row, 0)

	for _, log := range logs {
		for _, event := range logparser.EventsOfType(log, "transfer") {
			for _, leg := range logparser.GroupAttributes(event.Attributes) {
				recipient, _ := logparser.ValueOfKey(leg, "recipient")
				if recipient != pctx.Address {
					continue
				}
				sender, _ := logparser.ValueOfKey(leg, "sender")
				for _, coin := range coinsOf(leg) {
					amount, symbol := pctx.resolveCoin(ctx, coin)
					rows = append(rows, ledger.Row{
						Type:           ledger.RowType_Income,
						ReceivedAmount: amount,
						ReceivedAsset:  symbol,
						Description:    fmt.Sprintf("Received from multi-send by %s", sender),
					})
				}
			}
		}
	}

	return rows, nil
}

// LegacySend handles the pre-action-attribute send log shape: a single
// flat transfer event per log.
func LegacySend(ctx context.Context, pctx *Context, tx *transaction.Transaction, logs []transaction.Log) ([]ledger.Row, error) {
	rows := make([]ledger.Row, 0)

	for _, log := range logs {
		event, ok := logparser.FirstEvent(log, "transfer")
		if !ok {
			continue
		}
		recipient, _ := logparser.ValueOfKey(event.Attributes, "recipient")
		sender, _ := logparser.ValueOfKey(event.Attributes, "sender")

		switch pctx.Address {
		case recipient:
			for _, coin := range coinsOf(event.Attributes) {
				amount, symbol := pctx.resolveCoin(ctx, coin)
				rows = append(rows, ledger.Row{
					Type:           ledger.RowType_Deposit,
					ReceivedAmount: amount,
					ReceivedAsset:  symbol,
					Description:    fmt.Sprintf("Received from %s", sender),
				})
			}
		case sender:
			for _, coin := range coinsOf(event.Attributes) {
				amount, symbol := pctx.resolveCoin(ctx, coin)
				rows = append(rows, ledger.Row{
					Type:        ledger.RowType_Transfer,
					SentAmount:  amount,
					SentAsset:   symbol,
					Description: fmt.Sprintf("Sent to %s", recipient),
				})
			}

			fee, err := pctx.Fees.Compute(ctx, tx)
			if err != nil {
				return nil, err
			}
			rows = append(rows, ledger.Row{
				Type:      ledger.RowType_Expense,
				FeeAmount: fee.Amount,
				FeeAsset:  fee.Asset,
			})
		}
	}

	return rows, nil
}
