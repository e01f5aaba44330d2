package processors

import (
	"context"

	"github.com/chainledger/chainledger/pkg/ledger"
	"github.com/chainledger/chainledger/pkg/transaction"
	logparser "github.com/chainledger/chainledger/pkg/transactionLogParser"
	"github.com/shopspring/decimal"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// MsgWithdrawDelegatorReward aggregates every reward transfer credited to
// the wallet across all logs, summed per resolved symbol. Multiple
// withdrawals of the same asset in one transaction collapse into a single
// income row, followed by one fee expense.
func MsgWithdrawDelegatorReward(ctx context.Context, pctx *Context, tx *transaction.Transaction, logs []transaction.Log) ([]ledger.Row, error) {
	rewards := orderedmap.New[string, decimal.Decimal]()

	for _, log := range logs {
		for _, event := range logparser.EventsOfType(log, "transfer") {
			for _, leg := range logparser.GroupAttributes(event.Attributes) {
				recipient, _ := logparser.ValueOfKey(leg, "recipient")
				if recipient != pctx.Address {
					continue
				}
				for _, coin := range coinsOf(leg) {
					d := pctx.Resolver.Resolve(ctx, coin.Denom)
					amount := ledger.ScaleDecimal(coin.Amount, d.Decimals)

					sum, ok := rewards.Get(d.Symbol)
					if !ok {
						sum = decimal.Zero
					}
					rewards.Set(d.Symbol, sum.Add(amount))
				}
			}
		}
	}

	rows := make([]ledger.Row, 0, rewards.Len()+1)
	for pair := rewards.Oldest(); pair != nil; pair = pair.Next() {
		rows = append(rows, ledger.Row{
			Type:           ledger.RowType_Income,
			ReceivedAmount: pair.Value.String(),
			ReceivedAsset:  pair.Key,
			Description:    "Claimed Rewards",
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
		Description: "Fees from Claiming Rewards",
	})

	return rows, nil
}

// LegacyWithdrawDelegatorReward is the flat-log variant: one transfer
// event per log, no leg grouping.
func LegacyWithdrawDelegatorReward(ctx context.Context, pctx *Context, tx *transaction.Transaction, logs []transaction.Log) ([]ledger.Row, error) {
	rewards := orderedmap.New[string, decimal.Decimal]()

	for _, log := range logs {
		event, ok := logparser.FirstEvent(log, "transfer")
		if !ok {
			continue
		}
		recipient, _ := logparser.ValueOfKey(event.Attributes, "recipient")
		if recipient != pctx.Address {
			continue
		}
		for _, coin := range coinsOf(event.Attributes) {
			d := pctx.Resolver.Resolve(ctx, coin.Denom)
			amount := ledger.ScaleDecimal(coin.Amount, d.Decimals)

			sum, ok := rewards.Get(d.Symbol)
			if !ok {
				sum = decimal.Zero
			}
			rewards.Set(d.Symbol, sum.Add(amount))
		}
	}

	rows := make([]ledger.Row, 0, rewards.Len()+1)
	for pair := rewards.Oldest(); pair != nil; pair = pair.Next() {
		rows = append(rows, ledger.Row{
			Type:           ledger.RowType_Income,
			ReceivedAmount: pair.Value.String(),
			ReceivedAsset:  pair.Key,
			Description:    "Claimed Rewards",
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
		Description: "Fees from Claiming Rewards",
	})

	return rows, nil
}
