package processors

import (
	"context"
	"fmt"

	"github.com/chainledger/chainledger/pkg/ledger"
	"github.com/chainledger/chainledger/pkg/transaction"
	logparser "github.com/chainledger/chainledger/pkg/transactionLogParser"
	"github.com/shopspring/decimal"
)

// batchSwapRows builds the swap and fee rows for one swap_within_batch
// event. The demand side is not logged directly; it is derived as
// offer * order_price with exact decimal arithmetic, rounded to the demand
// asset's precision. The protocol fee is denominated in the offer asset.
func batchSwapRows(ctx context.Context, pctx *Context, tx *transaction.Transaction, event transaction.Event) ([]ledger.Row, error) {
	offerDenom, _ := logparser.ValueOfKey(event.Attributes, "offer_coin_denom")
	offerAmount, _ := logparser.ValueOfKey(event.Attributes, "offer_coin_amount")
	offerFee, _ := logparser.ValueOfKey(event.Attributes, "offer_coin_fee_amount")
	demandDenom, _ := logparser.ValueOfKey(event.Attributes, "demand_coin_denom")
	orderPrice, _ := logparser.ValueOfKey(event.Attributes, "order_price")

	offer := pctx.Resolver.Resolve(ctx, offerDenom)
	demand := pctx.Resolver.Resolve(ctx, demandDenom)

	offerValue := ledger.ScaleDecimal(offerAmount, offer.Decimals)
	price, err := decimal.NewFromString(orderPrice)
	if err != nil {
		price = decimal.Zero
	}
	demandValue := offerValue.Mul(price).Round(demand.Decimals)

	swap := ledger.Row{
		Type:           ledger.RowType_Swap,
		SentAmount:     offerValue.String(),
		SentAsset:      offer.Symbol,
		ReceivedAmount: demandValue.String(),
		ReceivedAsset:  demand.Symbol,
		FeeAmount:      ledger.ScaleAmount(offerFee, offer.Decimals),
		FeeAsset:       offer.Symbol,
		Description: fmt.Sprintf("Swapped %s %s for %s %s",
			offerValue, offer.Symbol, demandValue, demand.Symbol),
	}

	fee, err := pctx.Fees.Compute(ctx, tx)
	if err != nil {
		return nil, err
	}
	expense := ledger.Row{
		Type:        ledger.RowType_Expense,
		FeeAmount:   fee.Amount,
		FeeAsset:    fee.Asset,
		Description: "Fee for Swapping",
	}

	return []ledger.Row{swap, expense}, nil
}

// MsgSwapWithinBatch classifies liquidity-module batch swaps.
func MsgSwapWithinBatch(ctx context.Context, pctx *Context, tx *transaction.Transaction, logs []transaction.Log) ([]ledger.Row, error) {
	rows := make([]ledger.Row, 0)
	for _, log := range logs {
		for _, event := range logparser.EventsOfType(log, "swap_within_batch") {
			swapRows, err := batchSwapRows(ctx, pctx, tx, event)
			if err != nil {
				return nil, err
			}
			rows = append(rows, swapRows...)
		}
	}
	return rows, nil
}

// LegacySwapWithinBatch shares the modern attribute names; the revisions
// differ only in surrounding log structure.
func LegacySwapWithinBatch(ctx context.Context, pctx *Context, tx *transaction.Transaction, logs []transaction.Log) ([]ledger.Row, error) {
	return MsgSwapWithinBatch(ctx, pctx, tx, logs)
}

// MsgDepositWithinBatch classifies pool deposits: outbound legs become
// swap-sent rows, pool refunds become income.
func MsgDepositWithinBatch(ctx context.Context, pctx *Context, tx *transaction.Transaction, logs []transaction.Log) ([]ledger.Row, error) {
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
							Type:           ledger.RowType_Income,
							ReceivedAmount: amount,
							ReceivedAsset:  symbol,
							Description:    "Received from Liquidity Pool",
						})
					}
				case sender:
					for _, coin := range coinsOf(leg) {
						amount, symbol := pctx.resolveCoin(ctx, coin)
						rows = append(rows, ledger.Row{
							Type:        ledger.RowType_Swap,
							SentAmount:  amount,
							SentAsset:   symbol,
							Description: "Add to Liquidity Pool",
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
						Description: "Fee for adding to Liquidity Pool",
					})
				}
			}
		}
	}

	return rows, nil
}

// MsgWithdrawWithinBatch emits the pool-token outflow plus the fee for
// leaving the pool. The pool coin has no external identity to resolve; it
// is scaled at the chain's base precision.
func MsgWithdrawWithinBatch(ctx context.Context, pctx *Context, tx *transaction.Transaction, logs []transaction.Log) ([]ledger.Row, error) {
	rows := make([]ledger.Row, 0)

	for _, log := range logs {
		for _, event := range logparser.EventsOfType(log, "withdraw_within_batch") {
			denom, _ := logparser.ValueOfKey(event.Attributes, "pool_coin_denom")
			amount, ok := logparser.ValueOfKey(event.Attributes, "pool_coin_amount")
			if !ok {
				amount = "0"
			}
			rows = append(rows, ledger.Row{
				Type:        ledger.RowType_Other,
				SentAmount:  ledger.ScaleAmount(amount, pctx.BaseDecimals),
				SentAsset:   denom,
				Description: "Remove from Liquidity Pool",
			})
		}
	}

	if len(rows) > 0 {
		fee, err := pctx.Fees.Compute(ctx, tx)
		if err != nil {
			return nil, err
		}
		rows = append(rows, ledger.Row{
			Type:        ledger.RowType_Expense,
			FeeAmount:   fee.Amount,
			FeeAsset:    fee.Asset,
			Description: "Fee for Removing from Liquidity Pool",
		})
	}

	return rows, nil
}
