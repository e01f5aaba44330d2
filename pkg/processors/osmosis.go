package processors

import (
	"context"
	"fmt"

	"github.com/chainledger/chainledger/pkg/ledger"
	"github.com/chainledger/chainledger/pkg/transaction"
	logparser "github.com/chainledger/chainledger/pkg/transactionLogParser"
)

// Osmosis pool (gamm) share tokens are minted at 18 decimals regardless of
// the chain's native precision.
const gammDecimals int32 = 18

// OsmosisMsgSwapExactAmountIn reads the token_swapped events of an AMM
// swap; both sides are logged, so no price derivation is needed.
func OsmosisMsgSwapExactAmountIn(ctx context.Context, pctx *Context, tx *transaction.Transaction, logs []transaction.Log) ([]ledger.Row, error) {
	rows := make([]ledger.Row, 0)

	for _, log := range logs {
		for _, event := range logparser.EventsOfType(log, "token_swapped") {
			tokensIn, _ := logparser.ValueOfKey(event.Attributes, "tokens_in")
			tokensOut, _ := logparser.ValueOfKey(event.Attributes, "tokens_out")

			in := logparser.ParseCoins(tokensIn)[0]
			out := logparser.ParseCoins(tokensOut)[0]

			inAmount, inSymbol := pctx.resolveCoin(ctx, in)
			outAmount, outSymbol := pctx.resolveCoin(ctx, out)

			rows = append(rows, ledger.Row{
				Type:           ledger.RowType_Swap,
				SentAmount:     inAmount,
				SentAsset:      inSymbol,
				ReceivedAmount: outAmount,
				ReceivedAsset:  outSymbol,
				Description:    fmt.Sprintf("Swapped %s %s for %s %s", inAmount, inSymbol, outAmount, outSymbol),
			})
		}
	}

	return rows, nil
}

// OsmosisMsgJoinPool splits a pool join into the deposited legs and the
// minted pool share. Transfer events carry two legs: the deposit into the
// pool and the share mint back to the wallet.
func OsmosisMsgJoinPool(ctx context.Context, pctx *Context, tx *transaction.Transaction, logs []transaction.Log) ([]ledger.Row, error) {
	rows := make([]ledger.Row, 0)

	for _, log := range logs {
		for _, event := range logparser.EventsOfType(log, "transfer") {
			groups := logparser.GroupAttributes(event.Attributes)
			if len(groups) < 2 {
				continue
			}

			depositLeg, shareLeg := groups[0], groups[1]

			share := coinsOf(shareLeg)[0]
			shareAmount := ledger.ScaleAmount(share.Amount, gammDecimals)
			rows = append(rows, ledger.Row{
				Type:           ledger.RowType_Swap,
				ReceivedAmount: shareAmount,
				ReceivedAsset:  share.Denom,
				Description:    fmt.Sprintf("Received %s %s Pool Token", shareAmount, share.Denom),
			})

			for _, coin := range coinsOf(depositLeg) {
				amount, symbol := pctx.resolveCoin(ctx, coin)
				rows = append(rows, ledger.Row{
					Type:        ledger.RowType_Swap,
					SentAmount:  amount,
					SentAsset:   symbol,
					Description: fmt.Sprintf("Deposit %s %s into Liquidity Pool", amount, symbol),
				})
			}
		}
	}

	return rows, nil
}

// OsmosisMsgExitPool is the inverse: pool tokens burned, underlying assets
// returned.
func OsmosisMsgExitPool(ctx context.Context, pctx *Context, tx *transaction.Transaction, logs []transaction.Log) ([]ledger.Row, error) {
	rows := make([]ledger.Row, 0)

	for _, log := range logs {
		for _, event := range logparser.EventsOfType(log, "transfer") {
			groups := logparser.GroupAttributes(event.Attributes)
			if len(groups) < 2 {
				continue
			}

			outLeg, shareLeg := groups[0], groups[1]

			for _, coin := range coinsOf(outLeg) {
				amount, symbol := pctx.resolveCoin(ctx, coin)
				rows = append(rows, ledger.Row{
					Type:           ledger.RowType_Swap,
					ReceivedAmount: amount,
					ReceivedAsset:  symbol,
					Description:    "Removed Tokens from Liquidity Pool",
				})
			}

			share := coinsOf(shareLeg)[0]
			rows = append(rows, ledger.Row{
				Type:        ledger.RowType_Swap,
				SentAmount:  ledger.ScaleAmount(share.Amount, gammDecimals),
				SentAsset:   share.Denom,
				Description: "Burned Pool Tokens",
			})
		}
	}

	return rows, nil
}

// OsmosisMsgJoinSwapExternAmountIn is a single-asset join: one asset in,
// pool shares out, expressed as one swap row.
func OsmosisMsgJoinSwapExternAmountIn(ctx context.Context, pctx *Context, tx *transaction.Transaction, logs []transaction.Log) ([]ledger.Row, error) {
	rows := make([]ledger.Row, 0)

	for _, log := range logs {
		for _, event := range logparser.EventsOfType(log, "transfer") {
			groups := logparser.GroupAttributes(event.Attributes)
			if len(groups) < 2 {
				continue
			}

			in := coinsOf(groups[0])[0]
			inAmount, inSymbol := pctx.resolveCoin(ctx, in)

			share := coinsOf(groups[1])[0]
			rows = append(rows, ledger.Row{
				Type:           ledger.RowType_Swap,
				SentAmount:     inAmount,
				SentAsset:      inSymbol,
				ReceivedAmount: ledger.ScaleAmount(share.Amount, gammDecimals),
				ReceivedAsset:  share.Denom,
				Description:    "Swapped into Liquidity Pool",
			})
		}
	}

	return rows, nil
}

// OsmosisLockTokens records bonding pool shares into a lockup as a pure
// fee expense; the shares themselves stay owned by the wallet.
func OsmosisLockTokens(ctx context.Context, pctx *Context, tx *transaction.Transaction, logs []transaction.Log) ([]ledger.Row, error) {
	rows := make([]ledger.Row, 0)

	for _, log := range logs {
		for _, event := range logparser.EventsOfType(log, "lock_tokens") {
			owner, _ := logparser.ValueOfKey(event.Attributes, "owner")
			if owner != pctx.Address {
				continue
			}

			coin := coinsOf(event.Attributes)[0]
			amount := ledger.ScaleAmount(coin.Amount, gammDecimals)

			fee, err := pctx.Fees.Compute(ctx, tx)
			if err != nil {
				return nil, err
			}
			rows = append(rows, ledger.Row{
				Type:        ledger.RowType_Expense,
				FeeAmount:   fee.Amount,
				FeeAsset:    fee.Asset,
				Description: fmt.Sprintf("Bond %s %s", amount, coin.Denom),
			})
		}
	}

	return rows, nil
}
