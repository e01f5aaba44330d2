package processors

import (
	"context"
	"fmt"

	"github.com/chainledger/chainledger/pkg/ledger"
	"github.com/chainledger/chainledger/pkg/transaction"
	logparser "github.com/chainledger/chainledger/pkg/transactionLogParser"
	"github.com/samber/lo"
)

// WasmMsgExecuteContract classifies smart-contract executions. Contracts
// have no stable per-action log encoding: the flattened wasm attributes
// are grouped, and the action key of each group selects a behavior
// mirroring the native message cases. Contract addresses double as asset
// identifiers and go through the resolver cache like denominations.
func WasmMsgExecuteContract(ctx context.Context, pctx *Context, tx *transaction.Transaction, logs []transaction.Log) ([]ledger.Row, error) {
	rows := make([]ledger.Row, 0)

	for _, log := range logs {
		for _, event := range logparser.EventsOfType(log, "wasm") {
			groups := logparser.GroupAttributes(event.Attributes)

			for _, group := range groups {
				action, _ := logparser.ValueOfKey(group, "action")

				switch action {
				case "bond", "transfer", "send", "increase_allowance":
					// Companion groups; the paired action group carries the
					// ledger-visible effect.

				case "delegate":
					from, _ := logparser.ValueOfKey(group, "from")
					to, _ := logparser.ValueOfKey(group, "to")
					if from != pctx.Address {
						continue
					}
					fee, err := pctx.Fees.Compute(ctx, tx)
					if err != nil {
						return nil, err
					}
					rows = append(rows, ledger.Row{
						Type:        ledger.RowType_Expense,
						FeeAmount:   fee.Amount,
						FeeAsset:    fee.Asset,
						Description: fmt.Sprintf("Delegate to %s", to),
					})

				case "mint":
					rows = append(rows, wasmMintRows(groups)...)

				case "claim":
					contract, _ := logparser.ValueOfKey(group, "_contract_address")
					amount, _ := logparser.ValueOfKey(group, "amount")
					if amount == "" {
						amount = "0"
					}
					rows = append(rows, ledger.Row{
						Type:           ledger.RowType_Income,
						ReceivedAmount: amount,
						ReceivedAsset:  pctx.contractAsset(ctx, contract),
						Description:    fmt.Sprintf("Claimed Airdrop from %s", contract),
					})

				case "vote":
					contract, _ := logparser.ValueOfKey(group, "_contract_address")
					proposalID, _ := logparser.ValueOfKey(group, "proposal_id")
					fee, err := pctx.Fees.Compute(ctx, tx)
					if err != nil {
						return nil, err
					}
					rows = append(rows, ledger.Row{
						Type:        ledger.RowType_Expense,
						FeeAmount:   fee.Amount,
						FeeAsset:    fee.Asset,
						Description: fmt.Sprintf("Vote on %s #%s", contract, proposalID),
					})

				case "stake":
					// The stake action rides on a cw20 send; the send group
					// holds the parties and the amount.
					sendGroup, ok := lo.Find(groups, func(g []transaction.Attribute) bool {
						a, _ := logparser.ValueOfKey(g, "action")
						return a == "send"
					})
					if !ok {
						continue
					}
					from, _ := logparser.ValueOfKey(sendGroup, "from")
					to, _ := logparser.ValueOfKey(sendGroup, "to")
					amount, _ := logparser.ValueOfKey(sendGroup, "amount")
					if from != pctx.Address {
						continue
					}
					fee, err := pctx.Fees.Compute(ctx, tx)
					if err != nil {
						return nil, err
					}
					rows = append(rows, ledger.Row{
						Type:        ledger.RowType_Expense,
						FeeAmount:   fee.Amount,
						FeeAsset:    fee.Asset,
						Description: fmt.Sprintf("Staked %s to %s", amount, to),
					})

				case "unstake":
					from, _ := logparser.ValueOfKey(group, "from")
					contract, _ := logparser.ValueOfKey(group, "_contract_address")
					amount, _ := logparser.ValueOfKey(group, "amount")
					if from != pctx.Address {
						continue
					}
					fee, err := pctx.Fees.Compute(ctx, tx)
					if err != nil {
						return nil, err
					}
					rows = append(rows, ledger.Row{
						Type:        ledger.RowType_Expense,
						FeeAmount:   fee.Amount,
						FeeAsset:    fee.Asset,
						Description: fmt.Sprintf("Unstake %s from %s", amount, contract),
					})

				case "withdraw_rewards":
					contract, _ := logparser.ValueOfKey(group, "_contract_address")
					receiver, ok := logparser.ValueOfKey(group, "receiver")
					if !ok {
						receiver, _ = logparser.ValueOfKey(group, "to")
					}
					amount, _ := logparser.ValueOfKey(group, "amount")
					if receiver != pctx.Address {
						continue
					}
					if amount == "" {
						amount = "0"
					}
					fee, err := pctx.Fees.Compute(ctx, tx)
					if err != nil {
						return nil, err
					}
					rows = append(rows, ledger.Row{
						Type:           ledger.RowType_Income,
						ReceivedAmount: amount,
						ReceivedAsset:  pctx.contractAsset(ctx, contract),
						FeeAmount:      fee.Amount,
						FeeAsset:       fee.Asset,
						Description:    "Claimed Rewards",
					})

				case "transfer_from":
					swapRows, err := wasmSwapRows(ctx, pctx, tx, group, groups)
					if err != nil {
						return nil, err
					}
					rows = append(rows, swapRows...)
				}
			}
		}
	}

	return rows, nil
}

// wasmMintRows handles LP-share mints: two deposit legs plus the received
// pool token, read from the group carrying liquidity_received. The layout
// is contract specific, so positions within that group are the contract's
// documented order.
func wasmMintRows(groups [][]transaction.Attribute) []ledger.Row {
	mintGroup, ok := lo.Find(groups, func(g []transaction.Attribute) bool {
		_, found := logparser.ValueOfKey(g, "liquidity_received")
		return found
	})
	if !ok || len(mintGroup) < 4 {
		return nil
	}

	return []ledger.Row{
		{Type: ledger.RowType_Swap, SentAmount: mintGroup[1].Value, SentAsset: "Token 1"},
		{Type: ledger.RowType_Swap, SentAmount: mintGroup[2].Value, SentAsset: "Token 2"},
		{Type: ledger.RowType_Swap, ReceivedAmount: mintGroup[3].Value, ReceivedAsset: "Pool Token"},
	}
}

// wasmSwapRows handles cw20 transfer_from swaps: the offer side sits in
// the transfer_from group, the demand side in its companion group.
func wasmSwapRows(ctx context.Context, pctx *Context, tx *transaction.Transaction, group []transaction.Attribute, groups [][]transaction.Attribute) ([]ledger.Row, error) {
	from, _ := logparser.ValueOfKey(group, "from")
	if from != pctx.Address {
		return nil, nil
	}

	contract, _ := logparser.ValueOfKey(group, "_contract_address")
	offerAmount, _ := logparser.ValueOfKey(group, "amount")
	if offerAmount == "" {
		offerAmount = "0"
	}

	demandRaw := "0"
	if len(groups) > 0 {
		if v, ok := logparser.ValueOfKey(groups[0], "amount"); ok {
			demandRaw = v
		}
	}
	demandAmount := ledger.ScaleAmount(demandRaw, pctx.BaseDecimals)

	fee, err := pctx.Fees.Compute(ctx, tx)
	if err != nil {
		return nil, err
	}

	offerAsset := pctx.contractAsset(ctx, contract)
	return []ledger.Row{
		{
			Type:           ledger.RowType_Swap,
			SentAmount:     offerAmount,
			SentAsset:      offerAsset,
			ReceivedAmount: demandAmount,
			ReceivedAsset:  pctx.BaseSymbol,
			Description: fmt.Sprintf("Swapped %s %s for %s %s",
				offerAmount, offerAsset, demandAmount, pctx.BaseSymbol),
		},
		{
			Type:        ledger.RowType_Expense,
			FeeAmount:   fee.Amount,
			FeeAsset:    fee.Asset,
			Description: "Fees from swapping",
		},
	}, nil
}

// contractAsset resolves a contract address to a token symbol through the
// shared cache; unresolved contracts report the raw address.
func (pctx *Context) contractAsset(ctx context.Context, contract string) string {
	if contract == "" {
		return logparser.UnknownDenom
	}
	d := pctx.Resolver.Resolve(ctx, contract)
	if d.Symbol == logparser.UnknownDenom {
		return contract
	}
	return d.Symbol
}
