package processors

import (
	"context"
	"fmt"
	"strings"

	"github.com/chainledger/chainledger/pkg/ledger"
	"github.com/chainledger/chainledger/pkg/transaction"
	logparser "github.com/chainledger/chainledger/pkg/transactionLogParser"
)

// MsgVote batches all proposal ids voted on in one transaction into a
// single expense row. Chains that airdrop on governance participation
// surface claim events alongside the vote; those become income rows.
func MsgVote(ctx context.Context, pctx *Context, tx *transaction.Transaction, logs []transaction.Log) ([]ledger.Row, error) {
	rows := make([]ledger.Row, 0)
	proposalIDs := make([]string, 0)

	for _, log := range logs {
		if event, ok := logparser.FirstEvent(log, "proposal_vote"); ok {
			if id, ok := logparser.ValueOfKey(event.Attributes, "proposal_id"); ok {
				proposalIDs = append(proposalIDs, id)
			}
		}

		for _, event := range logparser.EventsOfType(log, "claim") {
			for _, group := range logparser.GroupAttributes(event.Attributes) {
				amount, ok := logparser.ValueOfKey(group, "amount")
				if !ok {
					continue
				}
				for _, coin := range logparser.ParseCoins(amount) {
					claimed, symbol := pctx.resolveCoin(ctx, coin)
					rows = append(rows, ledger.Row{
						Type:           ledger.RowType_Income,
						ReceivedAmount: claimed,
						ReceivedAsset:  symbol,
						Description:    "Airdrop",
					})
				}
			}
		}
	}

	fee, err := pctx.Fees.Compute(ctx, tx)
	if err != nil {
		return nil, err
	}
	rows = append(rows, ledger.Row{
		Type:        ledger.RowType_Expense,
		FeeAmount:   fee.Amount,
		FeeAsset:    fee.Asset,
		Description: fmt.Sprintf("Vote on #%s", strings.Join(proposalIDs, " #")),
	})

	return rows, nil
}

// LegacyVote is the pre-action variant: proposal ids only, no claims.
func LegacyVote(ctx context.Context, pctx *Context, tx *transaction.Transaction, logs []transaction.Log) ([]ledger.Row, error) {
	proposalIDs := make([]string, 0)
	for _, log := range logs {
		if event, ok := logparser.FirstEvent(log, "proposal_vote"); ok {
			if id, ok := logparser.ValueOfKey(event.Attributes, "proposal_id"); ok {
				proposalIDs = append(proposalIDs, id)
			}
		}
	}

	fee, err := pctx.Fees.Compute(ctx, tx)
	if err != nil {
		return nil, err
	}
	return []ledger.Row{{
		Type:        ledger.RowType_Expense,
		FeeAmount:   fee.Amount,
		FeeAsset:    fee.Asset,
		Description: fmt.Sprintf("Vote on #%s", strings.Join(proposalIDs, " #")),
	}}, nil
}
