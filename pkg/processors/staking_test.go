package processors

import (
	"context"
	"testing"

	"github.com/chainledger/chainledger/pkg/ledger"
	"github.com/chainledger/chainledger/pkg/transaction"
	"github.com/stretchr/testify/assert"
)

func delegateLogs() []transaction.Log {
	return []transaction.Log{{Events: []transaction.Event{
		{Type: "delegate", Attributes: attrs(
			"validator", "cosmosvaloper1abc",
			"amount", "5000000uatom",
		)},
		{Type: "transfer", Attributes: attrs(
			"recipient", walletAddress,
			"sender", "cosmos1distribution",
			"amount", "120000uatom",
		)},
	}}}
}

func Test_MsgDelegate(t *testing.T) {
	tx := feeTx("DELEGATE1")

	t.Run("Should emit the delegation expense and the auto-claimed reward", func(t *testing.T) {
		pctx := setup(t)
		rows, err := MsgDelegate(context.Background(), pctx, tx, delegateLogs())
		assert.Nil(t, err)
		assert.Equal(t, 2, len(rows))

		assert.Equal(t, ledger.RowType_Expense, rows[0].Type)
		assert.Equal(t, "Delegated 5 ATOM", rows[0].Description)
		assertDecimalEqual(t, "0.0025", rows[0].FeeAmount)

		assert.Equal(t, ledger.RowType_Income, rows[1].Type)
		assertDecimalEqual(t, "0.12", rows[1].ReceivedAmount)
		assert.Equal(t, "Claimed Rewards from Delegating", rows[1].Description)
	})

	t.Run("Should skip the reward scan when suppressed", func(t *testing.T) {
		pctx := setup(t)
		pctx.SuppressDelegateRewards = true

		rows, err := MsgDelegate(context.Background(), pctx, tx, delegateLogs())
		assert.Nil(t, err)
		assert.Equal(t, 1, len(rows))
		assert.Equal(t, ledger.RowType_Expense, rows[0].Type)
	})
}

func Test_MsgBeginRedelegate(t *testing.T) {
	pctx := setup(t)
	tx := feeTx("REDELEGATE1")
	logs := []transaction.Log{{Events: []transaction.Event{
		{Type: "redelegate", Attributes: attrs(
			"source_validator", "cosmosvaloper1old",
			"destination_validator", "cosmosvaloper1new",
			"amount", "3000000uatom",
		)},
		{Type: "transfer", Attributes: attrs(
			"recipient", walletAddress,
			"sender", "cosmos1distribution",
			"amount", "45000uatom",
		)},
	}}}

	rows, err := MsgBeginRedelegate(context.Background(), pctx, tx, logs)
	assert.Nil(t, err)
	assert.Equal(t, 2, len(rows))

	assert.Equal(t, ledger.RowType_Expense, rows[0].Type)
	assert.Equal(t, "Redelegated 3 ATOM from cosmosvaloper1old to cosmosvaloper1new", rows[0].Description)

	assert.Equal(t, ledger.RowType_Income, rows[1].Type)
	assertDecimalEqual(t, "0.045", rows[1].ReceivedAmount)
}
