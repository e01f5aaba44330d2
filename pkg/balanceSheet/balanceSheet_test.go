package balanceSheet

import (
	"bytes"
	"testing"

	"github.com/chainledger/chainledger/pkg/ledger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func Test_Compute(t *testing.T) {
	rows := []ledger.Row{
		{Type: ledger.RowType_Deposit, ReceivedAsset: "ATOM", ReceivedAmount: "10"},
		{Type: ledger.RowType_Transfer, SentAsset: "ATOM", SentAmount: "3", FeeAsset: "ATOM", FeeAmount: "0.0025"},
		{Type: ledger.RowType_Swap, SentAsset: "ATOM", SentAmount: "2", ReceivedAsset: "OSMO", ReceivedAmount: "4"},
		{Type: ledger.RowType_Expense, FeeAsset: "ATOM", FeeAmount: "0.0025"},
	}

	totals := Compute(rows)
	assert.Equal(t, 2, len(totals))

	t.Run("Should sum every leg per asset", func(t *testing.T) {
		atom := totals[0]
		assert.Equal(t, "ATOM", atom.Asset)
		assert.True(t, decimal.RequireFromString("10").Equal(atom.Received))
		assert.True(t, decimal.RequireFromString("5").Equal(atom.Sent))
		assert.True(t, decimal.RequireFromString("0.005").Equal(atom.Fees))
	})

	t.Run("Should compute the ending balance as received minus sent minus fees", func(t *testing.T) {
		assert.True(t, decimal.RequireFromString("4.995").Equal(totals[0].EndingBalance()))

		osmo := totals[1]
		assert.Equal(t, "OSMO", osmo.Asset)
		assert.True(t, decimal.RequireFromString("4").Equal(osmo.EndingBalance()))
	})

	t.Run("Should skip blank and unparseable legs", func(t *testing.T) {
		totals := Compute([]ledger.Row{
			{Type: ledger.RowType_Expense, FeeAsset: "ATOM", FeeAmount: ""},
			{Type: ledger.RowType_Deposit, ReceivedAsset: "ATOM", ReceivedAmount: "garbage"},
		})
		assert.Equal(t, 0, len(totals))
	})
}

func Test_Render(t *testing.T) {
	totals := Compute([]ledger.Row{
		{Type: ledger.RowType_Deposit, ReceivedAsset: "ATOM", ReceivedAmount: "1.5"},
	})

	var buf bytes.Buffer
	Render(totals, &buf)

	out := buf.String()
	assert.Contains(t, out, "ATOM")
	assert.Contains(t, out, "1.5")
	assert.Contains(t, out, "Ending Balance")
}
