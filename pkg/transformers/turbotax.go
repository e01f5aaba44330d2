package transformers

import (
	"github.com/chainledger/chainledger/pkg/ledger"
)

// turboTaxTypes maps canonical row types onto TurboTax's vocabulary.
// TurboTax accepts fees on the same line, so rows pass through one to one.
var turboTaxTypes = map[ledger.RowType]string{
	ledger.RowType_Deposit:  "Deposit",
	ledger.RowType_Income:   "Income",
	ledger.RowType_Expense:  "Expense",
	ledger.RowType_Transfer: "Withdrawal",
	ledger.RowType_Swap:     "Trade",
	ledger.RowType_Staking:  "Staking",
	ledger.RowType_Other:    "Other",
}

type TurboTax struct{}

func (t *TurboTax) Name() string {
	return "turbotax"
}

func (t *TurboTax) Expand(row ledger.Row) []OutputRow {
	out := fromRow(row)
	out.Type = turboTaxTypes[row.Type]
	return []OutputRow{out}
}
