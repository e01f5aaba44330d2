package transformers

import (
	"github.com/chainledger/chainledger/pkg/ledger"
)

// koinlyTypes maps canonical row types onto Koinly's label vocabulary.
var koinlyTypes = map[ledger.RowType]string{
	ledger.RowType_Deposit:  "deposit",
	ledger.RowType_Income:   "income",
	ledger.RowType_Expense:  "cost",
	ledger.RowType_Transfer: "withdrawal",
	ledger.RowType_Swap:     "swap",
	ledger.RowType_Staking:  "staking",
	ledger.RowType_Other:    "",
}

// Koinly expands rows for Koinly's importer. Koinly models a fee attached
// to a movement as a separate cost transaction, so composite rows split:
// the principal keeps its label with the fee cleared, and the fee travels
// as a cost row whose sent side is the fee.
type Koinly struct{}

func (k *Koinly) Name() string {
	return "koinly"
}

func (k *Koinly) Expand(row ledger.Row) []OutputRow {
	switch row.Type {
	case ledger.RowType_Other:
		principal := fromRow(row)
		if principal.SentAmount != "" {
			principal.Type = "withdrawal"
		} else {
			principal.Type = "deposit"
		}
		principal.FeeAmount = ""
		principal.FeeAsset = ""

		out := []OutputRow{principal}
		if row.FeeAmount != "" {
			out = append(out, k.feeRow(row))
		}
		return out

	case ledger.RowType_Expense:
		// A pure expense is the fee itself.
		return []OutputRow{k.feeRow(row)}

	case ledger.RowType_Swap:
		swap := fromRow(row)
		swap.Type = "swap"
		swap.FeeAmount = ""
		swap.FeeAsset = ""
		if row.FeeAmount != "" {
			return []OutputRow{k.feeRow(row), swap}
		}
		return []OutputRow{swap}

	case ledger.RowType_Transfer:
		withdrawal := fromRow(row)
		withdrawal.Type = "withdrawal"
		withdrawal.FeeAmount = ""
		withdrawal.FeeAsset = ""
		if row.FeeAmount != "" {
			return []OutputRow{k.feeRow(row), withdrawal}
		}
		return []OutputRow{withdrawal}

	default:
		out := fromRow(row)
		out.Type = koinlyTypes[row.Type]
		out.FeeAmount = ""
		out.FeeAsset = ""
		return []OutputRow{out}
	}
}

// feeRow lifts a row's fee into a standalone cost transaction.
func (k *Koinly) feeRow(row ledger.Row) OutputRow {
	fee := fromRow(row)
	fee.Type = "cost"
	fee.SentAmount = row.FeeAmount
	fee.SentAsset = row.FeeAsset
	fee.ReceivedAmount = ""
	fee.ReceivedAsset = ""
	fee.FeeAmount = ""
	fee.FeeAsset = ""
	return fee
}
