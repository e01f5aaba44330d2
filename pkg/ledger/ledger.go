// Package ledger defines the canonical accounting row that the classifier
// emits, one per economically distinct effect of a transaction.
package ledger

import (
	"github.com/shopspring/decimal"
)

type RowType string

const (
	RowType_Expense  RowType = "Expense"
	RowType_Income   RowType = "Income"
	RowType_Deposit  RowType = "Deposit"
	RowType_Transfer RowType = "Transfer"
	RowType_Swap     RowType = "Swap"
	RowType_Staking  RowType = "Staking"
	RowType_Other    RowType = "Other"
)

// Row is the canonical ledger entry, pre output-format transformation.
// Meta optionally carries a cross-transaction correlation key used to
// purge rows for transfers that later timed out.
type Row struct {
	Date                string  `csv:"Date"`
	Type                RowType `csv:"Type"`
	SentAsset           string  `csv:"Sent Currency"`
	SentAmount          string  `csv:"Sent Amount"`
	ReceivedAsset       string  `csv:"Received Currency"`
	ReceivedAmount      string  `csv:"Received Amount"`
	FeeAsset            string  `csv:"Fee Currency"`
	FeeAmount           string  `csv:"Fee Amount"`
	MarketValueCurrency string  `csv:"Market Value Currency"`
	MarketValue         string  `csv:"Market Value"`
	Description         string  `csv:"Description"`
	TransactionHash     string  `csv:"TxHash"`
	TransactionID       string  `csv:"TxId"`
	Meta                string  `csv:"Meta"`
}

// ScaleAmount converts a raw integer amount into its human representation
// by shifting the decimal point left by the asset's precision. All math is
// arbitrary-precision decimal; raw values that fail to parse scale to "0".
func ScaleAmount(raw string, decimals int32) string {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return "0"
	}
	return d.Shift(-decimals).String()
}

// ScaleDecimal is ScaleAmount without the string round trip, for callers
// that keep computing on the value.
func ScaleDecimal(raw string, decimals int32) decimal.Decimal {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return d.Shift(-decimals)
}
