// Package transformers expands canonical ledger rows into the row shape
// of a downstream tax tool. Composite row types are split so the fee
// travels as its own outflow line.
package transformers

import (
	"github.com/chainledger/chainledger/pkg/ledger"
	"github.com/pkg/errors"
)

// OutputRow mirrors the canonical column layout with the type vocabulary
// replaced by the target tool's.
type OutputRow struct {
	Date                string `csv:"Date"`
	Type                string `csv:"Type"`
	SentAsset           string `csv:"Sent Currency"`
	SentAmount          string `csv:"Sent Amount"`
	ReceivedAsset       string `csv:"Received Currency"`
	ReceivedAmount      string `csv:"Received Amount"`
	FeeAsset            string `csv:"Fee Currency"`
	FeeAmount           string `csv:"Fee Amount"`
	MarketValueCurrency string `csv:"Market Value Currency"`
	MarketValue         string `csv:"Market Value"`
	Description         string `csv:"Description"`
	TransactionHash     string `csv:"TxHash"`
	TransactionID       string `csv:"TxId"`
	Meta                string `csv:"Meta"`
}

// Transformer expands one canonical row into the target schema's rows.
type Transformer interface {
	Name() string
	Expand(row ledger.Row) []OutputRow
}

// ForName selects a transformer by its configured name.
func ForName(name string) (Transformer, error) {
	switch name {
	case "koinly", "":
		return &Koinly{}, nil
	case "turbotax":
		return &TurboTax{}, nil
	default:
		return nil, errors.Errorf("unknown transformer '%s'", name)
	}
}

// fromRow copies the canonical fields verbatim; transformers then adjust
// type, amounts and fee placement.
func fromRow(row ledger.Row) OutputRow {
	return OutputRow{
		Date:                row.Date,
		Type:                string(row.Type),
		SentAsset:           row.SentAsset,
		SentAmount:          row.SentAmount,
		ReceivedAsset:       row.ReceivedAsset,
		ReceivedAmount:      row.ReceivedAmount,
		FeeAsset:            row.FeeAsset,
		FeeAmount:           row.FeeAmount,
		MarketValueCurrency: row.MarketValueCurrency,
		MarketValue:         row.MarketValue,
		Description:         row.Description,
		TransactionHash:     row.TransactionHash,
		TransactionID:       row.TransactionID,
		Meta:                row.Meta,
	}
}
