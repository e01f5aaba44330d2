// Package balanceSheet aggregates a ledger file into per-asset totals to
// sanity check a run against known wallet balances.
package balanceSheet

import (
	"io"
	"sort"

	"github.com/chainledger/chainledger/pkg/ledger"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// AssetTotals carries the lifetime movement of one asset through the
// ledger. EndingBalance is received less sent less fees.
type AssetTotals struct {
	Asset    string
	Sent     decimal.Decimal
	Received decimal.Decimal
	Fees     decimal.Decimal
}

func (a AssetTotals) EndingBalance() decimal.Decimal {
	return a.Received.Sub(a.Sent).Sub(a.Fees)
}

// Compute folds every row's sent, received and fee legs into per-asset
// totals, returned sorted by asset name for stable output.
func Compute(rows []ledger.Row) []AssetTotals {
	totals := make(map[string]*AssetTotals)

	add := func(asset string, amount string, fold func(*AssetTotals, decimal.Decimal)) {
		if asset == "" || amount == "" {
			return
		}
		value, err := decimal.NewFromString(amount)
		if err != nil {
			return
		}
		t, ok := totals[asset]
		if !ok {
			t = &AssetTotals{Asset: asset}
			totals[asset] = t
		}
		fold(t, value)
	}

	for _, row := range rows {
		add(row.SentAsset, row.SentAmount, func(t *AssetTotals, v decimal.Decimal) { t.Sent = t.Sent.Add(v) })
		add(row.ReceivedAsset, row.ReceivedAmount, func(t *AssetTotals, v decimal.Decimal) { t.Received = t.Received.Add(v) })
		add(row.FeeAsset, row.FeeAmount, func(t *AssetTotals, v decimal.Decimal) { t.Fees = t.Fees.Add(v) })
	}

	out := make([]AssetTotals, 0, len(totals))
	for _, t := range totals {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Asset < out[j].Asset })
	return out
}

// ComputeFromFile reads a ledger CSV and computes its balance sheet.
func ComputeFromFile(path string) ([]AssetTotals, error) {
	rows, err := ledger.ReadRows(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read ledger file '%s'", path)
	}
	return Compute(rows), nil
}

// Render writes the balance sheet as a formatted table.
func Render(totals []AssetTotals, w io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Asset", "Received", "Sent", "Fees", "Ending Balance"})
	for _, a := range totals {
		t.AppendRow(table.Row{
			a.Asset,
			a.Received.String(),
			a.Sent.String(),
			a.Fees.String(),
			a.EndingBalance().String(),
		})
	}
	t.SetStyle(table.StyleLight)
	t.Render()
}
