package transformers

import (
	"os"

	"github.com/chainledger/chainledger/pkg/ledger"
	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// TransformFile reads a canonical ledger CSV, expands every row through
// the transformer, and writes the target schema CSV.
func TransformFile(inPath string, outPath string, t Transformer, l *zap.Logger) error {
	rows, err := ledger.ReadRows(inPath)
	if err != nil {
		return errors.Wrapf(err, "failed to read ledger file '%s'", inPath)
	}

	out := make([]OutputRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, t.Expand(row)...)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return errors.Wrapf(err, "failed to create output file '%s'", outPath)
	}
	defer f.Close()

	if err := gocsv.Marshal(&out, f); err != nil {
		return errors.Wrap(err, "failed to write transformed rows")
	}

	l.Sugar().Infow("Wrote transformed ledger",
		zap.String("transformer", t.Name()),
		zap.String("outputFile", outPath),
		zap.Int("inputRows", len(rows)),
		zap.Int("outputRows", len(out)),
	)
	return nil
}
