package ledger

import (
	"os"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
)

// Writer appends canonical rows to a CSV ledger file, writing the header
// once on creation. Rows are flushed per append so input order is
// preserved on disk even if a later transaction aborts the run.
type Writer struct {
	path        string
	file        *os.File
	wroteHeader bool
}

func NewWriter(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create ledger file %s", path)
	}
	return &Writer{path: path, file: f}, nil
}

func (w *Writer) Append(rows []Row) error {
	if len(rows) == 0 {
		return nil
	}
	if !w.wroteHeader {
		if err := gocsv.Marshal(&rows, w.file); err != nil {
			return errors.Wrap(err, "failed to write ledger rows")
		}
		w.wroteHeader = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(&rows, w.file); err != nil {
		return errors.Wrap(err, "failed to write ledger rows")
	}
	return nil
}

func (w *Writer) Close() error {
	return w.file.Close()
}

// ReadRows loads a previously written ledger file back into canonical rows.
func ReadRows(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open ledger file %s", path)
	}
	defer f.Close()

	rows := make([]Row, 0)
	if err := gocsv.Unmarshal(f, &rows); err != nil {
		return nil, errors.Wrapf(err, "failed to parse ledger file %s", path)
	}
	return rows, nil
}

// WriteRows replaces the ledger file with the given rows. Used by the
// reconciliation pass after purging timed-out transfers.
func WriteRows(path string, rows []Row) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to rewrite ledger file %s", path)
	}
	defer f.Close()

	return errors.Wrap(gocsv.Marshal(&rows, f), "failed to write ledger rows")
}
