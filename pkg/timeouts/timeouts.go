// Package timeouts tracks correlation keys of IBC transfers that timed
// out, and the reconciliation pass that purges their ledger rows.
package timeouts

import (
	"os"
	"strings"
	"sync"

	"github.com/chainledger/chainledger/pkg/ledger"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Store appends correlation keys to a newline-delimited side file. A key
// is written at most once, so re-processing the same timeout transaction
// leaves the file unchanged.
type Store struct {
	path string
	mu   sync.Mutex
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) keys() ([]string, error) {
	contents, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "failed to read timeout file %s", s.path)
	}
	lines := strings.Split(strings.Trim(string(contents), "\n"), "\n")
	return lo.Filter(lines, func(l string, _ int) bool { return l != "" }), nil
}

// Record appends the key unless it is already present.
func (s *Store) Record(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.keys()
	if err != nil {
		return err
	}
	if lo.Contains(existing, key) {
		return nil
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return errors.Wrapf(err, "failed to open timeout file %s", s.path)
	}
	defer f.Close()

	_, err = f.WriteString(key + "\n")
	return errors.Wrap(err, "failed to append timeout key")
}

// Keys returns the recorded correlation keys.
func (s *Store) Keys() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.keys()
}

// Reconcile removes ledger rows whose Meta matches a recorded timeout key,
// rewrites the ledger without the purged rows, and deletes the side file.
// Returns the number of purged rows.
func Reconcile(ledgerPath string, store *Store, l *zap.Logger) (int, error) {
	keys, err := store.Keys()
	if err != nil {
		return 0, err
	}
	if len(keys) == 0 {
		l.Sugar().Infow("No timeout transactions recorded, nothing to reconcile")
		return 0, nil
	}

	rows, err := ledger.ReadRows(ledgerPath)
	if err != nil {
		return 0, err
	}

	kept := lo.Filter(rows, func(r ledger.Row, _ int) bool {
		return r.Meta == "" || !lo.Contains(keys, r.Meta)
	})
	purged := len(rows) - len(kept)

	// Correlation keys have served their purpose; they do not belong in
	// the final ledger.
	for i := range kept {
		kept[i].Meta = ""
	}

	if err := ledger.WriteRows(ledgerPath, kept); err != nil {
		return 0, err
	}

	if err := os.Remove(store.path); err != nil && !os.IsNotExist(err) {
		l.Sugar().Warnw("Failed to remove timeout file",
			zap.String("path", store.path),
			zap.Error(err),
		)
	}

	l.Sugar().Infow("Reconciled timed-out transfers",
		zap.Int("purged", purged),
		zap.Int("kept", len(kept)),
	)
	return purged, nil
}
