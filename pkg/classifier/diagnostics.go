package classifier

import (
	"go.uber.org/zap"
)

// Diagnostics accumulates run-level coverage facts: how many transactions
// were processed and which discovered actions had no registered processor.
// It is threaded through the run explicitly and reported once at the end.
type Diagnostics struct {
	Processed int
	Rows      int
	Failures  int

	seen      map[string]bool
	unmatched []string
}

func NewDiagnostics() *Diagnostics {
	return &Diagnostics{
		seen:      make(map[string]bool),
		unmatched: make([]string, 0),
	}
}

func (d *Diagnostics) recordUnmatched(action string) {
	if d.seen[action] {
		return
	}
	d.seen[action] = true
	d.unmatched = append(d.unmatched, action)
}

// Unmatched lists actions seen during the run that no processor claimed,
// in order of first appearance.
func (d *Diagnostics) Unmatched() []string {
	return d.unmatched
}

// Report logs the end-of-run summary, surfacing coverage gaps.
func (d *Diagnostics) Report(l *zap.Logger) {
	l.Sugar().Infow("Classification run complete",
		zap.Int("transactionsProcessed", d.Processed),
		zap.Int("rowsEmitted", d.Rows),
		zap.Int("transactionsFailed", d.Failures),
	)
	for _, action := range d.unmatched {
		l.Sugar().Warnw("Action had no registered processor",
			zap.String("action", action),
		)
	}
}
