// Package classifier turns one transaction record into its canonical
// ledger rows by discovering the actions present in its logs and
// dispatching the matching processors in discovery order.
package classifier

import (
	"context"
	"time"

	"github.com/chainledger/chainledger/internal/config"
	"github.com/chainledger/chainledger/pkg/ledger"
	"github.com/chainledger/chainledger/pkg/processors"
	"github.com/chainledger/chainledger/pkg/transaction"
	logparser "github.com/chainledger/chainledger/pkg/transactionLogParser"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

const dateFormat = "2006-01-02 15:04:05"

type Classifier struct {
	pctx     *processors.Context
	registry map[string]processors.Func
	cfg      config.ClassifierConfig
	logger   *zap.Logger
}

func NewClassifier(pctx *processors.Context, cfg config.ClassifierConfig, l *zap.Logger) *Classifier {
	return &Classifier{
		pctx:     pctx,
		registry: processors.Registry(),
		cfg:      cfg,
		logger:   l,
	}
}

// rewardActions and delegateActions must not both fire on the same
// transaction: the reward processor already accounts for every transfer
// credited to the wallet, so the delegate processor's own reward scan
// would double count it.
var (
	delegateActions = []string{processors.ActionMsgDelegate, processors.ActionLegacyDelegate}
	rewardActions   = []string{processors.ActionMsgWithdrawReward, processors.ActionLegacyWithdrawReward}
)

// Classify derives the ordered ledger rows for one transaction. A
// processor error is fatal for this transaction only; callers report it
// and continue the run.
func (c *Classifier) Classify(ctx context.Context, tx *transaction.Transaction, diag *Diagnostics) ([]ledger.Row, error) {
	date := formatDate(tx.Timestamp)

	if tx.Failed() {
		fee, err := c.pctx.Fees.Compute(ctx, tx)
		if err != nil {
			return nil, err
		}
		rows := []ledger.Row{{
			Date:            date,
			Type:            ledger.RowType_Expense,
			FeeAmount:       fee.Amount,
			FeeAsset:        fee.Asset,
			Description:     "Transaction Failed",
			TransactionHash: tx.Hash,
			TransactionID:   tx.ID,
		}}
		diag.Processed++
		diag.Rows += len(rows)
		return rows, nil
	}

	actions := logparser.ActionsInLogs(tx.Logs)
	if len(actions) == 0 {
		// Pre-action-attribute era: derive identity from the bundled
		// message type tags instead.
		actions = tx.MessageTypeURLs()
	}

	pctx := c.prepareContext(actions)

	rows := make([]ledger.Row, 0)
	for _, action := range actions {
		if action == processors.ActionMsgUpdateClient {
			// Bare client updates intentionally produce nothing; escorted
			// ones defer to the packet action dispatched on its own turn.
			continue
		}

		process, ok := c.registry[action]
		if !ok {
			diag.recordUnmatched(action)
			c.logger.Sugar().Debugw("Skipping unrecognized action",
				zap.String("action", action),
				zap.String("txHash", tx.Hash),
			)
			continue
		}

		actionRows, err := process(ctx, pctx, tx, tx.Logs)
		if err != nil {
			return nil, err
		}
		rows = append(rows, actionRows...)
	}

	for i := range rows {
		rows[i].Date = date
		rows[i].TransactionHash = tx.Hash
		rows[i].TransactionID = tx.ID
	}

	diag.Processed++
	diag.Rows += len(rows)
	return rows, nil
}

// prepareContext applies the per-transaction conflict rules to a copy of
// the shared processor context.
func (c *Classifier) prepareContext(actions []string) *processors.Context {
	pctx := *c.pctx
	if c.cfg.SuppressDelegateRewards &&
		lo.Some(actions, delegateActions) && lo.Some(actions, rewardActions) {
		pctx.SuppressDelegateRewards = true
	}
	return &pctx
}

func formatDate(timestamp string) string {
	t, err := time.Parse(time.RFC3339, timestamp)
	if err != nil {
		return timestamp
	}
	return t.UTC().Format(dateFormat)
}
