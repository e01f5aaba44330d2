// Package pipeline runs a full classification pass: read the dumped
// transaction history, classify each transaction in input order, and
// append the resulting rows to the ledger file.
package pipeline

import (
	"context"
	"encoding/json"
	"os"

	"github.com/chainledger/chainledger/internal/config"
	"github.com/chainledger/chainledger/internal/metrics"
	"github.com/chainledger/chainledger/pkg/classifier"
	"github.com/chainledger/chainledger/pkg/clients/chainRegistry"
	"github.com/chainledger/chainledger/pkg/clients/nodeClient"
	"github.com/chainledger/chainledger/pkg/denoms"
	"github.com/chainledger/chainledger/pkg/fees"
	"github.com/chainledger/chainledger/pkg/ledger"
	"github.com/chainledger/chainledger/pkg/processors"
	"github.com/chainledger/chainledger/pkg/timeouts"
	"github.com/chainledger/chainledger/pkg/transaction"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
)

type Pipeline struct {
	cfg     *config.Config
	logger  *zap.Logger
	metrics *metrics.Metrics
}

func NewPipeline(cfg *config.Config, m *metrics.Metrics, l *zap.Logger) *Pipeline {
	return &Pipeline{
		cfg:     cfg,
		logger:  l,
		metrics: m,
	}
}

// newLookup selects the external denom transport from config.
func (p *Pipeline) newLookup() (denoms.Lookup, error) {
	switch p.cfg.DenomsConfig.LookupTransport {
	case "registry", "":
		return chainRegistry.NewClient(p.cfg.Chain.Params().RegistryURL, p.logger), nil
	case "node":
		return nodeClient.NewClient(p.cfg.DenomsConfig.NodeBinary, p.cfg.DenomsConfig.NodeURL, p.logger), nil
	default:
		return nil, errors.Errorf("unknown denom lookup transport '%s'", p.cfg.DenomsConfig.LookupTransport)
	}
}

// instrumentedLookup counts external lookups; every call is by definition
// a cache miss.
type instrumentedLookup struct {
	inner   denoms.Lookup
	metrics *metrics.Metrics
}

func (il *instrumentedLookup) BaseDenom(ctx context.Context, hash string) (string, error) {
	il.metrics.DenomLookups.Inc()
	il.metrics.DenomCacheMisses.Inc()
	return il.inner.BaseDenom(ctx, hash)
}

// readTransactions loads the dumped history, preserving dump order.
func readTransactions(path string) ([]*transaction.Transaction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read input file '%s'", path)
	}

	txs := make([]*transaction.Transaction, 0)
	if err := json.Unmarshal(data, &txs); err != nil {
		return nil, errors.Wrapf(err, "failed to parse input file '%s'", path)
	}
	return txs, nil
}

// Run executes the classification pass end to end. A transaction that
// fails to classify is logged and skipped; its predecessors' rows are
// already on disk.
func (p *Pipeline) Run(ctx context.Context) (*classifier.Diagnostics, error) {
	txs, err := readTransactions(p.cfg.InputFilePath())
	if err != nil {
		return nil, err
	}
	p.logger.Sugar().Infow("Loaded transaction history",
		zap.String("chain", p.cfg.Chain.String()),
		zap.Int("transactions", len(txs)),
	)

	lookup, err := p.newLookup()
	if err != nil {
		return nil, err
	}
	lookup = &instrumentedLookup{inner: lookup, metrics: p.metrics}

	resolver := denoms.NewResolver(
		denoms.NewStore(p.cfg.DenomsConfig.CachePath),
		lookup,
		p.cfg.DenomsConfig.UnresolvedDecimals,
		p.logger,
	)
	feeCalc := fees.NewCalculator(resolver)
	timeoutStore := timeouts.NewStore(p.cfg.TimeoutFilePath())

	pctx := processors.NewContext(p.cfg, resolver, feeCalc, timeoutStore, p.logger)
	c := classifier.NewClassifier(pctx, p.cfg.ClassifierConfig, p.logger)

	writer, err := ledger.NewWriter(p.cfg.LedgerFilePath())
	if err != nil {
		return nil, err
	}
	defer writer.Close()

	diag := classifier.NewDiagnostics()
	bar := progressbar.Default(int64(len(txs)), "Classifying transactions")

	for _, tx := range txs {
		if err := ctx.Err(); err != nil {
			return diag, err
		}

		rows, err := c.Classify(ctx, tx, diag)
		if err != nil {
			diag.Failures++
			p.metrics.TransactionsFailed.Inc()
			p.logger.Sugar().Errorw("Failed to classify transaction",
				zap.String("txHash", tx.Hash),
				zap.String("txId", tx.ID),
				zap.Error(err),
			)
			_ = bar.Add(1)
			continue
		}

		if err := writer.Append(rows); err != nil {
			return diag, errors.Wrapf(err, "failed to append rows for transaction '%s'", tx.Hash)
		}

		p.metrics.TransactionsProcessed.Inc()
		for _, row := range rows {
			p.metrics.RowsEmitted.WithLabelValues(string(row.Type)).Inc()
		}
		_ = bar.Add(1)
	}

	for range diag.Unmatched() {
		p.metrics.UnmatchedActions.Inc()
	}

	diag.Report(p.logger)
	return diag, nil
}
