package cmd

import (
	"log"

	"github.com/chainledger/chainledger/internal/config"
	"github.com/chainledger/chainledger/internal/logger"
	"github.com/chainledger/chainledger/pkg/timeouts"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Purge ledger rows belonging to IBC transfers that later timed out",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.NewConfig()

		l, err := logger.NewLogger(&logger.LoggerConfig{Debug: cfg.Debug})
		if err != nil {
			log.Fatalln(err)
		}

		store := timeouts.NewStore(cfg.TimeoutFilePath())
		if _, err := timeouts.Reconcile(cfg.LedgerFilePath(), store, l); err != nil {
			l.Sugar().Fatalw("Reconciliation failed", zap.Error(err))
		}
	},
}
