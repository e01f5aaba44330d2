package cmd

import (
	"log"
	"os"

	"github.com/chainledger/chainledger/internal/config"
	"github.com/chainledger/chainledger/internal/logger"
	"github.com/chainledger/chainledger/pkg/balanceSheet"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Print per-asset totals derived from the ledger file",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.NewConfig()

		l, err := logger.NewLogger(&logger.LoggerConfig{Debug: cfg.Debug})
		if err != nil {
			log.Fatalln(err)
		}

		totals, err := balanceSheet.ComputeFromFile(cfg.LedgerFilePath())
		if err != nil {
			l.Sugar().Fatalw("Failed to compute balance sheet", zap.Error(err))
		}

		balanceSheet.Render(totals, os.Stdout)
	},
}
