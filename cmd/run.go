package cmd

import (
	"context"
	"log"

	"github.com/chainledger/chainledger/internal/config"
	"github.com/chainledger/chainledger/internal/logger"
	"github.com/chainledger/chainledger/internal/metrics"
	"github.com/chainledger/chainledger/pkg/pipeline"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Classify the dumped transaction history into the ledger file",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.NewConfig()
		ctx := context.Background()

		l, err := logger.NewLogger(&logger.LoggerConfig{Debug: cfg.Debug})
		if err != nil {
			log.Fatalln(err)
		}

		if cfg.WalletAddress == "" {
			l.Sugar().Fatalw("A wallet address is required")
		}

		m := metrics.NewMetrics()
		if cfg.PrometheusConfig.Enabled {
			m.Serve(cfg.PrometheusConfig.Port, l)
		}

		p := pipeline.NewPipeline(cfg, m, l)
		if _, err := p.Run(ctx); err != nil {
			l.Sugar().Fatalw("Classification run failed", zap.Error(err))
		}

		l.Sugar().Infow("Wrote ledger file",
			zap.String("outputFile", cfg.LedgerFilePath()),
		)
	},
}
