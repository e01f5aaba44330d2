package cmd

import (
	"fmt"
	"log"
	"strings"

	"github.com/chainledger/chainledger/internal/config"
	"github.com/chainledger/chainledger/internal/logger"
	"github.com/chainledger/chainledger/pkg/transformers"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var transformCmd = &cobra.Command{
	Use:   "transform",
	Short: "Rewrite the canonical ledger into a tax tool's import schema",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.NewConfig()

		l, err := logger.NewLogger(&logger.LoggerConfig{Debug: cfg.Debug})
		if err != nil {
			log.Fatalln(err)
		}

		t, err := transformers.ForName(cfg.Transformer)
		if err != nil {
			l.Sugar().Fatalw("Failed to select transformer", zap.Error(err))
		}

		inPath := cfg.LedgerFilePath()
		outPath := fmt.Sprintf("%s/%s_%s.csv",
			strings.TrimRight(cfg.OutputDir, "/"), cfg.Chain, t.Name())

		if err := transformers.TransformFile(inPath, outPath, t, l); err != nil {
			l.Sugar().Fatalw("Transformation failed", zap.Error(err))
		}
	},
}
