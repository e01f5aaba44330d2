package cmd

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/chainledger/chainledger/internal/config"
	"github.com/chainledger/chainledger/internal/logger"
	"github.com/chainledger/chainledger/pkg/rewards"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const defaultRewardsDelay = time.Millisecond * 500

var rewardsCmd = &cobra.Command{
	Use:   "rewards",
	Short: "Fetch Osmosis liquidity-pool reward history for the wallet",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.NewConfig()
		ctx := context.Background()

		l, err := logger.NewLogger(&logger.LoggerConfig{Debug: cfg.Debug})
		if err != nil {
			log.Fatalln(err)
		}

		if cfg.Chain != config.Chain_Osmosis {
			l.Sugar().Fatalw("Pool reward history is only available for osmosis",
				zap.String("chain", cfg.Chain.String()),
			)
		}
		if cfg.WalletAddress == "" {
			l.Sugar().Fatalw("A wallet address is required")
		}

		delay := cfg.RewardsConfig.LookupDelay
		if delay == 0 {
			delay = defaultRewardsDelay
		}

		client := rewards.NewClient(rewards.DefaultBaseURL, l)
		fetcher := rewards.NewFetcher(client, delay, l)

		outPath := fmt.Sprintf("%s/%s_rewards.json",
			strings.TrimRight(cfg.OutputDir, "/"), cfg.Chain)
		if err := fetcher.FetchToFile(ctx, cfg.WalletAddress, outPath); err != nil {
			l.Sugar().Fatalw("Failed to fetch rewards", zap.Error(err))
		}
	},
}
