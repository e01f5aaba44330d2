package cmd

import (
	"os"
	"strings"

	"github.com/chainledger/chainledger/internal/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "chainledger",
	Short: "chainledger classifies dumped Cosmos transaction history into tax ledger rows",
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	initConfig(rootCmd)

	// A .env file is a convenience for local runs; absence is not an error.
	godotenv.Load() //nolint:errcheck

	rootCmd.PersistentFlags().Bool(config.Debug, false, `"true" or "false"`)
	rootCmd.PersistentFlags().StringP(config.ChainFlag, "c", "cosmoshub", "The chain to use (cosmoshub, osmosis, juno)")
	rootCmd.PersistentFlags().StringP(config.WalletAddress, "a", "", "The wallet address whose history is being classified")
	rootCmd.PersistentFlags().String(config.DataDir, "data", "Directory holding the dumped <chain>.json transaction files")
	rootCmd.PersistentFlags().String(config.OutputDir, "output", "Directory the ledger and side files are written to")
	rootCmd.PersistentFlags().String(config.Transformer, "koinly", "Output schema for the transform command (koinly, turbotax)")

	rootCmd.PersistentFlags().String(config.DenomsCachePath, "denoms.json", "Path of the persistent denomination cache")
	rootCmd.PersistentFlags().String(config.DenomsLookupTransport, "registry", `How unknown bridge hashes are resolved ("registry" or "node")`)
	rootCmd.PersistentFlags().String(config.DenomsNodeBinary, "gaiad", "Chain client binary used when lookup-transport is node")
	rootCmd.PersistentFlags().String(config.DenomsNodeURL, "", "Node RPC url passed to the client binary (optional)")
	rootCmd.PersistentFlags().Int32(config.DenomsUnresolvedDecimals, 6, "Decimals assumed for bridged assets without known precision")

	rootCmd.PersistentFlags().Bool(config.SuppressDelegateRewards, true, "Skip the delegate processor's reward scan when a withdrawal shares the transaction")

	rootCmd.PersistentFlags().Duration(config.RewardsLookupDelay, defaultRewardsDelay, "Pause between reward history API calls")

	rootCmd.PersistentFlags().Bool(config.PrometheusEnabled, false, `e.g. "true" or "false"`)
	rootCmd.PersistentFlags().Int(config.PrometheusPort, 2112, "The port to run the prometheus server on")

	// setup sub commands
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(reconcileCmd)
	rootCmd.AddCommand(transformCmd)
	rootCmd.AddCommand(balanceCmd)
	rootCmd.AddCommand(rewardsCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		key := config.KebabToSnakeCase(f.Name)
		viper.BindPFlag(key, f) //nolint:errcheck
		viper.BindEnv(key)      //nolint:errcheck
	})
}

func initConfig(cmd *cobra.Command) {
	viper.SetEnvPrefix(config.ENV_PREFIX)

	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.AutomaticEnv()
}
