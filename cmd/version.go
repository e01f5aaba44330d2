package cmd

import (
	"fmt"

	"github.com/chainledger/chainledger/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and commit",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Version: %s\n", version.GetVersion())
		fmt.Printf("Commit: %s\n", version.GetCommit())
	},
}
