package cmd

import (
	"os"

	"github.com/mezonai/crowdfund/config"
	"github.com/mezonai/crowdfund/logx"
	"github.com/spf13/cobra"
)

var (
	genesisPath string
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "crowdfund",
	Short: "Crowdfunding campaign ledger CLI",
	Long: `Command line host for the crowdfunding program: it opens the ledger store
configured in genesis.yml, signs transactions with local ed25519 keys and
executes them against the campaign program.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logx.EnableConsole()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&genesisPath, "genesis", "g", config.DefaultGenesisPath, "Path to genesis configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "echo logs to the console")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logx.Error("CLI", "Command execution failed:", err)
		os.Exit(1)
	}
}
