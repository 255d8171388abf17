package cmd

import (
	"fmt"

	"github.com/mezonai/crowdfund/logx"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the ledger store and fund genesis accounts",
	Long: `Open the store configured in genesis.yml and create every genesis account.
Accounts that already exist are left untouched, so running init again is safe.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return initializeLedger(cmd)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func initializeLedger(cmd *cobra.Command) error {
	h, err := openHost()
	if err != nil {
		return err
	}
	defer h.Close()

	created, err := h.ledger.CreateAccountsFromGenesis(h.cfg.GenesisAccounts)
	if err != nil {
		return err
	}
	logx.Info("CLI", fmt.Sprintf("Genesis applied: %d of %d accounts created", created, len(h.cfg.GenesisAccounts)))
	fmt.Fprintf(cmd.OutOrStdout(), "program %s: created %d genesis accounts in %s store\n", h.programID, created, h.cfg.Store.Type)
	return nil
}
