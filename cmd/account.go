package cmd

import (
	"fmt"

	"github.com/mezonai/crowdfund/ledger"
	"github.com/mezonai/crowdfund/logx"
	"github.com/mezonai/crowdfund/types"
	"github.com/spf13/cobra"
)

type TransferConfig struct {
	PrivateKey     string
	PrivateKeyFile string
	To             string
	Amount         string
}

var transferConfig TransferConfig

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Inspect and fund wallet accounts",
}

var accountShowCmd = &cobra.Command{
	Use:   "show <address>",
	Short: "Print an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := types.ParsePubkey(args[0])
		if err != nil {
			return err
		}
		h, err := openHost()
		if err != nil {
			return err
		}
		defer h.Close()

		acc, err := h.ledger.GetAccount(key)
		if err != nil {
			return err
		}
		if acc == nil {
			return fmt.Errorf("account %s not found", key)
		}
		return printJSON(cmd.OutOrStdout(), acc)
	},
}

var accountTransferCmd = &cobra.Command{
	Use:   "transfer [flags]",
	Short: "Transfer lamports to another account",
	Long: `Send lamports from the signing wallet to --to through the system program.

Examples:
  # Transfer 1000 lamports using a private key file
  account transfer -t HCbazY17AjCr6DTxGtBoQVwPNZ3BNACq7RpnsJgtnNzL -a 1_000 -f key.txt`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return transferLamports(cmd, transferConfig)
	},
}

func init() {
	rootCmd.AddCommand(accountCmd)
	accountCmd.AddCommand(accountShowCmd, accountTransferCmd)

	accountTransferCmd.Flags().StringVarP(&transferConfig.PrivateKeyFile, "private-key-file", "f", "", "sender private key file")
	accountTransferCmd.Flags().StringVarP(&transferConfig.PrivateKey, "private-key", "p", "", "sender private key in hex")
	accountTransferCmd.Flags().StringVarP(&transferConfig.To, "to", "t", "", "address of recipient")
	accountTransferCmd.Flags().StringVarP(&transferConfig.Amount, "amount", "a", "", "amount in lamports")
	_ = accountTransferCmd.MarkFlagRequired("to")
	_ = accountTransferCmd.MarkFlagRequired("amount")
}

func transferLamports(cmd *cobra.Command, cfg TransferConfig) error {
	amount, err := parseAmount(cfg.Amount)
	if err != nil {
		return err
	}
	to, err := types.ParsePubkey(cfg.To)
	if err != nil {
		return fmt.Errorf("invalid recipient: %w", err)
	}
	priv, err := loadPrivateKey(cfg.PrivateKey, cfg.PrivateKeyFile)
	if err != nil {
		return fmt.Errorf("failed to load sender private key: %w", err)
	}

	h, err := openHost()
	if err != nil {
		return err
	}
	defer h.Close()

	from := pubkeyOf(priv)
	tx := ledger.NewTransferTransaction(from, to, amount)
	if err := tx.Sign(priv); err != nil {
		return err
	}
	if _, err := h.ledger.Execute(tx); err != nil {
		return err
	}

	logx.Info("CLI", fmt.Sprintf("Transferred %d from %s to %s", amount, from, to))
	acc, err := h.ledger.GetAccount(to)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), acc)
}
