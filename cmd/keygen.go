package cmd

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mezonai/crowdfund/common"
	"github.com/spf13/cobra"
)

var (
	keygenOut   string
	keygenForce bool
)

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate an ed25519 key file",
	Long: `Generate a new ed25519 key and write its 32 byte seed in hex to --out.
The base58 address of the key is printed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		address, err := generateKey(keygenOut, keygenForce)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), address)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(keygenCmd)

	keygenCmd.Flags().StringVarP(&keygenOut, "out", "o", "key.txt", "file to write the hex seed to")
	keygenCmd.Flags().BoolVar(&keygenForce, "force", false, "overwrite an existing key file")
}

func generateKey(path string, force bool) (string, error) {
	if _, err := os.Stat(path); err == nil && !force {
		return "", fmt.Errorf("key file %s already exists", path)
	}

	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return "", fmt.Errorf("failed to generate key: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return "", err
		}
	}
	if err := os.WriteFile(path, []byte(hex.EncodeToString(priv.Seed())), 0o600); err != nil {
		return "", fmt.Errorf("failed to write key file: %w", err)
	}
	return common.AddressOf(priv), nil
}
