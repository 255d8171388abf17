package cmd

import (
	"crypto/ed25519"
	"fmt"
	"time"

	"github.com/mezonai/crowdfund/campaign"
	"github.com/mezonai/crowdfund/errors"
	"github.com/mezonai/crowdfund/events"
	"github.com/mezonai/crowdfund/ledger"
	"github.com/mezonai/crowdfund/logx"
	"github.com/mezonai/crowdfund/transaction"
	"github.com/mezonai/crowdfund/types"
	"github.com/spf13/cobra"
)

type CampaignConfig struct {
	PrivateKey     string
	PrivateKeyFile string
	Campaign       string
	Amount         string
	Name           string
	Description    string
	ImageLink      string
	Seed           string
}

var campaignConfig CampaignConfig

var campaignCmd = &cobra.Command{
	Use:   "campaign",
	Short: "Create, fund and inspect crowdfunding campaigns",
}

var campaignCreateCmd = &cobra.Command{
	Use:   "create [flags]",
	Short: "Create a campaign administered by the signing wallet",
	Long: `Provision a campaign record derived from the signer and --seed, funded with
exactly the minimum balance its data needs, then initialize it. A seed that
already holds a campaign is refused; a record left provisioned by a failed
create is reused.

Examples:
  campaign create -f key.txt --name "Dogs" --description "Save dogs" --image-link https://example.org/dog.jpg`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return createCampaign(cmd, campaignConfig)
	},
}

var campaignDonateCmd = &cobra.Command{
	Use:   "donate [flags]",
	Short: "Donate lamports to a campaign",
	RunE: func(cmd *cobra.Command, args []string) error {
		return donate(cmd, campaignConfig)
	},
}

var campaignWithdrawCmd = &cobra.Command{
	Use:   "withdraw [flags]",
	Short: "Withdraw campaign funds to its admin",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withdraw(cmd, campaignConfig)
	},
}

var campaignShowCmd = &cobra.Command{
	Use:   "show <address>",
	Short: "Print one campaign",
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

		c, err := campaign.Get(h.accounts, h.programID, key)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), c)
	},
}

var campaignListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every campaign of the program",
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := openHost()
		if err != nil {
			return err
		}
		defer h.Close()

		campaigns, err := campaign.List(h.accounts, h.programID)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), campaigns)
	},
}

func init() {
	rootCmd.AddCommand(campaignCmd)
	campaignCmd.AddCommand(campaignCreateCmd, campaignDonateCmd, campaignWithdrawCmd, campaignShowCmd, campaignListCmd)

	for _, c := range []*cobra.Command{campaignCreateCmd, campaignDonateCmd, campaignWithdrawCmd} {
		c.Flags().StringVarP(&campaignConfig.PrivateKeyFile, "private-key-file", "f", "", "signer private key file")
		c.Flags().StringVarP(&campaignConfig.PrivateKey, "private-key", "p", "", "signer private key in hex")
	}
	for _, c := range []*cobra.Command{campaignDonateCmd, campaignWithdrawCmd} {
		c.Flags().StringVarP(&campaignConfig.Campaign, "campaign", "c", "", "campaign address")
		c.Flags().StringVarP(&campaignConfig.Amount, "amount", "a", "", "amount in lamports")
		_ = c.MarkFlagRequired("campaign")
		_ = c.MarkFlagRequired("amount")
	}

	campaignCreateCmd.Flags().StringVar(&campaignConfig.Name, "name", "", "campaign name")
	campaignCreateCmd.Flags().StringVar(&campaignConfig.Description, "description", "", "campaign description")
	campaignCreateCmd.Flags().StringVar(&campaignConfig.ImageLink, "image-link", "", "campaign image link")
	campaignCreateCmd.Flags().StringVar(&campaignConfig.Seed, "seed", "", "address seed (defaults to the name, at most 32 bytes)")
	_ = campaignCreateCmd.MarkFlagRequired("name")
}

func createCampaign(cmd *cobra.Command, cfg CampaignConfig) error {
	priv, err := loadPrivateKey(cfg.PrivateKey, cfg.PrivateKeyFile)
	if err != nil {
		return err
	}
	seed := cfg.Seed
	if seed == "" {
		seed = cfg.Name
	}
	if len(seed) > types.MaxSeedLength {
		return fmt.Errorf("seed %q is %d bytes, at most %d allowed; pass a shorter --seed", seed, len(seed), types.MaxSeedLength)
	}

	h, err := openHost()
	if err != nil {
		return err
	}
	defer h.Close()

	admin := pubkeyOf(priv)
	record := campaign.CampaignRecord{
		Admin:       admin,
		Name:        cfg.Name,
		Description: cfg.Description,
		ImageLink:   cfg.ImageLink,
	}
	campaignKey, err := types.CreateWithSeed(admin, seed, h.programID)
	if err != nil {
		return err
	}
	_, err = campaign.Get(h.accounts, h.programID, campaignKey)
	switch {
	case err == nil:
		return errors.NewError(errors.ErrCodeAccountExists, errors.ErrMsgCampaignExists, campaignKey)
	case errors.CodeOf(err) == errors.ErrCodeAccountNotFound:
		if _, err := provisionRecord(h, priv, seed, h.policy.MinimumBalance(record.EncodedLen()), uint64(record.EncodedLen())); err != nil {
			return err
		}
	case errors.CodeOf(err) == errors.ErrCodeInvalidAccountData:
		// provisioned by an earlier run whose create failed
		logx.Info("CLI", fmt.Sprintf("Reusing provisioned record %s", campaignKey))
	default:
		return err
	}

	data, err := campaign.EncodeInstruction(campaign.CreateCampaign{Record: record})
	if err != nil {
		return err
	}
	tx := transaction.NewTransaction(h.programID, data,
		transaction.ReadOnly(campaignKey),
		transaction.Signer(admin),
	)
	return executeAndPrint(cmd, h, tx, priv)
}

func donate(cmd *cobra.Command, cfg CampaignConfig) error {
	amount, err := parseAmount(cfg.Amount)
	if err != nil {
		return err
	}
	campaignKey, err := types.ParsePubkey(cfg.Campaign)
	if err != nil {
		return fmt.Errorf("invalid campaign address: %w", err)
	}
	priv, err := loadPrivateKey(cfg.PrivateKey, cfg.PrivateKeyFile)
	if err != nil {
		return err
	}

	h, err := openHost()
	if err != nil {
		return err
	}
	defer h.Close()

	// the donation record is funded in its own transaction, so the target must be
	// a created campaign before any lamports leave the donor
	if _, err := campaign.Get(h.accounts, h.programID, campaignKey); err != nil {
		return fmt.Errorf("cannot donate to %s: %w", campaignKey, err)
	}

	seed := fmt.Sprintf("donation-%d", time.Now().UnixNano())
	donationKey, err := provisionRecord(h, priv, seed, amount, 0)
	if err != nil {
		return err
	}

	data, err := campaign.EncodeInstruction(campaign.Donate{})
	if err != nil {
		return err
	}
	tx := transaction.NewTransaction(h.programID, data,
		transaction.ReadOnly(campaignKey),
		transaction.ReadOnly(donationKey),
		transaction.Signer(pubkeyOf(priv)),
	)
	return executeAndPrint(cmd, h, tx, priv)
}

func withdraw(cmd *cobra.Command, cfg CampaignConfig) error {
	amount, err := parseAmount(cfg.Amount)
	if err != nil {
		return err
	}
	campaignKey, err := types.ParsePubkey(cfg.Campaign)
	if err != nil {
		return fmt.Errorf("invalid campaign address: %w", err)
	}
	priv, err := loadPrivateKey(cfg.PrivateKey, cfg.PrivateKeyFile)
	if err != nil {
		return err
	}

	h, err := openHost()
	if err != nil {
		return err
	}
	defer h.Close()

	data, err := campaign.EncodeInstruction(campaign.Withdraw{Request: campaign.WithdrawRequest{Amount: amount}})
	if err != nil {
		return err
	}
	tx := transaction.NewTransaction(h.programID, data,
		transaction.ReadOnly(campaignKey),
		transaction.Signer(pubkeyOf(priv)),
	)
	return executeAndPrint(cmd, h, tx, priv)
}

// provisionRecord creates and funds the program-owned record derived from the
// signer and seed.
func provisionRecord(h *host, priv ed25519.PrivateKey, seed string, lamports, space uint64) (types.Pubkey, error) {
	signer := pubkeyOf(priv)
	tx, derived, err := ledger.NewCreateAccountWithSeedTransaction(signer, ledger.CreateAccountWithSeed{
		Base:     signer,
		Seed:     seed,
		Lamports: lamports,
		Space:    space,
		Owner:    h.programID,
	})
	if err != nil {
		return types.Pubkey{}, err
	}

	if err := tx.Sign(priv); err != nil {
		return types.Pubkey{}, err
	}
	if _, err := h.ledger.Execute(tx); err != nil {
		return types.Pubkey{}, fmt.Errorf("failed to provision record %s: %w", derived, err)
	}
	return derived, nil
}

func executeAndPrint(cmd *cobra.Command, h *host, tx *transaction.Transaction, priv ed25519.PrivateKey) error {
	if err := tx.Sign(priv); err != nil {
		return err
	}
	event, err := h.ledger.Execute(tx)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), eventView(event))
}

type eventOutput struct {
	ID       string           `json:"id"`
	Type     events.EventType `json:"type"`
	Campaign types.Pubkey     `json:"campaign"`
	Detail   interface{}      `json:"detail"`
}

func eventView(event events.LedgerEvent) eventOutput {
	return eventOutput{
		ID:       event.ID(),
		Type:     event.Type(),
		Campaign: event.Campaign(),
		Detail:   event,
	}
}
