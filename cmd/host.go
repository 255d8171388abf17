package cmd

import (
	"crypto/ed25519"
	"fmt"
	"io"
	"strings"

	"github.com/holiman/uint256"
	"github.com/mezonai/crowdfund/campaign"
	"github.com/mezonai/crowdfund/common"
	"github.com/mezonai/crowdfund/config"
	"github.com/mezonai/crowdfund/events"
	"github.com/mezonai/crowdfund/exception"
	"github.com/mezonai/crowdfund/jsonx"
	"github.com/mezonai/crowdfund/ledger"
	"github.com/mezonai/crowdfund/logx"
	"github.com/mezonai/crowdfund/monitoring"
	"github.com/mezonai/crowdfund/rent"
	"github.com/mezonai/crowdfund/store"
	"github.com/mezonai/crowdfund/stringutil"
	"github.com/mezonai/crowdfund/types"
)

// host is one opened ledger with the campaign program registered on it
type host struct {
	cfg       *config.GenesisConfig
	policy    *rent.Rent
	programID types.Pubkey
	ledger    *ledger.Ledger
	accounts  store.AccountStore
	bus       *events.EventBus
	subID     events.SubscriberID
	logDone   chan struct{}
}

func openHost() (*host, error) {
	monitoring.InitMetrics()

	cfg, err := config.LoadGenesisConfig(genesisPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load genesis config: %w", err)
	}
	policy, err := config.LoadRentConfig(cfg.RentConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to load rent config: %w", err)
	}

	accounts, meta, err := store.CreateStore(&cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	bus := events.NewEventBus()
	ld, err := ledger.NewLedger(accounts, meta, bus)
	if err != nil {
		accounts.MustClose()
		return nil, err
	}

	programID := cfg.Program()
	if err := ld.RegisterProgram(campaign.NewLedger(programID, policy)); err != nil {
		accounts.MustClose()
		return nil, err
	}

	h := &host{
		cfg:       cfg,
		policy:    policy,
		programID: programID,
		ledger:    ld,
		accounts:  accounts,
		bus:       bus,
		logDone:   make(chan struct{}),
	}
	var ch <-chan events.LedgerEvent
	h.subID, ch = bus.Subscribe()
	exception.SafeGo("event-logger", func() {
		for ev := range ch {
			logx.Info("EVENT", fmt.Sprintf("%s id=%s campaign=%s", ev.Type(), ev.ID(), stringutil.Short(ev.Campaign())))
		}
	}, h.logDone)
	return h, nil
}

// Close drains the event logger before closing the store
func (h *host) Close() {
	h.bus.Unsubscribe(h.subID)
	<-h.logDone
	h.accounts.MustClose()
}

// loadPrivateKey reads a hex key either from the flag value or from a file
func loadPrivateKey(keyHex, keyFile string) (ed25519.PrivateKey, error) {
	if keyHex != "" {
		return common.ParsePrivateKeyHex(keyHex)
	}
	if keyFile == "" {
		return nil, fmt.Errorf("either --private-key or --private-key-file is required")
	}
	return config.LoadEd25519PrivKey(keyFile)
}

func pubkeyOf(priv ed25519.PrivateKey) types.Pubkey {
	return types.MustParsePubkey(common.AddressOf(priv))
}

// parseAmount accepts decimal lamports with optional _ separators
func parseAmount(s string) (uint64, error) {
	amount, err := uint256.FromDecimal(strings.ReplaceAll(s, "_", ""))
	if err != nil {
		return 0, fmt.Errorf("could not parse amount %q: %w", s, err)
	}
	if !amount.IsUint64() {
		return 0, fmt.Errorf("amount %s exceeds the maximum balance", amount)
	}
	return amount.Uint64(), nil
}

func printJSON(w io.Writer, v interface{}) error {
	out, err := jsonx.MarshalIndent(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
