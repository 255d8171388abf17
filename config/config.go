package config

import (
	"crypto/ed25519"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mezonai/crowdfund/common"
	"github.com/mezonai/crowdfund/logx"
	"github.com/mezonai/crowdfund/rent"
	"github.com/mezonai/crowdfund/types"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

// LoadGenesisConfig reads and parses the genesis.yml file. A relative
// rent_config path is resolved against the directory of the genesis file.
func LoadGenesisConfig(path string) (*GenesisConfig, error) {
	logx.Debug("CONFIG", "LoadGenesisConfig called with path: ", path)
	file, err := os.Open(path)
	if err != nil {
		logx.Error("CONFIG", "Failed to open file: ", err)
		return nil, err
	}
	defer file.Close()

	var cfgFile ConfigFile
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfgFile); err != nil {
		logx.Error("CONFIG", "Failed to decode YAML: ", err)
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	cfg := &cfgFile.Config
	if cfg.RentConfig != "" && !filepath.IsAbs(cfg.RentConfig) {
		cfg.RentConfig = filepath.Join(filepath.Dir(path), cfg.RentConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logx.Info("CONFIG", fmt.Sprintf("Loaded config: program=%s store=%s genesis_accounts=%d", cfg.ProgramID, cfg.Store.Type, len(cfg.GenesisAccounts)))
	return cfg, nil
}

// Validate checks addresses and the store section
func (c *GenesisConfig) Validate() error {
	if _, err := types.ParsePubkey(c.ProgramID); err != nil {
		return fmt.Errorf("invalid program_id: %w", err)
	}
	if err := c.Store.Validate(); err != nil {
		return fmt.Errorf("invalid store config: %w", err)
	}
	for i, acc := range c.GenesisAccounts {
		if _, err := types.ParsePubkey(acc.Address); err != nil {
			return fmt.Errorf("invalid genesis account %d: %w", i, err)
		}
	}
	return nil
}

// Program returns the parsed program id; only valid after Validate
func (c *GenesisConfig) Program() types.Pubkey {
	return types.MustParsePubkey(c.ProgramID)
}

// LoadRentConfig reads the [rent] section of an .ini file. Keys that are absent
// keep their default value. An empty path yields the defaults.
func LoadRentConfig(path string) (*rent.Rent, error) {
	rentCfg := rent.Default()
	if path == "" {
		return rentCfg, nil
	}

	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Section(DefaultRentSection).MapTo(rentCfg); err != nil {
		return nil, err
	}
	if err := rentCfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rent config %s: %w", path, err)
	}
	return rentCfg, nil
}

// LoadEd25519PrivKey loads an Ed25519 private key from a file (expects hex encoding)
func LoadEd25519PrivKey(path string) (ed25519.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	key, err := common.ParsePrivateKeyHex(string(data))
	if err != nil {
		return nil, fmt.Errorf("invalid key file %s: %w", path, err)
	}
	return key, nil
}
