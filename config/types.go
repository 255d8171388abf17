package config

import "github.com/mezonai/crowdfund/store"

// GenesisAccount is a system-owned wallet funded when the ledger is initialized
type GenesisAccount struct {
	Address string `yaml:"address"`
	Amount  uint64 `yaml:"amount"`
}

// GenesisConfig holds the configuration from genesis.yml
type GenesisConfig struct {
	ProgramID       string            `yaml:"program_id"`
	Store           store.StoreConfig `yaml:"store"`
	GenesisAccounts []GenesisAccount  `yaml:"genesis_accounts"`
	RentConfig      string            `yaml:"rent_config"`
}

// ConfigFile is the top-level structure for genesis.yml
type ConfigFile struct {
	Config GenesisConfig `yaml:"config"`
}
