package config

const (
	DefaultGenesisPath = "config/genesis.yml"
	DefaultRentSection = "rent"
)
