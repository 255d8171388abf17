package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mezonai/crowdfund/store"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadGenesisConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "genesis.yml", `
config:
  program_id: "FjW5aagpT2TbMXyPeah4C2GPdkfDJizQ6RY8RAFfGK2U"
  store:
    type: "bolt"
    directory: "./data"
  rent_config: "rent.ini"
  genesis_accounts:
    - address: "HCbazY17AjCr6DTxGtBoQVwPNZ3BNACq7RpnsJgtnNzL"
      amount: 1000
`)

	cfg, err := LoadGenesisConfig(path)
	if err != nil {
		t.Fatalf("LoadGenesisConfig: %v", err)
	}
	if cfg.Store.Type != store.BoltStoreType {
		t.Errorf("store type = %q", cfg.Store.Type)
	}
	if len(cfg.GenesisAccounts) != 1 || cfg.GenesisAccounts[0].Amount != 1000 {
		t.Errorf("genesis accounts = %+v", cfg.GenesisAccounts)
	}
	if cfg.RentConfig != filepath.Join(dir, "rent.ini") {
		t.Errorf("rent config = %q, want resolved against genesis dir", cfg.RentConfig)
	}
	if cfg.Program().String() != cfg.ProgramID {
		t.Errorf("program id round trip: %s", cfg.Program())
	}
}

func TestLoadGenesisConfigRejectsBadInput(t *testing.T) {
	cases := map[string]string{
		"bad program id": `
config:
  program_id: "nope"
  store: {type: "memory"}
`,
		"bad genesis address": `
config:
  program_id: "FjW5aagpT2TbMXyPeah4C2GPdkfDJizQ6RY8RAFfGK2U"
  store: {type: "memory"}
  genesis_accounts:
    - address: "0OIl"
      amount: 1
`,
		"unknown field": `
config:
  program_id: "FjW5aagpT2TbMXyPeah4C2GPdkfDJizQ6RY8RAFfGK2U"
  store: {type: "memory"}
  leader_schedule: []
`,
		"missing store type": `
config:
  program_id: "FjW5aagpT2TbMXyPeah4C2GPdkfDJizQ6RY8RAFfGK2U"
`,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "genesis.yml", content)
			if _, err := LoadGenesisConfig(path); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoadRentConfig(t *testing.T) {
	path := writeFile(t, t.TempDir(), "rent.ini", "[rent]\nlamports_per_byte_year = 10\n")

	r, err := LoadRentConfig(path)
	if err != nil {
		t.Fatalf("LoadRentConfig: %v", err)
	}
	if r.LamportsPerByteYear != 10 {
		t.Errorf("lamports_per_byte_year = %d", r.LamportsPerByteYear)
	}
	if r.ExemptionThreshold != 2.0 || r.StorageOverhead != 128 {
		t.Errorf("defaults not kept: %+v", r)
	}
	if got := r.MinimumBalance(0); got != 2560 {
		t.Errorf("MinimumBalance(0) = %d, want 2560", got)
	}
}

func TestLoadRentConfigRejectsZeroPrice(t *testing.T) {
	path := writeFile(t, t.TempDir(), "rent.ini", "[rent]\nlamports_per_byte_year = 0\n")
	if _, err := LoadRentConfig(path); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestLoadRentConfigEmptyPath(t *testing.T) {
	r, err := LoadRentConfig("")
	if err != nil {
		t.Fatalf("LoadRentConfig: %v", err)
	}
	if r.MinimumBalance(0) != 890880 {
		t.Errorf("unexpected default policy %+v", r)
	}
}

func TestLoadEd25519PrivKey(t *testing.T) {
	path := writeFile(t, t.TempDir(), "key", "122a71f96dbc72c922552ca40cafacb947ea7df7f578937e5eb5e29b155fa377\n")
	key, err := LoadEd25519PrivKey(path)
	if err != nil {
		t.Fatalf("LoadEd25519PrivKey: %v", err)
	}
	if len(key) != 64 {
		t.Errorf("key length = %d", len(key))
	}
}
