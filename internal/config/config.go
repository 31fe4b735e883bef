package config

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// DefaultConfigPath is where commands look for a config file when none is given.
const DefaultConfigPath = "vaultd.toml"

// Config is the complete vaultd configuration.
type Config struct {
	Vault   VaultConfig   `toml:"vault" mapstructure:"vault"`
	NodeDB  NodeDBConfig  `toml:"node_db" mapstructure:"node_db"`
	Journal JournalConfig `toml:"journal" mapstructure:"journal"`
	Log     LogConfig     `toml:"log" mapstructure:"log"`

	configPath string `toml:"-" mapstructure:"-"`
}

// VaultConfig represents the [vault] section: the ledger parameters vault
// transactions run under.
type VaultConfig struct {
	// ProgramID is 64 hex characters mixed into every vault identifier.
	ProgramID      string `toml:"program_id" mapstructure:"program_id"`
	MinimumBalance uint64 `toml:"minimum_balance" mapstructure:"minimum_balance"`
	BaseFee        uint64 `toml:"base_fee" mapstructure:"base_fee"`
}

// LogConfig represents the [log] section
type LogConfig struct {
	Level  string `toml:"level" mapstructure:"level"`
	Pretty bool   `toml:"pretty" mapstructure:"pretty"`
}

// GetConfigPath returns the file the configuration was read from, if any.
func (c *Config) GetConfigPath() string {
	return c.configPath
}

// GetProgramID decodes the program ID.
func (v *VaultConfig) GetProgramID() ([32]byte, error) {
	var id [32]byte
	raw, err := hex.DecodeString(strings.TrimSpace(v.ProgramID))
	if err != nil {
		return id, fmt.Errorf("program_id is not hex: %w", err)
	}
	if len(raw) != len(id) {
		return id, fmt.Errorf("program_id must be %d bytes, got %d", len(id), len(raw))
	}
	copy(id[:], raw)
	return id, nil
}

// Validate performs validation on the vault section
func (v *VaultConfig) Validate() error {
	if _, err := v.GetProgramID(); err != nil {
		return err
	}
	if v.MinimumBalance == 0 {
		return fmt.Errorf("minimum_balance must be positive")
	}
	return nil
}

// Validate performs validation on the log section
func (l *LogConfig) Validate() error {
	switch strings.ToLower(l.Level) {
	case "debug", "info", "warn", "warning", "error", "disabled", "off":
		return nil
	default:
		return fmt.Errorf("invalid log level: %q (valid options: debug, info, warn, error, disabled)", l.Level)
	}
}
