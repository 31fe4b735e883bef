package config

import (
	"fmt"
	"strings"
)

// NodeDBConfig represents the [node_db] section
// Configures the key-value store that holds ledger state
type NodeDBConfig struct {
	Type      string `toml:"type" mapstructure:"type"`
	Path      string `toml:"path" mapstructure:"path"`
	CacheSize int    `toml:"cache_size" mapstructure:"cache_size"`
}

// JournalConfig represents the [journal] section
// An empty driver disables the transaction journal
type JournalConfig struct {
	Driver string `toml:"driver" mapstructure:"driver"`
	DSN    string `toml:"dsn" mapstructure:"dsn"`
}

var validNodeDBTypes = []string{"pebble", "bbolt", "leveldb", "memory"}

// Validate performs validation on the NodeDB configuration
func (n *NodeDBConfig) Validate() error {
	if n.Type == "" {
		return fmt.Errorf("node_db type is required")
	}
	if !containsFold(validNodeDBTypes, n.Type) {
		return fmt.Errorf("invalid node_db type: %s (valid options: %s)", n.Type, strings.Join(validNodeDBTypes, ", "))
	}
	if n.Path == "" && !n.IsMemory() {
		return fmt.Errorf("node_db path is required")
	}
	if n.CacheSize < 0 {
		return fmt.Errorf("cache_size must be non-negative, got %d", n.CacheSize)
	}
	return nil
}

// IsMemory reports whether ledger state is kept in memory only.
func (n *NodeDBConfig) IsMemory() bool {
	return strings.EqualFold(n.Type, "memory")
}

// Validate performs validation on the journal configuration
func (j *JournalConfig) Validate() error {
	switch j.Driver {
	case "":
		return nil
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("invalid journal driver: %s (valid options: sqlite, postgres)", j.Driver)
	}
	if j.DSN == "" {
		return fmt.Errorf("journal dsn is required when driver is %s", j.Driver)
	}
	return nil
}

// IsEnabled reports whether transactions are journaled.
func (j *JournalConfig) IsEnabled() bool {
	return j.Driver != ""
}

func containsFold(slice []string, item string) bool {
	for _, s := range slice {
		if strings.EqualFold(s, item) {
			return true
		}
	}
	return false
}
