package config

import "github.com/spf13/viper"

const (
	// DefaultProgramID is the program ID of a fresh deployment.
	DefaultProgramID = "5641554C54000000000000000000000000000000000000000000000000000001"

	// DefaultMinimumBalance is the smallest balance an empty account may
	// keep on the host ledger.
	DefaultMinimumBalance = 890880

	DefaultBaseFee = 5000
)

// setDefaults sets all default values
func setDefaults(v *viper.Viper) {
	v.SetDefault("vault.program_id", DefaultProgramID)
	v.SetDefault("vault.minimum_balance", DefaultMinimumBalance)
	v.SetDefault("vault.base_fee", DefaultBaseFee)

	v.SetDefault("node_db.type", "pebble")
	v.SetDefault("node_db.path", "./data/ledger")
	v.SetDefault("node_db.cache_size", 4096)

	v.SetDefault("journal.driver", "")
	v.SetDefault("journal.dsn", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
}
