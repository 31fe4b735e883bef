package cli

import (
	"fmt"
	"os"

	"github.com/en-tropyc/blueshift/internal/config"
	"github.com/en-tropyc/blueshift/internal/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
	debug      bool
	quiet      bool

	cfg *config.Config
	log zerolog.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "vaultd",
	Short: "vaultd - single-owner custody vaults",
	Long: `vaultd keeps native value in custody vaults. Every owner has exactly one
vault address, derived from the owner's account. A deposit creates the vault
and a withdrawal returns the whole balance and removes it.`,
	Version:           "0.1.0-dev",
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "conf", "", "configuration file path (default ./"+config.DefaultConfigPath+" when present)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable normally suppressed debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "log errors only")
}

// loadSettings reads the configuration and builds the logger.
func loadSettings(cmd *cobra.Command, _ []string) error {
	var err error
	if configFile != "" {
		cfg, err = config.LoadConfig(configFile)
	} else {
		cfg, err = config.LoadDefaultConfig()
	}
	if err != nil {
		return err
	}

	level := cfg.Log.Level
	switch {
	case debug:
		level = "debug"
	case quiet:
		level = "error"
	}
	log = logger.New(level, cfg.Log.Pretty)
	return nil
}
