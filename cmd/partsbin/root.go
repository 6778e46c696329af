// Root command for the partsbin CLI.
package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shelfware-labs/partsbin/internal/paths"
	"github.com/shelfware-labs/partsbin/internal/sqlite"
	"github.com/shelfware-labs/partsbin/pkg/types"
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagJSON      bool
	flagVerbose   bool
)

// configDataDir holds the data_dir value loaded from config.yaml.
// Set by PersistentPreRunE so all subcommands can use it.
var configDataDir string

// store is the open persistence layer, available to every subcommand
// after PersistentPreRunE.
var store *sqlite.Store

// logger is the process logger, nop until the root pre-run builds it.
var logger = zap.NewNop()

var rootCmd = &cobra.Command{
	Use:   "partsbin",
	Short: "Partsbin is a workshop inventory tracker",
	Long: `Partsbin tracks workshop inventory: items, stock and cost history,
bills of materials, item templates, and cached vendor prices. All data
lives in an embedded database serialized into a local key-value store.`,
	Version:            version,
	PersistentPreRunE:  openStore,
	PersistentPostRunE: closeStore,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: $(CWD)/.partsbin)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: $(CWD)/.partsbin-db)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "enable debug logging")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(itemCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(bomCmd)
	rootCmd.AddCommand(accountCmd)
	rootCmd.AddCommand(vendorCmd)
	rootCmd.AddCommand(statsCmd)
}

// openStore builds the logger, loads config, and opens the store. The
// version command runs without touching storage.
func openStore(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	var err error
	logger, err = buildLogger(flagVerbose)
	if err != nil {
		return err
	}

	configDir, err := paths.ResolveConfigDir(flagConfigDir)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(configDir)
	if err != nil {
		return err
	}
	configDataDir = cfg.GetString(cfgKeyDataDir)

	dataDir, err := paths.ResolveDataDir(flagDataDir, configDataDir)
	if err != nil {
		return err
	}

	store, err = sqlite.Open(types.Config{
		DataDir:           dataDir,
		SnapshotKey:       cfg.GetString(cfgKeySnapshotKey),
		VendorCacheMaxAge: cfg.GetDuration(cfgKeyVendorCacheMaxAge),
	}, logger)
	return err
}

// closeStore releases the store and flushes the logger.
func closeStore(cmd *cobra.Command, args []string) error {
	defer logger.Sync() //nolint:errcheck
	if store == nil {
		return nil
	}
	return store.Close()
}

// buildLogger returns the process logger: production config, debug level
// when verbose.
func buildLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}
