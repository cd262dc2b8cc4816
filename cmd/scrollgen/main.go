// scrollgen is a toolchain for deterministic side-scroller world
// generation: it validates WGF content catalogs, simulates generation
// runs, and manages save slots.
//
// Usage:
//
//	scrollgen list               - List frames in the catalog
//	scrollgen validate           - Validate the catalog and print statistics
//	scrollgen simulate           - Run a generation simulation
//	scrollgen inspect            - Interactive catalog browser
//	scrollgen saves list|delete  - Manage save slots
//
// Global flags:
//
//	--core <dir>           - Core content directory
//	--user <dir>           - User content directory
//	--global-config <path> - Catalog global config JSON
//	--db <path>            - Save database path
//	--config <path>        - Tool settings YAML
//	--verbose              - Debug logging
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/scrollgen/internal/config"
	"github.com/vovakirdan/scrollgen/internal/content"
)

var (
	// Global flags
	flagCore         string
	flagUser         string
	flagGlobalConfig string
	flagDBPath       string
	flagConfig       string
	flagVerbose      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "scrollgen",
	Short: "Deterministic world generation toolchain",
	Long: `scrollgen generates side-scroller worlds from WGF content catalogs.
The same seed always produces the same world, on any machine.

Available commands:
  list     - Show all frames in the catalog
  validate - Validate the catalog and print load statistics
  simulate - Run endless or fixed-level generation and print spawn events
  inspect  - Browse the catalog interactively
  saves    - Manage save slots

Examples:
  scrollgen list
  scrollgen validate --core ./content/core
  scrollgen simulate --seed 42 --frames 30
  scrollgen simulate --level level_cave_run --save cave1
  scrollgen saves list`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagCore, "core", "", "Core content directory (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagUser, "user", "", "User content directory (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagGlobalConfig, "global-config", "", "Catalog global config JSON (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Save database path (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Tool settings YAML")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Debug logging")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(savesCmd)
}

// newLogger builds the CLI logger honoring --verbose and the configured
// level.
func newLogger(settings config.Settings) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		Prefix:          "scrollgen",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
		return logger
	}
	if level, err := log.ParseLevel(settings.Logging.Level); err == nil {
		logger.SetLevel(level)
	}
	return logger
}

// logSink adapts the CLI logger to the core packages' log callback.
func logSink(logger *log.Logger) content.LogFunc {
	return func(level content.LogLevel, msg string) {
		switch level {
		case content.LogWarning:
			logger.Warn(msg)
		case content.LogError, content.LogFatal:
			logger.Error(msg)
		default:
			logger.Debug(msg)
		}
	}
}

// loadSettings loads tool settings and applies global flag overrides.
func loadSettings() (config.Settings, error) {
	settings, err := config.Load(flagConfig)
	if err != nil {
		return settings, err
	}
	if flagCore != "" {
		settings.Content.CoreDir = flagCore
	}
	if flagUser != "" {
		settings.Content.UserDir = flagUser
	}
	if flagGlobalConfig != "" {
		settings.Content.GlobalConfig = flagGlobalConfig
	}
	if flagDBPath != "" {
		settings.Database.Path = flagDBPath
	}
	return settings, nil
}

// loadCatalog loads the global config and the WGF catalog from the
// configured directories.
func loadCatalog(settings config.Settings, logger *log.Logger) *content.Loader {
	loader := content.NewLoader(logSink(logger))
	loader.LoadGlobalConfig(settings.Content.GlobalConfig)
	loader.LoadFromDirectories(settings.Content.CoreDir, settings.Content.UserDir)
	return loader
}
