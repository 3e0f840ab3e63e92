// Package cmd implements the bardec command-line interface.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/strichware/bardec/internal/config"
)

var (
	// Global configuration loader.
	configLoader *config.Loader
	// Global configuration.
	globalConfig *config.Config
	// Configuration file path.
	cfgFile string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "bardec",
	Short: "Barcode recognition for product images",
	Long: `bardec decodes 1-D product barcodes (EAN-13, EAN-8, UPC-A, Code 128)
and QR codes from images.

The decoder searches over image transforms, scan lines, and threshold
methods until a checksum-valid symbol is found, within a bounded budget.

Examples:
  bardec decode shelf.png
  bardec decode --format json *.jpg
  bardec serve --port 8080`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// GetRootCommand returns the root command for testing purposes.
func GetRootCommand() *cobra.Command {
	return rootCmd
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is search in ., $HOME, $HOME/.config/bardec, /etc/bardec)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output (equivalent to --log-level=debug)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if globalConfig == nil {
			initConfig()
		}

		var logLevel slog.Level
		if globalConfig.Verbose {
			logLevel = slog.LevelDebug
		} else {
			switch globalConfig.LogLevel {
			case "debug":
				logLevel = slog.LevelDebug
			case "warn":
				logLevel = slog.LevelWarn
			case "error":
				logLevel = slog.LevelError
			default:
				logLevel = slog.LevelInfo
			}
		}

		logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel,
		}))
		slog.SetDefault(logger)
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	configLoader = config.NewLoader()

	var err error
	if cfgFile != "" {
		globalConfig, err = configLoader.LoadWithFile(cfgFile)
	} else {
		globalConfig, err = configLoader.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
}

// GetConfig returns the global configuration with current flag bindings
// applied.
func GetConfig() *config.Config {
	if globalConfig == nil {
		initConfig()
	}

	// Re-unmarshal so flags bound after the initial load are reflected.
	var cfg config.Config
	if err := GetConfigLoader().GetViper().Unmarshal(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error unmarshaling updated configuration: %v\n", err)
		return globalConfig
	}
	return &cfg
}

// GetConfigLoader returns the global configuration loader.
func GetConfigLoader() *config.Loader {
	if configLoader == nil {
		configLoader = config.NewLoader()
	}
	return configLoader
}
