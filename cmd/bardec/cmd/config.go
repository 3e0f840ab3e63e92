package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/strichware/bardec/internal/config"
)

// configCmd groups configuration inspection and generation commands.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and generate configuration",
}

// configShowCmd prints the resolved configuration.
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the resolved configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))

		if used := GetConfigLoader().GetConfigFileUsed(); used != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "\nConfig file: %s\n", used)
		}
		return nil
	},
}

// configInitCmd writes a default configuration file.
var configInitCmd = &cobra.Command{
	Use:   "init [file]",
	Short: "Write a default configuration file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := ""
		if len(args) > 0 {
			filename = args[0]
		}
		if err := config.GenerateDefaultConfigFile(filename); err != nil {
			return fmt.Errorf("failed to write config file: %w", err)
		}
		if filename == "" {
			filename = "bardec.yaml"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", filename)
		return nil
	},
}

// configPathsCmd lists the configuration search paths.
var configPathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "List configuration search paths",
	Run: func(cmd *cobra.Command, args []string) {
		for _, p := range config.GetConfigSearchPaths() {
			fmt.Fprintln(cmd.OutOrStdout(), p)
		}
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathsCmd)
}
