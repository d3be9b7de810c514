package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/linstory/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect linstory configuration",
		Long: `View the effective configuration.

Configuration is read from ~/.linstory/config.yaml (or --config), then
overridden by LINSTORY_* environment variables.

Examples:
  linstory config list           # Show all settings
  linstory config list --json    # Same, as JSON
  linstory config path           # Show the default file location`,
	}

	cmd.AddCommand(newConfigListCmd(), newConfigPathCmd())

	return cmd
}

func newConfigListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all configuration settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			path, _ := cmd.Flags().GetString("config")

			cfg, err := config.LoadFrom(path)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				return json.NewEncoder(out).Encode(cfg)
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			_, err = out.Write(data)
			return err
		},
	}
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the default config file location",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := config.Path()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), p)
			return nil
		},
	}
}
