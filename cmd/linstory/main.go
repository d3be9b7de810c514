package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/linstory/engine"
	"github.com/katalvlaran/linstory/internal/config"
	"github.com/katalvlaran/linstory/internal/logging"
)

var version = "0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "linstory",
		Short: "Linear algebra with explanations",
		Long: `linstory evaluates linear-algebra operations (vector addition, matrix
transforms, dot products, linear systems, determinants, inverses,
eigenpairs, least-squares lines and SVD compression) and explains the
geometric meaning of each result.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	rootCmd.PersistentFlags().String("config", "", "Config file (default ~/.linstory/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: info, debug, trace (overrides config)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newComputeCmd(),
		newBatchCmd(),
		newPlotCmd(),
		newConfigCmd(),
	)

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]string{"version": version})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "linstory version %s\n", version)
			return nil
		},
	}
}

// host is what every evaluating command needs: validated config, an
// engine built from it and the host logger.
type host struct {
	cfg    *config.Config
	engine *engine.Engine
	log    *slog.Logger
}

func loadRuntime(cmd *cobra.Command) (*host, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadFrom(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.Logging.Level = lvl
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &host{
		cfg:    cfg,
		engine: engine.New(cfg.EngineOptions()...),
		log:    logging.NewLogger(cfg.Logging.Level, cmd.ErrOrStderr()),
	}, nil
}

// readInput returns the contents of path, or of stdin when path is "" or "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return data, nil
}
