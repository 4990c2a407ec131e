package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/chrisuehlinger/scriptdom/internal/config"
	"github.com/chrisuehlinger/scriptdom/internal/logging"
)

// app holds the state shared by every subcommand once flags are parsed.
type app struct {
	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "scriptdom",
		Short: "scriptdom runs the scripts of an HTML page against a live document tree",
		Long: `scriptdom parses an HTML page, executes its inline scripts and event
handlers with a JavaScript engine, and prints the resulting document tree.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.configure(cmd)
		},
	}

	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", config.DefaultPath, "Path to the scriptdom YAML configuration")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "", "Log format (text, json)")

	rootCmd.AddCommand(
		newRunCmd(a),
		newDumpCmd(a),
		newClickCmd(a),
		newMetricsCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

// configure loads the configuration file and applies flag overrides.
func (a *app) configure(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level, _ = cmd.Flags().GetString("log-level")
	}
	if cmd.Flags().Changed("log-format") {
		cfg.Log.Format, _ = cmd.Flags().GetString("log-format")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logging.NewWithWriter(cmd.ErrOrStderr(), cfg.SlogLevel(), cfg.LogFormat())
	return nil
}
