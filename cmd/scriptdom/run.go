package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chrisuehlinger/scriptdom/internal/treedump"
)

func newRunCmd(a *app) *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run <page.html>",
		Short: "Run the scripts of a page and print the resulting tree",
		Long: `Parses the page ("-" reads stdin), executes its inline scripts, runs
pending timers, and prints the document tree.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			strict, _ := cmd.Flags().GetBool("strict")
			if cmd.Flags().Changed("timeout") {
				a.cfg.Script.EventLoopTimeout, _ = cmd.Flags().GetDuration("timeout")
			}

			p, err := a.openPage(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			defer p.exec.Cleanup()

			if err := a.runScripts(cmd.Context(), p); err != nil {
				if strict {
					return fmt.Errorf("script errors: %w", err)
				}
				a.logger.Warn("page finished with script errors", "error", err)
			}

			fmt.Fprint(cmd.OutOrStdout(), treedump.Dump(p.doc))
			return nil
		},
	}

	runCmd.Flags().Bool("strict", false, "Fail when a script throws")
	runCmd.Flags().Duration("timeout", 0, "Override script.event_loop_timeout")
	return runCmd
}
