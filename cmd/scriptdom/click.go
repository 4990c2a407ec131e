package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chrisuehlinger/scriptdom/internal/treedump"
)

func newClickCmd(a *app) *cobra.Command {
	clickCmd := &cobra.Command{
		Use:   "click <page.html>",
		Short: "Click elements of a page and print the resulting tree",
		Long: `Runs the page like "run", then clicks each --id in order. A click
runs the element's onclick handler and, unless the handler cancels it, the
default action of the control.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, _ := cmd.Flags().GetStringSlice("id")
			if len(ids) == 0 {
				return fmt.Errorf("at least one --id is required")
			}

			p, err := a.openPage(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			defer p.exec.Cleanup()

			if err := a.runScripts(cmd.Context(), p); err != nil {
				a.logger.Warn("page finished with script errors", "error", err)
			}

			for _, id := range ids {
				el := p.doc.GetElementByID(id)
				if el == nil {
					return fmt.Errorf("no element with id %q", id)
				}
				proceed, err := p.exec.Click(el)
				if err != nil {
					a.logger.Warn("click handler failed", "id", id, "error", err)
				}
				a.logger.Info("clicked", "id", id, "default_action", proceed)
			}
			if err := a.runEventLoop(cmd.Context(), p); err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), treedump.Dump(p.doc))
			return nil
		},
	}

	clickCmd.Flags().StringSlice("id", nil, "ID of an element to click (repeatable)")
	return clickCmd
}
