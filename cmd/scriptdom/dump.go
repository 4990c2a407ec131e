package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chrisuehlinger/scriptdom/internal/treedump"
)

func newDumpCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dump <page.html>",
		Short: "Print the document tree of a page without running scripts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.parse(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), treedump.Dump(doc))
			return nil
		},
	}
}
