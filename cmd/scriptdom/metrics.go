package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
)

func newMetricsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "metrics <page.html>",
		Short: "Run a page and print the binding metrics in Prometheus text format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.openPage(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			defer p.exec.Cleanup()

			if err := a.runScripts(cmd.Context(), p); err != nil {
				a.logger.Warn("page finished with script errors", "error", err)
			}

			reg := prometheus.NewRegistry()
			if err := reg.Register(p.registry); err != nil {
				return err
			}
			families, err := reg.Gather()
			if err != nil {
				return err
			}
			for _, mf := range families {
				if _, err := expfmt.MetricFamilyToText(cmd.OutOrStdout(), mf); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
