package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"bcf-backend/internal/simulation"
)

type chartReport struct {
	Source           simulation.Source `json:"source" yaml:"source"`
	simulation.Logic `yaml:",inline"`
}

func newChartDataCmd(g *globalFlags) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "chart-data",
		Short: "Print sequence currents and trip determinations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "json" && format != "yaml" {
				return fmt.Errorf("unknown output format %q (want json or yaml)", format)
			}
			svc, err := g.service(cmd)
			if err != nil {
				return err
			}
			logic, src := svc.Logic(cmd.Context())
			report := chartReport{Source: src, Logic: logic}

			out := cmd.OutOrStdout()
			if format == "yaml" {
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(report); err != nil {
					return fmt.Errorf("encode yaml: %w", err)
				}
				return enc.Close()
			}
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		},
	}
	cmd.Flags().StringVarP(&format, "output", "o", "json", "Output format: json or yaml")
	return cmd
}
