package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"bcf-backend/internal/simulation"
)

var errFallbackUsed = errors.New("analyzer unavailable; demo transcript shown")

func newRunCmd(g *globalFlags) *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the analyzer and print its transcript",
		Long: `Run invokes the analyzer without flags and prints its narrative output.
When no candidate succeeds the demo transcript is printed instead, with the
captured error on its note line.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := g.service(cmd)
			if err != nil {
				return err
			}
			out, src := svc.Transcript(cmd.Context())
			fmt.Fprint(cmd.OutOrStdout(), out)
			if !strings.HasSuffix(out, "\n") {
				fmt.Fprintln(cmd.OutOrStdout())
			}
			if strict && src == simulation.SourceFallback {
				return errFallbackUsed
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit non-zero when the demo transcript was used")
	return cmd
}
