// Package cli implements the goldenthread command-line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

// Execute runs the CLI
func Execute() error {
	return NewRootCommand().Execute()
}

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	var showVersion bool

	cmd := &cobra.Command{
		Use:   "goldenthread",
		Short: "Golden Thread - validation runs against the agentic platform",
		Long: `Golden Thread - validation runs against the agentic platform

goldenthread drives acceptance-test validation runs through the External
Validation Service: it submits a run against a reference dataset, tracks the
run lifecycle, and reports the resulting checks with their evidence
identifiers (trace, workflow, and session ids).

Examples:
  goldenthread datasets
  goldenthread run cogai-thread
  goldenthread run cogai-thread --mode acceptance --persona elena
  goldenthread latest
  goldenthread evidence --output evidence.json`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "goldenthread version "+version)
				return err
			}
			return cmd.Help()
		},
	}

	cmd.Flags().BoolVarP(&showVersion, "version", "v", false, "Show version information")

	cmd.AddCommand(NewDatasetsCommand())
	cmd.AddCommand(NewRunCommand())
	cmd.AddCommand(NewLatestCommand())
	cmd.AddCommand(NewEvidenceCommand())

	return cmd
}
