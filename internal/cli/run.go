package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cogai-labs/goldenthread/internal/output"
	"github.com/cogai-labs/goldenthread/internal/validation"
	"github.com/spf13/cobra"
)

// NewRunCommand creates the run command that submits a validation run
func NewRunCommand() *cobra.Command {
	var mode string
	var persona string

	cmd := &cobra.Command{
		Use:   "run <dataset-id>",
		Short: "Submit a validation run for a dataset",
		Long: `Submit a validation run for a dataset and report the result.

The dataset id must exist in the service's dataset catalog; an unknown id is
rejected locally before anything is sent. A run whose checks fail is still a
completed run - the command reports FAIL and exits non-zero, which is not the
same as a submission error.

Examples:
  goldenthread run cogai-thread
  goldenthread run cogai-thread --mode acceptance
  goldenthread run cogai-thread --persona marcus`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			printer := output.NewPrinter()

			// Handle interrupt signals. Cancelling only abandons the
			// request; the backend cannot be told to stop a run.
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(sigChan)
			go func() {
				<-sigChan
				printer.Warning("\nInterrupt received, abandoning the request (the run itself cannot be cancelled)")
				cancel()
			}()

			coordinator, err := newCoordinator(ctx, cfg)
			if err != nil {
				return err
			}

			req := validation.RunRequest{
				DatasetID: args[0],
				Mode:      validation.Mode(mode),
			}

			if cfg.IsVerbose() {
				printer.Step("Submitting %s run for dataset %s", mode, req.DatasetID)
			}

			run, err := coordinator.SubmitRun(ctx, req)
			if err != nil {
				return fmt.Errorf("run submission failed: %w", err)
			}

			printer.RenderRun(run)
			if persona != "" {
				printer.RenderNarrative(validation.Persona(persona), run)
			}

			// A FAIL payload is a completed run; signal it through the
			// exit code for CI callers.
			if run.Summary.Status == validation.StatusFail {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", string(validation.ModeDeterministic),
		"Run mode: deterministic (stubbed backend) or acceptance (live backend)")
	cmd.Flags().StringVar(&persona, "persona", "",
		"Also print the run narrative for a persona (elena or marcus)")

	return cmd
}
