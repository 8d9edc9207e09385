package cli

import (
	"github.com/cogai-labs/goldenthread/internal/output"
	"github.com/cogai-labs/goldenthread/internal/state"
	"github.com/cogai-labs/goldenthread/internal/validation"
	"github.com/spf13/cobra"
)

// NewLatestCommand creates the latest command
func NewLatestCommand() *cobra.Command {
	var local bool
	var persona string

	cmd := &cobra.Command{
		Use:   "latest",
		Short: "Show the most recent validation run",
		Long: `Show the most recent validation run.

By default the run is recovered from the validation service. With --local the
last snapshot saved by a previous submission is rendered instead, without
contacting the service.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			printer := output.NewPrinter()

			var run *validation.Run
			if local {
				run, err = state.NewStore(cfg.StateFile).Load()
				if err != nil {
					return err
				}
			} else {
				coordinator, cerr := newCoordinator(cmd.Context(), cfg)
				if cerr != nil {
					return cerr
				}
				run = coordinator.CurrentRun()
			}

			if run == nil {
				printer.Info("no prior run found")
				return nil
			}

			printer.RenderRun(run)
			if persona != "" {
				printer.RenderNarrative(validation.Persona(persona), run)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&local, "local", false, "Render the locally saved snapshot instead of asking the service")
	cmd.Flags().StringVar(&persona, "persona", "", "Also print the run narrative for a persona (elena or marcus)")

	return cmd
}
