package cli

import (
	"fmt"
	"os"

	"github.com/cogai-labs/goldenthread/internal/output"
	"github.com/spf13/cobra"
)

// NewEvidenceCommand creates the evidence command
func NewEvidenceCommand() *cobra.Command {
	var runID string
	var outputPath string

	cmd := &cobra.Command{
		Use:   "evidence",
		Short: "Download the evidence bundle for a terminal run",
		Long: `Download the evidence bundle for a terminal run.

Without --run the bundle for the most recent run is fetched. The bundle is an
immutable JSON artifact; it is written to --output, or to stdout when no
output file is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			var bundle []byte
			if runID != "" {
				client, cerr := newClient(cfg)
				if cerr != nil {
					return cerr
				}
				bundle, err = client.FetchEvidence(cmd.Context(), runID)
			} else {
				coordinator, cerr := newCoordinator(cmd.Context(), cfg)
				if cerr != nil {
					return cerr
				}
				bundle, err = coordinator.FetchEvidenceBundle(cmd.Context())
			}
			if err != nil {
				return fmt.Errorf("failed to fetch evidence bundle: %w", err)
			}

			if outputPath == "" {
				_, err := cmd.OutOrStdout().Write(bundle)
				return err
			}

			if err := os.WriteFile(outputPath, bundle, 0644); err != nil {
				return fmt.Errorf("failed to write evidence bundle: %w", err)
			}
			output.NewPrinter().Success("evidence bundle written to %s", outputPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&runID, "run", "", "Fetch evidence for a specific run id instead of the latest run")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the bundle to a file instead of stdout")

	return cmd
}
