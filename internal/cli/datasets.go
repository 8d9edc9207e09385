package cli

import (
	"github.com/cogai-labs/goldenthread/internal/output"
	"github.com/spf13/cobra"
)

// NewDatasetsCommand creates the datasets command
func NewDatasetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "datasets",
		Short: "List the reference datasets available to validate against",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			client, err := newClient(cfg)
			if err != nil {
				return err
			}

			datasets, err := client.ListDatasets(cmd.Context())
			if err != nil {
				return err
			}

			printer := output.NewPrinter()
			if len(datasets) == 0 {
				printer.Warning("no datasets available")
				return nil
			}
			for _, d := range datasets {
				printer.RenderDataset(d)
			}
			return nil
		},
	}
}
