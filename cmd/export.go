package cmd

import (
	"errors"
	"fmt"

	"schema-sync/feature/export"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	exportIssueTypes []string
	exportOut        string
	exportSave       bool
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export <PROJECT>",
	Short: "Export the schema of a project",
	Long:  `Snapshots the custom fields, issue types, workflow statuses and boards of a project as JSON.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		d, err := setup(ctx)
		if err != nil {
			return err
		}
		defer d.logger.Sync()

		cfg, err := d.exporter().Export(ctx, args[0], exportIssueTypes)
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportSave {
			if d.store == nil {
				return errors.New("--save requires storage")
			}
			key, err := d.store.Save(ctx, cfg)
			if err != nil {
				return fmt.Errorf("failed to save export: %w", err)
			}
			d.logger.Info("Export saved", zap.String("key", key))
		}

		if exportOut != "" {
			if err := export.WriteFile(exportOut, cfg); err != nil {
				return err
			}
			d.logger.Info("Export written", zap.String("file", exportOut))
			return nil
		}
		if exportSave {
			return nil
		}

		data, err := export.Encode(cfg)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(append(data, '\n'))
		return err
	},
}

func init() {
	exportCmd.Flags().StringSliceVar(&exportIssueTypes, "issue-types", nil, "Only export these issue type ids")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Write the snapshot to this file")
	exportCmd.Flags().BoolVar(&exportSave, "save", false, "Save the snapshot to storage")
	RootCmd.AddCommand(exportCmd)
}
