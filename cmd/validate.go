package cmd

import (
	"encoding/json"
	"errors"

	"schema-sync/feature/export"

	"github.com/spf13/cobra"
)

var (
	validateConfig string
	validateTarget string
	validateJSON   bool
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a snapshot against a target project",
	Long:  `Runs the compatibility checks of a snapshot against a target project and prints the planned diff. Exits non-zero when the snapshot is incompatible.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		d, err := setup(ctx)
		if err != nil {
			return err
		}
		defer d.logger.Sync()

		source, err := export.Open(ctx, d.store, validateConfig)
		if err != nil {
			return err
		}
		result, err := d.validator().Validate(ctx, source, validateTarget)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if validateJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(result); err != nil {
				return err
			}
		} else {
			printValidation(out, result)
			if result.Diff != nil {
				printDiffSummary(out, result.Diff)
			}
		}

		if !result.Compatible {
			return errors.New("configuration is not compatible with the target project")
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().StringVarP(&validateConfig, "config", "c", "", "Snapshot file or storage key")
	validateCmd.Flags().StringVarP(&validateTarget, "target", "t", "", "Target project key")
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "Print the validation result as JSON")
	_ = validateCmd.MarkFlagRequired("config")
	_ = validateCmd.MarkFlagRequired("target")
	RootCmd.AddCommand(validateCmd)
}
