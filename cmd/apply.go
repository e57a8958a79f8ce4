package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"schema-sync/core/reconcile"
	"schema-sync/feature/apply"
	"schema-sync/feature/export"

	"github.com/spf13/cobra"
)

var (
	applyConfig   string
	applyTarget   string
	applyDryRun   bool
	applyContexts bool
	applyOptions  bool
	applyYes      bool
)

// applyCmd represents the apply command
var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Recreate the missing schema of a snapshot in a target project",
	Long: `Validates the snapshot against the target, shows the planned changes and,
after confirmation, creates the missing fields, issue types, statuses and
boards. A backup record is written before anything changes.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		d, err := setup(ctx)
		if err != nil {
			return err
		}
		defer d.logger.Sync()

		source, err := export.Open(ctx, d.store, applyConfig)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		validated, err := d.validator().Validate(ctx, source, applyTarget)
		if err != nil {
			return err
		}
		printValidation(out, validated)
		if !validated.Compatible {
			return apply.ErrIncompatible
		}
		printDiffSummary(out, validated.Diff)

		if !validated.Diff.HasChanges() {
			fmt.Fprintln(out, "Nothing to apply.")
			return nil
		}
		if !applyDryRun && !applyYes {
			ok, err := confirm(cmd.InOrStdin(), out, fmt.Sprintf("Apply these changes to %s?", applyTarget))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(out, "Aborted.")
				return nil
			}
		}

		result, _, err := d.applier().Apply(ctx, apply.Request{
			Source:    source,
			TargetKey: applyTarget,
			Diff:      validated.Diff,
			Options: reconcile.ApplyOptions{
				DryRun:         applyDryRun,
				UpdateContexts: applyContexts,
				UpdateOptions:  applyOptions,
			},
		})
		if err != nil {
			return err
		}
		printApplyResult(out, result)
		if !result.Success {
			return errors.New("apply finished with errors")
		}
		return nil
	},
}

// confirm asks a yes/no question; only "yes" or "y" confirms.
func confirm(in io.Reader, out io.Writer, question string) (bool, error) {
	fmt.Fprintf(out, "%s Type 'yes' to continue: ", question)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "yes", "y":
		return true, nil
	default:
		return false, nil
	}
}

func init() {
	applyCmd.Flags().StringVarP(&applyConfig, "config", "c", "", "Snapshot file or storage key")
	applyCmd.Flags().StringVarP(&applyTarget, "target", "t", "", "Target project key")
	applyCmd.Flags().BoolVar(&applyDryRun, "dry-run", false, "Report what would change without changing anything")
	applyCmd.Flags().BoolVar(&applyContexts, "contexts", true, "Bind created fields to the target project")
	applyCmd.Flags().BoolVar(&applyOptions, "options", true, "Add missing select options")
	applyCmd.Flags().BoolVarP(&applyYes, "yes", "y", false, "Skip the confirmation prompt")
	_ = applyCmd.MarkFlagRequired("config")
	_ = applyCmd.MarkFlagRequired("target")
	RootCmd.AddCommand(applyCmd)
}
