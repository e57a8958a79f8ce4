package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"schema-sync/feature/apply"

	"github.com/spf13/cobra"
)

var historyLimit int

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history [PROJECT]",
	Short: "List recorded apply runs",
	Long:  `Lists the most recent apply runs that used the project as source or target. Requires DATABASE_ENABLED.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		defer d.logger.Sync()
		if d.history == nil {
			return errors.New("apply history is not enabled")
		}

		project := ""
		if len(args) == 1 {
			project = args[0]
		}
		runs, err := d.history.List(cmd.Context(), project, historyLimit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(runs) == 0 {
			fmt.Fprintln(out, "No apply runs recorded.")
			return nil
		}
		rows := make([][]string, 0, len(runs))
		for _, r := range runs {
			rows = append(rows, []string{
				r.CreatedAt.Format("2006-01-02 15:04:05"),
				r.SourceProject,
				r.TargetProject,
				strconv.FormatBool(r.DryRun),
				runStatus(r),
				r.BackupPath,
			})
		}
		fmt.Fprintln(out, statusTable(rows, 4, "Created", "Source", "Target", "Dry run", "Status", "Backup"))
		return nil
	},
}

func runStatus(r apply.ApplyRun) string {
	if r.Success {
		return "success"
	}
	return "error"
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", apply.DefaultHistoryLimit, "Number of runs to show")
	RootCmd.AddCommand(historyCmd)
}
