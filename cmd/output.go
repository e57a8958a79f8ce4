package cmd

import (
	"fmt"
	"io"
	"strconv"

	"schema-sync/core/reconcile"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	styleHeader  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	styleCell    = lipgloss.NewStyle().Padding(0, 1)
	styleSuccess = styleCell.Foreground(lipgloss.Color("2"))
	styleWarning = styleCell.Foreground(lipgloss.Color("3"))
	styleError   = styleCell.Foreground(lipgloss.Color("1"))
)

// statusStyle colors a status cell.
func statusStyle(status string) lipgloss.Style {
	switch status {
	case string(reconcile.CheckPass), string(reconcile.StepSuccess):
		return styleSuccess
	case string(reconcile.CheckWarning), string(reconcile.StepPartial), string(reconcile.StepSkipped):
		return styleWarning
	case string(reconcile.CheckFail), string(reconcile.StepError):
		return styleError
	default:
		return styleCell
	}
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(headers...)
}

// statusTable styles the header row and colors the given status column.
func statusTable(rows [][]string, statusCol int, headers ...string) string {
	t := newTable(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			if col == statusCol {
				return statusStyle(rows[row][col])
			}
			return styleCell
		})
	return t.String()
}

func printValidation(w io.Writer, v *reconcile.ValidationResult) {
	fmt.Fprintf(w, "Validation %s -> %s: compatible=%t severity=%s\n",
		v.SourceProject.Key, v.TargetProject.Key, v.Compatible, v.Severity)

	rows := make([][]string, 0, len(v.Checks))
	for _, c := range v.Checks {
		details := ""
		for i, d := range c.Details {
			if i > 0 {
				details += "\n"
			}
			details += d
		}
		rows = append(rows, []string{c.Name, string(c.Status), c.Message, details})
	}
	fmt.Fprintln(w, statusTable(rows, 1, "Check", "Status", "Message", "Details"))
}

func printDiffSummary(w io.Writer, diff *reconcile.ConfigurationDiff) {
	rows := [][]string{
		countsRow("Fields", diff.Fields.Counts()),
		countsRow("Issue types", diff.IssueTypes.Counts()),
		countsRow("Workflows", diff.Workflows.Counts()),
		countsRow("Boards", diff.Boards.Counts()),
	}
	t := newTable("Category", "New", "Modified", "Unchanged").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			return styleCell
		})
	fmt.Fprintln(w, t.String())
}

func countsRow(name string, c reconcile.Counts) []string {
	return []string{name, strconv.Itoa(c.New), strconv.Itoa(c.Modified), strconv.Itoa(c.Unchanged)}
}

func printApplyResult(w io.Writer, result *reconcile.ApplyResult) {
	rows := [][]string{}
	for _, step := range result.Results {
		for _, it := range step.Results {
			reason := it.Reason
			if it.Error != "" {
				reason += ": " + it.Error
			}
			rows = append(rows, []string{step.Step, it.Name, string(it.Status), reason})
		}
	}
	if len(rows) > 0 {
		fmt.Fprintln(w, statusTable(rows, 2, "Step", "Item", "Status", "Reason"))
	}

	steps := make([][]string, 0, len(result.Results))
	for _, step := range result.Results {
		steps = append(steps, []string{step.Step, string(step.Status), strconv.Itoa(len(step.Results))})
	}
	fmt.Fprintln(w, statusTable(steps, 1, "Step", "Status", "Items"))

	if result.BackupPath != "" {
		fmt.Fprintf(w, "Backup: %s\n", result.BackupPath)
	}
	for _, m := range result.ManualSteps {
		fmt.Fprintf(w, "- %s\n", m)
	}
	fmt.Fprintf(w, "Success: %t\n", result.Success)
}
