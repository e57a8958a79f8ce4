package compare

import (
	"fmt"
	"strconv"
	"strings"

	"schema-sync/core/reconcile"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	styleHeader = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	styleCell   = lipgloss.NewStyle().Padding(0, 1)
	styleNumber = styleCell.Align(lipgloss.Right)
)

// entry is one rendered diff item.
type entry struct {
	name   string
	status reconcile.DiffStatus
	reason string
}

func entries[T any](cat reconcile.DiffCategory[T], name func(T) string) []entry {
	out := make([]entry, 0, cat.Len())
	for _, it := range cat.Items() {
		out = append(out, entry{name: name(it.Item), status: it.Status, reason: it.Reason})
	}
	return out
}

type section struct {
	title   string
	counts  reconcile.Counts
	entries []entry
}

func sections(r *reconcile.ComparisonResult) []section {
	return []section{
		{"Fields", r.Fields.Counts(), entries(r.Fields, func(f reconcile.FieldDefinition) string { return f.Name })},
		{"Issue types", r.IssueTypes.Counts(), entries(r.IssueTypes, func(t reconcile.IssueTypeDefinition) string { return t.Name })},
		{"Statuses", r.Statuses.Counts(), entries(r.Statuses, func(s reconcile.StatusDefinition) string { return s.Name })},
		{"Boards", r.Boards.Counts(), entries(r.Boards, func(b reconcile.BoardDefinition) string { return b.Name })},
	}
}

// RenderMarkdown renders a comparison as a markdown document with a summary
// table followed by one table per category. "New" means only in the left
// project, "skipped" only in the right one.
func RenderMarkdown(r *reconcile.ComparisonResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s vs %s\n\n", r.Left.Key, r.Right.Key)

	b.WriteString("| Category | Only in " + r.Left.Key + " | Different | Only in " + r.Right.Key + " | Same |\n")
	b.WriteString("|---|---:|---:|---:|---:|\n")
	all := sections(r)
	for _, s := range all {
		fmt.Fprintf(&b, "| %s | %d | %d | %d | %d |\n", s.title, s.counts.New, s.counts.Modified, s.counts.Skipped, s.counts.Unchanged)
	}

	for _, s := range all {
		fmt.Fprintf(&b, "\n## %s\n\n", s.title)
		if len(s.entries) == 0 {
			b.WriteString("_None._\n")
			continue
		}
		b.WriteString("| Name | Status | Details |\n|---|---|---|\n")
		for _, it := range s.entries {
			fmt.Fprintf(&b, "| %s | %s | %s |\n", escapeCell(it.name), it.status, escapeCell(it.reason))
		}
	}
	return b.String()
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

// RenderTable renders the per-category counts as a terminal table.
func RenderTable(r *reconcile.ComparisonResult) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Category", "Only in "+r.Left.Key, "Different", "Only in "+r.Right.Key, "Same").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styleHeader
			case col == 0:
				return styleCell
			default:
				return styleNumber
			}
		})

	for _, s := range sections(r) {
		t.Row(s.title,
			strconv.Itoa(s.counts.New),
			strconv.Itoa(s.counts.Modified),
			strconv.Itoa(s.counts.Skipped),
			strconv.Itoa(s.counts.Unchanged),
		)
	}
	return t.String()
}
