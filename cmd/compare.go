package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"schema-sync/feature/compare"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

var (
	compareFormat string
	compareOut    string
)

// compareCmd represents the compare command
var compareCmd = &cobra.Command{
	Use:   "compare <LEFT> <RIGHT>",
	Short: "Compare the schemas of two projects",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		d, err := setup(ctx)
		if err != nil {
			return err
		}
		defer d.logger.Sync()

		result, err := d.comparer().Compare(ctx, args[0], args[1])
		if err != nil {
			return err
		}

		var report string
		switch compareFormat {
		case "json":
			data, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}
			report = string(data) + "\n"
		case "markdown":
			report = compare.RenderMarkdown(result)
		case "table":
			report = compare.RenderTable(result) + "\n"
		default:
			return fmt.Errorf("unknown format %q", compareFormat)
		}

		if compareOut != "" {
			return os.WriteFile(compareOut, []byte(report), 0o644)
		}
		if compareFormat == "markdown" {
			report = renderMarkdown(report)
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), report)
		return err
	},
}

// renderMarkdown styles markdown for the terminal, falling back to the raw text.
func renderMarkdown(markdown string) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(120),
	)
	if err != nil {
		return markdown
	}
	rendered, err := renderer.Render(markdown)
	if err != nil {
		return markdown
	}
	return rendered
}

func init() {
	compareCmd.Flags().StringVarP(&compareFormat, "format", "f", "table", "Output format: table, markdown or json")
	compareCmd.Flags().StringVarP(&compareOut, "out", "o", "", "Write the report to this file")
	RootCmd.AddCommand(compareCmd)
}
