package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"

	"github.com/zjrosen/patchview/internal/diff"
	"github.com/zjrosen/patchview/internal/tracing"
)

// rowJSON is the JSON shape for one parsed row. Line numbers are null
// when the row has no position in that file.
type rowJSON struct {
	OldLine *int   `json:"old_line"`
	NewLine *int   `json:"new_line"`
	Kind    string `json:"kind"`
	Text    string `json:"text"`
}

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a diff and print the classified rows",
	Long: `Parses a unified diff from the given file or stdin and prints one
classified row per input line. Useful for piping diff structure into
other tools.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().Bool("json", false, "emit rows as a JSON array")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	provider, err := setupTracing()
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = provider.Shutdown(ctx)
	}()

	text, sourcePath, err := readDiffInput(cmd, args)
	if err != nil {
		return err
	}

	ctx, span := provider.Tracer().Start(context.Background(), tracing.SpanParse)
	rows := diff.Parse(text)
	span.SetAttributes(
		attribute.String(tracing.AttrSourcePath, sourcePath),
		attribute.Int(tracing.AttrRowCount, len(rows)),
	)
	span.End()

	out := cmd.OutOrStdout()

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		jsonRows := make([]rowJSON, len(rows))
		for i, row := range rows {
			jsonRows[i] = rowJSON{
				OldLine: row.OldLine,
				NewLine: row.NewLine,
				Kind:    row.Kind.String(),
				Text:    row.Text,
			}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(jsonRows)
	}

	_, renderSpan := provider.Tracer().Start(ctx, tracing.SpanRender)
	lines := diff.Render(rows)
	renderSpan.SetAttributes(attribute.Int(tracing.AttrRowCount, len(lines)))
	renderSpan.End()

	for _, line := range lines {
		if _, err := fmt.Fprintf(out, "%s|%s|%s|%s\n", line.OldGutter, line.NewGutter, line.Kind, line.Text); err != nil {
			return err
		}
	}
	return nil
}
