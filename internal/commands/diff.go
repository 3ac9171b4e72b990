package commands

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/samestrin/drdementabase/internal/export"
	"github.com/samestrin/drdementabase/internal/playlist"
)

// DiffResult is the output of the diff command.
type DiffResult struct {
	Identical bool     `json:"identical"`
	Removed   []string `json:"removed,omitempty"`
	Added     []string `json:"added,omitempty"`
}

// newDiffCmd creates the diff command
func newDiffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff <a> <b>",
		Short: "Compare two exports",
		Long: `Compare the tracks of two exports, in any supported formats. Each track is
rendered as one "title | artist | first | shows" line and the two renderings
are diffed line by line.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := export.ReadFile(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("cannot read %s: %w", args[0], err)
			}
			b, err := export.ReadFile(cmd.Context(), args[1])
			if err != nil {
				return fmt.Errorf("cannot read %s: %w", args[1], err)
			}

			result := diffRecords(a, b)
			if GlobalJSONOutput {
				return newFormatter(cmd).Print(result, nil)
			}

			out := cmd.OutOrStdout()
			if result.Identical {
				fmt.Fprintln(out, "IDENTICAL: Exports contain the same tracks")
				return nil
			}
			fmt.Fprintf(out, "--- %s\n", args[0])
			fmt.Fprintf(out, "+++ %s\n", args[1])
			for _, l := range result.Removed {
				fmt.Fprintf(out, "-%s\n", l)
			}
			for _, l := range result.Added {
				fmt.Fprintf(out, "+%s\n", l)
			}
			return nil
		},
	}
}

// renderRecords writes one canonical line per record.
func renderRecords(records []playlist.TrackRecord) string {
	var b strings.Builder
	for _, r := range records {
		fmt.Fprintf(&b, "%s | %s | %s | %s\n", r.Title, r.Artist, r.First, strings.Join(r.Shows, ","))
	}
	return b.String()
}

func diffRecords(a, b []playlist.TrackRecord) DiffResult {
	textA, textB := renderRecords(a), renderRecords(b)
	if textA == textB {
		return DiffResult{Identical: true}
	}

	dmp := diffmatchpatch.New()
	charsA, charsB, lines := dmp.DiffLinesToChars(textA, textB)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(charsA, charsB, false), lines)

	var result DiffResult
	for _, d := range diffs {
		var target *[]string
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			target = &result.Removed
		case diffmatchpatch.DiffInsert:
			target = &result.Added
		default:
			continue
		}
		for _, line := range strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n") {
			*target = append(*target, line)
		}
	}
	return result
}

func init() {
	rootCmd.AddCommand(newDiffCmd())
}
