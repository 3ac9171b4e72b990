package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/samestrin/drdementabase/internal/playlist"
)

// HeaderResult is the output of the header command.
type HeaderResult struct {
	Line   string              `json:"line"`
	Rule   string              `json:"rule"`
	Header playlist.ShowHeader `json:"header"`
}

// newHeaderCmd creates the header command
func newHeaderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "header <line>",
		Short: "Parse a show header line",
		Long: `Parse a show header line into title, episode number and air date, and
report which header form matched. Remaining arguments are joined with spaces.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			line := strings.Join(args, " ")
			h, err := playlist.ParseHeader(line)
			if err != nil {
				return err
			}
			result := HeaderResult{Line: line, Rule: playlist.MatchHeaderRule(line), Header: h}
			return newFormatter(cmd).Print(result, func(w io.Writer, data interface{}) {
				r := data.(HeaderResult)
				fmt.Fprintf(w, "RULE: %s\n", r.Rule)
				printHeaderFields(w, r.Header)
			})
		},
	}
}

func printHeaderFields(w io.Writer, h playlist.ShowHeader) {
	fmt.Fprintf(w, "SHOW: %s\n", h.Title)
	if h.HasNumber() {
		fmt.Fprintf(w, "NUMBER: %s\n", h.Number)
	}
	if h.RawDate != "" {
		fmt.Fprintf(w, "RAW DATE: %s\n", h.RawDate)
	}
	if h.HasDate() {
		fmt.Fprintf(w, "AIR DATE: %s\n", h.AirDate)
	}
}

func init() {
	rootCmd.AddCommand(newHeaderCmd())
}
