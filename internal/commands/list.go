package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/spf13/cobra"

	"github.com/samestrin/drdementabase/internal/export"
	"github.com/samestrin/drdementabase/internal/playlist"
)

// ListResult is the output of the list command.
type ListResult struct {
	Count  int                    `json:"count"`
	Total  int                    `json:"total"`
	Tracks []playlist.TrackRecord `json:"tracks"`
}

// trackEnv is the environment a --where expression sees.
type trackEnv struct {
	Title  string
	Artist string
	Shows  []string
	First  string
	Plays  int
}

type listOptions struct {
	where string
	limit int
}

// newListCmd creates the list command
func newListCmd() *cobra.Command {
	opts := &listOptions{}
	cmd := &cobra.Command{
		Use:   "list <export>",
		Short: "List tracks from an export",
		Long: `Read an export and list its tracks, optionally filtered by an expression
over Title, Artist, Shows, First and Plays.

Examples:
  drdementabase list catalog.db --where 'Plays > 10'
  drdementabase list catalog.json --where 'Artist contains "Yankovic" && First < "1985-01-01"'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, args[0], opts)
		},
	}
	cmd.Flags().StringVarP(&opts.where, "where", "w", "", "Filter expression")
	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 0, "Maximum tracks to list (0 = all)")
	return cmd
}

func runList(cmd *cobra.Command, path string, opts *listOptions) error {
	records, err := export.ReadFile(cmd.Context(), path)
	if err != nil {
		return err
	}

	filtered, err := filterTracks(records, opts.where)
	if err != nil {
		return err
	}
	total := len(filtered)
	if opts.limit > 0 && len(filtered) > opts.limit {
		filtered = filtered[:opts.limit]
	}

	result := ListResult{Count: len(filtered), Total: total, Tracks: filtered}
	f := newFormatter(cmd)
	return f.Print(result, func(w io.Writer, data interface{}) {
		r := data.(ListResult)
		rows := make([][]string, len(r.Tracks))
		for i, t := range r.Tracks {
			rows[i] = []string{truncate(t.Title, 50), truncate(t.Artist, 40), strconv.Itoa(t.Plays()), t.First}
		}
		f.PrintTable([]string{"TITLE", "ARTIST", "PLAYS", "FIRST"}, rows)
		if !f.Minimal {
			fmt.Fprintf(w, "\n%d of %d tracks\n", r.Count, r.Total)
		}
	})
}

// filterTracks keeps the records for which the expression is true. An
// empty expression keeps everything.
func filterTracks(records []playlist.TrackRecord, where string) ([]playlist.TrackRecord, error) {
	out := make([]playlist.TrackRecord, 0, len(records))
	if strings.TrimSpace(where) == "" {
		return append(out, records...), nil
	}

	program, err := compileWhere(where)
	if err != nil {
		return nil, err
	}

	for _, r := range records {
		env := trackEnv{Title: r.Title, Artist: r.Artist, Shows: r.Shows, First: r.First, Plays: r.Plays()}
		v, err := expr.Run(program, env)
		if err != nil {
			return nil, fmt.Errorf("evaluation error: %v", err)
		}
		if v.(bool) {
			out = append(out, r)
		}
	}
	return out, nil
}

func compileWhere(where string) (*vm.Program, error) {
	program, err := expr.Compile(where, expr.Env(trackEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("invalid expression: %v", err)
	}
	return program, nil
}

func init() {
	rootCmd.AddCommand(newListCmd())
}
