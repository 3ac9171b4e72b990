package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/samestrin/drdementabase/internal/corpus"
	"github.com/samestrin/drdementabase/internal/export"
)

// BuildResult is the summary of a build.
type BuildResult struct {
	Dir           string               `json:"dir"`
	Files         int                  `json:"files"`
	Ignored       int                  `json:"ignored,omitempty"`
	Tracks        int                  `json:"tracks"`
	Records       int                  `json:"records"`
	Unmatched     int                  `json:"unmatched"`
	Undated       int                  `json:"undated_shows"`
	UndatedTracks int                  `json:"undated_tracks"`
	Outputs       []export.Target      `json:"outputs"`
	Shows         []corpus.FileSummary `json:"shows,omitempty"`
	Elapsed       string               `json:"elapsed"`
}

type buildOptions struct {
	outputs  []string
	ignore   []string
	showList bool
	progress bool
}

// newBuildCmd creates the build command
func newBuildCmd() *cobra.Command {
	opts := &buildOptions{}
	cmd := &cobra.Command{
		Use:   "build [dir]",
		Short: "Build the track catalog from a directory of shows",
		Long: `Scan every .html show transcript in dir in name order, merge the
tracks into one catalog and write it to each output.

The directory defaults to $DRDEMENTABASE_CORPUS, then corpus_dir from the
config file. Outputs are chosen by extension: .yaml, .json, .db, .xlsx.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, args, opts)
		},
	}
	cmd.Flags().StringArrayVarP(&opts.outputs, "output", "o", nil, "Export target (repeatable)")
	cmd.Flags().StringArrayVar(&opts.ignore, "ignore", nil, "Extra ignore pattern (repeatable)")
	cmd.Flags().BoolVar(&opts.showList, "shows", false, "Include per-show summaries")
	cmd.Flags().BoolVar(&opts.progress, "progress", false, "Report progress even when stderr is not a terminal")
	return cmd
}

func runBuild(cmd *cobra.Command, args []string, opts *buildOptions) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	explicit := ""
	if len(args) > 0 {
		explicit = args[0]
	}
	dir := cfg.ResolveCorpusDir(explicit)
	if dir == "" {
		return errors.New("no corpus directory: pass one, set DRDEMENTABASE_CORPUS or corpus_dir")
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return fmt.Errorf("corpus directory not found: %s", dir)
	}

	ignore := append(append([]string{}, cfg.Ignore...), opts.ignore...)
	walker, err := corpus.NewWalker(dir, cfg.ScannerOverrides(), ignore, slog.Default())
	if err != nil {
		return err
	}
	if opts.progress || stderrIsTerminal() {
		walker.Progress = progressPrinter(cmd.ErrOrStderr())
	}

	start := time.Now()
	res, err := walker.Walk(cmd.Context())
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	records := res.Catalog.Records()
	targets, err := export.WriteAll(cmd.Context(), cfg.ResolveOutputs(opts.outputs), records)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	result := BuildResult{
		Dir:           dir,
		Files:         len(res.Files),
		Ignored:       res.Ignored,
		Tracks:        res.Tracks,
		Records:       len(records),
		Unmatched:     res.Unmatched,
		Undated:       res.Undated,
		UndatedTracks: res.Catalog.Undated(),
		Outputs:       targets,
		Elapsed:       time.Since(start).Round(time.Millisecond).String(),
	}
	if opts.showList {
		result.Shows = res.Files
	}

	return newFormatter(cmd).Print(result, printBuildText)
}

func printBuildText(w io.Writer, data interface{}) {
	r := data.(BuildResult)
	fmt.Fprintf(w, "Scanned %s shows in %s (%s)\n", humanize.Comma(int64(r.Files)), r.Dir, r.Elapsed)
	if r.Ignored > 0 {
		fmt.Fprintf(w, "Ignored %s files\n", humanize.Comma(int64(r.Ignored)))
	}
	fmt.Fprintf(w, "%s track plays, %s distinct tracks\n", humanize.Comma(int64(r.Tracks)), humanize.Comma(int64(r.Records)))
	if r.Unmatched > 0 {
		fmt.Fprintf(w, "%s unmatched track lines\n", humanize.Comma(int64(r.Unmatched)))
	}
	if r.Undated > 0 {
		fmt.Fprintf(w, "%s shows without an air date\n", humanize.Comma(int64(r.Undated)))
	}
	if r.UndatedTracks > 0 {
		fmt.Fprintf(w, "%s tracks never aired on a dated show\n", humanize.Comma(int64(r.UndatedTracks)))
	}
	for _, s := range r.Shows {
		fmt.Fprintf(w, "  %s  %s %s  %d tracks\n", s.Name, s.AirDate, s.Show, s.Tracks)
	}
	for _, t := range r.Outputs {
		fmt.Fprintf(w, "Wrote %s (%s, %s)\n", t.Path, t.Format, humanize.Bytes(uint64(t.Bytes)))
	}
}

func stderrIsTerminal() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// progressPrinter rewrites one status line per processed show.
func progressPrinter(w io.Writer) func(corpus.ProgressEvent) {
	return func(e corpus.ProgressEvent) {
		fmt.Fprintf(w, "\r[%d/%d] %-40s", e.Index, e.Total, truncate(e.Name, 40))
		if e.Index == e.Total {
			fmt.Fprintln(w)
		}
	}
}

// truncate shortens s to maxLen with ellipsis if needed.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func init() {
	rootCmd.AddCommand(newBuildCmd())
}
