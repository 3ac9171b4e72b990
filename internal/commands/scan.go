package commands

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/samestrin/drdementabase/internal/corpus"
	"github.com/samestrin/drdementabase/internal/playlist"
)

// ScanResult is the output of the scan command.
type ScanResult struct {
	File    string                 `json:"file"`
	Scan    *playlist.ShowScan     `json:"scan"`
	Records []playlist.TrackRecord `json:"records"`
}

// newScanCmd creates the scan command
func newScanCmd() *cobra.Command {
	var showRecords bool
	cmd := &cobra.Command{
		Use:   "scan <file>",
		Short: "Scan one show file",
		Long: `Scan a single show transcript and print its header, the track lines it
recognized and any track lines that could not be parsed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			scanner := &playlist.Scanner{Overrides: cfg.ScannerOverrides(), Logger: slog.Default()}
			scan, err := corpus.ScanFile(scanner, args[0])
			if err != nil {
				return err
			}

			result := ScanResult{File: args[0], Scan: scan}
			if showRecords {
				result.Records = scan.Catalog.Records()
			}
			return newFormatter(cmd).Print(result, printScanText)
		},
	}
	cmd.Flags().BoolVar(&showRecords, "records", false, "Also print the deduplicated records")
	return cmd
}

func printScanText(w io.Writer, data interface{}) {
	r := data.(ScanResult)
	s := r.Scan

	fmt.Fprintf(w, "FILE: %s\n", r.File)
	if s.Header != nil {
		printHeaderFields(w, *s.Header)
	} else {
		fmt.Fprintln(w, "SHOW: (no header)")
	}
	if s.HeaderCount > 1 {
		fmt.Fprintf(w, "HEADERS: %d (using the last)\n", s.HeaderCount)
	}
	if s.SpecialTopic != "" {
		fmt.Fprintf(w, "TOPIC: %s\n", s.SpecialTopic)
	}

	fmt.Fprintf(w, "TRACKS: %d\n", len(s.Tracks))
	for _, t := range s.Tracks {
		line := fmt.Sprintf("  %4d  %s", t.LineNo, t.Title)
		if t.Note != "" {
			line += " (" + t.Note + ")"
		}
		if t.Artist != "" {
			line += " - " + t.Artist
		}
		fmt.Fprintln(w, line)
	}

	if len(s.Unmatched) > 0 {
		fmt.Fprintf(w, "UNMATCHED: %d\n", len(s.Unmatched))
		for _, u := range s.Unmatched {
			fmt.Fprintf(w, "  %4d  %s\n", u.LineNo, u.Line)
		}
	}

	if len(r.Records) > 0 {
		fmt.Fprintf(w, "RECORDS: %d\n", len(r.Records))
		for _, rec := range r.Records {
			fmt.Fprintf(w, "  %s\t%s\t%s\n", rec.Title, rec.Artist, rec.First)
		}
	}
}

func init() {
	rootCmd.AddCommand(newScanCmd())
}
