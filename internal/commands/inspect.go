package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/samestrin/drdementabase/internal/corpus"
)

// InspectResult is the output of the inspect command.
type InspectResult struct {
	Files   []*corpus.Inspection `json:"files"`
	Flagged int                  `json:"flagged"`
}

// newInspectCmd creates the inspect command
func newInspectCmd() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "inspect <dir|file>",
		Short: "Check show files for header and track marker problems",
		Long: `Parse show transcripts as HTML and flag files that do not have exactly
one <h2> header or have no <strong> track markers. Only flagged files are
listed unless --all is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := inspectTargets(args[0])
			if err != nil {
				return err
			}

			result := InspectResult{Files: []*corpus.Inspection{}}
			for _, p := range paths {
				ins, err := corpus.Inspect(p)
				if err != nil {
					return err
				}
				if !ins.OK() {
					result.Flagged++
				}
				if all || !ins.OK() {
					result.Files = append(result.Files, ins)
				}
			}
			return newFormatter(cmd).Print(result, printInspectText)
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "List files without problems too")
	return cmd
}

func inspectTargets(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("path not found: %s", path)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	w, err := corpus.NewWalker(path, nil, cfg.Ignore, nil)
	if err != nil {
		return nil, err
	}
	paths, _, err := w.ShowFiles()
	return paths, err
}

func printInspectText(w io.Writer, data interface{}) {
	r := data.(InspectResult)
	for _, ins := range r.Files {
		header := strings.Join(ins.Headers, " | ")
		if ins.OK() {
			fmt.Fprintf(w, "OK    %s  %s  (%d tracks)\n", ins.Name, header, ins.Strong)
			continue
		}
		fmt.Fprintf(w, "FLAG  %s  %s\n", ins.Name, strings.Join(ins.Problems, "; "))
	}
	fmt.Fprintf(w, "%d flagged\n", r.Flagged)
}

func init() {
	rootCmd.AddCommand(newInspectCmd())
}
