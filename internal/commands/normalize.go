package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/samestrin/drdementabase/internal/playlist"
)

// NormalizedText pairs an input with its dedup key.
type NormalizedText struct {
	Text string `json:"text"`
	Key  string `json:"key"`
}

// newNormalizeCmd creates the normalize command
func newNormalizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize <text>...",
		Short: "Print the dedup key of titles or artists",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results := make([]NormalizedText, len(args))
			for i, a := range args {
				results[i] = NormalizedText{Text: a, Key: playlist.Normalize(a)}
			}
			return newFormatter(cmd).Print(results, func(w io.Writer, data interface{}) {
				for _, r := range data.([]NormalizedText) {
					if GlobalMinOutput {
						fmt.Fprintln(w, r.Key)
					} else {
						fmt.Fprintf(w, "%s\t%s\n", r.Key, r.Text)
					}
				}
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(newNormalizeCmd())
}
