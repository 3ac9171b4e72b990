package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/samestrin/drdementabase/internal/export"
)

// newQueryCmd creates the query command
func newQueryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "query <export.json> <path>",
		Short: "Query a JSON export with a gjson path",
		Long: `Query a JSON export with a gjson path expression.

Examples:
  drdementabase query catalog.json count
  drdementabase query catalog.json 'tracks.#(artist=="Barnes & Barnes")#.title'
  drdementabase query catalog.json 'tracks.#(first<"1972-01-01")#|#'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := &export.JSONFile{Path: args[0]}
			content, err := src.ReadRaw(cmd.Context())
			if err != nil {
				return err
			}
			if !gjson.ValidBytes(content) {
				return fmt.Errorf("%w: %s is not valid JSON", export.ErrMalformed, args[0])
			}

			result := gjson.GetBytes(content, args[1])
			if !result.Exists() {
				return fmt.Errorf("path not found: %s", args[1])
			}

			out := cmd.OutOrStdout()
			if GlobalJSONOutput || result.IsArray() || result.IsObject() {
				var data interface{}
				if err := json.Unmarshal([]byte(result.Raw), &data); err != nil {
					return fmt.Errorf("failed to decode result: %w", err)
				}
				return newFormatter(cmd).Print(data, nil)
			}
			fmt.Fprintln(out, result.String())
			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(newQueryCmd())
}
