// Package main is the entry point for the drdementabase CLI tool.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/samestrin/drdementabase/internal/commands"
	"github.com/samestrin/drdementabase/internal/config"
	"github.com/samestrin/drdementabase/pkg/output"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := commands.Execute(ctx); err != nil {
		var cfgErr *config.Error
		if errors.As(err, &cfgErr) && !commands.GlobalJSONOutput {
			fmt.Fprintln(os.Stderr, cfgErr.FormatWithHint())
			os.Exit(1)
		}
		f := output.New(commands.GlobalJSONOutput, commands.GlobalMinOutput, os.Stdout)
		os.Exit(f.PrintError(err))
	}
}
