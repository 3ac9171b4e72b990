package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/samestrin/drdementabase/internal/config"
	"github.com/samestrin/drdementabase/internal/mcpserver"
)

const (
	serverName         = "drdementabase-mcp"
	serverVersion      = "0.3.0"
	serverInstructions = "drdementabase MCP provides tools over the Dr. Demento playlist catalog: dedup keys for titles and artists, show header parsing, single-show scanning and track lookup in a built catalog export."
)

func main() {
	cfg := config.Default()
	if path := os.Getenv(config.EnvConfigPath); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			var cfgErr *config.Error
			if errors.As(err, &cfgErr) {
				fmt.Fprintln(os.Stderr, cfgErr.FormatWithHint())
			} else {
				fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
			}
			os.Exit(1)
		}
		cfg = loaded
	}
	server := newServer(mcpserver.NewHandlers(cfg.ScannerOverrides()))
	fmt.Fprintf(os.Stderr, "%s v%s started with %d tools\n", serverName, serverVersion, len(mcpserver.GetToolDefinitions()))

	if err := server.Run(context.Background(), &mcp.StdioTransport{}); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

// newServer registers every catalog tool against handlers.
func newServer(handlers *mcpserver.Handlers) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    serverName,
		Version: serverVersion,
	}, &mcp.ServerOptions{
		Instructions: serverInstructions,
	})

	for _, toolDef := range mcpserver.GetToolDefinitions() {
		td := toolDef
		server.AddTool(&mcp.Tool{
			Name:        td.Name,
			Description: td.Description,
			InputSchema: td.InputSchema,
		}, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			var args map[string]interface{}
			if req.Params.Arguments != nil {
				if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
					return errorResult("Error parsing arguments: " + err.Error()), nil
				}
			}

			out, err := handlers.Execute(ctx, td.Name, args)
			if err != nil {
				return errorResult("Error: " + err.Error()), nil
			}
			return &mcp.CallToolResult{
				Content: []mcp.Content{
					&mcp.TextContent{Text: out},
				},
			}, nil
		})
	}
	return server
}

func errorResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: msg},
		},
		IsError: true,
	}
}
