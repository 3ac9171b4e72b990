// Package mcpserver exposes the catalog operations as MCP tools.
package mcpserver

import (
	"encoding/json"
)

// ToolPrefix is the prefix for all drdementabase tools
const ToolPrefix = "dementia_"

// ToolDefinition defines a tool for the MCP SDK
type ToolDefinition struct {
	Name        string
	Description string
	InputSchema json.RawMessage
}

// GetToolDefinitions returns tool definitions for the official MCP SDK
func GetToolDefinitions() []ToolDefinition {
	return []ToolDefinition{
		{
			Name:        ToolPrefix + "normalize",
			Description: "Compute the deduplication key of track titles or artist names. Two strings with the same key are treated as the same title or artist in the catalog.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"text": {
						"type": "string",
						"description": "A title or artist name"
					},
					"texts": {
						"type": "array",
						"items": {"type": "string"},
						"description": "Several titles or artist names (alternative to text)"
					}
				}
			}`),
		},
		{
			Name:        ToolPrefix + "parse_header",
			Description: "Parse a Dr. Demento show header line into show title, episode number and ISO air date. Reports which header layout matched. Fails only when the date phrase cannot be repaired.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"line": {
						"type": "string",
						"description": "Header line, e.g. '<H2>Dr. Demento Show #80-01 - January 5, 1980</H2>'"
					}
				},
				"required": ["line"]
			}`),
		},
		{
			Name:        ToolPrefix + "scan_show",
			Description: "Scan one show transcript and return its header, the recognized track lines, unparseable track lines and the deduplicated records of that show.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"path": {
						"type": "string",
						"description": "Path to a show .html file"
					},
					"content": {
						"type": "string",
						"description": "Show transcript text (alternative to path)"
					}
				}
			}`),
		},
		{
			Name:        ToolPrefix + "lookup",
			Description: "Look up a track in a catalog export by title and optional artist. Matching uses the deduplication key, so case, punctuation and 'The'/'&' variants all match. Without an artist, every artist recorded for the title is returned.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"catalog": {
						"type": "string",
						"description": "Path to a catalog export (.yaml, .json, .db, .xlsx)"
					},
					"title": {
						"type": "string",
						"description": "Track title"
					},
					"artist": {
						"type": "string",
						"description": "Artist name"
					}
				},
				"required": ["catalog", "title"]
			}`),
		},
	}
}
