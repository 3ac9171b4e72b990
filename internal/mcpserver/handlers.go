package mcpserver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/samestrin/drdementabase/internal/corpus"
	"github.com/samestrin/drdementabase/internal/export"
	"github.com/samestrin/drdementabase/internal/playlist"
	"github.com/samestrin/drdementabase/pkg/output"
)

// Handlers runs tool calls against the catalog packages.
type Handlers struct {
	Scanner *playlist.Scanner
}

// NewHandlers creates handlers that scan with the given overrides.
func NewHandlers(overrides []playlist.Override) *Handlers {
	if overrides == nil {
		overrides = playlist.DefaultOverrides()
	}
	return &Handlers{Scanner: &playlist.Scanner{Overrides: overrides}}
}

// Execute runs the tool and renders its result as JSON. The "min" argument
// (default false) selects single-line JSON with abbreviated keys.
func (h *Handlers) Execute(ctx context.Context, toolName string, args map[string]interface{}) (string, error) {
	var (
		result interface{}
		err    error
	)

	switch strings.TrimPrefix(toolName, ToolPrefix) {
	case "normalize":
		result, err = h.normalize(args)
	case "parse_header":
		result, err = h.parseHeader(args)
	case "scan_show":
		result, err = h.scanShow(args)
	case "lookup":
		result, err = h.lookup(ctx, args)
	default:
		return "", fmt.Errorf("unknown tool: %s", toolName)
	}
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := output.New(true, getBoolDefault(args, "min", false), &buf).Print(result, nil); err != nil {
		return "", fmt.Errorf("failed to render result: %w", err)
	}
	return buf.String(), nil
}

// NormalizedText pairs an input with its dedup key.
type NormalizedText struct {
	Text string `json:"text"`
	Key  string `json:"key"`
}

func (h *Handlers) normalize(args map[string]interface{}) ([]NormalizedText, error) {
	texts := getStrings(args, "texts")
	if s, ok := args["text"].(string); ok {
		texts = append([]string{s}, texts...)
	}
	if len(texts) == 0 {
		return nil, errors.New("text or texts is required")
	}

	out := make([]NormalizedText, len(texts))
	for i, s := range texts {
		out[i] = NormalizedText{Text: s, Key: playlist.Normalize(s)}
	}
	return out, nil
}

// HeaderResult is the parse_header result.
type HeaderResult struct {
	Rule   string              `json:"rule"`
	Header playlist.ShowHeader `json:"header"`
}

func (h *Handlers) parseHeader(args map[string]interface{}) (*HeaderResult, error) {
	line, ok := args["line"].(string)
	if !ok || strings.TrimSpace(line) == "" {
		return nil, errors.New("line is required")
	}
	header, err := playlist.ParseHeader(line)
	if err != nil {
		return nil, err
	}
	return &HeaderResult{Rule: playlist.MatchHeaderRule(line), Header: header}, nil
}

// ScanResult is the scan_show result.
type ScanResult struct {
	Scan    *playlist.ShowScan     `json:"scan"`
	Records []playlist.TrackRecord `json:"records"`
}

func (h *Handlers) scanShow(args map[string]interface{}) (*ScanResult, error) {
	var (
		scan *playlist.ShowScan
		err  error
	)
	if path, ok := args["path"].(string); ok && path != "" {
		scan, err = corpus.ScanFile(h.Scanner, path)
	} else if content, ok := args["content"].(string); ok {
		lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
		scan, err = h.Scanner.ScanShow(lines)
	} else {
		return nil, errors.New("path or content is required")
	}
	if err != nil {
		return nil, err
	}
	return &ScanResult{Scan: scan, Records: scan.Catalog.Records()}, nil
}

// LookupResult is the lookup result.
type LookupResult struct {
	Found   bool                   `json:"found"`
	Records []playlist.TrackRecord `json:"records"`
}

func (h *Handlers) lookup(ctx context.Context, args map[string]interface{}) (*LookupResult, error) {
	path, _ := args["catalog"].(string)
	title, _ := args["title"].(string)
	if path == "" || title == "" {
		return nil, errors.New("catalog and title are required")
	}

	cat, err := export.LoadCatalog(ctx, path)
	if err != nil {
		return nil, err
	}

	result := &LookupResult{Records: []playlist.TrackRecord{}}
	if artist, ok := args["artist"].(string); ok && artist != "" {
		if rec, found := cat.Lookup(title, artist); found {
			result.Records = append(result.Records, rec)
		}
	} else {
		result.Records = cat.ArtistsFor(title)
	}
	result.Found = len(result.Records) > 0
	return result, nil
}

func getBoolDefault(args map[string]interface{}, key string, defaultVal bool) bool {
	if v, ok := args[key].(bool); ok {
		return v
	}
	return defaultVal
}

func getStrings(args map[string]interface{}, key string) []string {
	raw, ok := args[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
