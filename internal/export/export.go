package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"golang.org/x/sync/errgroup"

	"github.com/samestrin/drdementabase/internal/playlist"
)

// Format represents an export file format.
type Format string

const (
	FormatYAML   Format = "yaml"
	FormatJSON   Format = "json"
	FormatSQLite Format = "sqlite"
	FormatXLSX   Format = "xlsx"
)

// maxParallelWrites bounds WriteAll's concurrent targets.
const maxParallelWrites = 4

// Exporter writes a full catalog snapshot, replacing any previous content.
type Exporter interface {
	Write(ctx context.Context, records []playlist.TrackRecord) error
}

// Reader loads a catalog snapshot back, in the order it was written.
type Reader interface {
	Read(ctx context.Context) ([]playlist.TrackRecord, error)
}

// Document is the envelope of the YAML and JSON exports.
type Document struct {
	Generated string                 `yaml:"generated" json:"generated"`
	Count     int                    `yaml:"count" json:"count"`
	Tracks    []playlist.TrackRecord `yaml:"tracks" json:"tracks"`
}

func newDocument(records []playlist.TrackRecord) Document {
	if records == nil {
		records = []playlist.TrackRecord{}
	}
	return Document{
		Generated: time.Now().UTC().Format(time.RFC3339),
		Count:     len(records),
		Tracks:    records,
	}
}

// DetectFormat determines the export format from the path extension.
//   - .yaml, .yml -> FormatYAML
//   - .json -> FormatJSON
//   - .db, .sqlite, .sqlite3 -> FormatSQLite
//   - .xlsx -> FormatXLSX
func DetectFormat(path string) (Format, error) {
	if path == "" {
		return "", ErrInvalidPath
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite, nil
	case ".xlsx":
		return FormatXLSX, nil
	default:
		return "", &UnsupportedFormatError{Extension: ext}
	}
}

// New creates the exporter for path based on its extension.
func New(path string) (Exporter, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatYAML:
		return &YAMLFile{Path: path}, nil
	case FormatJSON:
		return &JSONFile{Path: path}, nil
	case FormatSQLite:
		return &SQLiteFile{Path: path}, nil
	default:
		return &XLSXFile{Path: path}, nil
	}
}

// Open creates the reader for path based on its extension.
func Open(path string) (Reader, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatYAML:
		return &YAMLFile{Path: path}, nil
	case FormatJSON:
		return &JSONFile{Path: path}, nil
	case FormatSQLite:
		return &SQLiteFile{Path: path}, nil
	default:
		return &XLSXFile{Path: path}, nil
	}
}

// ReadFile is a shorthand for Open followed by Read.
func ReadFile(ctx context.Context, path string) ([]playlist.TrackRecord, error) {
	r, err := Open(path)
	if err != nil {
		return nil, err
	}
	return r.Read(ctx)
}

// Target is one completed export.
type Target struct {
	Path   string `json:"path"`
	Format Format `json:"format"`
	Bytes  int64  `json:"bytes"`
}

// WriteAll writes records to every path concurrently. All paths are
// validated before anything is written; the first failure cancels the rest.
func WriteAll(ctx context.Context, paths []string, records []playlist.TrackRecord) ([]Target, error) {
	exporters := make([]Exporter, len(paths))
	targets := make([]Target, len(paths))
	for i, p := range paths {
		format, err := DetectFormat(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		exporters[i], _ = New(p)
		targets[i] = Target{Path: p, Format: format}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelWrites)

	for i := range exporters {
		i := i
		g.Go(func() error {
			if err := exporters[i].Write(gctx, records); err != nil {
				return fmt.Errorf("%s: %w", targets[i].Path, err)
			}
			if info, err := os.Stat(targets[i].Path); err == nil {
				targets[i].Bytes = info.Size()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return targets, nil
}

// withLock runs fn holding an exclusive lock on path+".lock". The parent
// directory is created first.
func withLock(path string, fn func() error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	fl := flock.New(path + ".lock")
	if err := fl.Lock(); err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	defer fl.Unlock()

	return fn()
}

// withReadLock runs fn holding a shared lock on path+".lock" when one can
// be taken. A missing file is reported by fn itself.
func withReadLock(path string, fn func() error) error {
	if _, err := os.Stat(path); err != nil {
		return fn()
	}

	fl := flock.New(path + ".lock")
	if err := fl.RLock(); err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	defer fl.Unlock()

	return fn()
}

// normalizeRecords returns a copy of records with nil slices made empty.
// The input is shared by concurrent writers and is never modified.
func normalizeRecords(records []playlist.TrackRecord) []playlist.TrackRecord {
	out := make([]playlist.TrackRecord, len(records))
	copy(out, records)
	for i := range out {
		if out[i].Shows == nil {
			out[i].Shows = []string{}
		}
	}
	return out
}
