// Package corpus walks a directory of show transcripts and folds every show
// into one catalog.
package corpus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/samestrin/drdementabase/internal/playlist"
)

// ShowExt is the extension of show transcript files.
const ShowExt = ".html"

// FileError attaches the show file to a fatal scan error.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", filepath.Base(e.Path), e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// FileSummary describes one scanned show file.
type FileSummary struct {
	Name      string `json:"name"`
	Show      string `json:"show,omitempty"`
	Number    string `json:"number,omitempty"`
	AirDate   string `json:"air_date,omitempty"`
	Headers   int    `json:"headers"`
	Tracks    int    `json:"tracks"`
	Unmatched int    `json:"unmatched,omitempty"`
}

// Result is the merged outcome of a walk.
type Result struct {
	Catalog   *playlist.Catalog `json:"-"`
	Files     []FileSummary     `json:"files"`
	Tracks    int               `json:"tracks"`
	Unmatched int               `json:"unmatched"`
	Undated   int               `json:"undated_shows"`
	Ignored   int               `json:"ignored"`
}

// ProgressEvent reports one processed file.
type ProgressEvent struct {
	Index int
	Total int
	Name  string
}

// Walker scans every show file in Dir, one at a time in name order.
type Walker struct {
	Dir      string
	Scanner  *playlist.Scanner
	Ignore   *Ignorer
	Logger   *slog.Logger
	Progress func(ProgressEvent)
}

// NewWalker creates a walker for dir with the given overrides and extra
// ignore patterns. The ignore file in dir is honoured when present.
func NewWalker(dir string, overrides []playlist.Override, ignorePatterns []string, logger *slog.Logger) (*Walker, error) {
	ig, err := NewIgnorer(dir, ignorePatterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load ignore patterns: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Walker{
		Dir:     dir,
		Scanner: &playlist.Scanner{Overrides: overrides, Logger: logger},
		Ignore:  ig,
		Logger:  logger,
	}, nil
}

// ShowFiles lists the show files in Dir in lexicographic order and the
// number of files the ignore rules excluded.
func (w *Walker) ShowFiles() ([]string, int, error) {
	entries, err := os.ReadDir(w.Dir)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read corpus directory: %w", err)
	}

	var names []string
	ignored := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ShowExt) {
			continue
		}
		path := filepath.Join(w.Dir, e.Name())
		if w.Ignore.IsIgnored(path) {
			ignored++
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	paths := make([]string, len(names))
	for i, n := range names {
		paths[i] = filepath.Join(w.Dir, n)
	}
	return paths, ignored, nil
}

// Walk scans every show file and merges the contributions in file order.
// Unmatched track lines are logged and counted; an unparseable air date
// stops the walk with a *FileError.
func (w *Walker) Walk(ctx context.Context) (*Result, error) {
	paths, ignored, err := w.ShowFiles()
	if err != nil {
		return nil, err
	}

	res := &Result{
		Catalog: playlist.NewCatalog(),
		Files:   make([]FileSummary, 0, len(paths)),
		Ignored: ignored,
	}

	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		scan, err := w.scanFile(path)
		if err != nil {
			return res, &FileError{Path: path, Err: err}
		}
		res.Catalog.Merge(scan.Catalog)
		res.Files = append(res.Files, w.summarize(path, scan))
		res.Tracks += len(scan.Tracks)
		res.Unmatched += len(scan.Unmatched)
		if scan.Header == nil || !scan.Header.HasDate() {
			res.Undated++
		}

		if w.Progress != nil {
			w.Progress(ProgressEvent{Index: i + 1, Total: len(paths), Name: filepath.Base(path)})
		}
	}

	return res, nil
}

func (w *Walker) scanFile(path string) (*playlist.ShowScan, error) {
	name := filepath.Base(path)
	lines, err := readLines(path, w.logger().With("file", name))
	if err != nil {
		return nil, err
	}

	scanner := w.Scanner
	if scanner == nil {
		scanner = playlist.DefaultScanner()
	}
	s := *scanner
	s.Logger = w.logger().With("file", name)

	scan, err := s.ScanShow(lines)
	if err != nil {
		return nil, err
	}

	if scan.HeaderCount == 0 {
		w.logger().Warn("show has no header line", "file", name)
	} else if scan.HeaderCount > 1 {
		w.logger().Warn("show has multiple header lines; using the last", "file", name, "headers", scan.HeaderCount)
	}
	w.logger().Debug("scanned show", "file", name, "show", scan.ShowTitle(), "tracks", len(scan.Tracks))
	return scan, nil
}

func (w *Walker) summarize(path string, scan *playlist.ShowScan) FileSummary {
	fs := FileSummary{
		Name:      filepath.Base(path),
		Headers:   scan.HeaderCount,
		Tracks:    len(scan.Tracks),
		Unmatched: len(scan.Unmatched),
	}
	if scan.Header != nil {
		fs.Show = scan.Header.Title
		fs.Number = scan.Header.Number
		fs.AirDate = scan.Header.AirDate
	}
	return fs
}

func (w *Walker) logger() *slog.Logger {
	if w.Logger != nil {
		return w.Logger
	}
	return slog.Default()
}

// ReadLines reads a show file fully and splits it into lines without their
// line terminators. Invalid UTF-8 is replaced rather than rejected.
func ReadLines(path string) ([]string, error) {
	return readLines(path, slog.Default().With("file", filepath.Base(path)))
}

func readLines(path string, logger *slog.Logger) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read show file: %w", err)
	}

	text := string(data)
	if !utf8.ValidString(text) {
		logger.Warn("show file is not valid UTF-8; replacing invalid bytes")
		text = strings.ToValidUTF8(text, "�")
	}

	lines := strings.Split(text, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines, nil
}

// ScanFile reads and scans a single show file with the given scanner.
func ScanFile(scanner *playlist.Scanner, path string) (*playlist.ShowScan, error) {
	w := &Walker{Dir: filepath.Dir(path), Scanner: scanner}
	scan, err := w.scanFile(path)
	if err != nil {
		var pathErr *os.PathError
		if errors.As(err, &pathErr) {
			return nil, err
		}
		return scan, &FileError{Path: path, Err: err}
	}
	return scan, nil
}
