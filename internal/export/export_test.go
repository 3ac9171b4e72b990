package export

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/samestrin/drdementabase/internal/playlist"
)

func sampleRecords() []playlist.TrackRecord {
	c := playlist.NewCatalog()
	c.Add("Fish Heads", "Barnes & Barnes", "1978-03-05")
	c.Add("fish heads", "Barnes and Barnes", "1976-11-14")
	c.Add("Dead Puppies", "Ogden Edsl", "1978-03-05")
	c.Add("Shaving Cream", "Benny Bell", "")
	c.Add("They're Coming to Take Me Away, Ha-Haaa!", "", "1971-01-02")
	return c.Records()
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		want    Format
		wantErr error
	}{
		{"yaml extension", "/path/to/catalog.yaml", FormatYAML, nil},
		{"yml extension", "/path/to/catalog.yml", FormatYAML, nil},
		{"json extension", "/path/to/catalog.json", FormatJSON, nil},
		{"db extension", "/path/to/catalog.db", FormatSQLite, nil},
		{"sqlite3 extension", "/path/to/catalog.sqlite3", FormatSQLite, nil},
		{"XLSX uppercase", "/path/to/catalog.XLSX", FormatXLSX, nil},
		{"csv extension", "/path/to/catalog.csv", "", ErrUnsupportedFormat},
		{"no extension", "/path/to/catalog", "", ErrUnsupportedFormat},
		{"empty path", "", "", ErrInvalidPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectFormat(tt.path)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUnsupportedFormatErrorMessage(t *testing.T) {
	_, err := New("catalog.csv")
	var ufe *UnsupportedFormatError
	if !errors.As(err, &ufe) || ufe.Extension != ".csv" {
		t.Fatalf("expected UnsupportedFormatError for .csv, got %v", err)
	}
	if !strings.Contains(err.Error(), ".xlsx") {
		t.Errorf("message should list supported extensions: %s", err)
	}
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	records := sampleRecords()

	for _, name := range []string{"catalog.yaml", "catalog.json", "catalog.db", "catalog.xlsx"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out", name)

			e, err := New(path)
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			if err := e.Write(ctx, records); err != nil {
				t.Fatalf("Write failed: %v", err)
			}

			got, err := ReadFile(ctx, path)
			if err != nil {
				t.Fatalf("Read failed: %v", err)
			}
			if !reflect.DeepEqual(got, records) {
				t.Errorf("round trip mismatch\nwant %+v\ngot  %+v", records, got)
			}

			// A second write replaces the content.
			if err := e.Write(ctx, records[:1]); err != nil {
				t.Fatalf("rewrite failed: %v", err)
			}
			got, err = ReadFile(ctx, path)
			if err != nil {
				t.Fatalf("Read failed: %v", err)
			}
			if len(got) != 1 {
				t.Errorf("expected 1 record after rewrite, got %d", len(got))
			}
		})
	}
}

func TestRoundTripEmpty(t *testing.T) {
	ctx := context.Background()
	for _, name := range []string{"empty.yaml", "empty.json", "empty.db", "empty.xlsx"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			e, _ := New(path)
			if err := e.Write(ctx, nil); err != nil {
				t.Fatalf("Write failed: %v", err)
			}
			got, err := ReadFile(ctx, path)
			if err != nil {
				t.Fatalf("Read failed: %v", err)
			}
			if got == nil || len(got) != 0 {
				t.Errorf("expected empty non-nil slice, got %#v", got)
			}
		})
	}
}

func TestJSONDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	if err := (&JSONFile{Path: path}).Write(context.Background(), sampleRecords()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if doc["count"] != float64(4) {
		t.Errorf("expected count 4, got %v", doc["count"])
	}
	if _, ok := doc["generated"].(string); !ok {
		t.Error("expected generated timestamp")
	}
	if _, err := os.Stat(path + ".lock"); err != nil {
		t.Errorf("expected lock file next to export: %v", err)
	}
}

func TestReadMissingFile(t *testing.T) {
	ctx := context.Background()
	for _, name := range []string{"missing.yaml", "missing.json", "missing.db", "missing.xlsx"} {
		if _, err := ReadFile(ctx, filepath.Join(t.TempDir(), name)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestReadMalformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadFile(context.Background(), path); !errors.Is(err, ErrMalformed) {
		t.Errorf("expected ErrMalformed, got %v", err)
	}
}

func TestWriteAll(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		filepath.Join(dir, "a.yaml"),
		filepath.Join(dir, "a.json"),
		filepath.Join(dir, "a.sqlite"),
		filepath.Join(dir, "a.xlsx"),
	}

	targets, err := WriteAll(context.Background(), paths, sampleRecords())
	if err != nil {
		t.Fatalf("WriteAll failed: %v", err)
	}
	if len(targets) != len(paths) {
		t.Fatalf("expected %d targets, got %d", len(paths), len(targets))
	}
	wantFormats := []Format{FormatYAML, FormatJSON, FormatSQLite, FormatXLSX}
	for i, tg := range targets {
		if tg.Path != paths[i] || tg.Format != wantFormats[i] {
			t.Errorf("target %d: got %+v", i, tg)
		}
		if tg.Bytes <= 0 {
			t.Errorf("target %d: expected a non-empty file", i)
		}
	}
}

func TestWriteAllLeavesInputUntouched(t *testing.T) {
	dir := t.TempDir()
	records := []playlist.TrackRecord{{Title: "Shaving Cream", Artist: "Benny Bell"}}
	paths := []string{
		filepath.Join(dir, "a.yaml"),
		filepath.Join(dir, "a.json"),
		filepath.Join(dir, "a.sqlite"),
	}

	if _, err := WriteAll(context.Background(), paths, records); err != nil {
		t.Fatalf("WriteAll failed: %v", err)
	}
	if records[0].Shows != nil {
		t.Errorf("caller's records were modified: %+v", records[0])
	}

	got, err := ReadFile(context.Background(), paths[1])
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if len(got) != 1 || got[0].Shows == nil || len(got[0].Shows) != 0 {
		t.Errorf("expected an empty shows list, got %+v", got)
	}
}

func TestNormalizeRecordsCopies(t *testing.T) {
	in := []playlist.TrackRecord{{Title: "a"}}
	out := normalizeRecords(in)
	if in[0].Shows != nil || out[0].Shows == nil {
		t.Errorf("expected a defaulted copy, got in=%+v out=%+v", in, out)
	}
	if got := normalizeRecords(nil); got == nil || len(got) != 0 {
		t.Errorf("expected an empty non-nil slice for nil input, got %#v", got)
	}
}

func TestWriteAllValidatesFirst(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "a.json")

	_, err := WriteAll(context.Background(), []string{good, filepath.Join(dir, "a.csv")}, sampleRecords())
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	if _, statErr := os.Stat(good); !os.IsNotExist(statErr) {
		t.Error("no target should be written when a path is unsupported")
	}
}

func TestWriteCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	path := filepath.Join(t.TempDir(), "a.yaml")
	if err := (&YAMLFile{Path: path}).Write(ctx, sampleRecords()); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
