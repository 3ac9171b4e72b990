package commands

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/samestrin/drdementabase/internal/config"
	"github.com/samestrin/drdementabase/internal/export"
	"github.com/samestrin/drdementabase/internal/testhelpers"
)

func TestBuildCommand(t *testing.T) {
	setOutputMode(t, false, false)
	dir := testCorpus(t)
	outDir := t.TempDir()
	jsonOut := filepath.Join(outDir, "catalog.json")
	dbOut := filepath.Join(outDir, "catalog.db")

	out, err := runCmd(t, newBuildCmd(), dir, "-o", jsonOut, "-o", dbOut)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, exp := range []string{"Scanned 2 shows", "3 track plays, 2 distinct tracks", "1 unmatched track lines", "Wrote " + jsonOut} {
		if !strings.Contains(out, exp) {
			t.Errorf("output %q should contain %q", out, exp)
		}
	}

	for _, p := range []string{jsonOut, dbOut} {
		records, err := export.ReadFile(context.Background(), p)
		if err != nil {
			t.Fatalf("failed to read %s: %v", p, err)
		}
		if len(records) != 2 {
			t.Fatalf("%s: expected 2 records, got %d", p, len(records))
		}
		// display text comes from the first show in name order
		if records[1].Title != "FISH HEADS" || records[1].First != "1976-11-14" {
			t.Errorf("%s: unexpected record %+v", p, records[1])
		}
	}
}

func TestBuildCommandJSON(t *testing.T) {
	setOutputMode(t, true, false)
	dir := testCorpus(t)
	out := filepath.Join(t.TempDir(), "catalog.yaml")

	stdout, err := runCmd(t, newBuildCmd(), dir, "-o", out, "--shows")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var result BuildResult
	if err := json.Unmarshal([]byte(stdout), &result); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, stdout)
	}
	if result.Files != 2 || result.Records != 2 || result.Unmatched != 1 {
		t.Errorf("unexpected result %+v", result)
	}
	if len(result.Shows) != 2 || result.Shows[0].Name != "1976-46.html" || result.Shows[0].AirDate != "1976-11-14" {
		t.Errorf("unexpected show summaries %+v", result.Shows)
	}
	if len(result.Outputs) != 1 || result.Outputs[0].Format != export.FormatYAML || result.Outputs[0].Bytes == 0 {
		t.Errorf("unexpected outputs %+v", result.Outputs)
	}
}

func TestBuildCommandUndated(t *testing.T) {
	setOutputMode(t, true, false)
	dir := testhelpers.CreateTempDir(t, map[string]string{
		"a.html": testhelpers.ShowHTML("Dr. Demento Show - March 5, 1978",
			"<STRONG>Fish Heads</STRONG> - Barnes &amp; Barnes",
		),
		"b.html": testhelpers.ShowHTML("Special Show",
			"<STRONG>Fish Heads</STRONG> - Barnes &amp; Barnes",
			"<STRONG>Dead Puppies</STRONG> - Ogden Edsl",
		),
	})

	stdout, err := runCmd(t, newBuildCmd(), dir, "-o", filepath.Join(t.TempDir(), "catalog.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var result BuildResult
	if err := json.Unmarshal([]byte(stdout), &result); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, stdout)
	}
	if result.Undated != 1 || result.UndatedTracks != 1 || result.Records != 2 {
		t.Errorf("expected 1 undated show and 1 undated track of 2, got %+v", result)
	}
}

func TestBuildCommandUsesConfig(t *testing.T) {
	setOutputMode(t, false, false)
	dir := testCorpus(t)
	out := filepath.Join(t.TempDir(), "from-config.json")

	cfgPath := filepath.Join(t.TempDir(), "drdementabase.yaml")
	cfgYAML := "catalog:\n" +
		"  corpus_dir: " + dir + "\n" +
		"  outputs:\n    - " + out + "\n" +
		"  ignore:\n    - \"1978-*.html\"\n"
	if err := os.WriteFile(cfgPath, []byte(cfgYAML), 0644); err != nil {
		t.Fatal(err)
	}
	setConfigPath(t, cfgPath)
	t.Setenv(config.EnvCorpusDir, "")

	stdout, err := runCmd(t, newBuildCmd())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stdout, "Scanned 1 shows") || !strings.Contains(stdout, "Ignored 1 files") {
		t.Errorf("unexpected output %q", stdout)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("configured output not written: %v", err)
	}
}

func TestBuildCommandErrors(t *testing.T) {
	setOutputMode(t, false, false)
	t.Setenv(config.EnvCorpusDir, "")
	dir := testCorpus(t)

	tests := []struct {
		name     string
		args     []string
		contains string
	}{
		{"no directory", nil, "no corpus directory"},
		{"missing directory", []string{filepath.Join(dir, "nope")}, "corpus directory not found"},
		{"unsupported output", []string{dir, "-o", filepath.Join(t.TempDir(), "x.csv")}, "not supported"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCmd(t, newBuildCmd(), tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("error %q should contain %q", err, tt.contains)
			}
		})
	}
}

func TestBuildCommandFatalDate(t *testing.T) {
	setOutputMode(t, false, false)
	dir := testCorpus(t)
	bad := filepath.Join(dir, "1999-99.html")
	if err := os.WriteFile(bad, []byte("<H2>Dr. Demento Show - Smarch 45, the year of the bee</H2>\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := runCmd(t, newBuildCmd(), dir, "-o", filepath.Join(t.TempDir(), "c.json"))
	if err == nil || !strings.Contains(err.Error(), "1999-99.html") {
		t.Errorf("expected error naming the show file, got %v", err)
	}
}

func TestTruncate(t *testing.T) {
	if truncate("short", 10) != "short" {
		t.Error("short strings should be unchanged")
	}
	if got := truncate("They're Coming to Take Me Away", 10); got != "They're..." {
		t.Errorf("got %q", got)
	}
}
