// Package testhelpers provides golden file and corpus fixture helpers for tests.
package testhelpers

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// GoldenDir returns the path to the testdata/golden directory at the repo root.
func GoldenDir() string {
	// Find the repo root by looking for go.mod
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return filepath.Join(dir, "testdata", "golden")
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "testdata/golden"
		}
		dir = parent
	}
}

// GoldenFile returns the full path to a golden file.
func GoldenFile(name string) string {
	return filepath.Join(GoldenDir(), name)
}

// Update returns true if UPDATE_GOLDEN environment variable is set.
// Use: UPDATE_GOLDEN=1 go test ./... to update golden files.
var Update = os.Getenv("UPDATE_GOLDEN") == "1"

// AssertGolden compares actual output to a golden file, with line endings
// normalized. With UPDATE_GOLDEN=1 the golden file is rewritten instead.
func AssertGolden(t *testing.T, name string, actual string) {
	t.Helper()

	actual = strings.ReplaceAll(actual, "\r\n", "\n")
	goldenPath := GoldenFile(name)

	if Update {
		if err := os.MkdirAll(filepath.Dir(goldenPath), 0755); err != nil {
			t.Fatalf("failed to create golden file directory: %v", err)
		}
		if err := os.WriteFile(goldenPath, []byte(actual), 0644); err != nil {
			t.Fatalf("failed to update golden file %s: %v", goldenPath, err)
		}
		t.Logf("Updated golden file: %s", goldenPath)
		return
	}

	expected, err := os.ReadFile(goldenPath)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("golden file %s does not exist. Run with UPDATE_GOLDEN=1 to create it", goldenPath)
		}
		t.Fatalf("failed to read golden file %s: %v", goldenPath, err)
	}

	if string(expected) != actual {
		t.Errorf("output mismatch for golden file %s\n--- Diff ---\n%s", goldenPath, LineDiff(string(expected), actual))
	}
}

// LineDiff renders a line-level diff of two texts, one "-"/"+" prefixed
// line per change.
func LineDiff(expected, actual string) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(expected, actual)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var result strings.Builder
	for _, d := range diffs {
		prefix := ""
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		default:
			continue
		}
		for _, line := range strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n") {
			result.WriteString(prefix)
			result.WriteString(line)
			result.WriteString("\n")
		}
	}
	return result.String()
}

// CreateTempDir creates a temporary directory with optional files.
func CreateTempDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()

	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("failed to create directory for %s: %v", name, err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write file %s: %v", name, err)
		}
	}

	return dir
}

// ShowHTML renders a minimal show transcript with one header line and one
// line per track entry.
func ShowHTML(header string, tracks ...string) string {
	var b strings.Builder
	b.WriteString("<HTML><BODY>\n")
	b.WriteString("<H2>" + header + "</H2>\n")
	for _, t := range tracks {
		b.WriteString(t + "<BR>\n")
	}
	b.WriteString("</BODY></HTML>\n")
	return b.String()
}
