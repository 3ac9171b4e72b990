package corpus

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/samestrin/drdementabase/internal/testhelpers"
)

func TestInspect(t *testing.T) {
	dir := testhelpers.CreateTempDir(t, map[string]string{
		"good.html": "<html><head><title>Show 1978-10</title></head><body>\n" +
			"<h2 align=\"center\">Dr. Demento Show\n - March 5, 1978</h2>\n" +
			"<strong>Fish Heads</strong> - Barnes &amp; Barnes<br>\n" +
			"<strong>Dead Puppies</strong> - Ogden Edsl<br>\n</body></html>\n",
		"noheader.html": "<html><body><strong>Fish Heads</strong></body></html>",
		"double.html":   "<html><body><h2>One</h2><h2>Two</h2></body></html>",
	})

	tests := []struct {
		file     string
		headers  []string
		strong   int
		problems []string
	}{
		{"good.html", []string{"Dr. Demento Show - March 5, 1978"}, 2, nil},
		{"noheader.html", []string{}, 1, []string{"no <h2> header"}},
		{"double.html", []string{"One", "Two"}, 0, []string{"2 <h2> headers", "no <strong> track markers"}},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			ins, err := Inspect(filepath.Join(dir, tt.file))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ins.Name != tt.file {
				t.Errorf("expected name %q, got %q", tt.file, ins.Name)
			}
			if !reflect.DeepEqual(ins.Headers, tt.headers) {
				t.Errorf("expected headers %q, got %q", tt.headers, ins.Headers)
			}
			if ins.Strong != tt.strong {
				t.Errorf("expected %d strong markers, got %d", tt.strong, ins.Strong)
			}
			if !reflect.DeepEqual(ins.Problems, tt.problems) {
				t.Errorf("expected problems %q, got %q", tt.problems, ins.Problems)
			}
			if ins.OK() != (len(tt.problems) == 0) {
				t.Errorf("OK() disagrees with problems %q", ins.Problems)
			}
		})
	}
}

func TestInspectTitle(t *testing.T) {
	dir := testhelpers.CreateTempDir(t, map[string]string{
		"a.html": "<html><head><title> Show 1978-10 </title></head><body><h2>x</h2><strong>y</strong></body></html>",
	})
	ins, err := Inspect(filepath.Join(dir, "a.html"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ins.Title != "Show 1978-10" {
		t.Errorf("expected trimmed title, got %q", ins.Title)
	}
}

func TestInspectMissingFile(t *testing.T) {
	if _, err := Inspect(filepath.Join(t.TempDir(), "missing.html")); err == nil {
		t.Error("expected error for missing file")
	}
}
