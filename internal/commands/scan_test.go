package commands

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
)

func TestScanCommand(t *testing.T) {
	setOutputMode(t, false, false)
	dir := testCorpus(t)

	tests := []struct {
		name     string
		args     []string
		expected []string
		hasError bool
	}{
		{
			name: "dated show",
			args: []string{filepath.Join(dir, "1978-10.html")},
			expected: []string{
				"SHOW: Dr. Demento Show",
				"NUMBER: 78-10",
				"AIR DATE: 1978-03-05",
				"TRACKS: 2",
				"Dead Puppies (excerpt) - Ogden Edsl",
			},
		},
		{
			name:     "unmatched line",
			args:     []string{filepath.Join(dir, "1976-46.html")},
			expected: []string{"TRACKS: 1", "UNMATCHED: 1", "<STRONG>Broken"},
		},
		{
			name:     "with records",
			args:     []string{filepath.Join(dir, "1978-10.html"), "--records"},
			expected: []string{"RECORDS: 2", "Fish Heads\tBarnes & Barnes\t1978-03-05"},
		},
		{
			name:     "missing file",
			args:     []string{filepath.Join(dir, "missing.html")},
			hasError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCmd(t, newScanCmd(), tt.args...)
			if tt.hasError {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for _, exp := range tt.expected {
				if !strings.Contains(out, exp) {
					t.Errorf("output %q should contain %q", out, exp)
				}
			}
		})
	}
}

func TestScanCommandJSON(t *testing.T) {
	setOutputMode(t, true, false)
	dir := testCorpus(t)

	out, err := runCmd(t, newScanCmd(), filepath.Join(dir, "1978-10.html"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var result ScanResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if result.Scan == nil || result.Scan.Header == nil || result.Scan.Header.AirDate != "1978-03-05" {
		t.Fatalf("unexpected scan %+v", result.Scan)
	}
	if len(result.Scan.Tracks) != 2 || result.Scan.Tracks[1].Note != "excerpt" {
		t.Errorf("unexpected tracks %+v", result.Scan.Tracks)
	}
}
