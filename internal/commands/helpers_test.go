package commands

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"

	"github.com/samestrin/drdementabase/internal/testhelpers"
)

// runCmd executes cmd with args and returns its stdout.
func runCmd(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	errBuf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(errBuf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// setOutputMode sets the global output flags for the duration of a test.
func setOutputMode(t *testing.T, jsonOut, minimal bool) {
	t.Helper()
	prevJSON, prevMin := GlobalJSONOutput, GlobalMinOutput
	GlobalJSONOutput, GlobalMinOutput = jsonOut, minimal
	t.Cleanup(func() {
		GlobalJSONOutput, GlobalMinOutput = prevJSON, prevMin
	})
}

// setConfigPath points --config at path for the duration of a test.
func setConfigPath(t *testing.T, path string) {
	t.Helper()
	prev := globalConfigPath
	globalConfigPath = path
	t.Cleanup(func() { globalConfigPath = prev })
}

// testCorpus writes a small corpus of three shows.
func testCorpus(t *testing.T) string {
	t.Helper()
	return testhelpers.CreateTempDir(t, map[string]string{
		"1978-10.html": testhelpers.ShowHTML("Dr. Demento Show #78-10 - March 5, 1978",
			"<STRONG>Fish Heads</STRONG> - Barnes &amp; Barnes",
			"<STRONG>Dead Puppies</STRONG> (excerpt) - Ogden Edsl",
		),
		"1976-46.html": testhelpers.ShowHTML("Dr. Demento Show #76-46 - November 14, 1976",
			"<STRONG>FISH HEADS</STRONG> - Barnes and Barnes",
			"<STRONG>Broken",
		),
		"notes.txt": "not a show",
	})
}
