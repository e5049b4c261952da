package cmd

import (
	"bytes"
	"encoding/csv"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	require.NoError(t, rootCmd.Execute())
	return buf.String()
}

func TestRunAndQueryJournal(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("K_JOURNAL__BACKEND", "jsonl")
	t.Setenv("K_JOURNAL__PATH", filepath.Join(dir, "journal.jsonl"))
	t.Setenv("K_LOGGING__LEVEL", "error")

	out := execute(t, "run", "--preset", "simple", "--turns", "40", "--format", "csv", "--run-id", "cli-run")
	rows, err := csv.NewReader(bytes.NewBufferString(out)).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 3, "header and two vehicles")

	out = execute(t, "journal", "--run", "cli-run", "--kind", "arrival")
	assert.Contains(t, out, "RUN")
}

func TestRunRejectsUnknownFormat(t *testing.T) {
	rootCmd.SetArgs([]string{"run", "--format", "xml"})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		runOpts.format = "text"
	})
	assert.Error(t, rootCmd.Execute())
}
