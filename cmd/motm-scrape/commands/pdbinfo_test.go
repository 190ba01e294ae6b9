package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"motm-scrapers/lib/datafile"

	"github.com/stretchr/testify/require"
)

func runPdbInfo(t *testing.T, dir string) error {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{
		"pdb-info",
		"--out", dir,
		"--config", filepath.Join(dir, "motm.json5"),
	})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		outputDir = ""
	})
	return rootCmd.ExecuteContext(context.Background())
}

func TestPdbInfoPrerequisiteHint(t *testing.T) {
	testCases := []struct {
		name     string
		contents string
		sentinel error
	}{
		{name: "missing", sentinel: datafile.ErrMissingPrerequisite},
		{name: "malformed", contents: "{not json", sentinel: datafile.ErrMalformed},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			dir := t.TempDir()
			if test.contents != "" {
				err := os.WriteFile(filepath.Join(dir, datafile.PdbCodes), []byte(test.contents), 0644)
				require.NoError(t, err)
			}

			err := runPdbInfo(t, dir)
			require.ErrorIs(t, err, test.sentinel)
			require.Contains(t, err.Error(), "run 'motm-scrape pdb-codes' first")
		})
	}
}

func TestWithPrerequisiteHintPassesOtherErrors(t *testing.T) {
	require.NoError(t, withPrerequisiteHint(nil))
	err := withPrerequisiteHint(context.Canceled)
	require.Equal(t, context.Canceled, err)
}
