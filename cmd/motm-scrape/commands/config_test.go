package commands

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	c, err := loadConfig(filepath.Join(t.TempDir(), "motm.json5"))
	require.NoError(t, err)
	require.Equal(t, defaultConfig(), c)
	require.Equal(t, 3, c.retryPolicy().Attempts)
	require.Equal(t, 30*time.Second, c.timeout())
	require.Equal(t, time.Second, c.pageDelay())
	require.Equal(t, 200*time.Millisecond, c.infoDelay())
}

func TestLoadConfigOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "motm.json5")
	err := os.WriteFile(path, []byte(`{
		pdb101_base_url: "http://localhost:8080",
		attempts: 5,
		page_delay_ms: -1,
		categories: {
			"Xenobiology": "Life",
		},
	}`), 0600)
	require.NoError(t, err)

	c, err := loadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8080", c.Pdb101BaseUrl)
	require.Equal(t, "https://data.rcsb.org", c.RcsbDataBaseUrl)
	require.Equal(t, 5, c.retryPolicy().Attempts)
	require.Equal(t, "Life", c.Categories["Xenobiology"])
	require.Equal(t, 200, c.InfoDelayMs)
	require.Negative(t, c.pageDelay())
}
