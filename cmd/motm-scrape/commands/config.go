package commands

import (
	"time"

	"motm-scrapers/lib/configutil"
	"motm-scrapers/lib/retry"
	"motm-scrapers/lib/scrapers/pdb101"
	"motm-scrapers/lib/scrapers/rcsb"
)

type Config struct {
	Pdb101BaseUrl   string `json:"pdb101_base_url"`
	RcsbDataBaseUrl string `json:"rcsb_data_base_url"`
	OutputDir       string `json:"output_dir"`
	// attempts per page or entry, including the first
	Attempts       int `json:"attempts"`
	TimeoutSeconds int `json:"timeout_seconds"`
	// negative values disable the delay
	PageDelayMs int `json:"page_delay_ms"`
	InfoDelayMs int `json:"info_delay_ms"`
	// extra category -> section entries, added to the built in table
	Categories              map[string]string `json:"categories"`
	DisableBrowserTransport bool              `json:"disable_browser_transport"`
}

func defaultConfig() Config {
	return Config{
		Pdb101BaseUrl:   pdb101.DefaultBaseUrl,
		RcsbDataBaseUrl: rcsb.DefaultBaseUrl,
		OutputDir:       ".",
		Attempts:        retry.DefaultAttempts,
		TimeoutSeconds:  30,
		PageDelayMs:     1000,
		InfoDelayMs:     200,
	}
}

func loadConfig(path string) (Config, error) {
	return configutil.ReadConfigWithDefaults(path, defaultConfig())
}

func (c Config) retryPolicy() retry.Policy {
	policy := retry.DefaultPolicy()
	policy.Attempts = c.Attempts
	return policy
}

func (c Config) timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c Config) pageDelay() time.Duration {
	return time.Duration(c.PageDelayMs) * time.Millisecond
}

func (c Config) infoDelay() time.Duration {
	return time.Duration(c.InfoDelayMs) * time.Millisecond
}
