package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"motm-scrapers/lib/restyutil"
	"motm-scrapers/lib/serviceutil"
	"motm-scrapers/lib/telemetry"

	"github.com/spf13/cobra"
)

var (
	configPath string
	outputDir  string
	verbose    bool
	dumpHttp   string
)

var (
	cfg Config
	tel telemetry.Telemetry
)

var rootCmd = &cobra.Command{
	Use:   "motm-scrape",
	Short: "motm-scrape collects Molecule of the Month metadata for the MOTM browser sources.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		telemetry.InitSlog(verbose)

		var err error
		cfg, err = loadConfig(configPath)
		if err != nil {
			return fmt.Errorf("read config: %w", err)
		}
		if outputDir != "" {
			cfg.OutputDir = outputDir
		}
		slog.Debug("loaded config", "path", configPath, "output_dir", cfg.OutputDir)

		tel, err = telemetry.SetupFromEnv(cmd.Context(), "motm-scrape")
		if err != nil {
			slog.Warn("failed to setup telemetry, continuing without it", "err", err)
		}
		return nil
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "motm.json5", "Config file, a missing file means defaults.")
	flags.StringVarP(&outputDir, "out", "o", "", "Directory to read and write data files in (default from config, then the cwd).")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging.")
	flags.StringVar(&dumpHttp, "dump-http", "", "Directory to dump every http request and response to, needs --verbose. Supports <dev_state>/...")
}

// instrumentOutput is nil unless --dump-http is set.
func instrumentOutput() (restyutil.InstrumentOutput, error) {
	if dumpHttp == "" {
		return nil, nil
	}
	out, err := restyutil.NewFilesystemOutput(dumpHttp)
	if err != nil {
		return nil, fmt.Errorf("create http dump directory: %w", err)
	}
	return out, nil
}

func ExecuteContext(ctx context.Context) {
	err := rootCmd.ExecuteContext(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	shutdownErr := tel.Shutdown(shutdownCtx)
	if shutdownErr != nil {
		slog.Warn("failed to flush telemetry", "err", shutdownErr)
	}

	if err != nil {
		serviceutil.Fatal("motm-scrape failed", err)
	}
}
