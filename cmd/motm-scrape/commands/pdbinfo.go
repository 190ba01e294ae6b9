package commands

import (
	"errors"
	"fmt"

	"motm-scrapers/lib/datafile"
	"motm-scrapers/lib/scrapers/rcsb"
	"motm-scrapers/services/pdbinfo"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(pdbInfoCmd)
}

var pdbInfoCmd = &cobra.Command{
	Use:   "pdb-info",
	Short: "Fetches the title of every PDB code in pdb_codes.json from the RCSB data API.",
	Long: `Fetches the title of every PDB code in pdb_codes.json from the RCSB data
API and writes pdb_info.json and pdb_info_updates.txt (PdbInfoArray.kt) to the
output directory. Run pdb-codes first.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		output, err := instrumentOutput()
		if err != nil {
			return err
		}
		client := rcsb.NewClient(rcsb.ClientOptions{
			BaseUrl:          cfg.RcsbDataBaseUrl,
			Timeout:          cfg.timeout(),
			Retry:            cfg.retryPolicy(),
			InstrumentOutput: output,
		})

		_, err = pdbinfo.Run(cmd.Context(), client, pdbinfo.Options{
			OutputDir: cfg.OutputDir,
			Delay:     cfg.infoDelay(),
			Out:       cmd.OutOrStdout(),
		})
		return withPrerequisiteHint(err)
	},
}

// withPrerequisiteHint tells the user how to produce pdb_codes.json when it
// is missing or unreadable.
func withPrerequisiteHint(err error) error {
	if errors.Is(err, datafile.ErrMissingPrerequisite) || errors.Is(err, datafile.ErrMalformed) {
		return fmt.Errorf("%w\nrun 'motm-scrape pdb-codes' first to generate it", err)
	}
	return err
}
