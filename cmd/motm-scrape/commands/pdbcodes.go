package commands

import (
	"motm-scrapers/services/pdbcodes"

	"github.com/spf13/cobra"
)

const (
	defaultPdbCodesStart = 278
	defaultPdbCodesEnd   = 313
)

func init() {
	rootCmd.AddCommand(pdbCodesCmd)
}

var pdbCodesCmd = &cobra.Command{
	Use:   "pdb-codes [start end] | [end]",
	Short: "Collects the PDB codes referenced by molecule pages (default 278 to 313).",
	Long: `Collects the PDB codes referenced by molecule pages and writes
pdb_codes.json and pdb_updates.txt (PDBs.kt) to the output directory.`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		start, end, err := parseRange(args, defaultPdbCodesStart, defaultPdbCodesEnd)
		if err != nil {
			return err
		}
		client, err := newPdb101Client()
		if err != nil {
			return err
		}

		_, err = pdbcodes.Run(cmd.Context(), client, pdbcodes.Options{
			Start:     start,
			End:       end,
			OutputDir: cfg.OutputDir,
			PageDelay: cfg.pageDelay(),
			Out:       cmd.OutOrStdout(),
		})
		return err
	},
}
