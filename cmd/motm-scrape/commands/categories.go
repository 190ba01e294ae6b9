package commands

import (
	"motm-scrapers/lib/scrapers/pdb101"
	"motm-scrapers/services/categories"

	"github.com/spf13/cobra"
)

const (
	defaultCategoriesStart = 258
	defaultCategoriesEnd   = 313
)

func init() {
	rootCmd.AddCommand(categoriesCmd)
}

func newPdb101Client() (*pdb101.Client, error) {
	output, err := instrumentOutput()
	if err != nil {
		return nil, err
	}
	return pdb101.NewClient(pdb101.ClientOptions{
		BaseUrl:                 cfg.Pdb101BaseUrl,
		Timeout:                 cfg.timeout(),
		Retry:                   cfg.retryPolicy(),
		DisableBrowserTransport: cfg.DisableBrowserTransport,
		InstrumentOutput:        output,
	})
}

var categoriesCmd = &cobra.Command{
	Use:   "categories [start end] | [end]",
	Short: "Scrapes titles, taglines and categories of molecule pages (default 258 to 313).",
	Long: `Scrapes titles, taglines and categories of molecule pages and writes
molecule_data.json, category_updates.txt (MotmByCategory.kt) and
corpus_updates.txt (Corpus.kt) to the output directory.`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		start, end, err := parseRange(args, defaultCategoriesStart, defaultCategoriesEnd)
		if err != nil {
			return err
		}
		table, err := categories.DefaultTable().With(cfg.Categories)
		if err != nil {
			return err
		}
		client, err := newPdb101Client()
		if err != nil {
			return err
		}

		_, err = categories.Run(cmd.Context(), client, categories.Options{
			Start:     start,
			End:       end,
			OutputDir: cfg.OutputDir,
			PageDelay: cfg.pageDelay(),
			Table:     table,
			Out:       cmd.OutOrStdout(),
		})
		return err
	},
}
