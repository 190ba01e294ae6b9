package categories

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"motm-scrapers/lib/datafile"
	"motm-scrapers/lib/retry"
	"motm-scrapers/lib/scrapers/pdb101"
	"motm-scrapers/lib/serviceutil"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("motm.services.categories")

const (
	CategoryUpdatesFile = "category_updates.txt"
	CorpusUpdatesFile   = "corpus_updates.txt"
)

type PageFetcher interface {
	FetchMoleculePage(ctx context.Context, number int) (string, error)
}

type Options struct {
	// inclusive range of molecule numbers
	Start int
	End   int
	// directory the data and update files are written to
	OutputDir string
	// wait after each page
	PageDelay time.Duration
	Table     Table
	// progress and summary are printed here
	Out io.Writer
}

type Result struct {
	Molecules      []pdb101.Molecule
	Classification Classification
	// paths of the written files
	Files []string
}

// Run scrapes every molecule in the range, then writes molecule_data.json and
// the Kotlin update snippets. Molecules that cannot be fetched are skipped. If
// ctx is cancelled before the loop finishes nothing is written.
func Run(ctx context.Context, fetcher PageFetcher, opts Options) (Result, error) {
	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()
	span.SetAttributes(
		attribute.Int("start", opts.Start),
		attribute.Int("end", opts.End),
	)

	if opts.Start > opts.End {
		return Result{}, fmt.Errorf("start %d is after end %d", opts.Start, opts.End)
	}
	out := opts.Out
	if out == nil {
		out = io.Discard
	}

	fmt.Fprintf(out, "Scraping molecules %d to %d...\n", opts.Start, opts.End)
	fmt.Fprintf(out, "Total: %d molecules\n\n", opts.End-opts.Start+1)

	molecules := []pdb101.Molecule{}
	for n := opts.Start; n <= opts.End; n++ {
		fmt.Fprintf(out, "Fetching molecule %d... ", n)

		page, err := fetcher.FetchMoleculePage(ctx, n)
		if ctx.Err() != nil {
			fmt.Fprintln(out, "CANCELLED")
			return Result{}, ctx.Err()
		}
		if err != nil {
			fmt.Fprintln(out, "FAILED")
		} else {
			mol, err := pdb101.ExtractMolecule(ctx, page, n)
			if err != nil {
				slog.WarnContext(ctx, "failed to parse molecule page", "molecule", n, "err", err)
				fmt.Fprintln(out, "FAILED")
			} else {
				molecules = append(molecules, mol)
				fmt.Fprintf(out, "OK - %s (%d categories)\n", mol.Title, len(mol.Categories))
			}
		}

		err = retry.Pause(ctx, opts.PageDelay)
		if err != nil {
			return Result{}, err
		}
	}

	fmt.Fprintf(out, "\nSuccessfully scraped %d molecules\n", len(molecules))

	classification := Classify(opts.Table, molecules)
	if len(classification.NewCategories) > 0 {
		fmt.Fprintln(out, "\nNew categories found (not in current mapping):")
		for _, category := range classification.NewCategories {
			fmt.Fprintf(out, "  - %s\n", category)
		}
	}

	result := Result{
		Molecules:      molecules,
		Classification: classification,
	}

	dataPath := filepath.Join(opts.OutputDir, datafile.MoleculeData)
	err := datafile.Write(dataPath, molecules)
	if err != nil {
		return result, err
	}
	result.Files = append(result.Files, dataPath)

	categoryPath := filepath.Join(opts.OutputDir, CategoryUpdatesFile)
	err = datafile.WriteText(categoryPath, FormatCategoryUpdates(opts.Table, classification))
	if err != nil {
		return result, err
	}
	result.Files = append(result.Files, categoryPath)

	corpusPath := filepath.Join(opts.OutputDir, CorpusUpdatesFile)
	err = datafile.WriteText(corpusPath, FormatCorpusUpdates(molecules))
	if err != nil {
		return result, err
	}
	result.Files = append(result.Files, corpusPath)

	for _, path := range result.Files {
		slog.InfoContext(ctx, "saved", "path", path)
	}

	printSummary(out, classification)
	fmt.Fprintln(out, "\nDone! Review the output files and apply updates to Kotlin files.")

	return result, nil
}

func printSummary(out io.Writer, c Classification) {
	t := serviceutil.NewTable(out)
	t.SetTitle("Summary")
	t.AppendHeader([]any{"Section", "Entries", "Categories"})
	for _, section := range Sections {
		t.AppendRow([]any{section, c.Entries(section), len(c.Sections[section])})
	}
	if len(c.Sections[Unknown]) > 0 {
		t.AppendSeparator()
		t.AppendRow([]any{"Unknown (needs manual mapping)", c.Entries(Unknown), len(c.Sections[Unknown])})
	}
	fmt.Fprintln(out)
	t.Render()
}
