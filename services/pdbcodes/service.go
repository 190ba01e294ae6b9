package pdbcodes

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

var tracer = otel.Tracer("motm.services.pdbcodes")

const UpdatesFile = "pdb_updates.txt"

type PageFetcher interface {
	FetchMoleculePage(ctx context.Context, number int) (string, error)
}

type Options struct {
	// inclusive range of molecule numbers
	Start int
	End   int
	// directory pdb_codes.json and pdb_updates.txt are written to
	OutputDir string
	// wait after each page
	PageDelay time.Duration
	Out       io.Writer
}

type Result struct {
	Molecules []pdb101.MoleculeCodes
	Files     []string
}

// TotalCodes is the number of codes found across all molecules.
func (r Result) TotalCodes() int {
	total := 0
	for _, mol := range r.Molecules {
		total += len(mol.PdbCodes)
	}
	return total
}

// Run collects the PDB codes referenced by every molecule in the range. A
// molecule whose page cannot be fetched is recorded without codes, so every
// number in the range appears in pdb_codes.json.
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

	fmt.Fprintf(out, "Scraping PDB codes for molecules %d to %d...\n", opts.Start, opts.End)
	fmt.Fprintf(out, "Total: %d molecules\n\n", opts.End-opts.Start+1)

	var result Result
	result.Molecules = []pdb101.MoleculeCodes{}
	for n := opts.Start; n <= opts.End; n++ {
		fmt.Fprintf(out, "Fetching molecule %d... ", n)

		codes, err := scrapeMolecule(ctx, fetcher, n)
		if ctx.Err() != nil {
			fmt.Fprintln(out, "CANCELLED")
			return Result{}, ctx.Err()
		}
		if err != nil {
			fmt.Fprintln(out, "FAILED")
			codes = pdb101.MoleculeCodes{Number: n, PdbCodes: []string{}}
		} else {
			fmt.Fprintf(out, "OK - %d PDB codes found\n", len(codes.PdbCodes))
		}
		result.Molecules = append(result.Molecules, codes)

		err = retry.Pause(ctx, opts.PageDelay)
		if err != nil {
			return Result{}, err
		}
	}

	fmt.Fprintf(out, "\nSuccessfully scraped %d molecules\n", len(result.Molecules))
	fmt.Fprintf(out, "Total PDB codes found: %d\n", result.TotalCodes())

	dataPath := filepath.Join(opts.OutputDir, datafile.PdbCodes)
	err := datafile.Write(dataPath, result.Molecules)
	if err != nil {
		return result, err
	}
	result.Files = append(result.Files, dataPath)

	updatesPath := filepath.Join(opts.OutputDir, UpdatesFile)
	err = datafile.WriteText(updatesPath, FormatUpdates(result.Molecules))
	if err != nil {
		return result, err
	}
	result.Files = append(result.Files, updatesPath)

	for _, path := range result.Files {
		slog.InfoContext(ctx, "saved", "path", path)
	}

	t := serviceutil.NewTable(out)
	t.SetTitle("Summary")
	t.AppendHeader([]any{"Molecule", "Codes", "PDB codes"})
	for _, mol := range result.Molecules {
		t.AppendRow([]any{mol.Number, len(mol.PdbCodes), preview(mol.PdbCodes)})
	}
	fmt.Fprintln(out)
	t.Render()
	fmt.Fprintln(out, "\nDone! Review pdb_updates.txt and apply to PDBs.kt")

	return result, nil
}

func scrapeMolecule(ctx context.Context, fetcher PageFetcher, number int) (pdb101.MoleculeCodes, error) {
	page, err := fetcher.FetchMoleculePage(ctx, number)
	if err != nil {
		return pdb101.MoleculeCodes{}, err
	}
	codes, err := pdb101.ExtractPdbCodes(ctx, page, number)
	if err != nil {
		slog.WarnContext(ctx, "failed to parse molecule page", "molecule", number, "err", err)
		return pdb101.MoleculeCodes{}, err
	}
	return codes, nil
}
