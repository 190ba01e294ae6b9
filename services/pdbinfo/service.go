package pdbinfo

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"motm-scrapers/lib/datafile"
	"motm-scrapers/lib/htmlutil"
	"motm-scrapers/lib/retry"
	"motm-scrapers/lib/scrapers/pdb101"
	"motm-scrapers/lib/scrapers/rcsb"
	"motm-scrapers/lib/serviceutil"
	"motm-scrapers/lib/textutil"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("motm.services.pdbinfo")

const (
	UpdatesFile  = "pdb_info_updates.txt"
	titlePreview = 50
)

type EntryFetcher interface {
	FetchEntryInfo(ctx context.Context, code string) rcsb.EntryInfo
}

type Options struct {
	// directory pdb_codes.json is read from and the results are written to
	OutputDir string
	// wait after each lookup
	Delay time.Duration
	Out   io.Writer
}

type Result struct {
	Entries []rcsb.EntryInfo
	Files   []string
}

func (r Result) Failed() []rcsb.EntryInfo {
	var failed []rcsb.EntryInfo
	for _, entry := range r.Entries {
		if entry.Failed() {
			failed = append(failed, entry)
		}
	}
	return failed
}

// Run looks up the title of every code in pdb_codes.json. It fails with
// datafile.ErrMissingPrerequisite when the pdb-codes job has not been run.
func Run(ctx context.Context, fetcher EntryFetcher, opts Options) (Result, error) {
	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()

	out := opts.Out
	if out == nil {
		out = io.Discard
	}

	inputPath := filepath.Join(opts.OutputDir, datafile.PdbCodes)
	molecules, err := datafile.Read[[]pdb101.MoleculeCodes](inputPath)
	if err != nil {
		return Result{}, err
	}

	codes := UniqueCodes(molecules)
	span.SetAttributes(attribute.Int("codes", len(codes)))
	fmt.Fprintf(out, "Found %d unique PDB codes to fetch\n\n", len(codes))

	var result Result
	result.Entries = []rcsb.EntryInfo{}
	for i, code := range codes {
		fmt.Fprintf(out, "[%d/%d] Fetching %s... ", i+1, len(codes), code)

		entry := fetcher.FetchEntryInfo(ctx, code)
		if ctx.Err() != nil {
			fmt.Fprintln(out, "CANCELLED")
			return Result{}, ctx.Err()
		}
		result.Entries = append(result.Entries, entry)
		if entry.Failed() {
			fmt.Fprintf(out, "ERROR: %s\n", *entry.Error)
		} else {
			preview := htmlutil.NormalizeText(entry.Title)
			if textutil.RuneLen(preview) > titlePreview {
				preview = textutil.Truncate(preview, titlePreview) + "..."
			}
			fmt.Fprintf(out, "OK - %s\n", preview)
		}

		err = retry.Pause(ctx, opts.Delay)
		if err != nil {
			return Result{}, err
		}
	}

	fmt.Fprintf(out, "\nSuccessfully fetched %d PDB entries\n", len(result.Entries))
	failed := result.Failed()
	if len(failed) > 0 {
		fmt.Fprintln(out)
		t := serviceutil.NewTable(out)
		t.SetTitle("Errors: %d", len(failed))
		t.AppendHeader([]any{"PDB code", "Error"})
		for _, entry := range failed {
			t.AppendRow([]any{entry.PdbCode, *entry.Error})
		}
		t.Render()
	}

	dataPath := filepath.Join(opts.OutputDir, datafile.PdbInfo)
	err = datafile.Write(dataPath, result.Entries)
	if err != nil {
		return result, err
	}
	result.Files = append(result.Files, dataPath)

	updatesPath := filepath.Join(opts.OutputDir, UpdatesFile)
	err = datafile.WriteText(updatesPath, FormatUpdates(result.Entries))
	if err != nil {
		return result, err
	}
	result.Files = append(result.Files, updatesPath)

	for _, path := range result.Files {
		slog.InfoContext(ctx, "saved", "path", path)
	}
	fmt.Fprintln(out, "\nDone! Review pdb_info_updates.txt and apply to PdbInfoArray.kt")

	return result, nil
}
