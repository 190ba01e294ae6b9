package pdbinfo

import (
	"fmt"
	"sort"
	"strings"

	"motm-scrapers/lib/kotlinutil"
	"motm-scrapers/lib/scrapers/pdb101"
	"motm-scrapers/lib/scrapers/rcsb"
)

const maxTitleLength = 200

// UniqueCodes collects the lowercased codes of all molecules, deduplicated
// and sorted.
func UniqueCodes(molecules []pdb101.MoleculeCodes) []string {
	set := make(map[string]struct{})
	for _, mol := range molecules {
		for _, code := range mol.PdbCodes {
			set[strings.ToLower(code)] = struct{}{}
		}
	}
	codes := make([]string, 0, len(set))
	for code := range set {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// FormatUpdates renders the PdbEntryInfo entries to append to
// PdbInfoArray.kt, sorted by code.
func FormatUpdates(entries []rcsb.EntryInfo) string {
	sorted := make([]rcsb.EntryInfo, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return strings.ToLower(sorted[i].PdbCode) < strings.ToLower(sorted[j].PdbCode)
	})

	lines := kotlinutil.Banner("PdbInfoArray.kt")
	lines = append(
		lines,
		"",
		"// Add these entries before the closing ) of pdbInfoList",
		"// (after the last PdbEntryInfo entry, add a comma first)",
		"",
	)
	for _, entry := range sorted {
		title := kotlinutil.TruncateEscaped(kotlinutil.Escape(entry.Title), maxTitleLength)
		lines = append(lines, fmt.Sprintf(
			`%sPdbEntryInfo(%s, "%s"),`,
			kotlinutil.Indent,
			kotlinutil.Quote(strings.ToLower(entry.PdbCode)),
			title,
		))
	}

	return strings.Join(lines, "\n") + "\n"
}
