package pdbcodes

import (
	"fmt"
	"sort"
	"strings"

	"motm-scrapers/lib/kotlinutil"
	"motm-scrapers/lib/scrapers/pdb101"
)

// FormatUpdates renders the MotmToPdbMap entries to append to PDBs.kt.
// Molecules without codes are left out.
func FormatUpdates(molecules []pdb101.MoleculeCodes) string {
	sorted := make([]pdb101.MoleculeCodes, len(molecules))
	copy(sorted, molecules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Number < sorted[j].Number
	})

	lines := kotlinutil.Banner("PDBs.kt")
	lines = append(
		lines,
		"",
		"// Add these entries before the closing ) of pdbList",
		"// (after the last MotmToPdbMap entry, add a comma first)",
		"",
	)
	for _, mol := range sorted {
		if len(mol.PdbCodes) == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s// Molecule %d", kotlinutil.Indent, mol.Number))
		for _, code := range mol.PdbCodes {
			lines = append(lines, fmt.Sprintf("%sMotmToPdbMap(%d, %s),", kotlinutil.Indent, mol.Number, kotlinutil.Quote(code)))
		}
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n") + "\n"
}

const previewCodes = 5

// preview lists the first few codes of a molecule for the console summary.
func preview(codes []string) string {
	if len(codes) <= previewCodes {
		return strings.Join(codes, ", ")
	}
	return fmt.Sprintf("%s... (+%d more)", strings.Join(codes[:previewCodes], ", "), len(codes)-previewCodes)
}
