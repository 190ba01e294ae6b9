package categories

import (
	"strings"
	"testing"

	"motm-scrapers/lib/scrapers/pdb101"

	"github.com/stretchr/testify/require"
)

var rule = strings.Repeat("=", 60)

func TestFormatCategoryUpdates(t *testing.T) {
	table := DefaultTable()
	c := Classify(table, []pdb101.Molecule{
		{Number: 260, Categories: []string{"Viruses"}},
		{Number: 258, Categories: []string{"Viruses"}},
		{Number: 259, Categories: []string{"PDB Data"}},
	})

	expected := strings.Join([]string{
		rule,
		"UPDATES FOR MotmByCategory.kt",
		rule,
		"",
		"",
		"// === MotmCategoryHealth ===",
		"// Add these molecule numbers to the appropriate categories",
		"",
		`            "Viruses",`,
		`            "258",`,
		`            "260",`,
		"",
		"",
		"// === MotmCategoryStructures ===",
		"// Add these molecule numbers to the appropriate categories",
		"",
		`            "PDB Data", // NEW CATEGORY`,
		`            "259",`,
		"",
	}, "\n") + "\n"

	require.Equal(t, expected, FormatCategoryUpdates(table, c))
}

func TestFormatCategoryUpdatesUnknown(t *testing.T) {
	table := DefaultTable()
	c := Classify(table, []pdb101.Molecule{
		{Number: 301, Categories: []string{"Xenobiology", "Vaccine"}},
		{Number: 299, Categories: []string{"Xenobiology"}},
	})

	out := FormatCategoryUpdates(table, c)
	require.Contains(t, out, "// === UNKNOWN CATEGORIES (need manual mapping) ===\n")
	require.Contains(t, out, "// Category: \"Xenobiology\"\n// Molecules: 299, 301\n")
	require.Contains(t, out, "// Category: \"Vaccine\"\n// Molecules: 301\n// Closest known category: \"Vaccines\"")
	require.Equal(t, 1, strings.Count(out, `"Xenobiology"`))
	require.NotContains(t, out, "MotmCategoryHealth")
}

func TestFormatCorpusUpdates(t *testing.T) {
	molecules := []pdb101.Molecule{
		{
			Number:        259,
			Title:         `The "Spike" Protein`,
			Tagline:       "",
			ThumbnailHint: "https://cdn.rcsb.org/pdb101/motm/images/259.png",
		},
		{
			Number:  258,
			Title:   "Hemoglobin",
			Tagline: "Hemoglobin carries oxygen in $blood.",
		},
	}

	expected := strings.Join([]string{
		rule,
		"UPDATES FOR Corpus.kt",
		rule,
		"",
		"// Update numMonths constant:",
		"private const val numMonths = 259",
		"",
		"// Add to corpus list:",
		`            /* //motm/258 */ "Hemoglobin",`,
		`            /* //motm/259 */ "The \"Spike\" Protein",`,
		"",
		"// Add to motmTagLines array:",
		`            "Hemoglobin carries oxygen in \$blood.",`,
		`            "",  // TODO: Add tagline for 259`,
		"",
		"// Add to motmThumbnailImageList:",
		"// NOTE: These are hints - actual filenames may differ",
		`            "258-Hemoglobin-homepage-tn.png",`,
		`            "259-The__Spike__Protein-homepage-tn.png",  // og:image: https://cdn.rcsb.org/pdb101/motm/images/259.png`,
	}, "\n") + "\n"

	require.Equal(t, expected, FormatCorpusUpdates(molecules))
	// input order is left alone
	require.Equal(t, 259, molecules[0].Number)
}

func TestFormatCorpusUpdatesTruncation(t *testing.T) {
	title := strings.Repeat("ab", 20)
	tagline := strings.Repeat("é", 200)

	out := FormatCorpusUpdates([]pdb101.Molecule{{Number: 1, Title: title, Tagline: tagline}})
	require.Contains(t, out, `"`+strings.Repeat("é", 150)+`",`)
	require.NotContains(t, out, strings.Repeat("é", 151))
	require.Contains(t, out, `"1-`+title[:30]+`-homepage-tn.png",`)
}

func TestFormatCorpusUpdatesPlaceholders(t *testing.T) {
	out := FormatCorpusUpdates([]pdb101.Molecule{{Number: 7}})
	require.Contains(t, out, `/* //motm/7 */ "",  // TODO: Add title for 7`)
	require.Contains(t, out, `"",  // TODO: Add tagline for 7`)
	require.Contains(t, out, `"7--homepage-tn.png",`)

	out = FormatCorpusUpdates(nil)
	require.Contains(t, out, "// no molecules were scraped, numMonths stays as it is")
	require.NotContains(t, out, "private const val numMonths")
}
