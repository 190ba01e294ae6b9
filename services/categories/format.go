package categories

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"motm-scrapers/lib/kotlinutil"
	"motm-scrapers/lib/scrapers/pdb101"
	"motm-scrapers/lib/textutil"
)

const (
	maxTaglineLength   = 150
	thumbnailStemWidth = 30
)

func joinLines(lines []string) string {
	return strings.Join(lines, "\n") + "\n"
}

// FormatCategoryUpdates renders the additions to MotmByCategory.kt.
func FormatCategoryUpdates(table Table, c Classification) string {
	lines := kotlinutil.Banner("MotmByCategory.kt")
	lines = append(lines, "")

	for _, section := range Sections {
		if len(c.Sections[section]) == 0 {
			continue
		}
		lines = append(
			lines,
			"",
			fmt.Sprintf("// === %s ===", section.KotlinName()),
			"// Add these molecule numbers to the appropriate categories",
			"",
		)

		for _, category := range c.Categories(section) {
			header := kotlinutil.Indent + kotlinutil.Quote(category) + ","
			if !table.IsExisting(section, category) {
				header += " // NEW CATEGORY"
			}
			lines = append(lines, header)
			for _, n := range c.Sections[section][category] {
				lines = append(lines, fmt.Sprintf(`%s"%d",`, kotlinutil.Indent, n))
			}
			lines = append(lines, "")
		}
	}

	if len(c.Sections[Unknown]) > 0 {
		lines = append(lines, "", "// === UNKNOWN CATEGORIES (need manual mapping) ===")
		for _, category := range c.Categories(Unknown) {
			numbers := make([]string, len(c.Sections[Unknown][category]))
			for i, n := range c.Sections[Unknown][category] {
				numbers[i] = strconv.Itoa(n)
			}

			lines = append(
				lines,
				fmt.Sprintf("// Category: %s", kotlinutil.Quote(category)),
				fmt.Sprintf("// Molecules: %s", strings.Join(numbers, ", ")),
			)
			match, similarity, ok := table.Suggest(category)
			if ok {
				lines = append(lines, fmt.Sprintf("// Closest known category: %s (%.2f)", kotlinutil.Quote(match), similarity))
			}
			lines = append(lines, "")
		}
	}

	return joinLines(lines)
}

func sortedByNumber(molecules []pdb101.Molecule) []pdb101.Molecule {
	out := make([]pdb101.Molecule, len(molecules))
	copy(out, molecules)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Number < out[j].Number
	})
	return out
}

// FormatCorpusUpdates renders the additions to Corpus.kt.
func FormatCorpusUpdates(molecules []pdb101.Molecule) string {
	molecules = sortedByNumber(molecules)

	lines := kotlinutil.Banner("Corpus.kt")

	lines = append(lines, "", "// Update numMonths constant:")
	if len(molecules) == 0 {
		lines = append(lines, "// no molecules were scraped, numMonths stays as it is")
	} else {
		lines = append(lines, fmt.Sprintf("private const val numMonths = %d", molecules[len(molecules)-1].Number))
	}

	lines = append(lines, "", "// Add to corpus list:")
	for _, mol := range molecules {
		if mol.Title == "" {
			lines = append(lines, fmt.Sprintf(`%s/* //motm/%d */ "",  // TODO: Add title for %d`, kotlinutil.Indent, mol.Number, mol.Number))
			continue
		}
		lines = append(lines, fmt.Sprintf("%s/* //motm/%d */ %s,", kotlinutil.Indent, mol.Number, kotlinutil.Quote(mol.Title)))
	}

	lines = append(lines, "", "// Add to motmTagLines array:")
	for _, mol := range molecules {
		tagline := textutil.Truncate(mol.Tagline, maxTaglineLength)
		if tagline == "" {
			lines = append(lines, fmt.Sprintf(`%s"",  // TODO: Add tagline for %d`, kotlinutil.Indent, mol.Number))
			continue
		}
		lines = append(lines, kotlinutil.Indent+kotlinutil.Quote(tagline)+",")
	}

	lines = append(
		lines,
		"",
		"// Add to motmThumbnailImageList:",
		"// NOTE: These are hints - actual filenames may differ",
	)
	for _, mol := range molecules {
		line := fmt.Sprintf(
			`%s"%d-%s-homepage-tn.png",`,
			kotlinutil.Indent,
			mol.Number,
			textutil.FileStem(mol.Title, thumbnailStemWidth),
		)
		if mol.ThumbnailHint != "" {
			line += "  // og:image: " + mol.ThumbnailHint
		}
		lines = append(lines, line)
	}

	return joinLines(lines)
}
