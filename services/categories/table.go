package categories

import (
	"fmt"
	"sort"
	"strings"

	"motm-scrapers/lib/textutil"

	"github.com/antzucaro/matchr"
)

// Section is one of the groups categories are listed under in
// MotmByCategory.kt.
type Section string

const (
	Health     Section = "Health"
	Life       Section = "Life"
	Biotech    Section = "Biotech"
	Structures Section = "Structures"
	// categories that are not in the table
	Unknown Section = "Unknown"
)

// Sections in the order they appear in MotmByCategory.kt.
var Sections = []Section{Health, Life, Biotech, Structures}

// KotlinName is the name of the object holding the section's categories.
func (s Section) KotlinName() string {
	return "MotmCategory" + string(s)
}

func ParseSection(name string) (Section, error) {
	for _, s := range Sections {
		if strings.EqualFold(name, string(s)) {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown section '%s', expected one of Health, Life, Biotech or Structures", name)
}

var defaultSections = map[string]Section{
	"You and Your Health":      Health,
	"Immune System":            Health,
	"HIV and AIDS":             Health,
	"Diabetes":                 Health,
	"Cancer":                   Health,
	"Viruses":                  Health,
	"Toxins and Poisons":       Health,
	"Drug Action":              Health,
	"Antimicrobial Resistance": Health,
	"Drugs and the Brain":      Health,
	"Coronavirus":              Health,
	"Infectious Disease":       Health,
	"Peak Performance":         Health,
	"Vaccines":                 Health,

	"Protein Synthesis":                  Life,
	"Enzymes":                            Life,
	"Molecular Infrastructure":           Life,
	"Transport":                          Life,
	"Biological Energy":                  Life,
	"Molecules and the Environment":      Life,
	"Biology of Plants":                  Life,
	"Molecular Motors":                   Life,
	"Cellular Signaling":                 Life,
	"Nucleic Acids":                      Life,
	"Bioluminescence and Fluorescence":   Life,
	"Molecular Evolution":                Life,
	"Central Dogma":                      Life,
	"Molecules for a Sustainable Future": Life,

	"Recombinant DNA":  Biotech,
	"Biotechnology":    Biotech,
	"Nanotechnology":   Biotech,
	"Renewable Energy": Biotech,

	"Biomolecules":                    Structures,
	"Biomolecular Structural Biology": Structures,
	"Hybrid Methods":                  Structures,
	"Integrative/Hybrid Methods":      Structures,
	"Nobel Prizes and PDB Structures": Structures,
	"Nobel Prizes and PDB structures": Structures,
	"PDB Data":                        Structures,
	"Protein Structure Prediction, Design, and Computed Structure Models": Structures,
	"Protein Structure Prediction": Structures,
}

// categories already present in MotmByCategory.kt
var defaultExisting = map[Section][]string{
	Health: {
		"You and Your Health", "Immune System", "HIV and AIDS", "Diabetes",
		"Cancer", "Viruses", "Toxins and Poisons", "Drug Action",
		"Antimicrobial Resistance", "Drugs and the Brain", "Coronavirus",
	},
	Life: {
		"Protein Synthesis", "Enzymes", "Molecular Infrastructure", "Transport",
		"Biological Energy", "Molecules and the Environment", "Biology of Plants",
		"Molecular Motors", "Cellular Signaling", "Nucleic Acids",
		"Bioluminescence and Fluorescence", "Molecular Evolution", "Central Dogma",
	},
	Biotech: {
		"Recombinant DNA", "Biotechnology", "Nanotechnology", "Renewable Energy",
	},
	Structures: {
		"Biomolecules", "Biomolecular Structural Biology", "Hybrid Methods",
		"Nobel Prizes and PDB Structures",
	},
}

// SuggestThreshold is the lowest Jaro-Winkler similarity at which a known
// category is offered as a match for an unknown one.
const SuggestThreshold = 0.85

// Table maps category labels to sections.
type Table struct {
	sections map[string]Section
	existing map[Section]map[string]struct{}
}

func DefaultTable() Table {
	t := Table{
		sections: make(map[string]Section, len(defaultSections)),
		existing: make(map[Section]map[string]struct{}),
	}
	for category, section := range defaultSections {
		t.sections[category] = section
	}
	for section, list := range defaultExisting {
		set := make(map[string]struct{}, len(list))
		for _, category := range list {
			set[category] = struct{}{}
		}
		t.existing[section] = set
	}
	return t
}

// With returns a copy of the table with the extra category -> section name
// entries added, replacing existing mappings.
func (t Table) With(extra map[string]string) (Table, error) {
	out := Table{
		sections: make(map[string]Section, len(t.sections)+len(extra)),
		existing: t.existing,
	}
	for category, section := range t.sections {
		out.sections[category] = section
	}
	for category, name := range extra {
		section, err := ParseSection(name)
		if err != nil {
			return Table{}, fmt.Errorf("category '%s': %w", category, err)
		}
		out.sections[category] = section
	}
	return out, nil
}

func (t Table) Lookup(category string) (Section, bool) {
	section, ok := t.sections[category]
	return section, ok
}

// IsExisting reports whether the category is already listed under the
// section in MotmByCategory.kt.
func (t Table) IsExisting(section Section, category string) bool {
	_, ok := t.existing[section][category]
	return ok
}

// Suggest finds the known category most similar to the given one, ignoring
// case and whitespace. ok is false when nothing reaches SuggestThreshold.
func (t Table) Suggest(category string) (match string, similarity float64, ok bool) {
	normalized := textutil.NormalizeName(category)

	known := make([]string, 0, len(t.sections))
	for k := range t.sections {
		known = append(known, k)
	}
	sort.Strings(known)

	for _, k := range known {
		s := matchr.JaroWinkler(normalized, textutil.NormalizeName(k), false)
		if s > similarity {
			similarity = s
			match = k
		}
	}
	if similarity < SuggestThreshold {
		return "", similarity, false
	}
	return match, similarity, true
}
