package categories

import (
	"sort"

	"motm-scrapers/lib/scrapers/pdb101"
)

// Classification groups molecule numbers by section and category.
type Classification struct {
	// section -> category -> sorted, unique molecule numbers
	Sections map[Section]map[string][]int
	// categories missing from the table, sorted
	NewCategories []string
}

func Classify(table Table, molecules []pdb101.Molecule) Classification {
	sets := make(map[Section]map[string]map[int]struct{})
	for _, mol := range molecules {
		for _, category := range mol.Categories {
			section, ok := table.Lookup(category)
			if !ok {
				section = Unknown
			}
			if sets[section] == nil {
				sets[section] = make(map[string]map[int]struct{})
			}
			if sets[section][category] == nil {
				sets[section][category] = make(map[int]struct{})
			}
			sets[section][category][mol.Number] = struct{}{}
		}
	}

	out := Classification{
		Sections:      make(map[Section]map[string][]int, len(sets)),
		NewCategories: []string{},
	}
	for section, categories := range sets {
		out.Sections[section] = make(map[string][]int, len(categories))
		for category, numbers := range categories {
			list := make([]int, 0, len(numbers))
			for n := range numbers {
				list = append(list, n)
			}
			sort.Ints(list)
			out.Sections[section][category] = list

			if section == Unknown {
				out.NewCategories = append(out.NewCategories, category)
			}
		}
	}
	sort.Strings(out.NewCategories)

	return out
}

// Categories lists the categories of a section in sorted order.
func (c Classification) Categories(section Section) []string {
	out := make([]string, 0, len(c.Sections[section]))
	for category := range c.Sections[section] {
		out = append(out, category)
	}
	sort.Strings(out)
	return out
}

// Entries is the number of (category, molecule) pairs in a section.
func (c Classification) Entries(section Section) int {
	total := 0
	for _, numbers := range c.Sections[section] {
		total += len(numbers)
	}
	return total
}
