package pdb101

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"motm-scrapers/lib/htmlutil"
	"motm-scrapers/lib/textutil"

	"github.com/PuerkitoBio/goquery"
)

const (
	maxIntroTaglineLength = 200
	// anything this long inside related resources is prose, not a category
	maxRelatedCategoryLength = 100
)

// Molecule is the metadata of one Molecule of the Month article.
type Molecule struct {
	Number        int      `json:"number"`
	Title         string   `json:"title"`
	Tagline       string   `json:"tagline"`
	Categories    []string `json:"categories"`
	ThumbnailHint string   `json:"thumbnail_hint"`
}

var (
	pageTitleSuffix = regexp.MustCompile(`\s*-\s*PDB-101.*$`)
	pageTitlePrefix = regexp.MustCompile(`^Molecule of the Month:\s*`)
)

func parseDocument(page string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(page))
}

// ExtractMolecule pulls the title, tagline, categories and thumbnail hint out
// of a molecule page. Missing fields are left empty.
func ExtractMolecule(ctx context.Context, page string, number int) (Molecule, error) {
	ctx, span := tracer.Start(ctx, "ExtractMolecule")
	defer span.End()

	doc, err := parseDocument(page)
	if err != nil {
		return Molecule{}, err
	}

	return Molecule{
		Number:        number,
		Title:         extractTitle(doc),
		Tagline:       extractTagline(doc),
		Categories:    extractCategories(ctx, doc),
		ThumbnailHint: extractThumbnailHint(doc),
	}, nil
}

// the h1 reads "Molecule of the Month: <title>", the page title is only used
// when there is no h1.
func extractTitle(doc *goquery.Document) string {
	h1 := doc.Find("h1").First()
	if h1.Length() > 0 {
		text := htmlutil.SelectionStrippedText(h1)
		_, after, found := strings.Cut(text, ":")
		if found {
			return strings.TrimSpace(after)
		}
		return text
	}

	title := doc.Find("title").First()
	if title.Length() == 0 {
		return ""
	}
	text := htmlutil.SelectionStrippedText(title)
	text = pageTitleSuffix.ReplaceAllString(text, "")
	text = pageTitlePrefix.ReplaceAllString(text, "")
	return text
}

func extractTagline(doc *goquery.Document) string {
	description := doc.Find(`meta[name="description"]`).First().AttrOr("content", "")
	if description != "" {
		return strings.TrimSpace(description)
	}

	intro := doc.Find("div.introduction").First()
	if intro.Length() == 0 {
		return ""
	}
	p := intro.Find("p").First()
	if p.Length() == 0 {
		return ""
	}
	return textutil.Truncate(htmlutil.SelectionStrippedText(p), maxIntroTaglineLength)
}

// categories come from browse links anywhere on the page and from every link
// in the related resources box.
func extractCategories(ctx context.Context, doc *goquery.Document) []string {
	found := map[string]struct{}{}

	for _, anchor := range htmlutil.GetAnchors(ctx, doc.Find("a[href]")) {
		if !strings.Contains(anchor.Href, "/browse/") {
			continue
		}
		category := textutil.StripBrowsePrefix(anchor.Name)
		if category != "" {
			found[category] = struct{}{}
		}
	}

	related := doc.Find("div.related-resources").First()
	related.Find("a").Each(func(_ int, a *goquery.Selection) {
		category := textutil.StripBrowsePrefix(htmlutil.SelectionStrippedText(a))
		if category != "" && textutil.RuneLen(category) < maxRelatedCategoryLength {
			found[category] = struct{}{}
		}
	})

	categories := make([]string, 0, len(found))
	for category := range found {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories
}

func extractThumbnailHint(doc *goquery.Document) string {
	return doc.Find(`meta[property="og:image"]`).First().AttrOr("content", "")
}
