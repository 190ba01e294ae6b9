package pdb101

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"motm-scrapers/lib/htmlutil"

	"go.opentelemetry.io/otel/attribute"
)

// MoleculeCodes are the PDB entries referenced by one molecule page.
type MoleculeCodes struct {
	Number   int      `json:"number"`
	PdbCodes []string `json:"pdb_codes"`
}

var (
	structureHref = regexp.MustCompile(`/structure/([0-9A-Za-z]{4})(?:[^0-9A-Za-z]|$)`)
	viewerHref    = regexp.MustCompile(`/3d-view/([0-9A-Za-z]{4})(?:[^0-9A-Za-z]|$)`)

	// a digit followed by three alphanumerics, standing alone
	candidateToken = regexp.MustCompile(`\b([0-9][0-9A-Za-z]{3})\b`)
	// "PDB 1abc", "PDB ID: 1abc", "PDB entry 1abc", separators include &nbsp;
	explicitMention = regexp.MustCompile(`(?i)PDB[:\s\p{Zs}]+(?:ID[:\s\p{Zs}]+)?(?:entry[:\s\p{Zs}]+)?([0-9][0-9A-Za-z]{3})\b`)

	codeShape   = regexp.MustCompile(`^[0-9][0-9a-z]{3}$`)
	yearPattern = regexp.MustCompile(`^(19|20)\d{2}$`)
)

var excludedCodes = map[string]bool{
	"1000": true,
	"2000": true,
	"3000": true,
	"4000": true,
	"5000": true,
	"100k": true,
	"200k": true,
}

// IsLikelyPdbCode filters free-text candidates. It rejects years 1900-2099, a
// handful of round numbers and anything without a letter after the first
// character. This is an approximation, codes are not checked against the PDB.
func IsLikelyPdbCode(code string) bool {
	code = strings.ToLower(code)
	if !codeShape.MatchString(code) {
		return false
	}
	if yearPattern.MatchString(code) {
		return false
	}
	if excludedCodes[code] {
		return false
	}
	return strings.Trim(code[1:], "0123456789") != ""
}

// ExtractPdbCodes collects the PDB codes a molecule page refers to, from links
// to structure pages, from code-like tokens in the text and from explicit
// "PDB <code>" mentions. Explicit mentions are trusted without filtering.
func ExtractPdbCodes(ctx context.Context, page string, number int) (MoleculeCodes, error) {
	ctx, span := tracer.Start(ctx, "ExtractPdbCodes")
	defer span.End()

	doc, err := parseDocument(page)
	if err != nil {
		return MoleculeCodes{}, err
	}

	codes := map[string]struct{}{}

	for _, anchor := range htmlutil.GetAnchors(ctx, doc.Find("a[href]")) {
		match := structureHref.FindStringSubmatch(anchor.Href)
		if match == nil {
			match = viewerHref.FindStringSubmatch(anchor.Href)
		}
		if match != nil {
			codes[strings.ToLower(match[1])] = struct{}{}
		}
	}

	text := htmlutil.SelectionText(doc.Selection)

	for _, match := range candidateToken.FindAllStringSubmatch(text, -1) {
		code := strings.ToLower(match[1])
		if IsLikelyPdbCode(code) {
			codes[code] = struct{}{}
		}
	}

	for _, match := range explicitMention.FindAllStringSubmatch(text, -1) {
		codes[strings.ToLower(match[1])] = struct{}{}
	}

	result := make([]string, 0, len(codes))
	for code := range codes {
		result = append(result, code)
	}
	sort.Strings(result)

	span.SetAttributes(attribute.Int("codes", len(result)))
	return MoleculeCodes{
		Number:   number,
		PdbCodes: result,
	}, nil
}
