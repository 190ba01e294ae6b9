package htmlutil

import (
	"context"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var tracer = otel.Tracer("motm.lib.htmlutil")

// contents of these elements are never part of the readable text of a page
var skippedElements = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Template: true,
}

func walkText(node *html.Node, visit func(text string)) {
	if node == nil {
		return
	}
	switch node.Type {
	case html.TextNode:
		visit(node.Data)
		return
	case html.ElementNode:
		if skippedElements[node.DataAtom] {
			return
		}
	case html.CommentNode, html.DoctypeNode:
		return
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		walkText(child, visit)
	}
}

// GetText concatenates every text node under node, excluding script and style
// contents.
func GetText(node *html.Node) string {
	var out strings.Builder
	walkText(node, func(text string) {
		out.WriteString(text)
	})
	return out.String()
}

// GetStrippedText trims every text node under node and concatenates the
// non-empty results without a separator.
func GetStrippedText(node *html.Node) string {
	var out strings.Builder
	walkText(node, func(text string) {
		out.WriteString(strings.TrimSpace(text))
	})
	return out.String()
}

// SelectionText is GetText over every node of the selection.
func SelectionText(sel *goquery.Selection) string {
	var out strings.Builder
	for _, n := range sel.Nodes {
		out.WriteString(GetText(n))
	}
	return out.String()
}

// SelectionStrippedText is GetStrippedText over every node of the selection.
func SelectionStrippedText(sel *goquery.Selection) string {
	var out strings.Builder
	for _, n := range sel.Nodes {
		out.WriteString(GetStrippedText(n))
	}
	return out.String()
}

type Anchor struct {
	Name string
	Href string
}

var whitespace = regexp.MustCompile(`\s+`)

func removeNonPrintable(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, s)
}

// NormalizeText collapses runs of whitespace (newlines and tabs included) into
// a single space, drops non-printable characters and trims the ends.
func NormalizeText(s string) string {
	s = whitespace.ReplaceAllString(s, " ")
	s = removeNonPrintable(s)
	return strings.TrimSpace(s)
}

// GetAnchors returns the anchors of sel that carry an href, in document order.
// Names are the stripped text of each anchor.
func GetAnchors(ctx context.Context, sel *goquery.Selection) []Anchor {
	_, span := tracer.Start(ctx, "GetAnchors")
	defer span.End()

	var anchors []Anchor
	sel.Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok {
			return
		}
		name := GetStrippedText(a.Get(0))
		anchors = append(anchors, Anchor{
			Name: name,
			Href: href,
		})
		span.AddEvent("anchor", trace.WithAttributes(
			attribute.String("name", name),
			attribute.String("url", href),
		))
	})

	return anchors
}
