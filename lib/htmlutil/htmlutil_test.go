package htmlutil

import (
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	require.NoError(t, err)
	return doc
}

func TestGetText(t *testing.T) {
	doc := parse(t, `<html><head><title>t</title><style>h1 { color: red }</style></head>
<body><h1>Molecule of the Month: <em>Hemoglobin</em></h1>
<script>var pdb = "1abc";</script><!-- 2xyz --><p>see 4hhb</p></body></html>`)

	text := SelectionText(doc.Find("body"))
	require.Contains(t, text, "Molecule of the Month: Hemoglobin")
	require.Contains(t, text, "see 4hhb")
	require.NotContains(t, text, "1abc")
	require.NotContains(t, text, "2xyz")
}

func TestGetStrippedText(t *testing.T) {
	doc := parse(t, `<h1>
		Molecule of the Month:
		<span> Hemoglobin </span>
	</h1>`)
	require.Equal(t, "Molecule of the Month:Hemoglobin", SelectionStrippedText(doc.Find("h1")))
}

func TestNormalizeText(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{input: "  Cellular   Signaling \n", expected: "Cellular Signaling"},
		{input: "HIV\u0000 and AIDS", expected: "HIV and AIDS"},
		{input: "Crystal\nstructure\tof lysozyme", expected: "Crystal structure of lysozyme"},
		{input: "", expected: ""},
	}
	for _, test := range testCases {
		require.Equal(t, test.expected, NormalizeText(test.input))
	}
}

func TestGetAnchors(t *testing.T) {
	doc := parse(t, `<div>
		<a href="/browse/viruses"> Browse Viruses </a>
		<a name="no-href">skip</a>
		<a href="/motm/41">Hemoglobin</a>
	</div>`)

	anchors := GetAnchors(context.Background(), doc.Find("a"))
	expected := []Anchor{
		{Name: "Browse Viruses", Href: "/browse/viruses"},
		{Name: "Hemoglobin", Href: "/motm/41"},
	}
	if diff := cmp.Diff(expected, anchors); diff != "" {
		t.Fatal(diff)
	}
}
