package scorer

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// pageText reduces a posting page to plain text suitable for a prompt:
// script/style/noscript subtrees are dropped and whitespace is collapsed.
// If the document cannot be parsed the raw input is returned; a noisy
// prompt beats no prompt.
func pageText(page string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return page
	}

	doc.Find("script, style, noscript").Remove()
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// truncate cuts s to at most n bytes to bound external-call cost.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
