package directions

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PlainInstructions strips markup such as <b>Broadway</b> from step instructions
// and collapses whitespace, for terminal and calendar output
func PlainInstructions(html string) string {
	if !strings.ContainsAny(html, "<&") {
		return strings.Join(strings.Fields(html), " ")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return strings.Join(strings.Fields(html), " ")
	}

	return strings.Join(strings.Fields(doc.Text()), " ")
}
