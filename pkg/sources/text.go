package sources

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PlainText converts an HTML fragment (feed descriptions, video
// descriptions) to plain text. Block elements and <br> become line breaks
// and runs of blank lines collapse to one.
func PlainText(fragment string) string {
	if !strings.ContainsAny(fragment, "<&") {
		return collapseBlank(fragment)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return collapseBlank(fragment)
	}
	doc.Find("script, style").Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("p, div, li, h1, h2, h3, h4, h5, h6, blockquote, pre, tr").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n\n")
	})
	return collapseBlank(doc.Text())
}

func collapseBlank(s string) string {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(lines))
	blank := true
	for _, l := range lines {
		l = strings.Join(strings.Fields(l), " ")
		if l == "" {
			if !blank {
				out = append(out, "")
			}
			blank = true
			continue
		}
		out = append(out, l)
		blank = false
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
