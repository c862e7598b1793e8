package wiki

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// extractLinks collects article titles linked from rendered page HTML.
// Red links (class "new") and namespaced titles such as "Category:X" or
// "File:Y" are skipped; order follows the document and duplicates collapse.
func extractLinks(html string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	var (
		titles []string
		seen   = map[string]struct{}{}
	)
	doc.Find("a[title]").Each(func(_ int, a *goquery.Selection) {
		if a.HasClass("new") {
			return
		}
		href, _ := a.Attr("href")
		if !strings.Contains(href, "/wiki/") {
			return
		}
		title := strings.TrimSpace(a.AttrOr("title", ""))
		if title == "" || strings.Contains(title, ":") {
			return
		}
		if _, ok := seen[title]; ok {
			return
		}
		seen[title] = struct{}{}
		titles = append(titles, title)
	})

	return titles, nil
}
