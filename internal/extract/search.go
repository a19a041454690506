package extract

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"

	"gradplus/internal/ports"
)

// containerSelector picks the block around a bare detail anchor whose text
// is matched against the query.
const containerSelector = "li, tr, article, section, div"

type searchHit struct {
	url  string
	text string // lower-cased text of the surrounding container
}

// ResolveDetailURL fetches the search results for query and returns the
// absolute URL of the most likely detail page.
func ResolveDetailURL(ctx context.Context, fetcher ports.PageFetcher, site *Site, query string) (string, error) {
	body, err := fetcher.Fetch(ctx, site.SearchURL(query))
	if err != nil {
		return "", eris.Wrapf(err, "fetch search results for %q", query)
	}
	return PickDetailURL(body, site, query)
}

// PickDetailURL chooses a detail link from a search-results page. A link
// whose container mentions the query wins; otherwise the first result-item
// link, otherwise the first link matching the detail-page pattern.
func PickDetailURL(body string, site *Site, query string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return "", eris.Wrap(err, "parse search results")
	}

	var items, anchors []searchHit
	seen := map[string]bool{}
	doc.Find(site.ResultItemSelector).Each(func(_ int, item *goquery.Selection) {
		item.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
			href, _ := a.Attr("href")
			if !site.IsDetailHref(href) {
				return true
			}
			u := site.Resolve(href)
			if u != "" && !seen[u] {
				seen[u] = true
				items = append(items, searchHit{url: u, text: strings.ToLower(collapse(item.Text()))})
			}
			return false
		})
	})
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if !site.IsDetailHref(href) {
			return
		}
		u := site.Resolve(href)
		if u == "" || seen[u] {
			return
		}
		seen[u] = true
		text := a.Text()
		if c := a.Closest(containerSelector); c.Length() > 0 {
			text = c.Text()
		}
		anchors = append(anchors, searchHit{url: u, text: strings.ToLower(collapse(text))})
	})

	if q := strings.ToLower(collapse(query)); q != "" {
		for _, hits := range [][]searchHit{items, anchors} {
			for _, h := range hits {
				if strings.Contains(h.text, q) {
					return h.url, nil
				}
			}
		}
	}
	switch {
	case len(items) > 0:
		return items[0].url, nil
	case len(anchors) > 0:
		return anchors[0].url, nil
	}
	return "", eris.Wrapf(ErrNoSearchResult, "query %q", query)
}
