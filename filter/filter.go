// Package filter decides which fetched items actually reach the page.
// The only comparison key is the normalized title: two sources covering
// one story usually disagree on the URL but rarely on the headline.
package filter

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/cases"

	"github.com/scipunch/freshpage/feed"
)

// Normalize returns the dedup key for a title: edges trimmed, Unicode
// case folded. A Caser is not safe for concurrent use, so each call
// builds its own.
func Normalize(title string) string {
	return cases.Fold().String(strings.TrimSpace(title))
}

// DedupeBatch removes later duplicates from one fetch batch. The first
// occurrence wins and input order is preserved.
func DedupeBatch(items []feed.Item) []feed.Item {
	seen := make(map[string]bool, len(items))
	out := make([]feed.Item, 0, len(items))
	for _, it := range items {
		key := Normalize(it.Title)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, it)
	}
	return out
}

// ExistingTitles collects the normalized titles already rendered inside
// the region addressed by selector. A missing region yields an empty
// set.
func ExistingTitles(doc *goquery.Document, selector string) map[string]bool {
	titles := make(map[string]bool)
	doc.Find(selector).Find("a").Each(func(_ int, a *goquery.Selection) {
		title := Normalize(a.Text())
		if title != "" {
			titles[title] = true
		}
	})
	return titles
}

// Fresh filters candidates down to items whose title is not already on
// the page, truncated to limit. Batch duplicates must be removed by the
// caller first (or use Select).
func Fresh(candidates []feed.Item, existing map[string]bool, limit int) []feed.Item {
	out := make([]feed.Item, 0, limit)
	for _, it := range candidates {
		if len(out) >= limit {
			break
		}
		if existing[Normalize(it.Title)] {
			continue
		}
		out = append(out, it)
	}
	return out
}

// Select is the full merge policy for a news region: batch dedup, then
// the cross-run title filter, then the region limit.
func Select(fetched []feed.Item, existing map[string]bool, limit int) []feed.Item {
	return Fresh(DedupeBatch(fetched), existing, limit)
}

// SelectPosts applies only batch dedup and the limit. The social region
// intentionally skips the cross-run filter: hot rankings rotate on
// their own, the region mirrors the current ranking instead of
// accumulating it.
func SelectPosts(fetched []feed.Post, limit int) []feed.Post {
	seen := make(map[string]bool, len(fetched))
	out := make([]feed.Post, 0, limit)
	for _, p := range fetched {
		if len(out) >= limit {
			break
		}
		key := Normalize(p.Title)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, p)
	}
	return out
}
