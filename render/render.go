// Package render turns parsed items into the HTML fragments the page
// already uses for each section.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/scipunch/freshpage/entity"
	"github.com/scipunch/freshpage/feed"
)

const metaSeparator = " - "

// RedditPost renders one social post for the reddit-posts region.
func RedditPost(p feed.Post) string {
	return fmt.Sprintf(
		`<div class="reddit-post">%s</div>`,
		link(p.URL, p.Title),
	)
}

// NewsItem renders one news story with the given section class
// ("news-item" or "impeachment-item"). The meta line carries the source
// label and a short date, skipping whichever is absent.
func NewsItem(it feed.Item, class string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<div class="%s">%s`, class, link(it.URL, it.Title))
	if meta := metaLine(it.Source, it.Published); meta != "" {
		fmt.Fprintf(&b, `<div class="%s-meta">%s</div>`, class, meta)
	}
	b.WriteString(`</div>`)
	return b.String()
}

// Join concatenates fragments into region content, one per line.
func Join(fragments []string) string {
	return strings.Join(fragments, "\n")
}

// Timestamp renders the freshness marker content: date, 24-hour UTC
// time, and the zone marker.
func Timestamp(t time.Time) string {
	t = t.UTC()
	return t.Format("January 2, 2006") + metaSeparator + t.Format("15:04") + " UTC"
}

func link(href, text string) string {
	return fmt.Sprintf(
		`<a href="%s" target="_blank" rel="noopener noreferrer">%s</a>`,
		entity.EncodeAttr(href),
		entity.EncodeText(text),
	)
}

func metaLine(source string, published time.Time) string {
	var parts []string
	if source != "" {
		parts = append(parts, entity.EncodeText(source))
	}
	if !published.IsZero() {
		parts = append(parts, published.Format("January 2, 2006"))
	}
	return strings.Join(parts, metaSeparator)
}
