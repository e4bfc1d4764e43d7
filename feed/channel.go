package feed

import (
	"regexp"
	"strings"
	"time"

	"github.com/scipunch/freshpage/entity"
)

// Package-level compiled patterns (avoid recompiling per block).
var (
	reItemStart    = regexp.MustCompile(`<item(?:\s[^>]*)?>`)
	reEntryStart   = regexp.MustCompile(`<entry(?:\s[^>]*)?>`)
	reTitleCDATA   = regexp.MustCompile(`(?s)<title>\s*<!\[CDATA\[(.*?)\]\]>\s*</title>`)
	reTitlePlain   = regexp.MustCompile(`(?s)<title[^>]*>(.*?)</title>`)
	reLinkElem     = regexp.MustCompile(`(?s)<link[^>]*>(.*?)</link>`)
	rePubDate      = regexp.MustCompile(`(?s)<pubDate[^>]*>(.*?)</pubDate>`)
	reSourceElem   = regexp.MustCompile(`(?s)<source[^>]*>(?:\s*<!\[CDATA\[(.*?)\]\]>\s*|(.*?))</source>`)
	reLinkHrefAttr = regexp.MustCompile(`<link[^>]*\bhref="([^"]*)"`)
	reWhitespace   = regexp.MustCompile(`\s+`)
)

// ParseChannel scans channel-style (item block) markup and returns up to
// max items in source order. Blocks missing a title or link are skipped.
func ParseChannel(raw string, max int) []Item {
	var items []Item
	for _, block := range scanBlocks(raw, reItemStart, "</item>") {
		if max > 0 && len(items) >= max {
			break
		}
		title := extractTitle(block)
		link := extractText(reLinkElem, block)
		if title == "" || link == "" {
			continue
		}
		items = append(items, Item{
			Title:     title,
			URL:       link,
			Source:    extractSource(block),
			Published: parseFeedDate(extractText(rePubDate, block)),
		})
	}
	return items
}

// ParseEntries scans entry-style (atom dialect) markup. Links live in an
// href attribute instead of the element body.
func ParseEntries(raw string, max int) []Item {
	var items []Item
	for _, block := range scanBlocks(raw, reEntryStart, "</entry>") {
		if max > 0 && len(items) >= max {
			break
		}
		title := extractTitle(block)
		var link string
		if m := reLinkHrefAttr.FindStringSubmatch(block); m != nil {
			link = strings.TrimSpace(m[1])
		}
		if title == "" || link == "" {
			continue
		}
		items = append(items, Item{Title: title, URL: link})
	}
	return items
}

// scanBlocks slices raw into per-block fragments. A fragment runs from
// the end of its opening tag to its closing tag, or to the next opening
// tag when the block never closes. Resyncing on the next opening tag
// means a truncated block costs only itself, never its successor.
func scanBlocks(raw string, start *regexp.Regexp, closeTag string) []string {
	starts := start.FindAllStringIndex(raw, -1)
	blocks := make([]string, 0, len(starts))
	for i, loc := range starts {
		end := len(raw)
		if i+1 < len(starts) {
			end = starts[i+1][0]
		}
		frag := raw[loc[1]:end]
		if idx := strings.Index(frag, closeTag); idx >= 0 {
			frag = frag[:idx]
		}
		blocks = append(blocks, frag)
	}
	return blocks
}

// extractTitle prefers the CDATA-wrapped form and falls back to a plain
// element body.
func extractTitle(block string) string {
	if m := reTitleCDATA.FindStringSubmatch(block); m != nil {
		return cleanField(m[1])
	}
	if m := reTitlePlain.FindStringSubmatch(block); m != nil {
		return cleanField(m[1])
	}
	return ""
}

func extractSource(block string) string {
	m := reSourceElem.FindStringSubmatch(block)
	if m == nil {
		return ""
	}
	if m[1] != "" {
		return cleanField(m[1])
	}
	return cleanField(m[2])
}

func extractText(re *regexp.Regexp, block string) string {
	m := re.FindStringSubmatch(block)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// cleanField normalizes extracted text: entities decoded, inner runs of
// whitespace collapsed, edges trimmed. A capture still holding raw
// markup came from a truncated block and is rejected outright.
func cleanField(s string) string {
	if strings.ContainsAny(s, "<>") {
		return ""
	}
	s = entity.Decode(s)
	s = reWhitespace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// parseFeedDate tries the date layouts seen in the wild for channel
// feeds. A date that fits none of them is dropped rather than guessed.
func parseFeedDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC1123Z, time.RFC1123, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
