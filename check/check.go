// Package check inspects the persisted page after an update run. It is
// a pure reader: every probe is reported as a named pass/fail entry and
// nothing here ever mutates the document or aborts the battery early.
package check

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/scipunch/freshpage/config"
	"github.com/scipunch/freshpage/page"
)

// Check is one named probe result.
type Check struct {
	Name   string
	OK     bool
	Detail string // empty when the probe passed
}

// Report is the full battery outcome.
type Report struct {
	Checks []Check
}

// Failed counts failing checks.
func (r Report) Failed() int {
	n := 0
	for _, c := range r.Checks {
		if !c.OK {
			n++
		}
	}
	return n
}

// OK reports whether every check passed.
func (r Report) OK() bool { return r.Failed() == 0 }

// Run parses the document from r and probes the metadata fields and
// every managed region named in cfg.
func Run(r io.Reader, cfg config.Config) (Report, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return Report{}, fmt.Errorf("failed to parse page with %w", err)
	}

	var rep Report
	rep.add("page title", nonEmptyText(doc, "title"))
	rep.add("meta description", nonEmptyAttr(doc, `meta[name="description"]`, "content"))
	rep.add("last updated marker", nonEmptyText(doc, page.UpdatedSelector))

	rep.region(doc, "reddit region", cfg.Reddit.Selector)
	for _, news := range cfg.News {
		rep.region(doc, news.Name+" region", news.Selector)
	}
	return rep, nil
}

func (r *Report) add(name string, detail string) {
	r.Checks = append(r.Checks, Check{Name: name, OK: detail == "", Detail: detail})
}

// region probes one managed container: it must exist, hold at least one
// item, and every item link must carry text and an href.
func (r *Report) region(doc *goquery.Document, name, selector string) {
	sel := doc.Find(selector)
	if sel.Length() == 0 {
		r.add(name, fmt.Sprintf("no element matches %s", selector))
		return
	}

	items := sel.First().Children()
	if items.Length() == 0 {
		r.add(name, "region is empty")
		return
	}

	detail := ""
	items.EachWithBreak(func(i int, item *goquery.Selection) bool {
		a := item.Find("a").First()
		if a.Length() == 0 {
			detail = fmt.Sprintf("item %d has no link", i)
			return false
		}
		if strings.TrimSpace(a.Text()) == "" {
			detail = fmt.Sprintf("item %d link has no text", i)
			return false
		}
		if href, _ := a.Attr("href"); strings.TrimSpace(href) == "" {
			detail = fmt.Sprintf("item %d link has no href", i)
			return false
		}
		return true
	})
	r.add(name, detail)
}

func nonEmptyText(doc *goquery.Document, selector string) string {
	sel := doc.Find(selector)
	if sel.Length() == 0 {
		return fmt.Sprintf("no element matches %s", selector)
	}
	if strings.TrimSpace(sel.First().Text()) == "" {
		return "element is empty"
	}
	return ""
}

func nonEmptyAttr(doc *goquery.Document, selector, attr string) string {
	sel := doc.Find(selector)
	if sel.Length() == 0 {
		return fmt.Sprintf("no element matches %s", selector)
	}
	if val, _ := sel.First().Attr(attr); strings.TrimSpace(val) == "" {
		return fmt.Sprintf("attribute %s is empty", attr)
	}
	return ""
}
