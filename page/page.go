// Package page owns the managed document: one HTML file whose marked
// regions are replaced wholesale while everything around them passes
// through untouched. The file is read once per run and written back
// once, and only when some region actually changed.
package page

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/scipunch/freshpage/render"
)

// UpdatedSelector addresses the freshness marker. Renaming the class in
// the document requires changing it here and in the checker.
const UpdatedSelector = ".last-updated"

type Page struct {
	path    string
	doc     *goquery.Document
	changed bool
}

// Load reads and parses the managed document at path.
func Load(path string) (*Page, error) {
	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read page at '%s' with %w", path, err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(dat)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page at '%s' with %w", path, err)
	}
	return &Page{path: path, doc: doc}, nil
}

// Doc exposes the parsed tree for read-only scans.
func (p *Page) Doc() *goquery.Document { return p.doc }

// ReplaceRegion swaps the inner content of the region addressed by
// selector and marks the page changed. A selector that matches nothing
// is a no-op and reports false; the caller decides whether that is
// worth logging.
func (p *Page) ReplaceRegion(selector, content string) bool {
	sel := p.doc.Find(selector)
	if sel.Length() == 0 {
		return false
	}
	sel.First().SetHtml("\n" + content + "\n")
	p.changed = true
	return true
}

// Changed reports whether any region was replaced since Load.
func (p *Page) Changed() bool { return p.changed }

// StampUpdated rewrites the freshness marker to now. Regions decide
// whether the page changed; the stamp itself never does.
func (p *Page) StampUpdated(now time.Time) {
	sel := p.doc.Find(UpdatedSelector)
	if sel.Length() == 0 {
		return
	}
	sel.First().SetHtml(render.Timestamp(now))
}

// Save serializes the tree back to the file it was loaded from.
func (p *Page) Save() error {
	html, err := p.doc.Html()
	if err != nil {
		return fmt.Errorf("failed to serialize page with %w", err)
	}
	if err := os.WriteFile(p.path, []byte(html), 0644); err != nil {
		return fmt.Errorf("failed to write page at '%s' with %w", p.path, err)
	}
	return nil
}
