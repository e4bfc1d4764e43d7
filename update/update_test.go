package update

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/scipunch/freshpage/config"
)

const pageFixture = `<!DOCTYPE html>
<html><head><title>Front Page</title></head>
<body>
<div class="reddit-posts">
<div class="reddit-post"><a href="https://reddit.example/old">Yesterday Post</a></div>
</div>
<div class="news-items">
<div class="news-item"><a href="https://news.example/old">Foo Bar</a></div>
</div>
<div class="impeachment-items">
<div class="impeachment-item"><a href="https://news.example/old2">Old Hearing</a></div>
</div>
<div class="last-updated">December 1, 2019 - 08:00 UTC</div>
</body></html>`

const (
	redditURL      = "https://test.invalid/reddit.json"
	newsURL        = "https://test.invalid/news"
	impeachmentURL = "https://test.invalid/impeachment"
)

// stubGetter serves canned bodies per URL; URLs without an entry fail.
type stubGetter struct {
	bodies map[string]string
}

func (s stubGetter) Get(_ context.Context, url string) ([]byte, error) {
	body, ok := s.bodies[url]
	if !ok {
		return nil, errors.New("stub: fetch refused")
	}
	return []byte(body), nil
}

func testConfig(pagePath string) config.Config {
	cfg := config.Default()
	cfg.PagePath = pagePath
	cfg.Reddit.URL = redditURL
	cfg.News[0].URL = newsURL
	cfg.News[1].URL = impeachmentURL
	return cfg
}

func writePage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "index.html")
	if err := os.WriteFile(path, []byte(pageFixture), 0644); err != nil {
		t.Fatalf("failed to write page fixture: %v", err)
	}
	return path
}

func runAt(t *testing.T, cfg config.Config, bodies map[string]string, now time.Time) {
	t.Helper()
	r := Runner{
		Client: stubGetter{bodies: bodies},
		Config: cfg,
		Now:    func() time.Time { return now },
	}
	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
}

func TestRunAllFetchesFailLeavesPageByteIdentical(t *testing.T) {
	path := writePage(t)
	before, _ := os.ReadFile(path)

	runAt(t, testConfig(path), nil, time.Date(2019, time.December, 2, 23, 5, 0, 0, time.UTC))

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to re-read page: %v", err)
	}
	if string(before) != string(after) {
		t.Error("page was rewritten although every fetch failed")
	}
}

func TestRunSingleRegionSuccess(t *testing.T) {
	path := writePage(t)
	bodies := map[string]string{
		newsURL: `<rss><channel>
<item><title><![CDATA[Baz]]></title><link>https://news.example/baz</link><pubDate>Mon, 02 Dec 2019 10:00:00 +0000</pubDate><source url="https://p">The Paper</source></item>
</channel></rss>`,
	}

	runAt(t, testConfig(path), bodies, time.Date(2019, time.December, 2, 23, 5, 0, 0, time.UTC))

	saved, _ := os.ReadFile(path)
	html := string(saved)

	if !strings.Contains(html, ">Baz</a>") {
		t.Error("new news item missing from the page")
	}
	if !strings.Contains(html, "Yesterday Post") {
		t.Error("failed reddit region must stay untouched")
	}
	if !strings.Contains(html, "Old Hearing") {
		t.Error("failed impeachment region must stay untouched")
	}
	if !strings.Contains(html, "December 2, 2019 - 23:05 UTC") {
		t.Error("timestamp not refreshed after a successful region update")
	}
	if strings.Contains(html, "December 1, 2019 - 08:00 UTC") {
		t.Error("stale timestamp survived")
	}
}

func TestRunDedupesAgainstPageContent(t *testing.T) {
	path := writePage(t)
	bodies := map[string]string{
		newsURL: `<rss><channel>
<item><title>  foo bar </title><link>https://news.example/dup</link></item>
<item><title>Baz</title><link>https://news.example/baz</link></item>
</channel></rss>`,
	}

	runAt(t, testConfig(path), bodies, time.Now())

	saved, _ := os.ReadFile(path)
	html := string(saved)

	if strings.Contains(html, "https://news.example/dup") {
		t.Error("item matching an existing title slipped past the dedup filter")
	}
	if !strings.Contains(html, ">Baz</a>") {
		t.Error("fresh item missing after merge")
	}
}

func TestRunRedditJSONListing(t *testing.T) {
	path := writePage(t)
	bodies := map[string]string{
		redditURL: `{"data":{"children":[
{"data":{"title":"Hot One","permalink":"/r/news/comments/a/","ups":10,"num_comments":2}},
{"data":{"title":"Hot Two","permalink":"/r/news/comments/b/","ups":7,"num_comments":1}}
]}}`,
	}

	runAt(t, testConfig(path), bodies, time.Now())

	saved, _ := os.ReadFile(path)
	html := string(saved)

	if !strings.Contains(html, "Hot One") || !strings.Contains(html, "Hot Two") {
		t.Error("reddit posts missing from region")
	}
	if strings.Contains(html, "Yesterday Post") {
		t.Error("reddit region must be fully replaced, not appended to")
	}
}

func TestRunRedditAtomFormat(t *testing.T) {
	path := writePage(t)
	cfg := testConfig(path)
	cfg.Reddit.Format = config.AtomListing
	bodies := map[string]string{
		redditURL: `<feed>
<entry><title>Atom Hot</title><link href="https://reddit.example/atom"/></entry>
</feed>`,
	}

	runAt(t, cfg, bodies, time.Now())

	saved, _ := os.ReadFile(path)
	if !strings.Contains(string(saved), "Atom Hot") {
		t.Error("entry-style reddit post missing from region")
	}
}

func TestRunEmptyFeedLeavesRegionUntouched(t *testing.T) {
	path := writePage(t)
	bodies := map[string]string{
		newsURL: `<rss><channel><title>nothing here</title></channel></rss>`,
	}

	before, _ := os.ReadFile(path)
	runAt(t, testConfig(path), bodies, time.Now())
	after, _ := os.ReadFile(path)

	if string(before) != string(after) {
		t.Error("an empty fetch result must not rewrite the page")
	}
}

func TestRunMissingPageFails(t *testing.T) {
	cfg := testConfig(filepath.Join(t.TempDir(), "absent.html"))
	r := Runner{Client: stubGetter{}, Config: cfg}
	if err := r.Run(context.Background()); err == nil {
		t.Fatal("expected an error when the managed page is missing")
	}
}
