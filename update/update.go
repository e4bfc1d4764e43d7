// Package update runs the fetch-merge-persist pipeline over the managed
// page. Each region is an independent unit of work: its fetch or parse
// failing downgrades to "no change for that region" and the run carries
// on. The page is written back only when at least one region changed.
package update

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/scipunch/freshpage/config"
	"github.com/scipunch/freshpage/feed"
	"github.com/scipunch/freshpage/filter"
	"github.com/scipunch/freshpage/page"
	"github.com/scipunch/freshpage/render"
)

// parseHeadroom lets the parsers collect more candidates than a region
// needs, so the dedup filter still has material when most of the batch
// is already on the page.
const parseHeadroom = 4

// Getter fetches raw bytes for a URL. Satisfied by fetcher.Client.
type Getter interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

type Runner struct {
	Client Getter
	Config config.Config
	Now    func() time.Time // defaults to time.Now
}

// Run executes one full update pass: reddit region first, then each
// news region in config order.
func (r Runner) Run(ctx context.Context) error {
	pg, err := page.Load(r.Config.PagePath)
	if err != nil {
		return err
	}

	if err := r.updateReddit(ctx, pg); err != nil {
		slog.Error("reddit region skipped", "error", err)
	}
	for _, news := range r.Config.News {
		if err := r.updateNews(ctx, pg, news); err != nil {
			slog.Error("news region skipped", "region", news.Name, "error", err)
		}
	}

	if !pg.Changed() {
		slog.Info("no region changed, leaving page untouched")
		return nil
	}

	pg.StampUpdated(r.now())
	if err := pg.Save(); err != nil {
		return err
	}
	slog.Info("page updated", "path", r.Config.PagePath)
	return nil
}

func (r Runner) updateReddit(ctx context.Context, pg *page.Page) error {
	cfg := r.Config.Reddit
	raw, err := r.Client.Get(ctx, cfg.URL)
	if err != nil {
		return err
	}

	var posts []feed.Post
	switch cfg.Format {
	case config.AtomListing:
		for _, it := range feed.ParseEntries(string(raw), cfg.Limit*parseHeadroom) {
			posts = append(posts, feed.Post{Title: it.Title, URL: it.URL})
		}
	default:
		posts, err = feed.ParseListing(raw, cfg.Limit*parseHeadroom)
		if err != nil {
			return err
		}
	}

	posts = filter.SelectPosts(posts, cfg.Limit)
	if len(posts) == 0 {
		slog.Info("no reddit posts fetched, region unchanged")
		return nil
	}

	fragments := make([]string, 0, len(posts))
	for _, p := range posts {
		fragments = append(fragments, render.RedditPost(p))
	}
	if !pg.ReplaceRegion(cfg.Selector, render.Join(fragments)) {
		slog.Info("reddit region not found on page", "selector", cfg.Selector)
		return nil
	}
	slog.Info("reddit region updated", "posts", len(posts))
	return nil
}

func (r Runner) updateNews(ctx context.Context, pg *page.Page, cfg config.NewsConfig) error {
	raw, err := r.Client.Get(ctx, cfg.URL)
	if err != nil {
		return err
	}

	fetched := feed.ParseChannel(string(raw), cfg.Limit*parseHeadroom)
	existing := filter.ExistingTitles(pg.Doc(), cfg.Selector)
	items := filter.Select(fetched, existing, cfg.Limit)
	if len(items) == 0 {
		slog.Info("no new items for region, leaving unchanged",
			"region", cfg.Name, "fetched", len(fetched))
		return nil
	}

	class := fmt.Sprintf("%s-item", cfg.Name)
	fragments := make([]string, 0, len(items))
	for _, it := range items {
		fragments = append(fragments, render.NewsItem(it, class))
	}
	if !pg.ReplaceRegion(cfg.Selector, render.Join(fragments)) {
		slog.Info("news region not found on page", "region", cfg.Name, "selector", cfg.Selector)
		return nil
	}
	slog.Info("news region updated", "region", cfg.Name, "items", len(items))
	return nil
}

func (r Runner) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}
