package feed

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/scipunch/freshpage/entity"
)

// redditListing mirrors the slice of the listing payload we care about.
type redditListing struct {
	Data struct {
		Children []struct {
			Data struct {
				Title       string `json:"title"`
				Permalink   string `json:"permalink"`
				URL         string `json:"url"`
				Ups         int    `json:"ups"`
				NumComments int    `json:"num_comments"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// ParseListing decodes a reddit JSON listing into up to max posts,
// keeping the listing's own ranking order. Children without a title or
// any usable link are skipped.
func ParseListing(raw []byte, max int) ([]Post, error) {
	var listing redditListing
	if err := json.Unmarshal(raw, &listing); err != nil {
		return nil, fmt.Errorf("failed to decode listing with %w", err)
	}

	var posts []Post
	for _, child := range listing.Data.Children {
		if max > 0 && len(posts) >= max {
			break
		}
		title := strings.TrimSpace(entity.Decode(child.Data.Title))
		link := postLink(child.Data.Permalink, child.Data.URL)
		if title == "" || link == "" {
			continue
		}
		posts = append(posts, Post{
			Title:    title,
			URL:      link,
			Upvotes:  child.Data.Ups,
			Comments: child.Data.NumComments,
		})
	}
	return posts, nil
}

// postLink prefers the comment-thread permalink over the raw media URL.
func postLink(permalink, url string) string {
	permalink = strings.TrimSpace(permalink)
	if permalink != "" {
		return "https://www.reddit.com" + permalink
	}
	return strings.TrimSpace(url)
}
