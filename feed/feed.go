// Package feed extracts items from the upstream listing formats. The
// two markup dialects are scanned with per-field patterns rather than a
// strict document parse: upstream formats drift, and one broken block
// must never cost the rest of the batch.
package feed

import "time"

// Item is a single news story pulled from a search feed.
type Item struct {
	Title     string
	URL       string
	Source    string    // attribution label, may be empty
	Published time.Time // zero when the feed omitted or garbled the date
}

// Post is a single entry from the social "hot" listing.
type Post struct {
	Title    string
	URL      string
	Upvotes  int
	Comments int
}
