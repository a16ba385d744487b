package pubfront

import (
	"context"
	"sync"

	"github.com/eringen/pubfront/tagcount"
	"github.com/eringen/pubfront/views"
)

// TagCounter supplies the tag counts shown in the list sidebar.
// *tagcount.Client satisfies it.
type TagCounter interface {
	ListArticleTagCounts(ctx context.Context) ([]tagcount.Count, error)
}

// storeCounter counts tags straight from the local database.
type storeCounter struct {
	store *Store
}

func (s storeCounter) ListArticleTagCounts(ctx context.Context) ([]tagcount.Count, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.CountTags()
}

func viewTagCounts(counts []tagcount.Count) []views.TagCount {
	out := make([]views.TagCount, len(counts))
	for i, c := range counts {
		out[i] = views.TagCount{Tag: c.Tag, Count: c.Count}
	}
	return out
}

// onceCounter fetches the counts on first use and replays them afterwards.
// A static build renders every list page with one snapshot.
type onceCounter struct {
	inner  TagCounter
	once   sync.Once
	counts []tagcount.Count
	err    error
}

func (o *onceCounter) ListArticleTagCounts(ctx context.Context) ([]tagcount.Count, error) {
	o.once.Do(func() {
		o.counts, o.err = o.inner.ListArticleTagCounts(ctx)
	})
	return o.counts, o.err
}

// tagSlugs returns the distinct, non-empty slugs of tags in order. Tags whose
// names slug to the same value share one listing.
func tagSlugs(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	var slugs []string
	for _, t := range tags {
		slug := views.Slug(t)
		if slug == "" || seen[slug] {
			continue
		}
		seen[slug] = true
		slugs = append(slugs, slug)
	}
	return slugs
}
