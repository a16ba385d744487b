package pubfront

import (
	"database/sql"
	"sync"
	"time"

	"github.com/eringen/pubfront/views"
)

// ErrNotFound is returned when a requested post or page does not exist.
var ErrNotFound = sql.ErrNoRows

// PostCache is an in-memory cache of published blog posts and tags with TTL.
type PostCache struct {
	mu      sync.RWMutex
	posts   []BlogPost
	tags    []string
	fetched time.Time
	ttl     time.Duration
	store   *Store
}

// NewPostCache creates a PostCache backed by the given Store.
func NewPostCache(s *Store, ttl time.Duration) *PostCache {
	return &PostCache{store: s, ttl: ttl}
}

func (c *PostCache) valid() bool {
	return c.posts != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *PostCache) Invalidate() {
	c.mu.Lock()
	c.posts = nil
	c.tags = nil
	c.mu.Unlock()
}

func (c *PostCache) load() error {
	if c.valid() {
		return nil
	}
	posts, err := c.store.ListPosts("")
	if err != nil {
		return err
	}
	tags, err := c.store.ListTags()
	if err != nil {
		return err
	}
	if posts == nil {
		posts = []BlogPost{}
	}
	c.posts = posts
	c.tags = tags
	c.fetched = time.Now()
	return nil
}

// ensureLoaded returns cached posts and tags after ensuring the cache is fresh.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *PostCache) ensureLoaded() ([]BlogPost, []string, error) {
	c.mu.RLock()
	if c.valid() {
		posts, tags := c.posts, c.tags
		c.mu.RUnlock()
		return posts, tags, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(); err != nil {
		return nil, nil, err
	}
	return c.posts, c.tags, nil
}

// ListPosts returns published posts, newest first. A non-empty tagSlug keeps
// only posts with a tag whose slug equals it.
func (c *PostCache) ListPosts(tagSlug string) ([]BlogPost, error) {
	posts, _, err := c.ensureLoaded()
	if err != nil {
		return nil, err
	}
	if tagSlug == "" {
		return posts, nil
	}
	var filtered []BlogPost
	for _, p := range posts {
		if hasTagSlug(p, tagSlug) {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

func hasTagSlug(p BlogPost, slug string) bool {
	for _, t := range p.Tags {
		if views.Slug(t) == slug {
			return true
		}
	}
	return false
}

// ListTags returns all unique tags from published posts.
func (c *PostCache) ListTags() ([]string, error) {
	_, tags, err := c.ensureLoaded()
	return tags, err
}

// TagName returns the tag whose slug is slug.
func (c *PostCache) TagName(slug string) (string, error) {
	tags, err := c.ListTags()
	if err != nil {
		return "", err
	}
	for _, t := range tags {
		if views.Slug(t) == slug {
			return t, nil
		}
	}
	return "", ErrNotFound
}

// GetPost returns a single published post by slug from the cache.
func (c *PostCache) GetPost(slug string) (BlogPost, error) {
	posts, _, err := c.ensureLoaded()
	if err != nil {
		return BlogPost{}, err
	}
	for _, p := range posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return BlogPost{}, ErrNotFound
}

// Neighbors returns the posts published just before (prev) and just after
// (next) the post with slug. Either may be nil.
func (c *PostCache) Neighbors(slug string) (prev, next *BlogPost, err error) {
	posts, _, err := c.ensureLoaded()
	if err != nil {
		return nil, nil, err
	}
	for i := range posts {
		if posts[i].Slug != slug {
			continue
		}
		// posts are newest first
		if i+1 < len(posts) {
			prev = &posts[i+1]
		}
		if i > 0 {
			next = &posts[i-1]
		}
		return prev, next, nil
	}
	return nil, nil, ErrNotFound
}
