package portfolio

import (
	"context"
	"sync"
	"time"
)

// ContentCache is an in-memory cache of both content collections with TTL.
// Every successful mutation invalidates it, so list and detail reads serve
// the store's latest state on the next request.
type ContentCache struct {
	mu           sync.RWMutex
	posts        []BlogPost
	publications []Publication
	tags         []string
	fetched      time.Time
	ttl          time.Duration
	store        Store
}

// NewContentCache creates a ContentCache backed by the given Store.
func NewContentCache(s Store, ttl time.Duration) *ContentCache {
	return &ContentCache{store: s, ttl: ttl}
}

func (c *ContentCache) valid() bool {
	return c.posts != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *ContentCache) Invalidate() {
	c.mu.Lock()
	c.posts = nil
	c.publications = nil
	c.tags = nil
	c.mu.Unlock()
}

func (c *ContentCache) load(ctx context.Context) error {
	posts, err := c.store.ListPosts(ctx)
	if err != nil {
		return err
	}
	pubs, err := c.store.ListPublications(ctx)
	if err != nil {
		return err
	}
	c.posts = posts
	if c.posts == nil {
		c.posts = []BlogPost{}
	}
	c.publications = pubs
	c.tags = listTags(posts)
	c.fetched = time.Now()
	return nil
}

// ensureLoaded refreshes the cache if stale. It tries a read lock first and
// only takes the write lock when a reload is needed.
func (c *ContentCache) ensureLoaded(ctx context.Context) ([]BlogPost, []Publication, []string, error) {
	c.mu.RLock()
	if c.valid() {
		posts, pubs, tags := c.posts, c.publications, c.tags
		c.mu.RUnlock()
		return posts, pubs, tags, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.valid() {
		if err := c.load(ctx); err != nil {
			return nil, nil, nil, err
		}
	}
	return c.posts, c.publications, c.tags, nil
}

// ListPosts returns cached posts, optionally filtered by tag.
func (c *ContentCache) ListPosts(ctx context.Context, tag string) ([]BlogPost, error) {
	posts, _, _, err := c.ensureLoaded(ctx)
	if err != nil {
		return nil, err
	}
	return filterPostsByTag(posts, tag), nil
}

// ListTags returns all unique tags across cached posts.
func (c *ContentCache) ListTags(ctx context.Context) ([]string, error) {
	_, _, tags, err := c.ensureLoaded(ctx)
	return tags, err
}

// GetPost returns a single cached post by slug.
func (c *ContentCache) GetPost(ctx context.Context, slug string) (BlogPost, error) {
	posts, _, _, err := c.ensureLoaded(ctx)
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

// ListPublications returns cached publications, newest year first.
func (c *ContentCache) ListPublications(ctx context.Context) ([]Publication, error) {
	_, pubs, _, err := c.ensureLoaded(ctx)
	if err != nil {
		return nil, err
	}
	return pubs, nil
}

// GetPublication returns a single cached publication by id.
func (c *ContentCache) GetPublication(ctx context.Context, id string) (Publication, error) {
	_, pubs, _, err := c.ensureLoaded(ctx)
	if err != nil {
		return Publication{}, err
	}
	for _, p := range pubs {
		if p.ID == id {
			return p, nil
		}
	}
	return Publication{}, ErrNotFound
}
