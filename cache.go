package sitepress

import (
	"context"
	"strings"
	"sync"
	"time"
)

// PostCache is an in-memory cache of published posts and categories with a
// TTL. Writes invalidate it through the change-notification stream.
type PostCache struct {
	mu         sync.RWMutex
	posts      []BlogPost
	categories []string
	fetched    time.Time
	ttl        time.Duration
	store      *Store
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
	c.categories = nil
	c.mu.Unlock()
}

// Watch invalidates the cache on every post-table change event until ctx is
// canceled.
func (c *PostCache) Watch(ctx context.Context, n *Notifier) {
	events := n.Subscribe(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-events:
			if !ok {
				return
			}
			if e.Table == TablePosts {
				c.Invalidate()
			}
		}
	}
}

func (c *PostCache) load() error {
	if c.valid() {
		return nil
	}
	posts, err := c.store.ListPosts("")
	if err != nil {
		return err
	}
	categories, err := c.store.ListCategories()
	if err != nil {
		return err
	}
	c.posts = posts
	c.categories = categories
	c.fetched = time.Now()
	return nil
}

// ensureLoaded returns cached posts and categories after ensuring freshness.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *PostCache) ensureLoaded() ([]BlogPost, []string, error) {
	c.mu.RLock()
	if c.valid() {
		posts, categories := c.posts, c.categories
		c.mu.RUnlock()
		return posts, categories, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(); err != nil {
		return nil, nil, err
	}
	return c.posts, c.categories, nil
}

// ListPosts returns published posts, optionally filtered by category.
func (c *PostCache) ListPosts(category string) ([]BlogPost, error) {
	posts, _, err := c.ensureLoaded()
	if err != nil {
		return nil, err
	}
	if category == "" {
		return posts, nil
	}
	normalized := strings.ToLower(strings.TrimSpace(category))
	var filtered []BlogPost
	for _, p := range posts {
		if strings.ToLower(p.Category) == normalized {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// ListCategories returns all categories with published posts.
func (c *PostCache) ListCategories() ([]string, error) {
	_, categories, err := c.ensureLoaded()
	return categories, err
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

// FeaturedPosts returns the cached published posts flagged as featured.
func (c *PostCache) FeaturedPosts() ([]BlogPost, error) {
	posts, _, err := c.ensureLoaded()
	if err != nil {
		return nil, err
	}
	var featured []BlogPost
	for _, p := range posts {
		if p.Featured {
			featured = append(featured, p)
		}
	}
	return featured, nil
}
