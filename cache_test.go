package sitepress

import (
	"context"
	"testing"
	"time"
)

func TestPostCacheServesAndInvalidates(t *testing.T) {
	s := setupTestStore(t)
	if err := s.SavePost(BlogPost{Slug: "one", Title: "One", Category: "news", Status: StatusPublished, CreatedAt: "2026-08-01"}); err != nil {
		t.Fatalf("SavePost failed: %v", err)
	}

	c := NewPostCache(s, time.Minute)
	posts, err := c.ListPosts("")
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("ListPosts = %d posts, want 1", len(posts))
	}

	// A write behind the cache is invisible until invalidation.
	if err := s.SavePost(BlogPost{Slug: "two", Title: "Two", Status: StatusPublished, CreatedAt: "2026-08-02"}); err != nil {
		t.Fatalf("SavePost failed: %v", err)
	}
	posts, _ = c.ListPosts("")
	if len(posts) != 1 {
		t.Fatalf("cache should still serve the stale set, got %d", len(posts))
	}

	c.Invalidate()
	posts, _ = c.ListPosts("")
	if len(posts) != 2 {
		t.Fatalf("after Invalidate: %d posts, want 2", len(posts))
	}
}

func TestPostCacheFilters(t *testing.T) {
	s := setupTestStore(t)
	for _, p := range []BlogPost{
		{Slug: "a", Title: "A", Category: "News", Status: StatusPublished, Featured: true, CreatedAt: "2026-08-01"},
		{Slug: "b", Title: "B", Category: "guides", Status: StatusPublished, CreatedAt: "2026-08-02"},
	} {
		if err := s.SavePost(p); err != nil {
			t.Fatalf("SavePost failed: %v", err)
		}
	}
	c := NewPostCache(s, time.Minute)

	news, err := c.ListPosts(" NEWS ")
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(news) != 1 || news[0].Slug != "a" {
		t.Errorf("ListPosts(NEWS) = %v", news)
	}

	featured, err := c.FeaturedPosts()
	if err != nil {
		t.Fatalf("FeaturedPosts failed: %v", err)
	}
	if len(featured) != 1 || featured[0].Slug != "a" {
		t.Errorf("FeaturedPosts = %v", featured)
	}

	if _, err := c.GetPost("missing"); err != ErrNotFound {
		t.Errorf("GetPost(missing) err = %v, want ErrNotFound", err)
	}
}

func TestPostCacheWatchInvalidatesOnPostEvents(t *testing.T) {
	s := setupTestStore(t)
	n := NewNotifier()
	defer n.Close()

	c := NewPostCache(s, time.Hour)
	if _, err := c.ListPosts(""); err != nil {
		t.Fatalf("prime cache: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go c.Watch(ctx, n)
	time.Sleep(20 * time.Millisecond)

	if err := s.SavePost(BlogPost{Slug: "new", Title: "New", Status: StatusPublished, CreatedAt: "2026-08-03"}); err != nil {
		t.Fatalf("SavePost failed: %v", err)
	}
	n.Publish(Event{Table: TablePosts, Op: OpInsert})

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		posts, err := c.ListPosts("")
		if err != nil {
			t.Fatalf("ListPosts failed: %v", err)
		}
		if len(posts) == 1 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("cache was not invalidated by the post event")
}
