package sitepress

import (
	"context"
	"testing"
	"time"
)

func seedSections(t *testing.T, s *Store) {
	t.Helper()
	for _, cs := range []ContentSection{
		{SectionKey: "home-hero", Title: "Hero", SectionType: SectionHero, PagePath: "/", DisplayOrder: 1, Visible: true},
		{SectionKey: "home-stats", Title: "Stats", SectionType: SectionStats, PagePath: "/", DisplayOrder: 2, Visible: true},
		{SectionKey: "about-text", Title: "About", SectionType: SectionText, PagePath: "/about", DisplayOrder: 1, Visible: true},
		{SectionKey: "home-hidden", Title: "Hidden", SectionType: SectionCTA, PagePath: "/", DisplayOrder: 3, Visible: false},
	} {
		section := cs
		if err := s.SaveSection(&section); err != nil {
			t.Fatalf("SaveSection(%s) failed: %v", cs.SectionKey, err)
		}
	}
}

func TestResolverRefreshAndFilters(t *testing.T) {
	s := setupTestStore(t)
	seedSections(t, s)

	r := NewResolver(s, "")
	if err := r.Refresh(); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}

	if got := len(r.Sections()); got != 3 {
		t.Errorf("Sections() = %d entries, want 3 visible", got)
	}
	if got := len(r.ForPage("/")); got != 2 {
		t.Errorf("ForPage(/) = %d entries, want 2", got)
	}
	if got := len(r.SectionsByType(SectionStats)); got != 1 {
		t.Errorf("SectionsByType(stats) = %d entries, want 1", got)
	}

	cs, ok := r.SectionByKey("HOME-HERO")
	if !ok {
		t.Fatal("SectionByKey should match case-insensitively")
	}
	if cs.Title != "Hero" {
		t.Errorf("Title = %q, want Hero", cs.Title)
	}
	if _, ok := r.SectionByKey("nope"); ok {
		t.Error("SectionByKey returned a match for an unknown key")
	}
}

func TestResolverScopedToPage(t *testing.T) {
	s := setupTestStore(t)
	seedSections(t, s)

	r := NewResolver(s, "/about")
	if err := r.Refresh(); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	sections := r.Sections()
	if len(sections) != 1 || sections[0].SectionKey != "about-text" {
		t.Errorf("scoped resolver holds %v", sections)
	}
}

func TestResolverKeepsStaleDataOnError(t *testing.T) {
	s := setupTestStore(t)
	seedSections(t, s)

	r := NewResolver(s, "")
	if err := r.Refresh(); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	before := len(r.Sections())

	// Closing the database makes the next refresh fail.
	s.Close()
	if err := r.Refresh(); err == nil {
		t.Fatal("expected refresh to fail on closed store")
	}
	if r.LastError() == "" {
		t.Error("LastError should record the failure")
	}
	if got := len(r.Sections()); got != before {
		t.Errorf("stale sections dropped on error: %d -> %d", before, got)
	}
}

func TestResolverWatchRefetchesOnSectionEvents(t *testing.T) {
	s := setupTestStore(t)
	n := NewNotifier()
	defer n.Close()

	r := NewResolver(s, "")
	if err := r.Refresh(); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if len(r.Sections()) != 0 {
		t.Fatal("expected empty initial set")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go r.Watch(ctx, n)
	time.Sleep(20 * time.Millisecond) // let the watcher subscribe

	cs := ContentSection{SectionKey: "late", SectionType: SectionText, PagePath: "/", Visible: true}
	if err := s.SaveSection(&cs); err != nil {
		t.Fatalf("SaveSection failed: %v", err)
	}
	n.Publish(Event{Table: TableSections, Op: OpInsert})

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(r.Sections()) == 1 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("watcher did not refetch after section event")
}

func TestResolverWatchIgnoresPostEvents(t *testing.T) {
	s := setupTestStore(t)
	n := NewNotifier()
	defer n.Close()

	r := NewResolver(s, "")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go r.Watch(ctx, n)
	time.Sleep(20 * time.Millisecond)

	cs := ContentSection{SectionKey: "quiet", SectionType: SectionText, PagePath: "/", Visible: true}
	if err := s.SaveSection(&cs); err != nil {
		t.Fatalf("SaveSection failed: %v", err)
	}
	n.Publish(Event{Table: TablePosts, Op: OpUpdate})
	time.Sleep(50 * time.Millisecond)

	if len(r.Sections()) != 0 {
		t.Error("post events must not trigger a section refetch")
	}
}
