package sitepress

import (
	"context"
	"strings"
	"sync"
)

// Resolver holds the in-memory set of visible content sections for one page
// scope (or all pages when pagePath is empty) and refreshes it whenever the
// backing table changes.
//
// Refreshes never diff: the whole set is replaced with the fresh query
// result. If two refreshes race, the last write wins.
type Resolver struct {
	store    *Store
	pagePath string

	mu       sync.RWMutex
	sections []ContentSection
	lastErr  string
}

// NewResolver creates a Resolver scoped to pagePath ("" for all pages). Call
// Refresh to do the initial load.
func NewResolver(store *Store, pagePath string) *Resolver {
	return &Resolver{store: store, pagePath: pagePath}
}

// Refresh replaces the in-memory set with a fresh query. On failure the
// error is recorded and previously loaded sections are kept: stale data
// beats a blank page.
func (r *Resolver) Refresh() error {
	sections, err := r.store.ListSections(r.pagePath)
	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.lastErr = err.Error()
		return err
	}
	r.sections = sections
	r.lastErr = ""
	return nil
}

// Sections returns the cached set in display order.
func (r *Resolver) Sections() []ContentSection {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]ContentSection, len(r.sections))
	copy(out, r.sections)
	return out
}

// ForPage filters the cached set to one page path without re-querying.
func (r *Resolver) ForPage(pagePath string) []ContentSection {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []ContentSection
	for _, cs := range r.sections {
		if cs.PagePath == pagePath {
			out = append(out, cs)
		}
	}
	return out
}

// SectionsByType filters the cached set by section type without re-querying.
func (r *Resolver) SectionsByType(t SectionType) []ContentSection {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []ContentSection
	for _, cs := range r.sections {
		if cs.SectionType == t {
			out = append(out, cs)
		}
	}
	return out
}

// SectionByKey returns the first cached section with the given key. Key
// uniqueness is a database constraint, not enforced here.
func (r *Resolver) SectionByKey(key string) (ContentSection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, cs := range r.sections {
		if strings.EqualFold(cs.SectionKey, key) {
			return cs, true
		}
	}
	return ContentSection{}, false
}

// LastError returns the most recent refresh error message, or "".
func (r *Resolver) LastError() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastErr
}

// Watch consumes the change stream and refetches on every section-table
// event until ctx is canceled. Refresh errors are recorded on the resolver
// and do not stop the loop.
func (r *Resolver) Watch(ctx context.Context, n *Notifier) {
	events := n.Subscribe(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-events:
			if !ok {
				return
			}
			if e.Table != TableSections {
				continue
			}
			_ = r.Refresh()
		}
	}
}
