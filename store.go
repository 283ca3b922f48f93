package sitepress

import (
	"database/sql"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = sql.ErrNoRows

// Store wraps a SQLite database holding posts, content sections, and image
// metadata. Every successful write publishes a change event on the notifier.
type Store struct {
	db       *sql.DB
	notifier *Notifier
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations. A nil notifier disables
// change events.
func NewStore(path string, notifier *Notifier) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL for concurrent read/write, busy timeout so writers wait instead of
	// failing with SQLITE_BUSY, synchronous=NORMAL is safe under WAL.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA cache_size=-8000;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db, notifier: notifier}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS posts (
    slug TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    content TEXT NOT NULL,
    excerpt TEXT NOT NULL DEFAULT '',
    category TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL DEFAULT 'draft',
    featured INTEGER NOT NULL DEFAULT 0,
    featured_image_url TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL,
    structure TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS content_sections (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    section_key TEXT NOT NULL UNIQUE,
    title TEXT NOT NULL DEFAULT '',
    content TEXT NOT NULL DEFAULT '',
    image_url TEXT NOT NULL DEFAULT '',
    data TEXT NOT NULL DEFAULT '{}',
    section_type TEXT NOT NULL,
    page_path TEXT NOT NULL DEFAULT '/',
    display_order INTEGER NOT NULL DEFAULT 0,
    visible INTEGER NOT NULL DEFAULT 1
);
CREATE TABLE IF NOT EXISTS images (
    filename TEXT PRIMARY KEY,
    original_name TEXT NOT NULL,
    width INTEGER NOT NULL,
    height INTEGER NOT NULL,
    size INTEGER NOT NULL,
    uploaded_at TEXT NOT NULL
);
`)
	return err
}

func (s *Store) publish(table string, op Op) {
	if s.notifier != nil {
		s.notifier.Publish(Event{Table: table, Op: op})
	}
}

// --- Posts ---

const postColumns = `slug, title, content, excerpt, category, status, featured, featured_image_url, created_at, structure`

func scanPost(scan func(dest ...any) error) (BlogPost, error) {
	var p BlogPost
	var featured int
	var status string
	if err := scan(&p.Slug, &p.Title, &p.Content, &p.Excerpt, &p.Category, &status, &featured, &p.FeaturedImageURL, &p.CreatedAt, &p.Structure); err != nil {
		return BlogPost{}, err
	}
	p.Status = PostStatus(status)
	p.Featured = featured == 1
	p.Link = "/blog/" + p.Slug
	return p, nil
}

func (s *Store) queryPosts(query string, args ...any) ([]BlogPost, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []BlogPost
	for rows.Next() {
		p, err := scanPost(rows.Scan)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// ListPosts returns published posts ordered by creation date descending,
// optionally filtered by category.
func (s *Store) ListPosts(category string) ([]BlogPost, error) {
	if category == "" {
		return s.queryPosts(`SELECT ` + postColumns + ` FROM posts WHERE status = 'published' ORDER BY created_at DESC`)
	}
	return s.queryPosts(`SELECT `+postColumns+` FROM posts WHERE status = 'published' AND lower(category) = lower(?) ORDER BY created_at DESC`, category)
}

// ListAllPosts returns every post regardless of status (for admin).
func (s *Store) ListAllPosts() ([]BlogPost, error) {
	return s.queryPosts(`SELECT ` + postColumns + ` FROM posts ORDER BY created_at DESC`)
}

// ListFeaturedPosts returns published posts flagged as featured.
func (s *Store) ListFeaturedPosts() ([]BlogPost, error) {
	return s.queryPosts(`SELECT ` + postColumns + ` FROM posts WHERE status = 'published' AND featured = 1 ORDER BY created_at DESC`)
}

// ListCategories returns a sorted, deduplicated slice of categories from
// published posts.
func (s *Store) ListCategories() ([]string, error) {
	rows, err := s.db.Query(`SELECT category FROM posts WHERE status = 'published' AND category != ''`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	set := make(map[string]struct{})
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		set[strings.ToLower(c)] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	var result []string
	for c := range set {
		result = append(result, c)
	}
	sort.Strings(result)
	return result, nil
}

// GetPost returns a single published post by slug.
func (s *Store) GetPost(slug string) (BlogPost, error) {
	row := s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE slug = ? AND status = 'published'`, slug)
	return scanPost(row.Scan)
}

// GetPostAny returns a post by slug regardless of status (for admin).
func (s *Store) GetPostAny(slug string) (BlogPost, error) {
	row := s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE slug = ?`, slug)
	return scanPost(row.Scan)
}

// SavePost upserts a blog post and publishes a change event.
func (s *Store) SavePost(p BlogPost) error {
	featured := 0
	if p.Featured {
		featured = 1
	}
	_, err := s.db.Exec(`INSERT OR REPLACE INTO posts (`+postColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Slug, p.Title, p.Content, p.Excerpt, p.Category, string(p.Status), featured, p.FeaturedImageURL, p.CreatedAt, p.Structure)
	if err != nil {
		return err
	}
	s.publish(TablePosts, OpUpdate)
	return nil
}

// DeletePost removes a post by slug and publishes a change event.
func (s *Store) DeletePost(slug string) error {
	if _, err := s.db.Exec(`DELETE FROM posts WHERE slug = ?`, slug); err != nil {
		return err
	}
	s.publish(TablePosts, OpDelete)
	return nil
}

// --- Content sections ---

const sectionColumns = `id, section_key, title, content, image_url, data, section_type, page_path, display_order, visible`

func scanSection(scan func(dest ...any) error) (ContentSection, error) {
	var cs ContentSection
	var visible int
	var sectionType string
	if err := scan(&cs.ID, &cs.SectionKey, &cs.Title, &cs.Content, &cs.ImageURL, &cs.DataJSON, &sectionType, &cs.PagePath, &cs.DisplayOrder, &visible); err != nil {
		return ContentSection{}, err
	}
	cs.SectionType = SectionType(sectionType)
	cs.Visible = visible == 1
	cs.Data = DecodeSectionData(cs.SectionType, cs.DataJSON)
	return cs, nil
}

func (s *Store) querySections(query string, args ...any) ([]ContentSection, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sections []ContentSection
	for rows.Next() {
		cs, err := scanSection(rows.Scan)
		if err != nil {
			return nil, err
		}
		sections = append(sections, cs)
	}
	return sections, rows.Err()
}

// ListSections returns visible sections ordered ascending by display order,
// ties broken by insertion order. An empty pagePath returns all pages.
func (s *Store) ListSections(pagePath string) ([]ContentSection, error) {
	if pagePath == "" {
		return s.querySections(`SELECT ` + sectionColumns + ` FROM content_sections WHERE visible = 1 ORDER BY display_order ASC, id ASC`)
	}
	return s.querySections(`SELECT `+sectionColumns+` FROM content_sections WHERE visible = 1 AND page_path = ? ORDER BY display_order ASC, id ASC`, pagePath)
}

// ListAllSections returns every section including hidden ones (for admin).
func (s *Store) ListAllSections() ([]ContentSection, error) {
	return s.querySections(`SELECT ` + sectionColumns + ` FROM content_sections ORDER BY page_path ASC, display_order ASC, id ASC`)
}

// GetSection returns one section by id.
func (s *Store) GetSection(id int64) (ContentSection, error) {
	row := s.db.QueryRow(`SELECT `+sectionColumns+` FROM content_sections WHERE id = ?`, id)
	return scanSection(row.Scan)
}

// SaveSection inserts (ID zero) or updates a section and publishes a change
// event. The inserted id is written back to cs.ID.
func (s *Store) SaveSection(cs *ContentSection) error {
	visible := 0
	if cs.Visible {
		visible = 1
	}
	if cs.DataJSON == "" {
		cs.DataJSON = "{}"
	}
	if cs.ID == 0 {
		res, err := s.db.Exec(`INSERT INTO content_sections (section_key, title, content, image_url, data, section_type, page_path, display_order, visible) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			cs.SectionKey, cs.Title, cs.Content, cs.ImageURL, cs.DataJSON, string(cs.SectionType), cs.PagePath, cs.DisplayOrder, visible)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		cs.ID = id
		s.publish(TableSections, OpInsert)
		return nil
	}
	_, err := s.db.Exec(`UPDATE content_sections SET section_key = ?, title = ?, content = ?, image_url = ?, data = ?, section_type = ?, page_path = ?, display_order = ?, visible = ? WHERE id = ?`,
		cs.SectionKey, cs.Title, cs.Content, cs.ImageURL, cs.DataJSON, string(cs.SectionType), cs.PagePath, cs.DisplayOrder, visible, cs.ID)
	if err != nil {
		return err
	}
	s.publish(TableSections, OpUpdate)
	return nil
}

// DeleteSection removes a section by id. There is no soft delete.
func (s *Store) DeleteSection(id int64) error {
	if _, err := s.db.Exec(`DELETE FROM content_sections WHERE id = ?`, id); err != nil {
		return err
	}
	s.publish(TableSections, OpDelete)
	return nil
}

// --- Images ---

// ListImages returns uploaded image metadata, newest first.
func (s *Store) ListImages() ([]Image, error) {
	rows, err := s.db.Query(`SELECT filename, original_name, width, height, size, uploaded_at FROM images ORDER BY uploaded_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []Image
	for rows.Next() {
		var img Image
		if err := rows.Scan(&img.Filename, &img.OriginalName, &img.Width, &img.Height, &img.Size, &img.UploadedAt); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// SaveImage records uploaded image metadata.
func (s *Store) SaveImage(img Image) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO images (filename, original_name, width, height, size, uploaded_at) VALUES (?, ?, ?, ?, ?, ?)`,
		img.Filename, img.OriginalName, img.Width, img.Height, img.Size, img.UploadedAt)
	return err
}

// DeleteImage removes image metadata by filename.
func (s *Store) DeleteImage(filename string) error {
	_, err := s.db.Exec(`DELETE FROM images WHERE filename = ?`, filename)
	return err
}
