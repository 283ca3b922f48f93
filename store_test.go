package sitepress

import (
	"path/filepath"
	"testing"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "test.db"), nil)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndGetPost(t *testing.T) {
	s := setupTestStore(t)

	post := BlogPost{
		Slug:      "launch-week",
		Title:     "Launch Week",
		Content:   "<p>We shipped.</p>",
		Excerpt:   "We shipped.",
		Category:  "News",
		Status:    StatusPublished,
		Featured:  true,
		CreatedAt: "2026-08-01",
	}
	if err := s.SavePost(post); err != nil {
		t.Fatalf("SavePost failed: %v", err)
	}

	got, err := s.GetPost("launch-week")
	if err != nil {
		t.Fatalf("GetPost failed: %v", err)
	}
	if got.Title != post.Title {
		t.Errorf("Title = %q, want %q", got.Title, post.Title)
	}
	if got.Link != "/blog/launch-week" {
		t.Errorf("Link = %q", got.Link)
	}
	if !got.Featured {
		t.Error("Featured flag lost")
	}
}

func TestGetPostHidesUnpublished(t *testing.T) {
	s := setupTestStore(t)

	if err := s.SavePost(BlogPost{Slug: "draft", Title: "Draft", Status: StatusDraft, CreatedAt: "2026-08-01"}); err != nil {
		t.Fatalf("SavePost failed: %v", err)
	}

	if _, err := s.GetPost("draft"); err != ErrNotFound {
		t.Errorf("GetPost(draft) err = %v, want ErrNotFound", err)
	}
	if _, err := s.GetPostAny("draft"); err != nil {
		t.Errorf("GetPostAny(draft) err = %v, want nil", err)
	}
}

func TestListPostsByCategory(t *testing.T) {
	s := setupTestStore(t)

	for _, p := range []BlogPost{
		{Slug: "a", Title: "A", Category: "News", Status: StatusPublished, CreatedAt: "2026-08-01"},
		{Slug: "b", Title: "B", Category: "Guides", Status: StatusPublished, CreatedAt: "2026-08-02"},
		{Slug: "c", Title: "C", Category: "news", Status: StatusArchived, CreatedAt: "2026-08-03"},
	} {
		if err := s.SavePost(p); err != nil {
			t.Fatalf("SavePost failed: %v", err)
		}
	}

	posts, err := s.ListPosts("news")
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(posts) != 1 || posts[0].Slug != "a" {
		t.Errorf("ListPosts(news) = %v", posts)
	}

	categories, err := s.ListCategories()
	if err != nil {
		t.Fatalf("ListCategories failed: %v", err)
	}
	if len(categories) != 2 {
		t.Errorf("categories = %v, want 2 entries", categories)
	}
}

func TestSaveSectionInsertAndUpdate(t *testing.T) {
	s := setupTestStore(t)

	cs := ContentSection{
		SectionKey:  "home-hero",
		Title:       "Welcome",
		SectionType: SectionHero,
		PagePath:    "/",
		Visible:     true,
		DataJSON:    `{"buttons":[{"text":"Start","link":"/signup"}]}`,
	}
	if err := s.SaveSection(&cs); err != nil {
		t.Fatalf("SaveSection failed: %v", err)
	}
	if cs.ID == 0 {
		t.Fatal("insert should write back the new id")
	}

	cs.Title = "Hello"
	if err := s.SaveSection(&cs); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	got, err := s.GetSection(cs.ID)
	if err != nil {
		t.Fatalf("GetSection failed: %v", err)
	}
	if got.Title != "Hello" {
		t.Errorf("Title = %q, want Hello", got.Title)
	}
	if len(got.Data.Buttons) != 1 || got.Data.Buttons[0].Text != "Start" {
		t.Errorf("decoded data = %+v", got.Data)
	}
}

func TestListSectionsOrderAndVisibility(t *testing.T) {
	s := setupTestStore(t)

	for _, cs := range []ContentSection{
		{SectionKey: "second", SectionType: SectionText, PagePath: "/", DisplayOrder: 2, Visible: true},
		{SectionKey: "first", SectionType: SectionHero, PagePath: "/", DisplayOrder: 1, Visible: true},
		{SectionKey: "hidden", SectionType: SectionCTA, PagePath: "/", DisplayOrder: 0, Visible: false},
		{SectionKey: "other-page", SectionType: SectionText, PagePath: "/about", DisplayOrder: 1, Visible: true},
	} {
		section := cs
		if err := s.SaveSection(&section); err != nil {
			t.Fatalf("SaveSection(%s) failed: %v", cs.SectionKey, err)
		}
	}

	sections, err := s.ListSections("/")
	if err != nil {
		t.Fatalf("ListSections failed: %v", err)
	}
	if len(sections) != 2 {
		t.Fatalf("ListSections(/) returned %d sections, want 2", len(sections))
	}
	if sections[0].SectionKey != "first" || sections[1].SectionKey != "second" {
		t.Errorf("order = %q, %q", sections[0].SectionKey, sections[1].SectionKey)
	}

	all, err := s.ListAllSections()
	if err != nil {
		t.Fatalf("ListAllSections failed: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("ListAllSections returned %d, want 4 (hidden included)", len(all))
	}
}

func TestDeleteSection(t *testing.T) {
	s := setupTestStore(t)

	cs := ContentSection{SectionKey: "gone", SectionType: SectionText, PagePath: "/", Visible: true}
	if err := s.SaveSection(&cs); err != nil {
		t.Fatalf("SaveSection failed: %v", err)
	}
	if err := s.DeleteSection(cs.ID); err != nil {
		t.Fatalf("DeleteSection failed: %v", err)
	}
	if _, err := s.GetSection(cs.ID); err != ErrNotFound {
		t.Errorf("GetSection after delete err = %v, want ErrNotFound", err)
	}
}

func TestImageMetadataRoundTrip(t *testing.T) {
	s := setupTestStore(t)

	img := Image{
		Filename:     "team-photo.jpg",
		OriginalName: "Team Photo.png",
		Width:        1600,
		Height:       900,
		Size:         123456,
		UploadedAt:   "2026-08-15T10:00:00Z",
	}
	if err := s.SaveImage(img); err != nil {
		t.Fatalf("SaveImage failed: %v", err)
	}
	images, err := s.ListImages()
	if err != nil {
		t.Fatalf("ListImages failed: %v", err)
	}
	if len(images) != 1 || images[0].Filename != img.Filename {
		t.Fatalf("ListImages = %v", images)
	}
	if err := s.DeleteImage(img.Filename); err != nil {
		t.Fatalf("DeleteImage failed: %v", err)
	}
	images, _ = s.ListImages()
	if len(images) != 0 {
		t.Errorf("image not deleted: %v", images)
	}
}
