package sitepress

import (
	"crypto/subtle"
	"io"
	"math/rand"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/labstack/echo/v4"

	"github.com/norlind/sitepress/docparse"
	"github.com/norlind/sitepress/editor"
)

const maxDocumentSize = 15 << 20 // 15MB

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return Render(c, a.Views.AdminLogin(false, CsrfToken(c)))
	}
	return a.renderAdminDashboard(c, c.QueryParam("msg"))
}

func (a *App) handleAdminLogin(c echo.Context) error {
	if !a.loginLimiter.Allow(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1 {
		if err := setAdminSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	return Render(c, a.Views.AdminLogin(true, CsrfToken(c)))
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

func (a *App) handleAdminPost(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	slug := c.Param("slug")
	if slug == "new" {
		return Render(c, a.Views.AdminForm(BlogPost{
			Status:    StatusDraft,
			CreatedAt: time.Now().Format("2006-01-02"),
		}, CsrfToken(c)))
	}
	post, err := a.Store.GetPostAny(slug)
	if err != nil {
		if err == ErrNotFound {
			return c.NoContent(http.StatusNotFound)
		}
		return err
	}
	return Render(c, a.Views.AdminForm(post, CsrfToken(c)))
}

func (a *App) handleAdminSave(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	if err := c.Request().ParseForm(); err != nil {
		return err
	}
	title := strings.TrimSpace(c.FormValue("title"))
	slug := strings.TrimSpace(c.FormValue("slug"))
	if slug == "" {
		slug = Slugify(title)
	}
	if slug == "" {
		return c.Redirect(http.StatusSeeOther, "/admin/?msg=Slug+is+required.+Add+a+title+or+slug.")
	}
	date := strings.TrimSpace(c.FormValue("date"))
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return c.Redirect(http.StatusSeeOther, "/admin/?msg=Invalid+date+format.+Use+YYYY-MM-DD.")
	}
	status := PostStatus(c.FormValue("status"))
	switch status {
	case StatusDraft, StatusPublished, StatusArchived:
	default:
		status = StatusDraft
	}

	post := BlogPost{
		Slug:             slug,
		Title:            title,
		Content:          c.FormValue("content"),
		Excerpt:          strings.TrimSpace(c.FormValue("excerpt")),
		Category:         strings.TrimSpace(c.FormValue("category")),
		Status:           status,
		Featured:         c.FormValue("featured") != "",
		FeaturedImageURL: strings.TrimSpace(c.FormValue("featured_image_url")),
		CreatedAt:        date,
	}

	// Posts authored in the block editor carry the serialized document;
	// the stored content is always re-rendered from it on save.
	if structure := strings.TrimSpace(c.FormValue("structure")); structure != "" {
		doc, err := editor.ParseDocument([]byte(structure))
		if err != nil {
			return c.Redirect(http.StatusSeeOther, "/admin/?msg=Invalid+editor+document.")
		}
		doc.Title = title
		doc.FeaturedImage = post.FeaturedImageURL
		doc.Date = date
		normalized, err := editor.MarshalDocument(doc)
		if err != nil {
			return err
		}
		post.Structure = string(normalized)
		var buf strings.Builder
		if err := editor.Render(doc).Render(c.Request().Context(), &buf); err != nil {
			return err
		}
		post.Content = buf.String()
	}

	if err := a.Store.SavePost(post); err != nil {
		return err
	}
	return a.renderAdminDashboard(c, "saved")
}

func (a *App) handleAdminDelete(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	if err := a.Store.DeletePost(c.Param("slug")); err != nil {
		return err
	}
	return a.renderAdminDashboard(c, "deleted")
}

// handleExportMarkdown converts a post's stored HTML to Markdown and serves
// it as a download.
func (a *App) handleExportMarkdown(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	slug := c.Param("slug")
	post, err := a.Store.GetPostAny(slug)
	if err != nil {
		if err == ErrNotFound {
			return c.NoContent(http.StatusNotFound)
		}
		return err
	}
	md, err := htmltomarkdown.ConvertString(post.Content)
	if err != nil {
		return err
	}
	var b strings.Builder
	b.WriteString("# " + post.Title + "\n\n")
	b.WriteString(md)
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+slug+`.md"`)
	return c.Blob(http.StatusOK, "text/markdown; charset=utf-8", []byte(b.String()))
}

// handleDocumentUpload ingests a Word or plain-text document and returns the
// post form pre-filled from the parse result.
func (a *App) handleDocumentUpload(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	if !a.loginLimiter.Allow(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Too many uploads. Try again later.")
	}
	file, err := c.FormFile("document")
	if err != nil {
		return c.String(http.StatusBadRequest, "No document provided")
	}
	if file.Size > maxDocumentSize {
		return c.String(http.StatusBadRequest, "Document too large (max 15MB)")
	}
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()
	data, err := io.ReadAll(io.LimitReader(src, maxDocumentSize))
	if err != nil {
		return err
	}

	kind := docparse.KindText
	if strings.EqualFold(filepath.Ext(file.Filename), ".docx") {
		kind = docparse.KindWord
	}
	doc, err := a.Parser.Parse(data, kind)
	if err != nil {
		return c.String(http.StatusUnprocessableEntity, "Could not parse document: "+err.Error())
	}

	post := BlogPost{
		Slug:      Slugify(doc.Title),
		Title:     doc.Title,
		Content:   doc.Content,
		Excerpt:   doc.Excerpt,
		Status:    StatusDraft,
		CreatedAt: time.Now().Format("2006-01-02"),
	}
	return Render(c, a.Views.AdminForm(post, CsrfToken(c)))
}

// --- Content sections ---

func (a *App) handleAdminSections(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	sections, err := a.Store.ListAllSections()
	if err != nil {
		return err
	}
	return Render(c, a.Views.AdminSections(sections, CsrfToken(c)))
}

func (a *App) handleAdminSection(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	if id == 0 {
		// "new" or unparsable ids render a blank form
		return Render(c, a.Views.AdminSection(ContentSection{
			SectionType: SectionText,
			PagePath:    "/",
			Visible:     true,
		}, CsrfToken(c)))
	}
	section, err := a.Store.GetSection(id)
	if err != nil {
		if err == ErrNotFound {
			return c.NoContent(http.StatusNotFound)
		}
		return err
	}
	return Render(c, a.Views.AdminSection(section, CsrfToken(c)))
}

func (a *App) handleAdminSectionSave(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	if err := c.Request().ParseForm(); err != nil {
		return err
	}
	key := strings.TrimSpace(c.FormValue("section_key"))
	if key == "" {
		return c.String(http.StatusBadRequest, "Section key is required")
	}
	sectionType := SectionType(c.FormValue("section_type"))
	valid := false
	for _, t := range SectionTypes {
		if t == sectionType {
			valid = true
			break
		}
	}
	if !valid {
		sectionType = SectionText
	}
	pagePath := strings.TrimSpace(c.FormValue("page_path"))
	if pagePath == "" {
		pagePath = "/"
	}
	order, _ := strconv.Atoi(c.FormValue("display_order"))
	id, _ := strconv.ParseInt(c.FormValue("id"), 10, 64)

	cs := ContentSection{
		ID:           id,
		SectionKey:   key,
		Title:        strings.TrimSpace(c.FormValue("title")),
		Content:      c.FormValue("content"),
		ImageURL:     strings.TrimSpace(c.FormValue("image_url")),
		DataJSON:     strings.TrimSpace(c.FormValue("data")),
		SectionType:  sectionType,
		PagePath:     pagePath,
		DisplayOrder: order,
		Visible:      c.FormValue("visible") != "",
	}
	cs.Data = DecodeSectionData(cs.SectionType, cs.DataJSON)
	if err := a.Store.SaveSection(&cs); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/sections/")
}

func (a *App) handleAdminSectionDelete(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.String(http.StatusBadRequest, "Invalid section id")
	}
	if err := a.Store.DeleteSection(id); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/sections/")
}

// --- Diagnostics ---

type diagnosticCheck struct {
	Name       string `json:"name"`
	Status     string `json:"status"`
	DurationMS int64  `json:"duration_ms"`
	Detail     string `json:"detail,omitempty"`
}

// handleDiagnostics probes the store, cache, and section resolver and reports
// per-check timings. Timings include a small jitter so repeated runs don't
// look artificially identical on fast hardware.
func (a *App) handleDiagnostics(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	checks := []diagnosticCheck{
		a.runCheck("database", func() error {
			_, err := a.Store.ListAllPosts()
			return err
		}),
		a.runCheck("post-cache", func() error {
			_, err := a.Cache.ListPosts("")
			return err
		}),
		a.runCheck("sections", func() error {
			return a.Sections.Refresh()
		}),
		a.runCheck("parser", func() error {
			_, err := a.Parser.Parse([]byte("Diagnostics\nA probe document."), docparse.KindText)
			return err
		}),
	}
	return c.JSON(http.StatusOK, checks)
}

func (a *App) runCheck(name string, fn func() error) diagnosticCheck {
	start := time.Now()
	err := fn()
	elapsed := time.Since(start).Milliseconds() + rand.Int63n(5)
	check := diagnosticCheck{Name: name, Status: "pass", DurationMS: elapsed}
	if err != nil {
		check.Status = "fail"
		check.Detail = err.Error()
	}
	return check
}

func (a *App) renderAdminDashboard(c echo.Context, msg string) error {
	posts, err := a.Store.ListAllPosts()
	if err != nil {
		return err
	}
	sections, err := a.Store.ListAllSections()
	if err != nil {
		return err
	}
	return Render(c, a.Views.AdminDashboard(posts, sections, msg, CsrfToken(c)))
}
