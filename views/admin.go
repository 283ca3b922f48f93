package views

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/a-h/templ"

	"github.com/norlind/sitepress"
	"github.com/norlind/sitepress/editor"
)

func adminLayout(title string, body func(buf *bytes.Buffer)) templ.Component {
	return component(func(buf *bytes.Buffer) {
		buf.WriteString(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		buf.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		buf.WriteString("<title>" + esc(title) + "</title>")
		buf.WriteString(`<link rel="stylesheet" href="/public/site.css">`)
		buf.WriteString("</head><body>")
		buf.WriteString(`<header class="admin-header"><nav>`)
		buf.WriteString(`<a href="/admin/">Posts</a><a href="/admin/sections/">Sections</a><a href="/admin/images/">Images</a>`)
		buf.WriteString(`</nav></header><main class="admin-main">`)
		body(buf)
		buf.WriteString(`</main><script src="/public/editor.js" defer></script></body></html>`)
	})
}

func csrfField(buf *bytes.Buffer, token string) {
	buf.WriteString(`<input type="hidden" name="_csrf" value="` + esc(token) + `">`)
}

// AdminLogin renders the password prompt.
func AdminLogin(showError bool, csrfToken string) templ.Component {
	return adminLayout("Admin Login", func(buf *bytes.Buffer) {
		buf.WriteString(`<section class="admin-login"><h1>Admin</h1>`)
		if showError {
			buf.WriteString(`<p class="form-error">Wrong password.</p>`)
		}
		buf.WriteString(`<form method="post" action="/admin/login/">`)
		csrfField(buf, csrfToken)
		buf.WriteString(`<input type="password" name="password" placeholder="Password" required autofocus>`)
		buf.WriteString(`<button type="submit">Log in</button></form></section>`)
	})
}

// AdminDashboard lists all posts and sections with edit links.
func AdminDashboard(posts []sitepress.BlogPost, sections []sitepress.ContentSection, message, csrfToken string) templ.Component {
	return adminLayout("Dashboard", func(buf *bytes.Buffer) {
		if message != "" {
			buf.WriteString(`<p class="admin-message">` + esc(message) + "</p>")
		}
		buf.WriteString(`<section class="admin-posts"><h1>Posts</h1>`)
		buf.WriteString(`<p><a class="btn" href="/admin/post/new/">New post</a></p>`)
		buf.WriteString(`<form method="post" action="/admin/upload-document/" enctype="multipart/form-data" class="upload-form">`)
		csrfField(buf, csrfToken)
		buf.WriteString(`<label>Import document <input type="file" name="document" accept=".docx,.txt,.pdf"></label>`)
		buf.WriteString(`<button type="submit">Upload</button></form>`)
		buf.WriteString(`<table class="admin-table"><thead><tr><th>Title</th><th>Date</th><th>Status</th><th></th></tr></thead><tbody>`)
		for _, p := range posts {
			buf.WriteString("<tr><td>" + esc(p.Title) + "</td>")
			buf.WriteString("<td>" + esc(p.CreatedAt) + "</td>")
			buf.WriteString("<td>" + esc(string(p.Status)) + "</td>")
			buf.WriteString(`<td><a href="/admin/post/` + esc(p.Slug) + `/">Edit</a> · <a href="/admin/post/` + esc(p.Slug) + `/export.md">Export</a></td></tr>`)
		}
		buf.WriteString("</tbody></table></section>")

		buf.WriteString(`<section class="admin-sections-summary"><h2>Sections</h2><ul>`)
		for _, cs := range sections {
			buf.WriteString("<li>" + esc(cs.PagePath) + " · " + esc(cs.SectionKey) +
				` <a href="/admin/section/` + fmt.Sprint(cs.ID) + `/">Edit</a></li>`)
		}
		buf.WriteString("</ul></section>")
	})
}

// AdminForm renders the post editor, including the block editor scaffold when
// the post has a structured document.
func AdminForm(post sitepress.BlogPost, csrfToken string) templ.Component {
	return adminLayout("Edit Post", func(buf *bytes.Buffer) {
		buf.WriteString(`<section class="admin-form"><h1>Edit Post</h1>`)
		buf.WriteString(`<form method="post" action="/admin/save/" data-editor-form>`)
		csrfField(buf, csrfToken)
		textInput(buf, "title", "Title", post.Title)
		textInput(buf, "slug", "Slug", post.Slug)
		textInput(buf, "date", "Date (YYYY-MM-DD)", post.CreatedAt)
		textInput(buf, "category", "Category", post.Category)
		textInput(buf, "featured_image_url", "Featured image URL", post.FeaturedImageURL)
		buf.WriteString(`<label>Excerpt<textarea name="excerpt" rows="3">` + esc(post.Excerpt) + `</textarea></label>`)
		buf.WriteString(`<label>Status<select name="status">`)
		for _, s := range []sitepress.PostStatus{sitepress.StatusDraft, sitepress.StatusPublished, sitepress.StatusArchived} {
			sel := ""
			if s == post.Status {
				sel = " selected"
			}
			buf.WriteString(`<option value="` + string(s) + `"` + sel + ">" + string(s) + "</option>")
		}
		buf.WriteString("</select></label>")
		checkbox(buf, "featured", "Featured", post.Featured)
		buf.WriteString(`<input type="hidden" name="structure" value="` + esc(post.Structure) + `">`)
		writeEditorBlocks(buf, post.Structure)
		buf.WriteString(`<label>Content (HTML, ignored when block structure is set)<textarea name="content" rows="16">` + esc(post.Content) + `</textarea></label>`)
		buf.WriteString(`<button type="submit">Save</button></form></section>`)
	})
}

// writeEditorBlocks renders the draggable block list with a live preview of
// each block.
func writeEditorBlocks(buf *bytes.Buffer, structure string) {
	buf.WriteString(`<div class="editor-blocks" data-editor-blocks>`)
	defer buf.WriteString("</div>")
	if structure == "" {
		return
	}
	doc, err := editor.ParseDocument([]byte(structure))
	if err != nil {
		return
	}
	for _, b := range doc.Blocks {
		content, err := json.Marshal(b.Content)
		if err != nil {
			continue
		}
		buf.WriteString(`<div class="editor-block" draggable="true" data-block-id="` + esc(b.ID) +
			`" data-block-type="` + esc(string(b.Type)) +
			`" data-block-content="` + esc(string(content)) + `">`)
		buf.WriteString(`<div class="editor-block-bar"><span>` + esc(string(b.Type)) + `</span>` +
			`<button type="button" data-block-delete>Delete</button></div>`)
		buf.WriteString(`<div class="editor-block-preview">`)
		_ = editor.RenderBlock(b).Render(context.Background(), buf)
		buf.WriteString("</div></div>")
	}
}

func textInput(buf *bytes.Buffer, name, label, value string) {
	buf.WriteString("<label>" + esc(label) + `<input type="text" name="` + name + `" value="` + esc(value) + `"></label>`)
}

func checkbox(buf *bytes.Buffer, name, label string, checked bool) {
	attr := ""
	if checked {
		attr = " checked"
	}
	buf.WriteString(`<label class="checkbox"><input type="checkbox" name="` + name + `" value="1"` + attr + ">" + esc(label) + "</label>")
}

// AdminSections lists every content section grouped by page.
func AdminSections(sections []sitepress.ContentSection, csrfToken string) templ.Component {
	return adminLayout("Sections", func(buf *bytes.Buffer) {
		buf.WriteString(`<section class="admin-sections"><h1>Sections</h1>`)
		buf.WriteString(`<p><a class="btn" href="/admin/section/new/">New section</a></p>`)
		buf.WriteString(`<table class="admin-table"><thead><tr><th>Page</th><th>Key</th><th>Type</th><th>Order</th><th>Visible</th><th></th></tr></thead><tbody>`)
		for _, cs := range sections {
			visible := "no"
			if cs.Visible {
				visible = "yes"
			}
			buf.WriteString("<tr><td>" + esc(cs.PagePath) + "</td>")
			buf.WriteString("<td>" + esc(cs.SectionKey) + "</td>")
			buf.WriteString("<td>" + esc(string(cs.SectionType)) + "</td>")
			buf.WriteString("<td>" + fmt.Sprint(cs.DisplayOrder) + "</td>")
			buf.WriteString("<td>" + visible + "</td>")
			buf.WriteString(`<td><a href="/admin/section/` + fmt.Sprint(cs.ID) + `/">Edit</a></td></tr>`)
		}
		buf.WriteString("</tbody></table></section>")
	})
}

// AdminSection renders the edit form for one section.
func AdminSection(cs sitepress.ContentSection, csrfToken string) templ.Component {
	return adminLayout("Edit Section", func(buf *bytes.Buffer) {
		buf.WriteString(`<section class="admin-form"><h1>Edit Section</h1>`)
		buf.WriteString(`<form method="post" action="/admin/section/save/">`)
		csrfField(buf, csrfToken)
		buf.WriteString(`<input type="hidden" name="id" value="` + fmt.Sprint(cs.ID) + `">`)
		textInput(buf, "section_key", "Key", cs.SectionKey)
		textInput(buf, "title", "Title", cs.Title)
		textInput(buf, "page_path", "Page path", cs.PagePath)
		textInput(buf, "image_url", "Image URL", cs.ImageURL)
		textInput(buf, "display_order", "Display order", fmt.Sprint(cs.DisplayOrder))
		buf.WriteString(`<label>Type<select name="section_type">`)
		for _, t := range sitepress.SectionTypes {
			sel := ""
			if t == cs.SectionType {
				sel = " selected"
			}
			buf.WriteString(`<option value="` + string(t) + `"` + sel + ">" + string(t) + "</option>")
		}
		buf.WriteString("</select></label>")
		checkbox(buf, "visible", "Visible", cs.Visible)
		buf.WriteString(`<label>Content<textarea name="content" rows="6">` + esc(cs.Content) + `</textarea></label>`)
		buf.WriteString(`<label>Data (JSON)<textarea name="data" rows="8">` + esc(cs.DataJSON) + `</textarea></label>`)
		buf.WriteString(`<button type="submit">Save</button></form>`)
		if cs.ID != 0 {
			buf.WriteString(`<div class="section-preview"><h2>Preview</h2>`)
			writeSection(buf, cs)
			buf.WriteString("</div>")
		}
		buf.WriteString("</section>")
	})
}

// AdminImages renders the image library with upload and delete controls.
func AdminImages(images []sitepress.Image, csrfToken string) templ.Component {
	return adminLayout("Images", func(buf *bytes.Buffer) {
		buf.WriteString(`<section class="admin-images"><h1>Images</h1>`)
		buf.WriteString(`<form method="post" action="/admin/images/upload/" enctype="multipart/form-data">`)
		csrfField(buf, csrfToken)
		buf.WriteString(`<input type="file" name="image" accept="image/*" required>`)
		buf.WriteString(`<button type="submit">Upload</button></form>`)
		buf.WriteString(`<div class="image-grid">`)
		for _, img := range images {
			src := "/public/uploads/" + img.Filename
			buf.WriteString(`<figure><img src="` + esc(src) + `" alt="` + esc(img.OriginalName) + `">`)
			buf.WriteString("<figcaption>" + esc(img.Filename) +
				fmt.Sprintf(" (%dx%d, %d bytes)", img.Width, img.Height, img.Size) + "</figcaption></figure>")
		}
		buf.WriteString("</div></section>")
	})
}
