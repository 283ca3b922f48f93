package views

import (
	"bytes"

	"github.com/a-h/templ"

	"github.com/norlind/sitepress"
)

// Home renders the landing page: the "/" sections followed by featured posts.
func Home(cfg sitepress.SiteConfig, sections []sitepress.ContentSection, featured []sitepress.BlogPost) templ.Component {
	meta := sitepress.PageMeta{
		Title:       cfg.Name,
		Description: cfg.Description,
		URL:         sitepress.BuildURL(cfg.URL),
		OGType:      "website",
	}
	return layout(cfg, meta, sitepress.WebsiteJsonLD(cfg), func(buf *bytes.Buffer) {
		for _, cs := range sections {
			writeSection(buf, cs)
		}
		if len(featured) > 0 {
			buf.WriteString(`<section class="featured-posts"><h2>Featured</h2><div class="post-grid">`)
			for _, p := range featured {
				writePostCard(buf, p)
			}
			buf.WriteString("</div></section>")
		}
	})
}

// Page renders a database-composed marketing page from its sections.
func Page(cfg sitepress.SiteConfig, pagePath string, sections []sitepress.ContentSection) templ.Component {
	title := cfg.Name
	if len(sections) > 0 && sections[0].Title != "" {
		title = sections[0].Title + " · " + cfg.Name
	}
	meta := sitepress.PageMeta{
		Title:  title,
		URL:    sitepress.BuildURL(cfg.URL, "pages", pagePath),
		OGType: "website",
	}
	return layout(cfg, meta, "", func(buf *bytes.Buffer) {
		for _, cs := range sections {
			writeSection(buf, cs)
		}
	})
}

// BlogIndex renders the post listing with category filters.
func BlogIndex(cfg sitepress.SiteConfig, posts []sitepress.BlogPost, category string, categories []string) templ.Component {
	meta := sitepress.PageMeta{
		Title:       "Blog · " + cfg.Name,
		Description: cfg.Description,
		URL:         sitepress.BuildURL(cfg.URL, "blog"),
		OGType:      "website",
	}
	return layout(cfg, meta, "", func(buf *bytes.Buffer) {
		buf.WriteString(`<section class="blog-index"><h1>Blog</h1>`)
		if len(categories) > 0 {
			buf.WriteString(`<nav class="category-filter">`)
			buf.WriteString(categoryLink("/blog/", "All", category == ""))
			for _, cat := range categories {
				href := "/blog/?category=" + sitepress.PathEscape(cat)
				buf.WriteString(categoryLink(href, cat, cat == category))
			}
			buf.WriteString("</nav>")
		}
		if len(posts) == 0 {
			buf.WriteString(`<p class="empty-state">No posts yet.</p>`)
		} else {
			buf.WriteString(`<div class="post-grid">`)
			for _, p := range posts {
				writePostCard(buf, p)
			}
			buf.WriteString("</div>")
		}
		buf.WriteString("</section>")
	})
}

func categoryLink(href, label string, active bool) string {
	class := "category-pill"
	if active {
		class += " active"
	}
	return `<a class="` + class + `" href="` + esc(href) + `">` + esc(label) + `</a>`
}

func writePostCard(buf *bytes.Buffer, p sitepress.BlogPost) {
	buf.WriteString(`<article class="post-card">`)
	if p.FeaturedImageURL != "" {
		buf.WriteString(`<a href="` + esc(p.Link) + `/"><img src="` + esc(p.FeaturedImageURL) + `" alt="` + esc(p.Title) + `"></a>`)
	}
	buf.WriteString(`<h3><a href="` + esc(p.Link) + `/">` + esc(p.Title) + `</a></h3>`)
	buf.WriteString(`<p class="post-meta"><time datetime="` + esc(p.CreatedAt) + `">` + esc(p.CreatedAt) + `</time>`)
	if p.Category != "" {
		buf.WriteString(` · <span class="post-category">` + esc(p.Category) + `</span>`)
	}
	buf.WriteString("</p>")
	if p.Excerpt != "" {
		buf.WriteString(`<p class="post-excerpt">` + esc(p.Excerpt) + "</p>")
	}
	buf.WriteString("</article>")
}

// Post renders a single post. Content is trusted engine-rendered HTML.
func Post(cfg sitepress.SiteConfig, post sitepress.BlogPost, related []sitepress.BlogPost) templ.Component {
	meta := sitepress.PageMeta{
		Title:       post.Title + " · " + cfg.Name,
		Description: post.Excerpt,
		URL:         sitepress.BuildURL(cfg.URL, "blog", post.Slug),
		OGType:      "article",
	}
	return layout(cfg, meta, sitepress.BlogPostingJsonLD(post, cfg), func(buf *bytes.Buffer) {
		buf.WriteString(`<article class="post">`)
		buf.WriteString("<header><h1>" + esc(post.Title) + "</h1>")
		buf.WriteString(`<p class="post-meta"><time datetime="` + esc(post.CreatedAt) + `">` + esc(post.CreatedAt) + `</time>`)
		if post.Category != "" {
			buf.WriteString(` · <span class="post-category">` + esc(post.Category) + `</span>`)
		}
		buf.WriteString("</p></header>")
		if post.FeaturedImageURL != "" {
			buf.WriteString(`<img class="post-featured" src="` + esc(post.FeaturedImageURL) + `" alt="` + esc(post.Title) + `">`)
		}
		buf.WriteString(`<div class="post-body">` + post.Content + "</div>")
		buf.WriteString("</article>")
		if len(related) > 0 {
			buf.WriteString(`<aside class="related-posts"><h2>Related</h2><div class="post-grid">`)
			for _, p := range related {
				writePostCard(buf, p)
			}
			buf.WriteString("</div></aside>")
		}
	})
}

// NotFound renders the 404 page.
func NotFound() templ.Component {
	return component(func(buf *bytes.Buffer) {
		buf.WriteString(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>Not Found</title></head><body>`)
		buf.WriteString(`<main class="error-page"><h1>404</h1><p>That page does not exist.</p><p><a href="/">Back home</a></p></main>`)
		buf.WriteString("</body></html>")
	})
}

// ServerError renders the 500 page.
func ServerError() templ.Component {
	return component(func(buf *bytes.Buffer) {
		buf.WriteString(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>Server Error</title></head><body>`)
		buf.WriteString(`<main class="error-page"><h1>500</h1><p>Something went wrong. Try again shortly.</p></main>`)
		buf.WriteString("</body></html>")
	})
}
