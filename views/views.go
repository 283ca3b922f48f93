// Package views provides the stock HTML templates for sitepress. Components
// are hand-written templ.ComponentFunc values, so no code generation step is
// required; callers can replace any of them through sitepress.ViewFuncs.
package views

import (
	"bytes"
	"context"
	"html"
	"io"

	"github.com/a-h/templ"

	"github.com/norlind/sitepress"
)

// Funcs returns the default view set.
func Funcs() sitepress.ViewFuncs {
	return sitepress.ViewFuncs{
		Home:           Home,
		Page:           Page,
		BlogIndex:      BlogIndex,
		Post:           Post,
		AdminLogin:     AdminLogin,
		AdminDashboard: AdminDashboard,
		AdminForm:      AdminForm,
		AdminSections:  AdminSections,
		AdminSection:   AdminSection,
		AdminImages:    AdminImages,
		NotFound:       NotFound,
		ServerError:    ServerError,
	}
}

func component(body func(buf *bytes.Buffer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		body(&buf)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

func esc(s string) string {
	return html.EscapeString(s)
}

// layout wraps page content in the shared document shell.
func layout(cfg sitepress.SiteConfig, meta sitepress.PageMeta, jsonLD string, body func(buf *bytes.Buffer)) templ.Component {
	return component(func(buf *bytes.Buffer) {
		title := meta.Title
		if title == "" {
			title = cfg.Name
		}
		ogType := meta.OGType
		if ogType == "" {
			ogType = "website"
		}
		buf.WriteString("<!DOCTYPE html><html lang=\"en\"><head>")
		buf.WriteString(`<meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
		buf.WriteString("<title>" + esc(title) + "</title>")
		if meta.Description != "" {
			buf.WriteString(`<meta name="description" content="` + esc(meta.Description) + `">`)
		}
		buf.WriteString(`<meta property="og:title" content="` + esc(title) + `">`)
		buf.WriteString(`<meta property="og:type" content="` + esc(ogType) + `">`)
		if meta.URL != "" {
			buf.WriteString(`<meta property="og:url" content="` + esc(meta.URL) + `">`)
			buf.WriteString(`<link rel="canonical" href="` + esc(meta.URL) + `">`)
		}
		buf.WriteString(`<link rel="icon" href="/favicon.svg" type="image/svg+xml">`)
		buf.WriteString(`<link rel="alternate" type="application/rss+xml" title="` + esc(cfg.Name) + `" href="/feed.xml">`)
		buf.WriteString(`<link rel="stylesheet" href="/public/site.css">`)
		if jsonLD != "" {
			buf.WriteString(`<script type="application/ld+json">` + jsonLD + `</script>`)
		}
		buf.WriteString("</head><body>")
		writeNav(buf, cfg)
		buf.WriteString(`<main class="site-main">`)
		body(buf)
		buf.WriteString("</main>")
		writeFooter(buf, cfg)
		buf.WriteString("</body></html>")
	})
}

func writeNav(buf *bytes.Buffer, cfg sitepress.SiteConfig) {
	buf.WriteString(`<header class="site-header"><nav class="site-nav">`)
	buf.WriteString(`<a class="site-brand" href="/">` + esc(cfg.Name) + `</a>`)
	buf.WriteString(`<div class="site-links"><a href="/">Home</a><a href="/blog/">Blog</a></div>`)
	buf.WriteString("</nav></header>")
}

func writeFooter(buf *bytes.Buffer, cfg sitepress.SiteConfig) {
	buf.WriteString(`<footer class="site-footer"><p>` + esc(cfg.Name))
	if cfg.Description != "" {
		buf.WriteString(" · " + esc(cfg.Description))
	}
	buf.WriteString(`</p><p><a href="/feed.xml">RSS</a> · <a href="/sitemap.xml">Sitemap</a></p></footer>`)
}
