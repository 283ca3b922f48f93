// Package sitepress is a marketing-site engine with an embedded CMS: a blog
// with a block-based visual editor, database-driven page sections, document
// ingestion, and an admin dashboard. Built with Echo, templ, and SQLite.
package sitepress

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/norlind/sitepress/docparse"
)

// ViewFuncs holds the templ components the engine calls when rendering
// pages. The views package provides the stock set; callers may swap any of
// them to customize templates.
type ViewFuncs struct {
	Home           func(cfg SiteConfig, sections []ContentSection, featured []BlogPost) templ.Component
	Page           func(cfg SiteConfig, pagePath string, sections []ContentSection) templ.Component
	BlogIndex      func(cfg SiteConfig, posts []BlogPost, category string, categories []string) templ.Component
	Post           func(cfg SiteConfig, post BlogPost, related []BlogPost) templ.Component
	AdminLogin     func(showError bool, csrfToken string) templ.Component
	AdminDashboard func(posts []BlogPost, sections []ContentSection, message, csrfToken string) templ.Component
	AdminForm      func(post BlogPost, csrfToken string) templ.Component
	AdminSections  func(sections []ContentSection, csrfToken string) templ.Component
	AdminSection   func(section ContentSection, csrfToken string) templ.Component
	AdminImages    func(images []Image, csrfToken string) templ.Component
	NotFound       func() templ.Component
	ServerError    func() templ.Component
}

// App is the central application. It wires together the store, cache,
// section resolver, notifier, parser, handlers, and middleware.
type App struct {
	Config   SiteConfig
	Echo     *echo.Echo
	Store    *Store
	Cache    *PostCache
	Notifier *Notifier
	Sections *Resolver
	Parser   *docparse.Parser
	Views    ViewFuncs

	loginLimiter *attemptLimiter
	customRoutes []func(*App)
	cancelWatch  context.CancelFunc
}

// New creates a new App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()
	a := &App{
		Config: cfg,
		Echo:   echo.New(),
		Views:  views,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Start initializes the database, cache, resolver watch loops, middleware,
// and routes, then starts the server. It blocks until the server stops.
func (a *App) Start() error {
	if a.Config.AdminPassword == "" {
		return fmt.Errorf("sitepress: AdminPassword is required")
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("sitepress: SessionSecret is required")
	}

	a.Notifier = NewNotifier()

	store, err := NewStore(a.Config.DatabasePath, a.Notifier)
	if err != nil {
		return fmt.Errorf("sitepress: init store: %w", err)
	}
	a.Store = store

	a.Cache = NewPostCache(a.Store, a.Config.PostCacheTTL)
	a.Sections = NewResolver(a.Store, "")
	a.Parser = docparse.NewParser(slog.Default())
	a.loginLimiter = newAttemptLimiter(5, loginWindow)

	if err := a.Sections.Refresh(); err != nil {
		return fmt.Errorf("sitepress: load sections: %w", err)
	}

	// Refetch loops: cache invalidation on post changes, full section
	// replacement on section changes. Both stop on Close.
	ctx, cancel := context.WithCancel(context.Background())
	a.cancelWatch = cancel
	go a.Sections.Watch(ctx, a.Notifier)
	go a.Cache.Watch(ctx, a.Notifier)

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}

	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Embedded framework assets fall through to the user's static dir.
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET("/public/editor.js", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))

	e.Static("/public", a.Config.StaticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)

	// Public routes
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/", a.handleHome)
	e.GET("/blog/", a.handleBlogIndex)
	e.GET("/blog/:slug/", a.handlePost)
	e.GET("/pages/:page/", a.handlePage)

	// Admin routes
	e.GET("/admin/", a.handleAdmin)
	e.POST("/admin/login/", a.handleAdminLogin)
	e.POST("/admin/logout/", handleAdminLogout)
	e.GET("/admin/post/:slug/", a.handleAdminPost)
	e.GET("/admin/post/:slug/export.md", a.handleExportMarkdown)
	e.POST("/admin/save/", a.handleAdminSave)
	e.DELETE("/admin/post/:slug/", a.handleAdminDelete)
	e.POST("/admin/upload-document/", a.handleDocumentUpload)
	e.GET("/admin/sections/", a.handleAdminSections)
	e.GET("/admin/section/:id/", a.handleAdminSection)
	e.POST("/admin/section/save/", a.handleAdminSectionSave)
	e.DELETE("/admin/section/:id/", a.handleAdminSectionDelete)
	e.GET("/admin/images/", a.handleImageList)
	e.POST("/admin/images/upload/", a.handleImageUpload)
	e.DELETE("/admin/images/:filename/", a.handleImageDelete)
	e.GET("/admin/diagnostics/", a.handleDiagnostics)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.cancelWatch != nil {
		a.cancelWatch()
	}
	if a.Notifier != nil {
		a.Notifier.Close()
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
