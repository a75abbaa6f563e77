// Package inkpress is a single-author blog engine built with Go, Echo, and
// templ. Entries and comments are keyed by dense, monotonically increasing
// indices allocated from per-namespace counters inside SQLite transactions;
// listings page through them newest-first with a fetch-one-extra cursor
// scheme, and a ref-counted tag ledger backs the tag cloud.
//
// Users provide their own templ components via the ViewFuncs struct, and
// inkpress handles the handler logic, middleware, and database operations.
package inkpress

import (
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// ViewFuncs holds user-provided templ components that the engine calls when
// rendering pages. This is the inversion-of-control mechanism that lets
// users own and customize all templates.
type ViewFuncs struct {
	Home        func(cfg SiteConfig, entries []Entry, extra *Entry, tags []Tag, activeTag string) templ.Component
	Archive     func(cfg SiteConfig, entries []Entry, extra *Entry) templ.Component
	Entry       func(cfg SiteConfig, entry Entry, comments []Comment, extra *Comment, count int, exact bool, csrfToken string) templ.Component
	Compose     func(cfg SiteConfig, entry *Entry, tags []Tag, csrfToken string) templ.Component
	AdminLogin  func(cfg SiteConfig, showError bool, csrfToken string) templ.Component
	AdminImages func(cfg SiteConfig, images []Image, csrfToken string) templ.Component
	About       func(cfg SiteConfig) templ.Component
	NotFound    func(cfg SiteConfig) templ.Component
	ServerError func(cfg SiteConfig) templ.Component
}

// App is the central inkpress application. It wires together the store,
// caches, handlers, middleware, and user-provided templates.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Store  *Store
	Tags   *TagCache
	Counts *CommentCounts
	Views  ViewFuncs

	loginLimiter   *RateLimiter
	commentLimiter *RateLimiter
	customRoutes   []func(*App)
	staticDir      string
}

// How many comments a count recomputation will scan before giving up on an
// exact total.
const commentCountScanLimit = 1000

// New creates a new inkpress App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     views,
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Start initializes the database, caches, middleware, routes, and starts the server.
func (a *App) Start() error {
	if a.Config.AdminPassword == "" {
		return fmt.Errorf("inkpress: AdminPassword is required")
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("inkpress: SessionSecret is required")
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("inkpress: init store: %w", err)
	}
	a.Store = store

	a.Tags = NewTagCache(store, 5*time.Minute)
	a.Counts = NewCommentCounts(store, commentCountScanLimit)
	a.loginLimiter = NewRateLimiter(5, time.Minute)
	a.commentLimiter = NewRateLimiter(10, time.Minute)

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

	// Embedded default stylesheet, falling back to the user's static dir.
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET("/public/inkpress.css", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))

	e.Static("/public", a.staticDir)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)

	e.GET("/", a.handleHome)
	e.GET("/archive/", a.handleArchive)
	e.GET("/tag/:tag/", a.handleTag)
	e.GET("/entry/:index/", a.handleEntry)
	e.GET("/about/", a.handleAbout)
	e.POST("/comment/", a.handleComment)

	// Admin routes: password-protected compose and image management.
	e.GET("/admin/", a.handleAdmin)
	e.POST("/admin/login/", a.handleAdminLogin)
	e.POST("/admin/logout/", handleAdminLogout)
	e.GET("/compose/", a.handleComposeForm)
	e.POST("/compose/", a.handleComposeSave)
	e.GET("/admin/images/", a.handleImageList)
	e.POST("/admin/images/upload/", a.handleImageUpload)
	e.DELETE("/admin/images/:filename/", a.handleImageDelete)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("inkpress: required environment variable %s is not set", key)
	}
	return v
}
