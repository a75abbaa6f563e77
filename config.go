package inkpress

// SiteConfig holds all configuration for an inkpress site.
type SiteConfig struct {
	Name        string // Site name (default "Blog")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for the feed and meta tags
	Author      string // Single author name, stamped on every entry

	Addr         string // Listen address (default ":3000")
	DatabasePath string // SQLite path (default "data/blog.db")

	PostsPerPage    int // Entries per home/tag page (default 10)
	PostsPerArchive int // Entries per archive page (default 20)
	PostsInFeed     int // Entries in the Atom feed (default 10)
	CommentsPerPage int // Comments per entry page (default 40)

	AdminPassword string // Required: admin login password
	SessionSecret string // Required: session encryption secret
	CookieSecure  bool   // Set true for HTTPS
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Author == "" {
		c.Author = "author"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/blog.db"
	}
	if c.PostsPerPage == 0 {
		c.PostsPerPage = 10
	}
	if c.PostsPerArchive == 0 {
		c.PostsPerArchive = 20
	}
	if c.PostsInFeed == 0 {
		c.PostsInFeed = 10
	}
	if c.CommentsPerPage == 0 {
		c.CommentsPerPage = 40
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}
