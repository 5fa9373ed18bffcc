package portfolio

import "time"

// Storage backend names accepted by SiteConfig.StorageBackend.
const (
	BackendFile  = "file"
	BackendMongo = "mongo"
)

// SiteConfig holds all configuration for a portfolio site.
type SiteConfig struct {
	Name        string // Site name (default "Portfolio")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for RSS and meta tags
	Author      string // Owner name, stamped on new blog posts
	AuthorImage string // Owner avatar URL, stamped on new blog posts

	Addr string // Listen address (default ":3000")

	StorageBackend string // "file" or "mongo" (default "file")
	DataDir        string // JSON file backend directory (default "data")
	MongoURI       string // Mongo backend connection string
	MongoDatabase  string // Mongo database name (default "portfolio")

	AnalyticsEnabled      bool   // Enable visit analytics (default off)
	AnalyticsDatabasePath string // Analytics SQLite path (default "data/analytics.db")

	AdminPassword string // Required: admin login password
	AdminToken    string // Required: opaque token held in the admin session
	SessionSecret string // Required: session encryption secret
	CookieSecure  bool   // Set true for HTTPS

	ContentCacheTTL time.Duration // Content cache TTL (default 5min)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Portfolio"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.StorageBackend == "" {
		c.StorageBackend = BackendFile
	}
	if c.DataDir == "" {
		c.DataDir = "data"
	}
	if c.MongoDatabase == "" {
		c.MongoDatabase = "portfolio"
	}
	if c.AnalyticsDatabasePath == "" {
		c.AnalyticsDatabasePath = "data/analytics.db"
	}
	if c.ContentCacheTTL == 0 {
		c.ContentCacheTTL = 5 * time.Minute
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

// WithStaticDir sets the directory for static assets and uploads (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithStore overrides the storage backend selected by SiteConfig. Used to
// inject a pre-built store (for example in tests).
func WithStore(s Store) Option {
	return func(a *App) {
		a.Store = s
	}
}
