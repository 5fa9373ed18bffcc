// Package portfolio is the backend of a personal academic site built with
// Go and Echo. It serves the blog and publications collections as JSON,
// gates every mutation behind an admin session, and handles image uploads,
// citation formatting, RSS, and sitemap out of the box.
//
// Content persistence is a single Store interface with two backends,
// MongoDB or a flat JSON file per collection, selected once at startup.
package portfolio

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/shasabbir/portfolio/analytics"
)

// App is the central portfolio application. It wires together the store,
// cache, handlers, and middleware.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Store  Store
	Cache  *ContentCache

	loginLimiter   *LoginLimiter
	analyticsStore *analytics.Store
	customRoutes   []func(*App)
	staticDir      string
}

// New creates a new portfolio App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Start initializes the store, cache, middleware, and routes, then starts
// the server. It blocks until the server stops.
func (a *App) Start() error {
	if a.Config.AdminPassword == "" {
		return fmt.Errorf("portfolio: AdminPassword is required")
	}
	if a.Config.AdminToken == "" {
		return fmt.Errorf("portfolio: AdminToken is required")
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("portfolio: SessionSecret is required")
	}

	if a.Store == nil {
		store, err := openStore(a.Config)
		if err != nil {
			return fmt.Errorf("portfolio: init store: %w", err)
		}
		a.Store = store
	}

	a.Cache = NewContentCache(a.Store, a.Config.ContentCacheTTL)
	a.loginLimiter = NewLoginLimiter(5, time.Minute)

	if a.Config.AnalyticsEnabled {
		store, err := analytics.NewStore(a.Config.AnalyticsDatabasePath)
		if err != nil {
			return fmt.Errorf("portfolio: init analytics: %w", err)
		}
		a.analyticsStore = store
		stopCleanup := store.StartCleanupScheduler(365, 24*time.Hour)
		defer stopCleanup()
	}

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

// openStore selects the storage backend. Exactly one backend serves a
// running process; the two are never mixed.
func openStore(cfg SiteConfig) (Store, error) {
	switch cfg.StorageBackend {
	case BackendFile:
		return NewFileStore(cfg.DataDir)
	case BackendMongo:
		if cfg.MongoURI == "" {
			return nil, fmt.Errorf("MongoURI is required for the mongo backend")
		}
		return NewMongoStore(context.Background(), cfg.MongoURI, cfg.MongoDatabase)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public", a.staticDir)
	// Uploaded images are addressed at the root so the imageUrl stored in
	// posts resolves on this server.
	e.Static("/images", filepath.Join(a.staticDir, "images"))
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)

	// Public content reads, served through the cache.
	e.GET("/api/posts", a.handleListPosts)
	e.GET("/api/posts/:slug", a.handleGetPost)
	e.GET("/api/publications", a.handleListPublications)
	e.GET("/api/publications/:id", a.handleGetPublication)

	// Admin auth.
	e.POST("/admin/login", a.handleAdminLogin)
	e.POST("/admin/logout", handleAdminLogout)

	// Admin-gated mutations. Each handler checks the session itself so an
	// unauthorized caller gets the uniform envelope, not a redirect.
	e.POST("/api/posts", a.handleSavePost)
	e.DELETE("/api/posts/:slug", a.handleDeletePost)
	e.POST("/api/publications", a.handleSavePublication)
	e.DELETE("/api/publications/:id", a.handleDeletePublication)
	e.POST("/api/citation", a.handleFormatCitation)
	e.POST("/api/images", a.handleImageUpload)
	e.GET("/api/images", a.handleImageList)
	e.DELETE("/api/images/:filename", a.handleImageDelete)

	if a.analyticsStore != nil {
		h := analytics.NewHandler(a.analyticsStore)
		e.POST("/api/analytics/visit", h.RecordVisit)
		e.GET("/admin/analytics", func(c echo.Context) error {
			if !a.isAdmin(c) {
				return unauthorized(c)
			}
			return h.Summary(c)
		})
	}
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if a.Store != nil {
		if err := a.Store.Close(ctx); err != nil {
			return err
		}
	}
	if a.analyticsStore != nil {
		return a.analyticsStore.Close()
	}
	return nil
}
