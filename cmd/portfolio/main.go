package main

import (
	"log"
	"strings"

	"github.com/joho/godotenv"

	"github.com/shasabbir/portfolio"
)

func main() {
	// Optional .env for local development; real deployments set env vars.
	_ = godotenv.Load()

	cfg := portfolio.SiteConfig{
		Name:        portfolio.EnvOr("SITE_NAME", "Portfolio"),
		URL:         strings.TrimSuffix(portfolio.EnvOr("SITE_URL", "http://localhost:3000"), "/"),
		Description: portfolio.EnvOr("SITE_DESCRIPTION", ""),
		Author:      portfolio.EnvOr("SITE_AUTHOR", ""),
		AuthorImage: portfolio.EnvOr("SITE_AUTHOR_IMAGE", ""),

		Addr: portfolio.EnvOr("ADDR", ":3000"),

		StorageBackend: portfolio.EnvOr("STORAGE_BACKEND", portfolio.BackendFile),
		DataDir:        portfolio.EnvOr("DATA_DIR", "data"),
		MongoURI:       portfolio.EnvOr("MONGODB_URI", ""),
		MongoDatabase:  portfolio.EnvOr("MONGODB_DATABASE", "portfolio"),

		AnalyticsEnabled:      strings.EqualFold(portfolio.EnvOr("ANALYTICS_ENABLED", "false"), "true"),
		AnalyticsDatabasePath: portfolio.EnvOr("ANALYTICS_DATABASE_PATH", "data/analytics.db"),

		AdminPassword: portfolio.MustEnv("ADMIN_PASSWORD"),
		AdminToken:    portfolio.MustEnv("ADMIN_TOKEN"),
		SessionSecret: portfolio.MustEnv("ADMIN_SESSION_SECRET"),
		CookieSecure:  strings.EqualFold(portfolio.EnvOr("COOKIE_SECURE", "false"), "true"),
	}

	app := portfolio.New(cfg, portfolio.WithStaticDir(portfolio.EnvOr("STATIC_DIR", "public")))
	defer app.Close()

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
