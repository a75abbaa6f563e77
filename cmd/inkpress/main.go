// inkpress server binary. All site branding and secrets come from
// environment variables; see SiteConfig for the knobs.
package main

import (
	"log"
	"strings"

	"github.com/eringen/inkpress"
	"github.com/eringen/inkpress/views"
)

func main() {
	cfg := inkpress.SiteConfig{
		Name:        inkpress.EnvOr("SITE_NAME", "Blog"),
		URL:         strings.TrimSuffix(inkpress.EnvOr("SITE_URL", "http://localhost:3000"), "/"),
		Description: inkpress.EnvOr("SITE_DESCRIPTION", ""),
		Author:      inkpress.EnvOr("SITE_AUTHOR", "author"),

		Addr:         inkpress.EnvOr("ADDR", ":3000"),
		DatabasePath: inkpress.EnvOr("DATABASE_PATH", "data/blog.db"),

		AdminPassword: inkpress.MustEnv("ADMIN_PASSWORD"),
		SessionSecret: inkpress.MustEnv("ADMIN_SESSION_SECRET"),
		CookieSecure:  strings.EqualFold(inkpress.EnvOr("COOKIE_SECURE", ""), "true"),
	}

	app := inkpress.New(cfg, views.Defaults())
	defer app.Close()

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
