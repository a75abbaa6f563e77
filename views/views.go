// Package views provides the default templ components for an inkpress site.
// Components are hand-written templ.ComponentFunc renderers; sites wanting
// their own look pass a different ViewFuncs to inkpress.New.
package views

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/url"
	"strings"

	"github.com/a-h/templ"

	"github.com/eringen/inkpress"
)

// Defaults returns the stock ViewFuncs wired to the components below.
func Defaults() inkpress.ViewFuncs {
	return inkpress.ViewFuncs{
		Home:        Home,
		Archive:     Archive,
		Entry:       EntryPage,
		Compose:     Compose,
		AdminLogin:  AdminLogin,
		AdminImages: AdminImages,
		About:       About,
		NotFound:    NotFound,
		ServerError: ServerError,
	}
}

func component(render func(b *strings.Builder)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		render(&b)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func esc(s string) string { return html.EscapeString(s) }

func shell(b *strings.Builder, cfg inkpress.SiteConfig, title string, body func(*strings.Builder)) {
	pageTitle := cfg.Name
	if title != "" {
		pageTitle = title + " · " + cfg.Name
	}
	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\"><head>")
	b.WriteString("<meta charset=\"utf-8\"/>")
	b.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\"/>")
	fmt.Fprintf(b, "<title>%s</title>", esc(pageTitle))
	if cfg.Description != "" {
		fmt.Fprintf(b, "<meta name=\"description\" content=\"%s\"/>", esc(cfg.Description))
	}
	b.WriteString("<link rel=\"stylesheet\" href=\"/public/inkpress.css\"/>")
	fmt.Fprintf(b, "<link rel=\"alternate\" type=\"application/atom+xml\" title=\"%s\" href=\"/feed.xml\"/>", esc(cfg.Name))
	b.WriteString("</head><body>")
	b.WriteString("<header class=\"site\">")
	fmt.Fprintf(b, "<h1><a href=\"/\">%s</a></h1>", esc(cfg.Name))
	b.WriteString("<nav><a href=\"/\">home</a><a href=\"/archive/\">archive</a><a href=\"/about/\">about</a><a href=\"/feed.xml\">feed</a></nav>")
	b.WriteString("</header>")
	body(b)
	b.WriteString("<footer class=\"site\">")
	fmt.Fprintf(b, "&copy; %s", esc(cfg.Author))
	b.WriteString("</footer></body></html>")
}

func writeTags(b *strings.Builder, tags []string) {
	if len(tags) == 0 {
		return
	}
	b.WriteString("<span class=\"tags\">")
	for _, t := range tags {
		fmt.Fprintf(b, "<a href=\"/tag/%s/\">%s</a>", url.PathEscape(t), esc(t))
	}
	b.WriteString("</span>")
}

func writeEntry(b *strings.Builder, e inkpress.Entry) {
	b.WriteString("<article class=\"entry\">")
	fmt.Fprintf(b, "<h2><a href=\"/entry/%d/\">%s</a></h2>", e.Index, esc(e.Title))
	fmt.Fprintf(b, "<p class=\"meta\">%s · %s ", esc(e.Author), e.Published.Format("Jan 2, 2006"))
	writeTags(b, e.Tags)
	b.WriteString("</p>")
	b.WriteString(e.HTML)
	b.WriteString("</article>")
}

func writePager(b *strings.Builder, base string, param string, extra *int64) {
	if extra == nil {
		return
	}
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	fmt.Fprintf(b, "<p class=\"pager\"><a href=\"%s%s%s=%d\">Earlier &rarr;</a></p>", base, sep, param, *extra)
}

// Home renders the entry listing, shared by the home page and tag pages.
func Home(cfg inkpress.SiteConfig, entries []inkpress.Entry, extra *inkpress.Entry, tags []inkpress.Tag, activeTag string) templ.Component {
	return component(func(b *strings.Builder) {
		shell(b, cfg, activeTag, func(b *strings.Builder) {
			if activeTag != "" {
				fmt.Fprintf(b, "<p class=\"meta\">Entries tagged <strong>%s</strong></p>", esc(activeTag))
			}
			if len(entries) == 0 {
				b.WriteString("<p>Nothing here yet.</p>")
			}
			for _, e := range entries {
				writeEntry(b, e)
			}
			base := "/"
			if activeTag != "" {
				base = "/tag/" + url.PathEscape(activeTag) + "/"
			}
			var cursor *int64
			if extra != nil {
				cursor = &extra.Index
			}
			writePager(b, base, "start", cursor)
			if len(tags) > 0 {
				b.WriteString("<p class=\"tags\">All tags: ")
				for _, t := range tags {
					fmt.Fprintf(b, "<a href=\"/tag/%s/\">%s (%d)</a> ", url.PathEscape(t.Name), esc(t.Name), t.RefCount)
				}
				b.WriteString("</p>")
			}
		})
	})
}

// Archive renders the compact title-only listing.
func Archive(cfg inkpress.SiteConfig, entries []inkpress.Entry, extra *inkpress.Entry) templ.Component {
	return component(func(b *strings.Builder) {
		shell(b, cfg, "Archive", func(b *strings.Builder) {
			b.WriteString("<h2>Archive</h2><ul>")
			for _, e := range entries {
				fmt.Fprintf(b, "<li>%s · <a href=\"/entry/%d/\">%s</a></li>",
					e.Published.Format("2006-01-02"), e.Index, esc(e.Title))
			}
			b.WriteString("</ul>")
			var cursor *int64
			if extra != nil {
				cursor = &extra.Index
			}
			writePager(b, "/archive/", "start", cursor)
		})
	})
}

// EntryPage renders a single entry with its comments and the comment form.
func EntryPage(cfg inkpress.SiteConfig, entry inkpress.Entry, comments []inkpress.Comment, extra *inkpress.Comment, count int, exact bool, csrfToken string) templ.Component {
	return component(func(b *strings.Builder) {
		shell(b, cfg, entry.Title, func(b *strings.Builder) {
			writeEntry(b, entry)

			b.WriteString("<section id=\"comments\">")
			suffix := ""
			if !exact {
				suffix = "+"
			}
			fmt.Fprintf(b, "<h3>%d%s comments</h3>", count, suffix)
			for _, cm := range comments {
				b.WriteString("<div class=\"comment\"><p class=\"meta\">")
				if cm.Website != "" {
					// esc, not %q: Go quoting escapes " as \" which HTML
					// still reads as a terminated attribute.
					fmt.Fprintf(b, "<a href=\"%s\" rel=\"nofollow\">%s</a>", esc(cm.Website), esc(cm.Author))
				} else {
					b.WriteString(esc(cm.Author))
				}
				fmt.Fprintf(b, " · %s</p>", cm.Published.Format("Jan 2, 2006 15:04"))
				b.WriteString(cm.HTML)
				b.WriteString("</div>")
			}
			var cursor *int64
			if extra != nil {
				cursor = &extra.Index
			}
			writePager(b, fmt.Sprintf("/entry/%d/", entry.Index), "comment_start", cursor)

			b.WriteString("<form class=\"stack\" method=\"post\" action=\"/comment/\">")
			fmt.Fprintf(b, "<input type=\"hidden\" name=\"_csrf\" value=\"%s\"/>", esc(csrfToken))
			fmt.Fprintf(b, "<input type=\"hidden\" name=\"entry_index\" value=\"%d\"/>", entry.Index)
			b.WriteString("<label>Name <input type=\"text\" name=\"author\" required/></label>")
			b.WriteString("<label>Website <input type=\"text\" name=\"website\"/></label>")
			b.WriteString("<label>Comment <textarea name=\"content\" required></textarea></label>")
			b.WriteString("<button type=\"submit\">Post comment</button>")
			b.WriteString("</form></section>")
		})
	})
}

// Compose renders the entry editor, blank or pre-filled for editing.
func Compose(cfg inkpress.SiteConfig, entry *inkpress.Entry, tags []inkpress.Tag, csrfToken string) templ.Component {
	return component(func(b *strings.Builder) {
		shell(b, cfg, "Compose", func(b *strings.Builder) {
			b.WriteString("<h2>Compose</h2>")
			b.WriteString("<form class=\"stack\" method=\"post\" action=\"/compose/\">")
			fmt.Fprintf(b, "<input type=\"hidden\" name=\"_csrf\" value=\"%s\"/>", esc(csrfToken))
			title, content, tagLine := "", "", ""
			if entry != nil {
				fmt.Fprintf(b, "<input type=\"hidden\" name=\"index\" value=\"%d\"/>", entry.Index)
				title = entry.Title
				content = entry.Content
				tagLine = inkpress.JoinTags(entry.Tags)
			}
			fmt.Fprintf(b, "<label>Title <input type=\"text\" name=\"title\" value=\"%s\" required/></label>", esc(title))
			fmt.Fprintf(b, "<label>Tags <input type=\"text\" name=\"tags\" value=\"%s\"/></label>", esc(tagLine))
			fmt.Fprintf(b, "<label>Content <textarea name=\"content\">%s</textarea></label>", esc(content))
			b.WriteString("<button type=\"submit\">Publish</button>")
			b.WriteString("</form>")
			if len(tags) > 0 {
				b.WriteString("<p class=\"meta\">Existing tags: ")
				for _, t := range tags {
					fmt.Fprintf(b, "%s (%d) ", esc(t.Name), t.RefCount)
				}
				b.WriteString("</p>")
			}
			b.WriteString("<p><a href=\"/admin/images/\">Manage images</a></p>")
			b.WriteString("<form method=\"post\" action=\"/admin/logout/\">")
			fmt.Fprintf(b, "<input type=\"hidden\" name=\"_csrf\" value=\"%s\"/>", esc(csrfToken))
			b.WriteString("<button type=\"submit\">Log out</button></form>")
		})
	})
}

// AdminLogin renders the password prompt.
func AdminLogin(cfg inkpress.SiteConfig, showError bool, csrfToken string) templ.Component {
	return component(func(b *strings.Builder) {
		shell(b, cfg, "Admin", func(b *strings.Builder) {
			b.WriteString("<h2>Admin</h2>")
			if showError {
				b.WriteString("<p class=\"error\">Wrong password.</p>")
			}
			b.WriteString("<form class=\"stack\" method=\"post\" action=\"/admin/login/\">")
			fmt.Fprintf(b, "<input type=\"hidden\" name=\"_csrf\" value=\"%s\"/>", esc(csrfToken))
			b.WriteString("<label>Password <input type=\"password\" name=\"password\" required/></label>")
			b.WriteString("<button type=\"submit\">Log in</button>")
			b.WriteString("</form>")
		})
	})
}

// AdminImages renders the upload form and the list of uploaded images.
func AdminImages(cfg inkpress.SiteConfig, images []inkpress.Image, csrfToken string) templ.Component {
	return component(func(b *strings.Builder) {
		shell(b, cfg, "Images", func(b *strings.Builder) {
			b.WriteString("<h2>Images</h2>")
			b.WriteString("<form class=\"stack\" method=\"post\" action=\"/admin/images/upload/\" enctype=\"multipart/form-data\">")
			fmt.Fprintf(b, "<input type=\"hidden\" name=\"_csrf\" value=\"%s\"/>", esc(csrfToken))
			b.WriteString("<label>Image <input type=\"file\" name=\"image\" accept=\"image/*\" required/></label>")
			b.WriteString("<button type=\"submit\">Upload</button></form><ul>")
			for _, img := range images {
				fmt.Fprintf(b, "<li><a href=\"%s\">%s</a> (%d bytes)</li>", esc(img.URL), esc(img.Filename), img.Size)
			}
			b.WriteString("</ul><p><a href=\"/compose/\">&larr; Back to compose</a></p>")
		})
	})
}

// About renders the about page from the site description.
func About(cfg inkpress.SiteConfig) templ.Component {
	return component(func(b *strings.Builder) {
		shell(b, cfg, "About", func(b *strings.Builder) {
			b.WriteString("<h2>About</h2>")
			fmt.Fprintf(b, "<p>%s</p>", esc(cfg.Description))
			fmt.Fprintf(b, "<p class=\"meta\">Written by %s.</p>", esc(cfg.Author))
		})
	})
}

// NotFound renders the 404 page.
func NotFound(cfg inkpress.SiteConfig) templ.Component {
	return component(func(b *strings.Builder) {
		shell(b, cfg, "Not found", func(b *strings.Builder) {
			b.WriteString("<h2>404</h2><p>That page does not exist. <a href=\"/\">Go home.</a></p>")
		})
	})
}

// ServerError renders the 5xx page.
func ServerError(cfg inkpress.SiteConfig) templ.Component {
	return component(func(b *strings.Builder) {
		shell(b, cfg, "Error", func(b *strings.Builder) {
			b.WriteString("<h2>Something broke</h2><p>Try again in a moment.</p>")
		})
	})
}
