package inkpress

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/eringen/inkpress/markdown"
)

// maxCommentHTML caps the rendered size of a comment. Longer submissions
// are rejected, not truncated.
const maxCommentHTML = 1000

func (a *App) handleHome(c echo.Context) error {
	return a.renderListing(c, "", a.Config.PostsPerPage, a.Views.Home)
}

func (a *App) handleTag(c echo.Context) error {
	tag := c.Param("tag")
	return a.renderListing(c, tag, a.Config.PostsPerPage, a.Views.Home)
}

func (a *App) handleArchive(c echo.Context) error {
	start, err := ParseCursor(c.QueryParam("start"))
	if err != nil {
		return err
	}
	page, err := a.Store.PageEntries(start, a.Config.PostsPerArchive, "")
	if err != nil {
		return err
	}
	return Render(c, a.Views.Archive(a.Config, page.Items, page.Extra))
}

func (a *App) renderListing(c echo.Context, tag string, batchSize int, view func(SiteConfig, []Entry, *Entry, []Tag, string) templ.Component) error {
	start, err := ParseCursor(c.QueryParam("start"))
	if err != nil {
		return err
	}
	page, err := a.Store.PageEntries(start, batchSize, tag)
	if err != nil {
		return err
	}
	tags, err := a.Tags.ListTags()
	if err != nil {
		return err
	}
	return Render(c, view(a.Config, page.Items, page.Extra, tags, tag))
}

func (a *App) handleEntry(c echo.Context) error {
	index, err := parseIndexParam(c.Param("index"))
	if err != nil {
		return err
	}
	entry, err := a.Store.GetEntry(index)
	if err != nil {
		return err
	}
	commentStart, err := ParseCursor(c.QueryParam("comment_start"))
	if err != nil {
		return err
	}
	page, err := a.Store.PageComments(index, commentStart, a.Config.CommentsPerPage)
	if err != nil {
		return err
	}
	count, exact, err := a.Counts.Get(index)
	if err != nil {
		return err
	}
	return Render(c, a.Views.Entry(a.Config, entry, page.Items, page.Extra, count, exact, CsrfToken(c)))
}

// handleComment accepts a comment POST. The handler owns the policy the
// store does not: rate limiting, website normalization, webtext-to-HTML
// conversion, and the rendered-size cap.
func (a *App) handleComment(c echo.Context) error {
	if !a.commentLimiter.Allow(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Too many comments. Try again later.")
	}
	entryIndex, err := parseIndexParam(c.FormValue("entry_index"))
	if err != nil {
		return err
	}
	author := c.FormValue("author")
	website := NormalizeWebsite(c.FormValue("website"))
	html := markdown.WebText(c.FormValue("content"))
	if len(html) > maxCommentHTML {
		return fmt.Errorf("%w: comment too long", ErrInvalidArgument)
	}
	if _, err := a.Store.CreateComment(entryIndex, author, website, html); err != nil {
		return err
	}
	a.Counts.Bump(entryIndex)
	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/entry/%d/#comments", entryIndex))
}

func (a *App) handleAbout(c echo.Context) error {
	return Render(c, a.Views.About(a.Config))
}

func (a *App) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\nDisallow: /admin/\nDisallow: /compose/\n\nSitemap: %s/sitemap.xml\n", a.Config.URL)
	return c.String(http.StatusOK, body)
}

func parseIndexParam(raw string) (int64, error) {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: entry index %q", ErrInvalidArgument, raw)
	}
	return n, nil
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	switch {
	case errors.Is(err, ErrNotFound):
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.Config))
		return
	case errors.Is(err, ErrInvalidArgument):
		_ = c.String(http.StatusBadRequest, "Bad Request")
		return
	case errors.Is(err, ErrConflict), errors.Is(err, ErrUnavailable):
		c.Logger().Errorf("storage error: %v", err)
		_ = RenderStatus(c, http.StatusServiceUnavailable, a.Views.ServerError(a.Config))
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.Config))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Views.ServerError(a.Config))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
