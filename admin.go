package inkpress

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/inkpress/markdown"
)

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return Render(c, a.Views.AdminLogin(a.Config, false, CsrfToken(c)))
	}
	return c.Redirect(http.StatusSeeOther, "/compose/")
}

func (a *App) handleAdminLogin(c echo.Context) error {
	if !a.loginLimiter.Check(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1 {
		if err := setAdminSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/compose/")
	}
	a.loginLimiter.Record(c.RealIP())
	return Render(c, a.Views.AdminLogin(a.Config, true, CsrfToken(c)))
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// handleComposeForm serves the compose screen: empty for a new entry, or
// pre-filled when ?index= points at an existing one.
func (a *App) handleComposeForm(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	var entry *Entry
	if raw := c.QueryParam("index"); raw != "" {
		index, err := parseIndexParam(raw)
		if err != nil {
			return err
		}
		e, err := a.Store.GetEntry(index)
		if err != nil {
			return err
		}
		entry = &e
	}
	tags, err := a.Tags.ListTags()
	if err != nil {
		return err
	}
	return Render(c, a.Views.Compose(a.Config, entry, tags, CsrfToken(c)))
}

// handleComposeSave creates or updates an entry. Markdown is rendered here,
// before the store call; the store only ever sees finished HTML.
func (a *App) handleComposeSave(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	if err := c.Request().ParseForm(); err != nil {
		return err
	}
	title := strings.TrimSpace(c.FormValue("title"))
	content := c.FormValue("content")
	html := markdown.Render(content)
	tags := NormalizeTags(strings.FieldsFunc(c.FormValue("tags"), func(r rune) bool {
		return r == ',' || r == ' '
	}))

	var index int64
	if raw := c.FormValue("index"); raw != "" {
		var err error
		index, err = parseIndexParam(raw)
		if err != nil {
			return err
		}
		if err := a.Store.UpdateEntry(index, title, content, html, tags); err != nil {
			return err
		}
	} else {
		var err error
		index, err = a.Store.CreateEntry(a.Config.Author, title, content, html, tags)
		if err != nil {
			return err
		}
	}
	a.Tags.Invalidate()
	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/entry/%d/", index))
}
