package inkpress

import (
	"encoding/xml"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type atomFeed struct {
	XMLName  xml.Name    `xml:"feed"`
	XMLNS    string      `xml:"xmlns,attr"`
	Title    string      `xml:"title"`
	Subtitle string      `xml:"subtitle,omitempty"`
	ID       string      `xml:"id"`
	Updated  string      `xml:"updated"`
	Links    []atomLink  `xml:"link"`
	Author   *atomAuthor `xml:"author,omitempty"`
	Entries  []atomEntry `xml:"entry"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr,omitempty"`
	Type string `xml:"type,attr,omitempty"`
}

type atomAuthor struct {
	Name string `xml:"name"`
}

type atomEntry struct {
	Title     string      `xml:"title"`
	ID        string      `xml:"id"`
	Link      atomLink    `xml:"link"`
	Published string      `xml:"published"`
	Updated   string      `xml:"updated"`
	Content   atomContent `xml:"content"`
}

type atomContent struct {
	Type string `xml:"type,attr"`
	Body string `xml:",chardata"`
}

func (a *App) handleFeed(c echo.Context) error {
	page, err := a.Store.PageEntries(nil, a.Config.PostsInFeed, "")
	if err != nil {
		return err
	}
	return a.renderAtom(c, page.Items)
}

func (a *App) renderAtom(c echo.Context, entries []Entry) error {
	base := a.Config.URL
	updated := time.Now()
	if len(entries) > 0 {
		updated = entries[0].Updated
	}
	feed := atomFeed{
		XMLNS:    "http://www.w3.org/2005/Atom",
		Title:    a.Config.Name,
		Subtitle: a.Config.Description,
		ID:       BuildURL(base),
		Updated:  updated.UTC().Format(time.RFC3339),
		Links: []atomLink{
			{Href: BuildURL(base)},
			{Href: base + "/feed.xml", Rel: "self", Type: "application/atom+xml"},
		},
	}
	if a.Config.Author != "" {
		feed.Author = &atomAuthor{Name: a.Config.Author}
	}
	for _, e := range entries {
		entryURL := EntryURL(base, e.Index)
		feed.Entries = append(feed.Entries, atomEntry{
			Title:     e.Title,
			ID:        entryURL,
			Link:      atomLink{Href: entryURL},
			Published: e.Published.UTC().Format(time.RFC3339),
			Updated:   e.Updated.UTC().Format(time.RFC3339),
			Content:   atomContent{Type: "html", Body: e.HTML},
		})
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/atom+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(feed)
}
