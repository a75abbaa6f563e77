package inkpress

import (
	"encoding/xml"
	"net/http"

	"github.com/labstack/echo/v4"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// handleSitemap lists the site root plus every entry URL. Entries are paged
// out of the store in archive-sized batches so the sitemap stays complete
// without loading the whole table in one query.
func (a *App) handleSitemap(c echo.Context) error {
	urls := []sitemapURL{
		{Loc: BuildURL(a.Config.URL)},
	}
	var start *int64
	for {
		page, err := a.Store.PageEntries(start, a.Config.PostsPerArchive, "")
		if err != nil {
			return err
		}
		for _, e := range page.Items {
			urls = append(urls, sitemapURL{
				Loc:     EntryURL(a.Config.URL, e.Index),
				LastMod: e.Updated.UTC().Format("2006-01-02"),
			})
		}
		if page.Extra == nil {
			break
		}
		start = &page.Extra.Index
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(sitemap)
}
