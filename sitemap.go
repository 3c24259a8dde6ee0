package inkwell

import (
	"encoding/xml"
	"net/http"
	"time"

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

func (a *App) handleSitemap(c echo.Context) error {
	articles, err := a.Store.GetArticles(ArticleQuery{Released: boolPtr(true)})
	if err != nil {
		return err
	}
	pages, err := a.Store.GetPages(PageQuery{Released: boolPtr(true)})
	if err != nil {
		return err
	}

	base := a.Config.URL
	urls := []sitemapURL{{Loc: buildURL(base)}}
	for _, art := range articles {
		urls = append(urls, sitemapURL{
			Loc:     buildURL(base, "post", art.Slug),
			LastMod: time.Unix(art.Date, 0).UTC().Format("2006-01-02"),
		})
	}
	for _, p := range pages {
		last := p.Edited
		if last == 0 {
			last = p.Created
		}
		urls = append(urls, sitemapURL{
			Loc:     buildURL(base, "page", p.Slug),
			LastMod: time.Unix(last, 0).UTC().Format("2006-01-02"),
		})
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
