package inkwell

import (
	"encoding/xml"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
	GUID        string `xml:"guid"`
}

// buildURL joins path parts onto a base URL without doubling slashes.
func buildURL(base string, parts ...string) string {
	url := strings.TrimRight(base, "/")
	for _, p := range parts {
		url += "/" + strings.Trim(p, "/")
	}
	return url
}

func (a *App) handleFeed(c echo.Context) error {
	articles, err := a.Store.GetArticles(ArticleQuery{
		Start: 0, PageSize: a.Settings.PageSize(),
		WithBody: true, Released: boolPtr(true), Render: true,
	})
	if err != nil {
		return err
	}

	base := a.Config.URL
	items := make([]rssItem, 0, len(articles))
	for _, art := range articles {
		articleURL := buildURL(base, "post", art.Slug)
		items = append(items, rssItem{
			Title:       art.Title,
			Link:        articleURL,
			Description: art.Body,
			PubDate:     time.Unix(art.Date, 0).UTC().Format(time.RFC1123Z),
			GUID:        articleURL,
		})
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       a.Settings.Get(KeyMainTitle),
			Link:        base,
			Description: a.Settings.Get(KeySubtitle),
			Items:       items,
		},
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(feed)
}
