package inkwell

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/crowfix/inkwell/views"
)

func (a *App) handleDashboard(c echo.Context) error {
	released, err := a.Store.GetArticles(ArticleQuery{Released: boolPtr(true)})
	if err != nil {
		return err
	}
	drafts, err := a.Store.GetArticles(ArticleQuery{Released: boolPtr(false)})
	if err != nil {
		return err
	}
	pages, err := a.Store.GetPages(PageQuery{})
	if err != nil {
		return err
	}
	pv := make([]views.Page, len(pages))
	for i, p := range pages {
		pv[i] = pageView(p)
	}
	return Render(c, views.Dashboard(a.site(c), articleViews(released), articleViews(drafts), pv))
}

func articleDraft(c echo.Context) ArticleDraft {
	return ArticleDraft{
		Title:     c.FormValue("title"),
		TitleLink: c.FormValue("title_link"),
		TitleAlt:  c.FormValue("title_alt"),
		Date:      c.FormValue("date"),
		Body:      c.FormValue("body"),
		Released:  c.FormValue("released") != "",
		TagCSV:    c.FormValue("tags"),
	}
}

func (a *App) handleArticleCreateForm(c echo.Context) error {
	blank := views.Article{RawDate: FormatDate(time.Now().Unix())}
	return Render(c, views.EditArticle(a.site(c), blank, true))
}

func (a *App) handleArticleCreate(c echo.Context) error {
	draft := articleDraft(c)
	if _, err := a.Store.CreateArticle(draft); err != nil {
		if errors.Is(err, ErrInvalidArgument) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

func (a *App) handleArticleEditForm(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	article, err := a.Store.GetArticle(ArticleRef{ID: id}, false, nil)
	if err != nil {
		return err
	}
	if article == nil {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	return Render(c, views.EditArticle(a.site(c), articleView(*article), false))
}

func (a *App) handleArticleEdit(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	if err := a.Store.SaveArticle(id, articleDraft(c)); err != nil {
		if errors.Is(err, ErrInvalidArgument) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

func (a *App) handleArticleDelete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	if err := a.Store.DeleteArticle(id); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

func pageForm(c echo.Context) (released bool, order int, title string, inNav bool, body string) {
	order, _ = strconv.Atoi(c.FormValue("pg_order"))
	return c.FormValue("released") != "", order,
		c.FormValue("title"), c.FormValue("incl_link") != "", c.FormValue("body")
}

func (a *App) handlePageCreateForm(c echo.Context) error {
	return Render(c, views.EditPage(a.site(c), views.Page{}, true))
}

func (a *App) handlePageCreate(c echo.Context) error {
	released, order, title, inNav, body := pageForm(c)
	if _, err := a.Store.CreatePage(released, order, title, inNav, body); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

func (a *App) handlePageEditForm(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	page, err := a.Store.GetPage(ArticleRef{ID: id}, false, nil)
	if err != nil {
		return err
	}
	if page == nil {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	return Render(c, views.EditPage(a.site(c), pageView(*page), false))
}

func (a *App) handlePageEdit(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	released, order, title, inNav, body := pageForm(c)
	if err := a.Store.SavePage(id, released, order, title, inNav, body); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

func (a *App) handlePageDelete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	if err := a.Store.DeletePage(id); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

func (a *App) handleSettingsForm(c echo.Context) error {
	values, err := a.Store.LoadSettings()
	if err != nil {
		return err
	}
	return Render(c, views.SettingsForm(a.site(c), values, ""))
}

// handleSettingsSave validates and stores the posted settings. A rejected
// value re-renders the form with the operator's input intact; on success the
// in-memory settings snapshot is reloaded so the change applies immediately.
func (a *App) handleSettingsSave(c echo.Context) error {
	values := make(map[string]string, len(settingDefaults))
	for key := range settingDefaults {
		values[key] = c.FormValue(key)
	}
	if err := a.Store.SaveSettings(values); err != nil {
		if v, ok := AsValidation(err); ok {
			return Render(c, views.SettingsForm(a.site(c), values, v.Error()))
		}
		return err
	}
	if err := a.Settings.Reload(); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/config")
}

func (a *App) handleLinksAdmin(c echo.Context) error {
	links, err := a.Store.SidebarLinks()
	if err != nil {
		return err
	}
	lv := make([]views.Link, len(links))
	for i, l := range links {
		lv[i] = views.Link{
			ID:           l.ID,
			ArticleID:    l.ArticleID,
			ArticleTitle: l.ArticleTitle,
			External:     l.External,
			Text:         l.Text,
			Alt:          l.Alt,
		}
	}
	articles, err := a.Store.GetArticles(ArticleQuery{Released: boolPtr(true)})
	if err != nil {
		return err
	}
	return Render(c, views.LinksAdmin(a.site(c), lv, articleViews(articles)))
}

func (a *App) handleLinkAdd(c echo.Context) error {
	var articleID int64
	if raw := c.FormValue("article_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "bad article id")
		}
		articleID = id
	}
	_, err := a.Store.AddSidebarLink(articleID, c.FormValue("external"),
		c.FormValue("link_text"), c.FormValue("link_alt"))
	if err != nil {
		if errors.Is(err, ErrInvalidArgument) {
			return echo.NewHTTPError(http.StatusBadRequest,
				"pick exactly one of an article or an external URL")
		}
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/links")
}

func (a *App) handleLinkDelete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	if err := a.Store.DeleteSidebarLink(id); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/links")
}

// handlePreview renders posted markdown to HTML for the edit form's preview
// pane. It deliberately uses the same renderer as the article pipeline.
func (a *App) handlePreview(c echo.Context) error {
	body, err := a.renderFn(c.FormValue("body"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.HTML(http.StatusOK, body)
}

func (a *App) handleNow(c echo.Context) error {
	return c.String(http.StatusOK, FormatDate(time.Now().Unix()))
}
