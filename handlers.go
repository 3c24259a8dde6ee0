package inkwell

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/crowfix/inkwell/views"
)

func boolPtr(b bool) *bool { return &b }

func articleView(a Article) views.Article {
	return views.Article{
		ID:       a.ID,
		Released: a.Released,
		Slug:     a.Slug,
		Title:    a.Title,
		Link:     a.TitleLink,
		LinkAlt:  a.TitleAlt,
		Date:     a.DateText,
		RawDate:  a.DateText,
		Tags:     a.Tags,
		Body:     a.Body,
	}
}

func articleViews(articles []Article) []views.Article {
	out := make([]views.Article, len(articles))
	for i, a := range articles {
		out[i] = articleView(a)
	}
	return out
}

func pageView(p Page) views.Page {
	return views.Page{
		ID:       p.ID,
		Released: p.Released,
		Order:    p.Order,
		Slug:     p.Slug,
		Title:    p.Title,
		Created:  p.CreatedText,
		Edited:   p.EditedText,
		InNav:    p.InNav,
		Body:     p.Body,
	}
}

// site assembles the layout chrome for a request: configured titles, the nav
// page list, resolved sidebar links, and the viewer's admin state.
func (a *App) site(c echo.Context) views.Site {
	s := views.Site{
		Title:        a.Settings.Get(KeyMainTitle),
		Subtitle:     a.Settings.Get(KeySubtitle),
		BrowserTitle: a.Settings.Get(KeyBrowserTitle),
		FooterText:   a.Settings.Get(KeyFooterText),
		SidebarImage: a.Settings.Get(KeyImageLocation),
		SidebarAlt:   a.Settings.Get(KeyImageAlt),
		URL:          a.Config.URL,
		Admin:        a.isAdmin(c),
	}
	navPages, err := a.Store.GetPages(PageQuery{Released: boolPtr(true), OnlyNav: true})
	if err != nil {
		c.Logger().Errorf("nav pages: %v", err)
	}
	for _, p := range navPages {
		s.NavPages = append(s.NavPages, views.NavPage{Title: p.Title, Slug: p.Slug})
	}
	links, err := a.Store.SidebarLinks()
	if err != nil {
		c.Logger().Errorf("sidebar links: %v", err)
	}
	for _, l := range links {
		item := views.SidebarItem{Text: l.Text, Alt: l.Alt, Href: l.External}
		if l.ArticleID > 0 {
			item.Href = "/post/" + strconv.FormatInt(l.ArticleID, 10)
			if item.Text == "" {
				item.Text = l.ArticleTitle
			}
		}
		s.Sidebar = append(s.Sidebar, item)
	}
	return s
}

// paginate converts a 1-based page number into an offset, clamped to the
// last page, and returns the total page count.
func (a *App) paginate(pageNum int, tag string) (start, pages int, err error) {
	if pageNum < 1 {
		pageNum = 1
	}
	pageSize := a.Settings.PageSize()
	count, pages, err := a.Store.CountArticles(pageSize, boolPtr(true), tag)
	if err != nil {
		return 0, 0, err
	}
	start = pageSize * (pageNum - 1)
	if start >= count && count > 0 {
		start = pageSize * (pages - 1)
	}
	return start, pages, nil
}

func (a *App) handleHome(c echo.Context) error {
	pageNum := 1
	if raw := c.Param("num"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusNotFound)
		}
		pageNum = n
	}
	start, pages, err := a.paginate(pageNum, "")
	if err != nil {
		return err
	}
	articles, err := a.Store.GetArticles(ArticleQuery{
		Start:    start,
		PageSize: a.Settings.PageSize(),
		WithBody: true, WithLinks: true, TagList: true,
		Released: boolPtr(true),
		Render:   true,
	})
	if err != nil {
		return err
	}
	return Render(c, views.ArticleStream(a.site(c), "", articleViews(articles), nil, "/", pageNum, pages))
}

// contentRef resolves a path parameter that is either a numeric id or a slug.
func contentRef(raw string) ArticleRef {
	if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return ArticleRef{ID: id}
	}
	return ArticleRef{Slug: raw}
}

func (a *App) handleArticle(c echo.Context) error {
	article, err := a.Store.GetArticle(contentRef(c.Param("ref")), true, boolPtr(true))
	if err != nil {
		return err
	}
	if article == nil {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	return Render(c, views.ArticleStream(a.site(c), article.Title,
		[]views.Article{articleView(*article)}, nil, "/", 1, 1))
}

func (a *App) handlePage(c echo.Context) error {
	page, err := a.Store.GetPage(contentRef(c.Param("ref")), true, boolPtr(true))
	if err != nil {
		return err
	}
	if page == nil {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	return Render(c, views.StaticPage(a.site(c), pageView(*page)))
}

func (a *App) handleTag(c echo.Context) error {
	tag := c.Param("tag")
	pageNum := 1
	if raw := c.Param("num"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusNotFound)
		}
		pageNum = n
	}
	start, pages, err := a.paginate(pageNum, tag)
	if err != nil {
		return err
	}
	articles, err := a.Store.GetArticles(ArticleQuery{
		Start:    start,
		PageSize: a.Settings.PageSize(),
		WithBody: true, WithLinks: true,
		Released: boolPtr(true),
		Render:   true,
		Tag:      tag,
	})
	if err != nil {
		return err
	}
	return Render(c, views.ArticleStream(a.site(c), "Tag: "+tag,
		articleViews(articles), nil, "/tag/"+tag+"/", pageNum, pages))
}

func (a *App) handleArchive(c echo.Context) error {
	articles, err := a.Store.GetArticles(ArticleQuery{Released: boolPtr(true)})
	if err != nil {
		return err
	}
	tags, err := a.Store.AllTags(boolPtr(true))
	if err != nil {
		return err
	}
	return Render(c, views.Archive(a.site(c), articleViews(articles), tags))
}

func (a *App) handleLoginForm(c echo.Context) error {
	if _, _, ok := identity(c); ok {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	msg := ""
	if c.QueryParam("expired") != "" {
		msg = "Your session has expired. Please log in again."
	}
	return Render(c, views.Login(a.site(c), msg))
}

func (a *App) handleLogin(c echo.Context) error {
	if !a.loginLimiter.Check(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	username := c.FormValue("username")
	ok, err := a.Sessions.Login(username, c.FormValue("password"))
	if err != nil {
		return err
	}
	if !ok {
		a.loginLimiter.Record(c.RealIP())
		return Render(c, views.Login(a.site(c), "Please enter a valid username and password."))
	}
	key, err := NewSessionKey()
	if err != nil {
		return err
	}
	if err := a.Sessions.Create(username, key); err != nil {
		return err
	}
	if err := setIdentity(c, username, key); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

func (a *App) handleLogout(c echo.Context) error {
	if username, key, ok := identity(c); ok {
		if err := a.Sessions.Destroy(username, key); err != nil {
			return err
		}
	}
	clearIdentity(c)
	return c.Redirect(http.StatusSeeOther, "/login")
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
	}
	var message string
	switch code {
	case http.StatusBadRequest:
		message = "Bad request."
	case http.StatusForbidden:
		message = "You are not allowed to see this."
	case http.StatusNotFound:
		message = "There is nothing here."
	default:
		message = "Something went wrong on our end."
	}
	_ = RenderStatus(c, code, views.Error(a.site(c), code, message))
}
