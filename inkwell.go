// Package inkwell is a small personal blogging engine built with Go, Echo,
// and templ. Content, configuration, and admin sessions all live in a single
// SQLite database; articles and pages are written in markdown and rendered
// on read.
package inkwell

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/crowfix/inkwell/markdown"
)

// App wires together the store, settings, sessions, handlers, and middleware.
type App struct {
	Config   SiteConfig
	Echo     *echo.Echo
	Store    *Store
	Sessions *Sessions
	Settings *Settings

	loginLimiter *LoginLimiter
	renderFn     RenderFunc
	customRoutes []func(*App)
}

// New creates an App with the given configuration. The database is not
// touched until Start.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
		renderFn: func(md string) (string, error) {
			return markdown.HTML(md), nil
		},
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Start initializes the store, settings, sessions, middleware, and routes,
// then runs the server until it is shut down.
func (a *App) Start() error {
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("inkwell: SessionSecret is required")
	}

	store, err := NewStore(a.Config.DatabasePath, a.renderFn)
	if err != nil {
		return fmt.Errorf("inkwell: init store: %w", err)
	}
	a.Store = store

	settings, err := NewSettings(store)
	if err != nil {
		return fmt.Errorf("inkwell: load settings: %w", err)
	}
	a.Settings = settings

	a.Sessions = NewSessions(store, settings)
	a.loginLimiter = NewLoginLimiter(5, time.Minute)

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}

	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/css", a.Config.StaticDir+"/css")
	e.Static("/js", a.Config.StaticDir+"/js")
	e.Static("/img", a.Config.StaticDir+"/img")

	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)

	e.GET("/", a.handleHome)
	e.GET("/:num", a.handleHome)
	e.GET("/post/:ref", a.handleArticle)
	e.GET("/page/:ref", a.handlePage)
	e.GET("/tag/:tag", a.handleTag)
	e.GET("/tag/:tag/:num", a.handleTag)
	e.GET("/articles", a.handleArchive)

	e.GET("/login", a.handleLoginForm)
	e.POST("/login", a.handleLogin)
	e.GET("/logout", a.handleLogout)

	admin := e.Group("/admin", a.requireAdmin)
	admin.GET("/", a.handleDashboard)
	admin.GET("/config", a.handleSettingsForm)
	admin.POST("/config", a.handleSettingsSave)
	admin.GET("/article/create", a.handleArticleCreateForm)
	admin.POST("/article/create", a.handleArticleCreate)
	admin.GET("/article/edit/:id", a.handleArticleEditForm)
	admin.POST("/article/edit/:id", a.handleArticleEdit)
	admin.GET("/article/delete/:id", a.handleArticleDelete)
	admin.GET("/page/create", a.handlePageCreateForm)
	admin.POST("/page/create", a.handlePageCreate)
	admin.GET("/page/edit/:id", a.handlePageEditForm)
	admin.POST("/page/edit/:id", a.handlePageEdit)
	admin.GET("/page/delete/:id", a.handlePageDelete)
	admin.GET("/links", a.handleLinksAdmin)
	admin.POST("/links", a.handleLinkAdd)
	admin.GET("/links/delete/:id", a.handleLinkDelete)
	admin.GET("/images", a.handleImages)
	admin.POST("/images", a.handleImageUpload)
	admin.GET("/images/delete/:filename", a.handleImageDelete)
	admin.POST("/preview", a.handlePreview)
	admin.GET("/now", a.handleNow)
}

// Close releases resources. Call when shutting down.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
