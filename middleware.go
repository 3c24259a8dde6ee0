package inkwell

import (
	"net/http"
	"strings"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const cookieName = "blog_session"

func (a *App) setupMiddleware() {
	e := a.Echo

	e.IPExtractor = echo.ExtractIPFromXFFHeader(
		echo.TrustLoopback(true),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(true),
	)

	e.HTTPErrorHandler = a.httpErrorHandler

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			c.Logger().Infof("%s %s -> %d (%s)", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	}))

	e.Use(middleware.Recover())

	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
		Skipper: func(c echo.Context) bool {
			return strings.HasPrefix(c.Request().URL.Path, "/img/")
		},
	}))

	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}))

	e.Use(session.Middleware(a.newCookieStore()))
}

func (a *App) newCookieStore() *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(a.Config.SessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		MaxAge:   60 * 60 * 24 * 14,
		SameSite: http.SameSiteLaxMode,
		Secure:   a.Config.CookieSecure,
	}
	return store
}

// identity reads the username and session key the client holds. The cookie
// is only a carrier; the session row in the database decides validity.
func identity(c echo.Context) (username, key string, ok bool) {
	sess, err := session.Get(cookieName, c)
	if err != nil {
		return "", "", false
	}
	username, uok := sess.Values["username"].(string)
	key, kok := sess.Values["key"].(string)
	if !uok || !kok || username == "" || key == "" {
		return "", "", false
	}
	return username, key, true
}

func setIdentity(c echo.Context, username, key string) error {
	sess, err := session.Get(cookieName, c)
	if err != nil {
		return err
	}
	sess.Values["username"] = username
	sess.Values["key"] = key
	return sess.Save(c.Request(), c.Response())
}

// clearIdentity drops all client-held identity state. Called whenever a
// session check comes back invalid or expired.
func clearIdentity(c echo.Context) {
	sess, err := session.Get(cookieName, c)
	if err != nil {
		return
	}
	sess.Options.MaxAge = -1
	_ = sess.Save(c.Request(), c.Response())
}

// isAdmin reports whether the request carries a valid, current session. A
// stale or invalid session clears the cookie as a side effect.
func (a *App) isAdmin(c echo.Context) bool {
	username, key, ok := identity(c)
	if !ok {
		return false
	}
	valid, current, err := a.Sessions.Check(username, key)
	if err != nil {
		c.Logger().Errorf("session check: %v", err)
		return false
	}
	if !valid || !current {
		clearIdentity(c)
		return false
	}
	return true
}

// requireAdmin guards the admin surface. No identity or an invalid session
// is rejected outright; an expired one redirects back to the login form with
// an explanation. Either way the client's identity state is cleared.
func (a *App) requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		username, key, ok := identity(c)
		if !ok {
			clearIdentity(c)
			return echo.NewHTTPError(http.StatusForbidden)
		}
		valid, current, err := a.Sessions.Check(username, key)
		if err != nil {
			return err
		}
		if !valid {
			clearIdentity(c)
			return echo.NewHTTPError(http.StatusForbidden)
		}
		if !current {
			clearIdentity(c)
			return c.Redirect(http.StatusSeeOther, "/login?expired=1")
		}
		return next(c)
	}
}
