package portfolio

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

// newTestApp wires an App around a JSON file store in a temp directory,
// skipping the network server.
func newTestApp(t *testing.T) *App {
	t.Helper()
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	cfg := SiteConfig{
		Author:        "Test Author",
		AuthorImage:   "https://example.com/avatar.jpg",
		AdminPassword: "correct-password",
		AdminToken:    "test-admin-token",
		SessionSecret: "test-session-secret",
	}
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Store:     store,
		staticDir: t.TempDir(),
	}
	a.Cache = NewContentCache(store, time.Minute)
	a.loginLimiter = NewLoginLimiter(5, time.Minute)
	return a
}

// formRequest builds a form-encoded POST request.
func formRequest(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}

// invoke runs a handler wrapped in the session middleware, the way it runs
// inside the full middleware chain.
func invoke(t *testing.T, a *App, h echo.HandlerFunc, req *http.Request, params map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	c := a.Echo.NewContext(req, rec)
	if len(params) > 0 {
		names := make([]string, 0, len(params))
		values := make([]string, 0, len(params))
		for k, v := range params {
			names = append(names, k)
			values = append(values, v)
		}
		c.SetParamNames(names...)
		c.SetParamValues(values...)
	}
	wrapped := session.Middleware(a.newSessionStore())(h)
	if err := wrapped(c); err != nil {
		a.Echo.HTTPErrorHandler(err, c)
	}
	return rec
}

// loginCookies performs a login and returns the issued session cookies.
func loginCookies(t *testing.T, a *App) []*http.Cookie {
	t.Helper()
	req := formRequest("/admin/login", url.Values{"password": {a.Config.AdminPassword}})
	rec := invoke(t, a, a.handleAdminLogin, req, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed with status %d: %s", rec.Code, rec.Body.String())
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("login issued no session cookie")
	}
	return cookies
}
