package portfolio

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

const (
	sessionName = "admin_session"
	tokenKey    = "admin_token"
)

// isAdmin reports whether the current session carries the admin token.
// Any absence, mismatch, or session read failure yields false; the
// comparison is constant-time so the token never leaks through timing.
func (a *App) isAdmin(c echo.Context) bool {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return false
	}
	token, ok := sess.Values[tokenKey].(string)
	if !ok || token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(a.Config.AdminToken)) == 1
}

func (a *App) setAdminSession(c echo.Context) error {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return err
	}
	sess.Values[tokenKey] = a.Config.AdminToken
	return sess.Save(c.Request(), c.Response())
}

func clearAdminSession(c echo.Context) error {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return err
	}
	delete(sess.Values, tokenKey)
	sess.Options.MaxAge = -1
	return sess.Save(c.Request(), c.Response())
}

// handleAdminLogin issues the admin session when the submitted password
// matches. A wrong password is a user-visible error, never a fault.
func (a *App) handleAdminLogin(c echo.Context) error {
	if !a.loginLimiter.Check(c.RealIP()) {
		return c.JSON(http.StatusTooManyRequests, map[string]string{
			"error": "Too many login attempts. Try again later.",
		})
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1 {
		if err := a.setAdminSession(c); err != nil {
			return err
		}
		return c.JSON(http.StatusOK, map[string]bool{"success": true})
	}
	a.loginLimiter.Record(c.RealIP())
	return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid password"})
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
