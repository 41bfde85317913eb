// Package session turns session tokens into cookie directives and back.
package session

import (
	"net/http"
	"strings"
	"time"

	"margdarshak/config"

	"github.com/labstack/echo/v4"
)

const (
	// CookieName holds the session token as "Bearer <token>".
	CookieName = "access_token"

	bearerPrefix = "Bearer "
)

// Cookies mints and clears cookies sharing one attribute set.
// Browsers only drop a cookie when the clearing directive matches the original attributes.
type Cookies struct {
	secure bool
	domain string
	path   string
}

// NewCookies builds the cookie policy from the auth configuration.
func NewCookies(cfg *config.Config) *Cookies {
	return &Cookies{
		secure: !cfg.Auth.Cookie.Insecure,
		domain: cfg.Auth.Cookie.Domain,
		path:   cfg.Auth.Cookie.Path,
	}
}

// New returns a cookie named name with the shared attributes.
// A non-positive ttl produces a clearing directive.
func (p *Cookies) New(name, value string, ttl time.Duration) *http.Cookie {
	cookie := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     p.path,
		Domain:   p.domain,
		Secure:   p.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	if ttl > 0 {
		cookie.MaxAge = int(ttl / time.Second)
		cookie.Expires = time.Now().Add(ttl)
	} else {
		cookie.Value = ""
		cookie.MaxAge = -1
		cookie.Expires = time.Unix(0, 0)
	}

	return cookie
}

// SetSession writes the session cookie for token.
func (p *Cookies) SetSession(c echo.Context, token string, ttl time.Duration) {
	c.SetCookie(p.New(CookieName, bearerPrefix+token, ttl))
}

// ClearSession writes a directive removing the session cookie.
func (p *Cookies) ClearSession(c echo.Context) {
	c.SetCookie(p.New(CookieName, "", 0))
}

// Set writes a short-lived helper cookie such as the OAuth state.
func (p *Cookies) Set(c echo.Context, name, value string, ttl time.Duration) {
	c.SetCookie(p.New(name, value, ttl))
}

// Clear removes a helper cookie.
func (p *Cookies) Clear(c echo.Context, name string) {
	c.SetCookie(p.New(name, "", 0))
}

// TokenFromCookie returns the bearer token carried by the session cookie only.
func TokenFromCookie(c echo.Context) string {
	cookie, err := c.Cookie(CookieName)
	if err != nil {
		return ""
	}

	return stripBearer(cookie.Value)
}

// TokenFromRequest returns the bearer token from the session cookie, falling back
// to the Authorization header. It returns "" when neither carries one.
func TokenFromRequest(c echo.Context) string {
	if token := TokenFromCookie(c); token != "" {
		return token
	}

	return stripBearer(c.Request().Header.Get(echo.HeaderAuthorization))
}

func stripBearer(value string) string {
	value = strings.TrimSpace(value)
	if len(value) < len(bearerPrefix) || !strings.EqualFold(value[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}

	return strings.TrimSpace(value[len(bearerPrefix):])
}
