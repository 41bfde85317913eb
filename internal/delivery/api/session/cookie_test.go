package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"margdarshak/config"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCookies(insecure bool) *Cookies {
	cfg := &config.Config{Auth: &config.AuthConfig{}}
	cfg.Auth.Cookie.Insecure = insecure
	cfg.Auth.Cookie.Path = "/"

	return NewCookies(cfg)
}

func newContext(req *http.Request) (echo.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()

	return echo.New().NewContext(req, rec), rec
}

func TestCookies_SetAndClearShareAttributes(t *testing.T) {
	cookies := newCookies(false)

	c, rec := newContext(httptest.NewRequest(http.MethodPost, "/auth/login", nil))
	cookies.SetSession(c, "tok", 7*24*time.Hour)
	set := rec.Result().Cookies()
	require.Len(t, set, 1)

	c, rec = newContext(httptest.NewRequest(http.MethodPost, "/auth/logout", nil))
	cookies.ClearSession(c)
	cleared := rec.Result().Cookies()
	require.Len(t, cleared, 1)

	assert.Equal(t, CookieName, set[0].Name)
	assert.Equal(t, "Bearer tok", set[0].Value)
	assert.Equal(t, 604800, set[0].MaxAge)
	assert.True(t, set[0].HttpOnly)
	assert.True(t, set[0].Secure)
	assert.Equal(t, http.SameSiteLaxMode, set[0].SameSite)

	assert.Equal(t, set[0].Name, cleared[0].Name)
	assert.Equal(t, set[0].Path, cleared[0].Path)
	assert.Equal(t, set[0].Domain, cleared[0].Domain)
	assert.Equal(t, set[0].HttpOnly, cleared[0].HttpOnly)
	assert.Equal(t, set[0].Secure, cleared[0].Secure)
	assert.Equal(t, set[0].SameSite, cleared[0].SameSite)
	assert.Empty(t, cleared[0].Value)
	assert.Negative(t, cleared[0].MaxAge)
}

func TestCookies_InsecureDropsSecure(t *testing.T) {
	c, rec := newContext(httptest.NewRequest(http.MethodPost, "/auth/login", nil))
	newCookies(true).SetSession(c, "tok", time.Hour)

	set := rec.Result().Cookies()
	require.Len(t, set, 1)
	assert.False(t, set[0].Secure)
	assert.Equal(t, 3600, set[0].MaxAge)
}

func TestTokenFromRequest(t *testing.T) {
	tests := []struct {
		name   string
		cookie string
		header string
		want   string
	}{
		{name: "cookie", cookie: "Bearer abc", want: "abc"},
		{name: "header", header: "Bearer def", want: "def"},
		{name: "cookie wins", cookie: "Bearer abc", header: "Bearer def", want: "abc"},
		{name: "lowercase scheme", header: "bearer ghi", want: "ghi"},
		{name: "missing scheme", cookie: "abc", want: ""},
		{name: "empty cookie falls back to header", cookie: "Bearer ", header: "Bearer def", want: "def"},
		{name: "nothing", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: CookieName, Value: tt.cookie})
			}
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			c, _ := newContext(req)

			assert.Equal(t, tt.want, TokenFromRequest(c))
		})
	}
}

func TestTokenFromCookie_IgnoresHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer def")
	c, _ := newContext(req)
	assert.Empty(t, TokenFromCookie(c))

	req = httptest.NewRequest(http.MethodPost, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "Bearer abc"})
	c, _ = newContext(req)
	assert.Equal(t, "abc", TokenFromCookie(c))
}
