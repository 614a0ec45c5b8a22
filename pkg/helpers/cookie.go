package helpers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	AccessCookie  = "access_token"
	RefreshCookie = "refresh_token"

	// RefreshPath limits the refresh cookie to the auth endpoints.
	RefreshPath = "/api/auth"
)

// Manager writes the session cookies. Both are HttpOnly; the refresh token
// is SameSite=Strict and only travels to RefreshPath.
type Manager struct {
	Domain string
	Secure bool
}

func NewCookie(domain string, secure bool) *Manager {
	return &Manager{Domain: domain, Secure: secure}
}

func (m *Manager) SetPair(c *gin.Context, access string, aexp time.Time, refresh string, rexp time.Time) {
	http.SetCookie(c.Writer, m.cookie(AccessCookie, access, "/", http.SameSiteLaxMode, maxAgeFrom(aexp)))
	http.SetCookie(c.Writer, m.cookie(RefreshCookie, refresh, RefreshPath, http.SameSiteStrictMode, maxAgeFrom(rexp)))
}

func (m *Manager) Clear(c *gin.Context) {
	http.SetCookie(c.Writer, m.cookie(AccessCookie, "", "/", http.SameSiteLaxMode, -1))
	http.SetCookie(c.Writer, m.cookie(RefreshCookie, "", RefreshPath, http.SameSiteStrictMode, -1))
}

func (m *Manager) cookie(name, value, path string, site http.SameSite, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Domain:   m.Domain,
		MaxAge:   maxAge,
		Secure:   m.Secure,
		HttpOnly: true,
		SameSite: site,
	}
}

func maxAgeFrom(exp time.Time) int {
	sec := int(time.Until(exp).Seconds())
	if sec <= 0 {
		// 0 would make a session cookie; expire it instead
		return -1
	}
	return sec
}
