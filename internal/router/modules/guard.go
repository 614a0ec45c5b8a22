package modules

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/emprendevoz/emprende-api/internal/interface/middleware"
	"github.com/emprendevoz/emprende-api/pkg/helpers"
)

// Guard is the middleware stack shared by every authenticated module.
type Guard struct {
	Redis    *redis.Client
	Sessions middleware.SessionReader
	JWT      *helpers.JWTManager
}

func NewGuard(rdb *redis.Client, sessions middleware.SessionReader, jwt *helpers.JWTManager) Guard {
	return Guard{Redis: rdb, Sessions: sessions, JWT: jwt}
}

// Protected returns a group under prefix that requires a live session and
// applies a soft per-IP limit plus a per-user limit.
func (g Guard) Protected(rg *gin.RouterGroup, prefix string) *gin.RouterGroup {
	grp := rg.Group(prefix)
	grp.Use(middleware.Auth(g.Sessions, g.JWT))
	grp.Use(
		middleware.RateLimit(g.Redis, middleware.PerMinute("api-ip", 300), middleware.KeyByIP(), nil),
		middleware.RateLimit(g.Redis, middleware.PerMinute("api-user", 120), middleware.KeyByUserID(), nil),
	)
	return grp
}

// PerIP limits a public endpoint by client IP; name scopes the window.
func (g Guard) PerIP(name string, max int) gin.HandlerFunc {
	return middleware.RateLimit(g.Redis, middleware.PerMinute(name, max), middleware.KeyByIPAndPath(), nil)
}

// PerUser adds a tighter per-user limit on top of Protected.
func (g Guard) PerUser(name string, max int) gin.HandlerFunc {
	return middleware.RateLimit(g.Redis, middleware.PerMinute(name, max), middleware.KeyByUserID(), nil)
}
