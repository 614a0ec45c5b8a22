package middleware

import (
	"expvar"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/emprendevoz/emprende-api/pkg/response"
)

// rejected counts 429s per policy; served on /api/debug/vars.
var rejected = expvar.NewMap("ratelimit_rejected")

// Policy is one named fixed-window limit. The name prefixes every counter
// key, so stacked limiters never share a window.
type Policy struct {
	Name   string
	Max    int
	Window time.Duration
}

func PerMinute(name string, max int) Policy {
	return Policy{Name: name, Max: max, Window: time.Minute}
}

func ipFromCtx(c *gin.Context) string {
	if ip := c.GetString("real_ip"); ip != "" {
		return ip
	}
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return "unknown"
}

func normalizePath(c *gin.Context) string {
	if fp := c.FullPath(); fp != "" {
		return fp
	}
	return c.Request.URL.Path
}

// KeyFunc returns the client part of a counter key.
type KeyFunc func(c *gin.Context) string

func KeyByIP() KeyFunc {
	return func(c *gin.Context) string { return "ip:" + ipFromCtx(c) }
}

func KeyByIPAndPath() KeyFunc {
	return func(c *gin.Context) string { return "path:" + normalizePath(c) + ":ip:" + ipFromCtx(c) }
}

// KeyByUserID falls back to the client address before Auth has run.
func KeyByUserID() KeyFunc {
	return func(c *gin.Context) string {
		if uid := c.GetString(CtxUserID); uid != "" {
			return "user:" + uid
		}
		return "anon:ip:" + ipFromCtx(c)
	}
}

// INCR and arm the window on first hit; returns the count and remaining ms.
var hitScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return {current, redis.call("PTTL", KEYS[1])}
`)

// AllowFunc returns true to skip limiting for a request.
type AllowFunc func(*gin.Context) bool

// RateLimit enforces p per key. It sets the X-RateLimit-* headers and fails
// open when Redis is nil or unreachable. Preflight requests are never counted.
func RateLimit(rdb *redis.Client, p Policy, keyFn KeyFunc, allow AllowFunc) gin.HandlerFunc {
	if rdb == nil || p.Max <= 0 || p.Window <= 0 || keyFn == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions || (allow != nil && allow(c)) {
			c.Next()
			return
		}

		key := "rl:" + p.Name + ":" + keyFn(c)
		res, err := hitScript.Run(c.Request.Context(), rdb, []string{key}, p.Window.Milliseconds()).Int64Slice()
		if err != nil || len(res) != 2 {
			c.Next()
			return
		}
		count, pttl := int(res[0]), time.Duration(res[1])*time.Millisecond

		resetSec := 0
		if pttl > 0 {
			resetSec = int((pttl + time.Second - 1) / time.Second)
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(p.Max))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(max(p.Max-count, 0)))
		c.Header("X-RateLimit-Reset", strconv.Itoa(resetSec))

		if count > p.Max {
			rejected.Add(p.Name, 1)
			if resetSec > 0 {
				c.Header("Retry-After", strconv.Itoa(resetSec))
			}
			response.Abort(c, http.StatusTooManyRequests, "rate limit exceeded", nil)
			return
		}
		c.Next()
	}
}
