package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// CacheConfig represents cache control configuration
type CacheConfig struct {
	MaxAge               time.Duration
	Private              bool
	NoStore              bool
	StaleWhileRevalidate time.Duration
	Vary                 []string
}

// PublicCacheConfig lets shared caches keep public listings for maxAge.
func PublicCacheConfig(maxAge time.Duration) CacheConfig {
	return CacheConfig{
		MaxAge:               maxAge,
		StaleWhileRevalidate: maxAge,
		Vary:                 []string{"Accept", "Accept-Encoding"},
	}
}

// NoStoreConfig is for per-user pages such as the dashboard and admin console.
func NoStoreConfig() CacheConfig {
	return CacheConfig{NoStore: true, Private: true}
}

func (cfg CacheConfig) header() string {
	if cfg.NoStore {
		if cfg.Private {
			return "private, no-store"
		}
		return "no-store"
	}

	directives := []string{"public"}
	if cfg.Private {
		directives[0] = "private"
	}
	if cfg.MaxAge > 0 {
		directives = append(directives, "max-age="+strconv.Itoa(int(cfg.MaxAge.Seconds())))
	}
	if cfg.StaleWhileRevalidate > 0 {
		directives = append(directives, "stale-while-revalidate="+strconv.Itoa(int(cfg.StaleWhileRevalidate.Seconds())))
	}
	return strings.Join(directives, ", ")
}

// Cache sets Cache-Control on GET responses; other methods get no-store.
// Error responses override it in handler.RespondError.
func Cache(config CacheConfig) gin.HandlerFunc {
	value := config.header()
	vary := strings.Join(config.Vary, ", ")

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Header("Cache-Control", "no-store")
			c.Next()
			return
		}

		c.Header("Cache-Control", value)
		if vary != "" {
			c.Header("Vary", vary)
		}
		c.Next()
	}
}
