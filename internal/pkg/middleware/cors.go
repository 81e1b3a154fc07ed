package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// CORSConfig controls which browser origins may call the API
type CORSConfig struct {
	// AllowOrigins lists permitted origins; "*" permits any
	AllowOrigins []string `mapstructure:"allow_origins" yaml:"allow_origins"`
	// MaxAge caches preflight results, in seconds
	MaxAge int `mapstructure:"max_age" yaml:"max_age"`
}

// DefaultCORSConfig permits every origin
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowOrigins: []string{"*"},
		MaxAge:       600,
	}
}

// CORS answers preflight requests and decorates responses with CORS headers
func CORS(cfg CORSConfig) gin.HandlerFunc {
	anyOrigin := false
	allowed := make(map[string]bool, len(cfg.AllowOrigins))
	for _, o := range cfg.AllowOrigins {
		if o == "*" {
			anyOrigin = true
		}
		allowed[o] = true
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		if origin != "" && (anyOrigin || allowed[origin]) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
			c.Header("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Origin, X-Requested-With, Content-Type, Accept, X-Request-ID")
			c.Header("Access-Control-Expose-Headers", "Content-Length, Content-Type, X-Request-ID, X-RateLimit-Limit, X-RateLimit-Remaining, X-RateLimit-Reset")
			if cfg.MaxAge > 0 {
				c.Header("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
