package auth

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// IsWriteMethod reports whether method changes server state.
func IsWriteMethod(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// APIKeyMiddleware requires "Authorization: Bearer <key>" on write methods
// when keyHash is set. With an empty keyHash it lets every request through.
// Failures are counted per client IP by limiter, which may be nil.
func APIKeyMiddleware(keyHash string, limiter *RateLimiter) gin.HandlerFunc {
	if keyHash == "" {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		if !IsWriteMethod(c.Request.Method) {
			c.Next()
			return
		}

		ip := c.ClientIP()
		if limiter != nil {
			if allowed, retryAfter := limiter.Allow(ip); !allowed {
				respondTooManyRequests(c, int(retryAfter.Seconds()))
				return
			}
		}

		key := bearerToken(c.GetHeader("Authorization"))
		if key == "" || CheckAPIKey(key, keyHash) != nil {
			if limiter != nil {
				limiter.RecordFailure(ip)
			}
			log.Warn().Str("client_ip", ip).Str("path", c.Request.URL.Path).Msg("Rejected write with invalid API key")
			c.Header("WWW-Authenticate", `Bearer realm="catalog"`)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "a valid API key is required for this operation",
				"code":  "unauthorized",
			})
			return
		}

		if limiter != nil {
			limiter.RecordSuccess(ip)
		}
		c.Next()
	}
}

// bearerToken extracts the token from "Bearer <token>".
func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func respondTooManyRequests(c *gin.Context, retryAfterSeconds int) {
	if retryAfterSeconds < 1 {
		retryAfterSeconds = 1
	}
	c.Header("Retry-After", strconv.Itoa(retryAfterSeconds))
	c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
		"error": "too many failed authentication attempts",
		"code":  "too_many_requests",
	})
}
