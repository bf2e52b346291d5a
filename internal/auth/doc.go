// Package auth protects the write endpoints of the catalog API.
//
// Reads are always public. When AUTH_API_KEY_HASH holds a bcrypt hash, every
// POST, PUT, PATCH and DELETE must carry the matching key:
//
//	Authorization: Bearer <key>
//
// Generate the hash with the CLI:
//
//	catalog hash-key -key <key>
//
// Repeated failures from one client IP lock that IP out for
// AUTH_LOCKOUT_DURATION and are answered with 429.
//
// # Usage
//
//	limiter := auth.NewRateLimiter(auth.RateLimitConfig{MaxAttempts: 5})
//	router.Use(auth.SecurityHeadersMiddleware())
//	router.Use(auth.APIKeyMiddleware(cfg.Auth.APIKeyHash, limiter))
package auth
