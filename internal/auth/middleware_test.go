package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testAPIKey = "catalog-key-0123456789"

func init() {
	gin.SetMode(gin.TestMode)
}

func setupProtectedRouter(t *testing.T, keyHash string, limiter *RateLimiter) *gin.Engine {
	t.Helper()
	router := gin.New()
	router.Use(APIKeyMiddleware(keyHash, limiter))
	router.GET("/libraries", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.POST("/libraries", func(c *gin.Context) { c.Status(http.StatusCreated) })
	router.DELETE("/libraries/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return router
}

func testKeyHash(t *testing.T) string {
	t.Helper()
	hash, err := HashAPIKey(testAPIKey, bcrypt.MinCost)
	require.NoError(t, err)
	return hash
}

func doRequest(router *gin.Engine, method, path, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	req.RemoteAddr = "192.0.2.10:1234"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAPIKeyMiddleware_Disabled(t *testing.T) {
	router := setupProtectedRouter(t, "", nil)

	w := doRequest(router, http.MethodPost, "/libraries", "")
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestAPIKeyMiddleware_ReadsArePublic(t *testing.T) {
	router := setupProtectedRouter(t, testKeyHash(t), nil)

	w := doRequest(router, http.MethodGet, "/libraries", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAPIKeyMiddleware_Writes(t *testing.T) {
	hash := testKeyHash(t)

	tests := []struct {
		name          string
		method        string
		path          string
		authorization string
		wantStatus    int
	}{
		{"valid key", http.MethodPost, "/libraries", "Bearer " + testAPIKey, http.StatusCreated},
		{"lowercase scheme", http.MethodDelete, "/libraries/1", "bearer " + testAPIKey, http.StatusNoContent},
		{"missing header", http.MethodPost, "/libraries", "", http.StatusUnauthorized},
		{"wrong key", http.MethodPost, "/libraries", "Bearer wrong-key-0123456789", http.StatusUnauthorized},
		{"malformed header", http.MethodDelete, "/libraries/1", testAPIKey, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupProtectedRouter(t, hash, nil)
			w := doRequest(router, tt.method, tt.path, tt.authorization)
			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.Contains(t, w.Body.String(), `"code":"unauthorized"`)
				assert.NotEmpty(t, w.Header().Get("WWW-Authenticate"))
			}
		})
	}
}

func TestAPIKeyMiddleware_LocksOutRepeatedFailures(t *testing.T) {
	limiter := NewRateLimiter(RateLimitConfig{
		MaxAttempts:     2,
		WindowDuration:  time.Minute,
		LockoutDuration: time.Minute,
		CleanupInterval: time.Hour,
	})
	defer limiter.Stop()

	router := setupProtectedRouter(t, testKeyHash(t), limiter)

	for i := 0; i < 2; i++ {
		w := doRequest(router, http.MethodPost, "/libraries", "Bearer nope")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}

	// Even the right key is refused while locked out.
	w := doRequest(router, http.MethodPost, "/libraries", "Bearer "+testAPIKey)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "too_many_requests")
}

func TestIsWriteMethod(t *testing.T) {
	assert.True(t, IsWriteMethod(http.MethodPost))
	assert.True(t, IsWriteMethod(http.MethodPut))
	assert.True(t, IsWriteMethod(http.MethodPatch))
	assert.True(t, IsWriteMethod(http.MethodDelete))
	assert.False(t, IsWriteMethod(http.MethodGet))
	assert.False(t, IsWriteMethod(http.MethodOptions))
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", bearerToken("Bearer abc"))
	assert.Equal(t, "abc", bearerToken("BEARER  abc "))
	assert.Equal(t, "", bearerToken("Basic abc"))
	assert.Equal(t, "", bearerToken(""))
}
