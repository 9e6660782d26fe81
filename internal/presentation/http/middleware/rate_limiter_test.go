package middleware

import (
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLimitedRouter(rl *ClientRateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(rl.Middleware())
	router.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func hammer(router *gin.Engine, n int) (ok, limited int) {
	for i := 0; i < n; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		router.ServeHTTP(w, req)
		switch w.Code {
		case http.StatusOK:
			ok++
		case http.StatusTooManyRequests:
			limited++
		}
	}
	return ok, limited
}

func TestClientRateLimiter_BlocksAboveBurst(t *testing.T) {
	rl := NewClientRateLimiter(RateLimiterConfig{
		RequestsPerSecond: 1,
		BurstSize:         5,
		CleanupInterval:   time.Minute,
		EntryTTL:          time.Minute,
	})
	router := newLimitedRouter(rl)

	ok, limited := hammer(router, 20)

	assert.GreaterOrEqual(t, ok, 5)
	assert.Greater(t, limited, 0)
}

func TestClientRateLimiter_InvalidRateFallsBackToDefaults(t *testing.T) {
	tests := []struct {
		name string
		rate float64
	}{
		{"zero rate from zero duration division", 0},
		{"infinite rate from zero duration division", math.Inf(1)},
		{"negative rate", -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl := NewClientRateLimiter(RateLimiterConfig{
				RequestsPerSecond: tt.rate,
				CleanupInterval:   time.Minute,
				EntryTTL:          time.Minute,
			})

			require.Equal(t, DefaultRateLimiterConfig().RequestsPerSecond, float64(rl.rate))
			require.Equal(t, DefaultRateLimiterConfig().BurstSize, rl.burst)

			// Limiting must actually engage rather than silently pass everything
			_, limited := hammer(newLimitedRouter(rl), 200)
			assert.Greater(t, limited, 0)
		})
	}
}
