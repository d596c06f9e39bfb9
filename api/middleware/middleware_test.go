package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdfgenie/genie/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw...)
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(IdentityKey))
	})
	r.GET("/items/:id", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func do(r http.Handler, path string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuth(t *testing.T) {
	r := newEngine(Auth([]string{"k1", " k2 "}))

	tests := []struct {
		name     string
		header   map[string]string
		status   int
		identity string
	}{
		{"missing", nil, http.StatusUnauthorized, ""},
		{"invalid", map[string]string{"X-API-Key": "nope"}, http.StatusUnauthorized, ""},
		{"x-api-key", map[string]string{"X-API-Key": "k1"}, http.StatusOK, "k1"},
		{"bearer", map[string]string{"Authorization": "Bearer k2"}, http.StatusOK, "k2"},
		{"basic ignored", map[string]string{"Authorization": "Basic k1"}, http.StatusUnauthorized, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, "/ping", tt.header)
			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, tt.identity, w.Body.String())
			} else {
				assert.Contains(t, w.Body.String(), `"code":"UNAUTHORIZED"`)
				assert.Contains(t, w.Body.String(), `"success":false`)
			}
		})
	}
}

func TestAuth_NoKeysIsOpen(t *testing.T) {
	r := newEngine(Auth([]string{"", "  "}))
	assert.Equal(t, http.StatusOK, do(r, "/ping", nil).Code)
}

func TestRateLimit(t *testing.T) {
	r := newEngine(Auth([]string{"a", "b"}), RateLimit(config.RateLimitConfig{RequestsPerSecond: 0.001, Burst: 2}))

	keyA := map[string]string{"X-API-Key": "a"}
	assert.Equal(t, http.StatusOK, do(r, "/ping", keyA).Code)
	assert.Equal(t, http.StatusOK, do(r, "/ping", keyA).Code)

	w := do(r, "/ping", keyA)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"RATE_LIMITED"`)

	// Buckets are per identity.
	assert.Equal(t, http.StatusOK, do(r, "/ping", map[string]string{"X-API-Key": "b"}).Code)
}

func TestLimiterSet_EvictIdle(t *testing.T) {
	s := newLimiterSet(config.RateLimitConfig{RequestsPerSecond: 1, Burst: 1})
	now := time.Now()

	s.get("old", now.Add(-2*time.Hour))
	s.get("new", now)
	require.Equal(t, 2, s.len())

	s.evictIdle(now.Add(-limiterIdleTTL))
	assert.Equal(t, 1, s.len())
}

func TestMetrics(t *testing.T) {
	m := NewMetrics(nil)
	r := newEngine(m.Middleware())

	do(r, "/items/1", nil)
	do(r, "/items/2", nil)
	do(r, "/missing", nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("/items/:id", "GET", "204")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("unmatched", "GET", "404")))

	m.ObserveCache("hit")
	m.ObserveWebhook(nil)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheLookups.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.webhooks.WithLabelValues("delivered")))

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()
	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.True(t, strings.Contains(string(body), "genie_http_requests_total"))
}
