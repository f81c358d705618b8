package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/library-service/internal/metrics"
)

func TestMiddleware_CountsByRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := metrics.New("library-test")
	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/books/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, p := range []string{"/books/a", "/books/b", "/nowhere"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, p, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/books/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "unmatched", "404")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.HTTPRequestDuration))
}

func TestObserveCacheLookup(t *testing.T) {
	m := metrics.New("library-test")
	m.ObserveCacheLookup("books:all", false)
	m.ObserveCacheLookup("books:all", true)
	m.ObserveCacheLookup("books:all", true)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheLookupsTotal.WithLabelValues("books:all", "hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookupsTotal.WithLabelValues("books:all", "miss")))
}

func TestHandler_Exposition(t *testing.T) {
	m := metrics.New("library-test")
	m.ObserveCacheLookup("pages:all", true)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, `cache_lookups_total{key="pages:all",result="hit",service="library-test"} 1`), body)
	assert.Contains(t, body, "go_goroutines")
}

func TestNew_IndependentRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		metrics.New("a")
		metrics.New("b")
	})
}
