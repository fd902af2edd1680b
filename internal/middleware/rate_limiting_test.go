package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestRateLimitMiddlewareRejectsAfterBurst(t *testing.T) {
	defer goleak.VerifyNone(t)

	manager := NewRateLimitManager(context.Background(), 2, 60, 0)
	defer manager.Shutdown()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RateLimitMiddleware(manager))
	router.GET("/books", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/static/css/navbar.css", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/books", nil))
		codes = append(codes, recorder.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	limited := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/books", nil)
	req.Header.Set(NavigationRequestHeader, "true")
	router.ServeHTTP(limited, req)
	require.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.Contains(t, limited.Header().Get("Content-Type"), "application/json", "router falls back to a full load on non-HTML answers")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/static/css/navbar.css", nil))
	assert.Equal(t, http.StatusOK, recorder.Code, "static assets bypass the limiter")
}

func TestRateLimitManagerDisabled(t *testing.T) {
	defer goleak.VerifyNone(t)

	manager := NewRateLimitManager(context.Background(), 0, 60, 0)
	defer manager.Shutdown()

	assert.Nil(t, manager.GetVisitor("127.0.0.1"))
}

func TestRateLimitManagerCleanupEvictsIdleVisitors(t *testing.T) {
	defer goleak.VerifyNone(t)

	manager := NewRateLimitManager(context.Background(), 10, 60, 0)
	defer manager.Shutdown()

	require.NotNil(t, manager.GetVisitor("10.0.0.1"))
	require.Equal(t, 1, manager.visitorCount())

	manager.cleanup(time.Now())
	assert.Equal(t, 1, manager.visitorCount())

	manager.cleanup(time.Now().Add(visitorIdleTimeout + time.Second))
	assert.Equal(t, 0, manager.visitorCount())
}

func TestRateLimitManagerShutdownStopsCleanup(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := NewRateLimitManager(ctx, 10, 60, 0)
	require.NoError(t, manager.Shutdown())
}
