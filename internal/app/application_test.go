package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"personal-library/internal/config"
	"personal-library/internal/middleware"
)

func newMemoryApp(t *testing.T, seed bool) *Application {
	t.Helper()

	cfg := &config.Config{
		DBDriver:          config.DriverMemory,
		Port:              "0",
		Environment:       "test",
		RateLimitRequests: 1000,
		RateLimitWindow:   60,
		EnableMetrics:     true,
		SeedOnStart:       seed,
		SiteName:          "Personal Library",
		CORSOrigins:       []string{"http://localhost:8080"},
	}

	application, err := New(cfg, Options{})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = application.Shutdown(context.Background())
	})
	return application
}

func get(app *Application, target string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	recorder := httptest.NewRecorder()
	app.Router().ServeHTTP(recorder, req)
	return recorder
}

func TestNavigationTargetsAreServed(t *testing.T) {
	application := newMemoryApp(t, false)

	for _, target := range []string{"/", "/books/new", "/users", "/reviews"} {
		rec := get(application, target, nil)
		assert.Equal(t, http.StatusOK, rec.Code, target)
		assert.Contains(t, rec.Body.String(), `aria-label="Primary"`, target)
		assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader), target)
		assert.NotEmpty(t, rec.Header().Get("Content-Security-Policy"), target)
	}
}

func TestStaticAssetsAndHealth(t *testing.T) {
	application := newMemoryApp(t, false)

	rec := get(application, "/static/css/navbar.css", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), ".navbar")

	rec = get(application, "/static/js/navigation.js", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "X-Navigation-Request")

	rec = get(application, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")

	rec = get(application, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "library_http_requests_total")
}

func TestSeedOnStart(t *testing.T) {
	application := newMemoryApp(t, true)

	rec := get(application, "/api/v1/books", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Dune")

	result, err := application.Seed()
	require.NoError(t, err)
	assert.Zero(t, result.Books)
}

func TestRoutesIncludeNavigationTargets(t *testing.T) {
	application := newMemoryApp(t, false)

	routes := application.Routes()
	for _, expected := range []string{"GET /", "GET /books/new", "GET /users", "GET /reviews", "POST /api/v1/reviews"} {
		assert.Contains(t, routes, expected)
	}
}

func TestOpenDatabaseRejectsUnknownDriver(t *testing.T) {
	_, err := OpenDatabase(&config.Config{DBDriver: "oracle"})
	assert.Error(t, err)

	db, err := OpenDatabase(&config.Config{DBDriver: config.DriverMemory})
	assert.NoError(t, err)
	assert.Nil(t, db)
}

func TestFormsRequireCSRFToken(t *testing.T) {
	application := newMemoryApp(t, false)

	page := get(application, "/books/new", nil)
	require.Equal(t, http.StatusOK, page.Code)

	var cookie *http.Cookie
	for _, c := range page.Result().Cookies() {
		if c.Name == middleware.CSRFCookieName {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.Contains(t, page.Body.String(), `name="csrf_token" value="`+cookie.Value+`"`)

	post := func(values url.Values, withCookie bool) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/books/new", strings.NewReader(values.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		if withCookie {
			req.AddCookie(cookie)
		}
		rec := httptest.NewRecorder()
		application.Router().ServeHTTP(rec, req)
		return rec
	}

	book := url.Values{"title": {"Emma"}, "author": {"Jane Austen"}, "genre": {"Novel"}}
	assert.Equal(t, http.StatusForbidden, post(book, false).Code)

	book.Set("csrf_token", cookie.Value)
	rec := post(book, true)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/?message=book-added", rec.Header().Get("Location"))
}

func TestRobotsAndAPINoIndex(t *testing.T) {
	application := newMemoryApp(t, false)

	rec := get(application, "/robots.txt", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "User-agent: *\nDisallow: /api/\n", rec.Body.String())

	rec = get(application, "/api/v1/", nil)
	assert.Equal(t, "noindex, nofollow", rec.Header().Get("X-Robots-Tag"))
	assert.Empty(t, get(application, "/", nil).Header().Get("X-Robots-Tag"))
}
