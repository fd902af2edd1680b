package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCSRFRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(CSRFMiddleware())
	router.GET("/users", func(c *gin.Context) {
		c.String(http.StatusOK, CSRFToken(c))
	})
	router.POST("/users", func(c *gin.Context) {
		c.String(http.StatusOK, "created")
	})
	router.POST("/api/v1/users", func(c *gin.Context) {
		c.String(http.StatusCreated, "created")
	})
	return router
}

func issueCSRFToken(t *testing.T, router *gin.Engine) (*http.Cookie, string) {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == CSRFCookieName {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.Equal(t, cookie.Value, rec.Body.String())
	return cookie, cookie.Value
}

func postForm(router *gin.Engine, target string, cookie *http.Cookie, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCSRFMiddlewareAcceptsMatchingToken(t *testing.T) {
	router := newCSRFRouter()
	cookie, token := issueCSRFToken(t, router)

	rec := postForm(router, "/users", cookie, url.Values{CSRFFormField: {token}, "name": {"Ada"}})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCSRFMiddlewareRejectsMissingOrWrongToken(t *testing.T) {
	router := newCSRFRouter()
	cookie, _ := issueCSRFToken(t, router)

	rec := postForm(router, "/users", cookie, url.Values{"name": {"Ada"}})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = postForm(router, "/users", cookie, url.Values{CSRFFormField: {"00000000-0000-0000-0000-000000000000"}})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = postForm(router, "/users", nil, url.Values{CSRFFormField: {"anything"}})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCSRFMiddlewareSkipsAPI(t *testing.T) {
	router := newCSRFRouter()

	rec := postForm(router, "/api/v1/users", nil, nil)
	assert.Equal(t, http.StatusCreated, rec.Code)
}
