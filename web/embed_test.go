package web

import (
	"io/fs"
	"testing"

	"personal-library/pkg/navigation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplatesAreEmbedded(t *testing.T) {
	for _, name := range []string{"base.html", "books.html", "book.html", "book_new.html", "users.html", "reviews.html", "error.html", "flash.html"} {
		_, err := fs.Stat(Templates(), name)
		assert.NoError(t, err, name)
	}
}

func TestNavigationStylesheetIsEmbedded(t *testing.T) {
	data, err := fs.ReadFile(Static(), "css/"+navigation.Default.Stylesheet())
	require.NoError(t, err)
	assert.Contains(t, string(data), ".navbar")
}

func TestAssetVersion(t *testing.T) {
	version := AssetVersion(navigation.Default.StylesheetPath())
	assert.Len(t, version, 12)
	assert.Equal(t, version, AssetVersion(navigation.Default.StylesheetPath()+"?x=1"))

	assert.Empty(t, AssetVersion("/static/css/missing.css"))
	assert.Empty(t, AssetVersion("/books/new"))
}

func TestRouterScriptSwapsOnlyHTML(t *testing.T) {
	data, err := fs.ReadFile(Static(), "js/navigation.js")
	require.NoError(t, err)
	script := string(data)

	assert.Contains(t, script, `indexOf("text/html") === 0`)
	assert.Contains(t, script, "response.status === 429 || response.status >= 500")
	assert.Contains(t, script, "window.location.assign(url.href)")
	assert.Contains(t, script, "decodeURIComponent(title)")
}
