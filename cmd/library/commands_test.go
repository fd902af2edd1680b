package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoutesCommandPrintsNavigationTargets(t *testing.T) {
	t.Setenv("DB_DRIVER", "memory")
	t.Setenv("ENABLE_CACHE", "false")
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	root := newRootCommand()
	root.SetOut(&out)
	root.SetArgs([]string{"routes"})

	require.NoError(t, root.Execute())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	for _, expected := range []string{"GET /", "GET /books/new", "GET /users", "GET /reviews"} {
		assert.Contains(t, lines, expected)
	}
}

func TestUnknownDriverFails(t *testing.T) {
	t.Setenv("DB_DRIVER", "oracle")

	root := newRootCommand()
	root.SetArgs([]string{"migrate"})
	assert.Error(t, root.Execute())
}
