package navigation

import (
	"path"
	"strings"
)

// Router requests client-side navigation to a path. The bar never resolves
// paths itself.
type Router interface {
	NavigateTo(path string)
}

type RouterFunc func(path string)

func (f RouterFunc) NavigateTo(path string) {
	f(path)
}

// Link is a mounted navigation entry bound to a Router.
type Link struct {
	Item
	router Router
}

// Activate requests navigation to the link's path. A link mounted without a
// router does nothing.
func (l Link) Activate() {
	if l.router == nil {
		return
	}
	l.router.NavigateTo(l.Path)
}

// Mount binds every entry of the bar to router, in display order.
func (b *Bar) Mount(router Router) []Link {
	links := make([]Link, 0, len(b.items))
	for _, item := range b.items {
		links = append(links, Link{Item: item, router: router})
	}
	return links
}

// MissingRoutes returns the paths of items that are not among the registered
// routes. Parameterised routes (":id", "*path") are ignored.
func MissingRoutes(items []Item, registered []string) []string {
	known := make(map[string]struct{}, len(registered))
	for _, route := range registered {
		if strings.ContainsAny(route, ":*") {
			continue
		}
		known[cleanPath(route)] = struct{}{}
	}

	var missing []string
	for _, item := range items {
		if _, ok := known[cleanPath(item.Path)]; !ok {
			missing = append(missing, item.Path)
		}
	}
	return missing
}

func cleanPath(value string) string {
	trimmed := strings.TrimSpace(value)
	if !strings.HasPrefix(trimmed, "/") {
		trimmed = "/" + trimmed
	}
	return path.Clean(trimmed)
}
