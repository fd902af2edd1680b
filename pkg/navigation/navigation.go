package navigation

// Item represents a navigation link that can be rendered in shared layouts.
// The primary bar is driven by an ordered list of Item values so that adding
// an entry is a one-line change to primaryItems.
type Item struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

// DefaultStylesheet is the stylesheet the bar markup is styled by. It is
// served from /static/css and never inspected by this package.
const DefaultStylesheet = "navbar.css"

var primaryItems = []Item{
	{Label: "Books", Path: "/"},
	{Label: "Add Book", Path: "/books/new"},
	{Label: "Manage Users", Path: "/users"},
	{Label: "Reviews", Path: "/reviews"},
}

// DefaultItems returns a copy of the primary navigation entries in display order.
func DefaultItems() []Item {
	return append([]Item(nil), primaryItems...)
}

// Bar is a stateless navigation landmark. Its entries are fixed when it is
// built and it is safe for concurrent use.
type Bar struct {
	items      []Item
	stylesheet string
}

// Default is the application's primary navigation bar.
var Default = NewBar(primaryItems, DefaultStylesheet)

func NewBar(items []Item, stylesheet string) *Bar {
	return &Bar{
		items:      append([]Item(nil), items...),
		stylesheet: stylesheet,
	}
}

// Items returns a copy of the bar's entries.
func (b *Bar) Items() []Item {
	return append([]Item(nil), b.items...)
}

func (b *Bar) Stylesheet() string {
	return b.stylesheet
}

// StylesheetPath is the public URL of the bar's stylesheet.
func (b *Bar) StylesheetPath() string {
	if b.stylesheet == "" {
		return ""
	}
	return "/static/css/" + b.stylesheet
}
