package navigation

import (
	"bytes"
	"html/template"
	"io"
)

const barTemplate = `<nav class="navbar" aria-label="Primary">
  <ul class="nav-links">
{{- range .}}
    <li><a href="{{.Path}}" data-nav-link>{{.Label}}</a></li>
{{- end}}
  </ul>
</nav>`

var barTmpl = template.Must(template.New("navbar").Parse(barTemplate))

// WriteTo writes the bar markup to w.
func (b *Bar) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	if err := barTmpl.Execute(&buf, b.items); err != nil {
		return 0, err
	}
	return buf.WriteTo(w)
}

// Render returns the bar markup. The template is static and only reads the
// bar's own entries, so rendering does not fail.
func (b *Bar) Render() template.HTML {
	var buf bytes.Buffer
	_, _ = b.WriteTo(&buf)
	return template.HTML(buf.String())
}

// Render returns the markup of the default bar.
func Render() template.HTML {
	return Default.Render()
}
