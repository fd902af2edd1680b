package utils

import (
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"sort"
)

const layoutTemplate = "base.html"

// LoadTemplates parses every *.html file at the root of fsys into one
// template set. The layout is parsed first so it names the set.
func LoadTemplates(fsys fs.FS, funcs template.FuncMap) (*template.Template, error) {
	files, err := fs.Glob(fsys, "*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to glob templates: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no templates found")
	}

	sort.Strings(files)

	ordered := make([]string, 0, len(files))
	for _, file := range files {
		if path.Base(file) == layoutTemplate {
			ordered = append(ordered, file)
		}
	}
	for _, file := range files {
		if path.Base(file) != layoutTemplate {
			ordered = append(ordered, file)
		}
	}

	root := template.New(path.Base(ordered[0])).Funcs(funcs)

	if _, err := root.ParseFS(fsys, ordered...); err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return root, nil
}
