package utils

import (
	"fmt"
	"html/template"
	"path"
	"reflect"
	"strings"
	"time"
	"unicode/utf8"
)

// AssetVersionFunc returns a cache-busting token for a static asset path, or
// an empty string when the asset is unknown.
type AssetVersionFunc func(path string) string

func GetTemplateFuncs(assetVersion AssetVersionFunc) template.FuncMap {
	return template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },

		"upper": strings.ToUpper,
		"lower": strings.ToLower,
		"trim":  strings.TrimSpace,
		"truncate": func(s string, length int) string {
			if length <= 0 || utf8.RuneCountInString(s) <= length {
				return s
			}
			runes := []rune(s)
			return strings.TrimSpace(string(runes[:length])) + "..."
		},
		"pathEquals": func(current, value string) bool {
			value = strings.TrimSpace(value)
			if value == "" {
				return false
			}
			return NormalizePath(current) == NormalizePath(value)
		},

		"formatDate": func(t time.Time, format string) string {
			layouts := map[string]string{
				"short":    "01/02/2006",
				"medium":   "January 02, 2006",
				"datetime": "01/02/2006 15:04",
				"iso":      time.RFC3339,
			}
			if layout, ok := layouts[format]; ok {
				return t.Format(layout)
			}
			return t.Format(format)
		},

		"stars": func(rating int) string {
			if rating < 0 {
				rating = 0
			}
			if rating > 5 {
				rating = 5
			}
			return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
		},
		"plural": func(n int, one, many string) string {
			if n == 1 {
				return fmt.Sprintf("%d %s", n, one)
			}
			return fmt.Sprintf("%d %s", n, many)
		},

		"default": func(defaultValue, value interface{}) interface{} {
			if isEmpty(value) {
				return defaultValue
			}
			return value
		},

		"dict": func(values ...interface{}) map[string]interface{} {
			dict := make(map[string]interface{})
			for i := 0; i+1 < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					continue
				}
				dict[key] = values[i+1]
			}
			return dict
		},
		"seq": func(n int) []int {
			result := make([]int, n)
			for i := 0; i < n; i++ {
				result[i] = i + 1
			}
			return result
		},
		"asset": func(p string) string {
			if p == "" {
				return ""
			}
			lowerPath := strings.ToLower(p)
			if strings.HasPrefix(lowerPath, "http://") || strings.HasPrefix(lowerPath, "https://") || strings.HasPrefix(p, "//") {
				return p
			}
			if assetVersion == nil {
				return p
			}
			version := assetVersion(p)
			if version == "" {
				return p
			}
			separator := "?"
			if strings.Contains(p, "?") {
				separator = "&"
			}
			return fmt.Sprintf("%s%sv=%s", p, separator, version)
		},
	}
}

// NormalizePath cleans a request path for comparison: a single leading slash,
// no trailing slash except for the root.
func NormalizePath(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if idx := strings.IndexAny(value, "?#"); idx >= 0 {
		value = value[:idx]
	}
	cleaned := path.Clean("/" + strings.TrimLeft(value, "/"))
	if cleaned == "." {
		return "/"
	}
	return cleaned
}

func isEmpty(value interface{}) bool {
	if value == nil {
		return true
	}

	v := reflect.ValueOf(value)

	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Bool:
		return false
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Slice, reflect.Array, reflect.Map:
		return v.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	}

	zero := reflect.Zero(v.Type())
	return reflect.DeepEqual(value, zero.Interface())
}
