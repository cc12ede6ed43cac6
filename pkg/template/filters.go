package template

import (
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/flosch/pongo2/v6"
)

var registerFilters sync.Once

func registerDefaultFilters() {
	registerFilters.Do(func() {
		for name, fn := range map[string]pongo2.FilterFunction{
			"trim":  filterTrim,
			"camel": filterCamel,
			"snake": filterSnake,
		} {
			if pongo2.FilterExists(name) {
				continue
			}
			if err := pongo2.RegisterFilter(name, fn); err != nil {
				panic(fmt.Sprintf("template: register filter %q: %v", name, err))
			}
		}
	})
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.Len() <= 0 {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

func filterCamel(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(Camel(in.String())), nil
}

func filterSnake(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(Snake(in.String())), nil
}

var initialisms = map[string]string{
	"api":  "API",
	"html": "HTML",
	"http": "HTTP",
	"id":   "ID",
	"json": "JSON",
	"sql":  "SQL",
	"url":  "URL",
	"uuid": "UUID",
}

// Camel turns snake, kebab or space separated words into an exported Go
// identifier: "user_id" becomes "UserID".
func Camel(s string) string {
	var b strings.Builder
	for _, word := range strings.FieldsFunc(s, isSeparator) {
		if upper, ok := initialisms[strings.ToLower(word)]; ok {
			b.WriteString(upper)
			continue
		}
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		b.WriteString(string(runes))
	}
	return b.String()
}

// Snake lowercases s and joins its words with underscores: "UserID" and
// "user id" both become "user_id".
func Snake(s string) string {
	var words []string
	for _, chunk := range strings.FieldsFunc(s, isSeparator) {
		words = append(words, splitCase(chunk)...)
	}
	return strings.ToLower(strings.Join(words, "_"))
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || unicode.IsSpace(r)
}

// splitCase breaks "UserIDValue" into "User", "ID", "Value".
func splitCase(s string) []string {
	runes := []rune(s)
	var (
		out   []string
		start int
	)
	for i := 1; i < len(runes); i++ {
		prev, cur := runes[i-1], runes[i]
		nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
		if unicode.IsUpper(cur) && (unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower)) {
			out = append(out, string(runes[start:i]))
			start = i
		}
	}
	return append(out, string(runes[start:]))
}
