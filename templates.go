package configger

import (
	"io/fs"

	"github.com/goliatone/go-configger/pkg/generators/gostruct"
	"github.com/goliatone/go-configger/pkg/generators/htmldoc"
)

// EmbeddedTemplates exposes the built-in generator templates keyed by
// generator name so callers can copy and adapt them without importing the
// generator packages directly.
func EmbeddedTemplates() map[string]fs.FS {
	return map[string]fs.FS{
		gostruct.Name: gostruct.TemplatesFS(),
		htmldoc.Name:  htmldoc.TemplatesFS(),
	}
}
