// Package console lists a tree as plain text, one line per schema, model and
// field.
package console

import (
	"context"
	"fmt"
	"io"

	"github.com/goliatone/go-configger/pkg/generator"
	"github.com/goliatone/go-configger/pkg/view"
)

// Name is the generator name.
const Name = "console"

// New returns the console generator. Output looks like:
//
//	Schema: shop
//	Model: user
//	Field: id integer
func New() generator.Generator {
	return generator.MustNew(Name, write)
}

func write(ctx context.Context, schemas view.Schemas, out io.Writer) error {
	for _, s := range schemas {
		if _, err := fmt.Fprintf(out, "Schema: %s\n", s.Name); err != nil {
			return err
		}
		for _, m := range s.Models {
			if err := ctx.Err(); err != nil {
				return err
			}
			if _, err := fmt.Fprintf(out, "Model: %s\n", m.Name); err != nil {
				return err
			}
			for _, f := range m.Fields {
				if _, err := fmt.Fprintf(out, "Field: %s %s\n", f.Name, f.Type); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
