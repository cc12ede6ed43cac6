package rules

import (
	"context"
	"io"
	"strings"

	"github.com/goliatone/go-configger/pkg/builder"
	"github.com/goliatone/go-configger/pkg/generator"
)

// NameRuleName is the generator name of NameRule.
const NameRuleName = "name-rule"

// NameRule rejects the first field, in tree order, whose name starts with an
// underscore.
func NameRule() generator.Generator {
	return generator.NewFunc(NameRuleName, checkNames)
}

func checkNames(_ context.Context, tree builder.Tree, _ io.Writer) error {
	return tree.Walk(builder.Visitor{
		Field: func(path builder.Path, field builder.FieldNode) error {
			if strings.HasPrefix(field.Name, "_") {
				return generator.Validationf(path, "Field %s starts with an underscore", field.Name)
			}
			return nil
		},
	})
}
