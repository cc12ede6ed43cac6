// Package generator defines the contract implemented by pluggable consumers
// of a frozen builder tree, the ordered registry the dispatch pipeline reads
// from, and the error kinds generators report.
//
// Most generators are written against a view type and built with New, which
// validates the view shape once and projects the tree before every call:
//
//	gen, err := generator.New("listing", func(ctx context.Context, schemas view.Schemas, out io.Writer) error {
//		for _, s := range schemas {
//			fmt.Fprintln(out, s.Name)
//		}
//		return nil
//	})
package generator
