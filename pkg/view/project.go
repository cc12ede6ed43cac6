package view

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/goliatone/go-configger/pkg/builder"
)

const tagName = "view"

var (
	treeType    = reflect.TypeOf(builder.Tree{})
	schemasType = reflect.TypeOf([]builder.SchemaNode(nil))
)

// Check reports whether V can be projected from a builder.Tree.
func Check[V any]() error {
	dst := reflect.TypeOf((*V)(nil)).Elem()
	if err := checkType(sourceFor(dst), dst, dst.String()); err != nil {
		return fmt.Errorf("view: %w", err)
	}
	return nil
}

// Project copies the fields V declares out of tree. V must satisfy Check;
// fields that cannot be matched are left at their zero value.
func Project[V any](tree builder.Tree) V {
	var out V
	dst := reflect.ValueOf(&out).Elem()
	if sourceFor(dst.Type()) == schemasType {
		assign(reflect.ValueOf(tree.Schemas), dst)
	} else {
		assign(reflect.ValueOf(tree), dst)
	}
	return out
}

func sourceFor(dst reflect.Type) reflect.Type {
	for dst.Kind() == reflect.Pointer {
		dst = dst.Elem()
	}
	if dst.Kind() == reflect.Slice {
		return schemasType
	}
	return treeType
}

func fieldName(f reflect.StructField) (string, bool) {
	if !f.IsExported() {
		return "", false
	}
	tag := strings.TrimSpace(f.Tag.Get(tagName))
	if tag == "-" {
		return "", false
	}
	if tag != "" {
		return tag, true
	}
	return f.Name, true
}

func checkType(src, dst reflect.Type, path string) error {
	if src.Kind() == reflect.Pointer {
		src = src.Elem()
	}

	switch dst.Kind() {
	case reflect.Pointer:
		if dst.Elem().Kind() != reflect.Struct {
			return fmt.Errorf("%s: pointers are only supported to structs", path)
		}
		return checkType(src, dst.Elem(), path)

	case reflect.Interface:
		if dst.NumMethod() != 0 {
			return fmt.Errorf("%s: only empty interfaces are supported", path)
		}
		return nil

	case reflect.Struct:
		if src.Kind() != reflect.Struct {
			return fmt.Errorf("%s: cannot project %s into a struct", path, src)
		}
		for i := 0; i < dst.NumField(); i++ {
			field := dst.Field(i)
			name, ok := fieldName(field)
			if !ok {
				continue
			}
			srcField, found := src.FieldByName(name)
			if !found {
				return fmt.Errorf("%s.%s: no matching field in %s", path, field.Name, src)
			}
			if err := checkType(srcField.Type, field.Type, path+"."+field.Name); err != nil {
				return err
			}
		}
		return nil

	case reflect.Slice:
		if src.Kind() != reflect.Slice {
			return fmt.Errorf("%s: cannot project %s into a slice", path, src)
		}
		return checkType(src.Elem(), dst.Elem(), path+"[]")

	case reflect.Map:
		if src.Kind() != reflect.Map {
			return fmt.Errorf("%s: cannot project %s into a map", path, src)
		}
		if !src.Key().ConvertibleTo(dst.Key()) || src.Key().Kind() != dst.Key().Kind() {
			return fmt.Errorf("%s: map key %s does not convert to %s", path, src.Key(), dst.Key())
		}
		return checkType(src.Elem(), dst.Elem(), path+"[key]")

	default:
		if src.Kind() != dst.Kind() || !src.ConvertibleTo(dst) {
			return fmt.Errorf("%s: cannot project %s into %s", path, src, dst)
		}
		return nil
	}
}

func assign(src, dst reflect.Value) {
	for src.IsValid() && (src.Kind() == reflect.Interface || src.Kind() == reflect.Pointer) {
		if src.IsNil() {
			return
		}
		src = src.Elem()
	}
	if !src.IsValid() {
		return
	}

	switch dst.Kind() {
	case reflect.Pointer:
		target := reflect.New(dst.Type().Elem())
		assign(src, target.Elem())
		dst.Set(target)

	case reflect.Interface:
		if src.Type().AssignableTo(dst.Type()) {
			dst.Set(src)
		}

	case reflect.Struct:
		if src.Kind() != reflect.Struct {
			return
		}
		for i := 0; i < dst.NumField(); i++ {
			name, ok := fieldName(dst.Type().Field(i))
			if !ok {
				continue
			}
			if value := src.FieldByName(name); value.IsValid() {
				assign(value, dst.Field(i))
			}
		}

	case reflect.Slice:
		if src.Kind() != reflect.Slice || src.IsNil() {
			return
		}
		out := reflect.MakeSlice(dst.Type(), src.Len(), src.Len())
		for i := 0; i < src.Len(); i++ {
			assign(src.Index(i), out.Index(i))
		}
		dst.Set(out)

	case reflect.Map:
		if src.Kind() != reflect.Map || src.IsNil() {
			return
		}
		out := reflect.MakeMapWithSize(dst.Type(), src.Len())
		iter := src.MapRange()
		for iter.Next() {
			value := reflect.New(dst.Type().Elem()).Elem()
			assign(iter.Value(), value)
			out.SetMapIndex(iter.Key().Convert(dst.Type().Key()), value)
		}
		dst.Set(out)

	default:
		if src.Type().ConvertibleTo(dst.Type()) {
			dst.Set(src.Convert(dst.Type()))
		}
	}
}
