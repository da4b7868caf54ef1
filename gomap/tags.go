package gomap

import (
	"reflect"
	"strings"
)

// fieldTag is the parsed form of a `dynamap:"..."` struct tag.
type fieldTag struct {
	Name      string
	Skip      bool
	OmitEmpty bool
}

// parseFieldTag parses a struct field's dynamap tag, encoding/json style:
// `dynamap:"name"`, `dynamap:"name,omitempty"`, `dynamap:",omitempty"`,
// `dynamap:"-"`.
func parseFieldTag(field reflect.StructField) fieldTag {
	res := fieldTag{Name: field.Name}
	tag, ok := field.Tag.Lookup("dynamap")
	if !ok {
		return res
	}
	if tag == "-" {
		res.Skip = true
		return res
	}
	name, rest, _ := strings.Cut(tag, ",")
	if name != "" {
		res.Name = name
	}
	for _, opt := range strings.Split(rest, ",") {
		if opt == "omitempty" {
			res.OmitEmpty = true
		}
	}
	return res
}

// isEmptyValue mirrors encoding/json's notion of empty for omitempty.
func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Pointer:
		return v.IsNil()
	}
	return false
}
