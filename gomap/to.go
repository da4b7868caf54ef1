package gomap

import (
	"encoding"
	"fmt"
	"math"
	"reflect"
	"strconv"

	"github.com/dynamap/dynamap/ir"
)

// ToIR converts a Go value to a generic value tree.
// Types implementing Marshaler or encoding.TextMarshaler convert
// themselves; everything else goes through reflection.
func ToIR(v interface{}) (*ir.Node, error) {
	if v == nil {
		return ir.Null(), nil
	}
	visited := make(map[uintptr]string) // pointer addresses by field path, for cycle detection
	return toIRValue(reflect.ValueOf(v), "", visited)
}

func toIRValue(val reflect.Value, fieldPath string, visited map[uintptr]string) (*ir.Node, error) {
	if !val.IsValid() {
		return ir.Null(), nil
	}

	typ := val.Type()
	kind := typ.Kind()

	// Nil references are null regardless of any methods on the type.
	switch kind {
	case reflect.Pointer, reflect.Interface:
		if val.IsNil() {
			return ir.Null(), nil
		}
	}

	if node, ok, err := marshalerHook(val); ok {
		return node, err
	}

	switch kind {
	case reflect.Pointer:
		ptrAddr := val.Pointer()
		if prevPath, seen := visited[ptrAddr]; seen {
			return nil, &MarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("circular reference detected: %s -> %s", prevPath, fieldPath),
			}
		}
		visited[ptrAddr] = fieldPath
		node, err := toIRValue(val.Elem(), fieldPath, visited)
		delete(visited, ptrAddr)
		return node, err

	case reflect.Interface:
		return toIRValue(val.Elem(), fieldPath, visited)

	case reflect.String:
		return ir.FromString(val.String()), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return ir.FromInt(val.Int()), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := val.Uint()
		if u > math.MaxInt64 {
			// wider than int64: keep exact decimal text
			return ir.FromNumber(strconv.FormatUint(u, 10)), nil
		}
		return ir.FromInt(int64(u)), nil

	case reflect.Float32, reflect.Float64:
		return ir.FromFloat(val.Float()), nil

	case reflect.Bool:
		return ir.FromBool(val.Bool()), nil

	case reflect.Slice:
		if typ.Elem().Kind() == reflect.Uint8 {
			// binary surfaces as a string-like leaf
			return ir.FromString(string(val.Bytes())), nil
		}
		return toIRSlice(val, fieldPath, visited)

	case reflect.Array:
		return toIRSlice(val, fieldPath, visited)

	case reflect.Map:
		return toIRMap(val, fieldPath, visited)

	case reflect.Struct:
		return toIRStruct(val, fieldPath, visited)

	default:
		return nil, &MarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("unsupported type: %s", typ),
		}
	}
}

// marshalerHook applies the Marshaler and encoding.TextMarshaler
// interfaces, checking the addressable form as well so that value
// receivers and pointer receivers both work.
func marshalerHook(val reflect.Value) (*ir.Node, bool, error) {
	if !val.CanInterface() {
		return nil, false, nil
	}
	if m, ok := val.Interface().(Marshaler); ok {
		node, err := m.MarshalIR()
		return node, true, err
	}
	if tm, ok := val.Interface().(encoding.TextMarshaler); ok {
		text, err := tm.MarshalText()
		if err != nil {
			return nil, true, err
		}
		return ir.FromString(string(text)), true, nil
	}
	if val.CanAddr() {
		if m, ok := val.Addr().Interface().(Marshaler); ok {
			node, err := m.MarshalIR()
			return node, true, err
		}
		if tm, ok := val.Addr().Interface().(encoding.TextMarshaler); ok {
			text, err := tm.MarshalText()
			if err != nil {
				return nil, true, err
			}
			return ir.FromString(string(text)), true, nil
		}
	}
	return nil, false, nil
}

func toIRSlice(val reflect.Value, fieldPath string, visited map[uintptr]string) (*ir.Node, error) {
	if val.Kind() == reflect.Slice {
		slicePtr := val.Pointer()
		if prevPath, seen := visited[slicePtr]; seen {
			return nil, &MarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("circular reference detected: %s -> %s", prevPath, fieldPath),
			}
		}
		visited[slicePtr] = fieldPath
		defer delete(visited, slicePtr)
	}

	length := val.Len()
	elements := make([]*ir.Node, 0, length)
	for i := 0; i < length; i++ {
		elemNode, err := toIRValue(val.Index(i), elemPath(fieldPath, i), visited)
		if err != nil {
			return nil, err
		}
		elements = append(elements, elemNode)
	}
	return ir.FromSlice(elements), nil
}

func toIRMap(val reflect.Value, fieldPath string, visited map[uintptr]string) (*ir.Node, error) {
	if val.Type().Key().Kind() != reflect.String {
		return nil, &UnsupportedKeyError{
			FieldPath: fieldPath,
			KeyType:   val.Type().Key().String(),
		}
	}

	mapPtr := val.Pointer()
	if prevPath, seen := visited[mapPtr]; seen {
		return nil, &MarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("circular reference detected: %s -> %s", prevPath, fieldPath),
		}
	}
	visited[mapPtr] = fieldPath
	defer delete(visited, mapPtr)

	irMap := make(map[string]*ir.Node, val.Len())
	iter := val.MapRange()
	for iter.Next() {
		key := iter.Key().String()
		valueNode, err := toIRValue(iter.Value(), keyPath(fieldPath, key), visited)
		if err != nil {
			return nil, err
		}
		irMap[key] = valueNode
	}
	return ir.FromMap(irMap), nil
}

var (
	marshalerType     = reflect.TypeOf((*Marshaler)(nil)).Elem()
	textMarshalerType = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
)

// selfMarshals reports whether the type converts itself. An embedded
// field of such a type is a leaf, not a source of promoted fields.
func selfMarshals(typ reflect.Type) bool {
	p := reflect.PointerTo(typ)
	return p.Implements(marshalerType) || p.Implements(textMarshalerType)
}

// toIRStruct converts a struct to an object node. Embedded structs are
// flattened, their fields promoted to the parent object, unless the
// embedded type converts itself (Marshaler or TextMarshaler); then it
// behaves like a regular field named by the type or its tag.
func toIRStruct(val reflect.Value, fieldPath string, visited map[uintptr]string) (*ir.Node, error) {
	typ := val.Type()
	irMap := make(map[string]*ir.Node)

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		fieldVal := val.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct && !selfMarshals(field.Type) {
			embeddedNode, err := toIRValue(fieldVal, fieldPath, visited)
			if err != nil {
				return nil, err
			}
			if embeddedNode.Type == ir.ObjectType {
				for j, key := range embeddedNode.Keys {
					if _, exists := irMap[key]; exists {
						return nil, &MarshalError{
							FieldPath: fieldPath,
							Message:   fmt.Sprintf("field name conflict: embedded struct field %q conflicts with existing field", key),
						}
					}
					irMap[key] = embeddedNode.Values[j]
				}
			}
			continue
		}

		tag := parseFieldTag(field)
		if tag.Skip {
			continue
		}
		if tag.OmitEmpty && isEmptyValue(fieldVal) {
			continue
		}

		fieldNode, err := toIRValue(fieldVal, keyPath(fieldPath, tag.Name), visited)
		if err != nil {
			return nil, err
		}
		irMap[tag.Name] = fieldNode
	}

	return ir.FromMap(irMap), nil
}

func elemPath(fieldPath string, i int) string {
	if fieldPath == "" {
		return fmt.Sprintf("[%d]", i)
	}
	return fmt.Sprintf("%s[%d]", fieldPath, i)
}

func keyPath(fieldPath, key string) string {
	if fieldPath == "" {
		return key
	}
	return fieldPath + "." + key
}
