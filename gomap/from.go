package gomap

import (
	"encoding"
	"fmt"
	"math"
	"reflect"
	"strconv"

	"github.com/dynamap/dynamap/ir"
)

// FromIR converts a generic value tree to a Go value. v must be a
// non-nil pointer to the target. Types implementing Unmarshaler or
// encoding.TextUnmarshaler populate themselves; everything else goes
// through reflection.
func FromIR(node *ir.Node, v interface{}) error {
	if v == nil {
		return &UnmarshalError{Message: "destination value cannot be nil"}
	}
	val := reflect.ValueOf(v)
	if val.Kind() != reflect.Pointer {
		return &UnmarshalError{Message: "destination value must be a pointer"}
	}
	if val.IsNil() {
		return &UnmarshalError{Message: "destination pointer cannot be nil"}
	}
	return fromIRValue(node, val.Elem(), "")
}

func fromIRValue(node *ir.Node, val reflect.Value, fieldPath string) error {
	if node == nil {
		return &UnmarshalError{
			FieldPath: fieldPath,
			Message:   "value tree node is nil",
		}
	}

	if done, err := unmarshalerHook(node, val); done {
		return err
	}

	// Pointers allocate through to the element; null zeroes the target.
	if val.Kind() == reflect.Pointer {
		if node.Type == ir.NullType {
			if val.CanSet() {
				val.Set(reflect.Zero(val.Type()))
			}
			return nil
		}
		if val.IsNil() {
			val.Set(reflect.New(val.Type().Elem()))
		}
		return fromIRValue(node, val.Elem(), fieldPath)
	}
	if node.Type == ir.NullType {
		if val.CanSet() {
			val.Set(reflect.Zero(val.Type()))
		}
		return nil
	}

	switch val.Kind() {
	case reflect.String:
		return fromIRToString(node, val, fieldPath)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fromIRToInt(node, val, fieldPath)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return fromIRToUint(node, val, fieldPath)

	case reflect.Float32, reflect.Float64:
		return fromIRToFloat(node, val, fieldPath)

	case reflect.Bool:
		return fromIRToBool(node, val, fieldPath)

	case reflect.Slice, reflect.Array:
		return fromIRToSlice(node, val, fieldPath)

	case reflect.Map:
		return fromIRToMap(node, val, fieldPath)

	case reflect.Struct:
		return fromIRToStruct(node, val, fieldPath)

	case reflect.Interface:
		return fromIRToInterface(node, val, fieldPath)

	default:
		return &UnmarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("unsupported type: %s", val.Type()),
		}
	}
}

// unmarshalerHook applies the Unmarshaler and encoding.TextUnmarshaler
// interfaces. Only addressable or pointer values can unmarshal
// themselves.
func unmarshalerHook(node *ir.Node, val reflect.Value) (bool, error) {
	if val.Kind() == reflect.Pointer && !val.IsNil() {
		if u, ok := val.Interface().(Unmarshaler); ok {
			return true, u.UnmarshalIR(node)
		}
	}
	if !val.CanAddr() {
		return false, nil
	}
	addr := val.Addr()
	if !addr.CanInterface() {
		return false, nil
	}
	if u, ok := addr.Interface().(Unmarshaler); ok {
		return true, u.UnmarshalIR(node)
	}
	if tu, ok := addr.Interface().(encoding.TextUnmarshaler); ok {
		if node.Type == ir.NullType {
			if val.CanSet() {
				val.Set(reflect.Zero(val.Type()))
			}
			return true, nil
		}
		if node.Type != ir.StringType {
			return true, &UnmarshalError{
				Message: fmt.Sprintf("expected string for text unmarshaler, got %s", node.Type),
			}
		}
		return true, tu.UnmarshalText([]byte(node.String))
	}
	return false, nil
}

func fromIRToString(node *ir.Node, val reflect.Value, fieldPath string) error {
	if node.Type != ir.StringType {
		return &UnmarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("expected string, got %s", node.Type),
		}
	}
	if val.CanSet() {
		val.SetString(node.String)
	}
	return nil
}

func fromIRToInt(node *ir.Node, val reflect.Value, fieldPath string) error {
	var intVal int64

	switch node.Type {
	case ir.NumberType:
		switch {
		case node.Int64 != nil:
			intVal = *node.Int64
		case node.Number != "":
			parsed, err := strconv.ParseInt(node.Number, 10, 64)
			if err != nil {
				return &UnmarshalError{
					FieldPath: fieldPath,
					Message:   fmt.Sprintf("invalid number: %q", node.Number),
					Err:       err,
				}
			}
			intVal = parsed
		case node.Float64 != nil:
			f := *node.Float64
			if f != math.Trunc(f) {
				return &UnmarshalError{
					FieldPath: fieldPath,
					Message:   fmt.Sprintf("non-integral value %v for integer target", f),
				}
			}
			intVal = int64(f)
		default:
			return &UnmarshalError{
				FieldPath: fieldPath,
				Message:   "number node has no value",
			}
		}
	case ir.StringType:
		parsed, err := strconv.ParseInt(node.String, 10, 64)
		if err != nil {
			return &UnmarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("cannot convert string %q to int", node.String),
				Err:       err,
			}
		}
		intVal = parsed
	default:
		return &UnmarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("expected number, got %s", node.Type),
		}
	}

	if val.CanSet() {
		if val.OverflowInt(intVal) {
			return &UnmarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("value %d overflows %s", intVal, val.Type()),
			}
		}
		val.SetInt(intVal)
	}
	return nil
}

func fromIRToUint(node *ir.Node, val reflect.Value, fieldPath string) error {
	var uintVal uint64

	switch node.Type {
	case ir.NumberType:
		switch {
		case node.Int64 != nil:
			if *node.Int64 < 0 {
				return &UnmarshalError{
					FieldPath: fieldPath,
					Message:   fmt.Sprintf("negative value %d cannot be converted to unsigned integer", *node.Int64),
				}
			}
			uintVal = uint64(*node.Int64)
		case node.Number != "":
			parsed, err := strconv.ParseUint(node.Number, 10, 64)
			if err != nil {
				return &UnmarshalError{
					FieldPath: fieldPath,
					Message:   fmt.Sprintf("invalid unsigned number: %q", node.Number),
					Err:       err,
				}
			}
			uintVal = parsed
		default:
			return &UnmarshalError{
				FieldPath: fieldPath,
				Message:   "number node has no unsigned value",
			}
		}
	case ir.StringType:
		parsed, err := strconv.ParseUint(node.String, 10, 64)
		if err != nil {
			return &UnmarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("cannot convert string %q to uint", node.String),
				Err:       err,
			}
		}
		uintVal = parsed
	default:
		return &UnmarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("expected number, got %s", node.Type),
		}
	}

	if val.CanSet() {
		if val.OverflowUint(uintVal) {
			return &UnmarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("value %d overflows %s", uintVal, val.Type()),
			}
		}
		val.SetUint(uintVal)
	}
	return nil
}

func fromIRToFloat(node *ir.Node, val reflect.Value, fieldPath string) error {
	var floatVal float64

	switch node.Type {
	case ir.NumberType:
		switch {
		case node.Float64 != nil:
			floatVal = *node.Float64
		case node.Int64 != nil:
			floatVal = float64(*node.Int64)
		case node.Number != "":
			parsed, err := strconv.ParseFloat(node.Number, 64)
			if err != nil {
				return &UnmarshalError{
					FieldPath: fieldPath,
					Message:   fmt.Sprintf("invalid float: %q", node.Number),
					Err:       err,
				}
			}
			floatVal = parsed
		default:
			return &UnmarshalError{
				FieldPath: fieldPath,
				Message:   "number node has no value",
			}
		}
	case ir.StringType:
		parsed, err := strconv.ParseFloat(node.String, 64)
		if err != nil {
			return &UnmarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("cannot convert string %q to float", node.String),
				Err:       err,
			}
		}
		floatVal = parsed
	default:
		return &UnmarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("expected number, got %s", node.Type),
		}
	}

	if val.CanSet() {
		val.SetFloat(floatVal)
	}
	return nil
}

func fromIRToBool(node *ir.Node, val reflect.Value, fieldPath string) error {
	if node.Type != ir.BoolType {
		return &UnmarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("expected bool, got %s", node.Type),
		}
	}
	if val.CanSet() {
		val.SetBool(node.Bool)
	}
	return nil
}

func fromIRToSlice(node *ir.Node, val reflect.Value, fieldPath string) error {
	typ := val.Type()

	// []byte comes back from a string-like leaf
	if typ.Kind() == reflect.Slice && typ.Elem().Kind() == reflect.Uint8 {
		if node.Type != ir.StringType {
			return &UnmarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("expected string for byte slice, got %s", node.Type),
			}
		}
		if val.CanSet() {
			val.SetBytes([]byte(node.String))
		}
		return nil
	}

	if node.Type != ir.ArrayType {
		return &UnmarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("expected array, got %s", node.Type),
		}
	}

	length := len(node.Values)
	if typ.Kind() == reflect.Array {
		if val.Len() != length {
			return &UnmarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("array length mismatch: expected %d, got %d", val.Len(), length),
			}
		}
	} else {
		val.Set(reflect.MakeSlice(typ, length, length))
	}

	for i := 0; i < length; i++ {
		if err := fromIRValue(node.Values[i], val.Index(i), elemPath(fieldPath, i)); err != nil {
			return err
		}
	}
	return nil
}

func fromIRToMap(node *ir.Node, val reflect.Value, fieldPath string) error {
	if node.Type != ir.ObjectType {
		return &UnmarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("expected object, got %s", node.Type),
		}
	}

	typ := val.Type()
	if typ.Key().Kind() != reflect.String {
		return &UnsupportedKeyError{
			FieldPath: fieldPath,
			KeyType:   typ.Key().String(),
		}
	}

	val.Set(reflect.MakeMapWithSize(typ, len(node.Keys)))
	for i, key := range node.Keys {
		valueVal := reflect.New(typ.Elem()).Elem()
		if err := fromIRValue(node.Values[i], valueVal, keyPath(fieldPath, key)); err != nil {
			return err
		}
		keyVal := reflect.ValueOf(key)
		if typ.Key() != keyVal.Type() {
			keyVal = keyVal.Convert(typ.Key())
		}
		val.SetMapIndex(keyVal, valueVal)
	}
	return nil
}

// fromIRToStruct populates a struct from an object node. Fields are
// matched case-sensitively by name or dynamap tag; embedded struct fields
// are promoted. Keys with no matching field are skipped.
func fromIRToStruct(node *ir.Node, val reflect.Value, fieldPath string) error {
	if node.Type != ir.ObjectType {
		return &UnmarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("expected object, got %s", node.Type),
		}
	}

	fields, err := structFields(val.Type(), fieldPath)
	if err != nil {
		return err
	}

	for i, key := range node.Keys {
		index, found := fields[key]
		if !found {
			continue
		}
		fieldVal := val.FieldByIndex(index)
		if err := fromIRValue(node.Values[i], fieldVal, keyPath(fieldPath, key)); err != nil {
			return err
		}
	}
	return nil
}

var (
	unmarshalerType     = reflect.TypeOf((*Unmarshaler)(nil)).Elem()
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
)

// selfUnmarshals reports whether the type populates itself. An embedded
// field of such a type is a leaf, matching the marshaling side.
func selfUnmarshals(typ reflect.Type) bool {
	p := reflect.PointerTo(typ)
	return p.Implements(unmarshalerType) || p.Implements(textUnmarshalerType)
}

// structFields maps object keys to struct field index paths, flattening
// embedded structs one level like the marshaling side. Embedded types
// that populate themselves stay leaf fields under their own name.
func structFields(typ reflect.Type, fieldPath string) (map[string][]int, error) {
	fields := make(map[string][]int)
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		if field.Anonymous && field.Type.Kind() == reflect.Struct && !selfUnmarshals(field.Type) {
			embedded, err := structFields(field.Type, fieldPath)
			if err != nil {
				return nil, err
			}
			for name, index := range embedded {
				if _, exists := fields[name]; exists {
					return nil, &UnmarshalError{
						FieldPath: fieldPath,
						Message:   fmt.Sprintf("field name conflict: embedded struct field %q conflicts with existing field", name),
					}
				}
				fields[name] = append(field.Index, index...)
			}
			continue
		}
		tag := parseFieldTag(field)
		if tag.Skip {
			continue
		}
		fields[tag.Name] = field.Index
	}
	return fields, nil
}

// fromIRToInterface infers the concrete Go type from the node kind:
// nil, bool, int64, float64, string (decimal text for numbers wider than
// both), []interface{} or map[string]interface{}.
func fromIRToInterface(node *ir.Node, val reflect.Value, fieldPath string) error {
	if val.NumMethod() != 0 {
		return &UnmarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("cannot unmarshal into non-empty interface %s", val.Type()),
		}
	}

	if node.Type == ir.NullType {
		if val.CanSet() {
			val.Set(reflect.Zero(val.Type()))
		}
		return nil
	}

	var concrete interface{}
	switch node.Type {
	case ir.StringType:
		concrete = node.String
	case ir.BoolType:
		concrete = node.Bool
	case ir.NumberType:
		switch {
		case node.Int64 != nil:
			concrete = *node.Int64
		case node.Float64 != nil:
			concrete = *node.Float64
		case node.Number != "":
			concrete = node.Number
		default:
			return &UnmarshalError{
				FieldPath: fieldPath,
				Message:   "number node has no value",
			}
		}
	case ir.ArrayType:
		slice := make([]interface{}, len(node.Values))
		for i, elemNode := range node.Values {
			var elem interface{}
			elemVal := reflect.ValueOf(&elem).Elem()
			if err := fromIRToInterface(elemNode, elemVal, elemPath(fieldPath, i)); err != nil {
				return err
			}
			slice[i] = elem
		}
		concrete = slice
	case ir.ObjectType:
		m := make(map[string]interface{}, len(node.Keys))
		for i, key := range node.Keys {
			var value interface{}
			valueVal := reflect.ValueOf(&value).Elem()
			if err := fromIRToInterface(node.Values[i], valueVal, keyPath(fieldPath, key)); err != nil {
				return err
			}
			m[key] = value
		}
		concrete = m
	default:
		return &UnmarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("unsupported node type for interface{}: %s", node.Type),
		}
	}

	if val.CanSet() {
		val.Set(reflect.ValueOf(concrete))
	}
	return nil
}
