package gomap

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/dynamap/dynamap/ir"
)

func TestFromIRBasicTypes(t *testing.T) {
	tests := []struct {
		name string
		node *ir.Node
		want interface{}
	}{
		{"string", ir.FromString("hello"), "hello"},
		{"int", ir.FromInt(42), 42},
		{"int64", ir.FromInt(123456789), int64(123456789)},
		{"uint32", ir.FromInt(7), uint32(7)},
		{"float64", ir.FromFloat(3.14), 3.14},
		{"bool true", ir.FromBool(true), true},
		{"bool false", ir.FromBool(false), false},
		{"bytes", ir.FromString("raw"), []byte("raw")},
		{"big number to uint64", ir.FromNumber("18446744073709551615"), uint64(18446744073709551615)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			val := reflect.New(reflect.TypeOf(tt.want))
			if err := FromIR(tt.node, val.Interface()); err != nil {
				t.Fatalf("FromIR() error = %v", err)
			}
			got := val.Elem().Interface()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FromIR() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFromIRNull(t *testing.T) {
	str := "existing"
	if err := FromIR(ir.Null(), &str); err != nil {
		t.Fatalf("FromIR() error = %v", err)
	}
	if str != "" {
		t.Errorf("null should zero the target, got %q", str)
	}

	p := &str
	if err := FromIR(ir.Null(), &p); err != nil {
		t.Fatalf("FromIR() error = %v", err)
	}
	if p != nil {
		t.Errorf("null should nil the pointer, got %v", p)
	}
}

func TestFromIRDestinationErrors(t *testing.T) {
	if err := FromIR(ir.Null(), nil); err == nil {
		t.Error("nil destination should fail")
	}
	var s string
	if err := FromIR(ir.Null(), s); err == nil {
		t.Error("non-pointer destination should fail")
	}
	var sp *string
	if err := FromIR(ir.Null(), sp); err == nil {
		t.Error("nil pointer destination should fail")
	}
}

func TestFromIRStruct(t *testing.T) {
	node := ir.FromMap(map[string]*ir.Node{
		"id":      ir.FromString("test"),
		"note":    ir.FromString(""),
		"ts":      ir.FromString("today"),
		"counter": ir.FromInt(3),
		"extra":   ir.FromString("ignored"),
	})
	var got account
	if err := FromIR(node, &got); err != nil {
		t.Fatalf("FromIR() error = %v", err)
	}
	want := account{ID: "test", TS: "today", Counter: 3}
	if got != want {
		t.Errorf("FromIR() = %+v, want %+v", got, want)
	}
}

func TestFromIREmbedded(t *testing.T) {
	type Base struct {
		ID string `dynamap:"id"`
	}
	type wrapper struct {
		Base
		Name string `dynamap:"name"`
	}
	node := ir.FromMap(map[string]*ir.Node{
		"id":   ir.FromString("x"),
		"name": ir.FromString("y"),
	})
	var got wrapper
	if err := FromIR(node, &got); err != nil {
		t.Fatalf("FromIR() error = %v", err)
	}
	if got.ID != "x" || got.Name != "y" {
		t.Errorf("FromIR() = %+v", got)
	}
}

func TestFromIRSliceAndMap(t *testing.T) {
	node := ir.FromSlice([]*ir.Node{ir.FromInt(1), ir.FromInt(2), ir.FromInt(3)})
	var ints []int
	if err := FromIR(node, &ints); err != nil {
		t.Fatalf("FromIR() error = %v", err)
	}
	if !reflect.DeepEqual(ints, []int{1, 2, 3}) {
		t.Errorf("FromIR() = %v", ints)
	}

	obj := ir.FromMap(map[string]*ir.Node{"a": ir.FromInt(1), "b": ir.FromInt(2)})
	var m map[string]int
	if err := FromIR(obj, &m); err != nil {
		t.Fatalf("FromIR() error = %v", err)
	}
	if !reflect.DeepEqual(m, map[string]int{"a": 1, "b": 2}) {
		t.Errorf("FromIR() = %v", m)
	}

	var bad map[int]int
	if err := FromIR(obj, &bad); err == nil {
		t.Error("non-string map keys should fail")
	}
}

func TestFromIRInterface(t *testing.T) {
	node := ir.FromMap(map[string]*ir.Node{
		"name":    ir.FromString("user name"),
		"counter": ir.FromInt(0),
		"ratio":   ir.FromFloat(0.5),
		"flags":   ir.FromSlice([]*ir.Node{ir.FromBool(true), ir.Null()}),
	})
	var got interface{}
	if err := FromIR(node, &got); err != nil {
		t.Fatalf("FromIR() error = %v", err)
	}
	want := map[string]interface{}{
		"name":    "user name",
		"counter": int64(0),
		"ratio":   0.5,
		"flags":   []interface{}{true, nil},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FromIR() mismatch (-want +got):\n%s", diff)
	}
}

func TestFromIRTextUnmarshaler(t *testing.T) {
	node := ir.FromString("2016-05-03T17:06:26.209072Z")
	var ts time.Time
	if err := FromIR(node, &ts); err != nil {
		t.Fatalf("FromIR() error = %v", err)
	}
	want := time.Date(2016, 5, 3, 17, 6, 26, 209072000, time.UTC)
	if !ts.Equal(want) {
		t.Errorf("FromIR() = %v, want %v", ts, want)
	}
}

func TestFromIREmbeddedTextUnmarshaler(t *testing.T) {
	type Created struct{ time.Time }
	type Updated struct{ time.Time }
	type record struct {
		Created
		Updated
		Name string `dynamap:"name"`
	}
	node := ir.FromMap(map[string]*ir.Node{
		"Created": ir.FromString("2016-05-03T17:06:26.209072Z"),
		"Updated": ir.FromString("2017-01-02T03:04:05Z"),
		"name":    ir.FromString("x"),
	})
	var got record
	if err := FromIR(node, &got); err != nil {
		t.Fatalf("FromIR() error = %v", err)
	}
	wantCreated := time.Date(2016, 5, 3, 17, 6, 26, 209072000, time.UTC)
	wantUpdated := time.Date(2017, 1, 2, 3, 4, 5, 0, time.UTC)
	if !got.Created.Time.Equal(wantCreated) || !got.Updated.Time.Equal(wantUpdated) || got.Name != "x" {
		t.Errorf("FromIR() = %+v", got)
	}
}

func TestFromIRTypeMismatch(t *testing.T) {
	var n int
	if err := FromIR(ir.FromBool(true), &n); err == nil {
		t.Error("bool into int should fail")
	}
	var b bool
	if err := FromIR(ir.FromString("true"), &b); err == nil {
		t.Error("string into bool should fail")
	}
	var small int8
	if err := FromIR(ir.FromInt(1000), &small); err == nil {
		t.Error("overflowing int8 should fail")
	}
	var u uint
	if err := FromIR(ir.FromInt(-1), &u); err == nil {
		t.Error("negative into uint should fail")
	}
}

type versionedTarget struct {
	Raw string
}

func (v *versionedTarget) UnmarshalIR(node *ir.Node) error {
	v.Raw = node.String
	return nil
}

func TestFromIRUnmarshalerHook(t *testing.T) {
	var got versionedTarget
	if err := FromIR(ir.FromString("v1"), &got); err != nil {
		t.Fatalf("FromIR() error = %v", err)
	}
	if got.Raw != "v1" {
		t.Errorf("UnmarshalIR hook not applied: %+v", got)
	}
}
