package gomap

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/dynamap/dynamap/ir"
)

func TestToIRBasicTypes(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want *ir.Node
	}{
		{"nil", nil, ir.Null()},
		{"string", "hello", ir.FromString("hello")},
		{"empty string", "", ir.FromString("")},
		{"int", 42, ir.FromInt(42)},
		{"negative int", -17, ir.FromInt(-17)},
		{"uint in range", uint(7), ir.FromInt(7)},
		{"uint64 beyond int64", uint64(18446744073709551615), ir.FromNumber("18446744073709551615")},
		{"float", 3.14, ir.FromFloat(3.14)},
		{"bool", true, ir.FromBool(true)},
		{"bytes", []byte("raw"), ir.FromString("raw")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToIR(tt.in)
			if err != nil {
				t.Fatalf("ToIR() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ToIR() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestToIRComposites(t *testing.T) {
	got, err := ToIR(map[string]interface{}{
		"name":    "user name",
		"counter": 0,
		"tags":    []string{"a", "b"},
		"nested":  map[string]int{"x": 1},
		"absent":  nil,
	})
	if err != nil {
		t.Fatalf("ToIR() error = %v", err)
	}
	want := ir.FromMap(map[string]*ir.Node{
		"name":    ir.FromString("user name"),
		"counter": ir.FromInt(0),
		"tags":    ir.FromSlice([]*ir.Node{ir.FromString("a"), ir.FromString("b")}),
		"nested":  ir.FromMap(map[string]*ir.Node{"x": ir.FromInt(1)}),
		"absent":  ir.Null(),
	})
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ToIR() mismatch (-want +got):\n%s", diff)
	}
}

type account struct {
	ID      string `dynamap:"id"`
	Note    string `dynamap:"note"`
	TS      string `dynamap:"ts"`
	Counter uint32 `dynamap:"counter"`

	internal string
}

func TestToIRStruct(t *testing.T) {
	got, err := ToIR(account{
		ID:      "test",
		TS:      "today",
		Counter: 0,
		Note:    "",

		internal: "hidden",
	})
	if err != nil {
		t.Fatalf("ToIR() error = %v", err)
	}
	want := ir.FromMap(map[string]*ir.Node{
		"id":      ir.FromString("test"),
		"note":    ir.FromString(""),
		"ts":      ir.FromString("today"),
		"counter": ir.FromInt(0),
	})
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ToIR() mismatch (-want +got):\n%s", diff)
	}
}

func TestToIRStructTags(t *testing.T) {
	type tagged struct {
		Kept    string `dynamap:"kept"`
		Skipped string `dynamap:"-"`
		Omitted int    `dynamap:"omitted,omitempty"`
		Plain   int
	}
	got, err := ToIR(tagged{Kept: "v", Skipped: "never", Omitted: 0, Plain: 1})
	if err != nil {
		t.Fatalf("ToIR() error = %v", err)
	}
	want := ir.FromMap(map[string]*ir.Node{
		"kept":  ir.FromString("v"),
		"Plain": ir.FromInt(1),
	})
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ToIR() mismatch (-want +got):\n%s", diff)
	}
}

func TestToIREmbedded(t *testing.T) {
	type Base struct {
		ID string `dynamap:"id"`
	}
	type wrapper struct {
		Base
		Name string `dynamap:"name"`
	}
	got, err := ToIR(wrapper{Base: Base{ID: "x"}, Name: "y"})
	if err != nil {
		t.Fatalf("ToIR() error = %v", err)
	}
	want := ir.FromMap(map[string]*ir.Node{
		"id":   ir.FromString("x"),
		"name": ir.FromString("y"),
	})
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ToIR() mismatch (-want +got):\n%s", diff)
	}
}

func TestToIREmbeddedTextMarshaler(t *testing.T) {
	// an embedded type that converts itself is a leaf field named by
	// the type, not a source of promoted fields. Two of them keep the
	// outer struct from promoting a marshaler of its own.
	type Created struct{ time.Time }
	type Updated struct{ time.Time }
	type record struct {
		Created
		Updated
		Name string `dynamap:"name"`
	}
	got, err := ToIR(record{
		Created: Created{time.Date(2016, 5, 3, 17, 6, 26, 209072000, time.UTC)},
		Updated: Updated{time.Date(2017, 1, 2, 3, 4, 5, 0, time.UTC)},
		Name:    "x",
	})
	if err != nil {
		t.Fatalf("ToIR() error = %v", err)
	}
	want := ir.FromMap(map[string]*ir.Node{
		"Created": ir.FromString("2016-05-03T17:06:26.209072Z"),
		"Updated": ir.FromString("2017-01-02T03:04:05Z"),
		"name":    ir.FromString("x"),
	})
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ToIR() mismatch (-want +got):\n%s", diff)
	}
}

func TestToIRTextMarshaler(t *testing.T) {
	ts := time.Date(2016, 5, 3, 17, 6, 26, 209072000, time.UTC)
	got, err := ToIR(ts)
	if err != nil {
		t.Fatalf("ToIR() error = %v", err)
	}
	want := ir.FromString("2016-05-03T17:06:26.209072Z")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ToIR() mismatch (-want +got):\n%s", diff)
	}
}

func TestToIRUnsupportedKey(t *testing.T) {
	_, err := ToIR(map[int]string{1: "x"})
	var uke *UnsupportedKeyError
	if !errors.As(err, &uke) {
		t.Fatalf("ToIR() error = %v, want UnsupportedKeyError", err)
	}
}

func TestToIRCircularReference(t *testing.T) {
	type loop struct {
		Self *loop `dynamap:"self"`
	}
	l := &loop{}
	l.Self = l
	_, err := ToIR(l)
	var me *MarshalError
	if !errors.As(err, &me) {
		t.Fatalf("ToIR() error = %v, want MarshalError", err)
	}
}

type versioned struct {
	V int
}

func (v versioned) MarshalIR() (*ir.Node, error) {
	return ir.FromString("v1"), nil
}

func TestToIRMarshalerHook(t *testing.T) {
	got, err := ToIR(versioned{V: 1})
	if err != nil {
		t.Fatalf("ToIR() error = %v", err)
	}
	if got.Type != ir.StringType || got.String != "v1" {
		t.Errorf("ToIR() = %+v, want string v1", got)
	}
}
