package ir

import "testing"

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b *Node
		want int
	}{
		{"nil nil", nil, nil, 0},
		{"nil node", nil, Null(), -1},
		{"null null", Null(), Null(), 0},
		{"false true", FromBool(false), FromBool(true), -1},
		{"int eq", FromInt(3), FromInt(3), 0},
		{"int lt", FromInt(2), FromInt(3), -1},
		{"float gt", FromFloat(2.5), FromFloat(1.5), 1},
		{"string", FromString("a"), FromString("b"), -1},
		{"kind rank", Null(), FromBool(false), -1},
		{
			"array prefix",
			FromSlice([]*Node{FromInt(1)}),
			FromSlice([]*Node{FromInt(1), FromInt(2)}),
			-1,
		},
		{
			"array elem",
			FromSlice([]*Node{FromInt(2)}),
			FromSlice([]*Node{FromInt(1), FromInt(2)}),
			1,
		},
		{
			"object eq",
			FromMap(map[string]*Node{"a": FromInt(1), "b": FromString("x")}),
			FromMap(map[string]*Node{"b": FromString("x"), "a": FromInt(1)}),
			0,
		},
		{
			"object key",
			FromMap(map[string]*Node{"a": FromInt(1)}),
			FromMap(map[string]*Node{"b": FromInt(1)}),
			-1,
		},
		{
			"object value",
			FromMap(map[string]*Node{"a": FromInt(1)}),
			FromMap(map[string]*Node{"a": FromInt(2)}),
			-1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compare(tt.a, tt.b); got != tt.want {
				t.Errorf("Compare() = %d, want %d", got, tt.want)
			}
			if got := Compare(tt.b, tt.a); got != -tt.want {
				t.Errorf("Compare() reversed = %d, want %d", got, -tt.want)
			}
		})
	}
}

func TestEqualNumberKinds(t *testing.T) {
	// int 1 and float 1.0 are distinct number kinds
	if Equal(FromInt(1), FromFloat(1)) {
		t.Error("int and float nodes should not be equal")
	}
	if !Equal(FromNumber("1e300"), FromNumber("1e300")) {
		t.Error("identical decimal-text nodes should be equal")
	}
}
