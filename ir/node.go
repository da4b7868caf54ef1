package ir

import (
	"maps"
	"slices"
)

type Node struct {
	Type Type

	String string
	Bool   bool

	// Numbers live in exactly one of Int64, Float64 or Number. Number
	// holds canonical decimal text for values neither int64 nor float64
	// can carry exactly.
	Number  string
	Int64   *int64
	Float64 *float64

	// For ObjectType, Keys[i] names Values[i]. For ArrayType only
	// Values is populated.
	Keys   []string
	Values []*Node
}

func Null() *Node {
	return &Node{Type: NullType}
}

func FromString(v string) *Node {
	return &Node{
		Type:   StringType,
		String: v,
	}
}

func FromInt(v int64) *Node {
	return &Node{
		Type:  NumberType,
		Int64: &v,
	}
}

func FromFloat(f float64) *Node {
	return &Node{
		Type:    NumberType,
		Float64: &f,
	}
}

// FromNumber holds decimal text verbatim. Used for numbers outside the
// int64/float64 range; the text is validated when the node is encoded.
func FromNumber(text string) *Node {
	return &Node{
		Type:   NumberType,
		Number: text,
	}
}

func FromBool(v bool) *Node {
	return &Node{
		Type: BoolType,
		Bool: v,
	}
}

func FromSlice(vs []*Node) *Node {
	res := &Node{
		Type:   ArrayType,
		Values: make([]*Node, len(vs)),
	}
	copy(res.Values, vs)
	return res
}

// FromMap builds an object node with keys in sorted order.
func FromMap(m map[string]*Node) *Node {
	res := &Node{
		Type:   ObjectType,
		Keys:   make([]string, 0, len(m)),
		Values: make([]*Node, 0, len(m)),
	}
	for _, key := range slices.Sorted(maps.Keys(m)) {
		res.Keys = append(res.Keys, key)
		res.Values = append(res.Values, m[key])
	}
	return res
}

// ToMap returns the object node's entries as a map, or nil if the node
// is not an object.
func ToMap(node *Node) map[string]*Node {
	if node.Type != ObjectType {
		return nil
	}
	res := make(map[string]*Node, len(node.Keys))
	for i, key := range node.Keys {
		res[key] = node.Values[i]
	}
	return res
}

// Get returns the value named key in an object node, or nil.
func Get(y *Node, key string) *Node {
	for i := range y.Keys {
		if y.Keys[i] == key {
			return y.Values[i]
		}
	}
	return nil
}

func (y *Node) Clone() *Node {
	res := &Node{}
	return y.CloneTo(res)
}

func (y *Node) CloneTo(dst *Node) *Node {
	dst.Type = y.Type
	dst.String = y.String
	dst.Bool = y.Bool
	dst.Number = y.Number
	if y.Int64 != nil {
		i := *y.Int64
		dst.Int64 = &i
	}
	if y.Float64 != nil {
		f := *y.Float64
		dst.Float64 = &f
	}
	if y.Keys != nil {
		dst.Keys = make([]string, len(y.Keys))
		copy(dst.Keys, y.Keys)
	}
	if y.Values != nil {
		dst.Values = make([]*Node, len(y.Values))
		for i, yv := range y.Values {
			dst.Values[i] = yv.Clone()
		}
	}
	return dst
}

// Visit walks the tree rooted at y, calling f before (isPost=false) and
// after (isPost=true) visiting each node's children. Returning false from
// the pre-order call skips the children.
func (y *Node) Visit(f func(y *Node, isPost bool) (bool, error)) error {
	dive, err := f(y, false)
	if err != nil {
		return err
	}
	if dive {
		for _, yy := range y.Values {
			if err := yy.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(y, true); err != nil {
		return err
	}
	return nil
}
