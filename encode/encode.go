package encode

import (
	"math"
	"regexp"
	"strconv"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"

	"github.com/dynamap/dynamap/ir"
	"github.com/dynamap/dynamap/sentinel"
)

// maxMagnitude is the largest numeric magnitude the store's decimal
// grammar accepts (9.9999999999999999999999999999999999999E+125).
const maxMagnitude = 1e126

// decimalText is the store's number grammar: optional sign, digits,
// optional fraction, optional exponent. strconv.ParseFloat alone is too
// permissive here (it accepts NaN, hex floats and underscore separators).
var decimalText = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

type EncState struct {
	setIntent bool
}

// Encode transforms one generic value tree into one tagged attribute,
// recursively. It is a pure function of its input and the given options;
// on error no partial attribute is returned.
func Encode(node *ir.Node, opts ...EncodeOption) (*dynamodb.AttributeValue, error) {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	return encode(node, es)
}

// EncodeItem transforms an object node into a top-level record: a map of
// attribute values keyed by the object's keys. Non-object nodes fail with
// ItemTypeError.
func EncodeItem(node *ir.Node, opts ...EncodeOption) (map[string]*dynamodb.AttributeValue, error) {
	if node == nil || node.Type != ir.ObjectType {
		actual := ir.NullType
		if node != nil {
			actual = node.Type
		}
		return nil, &ItemTypeError{Actual: actual}
	}
	av, err := Encode(node, opts...)
	if err != nil {
		return nil, err
	}
	return av.M, nil
}

func encode(node *ir.Node, es *EncState) (*dynamodb.AttributeValue, error) {
	switch node.Type {
	case ir.NullType:
		return &dynamodb.AttributeValue{NULL: aws.Bool(true)}, nil
	case ir.BoolType:
		return &dynamodb.AttributeValue{BOOL: aws.Bool(node.Bool)}, nil
	case ir.NumberType:
		n, err := encodeNumber(node)
		if err != nil {
			return nil, err
		}
		return &dynamodb.AttributeValue{N: aws.String(n)}, nil
	case ir.StringType:
		// The store rejects zero-length strings; empty goes through
		// the sentinel codec instead.
		return &dynamodb.AttributeValue{S: aws.String(sentinel.Encode(node.String))}, nil
	case ir.ArrayType:
		return encodeArray(node, es)
	case ir.ObjectType:
		m := make(map[string]*dynamodb.AttributeValue, len(node.Keys))
		for i, key := range node.Keys {
			av, err := encode(node.Values[i], es)
			if err != nil {
				return nil, err
			}
			m[key] = av
		}
		return &dynamodb.AttributeValue{M: m}, nil
	}
	return nil, &ItemTypeError{Actual: node.Type}
}

// encodeNumber renders a number node as the store's canonical decimal
// text without precision loss.
func encodeNumber(node *ir.Node) (string, error) {
	switch {
	case node.Int64 != nil:
		return strconv.FormatInt(*node.Int64, 10), nil
	case node.Float64 != nil:
		f := *node.Float64
		if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) >= maxMagnitude {
			return "", &NumberOutOfRangeError{Value: strconv.FormatFloat(f, 'g', -1, 64)}
		}
		return strconv.FormatFloat(f, 'g', -1, 64), nil
	default:
		// Decimal-text fallback: validate the lexical shape and range
		// before passing it through verbatim.
		if !decimalText.MatchString(node.Number) {
			return "", &NumberOutOfRangeError{Value: node.Number}
		}
		f, err := strconv.ParseFloat(node.Number, 64)
		if err != nil || math.Abs(f) >= maxMagnitude {
			return "", &NumberOutOfRangeError{Value: node.Number}
		}
		return node.Number, nil
	}
}

// encodeArray emits a list, or a set variant when the caller has asked
// for set semantics and the members qualify. An empty array is always a
// list: sets cannot be empty.
func encodeArray(node *ir.Node, es *EncState) (*dynamodb.AttributeValue, error) {
	if es.setIntent && len(node.Values) > 0 {
		if ss, ok := stringSet(node); ok {
			return &dynamodb.AttributeValue{SS: ss}, nil
		}
		ns, ok, err := numberSet(node)
		if err != nil {
			return nil, err
		}
		if ok {
			return &dynamodb.AttributeValue{NS: ns}, nil
		}
	}
	l := make([]*dynamodb.AttributeValue, len(node.Values))
	for i, v := range node.Values {
		av, err := encode(v, es)
		if err != nil {
			return nil, err
		}
		l[i] = av
	}
	return &dynamodb.AttributeValue{L: l}, nil
}

// stringSet reports whether the array qualifies as a string set: all
// members strings, none empty, no duplicates. Empty members would need
// the sentinel codec, which applies only to standalone string values, so
// they disqualify the set.
func stringSet(node *ir.Node) ([]*string, bool) {
	seen := make(map[string]bool, len(node.Values))
	res := make([]*string, len(node.Values))
	for i, v := range node.Values {
		if v.Type != ir.StringType || v.String == "" || seen[v.String] {
			return nil, false
		}
		seen[v.String] = true
		res[i] = aws.String(v.String)
	}
	return res, true
}

// numberSet reports whether the array qualifies as a number set: all
// members numbers with distinct canonical renderings. A member that fails
// to render (out of range) fails the whole encode, since it would fail
// inside a list just the same.
func numberSet(node *ir.Node) ([]*string, bool, error) {
	seen := make(map[string]bool, len(node.Values))
	res := make([]*string, len(node.Values))
	for i, v := range node.Values {
		if v.Type != ir.NumberType {
			return nil, false, nil
		}
		n, err := encodeNumber(v)
		if err != nil {
			return nil, false, err
		}
		if seen[n] {
			return nil, false, nil
		}
		seen[n] = true
		res[i] = aws.String(n)
	}
	return res, true, nil
}
