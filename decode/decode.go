package decode

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go/service/dynamodb"

	"github.com/dynamap/dynamap/ir"
	"github.com/dynamap/dynamap/sentinel"
)

// Decode transforms one tagged attribute into one generic value tree,
// recursively. Exactly one variant of the attribute must be populated;
// malformed input surfaces as a typed error; the decoder never
// substitutes defaults, and no partial tree is returned on error.
func Decode(av *dynamodb.AttributeValue) (*ir.Node, error) {
	if av == nil {
		return nil, &UnexpectedTagError{Message: "nil attribute value"}
	}
	if n := variants(av); n != 1 {
		if n == 0 {
			return nil, &UnexpectedTagError{Message: "attribute value has no variant set"}
		}
		return nil, &UnexpectedTagError{Message: fmt.Sprintf("attribute value has %d variants set", n)}
	}
	switch {
	case av.S != nil:
		// A one-byte sentinel payload is the canonical encoding of an
		// empty string; everything else decodes literally.
		return ir.FromString(sentinel.Decode(*av.S)), nil
	case av.N != nil:
		return decodeNumber(*av.N)
	case av.B != nil:
		// Binary surfaces as an opaque string-like leaf; Go strings
		// hold arbitrary bytes, so nothing is lost.
		return ir.FromString(string(av.B)), nil
	case av.BOOL != nil:
		return ir.FromBool(*av.BOOL), nil
	case av.NULL != nil:
		return ir.Null(), nil
	case av.M != nil:
		m := make(map[string]*ir.Node, len(av.M))
		for key, v := range av.M {
			node, err := Decode(v)
			if err != nil {
				return nil, err
			}
			m[key] = node
		}
		return ir.FromMap(m), nil
	case av.L != nil:
		vs := make([]*ir.Node, len(av.L))
		for i, v := range av.L {
			node, err := Decode(v)
			if err != nil {
				return nil, err
			}
			vs[i] = node
		}
		return ir.FromSlice(vs), nil
	case av.SS != nil:
		// Set members are non-empty by store rules, so the sentinel
		// codec does not apply inside sets. Membership uniqueness is
		// trusted from the wire.
		vs := make([]*ir.Node, len(av.SS))
		for i, s := range av.SS {
			vs[i] = ir.FromString(*s)
		}
		return ir.FromSlice(vs), nil
	case av.NS != nil:
		vs := make([]*ir.Node, len(av.NS))
		for i, n := range av.NS {
			node, err := decodeNumber(*n)
			if err != nil {
				return nil, err
			}
			vs[i] = node
		}
		return ir.FromSlice(vs), nil
	case av.BS != nil:
		vs := make([]*ir.Node, len(av.BS))
		for i, b := range av.BS {
			vs[i] = ir.FromString(string(b))
		}
		return ir.FromSlice(vs), nil
	}
	// unreachable: the variant count above is exactly one
	return nil, &UnexpectedTagError{Message: "attribute value has no variant set"}
}

// variants counts the populated fields of the tagged union. The wire
// contract requires exactly one.
func variants(av *dynamodb.AttributeValue) int {
	n := 0
	for _, set := range []bool{
		av.S != nil,
		av.N != nil,
		av.B != nil,
		av.BOOL != nil,
		av.NULL != nil,
		av.M != nil,
		av.L != nil,
		av.SS != nil,
		av.NS != nil,
		av.BS != nil,
	} {
		if set {
			n++
		}
	}
	return n
}

// DecodeItem transforms a top-level record into an object node.
func DecodeItem(item map[string]*dynamodb.AttributeValue) (*ir.Node, error) {
	m := make(map[string]*ir.Node, len(item))
	for key, av := range item {
		node, err := Decode(av)
		if err != nil {
			return nil, err
		}
		m[key] = node
	}
	return ir.FromMap(m), nil
}

// decodeNumber parses the store's decimal text back to the originating
// numeric kind, using the lexical shape as the discriminator: no
// fractional or exponent part means integer. Integral text wider than
// int64 is kept as exact decimal text rather than rounded to a float.
func decodeNumber(text string) (*ir.Node, error) {
	if !strings.ContainsAny(text, ".eE") {
		i, err := strconv.ParseInt(text, 10, 64)
		if err == nil {
			return ir.FromInt(i), nil
		}
		if errors.Is(err, strconv.ErrRange) {
			return ir.FromNumber(text), nil
		}
		return nil, &NumberParseError{Text: text, Err: err}
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, &NumberParseError{Text: text, Err: err}
	}
	return ir.FromFloat(f), nil
}
