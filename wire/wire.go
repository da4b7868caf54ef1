// Package wire marshals tagged attribute values to and from the store's
// JSON representation: a single-key object per attribute, keyed by the
// type tag ({"S":"x"}, {"N":"0"}, {"M":{...}}, ...). Binary payloads are
// base64, as on the wire.
package wire

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
)

// Marshal renders one attribute value as DynamoDB JSON.
func Marshal(av *dynamodb.AttributeValue) ([]byte, error) {
	v, err := toJSON(av)
	if err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

// MarshalIndent is Marshal with indentation for human consumption.
func MarshalIndent(av *dynamodb.AttributeValue, prefix, indent string) ([]byte, error) {
	v, err := toJSON(av)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(v, prefix, indent)
}

// MarshalItem renders a top-level record as DynamoDB JSON.
func MarshalItem(item map[string]*dynamodb.AttributeValue) ([]byte, error) {
	v, err := itemToJSON(item)
	if err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

// MarshalItemIndent is MarshalItem with indentation.
func MarshalItemIndent(item map[string]*dynamodb.AttributeValue, prefix, indent string) ([]byte, error) {
	v, err := itemToJSON(item)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(v, prefix, indent)
}

// Unmarshal parses one DynamoDB JSON attribute.
func Unmarshal(data []byte) (*dynamodb.AttributeValue, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return fromJSON(raw)
}

// UnmarshalItem parses a DynamoDB JSON record.
func UnmarshalItem(data []byte) (map[string]*dynamodb.AttributeValue, error) {
	var raw map[string]map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	item := make(map[string]*dynamodb.AttributeValue, len(raw))
	for key, attr := range raw {
		av, err := fromJSON(attr)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", key, err)
		}
		item[key] = av
	}
	return item, nil
}

func itemToJSON(item map[string]*dynamodb.AttributeValue) (map[string]interface{}, error) {
	res := make(map[string]interface{}, len(item))
	for key, av := range item {
		v, err := toJSON(av)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", key, err)
		}
		res[key] = v
	}
	return res, nil
}

// toJSON builds the single-key object form. json.Marshal base64-encodes
// []byte payloads, matching the wire representation of B and BS.
func toJSON(av *dynamodb.AttributeValue) (map[string]interface{}, error) {
	switch {
	case av == nil:
		return nil, fmt.Errorf("nil attribute value")
	case av.S != nil:
		return map[string]interface{}{"S": *av.S}, nil
	case av.N != nil:
		return map[string]interface{}{"N": *av.N}, nil
	case av.B != nil:
		return map[string]interface{}{"B": av.B}, nil
	case av.BOOL != nil:
		return map[string]interface{}{"BOOL": *av.BOOL}, nil
	case av.NULL != nil:
		return map[string]interface{}{"NULL": *av.NULL}, nil
	case av.M != nil:
		m, err := itemToJSON(av.M)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"M": m}, nil
	case av.L != nil:
		l := make([]interface{}, len(av.L))
		for i, elem := range av.L {
			v, err := toJSON(elem)
			if err != nil {
				return nil, fmt.Errorf("list element %d: %w", i, err)
			}
			l[i] = v
		}
		return map[string]interface{}{"L": l}, nil
	case av.SS != nil:
		return map[string]interface{}{"SS": aws.StringValueSlice(av.SS)}, nil
	case av.NS != nil:
		return map[string]interface{}{"NS": aws.StringValueSlice(av.NS)}, nil
	case av.BS != nil:
		return map[string]interface{}{"BS": av.BS}, nil
	}
	return nil, fmt.Errorf("attribute value has no variant set")
}

func fromJSON(raw map[string]json.RawMessage) (*dynamodb.AttributeValue, error) {
	if len(raw) != 1 {
		keys := make([]string, 0, len(raw))
		for k := range raw {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("attribute must have exactly one type tag, got %v", keys)
	}
	for tag, payload := range raw {
		return fromTagged(tag, payload)
	}
	return nil, nil // unreachable
}

func fromTagged(tag string, payload json.RawMessage) (*dynamodb.AttributeValue, error) {
	av := &dynamodb.AttributeValue{}
	switch tag {
	case "S":
		var s string
		if err := json.Unmarshal(payload, &s); err != nil {
			return nil, err
		}
		av.S = aws.String(s)
	case "N":
		var n string
		if err := json.Unmarshal(payload, &n); err != nil {
			return nil, err
		}
		av.N = aws.String(n)
	case "B":
		if err := json.Unmarshal(payload, &av.B); err != nil {
			return nil, err
		}
	case "BOOL":
		var b bool
		if err := json.Unmarshal(payload, &b); err != nil {
			return nil, err
		}
		av.BOOL = aws.Bool(b)
	case "NULL":
		var b bool
		if err := json.Unmarshal(payload, &b); err != nil {
			return nil, err
		}
		av.NULL = aws.Bool(b)
	case "M":
		m, err := UnmarshalItem(payload)
		if err != nil {
			return nil, err
		}
		if m == nil {
			m = map[string]*dynamodb.AttributeValue{}
		}
		av.M = m
	case "L":
		var elems []json.RawMessage
		if err := json.Unmarshal(payload, &elems); err != nil {
			return nil, err
		}
		av.L = make([]*dynamodb.AttributeValue, len(elems))
		for i, elem := range elems {
			v, err := Unmarshal(elem)
			if err != nil {
				return nil, fmt.Errorf("list element %d: %w", i, err)
			}
			av.L[i] = v
		}
	case "SS":
		var ss []string
		if err := json.Unmarshal(payload, &ss); err != nil {
			return nil, err
		}
		av.SS = aws.StringSlice(ss)
	case "NS":
		var ns []string
		if err := json.Unmarshal(payload, &ns); err != nil {
			return nil, err
		}
		av.NS = aws.StringSlice(ns)
	case "BS":
		if err := json.Unmarshal(payload, &av.BS); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unrecognized type tag %q", tag)
	}
	return av, nil
}
