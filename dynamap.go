// Package dynamap converts Go values to and from DynamoDB attribute
// values.
//
// The conversion runs through a generic value tree (package ir): Go
// values map onto the tree by reflection (package gomap), and the tree is
// encoded to, or decoded from, *dynamodb.AttributeValue (packages encode
// and decode). The two engines agree on every edge-case policy — numeric
// rendering, empty collections, the empty-string sentinel — so that
// decoding an encoded value reproduces it.
//
// Typical usage:
//
//	item, err := dynamap.ToFields(Account{ID: "test", Counter: 0})
//	// item: map[string]*dynamodb.AttributeValue ready for PutItem
//
//	var account Account
//	err = dynamap.FromFields(output.Item, &account)
//
// Point lookups and literal records go through Fields:
//
//	key := dynamap.MustFields(map[string]any{"id": "test"})
package dynamap

import (
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"

	"github.com/dynamap/dynamap/decode"
	"github.com/dynamap/dynamap/encode"
	"github.com/dynamap/dynamap/gomap"
)

// ToAttributeValue converts any Go value to a DynamoDB attribute value.
func ToAttributeValue(v interface{}, opts ...encode.EncodeOption) (*dynamodb.AttributeValue, error) {
	node, err := gomap.ToIR(v)
	if err != nil {
		return nil, err
	}
	return encode.Encode(node, opts...)
}

// FromAttributeValue converts a DynamoDB attribute value into dst, which
// must be a non-nil pointer.
func FromAttributeValue(av *dynamodb.AttributeValue, dst interface{}) error {
	node, err := decode.Decode(av)
	if err != nil {
		return err
	}
	return gomap.FromIR(node, dst)
}

// ToFields converts a Go value that maps to an object (a struct or a
// string-keyed map) into a top-level record.
func ToFields(v interface{}, opts ...encode.EncodeOption) (map[string]*dynamodb.AttributeValue, error) {
	node, err := gomap.ToIR(v)
	if err != nil {
		return nil, err
	}
	return encode.EncodeItem(node, opts...)
}

// FromFields converts a top-level record into dst, which must be a
// non-nil pointer to a struct, map, or interface{}.
func FromFields(item map[string]*dynamodb.AttributeValue, dst interface{}) error {
	node, err := decode.DecodeItem(item)
	if err != nil {
		return err
	}
	return gomap.FromIR(node, dst)
}

// Fields builds a record from literal key/value pairs, converting each
// value through ToAttributeValue. It is a convenience for constructing
// items to write and partial key maps for point lookups.
func Fields(fields map[string]interface{}, opts ...encode.EncodeOption) (map[string]*dynamodb.AttributeValue, error) {
	res := make(map[string]*dynamodb.AttributeValue, len(fields))
	for key, v := range fields {
		av, err := ToAttributeValue(v, opts...)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", key, err)
		}
		res[key] = av
	}
	return res, nil
}

// MustFields is Fields for literal construction; it panics on conversion
// failure.
func MustFields(fields map[string]interface{}, opts ...encode.EncodeOption) map[string]*dynamodb.AttributeValue {
	res, err := Fields(fields, opts...)
	if err != nil {
		panic(err)
	}
	return res
}

// Names builds an expression attribute name map in the *string form the
// SDK wants.
func Names(names map[string]string) map[string]*string {
	res := make(map[string]*string, len(names))
	for key, name := range names {
		res[key] = aws.String(name)
	}
	return res
}
