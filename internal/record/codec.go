package record

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrValidation marks input that does not have the record log shape.
var ErrValidation = errors.New("invalid record data")

// Encode serializes records as one compact JSON array. An empty log encodes
// as [] rather than null.
func Encode(records []Record) ([]byte, error) {
	if records == nil {
		records = []Record{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encode records: %w", err)
	}
	return data, nil
}

// Decode validates data and unmarshals it into a log.
func Decode(data []byte) ([]Record, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}
	records := []Record{}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return records, nil
}

// Validate checks that data is a JSON array of record objects:
// id and checkIn are integers, checkOut and totalDuration are integers or
// false, formattedDateIn is a string and formattedDateOut a string or false.
func Validate(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("%w: trailing data after document", ErrValidation)
	}

	items, ok := doc.([]any)
	if !ok {
		return fmt.Errorf("%w: expected an array of records", ErrValidation)
	}
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return fmt.Errorf("%w: element %d is not an object", ErrValidation, i)
		}
		for _, c := range recordShape {
			v, present := obj[c.name]
			if !present || !c.check(v) {
				return fmt.Errorf("%w: element %d: field %q must be %s", ErrValidation, i, c.name, c.want)
			}
		}
	}
	return nil
}

type fieldCheck struct {
	name  string
	want  string
	check func(any) bool
}

var recordShape = []fieldCheck{
	{"id", "an integer", isInt},
	{"checkIn", "an integer", isInt},
	{"checkOut", "an integer or false", either(isInt, isFalse)},
	{"formattedDateIn", "a string", isString},
	{"formattedDateOut", "a string or false", either(isString, isFalse)},
	{"totalDuration", "an integer or false", either(isInt, isFalse)},
}

func isInt(v any) bool {
	n, ok := v.(json.Number)
	if !ok {
		return false
	}
	_, err := n.Int64()
	return err == nil
}

func isString(v any) bool {
	_, ok := v.(string)
	return ok
}

func isFalse(v any) bool {
	b, ok := v.(bool)
	return ok && !b
}

func either(a, b func(any) bool) func(any) bool {
	return func(v any) bool { return a(v) || b(v) }
}
