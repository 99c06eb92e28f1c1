package entities

import (
	"encoding/json"
	"fmt"
)

// RawGeneratedOutput is the untyped document returned by a generator. Nothing
// about its shape is assumed until the validator has inspected it.
type RawGeneratedOutput struct {
	// Text is the output exactly as the generator returned it
	Text string
	// Fields is the decoded JSON object, nil when decoding failed
	Fields map[string]interface{}
	// DecodeErr records why Text could not be decoded into an object
	DecodeErr error
}

// NewRawOutput wraps an already decoded object
func NewRawOutput(fields map[string]interface{}) RawGeneratedOutput {
	return RawGeneratedOutput{Fields: fields}
}

// Decoded reports whether the output is a JSON object
func (r RawGeneratedOutput) Decoded() bool {
	return r.DecodeErr == nil && r.Fields != nil
}

// Has reports whether key is present, even with a null value
func (r RawGeneratedOutput) Has(key string) bool {
	_, ok := r.Fields[key]
	return ok
}

// String returns the string under key
func (r RawGeneratedOutput) String(key string) (string, error) {
	v, ok := r.Fields[key]
	if !ok || v == nil {
		return "", fmt.Errorf("%s: field required", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s: expected string, got %s", key, jsonKind(v))
	}
	return s, nil
}

// StringSlice returns the array of strings under key
func (r RawGeneratedOutput) StringSlice(key string) ([]string, error) {
	v, ok := r.Fields[key]
	if !ok || v == nil {
		return nil, fmt.Errorf("%s: field required", key)
	}
	items, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%s: expected array of strings, got %s", key, jsonKind(v))
	}
	out := make([]string, 0, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%s[%d]: expected string, got %s", key, i, jsonKind(item))
		}
		out = append(out, s)
	}
	return out, nil
}

// Float returns the number under key
func (r RawGeneratedOutput) Float(key string) (float64, error) {
	v, ok := r.Fields[key]
	if !ok || v == nil {
		return 0, fmt.Errorf("%s: field required", key)
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case json.Number:
		return n.Float64()
	case int:
		return float64(n), nil
	}
	return 0, fmt.Errorf("%s: expected number, got %s", key, jsonKind(v))
}

// OptionalString returns the string under key, or nil when absent or null
func (r RawGeneratedOutput) OptionalString(key string) (*string, error) {
	if v, ok := r.Fields[key]; !ok || v == nil {
		return nil, nil
	}
	s, err := r.String(key)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// OptionalInt returns the integral number under key, or nil when absent or null
func (r RawGeneratedOutput) OptionalInt(key string) (*int, error) {
	if v, ok := r.Fields[key]; !ok || v == nil {
		return nil, nil
	}
	f, err := r.Float(key)
	if err != nil {
		return nil, err
	}
	if f != float64(int(f)) {
		return nil, fmt.Errorf("%s: expected integer, got %v", key, f)
	}
	n := int(f)
	return &n, nil
}

// Serialize renders the output for embedding in a repair prompt
func (r RawGeneratedOutput) Serialize() string {
	if !r.Decoded() {
		return r.Text
	}
	b, err := json.MarshalIndent(r.Fields, "", "  ")
	if err != nil {
		return r.Text
	}
	return string(b)
}

func jsonKind(v interface{}) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, json.Number, int:
		return "number"
	case []interface{}:
		return "array"
	case map[string]interface{}:
		return "object"
	}
	return fmt.Sprintf("%T", v)
}
