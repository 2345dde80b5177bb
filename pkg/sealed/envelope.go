package sealed

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
)

var null = []byte("null")

// Tag extracts the string stored under field in the JSON object data.
//
// The input must be a JSON object; anything else yields *ExpectedObjectError.
// An object without the field yields *MissingTagError, and a field holding a
// non-string value yields *TagNotStringError.
func Tag(data []byte, field string) (string, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return "", &ExpectedObjectError{Got: valueKind(trimmed)}
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return "", fmt.Errorf("sealed: parse object: %w", err)
	}

	raw, ok := obj[field]
	if !ok {
		return "", &MissingTagError{Field: field}
	}
	// Unmarshal treats null as a no-op for strings, so reject it up front.
	if IsNull(raw) {
		return "", &TagNotStringError{Field: field}
	}
	var tag string
	if err := json.Unmarshal(raw, &tag); err != nil {
		return "", &TagNotStringError{Field: field, Cause: err}
	}
	return tag, nil
}

// EncodeTagged encodes v through its own field encoding and injects the tag
// key into the resulting object. An existing key named field is overwritten.
func EncodeTagged(v interface{}, field, name string) ([]byte, error) {
	fields, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	trimmed := bytes.TrimSpace(fields)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, &NonObjectFieldsError{Variant: name}
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return nil, fmt.Errorf("sealed: reparse %s fields: %w", name, err)
	}
	tag, err := json.Marshal(name)
	if err != nil {
		return nil, err
	}
	obj[field] = tag
	// Map keys marshal sorted, keeping the output deterministic.
	return json.Marshal(obj)
}

// EncodeTagOnly produces the bare tagged object {"<field>": "<name>"} used for
// singleton variants.
func EncodeTagOnly(field, name string) ([]byte, error) {
	return json.Marshal(map[string]string{field: name})
}

// DecodeFields runs the destination's own field decoding over the full tagged
// object. Unknown keys, including the tag itself, are ignored by struct
// decoding, so the envelope needs no stripping. Failures are returned to the
// caller unchanged.
func DecodeFields(data []byte, dst interface{}) error {
	return json.Unmarshal(data, dst)
}

// IsNull reports whether data is the JSON null literal.
func IsNull(data []byte) bool {
	return bytes.Equal(bytes.TrimSpace(data), null)
}

// valueKind names the JSON value kind starting at the first byte of b.
func valueKind(b []byte) string {
	if len(b) == 0 {
		return "empty input"
	}
	switch c := b[0]; {
	case c == '[':
		return "array"
	case c == '"':
		return "string"
	case c == 't' || c == 'f':
		return "boolean"
	case c == 'n':
		return "null"
	case c == '-' || (c >= '0' && c <= '9'):
		return "number"
	default:
		return "malformed JSON"
	}
}
