package sealed

import "fmt"

// ExpectedObjectError reports a decode input whose top-level JSON value is not
// an object. Got names the value kind that was found instead.
type ExpectedObjectError struct {
	Got string
}

func (e *ExpectedObjectError) Error() string {
	return fmt.Sprintf("sealed: expected JSON object, got %s", e.Got)
}

// MissingTagError reports a JSON object that carries no tag field, so no
// variant can be selected.
type MissingTagError struct {
	Field string
}

func (e *MissingTagError) Error() string {
	return fmt.Sprintf("sealed: missing tag field %q", e.Field)
}

// Path returns the JSON Pointer of the absent tag field.
func (e *MissingTagError) Path() string {
	return "/" + e.Field
}

// TagNotStringError reports a tag field whose value is not a JSON string.
type TagNotStringError struct {
	Field string
	Cause error
}

func (e *TagNotStringError) Error() string {
	return fmt.Sprintf("sealed: tag field %q is not a JSON string", e.Field)
}

func (e *TagNotStringError) Unwrap() error {
	return e.Cause
}

// Path returns the JSON Pointer of the offending tag field.
func (e *TagNotStringError) Path() string {
	return "/" + e.Field
}

// UnknownVariantError reports a tag value that names no variant of the family.
// The offending tag is retained for diagnostics.
type UnknownVariantError struct {
	Family string
	Field  string
	Tag    string
}

func (e *UnknownVariantError) Error() string {
	return fmt.Sprintf("sealed: unknown %s variant %q", e.Family, e.Tag)
}

// UnmatchedVariantError reports an encode call whose dynamic value is outside
// the family's generated variant set. This covers nil family values and values
// added after the codec was last generated.
type UnmatchedVariantError struct {
	Family string
	Value  interface{}
}

func (e *UnmatchedVariantError) Error() string {
	return fmt.Sprintf("sealed: cannot encode %T: not a %s variant", e.Value, e.Family)
}

// NonObjectFieldsError reports a record variant whose own field encoding
// produced a non-object JSON value, leaving nowhere to inject the tag.
type NonObjectFieldsError struct {
	Variant string
}

func (e *NonObjectFieldsError) Error() string {
	return fmt.Sprintf("sealed: variant %s did not encode to a JSON object", e.Variant)
}
