package generator

import (
	"fmt"
	"strings"
)

// NotClosedFamilyError reports a derivation target that is not a sealed
// interface. Generation halts with it, so the consuming build fails instead
// of shipping a codec over an open hierarchy.
type NotClosedFamilyError struct {
	Name   string
	Reason string
}

func (e *NotClosedFamilyError) Error() string {
	return fmt.Sprintf("family %s is not a closed hierarchy: %s", e.Name, e.Reason)
}

// AmbiguousSingletonError reports a zero-field variant with more than one
// candidate canonical instance.
type AmbiguousSingletonError struct {
	Family   string
	TypeName string
	Vars     []string
}

func (e *AmbiguousSingletonError) Error() string {
	return fmt.Sprintf("family %s: variant %s has %d candidate instances (%s), want exactly one package-level var",
		e.Family, e.TypeName, len(e.Vars), strings.Join(e.Vars, ", "))
}

// UnsupportedVariantError reports a concrete implementer no codec can be
// derived for.
type UnsupportedVariantError struct {
	Family   string
	TypeName string
	Reason   string
}

func (e *UnsupportedVariantError) Error() string {
	return fmt.Sprintf("family %s: variant %s is unsupported: %s", e.Family, e.TypeName, e.Reason)
}

// DuplicateVariantNameError reports two variants sharing one wire name.
type DuplicateVariantNameError struct {
	Family string
	Name   string
}

func (e *DuplicateVariantNameError) Error() string {
	return fmt.Sprintf("family %s: duplicate variant name %q", e.Family, e.Name)
}
