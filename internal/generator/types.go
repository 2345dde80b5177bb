package generator

// DefaultTagField is the JSON key carrying the variant name when a request
// does not override it.
const DefaultTagField = "__type"

// VariantKind tells the synthesizer how a variant decodes.
type VariantKind int

const (
	// KindRecord decodes by constructing a fresh value through the variant's
	// own field codec.
	KindRecord VariantKind = iota
	// KindSingleton decodes by resolving to the variant's canonical
	// package-level instance.
	KindSingleton
)

// Ops selects which codec directions to generate for a family.
type Ops string

const (
	OpsCodec  Ops = "codec"
	OpsDecode Ops = "decode"
	OpsEncode Ops = "encode"
)

// Valid reports whether o is a recognized ops value.
func (o Ops) Valid() bool {
	switch o {
	case OpsCodec, OpsDecode, OpsEncode:
		return true
	}
	return false
}

// Decode reports whether the decode direction is requested.
func (o Ops) Decode() bool {
	return o == OpsCodec || o == OpsDecode
}

// Encode reports whether the encode direction is requested.
func (o Ops) Encode() bool {
	return o == OpsCodec || o == OpsEncode
}

// Variant is one concrete member of a sealed family.
type Variant struct {
	// WireName is the tag value on the wire: the type's name for records,
	// the canonical instance's name for singletons.
	WireName string

	// TypeName is the declared Go type name.
	TypeName string

	Kind VariantKind

	// Pointer marks variants whose method set requires a pointer receiver,
	// so the family is implemented by *TypeName rather than TypeName.
	Pointer bool

	// Instance is the canonical package-level var backing a singleton.
	Instance string

	// InstancePtr marks singleton instances declared as *TypeName.
	InstancePtr bool
}

// Family is a discovered sealed family with its deduplicated, name-sorted
// variant set.
type Family struct {
	// Name is the sealed interface's type name.
	Name string

	// Package and PkgPath identify the declaring package; the generated file
	// joins it.
	Package string
	PkgPath string

	// SourceFile is the file declaring the interface. Generated output is
	// colocated next to it.
	SourceFile string

	TagField string
	Ops      Ops

	Variants []Variant

	// Intermediates are abstract layers that widen the family without being
	// variants themselves. Kept for diagnostics.
	Intermediates []string
}

// HasRecords reports whether any variant decodes through a field codec. The
// synthesizer only binds the encode switch value when a record arm uses it.
func (f *Family) HasRecords() bool {
	for _, v := range f.Variants {
		if v.Kind == KindRecord {
			return true
		}
	}
	return false
}

// Request names one family derivation to perform.
type Request struct {
	Type string
	Tag  string
	Ops  Ops
}
