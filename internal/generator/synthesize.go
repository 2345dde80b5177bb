package generator

import (
	"bytes"
	"fmt"
	"text/template"
)

// familyData is the template model for one family.
type familyData struct {
	Name       string
	TagField   string
	GenDecode  bool
	GenEncode  bool
	GenCodec   bool
	HasRecords bool
	Variants   []variantData
}

// variantData carries one variant with its dispatch expressions precomputed,
// keeping the template itself branch-light.
type variantData struct {
	WireName  string
	TypeName  string
	Singleton bool
	Pointer   bool

	// CaseTypes is the encode type switch case list. Value-receiver variants
	// match both the value and pointer dynamic forms.
	CaseTypes string

	// ReturnExpr resolves a singleton decode to its canonical instance.
	ReturnExpr string
}

const familyTemplate = `
{{- if .GenDecode}}

// Decode{{.Name}} decodes one {{.Name}} from its tagged JSON object form. The
// {{printf "%q" .TagField}} key selects the variant; all remaining keys belong
// to the variant itself.
func Decode{{.Name}}(data []byte) ({{.Name}}, error) {
	tag, err := sealed.Tag(data, {{printf "%q" .TagField}})
	if err != nil {
		return nil, err
	}
	switch tag {
{{- range .Variants}}
	case {{printf "%q" .WireName}}:
{{- if .Singleton}}
		return {{.ReturnExpr}}, nil
{{- else if .Pointer}}
		var v {{.TypeName}}
		if err := sealed.DecodeFields(data, &v); err != nil {
			return nil, err
		}
		return &v, nil
{{- else}}
		var v {{.TypeName}}
		if err := sealed.DecodeFields(data, &v); err != nil {
			return nil, err
		}
		return v, nil
{{- end}}
{{- end}}
	default:
		return nil, &sealed.UnknownVariantError{Family: {{printf "%q" .Name}}, Field: {{printf "%q" .TagField}}, Tag: tag}
	}
}
{{- end}}
{{- if .GenEncode}}

// Encode{{.Name}} encodes v into its tagged JSON object form, injecting the
// {{printf "%q" .TagField}} key over the variant's own fields.
func Encode{{.Name}}(v {{.Name}}) ([]byte, error) {
{{- if .HasRecords}}
	switch t := v.(type) {
{{- else}}
	switch v.(type) {
{{- end}}
{{- range .Variants}}
	case {{.CaseTypes}}:
{{- if .Singleton}}
		return sealed.EncodeTagOnly({{printf "%q" $.TagField}}, {{printf "%q" .WireName}})
{{- else}}
		return sealed.EncodeTagged(t, {{printf "%q" $.TagField}}, {{printf "%q" .WireName}})
{{- end}}
{{- end}}
	default:
		return nil, &sealed.UnmatchedVariantError{Family: {{printf "%q" .Name}}, Value: v}
	}
}
{{- end}}
{{- if .GenCodec}}

// {{.Name}}Codec pairs Decode{{.Name}} and Encode{{.Name}} as one value.
var {{.Name}}Codec = sealed.NewCodec(Decode{{.Name}}, Encode{{.Name}})

// {{.Name}}Box carries one {{.Name}} through ordinary struct marshaling. A nil
// value maps to JSON null in both directions.
type {{.Name}}Box struct {
	Value {{.Name}}
}

// MarshalJSON implements json.Marshaler for {{.Name}}Box.
func (b {{.Name}}Box) MarshalJSON() ([]byte, error) {
	if b.Value == nil {
		return []byte("null"), nil
	}
	return Encode{{.Name}}(b.Value)
}

// UnmarshalJSON implements json.Unmarshaler for {{.Name}}Box.
func (b *{{.Name}}Box) UnmarshalJSON(data []byte) error {
	if sealed.IsNull(data) {
		b.Value = nil
		return nil
	}
	v, err := Decode{{.Name}}(data)
	if err != nil {
		return err
	}
	b.Value = v
	return nil
}
{{- end}}
`

// renderFamily renders the codec source for one family, without the file
// header or package clause.
func renderFamily(fam *Family) (string, error) {
	tmpl, err := template.New("family").Parse(familyTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse family template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, newFamilyData(fam)); err != nil {
		return "", fmt.Errorf("failed to render family %s: %w", fam.Name, err)
	}
	return buf.String(), nil
}

// newFamilyData precomputes the dispatch expressions for each variant.
func newFamilyData(fam *Family) familyData {
	fd := familyData{
		Name:       fam.Name,
		TagField:   fam.TagField,
		GenDecode:  fam.Ops.Decode(),
		GenEncode:  fam.Ops.Encode(),
		GenCodec:   fam.Ops == OpsCodec,
		HasRecords: fam.HasRecords(),
	}

	for _, v := range fam.Variants {
		vd := variantData{
			WireName:  v.WireName,
			TypeName:  v.TypeName,
			Singleton: v.Kind == KindSingleton,
			Pointer:   v.Pointer,
		}
		if v.Pointer {
			vd.CaseTypes = "*" + v.TypeName
		} else {
			vd.CaseTypes = v.TypeName + ", *" + v.TypeName
		}
		if vd.Singleton {
			vd.ReturnExpr = v.Instance
			if v.Pointer && !v.InstancePtr {
				// The instance is a value var but only *T implements the
				// family, so the generated code hands out its address.
				vd.ReturnExpr = "&" + v.Instance
			}
		}
		fd.Variants = append(fd.Variants, vd)
	}
	return fd
}
