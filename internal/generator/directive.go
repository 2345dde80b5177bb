package generator

import (
	"fmt"
	"go/ast"
	"go/token"
	"strings"
)

// DirectiveMarker introduces a family derivation request in a type's doc
// comment:
//
//	//sealedgen:family tag=kind ops=decode
//
// Arguments are space-separated key=value pairs; both keys are optional and
// default to tag=__type ops=codec.
const DirectiveMarker = "sealedgen:family"

// parseDirective parses the argument list following the directive marker.
func parseDirective(args string) (Request, error) {
	req := Request{Tag: DefaultTagField, Ops: OpsCodec}
	for _, part := range strings.Fields(args) {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 || kv[1] == "" {
			return Request{}, fmt.Errorf("malformed directive argument %q, want key=value", part)
		}
		switch kv[0] {
		case "tag":
			req.Tag = kv[1]
		case "ops":
			ops := Ops(kv[1])
			if !ops.Valid() {
				return Request{}, fmt.Errorf("unknown ops value %q, want codec, decode or encode", kv[1])
			}
			req.Ops = ops
		default:
			return Request{}, fmt.Errorf("unknown directive key %q", kv[0])
		}
	}
	return req, nil
}

// FindDirectives scans package syntax for directive-marked type declarations
// and returns one request per marked type, in source order.
func FindDirectives(srcs []Source) ([]Request, error) {
	var reqs []Request
	for _, src := range srcs {
		for _, file := range src.Syntax {
			for _, decl := range file.Decls {
				gen, ok := decl.(*ast.GenDecl)
				if !ok || gen.Tok != token.TYPE {
					continue
				}
				for _, spec := range gen.Specs {
					ts, ok := spec.(*ast.TypeSpec)
					if !ok {
						continue
					}
					doc := ts.Doc
					if doc == nil {
						doc = gen.Doc
					}
					args, ok := directiveArgs(doc)
					if !ok {
						continue
					}
					req, err := parseDirective(args)
					if err != nil {
						return nil, fmt.Errorf("type %s: %w", ts.Name.Name, err)
					}
					req.Type = ts.Name.Name
					reqs = append(reqs, req)
				}
			}
		}
	}
	return reqs, nil
}

// directiveArgs returns the text following the marker in doc, if any comment
// line carries it.
func directiveArgs(doc *ast.CommentGroup) (string, bool) {
	if doc == nil {
		return "", false
	}
	for _, comment := range doc.List {
		text := strings.TrimPrefix(comment.Text, "//")
		if !strings.HasPrefix(text, DirectiveMarker) {
			continue
		}
		rest := text[len(DirectiveMarker):]
		if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
			// A longer marker such as sealedgen:familyfoo is not ours.
			continue
		}
		return strings.TrimSpace(rest), true
	}
	return "", false
}
