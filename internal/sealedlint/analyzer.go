// Package sealedlint provides a sealed family linter for sealedgen projects.
package sealedlint

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"strings"

	"golang.org/x/tools/go/analysis"
)

// Analyzer is the sealedgen family linter.
var Analyzer = &analysis.Analyzer{
	Name: "sealedlint",
	Doc:  "checks sealedgen:family directives and the interfaces they mark",
	Run:  run,
}

// directiveMarker mirrors the generator's family directive.
const directiveMarker = "sealedgen:family"

func run(pass *analysis.Pass) (interface{}, error) {
	for _, file := range pass.Files {
		inspectDirectives(file, pass)
	}
	return nil, nil
}

func inspectDirectives(file *ast.File, pass *analysis.Pass) {
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
			args, ok := directiveArgsOf(doc)
			if !ok {
				continue
			}
			for _, problem := range directiveProblems(args) {
				pass.Reportf(ts.Pos(), "%s", problem)
			}
			checkFamily(ts, pass)
		}
	}
}

// directiveArgsOf returns the text following the marker in doc, if any comment
// line carries it.
func directiveArgsOf(doc *ast.CommentGroup) (string, bool) {
	if doc == nil {
		return "", false
	}
	for _, comment := range doc.List {
		text := strings.TrimPrefix(comment.Text, "//")
		if !strings.HasPrefix(text, directiveMarker) {
			continue
		}
		rest := text[len(directiveMarker):]
		if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
			// A longer marker such as sealedgen:familyfoo is not ours.
			continue
		}
		return strings.TrimSpace(rest), true
	}
	return "", false
}

// directiveProblems validates the directive argument list and returns one
// message per problem.
func directiveProblems(args string) []string {
	var problems []string
	for _, part := range strings.Fields(args) {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 || kv[1] == "" {
			problems = append(problems, fmt.Sprintf("malformed directive argument %q, want key=value", part))
			continue
		}
		switch kv[0] {
		case "tag":
		case "ops":
			switch kv[1] {
			case "codec", "decode", "encode":
			default:
				problems = append(problems, fmt.Sprintf("unknown ops value %q, want codec, decode or encode", kv[1]))
			}
		default:
			problems = append(problems, fmt.Sprintf("unknown directive key %q", kv[0]))
		}
	}
	return problems
}

func checkFamily(ts *ast.TypeSpec, pass *analysis.Pass) {
	obj, ok := pass.TypesInfo.Defs[ts.Name].(*types.TypeName)
	if !ok {
		return
	}
	iface, ok := obj.Type().Underlying().(*types.Interface)
	if !ok {
		pass.Reportf(ts.Pos(), "%s directive on non-interface type %s", directiveMarker, ts.Name.Name)
		return
	}
	if !isSealed(iface) {
		pass.Reportf(ts.Pos(), "family interface %s is not sealed: it needs an unexported method", ts.Name.Name)
		return
	}
	checkSingletons(obj, iface, pass)
}

// isSealed reports whether iface restricts its implementer set with at least
// one unexported method. Methods reached through embedding count.
func isSealed(iface *types.Interface) bool {
	for i := 0; i < iface.NumMethods(); i++ {
		if !iface.Method(i).Exported() {
			return true
		}
	}
	return false
}

// checkSingletons flags zero-field variants with more than one package-level
// instance var, since the generator cannot pick a canonical one.
func checkSingletons(fam *types.TypeName, iface *types.Interface, pass *analysis.Pass) {
	scope := pass.Pkg.Scope()
	for _, name := range scope.Names() {
		tn, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || tn.IsAlias() || tn == fam {
			continue
		}
		st, ok := tn.Type().Underlying().(*types.Struct)
		if !ok || st.NumFields() > 0 {
			continue
		}
		if !types.Implements(tn.Type(), iface) && !types.Implements(types.NewPointer(tn.Type()), iface) {
			continue
		}
		reportExtraInstances(tn, pass)
	}
}

func reportExtraInstances(tn *types.TypeName, pass *analysis.Pass) {
	scope := pass.Pkg.Scope()
	var first *types.Var
	for _, name := range scope.Names() {
		v, ok := scope.Lookup(name).(*types.Var)
		if !ok {
			continue
		}
		t := v.Type()
		if p, ok := t.(*types.Pointer); ok {
			t = p.Elem()
		}
		if !types.Identical(t, tn.Type()) {
			continue
		}
		if first == nil {
			first = v
			continue
		}
		pass.Reportf(v.Pos(), "ambiguous singleton %s: canonical instance already declared at %s",
			tn.Name(), pass.Fset.Position(first.Pos()))
	}
}
