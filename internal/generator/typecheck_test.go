package generator

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"testing"
)

// typeCheck parses and type-checks src as a single-file package and wraps it
// as a discovery source. Fixture sources must not import anything.
func typeCheck(t *testing.T, src string) Source {
	t.Helper()
	return typeCheckPkg(t, "example.com/fixture", src, nil)
}

// typeCheckPkg type-checks src under the given import path, resolving imports
// against deps.
func typeCheckPkg(t *testing.T, path, src string, deps map[string]*types.Package) Source {
	t.Helper()

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "fixture.go", src, parser.ParseComments)
	if err != nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}

	conf := types.Config{Importer: mapImporter(deps)}
	pkg, err := conf.Check(path, fset, []*ast.File{file}, nil)
	if err != nil {
		t.Fatalf("failed to type-check fixture: %v", err)
	}
	return Source{Types: pkg, Fset: fset, Syntax: []*ast.File{file}}
}

type mapImporter map[string]*types.Package

func (m mapImporter) Import(path string) (*types.Package, error) {
	if pkg, ok := m[path]; ok {
		return pkg, nil
	}
	return nil, fmt.Errorf("fixture does not provide package %q", path)
}
