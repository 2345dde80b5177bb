package generator

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/packages"
)

// Source is one type-checked package the discoverer searches.
type Source struct {
	Types  *types.Package
	Fset   *token.FileSet
	Syntax []*ast.File
}

const loadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedCompiledGoFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo

// Load type-checks the packages matched by patterns, rooted at dir, and
// returns them as discovery sources. The first package error aborts the run;
// codecs derived from a half-checked tree would be unreliable.
func Load(dir string, patterns ...string) ([]Source, error) {
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}
	cfg := &packages.Config{
		Mode: loadMode,
		Dir:  dir,
	}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	srcs := make([]Source, 0, len(pkgs))
	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 {
			return nil, fmt.Errorf("package %s: %v", pkg.PkgPath, pkg.Errors[0])
		}
		srcs = append(srcs, Source{
			Types:  pkg.Types,
			Fset:   pkg.Fset,
			Syntax: pkg.Syntax,
		})
	}
	return srcs, nil
}
