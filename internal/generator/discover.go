package generator

import (
	"go/types"
	"sort"
)

// Discover locates the named family among srcs and walks its implementers
// into a variant set.
//
// The walk keeps a frontier of abstract layers, starting with the family
// itself. Every scanned top-level type implementing the frontier entry either
// joins the variant set (concrete types) or is expanded in place (interfaces,
// recorded as intermediates and never emitted). Each type is visited at most
// once, so diamond-shaped hierarchies cannot double-count a variant. A family
// nobody implements yields an empty, still valid variant set.
func Discover(srcs []Source, familyName string) (*Family, error) {
	famObj, famSrc, err := lookupFamily(srcs, familyName)
	if err != nil {
		return nil, err
	}
	iface, ok := famObj.Type().Underlying().(*types.Interface)
	if !ok {
		return nil, &NotClosedFamilyError{Name: familyName, Reason: "not an interface type"}
	}
	if !isSealed(iface) {
		return nil, &NotClosedFamilyError{
			Name:   familyName,
			Reason: "interface has no unexported methods, so the implementer set is open",
		}
	}

	fam := &Family{
		Name:       familyName,
		Package:    famSrc.Types.Name(),
		PkgPath:    famSrc.Types.Path(),
		SourceFile: famSrc.Fset.Position(famObj.Pos()).Filename,
		TagField:   DefaultTagField,
		Ops:        OpsCodec,
	}

	seen := map[*types.TypeName]bool{famObj: true}
	frontier := []*types.Interface{iface}

	for len(frontier) > 0 {
		cur := frontier[0]
		frontier = frontier[1:]

		for _, src := range srcs {
			scope := src.Types.Scope()
			for _, name := range scope.Names() {
				obj, ok := scope.Lookup(name).(*types.TypeName)
				if !ok || obj.IsAlias() || seen[obj] {
					continue
				}
				T := obj.Type()

				// types.Implements is unspecified for uninstantiated generic
				// types, and a generic type could not be a variant anyway:
				// its instantiation set is open.
				if named, ok := T.(*types.Named); ok && named.TypeParams().Len() > 0 {
					if hasMarkerMethod(named, cur) {
						return nil, &UnsupportedVariantError{
							Family:   familyName,
							TypeName: obj.Name(),
							Reason:   "generic types have no closed instantiation set",
						}
					}
					continue
				}

				if _, ok := T.Underlying().(*types.Interface); ok {
					if !types.Implements(T, cur) {
						continue
					}
					// An abstract layer: expand it, never emit it.
					seen[obj] = true
					fam.Intermediates = append(fam.Intermediates, obj.Name())
					frontier = append(frontier, T.Underlying().(*types.Interface))
					continue
				}

				pointer := false
				switch {
				case types.Implements(T, cur):
				case types.Implements(types.NewPointer(T), cur):
					pointer = true
				default:
					continue
				}
				seen[obj] = true

				if src.Types != famSrc.Types {
					return nil, &UnsupportedVariantError{
						Family:   familyName,
						TypeName: obj.Name(),
						Reason:   "declared outside the family's package " + fam.PkgPath,
					}
				}
				v, err := classify(famSrc, familyName, obj, pointer)
				if err != nil {
					return nil, err
				}
				fam.Variants = append(fam.Variants, v)
			}
		}
	}

	sort.Slice(fam.Variants, func(i, j int) bool {
		return fam.Variants[i].WireName < fam.Variants[j].WireName
	})
	sort.Strings(fam.Intermediates)

	names := make(map[string]bool, len(fam.Variants))
	for _, v := range fam.Variants {
		if names[v.WireName] {
			return nil, &DuplicateVariantNameError{Family: familyName, Name: v.WireName}
		}
		names[v.WireName] = true
	}

	return fam, nil
}

// lookupFamily finds the named type declaration across the scanned packages.
func lookupFamily(srcs []Source, name string) (*types.TypeName, Source, error) {
	for _, src := range srcs {
		obj := src.Types.Scope().Lookup(name)
		if obj == nil {
			continue
		}
		tn, ok := obj.(*types.TypeName)
		if !ok {
			return nil, Source{}, &NotClosedFamilyError{Name: name, Reason: "not a type declaration"}
		}
		return tn, src, nil
	}
	return nil, Source{}, &NotClosedFamilyError{Name: name, Reason: "no such type in the scanned packages"}
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

// hasMarkerMethod reports whether named declares one of iface's unexported
// methods itself, marking an attempt to join the family.
func hasMarkerMethod(named *types.Named, iface *types.Interface) bool {
	for i := 0; i < iface.NumMethods(); i++ {
		im := iface.Method(i)
		if im.Exported() {
			continue
		}
		for j := 0; j < named.NumMethods(); j++ {
			m := named.Method(j)
			if m.Name() == im.Name() && m.Pkg() == im.Pkg() {
				return true
			}
		}
	}
	return false
}
