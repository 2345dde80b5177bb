package generator

import "go/types"

// classify decides whether a concrete implementer is a record or a singleton.
//
// A singleton is a zero-field struct whose package declares exactly one
// top-level var of its type (or pointer to it); that var is the canonical
// instance and its name becomes the wire name. A zero-field struct without
// such a var stays a record: decoding it constructs a fresh value. Two or
// more candidate vars leave no canonical instance to resolve to, which is an
// error rather than a guess.
func classify(src Source, family string, obj *types.TypeName, pointer bool) (Variant, error) {
	st, ok := obj.Type().Underlying().(*types.Struct)
	if !ok {
		return Variant{}, &UnsupportedVariantError{
			Family:   family,
			TypeName: obj.Name(),
			Reason:   "only struct variants can carry a field codec",
		}
	}

	v := Variant{
		WireName: obj.Name(),
		TypeName: obj.Name(),
		Kind:     KindRecord,
		Pointer:  pointer,
	}
	if st.NumFields() > 0 {
		return v, nil
	}

	insts := instanceVars(src.Types, obj.Type())
	switch len(insts) {
	case 0:
		return v, nil
	case 1:
		v.Kind = KindSingleton
		v.Instance = insts[0].Name()
		v.WireName = insts[0].Name()
		_, v.InstancePtr = insts[0].Type().(*types.Pointer)
		return v, nil
	default:
		names := make([]string, len(insts))
		for i, inst := range insts {
			names[i] = inst.Name()
		}
		return Variant{}, &AmbiguousSingletonError{Family: family, TypeName: obj.Name(), Vars: names}
	}
}

// instanceVars returns the package-level vars declared with exactly the given
// type or a pointer to it, in scope (name) order.
func instanceVars(pkg *types.Package, typ types.Type) []*types.Var {
	var out []*types.Var
	scope := pkg.Scope()
	for _, name := range scope.Names() {
		vr, ok := scope.Lookup(name).(*types.Var)
		if !ok {
			continue
		}
		t := vr.Type()
		if ptr, ok := t.(*types.Pointer); ok {
			t = ptr.Elem()
		}
		if types.Identical(t, typ) {
			out = append(out, vr)
		}
	}
	return out
}
