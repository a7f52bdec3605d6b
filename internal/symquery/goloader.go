package symquery

import (
	"fmt"
	"go/types"
	"sort"

	"golang.org/x/tools/go/packages"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// GoFacade implements Facade on top of go/types symbols loaded with
// golang.org/x/tools/go/packages. Lookups are pure: all mutable state is
// filled at load time, except the named-type cache, which only memoizes
// instantiations already reachable from loaded signatures.
type GoFacade struct {
	pkgs   map[string]*types.Package
	ifaces []*types.Named // exported interfaces across loaded packages, sorted by key
	named  map[string]*types.Named
}

// LoadPackages loads the specified packages and returns a facade over them.
// Patterns are standard Go package patterns (e.g., "./examples/...").
func LoadPackages(patterns ...string) (*GoFacade, error) {
	cfg := &packages.Config{
		Mode: LoadMode,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %v", errs)
	}

	f := &GoFacade{
		pkgs:  make(map[string]*types.Package),
		named: make(map[string]*types.Named),
	}

	for _, pkg := range pkgs {
		f.pkgs[pkg.PkgPath] = pkg.Types
	}

	f.indexInterfaces()

	return f, nil
}

// indexInterfaces records every exported non-empty interface declared in the
// loaded packages. They are the contract candidates checked against each
// looked-up type.
func (f *GoFacade) indexInterfaces() {
	for _, pkg := range f.pkgs {
		scope := pkg.Scope()
		for _, name := range scope.Names() {
			tn, ok := scope.Lookup(name).(*types.TypeName)
			if !ok || !tn.Exported() {
				continue
			}

			named, ok := tn.Type().(*types.Named)
			if !ok {
				continue
			}

			iface, ok := named.Underlying().(*types.Interface)
			if !ok || iface.Empty() {
				continue
			}

			f.ifaces = append(f.ifaces, named)
		}
	}

	sort.Slice(f.ifaces, func(i, j int) bool {
		return f.identityOf(f.ifaces[i]).Key() < f.identityOf(f.ifaces[j]).Key()
	})
}

// Lookup resolves an identity to its declared symbol.
func (f *GoFacade) Lookup(id TypeIdentity) (*TypeSymbol, error) {
	if named, ok := f.named[id.Key()]; ok {
		return f.buildSymbol(named), nil
	}

	pkg, ok := f.pkgs[id.PkgPath]
	if !ok {
		return nil, fmt.Errorf("package %q not loaded", id.PkgPath)
	}

	obj := pkg.Scope().Lookup(id.Name)
	if obj == nil {
		return nil, fmt.Errorf("type %s not found", id.Key())
	}

	tn, ok := obj.(*types.TypeName)
	if !ok {
		return nil, fmt.Errorf("%s is not a type", id.Key())
	}

	named, ok := types.Unalias(tn.Type()).(*types.Named)
	if !ok {
		if _, isBasic := tn.Type().Underlying().(*types.Basic); isBasic {
			return &TypeSymbol{Identity: id, Kind: SymbolBasic}, nil
		}

		return &TypeSymbol{Identity: id, Kind: SymbolUnsupported}, nil
	}

	if len(id.TypeArgs) > 0 && named.TypeArgs().Len() == 0 {
		// Instantiations are only resolvable once seen in a loaded signature.
		return nil, fmt.Errorf("instantiation %s not reachable from loaded packages", id.Key())
	}

	return f.buildSymbol(named), nil
}

// PackageTypes returns the exported, non-generic named types of a loaded package.
func (f *GoFacade) PackageTypes(pkgPath string) ([]TypeIdentity, error) {
	pkg, ok := f.pkgs[pkgPath]
	if !ok {
		return nil, fmt.Errorf("package %q not loaded", pkgPath)
	}

	var out []TypeIdentity

	scope := pkg.Scope()
	for _, name := range scope.Names() {
		tn, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || !tn.Exported() {
			continue
		}

		named, ok := types.Unalias(tn.Type()).(*types.Named)
		if !ok || named.TypeParams().Len() > 0 {
			continue
		}

		out = append(out, f.identityOf(named))
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })

	return out, nil
}

// buildSymbol converts one named go/types type to a TypeSymbol.
func (f *GoFacade) buildSymbol(named *types.Named) *TypeSymbol {
	sym := &TypeSymbol{
		Identity: f.identityOf(named),
	}

	if named.TypeParams().Len() > 0 && named.TypeArgs().Len() == 0 {
		// Uninstantiated generic: there is no single shape to bridge.
		sym.Kind = SymbolUnsupported
		return sym
	}

	switch under := named.Underlying().(type) {
	case *types.Interface:
		sym.Kind = SymbolInterface
		f.fillInterface(sym, under)

	case *types.Struct:
		sym.Kind = SymbolStruct
		f.fillStruct(sym, named, under)

	case *types.Basic:
		sym.Kind = SymbolBasic

	case *types.Chan:
		sym.Kind = SymbolChan

	case *types.Signature:
		sym.Kind = SymbolFunc

	default:
		sym.Kind = SymbolUnsupported
	}

	return sym
}

func (f *GoFacade) fillInterface(sym *TypeSymbol, iface *types.Interface) {
	for i := range iface.NumExplicitMethods() {
		m := iface.ExplicitMethod(i)
		if !m.Exported() {
			continue
		}

		sym.Members = append(sym.Members, f.methodDescriptor(m, nil))
	}

	for i := range iface.NumEmbeddeds() {
		embedded, ok := types.Unalias(iface.EmbeddedType(i)).(*types.Named)
		if !ok {
			continue
		}

		id := f.identityOf(embedded)
		sym.Contracts = append(sym.Contracts, id)
	}
}

func (f *GoFacade) fillStruct(sym *TypeSymbol, named *types.Named, st *types.Struct) {
	declared := make(map[string]bool)

	for i := range named.NumMethods() {
		m := named.Method(i)
		if !m.Exported() {
			continue
		}

		declared[m.Name()] = true
		sym.Members = append(sym.Members, f.methodDescriptor(m, nil))
	}

	for i := range st.NumFields() {
		field := st.Field(i)

		if field.Embedded() {
			f.fillEmbedded(sym, field, declared)
			continue
		}

		if !field.Exported() {
			continue
		}

		sym.Members = append(sym.Members, MemberDescriptor{
			Name:    field.Name(),
			Kind:    MemberProperty,
			Results: []TypeRef{f.refOf(field.Type())},
		})
	}

	for _, iface := range f.ifaces {
		id := f.identityOf(iface)
		if id.Key() == sym.Identity.Key() {
			continue
		}

		if types.Implements(types.NewPointer(named), iface.Underlying().(*types.Interface)) {
			sym.Contracts = append(sym.Contracts, id)
		}
	}
}

// fillEmbedded handles an embedded field: an embedded struct becomes the base
// type, an embedded interface contributes contract-scoped members (they are
// invocable on the original only because the embedded value supplies them).
func (f *GoFacade) fillEmbedded(sym *TypeSymbol, field *types.Var, declared map[string]bool) {
	t := types.Unalias(field.Type())
	if p, ok := t.(*types.Pointer); ok {
		t = types.Unalias(p.Elem())
	}

	named, ok := t.(*types.Named)
	if !ok {
		return
	}

	switch under := named.Underlying().(type) {
	case *types.Struct:
		if sym.Base == nil {
			id := f.identityOf(named)
			sym.Base = &id
		}

	case *types.Interface:
		contract := f.identityOf(named)
		// Record the contract itself: the Implements scan below only covers
		// interfaces declared in loaded packages.
		sym.Contracts = append(sym.Contracts, contract)

		for i := range under.NumMethods() {
			m := under.Method(i)
			if !m.Exported() || declared[m.Name()] {
				continue
			}

			sym.Members = append(sym.Members, f.methodDescriptor(m, &contract))
		}
	}
}

func (f *GoFacade) methodDescriptor(m *types.Func, scope *TypeIdentity) MemberDescriptor {
	sig := m.Type().(*types.Signature)

	desc := MemberDescriptor{
		Name:             m.Name(),
		Kind:             MemberMethod,
		DeclaredContract: scope,
		Variadic:         sig.Variadic(),
	}

	params := sig.Params()
	for i := range params.Len() {
		p := params.At(i)
		desc.Params = append(desc.Params, Param{
			Name: p.Name(),
			Type: f.refOf(p.Type()),
		})
	}

	results := sig.Results()
	for i := range results.Len() {
		desc.Results = append(desc.Results, f.refOf(results.At(i).Type()))
	}

	return desc
}

// refOf converts a signature type occurrence to a TypeRef, unwrapping at most
// one slice and one pointer level. Anything deeper or boundary-hostile is
// flagged unsupported and left for the analyzer to diagnose.
func (f *GoFacade) refOf(t types.Type) TypeRef {
	var ref TypeRef

	t = types.Unalias(t)

	if sl, ok := t.(*types.Slice); ok {
		ref.Slice = true
		t = types.Unalias(sl.Elem())
	}

	if p, ok := t.(*types.Pointer); ok {
		ref.Pointer = true
		t = types.Unalias(p.Elem())
	}

	switch tt := t.(type) {
	case *types.Named:
		ref.Identity = f.identityOf(tt)

	case *types.Basic:
		if tt.Kind() == types.UnsafePointer {
			ref.Unsupported = true
			ref.Identity = TypeIdentity{Name: "unsafe.Pointer"}
		} else {
			ref.Identity = TypeIdentity{Name: tt.Name()}
		}

	case *types.Interface:
		if tt.Empty() {
			ref.Identity = TypeIdentity{Name: "any"}
		} else {
			ref.Unsupported = true
			ref.Identity = TypeIdentity{Name: t.String()}
		}

	default:
		// Chans, funcs, maps, nested composites: not forwardable.
		ref.Unsupported = true
		ref.Identity = TypeIdentity{Name: t.String()}
	}

	return ref
}

// identityOf computes the identity of a named type and memoizes the mapping
// so instantiated generics found in signatures stay resolvable.
func (f *GoFacade) identityOf(named *types.Named) TypeIdentity {
	obj := named.Obj()

	id := TypeIdentity{Name: obj.Name()}
	if obj.Pkg() != nil {
		id.PkgPath = obj.Pkg().Path()
	}

	args := named.TypeArgs()
	for i := range args.Len() {
		id.TypeArgs = append(id.TypeArgs, f.refOf(args.At(i)).Identity)
	}

	f.named[id.Key()] = named

	return id
}
