package symquery

import (
	"fmt"
	"sort"
)

// Facade is a read-only adapter over the host's type/symbol model. Lookups
// must be side-effect free; the engine treats the facade as a pure function
// from identity to symbol.
type Facade interface {
	Lookup(id TypeIdentity) (*TypeSymbol, error)
}

// PackageLister is an optional facade capability used to expand
// include-nested roots to every exported type of the root's package.
type PackageLister interface {
	PackageTypes(pkgPath string) ([]TypeIdentity, error)
}

// Static is an in-memory facade. Tests and model-replay consumers register
// symbols by hand; lookups never touch the Go toolchain.
type Static struct {
	symbols map[string]*TypeSymbol
}

// NewStatic creates an empty in-memory facade.
func NewStatic() *Static {
	return &Static{symbols: make(map[string]*TypeSymbol)}
}

// Add registers a symbol, replacing any previous symbol with the same key.
func (s *Static) Add(sym *TypeSymbol) *Static {
	s.symbols[sym.Identity.Key()] = sym
	return s
}

// Lookup returns the registered symbol for id.
func (s *Static) Lookup(id TypeIdentity) (*TypeSymbol, error) {
	sym, ok := s.symbols[id.Key()]
	if !ok {
		return nil, fmt.Errorf("symbol %s not found", id.Key())
	}

	return sym, nil
}

// PackageTypes returns the identities registered under pkgPath, sorted by key.
func (s *Static) PackageTypes(pkgPath string) ([]TypeIdentity, error) {
	var out []TypeIdentity

	for _, sym := range s.symbols {
		if sym.Identity.PkgPath == pkgPath {
			out = append(out, sym.Identity)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })

	return out, nil
}
