package symquery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeIdentityKey(t *testing.T) {
	plain := TypeIdentity{PkgPath: "app/store", Name: "Order"}
	assert.Equal(t, "app/store.Order", plain.Key())

	builtin := TypeIdentity{Name: "int"}
	assert.Equal(t, "int", builtin.Key())

	generic := TypeIdentity{
		PkgPath: "app/store",
		Name:    "Pair",
		TypeArgs: []TypeIdentity{
			{Name: "int"},
			{PkgPath: "app/store", Name: "Order"},
		},
	}
	assert.Equal(t, "app/store.Pair[int,app/store.Order]", generic.Key())
}

func TestTypeIdentityKeyEquality(t *testing.T) {
	// Equal keys iff same original type, however the graph reached it.
	a := TypeIdentity{PkgPath: "p", Name: "T", TypeArgs: []TypeIdentity{{Name: "int"}}}
	b := TypeIdentity{PkgPath: "p", Name: "T", TypeArgs: []TypeIdentity{{Name: "int"}}}
	c := TypeIdentity{PkgPath: "p", Name: "T", TypeArgs: []TypeIdentity{{Name: "string"}}}

	assert.Equal(t, a.Key(), b.Key())
	assert.NotEqual(t, a.Key(), c.Key())
}

func TestTypeRefString(t *testing.T) {
	ref := TypeRef{Identity: TypeIdentity{PkgPath: "p", Name: "T"}, Slice: true, Pointer: true}
	assert.Equal(t, "[]*p.T", ref.String())
}

func TestStaticFacade(t *testing.T) {
	facade := NewStatic()

	id := TypeIdentity{PkgPath: "app", Name: "Svc"}
	facade.Add(&TypeSymbol{Identity: id, Kind: SymbolStruct})
	facade.Add(&TypeSymbol{Identity: TypeIdentity{PkgPath: "app", Name: "Dep"}, Kind: SymbolStruct})
	facade.Add(&TypeSymbol{Identity: TypeIdentity{PkgPath: "other", Name: "X"}, Kind: SymbolStruct})

	sym, err := facade.Lookup(id)
	require.NoError(t, err)
	assert.Equal(t, SymbolStruct, sym.Kind)

	_, err = facade.Lookup(TypeIdentity{PkgPath: "app", Name: "Missing"})
	require.Error(t, err)

	ids, err := facade.PackageTypes("app")
	require.NoError(t, err)
	require.Len(t, ids, 2)
	// Sorted by key for deterministic root expansion.
	assert.Equal(t, "app.Dep", ids[0].Key())
	assert.Equal(t, "app.Svc", ids[1].Key())
}
