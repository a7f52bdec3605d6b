package proxy

import (
	"bridge-generator/internal/symquery"
)

// Ref is a rewritten type occurrence: the original identity plus the bridge
// name it resolves to. Bridge is empty when the identity is natively passable
// and crosses the boundary untouched.
type Ref struct {
	Original symquery.TypeIdentity
	Bridge   string
	Pointer  bool
	Slice    bool
}

// Bridged returns true if the reference resolves to a generated bridge.
func (r Ref) Bridged() bool {
	return r.Bridge != ""
}

// NamedRef is a named parameter with its rewritten type.
type NamedRef struct {
	Name string
	Ref  Ref
}

// ContractRef is a contract entry on a proxy: the original contract identity
// and the bridge generated for it.
type ContractRef struct {
	Original symquery.TypeIdentity
	Bridge   string
}

// Forwarding is the directive for one proxy member: when invoked, delegate to
// the same member on the hidden wrapped instance, unwrapping bridge-typed
// arguments on the way in and wrapping original-typed results on the way out.
type Forwarding struct {
	Name string
	Kind symquery.MemberKind
	// Params are the member's parameters with rewritten types.
	Params []NamedRef
	// Results are the member's results with rewritten types.
	Results []Ref
	// Scope is set when the member remains invocable only through the named
	// contract, reproducing the original's explicit contract scoping.
	Scope    *ContractRef
	Static   bool
	Variadic bool
}

// ProxyModel is the renderer-ready model of one generated bridge: the final
// artifact handed to the emitter. Derived, read-only.
type ProxyModel struct {
	// Original is the identity of the type being bridged.
	Original symquery.TypeIdentity
	// Kind of the original symbol (struct or interface).
	Kind symquery.SymbolKind
	// Bridge is the assigned, globally-unique bridge identifier.
	Bridge string
	// Artifact is the stable file/unit stem derived from the bridge name.
	// Unique within a pass because bridge names are.
	Artifact string
	// Factory is the constructor name for the bridge.
	Factory string
	// Base is the rewritten base type, if the original had a bridgeable one.
	Base *Ref
	// Members are the forwarding directives.
	Members []Forwarding
	// Contracts is the rewritten contract list.
	Contracts []ContractRef
}
