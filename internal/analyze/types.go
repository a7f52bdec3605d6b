package analyze

import (
	"bridge-generator/internal/symquery"
)

// ContractDescriptor is a contract a type satisfies: its identity plus the
// full member set it requires, with members inherited from base contracts
// already flattened in.
type ContractDescriptor struct {
	Identity symquery.TypeIdentity
	Members  []symquery.MemberDescriptor
}

// TypeModel is the full structural model of one original type. Created once
// per distinct identity per generation pass and never mutated afterwards;
// re-discovery of the same identity is a no-op in the collector.
type TypeModel struct {
	Identity symquery.TypeIdentity
	Kind     symquery.SymbolKind
	// Members the proxy must forward: declared members, members promoted from
	// the base chain, and synthesized overrides for contract-default members.
	Members []symquery.MemberDescriptor
	// Base is the bridgeable base type, if any.
	Base *symquery.TypeIdentity
	// Contracts is the flattened, deduplicated contract set.
	Contracts []ContractDescriptor
	// References lists every distinct identity appearing in member
	// signatures, contracts, the base type, and generic arguments. It seeds
	// further graph traversal.
	References []symquery.TypeIdentity
}

// Contract returns the descriptor for the given contract key, or nil.
func (m *TypeModel) Contract(key string) *ContractDescriptor {
	for i := range m.Contracts {
		if m.Contracts[i].Identity.Key() == key {
			return &m.Contracts[i]
		}
	}

	return nil
}

// Member returns the first member with the given name, or nil.
func (m *TypeModel) Member(name string) *symquery.MemberDescriptor {
	for i := range m.Members {
		if m.Members[i].Name == name {
			return &m.Members[i]
		}
	}

	return nil
}
