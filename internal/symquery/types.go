package symquery

import (
	"strings"

	"bridge-generator/internal/common"
)

// TypeIdentity uniquely identifies a type by its package path, name, and
// resolved generic arguments. It is the sole deduplication key for one
// generation pass: two identities with equal keys denote the same original
// type no matter how it was reached.
type TypeIdentity struct {
	PkgPath  string         // e.g., "bridge-generator/examples/calc"
	Name     string         // e.g., "Sci"
	TypeArgs []TypeIdentity // resolved generic arguments, if any
}

// Key returns the canonical identity key, e.g. "pkg/path.Name[int,pkg.T]".
func (t TypeIdentity) Key() string {
	var sb strings.Builder
	if t.PkgPath != "" {
		sb.WriteString(t.PkgPath)
		sb.WriteString(".")
	}

	sb.WriteString(t.Name)

	if len(t.TypeArgs) > 0 {
		sb.WriteString("[")
		for i, arg := range t.TypeArgs {
			if i > 0 {
				sb.WriteString(",")
			}

			sb.WriteString(arg.Key())
		}
		sb.WriteString("]")
	}

	return sb.String()
}

// String returns a human-readable representation of the identity.
func (t TypeIdentity) String() string {
	return t.Key()
}

// IsZero returns true if the identity is unset.
func (t TypeIdentity) IsZero() bool {
	return t.Name == "" && t.PkgPath == ""
}

// TypeRef is an occurrence of a type in a member signature: the referenced
// identity plus the shape it is used with. Shapes deeper than one pointer or
// slice level are flagged unsupported by the facade.
type TypeRef struct {
	Identity    TypeIdentity
	Pointer     bool
	Slice       bool
	Unsupported bool
}

// String returns the shape-qualified reference, e.g. "[]*pkg.Widget".
func (r TypeRef) String() string {
	var sb strings.Builder
	if r.Slice {
		sb.WriteString("[]")
	}

	if r.Pointer {
		sb.WriteString("*")
	}

	sb.WriteString(r.Identity.Key())

	return sb.String()
}

// MemberKind represents the kind of a type member.
type MemberKind int

const (
	MemberMethod MemberKind = iota
	MemberProperty
	MemberEvent
)

// String returns a human-readable member kind name.
func (k MemberKind) String() string {
	switch k {
	case MemberMethod:
		return "method"
	case MemberProperty:
		return "property"
	case MemberEvent:
		return "event"
	default:
		return common.UnknownStr
	}
}

// Param is a single parameter of a method member.
type Param struct {
	Name string
	Type TypeRef
}

// MemberDescriptor describes one accessible operation or property on a type.
// Immutable once produced by the facade.
type MemberDescriptor struct {
	Name string
	Kind MemberKind
	// Params is the parameter list (methods only).
	Params []Param
	// Results is the result list; for properties, the single property type.
	Results []TypeRef
	// DeclaredContract is set when the member is an explicit, contract-scoped
	// implementation: it is invocable only through that contract, never as a
	// plain member of the type.
	DeclaredContract *TypeIdentity
	// Static marks package-level operations. The Go facade never sets it;
	// hosts with static members may.
	Static   bool
	Variadic bool
}

// SymbolKind classifies a looked-up type symbol.
type SymbolKind int

const (
	SymbolUnknown SymbolKind = iota
	SymbolBasic
	SymbolStruct
	SymbolInterface
	SymbolChan
	SymbolFunc
	SymbolUnsupported
)

// String returns a human-readable symbol kind name.
func (k SymbolKind) String() string {
	switch k {
	case SymbolBasic:
		return "basic"
	case SymbolStruct:
		return "struct"
	case SymbolInterface:
		return "interface"
	case SymbolChan:
		return "chan"
	case SymbolFunc:
		return "func"
	case SymbolUnsupported:
		return "unsupported"
	default:
		return common.UnknownStr
	}
}

// TypeSymbol is the raw, unflattened view of one type as the host declares
// it: directly declared members, the base type, and directly satisfied
// contracts. Flattening inheritance and contract sets is the analyzer's job.
type TypeSymbol struct {
	Identity TypeIdentity
	Kind     SymbolKind
	// Members declared on the type itself (not inherited).
	Members []MemberDescriptor
	// Base is the bridgeable base type, if any.
	Base *TypeIdentity
	// Contracts directly satisfied by this type (unflattened).
	Contracts []TypeIdentity
}
