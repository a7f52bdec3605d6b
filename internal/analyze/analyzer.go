package analyze

import (
	"fmt"
	"sort"

	"bridge-generator/internal/diagnostic"
	"bridge-generator/internal/symquery"
)

// Analyzer builds structural type models from facade symbols. It holds no
// mutable state between calls: Analyze is deterministic and side-effect free.
type Analyzer struct {
	facade symquery.Facade
}

// NewAnalyzer creates a new Analyzer over the given facade.
func NewAnalyzer(facade symquery.Facade) *Analyzer {
	return &Analyzer{facade: facade}
}

// Analyze produces the structural model for one type.
//
// A nil model with error diagnostics means the type is unbridgeable and
// dependents must degrade. A nil model without error diagnostics means the
// type is natively passable and needs no bridge at all.
func (a *Analyzer) Analyze(id symquery.TypeIdentity) (*TypeModel, diagnostic.Diagnostics) {
	var diags diagnostic.Diagnostics

	key := id.Key()

	if Forbidden(id) {
		diags.AddError(diagnostic.CodeUnbridgeableType,
			"type cannot hold a boundary capability", key, "")

		return nil, diags
	}

	sym, err := a.facade.Lookup(id)
	if err != nil {
		diags.AddError(diagnostic.CodeUnbridgeableType,
			fmt.Sprintf("cannot resolve symbol: %v", err), key, "")

		return nil, diags
	}

	switch sym.Kind {
	case symquery.SymbolBasic:
		// Named basics (type Celsius float64) serialize by value.
		return nil, diags

	case symquery.SymbolStruct:
		return a.analyzeStruct(sym, &diags), diags

	case symquery.SymbolInterface:
		return a.analyzeInterface(sym, &diags), diags

	default:
		diags.AddError(diagnostic.CodeUnbridgeableType,
			fmt.Sprintf("%s types cannot cross the boundary", sym.Kind), key, "")

		return nil, diags
	}
}

// analyzeInterface models a contract type. Its proxy must forward the full
// flattened required member set, and its contract list carries the contract
// itself plus every transitive base contract.
func (a *Analyzer) analyzeInterface(sym *symquery.TypeSymbol, diags *diagnostic.Diagnostics) *TypeModel {
	model := &TypeModel{
		Identity: sym.Identity,
		Kind:     sym.Kind,
	}

	self, err := a.contractDescriptor(sym.Identity, make(map[string]bool))
	if err != nil {
		diags.AddError(diagnostic.CodeUnbridgeableType, err.Error(), sym.Identity.Key(), "")
		return nil
	}

	model.Members = self.Members
	model.Contracts = append(model.Contracts, *self)
	a.flattenContracts(model, sym.Contracts, diags)

	a.filterMembers(model, diags)
	a.finalize(model)

	return model
}

// analyzeStruct models a concrete type: declared members, members promoted
// along the embedded base chain, the flattened contract set, and synthesized
// forwarding overrides for contract members the type never declares.
func (a *Analyzer) analyzeStruct(sym *symquery.TypeSymbol, diags *diagnostic.Diagnostics) *TypeModel {
	model := &TypeModel{
		Identity: sym.Identity,
		Kind:     sym.Kind,
		Members:  append([]symquery.MemberDescriptor(nil), sym.Members...),
	}

	direct := append([]symquery.TypeIdentity(nil), sym.Contracts...)

	// Walk the base chain upward. There is no universal root to stop before:
	// the chain simply ends where no bridgeable base remains.
	seen := map[string]bool{sym.Identity.Key(): true}
	for base := sym.Base; base != nil && !seen[base.Key()]; {
		seen[base.Key()] = true

		baseSym, err := a.facade.Lookup(*base)
		if err != nil {
			diags.AddWarning(diagnostic.CodeUnbridgeableReference,
				fmt.Sprintf("base type unresolvable: %v", err), sym.Identity.Key(), "")

			break
		}

		if baseSym.Kind != symquery.SymbolStruct {
			break
		}

		if model.Base == nil {
			model.Base = base
		}

		for _, m := range baseSym.Members {
			if !a.hasMember(model.Members, m.Name) {
				model.Members = append(model.Members, m)
			}
		}

		direct = append(direct, baseSym.Contracts...)
		base = baseSym.Base
	}

	a.flattenContracts(model, direct, diags)
	a.synthesizeContractMembers(model)
	a.filterMembers(model, diags)
	a.finalize(model)

	return model
}

// flattenContracts expands the direct contract list transitively and appends
// deduplicated descriptors to the model.
func (a *Analyzer) flattenContracts(model *TypeModel, direct []symquery.TypeIdentity, diags *diagnostic.Diagnostics) {
	seen := make(map[string]bool)
	for _, c := range model.Contracts {
		seen[c.Identity.Key()] = true
	}

	queue := append([]symquery.TypeIdentity(nil), direct...)
	for len(queue) > 0 {
		cid := queue[0]
		queue = queue[1:]

		if seen[cid.Key()] {
			continue
		}

		seen[cid.Key()] = true

		desc, err := a.contractDescriptor(cid, make(map[string]bool))
		if err != nil {
			diags.AddWarning(diagnostic.CodeUnbridgeableReference,
				fmt.Sprintf("contract unresolvable: %v", err), model.Identity.Key(), "")

			continue
		}

		model.Contracts = append(model.Contracts, *desc)

		csym, err := a.facade.Lookup(cid)
		if err == nil {
			queue = append(queue, csym.Contracts...)
		}
	}
}

// contractDescriptor resolves a contract identity to its flattened required
// member set, following embedded base contracts.
func (a *Analyzer) contractDescriptor(id symquery.TypeIdentity, visited map[string]bool) (*ContractDescriptor, error) {
	if visited[id.Key()] {
		return &ContractDescriptor{Identity: id}, nil
	}

	visited[id.Key()] = true

	sym, err := a.facade.Lookup(id)
	if err != nil {
		return nil, err
	}

	if sym.Kind != symquery.SymbolInterface {
		return nil, fmt.Errorf("%s is not a contract", id.Key())
	}

	desc := &ContractDescriptor{
		Identity: id,
		Members:  append([]symquery.MemberDescriptor(nil), sym.Members...),
	}

	for _, base := range sym.Contracts {
		baseDesc, err := a.contractDescriptor(base, visited)
		if err != nil {
			return nil, err
		}

		for _, m := range baseDesc.Members {
			if !a.hasMember(desc.Members, m.Name) {
				desc.Members = append(desc.Members, m)
			}
		}
	}

	return desc, nil
}

// synthesizeContractMembers adds a forwarding override for every contract
// member the type does not implement itself. The proxy shares no inheritance
// relationship with the original, so it can never rely on contract-provided
// defaults: every required member gets an explicit forwarding directive,
// scoped to the contract that demands it.
func (a *Analyzer) synthesizeContractMembers(model *TypeModel) {
	for _, c := range model.Contracts {
		for _, required := range c.Members {
			if a.hasMember(model.Members, required.Name) {
				continue
			}

			synthesized := required
			contract := c.Identity
			synthesized.DeclaredContract = &contract
			model.Members = append(model.Members, synthesized)
		}
	}
}

// filterMembers drops members the engine cannot forward, each with a
// diagnostic at the offending member, leaving the rest of the type intact.
func (a *Analyzer) filterMembers(model *TypeModel, diags *diagnostic.Diagnostics) {
	kept := model.Members[:0]

	for _, m := range model.Members {
		if reason := unforwardable(m); reason != "" {
			diags.AddWarning(diagnostic.CodeUnbridgeableMember, reason,
				model.Identity.Key(), m.Name)

			continue
		}

		kept = append(kept, m)
	}

	model.Members = kept
}

// unforwardable returns a reason when a member uses a construct that cannot
// cross the boundary, or "" when the member is forwardable.
func unforwardable(m symquery.MemberDescriptor) string {
	for _, p := range m.Params {
		if p.Type.Unsupported {
			return fmt.Sprintf("parameter %q has non-forwardable type %s", p.Name, p.Type)
		}

		if Forbidden(p.Type.Identity) {
			return fmt.Sprintf("parameter %q is pointer-like (%s)", p.Name, p.Type.Identity.Key())
		}
	}

	for _, r := range m.Results {
		if r.Unsupported {
			return fmt.Sprintf("result has non-forwardable type %s", r)
		}

		if Forbidden(r.Identity) {
			return fmt.Sprintf("result is pointer-like (%s)", r.Identity.Key())
		}
	}

	return ""
}

// finalize sorts members and contracts and computes the reference set.
func (a *Analyzer) finalize(model *TypeModel) {
	sort.SliceStable(model.Members, func(i, j int) bool {
		if model.Members[i].Name != model.Members[j].Name {
			return model.Members[i].Name < model.Members[j].Name
		}

		return scopeKey(model.Members[i]) < scopeKey(model.Members[j])
	})

	sort.SliceStable(model.Contracts, func(i, j int) bool {
		return model.Contracts[i].Identity.Key() < model.Contracts[j].Identity.Key()
	})

	refs := make(map[string]symquery.TypeIdentity)

	add := func(id symquery.TypeIdentity) {
		if !id.IsZero() {
			refs[id.Key()] = id
		}

		for _, arg := range id.TypeArgs {
			if !arg.IsZero() {
				refs[arg.Key()] = arg
			}
		}
	}

	for _, m := range model.Members {
		for _, p := range m.Params {
			add(p.Type.Identity)
		}

		for _, r := range m.Results {
			add(r.Identity)
		}

		if m.DeclaredContract != nil {
			add(*m.DeclaredContract)
		}
	}

	for _, c := range model.Contracts {
		add(c.Identity)
	}

	if model.Base != nil {
		add(*model.Base)
	}

	add(model.Identity)
	delete(refs, model.Identity.Key())

	keys := make([]string, 0, len(refs))
	for k := range refs {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	model.References = model.References[:0]
	for _, k := range keys {
		model.References = append(model.References, refs[k])
	}
}

// scopeKey orders equally named members by their declaring contract so the
// sorted member list is stable.
func scopeKey(m symquery.MemberDescriptor) string {
	if m.DeclaredContract == nil {
		return ""
	}

	return m.DeclaredContract.Key()
}

func (a *Analyzer) hasMember(members []symquery.MemberDescriptor, name string) bool {
	for _, m := range members {
		if m.Name == name {
			return true
		}
	}

	return false
}
