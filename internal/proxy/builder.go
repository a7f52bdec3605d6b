// Package proxy combines structural type models with resolved bridge names
// into renderer-ready proxy models.
package proxy

import (
	"strings"
	"unicode"

	"bridge-generator/internal/collect"
	"bridge-generator/internal/names"
	"bridge-generator/internal/symquery"
)

// Build produces one ProxyModel per distinct identity in the universe, in
// lexicographic key order. A type referenced from two different roots appears
// exactly once.
//
// factories optionally overrides the constructor name per identity key;
// absent entries default to "New" + bridge name.
func Build(universe *collect.Universe, assignment *names.Assignment, factories map[string]string) []ProxyModel {
	b := &builder{universe: universe, assignment: assignment}

	out := make([]ProxyModel, 0, universe.Len())

	for _, key := range universe.Keys() {
		model := universe.Get(key)

		pm := ProxyModel{
			Original: model.Identity,
			Kind:     model.Kind,
		}

		pm.Bridge, _ = assignment.NameFor(model.Identity)
		pm.Artifact = artifactName(pm.Bridge)

		pm.Factory = factories[key]
		if pm.Factory == "" {
			pm.Factory = "New" + pm.Bridge
		}

		if model.Base != nil {
			base := b.refOf(symquery.TypeRef{Identity: *model.Base})
			pm.Base = &base
		}

		for _, m := range model.Members {
			pm.Members = append(pm.Members, b.forwarding(m))
		}

		for _, c := range model.Contracts {
			pm.Contracts = append(pm.Contracts, b.contractRef(c.Identity))
		}

		out = append(out, pm)
	}

	return out
}

type builder struct {
	universe   *collect.Universe
	assignment *names.Assignment
}

// forwarding rewrites one member into its forwarding directive, preserving
// explicit contract scoping: dropping the scope here is exactly the
// "interface not implemented" defect the builder exists to prevent.
func (b *builder) forwarding(m symquery.MemberDescriptor) Forwarding {
	fwd := Forwarding{
		Name:     m.Name,
		Kind:     m.Kind,
		Static:   m.Static,
		Variadic: m.Variadic,
	}

	for _, p := range m.Params {
		fwd.Params = append(fwd.Params, NamedRef{Name: p.Name, Ref: b.refOf(p.Type)})
	}

	for _, r := range m.Results {
		fwd.Results = append(fwd.Results, b.refOf(r))
	}

	if m.DeclaredContract != nil {
		scope := b.contractRef(*m.DeclaredContract)
		fwd.Scope = &scope
	}

	return fwd
}

// refOf rewrites a type occurrence: identities in the universe get their
// assigned bridge name, natively-passable identities pass through untouched.
func (b *builder) refOf(t symquery.TypeRef) Ref {
	ref := Ref{
		Original: t.Identity,
		Pointer:  t.Pointer,
		Slice:    t.Slice,
	}

	if b.universe.Has(t.Identity.Key()) {
		ref.Bridge, _ = b.assignment.NameFor(t.Identity)
	}

	return ref
}

func (b *builder) contractRef(id symquery.TypeIdentity) ContractRef {
	ref := ContractRef{Original: id}
	if b.universe.Has(id.Key()) {
		ref.Bridge, _ = b.assignment.NameFor(id)
	}

	return ref
}

// artifactName derives the snake_case file stem from a bridge name. Literal
// underscores in the name are doubled so they can never be mistaken for a
// case-boundary separator: the encoding is prefix-free, and distinct bridge
// names always yield distinct stems.
func artifactName(bridge string) string {
	var sb strings.Builder

	for i, r := range bridge {
		switch {
		case r == '_':
			sb.WriteString("__")

		case unicode.IsUpper(r):
			if i > 0 {
				sb.WriteRune('_')
			}

			sb.WriteRune(unicode.ToLower(r))

		default:
			sb.WriteRune(r)
		}
	}

	return sb.String()
}
