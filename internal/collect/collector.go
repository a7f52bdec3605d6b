package collect

import (
	"fmt"

	"bridge-generator/internal/analyze"
	"bridge-generator/internal/common"
	"bridge-generator/internal/diagnostic"
	"bridge-generator/internal/symquery"
)

// Collector performs closure traversal over the type graph: starting from the
// roots, it analyzes each newly discovered type and enqueues every identity
// its members reference that itself needs a bridge.
type Collector struct {
	analyzer *analyze.Analyzer
}

// NewCollector creates a Collector over the given analyzer.
func NewCollector(analyzer *analyze.Analyzer) *Collector {
	return &Collector{analyzer: analyzer}
}

// Collect traverses the graph reachable from roots and returns the universe.
//
// Termination is guaranteed by the visited set: it only grows, re-enqueuing a
// visited identity is ignored, and the set of distinct identities reachable
// from a finite root set is finite. Cycles need no depth limit.
//
// On return, every identity appearing in any surviving model's signatures is
// a universe key, natively passable, or covered by a diagnostic. No fourth
// outcome.
func (c *Collector) Collect(roots []symquery.TypeIdentity) (*Universe, diagnostic.Diagnostics) {
	var diags diagnostic.Diagnostics

	universe := NewUniverse()
	visited := make(map[string]bool)

	queue := make([]symquery.TypeIdentity, 0, len(roots))
	for _, root := range roots {
		queue = append(queue, root)
	}

	for !common.IsEmpty(queue) {
		id, _ := common.First(queue)
		queue = queue[1:]

		key := id.Key()
		if visited[key] || analyze.NativelyPassable(id) {
			continue
		}

		visited[key] = true

		model, typeDiags := c.analyzer.Analyze(id)
		diags.Merge(typeDiags)

		if model == nil {
			if typeDiags.HasErrors() {
				universe.MarkUnbridgeable(key)
			} else {
				universe.MarkNative(key)
			}

			continue
		}

		universe.Add(model)

		for _, ref := range model.References {
			if !visited[ref.Key()] && !analyze.NativelyPassable(ref) {
				queue = append(queue, ref)
			}
		}
	}

	c.sweep(universe, &diags)

	return universe, diags
}

// sweep enforces the completeness guarantee after the queue drains. Members
// that reference an unbridgeable type are dropped with a diagnostic at the
// referencing member; an identity that somehow escaped every other outcome is
// an internal defect and reported as such.
func (c *Collector) sweep(universe *Universe, diags *diagnostic.Diagnostics) {
	for _, key := range universe.Keys() {
		model := universe.Get(key)

		kept := model.Members[:0]
		for _, m := range model.Members {
			if bad := c.degradedRef(universe, m); !bad.IsZero() {
				diags.AddWarning(diagnostic.CodeUnbridgeableReference,
					fmt.Sprintf("member references unbridgeable type %s; omitted from bridge", bad.Key()),
					key, m.Name)

				continue
			}

			kept = append(kept, m)
		}

		model.Members = kept

		for _, ref := range model.References {
			refKey := ref.Key()
			if universe.Has(refKey) || universe.IsPassable(ref) || universe.IsUnbridgeable(refKey) {
				continue
			}

			diags.AddError(diagnostic.CodeUnbridgeableReference,
				"referenced type escaped traversal (internal defect)", refKey, "")
		}
	}
}

// degradedRef returns the first unbridgeable identity referenced by the
// member, or the zero identity if the member is clean.
func (c *Collector) degradedRef(universe *Universe, m symquery.MemberDescriptor) symquery.TypeIdentity {
	for _, p := range m.Params {
		if universe.IsUnbridgeable(p.Type.Identity.Key()) {
			return p.Type.Identity
		}
	}

	for _, r := range m.Results {
		if universe.IsUnbridgeable(r.Identity.Key()) {
			return r.Identity
		}
	}

	return symquery.TypeIdentity{}
}
