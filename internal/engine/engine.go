// Package engine orchestrates one generation pass: root resolution, graph
// collection across all roots, global name resolution, and proxy model
// building. Per-root failures degrade to diagnostics; the pass only aborts on
// an internal invariant violation.
package engine

import (
	"fmt"
	"sort"

	"bridge-generator/internal/analyze"
	"bridge-generator/internal/collect"
	"bridge-generator/internal/config"
	"bridge-generator/internal/diagnostic"
	"bridge-generator/internal/names"
	"bridge-generator/internal/proxy"
	"bridge-generator/internal/symquery"
)

// Result is the output of one generation pass: the ordered proxy models and
// every diagnostic accumulated along the way. The caller receives the full
// diagnostic list even on partial failure.
type Result struct {
	Proxies     []proxy.ProxyModel
	Diagnostics diagnostic.Diagnostics
	// Universe is the pass-scoped arena, exposed for debug dumps.
	Universe *collect.Universe
}

// Run executes one generation pass over the facade with the given config.
//
// All state is pass-scoped and discarded when Run returns; two runs over
// identical input produce identical proxies and diagnostics. The returned
// error is non-nil only for fatal conditions (a name resolver invariant
// violation), never for bad user input.
func Run(facade symquery.Facade, cfg *config.Config) (*Result, error) {
	result := &Result{}

	roots, explicit, factories := resolveRoots(facade, cfg, &result.Diagnostics)

	analyzer := analyze.NewAnalyzer(facade)
	collector := collect.NewCollector(analyzer)

	universe, collectDiags := collector.Collect(roots)
	result.Diagnostics.Merge(collectDiags)
	result.Universe = universe

	// A root that failed analysis never made it into the universe; its
	// explicit name must not leak into resolution.
	for key := range explicit {
		if !universe.Has(key) {
			delete(explicit, key)
		}
	}

	assignment, err := names.Resolve(universe, explicit)
	if err != nil {
		// Invariant violation: programming error, not bad input.
		result.Diagnostics.AddError(diagnostic.CodeNameInvariant, err.Error(), "", "")
		result.Diagnostics.Sort()

		return result, fmt.Errorf("name resolution invariant violated: %w", err)
	}

	result.Proxies = proxy.Build(universe, assignment, factories)
	checkFactoryConflicts(result.Proxies, &result.Diagnostics)
	result.Diagnostics.Sort()

	return result, nil
}

// checkFactoryConflicts reports proxies whose constructor names collide, via
// duplicate configured factory methods or a configured one shadowing another
// bridge's default. Rendering both into one package would not compile.
func checkFactoryConflicts(proxies []proxy.ProxyModel, diags *diagnostic.Diagnostics) {
	seen := make(map[string]string, len(proxies))

	for _, p := range proxies {
		if prev, dup := seen[p.Factory]; dup {
			diags.AddError(diagnostic.CodeFactoryConflict,
				fmt.Sprintf("factory %q already designated for %s", p.Factory, prev),
				p.Original.Key(), "")

			continue
		}

		seen[p.Factory] = p.Original.Key()
	}
}

// resolveRoots turns configured root specs into seed identities, reserving
// explicit names and factory methods, and expanding include-nested roots to
// their package's exported types. A root that cannot be resolved is reported
// and skipped without disturbing the others.
func resolveRoots(
	facade symquery.Facade,
	cfg *config.Config,
	diags *diagnostic.Diagnostics,
) (roots []symquery.TypeIdentity, explicit, factories map[string]string) {
	explicit = make(map[string]string)
	factories = make(map[string]string)

	seen := make(map[string]bool)
	usedExplicit := make(map[string]string)

	add := func(id symquery.TypeIdentity) {
		if !seen[id.Key()] {
			seen[id.Key()] = true
			roots = append(roots, id)
		}
	}

	for i := range cfg.Roots {
		spec := &cfg.Roots[i]

		id, err := spec.Identity()
		if err != nil {
			diags.AddError(diagnostic.CodeUnresolvableRoot, err.Error(), spec.Type, "")
			continue
		}

		if _, err := facade.Lookup(id); err != nil {
			diags.AddError(diagnostic.CodeUnresolvableRoot,
				fmt.Sprintf("designated root cannot be found: %v", err), id.Key(), "")

			continue
		}

		if analyze.NativelyPassable(id) {
			diags.AddWarning(diagnostic.CodeNativeRoot,
				"root is natively passable and needs no bridge", id.Key(), "")

			continue
		}

		if spec.ProxyName != "" {
			if prev, taken := usedExplicit[spec.ProxyName]; taken && prev != id.Key() {
				diags.AddError(diagnostic.CodeExplicitNameConflict,
					fmt.Sprintf("explicit name %q already designated for %s", spec.ProxyName, prev),
					id.Key(), "")
			} else {
				usedExplicit[spec.ProxyName] = id.Key()
				explicit[id.Key()] = spec.ProxyName
			}
		}

		if spec.FactoryMethod != "" {
			factories[id.Key()] = spec.FactoryMethod
		}

		add(id)

		if spec.Nested() {
			expandNested(facade, id, add, diags)
		}
	}

	sort.Slice(roots, func(i, j int) bool { return roots[i].Key() < roots[j].Key() })

	return roots, explicit, factories
}

// expandNested roots every exported type in the root's package, when the
// facade can enumerate packages.
func expandNested(
	facade symquery.Facade,
	root symquery.TypeIdentity,
	add func(symquery.TypeIdentity),
	diags *diagnostic.Diagnostics,
) {
	lister, ok := facade.(symquery.PackageLister)
	if !ok {
		return
	}

	ids, err := lister.PackageTypes(root.PkgPath)
	if err != nil {
		diags.AddWarning(diagnostic.CodeUnresolvableRoot,
			fmt.Sprintf("cannot expand nested types: %v", err), root.Key(), "")

		return
	}

	for _, id := range ids {
		if !analyze.NativelyPassable(id) {
			add(id)
		}
	}
}
