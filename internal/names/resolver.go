// Package names assigns one globally-unique bridge identifier per discovered
// type. Resolution is a pure function over the entire cross-root universe:
// it must never run per-root, or two roots could mint colliding names.
package names

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"bridge-generator/internal/collect"
	"bridge-generator/internal/common"
	"bridge-generator/internal/symquery"
)

// Marker is the fixed suffix appended to every generated bridge name.
const Marker = "Bridge"

// Assignment maps canonical identity keys to bridge identifiers. Injective
// and total over the universe it was resolved from.
type Assignment struct {
	byKey map[string]string
}

// NameFor returns the bridge name assigned to an identity.
func (a *Assignment) NameFor(id symquery.TypeIdentity) (string, bool) {
	name, ok := a.byKey[id.Key()]
	return name, ok
}

// Len returns the number of assigned names.
func (a *Assignment) Len() int {
	return len(a.byKey)
}

// Resolve assigns a unique bridge name to every identity in the universe.
//
// Explicit names (keyed by canonical identity key) are reserved first and
// never altered. Remaining identities are processed in lexicographic key
// order rather than discovery order, so re-running the pass on unchanged
// input yields identical names. Candidates are tried in order: the simple name plus
// the marker; the same prefixed with the last segment of the package path;
// then ascending integer suffixes starting at 2. The first free candidate
// wins and is reserved immediately.
//
// The returned assignment is injective and total over universe keys; any
// violation is a programming error and returned as a fatal error.
func Resolve(universe *collect.Universe, explicit map[string]string) (*Assignment, error) {
	asg := &Assignment{byKey: make(map[string]string)}
	used := make(map[string]bool)

	for _, key := range universe.Keys() {
		name, ok := explicit[key]
		if !ok {
			continue
		}

		if used[name] {
			return nil, fmt.Errorf("explicit name %q designated for two types", name)
		}

		asg.byKey[key] = name
		used[name] = true
	}

	for _, key := range universe.Keys() {
		if _, done := asg.byKey[key]; done {
			continue
		}

		id := universe.Get(key).Identity

		name := pickName(id, used)
		asg.byKey[key] = name
		used[name] = true
	}

	if err := checkInvariant(universe, asg); err != nil {
		return nil, err
	}

	return asg, nil
}

// pickName applies the collision policy and returns the first free candidate.
func pickName(id symquery.TypeIdentity, used map[string]bool) string {
	base := simpleName(id) + Marker
	if !used[base] {
		return base
	}

	prefixed := exportable(common.PkgAlias(id.PkgPath)) + base
	if prefixed != base && !used[prefixed] {
		return prefixed
	}

	for n := 2; ; n++ {
		candidate := base + strconv.Itoa(n)
		if !used[candidate] {
			return candidate
		}
	}
}

// simpleName flattens an identity to a bare identifier: the type name plus
// the names of any resolved generic arguments.
func simpleName(id symquery.TypeIdentity) string {
	var sb strings.Builder
	sb.WriteString(id.Name)

	for _, arg := range id.TypeArgs {
		sb.WriteString(exportable(simpleName(arg)))
	}

	return sb.String()
}

// exportable sanitizes a path segment into an exported identifier fragment.
func exportable(s string) string {
	var sb strings.Builder

	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
		}
	}

	out := sb.String()
	if out == "" {
		return out
	}

	return strings.ToUpper(out[:1]) + out[1:]
}

// checkInvariant verifies injectivity and totality. A failure here means a
// bug in the resolution algorithm itself and aborts the pass.
func checkInvariant(universe *collect.Universe, asg *Assignment) error {
	seen := make(map[string]string)

	for _, key := range universe.Keys() {
		name, ok := asg.byKey[key]
		if !ok {
			return fmt.Errorf("name assignment not total: %s unassigned", key)
		}

		if prev, dup := seen[name]; dup {
			return fmt.Errorf("name assignment not injective: %q assigned to %s and %s", name, prev, key)
		}

		seen[name] = key
	}

	return nil
}
