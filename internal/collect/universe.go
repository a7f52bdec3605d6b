package collect

import (
	"sort"

	"bridge-generator/internal/analyze"
	"bridge-generator/internal/symquery"
)

// Universe is the pass-scoped arena of discovered type models, keyed by
// canonical identity key. It is an explicit object owned by the orchestrator
// for the duration of one pass (never package-level state) and is discarded
// when the pass ends.
type Universe struct {
	models       map[string]*analyze.TypeModel
	unbridgeable map[string]bool
	native       map[string]bool
}

// NewUniverse creates an empty universe.
func NewUniverse() *Universe {
	return &Universe{
		models:       make(map[string]*analyze.TypeModel),
		unbridgeable: make(map[string]bool),
		native:       make(map[string]bool),
	}
}

// Add inserts a model. Adding the same identity twice is a no-op: the first
// model wins, per the dedup invariant.
func (u *Universe) Add(model *analyze.TypeModel) {
	key := model.Identity.Key()
	if _, exists := u.models[key]; exists {
		return
	}

	u.models[key] = model
}

// Get returns the model for a canonical key, or nil.
func (u *Universe) Get(key string) *analyze.TypeModel {
	return u.models[key]
}

// Has returns true if the key is in the universe.
func (u *Universe) Has(key string) bool {
	_, ok := u.models[key]
	return ok
}

// Len returns the number of models.
func (u *Universe) Len() int {
	return len(u.models)
}

// Keys returns all model keys in lexicographic order. Name resolution and
// model building iterate in this order, never in discovery order.
func (u *Universe) Keys() []string {
	keys := make([]string, 0, len(u.models))
	for k := range u.models {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// MarkUnbridgeable records that a discovered identity cannot be bridged, so
// referencing members degrade instead of pointing at a missing bridge.
func (u *Universe) MarkUnbridgeable(key string) {
	u.unbridgeable[key] = true
}

// IsUnbridgeable returns true if the key was recorded unbridgeable.
func (u *Universe) IsUnbridgeable(key string) bool {
	return u.unbridgeable[key]
}

// MarkNative records an identity found to be natively passable during
// traversal (e.g. a named basic type).
func (u *Universe) MarkNative(key string) {
	u.native[key] = true
}

// IsPassable returns true if the identity crosses the boundary without a
// bridge: either universally native or recorded native during this pass.
func (u *Universe) IsPassable(id symquery.TypeIdentity) bool {
	return analyze.NativelyPassable(id) || u.native[id.Key()]
}
