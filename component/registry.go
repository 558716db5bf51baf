// Package component provides the concrete ComponentLookup collaborator the
// table core needs to decide whether an id in a Type is a data-bearing
// component, a tag, or a relation id.
package component

import (
	"reflect"

	"github.com/plus3/archtable/table"
)

// Registry is the external component descriptor lookup (table.ComponentLookup):
// for a given component id, it answers with a positive byte size (a
// data-bearing component), size 0 (a tag), or "not registered" (absent,
// which new_data also treats as contributing no column — the same path
// relation ids take).
//
// Adapted from the teacher's ComponentRegistry/RegisterComponent[T]
// (generic_component_storage.go), which maps reflect.Type to a storage
// factory; here it maps an external component id to a plain byte size,
// since this spec's components are untyped byte blobs rather than
// generics-backed typed slots.
type Registry struct {
	sizes map[table.EntityId]int
}

// NewRegistry creates an empty component registry.
func NewRegistry() *Registry {
	return &Registry{sizes: make(map[table.EntityId]int)}
}

// Register declares id as a data-bearing component of the given byte size.
// size must be > 0; use RegisterTag for zero-size components.
func (r *Registry) Register(id table.EntityId, size int) {
	if size <= 0 {
		panic("component: Register requires size > 0; use RegisterTag for tags")
	}
	r.sizes[id] = size
}

// RegisterTag declares id as a tag: it contributes membership to a Type but
// no column storage.
func (r *Registry) RegisterTag(id table.EntityId) {
	r.sizes[id] = 0
}

// Get implements table.ComponentLookup.
func (r *Registry) Get(id table.EntityId) (size int, ok bool) {
	size, ok = r.sizes[id]
	return size, ok
}

// SizeOf is an ergonomic convenience for callers registering a component by
// its real Go struct size, grounded on the teacher's generic
// RegisterComponent[T] entry point. It is not required by the core; callers
// free to size components however they like may call Register directly.
func SizeOf[T any]() int {
	var zero T
	return int(reflect.TypeOf(zero).Size())
}

var _ table.ComponentLookup = (*Registry)(nil)
