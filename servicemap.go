// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package effect

// ServiceMap is the ambient *context map* that carries dependency-injected
// services through an [Env]. This package supplies a default, immutable,
// copy-on-write implementation so [Env], [Service], and tests have
// something concrete to exercise; callers that want a different storage
// strategy (e.g. a fixed-size array keyed by small integer tags) can supply
// their own implementation instead.
//
// Implementations must be immutable: Add and Merge return a new ServiceMap
// rather than mutating the receiver, matching [Env]'s own copy-on-write
// contract.
type ServiceMap interface {
	// Get looks up the value bound to an opaque tag key.
	Get(key any) (any, bool)
	// Add returns a new ServiceMap with key bound to value, shadowing any
	// prior binding for the same key.
	Add(key, value any) ServiceMap
	// Merge returns a new ServiceMap containing this map's bindings
	// overlaid with other's, other's bindings taking precedence.
	Merge(other ServiceMap) ServiceMap
}

// Tag is an opaque, type-safe identifier for a service bound in a
// [ServiceMap]. Two tags are the same key if and only if they were
// produced by the same [NewTag] call (pointer identity). Tag[T] holds only
// that identity pointer, which also carries the diagnostic name; T is a
// compile-time marker and is not stored.
type Tag[T any] struct {
	key *tagKey
}

type tagKey struct{ name string }

// NewTag creates a fresh, uniquely-identified tag for values of type T.
// The name is for diagnostics only; it does not affect tag identity.
func NewTag[T any](name string) Tag[T] {
	return Tag[T]{key: &tagKey{name: name}}
}

// String returns the tag's diagnostic name.
func (t Tag[T]) String() string {
	if t.key == nil {
		return "<zero Tag>"
	}
	return t.key.name
}

// AddService returns a new ServiceMap with tag bound to value.
func AddService[T any](sm ServiceMap, tag Tag[T], value T) ServiceMap {
	return sm.Add(tag.key, value)
}

// GetService looks up the value bound to tag, returning false if absent or
// bound to a value of a different type than T (a programmer error — see
// [Service]'s preflight for how the core surfaces that as a defect).
func GetService[T any](sm ServiceMap, tag Tag[T]) (T, bool) {
	raw, ok := sm.Get(tag.key)
	if !ok {
		var zero T
		return zero, false
	}
	v, ok := raw.(T)
	if !ok {
		var zero T
		return zero, false
	}
	return v, true
}

// NewServices returns an empty ServiceMap.
func NewServices() ServiceMap {
	return (*layeredServices)(nil)
}

// layeredServices is a persistent, singly-linked overlay: each Add prepends
// one node rather than copying the whole map, so a child Env can shadow a
// handful of bindings without cloning everything the parent carries. A nil
// *layeredServices is the empty map.
type layeredServices struct {
	parent *layeredServices
	key    any
	value  any
}

func (s *layeredServices) Get(key any) (any, bool) {
	for n := s; n != nil; n = n.parent {
		if n.key == key {
			return n.value, true
		}
	}
	return nil, false
}

func (s *layeredServices) Add(key, value any) ServiceMap {
	return &layeredServices{parent: s, key: key, value: value}
}

func (s *layeredServices) Merge(other ServiceMap) ServiceMap {
	o, ok := other.(*layeredServices)
	if !ok || o == nil {
		return s
	}
	// Collect other's chain root-first so replaying it on top of s
	// preserves other's own shadowing order, then other's bindings as a
	// whole take precedence over s (last Add wins on lookup).
	var chain []*layeredServices
	for n := o; n != nil; n = n.parent {
		chain = append(chain, n)
	}
	result := ServiceMap(s)
	for i := len(chain) - 1; i >= 0; i-- {
		result = result.Add(chain[i].key, chain[i].value)
	}
	return result
}
