// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package intent holds per-channel lighting intents as they flow between
// pipeline stages.
//
// A [State] wraps exactly one value variant. Consumers do not switch on the
// variant themselves; they implement [Dispatcher] and call State.Dispatch,
// which invokes the one handler matching the variant. Because Dispatcher has
// a method per variant, a consumer that forgets a variant does not compile.
//
// Two container kinds exist:
//   - [Intent] is ephemeral: built once per frame and never modified.
//   - [Static] is reusable: its value is overwritten in place each frame by
//     the stage that owns it. Its variant is fixed by its type parameter.
package intent

import (
	"fmt"

	"github.com/gogpu/lightshow/value"
)

// State is one resolved intent for one channel at one instant.
type State interface {
	// Kind reports the variant held by the state.
	Kind() value.Kind

	// Dispatch calls the handler of d that matches the held variant.
	Dispatch(d Dispatcher)
}

// Typed is a State whose variant is known statically.
type Typed[V value.Variant] interface {
	State

	// Value returns the held value.
	Value() V
}

// Dispatcher receives a State's value through the handler for its variant.
type Dispatcher interface {
	HandleIntensity(s Typed[value.Intensity])
	HandleDiscrete(s Typed[value.Discrete])
	HandleRGB(s Typed[value.RGB])
	HandleLighting(s Typed[value.Lighting])
}

// dispatch routes s to the handler for V. The type switch is exhaustive
// because value.Variant admits exactly these four types.
func dispatch[V value.Variant](s Typed[V], d Dispatcher) {
	switch t := any(s).(type) {
	case Typed[value.Intensity]:
		d.HandleIntensity(t)
	case Typed[value.Discrete]:
		d.HandleDiscrete(t)
	case Typed[value.RGB]:
		d.HandleRGB(t)
	case Typed[value.Lighting]:
		d.HandleLighting(t)
	}
}

// Intent is an ephemeral state. It is created for one frame and handed to
// the next stage, which owns it from then on.
type Intent[V value.Variant] struct {
	v V
}

// New returns an ephemeral state holding v.
func New[V value.Variant](v V) *Intent[V] {
	return &Intent[V]{v: v}
}

// Kind reports the held variant.
func (s *Intent[V]) Kind() value.Kind { return s.v.Kind() }

// Value returns the held value.
func (s *Intent[V]) Value() V { return s.v }

// Dispatch calls the handler of d matching V.
func (s *Intent[V]) Dispatch(d Dispatcher) { dispatch[V](s, d) }

// String implements fmt.Stringer.
func (s *Intent[V]) String() string { return fmt.Sprintf("%v%+v", s.v.Kind(), s.v) }

// Static is a reusable state. The stage that created it overwrites its value
// every frame instead of allocating a new state. Static values must only be
// mutated by their owner, and never from two goroutines.
type Static[V value.Variant] struct {
	v V
}

// NewStatic returns a reusable state holding v.
func NewStatic[V value.Variant](v V) *Static[V] {
	return &Static[V]{v: v}
}

// Kind reports the held variant. It never changes over the life of s.
func (s *Static[V]) Kind() value.Kind { return s.v.Kind() }

// Value returns the held value.
func (s *Static[V]) Value() V { return s.v }

// SetValue replaces the held value in place.
func (s *Static[V]) SetValue(v V) { s.v = v }

// Dispatch calls the handler of d matching V.
func (s *Static[V]) Dispatch(d Dispatcher) { dispatch[V](s, d) }

// String implements fmt.Stringer.
func (s *Static[V]) String() string { return fmt.Sprintf("static %v%+v", s.v.Kind(), s.v) }

// IsReusable reports whether s is a Static container of any variant.
func IsReusable(s State) bool {
	switch s.(type) {
	case *Static[value.Intensity], *Static[value.Discrete], *Static[value.RGB], *Static[value.Lighting]:
		return true
	default:
		return false
	}
}
