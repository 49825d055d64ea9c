// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package intent

import "fmt"

// Batch is the per-frame, per-channel collection of states handed from one
// stage to the next, in channel order.
//
// A Batch has three distinguishable states:
//   - Absent: no data this frame. The zero Batch is Absent.
//   - Empty: data was produced but nothing survived.
//   - NonEmpty: one or more states.
//
// Downstream renderers treat Absent and Empty alike ("nothing to draw"), but
// stages use Absent to skip further processing entirely.
type Batch struct {
	states  []State
	present bool
}

// Absent returns the "no data this frame" batch.
func Absent() Batch {
	return Batch{}
}

// NewBatch wraps states without copying. A nil slice yields an Absent batch
// and a non-nil empty slice an Empty one.
func NewBatch(states []State) Batch {
	return Batch{states: states, present: states != nil}
}

// Present reports whether the batch carries data (Empty or NonEmpty).
func (b Batch) Present() bool { return b.present }

// IsEmpty reports whether the batch is present but holds no states.
func (b Batch) IsEmpty() bool { return b.present && len(b.states) == 0 }

// Len returns the number of states. Absent batches have length 0.
func (b Batch) Len() int { return len(b.states) }

// At returns the i'th state.
func (b Batch) At(i int) State { return b.states[i] }

// States returns the underlying slice, nil when Absent. Callers must not
// retain it beyond the current frame.
func (b Batch) States() []State { return b.states }

// First returns the first state, or nil if there is none.
func (b Batch) First() State {
	if len(b.states) == 0 {
		return nil
	}
	return b.states[0]
}

// String implements fmt.Stringer.
func (b Batch) String() string {
	switch {
	case !b.present:
		return "Batch(absent)"
	case len(b.states) == 0:
		return "Batch(empty)"
	default:
		return fmt.Sprintf("Batch(%d)", len(b.states))
	}
}
