// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package dimming implements the dimming-curve output filter.
//
// Lights rarely respond linearly to their control value. A dimming curve
// remaps every intent's intensity so that perceived brightness tracks the
// programmed one. The package has three layers:
//
//   - [Filter] transforms one intent state by dispatching on its variant.
//   - [Output] runs a frame's batch through a Filter and exposes the result.
//   - [Module] owns the curve configuration and fans frames out to outputs.
//
// Curve edits go through Module.SetCurve. They are swapped atomically and
// picked up by each output at the start of its next frame.
package dimming

import (
	"github.com/google/uuid"

	"github.com/gogpu/lightshow"
	"github.com/gogpu/lightshow/curve"
	"github.com/gogpu/lightshow/intent"
)

// FlowType describes what a module consumes or produces.
type FlowType uint8

const (
	// SingleIntent is one intent state per frame.
	SingleIntent FlowType = iota
	// MultipleIntents is a batch of intent states per frame.
	MultipleIntents
)

// String implements fmt.Stringer.
func (t FlowType) String() string {
	if t == SingleIntent {
		return "SingleIntent"
	}
	return "MultipleIntents"
}

// Descriptor identifies the dimming-curve module type.
type Descriptor struct {
	TypeName    string
	TypeID      uuid.UUID
	Author      string
	Description string
	Version     string
}

// TypeID is the stable identifier of the dimming-curve module type.
var TypeID = uuid.MustParse("2e40d6b1-43d2-4668-b63a-c600fadd7dd5")

// ModuleDescriptor describes the dimming-curve module.
var ModuleDescriptor = Descriptor{
	TypeName:    "Dimming Curve",
	TypeID:      TypeID,
	Author:      "Vixen Team",
	Description: "An output filter that translates lighting intensity values according to a curve (to compensate for non-linear lighting response).",
	Version:     "1.0",
}

// Data is the module's configuration.
type Data struct {
	Curve *curve.Curve
}

// NewData returns configuration holding the linear curve.
func NewData() *Data {
	return &Data{Curve: curve.Linear()}
}

// Clone returns a deep copy; the copy's curve does not alias the original.
func (d *Data) Clone() *Data {
	return &Data{Curve: d.Curve.Clone()}
}

// Module is a configured dimming-curve filter with its outputs.
type Module struct {
	data    *Data
	ref     *curve.Ref
	outputs []*Output
}

// NewModule builds a module from data. A nil data uses NewData.
func NewModule(data *Data) *Module {
	m := &Module{}
	m.SetData(data)
	return m
}

// Descriptor returns ModuleDescriptor.
func (m *Module) Descriptor() Descriptor { return ModuleDescriptor }

// InputType reports MultipleIntents.
func (m *Module) InputType() FlowType { return MultipleIntents }

// OutputType reports MultipleIntents.
func (m *Module) OutputType() FlowType { return MultipleIntents }

// Data returns the module's configuration.
func (m *Module) Data() *Data { return m.data }

// SetData replaces the configuration and recreates the outputs. It must not
// be called while a frame is being processed.
func (m *Module) SetData(d *Data) {
	if d == nil {
		d = NewData()
	}
	if d.Curve == nil {
		d.Curve = curve.Linear()
	}
	m.data = d
	m.ref = curve.NewRef(d.Curve)
	m.outputs = []*Output{NewOutput(m.ref)}
	lightshow.Logger().Debug("dimming: outputs created",
		"outputs", len(m.outputs), "curve", d.Curve.String())
}

// Curve returns the curve currently configured.
func (m *Module) Curve() *curve.Curve { return m.data.Curve }

// SetCurve installs a new curve. The module keeps its own copy, and every
// output switches to it at the start of its next frame. SetCurve may run
// while another goroutine processes frames, but not concurrently with the
// module's other configuration methods.
func (m *Module) SetCurve(c *curve.Curve) {
	m.ref.Store(c)
	m.data = &Data{Curve: m.ref.Load()}
	lightshow.Logger().Info("dimming: curve swapped", "curve", m.data.Curve.String())
}

// Outputs returns the module's output stages.
func (m *Module) Outputs() []*Output { return m.outputs }

// Handle pushes one frame's batch through every output.
func (m *Module) Handle(b intent.Batch) {
	for _, o := range m.outputs {
		o.ProcessBatch(b)
	}
}

// HandleState pushes one frame's single state through every output.
func (m *Module) HandleState(s intent.State) {
	for _, o := range m.outputs {
		o.ProcessState(s)
	}
}
