// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package capture records pipeline frames to a CBOR stream and plays them
// back.
//
// A capture is a sequence of self-delimiting CBOR records, one per frame.
// Each record keeps, per channel, whether the batch was Absent, Empty or
// NonEmpty, and for every state its variant, value and whether it was a
// reusable (static) container. Played-back frames therefore drive a
// pipeline exactly as the recorded ones did.
package capture

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/fxamacker/cbor/v2"

	"github.com/gogpu/lightshow/channel"
	"github.com/gogpu/lightshow/intent"
	"github.com/gogpu/lightshow/pipeline"
	"github.com/gogpu/lightshow/value"
)

// ErrUnknownKind is returned when a record holds a state of a kind this
// package does not know.
var ErrUnknownKind = errors.New("capture: unknown state kind")

var encMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("capture: failed to create CBOR enc mode: %v", err))
	}
	encMode = em
}

type record struct {
	Seq      uint64          `cbor:"1,keyasint"`
	Channels []channelRecord `cbor:"2,keyasint,omitempty"`
}

type channelRecord struct {
	ID      channel.ID    `cbor:"1,keyasint"`
	Present bool          `cbor:"2,keyasint"`
	States  []stateRecord `cbor:"3,keyasint,omitempty"`
}

type stateRecord struct {
	Kind      value.Kind `cbor:"1,keyasint"`
	R         uint8      `cbor:"2,keyasint,omitempty"`
	G         uint8      `cbor:"3,keyasint,omitempty"`
	B         uint8      `cbor:"4,keyasint,omitempty"`
	Intensity float64    `cbor:"5,keyasint,omitempty"`
	Static    bool       `cbor:"6,keyasint,omitempty"`
}

func (r *stateRecord) setColor(c value.Color) { r.R, r.G, r.B = c.R, c.G, c.B }

func (r *stateRecord) color() value.Color { return value.Color{R: r.R, G: r.G, B: r.B} }

// stateEncoder turns a state into its record through dispatch.
type stateEncoder struct {
	rec stateRecord
}

func (e *stateEncoder) encode(s intent.State) stateRecord {
	e.rec = stateRecord{Kind: s.Kind(), Static: intent.IsReusable(s)}
	s.Dispatch(e)
	return e.rec
}

func (e *stateEncoder) HandleIntensity(s intent.Typed[value.Intensity]) {
	e.rec.Intensity = s.Value().Intensity
}

func (e *stateEncoder) HandleDiscrete(s intent.Typed[value.Discrete]) {
	v := s.Value()
	e.rec.setColor(v.Color)
	e.rec.Intensity = v.Intensity
}

func (e *stateEncoder) HandleRGB(s intent.Typed[value.RGB]) {
	e.rec.setColor(s.Value().Color)
}

func (e *stateEncoder) HandleLighting(s intent.Typed[value.Lighting]) {
	v := s.Value()
	e.rec.setColor(v.Color)
	e.rec.Intensity = v.Intensity
}

func wrap[V value.Variant](v V, static bool) intent.State {
	if static {
		return intent.NewStatic(v)
	}
	return intent.New(v)
}

func (r *stateRecord) state() (intent.State, error) {
	switch r.Kind {
	case value.KindIntensity:
		return wrap(value.NewIntensity(r.Intensity), r.Static), nil
	case value.KindDiscrete:
		return wrap(value.NewDiscrete(r.color(), r.Intensity), r.Static), nil
	case value.KindRGB:
		return wrap(value.NewRGB(r.color()), r.Static), nil
	case value.KindLighting:
		return wrap(value.NewLighting(r.color(), r.Intensity), r.Static), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, r.Kind)
	}
}

// Recorder writes frames to a capture stream.
type Recorder struct {
	enc    *cbor.Encoder
	states stateEncoder
	count  int
}

// NewRecorder returns a recorder writing to w.
func NewRecorder(w io.Writer) *Recorder {
	return &Recorder{enc: encMode.NewEncoder(w)}
}

// Record appends one frame. Channels are written in ID order so that equal
// frames encode to equal bytes.
func (r *Recorder) Record(seq uint64, f pipeline.Frame) error {
	rec := record{Seq: seq, Channels: make([]channelRecord, 0, len(f))}
	for id, b := range f {
		cr := channelRecord{ID: id, Present: b.Present()}
		for _, s := range b.States() {
			if s == nil {
				continue
			}
			cr.States = append(cr.States, r.states.encode(s))
		}
		rec.Channels = append(rec.Channels, cr)
	}
	slices.SortFunc(rec.Channels, func(a, b channelRecord) int {
		return bytes.Compare(a.ID[:], b.ID[:])
	})
	if err := r.enc.Encode(rec); err != nil {
		return fmt.Errorf("capture: encode frame %d: %w", seq, err)
	}
	r.count++
	return nil
}

// Count returns the number of frames recorded.
func (r *Recorder) Count() int { return r.count }

// Player reads frames from a capture stream.
type Player struct {
	dec *cbor.Decoder
	seq uint64
}

// NewPlayer returns a player reading from r.
func NewPlayer(r io.Reader) *Player {
	return &Player{dec: cbor.NewDecoder(r)}
}

// Next returns the next frame. At the end of the stream it returns io.EOF.
func (p *Player) Next() (pipeline.Frame, error) {
	var rec record
	if err := p.dec.Decode(&rec); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("capture: decode frame: %w", err)
	}
	f := make(pipeline.Frame, len(rec.Channels))
	for _, cr := range rec.Channels {
		if !cr.Present {
			f[cr.ID] = intent.Absent()
			continue
		}
		states := make([]intent.State, 0, len(cr.States))
		for i := range cr.States {
			s, err := cr.States[i].state()
			if err != nil {
				return nil, fmt.Errorf("capture: frame %d: %w", rec.Seq, err)
			}
			states = append(states, s)
		}
		f[cr.ID] = intent.NewBatch(states)
	}
	p.seq = rec.Seq
	return f, nil
}

// Seq returns the sequence number of the frame last returned by Next.
func (p *Player) Seq() uint64 { return p.seq }

// Seek skips frames until the one recorded with sequence number seq and
// returns it. It returns io.EOF if the stream ends first.
func (p *Player) Seek(seq uint64) (pipeline.Frame, error) {
	for {
		f, err := p.Next()
		if err != nil {
			return nil, err
		}
		if p.seq == seq {
			return f, nil
		}
	}
}
