// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package channel resolves channel identities.
//
// Every channel of a show has a stable [ID]. Renderers and pipelines hold IDs,
// not channels, and ask a [Resolver] for the current [Node] when they need
// its name or color capabilities.
package channel

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/text/cases"

	"github.com/gogpu/lightshow/value"
)

// Errors returned by Registry.Add.
var (
	ErrDuplicateID   = errors.New("channel: duplicate id")
	ErrDuplicateName = errors.New("channel: duplicate name")
	ErrNilID         = errors.New("channel: nil id")
)

// ID identifies a channel for the life of a show.
type ID = uuid.UUID

// Nil is the zero ID. It never resolves.
var Nil = uuid.Nil

// NewID returns a random ID.
func NewID() ID { return uuid.New() }

// namespace seeds IDs derived from channel names.
var namespace = uuid.MustParse("7f1c9a52-3b8e-5d0a-9c64-2a1e5b7d9f30")

// IDFromName derives a stable ID from a channel name, so that a show
// described without explicit IDs keeps them across loads.
func IDFromName(name string) ID {
	return uuid.NewSHA1(namespace, []byte(foldName(name)))
}

// ParseID parses the canonical textual form of an ID.
func ParseID(s string) (ID, error) { return uuid.Parse(s) }

// ColorMode describes how a channel produces color.
type ColorMode uint8

const (
	// FullColor channels take any RGB color as one value.
	FullColor ColorMode = iota
	// SingleColor channels have one fixed color and vary only intensity.
	SingleColor
	// MultipleDiscreteColors channels are built from several independent
	// single-color emitters, e.g. separate red, green and blue strings.
	MultipleDiscreteColors
)

// String implements fmt.Stringer.
func (m ColorMode) String() string {
	switch m {
	case FullColor:
		return "full"
	case SingleColor:
		return "single"
	case MultipleDiscreteColors:
		return "discrete"
	default:
		return fmt.Sprintf("ColorMode(%d)", uint8(m))
	}
}

// ParseColorMode is the inverse of ColorMode.String.
func ParseColorMode(s string) (ColorMode, bool) {
	switch s {
	case "", "full":
		return FullColor, true
	case "single":
		return SingleColor, true
	case "discrete":
		return MultipleDiscreteColors, true
	default:
		return 0, false
	}
}

// Node is one channel.
type Node struct {
	ID     ID
	Name   string
	Mode   ColorMode
	Colors []value.Color
}

// IsDiscretelyColored reports whether the channel is realized as several
// discrete single-color sub-channels.
func (n *Node) IsDiscretelyColored() bool {
	return n.Mode == MultipleDiscreteColors
}

// String implements fmt.Stringer.
func (n *Node) String() string {
	return fmt.Sprintf("%s (%s, %s)", n.Name, n.ID, n.Mode)
}

// Resolver looks up channels by ID.
type Resolver interface {
	Node(id ID) (*Node, bool)
}

// Registry is the set of channels of a show, in insertion order.
//
// A Registry is built during configuration and read afterwards; it is safe
// for concurrent readers once no more channels are added.
type Registry struct {
	nodes  []*Node
	byID   map[ID]*Node
	byName map[string]*Node
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:   make(map[ID]*Node),
		byName: make(map[string]*Node),
	}
}

// Add registers n. Names are compared case-insensitively.
func (r *Registry) Add(n *Node) error {
	if n.ID == Nil {
		return fmt.Errorf("%w: %q", ErrNilID, n.Name)
	}
	if _, ok := r.byID[n.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateID, n.ID)
	}
	key := foldName(n.Name)
	if _, ok := r.byName[key]; ok && n.Name != "" {
		return fmt.Errorf("%w: %q", ErrDuplicateName, n.Name)
	}
	r.nodes = append(r.nodes, n)
	r.byID[n.ID] = n
	if n.Name != "" {
		r.byName[key] = n
	}
	return nil
}

// foldName case-folds a channel name. A Caser is stateful, so each call
// gets its own.
func foldName(name string) string {
	return cases.Fold().String(name)
}

// Node implements Resolver.
func (r *Registry) Node(id ID) (*Node, bool) {
	n, ok := r.byID[id]
	return n, ok
}

// ByName finds a channel by case-folded name.
func (r *Registry) ByName(name string) (*Node, bool) {
	n, ok := r.byName[foldName(name)]
	return n, ok
}

// Nodes returns the channels in insertion order. The slice must not be
// modified.
func (r *Registry) Nodes() []*Node { return r.nodes }

// Len returns the number of channels.
func (r *Registry) Len() int { return len(r.nodes) }
