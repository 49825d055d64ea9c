// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package lightshow moves lighting intents from sequence playback to outputs.
//
// # Overview
//
// A show is a set of channels. Every frame (tens of times per second) a
// producer emits, per channel, a batch of intent states: desired lighting
// values expressed as one of four value variants. Output filters such as the
// dimming curve transform those batches stage by stage, and the preview
// renders whatever survives as colored pixels.
//
//	producer ──► dimming.Output ──► ... ──► pipeline.Pipeline ──► preview.Pixel
//	   (intent.Batch per channel)              (preview.ColorTable)
//
// # Packages
//
//   - value: the closed set of value variants (Intensity, Discrete, RGB, Lighting)
//   - intent: intent state containers, the Dispatcher visitor and the Batch tri-state
//   - curve: percentage lookup curves and an atomic curve holder
//   - dimming: the dimming-curve filter, its output stage and module
//   - channel: channel identities and the registry that resolves them
//   - preview: preview pixels, color handlers, the shared color table and a software canvas
//   - preview/terminal: a tcell-backed preview surface
//   - pipeline: per-channel stage chains driven once per frame
//   - capture: CBOR recording and replay of frames
//   - config: show files (TOML or YAML)
//
// # Hot path
//
// Filters and output stages run once per frame per channel. They never log,
// never block and allocate at most one slice per non-empty batch. Filters
// reuse per-variant scratch states, so a filter instance must not be shared
// between goroutines.
//
// # Logging
//
// lightshow is silent by default. Install a logger with [SetLogger].
package lightshow

// Version information
const (
	// Version is the current version of the library
	Version = "0.3.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 3

	// VersionPatch is the patch version
	VersionPatch = 0
)
