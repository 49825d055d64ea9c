package main

import (
	"errors"
	"fmt"

	"github.com/gogpu/lightshow/config"
	"github.com/gogpu/lightshow/internal/pattern"
)

// loadRig loads the show at path and wires it up.
func loadRig(path string) (*config.Rig, error) {
	if path == "" {
		return nil, errors.New("--show is required")
	}
	show, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	rig, err := show.Build()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rig, nil
}

// producer returns the named test pattern over the rig's channels.
func producer(rig *config.Rig, name string) (pattern.Producer, error) {
	return pattern.New(name, rig.Registry.Nodes())
}
