// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ana implements analytical flash calculators
package ana

import (
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/ptdiag/flash"
)

// GAS_CONSTANT is the universal gas constant [J/(mol K)]
const GAS_CONSTANT = 8.314462618

// Prm holds one named parameter of a model
type Prm struct {
	N string  `json:"n" toml:"n" yaml:"n"` // name
	V float64 `json:"v" toml:"v" yaml:"v"` // value
}

// Prms holds many parameters
type Prms []*Prm

// Find returns the parameter named name; nil if not found
func (o Prms) Find(name string) *Prm {
	for _, p := range o {
		if p.N == name {
			return p
		}
	}
	return nil
}

// Model defines analytical flash calculators
type Model interface {
	flash.Oracle
	Init(prms Prms) error // initialises model with parameters
}

// allocators holds all available models
var allocators = map[string]func() Model{}

// New allocates and initialises the model named name
func New(name string, prms Prms) (Model, error) {
	allocator, ok := allocators[name]
	if !ok {
		return nil, chk.Err("model %q is not available. options = %v", name, Names())
	}
	o := allocator()
	err := o.Init(prms)
	if err != nil {
		return nil, err
	}
	return o, nil
}

// Names returns the names of all available models
func Names() (names []string) {
	for name := range allocators {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

// checkMasses checks the composition passed to Flash
func checkMasses(ncomp int, masses []float64) error {
	if len(masses) != ncomp {
		return chk.Err("number of masses must be %d. %d is invalid", ncomp, len(masses))
	}
	return nil
}
