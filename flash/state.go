// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flash

import (
	"math"
	"strings"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/floats"
)

// State holds the phase state of a mixture at a given (T, P). The liquid and
// vapour bits are added together; hence Liquid + Vapour == Both
type State int

// phase states
const (
	Unknown State = 0 // flash failed
	Liquid  State = 1 // liquid only
	Vapour  State = 2 // vapour only
	Both    State = 3 // two-phase
)

// StateOf returns the state corresponding to liquid and vapour fractions
func StateOf(liq, vap float64) (s State) {
	if liq > 0 {
		s += Liquid
	}
	if vap > 0 {
		s += Vapour
	}
	return
}

// StateOfLiquid returns the state corresponding to a liquid fraction only
func StateOfLiquid(liq float64) State {
	if liq < 0 {
		return Unknown
	}
	return StateOf(liq, 1.0-liq)
}

// Single tells whether the state is Liquid or Vapour
func (o State) Single() bool {
	return o == Liquid || o == Vapour
}

// String returns the name of this state
func (o State) String() string {
	switch o {
	case Liquid:
		return "liquid"
	case Vapour:
		return "vapour"
	case Both:
		return "both"
	}
	return "unknown"
}

// DiagramType defines how the liquid fraction is measured
type DiagramType int

// diagram types
const (
	Mass   DiagramType = iota // mass fraction
	Mole                      // mole fraction
	Volume                    // volume fraction
)

// ParseDiagramType returns the diagram type corresponding to name
func ParseDiagramType(name string) (typ DiagramType, err error) {
	switch strings.ToLower(name) {
	case "", "mass":
		return Mass, nil
	case "mole", "mol", "molar":
		return Mole, nil
	case "volume", "vol":
		return Volume, nil
	}
	return Mass, chk.Err("diagram type %q is not available. options = {mass, mole, volume}", name)
}

// String returns the name of this type
func (o DiagramType) String() string {
	switch o {
	case Mole:
		return "mole"
	case Volume:
		return "volume"
	}
	return "mass"
}

// Fractions computes the liquid and vapour fractions of a flash result
//  Input:
//   typ    -- diagram type
//   res    -- flash result
//   masses -- [ncomp] total component masses
//   mm     -- molar masses; required by Mole diagrams only
//   tol    -- tolerance: fractions smaller than tol² are set to 0 and fractions
//             closer to 1 than tol² are set to 1
//  Note: a result with zero amounts in both phases gives liq = vap = 0
func Fractions(typ DiagramType, res *Result, masses []float64, mm MolarMasser, tol float64) (liq, vap float64, err error) {

	// amounts of each phase
	var amount [NPHASES]float64
	var total float64
	switch typ {
	case Mass:
		amount[LIQUID] = floats.Sum(res.Masses[LIQUID])
		amount[VAPOUR] = floats.Sum(res.Masses[VAPOUR])
		total = floats.Sum(masses)
	case Mole:
		if mm == nil {
			return 0, 0, chk.Err("mole fractions require molar masses")
		}
		for ph := 0; ph < NPHASES; ph++ {
			for i, m := range res.Masses[ph] {
				amount[ph] += m / mm.MolarMass(i)
			}
		}
		total = amount[LIQUID] + amount[VAPOUR]
	case Volume:
		for ph := 0; ph < NPHASES; ph++ {
			if res.Densities[ph] > 0 {
				amount[ph] = floats.Sum(res.Masses[ph]) / res.Densities[ph]
			}
		}
		total = amount[LIQUID] + amount[VAPOUR]
	default:
		return 0, 0, chk.Err("diagram type %d is invalid", typ)
	}
	if total <= 0 { // no phase carries any amount: both bits are off
		return 0, 0, nil
	}

	// fractions
	liq = snap(amount[LIQUID]/total, tol)
	vap = snap(amount[VAPOUR]/total, tol)
	return
}

// snap sets fractions near 0 or 1 to exactly 0 or 1
func snap(f, tol float64) float64 {
	tol2 := tol * tol
	if f < tol2 {
		return 0
	}
	if math.Abs(1.0-f) < tol2 {
		return 1
	}
	return f
}
