// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package flash defines the contract of phase-equilibrium (flash) calculators
package flash

// phase indices in flash results
const (
	LIQUID  = 0 // liquid phase index
	VAPOUR  = 1 // vapour phase index
	NPHASES = 2 // number of phases
)

// Params holds settings passed to the flash calculator on each call
type Params struct {
	AoverB      float64 // critical A/B term used to label single-phase states; ignored if ≤ 0
	MaxIters    int     // max number of iterations of the nonlinear solver; 0 => calculator default
	StopTol     float64 // stop tolerance of the nonlinear solver; 0 => calculator default
	NewtonRelax float64 // relaxation coefficient of Newton's updates; 0 => calculator default
}

// Result holds the outcome of one flash calculation
type Result struct {
	Masses    [NPHASES][]float64 // [nphases][ncomp] mass of each component in each phase
	Densities [NPHASES]float64   // [nphases] density of each phase
}

// Oracle defines flash calculators
//  Note: Flash must be deterministic and must return a non-nil error when the
//        equilibrium cannot be computed; a Result with all masses equal to
//        zero is not a failure.
type Oracle interface {
	Ncomp() int                                                          // number of components
	Flash(T, P float64, masses []float64, prms *Params) (*Result, error) // computes phase split at T [K] and P [Pa]
}

// MolarMasser is implemented by oracles able to report molar masses
type MolarMasser interface {
	MolarMass(comp int) float64 // molar mass of component comp [kg/mol]
}

// NewResult allocates a result for ncomp components
func NewResult(ncomp int) *Result {
	var o Result
	for i := 0; i < NPHASES; i++ {
		o.Masses[i] = make([]float64, ncomp)
	}
	return &o
}
