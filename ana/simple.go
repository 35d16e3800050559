// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/ptdiag/flash"
)

// Constant implements a mixture split with the same liquid fraction at any (T,P)
type Constant struct {
	Nc int     // number of components
	L  float64 // liquid fraction
}

// Failing implements a calculator that fails at all (T,P) with T above Tfail
type Failing struct {
	Nc    int     // number of components
	Tfail float64 // temperature above which all calls fail
}

// Step implements a mixture that is two-phase everywhere with a liquid
// fraction jumping from L0 to L1 at T = Tstep
type Step struct {
	Nc     int     // number of components
	Tstep  float64 // temperature of jump
	L0, L1 float64 // liquid fractions below and above Tstep
}

// add to database
func init() {
	allocators["constant"] = func() Model { return new(Constant) }
	allocators["failing"] = func() Model { return new(Failing) }
	allocators["step"] = func() Model { return new(Step) }
}

// Init initialises this structure
func (o *Constant) Init(prms Prms) (err error) {
	o.Nc, o.L = 2, 0.3
	for _, p := range prms {
		switch p.N {
		case "nc":
			o.Nc = int(p.V)
		case "L":
			o.L = p.V
		}
	}
	if o.Nc < 1 || o.L < 0 || o.L > 1 {
		return chk.Err("constant: nc must be positive and L must be in [0,1]. nc=%d L=%g", o.Nc, o.L)
	}
	return
}

// Ncomp returns the number of components
func (o *Constant) Ncomp() int { return o.Nc }

// Flash computes the phase split
func (o *Constant) Flash(T, P float64, masses []float64, prms *flash.Params) (res *flash.Result, err error) {
	if err = checkMasses(o.Nc, masses); err != nil {
		return
	}
	res = flash.NewResult(o.Nc)
	for i, m := range masses {
		res.Masses[flash.LIQUID][i] = o.L * m
		res.Masses[flash.VAPOUR][i] = (1 - o.L) * m
	}
	res.Densities = [flash.NPHASES]float64{1, 1}
	return
}

// Init initialises this structure
func (o *Failing) Init(prms Prms) (err error) {
	o.Nc = 1
	for _, p := range prms {
		switch p.N {
		case "nc":
			o.Nc = int(p.V)
		case "Tfail":
			o.Tfail = p.V
		}
	}
	if o.Nc < 1 {
		return chk.Err("failing: number of components must be positive. %d is invalid", o.Nc)
	}
	return
}

// Ncomp returns the number of components
func (o *Failing) Ncomp() int { return o.Nc }

// Flash returns an error if T > Tfail; otherwise all mass is liquid
func (o *Failing) Flash(T, P float64, masses []float64, prms *flash.Params) (res *flash.Result, err error) {
	if err = checkMasses(o.Nc, masses); err != nil {
		return
	}
	if T > o.Tfail {
		return nil, chk.Err("failing: flash did not converge at T=%g P=%g", T, P)
	}
	res = flash.NewResult(o.Nc)
	copy(res.Masses[flash.LIQUID], masses)
	res.Densities[flash.LIQUID] = 1
	return
}

// Init initialises this structure
func (o *Step) Init(prms Prms) (err error) {
	o.Nc, o.Tstep, o.L0, o.L1 = 2, 500, 0.2, 0.8
	for _, p := range prms {
		switch p.N {
		case "nc":
			o.Nc = int(p.V)
		case "Tstep":
			o.Tstep = p.V
		case "L0":
			o.L0 = p.V
		case "L1":
			o.L1 = p.V
		}
	}
	if o.Nc < 1 || o.L0 <= 0 || o.L0 >= 1 || o.L1 <= 0 || o.L1 >= 1 {
		return chk.Err("step: nc must be positive and L0, L1 must be in (0,1). nc=%d L0=%g L1=%g", o.Nc, o.L0, o.L1)
	}
	return
}

// Ncomp returns the number of components
func (o *Step) Ncomp() int { return o.Nc }

// Flash computes the phase split
func (o *Step) Flash(T, P float64, masses []float64, prms *flash.Params) (res *flash.Result, err error) {
	if err = checkMasses(o.Nc, masses); err != nil {
		return
	}
	L := o.L0
	if T >= o.Tstep {
		L = o.L1
	}
	res = flash.NewResult(o.Nc)
	for i, m := range masses {
		res.Masses[flash.LIQUID][i] = L * m
		res.Masses[flash.VAPOUR][i] = (1 - L) * m
	}
	res.Densities = [flash.NPHASES]float64{1, 1}
	return
}
