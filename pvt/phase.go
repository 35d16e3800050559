// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pvt

import "github.com/cpmech/ptdiag/flash"

// Phase returns the phase state at grid node (p,t). The liquid fraction is
// computed once and cached
func (o *Diagram) Phase(p, t int) flash.State {
	if !o.grid.In(p, t) {
		return flash.Unknown
	}
	return o.phase(p, t)
}

// Classify returns the phase state and fractions at (T,P). The cache is not used
func (o *Diagram) Classify(T, P float64) (s flash.State, liq, vap float64) {
	return o.state(T, P, o.flashParams())
}

// flashParams returns the settings passed to the flash calculator
func (o *Diagram) flashParams() *flash.Params {
	prm := &flash.Params{
		MaxIters:    o.Cfg.MaxIters,
		StopTol:     o.Cfg.StopTol,
		NewtonRelax: o.Cfg.NewtonRelax,
	}
	if o.Cfg.ChangeAoverB {
		prm.AoverB = o.Cfg.AoverB
	}
	return prm
}

// fractions runs the flash calculator at (T,P); ok is false if it failed
func (o *Diagram) fractions(T, P float64, prm *flash.Params) (liq, vap float64, ok bool) {
	res, err := o.Oracle.Flash(T, P, o.Masses, prm)
	if err != nil || res == nil {
		return
	}
	liq, vap, err = flash.Fractions(o.Type, res, o.Masses, o.molarMas, o.eps)
	if err != nil {
		return 0, 0, false
	}
	return liq, vap, true
}

// phase returns the phase state at node (p,t) using the cache
func (o *Diagram) phase(p, t int) flash.State {
	v := o.grid.Get(p, t)
	if v == UNCOMPUTED {
		o.bdIters++
		v = FAILED
		if liq, _, ok := o.fractions(o.grid.T[t], o.grid.P[p], o.flashParams()); ok {
			v = liq
		}
		o.grid.Set(p, t, v)
	}
	if v == FAILED {
		return flash.Unknown
	}
	return flash.StateOfLiquid(v)
}

// frac returns the cached liquid fraction at node (p,t); phase(p,t) must be called first
func (o *Diagram) frac(p, t int) float64 {
	return o.grid.Get(p, t)
}

// state returns the phase state and fractions at (T,P) without touching the cache
func (o *Diagram) state(T, P float64, prm *flash.Params) (s flash.State, liq, vap float64) {
	liq, vap, ok := o.fractions(T, P, prm)
	if !ok {
		return flash.Unknown, 0, 0
	}
	return flash.StateOf(liq, vap), liq, vap
}
