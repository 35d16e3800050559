// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pvt

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/ptdiag/flash"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
)

// Diagram computes the P/T phase diagram of one mixture
type Diagram struct {

	// input
	Oracle flash.Oracle      // flash calculator
	Type   flash.DiagramType // how fractions are measured
	Masses []float64         // [ncomp] component masses
	Cfg    Config            // settings

	// Log receives diagnostic messages. It is taken from Cfg.Log
	Log logrus.FieldLogger

	// grid
	grid       *Grid
	eps        float64 // tolerance
	epsT, epsP float64 // absolute tolerances along each axis

	// results
	bdLine   TPLine  // bubble/dew line
	c05Line  TPLine  // 0.5 contour line
	spsLine  TPLine  // single-phase separation line
	crit     TPPoint // critical point
	critPos  int     // index of critical point in bdLine; -1 => not in line
	hasCrit  bool    // critical point was found
	molarMas flash.MolarMasser

	// counters
	bdIters  int // number of flash calls by bubble/dew searches
	isoIters int // number of flash calls by contour searches
	abIters  int // number of steps of A/B search
}

// New returns a new phase diagram calculator
//  Input:
//   oracle -- flash calculator
//   typ    -- diagram type
//   masses -- [ncomp] component masses
//   cfg    -- settings; nil => defaults
func New(oracle flash.Oracle, typ flash.DiagramType, masses []float64, cfg *Config) (o *Diagram, err error) {

	// check
	if oracle == nil {
		return nil, chk.Err("flash calculator must be given")
	}
	if len(masses) != oracle.Ncomp() {
		return nil, chk.Err("composition must have %d components. %d is invalid", oracle.Ncomp(), len(masses))
	}
	for i, m := range masses {
		if m < 0 || math.IsNaN(m) {
			return nil, chk.Err("mass of component %d must be non-negative. %g is invalid", i, m)
		}
	}
	if floats.Sum(masses) <= 0 {
		return nil, chk.Err("total mass of mixture must be positive")
	}

	// new diagram
	o = new(Diagram)
	o.Oracle = oracle
	o.Type = typ
	o.Masses = make([]float64, len(masses))
	copy(o.Masses, masses)
	o.critPos = -1

	// molar masses
	if mm, ok := oracle.(flash.MolarMasser); ok {
		o.molarMas = mm
	}
	if typ == flash.Mole && o.molarMas == nil {
		return nil, chk.Err("mole fraction diagram requires a flash calculator reporting molar masses")
	}

	// settings
	if cfg == nil {
		o.Cfg.SetDefault()
	} else {
		o.Cfg = *cfg
	}
	err = o.Cfg.PostProcess()
	if err != nil {
		return nil, err
	}
	o.Log = o.Cfg.Log
	if o.Log == nil {
		o.Log = logrus.StandardLogger()
	}

	// grid
	o.grid = NewGrid(o.Cfg.Npts, o.Cfg.Tmin, o.Cfg.Tmax, o.Cfg.Pmin, o.Cfg.Pmax)
	o.SetTolerance(o.Cfg.Tol)
	o.checkTopBoundary()
	return
}

// SetTolerance sets the tolerance of all searches
func (o *Diagram) SetTolerance(tol float64) {
	o.eps = tol
	o.Cfg.Tol = tol
	o.Cfg.StopTol = tol * 1e-2
	o.epsT = tol * (o.grid.Tmax() - o.grid.T[0]) / float64(o.grid.Nt())
	o.epsP = tol * (o.grid.Pmax() - o.grid.P[0]) / float64(o.grid.Np())
}

// checkTopBoundary grows the pressure axis until no two-phase state is found
// along the top row or the ceiling is reached
func (o *Diagram) checkTopBoundary() {
	nt := o.grid.Nt()
	step := nt / 10
	if step < 1 {
		step = 1
	}
	for {
		top := o.grid.Np() - 1
		twoPhase := false
		for t := 0; t < nt && !twoPhase; t += step {
			twoPhase = o.phase(top, t) == flash.Both
		}
		if !twoPhase {
			return
		}
		pmin := o.grid.P[0]
		if !o.grid.ExtendP(pmin + 2*(o.grid.Pmax()-pmin)) {
			o.Log.WithFields(logrus.Fields{
				"pmax":    o.grid.Pmax(),
				"ceiling": o.grid.Pceil,
			}).Warn("pressure ceiling reached with two phases at the top boundary")
			return
		}
		o.Log.WithField("pmax", o.grid.Pmax()).Debug("pressure axis extended")
	}
}

// accessors ///////////////////////////////////////////////////////////////////////////////////////

// GridT returns the temperature axis
func (o *Diagram) GridT() []float64 { return o.grid.T }

// GridP returns the pressure axis
func (o *Diagram) GridP() []float64 { return o.grid.P }

// GridSize returns the number of pressures and temperatures
func (o *Diagram) GridSize() (np, nt int) { return o.grid.Np(), o.grid.Nt() }

// Tolerances returns the relative tolerance and the absolute ones along T and P
func (o *Diagram) Tolerances() (eps, epsT, epsP float64) { return o.eps, o.epsT, o.epsP }

// LiquidFraction returns the liquid fraction at grid node (p,t), computing it
// if needed. Returns -1 if (p,t) is outside the grid or the flash failed
func (o *Diagram) LiquidFraction(p, t int) float64 {
	if !o.grid.In(p, t) {
		return UNCOMPUTED
	}
	o.phase(p, t)
	v := o.grid.Get(p, t)
	if v < 0 {
		return UNCOMPUTED
	}
	return v
}

// BubbleDewLine returns the bubble/dew line, ordered from the vapour end to the liquid end
func (o *Diagram) BubbleDewLine() TPLine { return o.bdLine }

// CriticalPoint returns the critical point; ok is false (and pt is (0,0)) if not found
func (o *Diagram) CriticalPoint() (pt TPPoint, ok bool) {
	if !o.hasCrit {
		return TPPoint{}, false
	}
	return o.crit, true
}

// CriticalIndex returns the index of the critical point in the bubble/dew line; -1 if none
func (o *Diagram) CriticalIndex() int { return o.critPos }

// Cricondentherm returns the bubble/dew point of maximum temperature; (0,0) if none
func (o *Diagram) Cricondentherm() TPPoint { return o.bdLine.MaxT() }

// Cricondenbar returns the bubble/dew point of maximum pressure; (0,0) if none
func (o *Diagram) Cricondenbar() TPPoint { return o.bdLine.MaxP() }

// Iterations returns the counters of bubble/dew, contour and A/B searches
func (o *Diagram) Iterations() (bubbleDew, isoline, aoverb int) {
	return o.bdIters, o.isoIters, o.abIters
}

// ResetCounters sets all counters to zero
func (o *Diagram) ResetCounters() {
	o.bdIters, o.isoIters, o.abIters = 0, 0, 0
}

// BubblePressure returns the pressure on the bubble/dew line at temperature T
// by linear interpolation between the last pair of points bracketing T
func (o *Diagram) BubblePressure(T float64) (P float64, ok bool) {
	for i := len(o.bdLine) - 2; i >= 0; i-- {
		a, b := o.bdLine[i], o.bdLine[i+1]
		if math.Min(a.T, b.T) < T && T <= math.Max(a.T, b.T) {
			return a.P + (T-a.T)*(b.P-a.P)/(b.T-a.T), true
		}
	}
	return 0, false
}
