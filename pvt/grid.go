// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pvt

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// values stored in the cache of liquid fractions
const (
	UNCOMPUTED = -1.0 // liquid fraction not computed yet
	FAILED     = -2.0 // flash calculation failed at this node
)

// Grid holds the temperature and pressure axes and the cache of liquid
// fractions at grid nodes. Axes are strictly increasing and grow only at the
// tail; cached values are never overwritten
type Grid struct {
	T     []float64 // [nt] temperatures
	P     []float64 // [np] pressures
	Tceil float64   // axes do not grow beyond these values
	Pceil float64   // absolute pressure ceiling

	// cache
	frac []float64 // [np*nt] liquid fractions; row-major: index = p*nt + t
}

// NewGrid returns a new grid with npts linearly spaced points along each axis
func NewGrid(npts int, tmin, tmax, pmin, pmax float64) (o *Grid) {
	o = new(Grid)
	o.T = utl.LinSpace(tmin, tmax, npts)
	o.P = utl.LinSpace(pmin, pmax, npts)
	o.Tceil = TCEIL_COEF * tmax
	o.Pceil = PCEIL_COEF * pmax
	o.frac = make([]float64, npts*npts)
	for i := range o.frac {
		o.frac[i] = UNCOMPUTED
	}
	return
}

// Nt returns the number of temperatures
func (o *Grid) Nt() int { return len(o.T) }

// Np returns the number of pressures
func (o *Grid) Np() int { return len(o.P) }

// Tmax returns the last temperature
func (o *Grid) Tmax() float64 { return o.T[len(o.T)-1] }

// Pmax returns the last pressure
func (o *Grid) Pmax() float64 { return o.P[len(o.P)-1] }

// DT returns the temperature step of the first cell
func (o *Grid) DT() float64 { return o.T[1] - o.T[0] }

// DP returns the pressure step of the first cell
func (o *Grid) DP() float64 { return o.P[1] - o.P[0] }

// In tells whether indices (p,t) correspond to a node
func (o *Grid) In(p, t int) bool {
	return p >= 0 && t >= 0 && p < len(o.P) && t < len(o.T)
}

// Get returns the cached liquid fraction at node (p,t)
func (o *Grid) Get(p, t int) float64 {
	if !o.In(p, t) {
		chk.Panic("grid node (p=%d, t=%d) is out of range (np=%d, nt=%d)", p, t, len(o.P), len(o.T))
	}
	return o.frac[p*len(o.T)+t]
}

// Set caches the liquid fraction at node (p,t). Nodes already holding a value are not modified
func (o *Grid) Set(p, t int, val float64) {
	if !o.In(p, t) {
		chk.Panic("grid node (p=%d, t=%d) is out of range (np=%d, nt=%d)", p, t, len(o.P), len(o.T))
	}
	k := p*len(o.T) + t
	if o.frac[k] == UNCOMPUTED {
		o.frac[k] = val
	}
}

// ExtendT adds npts temperatures using the last step. Returns false if the
// temperature ceiling does not allow any new point
func (o *Grid) ExtendT(npts int) bool {
	n := len(o.T)
	dt := o.T[n-1] - o.T[n-2]
	for npts > 0 && o.T[n-1]+float64(npts)*dt > o.Tceil {
		npts--
	}
	if npts < 1 {
		return false
	}
	last := o.T[n-1]
	for i := 1; i <= npts; i++ {
		o.T = append(o.T, last+float64(i)*dt)
	}
	o.resize(len(o.P), n)
	return true
}

// ExtendP adds pressures using the last step until pmax (rounded to the
// nearest step count) is covered, without exceeding the ceiling. Returns false
// if no point could be added
func (o *Grid) ExtendP(pmax float64) bool {
	n := len(o.P)
	last := o.P[n-1]
	pmax = math.Min(pmax, o.Pceil)
	if pmax <= last {
		return false
	}
	dp := last - o.P[n-2]
	m := int(math.Floor((pmax-last)/dp + 0.5))
	if m < 1 {
		m = 1
	}
	for m > 0 && last+float64(m)*dp > o.Pceil {
		m--
	}
	if m < 1 {
		return false
	}
	for i := 1; i <= m; i++ {
		o.P = append(o.P, last+float64(i)*dp)
	}
	o.resize(n, len(o.T))
	return true
}

// EnsureT extends the temperature axis until it covers value. Returns false
// if the ceiling was reached first
func (o *Grid) EnsureT(value float64) bool {
	for o.Tmax() < value {
		if !o.ExtendT(EXT_STEPS) {
			return false
		}
	}
	return true
}

// EnsureP extends the pressure axis until it covers value. Returns false if
// the ceiling was reached first
func (o *Grid) EnsureP(value float64) bool {
	for o.Pmax() < value {
		if !o.ExtendP(value) {
			return false
		}
	}
	return true
}

// SetT replaces the temperature axis and clears the cache
func (o *Grid) SetT(T []float64) (err error) {
	if len(T) < 2 {
		return chk.Err("temperature grid must have at least 2 points. %d is invalid", len(T))
	}
	for i := 1; i < len(T); i++ {
		if T[i] <= T[i-1] {
			return chk.Err("temperature grid must be strictly increasing. T[%d]=%g ≤ T[%d]=%g", i, T[i], i-1, T[i-1])
		}
	}
	if T[0] <= 0 {
		return chk.Err("temperatures must be positive. T[0]=%g is invalid", T[0])
	}
	o.T = make([]float64, len(T))
	copy(o.T, T)
	o.Tceil = math.Max(o.Tceil, o.Tmax())
	o.frac = make([]float64, len(o.P)*len(o.T))
	for i := range o.frac {
		o.frac[i] = UNCOMPUTED
	}
	return
}

// resize re-allocates the cache after the axes have grown; npOld and ntOld
// are the sizes before growing
func (o *Grid) resize(npOld, ntOld int) {
	np, nt := len(o.P), len(o.T)
	frac := make([]float64, np*nt)
	for i := range frac {
		frac[i] = UNCOMPUTED
	}
	for p := 0; p < npOld; p++ {
		copy(frac[p*nt:p*nt+ntOld], o.frac[p*ntOld:(p+1)*ntOld])
	}
	o.frac = frac
}
