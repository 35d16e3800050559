// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pvt

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/ptdiag/flash"
)

// sample holds a point together with its phase state and liquid fraction
type sample struct {
	TPPoint
	s flash.State // phase state
	f float64     // liquid fraction
}

// node returns the sample corresponding to grid node (p,t)
func (o *Diagram) node(p, t int) sample {
	s := o.phase(p, t)
	return sample{TPPoint{o.grid.T[t], o.grid.P[p]}, s, o.frac(p, t)}
}

// sampleAt returns the sample at (T,P) computed without the cache
func (o *Diagram) sampleAt(T, P float64) sample {
	s, liq, _ := o.state(T, P, o.flashParams())
	return sample{TPPoint{T, P}, s, liq}
}

// axis tells whether segment (p1,t1)-(p2,t2) varies along T; it panics if
// both or none of the indices vary
func axis(p1, t1, p2, t2 int) (alongT bool) {
	alongT = p1 == p2 && t1 != t2
	if !alongT && (p1 == p2 || t1 != t2) {
		chk.Panic("segment (p=%d,t=%d)-(p=%d,t=%d) must vary along one axis only", p1, t1, p2, t2)
	}
	return
}

// bisectBubbleDew searches for the bubble/dew point on the grid segment
// (p1,t1)-(p2,t2). One end must be two-phase and the other one must not.
// The returned point is the end of the final bracket lying outside of the
// two-phase region
func (o *Diagram) bisectBubbleDew(p1, t1, p2, t2 int) (pt TPPoint, ok bool) {

	// check
	alongT := axis(p1, t1, p2, t2)
	s1, s2 := o.phase(p1, t1), o.phase(p2, t2)
	if s1 == flash.Unknown || s2 == flash.Unknown || s1 == s2 {
		return
	}
	if s1 != flash.Both && s2 != flash.Both {
		return
	}

	// bracket
	pt = TPPoint{o.grid.T[t1], o.grid.P[p1]}
	v1, v2 := pt.P, o.grid.P[p2]
	if alongT {
		v1, v2 = pt.T, o.grid.T[t2]
	}

	// bisection
	prm := o.flashParams()
	for it := 0; it < MAX_STEPS; it++ {
		v := (v1 + v2) / 2.0
		T, P := pt.T, v
		if alongT {
			T, P = v, pt.P
		}
		s, _, _ := o.state(T, P, prm)
		o.bdIters++
		switch {
		case s == flash.Unknown:
			return pt, false
		case s == s1:
			v1 = v
		case s == s2:
			v2 = v
		case s != flash.Both: // another single phase: replace the single-phase end
			if s1 != flash.Both {
				v1, s1 = v, s
			} else {
				v2, s2 = v, s
			}
		}

		// converged
		if math.Abs(v1-v2) < o.eps*(v1+v2) {
			switch {
			case s1 == flash.Both:
				v = v2
			case s2 == flash.Both:
				v = v1
			default:
				v = (v1 + v2) / 2.0
			}
			if alongT {
				pt.T = v
			} else {
				pt.P = v
			}
			return pt, true
		}
	}
	return pt, false
}

// bisectContour searches for the point on segment a-b where the liquid
// fraction equals frac. New guesses are obtained by linear interpolation
// of frac (regula falsi). The segment must be along T or along P
func (o *Diagram) bisectContour(a, b sample, frac float64) (pt TPPoint, ok bool) {

	// check
	if a.s == flash.Unknown || b.s == flash.Unknown {
		return
	}
	if math.Min(a.f, b.f) > frac || math.Max(a.f, b.f) < frac || (a.s == b.s && a.s != flash.Both) {
		return
	}
	alongT := math.Abs(a.P-b.P) < o.eps && math.Abs(a.T-b.T) > o.eps
	if !alongT && (math.Abs(a.P-b.P) < o.eps || math.Abs(a.T-b.T) > o.eps) {
		chk.Panic("segment (T=%g,P=%g)-(T=%g,P=%g) must vary along one axis only", a.T, a.P, b.T, b.P)
	}

	// bracket
	eps := o.epsP
	v1, v2 := a.P, b.P
	if alongT {
		eps = o.epsT
		v1, v2 = a.T, b.T
	}
	f1, f2 := a.f, b.f
	s1, s2 := a.s, b.s
	at := func(v float64) TPPoint {
		if alongT {
			return TPPoint{v, a.P}
		}
		return TPPoint{a.T, v}
	}

	// iterations
	prm := o.flashParams()
	prevErr := math.Inf(1)
	ndiverg := 0
	v := (v1 + v2) / 2.0
	for it := 0; it < MAX_STEPS && math.Abs(v1-v2) > eps; it++ {

		// new guess
		if f1 != f2 {
			v = v1 + (frac-f1)/(f2-f1)*(v2-v1)
		}
		if v < 0 {
			return
		}
		pt = at(v)
		s, f, _ := o.state(pt.T, pt.P, prm)
		o.isoIters++
		if s == flash.Unknown {
			return pt, false
		}

		// single phase: replace the end with the same state
		if s != flash.Both {
			switch {
			case s == s1:
				v1, f1 = v, f
			case s == s2:
				v2, f2 = v, f
			case s1 == flash.Both && s2 == flash.Both:
				return pt, true
			default:
				return pt, false
			}
		} else {

			// divergence
			e := math.Abs(f - frac)
			if e >= prevErr {
				ndiverg++
				if ndiverg >= 3 {
					return pt, false
				}
			} else {
				ndiverg = 0
			}
			prevErr = e

			// narrow
			c := (frac - f) * (f1 - f2)
			switch {
			case c > 0:
				v2, f2, s2 = v, f, s
			case c < 0:
				v1, f1, s1 = v, f, s
			default:
				return pt, true
			}
			if math.Abs(f-frac) < o.eps*(f+frac) {
				return pt, true
			}
		}

		// fraction outside bracket: keep the linear approximation
		if math.Min(f1, f2) > frac || math.Max(f1, f2) < frac {
			return pt, true
		}
	}
	if math.Abs(v1-v2) <= eps {
		return at((v1 + v2) / 2.0), true
	}
	return pt, false
}

// bisectSeparation searches for the boundary between liquid-only and
// vapour-only states on the grid segment (p1,t1)-(p2,t2)
func (o *Diagram) bisectSeparation(p1, t1, p2, t2 int) (pt TPPoint, ok bool) {

	// check
	alongT := axis(p1, t1, p2, t2)
	s1, s2 := o.phase(p1, t1), o.phase(p2, t2)
	if s1 == flash.Unknown || s2 == flash.Unknown || s1 == s2 {
		return
	}

	// bracket
	pt = TPPoint{o.grid.T[t1], o.grid.P[p1]}
	eps := o.epsP
	v1, v2 := pt.P, o.grid.P[p2]
	if alongT {
		eps = o.epsT
		v1, v2 = pt.T, o.grid.T[t2]
	}

	// bisection
	prm := o.flashParams()
	for it := 0; it < MAX_STEPS; it++ {
		v := (v1 + v2) / 2.0
		T, P := pt.T, v
		if alongT {
			T, P = v, pt.P
		}
		s, _, _ := o.state(T, P, prm)
		o.bdIters++
		switch s {
		case flash.Unknown:
			return pt, false
		case s1:
			v1 = v
		case s2:
			v2 = v
		default: // third state: stop at the midpoint
			v1, v2 = v, v
		}
		if math.Abs(v1-v2) < eps {
			v = (v1 + v2) / 2.0
			if alongT {
				pt.T = v
			} else {
				pt.P = v
			}
			return pt, true
		}
	}
	return pt, false
}
