// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pvt

import (
	"math"

	"github.com/cpmech/ptdiag/flash"
)

// extrapolate extends segment a-b of a contour line until the grid boundary
// and searches along the extension for the point where the two-phase region
// ends. The point is rejected if it is further from b than 20% of the length
// of line
func (o *Diagram) extrapolate(line TPLine, a, b TPPoint) (pt TPPoint, ok bool) {

	// scaling to [0,1]×[0,1]
	T0, P0 := o.grid.T[0], o.grid.P[0]
	Tn, Pn := o.grid.Tmax(), o.grid.Pmax()
	sT, sP := 1.0/(Tn-T0), 1.0/(Pn-P0)
	dist := func(x, y TPPoint) float64 {
		return math.Hypot((x.T-y.T)*sT, (x.P-y.P)*sP)
	}
	var length float64
	for i := 1; i < len(line); i++ {
		length += dist(line[i-1], line[i])
	}

	// point on grid boundary: top, right, left, bottom
	dT, dP := b.T-a.T, b.P-a.P
	var c TPPoint
	found := false
	for i := 0; i < 4 && !found; i++ {
		switch i {
		case 0:
			if math.Abs(dP) <= o.epsP {
				continue
			}
			c = TPPoint{a.T + (Pn-a.P)/dP*dT, Pn}
		case 1:
			if math.Abs(dT) <= o.epsT {
				continue
			}
			c = TPPoint{Tn, a.P + (Tn-a.T)/dT*dP}
		case 2:
			if math.Abs(dT) <= o.epsT {
				continue
			}
			c = TPPoint{T0, a.P + (T0-a.T)/dT*dP}
		case 3:
			if math.Abs(dP) <= o.epsP {
				continue
			}
			c = TPPoint{a.T + (P0-a.P)/dP*dT, P0}
		}
		forward := dT*sT*(c.T-a.T)*sT+dP*sP*(c.P-a.P)*sP >= 0
		found = forward && c.T+o.epsT > T0 && c.T-o.epsT < Tn && c.P+o.epsP > P0 && c.P-o.epsP < Pn
	}
	if !found {
		return
	}
	c.T = math.Min(math.Max(c.T, T0), Tn)
	c.P = math.Min(math.Max(c.P, P0), Pn)

	// the boundary point must be in the one-phase region
	prm := o.flashParams()
	s, _, _ := o.state(c.T, c.P, prm)
	o.isoIters++
	if !s.Single() {
		return
	}

	// bisection along the extension
	l := b
	for it := 0; it < MAX_STEPS; it++ {
		m := TPPoint{(l.T + c.T) / 2.0, (l.P + c.P) / 2.0}
		s, _, _ = o.state(m.T, m.P, prm)
		o.isoIters++
		if s == flash.Both {
			l = m
		} else {
			c = m
		}
		if dist(l, c) < o.eps {
			if dist(b, c) < 0.2*length {
				return c, true
			}
			return
		}
	}
	return
}
