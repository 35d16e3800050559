// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pvt

import "github.com/cpmech/ptdiag/flash"

// Cell corners and edges
//
//            1
//   1 *-------* 2
//     |       |
//   0 |       | 2      corner i = start of edge i
//     |       |
//   0 *-------* 3
//            3
//
//  corner 0: (p,t)   corner 1: (p+1,t)   corner 2: (p+1,t+1)   corner 3: (p,t+1)

// edge returns the grid nodes at the ends of edge i of cell (p,t)
func edge(i, p, t int) (pa, ta, pb, tb int) {
	switch i {
	case 0:
		return p, t, p + 1, t
	case 1:
		return p + 1, t, p + 1, t + 1
	case 2:
		return p, t + 1, p + 1, t + 1
	}
	return p, t, p, t + 1
}

// cross returns the cell next to (p,t) across edge i
func cross(i, p, t int) (int, int) {
	switch i {
	case 0:
		return p, t - 1
	case 1:
		return p + 1, t
	case 2:
		return p, t + 1
	}
	return p - 1, t
}

// opposite returns the edge of the next cell shared with the current one
func opposite(i int) int { return (i + 2) % 4 }

// corners returns the samples at the corners of cell (p,t)
func (o *Diagram) corners(p, t int) [4]sample {
	return [4]sample{o.node(p, t), o.node(p+1, t), o.node(p+1, t+1), o.node(p, t+1)}
}

// phases returns the phase states at the corners of cell (p,t)
func (o *Diagram) phases(p, t int) (s [4]flash.State) {
	s[0] = o.phase(p, t)
	s[1] = o.phase(p+1, t)
	s[2] = o.phase(p+1, t+1)
	s[3] = o.phase(p, t+1)
	return
}

// classes of (super)cells with respect to a contour value
const (
	cellUnknown      = iota // cannot tell; split
	cellOnePhase            // all corners in one-phase region
	cellTwoPhaseLess        // all corners two-phase with fraction ≤ value
	cellTwoPhaseMore        // all corners two-phase with fraction > value
	cellTwoPhaseCross       // all corners two-phase; contour crosses
	cellMixedCross          // one- and two-phase corners; contour crosses
)

// superCell holds a rectangle of grid cells: pressures [p1,p2] and temperatures [t1,t2]
type superCell struct {
	p1, p2, t1, t2 int
}

// unit tells whether the rectangle is one grid cell
func (c superCell) unit() bool { return c.p2-c.p1+c.t2-c.t1 == 2 }

// split divides the rectangle in (up to) 4 parts. The lower-left part is last
func (c superCell) split() (res []superCell) {
	p, t := c.p2, c.t2
	if c.p2-c.p1 > 1 {
		p = c.p1 + (c.p2-c.p1)/2
	}
	if c.t2-c.t1 > 1 {
		t = c.t1 + (c.t2-c.t1)/2
	}
	if p == c.p2 && t == c.t2 {
		return
	}
	if c.p2-p > 0 && t-c.t1 > 0 {
		res = append(res, superCell{p, c.p2, c.t1, t})
	}
	if p-c.p1 > 0 && c.t2-t > 0 {
		res = append(res, superCell{c.p1, p, t, c.t2})
	}
	if c.p2-p > 0 && c.t2-t > 0 {
		res = append(res, superCell{p, c.p2, t, c.t2})
	}
	if p-c.p1 > 0 && t-c.t1 > 0 {
		res = append(res, superCell{c.p1, p, c.t1, t})
	}
	return
}

// checkCell classifies a rectangle by the states of its corners
func (o *Diagram) checkCell(c superCell, val float64) int {
	corners := [4]sample{o.node(c.p1, c.t1), o.node(c.p2, c.t1), o.node(c.p2, c.t2), o.node(c.p1, c.t2)}
	var n1, n2, nless, nmore int
	for _, x := range corners {
		switch x.s {
		case flash.Both:
			n2++
			if x.f <= val {
				nless++
			} else {
				nmore++
			}
		case flash.Liquid, flash.Vapour:
			n1++
		}
	}
	switch {
	case n1 == 4:
		if max(c.p2-c.p1, c.t2-c.t1) > 20 { // large rectangles may hide a two-phase region
			return cellUnknown
		}
		return cellOnePhase
	case n2 == 4:
		if nless == 4 {
			return cellTwoPhaseLess
		}
		if nmore == 4 {
			return cellTwoPhaseMore
		}
		return cellTwoPhaseCross
	case n2 > 0 && n1 > 0 && nless > 0 && nmore > 0:
		return cellMixedCross
	}
	return cellUnknown
}

// seedCell searches (coarse to fine) for a grid cell crossed by the contour
// val. Cells with all corners in the two-phase region are preferred; a cell
// mixing one- and two-phase corners is returned otherwise
func (o *Diagram) seedCell(val float64) (seed superCell, ok bool) {
	var second superCell
	hasSecond := false
	stack := []superCell{{0, o.grid.Np() - 1, 0, o.grid.Nt() - 1}}
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch o.checkCell(c, val) {
		case cellMixedCross:
			if c.unit() {
				second, hasSecond = c, true
				continue
			}
			stack = append(stack, c.split()...)
		case cellUnknown:
			stack = append(stack, c.split()...)
		case cellTwoPhaseCross:
			if c.unit() {
				return c, true
			}
			stack = append(stack, c.split()...)
		}
	}
	return second, hasSecond
}
