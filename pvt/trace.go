// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pvt

import (
	"math"

	"github.com/cpmech/ptdiag/flash"
	"github.com/sirupsen/logrus"
)

// cellKey identifies a (sub)cell visited while tracing a contour
type cellKey struct {
	t, p  int // top level cell
	level int // refinement level
	sub   int // sub-cell index within the top level cell
}

// box holds the bounds of a refined sub-cell
type box struct {
	minT, maxT, minP, maxP float64
}

// growP extends the pressure axis when tracing reaches its top. Returns
// false if the ceiling does not allow growing
func (o *Diagram) growP() bool {
	n := o.grid.Np()
	dp := o.grid.P[n-1] - o.grid.P[n-2]
	if o.grid.ExtendP(o.grid.Pmax() + dp*EXT_STEPS) {
		o.Log.WithField("pmax", o.grid.Pmax()).Debug("pressure axis extended")
		return true
	}
	o.Log.WithFields(logrus.Fields{
		"pmax":    o.grid.Pmax(),
		"ceiling": o.grid.Pceil,
	}).Warn("pressure ceiling reached while tracing")
	return false
}

// growT extends the temperature axis when tracing reaches its right end.
// Returns false if the ceiling does not allow growing
func (o *Diagram) growT() bool {
	if o.grid.ExtendT(EXT_STEPS) {
		o.Log.WithField("tmax", o.grid.Tmax()).Debug("temperature axis extended")
		return true
	}
	o.Log.WithFields(logrus.Fields{
		"tmax":    o.grid.Tmax(),
		"ceiling": o.grid.Tceil,
	}).Warn("temperature ceiling reached while tracing")
	return false
}

// traceContour traces the line of constant liquid fraction val. The line is
// traced from a seed cell in both directions (only one direction if fast)
// and returned with increasing pressure from first to last point. ok tells
// whether the line could be extrapolated until the boundary of the two-phase
// region; in this case the extrapolated point is the last one
func (o *Diagram) traceContour(val float64, fast bool) (line TPLine, ok bool) {

	// seed
	seed, found := o.seedCell(val)
	if !found {
		return
	}

	// state
	p1, t1 := seed.p1, seed.t1
	level := 0
	inEdge, startEdge := -1, -1
	forward := true
	var b box
	visited := make(map[cellKey]bool)

	// restart tracing from the seed in the other direction
	restart := func() bool {
		if !forward || fast {
			return false
		}
		forward = false
		p1, t1 = seed.p1, seed.t1
		inEdge = startEdge
		level = 0
		line.Reverse()
		return true
	}

	for {
		// grid limits
		if p1+1 == o.grid.Np() {
			o.growP()
		}
		if t1+1 == o.grid.Nt() {
			o.growT()
		}
		if t1+1 >= o.grid.Nt() || p1+1 >= o.grid.Np() {
			if restart() {
				continue
			}
			break
		}

		// corners
		var c [4]sample
		if level == 0 {
			c = o.corners(p1, t1)
			b = box{o.grid.T[t1], o.grid.T[t1+1], o.grid.P[p1], o.grid.P[p1+1]}
		} else {
			c[0] = o.sampleAt(b.minT, b.minP)
			c[1] = o.sampleAt(b.minT, b.maxP)
			c[2] = o.sampleAt(b.maxT, b.maxP)
			c[3] = o.sampleAt(b.maxT, b.minP)
			o.isoIters += 4
		}

		// edges crossed by the contour
		var inters [4]bool
		nint := 0
		for i := 0; i < 4; i++ {
			a, z := c[i], c[(i+1)%4]
			if a.s == flash.Both && z.s == flash.Both && between(val, a.f, z.f) {
				inters[i] = true
				nint++
			}
		}

		// first cell: leave through the top, right or left edge
		if startEdge < 0 && nint > 1 {
			for _, i := range [...]int{1, 2, 0} {
				if inters[i] {
					startEdge = i
					break
				}
			}
			for i := 0; i < 4; i++ {
				if i != startEdge && inters[i] {
					inEdge = i
					break
				}
			}
		}

		// refine or give up this direction
		if nint < 2 {
			if level >= MAX_LEVEL && restart() {
				continue
			}
			if level < MAX_LEVEL {
				level++
				b = o.quarter(b, line)
				continue
			}
		}

		// find exit point and move to next (sub)cell
		moved := false
		for i := 0; i < 4; i++ {
			if !inters[i] || i == inEdge {
				continue
			}
			pt, found := o.bisectContour(c[i], c[(i+1)%4], val)
			if found {
				line = append(line, pt)
			}
			if level == 0 {
				p1, t1 = cross(i, p1, t1)
			} else {
				b = shift(b, i)
				switch {
				case b.minT+o.epsT < o.grid.T[t1]:
					level, t1 = 0, t1-1
				case b.maxT-o.epsT > o.grid.T[t1+1]:
					level, t1 = 0, t1+1
				case b.minP+o.epsP < o.grid.P[p1]:
					level, p1 = 0, p1-1
				case b.maxP-o.epsP > o.grid.P[p1+1]:
					level, p1 = 0, p1+1
				}
			}
			moved = found && t1 >= 0 && p1 >= 0
			if moved {
				key := o.key(p1, t1, level, b)
				if visited[key] {
					moved = false
				}
				visited[key] = true
			}
			inEdge = opposite(i)
			break
		}
		if !moved {
			if restart() {
				continue
			}
			break
		}
	}

	// high pressure last
	if len(line) > 0 && line[0].P > line[len(line)-1].P {
		line.Reverse()
	}

	// extend towards the bubble/dew line
	if n := len(line); n > 1 {
		var pt TPPoint
		pt, ok = o.extrapolate(line, line[n-2], line[n-1])
		if ok {
			line = append(line, pt)
		}
	}
	return
}

// quarter returns the quarter of b holding the last point of line
func (o *Diagram) quarter(b box, line TPLine) box {
	var pt TPPoint
	if len(line) > 0 {
		pt = line[len(line)-1]
	}
	midT := (b.minT + b.maxT) / 2.0
	midP := (b.minP + b.maxP) / 2.0
	left := pt.T+o.epsT > b.minT && pt.T-o.epsT < midT
	right := pt.T+o.epsT > midT && pt.T-o.epsT < b.maxT
	lower := pt.P+o.epsP > b.minP && pt.P-o.epsP < midP
	upper := pt.P+o.epsP > midP && pt.P-o.epsP < b.maxP
	switch {
	case left && lower:
		return box{b.minT, midT, b.minP, midP}
	case left && upper:
		return box{b.minT, midT, midP, b.maxP}
	case right && upper:
		return box{midT, b.maxT, midP, b.maxP}
	}
	return box{midT, b.maxT, b.minP, midP}
}

// shift moves the sub-cell b across its edge i
func shift(b box, i int) box {
	dT, dP := b.maxT-b.minT, b.maxP-b.minP
	switch i {
	case 0:
		b.minT, b.maxT = b.minT-dT, b.maxT-dT
	case 1:
		b.minP, b.maxP = b.minP+dP, b.maxP+dP
	case 2:
		b.minT, b.maxT = b.minT+dT, b.maxT+dT
	case 3:
		b.minP, b.maxP = b.minP-dP, b.maxP-dP
	}
	return b
}

// key returns the identifier of the (sub)cell b in top level cell (p,t)
func (o *Diagram) key(p, t, level int, b box) cellKey {
	if level == 0 {
		return cellKey{t, p, 0, 0}
	}
	n := 1 << uint(level)
	it := int(math.Floor((b.minT-o.grid.T[t])/(b.maxT-b.minT) + 0.5))
	ip := int(math.Floor((b.minP-o.grid.P[p])/(b.maxP-b.minP) + 0.5))
	return cellKey{t, p, level, ip*n + it}
}

// traceBubbleDew finds the first bubble/dew point on the grid and follows
// the boundary of the two-phase region from it
func (o *Diagram) traceBubbleDew() (line TPLine) {

	// first point
	p1, t1, inEdge := -1, -1, -1
scan:
	for p := 0; p < o.grid.Np()-1; p++ {
		for t := 0; t < o.grid.Nt()-1; t++ {
			if o.phase(p, t) != o.phase(p+1, t) {
				if pt, ok := o.bisectBubbleDew(p, t, p+1, t); ok {
					p1, t1, inEdge = p, t, 0
					line = append(line, pt)
					break scan
				}
			} else if o.phase(p, t) != o.phase(p, t+1) {
				if pt, ok := o.bisectBubbleDew(p, t, p, t+1); ok {
					p1, t1, inEdge = p, t, 3
					line = append(line, pt)
					break scan
				}
			}
		}
	}
	if p1 < 0 {
		return
	}

	// follow boundary
	visited := make(map[[2]int]bool)
	for {
		if t1+1 == o.grid.Nt() && !o.growT() {
			break
		}
		if p1+1 == o.grid.Np() && !o.growP() {
			break
		}
		s := o.phases(p1, t1)
		moved := false
		for i := 0; i < 4; i++ {
			sa, sb := s[i], s[(i+1)%4]
			if i == inEdge || sa == sb || (sa != flash.Both && sb != flash.Both) {
				continue
			}
			pa, ta, pb, tb := edge(i, p1, t1)
			pt, ok := o.bisectBubbleDew(pa, ta, pb, tb)
			if !ok {
				continue
			}
			line = append(line, pt)
			p1, t1 = cross(i, p1, t1)
			key := [2]int{p1, t1}
			moved = t1 >= 0 && p1 >= 0 && !visited[key]
			visited[key] = true
			inEdge = opposite(i)
			break
		}
		if !moved {
			break
		}
	}
	return
}

// traceSeparation follows the boundary between liquid-only and vapour-only
// states starting from the top or right edges of the grid
func (o *Diagram) traceSeparation() (line TPLine) {

	// first point: top edge
	p1, t1, inEdge := o.grid.Np()-1, 0, -1
	var pt TPPoint
	found := false
	s1 := o.phase(p1, 0)
	for t := 1; t < o.grid.Nt(); t++ {
		s2 := o.phase(p1, t)
		if s1 != s2 && s1.Single() && s2.Single() {
			t1 = t - 1
			pt, found = o.bisectSeparation(p1, t1, p1, t1+1)
			p1, inEdge = p1-1, 1
			break
		}
		s1 = s2
	}

	// first point: right edge
	if inEdge < 0 {
		p1, t1 = 0, o.grid.Nt()-1
		s1 = o.phase(0, t1)
		for p := 1; p < o.grid.Np(); p++ {
			s2 := o.phase(p, t1)
			if s1 != s2 && s1.Single() && s2.Single() {
				p1 = p - 1
				pt, found = o.bisectSeparation(p1, t1, p1+1, t1)
				t1, inEdge = t1-1, 2
				break
			}
			s1 = s2
		}
	}
	if inEdge < 0 {
		return
	}
	if found {
		line = append(line, pt)
	}

	// follow
	visited := make(map[[2]int]bool)
	for {
		if t1+1 >= o.grid.Nt() || p1+1 >= o.grid.Np() {
			break
		}
		s := o.phases(p1, t1)
		moved := false
		for i := 0; i < 4; i++ {
			sa, sb := s[i], s[(i+1)%4]
			if i == inEdge || sa == sb || !sa.Single() || !sb.Single() {
				continue
			}
			pa, ta, pb, tb := edge(i, p1, t1)
			pt, ok := o.bisectSeparation(pa, ta, pb, tb)
			if !ok {
				continue
			}
			line = append(line, pt)
			p1, t1 = cross(i, p1, t1)
			key := [2]int{p1, t1}
			moved = t1 >= 0 && p1 >= 0 && !visited[key]
			visited[key] = true
			inEdge = opposite(i)
			break
		}
		if !moved {
			break
		}
	}
	return
}
