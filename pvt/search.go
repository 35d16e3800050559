// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pvt

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/ptdiag/flash"
	"github.com/sirupsen/logrus"
)

// FindBubbleDewLines computes the bubble/dew line, the 0.5 contour line and
// the critical point
//  Input:
//   trapT, trapP -- conditions that must lie inside the diagram
//   gridT        -- temperature axis replacing the current one; nil => keep
func (o *Diagram) FindBubbleDewLines(trapT, trapP float64, gridT []float64) (err error) {

	// grid
	if len(gridT) > 0 {
		err = o.grid.SetT(gridT)
		if err != nil {
			return
		}
		o.SetTolerance(o.eps)
	} else {
		if trapT > o.grid.Tceil {
			return chk.Err("temperature %g is above the ceiling %g", trapT, o.grid.Tceil)
		}
		if trapP > o.grid.Pceil {
			return chk.Err("pressure %g is above the ceiling %g", trapP, o.grid.Pceil)
		}
		okT := o.grid.EnsureT(trapT)
		okP := o.grid.EnsureP(trapP)
		if !okT || !okP {
			o.Log.WithFields(logrus.Fields{
				"trapt": trapT,
				"trapp": trapP,
				"tmax":  o.grid.Tmax(),
				"pmax":  o.grid.Pmax(),
			}).Warn("trap point cannot be reached by the grid")
		}
		o.SetTolerance(o.eps)
	}

	// clear
	o.bdLine, o.c05Line, o.spsLine = nil, nil, nil
	o.crit, o.critPos, o.hasCrit = TPPoint{}, -1, false

	// lines and critical point
	o.bdLine = o.traceBubbleDew()
	o.c05Line, _ = o.traceContour(0.5, false)
	o.findCritical()

	// vapour end first
	if n := len(o.bdLine); n > 1 {
		prm := o.flashParams()
		first, _, _ := o.state(o.bdLine[0].T, o.bdLine[0].P, prm)
		last, _, _ := o.state(o.bdLine[n-1].T, o.bdLine[n-1].P, prm)
		if first == flash.Liquid && last == flash.Vapour {
			o.bdLine.Reverse()
			if o.critPos >= 0 {
				o.critPos = n - 1 - o.critPos
			}
		}
	}

	// no two-phase region: use the liquid/vapour separation line
	if len(o.bdLine) == 0 && len(o.c05Line) == 0 {
		o.Log.Info("no two-phase region found; using single-phase separation line")
		o.fromSeparation()
	}

	o.Log.WithFields(logrus.Fields{
		"points":   len(o.bdLine),
		"contour":  len(o.c05Line),
		"critical": o.hasCrit,
	}).Debug("bubble/dew lines computed")
	return
}

// fromSeparation builds the bubble/dew line from the single-phase separation
// line of a pure substance. The point where the separation line stops being
// straight is taken as critical point
func (o *Diagram) fromSeparation() {
	psl := o.SinglePhaseSeparationLine()
	n := len(psl)
	if n == 0 {
		return
	}

	// skip vertical part
	c := 1
	for c < n && math.Abs(psl[c-1].T-psl[c].T) < o.eps {
		c++
	}

	// skip straight part
	blp := c
	slope := func(i int) float64 {
		return (psl[i].P - psl[blp].P) * 1e-6 / (psl[i].T - psl[blp].T)
	}
	for c++; c < n-1; c++ {
		if psl[c].T == psl[blp].T || psl[c+1].T == psl[blp].T {
			continue
		}
		if math.Abs(slope(c)-slope(c+1)) > 10*o.eps {
			break
		}
	}
	if c >= n-1 {
		return
	}

	// critical point and lines
	bd := psl[c:].Clone()
	bd.Reverse()
	o.bdLine = bd
	o.spsLine = psl[:c].Clone()
	o.setCrit(psl[c], len(bd)-1)
}

// CalcContourLine returns the line of constant liquid fraction val. The
// bubble (val=1) and dew (val=0) lines are taken from the bubble/dew line.
// FindBubbleDewLines must be called first
func (o *Diagram) CalcContourLine(val float64) (line TPLine, err error) {
	if math.IsNaN(val) || val < 0 || val > 1 {
		return nil, chk.Err("contour value must be in [0,1]. %g is invalid", val)
	}

	// bubble line: from liquid end to critical point
	if math.Abs(val-1) < o.eps {
		if o.critPos < 0 {
			return
		}
		for i := len(o.bdLine) - 1; i >= o.critPos; i-- {
			line = append(line, o.bdLine[i])
		}
		return
	}

	// dew line: from critical point to vapour end
	if val < o.eps {
		if o.critPos < 0 {
			return
		}
		for i := o.critPos; i >= 0; i-- {
			line = append(line, o.bdLine[i])
		}
		return
	}

	if math.Abs(val-0.5) < o.eps && len(o.c05Line) > 0 {
		return o.c05Line.Clone(), nil
	}
	line, _ = o.traceContour(val, false)
	return
}

// ContourLines computes one contour line per value
func (o *Diagram) ContourLines(vals []float64) (lines []TPLine, err error) {
	lines = make([]TPLine, len(vals))
	for i, v := range vals {
		lines[i], err = o.CalcContourLine(v)
		if err != nil {
			return nil, err
		}
	}
	return
}

// CalcContourLines computes contour lines and returns them as a flat list of
// T,P values where each line is terminated by -1,-1
func (o *Diagram) CalcContourLines(vals []float64) (flat []float64, err error) {
	lines, err := o.ContourLines(vals)
	if err != nil {
		return
	}
	return Flatten(lines), nil
}

// SinglePhaseSeparationLine returns the line separating liquid-only from
// vapour-only states. The liquid/vapour change along the bubble/dew line, if
// any, is appended. The line is computed once
func (o *Diagram) SinglePhaseSeparationLine() TPLine {
	if len(o.spsLine) > 0 {
		return o.spsLine
	}
	line := o.traceSeparation()
	if len(line) == 0 {
		return nil
	}
	if pt, _, ok := o.critFromPhaseChange(false); ok {
		line = append(line, pt)
	}
	o.spsLine = line
	return o.spsLine
}

// SearchCriticalPoint estimates the critical point by tracing one contour line
// in one direction only. Returns (0,0) and false if no line reached the
// bubble/dew line
func (o *Diagram) SearchCriticalPoint() (pt TPPoint, ok bool) {
	return o.fastCritical()
}

// SearchAoverBTerm searches for the A/B value that makes the liquid/vapour
// division of the one-phase region pass through the critical point. The
// configured value is returned if the search fails
func (o *Diagram) SearchAoverBTerm() float64 {

	// critical temperature
	critT := o.crit.T
	found := o.hasCrit
	if len(o.c05Line) == 0 {
		var pt TPPoint
		pt, found = o.fastCritical()
		if found {
			critT = pt.T
			o.crit, o.hasCrit = pt, true
		}
	}
	if !found {
		o.Log.Warn("A/B search: critical point not available")
		return o.Cfg.AoverB
	}

	// cell with critical point
	ci := int(math.Floor((critT - o.grid.T[0]) / o.grid.DT()))
	if ci <= 0 || ci >= o.grid.Nt()-2 {
		return o.Cfg.AoverB
	}
	ltp, rtp := o.grid.T[ci], o.grid.T[ci+1]
	pp := o.grid.Pmax()

	// bisection
	lo, hi := 1.0, 10.0
	prm := o.flashParams()
	prm.AoverB = o.Cfg.AoverB
	for it := 0; it < MAX_STEPS; it++ {
		s1, _, _ := o.state(ltp, pp, prm)
		s2, _, _ := o.state(rtp, pp, prm)
		o.abIters += 2

		// still two-phase: go up
		if s1 == flash.Both || s2 == flash.Both {
			pp *= 1.1
			it--
			if pp > AB_MAX_PRES {
				return o.Cfg.AoverB
			}
			continue
		}
		if !s1.Single() || !s2.Single() {
			return o.Cfg.AoverB
		}

		if s1 == s2 {
			if s1 == flash.Liquid {
				lo = prm.AoverB
			} else {
				hi = prm.AoverB
			}
			prm.AoverB = (lo + hi) / 2.0
		} else {
			ltp += (critT - ltp) / 2.0
			rtp -= (rtp - critT) / 2.0
		}

		// converged
		if math.Abs(rtp-ltp) < o.epsT || math.Abs(hi-lo)/(hi+lo) < o.eps {
			ab := (lo + hi) / 2.0
			o.Log.WithFields(logrus.Fields{
				"aoverb": ab,
				"iters":  it + 1,
			}).Info("A/B term found")
			return ab
		}
	}
	return o.Cfg.AoverB
}
