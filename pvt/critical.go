// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pvt

import (
	"math"

	"github.com/sirupsen/logrus"
)

// findCritical searches for the critical point on the bubble/dew line. The
// end of the 0.5 contour line is tried first; then the liquid/vapour change
// along the bubble/dew line
func (o *Diagram) findCritical() bool {
	o.hasCrit, o.critPos = false, -1
	method := "contour"
	found := o.critFromContour()
	if !found && len(o.bdLine) > 2 {
		method = "phase change"
		var pt TPPoint
		var pos int
		pt, pos, found = o.critFromPhaseChange(true)
		if found {
			o.setCrit(pt, pos)
		}
	}
	if found {
		o.Log.WithFields(logrus.Fields{
			"T":      o.crit.T,
			"P":      o.crit.P,
			"method": method,
		}).Info("critical point found")
	} else {
		o.Log.Warn("critical point not found")
	}
	return found
}

// setCrit sets the critical point and its position in the bubble/dew line
func (o *Diagram) setCrit(pt TPPoint, pos int) {
	o.crit, o.critPos, o.hasCrit = pt, pos, true
}

// critFromContour takes the end of the 0.5 contour line as critical point if
// it is within one cell of the bubble/dew line. The point is inserted in the
// bubble/dew line unless it coincides with an existing point
func (o *Diagram) critFromContour() bool {
	if len(o.c05Line) <= 3 || len(o.bdLine) == 0 {
		return false
	}
	end := o.c05Line[len(o.c05Line)-1]

	// nearest point
	sT := 1.0 / (o.grid.Tmax() - o.grid.T[0])
	sP := 1.0 / (o.grid.Pmax() - o.grid.P[0])
	idx, dmin := -1, math.Inf(1)
	for i, pt := range o.bdLine {
		d := math.Hypot((pt.T-end.T)*sT, (pt.P-end.P)*sP)
		if d < dmin {
			idx, dmin = i, d
		}
	}
	near := o.bdLine[idx]
	if math.Abs(near.T-end.T) >= o.grid.DT() || math.Abs(near.P-end.P) >= o.grid.DP() {
		return false
	}

	// coincident
	if math.Abs(near.T-end.T) <= o.epsT && math.Abs(near.P-end.P) <= o.epsP {
		o.setCrit(near, idx)
		return true
	}

	// insert
	pos := idx + 1
	if near.T > end.T {
		pos = idx
	}
	o.bdLine = o.bdLine.Insert(pos, end)
	o.setCrit(end, pos)
	return true
}

// critFromPhaseChange searches along the bubble/dew line for the first pair
// of consecutive points with different single phases and bisects between
// them. With insert, the point is added to the bubble/dew line at pos
func (o *Diagram) critFromPhaseChange(insert bool) (pt TPPoint, pos int, ok bool) {
	pos = -1
	if len(o.bdLine) == 0 {
		return
	}
	sT := 1.0 / (o.grid.Tmax() - o.grid.T[0])
	sP := 1.0 / (o.grid.Pmax() - o.grid.P[0])
	prm := o.flashParams()
	s1, _, _ := o.state(o.bdLine[0].T, o.bdLine[0].P, prm)
	o.bdIters++
	for i := 1; i < len(o.bdLine); i++ {
		s2, _, _ := o.state(o.bdLine[i].T, o.bdLine[i].P, prm)
		o.bdIters++
		if s1 == s2 || !s1.Single() || !s2.Single() {
			s1 = s2
			continue
		}

		// bisection
		a, b := o.bdLine[i-1], o.bdLine[i]
		for it := 0; it < MAX_STEPS; it++ {
			m := TPPoint{(a.T + b.T) / 2.0, (a.P + b.P) / 2.0}
			s, _, _ := o.state(m.T, m.P, prm)
			o.bdIters++
			if s == s1 {
				a = m
			} else if s == s2 {
				b = m
			} else {
				break
			}
			if math.Max(math.Abs(a.P-b.P)*sP, math.Abs(a.T-b.T)*sT) < o.eps {
				pt, pos, ok = TPPoint{(a.T + b.T) / 2.0, (a.P + b.P) / 2.0}, i, true
				if insert {
					o.bdLine = o.bdLine.Insert(i, pt)
				}
				return
			}
		}
		s1 = s2
	}
	return
}

// fastCritical estimates the critical point as the extrapolated end of one
// contour line traced in one direction only. The 0.5 line is tried first,
// then 0.9, 0.8, ..., 0.1
func (o *Diagram) fastCritical() (pt TPPoint, ok bool) {
	vals := []float64{0.5, 0.9, 0.8, 0.7, 0.6, 0.4, 0.3, 0.2, 0.1}
	for _, v := range vals {
		line, found := o.traceContour(v, true)
		if found {
			o.Log.WithField("contour", v).Debug("critical point estimated")
			return line[len(line)-1], true
		}
	}
	return
}
