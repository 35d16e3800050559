// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package pvt implements the calculation of pressure-temperature phase
// diagrams of hydrocarbon mixtures: bubble/dew lines, critical point,
// cricondentherm, cricondenbar and liquid-fraction contour lines
package pvt

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// default bounds and constants
const (
	DEF_TMIN    = 173.15  // default minimum temperature [K]
	DEF_TMAX    = 1123.0  // default maximum temperature [K]
	DEF_PMIN    = 101325. // default minimum pressure [Pa]
	DEF_PMAX    = 30.0e6  // default maximum pressure [Pa]
	DEF_NPTS    = 100     // default number of points along each axis
	DEF_TOL     = 1e-4    // default tolerance
	DEF_AOVERB  = 2.0     // default critical A/B term
	DEF_MAXIT   = 400     // default max number of iterations of the flash nonlinear solver
	DEF_RELAX   = 1.0     // default Newton relaxation coefficient of the flash nonlinear solver
	MAX_STEPS   = 200     // max number of steps of bisection searches
	MAX_LEVEL   = 3       // max level of local grid refinement while tracing contours
	EXT_STEPS   = 5       // number of points added when extending an axis
	PCEIL_COEF  = 5.0     // pressure ceiling = PCEIL_COEF × maximum pressure
	TCEIL_COEF  = 2.0     // temperature ceiling = TCEIL_COEF × maximum temperature
	AB_MAX_PRES = 200e6   // pressure above which the A/B search gives up [Pa]
)

// TPPoint holds a (temperature, pressure) pair
type TPPoint struct {
	T float64 // temperature [K]
	P float64 // pressure [Pa]
}

// IsZero tells whether this point is the (0,0) "not found" sentinel
func (o TPPoint) IsZero() bool {
	return o.T == 0 && o.P == 0
}

// TPLine holds an ordered sequence of points
type TPLine []TPPoint

// Reverse reverses the order of points (in place)
func (o TPLine) Reverse() {
	for i, j := 0, len(o)-1; i < j; i, j = i+1, j-1 {
		o[i], o[j] = o[j], o[i]
	}
}

// Clone returns a copy of this line
func (o TPLine) Clone() TPLine {
	if o == nil {
		return nil
	}
	res := make(TPLine, len(o))
	copy(res, o)
	return res
}

// Temperatures returns the temperatures of all points
func (o TPLine) Temperatures() []float64 {
	res := make([]float64, len(o))
	for i, pt := range o {
		res[i] = pt.T
	}
	return res
}

// Pressures returns the pressures of all points
func (o TPLine) Pressures() []float64 {
	res := make([]float64, len(o))
	for i, pt := range o {
		res[i] = pt.P
	}
	return res
}

// Insert inserts pt at position i
func (o TPLine) Insert(i int, pt TPPoint) TPLine {
	o = append(o, TPPoint{})
	copy(o[i+1:], o[i:])
	o[i] = pt
	return o
}

// MaxT returns the point with maximum temperature; (0,0) if empty
func (o TPLine) MaxT() TPPoint {
	if len(o) == 0 {
		return TPPoint{}
	}
	return o[floats.MaxIdx(o.Temperatures())]
}

// MaxP returns the point with maximum pressure; (0,0) if empty
func (o TPLine) MaxP() TPPoint {
	if len(o) == 0 {
		return TPPoint{}
	}
	return o[floats.MaxIdx(o.Pressures())]
}

// Flatten converts lines into one array of (T,P) pairs with a (-1,-1) pair
// after each line
func Flatten(lines []TPLine) (res []float64) {
	for _, line := range lines {
		for _, pt := range line {
			res = append(res, pt.T, pt.P)
		}
		res = append(res, -1, -1)
	}
	return
}

// Unflatten performs the inverse operation of Flatten
func Unflatten(flat []float64) (lines []TPLine) {
	var cur TPLine
	for i := 0; i+1 < len(flat); i += 2 {
		if flat[i] == -1 && flat[i+1] == -1 {
			lines = append(lines, cur)
			cur = nil
			continue
		}
		cur = append(cur, TPPoint{flat[i], flat[i+1]})
	}
	return
}

// between tells whether v is strictly between a and b
func between(v, a, b float64) bool {
	return v > math.Min(a, b) && v < math.Max(a, b)
}
