// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/ptdiag/flash"
)

// Envelope implements a mixture whose two-phase region is a circular cap in
// the scaled plane x = (T-T0)/(T1-T0), y = (P-P0)/(P1-P0). Inside the circle
// the liquid fraction varies linearly along the direction n; contour lines
// are straight lines parallel to t and the critical point is c + R t
//
//            y ↑      crit
//              |    , - * - ,
//              |  ,  liquid  ' ,     n = (-cos α, sin α)
//              | ,    ↖ n   ↗ t ,    t = ( sin α, cos α)
//              |,       c         ,
//            --+--------------------→ x
type Envelope struct {

	// parameters
	Nc    int     // number of components
	Xc    float64 // scaled temperature of centre
	Yc    float64 // scaled pressure of centre
	R     float64 // scaled radius
	Alpha float64 // angle of contour lines with the pressure axis [rad]
	RhoL  float64 // density of liquid [kg/m³]
	Mw    float64 // molar mass of first component [kg/mol]
	T0    float64 // scaling: min temperature
	T1    float64 // scaling: max temperature
	P0    float64 // scaling: min pressure
	P1    float64 // scaling: max pressure

	// derived
	n [2]float64 // normal to contour lines
	t [2]float64 // direction of contour lines
}

// add to database
func init() {
	allocators["envelope"] = func() Model { return new(Envelope) }
}

// Init initialises this structure
func (o *Envelope) Init(prms Prms) (err error) {

	// default values
	o.Nc = 2
	o.Xc = 0.47
	o.Yc = 0.03
	o.R = 0.33
	o.Alpha = 0.35
	o.RhoL = 500
	o.Mw = 0.044
	o.T0, o.T1 = 173.15, 1123.0
	o.P0, o.P1 = 101325, 30e6

	// parameters
	for _, p := range prms {
		switch p.N {
		case "nc":
			o.Nc = int(p.V)
		case "xc":
			o.Xc = p.V
		case "yc":
			o.Yc = p.V
		case "r":
			o.R = p.V
		case "alpha":
			o.Alpha = p.V
		case "rhoL":
			o.RhoL = p.V
		case "mw":
			o.Mw = p.V
		case "T0":
			o.T0 = p.V
		case "T1":
			o.T1 = p.V
		case "P0":
			o.P0 = p.V
		case "P1":
			o.P1 = p.V
		}
	}

	// check
	if o.Nc < 1 {
		return chk.Err("envelope: number of components must be positive. %d is invalid", o.Nc)
	}
	if o.R <= 0 || o.RhoL <= 0 || o.Mw <= 0 {
		return chk.Err("envelope: radius, liquid density and molar mass must be positive. r=%g rhoL=%g mw=%g", o.R, o.RhoL, o.Mw)
	}
	if o.T1 <= o.T0 || o.P1 <= o.P0 {
		return chk.Err("envelope: scaling ranges are invalid. T=[%g,%g] P=[%g,%g]", o.T0, o.T1, o.P0, o.P1)
	}

	// derived
	o.n = [2]float64{-math.Cos(o.Alpha), math.Sin(o.Alpha)}
	o.t = [2]float64{math.Sin(o.Alpha), math.Cos(o.Alpha)}
	return
}

// Ncomp returns the number of components
func (o *Envelope) Ncomp() int { return o.Nc }

// MolarMass returns the molar mass of component comp
func (o *Envelope) MolarMass(comp int) float64 { return o.Mw * float64(comp+1) }

// Scale returns the scaled coordinates of (T,P)
func (o *Envelope) Scale(T, P float64) (x, y float64) {
	return (T - o.T0) / (o.T1 - o.T0), (P - o.P0) / (o.P1 - o.P0)
}

// Unscale returns the temperature and pressure at scaled coordinates (x,y)
func (o *Envelope) Unscale(x, y float64) (T, P float64) {
	return o.T0 + x*(o.T1-o.T0), o.P0 + y*(o.P1-o.P0)
}

// Critical returns the critical point
func (o *Envelope) Critical() (T, P float64) {
	return o.Unscale(o.Xc+o.R*o.t[0], o.Yc+o.R*o.t[1])
}

// Liquid returns the liquid fraction at (T,P); inside is false outside the
// two-phase region
func (o *Envelope) Liquid(T, P float64) (L float64, inside bool) {
	x, y := o.Scale(T, P)
	dx, dy := x-o.Xc, y-o.Yc
	d := o.n[0]*dx + o.n[1]*dy
	if dx*dx+dy*dy < o.R*o.R {
		return 0.5 + 0.5*d/o.R, true
	}
	if d > 0 {
		return 1, false
	}
	return 0, false
}

// Flash computes the phase split at (T,P)
func (o *Envelope) Flash(T, P float64, masses []float64, prms *flash.Params) (res *flash.Result, err error) {
	if err = checkMasses(o.Nc, masses); err != nil {
		return
	}
	if T <= 0 || P <= 0 {
		return nil, chk.Err("envelope: temperature and pressure must be positive. T=%g P=%g", T, P)
	}
	L, inside := o.Liquid(T, P)
	if !inside && prms != nil && prms.AoverB > 0 {
		L = 0
		if x, _ := o.Scale(T, P); x < 1.0-prms.AoverB/10.0 {
			L = 1
		}
	}
	res = flash.NewResult(o.Nc)
	for i, m := range masses {
		res.Masses[flash.LIQUID][i] = L * m
		res.Masses[flash.VAPOUR][i] = (1 - L) * m
	}
	res.Densities[flash.LIQUID] = o.RhoL
	res.Densities[flash.VAPOUR] = P * o.Mw / (GAS_CONSTANT * T)
	return
}
