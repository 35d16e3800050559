// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/ptdiag/flash"
)

// Peng-Robinson constants
const (
	PR_OMEGA_A = 0.45724 // a = ΩA (R Tc)² / Pc
	PR_OMEGA_B = 0.07780 // b = ΩB R Tc / Pc
	PR_VCRIT   = 3.95    // v/b at the critical point
)

// PengRobinson implements a pure substance described by the Peng-Robinson
// equation of state. A pure substance never splits in two phases: states are
// labelled liquid or vapour by comparing fugacities when the cubic has three
// roots; otherwise by the A/B term (supercritical) or the molar volume
type PengRobinson struct {

	// parameters
	Tc float64 // critical temperature [K]
	Pc float64 // critical pressure [Pa]
	W  float64 // acentric factor
	Mw float64 // molar mass [kg/mol]

	// derived
	a0   float64 // a(Tc)
	b    float64 // covolume
	kap  float64 // κ
	crit float64 // critical A/B term
}

// add to database
func init() {
	allocators["pr"] = func() Model { return new(PengRobinson) }
}

// Init initialises this structure
func (o *PengRobinson) Init(prms Prms) (err error) {

	// default values: propane
	o.Tc = 369.83
	o.Pc = 4.248e6
	o.W = 0.152
	o.Mw = 0.0441

	// parameters
	for _, p := range prms {
		switch p.N {
		case "Tc":
			o.Tc = p.V
		case "Pc":
			o.Pc = p.V
		case "w":
			o.W = p.V
		case "mw":
			o.Mw = p.V
		}
	}
	if o.Tc <= 0 || o.Pc <= 0 || o.Mw <= 0 {
		return chk.Err("pr: Tc, Pc and mw must be positive. Tc=%g Pc=%g mw=%g", o.Tc, o.Pc, o.Mw)
	}

	// derived
	R := GAS_CONSTANT
	o.a0 = PR_OMEGA_A * R * R * o.Tc * o.Tc / o.Pc
	o.b = PR_OMEGA_B * R * o.Tc / o.Pc
	o.kap = 0.37464 + 1.54226*o.W - 0.26992*o.W*o.W
	o.crit = PR_OMEGA_A / PR_OMEGA_B
	return
}

// Ncomp returns the number of components
func (o *PengRobinson) Ncomp() int { return 1 }

// MolarMass returns the molar mass
func (o *PengRobinson) MolarMass(comp int) float64 { return o.Mw }

// A returns the attraction parameter a(T)
func (o *PengRobinson) A(T float64) float64 {
	s := 1.0 + o.kap*(1.0-math.Sqrt(T/o.Tc))
	return o.a0 * s * s
}

// Z returns the real roots of the compressibility cubic at (T,P) in
// increasing order, and the dimensionless terms A and B
func (o *PengRobinson) Z(T, P float64) (Z []float64, A, B float64) {
	RT := GAS_CONSTANT * T
	A = o.A(T) * P / (RT * RT)
	B = o.b * P / RT
	Z = cubic(-(1 - B), A-3*B*B-2*B, -(A*B - B*B - B*B*B))
	roots := Z[:0]
	for _, z := range Z {
		if z > B {
			roots = append(roots, z)
		}
	}
	return roots, A, B
}

// LnPhi returns the logarithm of the fugacity coefficient of root z
func (o *PengRobinson) LnPhi(z, A, B float64) float64 {
	s2 := math.Sqrt2
	return z - 1 - math.Log(z-B) - A/(2*s2*B)*math.Log((z+(1+s2)*B)/(z+(1-s2)*B))
}

// Label returns the phase of the substance at (T,P) and its compressibility
func (o *PengRobinson) Label(T, P, aoverb float64) (phase int, z float64, err error) {
	Z, A, B := o.Z(T, P)
	if len(Z) == 0 {
		return 0, 0, chk.Err("pr: cubic has no physical root at T=%g P=%g", T, P)
	}

	// liquid and vapour roots
	if len(Z) > 1 {
		zl, zv := Z[0], Z[len(Z)-1]
		if zv-zl > 1e-10 {
			if o.LnPhi(zl, A, B) < o.LnPhi(zv, A, B) {
				return flash.LIQUID, zl, nil
			}
			return flash.VAPOUR, zv, nil
		}
	}

	// single root
	z = Z[0]
	crit := o.crit
	if aoverb > 0 {
		crit = aoverb
	}
	if o.A(T)/(o.b*GAS_CONSTANT*T) < crit {
		return flash.VAPOUR, z, nil
	}
	if z/B < PR_VCRIT {
		return flash.LIQUID, z, nil
	}
	return flash.VAPOUR, z, nil
}

// Flash computes the phase of the substance at (T,P); all mass goes to one phase
func (o *PengRobinson) Flash(T, P float64, masses []float64, prms *flash.Params) (res *flash.Result, err error) {
	if err = checkMasses(1, masses); err != nil {
		return
	}
	if T <= 0 || P <= 0 {
		return nil, chk.Err("pr: temperature and pressure must be positive. T=%g P=%g", T, P)
	}
	var aoverb float64
	if prms != nil {
		aoverb = prms.AoverB
	}
	phase, z, err := o.Label(T, P, aoverb)
	if err != nil {
		return
	}
	res = flash.NewResult(1)
	res.Masses[phase][0] = masses[0]
	res.Densities[phase] = P * o.Mw / (z * GAS_CONSTANT * T)
	return
}

// cubic returns the real roots of z³ + c2 z² + c1 z + c0 in increasing order
func cubic(c2, c1, c0 float64) []float64 {
	q := (c2*c2 - 3*c1) / 9
	r := (2*c2*c2*c2 - 9*c2*c1 + 27*c0) / 54
	shift := c2 / 3
	if r*r < q*q*q {
		th := math.Acos(r / math.Sqrt(q*q*q))
		s := -2 * math.Sqrt(q)
		z := []float64{
			s*math.Cos(th/3) - shift,
			s*math.Cos((th+2*math.Pi)/3) - shift,
			s*math.Cos((th-2*math.Pi)/3) - shift,
		}
		if z[0] > z[1] {
			z[0], z[1] = z[1], z[0]
		}
		if z[1] > z[2] {
			z[1], z[2] = z[2], z[1]
		}
		if z[0] > z[1] {
			z[0], z[1] = z[1], z[0]
		}
		return z
	}
	a := -math.Copysign(math.Cbrt(math.Abs(r)+math.Sqrt(r*r-q*q*q)), r)
	var b float64
	if a != 0 {
		b = q / a
	}
	return []float64{a + b - shift}
}
