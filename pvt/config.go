// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pvt

import (
	"github.com/cpmech/gosl/chk"
	"github.com/sirupsen/logrus"
)

// Config holds settings of phase diagram calculations
type Config struct {

	// grid
	Npts int     `json:"npts" toml:"npts" yaml:"npts"` // number of points along each axis
	Tmin float64 `json:"tmin" toml:"tmin" yaml:"tmin"` // minimum temperature [K]
	Tmax float64 `json:"tmax" toml:"tmax" yaml:"tmax"` // maximum temperature [K]
	Pmin float64 `json:"pmin" toml:"pmin" yaml:"pmin"` // minimum pressure [Pa]
	Pmax float64 `json:"pmax" toml:"pmax" yaml:"pmax"` // maximum pressure [Pa]

	// tolerances
	Tol float64 `json:"tol" toml:"tol" yaml:"tol"` // tolerance for searches and fraction snapping

	// flash calculator settings
	AoverB       float64 `json:"aoverb" toml:"aoverb" yaml:"aoverb"`                   // critical A/B term
	ChangeAoverB bool    `json:"changeaoverb" toml:"changeaoverb" yaml:"changeaoverb"` // pass AoverB to the flash calculator
	MaxIters     int     `json:"maxiters" toml:"maxiters" yaml:"maxiters"`             // max iterations of the flash nonlinear solver
	StopTol      float64 `json:"stoptol" toml:"stoptol" yaml:"stoptol"`                // stop tolerance of the flash nonlinear solver; 0 => Tol×1e-2
	NewtonRelax  float64 `json:"relax" toml:"relax" yaml:"relax"`                      // Newton relaxation coefficient

	// Log receives diagnostic messages; nil => logrus.StandardLogger()
	Log logrus.FieldLogger `json:"-" toml:"-" yaml:"-"`
}

// SetDefault sets default values
func (o *Config) SetDefault() {
	o.Npts = DEF_NPTS
	o.Tmin = DEF_TMIN
	o.Tmax = DEF_TMAX
	o.Pmin = DEF_PMIN
	o.Pmax = DEF_PMAX
	o.Tol = DEF_TOL
	o.AoverB = DEF_AOVERB
	o.MaxIters = DEF_MAXIT
	o.NewtonRelax = DEF_RELAX
}

// PostProcess checks values and sets derived ones
func (o *Config) PostProcess() (err error) {
	if o.Npts < 2 {
		return chk.Err("number of grid points must be at least 2. npts = %d is invalid", o.Npts)
	}
	if o.Tmin <= 0 || o.Tmax <= o.Tmin {
		return chk.Err("temperature bounds are invalid: tmin = %g, tmax = %g", o.Tmin, o.Tmax)
	}
	if o.Pmin <= 0 || o.Pmax <= o.Pmin {
		return chk.Err("pressure bounds are invalid: pmin = %g, pmax = %g", o.Pmin, o.Pmax)
	}
	if o.Tol <= 0 || o.Tol >= 1 {
		return chk.Err("tolerance must be in (0,1). tol = %g is invalid", o.Tol)
	}
	if o.StopTol <= 0 {
		o.StopTol = o.Tol * 1e-2
	}
	if o.MaxIters <= 0 {
		o.MaxIters = DEF_MAXIT
	}
	if o.NewtonRelax <= 0 {
		o.NewtonRelax = DEF_RELAX
	}
	if o.AoverB <= 0 {
		o.AoverB = DEF_AOVERB
	}
	return
}
