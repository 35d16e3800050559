// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out implements output handling of phase diagrams: saving, reading and plotting
package out

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/ptdiag/pvt"
)

// Results holds the summary of one phase diagram
type Results struct {

	// description
	Desc string `json:"desc"` // description of mixture
	Type string `json:"type"` // diagram type

	// grid
	GridT []float64 `json:"gridt"` // temperatures [K]
	GridP []float64 `json:"gridp"` // pressures [Pa]

	// lines
	BubbleDew  pvt.TPLine   `json:"bubbledew"`  // bubble/dew line; vapour end first
	Separation pvt.TPLine   `json:"separation"` // single-phase separation line
	Values     []float64    `json:"values"`     // liquid fractions of contour lines
	Contours   []pvt.TPLine `json:"contours"`   // [len(Values)] contour lines

	// landmarks
	HasCrit        bool        `json:"hascrit"`        // critical point was found
	Crit           pvt.TPPoint `json:"crit"`           // critical point; (0,0) if not found
	CritIndex      int         `json:"critindex"`      // index of critical point in BubbleDew; -1 => none
	Cricondentherm pvt.TPPoint `json:"cricondentherm"` // point of maximum temperature
	Cricondenbar   pvt.TPPoint `json:"cricondenbar"`   // point of maximum pressure
	AoverB         float64     `json:"aoverb"`         // A/B term; 0 => not searched

	// counters
	BubbleDewIters int `json:"bdits"`  // flash calls by bubble/dew searches
	IsolineIters   int `json:"isoits"` // flash calls by contour searches
	AoverBIters    int `json:"abits"`  // steps of A/B search
}

// Collect collects results from a diagram whose bubble/dew lines have been found
//  Note: contour lines with liquid fractions vals are computed
func Collect(d *pvt.Diagram, desc string, vals []float64) (o *Results, err error) {
	if d == nil {
		return nil, chk.Err("diagram must be given")
	}
	o = new(Results)
	o.Desc = desc
	o.Type = d.Type.String()
	o.GridT = append([]float64{}, d.GridT()...)
	o.GridP = append([]float64{}, d.GridP()...)
	o.BubbleDew = d.BubbleDewLine().Clone()
	o.Separation = d.SinglePhaseSeparationLine().Clone()
	o.Values = append([]float64{}, vals...)
	o.Contours, err = d.ContourLines(vals)
	if err != nil {
		return nil, err
	}
	o.Crit, o.HasCrit = d.CriticalPoint()
	o.CritIndex = d.CriticalIndex()
	o.Cricondentherm = d.Cricondentherm()
	o.Cricondenbar = d.Cricondenbar()
	o.BubbleDewIters, o.IsolineIters, o.AoverBIters = d.Iterations()
	return
}

// Contour returns the contour line corresponding to liquid fraction val; nil if not collected
func (o *Results) Contour(val float64) pvt.TPLine {
	for i, v := range o.Values {
		if v == val {
			return o.Contours[i]
		}
	}
	return nil
}
