// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pvt

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/ptdiag/ana"
	"github.com/cpmech/ptdiag/flash"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// newDiagram allocates a diagram with a model from package ana. Log entries
// are captured by the returned hook
func newDiagram(tst *testing.T, model string, prms ana.Prms, masses []float64, cfg *Config) (*Diagram, ana.Model, *test.Hook) {
	mdl, err := ana.New(model, prms)
	if err != nil {
		tst.Fatalf("cannot allocate model: %v\n", err)
	}
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	if cfg == nil {
		cfg = new(Config)
		cfg.SetDefault()
	}
	cfg.Log = logger
	d, err := New(mdl, flash.Mass, masses, cfg)
	if err != nil {
		tst.Fatalf("cannot allocate diagram: %v\n", err)
	}
	return d, mdl, hook
}

// hasEntry tells whether hook captured an entry with level lvl
func hasEntry(hook *test.Hook, lvl logrus.Level) bool {
	for _, e := range hook.AllEntries() {
		if e.Level == lvl {
			return true
		}
	}
	return false
}

// scaled converts pt to the scaled plane of the envelope model
func scaled(mdl ana.Model, pt TPPoint) (x, y float64) {
	return mdl.(*ana.Envelope).Scale(pt.T, pt.P)
}

// circleDist returns the distance of pt to the boundary of the envelope
func circleDist(mdl ana.Model, pt TPPoint) float64 {
	o := mdl.(*ana.Envelope)
	x, y := o.Scale(pt.T, pt.P)
	return math.Abs(math.Hypot(x-o.Xc, y-o.Yc) - o.R)
}

// lineDist returns the distance of pt to the envelope contour line of fraction L
func lineDist(mdl ana.Model, pt TPPoint, L float64) float64 {
	o := mdl.(*ana.Envelope)
	x, y := o.Scale(pt.T, pt.P)
	d := -math.Cos(o.Alpha)*(x-o.Xc) + math.Sin(o.Alpha)*(y-o.Yc)
	return math.Abs(d - o.R*(2*L-1))
}
