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
)

func Test_new01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("new01")

	mdl, _ := ana.New("envelope", nil)
	if _, err := New(nil, flash.Mass, []float64{1, 1}, nil); err == nil {
		tst.Errorf("New should have failed with nil oracle\n")
	}
	if _, err := New(mdl, flash.Mass, []float64{1}, nil); err == nil {
		tst.Errorf("New should have failed with wrong number of components\n")
	}
	if _, err := New(mdl, flash.Mass, []float64{1, -1}, nil); err == nil {
		tst.Errorf("New should have failed with negative mass\n")
	}
	if _, err := New(mdl, flash.Mass, []float64{0, 0}, nil); err == nil {
		tst.Errorf("New should have failed with zero total mass\n")
	}
	cst, _ := ana.New("constant", nil)
	if _, err := New(cst, flash.Mole, []float64{1, 1}, nil); err == nil {
		tst.Errorf("New should have failed with mole diagram and no molar masses\n")
	}

	d, _, _ := newDiagram(tst, "envelope", nil, []float64{0.3, 0.7}, nil)
	np, nt := d.GridSize()
	chk.Int(tst, "np", np, DEF_NPTS)
	chk.Int(tst, "nt", nt, DEF_NPTS)
	eps, epsT, epsP := d.Tolerances()
	chk.Float64(tst, "eps", 1e-17, eps, DEF_TOL)
	chk.Float64(tst, "epsT", 1e-12, epsT, DEF_TOL*(DEF_TMAX-DEF_TMIN)/DEF_NPTS)
	chk.Float64(tst, "epsP", 1e-9, epsP, DEF_TOL*(DEF_PMAX-DEF_PMIN)/DEF_NPTS)
	chk.Float64(tst, "unknown liquid fraction", 1e-15, d.LiquidFraction(-1, 0), -1)
	d.SetTolerance(1e-3)
	eps, epsT, _ = d.Tolerances()
	chk.Float64(tst, "eps", 1e-17, eps, 1e-3)
	chk.Float64(tst, "epsT", 1e-12, epsT, 1e-3*(DEF_TMAX-DEF_TMIN)/DEF_NPTS)
	chk.Float64(tst, "StopTol", 1e-17, d.Cfg.StopTol, 1e-5)
	if _, ok := d.CriticalPoint(); ok {
		tst.Errorf("critical point must not be available before searching\n")
	}
}

func Test_bisect01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("bisect01")

	d, mdl, _ := newDiagram(tst, "envelope", nil, []float64{0.3, 0.7}, nil)

	// bubble point along the pressure axis at x ≈ 0.3: from two-phase to liquid
	t := 31
	x, _ := scaled(mdl, TPPoint{d.GridT()[t], d.GridP()[0]})
	io.Pforan("x = %v\n", x)
	p := int(math.Floor(mdl.(*ana.Envelope).Yc*float64(DEF_NPTS-1))) + 20
	for d.Phase(p+1, t) == flash.Both {
		p++
	}
	pt, ok := d.bisectBubbleDew(p, t, p+1, t)
	if !ok {
		tst.Errorf("bisectBubbleDew failed\n")
		return
	}
	io.Pforan("bubble point = %v\n", pt)
	chk.Float64(tst, "distance to envelope", 1e-3, circleDist(mdl, pt), 0)
	s, _, _ := d.Classify(pt.T, pt.P)
	if s != flash.Liquid {
		tst.Errorf("bubble point must be outside the two-phase region. state = %v\n", s)
	}

	// contour point along the temperature axis
	a := d.sampleAt(600, 3e6)
	b := d.sampleAt(700, 3e6)
	val := (a.f + b.f) / 2
	pt, ok = d.bisectContour(a, b, val)
	if !ok {
		tst.Errorf("bisectContour failed\n")
		return
	}
	chk.Float64(tst, "contour P", 1e-15, pt.P, 3e6)
	_, liq, _ := d.Classify(pt.T, pt.P)
	chk.Float64(tst, "liquid fraction", 1e-6, liq, val)

	// invalid segment
	defer func() {
		if err := recover(); err == nil {
			tst.Errorf("bisectBubbleDew should have panicked with diagonal segment\n")
		}
	}()
	d.bisectBubbleDew(p, t, p+1, t+1)
}

func Test_envelope01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("envelope01")

	d, mdl, hook := newDiagram(tst, "envelope", nil, []float64{0.3, 0.7}, nil)
	err := d.FindBubbleDewLines(0, 0, nil)
	if err != nil {
		tst.Errorf("FindBubbleDewLines failed: %v\n", err)
		return
	}
	env := mdl.(*ana.Envelope)
	dx := 1.0 / float64(DEF_NPTS-1)

	// bubble/dew line
	bd := d.BubbleDewLine()
	io.Pforan("number of bubble/dew points = %d\n", len(bd))
	if len(bd) < 50 {
		tst.Errorf("bubble/dew line has too few points: %d\n", len(bd))
		return
	}
	for i, pt := range bd {
		if circleDist(mdl, pt) > 1e-3 {
			tst.Errorf("point %d = %v is not on the envelope. distance = %g\n", i, pt, circleDist(mdl, pt))
			return
		}
	}

	// vapour end first
	sa, _, _ := d.Classify(bd[0].T, bd[0].P)
	sb, _, _ := d.Classify(bd[len(bd)-1].T, bd[len(bd)-1].P)
	if sa != flash.Vapour || sb != flash.Liquid {
		tst.Errorf("bubble/dew line must go from vapour to liquid. first = %v, last = %v\n", sa, sb)
		return
	}

	// critical point
	crit, ok := d.CriticalPoint()
	if !ok {
		tst.Errorf("critical point was not found\n")
		return
	}
	Tc, Pc := env.Critical()
	xc, yc := env.Scale(Tc, Pc)
	x, y := scaled(mdl, crit)
	io.Pforan("crit = %v  (x=%v y=%v)  correct: x=%v y=%v\n", crit, x, y, xc, yc)
	chk.Float64(tst, "xcrit", 1e-3, x, xc)
	chk.Float64(tst, "ycrit", 1e-3, y, yc)
	pos := d.CriticalIndex()
	if pos < 0 || bd[pos] != crit {
		tst.Errorf("critical point must be in bubble/dew line. pos = %d\n", pos)
		return
	}
	if !hasEntry(hook, logrus.InfoLevel) {
		tst.Errorf("critical point should have been logged\n")
	}

	// cricondenbar and cricondentherm
	x, y = scaled(mdl, d.Cricondenbar())
	chk.Float64(tst, "cricondenbar x", dx, x, env.Xc)
	chk.Float64(tst, "cricondenbar y", dx, y, env.Yc+env.R)
	x, y = scaled(mdl, d.Cricondentherm())
	chk.Float64(tst, "cricondentherm x", dx, x, env.Xc+env.R)
	chk.Float64(tst, "cricondentherm y", dx, y, env.Yc)

	// bubble pressure
	T, _ := env.Unscale(0.3, 0)
	P, ok := d.BubblePressure(T)
	if !ok {
		tst.Errorf("BubblePressure failed\n")
		return
	}
	_, y = env.Scale(T, P)
	chk.Float64(tst, "bubble pressure", 2e-3, y, env.Yc+math.Sqrt(env.R*env.R-0.17*0.17))
	if _, ok = d.BubblePressure(100); ok {
		tst.Errorf("BubblePressure should have failed outside the envelope\n")
	}

	// 0.5 contour line
	c05, err := d.CalcContourLine(0.5)
	if err != nil {
		tst.Errorf("CalcContourLine failed: %v\n", err)
		return
	}
	io.Pforan("number of 0.5 contour points = %d\n", len(c05))
	if len(c05) < 10 {
		tst.Errorf("0.5 contour line has too few points: %d\n", len(c05))
		return
	}
	for i, pt := range c05 {
		if lineDist(mdl, pt, 0.5) > 2e-4 {
			tst.Errorf("point %d = %v is not on the 0.5 contour line\n", i, pt)
			return
		}
		if i > 0 && pt.P < c05[i-1].P {
			tst.Errorf("0.5 contour line must have increasing pressures\n")
			return
		}
	}
	if c05[len(c05)-1] != crit {
		tst.Errorf("0.5 contour line must end at the critical point\n")
	}
}

func Test_envelope02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("envelope02")

	d, mdl, _ := newDiagram(tst, "envelope", nil, []float64{0.3, 0.7}, nil)
	err := d.FindBubbleDewLines(0, 0, nil)
	if err != nil {
		tst.Errorf("FindBubbleDewLines failed: %v\n", err)
		return
	}
	bd := d.BubbleDewLine()
	pos := d.CriticalIndex()
	crit, _ := d.CriticalPoint()

	// bubble and dew lines
	bub, _ := d.CalcContourLine(1)
	dew, _ := d.CalcContourLine(0)
	chk.Int(tst, "len(bubble)", len(bub), len(bd)-pos)
	chk.Int(tst, "len(dew)", len(dew), pos+1)
	if bub[0] != bd[len(bd)-1] || bub[len(bub)-1] != crit {
		tst.Errorf("bubble line must go from liquid end to critical point\n")
	}
	if dew[0] != crit || dew[len(dew)-1] != bd[0] {
		tst.Errorf("dew line must go from critical point to vapour end\n")
	}

	// other contour lines
	for _, L := range []float64{0.25, 0.75} {
		line, err := d.CalcContourLine(L)
		if err != nil {
			tst.Errorf("CalcContourLine failed: %v\n", err)
			return
		}
		if len(line) < 3 {
			tst.Errorf("contour line %g has too few points: %d\n", L, len(line))
			return
		}
		for i, pt := range line {
			if lineDist(mdl, pt, L) > 2e-4 {
				tst.Errorf("point %d = %v is not on the %g contour line\n", i, pt, L)
				return
			}
		}
	}

	// flat list
	flat, err := d.CalcContourLines([]float64{0.5, 1})
	if err != nil {
		tst.Errorf("CalcContourLines failed: %v\n", err)
		return
	}
	lines := Unflatten(flat)
	chk.Int(tst, "number of lines", len(lines), 2)
	c05, _ := d.CalcContourLine(0.5)
	chk.Int(tst, "len(line0)", len(lines[0]), len(c05))
	chk.Int(tst, "len(line1)", len(lines[1]), len(bub))
	chk.Float64(tst, "flat[-1]", 1e-15, flat[len(flat)-1], -1)

	// invalid value
	if _, err = d.CalcContourLine(1.5); err == nil {
		tst.Errorf("CalcContourLine should have failed with 1.5\n")
	}
	if _, err = d.CalcContourLines([]float64{0.5, -0.1}); err == nil {
		tst.Errorf("CalcContourLines should have failed with -0.1\n")
	}

	// counters
	nbd, niso, _ := d.Iterations()
	io.Pforan("iterations: bubble/dew = %d, contour = %d\n", nbd, niso)
	if nbd == 0 || niso == 0 {
		tst.Errorf("counters must be positive\n")
	}
	d.ResetCounters()
	nbd, niso, nab := d.Iterations()
	chk.Int(tst, "bubble/dew iterations", nbd, 0)
	chk.Int(tst, "contour iterations", niso, 0)
	chk.Int(tst, "A/B iterations", nab, 0)
}

func Test_envelope03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("envelope03")

	// fast search
	d, mdl, _ := newDiagram(tst, "envelope", nil, []float64{0.3, 0.7}, nil)
	env := mdl.(*ana.Envelope)
	Tc, Pc := env.Critical()
	xc, yc := env.Scale(Tc, Pc)
	crit, ok := d.SearchCriticalPoint()
	if !ok {
		tst.Errorf("SearchCriticalPoint failed\n")
		return
	}
	x, y := scaled(mdl, crit)
	io.Pforan("fast crit: x=%v y=%v\n", x, y)
	chk.Float64(tst, "xcrit", 1e-3, x, xc)
	chk.Float64(tst, "ycrit", 1e-3, y, yc)

	// A/B term
	err := d.FindBubbleDewLines(0, 0, nil)
	if err != nil {
		tst.Errorf("FindBubbleDewLines failed: %v\n", err)
		return
	}
	ab := d.SearchAoverBTerm()
	io.Pforan("A/B = %v\n", ab)
	chk.Float64(tst, "division through critical point", 0.01, 1-ab/10, xc)
	_, _, nab := d.Iterations()
	if nab == 0 {
		tst.Errorf("A/B counter must be positive\n")
	}
}

func Test_envelope04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("envelope04")

	// trap conditions outside the grid
	d, _, _ := newDiagram(tst, "envelope", nil, []float64{0.3, 0.7}, nil)
	err := d.FindBubbleDewLines(1500, 40e6, nil)
	if err != nil {
		tst.Errorf("FindBubbleDewLines failed: %v\n", err)
		return
	}
	T, P := d.GridT(), d.GridP()
	if T[len(T)-1] < 1500 || P[len(P)-1] < 40e6 {
		tst.Errorf("grid must contain trap conditions. Tmax=%g Pmax=%g\n", T[len(T)-1], P[len(P)-1])
	}
	err = d.FindBubbleDewLines(1e5, 0, nil)
	if err == nil {
		tst.Errorf("FindBubbleDewLines should have failed with temperature above the ceiling\n")
	}

	// user temperature grid
	d, mdl, _ := newDiagram(tst, "envelope", nil, []float64{0.3, 0.7}, nil)
	env := mdl.(*ana.Envelope)
	T0, _ := env.Unscale(0.05, 0)
	T1, _ := env.Unscale(0.95, 0)
	gridT := make([]float64, 61)
	for i := range gridT {
		gridT[i] = T0 + float64(i)*(T1-T0)/60
	}
	err = d.FindBubbleDewLines(0, 0, gridT)
	if err != nil {
		tst.Errorf("FindBubbleDewLines failed: %v\n", err)
		return
	}
	_, nt := d.GridSize()
	chk.Int(tst, "nt", nt, 61)
	if _, ok := d.CriticalPoint(); !ok {
		tst.Errorf("critical point was not found with user grid\n")
	}
	for i, pt := range d.BubbleDewLine() {
		if circleDist(mdl, pt) > 1e-3 {
			tst.Errorf("point %d = %v is not on the envelope\n", i, pt)
			return
		}
	}

	// invalid user grid
	if err = d.FindBubbleDewLines(0, 0, []float64{300}); err == nil {
		tst.Errorf("FindBubbleDewLines should have failed with one temperature\n")
	}
}

func Test_degenerate01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("degenerate01")

	// two phases everywhere: pressure axis stops at the ceiling
	d, _, hook := newDiagram(tst, "constant", nil, []float64{1, 1}, nil)
	P := d.GridP()
	io.Pforan("Pmax = %v\n", P[len(P)-1])
	if P[len(P)-1] > PCEIL_COEF*DEF_PMAX {
		tst.Errorf("pressure axis must not exceed the ceiling\n")
		return
	}
	if P[len(P)-1] <= DEF_PMAX {
		tst.Errorf("pressure axis should have been extended\n")
		return
	}
	if !hasEntry(hook, logrus.WarnLevel) {
		tst.Errorf("reaching the ceiling should have been logged\n")
	}
	err := d.FindBubbleDewLines(0, 0, nil)
	if err != nil {
		tst.Errorf("FindBubbleDewLines failed: %v\n", err)
		return
	}
	chk.Int(tst, "len(bubble/dew)", len(d.BubbleDewLine()), 0)
	if _, ok := d.CriticalPoint(); ok {
		tst.Errorf("critical point must not exist\n")
	}
	line, _ := d.CalcContourLine(1)
	chk.Int(tst, "len(bubble)", len(line), 0)
	line, _ = d.CalcContourLine(0)
	chk.Int(tst, "len(dew)", len(line), 0)
	chk.Float64(tst, "A/B", 1e-15, d.SearchAoverBTerm(), DEF_AOVERB)
}

func Test_failing01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("failing01")

	// flash fails at high temperatures; everything else is liquid
	d, _, _ := newDiagram(tst, "failing", ana.Prms{&ana.Prm{N: "Tfail", V: 600}}, []float64{1}, nil)
	err := d.FindBubbleDewLines(0, 0, nil)
	if err != nil {
		tst.Errorf("FindBubbleDewLines failed: %v\n", err)
		return
	}
	chk.Int(tst, "len(bubble/dew)", len(d.BubbleDewLine()), 0)
	_, nt := d.GridSize()
	chk.Float64(tst, "failed node", 1e-15, d.LiquidFraction(0, nt-1), -1)
	chk.Float64(tst, "liquid node", 1e-15, d.LiquidFraction(0, 0), 1)
	if d.Phase(0, nt-1) != flash.Unknown || d.Phase(0, 0) != flash.Liquid {
		tst.Errorf("phases are incorrect\n")
	}
}

func Test_critbeyond01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("critbeyond01")

	// critical point to the right of the initial temperature axis
	prms := ana.Prms{
		&ana.Prm{N: "xc", V: 0.85},
		&ana.Prm{N: "r", V: 0.3},
		&ana.Prm{N: "alpha", V: 1.0},
	}
	d, mdl, _ := newDiagram(tst, "envelope", prms, []float64{0.3, 0.7}, nil)
	Tc, Pc := mdl.(*ana.Envelope).Critical()
	io.Pforan("Tc = %v, Pc = %v\n", Tc, Pc)
	if Tc <= DEF_TMAX {
		tst.Errorf("critical temperature must be beyond the initial axis. Tc = %g\n", Tc)
		return
	}
	dT := (DEF_TMAX - DEF_TMIN) / float64(DEF_NPTS-1)
	dP := (DEF_PMAX - DEF_PMIN) / float64(DEF_NPTS-1)

	pt, ok := d.SearchCriticalPoint()
	if !ok {
		tst.Errorf("SearchCriticalPoint failed\n")
		return
	}
	io.Pforan("critical point = %v\n", pt)
	chk.Float64(tst, "Tc", dT, pt.T, Tc)
	chk.Float64(tst, "Pc", dP, pt.P, Pc)
	_, nt := d.GridSize()
	if nt <= DEF_NPTS {
		tst.Errorf("temperature axis should have been extended. nt = %d\n", nt)
	}
}

func Test_divergence01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("divergence01")

	// liquid fraction jumps from 0.2 to 0.8: regula falsi never gets closer to 0.5
	d, _, _ := newDiagram(tst, "step", ana.Prms{&ana.Prm{N: "Tstep", V: 407.3}}, []float64{1, 1}, nil)
	np, nt := d.GridSize()
	fLow, fHigh := d.LiquidFraction(0, 0), d.LiquidFraction(0, nt-1)
	chk.Float64(tst, "low T fraction", 1e-15, fLow, 0.2)
	chk.Float64(tst, "high T fraction", 1e-15, fHigh, 0.8)

	a := d.sampleAt(400, 3e6)
	b := d.sampleAt(420, 3e6)
	d.ResetCounters()
	_, ok := d.bisectContour(a, b, 0.5)
	if ok {
		tst.Errorf("bisectContour should have given up after diverging\n")
		return
	}
	_, its, _ := d.Iterations()
	chk.Int(tst, "contour iterations", its, 4)

	// cache untouched
	npNew, ntNew := d.GridSize()
	chk.Int(tst, "np", npNew, np)
	chk.Int(tst, "nt", ntNew, nt)
	chk.Float64(tst, "low T fraction", 1e-15, d.LiquidFraction(0, 0), fLow)
	chk.Float64(tst, "high T fraction", 1e-15, d.LiquidFraction(0, nt-1), fHigh)
}

func Test_budget01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("budget01")

	d, mdl, _ := newDiagram(tst, "envelope", nil, []float64{0.3, 0.7}, nil)
	t := 31
	p := int(math.Floor(mdl.(*ana.Envelope).Yc*float64(DEF_NPTS-1))) + 20
	for d.Phase(p+1, t) == flash.Both {
		p++
	}
	f1, f2 := d.LiquidFraction(p, t), d.LiquidFraction(p+1, t)
	s1, s2 := d.Phase(p, t), d.Phase(p+1, t)

	// tolerance below the float spacing: the bracket never converges
	d.SetTolerance(1e-20)
	d.ResetCounters()
	if _, ok := d.bisectBubbleDew(p, t, p+1, t); ok {
		tst.Errorf("bisectBubbleDew should have run out of steps\n")
		return
	}
	its, _, _ := d.Iterations()
	chk.Int(tst, "bubble/dew iterations", its, MAX_STEPS)

	// cache untouched
	chk.Float64(tst, "fraction @ p", 1e-15, d.LiquidFraction(p, t), f1)
	chk.Float64(tst, "fraction @ p+1", 1e-15, d.LiquidFraction(p+1, t), f2)
	if d.Phase(p, t) != s1 || d.Phase(p+1, t) != s2 {
		tst.Errorf("phases of grid nodes must not change\n")
	}

	// default tolerance converges again
	d.SetTolerance(DEF_TOL)
	d.ResetCounters()
	pt, ok := d.bisectBubbleDew(p, t, p+1, t)
	if !ok {
		tst.Errorf("bisectBubbleDew failed with default tolerance\n")
		return
	}
	its, _, _ = d.Iterations()
	if its >= MAX_STEPS {
		tst.Errorf("too many iterations: %d\n", its)
	}
	chk.Float64(tst, "distance to envelope", 1e-3, circleDist(mdl, pt), 0)
}

func Test_trap01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("trap01")

	// T axis: 100, 225, 350 => extended up to 600; ceiling = 700
	cfg := new(Config)
	cfg.SetDefault()
	cfg.Npts = 3
	cfg.Tmin = 100
	cfg.Tmax = 350
	d, _, hook := newDiagram(tst, "failing", ana.Prms{&ana.Prm{N: "Tfail", V: 1e4}}, []float64{1}, cfg)
	err := d.FindBubbleDewLines(650, 0, nil)
	if err != nil {
		tst.Errorf("FindBubbleDewLines failed: %v\n", err)
		return
	}
	T := d.GridT()
	chk.Float64(tst, "Tmax", 1e-12, T[len(T)-1], 600)
	found := false
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel && e.Data["trapt"] == 650.0 {
			found = true
		}
	}
	if !found {
		tst.Errorf("unreachable trap point should have been logged\n")
	}

	// a trap point above the ceiling is an error
	if err = d.FindBubbleDewLines(800, 0, nil); err == nil {
		tst.Errorf("FindBubbleDewLines should have failed with trap point above the ceiling\n")
	}
}
