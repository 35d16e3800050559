// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"image/color"
	"path"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/ptdiag/pvt"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// figure size
var (
	FigWidth  = 6 * vg.Inch
	FigHeight = 4.5 * vg.Inch
)

// colors of contour lines
var contourColors = []color.Color{
	color.RGBA{R: 31, G: 119, B: 180, A: 255},
	color.RGBA{R: 44, G: 160, B: 44, A: 255},
	color.RGBA{R: 148, G: 103, B: 189, A: 255},
	color.RGBA{R: 140, G: 86, B: 75, A: 255},
	color.RGBA{R: 227, G: 119, B: 194, A: 255},
	color.RGBA{R: 127, G: 127, B: 127, A: 255},
}

// xys converts a line to plotter points with pressures in MPa
func xys(line pvt.TPLine) plotter.XYs {
	res := make(plotter.XYs, len(line))
	for i, pt := range line {
		res[i].X = pt.T
		res[i].Y = pt.P / 1e6
	}
	return res
}

// addLine adds a line (if not empty) to p
func addLine(p *plot.Plot, line pvt.TPLine, label string, clr color.Color, dashed bool) (err error) {
	if len(line) < 2 {
		return
	}
	l, err := plotter.NewLine(xys(line))
	if err != nil {
		return
	}
	l.Color = clr
	l.Width = vg.Points(1.5)
	if dashed {
		l.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	}
	p.Add(l)
	p.Legend.Add(label, l)
	return
}

// addPoint adds a landmark to p
func addPoint(p *plot.Plot, pt pvt.TPPoint, label string, shape draw.GlyphDrawer, clr color.Color) (err error) {
	s, err := plotter.NewScatter(xys(pvt.TPLine{pt}))
	if err != nil {
		return
	}
	s.GlyphStyle = draw.GlyphStyle{Color: clr, Radius: vg.Points(3.5), Shape: shape}
	p.Add(s)
	p.Legend.Add(label, s)
	return
}

// NewPlot returns a plot of the phase diagram
func (o *Results) NewPlot() (p *plot.Plot, err error) {
	p = plot.New()
	p.Title.Text = "P/T diagram"
	if o.Desc != "" {
		p.Title.Text = o.Desc
	}
	p.X.Label.Text = "T [K]"
	p.Y.Label.Text = "P [MPa]"
	p.Add(plotter.NewGrid())
	p.Legend.Top = true

	// lines
	black, red := color.Black, color.RGBA{R: 214, G: 39, B: 40, A: 255}
	err = addLine(p, o.BubbleDew, "bubble/dew", black, false)
	if err != nil {
		return
	}
	if len(o.BubbleDew) == 0 {
		err = addLine(p, o.Separation, "separation", red, true)
		if err != nil {
			return
		}
	}
	for i, line := range o.Contours {
		err = addLine(p, line, io.Sf("L = %g", o.Values[i]), contourColors[i%len(contourColors)], true)
		if err != nil {
			return
		}
	}

	// landmarks
	if o.HasCrit {
		err = addPoint(p, o.Crit, "critical", draw.CircleGlyph{}, red)
		if err != nil {
			return
		}
	}
	if !o.Cricondentherm.IsZero() {
		err = addPoint(p, o.Cricondentherm, "cricondentherm", draw.TriangleGlyph{}, black)
		if err != nil {
			return
		}
	}
	if !o.Cricondenbar.IsZero() {
		err = addPoint(p, o.Cricondenbar, "cricondenbar", draw.SquareGlyph{}, black)
	}
	return
}

// Plot saves a figure of the phase diagram. The format is selected by the
// extension of fn; e.g. ".png", ".svg", ".pdf"
func (o *Results) Plot(dir, fn string, verbose bool) (err error) {
	p, err := o.NewPlot()
	if err != nil {
		return chk.Err("cannot generate plot:\n%v", err)
	}
	filename := path.Join(dir, fn)
	err = p.Save(FigWidth, FigHeight, filename)
	if err != nil {
		return chk.Err("cannot save plot:\n%v", err)
	}
	if verbose {
		io.Pfblue2("file <%s> written\n", filename)
	}
	return
}
