// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from (.json, .toml or .yaml) files
package inp

import (
	"bytes"
	"encoding/json"
	goio "io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/ptdiag/ana"
	"github.com/cpmech/ptdiag/flash"
	"github.com/cpmech/ptdiag/pvt"
	"gopkg.in/yaml.v3"
)

// ModelData holds the name and parameters of the flash calculator
type ModelData struct {
	Name string   `json:"name" toml:"name" yaml:"name"` // model name; e.g. "pr", "envelope"
	Prms ana.Prms `json:"prms" toml:"prms" yaml:"prms"` // parameters
}

// Data holds the description of one phase diagram
type Data struct {

	// global information
	Desc    string `json:"desc" toml:"desc" yaml:"desc"`          // description of mixture
	DirOut  string `json:"dirout" toml:"dirout" yaml:"dirout"`    // directory for output; e.g. /tmp/ptdiag
	Encoder string `json:"encoder" toml:"encoder" yaml:"encoder"` // encoder name; e.g. "gob" "json"
	Plot    bool   `json:"plot" toml:"plot" yaml:"plot"`          // generate figure

	// mixture
	Model  ModelData `json:"model" toml:"model" yaml:"model"`    // flash calculator
	Masses []float64 `json:"masses" toml:"masses" yaml:"masses"` // [ncomp] component masses
	Type   string    `json:"type" toml:"type" yaml:"type"`       // diagram type: "mass", "mole" or "volume"

	// searches
	TrapT    float64   `json:"trapt" toml:"trapt" yaml:"trapt"`          // temperature that must be inside grid; 0 => none
	TrapP    float64   `json:"trapp" toml:"trapp" yaml:"trapp"`          // pressure that must be inside grid; 0 => none
	GridT    []float64 `json:"gridt" toml:"gridt" yaml:"gridt"`          // user temperatures; nil => uniform
	Contours []float64 `json:"contours" toml:"contours" yaml:"contours"` // liquid fractions of contour lines

	// settings
	Cfg pvt.Config `json:"cfg" toml:"cfg" yaml:"cfg"`

	// derived
	Key     string            `json:"-" toml:"-" yaml:"-"` // filename key; e.g. mix.json => mix
	EncType string            `json:"-" toml:"-" yaml:"-"` // encoder type
	DiaType flash.DiagramType `json:"-" toml:"-" yaml:"-"` // diagram type
}

// SetDefault sets default values
func (o *Data) SetDefault() {
	o.Encoder = "gob"
	o.Type = "mass"
	o.Contours = []float64{0.25, 0.5, 0.75}
	o.Cfg.SetDefault()
}

// PostProcess checks values and sets derived ones
func (o *Data) PostProcess(fnkey string) (err error) {

	// key and output directory
	o.Key = fnkey
	if o.DirOut == "" {
		o.DirOut = "/tmp/ptdiag/" + fnkey
	}
	o.DirOut = os.ExpandEnv(o.DirOut)

	// encoder type
	o.EncType = o.Encoder
	if o.EncType != "gob" && o.EncType != "json" {
		o.EncType = "gob"
	}

	// mixture
	if o.Model.Name == "" {
		return chk.Err("name of flash model must be given")
	}
	if len(o.Masses) == 0 {
		return chk.Err("component masses must be given")
	}
	o.DiaType, err = flash.ParseDiagramType(o.Type)
	if err != nil {
		return
	}

	// searches
	if o.TrapT < 0 || o.TrapP < 0 {
		return chk.Err("trap point must not be negative. trapt = %g, trapp = %g", o.TrapT, o.TrapP)
	}
	for _, v := range o.Contours {
		if v < 0 || v > 1 || math.IsNaN(v) {
			return chk.Err("contour values must be in [0,1]. %g is invalid", v)
		}
	}
	return o.Cfg.PostProcess()
}

// Decode decodes b according to format ("json", "toml" or "yaml") and post-processes data
func Decode(b []byte, format, fnkey string) (o *Data, err error) {
	o = new(Data)
	o.SetDefault()
	switch format {
	case "json":
		err = json.Unmarshal(b, o)
	case "toml":
		_, err = toml.NewDecoder(bytes.NewReader(b)).Decode(o)
	case "yaml", "yml":
		err = yaml.Unmarshal(b, o)
	default:
		return nil, chk.Err("format %q is not available", format)
	}
	if err != nil {
		return nil, chk.Err("cannot decode %s data:\n%v", format, err)
	}
	err = o.PostProcess(fnkey)
	if err != nil {
		return nil, err
	}
	return
}

// ReadData reads data file; the format is selected by the file extension
//  Note: output directory is created if erasefiles is true; previous results are removed
func ReadData(fpath string, erasefiles bool) (o *Data, err error) {

	// read file
	b, err := os.ReadFile(fpath)
	if err != nil {
		return nil, chk.Err("cannot read data file %q", fpath)
	}

	// decode
	fn := filepath.Base(fpath)
	fnkey := io.FnKey(fn)
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(fn)), ".")
	o, err = Decode(b, format, fnkey)
	if err != nil {
		return nil, chk.Err("cannot read %q:\n%v", fpath, err)
	}

	// create directory and erase previous results
	if erasefiles {
		err = os.MkdirAll(o.DirOut, 0777)
		if err != nil {
			return nil, chk.Err("cannot create directory for output results (%s): %v", o.DirOut, err)
		}
		old, _ := filepath.Glob(filepath.Join(o.DirOut, fnkey+"*"))
		for _, f := range old {
			os.RemoveAll(f)
		}
	}
	return
}

// NewModel allocates the flash calculator
func (o *Data) NewModel() (ana.Model, error) {
	return ana.New(o.Model.Name, o.Model.Prms)
}

// NewDiagram allocates the flash calculator and the phase diagram
func (o *Data) NewDiagram() (d *pvt.Diagram, err error) {
	mdl, err := o.NewModel()
	if err != nil {
		return
	}
	cfg := o.Cfg
	return pvt.New(mdl, o.DiaType, o.Masses, &cfg)
}

// GetInfo returns formatted information
func (o *Data) GetInfo(w goio.Writer) (err error) {
	b, err := json.MarshalIndent(o, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return
}
