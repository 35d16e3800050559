// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	goio "io"
	"os"
	"path"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/ptdiag/pvt"
)

// Encoder defines encoders; e.g. gob or json
type Encoder interface {
	Encode(e interface{}) error
}

// Decoder defines decoders; e.g. gob or json
type Decoder interface {
	Decode(e interface{}) error
}

// GetEncoder returns a new encoder
func GetEncoder(w goio.Writer, enctype string) Encoder {
	if enctype == "json" {
		return json.NewEncoder(w)
	}
	return gob.NewEncoder(w)
}

// GetDecoder returns a new decoder
func GetDecoder(r goio.Reader, enctype string) Decoder {
	if enctype == "json" {
		return json.NewDecoder(r)
	}
	return gob.NewDecoder(r)
}

// ResultsPath returns the path of the results file
func ResultsPath(dir, fnkey, enctype string) string {
	return path.Join(dir, io.Sf("%s_pt.%s", fnkey, enctype))
}

// ContoursPath returns the path of the flat contours file
func ContoursPath(dir, fnkey string) string {
	return path.Join(dir, fnkey+"_contours.dat")
}

// Save saves results to the results file
func (o *Results) Save(dir, fnkey, enctype string, verbose bool) (err error) {
	var buf bytes.Buffer
	enc := GetEncoder(&buf, enctype)
	err = enc.Encode(o)
	if err != nil {
		return chk.Err("cannot encode results\n%v", err)
	}
	return save_file(ResultsPath(dir, fnkey, enctype), &buf, verbose)
}

// ReadResults reads results from the results file
func ReadResults(dir, fnkey, enctype string) (o *Results, err error) {
	fil, err := os.Open(ResultsPath(dir, fnkey, enctype))
	if err != nil {
		return
	}
	defer func() {
		if e := fil.Close(); err == nil {
			err = e
		}
	}()
	o = new(Results)
	err = GetDecoder(fil, enctype).Decode(o)
	if err != nil {
		return nil, chk.Err("cannot decode results\n%v", err)
	}
	return
}

// SaveContours saves contour lines to the contours file as "T P" rows; lines
// are terminated by a "-1 -1" row
func (o *Results) SaveContours(dir, fnkey string, verbose bool) (err error) {
	var buf bytes.Buffer
	io.Ff(&buf, "# values: %v\n", o.Values)
	flat := pvt.Flatten(o.Contours)
	for i := 0; i < len(flat); i += 2 {
		io.Ff(&buf, "%.17g %.17g\n", flat[i], flat[i+1])
	}
	return save_file(ContoursPath(dir, fnkey), &buf, verbose)
}

// ReadContours reads the contours file
func ReadContours(dir, fnkey string) (lines []pvt.TPLine, err error) {
	defer func() {
		if r := recover(); r != nil {
			lines, err = nil, chk.Err("cannot read contours file:\n%v", r)
		}
	}()
	rows := io.ReadMatrix(ContoursPath(dir, fnkey))
	flat := make([]float64, 0, 2*len(rows))
	for i, row := range rows {
		if len(row) != 2 {
			return nil, chk.Err("row %d of contours file must have 2 values. %d is invalid", i, len(row))
		}
		flat = append(flat, row...)
	}
	return pvt.Unflatten(flat), nil
}

func save_file(filename string, buf *bytes.Buffer, verbose bool) (err error) {
	fil, err := os.Create(filename)
	if err != nil {
		return
	}
	defer func() {
		if e := fil.Close(); err == nil {
			err = e
		}
	}()
	_, err = fil.Write(buf.Bytes())
	if verbose {
		io.Pfblue2("file <%s> written\n", filename)
	}
	return
}
