// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	goio "io"
	"strconv"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/ptdiag/inp"
	"github.com/cpmech/ptdiag/out"
	"github.com/cpmech/ptdiag/pvt"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// options holds flags shared by all commands
type options struct {
	verbose  bool   // show messages
	logLevel string // logrus level
	logger   *logrus.Logger
}

// newRootCmd returns the ptdiag command tree
func newRootCmd() *cobra.Command {
	opt := &options{logger: logrus.New()}
	root := &cobra.Command{
		Use:           "ptdiag",
		Short:         "ptdiag computes P/T phase diagrams of mixtures",
		Long:          "ptdiag computes bubble/dew lines, critical point, cricondentherm, cricondenbar and liquid-fraction contour lines of mixtures described by .json, .toml or .yaml files.",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := logrus.ParseLevel(opt.logLevel)
			if err != nil {
				return err
			}
			opt.logger.SetLevel(lvl)
			opt.logger.SetOutput(cmd.ErrOrStderr())
			io.Verbose = opt.verbose
			return nil
		},
	}
	root.PersistentFlags().BoolVarP(&opt.verbose, "verbose", "v", false, "show messages")
	root.PersistentFlags().StringVar(&opt.logLevel, "log-level", "warning", "log level: debug, info, warning, error")
	root.AddCommand(newRunCmd(opt), newCritCmd(opt), newTuneCmd(opt), newContourCmd(opt))
	return root
}

// diagram reads data file and allocates diagram
func (o *options) diagram(fn string, erasefiles bool) (dat *inp.Data, d *pvt.Diagram, err error) {
	dat, err = inp.ReadData(fn, erasefiles)
	if err != nil {
		return
	}
	dat.Cfg.Log = o.logger.WithField("key", dat.Key)
	d, err = dat.NewDiagram()
	return
}

// bubbleDew reads data file and finds the bubble/dew lines
func (o *options) bubbleDew(fn string, erasefiles bool) (dat *inp.Data, d *pvt.Diagram, err error) {
	dat, d, err = o.diagram(fn, erasefiles)
	if err != nil {
		return
	}
	err = d.FindBubbleDewLines(dat.TrapT, dat.TrapP, dat.GridT)
	return
}

func newRunCmd(opt *options) *cobra.Command {
	var tune bool
	cmd := &cobra.Command{
		Use:   "run <file>",
		Short: "Compute phase diagram and save results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dat, d, err := opt.bubbleDew(args[0], true)
			if err != nil {
				return err
			}
			res, err := out.Collect(d, dat.Desc, dat.Contours)
			if err != nil {
				return err
			}
			if tune {
				res.AoverB = d.SearchAoverBTerm()
				_, _, res.AoverBIters = d.Iterations()
			}
			err = res.Save(dat.DirOut, dat.Key, dat.EncType, opt.verbose)
			if err != nil {
				return err
			}
			err = res.SaveContours(dat.DirOut, dat.Key, opt.verbose)
			if err != nil {
				return err
			}
			if dat.Plot {
				err = res.Plot(dat.DirOut, dat.Key+".png", opt.verbose)
				if err != nil {
					return err
				}
			}
			summary(cmd.OutOrStdout(), res)
			return nil
		},
	}
	cmd.Flags().BoolVar(&tune, "tune", false, "also search for the A/B term")
	return cmd
}

func newCritCmd(opt *options) *cobra.Command {
	var full bool
	cmd := &cobra.Command{
		Use:   "crit <file>",
		Short: "Estimate the critical point",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			var d *pvt.Diagram
			var pt pvt.TPPoint
			var ok bool
			if full {
				_, d, err = opt.bubbleDew(args[0], false)
				if err != nil {
					return
				}
				pt, ok = d.CriticalPoint()
			} else {
				_, d, err = opt.diagram(args[0], false)
				if err != nil {
					return
				}
				pt, ok = d.SearchCriticalPoint()
			}
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "critical point not found\n")
				return
			}
			fmt.Fprintf(cmd.OutOrStdout(), "critical point: T = %.6g K, P = %.6g Pa\n", pt.T, pt.P)
			return
		},
	}
	cmd.Flags().BoolVar(&full, "full", false, "find the bubble/dew lines first")
	return cmd
}

func newTuneCmd(opt *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tune <file>",
		Short: "Search for the A/B term passing the phase division through the critical point",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, d, err := opt.bubbleDew(args[0], false)
			if err != nil {
				return err
			}
			ab := d.SearchAoverBTerm()
			_, _, its := d.Iterations()
			fmt.Fprintf(cmd.OutOrStdout(), "A/B = %.6g (%d steps)\n", ab, its)
			return nil
		},
	}
}

func newContourCmd(opt *options) *cobra.Command {
	return &cobra.Command{
		Use:   "contour <file> <value> [values...]",
		Short: "Print contour lines as T P rows; lines are terminated by -1 -1",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			vals := make([]float64, len(args)-1)
			for i, s := range args[1:] {
				v, err := strconv.ParseFloat(s, 64)
				if err != nil {
					return chk.Err("invalid contour value %q", s)
				}
				vals[i] = v
			}
			_, d, err := opt.bubbleDew(args[0], false)
			if err != nil {
				return err
			}
			flat, err := d.CalcContourLines(vals)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for i := 0; i < len(flat); i += 2 {
				fmt.Fprintf(w, "%g %g\n", flat[i], flat[i+1])
			}
			return nil
		},
	}
}

// summary prints landmarks of results
func summary(w goio.Writer, res *out.Results) {
	fmt.Fprintf(w, "bubble/dew points = %d\n", len(res.BubbleDew))
	if res.HasCrit {
		fmt.Fprintf(w, "critical point    = %.6g K, %.6g Pa\n", res.Crit.T, res.Crit.P)
	} else {
		fmt.Fprintf(w, "critical point not found\n")
	}
	fmt.Fprintf(w, "cricondentherm    = %.6g K, %.6g Pa\n", res.Cricondentherm.T, res.Cricondentherm.P)
	fmt.Fprintf(w, "cricondenbar      = %.6g K, %.6g Pa\n", res.Cricondenbar.T, res.Cricondenbar.P)
	for i, line := range res.Contours {
		fmt.Fprintf(w, "contour %-9g = %d points\n", res.Values[i], len(line))
	}
	if res.AoverB > 0 {
		fmt.Fprintf(w, "A/B               = %.6g\n", res.AoverB)
	}
}
