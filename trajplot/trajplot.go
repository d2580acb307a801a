/*
 * trajplot.go, part of trajio.
 *
 * Copyright 2024 The trajio Authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

//Package trajplot draws line plots of coordinate timeseries and per-frame observables.
//The format of the output is given by the extension of the file name (png, svg, pdf...).
package trajplot

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/rmera/trajio"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Size of the saved plots.
var (
	Width  = 6 * vg.Inch
	Height = 4 * vg.Inch
)

// ErrNoData is returned when there is nothing to plot.
var ErrNoData = errors.New("trajplot: no data to plot")

// Options are the texts of a plot. X, if not nil, gives the abscissa of each frame
// (for instance, its time or its index in the trajectory). Otherwise frames are numbered
// from 0.
type Options struct {
	Title  string
	XLabel string
	YLabel string
	X      []float64
}

func basicPlot(o Options) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = o.Title
	p.X.Label.Text = o.XLabel
	if p.X.Label.Text == "" {
		p.X.Label.Text = "Frame"
	}
	p.Y.Label.Text = o.YLabel
	p.Add(plotter.NewGrid())
	p.Legend.Top = true
	return p
}

// Coordinate plots the coord coordinate (0, 1 or 2 for x, y and z) of every atom in T
// against the frames, and saves the plot in filename. labels, if not nil, gives the legend
// entry of each atom.
func Coordinate(T *trajio.Timeseries, coord int, labels []string, o Options, filename string) error {
	if T == nil || T.Frames() == 0 {
		return ErrNoData
	}
	if coord < 0 || coord > 2 {
		return fmt.Errorf("trajplot: coordinate %d requested: %w", coord, trajio.ErrInvalidArgument)
	}
	series := make([][]float64, T.Atoms())
	for a := range series {
		series[a] = make([]float64, T.Frames())
		for f := range series[a] {
			series[a][f] = T.At(a, f, coord)
		}
	}
	if o.YLabel == "" {
		o.YLabel = []string{"x", "y", "z"}[coord] + " (A)"
	}
	return lines(series, labels, o, filename)
}

// Rows plots each row of M against its columns, as returned by the correlation queries
// (one row per value, one column per frame), and saves the plot in filename.
func Rows(M mat.Matrix, labels []string, o Options, filename string) error {
	if M == nil {
		return ErrNoData
	}
	r, c := M.Dims()
	if r == 0 || c == 0 {
		return ErrNoData
	}
	series := make([][]float64, r)
	for i := range series {
		series[i] = mat.Row(nil, i, M)
	}
	return lines(series, labels, o, filename)
}

func lines(series [][]float64, labels []string, o Options, filename string) error {
	if labels != nil && len(labels) != len(series) {
		return fmt.Errorf("trajplot: %d labels for %d series: %w", len(labels), len(series), trajio.ErrInvalidArgument)
	}
	if o.X != nil && len(o.X) != len(series[0]) {
		return fmt.Errorf("trajplot: %d abscissae for %d frames: %w", len(o.X), len(series[0]), trajio.ErrInvalidArgument)
	}
	p := basicPlot(o)
	for key, val := range series {
		pts := make(plotter.XYs, len(val))
		for i, v := range val {
			pts[i].X = float64(i)
			if o.X != nil {
				pts[i].X = o.X[i]
			}
			pts[i].Y = v
		}
		l, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("trajplot: series %d: %w", key, err)
		}
		r, g, b := colors(key, len(series))
		l.LineStyle.Color = color.RGBA{R: r, G: g, B: b, A: 255}
		l.LineStyle.Width = vg.Points(1)
		p.Add(l)
		if labels != nil {
			p.Legend.Add(labels[key], l)
		}
	}
	if err := p.Save(Width, Height, filename); err != nil {
		return fmt.Errorf("trajplot: saving %s: %w", filename, err)
	}
	return nil
}

//colors spreads steps colors over the hue circle, skipping the yellows,
//which are hard to see on white.
func colors(key, steps int) (r, g, b uint8) {
	norm := 260.0 / float64(steps)
	hp := float64(key)*norm + 20.0
	h := hp + 20.0
	if hp < 55 {
		h = hp - 20.0
	}
	return hsv2RGB(h, 1, 1)
}

//hsv2RGB converts a color with hue h in degrees and saturation and value in
//[0,1] to 8-bit RGB.
func hsv2RGB(h, s, v float64) (uint8, uint8, uint8) {
	if s == 0 {
		c := uint8(255 * v)
		return c, c, c
	}
	h = math.Mod(h, 360) / 60
	i := math.Floor(h)
	f := h - i
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))
	var r, g, b float64
	switch int(i) {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default:
		r, g, b = v, p, q
	}
	return uint8(255 * r), uint8(255 * g), uint8(255 * b)
}
