/*
 * ssplot.go, part of sslayout.
 *
 * Copyright 2024 Raul Mera <rauldotmeraatusachdotcl>
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
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

// Package ssplot draws planar layouts of nucleic acids to image files, using gonum/plot.
// Each chain gets its own color, and base pairs are drawn as thin gray lines.
package ssplot

import (
	"fmt"
	"image/color"
	"math"
	"strconv"

	v2 "github.com/rmera/sslayout/v2"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Drawable is a layout that can be plotted.
type Drawable interface {
	Coords() *v2.Matrix
	BasePairs() []int
	ChainLengths() []int
}

// Static is a Drawable built from its parts, for instance, from a layout read from a file.
type Static struct {
	coords *v2.Matrix
	pairs  []int
	chains []int
}

// NewStatic returns a Drawable with the given coordinates, base pairs (the partner of
// each nucleotide, or -1) and chain lengths. If chains is nil, there is a single chain.
func NewStatic(coords *v2.Matrix, pairs, chains []int) *Static {
	if chains == nil && coords != nil {
		chains = []int{coords.NVecs()}
	}
	return &Static{coords: coords, pairs: pairs, chains: chains}
}

func (s *Static) Coords() *v2.Matrix  { return s.coords }
func (s *Static) BasePairs() []int    { return s.pairs }
func (s *Static) ChainLengths() []int { return s.chains }

// Size is the side of the (square) image.
var Size = 6 * vg.Inch

// LabelEvery sets how often a nucleotide gets its number written. 0 disables the labels.
var LabelEvery = 10

// Plot draws the layout l and saves it to filename. The format is given by the
// extension of the filename (png, svg, pdf, eps, jpg or tiff).
func Plot(l Drawable, title, filename string) error {
	p, err := build(l, title)
	if err != nil {
		return fmt.Errorf("ssplot: %w", err)
	}
	if err := p.Save(Size, Size, filename); err != nil {
		return fmt.Errorf("ssplot: can't save %s: %w", filename, err)
	}
	return nil
}

func build(l Drawable, title string) (*plot.Plot, error) {
	c := l.Coords()
	if c == nil {
		return nil, fmt.Errorf("nil coordinates")
	}
	n := c.NVecs()
	pairs := l.BasePairs()
	if len(pairs) != n {
		return nil, fmt.Errorf("%d nucleotides but %d base pair entries", n, len(pairs))
	}
	chains := l.ChainLengths()
	total := 0
	for _, v := range chains {
		total += v
	}
	if total != n {
		return nil, fmt.Errorf("chains add up to %d, but there are %d nucleotides", total, n)
	}
	p := plot.New()
	p.Title.Text = title
	p.Title.Padding = 3 * vg.Millimeter
	p.HideAxes()
	square(p, c)

	//pairs go below everything else.
	for i, j := range pairs {
		if j <= i {
			continue
		}
		xi, yi := c.XY(i)
		xj, yj := c.XY(j)
		line, err := plotter.NewLine(plotter.XYs{{X: xi, Y: yi}, {X: xj, Y: yj}})
		if err != nil {
			return nil, err
		}
		line.LineStyle.Color = color.Gray{Y: 160}
		line.LineStyle.Width = vg.Points(1)
		p.Add(line)
	}
	from := 0
	for key, v := range chains {
		chain := c.View(from, v)
		pts := make(plotter.XYs, v)
		for k := range pts {
			pts[k].X, pts[k].Y = chain.XY(k)
		}
		line, s, err := plotter.NewLinePoints(pts)
		if err != nil {
			return nil, err
		}
		r, g, b := colors(key, len(chains))
		col := color.RGBA{R: r, G: g, B: b, A: 255}
		line.LineStyle.Color = col
		line.LineStyle.Width = vg.Points(1.5)
		s.GlyphStyle.Color = col
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		s.GlyphStyle.Radius = vg.Points(3)
		p.Add(line, s)
		//the 5' end of each chain is marked.
		start, err := plotter.NewScatter(pts[:1])
		if err != nil {
			return nil, err
		}
		start.GlyphStyle.Color = col
		start.GlyphStyle.Shape = draw.SquareGlyph{}
		start.GlyphStyle.Radius = vg.Points(4.5)
		p.Add(start)
		from += v
	}
	if LabelEvery > 0 {
		lab := plotter.XYLabels{}
		for i := 0; i < n; i += LabelEvery {
			x, y := c.XY(i)
			lab.XYs = append(lab.XYs, plotter.XY{X: x, Y: y})
			lab.Labels = append(lab.Labels, strconv.Itoa(i+1))
		}
		labels, err := plotter.NewLabels(lab)
		if err != nil {
			return nil, err
		}
		labels.Offset = vg.Point{X: vg.Points(4), Y: vg.Points(4)}
		p.Add(labels)
	}
	return p, nil
}

// square sets the same range for both axes, so the layout isn't distorted.
func square(p *plot.Plot, c *v2.Matrix) {
	min, max := c.Bounds()
	side := math.Max(max[0]-min[0], max[1]-min[1]) + 2
	cx, cy := (max[0]+min[0])/2, (max[1]+min[1])/2
	p.X.Min, p.X.Max = cx-side/2, cx+side/2
	p.Y.Min, p.Y.Max = cy-side/2, cy+side/2
}

// takes hue (0-360), v and s (0-1), returns r,g,b (0-255)
func iHVS2RGB(h, v, s float64) (uint8, uint8, uint8) {
	var r, g, b float64
	conversion := 255.0 * v
	if s == 0.0 {
		return uint8(conversion), uint8(conversion), uint8(conversion)
	}
	h = h / 60
	i := math.Floor(h)
	f := h - i
	p := 1 - s
	q := 1 - s*f
	t := 1 - s*(1-f)
	switch int(i) % 6 {
	case 0:
		r, g, b = 1, t, p
	case 1:
		r, g, b = q, 1, p
	case 2:
		r, g, b = p, 1, t
	case 3:
		r, g, b = p, q, 1
	case 4:
		r, g, b = t, p, 1
	default:
		r, g, b = 1, p, q
	}
	return uint8(r * conversion), uint8(g * conversion), uint8(b * conversion)
}

// colors returns a color for the element key of steps, going from red to violet,
// skipping the yellows, which are hard to see on white.
func colors(key, steps int) (r, g, b uint8) {
	norm := 260.0 / float64(steps)
	hp := float64(key)*norm + 20.0
	h := hp + 20.0
	if hp < 55 {
		h = hp - 20.0
	}
	return iHVS2RGB(h, 0.85, 1)
}
