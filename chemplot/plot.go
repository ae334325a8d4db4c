/*
 * plot.go, part of colco.
 *
 * Copyright 2026 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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

//Package chemplot produces figures of colco molecules with gonum/plot:
//a flat projection of the structure and a histogram of bond lengths.
package chemplot

import (
	"fmt"
	"image/color"
	"math"
	"path/filepath"
	"strings"

	"github.com/rmera/colco"
	"github.com/rmera/colco/chemgraph"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

func basicPlot(title, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())
	return p
}

//glyphRadius is the radius, in points, of an atom of Scale 1.
const glyphRadius = 4

//Projection returns a plot of mol projected on the XY plane, with each atom in its
//element color and each bond as a segment, two-colored if the molecule uses the
//TwoTone policy. Both axes share the molecule's bounding size, so the figure is not distorted.
func Projection(mol *colco.Molecule, title string) (*plot.Plot, error) {
	return projection(mol, title, func(a colco.Atom) color.Color { return a.Element.Color.RGBA() })
}

//ProjectionByFragment is like Projection, but atoms are colored by the fragment
//(connected set of atoms) they belong to.
func ProjectionByFragment(mol *colco.Molecule, title string) (*plot.Plot, error) {
	frags := chemgraph.New(mol).Fragments()
	fragof := make(map[int]int, mol.Len())
	for k, f := range frags {
		for _, i := range f {
			fragof[i] = k
		}
	}
	return projection(mol, title, func(a colco.Atom) color.Color {
		r, g, b := colors(fragof[a.Index], len(frags))
		return color.RGBA{R: r, G: g, B: b, A: 255}
	})
}

func projection(mol *colco.Molecule, title string, atomcolor func(colco.Atom) color.Color) (*plot.Plot, error) {
	p := basicPlot(title, "X", "Y")
	if mol.Empty() {
		return p, nil
	}
	lim := mol.BoundingSize() * 1.2
	if lim == 0 {
		lim = 1
	}
	p.X.Min, p.X.Max = -lim, lim
	p.Y.Min, p.Y.Max = -lim, lim
	up := mol.UpAxis()
	for _, b := range mol.Bonds() {
		tip := b.Tip(up)
		mid := r3.Scale(0.5, r3.Add(b.Anchor, tip))
		for k, seg := range [2][2]r3.Vec{{b.Anchor, mid}, {mid, tip}} {
			l, err := plotter.NewLine(plotter.XYs{{X: seg[0].X, Y: seg[0].Y}, {X: seg[1].X, Y: seg[1].Y}})
			if err != nil {
				return nil, err
			}
			l.LineStyle.Color = b.Color(k).RGBA()
			l.LineStyle.Width = vg.Points(float64(b.Strokes()))
			p.Add(l)
		}
	}
	//One scatter per atom, as each has its own color and size.
	//Atoms further down the Z axis go first.
	for _, a := range depthSorted(mol.Atoms()) {
		s, err := plotter.NewScatter(plotter.XYs{{X: a.Position.X, Y: a.Position.Y}})
		if err != nil {
			return nil, err
		}
		s.GlyphStyle.Color = atomcolor(a)
		s.GlyphStyle.Radius = vg.Points(glyphRadius * a.Element.Scale)
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(s)
	}
	return p, nil
}

func depthSorted(atoms []colco.Atom) []colco.Atom {
	//insertion sort, keeps the file order for atoms at the same depth.
	for i := 1; i < len(atoms); i++ {
		for j := i; j > 0 && atoms[j].Position.Z < atoms[j-1].Position.Z; j-- {
			atoms[j], atoms[j-1] = atoms[j-1], atoms[j]
		}
	}
	return atoms
}

//BondLengths returns a histogram of the bond lengths in mol, with the given number of bins.
//A molecule without bonds is an error.
func BondLengths(mol *colco.Molecule, bins int) (*plot.Plot, error) {
	if mol.NBonds() == 0 {
		return nil, fmt.Errorf("chemplot: no bonds to plot")
	}
	if bins < 1 {
		return nil, fmt.Errorf("chemplot: invalid number of bins %d", bins)
	}
	vals := make(plotter.Values, 0, mol.NBonds())
	for _, b := range mol.Bonds() {
		vals = append(vals, b.Length)
	}
	h, err := plotter.NewHist(vals, bins)
	if err != nil {
		return nil, err
	}
	h.FillColor = colco.NeutralBondColor().RGBA()
	p := basicPlot("Bond lengths", "Length", "Count")
	p.Add(h)
	return p, nil
}

//Save writes the plot to filename, 5x5 inches. The format (png, svg, pdf, etc.) is
//taken from the extension.
func Save(p *plot.Plot, filename string) error {
	if ext := strings.TrimPrefix(filepath.Ext(filename), "."); ext == "" {
		return fmt.Errorf("chemplot: no format for %q", filename)
	}
	return p.Save(5*vg.Inch, 5*vg.Inch, filename)
}

//takes hue (0-360), v and s (0-1), returns r,g,b (0-255)
func iHVS2RGB(h, v, s float64) (uint8, uint8, uint8) {
	var i, f, p, q, t float64
	var r, g, b float64
	maxcolor := 255.0
	conversion := maxcolor * v
	if s == 0.0 {
		return uint8(conversion), uint8(conversion), uint8(conversion)
	}
	h = h / 60
	i = math.Floor(h)
	f = h - i
	p = v * (1 - s)
	q = v * (1 - s*f)
	t = v * (1 - s*(1-f))
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
	default: //case 5
		r, g, b = v, p, q
	}
	return uint8(r * conversion), uint8(g * conversion), uint8(b * conversion)
}

//colors returns the key-th of steps colors spread over the hue wheel, skipping
//the yellows, which are hard to see on white.
func colors(key, steps int) (r, g, b uint8) {
	norm := 260.0 / float64(steps)
	hp := float64((float64(key) * norm) + 20.0)
	var h float64
	if hp < 55 {
		h = hp - 20.0
	} else {
		h = hp + 20.0
	}
	return iHVS2RGB(h, 1.0, 1.0)
}
