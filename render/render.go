/*
 * render.go, part of colco.
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

//Package render draws software snapshots of a colco.Molecule, using the same
//render model a GPU renderer would: atoms as discs, bonds as (possibly multiple,
//possibly two-colored) strokes, framed with the molecule's projection.
package render

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/fogleman/gg"
	"github.com/rmera/colco"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

//Settings for a snapshot. AtomSize and BondSize multiply the radius of the atom
//discs and the width of the bond strokes. View rotates the molecule before it is
//projected; the camera looks down -Z.
type Settings struct {
	Width, Height int
	AtomSize      float64
	BondSize      float64
	View          r3.Rotation
	Background    colco.Color
}

//DefaultSettings returns an 800x800, white, un-rotated setup.
func DefaultSettings() Settings {
	return Settings{
		Width:      800,
		Height:     800,
		AtomSize:   2.0,
		BondSize:   0.5,
		View:       r3.Rotation{Real: 1},
		Background: colco.Color{1, 1, 1},
	}
}

//Style is a named pair of size multipliers.
type Style struct {
	AtomSize float64
	BondSize float64
}

var styles = map[string]Style{
	"default":   {AtomSize: 2.0, BondSize: 0.5},
	"stick":     {AtomSize: 1.0, BondSize: 1.0},
	"wireframe": {AtomSize: 0.5, BondSize: 0.1},
	"spheres":   {AtomSize: 7.5, BondSize: 0.0},
}

//StyleNamed returns one of the predefined styles: default, stick, wireframe or spheres.
func StyleNamed(name string) (Style, error) {
	st, ok := styles[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Style{}, fmt.Errorf("render: unknown style %q, use one of %s", name, strings.Join(StyleNames(), ", "))
	}
	return st, nil
}

//StyleNames returns the names of the predefined styles, sorted.
func StyleNames() []string {
	ret := make([]string, 0, len(styles))
	for k := range styles {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}

//WithStyle returns a copy of S with the sizes of st.
func (S Settings) WithStyle(st Style) Settings {
	S.AtomSize = st.AtomSize
	S.BondSize = st.BondSize
	return S
}

//ParseView reads a view rotation written as "x,y,z,degrees": a rotation axis, which
//doesn't need to be normalized, and an angle. An empty string means no rotation.
func ParseView(s string) (r3.Rotation, error) {
	if strings.TrimSpace(s) == "" {
		return r3.Rotation{Real: 1}, nil
	}
	f := strings.Split(s, ",")
	if len(f) != 4 {
		return r3.Rotation{}, fmt.Errorf("render: view %q should be x,y,z,degrees", s)
	}
	var n [4]float64
	for i, t := range f {
		v, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return r3.Rotation{}, fmt.Errorf("render: invalid number %q in view %q", t, s)
		}
		n[i] = v
	}
	axis := r3.Vec{X: n[0], Y: n[1], Z: n[2]}
	if r3.Norm(axis) == 0 {
		if n[3] == 0 {
			return r3.Rotation{Real: 1}, nil
		}
		return r3.Rotation{}, fmt.Errorf("render: view %q has a zero rotation axis", s)
	}
	return r3.NewRotation(n[3]*math.Pi/180, r3.Unit(axis)), nil
}

//Fraction of a world unit (scaled by AtomSize or BondSize) used as radius or stroke width.
const sizeUnit = 0.25

//a thing to draw, sorted by depth.
type primitive struct {
	z    float64
	draw func(dc *gg.Context)
}

//viewport maps world coordinates to pixels. The projection is applied to a centered
//square of side min(Width, Height), so nothing is stretched.
type viewport struct {
	proj   *mat.Dense
	view   r3.Rotation
	cx, cy float64
	half   float64
	ppu    float64 //pixels per world unit
}

func newViewport(mol *colco.Molecule, s Settings) viewport {
	v := viewport{proj: mol.Projection(), view: s.View, cx: float64(s.Width) / 2, cy: float64(s.Height) / 2}
	v.half = math.Min(v.cx, v.cy)
	v.ppu = v.proj.At(0, 0) * v.half
	if v.view == (r3.Rotation{}) {
		v.view = r3.Rotation{Real: 1}
	}
	return v
}

//place returns the pixel position of p, and its depth in normalized device
//coordinates (-1 is nearest to the camera).
func (v viewport) place(p r3.Vec) (x, y, z float64) {
	return v.project(v.view.Rotate(p))
}

//project is place for a point already rotated by the view.
func (v viewport) project(p r3.Vec) (x, y, z float64) {
	var clip mat.VecDense
	clip.MulVec(v.proj, mat.NewVecDense(4, []float64{p.X, p.Y, p.Z, 1}))
	w := clip.AtVec(3)
	return v.cx + v.half*clip.AtVec(0)/w, v.cy - v.half*clip.AtVec(1)/w, clip.AtVec(2) / w
}

//Snapshot draws mol with the given settings. An empty molecule, or one with all its atoms
//on the origin, gives an image with only the background. Non-positive sizes are an error.
func Snapshot(mol *colco.Molecule, s Settings) (image.Image, error) {
	if s.Width <= 0 || s.Height <= 0 {
		return nil, fmt.Errorf("render: invalid canvas size %dx%d", s.Width, s.Height)
	}
	if s.AtomSize < 0 || s.BondSize < 0 {
		return nil, fmt.Errorf("render: negative atom (%f) or bond (%f) size", s.AtomSize, s.BondSize)
	}
	dc := gg.NewContext(s.Width, s.Height)
	dc.SetColor(s.Background.RGBA())
	dc.Clear()
	if mol.Empty() || mol.BoundingSize() == 0 {
		return dc.Image(), nil
	}
	v := newViewport(mol, s)
	prims := make([]primitive, 0, mol.Len()+2*mol.NBonds())
	for _, b := range mol.Bonds() {
		if s.BondSize == 0 {
			break
		}
		prims = append(prims, bondHalves(v, b, mol.UpAxis(), s.BondSize*v.ppu*sizeUnit)...)
	}
	viewed := mol.Coords().Rotated(v.view)
	for i, a := range mol.Atoms() {
		x, y, z := v.project(viewed.Vec(i))
		r := s.AtomSize * a.Element.Scale * v.ppu * sizeUnit
		col := a.Element.Color
		prims = append(prims, primitive{z: z, draw: func(dc *gg.Context) {
			dc.SetColor(col.RGBA())
			dc.DrawCircle(x, y, r)
			dc.Fill()
		}})
	}
	//Back to front. Farther things have a larger NDC depth.
	//Stable, so at the same depth, bonds go under atoms.
	sort.SliceStable(prims, func(i, j int) bool { return prims[i].z > prims[j].z })
	for _, p := range prims {
		p.draw(dc)
	}
	return dc.Image(), nil
}

//bondHalves returns the two halves of the bond b as primitives. Each half
//is drawn as b.Strokes() parallel strokes.
func bondHalves(v viewport, b colco.Bond, up colco.Axis, width float64) []primitive {
	start := b.Anchor
	end := b.Tip(up)
	mid := r3.Scale(0.5, r3.Add(start, end))
	x1, y1, z1 := v.place(start)
	xm, ym, zm := v.place(mid)
	x2, y2, z2 := v.place(end)
	n := b.Strokes()
	//perpendicular to the bond, on screen.
	px, py := -(y2 - y1), x2-x1
	if l := math.Hypot(px, py); l > 0 {
		px, py = px/l, py/l
	}
	spacing := 2 * width
	half := func(ax, ay, bx, by float64, c colco.Color) func(dc *gg.Context) {
		return func(dc *gg.Context) {
			dc.SetColor(c.RGBA())
			dc.SetLineWidth(width)
			for k := 0; k < n; k++ {
				off := (float64(k) - float64(n-1)/2) * spacing
				dc.DrawLine(ax+off*px, ay+off*py, bx+off*px, by+off*py)
			}
			dc.Stroke()
		}
	}
	return []primitive{
		{z: (z1 + zm) / 2, draw: half(x1, y1, xm, ym, b.Color(0))},
		{z: (zm + z2) / 2, draw: half(xm, ym, x2, y2, b.Color(1))},
	}
}

//WritePNG encodes img as PNG to out.
func WritePNG(out io.Writer, img image.Image) error {
	return png.Encode(out, img)
}
