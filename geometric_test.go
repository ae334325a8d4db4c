/*
 * geometric_test.go, part of colco.
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

package colco

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

func isFinite(v r3.Vec) bool {
	for _, f := range []float64{v.X, v.Y, v.Z} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

//The orientation has to take the mesh axis onto the normalized bond direction,
//for any direction.
func TestOrientRandom(Te *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for _, up := range []Axis{AxisY, AxisZ} {
		for i := 0; i < 1000; i++ {
			d := r3.Vec{X: rng.Float64()*2 - 1, Y: rng.Float64()*2 - 1, Z: rng.Float64()*2 - 1}
			if r3.Norm(d) < 1e-3 {
				continue
			}
			q := Orient(d, up)
			got := q.Rotate(up.Vec())
			if !vecNear(got, r3.Unit(d), 1e-5) {
				Te.Fatalf("axis %s: rotated axis %v, expected %v", up, got, r3.Unit(d))
			}
		}
	}
}

func TestOrientParallel(Te *testing.T) {
	for _, up := range []Axis{AxisY, AxisZ} {
		q := Orient(r3.Scale(3, up.Vec()), up)
		if q != (r3.Rotation{Real: 1}) {
			Te.Errorf("axis %s: parallel bond should not be rotated, got %v", up, q)
		}
		anti := Orient(r3.Scale(-0.5, up.Vec()), up)
		got := anti.Rotate(up.Vec())
		if !isFinite(got) || !vecNear(got, r3.Scale(-1, up.Vec()), 1e-9) {
			Te.Errorf("axis %s: antiparallel bond gave %v", up, got)
		}
		//the turn has to be around the side axis.
		if side := anti.Rotate(up.Side()); !vecNear(side, up.Side(), 1e-9) {
			Te.Errorf("axis %s: the side axis should not move, got %v", up, side)
		}
	}
}

func TestAntiparallelBond(Te *testing.T) {
	a := Atom{Index: 1, Position: r3.Vec{Y: 1}, Element: StyleFor("C")}
	b := Atom{Index: 2, Element: StyleFor("C")}
	B := ResolveBond(a, b, 1, FixedColor, AxisY)
	q := B.Orientation
	for _, f := range []float64{q.Real, q.Imag, q.Jmag, q.Kmag} {
		if math.IsNaN(f) {
			Te.Fatalf("NaN in orientation %v", q)
		}
	}
	if math.Abs(q.Real) > 1e-9 {
		Te.Errorf("expected a 180 degree turn, got %v", q)
	}
	if !vecNear(B.Tip(AxisY), b.Position, 1e-9) {
		Te.Errorf("tip %v should be on the origin", B.Tip(AxisY))
	}
}

func TestProject(Te *testing.T) {
	P := Project(1)
	e := 9.0
	expected := mat.NewDense(4, 4, []float64{
		1 / e, 0, 0, 0,
		0, 1 / e, 0, 0,
		0, 0, -1 / e, 0,
		0, 0, 0, 1,
	})
	if !mat.EqualApprox(P, expected, 1e-12) {
		Te.Errorf("wrong projection\n%v", mat.Formatted(P))
	}
	//The corner of the box has to land on the corner of clip space (z flipped).
	corner := mat.NewVecDense(4, []float64{e, -e, e, 1})
	var clip mat.VecDense
	clip.MulVec(P, corner)
	if math.Abs(clip.AtVec(0)-1) > 1e-12 || math.Abs(clip.AtVec(1)+1) > 1e-12 || math.Abs(clip.AtVec(2)+1) > 1e-12 {
		Te.Errorf("corner mapped to %v", clip.RawVector().Data)
	}
	cm := ColumnMajor(P)
	if cm[0] != float32(1/e) || cm[10] != float32(-1/e) || cm[15] != 1 {
		Te.Errorf("wrong column-major layout %v", cm)
	}
}

func TestColumnMajorOrder(Te *testing.T) {
	m := mat.NewDense(4, 4, nil)
	m.Set(0, 3, 7) //translation x lives in the fourth column
	cm := ColumnMajor(m)
	if cm[12] != 7 {
		Te.Errorf("expected 7 at index 12, got %v", cm)
	}
}

func TestProjectZeroExtent(Te *testing.T) {
	P := Project(0)
	r, c := P.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := P.At(i, j)
			if v != 0 || math.IsNaN(v) || math.IsInf(v, 0) {
				Te.Fatalf("zero extent should give the zero matrix, got %v at %d,%d", v, i, j)
			}
		}
	}
}

func TestParseConfig(Te *testing.T) {
	if a, err := ParseAxis(" Z "); err != nil || a != AxisZ {
		Te.Errorf("ParseAxis: %v %v", a, err)
	}
	if _, err := ParseAxis("x"); !errors.Is(err, ErrConfig) {
		Te.Errorf("expected a configuration error, got %v", err)
	}
	if c, err := ParseColorPolicy("two-tone"); err != nil || c != TwoTone {
		Te.Errorf("ParseColorPolicy: %v %v", c, err)
	}
	if _, err := ParseColorPolicy(""); !errors.Is(err, ErrConfig) {
		Te.Errorf("expected a configuration error, got %v", err)
	}
}
