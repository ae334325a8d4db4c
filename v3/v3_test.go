/*
 * v3_test.go, part of colco.
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

package v3

import (
	"fmt"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestNewMatrix(Te *testing.T) {
	A, err := NewMatrix([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9})
	if err != nil {
		Te.Fatal(err)
	}
	if A.Len() != 3 {
		Te.Errorf("expected 3 vectors, got %d", A.Len())
	}
	if _, err := NewMatrix([]float64{1, 2, 3, 4}); err == nil {
		Te.Error("a slice of 4 elements should not make a Matrix")
	}
	E, err := NewMatrix(nil)
	if err != nil {
		Te.Fatal(err)
	}
	if E.Len() != 0 || E.Centroid() != (r3.Vec{}) {
		Te.Errorf("empty matrix should behave as an empty set, got len %d", E.Len())
	}
}

func TestVecs(Te *testing.T) {
	A, _ := NewMatrix([]float64{1, 2, 3, 4, 5, 6})
	A.Set(1, 0, 100)
	fmt.Println("A\n", mat2str(A))
	if v := A.Vec(1); v.X != 100 {
		Te.Errorf("Vec should read the Dense, got %v", v)
	}
	A.SetVec(0, r3.Vec{X: -1, Y: -2, Z: -3})
	if v := A.Vec(0); v != (r3.Vec{X: -1, Y: -2, Z: -3}) {
		Te.Errorf("SetVec/Vec mismatch: %v", v)
	}
}

func TestCentroid(Te *testing.T) {
	A, _ := NewMatrix([]float64{0.5, -2.25, 1, 1.5, 0.25, -0.5})
	c := A.Centroid()
	if !near(c.X, 1) || !near(c.Y, -1) || !near(c.Z, 0.25) {
		Te.Errorf("wrong centroid %v", c)
	}
}

func TestRotated(Te *testing.T) {
	A, _ := NewMatrix([]float64{1, 0, 0, 0, 1, 0})
	rot := r3.NewRotation(math.Pi/2, r3.Vec{Z: 1})
	B := A.Rotated(rot)
	v := B.Vec(0)
	if !near(v.X, 0) || !near(v.Y, 1) || !near(v.Z, 0) {
		Te.Errorf("x rotated 90 degrees about z should be y, got %v", v)
	}
	if A.At(0, 0) != 1 {
		Te.Error("Rotated should not modify the receiver")
	}
}

func mat2str(A *Matrix) string {
	s := ""
	for i := 0; i < A.Len(); i++ {
		s += fmt.Sprintf("%v\n", A.Vec(i))
	}
	return s
}
