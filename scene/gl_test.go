/*
 * gl_test.go, part of colco.
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

package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/rmera/colco"
)

//The projection has to be exactly what glOrtho would build for the bounding box.
func TestProjectionIsGLOrtho(Te *testing.T) {
	mol := cyclobutane(Te)
	S := FromMolecule(mol)
	e := float32(colco.Extent(mol.BoundingSize()))
	ortho := mgl32.Ortho(-e, e, -e, e, -e, e)
	if !S.ProjectionMat().ApproxEqualThreshold(ortho, 1e-6) {
		Te.Errorf("projection\n%v\nis not glOrtho\n%v", S.ProjectionMat(), ortho)
	}
}

func TestBondModel(Te *testing.T) {
	mol := cyclobutane(Te)
	S := FromMolecule(mol)
	for _, b := range S.Bonds {
		tip := b.Model(colco.AxisY).Mul4x1(mgl32.Vec4{0, 1, 0, 1})
		p := mol.Atom(b.At2).Position
		want := mgl32.Vec4{float32(p.X), float32(p.Y), float32(p.Z), 1}
		if !tip.ApproxEqualThreshold(want, 1e-4) {
			Te.Errorf("bond %d-%d: model takes the mesh tip to %v, expected %v", b.At1, b.At2, tip, want)
		}
	}
	a := S.Atoms[4] //a hydrogen
	edge := a.Model(2).Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	if d := edge[0] - float32(a.Position[0]); d < 1.599 || d > 1.601 {
		Te.Errorf("expected a radius of 1.6 for a hydrogen of size 2, got %f", d)
	}
}
