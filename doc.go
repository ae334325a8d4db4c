/*
 * doc.go, part of colco.
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

/*
Package colco is the core of the colco molecule viewer. It turns the text of a 3D
structure (the atom and bond blocks of an MDL molfile, as written by RDKit, for instance)
into a model that a renderer can draw directly: a set of positioned, styled atoms, a
set of oriented and sized bonds, and an orthographic projection that frames the whole
structure.

	**colco capabilities**

	Reads atom records (x y z symbol ...) and bond records (i j order flag) from
	structure text. Everything else in the text is ignored.

	Styles atoms from a single table (C, O, N, H, and a default for everything else).

	Orients bonds: each bond is a rotation (a gonum r3.Rotation, i.e. a unit quaternion)
	taking the axis of the un-rotated bond mesh onto the direction between the two atoms,
	plus an anchor, a length and a bond order. Bonds pointing exactly along, or exactly
	against the mesh axis are handled without NaNs.

	Frames the structure with a symmetric orthographic projection.

The mesh axis (AxisY or AxisZ) and the bond color policy (TwoTone or FixedColor) have no
defaults: they are given explicitly to NewParser.

Parsing is pure and synchronous: no I/O, no global mutable state. A Molecule is never
modified after Parse returns it, so it can be read from several goroutines without locking.

The subpackages deal with everything around the core: v3 (coordinate matrices),
chemgraph (bond graph analysis), scene (JSON/msgpack render model), molfile (reading,
possibly compressed, structure files), render (software snapshots), chemplot (figures).
*/
package colco
