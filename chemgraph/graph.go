/*
 * graph.go, part of colco.
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

//Package chemgraph looks at a colco.Molecule as a graph, with atoms as nodes and
//bonds as edges, and uses the gonum graph tools to answer questions about its
//connectivity.
package chemgraph

import (
	"math"
	"sort"

	"github.com/rmera/colco"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

//Atom is a graph node. Its ID is the 1-based index of the atom in the molecule.
type Atom struct {
	colco.Atom
}

func (A *Atom) ID() int64 {
	return int64(A.Index)
}

//Bond is a weighted, undirected graph edge.
type Bond struct {
	colco.Bond
	At1, At2   *Atom
	Weightfunc func(*Bond) float64
}

//Weight returns the weight of the bond, by default, its length.
func (B *Bond) Weight() float64 {
	if B.Weightfunc == nil {
		return B.Length
	}
	return B.Weightfunc(B)
}

func (B *Bond) From() graph.Node {
	return B.At1
}

func (B *Bond) To() graph.Node {
	return B.At2
}

//ReversedEdge returns a new Bond with the atoms switched. The receiver is not modified.
func (B *Bond) ReversedEdge() graph.Edge {
	r := *B
	r.At1, r.At2 = B.At2, B.At1
	return &r
}

//Topology is the bond graph of a molecule.
type Topology struct {
	g     *simple.WeightedUndirectedGraph
	atoms []*Atom
}

//New returns the bond graph of mol, with bond lengths as weights.
func New(mol *colco.Molecule) *Topology {
	return NewWeighted(mol, nil)
}

//NewWeighted returns the bond graph of mol, where the weight of each bond is given by weightfunc.
//A nil weightfunc means bond lengths. Bonds from an atom to itself are not added, and if
//there are several bonds between the same pair of atoms, only the first is kept.
func NewWeighted(mol *colco.Molecule, weightfunc func(*Bond) float64) *Topology {
	T := &Topology{g: simple.NewWeightedUndirectedGraph(0, math.Inf(1))}
	for _, at := range mol.Atoms() {
		a := &Atom{Atom: at}
		T.atoms = append(T.atoms, a)
		T.g.AddNode(a)
	}
	for _, b := range mol.Bonds() {
		if b.At1 == b.At2 || T.g.HasEdgeBetween(int64(b.At1), int64(b.At2)) {
			continue
		}
		T.g.SetWeightedEdge(&Bond{Bond: b, At1: T.atoms[b.At1-1], At2: T.atoms[b.At2-1], Weightfunc: weightfunc})
	}
	return T
}

//Graph returns the underlying gonum graph, for algorithms not wrapped here.
func (T *Topology) Graph() graph.WeightedUndirected {
	return T.g
}

//Len returns the number of atoms (nodes).
func (T *Topology) Len() int {
	return len(T.atoms)
}

func (T *Topology) has(i int) bool {
	return i >= 1 && i <= len(T.atoms)
}

//Bond returns the bond between the atoms i and j, or nil if they are not bonded.
func (T *Topology) Bond(i, j int) *Bond {
	e := T.g.WeightedEdgeBetween(int64(i), int64(j))
	if e == nil {
		return nil
	}
	return e.(*Bond)
}

//Neighbors returns the sorted indexes of the atoms bonded to atom i.
//It returns nil if i is not an atom of the molecule.
func (T *Topology) Neighbors(i int) []int {
	if !T.has(i) {
		return nil
	}
	return ids(graph.NodesOf(T.g.From(int64(i))))
}

//Degree returns the number of atoms bonded to atom i.
func (T *Topology) Degree(i int) int {
	if !T.has(i) {
		return 0
	}
	return T.g.From(int64(i)).Len()
}

//Fragments returns the indexes of the atoms of each connected component (each
//molecule, in a structure with several), ordered by their smallest atom index.
func (T *Topology) Fragments() [][]int {
	return sortSets(topo.ConnectedComponents(T.g))
}

//Rings returns a basis of the cycles of the graph. For organic molecules
//that is, in practice, the set of smallest rings. Each ring is given as a sorted
//set of atom indexes.
func (T *Topology) Rings() [][]int {
	cycles := topo.UndirectedCyclesIn(T.g)
	for i, c := range cycles {
		//the first node is repeated at the end.
		if len(c) > 1 && c[0].ID() == c[len(c)-1].ID() {
			cycles[i] = c[:len(c)-1]
		}
	}
	return sortSets(cycles)
}

//Path returns the atoms along the lightest (by default, shortest) chain of bonds from i to j,
//both included, and its total weight. If there is no such chain, it returns nil and +Inf.
func (T *Topology) Path(i, j int) ([]int, float64) {
	if !T.has(i) || !T.has(j) {
		return nil, math.Inf(1)
	}
	sp := path.DijkstraFrom(T.g.Node(int64(i)), T.g)
	nodes, w := sp.To(int64(j))
	if nodes == nil {
		return nil, math.Inf(1)
	}
	ret := make([]int, len(nodes))
	for k, n := range nodes {
		ret[k] = int(n.ID())
	}
	return ret, w
}

func ids(nodes []graph.Node) []int {
	ret := make([]int, len(nodes))
	for i, n := range nodes {
		ret[i] = int(n.ID())
	}
	sort.Ints(ret)
	return ret
}

func sortSets(sets [][]graph.Node) [][]int {
	ret := make([][]int, 0, len(sets))
	for _, s := range sets {
		ret = append(ret, ids(s))
	}
	sort.Slice(ret, func(i, j int) bool {
		a, b := ret[i], ret[j]
		for k := 0; k < len(a) && k < len(b); k++ {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		return len(a) < len(b)
	})
	return ret
}
