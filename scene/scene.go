/*
 * scene.go, part of colco.
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
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rmera/colco"
	"github.com/vmihailenco/msgpack/v5"
	"gonum.org/v1/gonum/spatial/r3"
)

//A ready-to-serialize container for an atom.
type Atom struct {
	Index    int        `json:"index" msgpack:"index"`
	Symbol   string     `json:"symbol" msgpack:"symbol"`
	Position [3]float64 `json:"position" msgpack:"position"`
	Color    [3]float64 `json:"color" msgpack:"color"`
	Scale    float64    `json:"scale" msgpack:"scale"`
}

//A ready-to-serialize container for a bond. Rotation is the orientation quaternion
//as [w, x, y, z].
type Bond struct {
	At1      int           `json:"at1" msgpack:"at1"`
	At2      int           `json:"at2" msgpack:"at2"`
	Anchor   [3]float64    `json:"anchor" msgpack:"anchor"`
	Rotation [4]float64    `json:"rotation" msgpack:"rotation"`
	Length   float64       `json:"length" msgpack:"length"`
	Order    int           `json:"order" msgpack:"order"`
	Colors   [2][3]float64 `json:"colors" msgpack:"colors"`
	TwoTone  bool          `json:"two_tone" msgpack:"two_tone"`
}

//Orientation returns the rotation of the bond as a gonum r3.Rotation.
func (B Bond) Orientation() r3.Rotation {
	return r3.Rotation{Real: B.Rotation[0], Imag: B.Rotation[1], Jmag: B.Rotation[2], Kmag: B.Rotation[3]}
}

//Scene is the render model of a molecule. Projection is column-major, ready to be
//used as a GL uniform.
type Scene struct {
	Atoms        []Atom      `json:"atoms" msgpack:"atoms"`
	Bonds        []Bond      `json:"bonds" msgpack:"bonds"`
	Projection   [16]float32 `json:"projection" msgpack:"projection"`
	BoundingSize float64     `json:"bounding_size" msgpack:"bounding_size"`
	UpAxis       string      `json:"up_axis" msgpack:"up_axis"`
	ColorPolicy  string      `json:"color_policy" msgpack:"color_policy"`
	Formula      string      `json:"formula" msgpack:"formula"`
}

func vec(v r3.Vec) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

//FromMolecule builds the render model for mol.
func FromMolecule(mol *colco.Molecule) *Scene {
	S := &Scene{
		Atoms:        make([]Atom, 0, mol.Len()),
		Bonds:        make([]Bond, 0, mol.NBonds()),
		Projection:   colco.ColumnMajor(mol.Projection()),
		BoundingSize: mol.BoundingSize(),
		UpAxis:       mol.UpAxis().String(),
		ColorPolicy:  mol.Policy().String(),
		Formula:      mol.Formula(),
	}
	for _, a := range mol.Atoms() {
		S.Atoms = append(S.Atoms, Atom{
			Index:    a.Index,
			Symbol:   a.Element.Symbol,
			Position: vec(a.Position),
			Color:    a.Element.Color,
			Scale:    a.Element.Scale,
		})
	}
	for _, b := range mol.Bonds() {
		q := b.Orientation
		S.Bonds = append(S.Bonds, Bond{
			At1:      b.At1,
			At2:      b.At2,
			Anchor:   vec(b.Anchor),
			Rotation: [4]float64{q.Real, q.Imag, q.Jmag, q.Kmag},
			Length:   b.Length,
			Order:    b.Order,
			Colors:   [2][3]float64{b.Colors[0], b.Colors[1]},
			TwoTone:  b.TwoTone,
		})
	}
	return S
}

//WriteJSON encodes the scene as one JSON document to out.
func (S *Scene) WriteJSON(out io.Writer) error {
	enc := json.NewEncoder(out)
	if err := enc.Encode(S); err != nil {
		return fmt.Errorf("scene: encoding JSON: %w", err)
	}
	return nil
}

//ReadJSON decodes one JSON scene from in.
func ReadJSON(in io.Reader) (*Scene, error) {
	S := new(Scene)
	dec := json.NewDecoder(bufio.NewReader(in))
	if err := dec.Decode(S); err != nil {
		return nil, fmt.Errorf("scene: decoding JSON: %w", err)
	}
	return S, nil
}

//WriteMsgpack encodes the scene as msgpack to out.
func (S *Scene) WriteMsgpack(out io.Writer) error {
	if err := msgpack.NewEncoder(out).Encode(S); err != nil {
		return fmt.Errorf("scene: encoding msgpack: %w", err)
	}
	return nil
}

//ReadMsgpack decodes one msgpack scene from in.
func ReadMsgpack(in io.Reader) (*Scene, error) {
	S := new(Scene)
	if err := msgpack.NewDecoder(in).Decode(S); err != nil {
		return nil, fmt.Errorf("scene: decoding msgpack: %w", err)
	}
	return S, nil
}

//An easily JSON-serializable error.
type Error struct {
	IsError  bool   `json:"is_error"` //If this is false (no error) all the other fields will be at their zero-values.
	Kind     string `json:"kind,omitempty"`
	Line     int    `json:"line,omitempty"`
	Function string `json:"function,omitempty"` //which go functions gave the error, innermost first
	Message  string `json:"message"`
}

//Error implements the error interface
func (J *Error) Error() string {
	return J.Message
}

//Marshal serializes the error. Panics on failure.
func (J *Error) Marshal() []byte {
	ret, err2 := json.Marshal(J)
	if err2 != nil {
		panic(strings.Join([]string{J.Error(), err2.Error()}, " - "))
	}
	return ret
}

//NewError takes any error and returns a JSON-marshal-able version of it. If err comes from
//the colco parser, the kind of problem, the line and the decoration are kept.
func NewError(err error) *Error {
	jerr := &Error{IsError: true, Message: err.Error()}
	for _, k := range []error{colco.ErrDanglingBond, colco.ErrNumericParse, colco.ErrConfig} {
		if errors.Is(err, k) {
			jerr.Kind = k.Error()
			break
		}
	}
	var cerr *colco.Error
	if errors.As(err, &cerr) {
		jerr.Line = cerr.Line()
		jerr.Function = strings.Join(cerr.Decorate(""), " < ")
	}
	return jerr
}
