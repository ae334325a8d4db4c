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

//Package scene implements serialization of the render model built by colco: everything
//a renderer written in any language needs to draw a molecule, and nothing else.
//Scenes can be written as JSON, for browsers and scripts, or as msgpack, when size matters.
//scene also implements a JSON-serializable error, so a program can report parse failures
//to the other side of a pipe or an HTTP connection.
package scene
