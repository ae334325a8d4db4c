/*
 * molfile.go, part of colco.
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

//Package molfile reads and writes the text of structure files, which may be compressed
//with z-standard (.zst) or gzip (.gz). The text is returned as-is, ready to be given to
//a colco.Parser.
package molfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

//Codec is the compression of a structure file.
type Codec int

const (
	Plain Codec = iota
	Zstd
	Gzip
)

func (c Codec) String() string {
	switch c {
	case Zstd:
		return "zstd"
	case Gzip:
		return "gzip"
	}
	return "plain"
}

//CodecFor guesses the compression of a file from its extension.
func CodecFor(name string) Codec {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".zst", ".zstd":
		return Zstd
	case ".gz", ".gzip":
		return Gzip
	}
	return Plain
}

//*zstd.Decoder doesn't implement io.ReadCloser, as its Close returns nothing.
type zstdCloser struct {
	*zstd.Decoder
}

func (z zstdCloser) Close() error {
	z.Decoder.Close()
	return nil
}

func newReader(in io.Reader, codec Codec) (io.ReadCloser, error) {
	switch codec {
	case Zstd:
		r, err := zstd.NewReader(in)
		if err != nil {
			return nil, err
		}
		return zstdCloser{r}, nil
	case Gzip:
		return gzip.NewReader(in)
	}
	return io.NopCloser(in), nil
}

func newWriter(out io.Writer, codec Codec) (io.WriteCloser, error) {
	switch codec {
	case Zstd:
		return zstd.NewWriter(out, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	case Gzip:
		return gzip.NewWriterLevel(out, gzip.BestCompression)
	}
	return nopWriteCloser{out}, nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

//ReadFrom returns all the text in in, decompressed with codec.
func ReadFrom(in io.Reader, codec Codec) (string, error) {
	r, err := newReader(bufio.NewReader(in), codec)
	if err != nil {
		return "", Error{fmt.Sprintf("can't start %s decompression: %s", codec, err), "", []string{"ReadFrom"}}
	}
	defer r.Close()
	b, err := io.ReadAll(r)
	if err != nil {
		return "", Error{fmt.Sprintf("can't read %s data: %s", codec, err), "", []string{"ReadFrom"}}
	}
	return string(b), nil
}

//Read returns the text of the file name, decompressed according to its extension.
func Read(name string) (string, error) {
	f, err := os.Open(name)
	if err != nil {
		return "", Error{UnableToOpen + ": " + err.Error(), name, []string{"Read"}}
	}
	defer f.Close()
	text, err := ReadFrom(f, CodecFor(name))
	if err != nil {
		e := err.(Error)
		e.filename = name
		e.deco = e.Decorate("Read")
		return "", e
	}
	return text, nil
}

//WriteTo writes text to out, compressed with codec.
func WriteTo(out io.Writer, text string, codec Codec) error {
	w, err := newWriter(out, codec)
	if err != nil {
		return Error{fmt.Sprintf("can't start %s compression: %s", codec, err), "", []string{"WriteTo"}}
	}
	if _, err := io.WriteString(w, text); err != nil {
		w.Close()
		return Error{"can't write: " + err.Error(), "", []string{"WriteTo"}}
	}
	if err := w.Close(); err != nil {
		return Error{"can't finish compressed stream: " + err.Error(), "", []string{"WriteTo"}}
	}
	return nil
}

//WriteCompressed writes text to the file name, compressed according to its extension
//(plain text if the extension is not a known one).
func WriteCompressed(name, text string) error {
	f, err := os.Create(name)
	if err != nil {
		return Error{UnableToOpen + ": " + err.Error(), name, []string{"WriteCompressed"}}
	}
	if err := WriteTo(f, text, CodecFor(name)); err != nil {
		f.Close()
		e := err.(Error)
		e.filename = name
		e.deco = e.Decorate("WriteCompressed")
		return e
	}
	return f.Close()
}

//Error is the error type of this package.
type Error struct {
	message  string
	filename string //the file that has problems, or empty string if none.
	deco     []string
}

func (err Error) Error() string {
	if err.filename == "" {
		return "molfile: " + err.message
	}
	return fmt.Sprintf("molfile %s: %s", err.filename, err.message)
}

//Decorate Adds new information to the error
func (E Error) Decorate(deco string) []string {
	//E is a copy, but E.deco shares its backing array with the caller's slice.
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

//FileName returns the file to which the error was associated
func (err Error) FileName() string { return err.filename }

const UnableToOpen = "Unable to open file"
