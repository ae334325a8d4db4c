/*
 * molfile_test.go, part of colco.
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

package molfile

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCodecFor(Te *testing.T) {
	for name, c := range map[string]Codec{"a.mol": Plain, "a.mol.zst": Zstd, "A.MOL.GZ": Gzip, "noext": Plain} {
		if got := CodecFor(name); got != c {
			Te.Errorf("%s: expected %s, got %s", name, c, got)
		}
	}
}

func TestCompressedRoundTrip(Te *testing.T) {
	text, err := Read("../test/cyclobutane.mol")
	if err != nil {
		Te.Fatal(err)
	}
	if !strings.Contains(text, "M  END") {
		Te.Fatalf("unexpected content %q", text)
	}
	dir := Te.TempDir()
	for _, name := range []string{"c.mol.zst", "c.mol.gz", "c.mol"} {
		path := filepath.Join(dir, name)
		if err := WriteCompressed(path, text); err != nil {
			Te.Fatal(err)
		}
		back, err := Read(path)
		if err != nil {
			Te.Fatal(err)
		}
		if back != text {
			Te.Errorf("%s: text changed in the round trip", name)
		}
	}
	raw, _ := os.ReadFile(filepath.Join(dir, "c.mol.zst"))
	if len(raw) >= len(text) {
		Te.Errorf("compressed file (%d bytes) is not smaller than the text (%d bytes)", len(raw), len(text))
	}
}

func TestReadErrors(Te *testing.T) {
	_, err := Read("../test/does-not-exist.mol")
	if err == nil {
		Te.Fatal("expected an error for a missing file")
	}
	if e, ok := err.(Error); !ok || e.FileName() != "../test/does-not-exist.mol" {
		Te.Errorf("wrong error %v", err)
	}
	_, err = ReadFrom(bytes.NewBufferString("this is not gzip"), Gzip)
	if err == nil {
		Te.Error("expected an error reading garbage as gzip")
	}
}
