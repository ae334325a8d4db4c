/*
 * server_test.go, part of colco.
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

package server

import (
	"bytes"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rmera/colco"
	"github.com/rmera/colco/internal/viewer"
	"github.com/rmera/colco/render"
	"github.com/rmera/colco/scene"
)

func newServer(Te *testing.T) *Server {
	gin.SetMode(gin.TestMode)
	P, err := colco.NewParser(colco.TwoTone, colco.AxisY)
	if err != nil {
		Te.Fatal(err)
	}
	V := viewer.New(P, nil)
	if _, err := V.LoadFile("../../test/cyclobutane.mol"); err != nil {
		Te.Fatal(err)
	}
	rs := render.DefaultSettings()
	rs.Width, rs.Height = 200, 200
	return New(V, rs, nil)
}

func do(s *Server, method, path, body string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, strings.NewReader(body))
	resp := httptest.NewRecorder()
	s.Engine.ServeHTTP(resp, req)
	return resp
}

func TestGetMolecule(Te *testing.T) {
	s := newServer(Te)
	resp := do(s, "GET", "/api/molecule", "")
	if resp.Code != http.StatusOK {
		Te.Fatalf("expected 200, got %d", resp.Code)
	}
	sc, err := scene.ReadJSON(resp.Body)
	if err != nil {
		Te.Fatal(err)
	}
	if len(sc.Atoms) != 12 || sc.Formula != "C4H8" {
		Te.Errorf("wrong molecule served: %d atoms, %s", len(sc.Atoms), sc.Formula)
	}
	if resp.Header().Get("X-Generation") != s.Viewer.Current().ID.String() {
		Te.Error("missing or wrong generation header")
	}
	resp = do(s, "GET", "/api/molecule.msgpack", "")
	if resp.Code != http.StatusOK {
		Te.Fatalf("expected 200, got %d", resp.Code)
	}
	mp, err := scene.ReadMsgpack(resp.Body)
	if err != nil || len(mp.Bonds) != 12 {
		Te.Errorf("wrong msgpack scene: %v", err)
	}
}

func TestPutMolecule(Te *testing.T) {
	s := newServer(Te)
	old := s.Viewer.Current()
	resp := do(s, "PUT", "/api/molecule", "  0.00 0.00 0.00 C\n  1  2  1  0\n")
	if resp.Code != http.StatusUnprocessableEntity {
		Te.Fatalf("expected 422, got %d", resp.Code)
	}
	var jerr scene.Error
	if err := json.Unmarshal(resp.Body.Bytes(), &jerr); err != nil {
		Te.Fatal(err)
	}
	if !jerr.IsError || jerr.Kind != colco.ErrDanglingBond.Error() || jerr.Line != 2 {
		Te.Errorf("wrong error body %+v", jerr)
	}
	if s.Viewer.Current() != old {
		Te.Fatal("a bad PUT replaced the molecule")
	}
	sc, _ := scene.ReadJSON(do(s, "GET", "/api/molecule", "").Body)
	if len(sc.Atoms) != 12 {
		Te.Errorf("the old molecule should still be served, got %d atoms", len(sc.Atoms))
	}
	b, _ := os.ReadFile("../../test/aniline.mol")
	resp = do(s, "PUT", "/api/molecule", string(b))
	if resp.Code != http.StatusOK {
		Te.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var sum map[string]any
	json.Unmarshal(resp.Body.Bytes(), &sum)
	if sum["formula"] != "C6H7NO" || sum["id"] != s.Viewer.Current().ID.String() {
		Te.Errorf("wrong summary %v", sum)
	}
}

func TestSnapshotAndHealth(Te *testing.T) {
	s := newServer(Te)
	resp := do(s, "GET", "/api/snapshot.png?width=120", "")
	if resp.Code != http.StatusOK || resp.Header().Get("Content-Type") != "image/png" {
		Te.Fatalf("expected a PNG, got %d %s", resp.Code, resp.Header().Get("Content-Type"))
	}
	img, err := png.Decode(bytes.NewReader(resp.Body.Bytes()))
	if err != nil {
		Te.Fatal(err)
	}
	if img.Bounds().Dx() != 120 || img.Bounds().Dy() != 200 {
		Te.Errorf("wrong snapshot size %v", img.Bounds())
	}
	if resp := do(s, "GET", "/api/snapshot.png?height=-3", ""); resp.Code != http.StatusBadRequest {
		Te.Errorf("expected 400 for a negative height, got %d", resp.Code)
	}
	if resp := do(s, "GET", "/healthz", ""); resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), "ok") {
		Te.Errorf("health check failed: %d %s", resp.Code, resp.Body.String())
	}
}

func TestEvents(Te *testing.T) {
	s := newServer(Te)
	ts := httptest.NewServer(s.Engine)
	defer ts.Close()
	u, _ := url.Parse(ts.URL)
	u.Scheme = "ws"
	u.Path = "/api/events"
	conn, resp, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		Te.Fatalf("WebSocket dial failed: %v", err)
	}
	defer conn.Close()
	if resp.StatusCode != http.StatusSwitchingProtocols {
		Te.Errorf("WebSocket expected 101, got %d", resp.StatusCode)
	}
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg map[string]any
	if err := conn.ReadJSON(&msg); err != nil {
		Te.Fatal(err)
	}
	if msg["formula"] != "C4H8" {
		Te.Errorf("the first message should describe the current molecule, got %v", msg)
	}
	//the server subscribes before sending the first message, so this can't be missed.
	g, err := s.Viewer.Load("  0.00 0.00 0.00 C\n  1.10 0.00 0.00 O\n  1  2  3  0\n", "test")
	if err != nil {
		Te.Fatal(err)
	}
	if err := conn.ReadJSON(&msg); err != nil {
		Te.Fatal(err)
	}
	if msg["id"] != g.ID.String() || msg["formula"] != "CO" {
		Te.Errorf("wrong event %v", msg)
	}
}

func TestSnapshotStyleAndView(Te *testing.T) {
	s := newServer(Te)
	plain := do(s, "GET", "/api/snapshot.png", "")
	if plain.Code != http.StatusOK {
		Te.Fatalf("expected 200, got %d", plain.Code)
	}
	for _, q := range []string{"style=spheres", "style=wireframe", "view=1,0,0,90", "view=0,1,1,45&style=stick"} {
		resp := do(s, "GET", "/api/snapshot.png?"+q, "")
		if resp.Code != http.StatusOK {
			Te.Errorf("%s: expected 200, got %d %s", q, resp.Code, resp.Body.String())
			continue
		}
		if bytes.Equal(resp.Body.Bytes(), plain.Body.Bytes()) {
			Te.Errorf("%s gave the same image as the default settings", q)
		}
	}
	for _, q := range []string{"style=cartoon", "view=1,0,0", "view=0,0,0,90", "view=a,b,c,d"} {
		if resp := do(s, "GET", "/api/snapshot.png?"+q, ""); resp.Code != http.StatusBadRequest {
			Te.Errorf("%s: expected 400, got %d", q, resp.Code)
		}
	}
}
