/*
 * server.go, part of colco.
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

//Package server exposes the current molecule of a viewer over HTTP, for renderers
//running in a browser or in another process.
package server

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rmera/colco/internal/viewer"
	"github.com/rmera/colco/render"
	"github.com/rmera/colco/scene"
)

//Largest structure text accepted by PUT /api/molecule.
const maxBody = 16 << 20

type Server struct {
	Viewer *viewer.Viewer
	Engine *gin.Engine
	Render render.Settings
	log    *slog.Logger
}

//New returns a server for v. Snapshots use rs unless the request asks for another
//size, style or view.
func New(v *viewer.Viewer, rs render.Settings, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	e := gin.New()
	s := &Server{Viewer: v, Engine: e, Render: rs, log: log}
	e.Use(gin.Recovery(), s.logMiddleware())
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.Engine.GET("/healthz", s.handleHealth)
	api := s.Engine.Group("/api")
	{
		api.GET("/molecule", s.handleGetMolecule)
		api.GET("/molecule.msgpack", s.handleGetMsgpack)
		api.PUT("/molecule", s.handlePutMolecule)
		api.GET("/snapshot.png", s.handleSnapshot)
		api.GET("/events", s.handleEvents)
	}
}

func (s *Server) logMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug("request", "method", c.Request.Method, "path", c.Request.URL.Path, "status", c.Writer.Status(), "elapsed", time.Since(start))
	}
}

//summary is what clients get when they only need to know a generation changed.
func summary(g *viewer.Generation) gin.H {
	return gin.H{
		"id":        g.ID.String(),
		"source":    g.Source,
		"loaded_at": g.LoadedAt,
		"atoms":     g.Molecule.Len(),
		"bonds":     g.Molecule.NBonds(),
		"formula":   g.Molecule.Formula(),
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "generation": s.Viewer.Current().ID.String()})
}

func (s *Server) handleGetMolecule(c *gin.Context) {
	g := s.Viewer.Current()
	c.Header("X-Generation", g.ID.String())
	c.JSON(http.StatusOK, scene.FromMolecule(g.Molecule))
}

func (s *Server) handleGetMsgpack(c *gin.Context) {
	g := s.Viewer.Current()
	var buf bytes.Buffer
	if err := scene.FromMolecule(g.Molecule).WriteMsgpack(&buf); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("X-Generation", g.ID.String())
	c.Data(http.StatusOK, "application/msgpack", buf.Bytes())
}

func (s *Server) handlePutMolecule(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBody))
	if err != nil {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
		return
	}
	g, err := s.Viewer.Load(string(body), "http")
	if err != nil {
		c.Data(http.StatusUnprocessableEntity, "application/json", scene.NewError(err).Marshal())
		return
	}
	c.JSON(http.StatusOK, summary(g))
}

func sizeQuery(c *gin.Context, key string, def int) (int, bool) {
	q := c.Query(key)
	if q == "" {
		return def, true
	}
	n, err := strconv.Atoi(q)
	if err != nil || n <= 0 || n > 8192 {
		return 0, false
	}
	return n, true
}

func (s *Server) handleSnapshot(c *gin.Context) {
	rs := s.Render
	var okw, okh bool
	rs.Width, okw = sizeQuery(c, "width", rs.Width)
	rs.Height, okh = sizeQuery(c, "height", rs.Height)
	if !okw || !okh {
		c.JSON(http.StatusBadRequest, gin.H{"error": "width and height must be integers in [1, 8192]"})
		return
	}
	if name := c.Query("style"); name != "" {
		st, err := render.StyleNamed(name)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		rs = rs.WithStyle(st)
	}
	if q := c.Query("view"); q != "" {
		view, err := render.ParseView(q)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		rs.View = view
	}
	g := s.Viewer.Current()
	img, err := render.Snapshot(g.Molecule, rs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	var buf bytes.Buffer
	if err := render.WritePNG(&buf, img); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("X-Generation", g.ID.String())
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

//handleEvents sends the current generation's summary, and then one more
//every time the molecule is replaced, until the client goes away.
func (s *Server) handleEvents(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.log.Error("ws upgrade failed", "error", err)
		return
	}
	defer ws.Close()
	gens, cancel := s.Viewer.Subscribe()
	defer cancel()

	//We don't expect anything from the client, but we need to read to notice it left.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}()
	if err := ws.WriteJSON(summary(s.Viewer.Current())); err != nil {
		return
	}
	for {
		select {
		case <-gone:
			return
		case g, ok := <-gens:
			if !ok {
				return
			}
			if err := ws.WriteJSON(summary(g)); err != nil {
				s.log.Warn("failed to send generation to websocket", "error", err)
				return
			}
		}
	}
}
