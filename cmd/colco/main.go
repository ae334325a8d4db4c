/*
 * main.go, part of colco.
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

//colco reads a structure file, reports what it found and, optionally, writes the
//render model, a snapshot or plots of it, or serves it over HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rmera/colco"
	"github.com/rmera/colco/chemgraph"
	"github.com/rmera/colco/chemplot"
	"github.com/rmera/colco/internal/config"
	"github.com/rmera/colco/internal/server"
	"github.com/rmera/colco/internal/viewer"
	"github.com/rmera/colco/render"
	"github.com/rmera/colco/scene"
	"github.com/spf13/pflag"
)

func main() {
	fs := pflag.NewFlagSet("colco", pflag.ExitOnError)
	configFile := fs.String("config", "", "path to the config file (default: ./colco.yaml or ~/.colco/colco.yaml)")
	jsonOut := fs.String("json", "", "write the render model as JSON to this file (- for stdout)")
	msgpackOut := fs.String("msgpack", "", "write the render model as msgpack to this file")
	pngOut := fs.String("png", "", "write a snapshot to this PNG file")
	plotOut := fs.String("plot", "", "write an XY projection plot to this file (png, svg, pdf)")
	histOut := fs.String("hist", "", "write a bond length histogram to this file (png, svg, pdf)")
	bins := fs.Int("bins", 10, "number of bins for --hist")
	serve := fs.Bool("serve", false, "serve the molecule over HTTP")
	watch := fs.Bool("watch", false, "with --serve, reload the file when it changes")
	config.Flags(fs)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: colco [flags] FILE\n")
		fs.PrintDefaults()
	}
	fs.Parse(os.Args[1:])
	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(2)
	}
	name := fs.Arg(0)

	cfg, err := config.Load(*configFile, fs)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(log)

	P, err := cfg.Parser()
	if err != nil {
		log.Error("invalid parser configuration", "error", err)
		os.Exit(1)
	}
	rs, err := cfg.RenderSettings()
	if err != nil {
		log.Error("invalid render configuration", "error", err)
		os.Exit(1)
	}
	V := viewer.New(P, log)
	g, err := V.LoadFile(name)
	if err != nil {
		log.Error("can't load structure", "file", name, "error", err)
		os.Exit(1)
	}
	report(log, g.Molecule)

	if err := outputs(g.Molecule, rs, *jsonOut, *msgpackOut, *pngOut, *plotOut, *histOut, *bins); err != nil {
		log.Error("output failed", "error", err)
		os.Exit(1)
	}
	if !*serve {
		return
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if *watch {
		if err := V.Watch(ctx, name); err != nil {
			log.Error("can't watch structure file", "file", name, "error", err)
			os.Exit(1)
		}
	}
	if err := run(ctx, server.New(V, rs, log), cfg.Listen, log); err != nil {
		log.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func report(log *slog.Logger, mol *colco.Molecule) {
	top := chemgraph.New(mol)
	log.Info("structure read",
		"atoms", mol.Len(),
		"bonds", mol.NBonds(),
		"formula", mol.Formula(),
		"fragments", len(top.Fragments()),
		"rings", len(top.Rings()),
		"bounding_size", mol.BoundingSize())
}

func outputs(mol *colco.Molecule, rs render.Settings, jsonOut, msgpackOut, pngOut, plotOut, histOut string, bins int) error {
	sc := scene.FromMolecule(mol)
	if jsonOut != "" {
		if err := toFile(jsonOut, sc.WriteJSON); err != nil {
			return err
		}
	}
	if msgpackOut != "" {
		if err := toFile(msgpackOut, sc.WriteMsgpack); err != nil {
			return err
		}
	}
	if pngOut != "" {
		img, err := render.Snapshot(mol, rs)
		if err != nil {
			return err
		}
		if err := toFile(pngOut, func(w io.Writer) error { return render.WritePNG(w, img) }); err != nil {
			return err
		}
	}
	if plotOut != "" {
		p, err := chemplot.Projection(mol, mol.Formula())
		if err != nil {
			return err
		}
		if err := chemplot.Save(p, plotOut); err != nil {
			return err
		}
	}
	if histOut != "" {
		p, err := chemplot.BondLengths(mol, bins)
		if err != nil {
			return err
		}
		if err := chemplot.Save(p, histOut); err != nil {
			return err
		}
	}
	return nil
}

//toFile calls write with the created file, or with stdout if name is "-".
func toFile(name string, write func(io.Writer) error) error {
	if name == "-" {
		return write(os.Stdout)
	}
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return f.Close()
}

func run(ctx context.Context, s *server.Server, addr string, log *slog.Logger) error {
	srv := &http.Server{Addr: addr, Handler: s.Engine, ReadHeaderTimeout: 10 * time.Second}
	errc := make(chan error, 1)
	go func() {
		log.Info("serving", "addr", addr)
		errc <- srv.ListenAndServe()
	}()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdown); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
