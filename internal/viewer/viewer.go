/*
 * viewer.go, part of colco.
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

//Package viewer keeps the molecule a program is currently showing. Loading new
//structure text either replaces it completely or, if the text can't be parsed,
//leaves it untouched.
package viewer

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/rmera/colco"
	"github.com/rmera/colco/molfile"
)

//Generation is one loaded molecule. Generations are never modified.
type Generation struct {
	ID       uuid.UUID
	Molecule *colco.Molecule
	Source   string //file name, "http", etc.
	LoadedAt time.Time
}

//Viewer holds the current generation. It is safe for concurrent use.
type Viewer struct {
	parser  *colco.Parser
	current atomic.Pointer[Generation]
	log     *slog.Logger

	subMu sync.Mutex
	subs  map[chan *Generation]struct{}
}

//subscription channels are buffered, so a slow reader only misses
//generations after this many.
const subBuffer = 8

//New returns a Viewer that parses with p. It starts with an empty molecule.
//A nil log means slog.Default().
func New(p *colco.Parser, log *slog.Logger) *Viewer {
	if log == nil {
		log = slog.Default()
	}
	V := &Viewer{parser: p, log: log, subs: make(map[chan *Generation]struct{})}
	empty, _ := p.Parse("") //can't fail
	V.current.Store(&Generation{ID: uuid.New(), Molecule: empty, Source: "empty", LoadedAt: time.Now()})
	return V
}

//Current returns the current generation. It is never nil.
func (V *Viewer) Current() *Generation {
	return V.current.Load()
}

//Load parses text and, if that works, makes it the current generation and announces
//it to the subscribers. If the text can't be parsed, the current generation is kept
//and the parser's error is returned.
func (V *Viewer) Load(text, source string) (*Generation, error) {
	mol, err := V.parser.Parse(text)
	if err != nil {
		V.log.Warn("structure rejected, keeping the current molecule", "source", source, "error", err)
		return nil, err
	}
	g := &Generation{ID: uuid.New(), Molecule: mol, Source: source, LoadedAt: time.Now()}
	V.current.Store(g)
	V.log.Info("molecule loaded", "id", g.ID, "source", source, "atoms", mol.Len(), "bonds", mol.NBonds(), "formula", mol.Formula())
	V.publish(g)
	return g, nil
}

//LoadFile reads name (possibly compressed, see molfile.Read) and loads it.
func (V *Viewer) LoadFile(name string) (*Generation, error) {
	text, err := molfile.Read(name)
	if err != nil {
		return nil, err
	}
	return V.Load(text, name)
}

//Subscribe returns a channel that gets every new generation, and a function
//to stop the subscription, which closes the channel.
func (V *Viewer) Subscribe() (<-chan *Generation, func()) {
	ch := make(chan *Generation, subBuffer)
	V.subMu.Lock()
	V.subs[ch] = struct{}{}
	V.subMu.Unlock()
	var once sync.Once
	cancel := func() {
		once.Do(func() {
			V.subMu.Lock()
			delete(V.subs, ch)
			V.subMu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

func (V *Viewer) publish(g *Generation) {
	V.subMu.Lock()
	defer V.subMu.Unlock()
	for ch := range V.subs {
		select {
		case ch <- g:
		default:
			V.log.Warn("subscriber is not keeping up, generation dropped", "id", g.ID)
		}
	}
}

//Watch reloads name every time it is written or (re)created, until ctx is done.
//The watch is set up before Watch returns; the reloading happens in its own goroutine.
//Failed reloads are logged and the current molecule is kept. An empty file is ignored.
func (V *Viewer) Watch(ctx context.Context, name string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("viewer: starting watcher: %w", err)
	}
	name = filepath.Clean(name)
	//Editors often replace the file instead of writing it, so we watch the directory.
	if err := w.Add(filepath.Dir(name)); err != nil {
		w.Close()
		return fmt.Errorf("viewer: watching %s: %w", name, err)
	}
	go func() {
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != name || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
					continue
				}
				text, err := molfile.Read(name)
				if err != nil {
					V.log.Warn("reload failed", "file", name, "error", err)
					continue
				}
				//a writer truncating the file before filling it.
				if strings.TrimSpace(text) == "" {
					V.log.Debug("ignoring empty file", "file", name)
					continue
				}
				V.Load(text, name) //errors are logged by Load

			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				V.log.Error("watcher error", "file", name, "error", err)
			}
		}
	}()
	return nil
}
