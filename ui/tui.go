// Package ui is a terminal front end for the viewer: a scrolling memory
// table emulating an accelerating scrollbar drag from the keyboard.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/jroimartin/gocui"
	"github.com/pkg/errors"

	"github.com/memview/memview/models"
	"github.com/memview/memview/view"
)

type Tui struct {
	g      *gocui.Gui
	viewer *view.Viewer
	mem    *models.Memory

	// scrollbar drag emulation: deflect is the simulated offset from the
	// bar's center, adjusted by j/k and reset on release
	deflect float64
	base    uint64

	// fg serializes viewer access onto the gocui main loop; the viewer
	// itself is not safe for concurrent use
	fg view.Executor

	done chan struct{}
}

func New(viewer *view.Viewer, mem *models.Memory) *Tui {
	return &Tui{
		viewer: viewer,
		mem:    mem,
		fg:     view.Sync,
		done:   make(chan struct{}),
	}
}

func (t *Tui) Run() error {
	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return errors.Wrap(err, "gocui.NewGui() failed")
	}
	defer g.Close()
	t.g = g
	t.fg = view.ExecutorFunc(func(f func()) {
		g.Update(func(*gocui.Gui) error {
			f()
			return nil
		})
	})
	g.SetManagerFunc(t.layout)

	if err := t.bind(); err != nil {
		return err
	}

	go t.tick()
	defer close(t.done)

	if err := g.MainLoop(); err != nil && err != gocui.ErrQuit {
		return err
	}
	return nil
}

func (t *Tui) bind() error {
	type binding struct {
		key interface{}
		fn  func(*gocui.Gui, *gocui.View) error
	}
	bindings := []binding{
		{gocui.KeyCtrlC, t.quit},
		{'q', t.quit},
		{gocui.KeyArrowUp, t.line(-1)},
		{gocui.KeyArrowDown, t.line(1)},
		{gocui.KeyPgup, t.page(-1)},
		{gocui.KeyPgdn, t.page(1)},
		{'k', t.drag(-0.1)},
		{'j', t.drag(0.1)},
		{gocui.KeySpace, t.release},
	}
	for _, b := range bindings {
		if err := t.g.SetKeybinding("", b.key, gocui.ModNone, b.fn); err != nil {
			return errors.Wrap(err, "SetKeybinding() failed")
		}
	}
	return nil
}

func (t *Tui) quit(*gocui.Gui, *gocui.View) error {
	return gocui.ErrQuit
}

func (t *Tui) line(n int64) func(*gocui.Gui, *gocui.View) error {
	return func(*gocui.Gui, *gocui.View) error {
		t.release(nil, nil)
		t.viewer.ScrollRows(n)
		return nil
	}
}

func (t *Tui) page(dir int64) func(*gocui.Gui, *gocui.View) error {
	return func(g *gocui.Gui, _ *gocui.View) error {
		t.release(nil, nil)
		_, rows := t.size()
		t.viewer.ScrollRows(dir * int64(rows))
		return nil
	}
}

// drag nudges the simulated scrollbar; the first nudge starts the drag.
func (t *Tui) drag(d float64) func(*gocui.Gui, *gocui.View) error {
	return func(*gocui.Gui, *gocui.View) error {
		if !t.viewer.Scroller.Dragging() {
			t.base = t.viewer.Addr()
			t.viewer.Scroller.Start()
		}
		t.deflect += d
		if t.deflect > 1 {
			t.deflect = 1
		} else if t.deflect < -1 {
			t.deflect = -1
		}
		return nil
	}
}

func (t *Tui) release(*gocui.Gui, *gocui.View) error {
	if t.viewer.Scroller.Dragging() {
		t.viewer.ScrollEnd(t.base, t.deflect)
		t.deflect = 0
	}
	return nil
}

// tick drives the drag at the scroller's nominal interval. The goroutine
// only schedules; the viewer is touched on the main loop.
func (t *Tui) tick() {
	ticker := time.NewTicker(view.TickIntervalMs * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-t.done:
			return
		case <-ticker.C:
			t.fg.Do(func() {
				if t.viewer.Scroller.Dragging() {
					t.viewer.ScrollTick(t.base, t.deflect)
				}
			})
		}
	}
}

func (t *Tui) size() (int, int) {
	w, h := t.g.Size()
	if h < 3 {
		h = 3
	}
	return w, h - 2
}

func (t *Tui) layout(g *gocui.Gui) error {
	w, h := g.Size()
	v, err := g.SetView("mem", 0, 0, w-1, h-1)
	if err != nil && err != gocui.ErrUnknownView {
		return err
	}
	v.Frame = true
	v.Title = fmt.Sprintf(" %s @ %s ", t.mem.Name, t.mem.FormatAddr(t.viewer.Addr()))
	v.Clear()

	_, rows := t.size()
	views, err := t.viewer.Refresh(rows)
	if err != nil {
		fmt.Fprintf(v, "refresh failed: %s\n", err)
		return nil
	}
	for _, row := range views {
		icon := row.Summary.Icon
		if icon == "" {
			icon = " "
		}
		// gocui views pass bytes straight through, so no ansi here
		fmt.Fprintf(v, "%s %s  %s\n", icon,
			t.mem.FormatAddr(row.Addr), strings.Join(row.Cells, "  "))
	}
	return nil
}
