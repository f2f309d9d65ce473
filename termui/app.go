// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: termui/app.go
// Summary: Terminal front end: owns the screen and runs the event loop.
// Usage: cmd/texeltabs builds an App around an initialized tcell.Screen.

package termui

import (
	"context"
	"log"
	"sync"

	"github.com/framegrace/texeltabs/config"
	"github.com/framegrace/texeltabs/internal/eventloop"
	"github.com/framegrace/texeltabs/wm"
	"github.com/gdamore/tcell/v2"
)

// App connects a tcell screen to a window manager. All manager calls happen
// on the goroutine running Run.
type App struct {
	screen  tcell.Screen
	loop    *eventloop.Loop
	mgr     *wm.Manager
	painter *Painter
	input   *Input
	keys    Keymap
	reload  func() (config.Config, error)

	quit      chan struct{}
	closeOnce sync.Once
}

// NewApp wires screen input and painting to mgr. The screen must already be
// initialized; the caller owns Fini.
func NewApp(screen tcell.Screen, loop *eventloop.Loop, mgr *wm.Manager, theme Theme, keys Keymap) *App {
	s := mgr.Settings()
	a := &App{
		screen:  screen,
		loop:    loop,
		mgr:     mgr,
		painter: NewPainter(theme, s.CellWidth, s.CellHeight),
		input:   NewInput(mgr.Document(), s.CellWidth, s.CellHeight),
		keys:    keys,
		reload:  reloadSystemConfig,
		quit:    make(chan struct{}),
	}
	a.painter.Busy = func() bool {
		return mgr.Interaction().State() != wm.Idle
	}
	return a
}

// Run processes terminal events and scheduled tasks until ctx is done or a
// quit key is pressed.
func (a *App) Run(ctx context.Context) error {
	a.screen.EnableMouse()
	a.screen.HideCursor()
	a.resize()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-a.quit:
				return
			}
		}
	}()

	for {
		a.Draw()
		select {
		case <-ctx.Done():
			a.Stop()
			return nil
		case <-a.quit:
			return nil
		case ev := <-events:
			a.HandleEvent(ev)
		case task := <-a.loop.Tasks():
			task()
			a.loop.RunPending()
		}
	}
}

// Stop makes Run return. It is safe to call more than once.
func (a *App) Stop() {
	a.closeOnce.Do(func() { close(a.quit) })
}

// Draw repaints the whole screen.
func (a *App) Draw() {
	a.screen.Clear()
	a.painter.Paint(a.screen, a.mgr.Document())
	a.screen.Show()
}

// HandleEvent applies one terminal event.
func (a *App) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.resize()
		a.screen.Sync()
	case *tcell.EventMouse:
		a.input.HandleMouse(ev)
	case *tcell.EventKey:
		a.handleKey(ev)
	}
}

func (a *App) handleKey(ev *tcell.EventKey) {
	switch a.keys.Lookup(ev) {
	case ActionCloseActive:
		a.mgr.CloseActiveWindow()
	case ActionMinimize:
		a.mgr.Minimize()
	case ActionPopout:
		if err := a.mgr.OpenActiveInPopup(); err != nil {
			log.Printf("WM: Popout failed: %v", err)
		}
	case ActionNextTab:
		a.mgr.FocusNext()
	case ActionReloadConfig:
		a.ReloadConfig()
	case ActionQuit:
		a.Stop()
	default:
		a.mgr.HandleKey(ev)
	}
}

// ReloadConfig rereads the config file and applies its theme and key
// bindings. On error the current ones stay in effect.
func (a *App) ReloadConfig() error {
	cfg, err := a.reload()
	if err != nil {
		log.Printf("Config: Reload failed, keeping current theme and keys: %v", err)
		return err
	}
	a.painter.Theme = ThemeFromConfig(cfg)
	a.keys = KeymapFromConfig(cfg)
	log.Printf("Config: Reloaded theme and %d key bindings", len(a.keys))
	return nil
}

func reloadSystemConfig() (config.Config, error) {
	if err := config.Reload(); err != nil {
		return nil, err
	}
	return config.System(), nil
}

func (a *App) resize() {
	cols, rows := a.screen.Size()
	s := a.mgr.Settings()
	a.mgr.SetViewport(cols*s.CellWidth, rows*s.CellHeight)
}
