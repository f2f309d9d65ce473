// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: popup/host.go
// Summary: Opens popout windows as chromeless browser windows via chromedp.
// Notes: Each popup gets its own browser process so closing one window never
// affects another. The page is a static snapshot of the window content.

package popup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/chromedp/cdproto/inspector"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/target"
	"github.com/chromedp/chromedp"
	"github.com/framegrace/texeltabs/wm"
	"github.com/google/uuid"
)

const (
	defaultLaunchTimeout = 5 * time.Second
	callTimeout          = 3 * time.Second
)

// ErrClosed is returned by calls on a popup that is already gone.
var ErrClosed = errors.New("popup: window closed")

// Options configures the browser used for popups.
type Options struct {
	// ExecPath selects the browser binary. Empty means auto-detect.
	ExecPath string
	Style    PageStyle

	// Headless hides the window; only useful in automated runs.
	Headless      bool
	LaunchTimeout time.Duration
}

// Host implements wm.PopupHost.
type Host struct {
	parent context.Context
	opts   Options
}

// NewHost returns a host whose popups live at most as long as ctx.
func NewHost(ctx context.Context, opts Options) *Host {
	if opts.LaunchTimeout <= 0 {
		opts.LaunchTimeout = defaultLaunchTimeout
	}
	if opts.Style == (PageStyle{}) {
		opts.Style = DefaultPageStyle
	}
	return &Host{parent: ctx, opts: opts}
}

// Open launches a browser window showing req. Any failure to start the
// browser or load the page is reported as an error and leaves nothing running.
func (h *Host) Open(req wm.PopupRequest) (wm.Popup, error) {
	doc, err := BuildPage(req, h.opts.Style)
	if err != nil {
		return nil, err
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", h.opts.Headless),
		chromedp.Flag("app", "about:blank"),
		chromedp.Flag("new-window", true),
		chromedp.WindowSize(req.Width, req.Height),
	)
	if h.opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(h.opts.ExecPath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(h.parent, allocOpts...)
	ctx, cancel := chromedp.NewContext(allocCtx)

	w := &Window{id: uuid.NewString(), windowID: req.WindowID, ctx: ctx}
	w.cancel = func() {
		cancel()
		allocCancel()
	}

	// The first Run starts the browser and is bound to ctx for its whole
	// life, so the launch deadline cancels through a timer instead of a
	// derived context.
	var timedOut atomic.Bool
	timer := time.AfterFunc(h.opts.LaunchTimeout, func() {
		timedOut.Store(true)
		w.cancel()
	})
	err = chromedp.Run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		tree, err := page.GetFrameTree().Do(ctx)
		if err != nil {
			return err
		}
		return page.SetDocumentContent(tree.Frame.ID, string(doc)).Do(ctx)
	}))
	timer.Stop()
	if err != nil {
		w.cancel()
		if timedOut.Load() {
			err = fmt.Errorf("browser did not start within %s", h.opts.LaunchTimeout)
		}
		return nil, fmt.Errorf("popup: open %q: %w", req.WindowID, err)
	}

	w.watch()
	log.Printf("Popup: Opened %s for window %q (%dx%d)", w.id, req.WindowID, req.Width, req.Height)
	return w, nil
}

// Window is one open popup.
type Window struct {
	id       string
	windowID string
	ctx      context.Context
	cancel   func()
	closed   atomic.Bool
}

var _ wm.Popup = (*Window)(nil)

func (w *Window) watch() {
	c := chromedp.FromContext(w.ctx)
	var targetID target.ID
	if c != nil && c.Target != nil {
		targetID = c.Target.TargetID
	}
	chromedp.ListenTarget(w.ctx, func(ev interface{}) {
		if _, ok := ev.(*inspector.EventDetached); ok {
			w.markClosed("detached")
		}
	})
	chromedp.ListenBrowser(w.ctx, func(ev interface{}) {
		if d, ok := ev.(*target.EventTargetDestroyed); ok && d.TargetID == targetID {
			w.markClosed("target destroyed")
		}
	})
}

func (w *Window) markClosed(reason string) {
	if w.closed.CompareAndSwap(false, true) {
		log.Printf("Popup: %s for window %q closed (%s)", w.id, w.windowID, reason)
	}
}

// ID returns the popup's unique id.
func (w *Window) ID() string {
	return w.id
}

// Closed reports whether the browser window is gone.
func (w *Window) Closed() bool {
	return w.closed.Load() || w.ctx.Err() != nil
}

// Close shuts the browser down. Closing twice is harmless.
func (w *Window) Close() error {
	if w.Closed() {
		w.cancel()
		return nil
	}
	w.markClosed("closed by manager")
	err := chromedp.Cancel(w.ctx)
	w.cancel()
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("popup: close %s: %w", w.id, err)
	}
	return nil
}

// SetTitle replaces the document title of the popup.
func (w *Window) SetTitle(title string) error {
	quoted, err := json.Marshal(title)
	if err != nil {
		return err
	}
	var res string
	return w.run(chromedp.Evaluate("document.title = "+string(quoted), &res))
}

// Focus brings the popup window to the front.
func (w *Window) Focus() error {
	return w.run(chromedp.ActionFunc(func(ctx context.Context) error {
		return page.BringToFront().Do(ctx)
	}))
}

func (w *Window) run(actions ...chromedp.Action) error {
	if w.Closed() {
		return ErrClosed
	}
	ctx, cancel := context.WithTimeout(w.ctx, callTimeout)
	defer cancel()
	if err := chromedp.Run(ctx, actions...); err != nil {
		return fmt.Errorf("popup: %s: %w", w.id, err)
	}
	return nil
}
