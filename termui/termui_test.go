// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: termui/termui_test.go
// Summary: Exercises painting, mouse translation and key bindings on a
// simulation screen.

package termui

import (
	"errors"
	"strings"
	"testing"

	"github.com/framegrace/texeltabs/config"
	"github.com/framegrace/texeltabs/dom"
	"github.com/framegrace/texeltabs/internal/eventloop"
	"github.com/framegrace/texeltabs/wm"
	"github.com/gdamore/tcell/v2"
)

const (
	testCols = 120
	testRows = 40
)

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(testCols, testRows)
	return screen
}

func newManager(t *testing.T) *wm.Manager {
	t.Helper()
	s := wm.DefaultSettings()
	doc := dom.NewDocument(testCols*s.CellWidth, testRows*s.CellHeight)
	return wm.NewManager(doc, eventloop.NewManual())
}

func create(t *testing.T, m *wm.Manager, id, title string) *wm.Window {
	t.Helper()
	win, err := m.CreateWindow(wm.Descriptor{ID: id, Title: title})
	if err != nil {
		t.Fatalf("CreateWindow: %v", err)
	}
	return win
}

func readScreenLine(screen tcell.Screen, x, y, width int) string {
	runes := make([]rune, width)
	for i := 0; i < width; i++ {
		ch, _, _, _ := screen.GetContent(x+i, y)
		if ch == 0 {
			ch = ' '
		}
		runes[i] = ch
	}
	return strings.TrimRight(string(runes), " ")
}

func screenHasSubstring(screen tcell.Screen, substr string) bool {
	width, height := screen.Size()
	for y := 0; y < height; y++ {
		if strings.Contains(readScreenLine(screen, 0, y, width), substr) {
			return true
		}
	}
	return false
}

// cellOf returns the cell containing the origin of el's box.
func cellOf(el *dom.Element) (int, int) {
	s := wm.DefaultSettings()
	return el.Box.X / s.CellWidth, el.Box.Y / s.CellHeight
}

func TestPainterDrawsFrameAndTitle(t *testing.T) {
	screen := newScreen(t)
	m := newManager(t)
	win := create(t, m, "notes", "Release notes")
	win.Element.SetText("first line\nsecond line")

	p := NewPainter(DefaultTheme(), 8, 16)
	p.Paint(screen, m.Document())
	screen.Show()

	r := m.ContainerRect()
	col, row := r.X/8, r.Y/16
	right, bottom := col+r.W/8-1, row+r.H/16-1
	corners := map[[2]int]rune{
		{col, row}:      tcell.RuneULCorner,
		{right, row}:    tcell.RuneURCorner,
		{col, bottom}:   tcell.RuneLLCorner,
		{right, bottom}: tcell.RuneLRCorner,
	}
	for pos, want := range corners {
		if ch, _, _, _ := screen.GetContent(pos[0], pos[1]); ch != want {
			t.Errorf("cell %v = %q, want %q", pos, ch, want)
		}
	}
	for _, want := range []string{"Release notes", "first line", "second line", "×"} {
		if !screenHasSubstring(screen, want) {
			t.Errorf("screen missing %q", want)
		}
	}
}

func TestPainterShowsTabsAndDock(t *testing.T) {
	screen := newScreen(t)
	m := newManager(t)
	create(t, m, "a", "Alpha")
	create(t, m, "b", "Beta")

	p := NewPainter(DefaultTheme(), 8, 16)
	p.Paint(screen, m.Document())
	screen.Show()
	if !screenHasSubstring(screen, "Alpha") || !screenHasSubstring(screen, "Beta") {
		t.Fatalf("tabs not painted")
	}

	m.Minimize()
	screen.Clear()
	p.Paint(screen, m.Document())
	screen.Show()
	if got := readScreenLine(screen, 0, testRows-1, testCols); !strings.Contains(got, "Alpha") || !strings.Contains(got, "Beta") {
		t.Fatalf("dock row = %q", got)
	}
	if ch, _, _, _ := screen.GetContent(m.ContainerRect().X/8, m.ContainerRect().Y/16); ch == tcell.RuneULCorner {
		t.Fatalf("minimized container still painted")
	}
}

type gridDrawer struct{}

func (gridDrawer) Draw(c *dom.Canvas) {
	c.Text(0, 0, "漢字 ok", tcell.StyleDefault.Foreground(tcell.ColorRed))
}

func TestPainterBlitsDrawers(t *testing.T) {
	m := newManager(t)
	if _, err := m.CreateWindow(wm.Descriptor{ID: "g", Content: gridDrawer{}}); err != nil {
		t.Fatal(err)
	}
	p := NewPainter(DefaultTheme(), 8, 16)
	frame := p.Render(m.Document(), testCols, testRows)

	body := m.GetWindow("g").Element.Box
	x, y := body.X/8, body.Y/16
	if frame.Get(x, y).Ch != '漢' || frame.Get(x+1, y).Ch != 0 || frame.Get(x+2, y).Ch != '字' {
		t.Fatalf("wide runes not blitted: %q %q %q", frame.Get(x, y).Ch, frame.Get(x+1, y).Ch, frame.Get(x+2, y).Ch)
	}
	if fg, _, _ := frame.Get(x, y).Style.Decompose(); fg != tcell.ColorRed {
		t.Fatalf("style lost: %v", fg)
	}
}

func TestInputClickMinimizes(t *testing.T) {
	m := newManager(t)
	create(t, m, "a", "Alpha")
	in := NewInput(m.Document(), 8, 16)

	col, row := cellOf(m.Document().GetElementByID(wm.MinimizeID))
	in.Mouse(col, row, tcell.Button1)
	in.Mouse(col, row, tcell.ButtonNone)
	if m.ContainerVisible() {
		t.Fatalf("click on minimize did not hide the container")
	}

	chip := m.Dock().Children()[0]
	col, row = cellOf(chip)
	in.Mouse(col, row, tcell.Button1)
	in.Mouse(col, row, tcell.ButtonNone)
	if !m.ContainerVisible() {
		t.Fatalf("click on the dock chip did not restore")
	}
}

func TestInputClickNeedsSameTarget(t *testing.T) {
	m := newManager(t)
	a := create(t, m, "a", "Alpha")
	b := create(t, m, "b", "Beta")
	in := NewInput(m.Document(), 8, 16)

	ac, ar := cellOf(a.TabElement)
	bc, br := cellOf(b.TabElement)
	in.Mouse(ac, ar, tcell.Button1)
	in.Mouse(bc, br, tcell.Button1)
	in.Mouse(bc, br, tcell.ButtonNone)
	if m.ActiveWindowID() != "b" {
		t.Fatalf("press and release on different tabs changed focus to %q", m.ActiveWindowID())
	}

	in.Mouse(ac, ar, tcell.Button1)
	in.Mouse(ac, ar, tcell.ButtonNone)
	if m.ActiveWindowID() != "a" {
		t.Fatalf("tab click did not focus a")
	}
}

func TestInputDragMovesContainer(t *testing.T) {
	m := newManager(t)
	create(t, m, "a", "Alpha")
	in := NewInput(m.Document(), 8, 16)

	start := m.ContainerRect()
	ctrl := m.Document().GetElementByID(wm.MinimizeID)
	col, row := cellOf(ctrl)
	col -= 2

	in.Mouse(col, row, tcell.Button1)
	if m.Interaction().State() != wm.Dragging {
		t.Fatalf("state = %v", m.Interaction().State())
	}
	in.Mouse(col+5, row+2, tcell.Button1)
	in.Mouse(col+5, row+2, tcell.WheelDown)
	in.Mouse(col+5, row+2, tcell.ButtonNone)

	got := m.ContainerRect()
	if got.X != start.X+40 || got.Y != start.Y+32 {
		t.Fatalf("rect = %+v, start %+v", got, start)
	}
	if m.Interaction().State() != wm.Idle {
		t.Fatalf("drag survived release")
	}
}

func TestParseKey(t *testing.T) {
	cases := map[string]tcell.Key{
		"Ctrl+W": tcell.KeyCtrlW,
		"ctrl+q": tcell.KeyCtrlQ,
		"F2":     tcell.KeyF2,
		"Esc":    tcell.KeyEscape,
		"Tab":    tcell.KeyTab,
	}
	for spec, want := range cases {
		got, err := ParseKey(spec)
		if err != nil || got != want {
			t.Errorf("ParseKey(%q) = %v, %v; want %v", spec, got, err, want)
		}
	}
	for _, bad := range []string{"", "Ctrl+1", "F13", "Alt+X"} {
		if _, err := ParseKey(bad); err == nil {
			t.Errorf("ParseKey(%q) succeeded", bad)
		}
	}
}

func TestKeymapFromConfig(t *testing.T) {
	cfg := config.Config{"keys": config.Section{"quit": "F10", "popout": "nonsense"}}
	km := KeymapFromConfig(cfg)
	if km[tcell.KeyF10] != ActionQuit {
		t.Fatalf("quit not rebound")
	}
	if km[tcell.KeyCtrlW] != ActionCloseActive {
		t.Fatalf("default close binding missing")
	}
	for _, action := range km {
		if action == ActionPopout {
			t.Fatalf("invalid binding was kept")
		}
	}
}

func TestAppKeysDriveManager(t *testing.T) {
	screen := newScreen(t)
	m := newManager(t)
	create(t, m, "a", "Alpha")
	create(t, m, "b", "Beta")
	app := NewApp(screen, eventloop.NewLoop(4), m, DefaultTheme(), KeymapFromConfig(nil))

	app.HandleEvent(tcell.NewEventKey(tcell.KeyCtrlT, 0, tcell.ModCtrl))
	if m.ActiveWindowID() != "a" {
		t.Fatalf("next tab: active = %q", m.ActiveWindowID())
	}
	app.HandleEvent(tcell.NewEventKey(tcell.KeyCtrlW, 0, tcell.ModCtrl))
	if m.GetWindow("a") != nil {
		t.Fatalf("close binding did not close a")
	}
	app.HandleEvent(tcell.NewEventKey(tcell.KeyCtrlO, 0, tcell.ModCtrl))
	if m.GetWindow("b").IsInPopup {
		t.Fatalf("popout without a host must not pop out")
	}
	app.HandleEvent(tcell.NewEventKey(tcell.KeyCtrlN, 0, tcell.ModCtrl))
	if m.ContainerVisible() {
		t.Fatalf("minimize binding did not minimize")
	}

	app.Draw()
	if !screenHasSubstring(screen, "Beta") {
		t.Fatalf("dock chip not drawn")
	}

	app.HandleEvent(tcell.NewEventKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl))
	select {
	case <-app.quit:
	default:
		t.Fatalf("quit binding did not stop the app")
	}
	app.Stop()
}

func TestAppReloadConfigAppliesThemeAndKeys(t *testing.T) {
	screen := newScreen(t)
	m := newManager(t)
	create(t, m, "a", "Alpha")
	app := NewApp(screen, eventloop.NewLoop(4), m, DefaultTheme(), KeymapFromConfig(nil))

	reloaded := config.Config{
		"keys":  config.Section{"quit": "F10"},
		"theme": config.Section{"frame_fg": "#ff0000"},
	}
	calls := 0
	app.reload = func() (config.Config, error) {
		calls++
		return reloaded, nil
	}

	app.HandleEvent(tcell.NewEventKey(tcell.KeyCtrlR, 0, tcell.ModCtrl))
	if calls != 1 {
		t.Fatalf("reload binding called reload %d times", calls)
	}
	if app.keys[tcell.KeyF10] != ActionQuit || app.keys[tcell.KeyCtrlQ] == ActionQuit {
		t.Fatalf("keymap not replaced: %v", app.keys)
	}
	if fg, _, _ := app.painter.Theme.Frame.Decompose(); fg != tcell.NewRGBColor(0xff, 0, 0) {
		t.Fatalf("frame color = %v", fg)
	}

	app.reload = func() (config.Config, error) {
		return nil, errors.New("bad json")
	}
	if err := app.ReloadConfig(); err == nil {
		t.Fatalf("expected reload error")
	}
	fg, _, _ := app.painter.Theme.Frame.Decompose()
	if fg != tcell.NewRGBColor(0xff, 0, 0) || app.keys[tcell.KeyF10] != ActionQuit {
		t.Fatalf("failed reload changed the current theme or keys")
	}
	app.Stop()
}

func TestAppResizeUpdatesViewport(t *testing.T) {
	screen := newScreen(t)
	m := newManager(t)
	create(t, m, "a", "Alpha")
	app := NewApp(screen, eventloop.NewLoop(4), m, DefaultTheme(), nil)

	screen.SetSize(80, 24)
	app.HandleEvent(tcell.NewEventResize(80, 24))
	if doc := m.Document(); doc.Width != 80*8 || doc.Height != 24*16 {
		t.Fatalf("viewport = %dx%d", doc.Width, doc.Height)
	}
	if got := m.Dock().Box.Y; got != 23*16 {
		t.Fatalf("dock row at %d", got)
	}
}
