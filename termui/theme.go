// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: termui/theme.go
// Summary: Maps the theme config section onto cell styles.

package termui

import (
	"github.com/framegrace/texeltabs/config"
	"github.com/gdamore/tcell/v2"
)

// Theme holds one style per painted element kind.
type Theme struct {
	Desktop   tcell.Style
	Surface   tcell.Style
	Frame     tcell.Style
	FrameBusy tcell.Style
	Header    tcell.Style
	Tab       tcell.Style
	TabActive tcell.Style
	Control   tcell.Style
	Dock      tcell.Style
	Chip      tcell.Style
	Notice    tcell.Style
}

// ThemeFromConfig reads the "theme" section. Missing or unparsable colors
// fall back to the built-in palette.
func ThemeFromConfig(cfg config.Config) Theme {
	color := func(key, def string) tcell.Color {
		c := tcell.GetColor(cfg.GetString("theme", key, def))
		if c == tcell.ColorDefault {
			c = tcell.GetColor(def)
		}
		return c.TrueColor()
	}
	surfaceBg := color("surface_bg", "#1e1e2e")
	surfaceFg := color("surface_fg", "#cdd6f4")
	headerBg := color("header_bg", "#313244")
	base := tcell.StyleDefault

	return Theme{
		Desktop:   base,
		Surface:   base.Foreground(surfaceFg).Background(surfaceBg),
		Frame:     base.Foreground(color("frame_fg", "#89b4fa")).Background(surfaceBg),
		FrameBusy: base.Foreground(color("frame_busy_fg", "#fab387")).Background(surfaceBg),
		Header:    base.Foreground(surfaceFg).Background(headerBg).Bold(true),
		Tab:       base.Foreground(color("tab_fg", "#a6adc8")).Background(headerBg),
		TabActive: base.Foreground(color("tab_active_fg", "#1e1e2e")).Background(color("tab_active_bg", "#89b4fa")).Bold(true),
		Control:   base.Foreground(color("control_fg", "#f9e2af")).Background(headerBg),
		Dock:      base.Background(color("dock_bg", "#181825")),
		Chip:      base.Foreground(color("chip_fg", "#1e1e2e")).Background(color("chip_bg", "#a6e3a1")),
		Notice:    base.Foreground(color("notice_fg", "#1e1e2e")).Background(color("notice_bg", "#f38ba8")),
	}
}

// DefaultTheme returns the built-in palette.
func DefaultTheme() Theme {
	return ThemeFromConfig(nil)
}
