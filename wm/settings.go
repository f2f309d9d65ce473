// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: wm/settings.go
// Summary: Geometry and timing settings for the window manager.

package wm

import (
	"time"

	"github.com/framegrace/texeltabs/config"
)

// Settings holds sizes in document pixels.
type Settings struct {
	DefaultWidth, DefaultHeight int
	MinWidth, MinHeight         int

	// CellWidth and CellHeight are the size of one character cell; borders,
	// the header row and the dock are one cell thick.
	CellWidth, CellHeight int

	PopupWidth, PopupHeight int
	PollInterval            time.Duration
	NoticeDuration          time.Duration
}

// DefaultSettings returns the built-in settings.
func DefaultSettings() Settings {
	return Settings{
		DefaultWidth:   600,
		DefaultHeight:  500,
		MinWidth:       300,
		MinHeight:      200,
		CellWidth:      8,
		CellHeight:     16,
		PopupWidth:     800,
		PopupHeight:    600,
		PollInterval:   500 * time.Millisecond,
		NoticeDuration: 4 * time.Second,
	}
}

// SettingsFromConfig reads the window and popup sections.
func SettingsFromConfig(cfg config.Config) Settings {
	s := DefaultSettings()
	s.DefaultWidth = cfg.GetInt("window", "default_width", s.DefaultWidth)
	s.DefaultHeight = cfg.GetInt("window", "default_height", s.DefaultHeight)
	s.MinWidth = cfg.GetInt("window", "min_width", s.MinWidth)
	s.MinHeight = cfg.GetInt("window", "min_height", s.MinHeight)
	s.CellWidth = cfg.GetInt("window", "cell_width", s.CellWidth)
	s.CellHeight = cfg.GetInt("window", "cell_height", s.CellHeight)
	s.PopupWidth = cfg.GetInt("popup", "width", s.PopupWidth)
	s.PopupHeight = cfg.GetInt("popup", "height", s.PopupHeight)
	s.PollInterval = cfg.GetMillis("popup", "poll_ms", s.PollInterval)
	return s.normalized()
}

func (s Settings) normalized() Settings {
	d := DefaultSettings()
	if s.CellWidth <= 0 {
		s.CellWidth = d.CellWidth
	}
	if s.CellHeight <= 0 {
		s.CellHeight = d.CellHeight
	}
	// The frame needs room for its border, header and at least one row.
	if min := 3 * s.CellWidth; s.MinWidth < min {
		s.MinWidth = min
	}
	if min := 4 * s.CellHeight; s.MinHeight < min {
		s.MinHeight = min
	}
	if s.DefaultWidth < s.MinWidth {
		s.DefaultWidth = s.MinWidth
	}
	if s.DefaultHeight < s.MinHeight {
		s.DefaultHeight = s.MinHeight
	}
	if s.PopupWidth <= 0 {
		s.PopupWidth = d.PopupWidth
	}
	if s.PopupHeight <= 0 {
		s.PopupHeight = d.PopupHeight
	}
	if s.PollInterval <= 0 {
		s.PollInterval = d.PollInterval
	}
	if s.NoticeDuration <= 0 {
		s.NoticeDuration = d.NoticeDuration
	}
	return s
}
