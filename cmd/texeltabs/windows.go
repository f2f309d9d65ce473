// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texeltabs/windows.go
// Summary: Loads the startup windows from a YAML file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/framegrace/texeltabs/content"
	"github.com/framegrace/texeltabs/defaults"
	"github.com/framegrace/texeltabs/dom"
	"github.com/framegrace/texeltabs/wm"
	"gopkg.in/yaml.v3"
)

// windowSpec is one entry of the windows file.
type windowSpec struct {
	ID       string `yaml:"id"`
	Title    string `yaml:"title"`
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	Text     string `yaml:"text"`
	File     string `yaml:"file"`
	Language string `yaml:"language"`
	Style    string `yaml:"style"`
	Popout   bool   `yaml:"popout"`
}

type windowsFile struct {
	Windows []windowSpec `yaml:"windows"`
}

// loadWindows parses path. Relative file entries resolve against the
// directory holding the windows file.
func loadWindows(path string) ([]windowSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read windows file: %w", err)
	}
	var wf windowsFile
	if err := yaml.Unmarshal(data, &wf); err != nil {
		return nil, fmt.Errorf("parse windows file %s: %w", path, err)
	}
	base := filepath.Dir(path)
	for i := range wf.Windows {
		w := &wf.Windows[i]
		if w.ID == "" {
			return nil, fmt.Errorf("windows file %s: entry %d has no id", path, i+1)
		}
		if w.File != "" && !filepath.IsAbs(w.File) {
			w.File = filepath.Join(base, w.File)
		}
	}
	return wf.Windows, nil
}

// defaultWindows is shown when no windows file is given.
func defaultWindows() []windowSpec {
	cfg, err := defaults.SystemConfig()
	if err != nil {
		cfg = []byte(err.Error())
	}
	return []windowSpec{
		{
			ID:    "welcome",
			Title: "Welcome",
			Text: "Windows share one tabbed frame.\n\n" +
				"  drag the header to move it\n" +
				"  drag an edge or corner to resize it\n" +
				"  _  minimize to the dock\n" +
				"  ↗  pop the active tab out to a browser window\n" +
				"  ×  close the active tab\n\n" +
				"Keys: Ctrl+T next tab, Ctrl+W close, Ctrl+N minimize,\n" +
				"      Ctrl+O pop out, Ctrl+R reload config, Ctrl+Q quit.",
		},
		{
			ID:       "defaults",
			Title:    "texeltabs.json",
			Text:     string(cfg),
			Language: "json",
		},
	}
}

// descriptor builds the manager descriptor for w.
func (w windowSpec) descriptor() (wm.Descriptor, error) {
	body := w.Text
	if w.File != "" {
		data, err := os.ReadFile(w.File)
		if err != nil {
			return wm.Descriptor{}, fmt.Errorf("window %q: %w", w.ID, err)
		}
		body = string(data)
	}
	title := w.Title
	if title == "" {
		title = w.ID
		if w.File != "" {
			title = filepath.Base(w.File)
		}
	}

	var drawer dom.Drawer
	if w.File != "" || w.Language != "" {
		drawer = content.NewSource(body, content.SourceOptions{
			Filename: w.File,
			Language: w.Language,
			Style:    w.Style,
		})
	} else {
		drawer = content.NewText(body)
	}
	return wm.Descriptor{
		ID:      w.ID,
		Title:   title,
		Content: drawer,
		Width:   w.Width,
		Height:  w.Height,
	}, nil
}
