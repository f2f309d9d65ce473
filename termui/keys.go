// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: termui/keys.go
// Summary: Parses manager key bindings from the keys config section.

package termui

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/framegrace/texeltabs/config"
	"github.com/gdamore/tcell/v2"
)

// Action is a manager command bound to a key.
type Action int

const (
	ActionNone Action = iota
	ActionCloseActive
	ActionMinimize
	ActionPopout
	ActionNextTab
	ActionReloadConfig
	ActionQuit
)

var actionKeys = map[string]Action{
	"close_active":  ActionCloseActive,
	"minimize":      ActionMinimize,
	"popout":        ActionPopout,
	"next_tab":      ActionNextTab,
	"reload_config": ActionReloadConfig,
	"quit":          ActionQuit,
}

var defaultBindings = map[string]string{
	"close_active":  "Ctrl+W",
	"minimize":      "Ctrl+N",
	"popout":        "Ctrl+O",
	"next_tab":      "Ctrl+T",
	"reload_config": "Ctrl+R",
	"quit":          "Ctrl+Q",
}

// Keymap maps keys to actions.
type Keymap map[tcell.Key]Action

// KeymapFromConfig reads the "keys" section. Bindings that fail to parse
// are logged and skipped.
func KeymapFromConfig(cfg config.Config) Keymap {
	km := make(Keymap)
	for name, action := range actionKeys {
		spec := cfg.GetString("keys", name, defaultBindings[name])
		key, err := ParseKey(spec)
		if err != nil {
			log.Printf("Config: Ignoring binding %s=%q: %v", name, spec, err)
			continue
		}
		km[key] = action
	}
	return km
}

// Lookup returns the action bound to ev.
func (km Keymap) Lookup(ev *tcell.EventKey) Action {
	if ev == nil {
		return ActionNone
	}
	return km[ev.Key()]
}

// ParseKey understands "Ctrl+<letter>", "F<n>", "Esc" and "Tab".
func ParseKey(spec string) (tcell.Key, error) {
	s := strings.TrimSpace(spec)
	lower := strings.ToLower(s)
	switch {
	case strings.HasPrefix(lower, "ctrl+") && len(s) == len("ctrl+")+1:
		ch := strings.ToUpper(s[len("ctrl+"):])[0]
		if ch < 'A' || ch > 'Z' {
			return 0, fmt.Errorf("unsupported control key %q", spec)
		}
		return tcell.KeyCtrlA + tcell.Key(ch-'A'), nil
	case lower == "esc" || lower == "escape":
		return tcell.KeyEscape, nil
	case lower == "tab":
		return tcell.KeyTab, nil
	case strings.HasPrefix(lower, "f"):
		n, err := strconv.Atoi(lower[1:])
		if err != nil || n < 1 || n > 12 {
			return 0, fmt.Errorf("unsupported function key %q", spec)
		}
		return tcell.KeyF1 + tcell.Key(n-1), nil
	}
	return 0, fmt.Errorf("unsupported key %q", spec)
}
