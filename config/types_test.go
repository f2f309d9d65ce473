// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/types_test.go
// Summary: Exercises typed getters and default registration.

package config

import (
	"encoding/json"
	"testing"
	"time"
)

func TestGettersAcceptDecodedJSON(t *testing.T) {
	var cfg Config
	data := `{"popup":{"width":800,"poll_ms":250,"headless":true,"browser_path":"/usr/bin/chromium"}}`
	if err := json.Unmarshal([]byte(data), &cfg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := cfg.GetInt("popup", "width", 0); got != 800 {
		t.Fatalf("width = %d", got)
	}
	if got := cfg.GetMillis("popup", "poll_ms", time.Second); got != 250*time.Millisecond {
		t.Fatalf("poll = %v", got)
	}
	if !cfg.GetBool("popup", "headless", false) {
		t.Fatalf("headless not read")
	}
	if got := cfg.GetString("popup", "browser_path", ""); got != "/usr/bin/chromium" {
		t.Fatalf("browser = %q", got)
	}
}

func TestGettersFallBack(t *testing.T) {
	cfg := Config{"window": Section{"min_width": "wide", "cell_width": "9", "flag": "yes"}}
	if got := cfg.GetInt("window", "min_width", 300); got != 300 {
		t.Fatalf("bad int = %d", got)
	}
	if got := cfg.GetInt("window", "cell_width", 8); got != 9 {
		t.Fatalf("numeric string = %d", got)
	}
	if cfg.GetBool("window", "flag", false) {
		t.Fatalf("unparsable bool should fall back")
	}
	if got := cfg.GetMillis("missing", "poll_ms", time.Second); got != time.Second {
		t.Fatalf("missing section = %v", got)
	}
	var nilCfg Config
	if got := nilCfg.GetString("theme", "surface_bg", "#000000"); got != "#000000" {
		t.Fatalf("nil config = %q", got)
	}
}

func TestRegisterDefaultsKeepsExisting(t *testing.T) {
	cfg := Config{"keys": map[string]interface{}{"quit": "F10"}}
	cfg.RegisterDefaults("keys", Section{"quit": "Ctrl+Q", "popout": "Ctrl+O"})
	cfg.RegisterDefaults("theme", Section{"surface_bg": "#1e1e2e"})
	if got := cfg.GetString("keys", "quit", ""); got != "F10" {
		t.Fatalf("existing key overwritten: %q", got)
	}
	if got := cfg.GetString("keys", "popout", ""); got != "Ctrl+O" {
		t.Fatalf("default not added: %q", got)
	}
	if cfg.Section("theme") == nil {
		t.Fatalf("missing section not created")
	}
}
