// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/defaults.go
// Summary: Default values for the system configuration file.

package config

// applySystemDefaults fills keys that a hand-edited file may have dropped.
func applySystemDefaults(cfg Config) {
	if cfg == nil {
		return
	}
	cfg.RegisterDefaults("window", Section{
		"default_width":  600,
		"default_height": 500,
		"min_width":      300,
		"min_height":     200,
		"cell_width":     8,
		"cell_height":    16,
	})
	cfg.RegisterDefaults("popup", Section{
		"width":             800,
		"height":            600,
		"poll_ms":           500,
		"launch_timeout_ms": 5000,
		"browser_path":      "",
		"headless":          false,
	})
	cfg.RegisterDefaults("keys", Section{
		"close_active":  "Ctrl+W",
		"minimize":      "Ctrl+N",
		"popout":        "Ctrl+O",
		"next_tab":      "Ctrl+T",
		"reload_config": "Ctrl+R",
		"quit":          "Ctrl+Q",
	})
	if def := defaultSystemConfig(); def != nil {
		cfg.RegisterDefaults("theme", def.Section("theme"))
	}
}
