// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/clone.go
// Summary: Deep copies of decoded config values.

package config

// clone returns a copy of c that shares no maps or slices with it.
func (c Config) clone() Config {
	if c == nil {
		return nil
	}
	out := make(Config, len(c))
	for name, value := range c {
		out[name] = cloneValue(value)
	}
	return out
}

// cloneValue copies the JSON-shaped value v. Nested objects come back as
// Section so the typed getters see one map type.
func cloneValue(v interface{}) interface{} {
	switch t := v.(type) {
	case Section:
		return cloneMap(t)
	case map[string]interface{}:
		return cloneMap(t)
	case []interface{}:
		items := make([]interface{}, len(t))
		for i, item := range t {
			items[i] = cloneValue(item)
		}
		return items
	default:
		return v
	}
}

func cloneMap(m map[string]interface{}) Section {
	out := make(Section, len(m))
	for key, value := range m {
		out[key] = cloneValue(value)
	}
	return out
}
