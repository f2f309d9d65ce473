// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: wm/errors.go
// Summary: Sentinel errors returned by the window manager.

package wm

import "errors"

var (
	// ErrDuplicateWindow is returned when CreateWindow reuses a live id.
	ErrDuplicateWindow = errors.New("wm: window id already in use")
	// ErrInvalidDescriptor is returned for descriptors without an id.
	ErrInvalidDescriptor = errors.New("wm: invalid window descriptor")
	// ErrPopupBlocked wraps the host error when a popup cannot be opened.
	ErrPopupBlocked = errors.New("wm: popup blocked")
	// ErrNoPopupHost is reported when no host was configured.
	ErrNoPopupHost = errors.New("wm: no popup host configured")
)
