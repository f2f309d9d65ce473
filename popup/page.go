// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: popup/page.go
// Summary: Builds the standalone HTML document shown in a popup window.

package popup

import (
	"bytes"
	"fmt"
	"html"

	"github.com/framegrace/texeltabs/dom"
	"github.com/framegrace/texeltabs/wm"
)

// PageStyle holds the page colors as CSS hex values.
type PageStyle struct {
	Background string
	Foreground string
	FontFamily string
}

// DefaultPageStyle matches the default surface colors.
var DefaultPageStyle = PageStyle{
	Background: "#1e1e2e",
	Foreground: "#cdd6f4",
	FontFamily: "monospace",
}

// BuildPage renders req as a complete HTML document.
func BuildPage(req wm.PopupRequest, style PageStyle) ([]byte, error) {
	if req.Root == nil {
		return nil, fmt.Errorf("popup: request for %q has no content", req.WindowID)
	}
	if style.FontFamily == "" {
		style.FontFamily = DefaultPageStyle.FontFamily
	}
	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\">")
	fmt.Fprintf(&buf, "<title>%s</title>", html.EscapeString(req.Title))
	fmt.Fprintf(&buf, "<style>html,body{margin:0;height:100%%;overflow:hidden;background:%s;color:%s;font-family:%s;}", style.Background, style.Foreground, style.FontFamily)
	fmt.Fprintf(&buf, ".wm-window-content{box-sizing:border-box;width:100%%;height:100%%;overflow:auto;padding:4px;white-space:pre;}")
	fmt.Fprintf(&buf, "pre{margin:0;font:inherit;line-height:%dpx;}</style>", lineHeight(req.CellHeight))
	buf.WriteString("</head><body>")
	if err := dom.WriteHTML(&buf, req.Root, dom.HTMLOptions{
		CellWidth:  req.CellWidth,
		CellHeight: req.CellHeight,
		Width:      req.Width,
		Height:     req.Height,
	}); err != nil {
		return nil, fmt.Errorf("popup: render %q: %w", req.WindowID, err)
	}
	buf.WriteString("</body></html>\n")
	return buf.Bytes(), nil
}

func lineHeight(cellHeight int) int {
	if cellHeight <= 0 {
		return 16
	}
	return cellHeight
}
