// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: content/source.go
// Summary: Syntax-highlighted source and markup content.

package content

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gdamore/tcell/v2"
	"github.com/go-enry/go-enry/v2"
)

const defaultStyleName = "catppuccin-mocha"

// SourceOptions selects how source is highlighted. Empty fields are detected
// or defaulted.
type SourceOptions struct {
	// Filename helps language detection; it is never opened.
	Filename string
	// Language names a chroma lexer, e.g. "go" or "html".
	Language string
	// Style names a chroma style.
	Style string
}

// Source is Text whose lines carry highlighting.
type Source struct {
	Text
	language string
}

// NewSource highlights code. Unknown languages render as plain text.
func NewSource(code string, opts SourceOptions) *Source {
	code = expandTabs(code)
	lexer, name := resolveLexer(code, opts)
	styleName := opts.Style
	if styleName == "" {
		styleName = defaultStyleName
	}
	style := styles.Get(styleName)

	s := &Source{language: name}
	s.Style = styleFor(style.Get(chroma.Background), tcell.StyleDefault)
	s.lines = highlight(code, lexer, style, s.Style)
	return s
}

// Language returns the detected or requested language name, or "" when
// the content is shown as plain text.
func (s *Source) Language() string {
	return s.language
}

// DetectLanguage guesses a language from a filename and content.
func DetectLanguage(filename, code string) string {
	return enry.GetLanguage(filename, []byte(code))
}

func resolveLexer(code string, opts SourceOptions) (chroma.Lexer, string) {
	if opts.Language != "" {
		if l := lexers.Get(opts.Language); l != nil {
			return chroma.Coalesce(l), strings.ToLower(l.Config().Name)
		}
	}
	if opts.Filename != "" {
		if l := lexers.Match(opts.Filename); l != nil {
			return chroma.Coalesce(l), strings.ToLower(l.Config().Name)
		}
	}
	// Content-only detection: chroma's analysers first, then enry's classifier.
	if l := lexers.Analyse(code); l != nil {
		return chroma.Coalesce(l), strings.ToLower(l.Config().Name)
	}
	if lang := DetectLanguage(opts.Filename, code); lang != "" {
		if l := lexers.Get(lang); l != nil {
			return chroma.Coalesce(l), strings.ToLower(l.Config().Name)
		}
	}
	return lexers.Fallback, ""
}

func highlight(code string, lexer chroma.Lexer, style *chroma.Style, base tcell.Style) [][]span {
	lines := [][]span{nil}
	tokens, err := chroma.Tokenise(lexer, nil, code)
	if err != nil {
		for i, line := range strings.Split(code, "\n") {
			if i > 0 {
				lines = append(lines, nil)
			}
			lines[i] = []span{{text: line, style: base}}
		}
		return lines
	}
	for _, tok := range tokens {
		if tok.Type == chroma.EOFType {
			break
		}
		st := styleFor(style.Get(tok.Type), base)
		parts := strings.Split(tok.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				lines = append(lines, nil)
			}
			if part == "" {
				continue
			}
			last := len(lines) - 1
			lines[last] = append(lines[last], span{text: part, style: st})
		}
	}
	// A trailing newline does not open a visible line.
	if n := len(lines); n > 1 && len(lines[n-1]) == 0 && strings.HasSuffix(code, "\n") {
		lines = lines[:n-1]
	}
	return lines
}

func styleFor(entry chroma.StyleEntry, base tcell.Style) tcell.Style {
	st := base
	if entry.Colour.IsSet() {
		st = st.Foreground(rgb(entry.Colour))
	}
	if entry.Background.IsSet() {
		st = st.Background(rgb(entry.Background))
	}
	if entry.Bold == chroma.Yes {
		st = st.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		st = st.Italic(true)
	}
	if entry.Underline == chroma.Yes {
		st = st.Underline(true)
	}
	return st
}

func rgb(c chroma.Colour) tcell.Color {
	return tcell.NewRGBColor(int32(c.Red()), int32(c.Green()), int32(c.Blue()))
}
