// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// markdown.go - Glamour-based markdown rendering for assistant messages.
package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// markdownRenderer wraps a glamour renderer at a fixed wrap width.
// A nil inner renderer means rendering failed at construction; content
// then passes through unchanged.
type markdownRenderer struct {
	inner *glamour.TermRenderer
	width int
}

func newMarkdownRenderer(width int, dark bool) *markdownRenderer {
	if width <= 0 {
		width = 80
	}
	style := glamour.WithStandardStyle("light")
	if dark {
		style = glamour.WithStandardStyle("dark")
	}
	r, err := glamour.NewTermRenderer(
		style,
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return &markdownRenderer{width: width}
	}
	return &markdownRenderer{inner: r, width: width}
}

// Render renders markdown for terminal display. Returns the original
// content if rendering fails.
func (m *markdownRenderer) Render(content string) string {
	if m == nil || m.inner == nil {
		return content
	}
	out, err := m.inner.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(out, "\n")
}
