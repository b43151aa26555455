// Package util provides text helpers shared by the terminal views.
package util

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Ellipsis marks text cut by Truncate.
const Ellipsis = "…"

// Truncate shortens s to width visual columns, ending it with Ellipsis when
// anything was cut. Escape sequences and wide characters are measured the
// way the terminal draws them. A width of zero or less means no limit.
func Truncate(s string, width int) string {
	if width <= 0 || ansi.StringWidth(s) <= width {
		return s
	}
	if width == 1 {
		return Ellipsis
	}
	return ansi.Truncate(s, width, Ellipsis)
}

// SingleLine folds line breaks and tabs into single spaces so that free-form
// text, such as a command result, fits on a status line.
func SingleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
