package util

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Terminal control sequences
const (
	ColorReset  = "\033[0m"
	ColorBold   = "\033[1m"
	ColorDim    = "\033[2m"
	ColorCyan   = "\033[36m"
	ColorYellow = "\033[33m"
	ColorGray   = "\033[90m"

	ClearScreen         = "\033[2J" // Clear entire screen
	ClearLine           = "\033[2K" // Clear entire line
	ClearLineFromCursor = "\033[0K" // Clear from cursor to end of line
	ClearToEnd      = "\033[J"    // Clear from cursor to end of screen
	ClearScrollback = "\033[3J"   // Clear scrollback buffer
	MoveCursorHome  = "\033[H"    // Move cursor to home position
	HideCursor      = "\033[?25l" // Hide cursor
	ShowCursor      = "\033[?25h" // Show cursor
	EnterAltScreen  = "\033[?1049h"
	ExitAltScreen   = "\033[?1049l"
)

// GetDisplayWidth calculates the actual display width of a string, accounting for wide runes
func GetDisplayWidth(text string) int {
	return runewidth.StringWidth(text)
}

// PadString pads a string to a specific display width, handling wide runes correctly
func PadString(s string, width int, leftAlign bool) string {
	actualWidth := runewidth.StringWidth(s)
	if actualWidth >= width {
		return s
	}

	padding := strings.Repeat(" ", width-actualWidth)
	if leftAlign {
		return s + padding
	}
	return padding + s
}

// TruncateString shortens a string to the given display width, appending ellipsis
func TruncateString(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// CenterText centers text within the given display width
func CenterText(text string, width int) string {
	textWidth := runewidth.StringWidth(text)
	if textWidth >= width {
		return text
	}
	left := (width - textWidth) / 2
	right := width - textWidth - left
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", right)
}
