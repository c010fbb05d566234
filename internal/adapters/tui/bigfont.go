package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const glyphHeight = 5

// digitMap maps each digit character (0-9) and colon to a 5-line block glyph.
// Digits are 4 cells wide except '1'; the colon is 1 cell wide.
var digitMap = map[rune][glyphHeight]string{
	'0': {"████", "█  █", "█  █", "█  █", "████"},
	'1': {" █ ", "██ ", " █ ", " █ ", "███"},
	'2': {"████", "   █", "████", "█   ", "████"},
	'3': {"████", "   █", "████", "   █", "████"},
	'4': {"█  █", "█  █", "████", "   █", "   █"},
	'5': {"████", "█   ", "████", "   █", "████"},
	'6': {"████", "█   ", "████", "█  █", "████"},
	'7': {"████", "   █", "  █ ", " █  ", " █  "},
	'8': {"████", "█  █", "████", "█  █", "████"},
	'9': {"████", "█  █", "████", "   █", "████"},
	':': {" ", "█", " ", "█", " "},
}

// bigTimeWidth returns the rendered width of timeStr in block glyphs.
func bigTimeWidth(timeStr string) int {
	width := 0
	for _, ch := range timeStr {
		glyph, ok := digitMap[ch]
		if !ok {
			continue
		}
		if width > 0 {
			width++
		}
		width += len([]rune(glyph[0]))
	}
	return width
}

// renderBigTime renders a clock string like "44:59" in block glyphs. It
// falls back to a single bold line when the glyphs would not fit in width.
func renderBigTime(timeStr string, color lipgloss.Color, width int) string {
	style := lipgloss.NewStyle().Bold(true).Foreground(color)
	if width < 40 || bigTimeWidth(timeStr)+4 > width {
		return style.Render(timeStr)
	}

	var rows [glyphHeight]strings.Builder
	for _, ch := range timeStr {
		glyph, ok := digitMap[ch]
		if !ok {
			continue
		}
		for i := range rows {
			if rows[i].Len() > 0 {
				rows[i].WriteByte(' ')
			}
			rows[i].WriteString(glyph[i])
		}
	}

	styled := make([]string, glyphHeight)
	for i := range rows {
		styled[i] = style.Render(rows[i].String())
	}
	return strings.Join(styled, "\n")
}
