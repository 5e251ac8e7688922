package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

const uiDivider = "──────────────────────────────────────────────────────"

func renderPage(title, data, hotKeys string) string {
	var b strings.Builder

	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString("  ")
	b.WriteString(uiDivider)
	b.WriteString("\n\n")

	if strings.TrimSpace(data) != "" {
		lines := strings.Split(data, "\n")
		for _, line := range lines {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	} else {
		b.WriteString("  -\n")
	}

	b.WriteString("\n")
	b.WriteString("  ")
	b.WriteString(uiDivider)
	b.WriteString("\n")

	if strings.TrimSpace(hotKeys) != "" {
		b.WriteString("  ")
		b.WriteString(hotKeys)
		b.WriteString("\n")
	}
	b.WriteString("  ctrl+c: quit")

	return b.String()
}

// overlay draws fg on top of bg with its top-left corner at (row, col).
// Both may contain ANSI sequences; widths are measured in cells.
func overlay(bg, fg string, row, col int) string {
	if col < 0 {
		col = 0
	}
	bgLines := strings.Split(bg, "\n")
	for i, fgLine := range strings.Split(fg, "\n") {
		r := row + i
		if r < 0 || r >= len(bgLines) {
			continue
		}

		line := bgLines[r]
		if w := ansi.StringWidth(line); w < col {
			line += strings.Repeat(" ", col-w)
		}
		width := ansi.StringWidth(line)
		left := ansi.Truncate(line, col, "")
		right := ""
		if end := col + ansi.StringWidth(fgLine); end < width {
			right = ansi.Cut(line, end, width)
		}
		bgLines[r] = left + fgLine + right
	}
	return strings.Join(bgLines, "\n")
}

// blankCanvas returns height lines of width spaces.
func blankCanvas(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	line := strings.Repeat(" ", width)
	lines := make([]string, height)
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

// clipLines cuts s to at most width cells and height lines.
func clipLines(s string, width, height int) string {
	lines := strings.Split(s, "\n")
	if height >= 0 && len(lines) > height {
		lines = lines[:height]
	}
	for i, line := range lines {
		lines[i] = ansi.Truncate(line, width, "")
	}
	return strings.Join(lines, "\n")
}

// overlayCenter places box in the middle of a width x height background.
func overlayCenter(bg, box string, width, height int) string {
	lines := strings.Split(box, "\n")
	boxWidth := 0
	for _, line := range lines {
		boxWidth = max(boxWidth, ansi.StringWidth(line))
	}
	return overlay(bg, box, max(0, (height-len(lines))/2), max(0, (width-boxWidth)/2))
}

// wrapCells splits a single line into chunks of at most width cells.
func wrapCells(s string, width int) []string {
	if width <= 0 || s == "" {
		return nil
	}

	var out []string
	for runewidth.StringWidth(s) > width {
		head := runewidth.Truncate(s, width, "")
		if head == "" {
			break
		}
		out = append(out, head)
		s = s[len(head):]
	}
	if s != "" {
		out = append(out, s)
	}
	return out
}
