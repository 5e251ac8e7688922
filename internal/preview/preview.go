// Package preview turns stored note content into plain text for titles,
// toolbar previews and filtering.
//
// Content written by the desktop app is a complete HTML document; content
// typed in the terminal is plain text or markdown and is never rewritten.
package preview

import (
	"html"
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/microcosm-cc/bluemonday"
)

// Ellipsis is appended to truncated previews.
const Ellipsis = "…"

var (
	strict = bluemonday.StrictPolicy()

	blockBreaks = regexp.MustCompile(`(?i)<br\s*/?>\s*</p>|<br\s*/?>|</(p|div|li|h[1-6]|tr|pre|blockquote)>`)
	spaces      = regexp.MustCompile(`[ \t\f\r\v]+`)
)

// documentPrefixes open every rich-text document the desktop app saves.
var documentPrefixes = []string{"<!doctype html", "<html"}

// IsMarkup reports whether content is an HTML document. Tag-like text inside
// plain content ("Vec<T>", "a<b>c") is not markup.
func IsMarkup(content string) bool {
	head := strings.ToLower(strings.TrimLeft(content, " \t\r\n\ufeff"))
	for _, prefix := range documentPrefixes {
		if strings.HasPrefix(head, prefix) {
			return true
		}
	}
	return false
}

// PlainText returns plain content unchanged. For an HTML document,
// block-level boundaries become line breaks, entities are decoded, runs of
// blanks collapse to one space and the blank lines left by the head are
// dropped.
func PlainText(content string) string {
	if !IsMarkup(content) {
		return content
	}

	// raw newlines are insignificant in HTML; breaks come from the tags
	s := strings.ReplaceAll(content, "\n", " ")
	s = blockBreaks.ReplaceAllString(s, "$0\n")
	s = strict.Sanitize(s)
	s = html.UnescapeString(s)

	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(spaces.ReplaceAllString(line, " "))
		if line == "" && len(out) == 0 {
			continue
		}
		out = append(out, line)
	}

	return strings.TrimRight(strings.Join(out, "\n"), "\n")
}

// Title returns the first maxLines lines of plain text, trimmed, or a
// fallback built from the note id when they are blank. Leading blank lines
// count towards maxLines.
func Title(content, id string, maxLines int) string {
	lines := strings.Split(PlainText(content), "\n")
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}

	title := strings.TrimSpace(strings.Join(lines, "\n"))
	if title == "" {
		return FallbackTitle(id)
	}
	return title
}

// FallbackTitle names a note that has no text yet.
func FallbackTitle(id string) string {
	short := id
	if len(short) > 8 {
		short = short[:8]
	}
	return "New Note " + short
}

// Snippet flattens text onto one line and truncates it to width terminal
// cells.
func Snippet(text string, width int) string {
	flat := strings.Join(strings.Fields(text), " ")
	if width <= 0 || runewidth.StringWidth(flat) <= width {
		return flat
	}
	return runewidth.Truncate(flat, width, Ellipsis)
}

// Contains reports whether the plain text of content or the title contains
// needle, ignoring case.
func Contains(content, title, needle string) bool {
	if needle == "" {
		return true
	}
	needle = strings.ToLower(needle)

	return strings.Contains(strings.ToLower(PlainText(content)), needle) ||
		strings.Contains(strings.ToLower(title), needle)
}
