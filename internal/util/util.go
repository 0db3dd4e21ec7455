// internal/util/util.go
package util

import (
	"io"
	"math"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/k0kubun/pp"
)

// TruncateRunes truncates a string to a maximum number of runes,
// appending an ellipsis if truncated.
func TruncateRunes(text string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	if utf8.RuneCountInString(text) <= maxRunes {
		return text
	}
	runes := []rune(text)
	return string(runes[:maxRunes]) + "…"
}

// PadRunes right-pads text with spaces to width runes, truncating first when
// it is longer.
func PadRunes(text string, width int) string {
	text = TruncateRunes(text, width)
	n := utf8.RuneCountInString(text)
	if n >= width {
		return text
	}
	return text + strings.Repeat(" ", width-n)
}

// Bar draws a horizontal bar of value/maxValue scaled to width cells.
func Bar(value, maxValue float64, width int) string {
	if width <= 0 || maxValue <= 0 || value <= 0 {
		return ""
	}
	cells := int(math.Round(math.Min(value/maxValue, 1) * float64(width)))
	return strings.Repeat("█", cells)
}

// WrapToWidth wraps text at word boundaries so no line exceeds width runes.
// Words longer than width are split.
func WrapToWidth(text string, width int) string {
	if width <= 0 {
		return text
	}
	var out []string
	for _, line := range strings.Split(text, "\n") {
		words := strings.Fields(line)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		var cur strings.Builder
		count := 0
		flush := func() {
			if count > 0 {
				out = append(out, cur.String())
				cur.Reset()
				count = 0
			}
		}
		for _, w := range words {
			r := []rune(w)
			for len(r) > width {
				flush()
				out = append(out, string(r[:width]))
				r = r[width:]
			}
			if len(r) == 0 {
				continue
			}
			space := 0
			if count > 0 {
				space = 1
			}
			if count+space+len(r) > width {
				flush()
				space = 0
			}
			if space == 1 {
				cur.WriteByte(' ')
			}
			cur.WriteString(string(r))
			count += space + len(r)
		}
		flush()
	}
	return strings.Join(out, "\n")
}

var dumpMu sync.Mutex

// Dump pretty-prints v to out without ANSI colors so the output can be
// piped or captured.
func Dump(out io.Writer, v any) error {
	dumpMu.Lock()
	defer dumpMu.Unlock()

	prev := pp.ColoringEnabled
	pp.ColoringEnabled = false
	defer func() { pp.ColoringEnabled = prev }()

	_, err := pp.Fprintln(out, v)
	return err
}
