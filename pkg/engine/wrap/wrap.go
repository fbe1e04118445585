// Package wrap splits raw text into the fixed-width display lines the viewer scrolls over.
package wrap

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rivo/uniseg"
)

// Highlight markers. A physical line that starts with HighlightStart and ends with
// HighlightEnd is shown tinted; the markers themselves are never displayed.
const (
	HighlightStart = "\x1b[32m"
	HighlightEnd   = "\x1b[0m"
)

// ErrZeroColumns is returned when the column budget cannot hold a single cluster.
var ErrZeroColumns = errors.New("column count must be positive")

// DisplayLine is one visual row of text.
type DisplayLine struct {
	Text        string
	Highlighted bool
}

// Wrap splits raw on newlines and chunks every line into groups of at most maxCols
// grapheme clusters. Empty input lines survive as a single empty DisplayLine, and a
// trailing empty DisplayLine is dropped so "a\n" yields one line.
func Wrap(raw string, maxCols int) ([]DisplayLine, error) {
	if maxCols <= 0 {
		return nil, fmt.Errorf("wrap: %w (got %d)", ErrZeroColumns, maxCols)
	}
	if raw == "" {
		return nil, nil
	}

	var lines []DisplayLine
	for _, line := range strings.Split(raw, "\n") {
		if line == "" {
			lines = append(lines, DisplayLine{})
			continue
		}
		body, highlighted := StripHighlight(line)
		lines = append(lines, chunk(body, maxCols, highlighted)...)
	}

	if n := len(lines); n > 0 && lines[n-1].Text == "" {
		lines = lines[:n-1]
	}
	return lines, nil
}

// StripHighlight removes the highlight markers when they bracket the whole line.
// Markers anywhere else are left in place as literal text.
func StripHighlight(line string) (string, bool) {
	if len(line) < len(HighlightStart)+len(HighlightEnd) {
		return line, false
	}
	if !strings.HasPrefix(line, HighlightStart) || !strings.HasSuffix(line, HighlightEnd) {
		return line, false
	}
	return line[len(HighlightStart) : len(line)-len(HighlightEnd)], true
}

// chunk cuts s into pieces of at most maxCols grapheme clusters.
func chunk(s string, maxCols int, highlighted bool) []DisplayLine {
	if s == "" {
		return []DisplayLine{{Highlighted: highlighted}}
	}

	var (
		out          []DisplayLine
		cluster      string
		rest         = s
		state        = -1
		start, end   int
		clusterCount int
	)
	for len(rest) > 0 {
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if clusterCount == maxCols {
			out = append(out, DisplayLine{Text: s[start:end], Highlighted: highlighted})
			start = end
			clusterCount = 0
		}
		end += len(cluster)
		clusterCount++
	}
	return append(out, DisplayLine{Text: s[start:end], Highlighted: highlighted})
}

// Clusters returns the grapheme clusters of s in order.
func Clusters(s string) []string {
	var (
		out     []string
		cluster string
		state   = -1
	)
	for len(s) > 0 {
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		out = append(out, cluster)
	}
	return out
}
