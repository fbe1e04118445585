package main

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"

	"glyphview/pkg/config"
	"glyphview/pkg/engine/input"
	"glyphview/pkg/engine/terminal"
	"glyphview/pkg/engine/wrap"
	"glyphview/pkg/viewer"
)

var errNoText = errors.New("no text: pass a file or pipe text on stdin")

var (
	colorHighlight = color.Style{color.FgGreen, color.OpBold}
	colorLineNo    = color.Style{color.FgGray}
	colorKey       = color.Style{color.FgCyan}
)

// overrides holds command-line settings that replace config file values.
// Nil fields were not given.
type overrides struct {
	fontPath *string
	fontSize *float64
	cell     *string
	color    *bool
	cache    *int
}

// apply layers o on top of cfg.
func (o overrides) apply(cfg *config.ViewerConfig) error {
	if o.fontPath != nil {
		src, err := os.ReadFile(*o.fontPath)
		if err != nil {
			return fmt.Errorf("reading font: %w", err)
		}
		cfg.FontSource = src
		cfg.FontName = filepath.Base(*o.fontPath)
	}
	if o.fontSize != nil {
		cfg.FontSize = *o.fontSize
	}
	if o.cell != nil {
		w, h, err := parseCell(*o.cell)
		if err != nil {
			return err
		}
		cfg.CharWidth, cfg.CharHeight = w, h
	}
	if o.color != nil {
		cfg.ColorMode = *o.color
	}
	if o.cache != nil {
		cfg.GlyphCacheCapacity = *o.cache
	}
	return nil
}

// parseCell parses a cell size such as "6x11".
func parseCell(s string) (int, int, error) {
	var w, h int
	n, err := fmt.Sscanf(strings.ToLower(strings.TrimSpace(s)), "%dx%d", &w, &h)
	if err != nil || n != 2 {
		return 0, 0, fmt.Errorf("cell size %q: want WIDTHxHEIGHT", s)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("cell size %q: %w", s, config.ErrInvalidCellSize)
	}
	return w, h, nil
}

// parseScript splits a comma separated key script such as "arrow_down,2,escape".
func parseScript(s string) []string {
	var codes []string
	for _, code := range strings.Split(s, ",") {
		if code = strings.TrimSpace(code); code != "" {
			codes = append(codes, code)
		}
	}
	return codes
}

// readText reads the document from the named file, or from stdin when path is
// empty and stdin is not a terminal. CRLF line endings become \n; a lone \r is
// kept as text.
func readText(path string, stdin *os.File) (string, error) {
	var data []byte
	var err error
	switch {
	case path != "" && path != "-":
		data, err = os.ReadFile(path)
	case path == "-" || !terminal.IsTerminal(stdin):
		data, err = io.ReadAll(stdin)
	default:
		return "", errNoText
	}
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(string(data), "\r\n", "\n"), nil
}

// dumpLines prints the wrapped display lines, highlighted ones in color.
func dumpLines(w io.Writer, text string, cfg *config.ViewerConfig) error {
	geom, err := viewer.NewGeometry(image.Rect(0, 0, viewer.ScreenWidth, viewer.ScreenHeight),
		cfg.CharWidth, cfg.CharHeight, cfg.CharHeight)
	if err != nil {
		return err
	}
	lines, err := wrap.Wrap(text, geom.MaxCols)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, gotext.Get("%d display lines, %d columns, %d lines per screen", len(lines), geom.MaxCols, geom.MaxLines))
	for i, line := range lines {
		body := line.Text
		if line.Highlighted {
			body = colorHighlight.Sprint(body)
		}
		fmt.Fprintf(w, "%s %s\n", colorLineNo.Sprintf("%4d", i+1), body)
	}
	return nil
}

// listBindings prints each action with the key codes that trigger it.
func listBindings(w io.Writer, bindings input.Bindings) {
	byAction := bindings.ByAction()
	actions := make([]input.Action, 0, len(byAction))
	for a := range byAction {
		actions = append(actions, a)
	}
	sort.Slice(actions, func(i, j int) bool { return actions[i] < actions[j] })

	for _, a := range actions {
		keys := make([]string, len(byAction[a]))
		for i, k := range byAction[a] {
			keys[i] = colorKey.Sprint(k)
		}
		fmt.Fprintf(w, "%-12s %s\n", gotext.Get(input.ActionName(a)), strings.Join(keys, ", "))
	}
}
