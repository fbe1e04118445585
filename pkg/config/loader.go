package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// fileConfig mirrors the TOML layout. Pointers tell absent keys from zero values.
type fileConfig struct {
	FontPath           *string             `toml:"font_path"`
	FontSize           *float64            `toml:"font_size"`
	DPI                *float64            `toml:"dpi"`
	CharWidth          *int                `toml:"char_width"`
	CharHeight         *int                `toml:"char_height"`
	ColorMode          *bool               `toml:"color_mode"`
	GlyphCacheCapacity *int                `toml:"glyph_cache_capacity"`
	Bindings           map[string][]string `toml:"bindings"`
}

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// LoadFile applies the settings in the TOML file at path on top of base.
// A missing file is not an error: base is returned unchanged.
func LoadFile(path string, base *ViewerConfig) (*ViewerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return base, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return Parse(path, data, base)
}

// Parse applies TOML data on top of a copy of base. source names the data in
// errors, and relative font paths are resolved against its directory.
func Parse(source string, data []byte, base *ViewerConfig) (*ViewerConfig, error) {
	var fc fileConfig
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&fc); err != nil {
		return nil, newParseError(source, err)
	}

	cfg := *base
	if fc.FontPath != nil {
		path := *fc.FontPath
		if !filepath.IsAbs(path) {
			path = filepath.Join(filepath.Dir(source), path)
		}
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading font %s: %w", path, err)
		}
		cfg.FontSource = src
		cfg.FontName = path
	}
	if fc.FontSize != nil {
		cfg.FontSize = *fc.FontSize
	}
	if fc.DPI != nil {
		cfg.DPI = *fc.DPI
	}
	if fc.CharWidth != nil {
		cfg.CharWidth = *fc.CharWidth
	}
	if fc.CharHeight != nil {
		cfg.CharHeight = *fc.CharHeight
	}
	if fc.ColorMode != nil {
		cfg.ColorMode = *fc.ColorMode
	}
	if fc.GlyphCacheCapacity != nil {
		cfg.GlyphCacheCapacity = *fc.GlyphCacheCapacity
	}
	if len(fc.Bindings) > 0 {
		merged := make(map[string][]string, len(base.Bindings)+len(fc.Bindings))
		for name, codes := range base.Bindings {
			merged[name] = append([]string(nil), codes...)
		}
		for name, codes := range fc.Bindings {
			merged[name] = append(merged[name], codes...)
		}
		cfg.Bindings = merged
	}
	return &cfg, nil
}

func newParseError(source string, err error) *ParseError {
	pe := &ParseError{Path: source, Message: err.Error(), Err: err}
	var derr *toml.DecodeError
	if errors.As(err, &derr) {
		pe.Line, pe.Column = derr.Position()
	}
	return pe
}
