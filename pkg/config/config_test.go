package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/gomono"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() error = %v", err)
	}
	if cfg.CharWidth != 6 || cfg.CharHeight != 11 || cfg.FontSize != 16 {
		t.Errorf("Default() cell %dx%d size %g, want 6x11 size 16", cfg.CharWidth, cfg.CharHeight, cfg.FontSize)
	}
	if cfg.ColorMode {
		t.Error("Default().ColorMode = true, want false")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ViewerConfig)
		target error
	}{
		{"zero width", func(c *ViewerConfig) { c.CharWidth = 0 }, ErrInvalidCellSize},
		{"negative height", func(c *ViewerConfig) { c.CharHeight = -1 }, ErrInvalidCellSize},
		{"zero font size", func(c *ViewerConfig) { c.FontSize = 0 }, ErrInvalidFontSize},
		{"zero dpi", func(c *ViewerConfig) { c.DPI = 0 }, ErrInvalidFontSize},
		{"no font", func(c *ViewerConfig) { c.FontSource = nil }, nil},
		{"negative capacity", func(c *ViewerConfig) { c.GlyphCacheCapacity = -1 }, nil},
		{"bad binding", func(c *ViewerConfig) { c.Bindings = map[string][]string{"fly": {"f"}} }, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() error = nil, want error")
			}
			if tt.target != nil && !errors.Is(err, tt.target) {
				t.Errorf("Validate() error = %v, want %v", err, tt.target)
			}
		})
	}
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile_Missing(t *testing.T) {
	base := Default()
	got, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"), base)
	if err != nil {
		t.Fatalf("LoadFile(missing) error = %v", err)
	}
	if got != base {
		t.Error("LoadFile(missing) did not return base")
	}
}

func TestLoadFile_Overrides(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "mono.ttf", gomono.TTF)
	path := writeFile(t, dir, "viewer.toml", []byte(`
font_path = "mono.ttf"
font_size = 12.0
char_width = 8
char_height = 14
color_mode = true
glyph_cache_capacity = 64

[bindings]
scroll_down = ["j", "space"]
quit = ["q"]
`))

	base := Default()
	cfg, err := LoadFile(path, base)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.FontSize != 12 || cfg.CharWidth != 8 || cfg.CharHeight != 14 {
		t.Errorf("LoadFile() size %g cell %dx%d, want 12 8x14", cfg.FontSize, cfg.CharWidth, cfg.CharHeight)
	}
	if cfg.DPI != DefaultDPI {
		t.Errorf("DPI = %g, want default %d", cfg.DPI, DefaultDPI)
	}
	if !cfg.ColorMode || cfg.GlyphCacheCapacity != 64 {
		t.Errorf("ColorMode = %v, capacity = %d, want true, 64", cfg.ColorMode, cfg.GlyphCacheCapacity)
	}
	if cfg.FontName != filepath.Join(dir, "mono.ttf") {
		t.Errorf("FontName = %q, want resolved next to the config", cfg.FontName)
	}
	if len(cfg.FontSource) != len(gomono.TTF) {
		t.Errorf("len(FontSource) = %d, want %d", len(cfg.FontSource), len(gomono.TTF))
	}
	if got := cfg.Bindings["scroll_down"]; len(got) != 2 {
		t.Errorf("Bindings[scroll_down] = %v, want [j space]", got)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
	if base.CharWidth != DefaultCharWidth {
		t.Error("LoadFile modified base")
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", "char_width = = 3\n"},
		{"type", "char_width = \"wide\"\n"},
		{"unknown key", "charwidth = 3\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("viewer.toml", []byte(tt.data), Default())
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("Parse() error = %v, want *ParseError", err)
			}
			if pe.Path != "viewer.toml" {
				t.Errorf("ParseError.Path = %q, want viewer.toml", pe.Path)
			}
		})
	}
}

func TestParse_SyntaxPosition(t *testing.T) {
	_, err := Parse("viewer.toml", []byte("dpi = 40.0\nchar_width = = 3\n"), Default())
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Parse() error = %v, want *ParseError", err)
	}
	if pe.Line != 2 {
		t.Errorf("ParseError.Line = %d, want 2", pe.Line)
	}
}

func TestParse_MissingFont(t *testing.T) {
	dir := t.TempDir()
	_, err := Parse(filepath.Join(dir, "viewer.toml"), []byte(`font_path = "absent.ttf"`), Default())
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Parse() error = %v, want not-exist", err)
	}
}

func TestParse_InvalidCellSurfacesInValidate(t *testing.T) {
	cfg, err := Parse("viewer.toml", []byte("char_width = 0\n"), Default())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidCellSize) {
		t.Errorf("Validate() error = %v, want ErrInvalidCellSize", err)
	}
}
