package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/leonelquinteros/gotext"

	"glyphview/pkg/backend/ebiten"
	"glyphview/pkg/backend/headless"
	"glyphview/pkg/backend/tui"
	"glyphview/pkg/config"
	"glyphview/pkg/engine/input"
	"glyphview/pkg/engine/surface"
	"glyphview/pkg/viewer"
)

func initLocale(dir, lang string) {
	if dir == "" {
		return
	}
	gotext.Configure(dir, lang, "default")
}

func main() {
	configPath := flag.String("config", "", "TOML config file")
	backend := flag.String("backend", "ebiten", "display backend: ebiten, tui or headless")
	scale := flag.Int("scale", 2, "window scale factor (ebiten)")
	status := flag.Bool("status", false, "show the visible line range under the screen (ebiten)")
	step := flag.Int("step", 2, "device pixels per terminal column (tui)")
	keysScript := flag.String("keys-script", "", "comma separated key codes to replay (headless)")
	screenshot := flag.String("screenshot", "", "directory to save a PNG of the last frame (headless)")
	noCopy := flag.Bool("no-copy", false, "repaint on every scroll instead of shifting (headless)")
	bench := flag.Bool("bench", false, "log every frame and print timing and cache totals on exit")
	dump := flag.Bool("dump", false, "print the wrapped lines and exit")
	listKeys := flag.Bool("list-keys", false, "print the key bindings and exit")
	localeDir := flag.String("locales", "", "directory with gettext translations")
	lang := flag.String("lang", "en_GB", "language for translated messages")

	var ov overrides
	fontPath := flag.String("font", "", "TrueType/OpenType font file")
	fontSize := flag.Float64("size", config.DefaultFontSize, "font size in points")
	cell := flag.String("cell", "", "character cell size, e.g. 6x11")
	colorMode := flag.Bool("color", false, "draw every line in the highlight color")
	cacheCap := flag.Int("cache", 0, "glyph cache capacity, 0 for unbounded")
	flag.Parse()

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "font":
			ov.fontPath = fontPath
		case "size":
			ov.fontSize = fontSize
		case "cell":
			ov.cell = cell
		case "color":
			ov.color = colorMode
		case "cache":
			ov.cache = cacheCap
		}
	})

	initLocale(*localeDir, *lang)

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.LoadFile(*configPath, cfg)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	if err := ov.apply(cfg); err != nil {
		log.Fatalf("Invalid option: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if *listKeys {
		bindings := input.DefaultBindings()
		if err := bindings.Merge(cfg.Bindings); err != nil {
			log.Fatalf("Invalid bindings: %v", err)
		}
		listBindings(os.Stdout, bindings)
		return
	}

	text, err := readText(flag.Arg(0), os.Stdin)
	if err != nil {
		fmt.Fprintln(os.Stderr, gotext.Get("Usage: glyphview [flags] [file]"))
		log.Fatalf("Failed to read text: %v", err)
	}

	if *dump {
		if err := dumpLines(os.Stdout, text, cfg); err != nil {
			log.Fatalf("Failed to wrap text: %v", err)
		}
		return
	}

	var logObs *viewer.LogObserver
	if *bench {
		logObs = viewer.NewLogObserver()
	}

	switch *backend {
	case "ebiten":
		err = runWindow(text, cfg, ebiten.Options{
			Title:  gotext.Get("Glyph Viewer"),
			Scale:  *scale,
			Status: *status,
		}, logObs)
	case "tui":
		err = runTerminal(text, cfg, tui.Options{Step: *step}, logObs)
	case "headless":
		err = runHeadless(text, cfg, parseScript(*keysScript), !*noCopy, *screenshot, logObs)
	default:
		log.Fatalf("Unknown backend %q", *backend)
	}

	if logObs != nil {
		logObs.Summary()
	}
	if err != nil {
		log.Fatalf("Viewer stopped: %v", err)
	}
}

func observer(extra viewer.Observer, logObs *viewer.LogObserver) viewer.Observer {
	if logObs == nil {
		return extra
	}
	return viewer.Observers(extra, logObs)
}

func runWindow(text string, cfg *config.ViewerConfig, opts ebiten.Options, logObs *viewer.LogObserver) error {
	w, err := ebiten.New(opts)
	if err != nil {
		return err
	}
	return w.Run(func() error {
		return viewer.Display(text, cfg, w, viewer.WithObserver(observer(w, logObs)))
	})
}

func runTerminal(text string, cfg *config.ViewerConfig, opts tui.Options, logObs *viewer.LogObserver) error {
	screen, restore, err := tui.Open(opts)
	if err != nil {
		return err
	}
	var vopts []viewer.Option
	if logObs != nil {
		vopts = append(vopts, viewer.WithObserver(logObs))
	}
	err = viewer.Display(text, cfg, screen, vopts...)
	if rerr := restore(); rerr != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to restore terminal: %v\n", rerr)
	}
	return err
}

func runHeadless(text string, cfg *config.ViewerConfig, script []string, inPlace bool, shotDir string, logObs *viewer.LogObserver) error {
	dev := headless.New(viewer.NewScriptKeys(script...), surface.Caps{InPlaceCopy: inPlace})
	var vopts []viewer.Option
	if logObs != nil {
		vopts = append(vopts, viewer.WithObserver(logObs))
	}
	if err := viewer.Display(text, cfg, dev, vopts...); err != nil {
		return err
	}
	log.Printf("Presented %d frames", dev.Frames())

	if shotDir != "" {
		path, err := dev.SaveScreenshot(shotDir)
		if err != nil {
			return fmt.Errorf("saving screenshot: %w", err)
		}
		log.Printf("Screenshot saved to %s", path)
	}
	return nil
}
