package viewer

import (
	"log"
	"time"

	"glyphview/pkg/engine/glyph"
)

// EventKind says how a frame was produced.
type EventKind int

const (
	// EventRepaint is a full redraw of the visible window.
	EventRepaint EventKind = iota
	// EventScroll is a shift plus one freshly drawn row.
	EventScroll
)

func (k EventKind) String() string {
	if k == EventScroll {
		return "scroll"
	}
	return "repaint"
}

// RenderEvent describes one presented frame.
type RenderEvent struct {
	Kind      EventKind
	FirstLine int
	// Visible is how many lines the window shows; Total is the document length.
	Visible int
	Total   int
	// Lines is how many display lines were drawn for this frame.
	Lines    int
	Duration time.Duration
	Cache    glyph.Stats
}

// Observer is told about every frame the viewport presents.
type Observer interface {
	Rendered(ev RenderEvent)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(ev RenderEvent)

func (f ObserverFunc) Rendered(ev RenderEvent) {
	f(ev)
}

// LogObserver logs every frame and keeps totals for a closing summary.
type LogObserver struct {
	frames  map[EventKind]int
	elapsed map[EventKind]time.Duration
	last    glyph.Stats
}

func NewLogObserver() *LogObserver {
	return &LogObserver{
		frames:  make(map[EventKind]int),
		elapsed: make(map[EventKind]time.Duration),
	}
}

func (o *LogObserver) Rendered(ev RenderEvent) {
	o.frames[ev.Kind]++
	o.elapsed[ev.Kind] += ev.Duration
	o.last = ev.Cache
	log.Printf("%s: first line %d, %d lines drawn in %s", ev.Kind, ev.FirstLine, ev.Lines, ev.Duration)
}

// Summary logs averages per event kind and the final glyph cache counters.
func (o *LogObserver) Summary() {
	for _, kind := range []EventKind{EventRepaint, EventScroll} {
		n := o.frames[kind]
		if n == 0 {
			continue
		}
		log.Printf("%s: %d frames, avg %s", kind, n, o.elapsed[kind]/time.Duration(n))
	}
	log.Printf("glyph cache: %d entries, %d hits, %d misses, %d evicted",
		o.last.Len, o.last.Hits, o.last.Misses, o.last.Evicted)
}

// Frames returns how many frames of kind were observed.
func (o *LogObserver) Frames(kind EventKind) int {
	return o.frames[kind]
}

type multiObserver []Observer

func (m multiObserver) Rendered(ev RenderEvent) {
	for _, o := range m {
		o.Rendered(ev)
	}
}

// Observers fans every frame out to each non-nil observer in order.
func Observers(obs ...Observer) Observer {
	var m multiObserver
	for _, o := range obs {
		if o != nil {
			m = append(m, o)
		}
	}
	return m
}
