// Package engine carries the per-document state that the original theme
// script kept in module-level globals, and dispatches the load, resize
// and theme lifecycle events the behaviors subscribe to.
package engine

import (
	"sync"

	"github.com/PuerkitoBio/goquery"

	"github.com/freshwaterdesigns/freshwater-cdn/internal/ui"
)

// Context is constructed once per document and passed to every handler.
// There is no package-level mutable state; tearing down the host drops
// everything.
type Context struct {
	Doc      *goquery.Document
	Viewport int

	// ShopHost is the storefront's own host; links elsewhere are external.
	ShopHost string

	// Multiplier tunes the scroller growth target; 0 selects the default.
	Multiplier int

	Log   *ui.Logger
	Stats *ui.Stats
}

func NewContext(doc *goquery.Document, viewport int) *Context {
	return &Context{
		Doc:      doc,
		Viewport: viewport,
		Log:      ui.NewLogger(false),
	}
}

func (c *Context) Logger() *ui.Logger {
	if c.Log == nil {
		c.Log = ui.NewLogger(false)
	}
	return c.Log
}

// Behavior is one independent document transform. Apply returns the
// number of nodes it touched; it never fails (malformed markup degrades
// to a no-op).
type Behavior interface {
	Name() string
	Apply(*Context) int
}

type Handler func(*Context)

type ThemeEventKind string

const (
	EventSectionLoad    ThemeEventKind = "section:load"
	EventSectionReorder ThemeEventKind = "section:reorder"
	EventBlockLoad      ThemeEventKind = "block:load"
)

type ThemeEvent struct {
	Kind ThemeEventKind
	ID   string
}

type ThemeHandler func(*Context, ThemeEvent)

// Host owns a Context and dispatches events to subscribed handlers.
// Handlers run synchronously in registration order, and dispatch is
// serialized: no two invocations overlap. Handlers must not fire host
// triggers themselves.
type Host struct {
	mu  sync.Mutex
	ctx *Context

	loadHandlers   []Handler
	resizeHandlers []Handler
	themeHandlers  []ThemeHandler

	pendingWidth int
	resizeDelay  *debouncer

	closed bool
}

func NewHost(ctx *Context) *Host {
	h := &Host{ctx: ctx}
	h.resizeDelay = newDebouncer(DebounceInterval, h.flushResize)
	return h
}

func (h *Host) OnLoad(fn Handler) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.loadHandlers = append(h.loadHandlers, fn)
}

func (h *Host) OnResize(fn Handler) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.resizeHandlers = append(h.resizeHandlers, fn)
}

func (h *Host) OnThemeEvent(fn ThemeHandler) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.themeHandlers = append(h.themeHandlers, fn)
}

// RegisterBehavior subscribes a behavior to all three triggers: every
// load, resize and theme lifecycle event re-runs it against the whole
// document.
func (h *Host) RegisterBehavior(b Behavior) {
	run := func(ctx *Context) {
		n := b.Apply(ctx)
		ctx.Logger().Debugf("behavior %s touched %d nodes", b.Name(), n)
	}

	h.OnLoad(run)
	h.OnResize(run)
	h.OnThemeEvent(func(ctx *Context, _ ThemeEvent) {
		run(ctx)
	})
}

// Ready fires the load handlers.
func (h *Host) Ready() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}

	for _, fn := range h.loadHandlers {
		fn(h.ctx)
	}
}

// Resize records the new viewport width and schedules the resize
// handlers on the debounce's trailing edge. A storm of calls coalesces
// into one dispatch carrying the last width.
func (h *Host) Resize(width int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}

	h.pendingWidth = width
	h.resizeDelay.trigger()
}

func (h *Host) flushResize() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}

	h.ctx.Viewport = h.pendingWidth
	for _, fn := range h.resizeHandlers {
		fn(h.ctx)
	}
}

func (h *Host) SectionLoad(id string) {
	h.fireTheme(ThemeEvent{Kind: EventSectionLoad, ID: id})
}

func (h *Host) SectionReorder(id string) {
	h.fireTheme(ThemeEvent{Kind: EventSectionReorder, ID: id})
}

func (h *Host) BlockLoad(id string) {
	h.fireTheme(ThemeEvent{Kind: EventBlockLoad, ID: id})
}

func (h *Host) fireTheme(ev ThemeEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}

	for _, fn := range h.themeHandlers {
		fn(h.ctx, ev)
	}
}

// Close tears the host down: any pending resize dispatch is cancelled
// and subsequent triggers are ignored.
func (h *Host) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	h.resizeDelay.stop()
}
