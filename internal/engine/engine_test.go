package engine_test

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshwaterdesigns/freshwater-cdn/internal/engine"
)

func newContext(t *testing.T) *engine.Context {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`<div id="root"></div>`))
	require.NoError(t, err)
	return engine.NewContext(doc, 1280)
}

type recordingBehavior struct {
	name string
	log  *[]string
	mu   *sync.Mutex
}

func (b recordingBehavior) Name() string { return b.name }

func (b recordingBehavior) Apply(_ *engine.Context) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	*b.log = append(*b.log, b.name)
	return 1
}

func TestHandlersRunInRegistrationOrder(t *testing.T) {
	h := engine.NewHost(newContext(t))
	defer h.Close()

	var order []string
	for _, name := range []string{"first", "second", "third"} {
		name := name
		h.OnLoad(func(_ *engine.Context) {
			order = append(order, name)
		})
	}

	h.Ready()
	assert.Equal(t, []string{"first", "second", "third"}, order)

	h.Ready()
	assert.Len(t, order, 6, "every trigger re-runs all handlers")
}

func TestRegisterBehaviorSubscribesAllTriggers(t *testing.T) {
	h := engine.NewHost(newContext(t))
	defer h.Close()

	var mu sync.Mutex
	var calls []string
	h.RegisterBehavior(recordingBehavior{name: "b", log: &calls, mu: &mu})

	h.Ready()
	h.SectionLoad("s1")
	h.SectionReorder("s1")
	h.BlockLoad("b1")

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, calls, 4)
}

func TestResizeDebouncesToTrailingWidth(t *testing.T) {
	ctx := newContext(t)
	h := engine.NewHost(ctx)
	defer h.Close()

	var mu sync.Mutex
	var widths []int
	h.OnResize(func(c *engine.Context) {
		mu.Lock()
		defer mu.Unlock()
		widths = append(widths, c.Viewport)
	})

	for _, w := range []int{500, 640, 800, 1024} {
		h.Resize(w)
	}

	mu.Lock()
	assert.Empty(t, widths, "nothing fires on the leading edge")
	mu.Unlock()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(widths) == 1
	}, time.Second, 5*time.Millisecond)

	// Give a second dispatch time to (wrongly) appear.
	time.Sleep(3 * engine.DebounceInterval)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, widths, 1, "a burst coalesces into one dispatch")
	assert.Equal(t, 1024, widths[0], "the last width wins")
	assert.Equal(t, 1024, ctx.Viewport)
}

func TestResizeBurstsKeepSingleDispatchPerBurst(t *testing.T) {
	h := engine.NewHost(newContext(t))
	defer h.Close()

	var mu sync.Mutex
	count := 0
	h.OnResize(func(_ *engine.Context) {
		mu.Lock()
		defer mu.Unlock()
		count++
	})

	h.Resize(700)
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return count == 1
	}, time.Second, 5*time.Millisecond)

	h.Resize(900)
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return count == 2
	}, time.Second, 5*time.Millisecond)
}

func TestCloseCancelsPendingResize(t *testing.T) {
	h := engine.NewHost(newContext(t))

	var mu sync.Mutex
	fired := false
	h.OnResize(func(_ *engine.Context) {
		mu.Lock()
		defer mu.Unlock()
		fired = true
	})

	h.Resize(640)
	h.Close()

	time.Sleep(3 * engine.DebounceInterval)

	mu.Lock()
	defer mu.Unlock()
	assert.False(t, fired)
}

func TestClosedHostIgnoresTriggers(t *testing.T) {
	h := engine.NewHost(newContext(t))

	calls := 0
	h.OnLoad(func(_ *engine.Context) { calls++ })
	h.OnThemeEvent(func(_ *engine.Context, _ engine.ThemeEvent) { calls++ })

	h.Close()
	h.Ready()
	h.SectionLoad("s")
	h.BlockLoad("b")

	assert.Zero(t, calls)
}

func TestThemeEventCarriesKindAndID(t *testing.T) {
	h := engine.NewHost(newContext(t))
	defer h.Close()

	var got []engine.ThemeEvent
	h.OnThemeEvent(func(_ *engine.Context, ev engine.ThemeEvent) {
		got = append(got, ev)
	})

	h.SectionLoad("hero")
	h.SectionReorder("hero")
	h.BlockLoad("hero-cta")

	require.Len(t, got, 3)
	assert.Equal(t, engine.ThemeEvent{Kind: engine.EventSectionLoad, ID: "hero"}, got[0])
	assert.Equal(t, engine.ThemeEvent{Kind: engine.EventSectionReorder, ID: "hero"}, got[1])
	assert.Equal(t, engine.ThemeEvent{Kind: engine.EventBlockLoad, ID: "hero-cta"}, got[2])
}
