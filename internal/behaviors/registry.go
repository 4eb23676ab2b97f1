package behaviors

import (
	"strings"

	"github.com/freshwaterdesigns/freshwater-cdn/internal/engine"
)

// All returns every behavior in canonical application order.
func All() []engine.Behavior {
	return []engine.Behavior{
		Scroller{},
		Accordion{},
		Hero{},
		StickyHeader{},
		ExternalLinks{},
	}
}

// ForNames filters All by the configured behavior names, keeping
// canonical order. Unknown names are ignored.
func ForNames(names []string) []engine.Behavior {
	enabled := make(map[string]bool, len(names))
	for _, n := range names {
		enabled[strings.ToLower(strings.TrimSpace(n))] = true
	}

	var out []engine.Behavior
	for _, b := range All() {
		if enabled[b.Name()] {
			out = append(out, b)
		}
	}

	return out
}
