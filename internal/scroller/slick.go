package scroller

import (
	"encoding/json"
	"html"
	"strings"

	"github.com/freshwaterdesigns/freshwater-cdn/internal/dom"
)

// Themes embed slick slider configuration as JSON in data-slick, usually
// with entity-escaped quotes. A responsive entry with settings "unslick"
// disables the slider on that entry's side of the breakpoint.
type slickConfig struct {
	Responsive []slickBreakpoint `json:"responsive"`
}

type slickBreakpoint struct {
	Breakpoint int             `json:"breakpoint"`
	Settings   json.RawMessage `json:"settings"`
}

func (b slickBreakpoint) unslicked() bool {
	var s string
	if json.Unmarshal(b.Settings, &s) != nil {
		return false
	}

	return s == "unslick"
}

// animationAllowed decides whether the continuous-scroll animation may
// run alongside the slider configuration in raw. The animation and the
// slider must never drive the same list at any breakpoint, so it takes
// the slider being unslicked on both sides. Malformed JSON fails safe
// (no animation). An absent payload means no slider, animation allowed.
func animationAllowed(raw string) bool {
	if strings.TrimSpace(raw) == "" {
		return true
	}

	var sc slickConfig
	if err := json.Unmarshal([]byte(html.UnescapeString(raw)), &sc); err != nil {
		return false
	}

	mdOff, smOff := false, false
	for _, bp := range sc.Responsive {
		if !bp.unslicked() {
			continue
		}

		if bp.Breakpoint >= dom.MobileBreakpoint {
			mdOff = true
		} else {
			smOff = true
		}
	}

	return mdOff && smOff
}
