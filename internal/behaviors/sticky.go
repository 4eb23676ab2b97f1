package behaviors

import (
	"github.com/freshwaterdesigns/freshwater-cdn/internal/dom"
	"github.com/freshwaterdesigns/freshwater-cdn/internal/engine"
)

// StickyHeader marks an opted-in header sticky and pads the body by the
// header's declared height so content does not jump under it.
type StickyHeader struct{}

func (StickyHeader) Name() string { return "sticky-header" }

func (StickyHeader) Apply(ctx *engine.Context) int {
	header := ctx.Doc.Find(".js-header[data-sticky]").First()
	if header.Length() == 0 {
		return 0
	}

	header.AddClass("header--sticky")

	body := ctx.Doc.Find("body").First()
	body.AddClass("has-sticky-header")

	if h := dom.IntAttr(header, "data-header-height"); h > 0 {
		dom.SetStylePx(body, "padding-top", h)
	}

	return 1
}
