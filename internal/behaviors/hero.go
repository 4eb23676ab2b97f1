package behaviors

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"github.com/freshwaterdesigns/freshwater-cdn/internal/dom"
	"github.com/freshwaterdesigns/freshwater-cdn/internal/engine"
)

// Hero positions hero boxes from their declared percentage offsets.
// Missing offsets center the box.
type Hero struct{}

func (Hero) Name() string { return "hero" }

func (Hero) Apply(ctx *engine.Context) int {
	touched := 0

	ctx.Doc.Find(".js-hero-box").Each(func(_ int, box *goquery.Selection) {
		x := dom.IntAttrOr(box, "data-offset-x", 50)
		y := dom.IntAttrOr(box, "data-offset-y", 50)

		dom.SetStyle(box, "left", fmt.Sprintf("%d%%", x))
		dom.SetStyle(box, "top", fmt.Sprintf("%d%%", y))
		touched++
	})

	return touched
}
