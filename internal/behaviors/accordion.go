package behaviors

import (
	"strconv"

	"github.com/PuerkitoBio/goquery"

	"github.com/freshwaterdesigns/freshwater-cdn/internal/dom"
	"github.com/freshwaterdesigns/freshwater-cdn/internal/engine"
)

// Accordion prepares accordion initial state: aria-expanded on every
// item, and the first item opened when the container asks for it.
type Accordion struct{}

func (Accordion) Name() string { return "accordion" }

func (Accordion) Apply(ctx *engine.Context) int {
	touched := 0

	ctx.Doc.Find(".js-accordion").Each(func(_ int, acc *goquery.Selection) {
		openFirst := dom.HasAttr(acc, "data-open-first")

		acc.Find(".js-accordion__item").Each(func(i int, item *goquery.Selection) {
			open := openFirst && i == 0
			if open {
				item.AddClass("is-open")
			} else {
				item.RemoveClass("is-open")
			}

			item.SetAttr("aria-expanded", strconv.FormatBool(open))
			touched++
		})
	})

	return touched
}
