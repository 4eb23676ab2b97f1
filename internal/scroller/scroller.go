// Package scroller rebuilds infinite-scroll lists: it sizes auto-width
// items, promotes lazy images, replaces the duplicated list and grows it
// with decorative clones until the looping animation has enough content.
package scroller

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/freshwaterdesigns/freshwater-cdn/internal/dom"
)

const (
	scrollerSelector = ".js-scroller"
	listSelector     = ".js-scroller-list"

	classAnimated  = "is-animated"
	classDuplicate = "is-duplicate"

	attrImageWidth = "data-imagewidthmd"
)

// DefaultGrowthMultiplier is the safety margin between the duplicated
// list's accumulated width and the scroller's visible width. Eleven
// screens of content keep the loop animation from visibly running out
// at typical speeds.
const DefaultGrowthMultiplier = 11

// Config is read fresh from the list's attributes on every invocation.
// Absent or unparseable values land on 0, which disables the feature.
type Config struct {
	SlidesToShowMd   int
	SlidesToShowSm   int
	SlidesMaxWidthMd int
	SlidesMaxWidthSm int
	AnimationSpeedMd int
	AnimationSpeedSm int

	// Slick is the raw data-slick payload, "" when absent.
	Slick string
}

func ReadConfig(list *goquery.Selection) Config {
	return Config{
		SlidesToShowMd:   dom.IntAttr(list, "data-slidestoshowmd"),
		SlidesToShowSm:   dom.IntAttr(list, "data-slidestoshowsm"),
		SlidesMaxWidthMd: dom.IntAttr(list, "data-slidesmaxwidthmd"),
		SlidesMaxWidthSm: dom.IntAttr(list, "data-slidesmaxwidthsm"),
		AnimationSpeedMd: dom.IntAttr(list, "data-animation-speedmd"),
		AnimationSpeedSm: dom.IntAttr(list, "data-animation-speedsm"),
		Slick:            list.AttrOr("data-slick", ""),
	}
}

// SpeedFor returns the configured animation speed in ms for the
// breakpoint active at the given viewport width, 0 when disabled.
func (c Config) SpeedFor(viewport int) int {
	if dom.Desktop(viewport) {
		return c.AnimationSpeedMd
	}
	return c.AnimationSpeedSm
}

type debugLogger interface {
	Debugf(string, ...any)
}

type Duplicator struct {
	multiplier int
	log        debugLogger
}

func NewDuplicator(multiplier int, log debugLogger) *Duplicator {
	if multiplier <= 0 {
		multiplier = DefaultGrowthMultiplier
	}

	return &Duplicator{
		multiplier: multiplier,
		log:        log,
	}
}

// ProcessAll runs Process on every scroller in the document and reports
// how many scrollers were touched and how many growth clones were added.
func (d *Duplicator) ProcessAll(doc *goquery.Document, viewport int) (scrollers, clones int) {
	doc.Find(scrollerSelector).Each(func(_ int, sc *goquery.Selection) {
		scrollers++
		clones += d.Process(sc, viewport)
	})

	return scrollers, clones
}

// Process rebuilds one scroller for the given viewport width. Each run is
// complete and self-correcting: stale duplicated state is removed before
// the new duplicate is built, so repeated runs leave exactly one
// duplicate list per scroller. Returns the number of growth clones added.
func (d *Duplicator) Process(scroller *goquery.Selection, viewport int) int {
	list := scroller.ChildrenFiltered(listSelector + ":not(." + classDuplicate + ")").First()
	if list.Length() == 0 {
		return 0
	}

	items := list.ChildrenFiltered("li")
	if items.Length() == 0 {
		return 0
	}

	cfg := ReadConfig(list)

	d.autoWidth(cfg, items, viewport)
	promoteLazyImages(items)

	scroller.Find("." + classDuplicate).Remove()
	dup := list.Clone()
	dup.RemoveClass(classAnimated)
	dup.AddClass(classDuplicate)
	list.AddClass(classAnimated)
	scroller.AppendSelection(dup)

	speed := cfg.SpeedFor(viewport)
	if speed <= 0 || !animationAllowed(cfg.Slick) {
		return 0
	}

	dom.SetStyle(list, "animation-duration", fmt.Sprintf("%dms", speed))

	visible := dom.VisibleWidth(scroller, viewport)
	appended := grow(items, dup, d.multiplier*visible, func(item *goquery.Selection) int {
		return itemWidth(cfg, item, viewport, visible)
	})

	if d.log != nil {
		d.log.Debugf("scroller grown: %d clones for %dpx visible width (speed %dms)", appended, visible, speed)
	}

	return appended
}

// autoWidth sizes items from their declared image width when the active
// breakpoint has no fixed slide count. The mobile pass also drops the
// image's lazy-loading hint (mobile browsers mis-render lazy images
// during continuous scroll).
func (d *Duplicator) autoWidth(cfg Config, items *goquery.Selection, viewport int) {
	desktop := dom.Desktop(viewport)

	factor := 0
	switch {
	case desktop && cfg.SlidesToShowMd == 0:
		factor = cfg.SlidesMaxWidthMd
	case !desktop && cfg.SlidesToShowSm == 0:
		factor = cfg.SlidesMaxWidthSm
	}
	if factor == 0 {
		return
	}

	items.Each(func(_ int, item *goquery.Selection) {
		img := item.Find("img").First()
		if !desktop {
			img.RemoveAttr("loading")
		}

		w := dom.IntAttr(item, attrImageWidth)
		if w == 0 {
			return
		}

		dom.SetStylePx(item, "width", factor*w)
		dom.SetStyle(img, "width", "100%")
	})
}

// promoteLazyImages copies each image's placeholder source into src.
// Images with a resolved src are left alone, so re-runs are no-ops.
func promoteLazyImages(items *goquery.Selection) {
	items.Find("img").Each(func(_ int, img *goquery.Selection) {
		if src, ok := img.Attr("src"); ok && strings.TrimSpace(src) != "" {
			return
		}

		placeholder := strings.TrimSpace(img.AttrOr("data-src", ""))
		if placeholder == "" {
			return
		}

		img.SetAttr("src", placeholder)
	})
}

// itemWidth is the deterministic stand-in for the browser's rendered
// width: inline pixel width first, then the declared image width, then
// an even split of the visible width across the configured slide count.
func itemWidth(cfg Config, item *goquery.Selection, viewport, visible int) int {
	if w, ok := dom.StylePx(item, "width"); ok {
		return w
	}

	if w := dom.IntAttr(item, attrImageWidth); w > 0 {
		return w
	}

	show := cfg.SlidesToShowMd
	if !dom.Desktop(viewport) {
		show = cfg.SlidesToShowSm
	}
	if show > 0 {
		return visible / show
	}

	return 0
}
