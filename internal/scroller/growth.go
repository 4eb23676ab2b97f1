package scroller

import "github.com/PuerkitoBio/goquery"

// grow appends decorative clones of the source items to dup, in source
// order, cyclically, until the accumulated width of the appended clones
// reaches target. It stops at the first clone that crosses the target,
// so the overshoot stays below one item width. A full pass that adds no
// width bails out: all-zero-width items would otherwise spin forever.
func grow(items, dup *goquery.Selection, target int, width func(*goquery.Selection) int) int {
	if items.Length() == 0 || target <= 0 {
		return 0
	}

	appended := 0
	accumulated := 0

	for accumulated < target {
		before := accumulated

		for i := 0; i < items.Length() && accumulated < target; i++ {
			item := items.Eq(i)

			clone := item.Clone()
			clone.SetAttr("aria-hidden", "true")
			dup.AppendSelection(clone)

			accumulated += width(item)
			appended++
		}

		if accumulated == before {
			break
		}
	}

	return appended
}
