package dom

import "github.com/PuerkitoBio/goquery"

// MobileBreakpoint is the viewport width, in px, at which the theme
// switches between its small and medium layouts.
const MobileBreakpoint = 768

// Desktop reports whether a viewport width falls on the medium-or-larger
// side of the breakpoint.
func Desktop(viewportWidth int) bool {
	return viewportWidth >= MobileBreakpoint
}

// VisibleWidth resolves the rendered width of a block container: an
// inline pixel width wins, otherwise the container spans the viewport.
func VisibleWidth(s *goquery.Selection, viewportWidth int) int {
	if w, ok := StylePx(s, "width"); ok && w > 0 {
		return w
	}

	return viewportWidth
}
