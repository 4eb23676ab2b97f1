package dom

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var rePxValue = regexp.MustCompile(`^\s*(\d+(?:\.\d+)?)\s*px\s*$`)

// StylePx extracts a pixel value for one property from the element's
// inline style. Only "<n>px" values count; percentages, keywords and
// calc() expressions report false.
func StylePx(s *goquery.Selection, prop string) (int, bool) {
	style, ok := s.Attr("style")
	if !ok {
		return 0, false
	}

	for _, decl := range strings.Split(style, ";") {
		name, value, found := strings.Cut(decl, ":")
		if !found || !strings.EqualFold(strings.TrimSpace(name), prop) {
			continue
		}
		if m := rePxValue.FindStringSubmatch(value); m != nil {
			f, err := strconv.ParseFloat(m[1], 64)
			if err == nil {
				return int(f), true
			}
		}

		return 0, false
	}

	return 0, false
}

// SetStyle writes one declaration into the element's inline style,
// replacing an existing declaration for the same property and keeping
// every other declaration in place.
func SetStyle(s *goquery.Selection, prop, value string) {
	style, _ := s.Attr("style")
	s.SetAttr("style", upsertDecl(style, prop, value))
}

// SetStylePx is SetStyle for pixel lengths.
func SetStylePx(s *goquery.Selection, prop string, px int) {
	SetStyle(s, prop, fmt.Sprintf("%dpx", px))
}

func upsertDecl(style, prop, value string) string {
	out := make([]string, 0, 4)
	replaced := false

	for _, decl := range strings.Split(style, ";") {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}

		name, _, found := strings.Cut(decl, ":")
		if found && strings.EqualFold(strings.TrimSpace(name), prop) {
			if !replaced {
				out = append(out, prop+": "+value)
				replaced = true
			}
			continue
		}

		out = append(out, decl)
	}

	if !replaced {
		out = append(out, prop+": "+value)
	}

	return strings.Join(out, "; ")
}
