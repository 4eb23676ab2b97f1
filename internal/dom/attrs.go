package dom

import (
	"math"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// IntAttr reads a numeric attribute from the first element of s.
// Missing, unparseable or negative values all collapse to 0, which every
// caller treats as "feature disabled". NaN never leaks into the width
// arithmetic.
func IntAttr(s *goquery.Selection, name string) int {
	return IntAttrOr(s, name, 0)
}

// IntAttrOr is IntAttr with an explicit fallback.
func IntAttrOr(s *goquery.Selection, name string, def int) int {
	v, ok := s.Attr(name)
	if !ok {
		return def
	}

	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return def
	}

	return int(f)
}

// HasAttr reports whether the first element of s carries the attribute,
// regardless of its value.
func HasAttr(s *goquery.Selection, name string) bool {
	_, ok := s.Attr(name)
	return ok
}
