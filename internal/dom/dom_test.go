package dom_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshwaterdesigns/freshwater-cdn/internal/dom"
)

func parse(t *testing.T, markup string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	require.NoError(t, err)
	return doc
}

func TestIntAttr(t *testing.T) {
	doc := parse(t, `<ul id="l"
		data-slidestoshowmd="4"
		data-slidesmaxwidthmd="12.8"
		data-animation-speedmd="oops"
		data-animation-speedsm="-3"></ul>`)
	list := doc.Find("#l")

	assert.Equal(t, 4, dom.IntAttr(list, "data-slidestoshowmd"))
	assert.Equal(t, 12, dom.IntAttr(list, "data-slidesmaxwidthmd"), "fractional px truncate")
	assert.Equal(t, 0, dom.IntAttr(list, "data-animation-speedmd"), "garbage reads as disabled")
	assert.Equal(t, 0, dom.IntAttr(list, "data-animation-speedsm"), "negative reads as disabled")
	assert.Equal(t, 0, dom.IntAttr(list, "data-missing"))
	assert.Equal(t, 7, dom.IntAttrOr(list, "data-missing", 7))
}

func TestIntAttrLowercasesSourceCasing(t *testing.T) {
	// The parser canonicalizes attribute names, so the theme sources'
	// camelCase spelling and its lowercase twin land on the same key.
	doc := parse(t, `<li id="a" data-imageWidthMd="50"></li>`)
	assert.Equal(t, 50, dom.IntAttr(doc.Find("#a"), "data-imagewidthmd"))
}

func TestStylePx(t *testing.T) {
	doc := parse(t, `<div id="a" style="color: red; width: 320px"></div>
		<div id="b" style="width: 50%"></div>
		<div id="c"></div>`)

	w, ok := dom.StylePx(doc.Find("#a"), "width")
	assert.True(t, ok)
	assert.Equal(t, 320, w)

	_, ok = dom.StylePx(doc.Find("#b"), "width")
	assert.False(t, ok, "percent widths are not pixel widths")

	_, ok = dom.StylePx(doc.Find("#c"), "width")
	assert.False(t, ok)
}

func TestSetStyleMergesDeclarations(t *testing.T) {
	doc := parse(t, `<li id="a" style="color: red; width: 10px"></li>`)
	item := doc.Find("#a")

	dom.SetStylePx(item, "width", 500)
	style, _ := item.Attr("style")
	assert.Contains(t, style, "width: 500px")
	assert.Contains(t, style, "color: red")
	assert.NotContains(t, style, "10px")

	// Repeating the write is a no-op.
	dom.SetStylePx(item, "width", 500)
	again, _ := item.Attr("style")
	assert.Equal(t, style, again)
}

func TestVisibleWidth(t *testing.T) {
	doc := parse(t, `<div id="sized" style="width: 900px"></div><div id="fluid"></div>`)

	assert.Equal(t, 900, dom.VisibleWidth(doc.Find("#sized"), 1280))
	assert.Equal(t, 1280, dom.VisibleWidth(doc.Find("#fluid"), 1280))
}

func TestRenderFragmentDropsScaffolding(t *testing.T) {
	doc := parse(t, `<section class="hero"><p>hi</p></section>`)

	var buf bytes.Buffer
	require.NoError(t, dom.RenderFragment(&buf, doc))

	out := buf.String()
	assert.Contains(t, out, `<section class="hero">`)
	assert.NotContains(t, out, "<html")
	assert.NotContains(t, out, "<body")
}

func TestLooksLikeDocument(t *testing.T) {
	assert.True(t, dom.LooksLikeDocument("<!DOCTYPE html><html><body></body></html>"))
	assert.True(t, dom.LooksLikeDocument("\n <HTML lang=\"en\">"))
	assert.False(t, dom.LooksLikeDocument(`<section class="hero"></section>`))
}
