package behaviors

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/freshwaterdesigns/freshwater-cdn/internal/engine"
)

// ExternalLinks hardens offsite anchors: absolute http(s) links whose
// host is not the shop's own get target="_blank" and rel="noopener".
type ExternalLinks struct{}

func (ExternalLinks) Name() string { return "external-links" }

func (ExternalLinks) Apply(ctx *engine.Context) int {
	touched := 0

	ctx.Doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if !offsite(href, ctx.ShopHost) {
			return
		}

		a.SetAttr("target", "_blank")
		addRelToken(a, "noopener")
		touched++
	})

	return touched
}

// offsite reports whether href points at a host other than shopHost.
// Scheme-relative URLs count as absolute; links without a host
// (relative paths, fragments, mailto, tel) never count.
func offsite(href, shopHost string) bool {
	u, err := url.Parse(strings.TrimSpace(href))
	if err != nil || u.Host == "" {
		return false
	}

	switch u.Scheme {
	case "", "http", "https":
	default:
		return false
	}

	return !strings.EqualFold(u.Host, shopHost)
}

func addRelToken(a *goquery.Selection, token string) {
	rel := strings.Fields(a.AttrOr("rel", ""))
	for _, t := range rel {
		if strings.EqualFold(t, token) {
			return
		}
	}

	rel = append(rel, token)
	a.SetAttr("rel", strings.Join(rel, " "))
}
