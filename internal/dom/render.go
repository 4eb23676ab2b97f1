package dom

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Render serializes the whole document, doctype included.
func Render(w io.Writer, doc *goquery.Document) error {
	if len(doc.Nodes) == 0 {
		return nil
	}

	return html.Render(w, doc.Nodes[0])
}

// RenderFragment serializes only the children of <body>. Section files
// are fragments; parsing wraps them in html/head/body scaffolding that
// must not leak into the rendered output.
func RenderFragment(w io.Writer, doc *goquery.Document) error {
	body := doc.Find("body").First()
	if body.Length() == 0 {
		return Render(w, doc)
	}

	for c := body.Nodes[0].FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(w, c); err != nil {
			return err
		}
	}

	return nil
}

// LooksLikeDocument reports whether markup is a complete HTML document
// rather than a section fragment.
func LooksLikeDocument(markup string) bool {
	head := strings.ToLower(markup)
	if len(head) > 1024 {
		head = head[:1024]
	}

	return strings.Contains(head, "<!doctype") || strings.Contains(head, "<html")
}
