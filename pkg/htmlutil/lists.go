package htmlutil

import (
	"bytes"
	"iter"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ListItem is the content of a single <li>, sub-lists nested inside of it are not
// part of its markup, they are yielded as items of their own.
type ListItem struct {
	Markup string
	// Text is Markup after NormalizeMarkup.
	Text string
	// Href is the href of the first anchor in the item, if any.
	Href string
}

// ListItems yields every list item in the fragment in document order. The sequence
// can be ranged over any number of times.
func ListItems(fragment string) iter.Seq[ListItem] {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return func(func(ListItem) bool) {}
	}
	return ItemsOf(doc.Selection)
}

// ItemsOf yields every list item inside the selection in document order.
func ItemsOf(sel *goquery.Selection) iter.Seq[ListItem] {
	return func(yield func(ListItem) bool) {
		for _, node := range sel.Find("li").Nodes {
			if !yield(newListItem(node)) {
				return
			}
		}
	}
}

func isList(node *html.Node) bool {
	return node.Type == html.ElementNode &&
		(node.DataAtom == atom.Ul || node.DataAtom == atom.Ol)
}

func newListItem(li *html.Node) ListItem {
	var markup bytes.Buffer
	href := ""
	for child := li.FirstChild; child != nil; child = child.NextSibling {
		if isList(child) {
			continue
		}
		if href == "" {
			href = firstHref(child)
		}
		html.Render(&markup, child)
	}
	return ListItem{
		Markup: markup.String(),
		Text:   NormalizeMarkup(markup.String()),
		Href:   href,
	}
}

func firstHref(node *html.Node) string {
	if node.Type == html.ElementNode && node.DataAtom == atom.A {
		for _, a := range node.Attr {
			if a.Key == "href" {
				return a.Val
			}
		}
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if isList(child) {
			continue
		}
		if href := firstHref(child); href != "" {
			return href
		}
	}
	return ""
}
