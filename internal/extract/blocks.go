package extract

import (
	"catalog-crawler/pkg/htmlutil"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

type blockKind int

const (
	blockText blockKind = iota
	blockList
)

// block is either a run of inline text or a whole (possibly nested) list.
type block struct {
	kind  blockKind
	text  string
	items []htmlutil.ListItem
}

// elements that end the current text run
var breakingTags = map[atom.Atom]bool{
	atom.P:          true,
	atom.Div:        true,
	atom.Br:         true,
	atom.H1:         true,
	atom.H2:         true,
	atom.H3:         true,
	atom.H4:         true,
	atom.H5:         true,
	atom.H6:         true,
	atom.Table:      true,
	atom.Tr:         true,
	atom.Section:    true,
	atom.Blockquote: true,
	atom.Hr:         true,
}

type blockBuilder struct {
	blocks []block
	text   strings.Builder
}

func (b *blockBuilder) flush() {
	text := htmlutil.CollapseWhitespace(b.text.String())
	b.text.Reset()
	if text == "" {
		return
	}
	b.blocks = append(b.blocks, block{kind: blockText, text: text})
}

func (b *blockBuilder) walk(node *html.Node) {
	switch node.Type {
	case html.TextNode:
		b.text.WriteString(node.Data)
		return
	case html.CommentNode:
		return
	case html.ElementNode:
		if node.DataAtom == atom.Ul || node.DataAtom == atom.Ol {
			b.flush()
			b.blocks = append(b.blocks, block{
				kind:  blockList,
				items: slices.Collect(htmlutil.ItemsOf(goquery.NewDocumentFromNode(node).Selection)),
			})
			return
		}
		if node.DataAtom == atom.Script || node.DataAtom == atom.Style {
			return
		}
	}

	breaking := node.Type == html.ElementNode && breakingTags[node.DataAtom]
	if breaking {
		b.flush()
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		b.walk(child)
	}
	if breaking {
		b.flush()
	}
}

// parseBlocks flattens a fragment into text runs and lists in document order.
func parseBlocks(fragment string) []block {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return nil
	}
	b := &blockBuilder{}
	for _, node := range doc.Find("body").Nodes {
		b.walk(node)
	}
	b.flush()
	return b.blocks
}

func (b block) isList() bool {
	return b.kind == blockList
}

func countLists(blocks []block) int {
	n := 0
	for _, b := range blocks {
		if b.isList() {
			n++
		}
	}
	return n
}
