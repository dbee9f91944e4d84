package card

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/hazyhaar/revq/review"
	"github.com/hazyhaar/revq/textblock"
)

// htmlDoc implements Document over a parsed HTML snapshot. Text is
// flattened once per element at build time; script, style, and noscript
// subtrees contribute nothing.
type htmlDoc struct {
	elements []*htmlElement
	anchors  []Element
}

type htmlElement struct {
	parent *htmlElement
	text   string
}

func (e *htmlElement) Text() string { return e.text }

func (e *htmlElement) Parent() Element {
	if e.parent == nil {
		return nil
	}
	return e.parent
}

// ParseHTML parses a serialised DOM snapshot into a Document.
func ParseHTML(r io.Reader) (Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("card: parse html: %w", err)
	}
	return FromNode(root), nil
}

// ParseHTMLString is ParseHTML over an in-memory snapshot.
func ParseHTMLString(s string) (Document, error) {
	return ParseHTML(strings.NewReader(s))
}

// FromNode builds a Document from an already-parsed tree.
func FromNode(root *html.Node) Document {
	doc := &htmlDoc{}

	var build func(n *html.Node, parent *htmlElement)
	build = func(n *html.Node, parent *htmlElement) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Noscript:
				return
			}
			el := &htmlElement{parent: parent, text: flatten(n)}
			doc.elements = append(doc.elements, el)
			if textblock.IsExpandMarker(el.text) {
				doc.anchors = append(doc.anchors, el)
			}
			parent = el
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			build(c, parent)
		}
	}
	build(root, nil)
	doc.anchors = deepestOnly(doc.anchors)

	return doc
}

// deepestOnly drops any anchor that is an ancestor of another anchor, so
// marker wrappers do not multiply candidates for the same card.
func deepestOnly(anchors []Element) []Element {
	ancestors := make(map[Element]bool)
	for _, a := range anchors {
		for p := a.Parent(); p != nil; p = p.Parent() {
			ancestors[p] = true
		}
	}
	kept := anchors[:0]
	for _, a := range anchors {
		if !ancestors[a] {
			kept = append(kept, a)
		}
	}
	return kept
}

func (d *htmlDoc) Anchors() []Element { return d.anchors }

func (d *htmlDoc) Elements() []Element {
	out := make([]Element, len(d.elements))
	for i, el := range d.elements {
		out[i] = el
	}
	return out
}

// flatten collects all descendant text of a node, space-joined and
// whitespace-collapsed, skipping non-content subtrees.
func flatten(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Noscript:
				return
			}
		}
		if n.Type == html.TextNode {
			t := strings.TrimSpace(n.Data)
			if t != "" {
				if sb.Len() > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(t)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return review.CollapseSpace(sb.String())
}
