package htmlutil

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

// Node is the small slice of a markup tree that scrapers walk: lookups by
// selector or class name, ordered children, parent and text content.
type Node interface {
	// Find returns the descendants matching a css selector in document order.
	Find(selector string) []Node
	// FindClass returns the descendants tagged with `class` in document order.
	FindClass(class string) []Node
	// Children returns element and text children in order, skipping comments
	// and whitespace-only text.
	Children() []Node
	// Parent returns nil for the root.
	Parent() Node
	Text() string
	Attr(name string) (string, bool)
}

// ParseDocument parses an html document and returns its root node.
func ParseDocument(contents string) (Node, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(contents))
	if err != nil {
		return nil, err
	}
	return selectionNode{sel: doc.Selection}, nil
}

// FromSelection wraps the first node of a goquery selection, it returns nil
// if the selection is empty.
func FromSelection(sel *goquery.Selection) Node {
	if sel == nil || sel.Length() == 0 {
		return nil
	}
	return selectionNode{sel: sel.First()}
}

// First returns the first match of `selector` under `n` or nil.
func First(n Node, selector string) Node {
	matches := n.Find(selector)
	if len(matches) == 0 {
		return nil
	}
	return matches[0]
}

type selectionNode struct {
	sel *goquery.Selection
}

func wrapAll(sel *goquery.Selection) []Node {
	out := make([]Node, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		out = append(out, selectionNode{sel: s})
	})
	return out
}

func (n selectionNode) Find(selector string) []Node {
	matcher, err := cascadia.Compile(selector)
	if err != nil {
		return nil
	}
	return wrapAll(n.sel.FindMatcher(matcher))
}

func (n selectionNode) FindClass(class string) []Node {
	return n.Find("." + class)
}

func (n selectionNode) Children() []Node {
	var out []Node
	n.sel.Contents().Each(func(_ int, s *goquery.Selection) {
		node := s.Get(0)
		switch node.Type {
		case html.ElementNode:
		case html.TextNode:
			if strings.TrimSpace(node.Data) == "" {
				return
			}
		default:
			return
		}
		out = append(out, selectionNode{sel: s})
	})
	return out
}

func (n selectionNode) Parent() Node {
	return FromSelection(n.sel.Parent())
}

func (n selectionNode) Text() string {
	return GetText(n.sel.Get(0))
}

func (n selectionNode) Attr(name string) (string, bool) {
	return n.sel.Attr(name)
}
