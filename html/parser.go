// Package html builds dom documents from HTML source using
// golang.org/x/net/html as the underlying parser implementation.
//
// The tree is populated only through the dom package's public operations,
// so a parsed document obeys the same rules as one built by hand: comments,
// doctypes and other node kinds the dom does not support are skipped.
package html

import (
	"fmt"
	"io"
	"strings"

	"github.com/chrisuehlinger/scriptdom/dom"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Parse parses HTML from a string and returns a new document.
func Parse(htmlContent string) (*dom.Document, error) {
	return ParseReader(strings.NewReader(htmlContent))
}

// ParseReader parses HTML from an io.Reader and returns a new document.
// The html element becomes the document element.
func ParseReader(r io.Reader) (*dom.Document, error) {
	netNode, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	doc := dom.NewDocument()
	for c := netNode.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		root, err := convertElement(doc, c)
		if err != nil {
			return nil, err
		}
		if err := doc.SetDocumentElement(root); err != nil {
			return nil, err
		}
		break
	}
	return doc, nil
}

// ParseFragment parses an HTML fragment in the context of a parent element
// and returns the top-level nodes, owned by doc but not yet inserted.
// A nil context parses the fragment as body content.
func ParseFragment(doc *dom.Document, fragment string, context *dom.Element) ([]*dom.Node, error) {
	return ParseFragmentReader(doc, strings.NewReader(fragment), context)
}

// ParseFragmentReader parses an HTML fragment from a reader.
func ParseFragmentReader(doc *dom.Document, r io.Reader, context *dom.Element) ([]*dom.Node, error) {
	contextNode := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	if context != nil {
		name := strings.ToLower(context.TagName())
		contextNode.Data = name
		contextNode.DataAtom = atom.Lookup([]byte(name))
	}

	netNodes, err := html.ParseFragment(r, contextNode)
	if err != nil {
		return nil, fmt.Errorf("parse html fragment: %w", err)
	}
	var nodes []*dom.Node
	for _, nn := range netNodes {
		node, err := convertNode(doc, nn)
		if err != nil {
			return nil, err
		}
		if node != nil {
			nodes = append(nodes, node)
		}
	}
	return nodes, nil
}

// convertNode converts a golang.org/x/net/html node into a dom node owned
// by doc. It returns nil for node kinds the dom does not hold.
func convertNode(doc *dom.Document, n *html.Node) (*dom.Node, error) {
	switch n.Type {
	case html.TextNode:
		return doc.CreateTextNode(n.Data), nil
	case html.ElementNode:
		el, err := convertElement(doc, n)
		if err != nil {
			return nil, err
		}
		return el.AsNode(), nil
	default:
		return nil, nil
	}
}

func convertElement(doc *dom.Document, n *html.Node) (*dom.Element, error) {
	el, err := doc.CreateElement(n.Data)
	if err != nil {
		return nil, fmt.Errorf("element <%s>: %w", n.Data, err)
	}

	for _, a := range n.Attr {
		key := a.Key
		if a.Namespace != "" {
			key = a.Namespace + ":" + a.Key
		}
		// The first occurrence of a duplicated attribute wins.
		if el.HasAttribute(key) {
			continue
		}
		attr, err := doc.CreateAttribute(key)
		if err != nil {
			// Names the tokenizer accepts but the dom rejects are dropped.
			continue
		}
		attr.SetValue(a.Val)
		if _, err := el.SetAttributeNode(attr); err != nil {
			return nil, fmt.Errorf("element <%s> attribute %q: %w", n.Data, key, err)
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		child, err := convertNode(doc, c)
		if err != nil {
			return nil, err
		}
		if child == nil {
			continue
		}
		if _, err := el.AppendChild(child); err != nil {
			return nil, fmt.Errorf("element <%s>: %w", n.Data, err)
		}
	}
	return el, nil
}
