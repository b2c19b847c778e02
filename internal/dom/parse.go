package dom

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// ParseString parses HTML markup and returns the <body> element of the
// resulting tree. Text nodes, comments and doctypes are discarded: the
// capture pipeline only inspects element structure and attributes.
func ParseString(markup string) (*Element, error) {
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parse markup: %w", err)
	}

	body := findNode(doc, "body")
	if body == nil {
		return nil, fmt.Errorf("parse markup: no body element")
	}

	return convert(body), nil
}

// ParseFragment parses markup and returns the top-level elements it
// contains, detached and ready to be appended into an existing tree.
// Used to model dynamically inserted subtrees.
func ParseFragment(markup string) ([]*Element, error) {
	body, err := ParseString(markup)
	if err != nil {
		return nil, err
	}

	children := body.Children()
	for _, c := range children {
		c.parent = nil
	}
	body.children = nil
	return children, nil
}

// findNode returns the first node with the given tag in a html.Node tree.
func findNode(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findNode(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// convert maps an html.Node element subtree onto the dom Element model.
func convert(n *html.Node) *Element {
	attrs := make(map[string]string, len(n.Attr))
	for _, a := range n.Attr {
		attrs[strings.ToLower(a.Key)] = a.Val
	}

	el := NewElement(n.Data, attrs)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		el.appendChild(convert(c))
	}
	return el
}
