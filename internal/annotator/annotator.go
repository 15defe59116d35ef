// Package annotator assigns and strips the transient data-node-id addressing
// scheme the rest of the pipeline cites (spec.md §4.1).
package annotator

import (
	"bytes"
	"strconv"

	"golang.org/x/net/html"
)

// NodeIDAttr is the attribute name the annotator writes and the mutator
// later reads.
const NodeIDAttr = "data-node-id"

// Result is the output of Assign.
type Result struct {
	HTML      string
	NodeCount int
}

// Assign parses src, writes a sequential zero-based data-node-id onto every
// element node in document order (depth-first pre-order; text, comment, and
// doctype nodes are skipped), and reserializes. Script and style elements are
// annotated like any other element — they are frequent mutation targets.
func Assign(src string) (Result, error) {
	doc, err := html.Parse(bytes.NewReader([]byte(src)))
	if err != nil {
		return Result{}, err
	}

	count := 0
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			setAttr(n, NodeIDAttr, strconv.Itoa(count))
			count++
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return Result{}, err
	}
	return Result{HTML: buf.String(), NodeCount: count}, nil
}

// Strip parses src and removes every data-node-id attribute, returning the
// reserialized document. Invariant 1 (spec.md §3): after Strip, no
// data-node-id attribute remains anywhere.
func Strip(src string) (string, error) {
	doc, err := html.Parse(bytes.NewReader([]byte(src)))
	if err != nil {
		return "", err
	}

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			removeAttr(n, NodeIDAttr)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// setAttr sets (or overwrites) an attribute on an element node.
func setAttr(n *html.Node, key, value string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: value})
}

// removeAttr removes an attribute from an element node, if present.
func removeAttr(n *html.Node, key string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return
		}
	}
}
