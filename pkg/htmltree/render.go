package htmltree

import (
	"context"
	"fmt"
	"html"
	"io"
	"slices"
	"strings"
)

// voidElements have no closing tag and may not contain children.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// Render serializes the tree as HTML. It implements the same contract as
// templ.Component, so a fully materialized tree can be handed to anything
// that renders components.
//
// Attributes are written in lexicographic order for deterministic output.
// Boolean props render as bare attributes when true and are omitted when
// false or nil. All text and attribute values are HTML-escaped.
func (n *Node) Render(_ context.Context, w io.Writer) error {
	return n.render(w)
}

func (n *Node) render(w io.Writer) error {
	if _, err := io.WriteString(w, "<"+n.Tag); err != nil {
		return err
	}
	if err := n.renderProps(w); err != nil {
		return err
	}
	if voidElements[n.Tag] {
		_, err := io.WriteString(w, "/>")
		return err
	}
	if _, err := io.WriteString(w, ">"); err != nil {
		return err
	}
	for _, child := range n.Children {
		if err := renderChild(w, child); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</"+n.Tag+">")
	return err
}

func (n *Node) renderProps(w io.Writer) error {
	if len(n.Props) == 0 {
		return nil
	}
	keys := make([]string, 0, len(n.Props))
	for k := range n.Props {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var sb strings.Builder
	for _, k := range keys {
		switch v := n.Props[k].(type) {
		case nil:
		case bool:
			if v {
				sb.WriteString(" " + k)
			}
		case string:
			sb.WriteString(" " + k + `="` + html.EscapeString(v) + `"`)
		default:
			sb.WriteString(" " + k + `="` + html.EscapeString(fmt.Sprint(v)) + `"`)
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func renderChild(w io.Writer, child any) error {
	switch v := child.(type) {
	case nil:
		return nil
	case *Node:
		if v == nil {
			return nil
		}
		return v.render(w)
	case string:
		_, err := io.WriteString(w, html.EscapeString(v))
		return err
	default:
		_, err := io.WriteString(w, html.EscapeString(fmt.Sprint(v)))
		return err
	}
}
