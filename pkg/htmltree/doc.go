// Package htmltree provides an immutable document tree representation for
// server-rendered pages.
//
// Pages build trees with El and plain values, and the engine serializes them
// to HTML after running rendering-time transforms such as form data
// reflection:
//
//	tree := htmltree.El("div", nil,
//	    htmltree.El("input", htmltree.Props{"type": "text", "name": "email"}),
//	    htmltree.El("button", htmltree.Props{"name": "click", "value": "save"}, "Save"),
//	)
//
// Node implements the templ.Component render contract, so trees compose with
// component-based rendering pipelines.
package htmltree
