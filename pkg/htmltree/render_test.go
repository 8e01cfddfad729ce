package htmltree_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formpage/pkg/htmltree"
)

func renderToString(t *testing.T, n *htmltree.Node) string {
	t.Helper()
	var sb strings.Builder
	require.NoError(t, n.Render(context.Background(), &sb))
	return sb.String()
}

func TestRender(t *testing.T) {
	t.Parallel()

	t.Run("simple element with text", func(t *testing.T) {
		t.Parallel()

		n := htmltree.El("p", nil, "hello")
		require.Equal(t, "<p>hello</p>", renderToString(t, n))
	})

	t.Run("attributes in lexicographic order", func(t *testing.T) {
		t.Parallel()

		n := htmltree.El("input", htmltree.Props{
			"type": "text",
			"name": "email",
			"id":   "email",
		})
		require.Equal(t, `<input id="email" name="email" type="text"/>`, renderToString(t, n))
	})

	t.Run("void elements have no closing tag", func(t *testing.T) {
		t.Parallel()

		n := htmltree.El("br", nil)
		require.Equal(t, "<br/>", renderToString(t, n))
	})

	t.Run("bool props render bare when true", func(t *testing.T) {
		t.Parallel()

		n := htmltree.El("input", htmltree.Props{"type": "checkbox", "checked": true})
		require.Equal(t, `<input checked type="checkbox"/>`, renderToString(t, n))
	})

	t.Run("bool props omitted when false", func(t *testing.T) {
		t.Parallel()

		n := htmltree.El("input", htmltree.Props{"type": "checkbox", "checked": false})
		require.Equal(t, `<input type="checkbox"/>`, renderToString(t, n))
	})

	t.Run("nil props omitted", func(t *testing.T) {
		t.Parallel()

		n := htmltree.El("input", htmltree.Props{"type": "text", "value": nil})
		require.Equal(t, `<input type="text"/>`, renderToString(t, n))
	})

	t.Run("text and attribute values escaped", func(t *testing.T) {
		t.Parallel()

		n := htmltree.El("p", htmltree.Props{"title": `a"b`}, "<script>")
		require.Equal(t, `<p title="a&#34;b">&lt;script&gt;</p>`, renderToString(t, n))
	})

	t.Run("nested children", func(t *testing.T) {
		t.Parallel()

		n := htmltree.El("div", nil,
			htmltree.El("span", nil, "a"),
			"b",
			42,
		)
		require.Equal(t, "<div><span>a</span>b42</div>", renderToString(t, n))
	})

	t.Run("nil children skipped", func(t *testing.T) {
		t.Parallel()

		var missing *htmltree.Node
		n := htmltree.El("div", nil, nil, missing, "x")
		require.Equal(t, "<div>x</div>", renderToString(t, n))
	})
}

func TestClone(t *testing.T) {
	t.Parallel()

	t.Run("prop changes do not leak back", func(t *testing.T) {
		t.Parallel()

		orig := htmltree.El("input", htmltree.Props{"name": "a"})
		cp := orig.Clone()
		cp.Props["value"] = "changed"

		require.Nil(t, orig.Prop("value"))
		require.Equal(t, "changed", cp.PropString("value"))
	})

	t.Run("child slice is independent", func(t *testing.T) {
		t.Parallel()

		orig := htmltree.El("div", nil, "a")
		cp := orig.Clone()
		cp.Children[0] = "b"

		require.Equal(t, "a", orig.Children[0])
	})
}

func TestPropString(t *testing.T) {
	t.Parallel()

	n := htmltree.El("input", htmltree.Props{"name": "field", "tabindex": 3})
	require.Equal(t, "field", n.PropString("name"))
	require.Equal(t, "", n.PropString("tabindex"), "non-string props read as empty")
	require.Equal(t, "", n.PropString("missing"))
}
