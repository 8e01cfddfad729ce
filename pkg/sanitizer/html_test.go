package sanitizer_test

import (
	"testing"

	"github.com/microcosm-cc/bluemonday"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formpage/pkg/sanitizer"
)

func TestStrip(t *testing.T) {
	t.Parallel()

	require.Equal(t, "hello", sanitizer.Strip("<b>hello</b>"))
	require.Equal(t, "", sanitizer.Strip("<script>alert(1)</script>"))
	require.Equal(t, "plain", sanitizer.Strip("plain"))
}

func TestRichText(t *testing.T) {
	t.Parallel()

	require.Equal(t, "<strong>hi</strong>", sanitizer.RichText("<strong>hi</strong>"))
	require.NotContains(t, sanitizer.RichText(`<p onclick="evil()">x</p>`), "onclick")
	require.NotContains(t, sanitizer.RichText(`<a href="javascript:evil()">x</a>`), "javascript")
}

func TestCustom(t *testing.T) {
	t.Parallel()

	require.Equal(t, "<i>x</i>", sanitizer.Custom("<i>x</i>", nil))

	policy := bluemonday.NewPolicy()
	policy.AllowElements("i")
	require.Equal(t, "<i>x</i>", sanitizer.Custom("<b><i>x</i></b>", policy))
}
