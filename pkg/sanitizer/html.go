// Package sanitizer strips or constrains HTML in user-submitted values
// before they are validated and reflected back into rendered pages.
package sanitizer

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	stripPolicy    *bluemonday.Policy
	richTextPolicy *bluemonday.Policy
	policiesOnce   sync.Once
)

func policies() {
	policiesOnce.Do(func() {
		stripPolicy = bluemonday.StrictPolicy()

		richTextPolicy = bluemonday.NewPolicy()
		richTextPolicy.AllowStandardURLs()
		richTextPolicy.AllowElements("p", "br", "strong", "b", "em", "i", "ul", "ol", "li", "blockquote", "code")
		richTextPolicy.AllowAttrs("href").OnElements("a")
		richTextPolicy.RequireNoFollowOnLinks(true)
	})
}

// Strip removes all HTML, returning plain text. Use for form field values
// that are stored and reflected back into pages.
func Strip(s string) string {
	policies()
	return stripPolicy.Sanitize(s)
}

// RichText keeps basic formatting tags and strips everything dangerous:
// scripts, event handlers, and javascript: URLs.
func RichText(s string) string {
	policies()
	return richTextPolicy.Sanitize(s)
}

// Custom applies a caller-provided bluemonday policy.
// A nil policy returns the input unchanged.
func Custom(s string, policy *bluemonday.Policy) string {
	if policy == nil {
		return s
	}
	return policy.Sanitize(s)
}
