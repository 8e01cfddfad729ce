package formpage

import (
	"github.com/dmitrymomot/formpage/middlewares"
	"github.com/dmitrymomot/formpage/pkg/htmltree"
)

// Document wraps page content in a full HTML document: html, head with title
// and standard meta tags, and body. The returned tree serializes with a
// DOCTYPE when used as a render result.
func Document(title string, body ...any) *htmltree.Node {
	return htmltree.El("html", htmltree.Props{"lang": "en"},
		htmltree.El("head", nil,
			htmltree.El("meta", htmltree.Props{"charset": "utf-8"}),
			htmltree.El("meta", htmltree.Props{
				"name":    "viewport",
				"content": "width=device-width, initial-scale=1",
			}),
			htmltree.El("title", nil, title),
		),
		htmltree.El("body", nil, body...),
	)
}

// PageForm builds the page's root form: a POST form whose encoding matches
// the page's active body decoders, carrying the request token as a hidden
// field. Controls placed inside reflect submitted values on re-render.
func PageForm(c Context, p *Base, children ...any) *htmltree.Node {
	content := make([]any, 0, len(children)+1)
	if tok := middlewares.CSRFToken(c); tok.Value != "" {
		content = append(content, htmltree.El("input", htmltree.Props{
			"type":  "hidden",
			"name":  tok.Field,
			"value": tok.Value,
		}))
	}
	content = append(content, children...)

	return htmltree.El("form", htmltree.Props{
		"id":      "root",
		"method":  "post",
		"enctype": p.FormEncoding().ContentType(),
	}, content...)
}

// ClickButton builds a submit button that dispatches the named click action.
func ClickButton(name string, label string) *htmltree.Node {
	return htmltree.El("button", htmltree.Props{
		"type":  "submit",
		"name":  "click",
		"value": name,
	}, label)
}
