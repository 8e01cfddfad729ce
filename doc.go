// Package formpage is a page lifecycle engine for server-rendered,
// form-driven web pages.
//
// A page is constructed fresh for every request and walked through a fixed
// lifecycle: Init, middleware setup, chain execution, Render, and Finish.
// The middleware chain carries body decoding, sessions, and CSRF protection;
// click actions dispatch on the submitted button; rendered element trees
// reflect the submitted form values back into their controls, so a failed
// validation re-renders the form exactly as the visitor filled it.
//
// A minimal page:
//
//	type indexPage struct {
//	    *formpage.Base
//	}
//
//	func NewIndex() formpage.Page {
//	    return &indexPage{Base: formpage.NewBase()}
//	}
//
//	func (p *indexPage) Middleware(c formpage.Context, ch *formpage.Chain) error {
//	    formpage.Standard(p.Base, ch)
//	    return p.ConnectClick("greet", func(c formpage.Context) error {
//	        name, err := p.Field(c, "name")
//	        if err != nil {
//	            return err
//	        }
//	        return c.SetSessionValue("name", name)
//	    })
//	}
//
//	func (p *indexPage) Render(c formpage.Context) (any, error) {
//	    return formpage.Document("Hello",
//	        formpage.PageForm(c, p.Base,
//	            htmltree.El("input", htmltree.Props{"type": "text", "name": "name", "data-reflect": true}),
//	            formpage.ClickButton("greet", "Greet"),
//	        ),
//	    ), nil
//	}
//
//	func main() {
//	    app := formpage.New(
//	        formpage.WithSession(session.NewMemoryStore()),
//	        formpage.WithPage("/", NewIndex),
//	    )
//	    app.Run()
//	}
package formpage
