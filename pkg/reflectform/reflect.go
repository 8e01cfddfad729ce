package reflectform

import (
	"slices"

	"github.com/dmitrymomot/formpage/pkg/formbody"
	"github.com/dmitrymomot/formpage/pkg/htmltree"
)

// Authoring-time props consumed by the reflection pass. They never appear in
// serialized output.
const (
	// MarkerProp opts a single node in or out of reflection, overriding the
	// tree-wide default policy.
	MarkerProp = "data-reflect"

	// DefaultValueProp declares the value (or checked state) a control takes
	// when nothing else sets one, covering the first GET render.
	DefaultValueProp = "defaultValue"
)

// Options configures one reflection pass.
type Options struct {
	// IgnoreFields lists field names that are never reflected.
	IgnoreFields []string

	// NoReflectByDefault inverts the tree-wide policy: nodes reflect only
	// when they opt in via MarkerProp. When false, every named control
	// reflects unless it opts out with MarkerProp set to false.
	NoReflectByDefault bool
}

// Reflect walks the tree depth-first and produces a new, structurally
// identical tree whose form controls carry the previously submitted values
// and checked states. The input tree is never mutated.
//
// An explicit value (or checked) prop always wins; reflection and default
// values only fill props that are still unset. Repeated field names consume
// sequence-valued submissions positionally, so dynamically repeated form rows
// re-render naturally. Reflecting an already-reflected tree is a no-op.
func Reflect(root *htmltree.Node, body formbody.Values, opts Options) *htmltree.Node {
	if root == nil {
		return nil
	}
	w := &walker{body: body, opts: opts, consumed: map[string]int{}}
	return w.node(root)
}

type walker struct {
	body     formbody.Values
	opts     Options
	consumed map[string]int
}

func (w *walker) node(n *htmltree.Node) *htmltree.Node {
	out := n.Clone()

	// The positional cursor advances for every named node, reflected or not,
	// so sibling controls sharing a name stay aligned with the submission.
	submitted, ok := w.take(out.PropString("name"))

	if w.shouldReflect(out) && out.Prop("value") == nil {
		applySubmitted(out, submitted, ok)
	}
	applyDefault(out)

	delete(out.Props, MarkerProp)
	delete(out.Props, DefaultValueProp)

	for i, child := range out.Children {
		if cn, isNode := child.(*htmltree.Node); isNode && cn != nil {
			out.Children[i] = w.node(cn)
		}
	}
	return out
}

// take consumes the next positional value for the field.
func (w *walker) take(name string) (string, bool) {
	if name == "" || w.body == nil || !w.body.Has(name) {
		return "", false
	}
	idx := w.consumed[name]
	w.consumed[name]++
	return w.body.At(name, idx)
}

func (w *walker) shouldReflect(n *htmltree.Node) bool {
	name := n.PropString("name")
	if name != "" && slices.Contains(w.opts.IgnoreFields, name) {
		return false
	}

	marker, present := n.Props[MarkerProp]
	if w.opts.NoReflectByDefault {
		return present && isTruthy(marker)
	}
	return !present || !isFalsy(marker)
}

// applySubmitted writes the submitted value into the control. Checkable
// controls compare the submission against their declared value (defaulting to
// "on") and record the outcome even for absent fields; other controls only
// take a value that was actually submitted.
func applySubmitted(n *htmltree.Node, submitted string, ok bool) {
	switch n.PropString("type") {
	case "checkbox", "radio":
		if n.Prop("checked") != nil {
			return
		}
		declared := n.PropString("value")
		if declared == "" {
			declared = "on"
		}
		n.Props["checked"] = ok && submitted == declared
	default:
		if ok {
			n.Props["value"] = submitted
		}
	}
}

// applyDefault fills the declared default when nothing else set a value.
func applyDefault(n *htmltree.Node) {
	def := n.Prop(DefaultValueProp)
	if def == nil {
		return
	}
	switch n.PropString("type") {
	case "checkbox", "radio":
		if n.Prop("checked") == nil {
			n.Props["checked"] = def
		}
	default:
		if n.Prop("value") == nil {
			n.Props["value"] = def
		}
	}
}

func isTruthy(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		return val != "" && val != "false"
	case nil:
		return false
	default:
		return true
	}
}

func isFalsy(v any) bool {
	switch val := v.(type) {
	case bool:
		return !val
	case string:
		return val == "false"
	default:
		return false
	}
}
