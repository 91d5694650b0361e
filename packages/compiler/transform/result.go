package transform

import (
	"jsxc-go/packages/compiler/output"
	"jsxc-go/packages/compiler/schema"
)

// Declaration is an ordered name→initializer pair referencing a node of the
// cloned template
type Declaration struct {
	Name string
	Init output.Expression
}

// Dynamic is one reactive attribute binding, re-applied inside an effect
// whenever its source changes
type Dynamic struct {
	Ref             string
	Key             string
	Kind            schema.BindingKind
	Value           output.Expression
	IsSVG           bool
	IsCustomElement bool
}

// Result is the DOM intermediate representation produced for one markup node
// and merged upward during the traversal.
type Result struct {
	// Template is the static markup text under construction
	Template string
	// ID is the stable generated reference for the node, assigned lazily
	ID string
	// Declarations reference nested cloned nodes, in walk order
	Declarations []*Declaration
	// Exprs are ordered runtime statements: ref assignments, directive
	// calls, listeners, inserts
	Exprs []output.Expression
	// Dynamics are reactive bindings in source attribute order
	Dynamics []*Dynamic
	// PostExprs run after all dynamics are installed
	PostExprs []output.Expression

	IsSVG            bool
	HasCustomElement bool
	// SkipTemplate marks expression-only results (components, bare
	// expressions) that contribute no markup
	SkipTemplate bool
	// TextOnly marks a result that lowers to a plain string literal
	TextOnly bool
	// Text carries the literal value of a TextOnly result
	Text string
	// NeedsMemo wraps an expression-only result in a memo at the boundary
	NeedsMemo bool
	// ExprDynamic marks an expression-only result whose insertion must be
	// thunked to stay reactive
	ExprDynamic bool
}

// HasRuntimeOps reports whether the result needs an enclosing closure
func (r *Result) HasRuntimeOps() bool {
	return len(r.Declarations) > 0 || len(r.Exprs) > 0 || len(r.Dynamics) > 0 || len(r.PostExprs) > 0
}

// SSRValue is one dynamic hole of an SSR segment sequence
type SSRValue struct {
	Expr output.Expression
	// AttrContext selects attribute-safe escaping without hydration markers
	AttrContext bool
	// SkipEscape emits the value verbatim (innerHTML, helper-escaped values)
	SkipEscape bool
	// HydrationMarker brackets the value with marker comments
	HydrationMarker bool
}

// SSRSegment is either static text or a dynamic value, never both
type SSRSegment struct {
	Text  string
	Value *SSRValue
}

// SSRResult is the ordered (staticText, dynamicValue?) interleaving for one
// top-level boundary
type SSRResult struct {
	Segments []*SSRSegment
	// TextOnly / Text mirror the DOM IR for plain string boundaries
	TextOnly bool
	Text     string
	// Expr is set for expression-only boundaries that bypass the template
	Expr output.Expression
}

// AppendText appends static text, merging adjacent static segments
func (r *SSRResult) AppendText(text string) {
	if text == "" {
		return
	}
	if n := len(r.Segments); n > 0 && r.Segments[n-1].Value == nil {
		r.Segments[n-1].Text += text
		return
	}
	r.Segments = append(r.Segments, &SSRSegment{Text: text})
}

// AppendValue appends a dynamic hole
func (r *SSRResult) AppendValue(value *SSRValue) {
	r.Segments = append(r.Segments, &SSRSegment{Value: value})
}
