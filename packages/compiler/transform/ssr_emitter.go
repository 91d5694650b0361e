package transform

import (
	"strings"

	"jsxc-go/packages/compiler/jsx"
	"jsxc-go/packages/compiler/output"
	"jsxc-go/packages/compiler/schema"
)

// hydration marker comments bracketing dynamic text segments
const (
	hydrationMarkerOpen  = "<!--#-->"
	hydrationMarkerClose = "<!--/-->"
)

// transformBoundarySSR lowers one top-level boundary into a server-rendering
// expression: an escaped tagged-template for markup, a plain literal for
// text, the bare expression otherwise. SSR output hoists no templates.
func (t *Transformer) transformBoundarySSR(node jsx.Node) output.Expression {
	switch n := node.(type) {
	case *jsx.Text:
		return output.Literal(n.Value)
	case *jsx.ExpressionContainer:
		return t.conv.Convert(n.Expression)
	case *jsx.Fragment:
		children := flattenChildren(n.Children)
		exprs := make([]output.Expression, 0, len(children))
		for _, child := range children {
			exprs = append(exprs, t.transformBoundarySSR(child))
		}
		if len(exprs) == 1 {
			return exprs[0]
		}
		return output.NewLiteralArrayExpr(exprs)
	case *jsx.Element:
		if n.IsComponent() {
			return combineExprs(t.transformComponent(n).Exprs)
		}
		result := &SSRResult{}
		t.ssrWalkElement(result, n, true)
		return t.emitSSRResult(result)
	}
	return output.NewRawLiteralExpr("undefined")
}

// emitSSRResult renders the segment sequence as one ssr tagged template,
// applying the escape policy each hole recorded
func (t *Transformer) emitSSRResult(r *SSRResult) output.Expression {
	tag := output.Variable(t.Ctx.Helper("ssr"))
	strs := make([]string, 0, len(r.Segments)+1)
	exprs := make([]output.Expression, 0, len(r.Segments))
	current := ""
	for _, segment := range r.Segments {
		if segment.Value == nil {
			current += segment.Text
			continue
		}
		value := segment.Value
		if value.HydrationMarker && t.cfg.Hydratable {
			current += hydrationMarkerOpen
		}
		strs = append(strs, current)
		current = ""
		exprs = append(exprs, t.ssrEscaped(value))
		if value.HydrationMarker && t.cfg.Hydratable {
			current = hydrationMarkerClose
		}
	}
	strs = append(strs, current)
	return output.NewTaggedTemplateExpr(tag, strs, exprs)
}

// ssrEscaped applies the escape policy: attribute context takes attribute-safe
// escaping, text context takes entity escaping, helper-produced and innerHTML
// values pass through verbatim
func (t *Transformer) ssrEscaped(value *SSRValue) output.Expression {
	if value.SkipEscape {
		return value.Expr
	}
	escape := output.Variable(t.Ctx.Helper("escape"))
	args := []output.Expression{value.Expr}
	if value.AttrContext {
		args = append(args, output.Literal(true))
	}
	return output.NewInvokeFunctionExpr(escape, args)
}

// ssrWalkElement appends one native element to the segment sequence. An
// element carrying a spread bypasses literal emission entirely and renders
// through the generic element helper.
func (t *Transformer) ssrWalkElement(r *SSRResult, el *jsx.Element, root bool) {
	for _, attrNode := range el.Attributes {
		if _, ok := attrNode.(*jsx.SpreadAttribute); ok {
			r.AppendValue(&SSRValue{Expr: t.ssrSpreadElement(el, root), SkipEscape: true})
			return
		}
	}

	tag := el.Name
	isSVG := schema.IsSVGElement(tag)
	isCustom := schema.IsCustomElement(tag)
	r.AppendText("<" + tag)
	if root && t.cfg.Hydratable {
		key := output.NewInvokeFunctionExpr(output.Variable(t.Ctx.Helper("ssrHydrationKey")), nil)
		r.AppendValue(&SSRValue{Expr: key, AttrContext: true, SkipEscape: true})
	}

	var innerHTML, textPayload output.Expression
	for _, attrNode := range el.Attributes {
		a, ok := attrNode.(*jsx.Attribute)
		if !ok {
			continue
		}
		switch payload := t.ssrAttribute(r, a, isSVG, isCustom); {
		case payload == nil:
		case payload.kind == schema.BindingKindInnerHTML:
			innerHTML = payload.value
		default:
			textPayload = payload.value
		}
	}
	r.AppendText(">")

	if schema.IsVoidElement(tag) {
		return
	}
	switch {
	case innerHTML != nil:
		// emitted unescaped; replaces source children
		r.AppendValue(&SSRValue{Expr: innerHTML, SkipEscape: true})
	case textPayload != nil:
		// escaped without markup wrapping
		r.AppendValue(&SSRValue{Expr: textPayload})
	default:
		t.ssrChildren(r, flattenChildren(el.Children))
	}
	r.AppendText("</" + tag + ">")
}

// ssrAttribute appends one attribute. Client-only attributes (ref, event
// handlers, directives, forced properties) are dropped on the server.
func (t *Transformer) ssrAttribute(r *SSRResult, a *jsx.Attribute, isSVG, isCustom bool) *childPayload {
	name := a.Name
	switch {
	case name == "ref",
		isEventHandler(name),
		strings.HasPrefix(name, "on:"),
		strings.HasPrefix(name, "oncapture:"),
		strings.HasPrefix(name, "use:"),
		strings.HasPrefix(name, "prop:"):
		return nil
	case strings.HasPrefix(name, "attr:"):
		name = name[len("attr:"):]
	}

	if a.IsStatic() {
		alias := name
		if mapped := schema.AttributeAlias(name); mapped != "" {
			alias = mapped
		}
		if a.StringValue == nil {
			r.AppendText(" " + alias)
		} else {
			r.AppendText(" " + alias + `="` + escapeAttribute(*a.StringValue) + `"`)
		}
		return nil
	}

	value := t.conv.Convert(a.Expression)
	switch schema.RouteAttribute(name, isSVG, isCustom) {
	case schema.BindingKindInnerHTML:
		return &childPayload{kind: schema.BindingKindInnerHTML, value: value}
	case schema.BindingKindTextContent:
		return &childPayload{kind: schema.BindingKindTextContent, value: value}
	case schema.BindingKindClassList:
		wrapped := output.NewInvokeFunctionExpr(
			output.Variable(t.Ctx.Helper("ssrClassList")),
			[]output.Expression{value})
		t.ssrQuotedAttr(r, "class", &SSRValue{Expr: wrapped, AttrContext: true, SkipEscape: true})
	case schema.BindingKindStyle:
		wrapped := output.NewInvokeFunctionExpr(
			output.Variable(t.Ctx.Helper("ssrStyle")),
			[]output.Expression{value})
		t.ssrQuotedAttr(r, "style", &SSRValue{Expr: wrapped, AttrContext: true, SkipEscape: true})
	case schema.BindingKindClassProperty, schema.BindingKindClassAttribute:
		t.ssrQuotedAttr(r, "class", &SSRValue{Expr: value, AttrContext: true})
	default:
		attr := name
		if mapped := schema.AttributeAlias(name); mapped != "" {
			attr = mapped
		}
		t.ssrQuotedAttr(r, attr, &SSRValue{Expr: value, AttrContext: true})
	}
	return nil
}

func (t *Transformer) ssrQuotedAttr(r *SSRResult, name string, value *SSRValue) {
	r.AppendText(" " + name + `="`)
	r.AppendValue(value)
	r.AppendText(`"`)
}

// ssrChildren appends children in document order: text escaped into the
// template, nested elements recursively, everything dynamic as an escaped
// hole bracketed with hydration markers when hydration is enabled
func (t *Transformer) ssrChildren(r *SSRResult, children []jsx.Node) {
	for _, child := range children {
		switch n := child.(type) {
		case *jsx.Text:
			r.AppendText(escapeText(n.Value))
		case *jsx.Element:
			if n.IsComponent() {
				expr := combineExprs(t.transformComponent(n).Exprs)
				r.AppendValue(&SSRValue{Expr: expr, HydrationMarker: true})
				continue
			}
			t.ssrWalkElement(r, n, false)
		case *jsx.ExpressionContainer:
			value := &SSRValue{Expr: t.conv.Convert(n.Expression)}
			if !t.isStaticMarked(n.LeadingComment) && IsDynamic(n.Expression) {
				value.HydrationMarker = true
			}
			r.AppendValue(value)
		default:
			r.AppendValue(&SSRValue{Expr: t.transformBoundarySSR(child)})
		}
	}
}

// ssrSpreadElement renders an element with spread attributes through the
// generic element helper (tag, merged props, children thunk, hydration key)
func (t *Transformer) ssrSpreadElement(el *jsx.Element, root bool) output.Expression {
	var spreads []output.Expression
	var entries []*output.LiteralMapEntry
	for _, attrNode := range el.Attributes {
		switch a := attrNode.(type) {
		case *jsx.SpreadAttribute:
			spreads = append(spreads, t.conv.Convert(a.Expression))
		case *jsx.Attribute:
			entries = append(entries, t.componentProp(a, genericShape))
		}
	}
	props := t.componentProps(spreads, entries)

	children := flattenChildren(el.Children)
	var childrenThunk output.Expression = output.NewRawLiteralExpr("undefined")
	if len(children) > 0 {
		exprs := make([]output.Expression, 0, len(children))
		for _, child := range children {
			exprs = append(exprs, t.transformBoundarySSR(child))
		}
		childrenThunk = output.Thunk(combineExprs(exprs))
	}

	return output.NewInvokeFunctionExpr(
		output.Variable(t.Ctx.Helper("ssrElement")),
		[]output.Expression{
			output.Literal(el.Name),
			props,
			childrenThunk,
			output.Literal(root && t.cfg.Hydratable),
		})
}
