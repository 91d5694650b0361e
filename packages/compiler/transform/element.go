package transform

import (
	"strings"

	"jsxc-go/packages/compiler/jsx"
	"jsxc-go/packages/compiler/output"
	"jsxc-go/packages/compiler/schema"
)

// transformElement lowers one native tag into DOM IR: static markup under
// construction plus the runtime statements and reactive bindings that patch
// the clone.
func (t *Transformer) transformElement(el *jsx.Element, svg bool) *Result {
	tag := el.Name
	isSVG := svg || schema.IsSVGElement(tag)
	isCustom := schema.IsCustomElement(tag)
	result := &Result{IsSVG: isSVG, HasCustomElement: isCustom}

	children := flattenChildren(el.Children)
	if needsReference(el.Attributes, children) {
		result.ID = t.Ctx.GenerateUID("el")
	}

	var markup strings.Builder
	markup.WriteString("<" + tag)
	var innerHTML, textPayload output.Expression
	for _, attrNode := range el.Attributes {
		switch a := attrNode.(type) {
		case *jsx.SpreadAttribute:
			call := output.NewInvokeFunctionExpr(
				output.Variable(t.Ctx.Helper("spread")),
				[]output.Expression{
					output.Variable(result.ID),
					t.conv.Convert(a.Expression),
					output.Literal(isSVG),
					output.Literal(len(children) > 0),
				})
			result.Exprs = append(result.Exprs, call)
		case *jsx.Attribute:
			switch payload := t.transformElementAttribute(result, a, &markup); {
			case payload == nil:
			case payload.kind == schema.BindingKindInnerHTML:
				innerHTML = payload.value
			default:
				textPayload = payload.value
			}
		}
	}
	markup.WriteString(">")

	// void elements never process children nor emit a closing tag
	if schema.IsVoidElement(tag) {
		result.Template = markup.String()
		return result
	}

	switch {
	case innerHTML != nil || textPayload != nil:
		// child properties replace source children entirely
	default:
		t.transformElementChildren(result, children, &markup, isSVG)
	}
	result.Template = markup.String() + "</" + tag + ">"
	return result
}

// childPayload carries an innerHTML/textContent value out of attribute
// processing; the payloads suppress child traversal.
type childPayload struct {
	kind  schema.BindingKind
	value output.Expression
}

// transformElementAttribute routes one attribute. Static string and boolean
// attributes are inlined into markup through the alias table; everything else
// becomes a runtime statement or a reactive binding, in source order.
func (t *Transformer) transformElementAttribute(result *Result, a *jsx.Attribute, markup *strings.Builder) *childPayload {
	name := a.Name
	ref := result.ID

	switch {
	case name == "ref":
		if a.Expression == nil {
			return nil
		}
		result.Exprs = append(result.Exprs, t.refForwardExpr(t.conv.Convert(a.Expression), output.Variable(ref)))
		return nil

	case strings.HasPrefix(name, "use:"):
		value := output.Expression(output.Literal(true))
		if a.Expression != nil {
			value = t.conv.Convert(a.Expression)
		}
		call := output.NewInvokeFunctionExpr(
			output.Variable(t.Ctx.Helper("use")),
			[]output.Expression{
				output.Variable(name[len("use:"):]),
				output.Variable(ref),
				output.Thunk(value),
			})
		result.Exprs = append(result.Exprs, call)
		return nil

	case strings.HasPrefix(name, "on:"), strings.HasPrefix(name, "oncapture:"):
		event := name[strings.Index(name, ":")+1:]
		args := []output.Expression{output.Literal(event), t.conv.Convert(a.Expression)}
		if strings.HasPrefix(name, "oncapture:") {
			args = append(args, output.Literal(true))
		}
		listen := output.NewInvokeFunctionExpr(
			output.NewReadPropExpr(output.Variable(ref), "addEventListener"), args)
		result.Exprs = append(result.Exprs, listen)
		return nil

	case isEventHandler(name):
		t.transformEventHandler(result, name, a)
		return nil

	case strings.HasPrefix(name, "prop:"), strings.HasPrefix(name, "attr:"):
		kind := schema.BindingKindProperty
		if strings.HasPrefix(name, "attr:") {
			kind = schema.BindingKindAttribute
		}
		t.addBinding(result, kind, name[len("prop:"):], a)
		return nil
	}

	if a.IsStatic() {
		alias := name
		if mapped := schema.AttributeAlias(name); mapped != "" {
			alias = mapped
		}
		if a.StringValue == nil {
			markup.WriteString(" " + alias)
		} else {
			markup.WriteString(" " + alias + `="` + escapeAttribute(*a.StringValue) + `"`)
		}
		return nil
	}

	kind := schema.RouteAttribute(name, result.IsSVG, result.HasCustomElement)
	switch kind {
	case schema.BindingKindInnerHTML, schema.BindingKindTextContent:
		value := t.conv.Convert(a.Expression)
		t.addBinding(result, kind, name, a)
		return &childPayload{kind: kind, value: value}
	}
	t.addBinding(result, kind, name, a)
	return nil
}

// addBinding records a reactive binding, or a one-time setter statement when
// the value is classified static or carries the static marker
func (t *Transformer) addBinding(result *Result, kind schema.BindingKind, name string, a *jsx.Attribute) {
	value := t.conv.Convert(a.Expression)
	setter := t.domSetter(kind, result.ID, name, value)
	if !t.isStaticMarked(a.LeadingComment) && IsDynamic(a.Expression) {
		result.Dynamics = append(result.Dynamics, &Dynamic{
			Ref:             result.ID,
			Key:             name,
			Kind:            kind,
			Value:           setter,
			IsSVG:           result.IsSVG,
			IsCustomElement: result.HasCustomElement,
		})
		return
	}
	result.Exprs = append(result.Exprs, setter)
}

// domSetter builds the attribute-specific setter for a routed binding. The
// same construction serves one-time statements and effect bodies.
func (t *Transformer) domSetter(kind schema.BindingKind, ref, name string, value output.Expression) output.Expression {
	element := output.Variable(ref)
	switch kind {
	case schema.BindingKindClassProperty:
		return output.NewBinaryOperatorExpr("=", output.NewReadPropExpr(element, "className"), value)
	case schema.BindingKindClassAttribute:
		return output.NewInvokeFunctionExpr(
			output.Variable(t.Ctx.Helper("setAttribute")),
			[]output.Expression{element, output.Literal("class"), value})
	case schema.BindingKindClassList:
		return output.NewInvokeFunctionExpr(
			output.Variable(t.Ctx.Helper("classList")),
			[]output.Expression{element, value})
	case schema.BindingKindStyle:
		return output.NewInvokeFunctionExpr(
			output.Variable(t.Ctx.Helper("style")),
			[]output.Expression{element, value})
	case schema.BindingKindInnerHTML:
		return output.NewBinaryOperatorExpr("=", output.NewReadPropExpr(element, "innerHTML"), value)
	case schema.BindingKindTextContent:
		return output.NewBinaryOperatorExpr("=", output.NewReadPropExpr(element, name), value)
	case schema.BindingKindProperty:
		prop := name
		if mapped := schema.PropertyAlias(name); mapped != "" {
			prop = mapped
		}
		return output.NewBinaryOperatorExpr("=", output.NewReadPropExpr(element, prop), value)
	}
	attr := name
	if mapped := schema.AttributeAlias(name); mapped != "" {
		attr = mapped
	}
	return output.NewInvokeFunctionExpr(
		output.Variable(t.Ctx.Helper("setAttribute")),
		[]output.Expression{element, output.Literal(attr), value})
}

// transformEventHandler lowers an on<Name> attribute: a per-element handler
// slot for delegated events, a direct listener otherwise
func (t *Transformer) transformEventHandler(result *Result, name string, a *jsx.Attribute) {
	event := strings.ToLower(name[2:])
	handler := t.conv.Convert(a.Expression)
	if t.cfg.DelegateEvents && t.Ctx.IsDelegatedEvent(event) {
		t.Ctx.DelegateEvent(event)
		slot := output.NewReadPropExpr(output.Variable(result.ID), "$$"+event)
		result.Exprs = append(result.Exprs, output.NewBinaryOperatorExpr("=", slot, handler))
		return
	}
	listen := output.NewInvokeFunctionExpr(
		output.NewReadPropExpr(output.Variable(result.ID), "addEventListener"),
		[]output.Expression{output.Literal(event), handler})
	result.Exprs = append(result.Exprs, listen)
}

// refForwardExpr detects a callable vs assignable ref target at call time
func (t *Transformer) refForwardExpr(target, value output.Expression) output.Expression {
	isFunction := output.NewBinaryOperatorExpr("===",
		output.NewUnaryOperatorExpr("typeof", target),
		output.Literal("function"))
	return output.NewConditionalExpr(isFunction,
		output.NewInvokeFunctionExpr(target, []output.Expression{value}),
		output.NewBinaryOperatorExpr("=", target, value))
}

// childSlot is one DOM node of the element's child list: literal markup, a
// nested element result, or an interior insertion marker
type childSlot struct {
	markup   string
	result   *Result
	isMarker bool
	ref      string
}

// childInsert is a dynamic child expression inserted against the parent
type childInsert struct {
	expr output.Expression
	// slots index of the <!> marker anchoring an interior position, -1 for
	// appends
	markerSlot int
}

// transformElementChildren walks children in document order, appending static
// markup, declaring the sibling-chain references needed to reach nested
// dynamic positions and merging nested IR in document order.
func (t *Transformer) transformElementChildren(result *Result, children []jsx.Node, markup *strings.Builder, svg bool) {
	type item struct {
		slot   *childSlot
		insert *childInsert
		// merged carries a nested element's runtime IR in position
		merged *Result
	}
	items := make([]*item, 0, len(children))
	domCount := 0

	for _, child := range children {
		r := t.transformNode(child, svg)
		switch {
		case r.TextOnly:
			if r.Template == "" {
				continue
			}
			items = append(items, &item{slot: &childSlot{markup: r.Template}})
			domCount++
		case r.SkipTemplate:
			if text, ok := staticTextValue(r); ok {
				items = append(items, &item{slot: &childSlot{markup: escapeText(text)}})
				domCount++
				continue
			}
			expr := combineExprs(r.Exprs)
			if r.NeedsMemo {
				expr = t.memoWrap(expr)
			} else if r.ExprDynamic {
				expr = output.Thunk(expr)
			}
			items = append(items, &item{insert: &childInsert{expr: expr, markerSlot: -1}})
		default:
			entry := &item{slot: &childSlot{markup: r.Template, result: r}}
			items = append(items, entry)
			if r.HasRuntimeOps() || r.ID != "" {
				entry.merged = r
			}
			domCount++
		}
	}

	// interior inserts anchor on a <!> marker; trailing inserts append
	laterDOM := make([]bool, len(items))
	for i := len(items) - 2; i >= 0; i-- {
		laterDOM[i] = laterDOM[i+1] || items[i+1].insert == nil
	}
	slots := make([]*childSlot, 0, len(items))
	for i, it := range items {
		if it.insert == nil {
			slots = append(slots, it.slot)
			continue
		}
		if laterDOM[i] {
			marker := &childSlot{markup: "<!>", isMarker: true}
			it.insert.markerSlot = len(slots)
			slots = append(slots, marker)
			domCount++
		}
	}

	t.declareSlotChain(result, slots)

	// merge nested IR and emit inserts in document order
	for _, it := range items {
		switch {
		case it.insert != nil:
			args := []output.Expression{output.Variable(result.ID), it.insert.expr}
			if it.insert.markerSlot >= 0 {
				args = append(args, output.Variable(slots[it.insert.markerSlot].ref))
			} else if domCount > 0 {
				args = append(args, output.NewRawLiteralExpr("null"))
			}
			call := output.NewInvokeFunctionExpr(output.Variable(t.Ctx.Helper("insert")), args)
			result.Exprs = append(result.Exprs, call)
		case it.merged != nil:
			result.Exprs = append(result.Exprs, it.merged.Exprs...)
			result.Dynamics = append(result.Dynamics, it.merged.Dynamics...)
			result.PostExprs = append(result.PostExprs, it.merged.PostExprs...)
		}
	}

	for _, slot := range slots {
		markup.WriteString(slot.markup)
	}
}

// declareSlotChain declares firstChild/nextSibling references for every slot
// up to the last one a runtime operation targets. Intermediate siblings get
// references too since each step of the chain reads the previous node.
func (t *Transformer) declareSlotChain(result *Result, slots []*childSlot) {
	last := -1
	for i, slot := range slots {
		if slot.isMarker || (slot.result != nil && (slot.result.ID != "" || slot.result.HasRuntimeOps())) {
			last = i
		}
	}
	prev := ""
	for i := 0; i <= last; i++ {
		slot := slots[i]
		name := ""
		if slot.result != nil && slot.result.ID != "" {
			name = slot.result.ID
		} else {
			name = t.Ctx.GenerateUID("el")
		}
		var init output.Expression
		if i == 0 {
			init = output.NewReadPropExpr(output.Variable(result.ID), "firstChild")
		} else {
			init = output.NewReadPropExpr(output.Variable(prev), "nextSibling")
		}
		result.Declarations = append(result.Declarations, &Declaration{Name: name, Init: init})
		if slot.result != nil {
			result.Declarations = append(result.Declarations, slot.result.Declarations...)
		}
		slot.ref = name
		prev = name
	}
}

// staticTextValue reports a static literal child that can be inlined as text
func staticTextValue(r *Result) (string, bool) {
	if r.ExprDynamic || len(r.Exprs) != 1 {
		return "", false
	}
	literal, ok := r.Exprs[0].(*output.LiteralExpr)
	if !ok {
		return "", false
	}
	text, ok := literal.Value.(string)
	return text, ok
}

// flattenChildren inlines fragment children into the parent's child list and
// drops empty text runs
func flattenChildren(children []jsx.Node) []jsx.Node {
	out := make([]jsx.Node, 0, len(children))
	for _, child := range children {
		if fragment, ok := child.(*jsx.Fragment); ok {
			out = append(out, flattenChildren(fragment.Children)...)
			continue
		}
		if text, ok := child.(*jsx.Text); ok && text.Value == "" {
			continue
		}
		out = append(out, child)
	}
	return out
}

// needsReference reports whether an element needs a stable generated id:
// any runtime-routed attribute, or any descendant requiring runtime work
// (the sibling chain to reach it starts at this element).
func needsReference(attrs []jsx.AttributeNode, children []jsx.Node) bool {
	for _, attrNode := range attrs {
		if attributeNeedsRuntime(attrNode) {
			return true
		}
	}
	for _, child := range children {
		if nodeNeedsRuntime(child) {
			return true
		}
	}
	return false
}

func attributeNeedsRuntime(attrNode jsx.AttributeNode) bool {
	a, ok := attrNode.(*jsx.Attribute)
	if !ok {
		return true
	}
	if !a.IsStatic() {
		return true
	}
	if a.Name == "ref" || strings.HasPrefix(a.Name, "use:") {
		return true
	}
	return schema.IsChildProperty(a.Name)
}

func nodeNeedsRuntime(node jsx.Node) bool {
	switch n := node.(type) {
	case *jsx.Text:
		return false
	case *jsx.Element:
		if n.IsComponent() {
			return true
		}
		for _, attrNode := range n.Attributes {
			if attributeNeedsRuntime(attrNode) {
				return true
			}
		}
		for _, child := range n.Children {
			if nodeNeedsRuntime(child) {
				return true
			}
		}
		return false
	}
	// expression containers and fragments always need runtime inserts
	return true
}

func isEventHandler(name string) bool {
	return len(name) > 2 && name[0] == 'o' && name[1] == 'n' && name[2] >= 'A' && name[2] <= 'Z'
}

func escapeText(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	return strings.ReplaceAll(s, "<", "&lt;")
}

func escapeAttribute(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	return strings.ReplaceAll(s, `"`, "&quot;")
}
