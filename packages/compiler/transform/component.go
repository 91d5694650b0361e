package transform

import (
	"strings"

	"jsxc-go/packages/compiler/jsx"
	"jsxc-go/packages/compiler/output"
)

// builtinShape declares the prop contract of a control-flow primitive: which
// props pass through raw instead of becoming getters, and whether children
// are a raw callback rather than lazily rendered content. Adding a built-in
// is a data change here plus a config entry.
type builtinShape struct {
	rawProps    map[string]bool
	rawChildren bool
}

var builtinShapes = map[string]*builtinShape{
	"For":           {rawProps: map[string]bool{"each": true}, rawChildren: true},
	"Index":         {rawProps: map[string]bool{"each": true}, rawChildren: true},
	"Show":          {rawProps: map[string]bool{"when": true}},
	"Match":         {rawProps: map[string]bool{"when": true}},
	"Switch":        {},
	"Suspense":      {},
	"SuspenseList":  {},
	"Portal":        {rawProps: map[string]bool{"mount": true}},
	"Dynamic":       {rawProps: map[string]bool{"component": true}},
	"ErrorBoundary": {},
}

var genericShape = &builtinShape{}

// transformComponent lowers a component tag into a constructor call with
// lazily or eagerly evaluated props per the component's shape.
func (t *Transformer) transformComponent(el *jsx.Element) *Result {
	name := el.Name
	shape := genericShape
	var tagExpr output.Expression
	if !strings.Contains(name, ".") && t.cfg.IsBuiltIn(name) {
		if s, ok := builtinShapes[name]; ok {
			shape = s
		}
		tagExpr = output.Variable(t.Ctx.Helper(name))
	} else {
		tagExpr = memberPath(name)
	}

	var spreads []output.Expression
	var entries []*output.LiteralMapEntry
	childrenNamed := false

	for _, attrNode := range el.Attributes {
		switch a := attrNode.(type) {
		case *jsx.SpreadAttribute:
			spreads = append(spreads, t.conv.Convert(a.Expression))
		case *jsx.Attribute:
			if a.Name == "children" {
				childrenNamed = true
			}
			entries = append(entries, t.componentProp(a, shape))
		}
	}

	children := flattenChildren(el.Children)
	if len(children) > 0 && !childrenNamed {
		entries = append(entries, t.componentChildren(children, shape))
	}

	props := t.componentProps(spreads, entries)
	call := output.NewInvokeFunctionExpr(
		output.Variable(t.Ctx.Helper("createComponent")),
		[]output.Expression{tagExpr, props})
	return &Result{SkipTemplate: true, Exprs: []output.Expression{call}}
}

// componentProp lowers one attribute: static values become plain init
// properties, dynamic values become getters preserving lazy re-evaluation
// across the prop boundary, and ref becomes a forwarding function.
func (t *Transformer) componentProp(a *jsx.Attribute, shape *builtinShape) *output.LiteralMapEntry {
	name := a.Name
	if name == "ref" && a.Expression != nil {
		target := t.conv.Convert(a.Expression)
		forward := output.NewArrowFunctionExpr([]string{"r$"}, t.refForwardExpr(target, output.Variable("r$")))
		return &output.LiteralMapEntry{Key: "ref", Value: forward}
	}
	if a.IsStatic() {
		if a.StringValue == nil {
			return &output.LiteralMapEntry{Key: name, Value: output.Literal(true)}
		}
		return &output.LiteralMapEntry{Key: name, Value: output.Literal(*a.StringValue)}
	}
	value := t.conv.Convert(a.Expression)
	raw := shape.rawProps[name] ||
		t.isStaticMarked(a.LeadingComment) ||
		!IsDynamic(a.Expression)
	return &output.LiteralMapEntry{Key: name, Value: value, IsGetter: !raw}
}

// componentChildren builds the children property. A raw-children primitive
// takes its single callback child verbatim; otherwise a single static child
// is inlined directly and anything dynamic becomes a getter.
func (t *Transformer) componentChildren(children []jsx.Node, shape *builtinShape) *output.LiteralMapEntry {
	if shape.rawChildren && len(children) == 1 {
		if container, ok := children[0].(*jsx.ExpressionContainer); ok {
			return &output.LiteralMapEntry{Key: "children", Value: t.conv.Convert(container.Expression)}
		}
	}
	if len(children) == 1 && !childIsDynamic(children[0]) {
		return &output.LiteralMapEntry{Key: "children", Value: t.TransformBoundary(children[0])}
	}
	exprs := make([]output.Expression, 0, len(children))
	for _, child := range children {
		exprs = append(exprs, t.TransformBoundary(child))
	}
	return &output.LiteralMapEntry{Key: "children", Value: combineExprs(exprs), IsGetter: true}
}

// componentProps combines spreads and inline props: spreads first, positional
// overrides after, one merge call when spreads are present
func (t *Transformer) componentProps(spreads []output.Expression, entries []*output.LiteralMapEntry) output.Expression {
	if len(spreads) == 0 {
		return output.NewLiteralMapExpr(entries)
	}
	args := append([]output.Expression{}, spreads...)
	if len(entries) > 0 {
		args = append(args, output.NewLiteralMapExpr(entries))
	}
	return output.NewInvokeFunctionExpr(output.Variable(t.Ctx.Helper("mergeProps")), args)
}

// childIsDynamic decides whether a component child needs lazy re-evaluation:
// markup children render on demand, expression children follow the classifier
func childIsDynamic(node jsx.Node) bool {
	switch n := node.(type) {
	case *jsx.Text:
		return false
	case *jsx.ExpressionContainer:
		return IsDynamic(n.Expression)
	}
	return true
}

// memberPath builds the reference for a component tag, including Foo.Bar
// member paths
func memberPath(name string) output.Expression {
	parts := strings.Split(name, ".")
	var expr output.Expression = output.Variable(parts[0])
	for _, part := range parts[1:] {
		expr = output.NewReadPropExpr(expr, part)
	}
	return expr
}
