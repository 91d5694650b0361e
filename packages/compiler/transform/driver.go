package transform

import (
	"strings"

	"jsxc-go/packages/compiler/config"
	"jsxc-go/packages/compiler/jsx"
	"jsxc-go/packages/compiler/output"
)

// Transformer drives the single post-order walk over parsed markup. Results
// are merged bottom-up; generated output is never re-descended into.
type Transformer struct {
	Ctx  *Context
	cfg  *config.CompilerConfig
	conv *converter
}

// NewTransformer creates a Transformer over a fresh per-file context
func NewTransformer(ctx *Context) *Transformer {
	t := &Transformer{Ctx: ctx, cfg: ctx.Config}
	t.conv = &converter{transformer: t}
	return t
}

// TransformModule compiles a sequence of top-level boundaries and finalizes
// the file: hoisted template registrations are prepended once, the
// consolidated delegated-event call is appended, and one import naming every
// helper used anywhere in the file ends up first.
func (t *Transformer) TransformModule(nodes []jsx.Node) []output.Statement {
	body := make([]output.Statement, 0, len(nodes))
	for _, node := range nodes {
		expr := t.TransformBoundary(node)
		body = append(body, output.NewDeclareVarStmt(t.Ctx.GenerateUID("view"), expr))
	}

	stmts := make([]output.Statement, 0, len(body)+3)
	for i, entry := range t.Ctx.Templates() {
		args := []output.Expression{output.NewTemplateStringExpr(entry.Markup)}
		if entry.IsSVG {
			args = append(args, output.NewLiteralExpr(true))
		}
		call := output.NewInvokeFunctionExpr(output.Variable(t.Ctx.Helper("template")), args)
		stmts = append(stmts, output.NewDeclareVarStmt(TemplateName(i), call))
	}
	stmts = append(stmts, body...)

	if events := t.Ctx.DelegatedEvents(); len(events) > 0 {
		entries := make([]output.Expression, 0, len(events))
		for _, event := range events {
			entries = append(entries, output.Literal(event))
		}
		call := output.NewInvokeFunctionExpr(
			output.Variable(t.Ctx.Helper("delegateEvents")),
			[]output.Expression{output.NewLiteralArrayExpr(entries)})
		stmts = append(stmts, output.NewExpressionStatement(call))
	}

	if helpers := t.Ctx.Helpers(); len(helpers) > 0 {
		stmts = append([]output.Statement{output.NewImportStmt(helpers, t.cfg.ModuleName)}, stmts...)
	}
	return stmts
}

// TransformBoundary compiles one top-level JSX boundary (a JSX expression
// whose parent is not itself JSX) into a final expression for the configured
// backend. Universal mode shares the DOM backend.
func (t *Transformer) TransformBoundary(node jsx.Node) output.Expression {
	if t.cfg.Mode == config.GenerateModeSSR {
		return t.transformBoundarySSR(node)
	}
	return t.emitDOMBoundary(t.transformNode(node, false))
}

// transformNode dispatches one markup node to its transformer. The svg flag
// is inherited by all structurally nested markup.
func (t *Transformer) transformNode(node jsx.Node, svg bool) *Result {
	switch n := node.(type) {
	case *jsx.Text:
		return &Result{TextOnly: true, Text: n.Value, Template: escapeText(n.Value)}
	case *jsx.ExpressionContainer:
		return t.transformExpressionChild(n)
	case *jsx.Fragment:
		return t.transformFragment(n, svg)
	case *jsx.Element:
		if n.IsComponent() {
			return t.transformComponent(n)
		}
		return t.transformElement(n, svg)
	}
	// unmatched node kinds degrade to a pass-through placeholder
	return &Result{SkipTemplate: true, Exprs: []output.Expression{output.NewRawLiteralExpr("undefined")}}
}

// transformExpressionChild lowers a {expr} position. The configured static
// marker forces a one-time evaluation regardless of classification.
func (t *Transformer) transformExpressionChild(n *jsx.ExpressionContainer) *Result {
	expr := t.conv.Convert(n.Expression)
	result := &Result{SkipTemplate: true, Exprs: []output.Expression{expr}}
	if t.isStaticMarked(n.LeadingComment) {
		return result
	}
	if IsDynamic(n.Expression) {
		result.ExprDynamic = true
		result.NeedsMemo = t.cfg.WrapConditionals && NeedsMemoWrap(n.Expression)
	}
	return result
}

// transformFragment lowers <>...</> into an array of child expressions.
// Dynamic expression children are memo-wrapped so consumers track them.
func (t *Transformer) transformFragment(n *jsx.Fragment, svg bool) *Result {
	exprs := make([]output.Expression, 0, len(n.Children))
	for _, child := range n.Children {
		r := t.transformNode(child, svg)
		switch {
		case r.TextOnly:
			if r.Text != "" {
				exprs = append(exprs, output.Literal(r.Text))
			}
		case r.SkipTemplate:
			expr := combineExprs(r.Exprs)
			if r.NeedsMemo || r.ExprDynamic {
				expr = t.memoWrap(expr)
			}
			exprs = append(exprs, expr)
		default:
			exprs = append(exprs, t.emitDOMResult(r))
		}
	}
	if len(exprs) == 1 {
		return &Result{SkipTemplate: true, Exprs: exprs}
	}
	return &Result{SkipTemplate: true, Exprs: []output.Expression{output.NewLiteralArrayExpr(exprs)}}
}

func (t *Transformer) isStaticMarked(comment string) bool {
	if comment == "" || t.cfg.StaticMarker == "" {
		return false
	}
	return strings.Contains(comment, t.cfg.StaticMarker)
}

func (t *Transformer) memoWrap(expr output.Expression) output.Expression {
	return output.NewInvokeFunctionExpr(
		output.Variable(t.Ctx.Helper(t.cfg.MemoWrapper)),
		[]output.Expression{output.Thunk(expr)})
}

func combineExprs(exprs []output.Expression) output.Expression {
	if len(exprs) == 1 {
		return exprs[0]
	}
	return output.NewLiteralArrayExpr(exprs)
}
