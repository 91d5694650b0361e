package transform

import (
	"jsxc-go/packages/compiler/output"
)

// emitDOMBoundary lowers a finished DOM IR value into the expression emitted
// at a top-level JSX boundary
func (t *Transformer) emitDOMBoundary(r *Result) output.Expression {
	switch {
	case r.TextOnly:
		return output.Literal(r.Text)
	case r.SkipTemplate:
		expr := combineExprs(r.Exprs)
		if r.NeedsMemo {
			expr = t.memoWrap(expr)
		}
		return expr
	}
	return t.emitDOMResult(r)
}

// emitDOMResult registers the hoisted template and emits the clone-and-patch
// closure: clone by template index, declare the sibling-chain references,
// run the ordered runtime statements, install one effect per dynamic binding
// and return the root clone. A result with no runtime work collapses to a
// bare clone call.
func (t *Transformer) emitDOMResult(r *Result) output.Expression {
	index := t.Ctx.RegisterTemplate(r.Template, r.IsSVG)
	t.Ctx.Helper("template")
	clone := output.Call(TemplateName(index))
	if !r.HasRuntimeOps() {
		return clone
	}

	root := r.ID
	if root == "" {
		root = t.Ctx.GenerateUID("el")
	}
	decls := []*output.VarDecl{{Name: root, Value: clone}}
	for _, declaration := range r.Declarations {
		decls = append(decls, &output.VarDecl{Name: declaration.Name, Value: declaration.Init})
	}

	stmts := []output.Statement{output.NewDeclareVarsStmt("const", decls)}
	for _, expr := range r.Exprs {
		stmts = append(stmts, output.NewExpressionStatement(expr))
	}
	if len(r.Dynamics) > 0 {
		effect := t.Ctx.Helper(t.cfg.EffectWrapper)
		for _, dynamic := range r.Dynamics {
			wrapped := output.NewInvokeFunctionExpr(
				output.Variable(effect),
				[]output.Expression{output.Thunk(dynamic.Value)})
			stmts = append(stmts, output.NewExpressionStatement(wrapped))
		}
	}
	for _, expr := range r.PostExprs {
		stmts = append(stmts, output.NewExpressionStatement(expr))
	}
	stmts = append(stmts, output.NewReturnStatement(output.Variable(root)))

	closure := output.NewArrowFunctionBlock(nil, stmts)
	return output.NewInvokeFunctionExpr(closure, nil)
}
