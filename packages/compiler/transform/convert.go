package transform

import (
	"jsxc-go/packages/compiler/expression_parser"
	"jsxc-go/packages/compiler/jsx"
	"jsxc-go/packages/compiler/output"
)

// converter lowers parsed user expressions into the output AST. Markup nodes
// embedded in expression position are handed back to the transformer so their
// compiled form is spliced in structurally — there is no stringify-and-reparse
// step anywhere on this path.
type converter struct {
	transformer *Transformer
}

// Convert lowers one expression
func (c *converter) Convert(ast expression_parser.AST) output.Expression {
	if ast == nil {
		return output.NewRawLiteralExpr("undefined")
	}
	return ast.Visit(c, nil).(output.Expression)
}

func (c *converter) convertAll(asts []expression_parser.AST) []output.Expression {
	exprs := make([]output.Expression, 0, len(asts))
	for _, ast := range asts {
		if ast == nil {
			exprs = append(exprs, nil)
			continue
		}
		exprs = append(exprs, c.Convert(ast))
	}
	return exprs
}

// VisitEmptyExpr lowers the empty expression
func (c *converter) VisitEmptyExpr(ast *expression_parser.EmptyExpr, context interface{}) interface{} {
	return output.Expression(output.NewRawLiteralExpr("undefined"))
}

// VisitLiteralPrimitive lowers a primitive literal, keeping the source
// spelling when it was captured
func (c *converter) VisitLiteralPrimitive(ast *expression_parser.LiteralPrimitive, context interface{}) interface{} {
	if ast.Raw != "" {
		// keep the source spelling; the cooked value stays available for
		// static-text inlining
		return output.Expression(&output.LiteralExpr{Value: ast.Value, Raw: ast.Raw})
	}
	return output.Expression(output.NewLiteralExpr(ast.Value))
}

// VisitTemplateLiteral lowers a template literal
func (c *converter) VisitTemplateLiteral(ast *expression_parser.TemplateLiteral, context interface{}) interface{} {
	if len(ast.Expressions) == 0 {
		text := ""
		if len(ast.Elements) > 0 {
			text = ast.Elements[0].Text
		}
		return output.Expression(output.NewTemplateStringExpr(text))
	}
	strs := make([]string, 0, len(ast.Elements))
	for _, element := range ast.Elements {
		strs = append(strs, element.Text)
	}
	return output.Expression(output.NewTaggedTemplateExpr(nil, strs, c.convertAll(ast.Expressions)))
}

// VisitIdentifier lowers a bare reference
func (c *converter) VisitIdentifier(ast *expression_parser.Identifier, context interface{}) interface{} {
	return output.Expression(output.Variable(ast.Name))
}

// VisitPropertyRead lowers a static member read
func (c *converter) VisitPropertyRead(ast *expression_parser.PropertyRead, context interface{}) interface{} {
	expr := output.NewReadPropExpr(c.Convert(ast.Receiver), ast.Name)
	expr.Safe = ast.Safe
	return output.Expression(expr)
}

// VisitKeyedRead lowers a computed member read
func (c *converter) VisitKeyedRead(ast *expression_parser.KeyedRead, context interface{}) interface{} {
	return output.Expression(output.NewReadKeyExpr(c.Convert(ast.Receiver), c.Convert(ast.Key)))
}

// VisitCall lowers a call
func (c *converter) VisitCall(ast *expression_parser.Call, context interface{}) interface{} {
	return output.Expression(output.NewInvokeFunctionExpr(c.Convert(ast.Receiver), c.convertAll(ast.Args)))
}

// VisitUnary lowers a prefix operator
func (c *converter) VisitUnary(ast *expression_parser.Unary, context interface{}) interface{} {
	return output.Expression(output.NewUnaryOperatorExpr(ast.Operator, c.Convert(ast.Expr)))
}

// VisitBinary lowers a binary operator
func (c *converter) VisitBinary(ast *expression_parser.Binary, context interface{}) interface{} {
	return output.Expression(output.NewBinaryOperatorExpr(ast.Operation, c.Convert(ast.Left), c.Convert(ast.Right)))
}

// VisitConditional lowers a ternary
func (c *converter) VisitConditional(ast *expression_parser.Conditional, context interface{}) interface{} {
	return output.Expression(output.NewConditionalExpr(c.Convert(ast.Condition), c.Convert(ast.TrueExpr), c.Convert(ast.FalseExpr)))
}

// VisitArrayLiteral lowers an array literal, preserving elisions
func (c *converter) VisitArrayLiteral(ast *expression_parser.ArrayLiteral, context interface{}) interface{} {
	return output.Expression(output.NewLiteralArrayExpr(c.convertAll(ast.Elements)))
}

// VisitObjectLiteral lowers an object literal in entry order
func (c *converter) VisitObjectLiteral(ast *expression_parser.ObjectLiteral, context interface{}) interface{} {
	entries := make([]*output.LiteralMapEntry, 0, len(ast.Properties))
	for _, prop := range ast.Properties {
		entries = append(entries, &output.LiteralMapEntry{
			Key:    prop.Key,
			Quoted: prop.Quoted,
			Spread: prop.Spread,
			Value:  c.Convert(prop.Value),
		})
	}
	return output.Expression(output.NewLiteralMapExpr(entries))
}

// VisitSpreadElement lowers a spread
func (c *converter) VisitSpreadElement(ast *expression_parser.SpreadElement, context interface{}) interface{} {
	return output.Expression(output.NewSpreadExpr(c.Convert(ast.Expr)))
}

// VisitArrowFunction lowers a function-valued expression. A braced body is
// carried through as opaque text.
func (c *converter) VisitArrowFunction(ast *expression_parser.ArrowFunction, context interface{}) interface{} {
	expr := &output.ArrowFunctionExpr{
		Params:     ast.Params,
		RawBody:    ast.RawBody,
		IsFunction: ast.IsFunction,
		Name:       ast.Name,
	}
	if ast.Body != nil {
		expr.BodyExpr = c.Convert(ast.Body)
	}
	return output.Expression(expr)
}

// VisitParenthesizedExpression preserves explicit grouping
func (c *converter) VisitParenthesizedExpression(ast *expression_parser.ParenthesizedExpression, context interface{}) interface{} {
	return output.Expression(output.NewParenExpr(c.Convert(ast.Expr)))
}

// VisitEmbeddedMarkup compiles markup in expression position through the
// transformer and splices the result in
func (c *converter) VisitEmbeddedMarkup(ast *expression_parser.EmbeddedMarkup, context interface{}) interface{} {
	node, ok := ast.Node.(jsx.Node)
	if !ok {
		// unsupported embedding degrades to a placeholder instead of
		// aborting the compile
		return output.Expression(output.NewRawLiteralExpr("undefined"))
	}
	return c.transformer.TransformBoundary(node)
}
