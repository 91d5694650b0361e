package transform

import (
	"jsxc-go/packages/compiler/expression_parser"
)

// IsDynamic decides whether an expression must be wrapped reactively. It is
// pure and conservative: anything it cannot prove static is dynamic, since
// over-classifying as static would break reactivity while the reverse only
// costs a redundant effect.
func IsDynamic(ast expression_parser.AST) bool {
	switch node := ast.(type) {
	case *expression_parser.EmptyExpr:
		return false
	case *expression_parser.LiteralPrimitive:
		return false
	case *expression_parser.TemplateLiteral:
		for _, expr := range node.Expressions {
			if IsDynamic(expr) {
				return true
			}
		}
		return false
	case *expression_parser.ArrowFunction:
		// the function reference is static; its invocation is not ours
		return false
	case *expression_parser.Call:
		return true
	case *expression_parser.PropertyRead:
		// cannot prove purity of a member read without type info
		return true
	case *expression_parser.KeyedRead:
		return true
	case *expression_parser.Identifier:
		// no scope analysis; a bare reference may be a signal accessor
		return true
	case *expression_parser.Conditional:
		return true
	case *expression_parser.Binary:
		switch node.Operation {
		case "&&", "||", "??":
			return true
		}
		return IsDynamic(node.Left) || IsDynamic(node.Right)
	case *expression_parser.Unary:
		return IsDynamic(node.Expr)
	case *expression_parser.ObjectLiteral:
		for _, prop := range node.Properties {
			if IsDynamic(prop.Value) {
				return true
			}
		}
		return false
	case *expression_parser.ArrayLiteral:
		for _, element := range node.Elements {
			if element != nil && IsDynamic(element) {
				return true
			}
		}
		return false
	case *expression_parser.SpreadElement:
		return IsDynamic(node.Expr)
	case *expression_parser.ParenthesizedExpression:
		return IsDynamic(node.Expr)
	}
	// unrecognized expression kinds (embedded markup included) fail safe
	return true
}

// NeedsMemoWrap reports whether a dynamic expression in an insert position
// should be wrapped in a memo: conditionals and short-circuit logic would
// otherwise re-create downstream nodes on every dependency change.
func NeedsMemoWrap(ast expression_parser.AST) bool {
	switch node := ast.(type) {
	case *expression_parser.Conditional:
		return true
	case *expression_parser.Binary:
		switch node.Operation {
		case "&&", "||", "??":
			return true
		}
	case *expression_parser.ParenthesizedExpression:
		return NeedsMemoWrap(node.Expr)
	}
	return false
}
