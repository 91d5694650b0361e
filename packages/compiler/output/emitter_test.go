package output_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"jsxc-go/packages/compiler/output"
)

func TestEmitExpressionPrecedence(t *testing.T) {
	a := output.Variable("a")
	b := output.Variable("b")
	c := output.Variable("c")

	cases := []struct {
		name string
		expr output.Expression
		want string
	}{
		{
			"lower precedence operand parenthesized",
			output.NewBinaryOperatorExpr("*", output.NewBinaryOperatorExpr("+", a, b), c),
			"(a + b) * c",
		},
		{
			"higher precedence operand bare",
			output.NewBinaryOperatorExpr("+", output.NewBinaryOperatorExpr("*", a, b), c),
			"a * b + c",
		},
		{
			"nullish mixed with logical or",
			output.NewBinaryOperatorExpr("??", a, output.NewBinaryOperatorExpr("||", b, c)),
			"a ?? (b || c)",
		},
		{
			"conditional operand parenthesized",
			output.NewBinaryOperatorExpr("+", output.NewConditionalExpr(a, b, c), c),
			"(a ? b : c) + c",
		},
		{
			"nested conditional condition parenthesized",
			output.NewConditionalExpr(output.NewConditionalExpr(a, b, c), b, c),
			"(a ? b : c) ? b : c",
		},
		{
			"word operator spacing",
			output.NewUnaryOperatorExpr("typeof", output.NewReadPropExpr(a, "b")),
			"typeof a.b",
		},
		{
			"unary over binary parenthesized",
			output.NewUnaryOperatorExpr("!", output.NewBinaryOperatorExpr("&&", a, b)),
			"!(a && b)",
		},
		{
			"arrow callee parenthesized",
			output.NewInvokeFunctionExpr(output.NewArrowFunctionExpr(nil, a), nil),
			"(() => a)()",
		},
		{
			"safe member access",
			&output.ReadPropExpr{Receiver: a, Name: "b", Safe: true},
			"a?.b",
		},
		{
			"keyed read",
			output.NewReadKeyExpr(a, output.NewBinaryOperatorExpr("+", b, c)),
			"a[b + c]",
		},
		{
			"explicit grouping preserved",
			output.NewParenExpr(a),
			"(a)",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, output.EmitExpression(tc.expr)); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEmitLiterals(t *testing.T) {
	cases := []struct {
		name string
		expr output.Expression
		want string
	}{
		{"string", output.Literal("hi"), `"hi"`},
		{"string with escapes", output.Literal("a\"b\nc"), `"a\"b\nc"`},
		{"int", output.Literal(42), "42"},
		{"float", output.Literal(2.5), "2.5"},
		{"bool", output.Literal(true), "true"},
		{"null", output.Literal(nil), "null"},
		{"raw spelling", output.NewRawLiteralExpr("0x10"), "0x10"},
		{"array with elision", output.NewLiteralArrayExpr([]output.Expression{
			output.Literal(1), nil, output.Literal(2),
		}), "[1, , 2]"},
		{"empty map", output.NewLiteralMapExpr(nil), "{}"},
		{"spread", output.NewSpreadExpr(output.Variable("rest")), "...rest"},
		{"template string", output.NewTemplateStringExpr("a`b${c}\\d"), "`a\\`b\\${c}\\\\d`"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, output.EmitExpression(tc.expr)); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEmitObjectLiterals(t *testing.T) {
	t.Run("should render plain entries on one line", func(t *testing.T) {
		expr := output.NewLiteralMapExpr([]*output.LiteralMapEntry{
			{Key: "each", Value: output.Call("items")},
			{Key: "data-x", Value: output.Literal(1)},
			{Key: "note", Quoted: true, Value: output.Literal("n")},
		})
		want := `{ each: items(), "data-x": 1, "note": "n" }`
		if diff := cmp.Diff(want, output.EmitExpression(expr)); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should render getter entries across lines", func(t *testing.T) {
		expr := output.NewLiteralMapExpr([]*output.LiteralMapEntry{
			{Key: "when", Value: output.Variable("cond")},
			{Key: "children", IsGetter: true, Value: output.Call("content")},
		})
		want := "{\n" +
			"  when: cond,\n" +
			"  get children() {\n" +
			"    return content();\n" +
			"  }\n" +
			"}"
		if diff := cmp.Diff(want, output.EmitExpression(expr)); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should render spread entries", func(t *testing.T) {
		expr := output.NewLiteralMapExpr([]*output.LiteralMapEntry{
			{Spread: true, Value: output.Variable("rest")},
			{Key: "id", Value: output.Literal("x")},
		})
		want := `{ ...rest, id: "x" }`
		if diff := cmp.Diff(want, output.EmitExpression(expr)); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestEmitFunctions(t *testing.T) {
	t.Run("should drop parens around a single simple parameter", func(t *testing.T) {
		expr := output.NewArrowFunctionExpr([]string{"item"}, output.NewReadPropExpr(output.Variable("item"), "name"))
		if diff := cmp.Diff("item => item.name", output.EmitExpression(expr)); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should keep parens around rest and multiple parameters", func(t *testing.T) {
		multi := output.NewArrowFunctionExpr([]string{"a", "b"}, output.Variable("a"))
		if diff := cmp.Diff("(a, b) => a", output.EmitExpression(multi)); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
		rest := output.NewArrowFunctionExpr([]string{"...args"}, output.Variable("args"))
		if diff := cmp.Diff("(...args) => args", output.EmitExpression(rest)); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should parenthesize an object literal body", func(t *testing.T) {
		body := output.NewLiteralMapExpr([]*output.LiteralMapEntry{{Key: "x", Value: output.Literal(1)}})
		expr := output.NewArrowFunctionExpr(nil, body)
		if diff := cmp.Diff("() => ({ x: 1 })", output.EmitExpression(expr)); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestEmitStatements(t *testing.T) {
	t.Run("should render an import with aliases", func(t *testing.T) {
		stmt := output.NewImportStmt([]*output.ImportSpec{
			{Name: "template", Alias: "_$template"},
			{Name: "effect", Alias: "_$effect"},
		}, "solid-js/web")
		want := "import { template as _$template, effect as _$effect } from \"solid-js/web\";\n"
		if diff := cmp.Diff(want, output.EmitStatements([]output.Statement{stmt})); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should render a clone-and-patch closure", func(t *testing.T) {
		decls := output.NewDeclareVarsStmt("const", []*output.VarDecl{
			{Name: "_el$", Value: output.Call("_tmpl$")},
			{Name: "_el$2", Value: output.NewReadPropExpr(output.Variable("_el$"), "firstChild")},
		})
		assign := output.NewExpressionStatement(output.NewBinaryOperatorExpr("=",
			output.NewReadPropExpr(output.Variable("_el$2"), "textContent"),
			output.Variable("msg")))
		ret := output.NewReturnStatement(output.Variable("_el$"))
		closure := output.NewInvokeFunctionExpr(
			output.NewArrowFunctionBlock(nil, []output.Statement{decls, assign, ret}), nil)
		got := output.EmitStatements([]output.Statement{output.NewDeclareVarStmt("_view$", closure)})
		want := "const _view$ = (() => {\n" +
			"  const _el$ = _tmpl$(), _el$2 = _el$.firstChild;\n" +
			"  _el$2.textContent = msg;\n" +
			"  return _el$;\n" +
			"})();\n"
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should render a tagged template", func(t *testing.T) {
		expr := output.NewTaggedTemplateExpr(output.Variable("_$ssr"),
			[]string{"<div>", "</div>"},
			[]output.Expression{output.Call("_$escape", output.Variable("body"))})
		stmt := output.NewExpressionStatement(expr)
		want := "_$ssr`<div>${_$escape(body)}</div>`;\n"
		if diff := cmp.Diff(want, output.EmitStatements([]output.Statement{stmt})); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should render an untagged template with substitutions", func(t *testing.T) {
		expr := output.NewTaggedTemplateExpr(nil, []string{"a", "b"}, []output.Expression{output.Variable("x")})
		want := "`a${x}b`;\n"
		if diff := cmp.Diff(want, output.EmitStatements([]output.Statement{output.NewExpressionStatement(expr)})); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestQuoteString(t *testing.T) {
	cases := []struct{ input, want string }{
		{"plain", `"plain"`},
		{`say "hi"`, `"say \"hi\""`},
		{"tab\there", `"tab\there"`},
		{"line\nbreak", `"line\nbreak"`},
		{`back\slash`, `"back\\slash"`},
	}
	for _, tc := range cases {
		if got := output.QuoteString(tc.input); got != tc.want {
			t.Errorf("QuoteString(%q) = %s, want %s", tc.input, got, tc.want)
		}
	}
}
