package output

import (
	"fmt"
	"strconv"
	"strings"
)

var indentWith = "  "

// EmittedLine represents a line being emitted
type EmittedLine struct {
	Parts  []string
	Indent int
}

// EmitterVisitorContext accumulates printed lines with indentation
type EmitterVisitorContext struct {
	lines  []*EmittedLine
	indent int
}

// NewEmitterVisitorContext creates a new EmitterVisitorContext
func NewEmitterVisitorContext() *EmitterVisitorContext {
	return &EmitterVisitorContext{lines: []*EmittedLine{{Indent: 0}}}
}

func (ctx *EmitterVisitorContext) currentLine() *EmittedLine {
	return ctx.lines[len(ctx.lines)-1]
}

// LineIsEmpty checks if the current line is empty
func (ctx *EmitterVisitorContext) LineIsEmpty() bool {
	return len(ctx.currentLine().Parts) == 0
}

// Print appends a part to the current line
func (ctx *EmitterVisitorContext) Print(part string) {
	if part != "" {
		line := ctx.currentLine()
		line.Parts = append(line.Parts, part)
	}
}

// Println appends a part and terminates the line
func (ctx *EmitterVisitorContext) Println(part string) {
	ctx.Print(part)
	ctx.lines = append(ctx.lines, &EmittedLine{Indent: ctx.indent})
}

// IncIndent increases the indent
func (ctx *EmitterVisitorContext) IncIndent() {
	ctx.indent++
	if ctx.LineIsEmpty() {
		ctx.currentLine().Indent = ctx.indent
	}
}

// DecIndent decreases the indent
func (ctx *EmitterVisitorContext) DecIndent() {
	ctx.indent--
	if ctx.LineIsEmpty() {
		ctx.currentLine().Indent = ctx.indent
	}
}

// Source renders the accumulated lines
func (ctx *EmitterVisitorContext) Source() string {
	var buf strings.Builder
	for i, line := range ctx.lines {
		if i == len(ctx.lines)-1 && len(line.Parts) == 0 {
			break
		}
		if len(line.Parts) > 0 {
			buf.WriteString(strings.Repeat(indentWith, line.Indent))
			for _, part := range line.Parts {
				buf.WriteString(part)
			}
		}
		buf.WriteString("\n")
	}
	return buf.String()
}

// JsEmitterVisitor lowers the output AST to JavaScript source text
type JsEmitterVisitor struct{}

// NewJsEmitterVisitor creates a new JsEmitterVisitor
func NewJsEmitterVisitor() *JsEmitterVisitor {
	return &JsEmitterVisitor{}
}

// EmitStatements renders a list of statements as a source string
func EmitStatements(stmts []Statement) string {
	visitor := NewJsEmitterVisitor()
	ctx := NewEmitterVisitorContext()
	for _, stmt := range stmts {
		stmt.VisitStatement(visitor, ctx)
	}
	return ctx.Source()
}

// EmitExpression renders a single expression as a source string
func EmitExpression(expr Expression) string {
	visitor := NewJsEmitterVisitor()
	ctx := NewEmitterVisitorContext()
	expr.VisitExpression(visitor, ctx)
	var buf strings.Builder
	for i, line := range ctx.lines {
		if len(line.Parts) == 0 {
			continue
		}
		if i > 0 {
			buf.WriteString("\n")
			buf.WriteString(strings.Repeat(indentWith, line.Indent))
		}
		for _, part := range line.Parts {
			buf.WriteString(part)
		}
	}
	return buf.String()
}

func (v *JsEmitterVisitor) getContext(context interface{}) *EmitterVisitorContext {
	return context.(*EmitterVisitorContext)
}

// VisitDeclareVarStmt visits a variable declaration statement
func (v *JsEmitterVisitor) VisitDeclareVarStmt(stmt *DeclareVarStmt, context interface{}) interface{} {
	ctx := v.getContext(context)
	ctx.Print(stmt.Keyword + " ")
	for i, decl := range stmt.Decls {
		if i > 0 {
			ctx.Print(", ")
		}
		ctx.Print(decl.Name)
		if decl.Value != nil {
			ctx.Print(" = ")
			decl.Value.VisitExpression(v, ctx)
		}
	}
	ctx.Println(";")
	return nil
}

// VisitExpressionStatement visits an expression statement
func (v *JsEmitterVisitor) VisitExpressionStatement(stmt *ExpressionStatement, context interface{}) interface{} {
	ctx := v.getContext(context)
	stmt.Expr.VisitExpression(v, ctx)
	ctx.Println(";")
	return nil
}

// VisitReturnStatement visits a return statement
func (v *JsEmitterVisitor) VisitReturnStatement(stmt *ReturnStatement, context interface{}) interface{} {
	ctx := v.getContext(context)
	ctx.Print("return ")
	stmt.Value.VisitExpression(v, ctx)
	ctx.Println(";")
	return nil
}

// VisitImportStmt visits an import statement
func (v *JsEmitterVisitor) VisitImportStmt(stmt *ImportStmt, context interface{}) interface{} {
	ctx := v.getContext(context)
	ctx.Print("import { ")
	for i, spec := range stmt.Specs {
		if i > 0 {
			ctx.Print(", ")
		}
		if spec.Alias == "" || spec.Alias == spec.Name {
			ctx.Print(spec.Name)
		} else {
			ctx.Print(spec.Name + " as " + spec.Alias)
		}
	}
	ctx.Println(fmt.Sprintf(" } from %s;", QuoteString(stmt.Module)))
	return nil
}

// VisitReadVarExpr visits a variable read
func (v *JsEmitterVisitor) VisitReadVarExpr(expr *ReadVarExpr, context interface{}) interface{} {
	v.getContext(context).Print(expr.Name)
	return nil
}

// VisitLiteralExpr visits a literal
func (v *JsEmitterVisitor) VisitLiteralExpr(expr *LiteralExpr, context interface{}) interface{} {
	ctx := v.getContext(context)
	if expr.Raw != "" {
		ctx.Print(expr.Raw)
		return nil
	}
	switch value := expr.Value.(type) {
	case nil:
		ctx.Print("null")
	case string:
		ctx.Print(QuoteString(value))
	case bool:
		ctx.Print(strconv.FormatBool(value))
	case int:
		ctx.Print(strconv.Itoa(value))
	case float64:
		ctx.Print(strconv.FormatFloat(value, 'g', -1, 64))
	default:
		ctx.Print(fmt.Sprintf("%v", value))
	}
	return nil
}

// VisitTemplateStringExpr visits a backtick string
func (v *JsEmitterVisitor) VisitTemplateStringExpr(expr *TemplateStringExpr, context interface{}) interface{} {
	v.getContext(context).Print("`" + escapeTemplateText(expr.Text) + "`")
	return nil
}

// VisitTaggedTemplateExpr visits a tagged template literal
func (v *JsEmitterVisitor) VisitTaggedTemplateExpr(expr *TaggedTemplateExpr, context interface{}) interface{} {
	ctx := v.getContext(context)
	// a nil tag renders a plain template literal
	if expr.Tag != nil {
		expr.Tag.VisitExpression(v, ctx)
	}
	ctx.Print("`")
	for i, text := range expr.Strings {
		ctx.Print(escapeTemplateText(text))
		if i < len(expr.Expressions) {
			ctx.Print("${")
			expr.Expressions[i].VisitExpression(v, ctx)
			ctx.Print("}")
		}
	}
	ctx.Print("`")
	return nil
}

// VisitLiteralArrayExpr visits an array literal
func (v *JsEmitterVisitor) VisitLiteralArrayExpr(expr *LiteralArrayExpr, context interface{}) interface{} {
	ctx := v.getContext(context)
	ctx.Print("[")
	for i, entry := range expr.Entries {
		if i > 0 {
			ctx.Print(", ")
		}
		if entry == nil {
			continue
		}
		entry.VisitExpression(v, ctx)
	}
	ctx.Print("]")
	return nil
}

// VisitLiteralMapExpr visits an object literal. Getter entries force a
// multi-line rendering.
func (v *JsEmitterVisitor) VisitLiteralMapExpr(expr *LiteralMapExpr, context interface{}) interface{} {
	ctx := v.getContext(context)
	if len(expr.Entries) == 0 {
		ctx.Print("{}")
		return nil
	}
	multiline := false
	for _, entry := range expr.Entries {
		if entry.IsGetter || rendersMultiline(entry.Value) {
			multiline = true
			break
		}
	}

	if !multiline {
		ctx.Print("{ ")
		for i, entry := range expr.Entries {
			if i > 0 {
				ctx.Print(", ")
			}
			v.emitMapEntry(entry, ctx)
		}
		ctx.Print(" }")
		return nil
	}

	ctx.Println("{")
	ctx.IncIndent()
	for i, entry := range expr.Entries {
		v.emitMapEntry(entry, ctx)
		if i < len(expr.Entries)-1 {
			ctx.Print(",")
		}
		ctx.Println("")
	}
	ctx.DecIndent()
	ctx.Print("}")
	return nil
}

func (v *JsEmitterVisitor) emitMapEntry(entry *LiteralMapEntry, ctx *EmitterVisitorContext) {
	switch {
	case entry.Spread:
		ctx.Print("...")
		entry.Value.VisitExpression(v, ctx)
	case entry.IsGetter:
		ctx.Println(fmt.Sprintf("get %s() {", v.mapKey(entry)))
		ctx.IncIndent()
		ctx.Print("return ")
		entry.Value.VisitExpression(v, ctx)
		ctx.Println(";")
		ctx.DecIndent()
		ctx.Print("}")
	default:
		ctx.Print(v.mapKey(entry) + ": ")
		entry.Value.VisitExpression(v, ctx)
	}
}

func (v *JsEmitterVisitor) mapKey(entry *LiteralMapEntry) string {
	if entry.Quoted || !isLegalIdentifier(entry.Key) {
		return QuoteString(entry.Key)
	}
	return entry.Key
}

// VisitInvokeFunctionExpr visits a call
func (v *JsEmitterVisitor) VisitInvokeFunctionExpr(expr *InvokeFunctionExpr, context interface{}) interface{} {
	ctx := v.getContext(context)
	v.emitMaybeParen(expr.Fn, calleeNeedsParens(expr.Fn), ctx)
	ctx.Print("(")
	for i, arg := range expr.Args {
		if i > 0 {
			ctx.Print(", ")
		}
		arg.VisitExpression(v, ctx)
	}
	ctx.Print(")")
	return nil
}

// VisitArrowFunctionExpr visits a function-valued expression
func (v *JsEmitterVisitor) VisitArrowFunctionExpr(expr *ArrowFunctionExpr, context interface{}) interface{} {
	ctx := v.getContext(context)
	if expr.IsFunction {
		name := ""
		if expr.Name != "" {
			name = " " + expr.Name
		}
		ctx.Println(fmt.Sprintf("function%s(%s) {", name, strings.Join(expr.Params, ", ")))
		v.emitFunctionBody(expr, ctx)
		return nil
	}

	if len(expr.Params) == 1 && !strings.HasPrefix(expr.Params[0], "...") {
		ctx.Print(expr.Params[0])
	} else {
		ctx.Print("(" + strings.Join(expr.Params, ", ") + ")")
	}
	ctx.Print(" => ")
	switch {
	case expr.BodyExpr != nil:
		// an object literal body must be parenthesized
		if _, isMap := expr.BodyExpr.(*LiteralMapExpr); isMap {
			ctx.Print("(")
			expr.BodyExpr.VisitExpression(v, ctx)
			ctx.Print(")")
		} else {
			expr.BodyExpr.VisitExpression(v, ctx)
		}
	default:
		ctx.Println("{")
		v.emitFunctionBody(expr, ctx)
	}
	return nil
}

func (v *JsEmitterVisitor) emitFunctionBody(expr *ArrowFunctionExpr, ctx *EmitterVisitorContext) {
	ctx.IncIndent()
	if expr.RawBody != "" {
		for _, line := range strings.Split(strings.TrimSpace(expr.RawBody), "\n") {
			ctx.Println(strings.TrimSpace(line))
		}
	}
	for _, stmt := range expr.BodyStmts {
		stmt.VisitStatement(v, ctx)
	}
	ctx.DecIndent()
	ctx.Print("}")
}

// VisitBinaryOperatorExpr visits a binary expression
func (v *JsEmitterVisitor) VisitBinaryOperatorExpr(expr *BinaryOperatorExpr, context interface{}) interface{} {
	ctx := v.getContext(context)
	v.emitMaybeParen(expr.Lhs, operandNeedsParens(expr.Operator, expr.Lhs), ctx)
	ctx.Print(" " + expr.Operator + " ")
	v.emitMaybeParen(expr.Rhs, operandNeedsParens(expr.Operator, expr.Rhs), ctx)
	return nil
}

// VisitUnaryOperatorExpr visits a unary expression
func (v *JsEmitterVisitor) VisitUnaryOperatorExpr(expr *UnaryOperatorExpr, context interface{}) interface{} {
	ctx := v.getContext(context)
	ctx.Print(expr.Operator)
	if isWordOperator(expr.Operator) {
		ctx.Print(" ")
	}
	needsParens := false
	switch expr.Expr.(type) {
	case *BinaryOperatorExpr, *ConditionalExpr, *ArrowFunctionExpr:
		needsParens = true
	}
	v.emitMaybeParen(expr.Expr, needsParens, ctx)
	return nil
}

// VisitConditionalExpr visits a ternary conditional
func (v *JsEmitterVisitor) VisitConditionalExpr(expr *ConditionalExpr, context interface{}) interface{} {
	ctx := v.getContext(context)
	needsParens := false
	switch expr.Condition.(type) {
	case *ConditionalExpr, *ArrowFunctionExpr:
		needsParens = true
	}
	v.emitMaybeParen(expr.Condition, needsParens, ctx)
	ctx.Print(" ? ")
	expr.TrueCase.VisitExpression(v, ctx)
	ctx.Print(" : ")
	expr.FalseCase.VisitExpression(v, ctx)
	return nil
}

// VisitReadPropExpr visits a static member read
func (v *JsEmitterVisitor) VisitReadPropExpr(expr *ReadPropExpr, context interface{}) interface{} {
	ctx := v.getContext(context)
	v.emitMaybeParen(expr.Receiver, receiverNeedsParens(expr.Receiver), ctx)
	if expr.Safe {
		ctx.Print("?.")
	} else {
		ctx.Print(".")
	}
	ctx.Print(expr.Name)
	return nil
}

// VisitReadKeyExpr visits a computed member read
func (v *JsEmitterVisitor) VisitReadKeyExpr(expr *ReadKeyExpr, context interface{}) interface{} {
	ctx := v.getContext(context)
	v.emitMaybeParen(expr.Receiver, receiverNeedsParens(expr.Receiver), ctx)
	ctx.Print("[")
	expr.Index.VisitExpression(v, ctx)
	ctx.Print("]")
	return nil
}

// VisitParenExpr visits an explicit grouping
func (v *JsEmitterVisitor) VisitParenExpr(expr *ParenExpr, context interface{}) interface{} {
	ctx := v.getContext(context)
	ctx.Print("(")
	expr.Expr.VisitExpression(v, ctx)
	ctx.Print(")")
	return nil
}

// VisitRawExpr visits verbatim text
func (v *JsEmitterVisitor) VisitRawExpr(expr *RawExpr, context interface{}) interface{} {
	v.getContext(context).Print(expr.Text)
	return nil
}

// VisitSpreadExpr visits a spread
func (v *JsEmitterVisitor) VisitSpreadExpr(expr *SpreadExpr, context interface{}) interface{} {
	ctx := v.getContext(context)
	ctx.Print("...")
	expr.Expr.VisitExpression(v, ctx)
	return nil
}

func (v *JsEmitterVisitor) emitMaybeParen(expr Expression, needsParens bool, ctx *EmitterVisitorContext) {
	if needsParens {
		ctx.Print("(")
		expr.VisitExpression(v, ctx)
		ctx.Print(")")
		return
	}
	expr.VisitExpression(v, ctx)
}

var binaryPrecedence = map[string]int{
	"=": 1, "+=": 1, "-=": 1, "*=": 1, "/=": 1,
	"??": 2,
	"||": 3,
	"&&": 4,
	"|":  5, "^": 6, "&": 7,
	"==": 8, "!=": 8, "===": 8, "!==": 8,
	"<": 9, ">": 9, "<=": 9, ">=": 9, "in": 9, "instanceof": 9,
	"<<": 10, ">>": 10, ">>>": 10,
	"+": 11, "-": 11,
	"*": 12, "/": 12, "%": 12,
	"**": 13,
}

func operandNeedsParens(parentOp string, child Expression) bool {
	switch child := child.(type) {
	case *BinaryOperatorExpr:
		// mixing ?? with || or && requires explicit grouping; otherwise
		// parenthesize only strictly lower precedence
		if parentOp == "??" && (child.Operator == "||" || child.Operator == "&&") {
			return true
		}
		if (parentOp == "||" || parentOp == "&&") && child.Operator == "??" {
			return true
		}
		return binaryPrecedence[child.Operator] < binaryPrecedence[parentOp]
	case *ConditionalExpr, *ArrowFunctionExpr:
		return true
	}
	return false
}

func calleeNeedsParens(fn Expression) bool {
	switch fn.(type) {
	case *ArrowFunctionExpr, *ConditionalExpr, *BinaryOperatorExpr:
		return true
	}
	return false
}

func receiverNeedsParens(receiver Expression) bool {
	switch receiver.(type) {
	case *ArrowFunctionExpr, *ConditionalExpr, *BinaryOperatorExpr, *UnaryOperatorExpr, *LiteralMapExpr:
		return true
	}
	return false
}

// rendersMultiline reports whether an expression prints across several lines,
// forcing the enclosing object literal onto multiple lines as well
func rendersMultiline(expr Expression) bool {
	switch e := expr.(type) {
	case *ArrowFunctionExpr:
		return e.IsFunction || e.BodyExpr == nil || rendersMultiline(e.BodyExpr)
	case *InvokeFunctionExpr:
		if rendersMultiline(e.Fn) {
			return true
		}
		for _, arg := range e.Args {
			if rendersMultiline(arg) {
				return true
			}
		}
	case *LiteralMapExpr:
		for _, entry := range e.Entries {
			if entry.IsGetter || rendersMultiline(entry.Value) {
				return true
			}
		}
	case *ParenExpr:
		return rendersMultiline(e.Expr)
	}
	return false
}

func isWordOperator(op string) bool {
	switch op {
	case "typeof", "void", "new", "delete":
		return true
	}
	return false
}

// QuoteString renders a double-quoted JavaScript string literal
func QuoteString(s string) string {
	var buf strings.Builder
	buf.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"':
			buf.WriteString("\\\"")
		case '\\':
			buf.WriteString("\\\\")
		case '\n':
			buf.WriteString("\\n")
		case '\r':
			buf.WriteString("\\r")
		case '\t':
			buf.WriteString("\\t")
		default:
			buf.WriteByte(c)
		}
	}
	buf.WriteByte('"')
	return buf.String()
}

func escapeTemplateText(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "`", "\\`")
	s = strings.ReplaceAll(s, "${", "\\${")
	return s
}

func isLegalIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= '0' && c <= '9' {
			if i == 0 {
				return false
			}
			continue
		}
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_' || c == '$' {
			continue
		}
		return false
	}
	return true
}
