package output

// Expression is the base interface for all output expressions
type Expression interface {
	VisitExpression(visitor ExpressionVisitor, context interface{}) interface{}
}

// Statement is the base interface for all output statements
type Statement interface {
	VisitStatement(visitor StatementVisitor, context interface{}) interface{}
}

// ReadVarExpr reads a variable by name
type ReadVarExpr struct {
	Name string
}

// NewReadVarExpr creates a new ReadVarExpr
func NewReadVarExpr(name string) *ReadVarExpr {
	return &ReadVarExpr{Name: name}
}

// VisitExpression implements Expression
func (r *ReadVarExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitReadVarExpr(r, context)
}

// LiteralExpr is a primitive literal. Raw, when set, is emitted verbatim and
// preserves the source spelling of numbers and keywords.
type LiteralExpr struct {
	Value interface{}
	Raw   string
}

// NewLiteralExpr creates a new LiteralExpr
func NewLiteralExpr(value interface{}) *LiteralExpr {
	return &LiteralExpr{Value: value}
}

// NewRawLiteralExpr creates a LiteralExpr emitted verbatim
func NewRawLiteralExpr(raw string) *LiteralExpr {
	return &LiteralExpr{Raw: raw}
}

// VisitExpression implements Expression
func (l *LiteralExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitLiteralExpr(l, context)
}

// TemplateStringExpr is a backtick string with no substitutions
type TemplateStringExpr struct {
	Text string
}

// NewTemplateStringExpr creates a new TemplateStringExpr
func NewTemplateStringExpr(text string) *TemplateStringExpr {
	return &TemplateStringExpr{Text: text}
}

// VisitExpression implements Expression
func (t *TemplateStringExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitTemplateStringExpr(t, context)
}

// TaggedTemplateExpr is tag`...${expr}...`. Strings always outnumber
// Expressions by one.
type TaggedTemplateExpr struct {
	Tag         Expression
	Strings     []string
	Expressions []Expression
}

// NewTaggedTemplateExpr creates a new TaggedTemplateExpr
func NewTaggedTemplateExpr(tag Expression, strings []string, expressions []Expression) *TaggedTemplateExpr {
	return &TaggedTemplateExpr{Tag: tag, Strings: strings, Expressions: expressions}
}

// VisitExpression implements Expression
func (t *TaggedTemplateExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitTaggedTemplateExpr(t, context)
}

// LiteralArrayExpr is an array literal; a nil entry is an elision
type LiteralArrayExpr struct {
	Entries []Expression
}

// NewLiteralArrayExpr creates a new LiteralArrayExpr
func NewLiteralArrayExpr(entries []Expression) *LiteralArrayExpr {
	return &LiteralArrayExpr{Entries: entries}
}

// VisitExpression implements Expression
func (l *LiteralArrayExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitLiteralArrayExpr(l, context)
}

// LiteralMapEntry is one entry of an object literal. Getter entries preserve
// lazy re-evaluation across a props boundary; spread entries have no key.
type LiteralMapEntry struct {
	Key      string
	Quoted   bool
	IsGetter bool
	Spread   bool
	Value    Expression
}

// LiteralMapExpr is an object literal with ordered entries
type LiteralMapExpr struct {
	Entries []*LiteralMapEntry
}

// NewLiteralMapExpr creates a new LiteralMapExpr
func NewLiteralMapExpr(entries []*LiteralMapEntry) *LiteralMapExpr {
	return &LiteralMapExpr{Entries: entries}
}

// VisitExpression implements Expression
func (l *LiteralMapExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitLiteralMapExpr(l, context)
}

// InvokeFunctionExpr calls Fn with Args
type InvokeFunctionExpr struct {
	Fn   Expression
	Args []Expression
}

// NewInvokeFunctionExpr creates a new InvokeFunctionExpr
func NewInvokeFunctionExpr(fn Expression, args []Expression) *InvokeFunctionExpr {
	return &InvokeFunctionExpr{Fn: fn, Args: args}
}

// VisitExpression implements Expression
func (i *InvokeFunctionExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitInvokeFunctionExpr(i, context)
}

// ArrowFunctionExpr is a function-valued expression. Exactly one of BodyExpr,
// BodyStmts or RawBody is used, checked in that order.
type ArrowFunctionExpr struct {
	Params    []string
	BodyExpr  Expression
	BodyStmts []Statement
	RawBody   string
	// IsFunction emits "function" syntax instead of an arrow
	IsFunction bool
	Name       string
}

// NewArrowFunctionExpr creates an arrow function with an expression body
func NewArrowFunctionExpr(params []string, bodyExpr Expression) *ArrowFunctionExpr {
	return &ArrowFunctionExpr{Params: params, BodyExpr: bodyExpr}
}

// NewArrowFunctionBlock creates an arrow function with a statement body
func NewArrowFunctionBlock(params []string, stmts []Statement) *ArrowFunctionExpr {
	return &ArrowFunctionExpr{Params: params, BodyStmts: stmts}
}

// VisitExpression implements Expression
func (a *ArrowFunctionExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitArrowFunctionExpr(a, context)
}

// BinaryOperatorExpr applies a binary operator
type BinaryOperatorExpr struct {
	Operator string
	Lhs      Expression
	Rhs      Expression
}

// NewBinaryOperatorExpr creates a new BinaryOperatorExpr
func NewBinaryOperatorExpr(operator string, lhs, rhs Expression) *BinaryOperatorExpr {
	return &BinaryOperatorExpr{Operator: operator, Lhs: lhs, Rhs: rhs}
}

// VisitExpression implements Expression
func (b *BinaryOperatorExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitBinaryOperatorExpr(b, context)
}

// UnaryOperatorExpr applies a prefix operator
type UnaryOperatorExpr struct {
	Operator string
	Expr     Expression
}

// NewUnaryOperatorExpr creates a new UnaryOperatorExpr
func NewUnaryOperatorExpr(operator string, expr Expression) *UnaryOperatorExpr {
	return &UnaryOperatorExpr{Operator: operator, Expr: expr}
}

// VisitExpression implements Expression
func (u *UnaryOperatorExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitUnaryOperatorExpr(u, context)
}

// ConditionalExpr is a ternary conditional
type ConditionalExpr struct {
	Condition Expression
	TrueCase  Expression
	FalseCase Expression
}

// NewConditionalExpr creates a new ConditionalExpr
func NewConditionalExpr(condition, trueCase, falseCase Expression) *ConditionalExpr {
	return &ConditionalExpr{Condition: condition, TrueCase: trueCase, FalseCase: falseCase}
}

// VisitExpression implements Expression
func (c *ConditionalExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitConditionalExpr(c, context)
}

// ReadPropExpr is a static member read
type ReadPropExpr struct {
	Receiver Expression
	Name     string
	Safe     bool
}

// NewReadPropExpr creates a new ReadPropExpr
func NewReadPropExpr(receiver Expression, name string) *ReadPropExpr {
	return &ReadPropExpr{Receiver: receiver, Name: name}
}

// VisitExpression implements Expression
func (r *ReadPropExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitReadPropExpr(r, context)
}

// ReadKeyExpr is a computed member read
type ReadKeyExpr struct {
	Receiver Expression
	Index    Expression
}

// NewReadKeyExpr creates a new ReadKeyExpr
func NewReadKeyExpr(receiver Expression, index Expression) *ReadKeyExpr {
	return &ReadKeyExpr{Receiver: receiver, Index: index}
}

// VisitExpression implements Expression
func (r *ReadKeyExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitReadKeyExpr(r, context)
}

// ParenExpr preserves explicit grouping
type ParenExpr struct {
	Expr Expression
}

// NewParenExpr creates a new ParenExpr
func NewParenExpr(expr Expression) *ParenExpr {
	return &ParenExpr{Expr: expr}
}

// VisitExpression implements Expression
func (p *ParenExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitParenExpr(p, context)
}

// RawExpr is emitted verbatim. Used only for function bodies the expression
// parser carries as opaque text; generated code never goes through it.
type RawExpr struct {
	Text string
}

// NewRawExpr creates a new RawExpr
func NewRawExpr(text string) *RawExpr {
	return &RawExpr{Text: text}
}

// VisitExpression implements Expression
func (r *RawExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitRawExpr(r, context)
}

// SpreadExpr is "...expr" inside an array literal or argument list
type SpreadExpr struct {
	Expr Expression
}

// NewSpreadExpr creates a new SpreadExpr
func NewSpreadExpr(expr Expression) *SpreadExpr {
	return &SpreadExpr{Expr: expr}
}

// VisitExpression implements Expression
func (s *SpreadExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitSpreadExpr(s, context)
}

// ExpressionVisitor is the interface for visiting output expressions
type ExpressionVisitor interface {
	VisitReadVarExpr(expr *ReadVarExpr, context interface{}) interface{}
	VisitLiteralExpr(expr *LiteralExpr, context interface{}) interface{}
	VisitTemplateStringExpr(expr *TemplateStringExpr, context interface{}) interface{}
	VisitTaggedTemplateExpr(expr *TaggedTemplateExpr, context interface{}) interface{}
	VisitLiteralArrayExpr(expr *LiteralArrayExpr, context interface{}) interface{}
	VisitLiteralMapExpr(expr *LiteralMapExpr, context interface{}) interface{}
	VisitInvokeFunctionExpr(expr *InvokeFunctionExpr, context interface{}) interface{}
	VisitArrowFunctionExpr(expr *ArrowFunctionExpr, context interface{}) interface{}
	VisitBinaryOperatorExpr(expr *BinaryOperatorExpr, context interface{}) interface{}
	VisitUnaryOperatorExpr(expr *UnaryOperatorExpr, context interface{}) interface{}
	VisitConditionalExpr(expr *ConditionalExpr, context interface{}) interface{}
	VisitReadPropExpr(expr *ReadPropExpr, context interface{}) interface{}
	VisitReadKeyExpr(expr *ReadKeyExpr, context interface{}) interface{}
	VisitParenExpr(expr *ParenExpr, context interface{}) interface{}
	VisitRawExpr(expr *RawExpr, context interface{}) interface{}
	VisitSpreadExpr(expr *SpreadExpr, context interface{}) interface{}
}

// VarDecl is one declarator of a declaration statement
type VarDecl struct {
	Name  string
	Value Expression
}

// DeclareVarStmt declares one or more variables with a single keyword
type DeclareVarStmt struct {
	Keyword string
	Decls   []*VarDecl
}

// NewDeclareVarStmt creates a single-variable const declaration
func NewDeclareVarStmt(name string, value Expression) *DeclareVarStmt {
	return &DeclareVarStmt{Keyword: "const", Decls: []*VarDecl{{Name: name, Value: value}}}
}

// NewDeclareVarsStmt creates a multi-declarator declaration
func NewDeclareVarsStmt(keyword string, decls []*VarDecl) *DeclareVarStmt {
	return &DeclareVarStmt{Keyword: keyword, Decls: decls}
}

// VisitStatement implements Statement
func (d *DeclareVarStmt) VisitStatement(visitor StatementVisitor, context interface{}) interface{} {
	return visitor.VisitDeclareVarStmt(d, context)
}

// ExpressionStatement evaluates an expression for effect
type ExpressionStatement struct {
	Expr Expression
}

// NewExpressionStatement creates a new ExpressionStatement
func NewExpressionStatement(expr Expression) *ExpressionStatement {
	return &ExpressionStatement{Expr: expr}
}

// VisitStatement implements Statement
func (e *ExpressionStatement) VisitStatement(visitor StatementVisitor, context interface{}) interface{} {
	return visitor.VisitExpressionStatement(e, context)
}

// ReturnStatement returns a value
type ReturnStatement struct {
	Value Expression
}

// NewReturnStatement creates a new ReturnStatement
func NewReturnStatement(value Expression) *ReturnStatement {
	return &ReturnStatement{Value: value}
}

// VisitStatement implements Statement
func (r *ReturnStatement) VisitStatement(visitor StatementVisitor, context interface{}) interface{} {
	return visitor.VisitReturnStatement(r, context)
}

// ImportSpec is one imported name with its local alias
type ImportSpec struct {
	Name  string
	Alias string
}

// ImportStmt imports names from a module
type ImportStmt struct {
	Specs  []*ImportSpec
	Module string
}

// NewImportStmt creates a new ImportStmt
func NewImportStmt(specs []*ImportSpec, module string) *ImportStmt {
	return &ImportStmt{Specs: specs, Module: module}
}

// VisitStatement implements Statement
func (i *ImportStmt) VisitStatement(visitor StatementVisitor, context interface{}) interface{} {
	return visitor.VisitImportStmt(i, context)
}

// StatementVisitor is the interface for visiting output statements
type StatementVisitor interface {
	VisitDeclareVarStmt(stmt *DeclareVarStmt, context interface{}) interface{}
	VisitExpressionStatement(stmt *ExpressionStatement, context interface{}) interface{}
	VisitReturnStatement(stmt *ReturnStatement, context interface{}) interface{}
	VisitImportStmt(stmt *ImportStmt, context interface{}) interface{}
}

// Variable returns a ReadVarExpr
func Variable(name string) *ReadVarExpr { return NewReadVarExpr(name) }

// Literal returns a LiteralExpr for a value
func Literal(value interface{}) *LiteralExpr { return NewLiteralExpr(value) }

// Call returns an invocation of a named function
func Call(name string, args ...Expression) *InvokeFunctionExpr {
	return NewInvokeFunctionExpr(NewReadVarExpr(name), args)
}

// Thunk wraps an expression in a zero-argument arrow function
func Thunk(expr Expression) *ArrowFunctionExpr {
	return NewArrowFunctionExpr(nil, expr)
}
