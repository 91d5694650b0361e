package expression_parser

// ParseSpan represents a span within a parsed expression
type ParseSpan struct {
	Start int
	End   int
}

// NewParseSpan creates a new ParseSpan
func NewParseSpan(start, end int) *ParseSpan {
	return &ParseSpan{Start: start, End: end}
}

// AST is the base interface for all expression nodes
type AST interface {
	Span() *ParseSpan
	Visit(visitor AstVisitor, context interface{}) interface{}
}

// EmptyExpr represents an empty expression
type EmptyExpr struct {
	span *ParseSpan
}

// NewEmptyExpr creates a new EmptyExpr
func NewEmptyExpr(span *ParseSpan) *EmptyExpr {
	return &EmptyExpr{span: span}
}

// Span returns the parse span
func (e *EmptyExpr) Span() *ParseSpan { return e.span }

// Visit implements the AST interface
func (e *EmptyExpr) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitEmptyExpr(e, context)
}

// LiteralPrimitive represents a string, number, boolean, null or undefined
// literal. Raw preserves the source spelling for byte-faithful re-emission.
type LiteralPrimitive struct {
	span  *ParseSpan
	Value interface{}
	Raw   string
}

// NewLiteralPrimitive creates a new LiteralPrimitive
func NewLiteralPrimitive(span *ParseSpan, value interface{}, raw string) *LiteralPrimitive {
	return &LiteralPrimitive{span: span, Value: value, Raw: raw}
}

// Span returns the parse span
func (l *LiteralPrimitive) Span() *ParseSpan { return l.span }

// Visit implements the AST interface
func (l *LiteralPrimitive) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitLiteralPrimitive(l, context)
}

// TemplateLiteralElement is one cooked text chunk of a template literal
type TemplateLiteralElement struct {
	span *ParseSpan
	Text string
}

// NewTemplateLiteralElement creates a new TemplateLiteralElement
func NewTemplateLiteralElement(span *ParseSpan, text string) *TemplateLiteralElement {
	return &TemplateLiteralElement{span: span, Text: text}
}

// Span returns the parse span
func (t *TemplateLiteralElement) Span() *ParseSpan { return t.span }

// TemplateLiteral represents a backtick template literal. Elements always
// outnumber Expressions by one.
type TemplateLiteral struct {
	span        *ParseSpan
	Elements    []*TemplateLiteralElement
	Expressions []AST
}

// NewTemplateLiteral creates a new TemplateLiteral
func NewTemplateLiteral(span *ParseSpan, elements []*TemplateLiteralElement, expressions []AST) *TemplateLiteral {
	return &TemplateLiteral{span: span, Elements: elements, Expressions: expressions}
}

// Span returns the parse span
func (t *TemplateLiteral) Span() *ParseSpan { return t.span }

// Visit implements the AST interface
func (t *TemplateLiteral) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitTemplateLiteral(t, context)
}

// Identifier represents a bare identifier reference
type Identifier struct {
	span *ParseSpan
	Name string
}

// NewIdentifier creates a new Identifier
func NewIdentifier(span *ParseSpan, name string) *Identifier {
	return &Identifier{span: span, Name: name}
}

// Span returns the parse span
func (i *Identifier) Span() *ParseSpan { return i.span }

// Visit implements the AST interface
func (i *Identifier) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitIdentifier(i, context)
}

// PropertyRead represents a static member access (a.b)
type PropertyRead struct {
	span     *ParseSpan
	Receiver AST
	Name     string
	// Safe marks optional chaining (a?.b)
	Safe bool
}

// NewPropertyRead creates a new PropertyRead
func NewPropertyRead(span *ParseSpan, receiver AST, name string, safe bool) *PropertyRead {
	return &PropertyRead{span: span, Receiver: receiver, Name: name, Safe: safe}
}

// Span returns the parse span
func (p *PropertyRead) Span() *ParseSpan { return p.span }

// Visit implements the AST interface
func (p *PropertyRead) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitPropertyRead(p, context)
}

// KeyedRead represents a computed member access (a[b])
type KeyedRead struct {
	span     *ParseSpan
	Receiver AST
	Key      AST
}

// NewKeyedRead creates a new KeyedRead
func NewKeyedRead(span *ParseSpan, receiver AST, key AST) *KeyedRead {
	return &KeyedRead{span: span, Receiver: receiver, Key: key}
}

// Span returns the parse span
func (k *KeyedRead) Span() *ParseSpan { return k.span }

// Visit implements the AST interface
func (k *KeyedRead) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitKeyedRead(k, context)
}

// Call represents a call expression
type Call struct {
	span     *ParseSpan
	Receiver AST
	Args     []AST
}

// NewCall creates a new Call
func NewCall(span *ParseSpan, receiver AST, args []AST) *Call {
	return &Call{span: span, Receiver: receiver, Args: args}
}

// Span returns the parse span
func (c *Call) Span() *ParseSpan { return c.span }

// Visit implements the AST interface
func (c *Call) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitCall(c, context)
}

// Unary represents a prefix unary expression
type Unary struct {
	span     *ParseSpan
	Operator string
	Expr     AST
}

// NewUnary creates a new Unary
func NewUnary(span *ParseSpan, operator string, expr AST) *Unary {
	return &Unary{span: span, Operator: operator, Expr: expr}
}

// Span returns the parse span
func (u *Unary) Span() *ParseSpan { return u.span }

// Visit implements the AST interface
func (u *Unary) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitUnary(u, context)
}

// Binary represents a binary or logical expression
type Binary struct {
	span      *ParseSpan
	Operation string
	Left      AST
	Right     AST
}

// NewBinary creates a new Binary
func NewBinary(span *ParseSpan, operation string, left, right AST) *Binary {
	return &Binary{span: span, Operation: operation, Left: left, Right: right}
}

// Span returns the parse span
func (b *Binary) Span() *ParseSpan { return b.span }

// Visit implements the AST interface
func (b *Binary) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitBinary(b, context)
}

// Conditional represents a ternary conditional expression
type Conditional struct {
	span      *ParseSpan
	Condition AST
	TrueExpr  AST
	FalseExpr AST
}

// NewConditional creates a new Conditional
func NewConditional(span *ParseSpan, condition, trueExpr, falseExpr AST) *Conditional {
	return &Conditional{span: span, Condition: condition, TrueExpr: trueExpr, FalseExpr: falseExpr}
}

// Span returns the parse span
func (c *Conditional) Span() *ParseSpan { return c.span }

// Visit implements the AST interface
func (c *Conditional) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitConditional(c, context)
}

// ArrayLiteral represents an array literal. A nil element is an elision.
type ArrayLiteral struct {
	span     *ParseSpan
	Elements []AST
}

// NewArrayLiteral creates a new ArrayLiteral
func NewArrayLiteral(span *ParseSpan, elements []AST) *ArrayLiteral {
	return &ArrayLiteral{span: span, Elements: elements}
}

// Span returns the parse span
func (a *ArrayLiteral) Span() *ParseSpan { return a.span }

// Visit implements the AST interface
func (a *ArrayLiteral) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitArrayLiteral(a, context)
}

// ObjectLiteralProperty is one entry of an object literal. Spread entries have
// no key; shorthand entries carry an Identifier value named after the key.
type ObjectLiteralProperty struct {
	Key    string
	Quoted bool
	Spread bool
	Value  AST
}

// ObjectLiteral represents an object literal with ordered entries
type ObjectLiteral struct {
	span       *ParseSpan
	Properties []*ObjectLiteralProperty
}

// NewObjectLiteral creates a new ObjectLiteral
func NewObjectLiteral(span *ParseSpan, properties []*ObjectLiteralProperty) *ObjectLiteral {
	return &ObjectLiteral{span: span, Properties: properties}
}

// Span returns the parse span
func (o *ObjectLiteral) Span() *ParseSpan { return o.span }

// Visit implements the AST interface
func (o *ObjectLiteral) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitObjectLiteral(o, context)
}

// SpreadElement represents a spread in an array literal or argument list
type SpreadElement struct {
	span *ParseSpan
	Expr AST
}

// NewSpreadElement creates a new SpreadElement
func NewSpreadElement(span *ParseSpan, expr AST) *SpreadElement {
	return &SpreadElement{span: span, Expr: expr}
}

// Span returns the parse span
func (s *SpreadElement) Span() *ParseSpan { return s.span }

// Visit implements the AST interface
func (s *SpreadElement) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitSpreadElement(s, context)
}

// ArrowFunction represents a function-valued expression. An expression body is
// parsed into Body; a braced body is carried verbatim in RawBody. Either way
// the value is an opaque reference to the transform.
type ArrowFunction struct {
	span *ParseSpan
	// Name is set for named function expressions only
	Name       string
	Params     []string
	Body       AST
	RawBody    string
	IsFunction bool
}

// NewArrowFunction creates a new ArrowFunction
func NewArrowFunction(span *ParseSpan, params []string, body AST, rawBody string) *ArrowFunction {
	return &ArrowFunction{span: span, Params: params, Body: body, RawBody: rawBody}
}

// Span returns the parse span
func (a *ArrowFunction) Span() *ParseSpan { return a.span }

// Visit implements the AST interface
func (a *ArrowFunction) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitArrowFunction(a, context)
}

// ParenthesizedExpression preserves explicit grouping from the source
type ParenthesizedExpression struct {
	span *ParseSpan
	Expr AST
}

// NewParenthesizedExpression creates a new ParenthesizedExpression
func NewParenthesizedExpression(span *ParseSpan, expr AST) *ParenthesizedExpression {
	return &ParenthesizedExpression{span: span, Expr: expr}
}

// Span returns the parse span
func (p *ParenthesizedExpression) Span() *ParseSpan { return p.span }

// Visit implements the AST interface
func (p *ParenthesizedExpression) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitParenthesizedExpression(p, context)
}

// EmbeddedMarkup wraps a markup node appearing in expression position. Node is
// a jsx.Node; it is typed loosely to keep this package free of a markup
// dependency.
type EmbeddedMarkup struct {
	span *ParseSpan
	Node interface{}
}

// NewEmbeddedMarkup creates a new EmbeddedMarkup
func NewEmbeddedMarkup(span *ParseSpan, node interface{}) *EmbeddedMarkup {
	return &EmbeddedMarkup{span: span, Node: node}
}

// Span returns the parse span
func (e *EmbeddedMarkup) Span() *ParseSpan { return e.span }

// Visit implements the AST interface
func (e *EmbeddedMarkup) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitEmbeddedMarkup(e, context)
}

// AstVisitor is the interface for visiting expression nodes
type AstVisitor interface {
	VisitEmptyExpr(ast *EmptyExpr, context interface{}) interface{}
	VisitLiteralPrimitive(ast *LiteralPrimitive, context interface{}) interface{}
	VisitTemplateLiteral(ast *TemplateLiteral, context interface{}) interface{}
	VisitIdentifier(ast *Identifier, context interface{}) interface{}
	VisitPropertyRead(ast *PropertyRead, context interface{}) interface{}
	VisitKeyedRead(ast *KeyedRead, context interface{}) interface{}
	VisitCall(ast *Call, context interface{}) interface{}
	VisitUnary(ast *Unary, context interface{}) interface{}
	VisitBinary(ast *Binary, context interface{}) interface{}
	VisitConditional(ast *Conditional, context interface{}) interface{}
	VisitArrayLiteral(ast *ArrayLiteral, context interface{}) interface{}
	VisitObjectLiteral(ast *ObjectLiteral, context interface{}) interface{}
	VisitSpreadElement(ast *SpreadElement, context interface{}) interface{}
	VisitArrowFunction(ast *ArrowFunction, context interface{}) interface{}
	VisitParenthesizedExpression(ast *ParenthesizedExpression, context interface{}) interface{}
	VisitEmbeddedMarkup(ast *EmbeddedMarkup, context interface{}) interface{}
}
