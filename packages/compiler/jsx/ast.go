package jsx

import (
	"jsxc-go/packages/compiler/expression_parser"
)

// Node is the base interface for all markup nodes
type Node interface {
	Span() *expression_parser.ParseSpan
	Visit(visitor Visitor) interface{}
}

// Element represents a markup element, native tag or component
type Element struct {
	span        *expression_parser.ParseSpan
	Name        string
	Attributes  []AttributeNode
	Children    []Node
	SelfClosing bool
}

// NewElement creates a new Element
func NewElement(span *expression_parser.ParseSpan, name string, attributes []AttributeNode, children []Node, selfClosing bool) *Element {
	return &Element{span: span, Name: name, Attributes: attributes, Children: children, SelfClosing: selfClosing}
}

// Span returns the source span
func (e *Element) Span() *expression_parser.ParseSpan { return e.span }

// Visit implements the Node interface
func (e *Element) Visit(visitor Visitor) interface{} {
	return visitor.VisitElement(e)
}

// IsComponent reports whether the element names a component rather than a
// native tag: an upper-case initial or a member path (Foo.Bar).
func (e *Element) IsComponent() bool {
	if e.Name == "" {
		return false
	}
	c := e.Name[0]
	if c >= 'A' && c <= 'Z' {
		return true
	}
	for i := 0; i < len(e.Name); i++ {
		if e.Name[i] == '.' {
			return true
		}
	}
	return false
}

// Fragment represents <>...</>
type Fragment struct {
	span     *expression_parser.ParseSpan
	Children []Node
}

// NewFragment creates a new Fragment
func NewFragment(span *expression_parser.ParseSpan, children []Node) *Fragment {
	return &Fragment{span: span, Children: children}
}

// Span returns the source span
func (f *Fragment) Span() *expression_parser.ParseSpan { return f.span }

// Visit implements the Node interface
func (f *Fragment) Visit(visitor Visitor) interface{} {
	return visitor.VisitFragment(f)
}

// Text represents literal text content. Value is entity-decoded and
// whitespace-collapsed per JSX semantics.
type Text struct {
	span  *expression_parser.ParseSpan
	Value string
}

// NewText creates a new Text
func NewText(span *expression_parser.ParseSpan, value string) *Text {
	return &Text{span: span, Value: value}
}

// Span returns the source span
func (t *Text) Span() *expression_parser.ParseSpan { return t.span }

// Visit implements the Node interface
func (t *Text) Visit(visitor Visitor) interface{} {
	return visitor.VisitText(t)
}

// ExpressionContainer represents a {expr} child position. LeadingComment
// carries the text of a comment opening the container so the transform can
// recognize the configured static marker.
type ExpressionContainer struct {
	span           *expression_parser.ParseSpan
	Expression     expression_parser.AST
	LeadingComment string
}

// NewExpressionContainer creates a new ExpressionContainer
func NewExpressionContainer(span *expression_parser.ParseSpan, expression expression_parser.AST, leadingComment string) *ExpressionContainer {
	return &ExpressionContainer{span: span, Expression: expression, LeadingComment: leadingComment}
}

// Span returns the source span
func (e *ExpressionContainer) Span() *expression_parser.ParseSpan { return e.span }

// Visit implements the Node interface
func (e *ExpressionContainer) Visit(visitor Visitor) interface{} {
	return visitor.VisitExpressionContainer(e)
}

// AttributeNode is the interface for element attributes
type AttributeNode interface {
	Span() *expression_parser.ParseSpan
}

// Attribute represents name, name="value" or name={expr}
type Attribute struct {
	span *expression_parser.ParseSpan
	Name string
	// StringValue is set for name="value" attributes
	StringValue *string
	// Expression is set for name={expr} attributes
	Expression expression_parser.AST
	// LeadingComment carries a comment opening the value container
	LeadingComment string
}

// NewAttribute creates a new Attribute
func NewAttribute(span *expression_parser.ParseSpan, name string) *Attribute {
	return &Attribute{span: span, Name: name}
}

// Span returns the source span
func (a *Attribute) Span() *expression_parser.ParseSpan { return a.span }

// IsStatic reports whether the attribute has no expression value
func (a *Attribute) IsStatic() bool { return a.Expression == nil }

// SpreadAttribute represents {...expr}
type SpreadAttribute struct {
	span       *expression_parser.ParseSpan
	Expression expression_parser.AST
}

// NewSpreadAttribute creates a new SpreadAttribute
func NewSpreadAttribute(span *expression_parser.ParseSpan, expression expression_parser.AST) *SpreadAttribute {
	return &SpreadAttribute{span: span, Expression: expression}
}

// Span returns the source span
func (s *SpreadAttribute) Span() *expression_parser.ParseSpan { return s.span }

// Visitor is the interface for visiting markup nodes
type Visitor interface {
	VisitElement(element *Element) interface{}
	VisitFragment(fragment *Fragment) interface{}
	VisitText(text *Text) interface{}
	VisitExpressionContainer(container *ExpressionContainer) interface{}
}

// VisitAll visits every node in order
func VisitAll(visitor Visitor, nodes []Node) []interface{} {
	results := make([]interface{}, 0, len(nodes))
	for _, node := range nodes {
		results = append(results, node.Visit(visitor))
	}
	return results
}
