package jsx

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"jsxc-go/packages/compiler/expression_parser"
	"jsxc-go/packages/compiler/util"
)

// TemplateParser parses JSX templates. Markup is consumed character by
// character; `{...}` positions hand the cursor to the expression parser,
// which hands it back for markup embedded in expressions.
type TemplateParser struct {
	file    *util.ParseSourceFile
	src     string
	pos     int
	scanner *expression_parser.Scanner
}

// NewTemplateParser creates a new TemplateParser for a source file
func NewTemplateParser(source, url string) *TemplateParser {
	return &TemplateParser{
		file:    util.NewParseSourceFile(source, url),
		src:     source,
		scanner: expression_parser.NewScanner(source),
	}
}

// ParseTemplate parses a source containing exactly one top-level template
func ParseTemplate(source, url string) (Node, error) {
	nodes, err := ParseTemplates(source, url)
	if err != nil {
		return nil, err
	}
	if len(nodes) != 1 {
		return nil, fmt.Errorf("%s: expected a single template, found %d", url, len(nodes))
	}
	return nodes[0], nil
}

// ParseTemplates parses all top-level templates in a source, separated by
// optional semicolons, whitespace or comments.
func ParseTemplates(source, url string) ([]Node, error) {
	p := NewTemplateParser(source, url)
	nodes := []Node{}
	for {
		p.skipSpace()
		if p.pos < len(p.src) && p.src[p.pos] == ';' {
			p.pos++
			continue
		}
		if p.pos >= len(p.src) {
			return nodes, nil
		}
		if p.src[p.pos] != '<' {
			return nil, p.errorAt(p.pos, "expected a template starting with \"<\"")
		}
		node, err := p.parseMarkup()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
}

// ParseEmbedded implements expression_parser.MarkupParser
func (p *TemplateParser) ParseEmbedded(offset int) (interface{}, int, error) {
	p.pos = offset
	node, err := p.parseMarkup()
	if err != nil {
		return nil, 0, err
	}
	return node, p.pos, nil
}

func (p *TemplateParser) errorAt(offset int, msg string) error {
	start := util.LocationAt(p.file, offset)
	span := util.NewParseSourceSpan(start, start)
	return util.NewParseError(span, msg, util.ParseErrorLevelError)
}

// skipSpace advances over whitespace and comments outside markup content
func (p *TemplateParser) skipSpace() {
	p.scanner.SetIndex(p.pos)
	p.scanner.SkipSpace()
	p.pos = p.scanner.Index()
}

func (p *TemplateParser) skipBlanks() {
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c != ' ' && c != '\t' && c != '\n' && c != '\r' {
			return
		}
		p.pos++
	}
}

// parseMarkup parses one element or fragment; pos points at "<"
func (p *TemplateParser) parseMarkup() (Node, error) {
	start := p.pos
	p.pos++ // consume "<"
	if p.pos < len(p.src) && p.src[p.pos] == '>' {
		p.pos++
		return p.parseFragmentRest(start)
	}

	name := p.readTagName()
	if name == "" {
		return nil, p.errorAt(p.pos, "expected a tag name")
	}

	attributes, selfClosing, err := p.parseAttributes(name)
	if err != nil {
		return nil, err
	}
	if selfClosing {
		span := expression_parser.NewParseSpan(start, p.pos)
		return NewElement(span, name, attributes, nil, true), nil
	}

	children, err := p.parseChildren()
	if err != nil {
		return nil, err
	}
	if err := p.parseCloseTag(name); err != nil {
		return nil, err
	}
	span := expression_parser.NewParseSpan(start, p.pos)
	return NewElement(span, name, attributes, children, false), nil
}

func (p *TemplateParser) parseFragmentRest(start int) (Node, error) {
	children, err := p.parseChildren()
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(p.src[p.pos:], "</") {
		return nil, p.errorAt(p.pos, "unterminated fragment")
	}
	p.pos += 2
	p.skipBlanks()
	if p.pos >= len(p.src) || p.src[p.pos] != '>' {
		return nil, p.errorAt(p.pos, "expected \"</>\"")
	}
	p.pos++
	return NewFragment(expression_parser.NewParseSpan(start, p.pos), children), nil
}

func (p *TemplateParser) parseCloseTag(name string) error {
	if !strings.HasPrefix(p.src[p.pos:], "</") {
		return p.errorAt(p.pos, fmt.Sprintf("unterminated element <%s>", name))
	}
	p.pos += 2
	closing := p.readTagName()
	if closing != name {
		return p.errorAt(p.pos, fmt.Sprintf("expected </%s>, found </%s>", name, closing))
	}
	p.skipBlanks()
	if p.pos >= len(p.src) || p.src[p.pos] != '>' {
		return p.errorAt(p.pos, fmt.Sprintf("expected \">\" closing </%s>", name))
	}
	p.pos++
	return nil
}

func (p *TemplateParser) readTagName() string {
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') ||
			c == '-' || c == '.' || c == '_' || c == '$' || c == ':' {
			p.pos++
			continue
		}
		break
	}
	return p.src[start:p.pos]
}

func (p *TemplateParser) parseAttributes(tagName string) (attrs []AttributeNode, selfClosing bool, err error) {
	for {
		p.skipBlanks()
		if p.pos >= len(p.src) {
			return nil, false, p.errorAt(p.pos, fmt.Sprintf("unterminated open tag <%s>", tagName))
		}
		c := p.src[p.pos]
		switch {
		case c == '>':
			p.pos++
			return attrs, false, nil
		case c == '/' && p.pos+1 < len(p.src) && p.src[p.pos+1] == '>':
			p.pos += 2
			return attrs, true, nil
		case c == '{':
			spread, err := p.parseSpreadAttribute()
			if err != nil {
				return nil, false, err
			}
			attrs = append(attrs, spread)
		default:
			attr, err := p.parseAttribute()
			if err != nil {
				return nil, false, err
			}
			attrs = append(attrs, attr)
		}
	}
}

func (p *TemplateParser) parseSpreadAttribute() (*SpreadAttribute, error) {
	start := p.pos
	p.pos++ // consume "{"
	p.skipSpace()
	if !strings.HasPrefix(p.src[p.pos:], "...") {
		return nil, p.errorAt(p.pos, "expected \"...\" in spread attribute")
	}
	p.pos += 3
	expr, err := p.parseExpressionAt(p.pos)
	if err != nil {
		return nil, err
	}
	if err := p.expectContainerEnd(); err != nil {
		return nil, err
	}
	return NewSpreadAttribute(expression_parser.NewParseSpan(start, p.pos), expr), nil
}

func (p *TemplateParser) parseAttribute() (*Attribute, error) {
	start := p.pos
	name := p.readAttributeName()
	if name == "" {
		return nil, p.errorAt(p.pos, "expected an attribute name")
	}
	attr := NewAttribute(expression_parser.NewParseSpan(start, p.pos), name)

	p.skipBlanks()
	if p.pos >= len(p.src) || p.src[p.pos] != '=' {
		// bare boolean attribute
		attr.span.End = p.pos
		return attr, nil
	}
	p.pos++
	p.skipBlanks()
	if p.pos >= len(p.src) {
		return nil, p.errorAt(p.pos, "missing attribute value")
	}

	switch c := p.src[p.pos]; c {
	case '"', '\'':
		value, err := p.readQuoted(c)
		if err != nil {
			return nil, err
		}
		attr.StringValue = &value
	case '{':
		p.pos++
		attr.LeadingComment = p.readLeadingComment()
		expr, err := p.parseExpressionAt(p.pos)
		if err != nil {
			return nil, err
		}
		attr.Expression = expr
		if err := p.expectContainerEnd(); err != nil {
			return nil, err
		}
	default:
		return nil, p.errorAt(p.pos, "expected a quoted string or an expression container")
	}
	attr.span.End = p.pos
	return attr, nil
}

func (p *TemplateParser) readAttributeName() string {
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '=' || c == '/' ||
			c == '>' || c == '{' || c == '}' || c == '"' || c == '\'' || c == '<' {
			break
		}
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *TemplateParser) readQuoted(quote byte) (string, error) {
	start := p.pos
	p.pos++
	for p.pos < len(p.src) {
		if p.src[p.pos] == quote {
			value := p.src[start+1 : p.pos]
			p.pos++
			return html.UnescapeString(value), nil
		}
		p.pos++
	}
	return "", p.errorAt(start, "unterminated attribute value")
}

// readLeadingComment captures a comment that opens an expression container,
// so the transform can recognize the static marker.
func (p *TemplateParser) readLeadingComment() string {
	p.skipBlanks()
	if !strings.HasPrefix(p.src[p.pos:], "/*") {
		return ""
	}
	end := strings.Index(p.src[p.pos+2:], "*/")
	if end < 0 {
		return ""
	}
	comment := strings.TrimSpace(p.src[p.pos+2 : p.pos+2+end])
	p.pos += 2 + end + 2
	return comment
}

func (p *TemplateParser) parseExpressionAt(offset int) (expression_parser.AST, error) {
	p.scanner.SetIndex(offset)
	parser := expression_parser.NewParser(p.scanner, p)
	expr, err := parser.Parse()
	if err != nil {
		if _, ok := err.(*util.ParseError); ok {
			return nil, err
		}
		return nil, p.errorAt(offset, err.Error())
	}
	p.pos = parser.CurrentIndex()
	return expr, nil
}

func (p *TemplateParser) expectContainerEnd() error {
	p.skipSpace()
	if p.pos >= len(p.src) || p.src[p.pos] != '}' {
		return p.errorAt(p.pos, "expected \"}\"")
	}
	p.pos++
	return nil
}

func (p *TemplateParser) parseChildren() ([]Node, error) {
	children := []Node{}
	for {
		if p.pos >= len(p.src) {
			return nil, p.errorAt(p.pos, "unterminated element")
		}
		if strings.HasPrefix(p.src[p.pos:], "</") {
			return children, nil
		}
		switch p.src[p.pos] {
		case '<':
			child, err := p.parseMarkup()
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		case '{':
			child, err := p.parseExpressionChild()
			if err != nil {
				return nil, err
			}
			if child != nil {
				children = append(children, child)
			}
		default:
			if text := p.parseText(); text != nil {
				children = append(children, text)
			}
		}
	}
}

func (p *TemplateParser) parseExpressionChild() (Node, error) {
	start := p.pos
	p.pos++ // consume "{"
	comment := p.readLeadingComment()
	p.skipSpace()
	if p.pos < len(p.src) && p.src[p.pos] == '}' {
		// empty or comment-only container produces no child
		p.pos++
		return nil, nil
	}

	var expr expression_parser.AST
	if strings.HasPrefix(p.src[p.pos:], "...") {
		spreadStart := p.pos
		p.pos += 3
		inner, err := p.parseExpressionAt(p.pos)
		if err != nil {
			return nil, err
		}
		expr = expression_parser.NewSpreadElement(expression_parser.NewParseSpan(spreadStart, inner.Span().End), inner)
	} else {
		var err error
		expr, err = p.parseExpressionAt(p.pos)
		if err != nil {
			return nil, err
		}
	}
	if err := p.expectContainerEnd(); err != nil {
		return nil, err
	}
	span := expression_parser.NewParseSpan(start, p.pos)
	return NewExpressionContainer(span, expr, comment), nil
}

func (p *TemplateParser) parseText() Node {
	start := p.pos
	for p.pos < len(p.src) && p.src[p.pos] != '<' && p.src[p.pos] != '{' {
		p.pos++
	}
	raw := p.src[start:p.pos]
	value := CollapseWhitespace(html.UnescapeString(raw))
	if value == "" {
		return nil
	}
	return NewText(expression_parser.NewParseSpan(start, p.pos), value)
}

// CollapseWhitespace applies JSX text semantics: whitespace runs containing a
// newline are dropped at the edges and collapse to one space in the interior.
func CollapseWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\r", "")
	var buf strings.Builder
	i := 0
	for i < len(s) {
		j := i
		for j < len(s) && isSpace(s[j]) {
			j++
		}
		if j > i {
			run := s[i:j]
			atEdge := i == 0 || j == len(s)
			if strings.Contains(run, "\n") {
				if !atEdge {
					buf.WriteByte(' ')
				}
			} else {
				buf.WriteString(run)
			}
			i = j
			continue
		}
		buf.WriteByte(s[i])
		i++
	}
	return buf.String()
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\f' || c == '\v'
}
