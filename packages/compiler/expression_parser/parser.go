package expression_parser

import (
	"fmt"
)

// MarkupParser parses a markup element beginning at offset (which points at
// "<") and returns the parsed node together with the offset just past it.
// The markup package supplies the implementation; expressions and markup embed
// each other recursively.
type MarkupParser interface {
	ParseEmbedded(offset int) (interface{}, int, error)
}

// Parser parses one JavaScript-style expression from a scanner position
type Parser struct {
	scanner *Scanner
	markup  MarkupParser
	next    *Token
}

// NewParser creates a new Parser over a scanner. markup may be nil, in which
// case "<" at expression position is a parse error.
func NewParser(scanner *Scanner, markup MarkupParser) *Parser {
	return &Parser{scanner: scanner, markup: markup}
}

// ParseExpression parses a single complete expression from source
func ParseExpression(source string) (AST, error) {
	scanner := NewScanner(source)
	parser := NewParser(scanner, nil)
	ast, err := parser.Parse()
	if err != nil {
		return nil, err
	}
	if tok := parser.peek(); tok != nil {
		return nil, fmt.Errorf("unexpected token %q at %d", tok.StrValue, tok.Index)
	}
	return ast, nil
}

// Parse parses one expression and stops at the first token that cannot
// extend it. CurrentIndex reports where the caller should resume.
func (p *Parser) Parse() (AST, error) {
	return p.parseAssignment()
}

// CurrentIndex returns the source offset where parsing stopped
func (p *Parser) CurrentIndex() int {
	if p.next != nil {
		return p.next.Index
	}
	return p.scanner.Index()
}

func (p *Parser) peek() *Token {
	if p.next == nil {
		p.next = p.scanner.ScanToken()
	}
	return p.next
}

func (p *Parser) advance() *Token {
	tok := p.peek()
	p.next = nil
	return tok
}

// reset repositions the scanner and discards the lookahead token
func (p *Parser) reset(offset int) {
	p.scanner.SetIndex(offset)
	p.next = nil
}

func (p *Parser) expectCharacter(code byte) error {
	tok := p.peek()
	if tok == nil || !tok.IsCharacter(code) {
		return p.unexpected(tok, fmt.Sprintf("expected %q", string(code)))
	}
	p.advance()
	return nil
}

func (p *Parser) unexpected(tok *Token, msg string) error {
	if tok == nil {
		return fmt.Errorf("unexpected end of expression: %s", msg)
	}
	return fmt.Errorf("unexpected token %q at %d: %s", tok.StrValue, tok.Index, msg)
}

var assignmentOps = []string{"=", "+=", "-=", "*=", "/="}

func (p *Parser) parseAssignment() (AST, error) {
	left, err := p.parseConditional()
	if err != nil {
		return nil, err
	}
	tok := p.peek()
	if tok != nil && tok.Type == TokenTypeOperator {
		for _, op := range assignmentOps {
			if tok.StrValue == op {
				p.advance()
				right, err := p.parseAssignment()
				if err != nil {
					return nil, err
				}
				return NewBinary(spanBetween(left, right), op, left, right), nil
			}
		}
	}
	return left, nil
}

func (p *Parser) parseConditional() (AST, error) {
	condition, err := p.parseNullish()
	if err != nil {
		return nil, err
	}
	tok := p.peek()
	if tok == nil || !tok.IsOperator("?") {
		return condition, nil
	}
	p.advance()
	trueExpr, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	if err := p.expectCharacter(':'); err != nil {
		return nil, err
	}
	falseExpr, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	return NewConditional(spanBetween(condition, falseExpr), condition, trueExpr, falseExpr), nil
}

func (p *Parser) parseNullish() (AST, error) {
	return p.parseBinaryLevel([]string{"??"}, p.parseLogicalOr)
}

func (p *Parser) parseLogicalOr() (AST, error) {
	return p.parseBinaryLevel([]string{"||"}, p.parseLogicalAnd)
}

func (p *Parser) parseLogicalAnd() (AST, error) {
	return p.parseBinaryLevel([]string{"&&"}, p.parseBitwise)
}

func (p *Parser) parseBitwise() (AST, error) {
	return p.parseBinaryLevel([]string{"|", "^", "&"}, p.parseEquality)
}

func (p *Parser) parseEquality() (AST, error) {
	return p.parseBinaryLevel([]string{"===", "!==", "==", "!="}, p.parseRelational)
}

func (p *Parser) parseRelational() (AST, error) {
	left, err := p.parseShift()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		if tok == nil {
			return left, nil
		}
		op := ""
		switch {
		case tok.IsOperator("<"), tok.IsOperator(">"), tok.IsOperator("<="), tok.IsOperator(">="):
			op = tok.StrValue
		case tok.IsKeyword("in"), tok.IsKeyword("instanceof"):
			op = tok.StrValue
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseShift()
		if err != nil {
			return nil, err
		}
		left = NewBinary(spanBetween(left, right), op, left, right)
	}
}

func (p *Parser) parseShift() (AST, error) {
	return p.parseBinaryLevel([]string{"<<", ">>>", ">>"}, p.parseAdditive)
}

func (p *Parser) parseAdditive() (AST, error) {
	return p.parseBinaryLevel([]string{"+", "-"}, p.parseMultiplicative)
}

func (p *Parser) parseMultiplicative() (AST, error) {
	return p.parseBinaryLevel([]string{"*", "/", "%"}, p.parseExponent)
}

func (p *Parser) parseExponent() (AST, error) {
	return p.parseBinaryLevel([]string{"**"}, p.parseUnary)
}

func (p *Parser) parseBinaryLevel(ops []string, next func() (AST, error)) (AST, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		if tok == nil || tok.Type != TokenTypeOperator {
			return left, nil
		}
		matched := false
		for _, op := range ops {
			if tok.StrValue == op {
				matched = true
				break
			}
		}
		if !matched {
			return left, nil
		}
		p.advance()
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = NewBinary(spanBetween(left, right), tok.StrValue, left, right)
	}
}

func (p *Parser) parseUnary() (AST, error) {
	tok := p.peek()
	if tok == nil {
		return nil, p.unexpected(nil, "expected expression")
	}
	op := ""
	switch {
	case tok.IsOperator("!"), tok.IsOperator("-"), tok.IsOperator("+"), tok.IsOperator("~"):
		op = tok.StrValue
	case tok.IsKeyword("typeof"), tok.IsKeyword("void"), tok.IsKeyword("new"):
		op = tok.StrValue
	}
	if op == "" {
		return p.parseCallChain()
	}
	start := tok.Index
	p.advance()
	expr, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return NewUnary(NewParseSpan(start, expr.Span().End), op, expr), nil
}

func (p *Parser) parseCallChain() (AST, error) {
	receiver, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		if tok == nil {
			return receiver, nil
		}
		switch {
		case tok.IsCharacter('.'), tok.IsOperator("?."):
			safe := tok.IsOperator("?.")
			p.advance()
			name := p.peek()
			if name == nil || (!name.IsIdentifier() && name.Type != TokenTypeKeyword) {
				return nil, p.unexpected(name, "expected property name")
			}
			p.advance()
			receiver = NewPropertyRead(NewParseSpan(receiver.Span().Start, name.End), receiver, name.StrValue, safe)
		case tok.IsCharacter('['):
			p.advance()
			key, err := p.parseAssignment()
			if err != nil {
				return nil, err
			}
			end := p.peek()
			if err := p.expectCharacter(']'); err != nil {
				return nil, err
			}
			receiver = NewKeyedRead(NewParseSpan(receiver.Span().Start, end.End), receiver, key)
		case tok.IsCharacter('('):
			p.advance()
			args, endIdx, err := p.parseArguments()
			if err != nil {
				return nil, err
			}
			receiver = NewCall(NewParseSpan(receiver.Span().Start, endIdx), receiver, args)
		default:
			return receiver, nil
		}
	}
}

func (p *Parser) parseArguments() ([]AST, int, error) {
	args := []AST{}
	for {
		tok := p.peek()
		if tok == nil {
			return nil, 0, p.unexpected(nil, "expected \")\"")
		}
		if tok.IsCharacter(')') {
			p.advance()
			return args, tok.End, nil
		}
		if tok.IsOperator("...") {
			p.advance()
			expr, err := p.parseAssignment()
			if err != nil {
				return nil, 0, err
			}
			args = append(args, NewSpreadElement(NewParseSpan(tok.Index, expr.Span().End), expr))
		} else {
			arg, err := p.parseAssignment()
			if err != nil {
				return nil, 0, err
			}
			args = append(args, arg)
		}
		tok = p.peek()
		if tok != nil && tok.IsCharacter(',') {
			p.advance()
		}
	}
}

func (p *Parser) parsePrimary() (AST, error) {
	tok := p.peek()
	if tok == nil {
		return nil, p.unexpected(nil, "expected expression")
	}

	switch {
	case tok.IsError():
		return nil, fmt.Errorf("%s at %d", tok.StrValue, tok.Index)

	case tok.IsNumber():
		p.advance()
		return NewLiteralPrimitive(NewParseSpan(tok.Index, tok.End), tok.NumValue, tok.StrValue), nil

	case tok.IsString():
		p.advance()
		raw := p.scanner.Input()[tok.Index:tok.End]
		return NewLiteralPrimitive(NewParseSpan(tok.Index, tok.End), tok.StrValue, raw), nil

	case tok.IsKeyword("true"), tok.IsKeyword("false"):
		p.advance()
		return NewLiteralPrimitive(NewParseSpan(tok.Index, tok.End), tok.StrValue == "true", tok.StrValue), nil

	case tok.IsKeyword("null"), tok.IsKeyword("undefined"):
		p.advance()
		return NewLiteralPrimitive(NewParseSpan(tok.Index, tok.End), nil, tok.StrValue), nil

	case tok.IsKeyword("this"):
		p.advance()
		return NewIdentifier(NewParseSpan(tok.Index, tok.End), "this"), nil

	case tok.IsKeyword("function"):
		return p.parseFunctionExpr()

	case tok.IsIdentifier():
		p.advance()
		if next := p.peek(); next != nil && next.IsOperator("=>") {
			p.advance()
			return p.parseArrowBody(tok.Index, []string{tok.StrValue})
		}
		return NewIdentifier(NewParseSpan(tok.Index, tok.End), tok.StrValue), nil

	case tok.IsCharacter('('):
		return p.parseParenOrArrow()

	case tok.IsCharacter('['):
		return p.parseArrayLiteral()

	case tok.IsCharacter('{'):
		return p.parseObjectLiteral()

	case tok.IsCharacter('`'):
		return p.parseTemplateLiteral()

	case tok.IsOperator("<"):
		return p.parseEmbeddedMarkup()
	}

	return nil, p.unexpected(tok, "expected expression")
}

func (p *Parser) parseEmbeddedMarkup() (AST, error) {
	tok := p.peek()
	if p.markup == nil {
		return nil, p.unexpected(tok, "markup is not allowed here")
	}
	node, end, err := p.markup.ParseEmbedded(tok.Index)
	if err != nil {
		return nil, err
	}
	p.reset(end)
	return NewEmbeddedMarkup(NewParseSpan(tok.Index, end), node), nil
}

// parseParenOrArrow decides between a parenthesized expression and an arrow
// function parameter list by trial parse with backtracking.
func (p *Parser) parseParenOrArrow() (AST, error) {
	open := p.peek()
	start := open.Index
	p.advance()

	if params, ok := p.tryParseArrowParams(); ok {
		return p.parseArrowBody(start, params)
	}

	p.reset(start)
	p.advance()
	expr, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	end := p.peek()
	if err := p.expectCharacter(')'); err != nil {
		return nil, err
	}
	return NewParenthesizedExpression(NewParseSpan(start, end.End), expr), nil
}

// tryParseArrowParams attempts "ident, ident, ...ident ) =>" from just after
// the opening paren. On failure the caller backtracks.
func (p *Parser) tryParseArrowParams() ([]string, bool) {
	params := []string{}
	for {
		tok := p.peek()
		if tok == nil {
			return nil, false
		}
		if tok.IsCharacter(')') {
			p.advance()
			break
		}
		if tok.IsOperator("...") {
			p.advance()
			tok = p.peek()
			if tok == nil || !tok.IsIdentifier() {
				return nil, false
			}
			p.advance()
			params = append(params, "..."+tok.StrValue)
			continue
		}
		if !tok.IsIdentifier() {
			return nil, false
		}
		p.advance()
		params = append(params, tok.StrValue)
		tok = p.peek()
		if tok != nil && tok.IsCharacter(',') {
			p.advance()
		}
	}
	tok := p.peek()
	if tok == nil || !tok.IsOperator("=>") {
		return nil, false
	}
	p.advance()
	return params, true
}

func (p *Parser) parseArrowBody(start int, params []string) (AST, error) {
	tok := p.peek()
	if tok != nil && tok.IsCharacter('{') {
		p.advance()
		raw, err := p.scanner.BalancedBlock()
		if err != nil {
			return nil, err
		}
		p.next = nil
		return NewArrowFunction(NewParseSpan(start, p.scanner.Index()), params, nil, raw), nil
	}
	body, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	return NewArrowFunction(NewParseSpan(start, body.Span().End), params, body, ""), nil
}

func (p *Parser) parseFunctionExpr() (AST, error) {
	kw := p.advance()
	name := ""
	tok := p.peek()
	if tok != nil && tok.IsIdentifier() {
		name = tok.StrValue
		p.advance()
	}
	if err := p.expectCharacter('('); err != nil {
		return nil, err
	}
	params, ok := p.tryParseFunctionParams()
	if !ok {
		return nil, fmt.Errorf("invalid function parameter list at %d", kw.Index)
	}
	if err := p.expectCharacter('{'); err != nil {
		return nil, err
	}
	raw, err := p.scanner.BalancedBlock()
	if err != nil {
		return nil, err
	}
	p.next = nil
	fn := NewArrowFunction(NewParseSpan(kw.Index, p.scanner.Index()), params, nil, raw)
	fn.Name = name
	fn.IsFunction = true
	return fn, nil
}

func (p *Parser) tryParseFunctionParams() ([]string, bool) {
	params := []string{}
	for {
		tok := p.peek()
		if tok == nil {
			return nil, false
		}
		if tok.IsCharacter(')') {
			p.advance()
			return params, true
		}
		if tok.IsOperator("...") {
			p.advance()
			tok = p.peek()
			if tok == nil || !tok.IsIdentifier() {
				return nil, false
			}
			p.advance()
			params = append(params, "..."+tok.StrValue)
		} else if tok.IsIdentifier() {
			p.advance()
			params = append(params, tok.StrValue)
		} else {
			return nil, false
		}
		tok = p.peek()
		if tok != nil && tok.IsCharacter(',') {
			p.advance()
		}
	}
}

func (p *Parser) parseArrayLiteral() (AST, error) {
	open := p.advance()
	elements := []AST{}
	for {
		tok := p.peek()
		if tok == nil {
			return nil, p.unexpected(nil, "expected \"]\"")
		}
		if tok.IsCharacter(']') {
			p.advance()
			return NewArrayLiteral(NewParseSpan(open.Index, tok.End), elements), nil
		}
		if tok.IsCharacter(',') {
			// elision
			p.advance()
			elements = append(elements, nil)
			continue
		}
		var element AST
		var err error
		if tok.IsOperator("...") {
			p.advance()
			expr, err2 := p.parseAssignment()
			if err2 != nil {
				return nil, err2
			}
			element = NewSpreadElement(NewParseSpan(tok.Index, expr.Span().End), expr)
		} else {
			element, err = p.parseAssignment()
			if err != nil {
				return nil, err
			}
		}
		elements = append(elements, element)
		tok = p.peek()
		if tok != nil && tok.IsCharacter(',') {
			p.advance()
		}
	}
}

func (p *Parser) parseObjectLiteral() (AST, error) {
	open := p.advance()
	properties := []*ObjectLiteralProperty{}
	for {
		tok := p.peek()
		if tok == nil {
			return nil, p.unexpected(nil, "expected \"}\"")
		}
		if tok.IsCharacter('}') {
			p.advance()
			return NewObjectLiteral(NewParseSpan(open.Index, tok.End), properties), nil
		}

		if tok.IsOperator("...") {
			p.advance()
			expr, err := p.parseAssignment()
			if err != nil {
				return nil, err
			}
			properties = append(properties, &ObjectLiteralProperty{Spread: true, Value: expr})
		} else {
			key := ""
			quoted := false
			switch {
			case tok.IsIdentifier(), tok.Type == TokenTypeKeyword:
				key = tok.StrValue
			case tok.IsString():
				key = tok.StrValue
				quoted = true
			case tok.IsNumber():
				key = tok.StrValue
			default:
				return nil, p.unexpected(tok, "expected property key")
			}
			p.advance()
			next := p.peek()
			if next != nil && next.IsCharacter(':') {
				p.advance()
				value, err := p.parseAssignment()
				if err != nil {
					return nil, err
				}
				properties = append(properties, &ObjectLiteralProperty{Key: key, Quoted: quoted, Value: value})
			} else {
				// shorthand property
				properties = append(properties, &ObjectLiteralProperty{
					Key:   key,
					Value: NewIdentifier(NewParseSpan(tok.Index, tok.End), key),
				})
			}
		}
		tok = p.peek()
		if tok != nil && tok.IsCharacter(',') {
			p.advance()
		}
	}
}

func (p *Parser) parseTemplateLiteral() (AST, error) {
	open := p.advance()
	elements := []*TemplateLiteralElement{}
	expressions := []AST{}
	for {
		partStart := p.scanner.Index()
		cooked, terminator, err := p.scanner.TemplatePart()
		if err != nil {
			return nil, err
		}
		elements = append(elements, NewTemplateLiteralElement(NewParseSpan(partStart, p.scanner.Index()), cooked))
		if terminator == "`" {
			return NewTemplateLiteral(NewParseSpan(open.Index, p.scanner.Index()), elements, expressions), nil
		}
		expr, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		expressions = append(expressions, expr)
		if err := p.expectCharacter('}'); err != nil {
			return nil, err
		}
	}
}

func spanBetween(left, right AST) *ParseSpan {
	return NewParseSpan(left.Span().Start, right.Span().End)
}
