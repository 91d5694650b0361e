package expression_parser

import (
	"fmt"
	"strconv"
	"strings"
)

// TokenType represents the type of a token
type TokenType int

const (
	TokenTypeCharacter TokenType = iota
	TokenTypeIdentifier
	TokenTypeKeyword
	TokenTypeString
	TokenTypeNumber
	TokenTypeOperator
	TokenTypeError
)

var keywords = []string{
	"null",
	"undefined",
	"true",
	"false",
	"typeof",
	"void",
	"in",
	"instanceof",
	"new",
	"function",
	"this",
}

// Token represents a token in the expression
type Token struct {
	Index    int
	End      int
	Type     TokenType
	NumValue float64
	StrValue string
}

// NewToken creates a new Token
func NewToken(index, end int, typ TokenType, numValue float64, strValue string) *Token {
	return &Token{
		Index:    index,
		End:      end,
		Type:     typ,
		NumValue: numValue,
		StrValue: strValue,
	}
}

// IsCharacter checks if the token is a character with the given code
func (t *Token) IsCharacter(code byte) bool {
	return t.Type == TokenTypeCharacter && byte(t.NumValue) == code
}

// IsNumber checks if the token is a number
func (t *Token) IsNumber() bool {
	return t.Type == TokenTypeNumber
}

// IsString checks if the token is a string
func (t *Token) IsString() bool {
	return t.Type == TokenTypeString
}

// IsOperator checks if the token is an operator with the given value
func (t *Token) IsOperator(operator string) bool {
	return t.Type == TokenTypeOperator && t.StrValue == operator
}

// IsIdentifier checks if the token is an identifier
func (t *Token) IsIdentifier() bool {
	return t.Type == TokenTypeIdentifier
}

// IsKeyword checks if the token is a keyword with the given value
func (t *Token) IsKeyword(keyword string) bool {
	return t.Type == TokenTypeKeyword && t.StrValue == keyword
}

// IsError checks if the token is an error token
func (t *Token) IsError() bool {
	return t.Type == TokenTypeError
}

// threeCharOps and twoCharOps are checked longest-first by scanOperator
var threeCharOps = []string{"===", "!==", "...", "**=", ">>>"}
var twoCharOps = []string{
	"=>", "==", "!=", "<=", ">=", "&&", "||", "??", "**", "?.",
	"<<", ">>", "+=", "-=", "*=", "/=",
}

// Scanner produces tokens on demand from an expression source. The markup
// parser and the expression parser exchange the cursor at markup boundaries,
// so tokens are never produced eagerly.
type Scanner struct {
	input  string
	length int
	index  int
}

// NewScanner creates a new Scanner
func NewScanner(input string) *Scanner {
	return &Scanner{input: input, length: len(input)}
}

// Index returns the current scan position
func (s *Scanner) Index() int {
	return s.index
}

// SetIndex repositions the scanner, discarding any notion of prior tokens
func (s *Scanner) SetIndex(offset int) {
	s.index = offset
}

// Input returns the full source the scanner reads from
func (s *Scanner) Input() string {
	return s.input
}

func (s *Scanner) peekChar() byte {
	if s.index >= s.length {
		return 0
	}
	return s.input[s.index]
}

func (s *Scanner) peekCharAt(offset int) byte {
	if s.index+offset >= s.length {
		return 0
	}
	return s.input[s.index+offset]
}

// SkipSpace advances over whitespace and comments
func (s *Scanner) SkipSpace() {
	for s.index < s.length {
		c := s.input[s.index]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v' {
			s.index++
			continue
		}
		if c == '/' && s.peekCharAt(1) == '/' {
			for s.index < s.length && s.input[s.index] != '\n' {
				s.index++
			}
			continue
		}
		if c == '/' && s.peekCharAt(1) == '*' {
			end := strings.Index(s.input[s.index+2:], "*/")
			if end < 0 {
				s.index = s.length
			} else {
				s.index += 2 + end + 2
			}
			continue
		}
		break
	}
}

// ScanToken scans the next token, or returns nil at end of input
func (s *Scanner) ScanToken() *Token {
	s.SkipSpace()
	if s.index >= s.length {
		return nil
	}

	start := s.index
	c := s.input[s.index]

	if isIdentifierStart(c) {
		return s.scanIdentifier(start)
	}
	if isDigit(c) || (c == '.' && isDigit(s.peekCharAt(1))) {
		return s.scanNumber(start)
	}
	if c == '\'' || c == '"' {
		return s.scanString(start, c)
	}

	switch c {
	case '(', ')', '[', ']', '{', '}', ',', ':', ';', '`':
		s.index++
		return NewToken(start, s.index, TokenTypeCharacter, float64(c), string(c))
	case '.':
		if s.input[s.index:min(s.index+3, s.length)] == "..." {
			s.index += 3
			return NewToken(start, s.index, TokenTypeOperator, 0, "...")
		}
		s.index++
		return NewToken(start, s.index, TokenTypeCharacter, float64(c), ".")
	}

	return s.scanOperator(start)
}

func (s *Scanner) scanIdentifier(start int) *Token {
	s.index++
	for s.index < s.length && isIdentifierPart(s.input[s.index]) {
		s.index++
	}
	str := s.input[start:s.index]
	typ := TokenTypeIdentifier
	for _, kw := range keywords {
		if str == kw {
			typ = TokenTypeKeyword
			break
		}
	}
	return NewToken(start, s.index, typ, 0, str)
}

func (s *Scanner) scanNumber(start int) *Token {
	sawDot := false
	sawExp := false
	for s.index < s.length {
		c := s.input[s.index]
		switch {
		case isDigit(c) || c == '_':
			s.index++
		case c == '.' && !sawDot && !sawExp:
			sawDot = true
			s.index++
		case (c == 'e' || c == 'E') && !sawExp:
			sawExp = true
			s.index++
			if s.peekChar() == '+' || s.peekChar() == '-' {
				s.index++
			}
		default:
			goto done
		}
	}
done:
	str := s.input[start:s.index]
	value, err := strconv.ParseFloat(strings.ReplaceAll(str, "_", ""), 64)
	if err != nil {
		return NewToken(start, s.index, TokenTypeError, 0, fmt.Sprintf("Invalid number: %s", str))
	}
	return NewToken(start, s.index, TokenTypeNumber, value, str)
}

func (s *Scanner) scanString(start int, quote byte) *Token {
	s.index++
	var buf strings.Builder
	for s.index < s.length {
		c := s.input[s.index]
		if c == quote {
			s.index++
			return NewToken(start, s.index, TokenTypeString, 0, buf.String())
		}
		if c == '\\' {
			s.index++
			if s.index >= s.length {
				break
			}
			buf.WriteString(unescapeChar(s.input[s.index]))
			s.index++
			continue
		}
		buf.WriteByte(c)
		s.index++
	}
	return NewToken(start, s.length, TokenTypeError, 0, "Unterminated string literal")
}

func (s *Scanner) scanOperator(start int) *Token {
	rest := s.input[s.index:]
	for _, op := range threeCharOps {
		if strings.HasPrefix(rest, op) {
			s.index += 3
			return NewToken(start, s.index, TokenTypeOperator, 0, op)
		}
	}
	for _, op := range twoCharOps {
		if strings.HasPrefix(rest, op) {
			s.index += 2
			return NewToken(start, s.index, TokenTypeOperator, 0, op)
		}
	}
	c := s.input[s.index]
	if strings.IndexByte("+-*/%<>=!&|^~?", c) >= 0 {
		s.index++
		return NewToken(start, s.index, TokenTypeOperator, 0, string(c))
	}
	s.index++
	return NewToken(start, s.index, TokenTypeError, 0, fmt.Sprintf("Unexpected character [%c]", c))
}

// TemplatePart scans one raw chunk of a template literal body. It stops at an
// unescaped backtick or at "${" and reports which terminator was found.
func (s *Scanner) TemplatePart() (cooked string, terminator string, err error) {
	var buf strings.Builder
	for s.index < s.length {
		c := s.input[s.index]
		switch {
		case c == '`':
			s.index++
			return buf.String(), "`", nil
		case c == '$' && s.peekCharAt(1) == '{':
			s.index += 2
			return buf.String(), "${", nil
		case c == '\\':
			s.index++
			if s.index < s.length {
				buf.WriteString(unescapeChar(s.input[s.index]))
				s.index++
			}
		default:
			buf.WriteByte(c)
			s.index++
		}
	}
	return "", "", fmt.Errorf("unterminated template literal")
}

// BalancedBlock consumes a braced block starting just after "{" and returns
// its raw body. Strings, template literals and nested braces are respected.
func (s *Scanner) BalancedBlock() (string, error) {
	start := s.index
	depth := 1
	for s.index < s.length {
		c := s.input[s.index]
		switch c {
		case '{':
			depth++
			s.index++
		case '}':
			depth--
			s.index++
			if depth == 0 {
				return s.input[start : s.index-1], nil
			}
		case '\'', '"', '`':
			if err := s.skipQuoted(c); err != nil {
				return "", err
			}
		case '\\':
			s.index += 2
		default:
			s.index++
		}
	}
	return "", fmt.Errorf("unterminated block")
}

func (s *Scanner) skipQuoted(quote byte) error {
	s.index++
	for s.index < s.length {
		c := s.input[s.index]
		if c == '\\' {
			s.index += 2
			continue
		}
		if c == quote {
			s.index++
			return nil
		}
		s.index++
	}
	return fmt.Errorf("unterminated string literal")
}

func unescapeChar(c byte) string {
	switch c {
	case 'n':
		return "\n"
	case 't':
		return "\t"
	case 'r':
		return "\r"
	case 'f':
		return "\f"
	case 'v':
		return "\v"
	case 'b':
		return "\b"
	case '0':
		return "\x00"
	default:
		return string(c)
	}
}

func isIdentifierStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_' || c == '$'
}

func isIdentifierPart(c byte) bool {
	return isIdentifierStart(c) || isDigit(c)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
