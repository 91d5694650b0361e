package util

import (
	"fmt"
	"strings"
)

// ParseSourceFile represents a source file being compiled
type ParseSourceFile struct {
	Content string
	URL     string
}

// NewParseSourceFile creates a new ParseSourceFile
func NewParseSourceFile(content, url string) *ParseSourceFile {
	return &ParseSourceFile{Content: content, URL: url}
}

// ParseLocation represents a location in the source file
type ParseLocation struct {
	File   *ParseSourceFile
	Offset int
	Line   int
	Col    int
}

// NewParseLocation creates a new ParseLocation
func NewParseLocation(file *ParseSourceFile, offset, line, col int) *ParseLocation {
	return &ParseLocation{
		File:   file,
		Offset: offset,
		Line:   line,
		Col:    col,
	}
}

// String returns a string representation of the location
func (p *ParseLocation) String() string {
	if p.Offset >= 0 {
		return fmt.Sprintf("%s@%d:%d", p.File.URL, p.Line, p.Col)
	}
	return p.File.URL
}

// MoveBy moves the location by delta characters
func (p *ParseLocation) MoveBy(delta int) *ParseLocation {
	source := p.File.Content
	length := len(source)
	offset := p.Offset
	line := p.Line
	col := p.Col

	for offset > 0 && delta < 0 {
		offset--
		delta++
		ch := source[offset]
		if ch == '\n' {
			line--
			priorLine := strings.LastIndex(source[:offset], "\n")
			if priorLine > 0 {
				col = offset - priorLine
			} else {
				col = offset
			}
		} else {
			col--
		}
	}

	for offset < length && delta > 0 {
		ch := source[offset]
		offset++
		delta--
		if ch == '\n' {
			line++
			col = 0
		} else {
			col++
		}
	}

	return NewParseLocation(p.File, offset, line, col)
}

// LocationAt computes the ParseLocation for an offset into a source file
func LocationAt(file *ParseSourceFile, offset int) *ParseLocation {
	line := 0
	col := 0
	for i := 0; i < offset && i < len(file.Content); i++ {
		if file.Content[i] == '\n' {
			line++
			col = 0
		} else {
			col++
		}
	}
	return NewParseLocation(file, offset, line, col)
}

// ParseSourceSpan represents a span of text in a source file
type ParseSourceSpan struct {
	Start *ParseLocation
	End   *ParseLocation
}

// NewParseSourceSpan creates a new ParseSourceSpan
func NewParseSourceSpan(start, end *ParseLocation) *ParseSourceSpan {
	return &ParseSourceSpan{Start: start, End: end}
}

// String returns the source text covered by the span
func (p *ParseSourceSpan) String() string {
	if p.Start == nil || p.End == nil {
		return ""
	}
	return p.Start.File.Content[p.Start.Offset:p.End.Offset]
}

// ParseErrorLevel represents the severity of a parse error
type ParseErrorLevel int

const (
	ParseErrorLevelWarning ParseErrorLevel = iota
	ParseErrorLevelError
)

// ParseError represents an error found while parsing or transforming
type ParseError struct {
	Span  *ParseSourceSpan
	Msg   string
	Level ParseErrorLevel
}

// NewParseError creates a new ParseError
func NewParseError(span *ParseSourceSpan, msg string, level ParseErrorLevel) *ParseError {
	return &ParseError{Span: span, Msg: msg, Level: level}
}

// Error implements the error interface
func (p *ParseError) Error() string {
	if p.Span != nil && p.Span.Start != nil {
		return fmt.Sprintf("%s (%s)", p.Msg, p.Span.Start.String())
	}
	return p.Msg
}
