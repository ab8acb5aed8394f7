package util

import (
	"fmt"
	"sort"
	"strings"
)

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

// MoveBy moves the location by delta bytes
func (p *ParseLocation) MoveBy(delta int) *ParseLocation {
	return p.File.LocationAt(p.Offset + delta)
}

// GetContext returns the source context around the location
func (p *ParseLocation) GetContext(maxChars, maxLines int) *Context {
	content := p.File.Content
	startOffset := p.Offset

	if startOffset < 0 || len(content) == 0 {
		return nil
	}

	if startOffset > len(content)-1 {
		startOffset = len(content) - 1
	}

	endOffset := startOffset
	ctxChars := 0
	ctxLines := 0

	for ctxChars < maxChars && startOffset > 0 {
		startOffset--
		ctxChars++
		if content[startOffset] == '\n' {
			ctxLines++
			if ctxLines == maxLines {
				break
			}
		}
	}

	ctxChars = 0
	ctxLines = 0
	for ctxChars < maxChars && endOffset < len(content)-1 {
		endOffset++
		ctxChars++
		if content[endOffset] == '\n' {
			ctxLines++
			if ctxLines == maxLines {
				break
			}
		}
	}

	anchor := p.Offset
	if anchor > len(content) {
		anchor = len(content)
	}
	after := ""
	if anchor <= endOffset {
		after = content[anchor : endOffset+1]
	}
	return &Context{
		Before: content[startOffset:anchor],
		After:  after,
	}
}

// Context represents source context around a location
type Context struct {
	Before string
	After  string
}

// ParseSourceFile represents a source file
type ParseSourceFile struct {
	Content string
	URL     string

	lineStarts []int
}

// NewParseSourceFile creates a new ParseSourceFile
func NewParseSourceFile(content, url string) *ParseSourceFile {
	f := &ParseSourceFile{
		Content: content,
		URL:     url,
	}
	f.lineStarts = append(f.lineStarts, 0)
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			f.lineStarts = append(f.lineStarts, i+1)
		}
	}
	return f
}

// LocationAt returns the 0-based line/column location of a byte offset.
// Offsets outside the content are clamped.
func (f *ParseSourceFile) LocationAt(offset int) *ParseLocation {
	if offset < 0 {
		offset = 0
	}
	if offset > len(f.Content) {
		offset = len(f.Content)
	}
	line := sort.Search(len(f.lineStarts), func(i int) bool {
		return f.lineStarts[i] > offset
	}) - 1
	return NewParseLocation(f, offset, line, offset-f.lineStarts[line])
}

// SpanOf returns the span covering the byte range [start, end)
func (f *ParseSourceFile) SpanOf(start, end int) *ParseSourceSpan {
	return NewParseSourceSpan(f.LocationAt(start), f.LocationAt(end), nil, nil)
}

// ParseSourceSpan represents a span of source code
type ParseSourceSpan struct {
	Start     *ParseLocation
	End       *ParseLocation
	FullStart *ParseLocation
	Details   *string
}

// NewParseSourceSpan creates a new ParseSourceSpan
func NewParseSourceSpan(start, end *ParseLocation, fullStart *ParseLocation, details *string) *ParseSourceSpan {
	if fullStart == nil {
		fullStart = start
	}
	return &ParseSourceSpan{
		Start:     start,
		End:       end,
		FullStart: fullStart,
		Details:   details,
	}
}

// String returns the source code in this span
func (p *ParseSourceSpan) String() string {
	return p.Start.File.Content[p.Start.Offset:p.End.Offset]
}

// ParseErrorLevel represents the level of a parse error
type ParseErrorLevel int

const (
	ParseErrorLevelWarning ParseErrorLevel = iota
	ParseErrorLevelError
)

// ParseError represents a parse error
type ParseError struct {
	Span         *ParseSourceSpan
	Msg          string
	Level        ParseErrorLevel
	RelatedError error
}

// NewParseError creates a new ParseError
func NewParseError(span *ParseSourceSpan, msg string) *ParseError {
	return &ParseError{
		Span:  span,
		Msg:   msg,
		Level: ParseErrorLevelError,
	}
}

// NewParseErrorf creates a new ParseError with a formatted message
func NewParseErrorf(span *ParseSourceSpan, format string, args ...interface{}) *ParseError {
	return NewParseError(span, fmt.Sprintf(format, args...))
}

// NewParseWarning creates a new ParseWarning
func NewParseWarning(span *ParseSourceSpan, msg string) *ParseError {
	return &ParseError{
		Span:  span,
		Msg:   msg,
		Level: ParseErrorLevelWarning,
	}
}

// Error implements the error interface
func (p *ParseError) Error() string {
	return p.String()
}

// Unwrap returns the related error, if any
func (p *ParseError) Unwrap() error {
	return p.RelatedError
}

// Position returns the 0-based line and column of the error, or -1, -1 when unknown
func (p *ParseError) Position() (line, col int) {
	if p.Span == nil || p.Span.Start == nil {
		return -1, -1
	}
	return p.Span.Start.Line, p.Span.Start.Col
}

// ContextualMessage returns the error message with context
func (p *ParseError) ContextualMessage() string {
	if p.Span == nil || p.Span.Start == nil {
		return p.Msg
	}
	ctx := p.Span.Start.GetContext(100, 3)
	if ctx != nil {
		levelStr := "ERROR"
		if p.Level == ParseErrorLevelWarning {
			levelStr = "WARNING"
		}
		return fmt.Sprintf(`%s ("%s[%s ->]%s")`, p.Msg, ctx.Before, levelStr, ctx.After)
	}
	return p.Msg
}

// String returns a string representation of the error
func (p *ParseError) String() string {
	if p.Span == nil {
		return p.Msg
	}
	details := ""
	if p.Span.Details != nil {
		details = fmt.Sprintf(", %s", *p.Span.Details)
	}
	if p.Span.Start == nil {
		return fmt.Sprintf("%s%s", p.Msg, details)
	}
	return fmt.Sprintf("%s: %s%s", p.Msg, p.Span.Start, details)
}

// JoinErrors renders a list of parse errors one per line
func JoinErrors(errs []*ParseError) string {
	lines := make([]string, 0, len(errs))
	for _, e := range errs {
		lines = append(lines, e.String())
	}
	return strings.Join(lines, "\n")
}

// HasErrors reports whether the list holds at least one error-level entry
func HasErrors(errs []*ParseError) bool {
	for _, e := range errs {
		if e.Level == ParseErrorLevelError {
			return true
		}
	}
	return false
}
