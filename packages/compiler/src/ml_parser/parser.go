package ml_parser

import (
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html"

	"wcc-go/packages/compiler/src/util"
)

// ParseTreeResult represents the result of parsing a markup document
type ParseTreeResult struct {
	RootNodes []Node
	Errors    []*util.ParseError
}

// NewParseTreeResult creates a new ParseTreeResult
func NewParseTreeResult(rootNodes []Node, errors []*util.ParseError) *ParseTreeResult {
	return &ParseTreeResult{
		RootNodes: rootNodes,
		Errors:    errors,
	}
}

// Parser turns markup text into a position-tagged Element/Text/Comment tree.
//
// Tokenization is delegated to the golang.org/x/net/html tokenizer, which
// handles raw-text elements, comments and character references. Unlike
// html.Parse no document structure is synthesized: the tree mirrors the
// source, so `<w:if>` or `<user-card>` stay where the author wrote them.
type Parser struct{}

// NewParser creates a new Parser
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses source, using url to label locations
func (p *Parser) Parse(source, url string) *ParseTreeResult {
	file := util.NewParseSourceFile(source, url)
	tb := NewTreeBuilder(file)
	tb.Build()
	return NewParseTreeResult(tb.RootNodes(), tb.Errors())
}

// TreeBuilder assembles nodes from the token stream
type TreeBuilder struct {
	file           *util.ParseSourceFile
	tokenizer      *html.Tokenizer
	offset         int
	rootNodes      []Node
	containerStack []*Element
	errors         []*util.ParseError
}

// NewTreeBuilder creates a new TreeBuilder over file
func NewTreeBuilder(file *util.ParseSourceFile) *TreeBuilder {
	return &TreeBuilder{
		file:      file,
		tokenizer: html.NewTokenizer(strings.NewReader(file.Content)),
	}
}

// Build consumes every token of the source
func (tb *TreeBuilder) Build() {
	for {
		tt := tb.tokenizer.Next()
		raw := string(tb.tokenizer.Raw())
		start := tb.offset
		tb.offset += len(raw)
		span := tb.file.SpanOf(start, tb.offset)

		switch tt {
		case html.ErrorToken:
			if err := tb.tokenizer.Err(); err != nil && !errors.Is(err, io.EOF) {
				tb.errors = append(tb.errors, util.NewParseErrorf(span, "Tokenizer failure: %v", err))
			}
			tb.containerStack = nil
			return
		case html.TextToken:
			tb._consumeText(string(tb.tokenizer.Text()), span)
		case html.CommentToken:
			tb._addToParent(NewComment(string(tb.tokenizer.Text()), span))
		case html.StartTagToken:
			tb._consumeStartTag(raw, start, span, false)
		case html.SelfClosingTagToken:
			tb._consumeStartTag(raw, start, span, true)
		case html.EndTagToken:
			tb._consumeEndTag(raw, span)
		case html.DoctypeToken:
			// not part of the view
		}
	}
}

// RootNodes returns the root nodes
func (tb *TreeBuilder) RootNodes() []Node {
	return tb.rootNodes
}

// Errors returns the errors collected while building
func (tb *TreeBuilder) Errors() []*util.ParseError {
	return tb.errors
}

func (tb *TreeBuilder) _consumeText(value string, span *util.ParseSourceSpan) {
	if value == "" {
		return
	}
	// Adjacent text tokens (the tokenizer may split around NULs or long runs) are merged.
	children := tb._siblings()
	if n := len(children); n > 0 {
		if prev, ok := children[n-1].(*Text); ok {
			prev.Value += value
			prev.sourceSpan = util.NewParseSourceSpan(prev.sourceSpan.Start, span.End, nil, nil)
			return
		}
	}
	tb._addToParent(NewText(value, span))
}

func (tb *TreeBuilder) _consumeStartTag(raw string, start int, span *util.ParseSourceSpan, selfClosing bool) {
	tag := scanStartTag(raw)
	attrs := make([]*Attribute, 0, len(tag.attrs))
	for _, a := range tag.attrs {
		keySpan := tb.file.SpanOf(start+a.keyStart, start+a.keyEnd)
		var valueSpan *util.ParseSourceSpan
		end := start + a.keyEnd
		if a.hasValue {
			valueSpan = tb.file.SpanOf(start+a.valueStart, start+a.valueEnd)
			end = start + a.end
		}
		attrs = append(attrs, NewAttribute(
			a.key,
			html.UnescapeString(a.value),
			a.hasValue,
			tb.file.SpanOf(start+a.keyStart, end),
			keySpan,
			valueSpan,
		))
	}
	isVoid := IsVoidElement(tag.name)
	el := NewElement(tag.name, attrs, nil, selfClosing, isVoid, span, span, nil)
	tb._addToParent(el)
	if selfClosing || isVoid {
		el.EndSourceSpan = span
		return
	}
	tb.containerStack = append(tb.containerStack, el)
}

func (tb *TreeBuilder) _consumeEndTag(raw string, span *util.ParseSourceSpan) {
	name := scanEndTagName(raw)
	if IsVoidElement(name) {
		tb.errors = append(tb.errors, util.NewParseErrorf(span, "Void elements do not have end tags %q", name))
		return
	}
	if !tb._popContainer(name, span) {
		tb.errors = append(tb.errors, util.NewParseErrorf(span,
			"Unexpected closing tag %q. It may happen when the tag has already been closed by another tag.", name))
	}
}

// _popContainer closes the innermost open element named name. Elements opened
// after it are closed implicitly and keep no end span.
func (tb *TreeBuilder) _popContainer(name string, endSourceSpan *util.ParseSourceSpan) bool {
	for stackIndex := len(tb.containerStack) - 1; stackIndex >= 0; stackIndex-- {
		node := tb.containerStack[stackIndex]
		if !strings.EqualFold(node.Name, name) {
			continue
		}
		node.EndSourceSpan = endSourceSpan
		node.sourceSpan = util.NewParseSourceSpan(node.sourceSpan.Start, endSourceSpan.End, node.sourceSpan.FullStart, node.sourceSpan.Details)
		tb.containerStack = tb.containerStack[:stackIndex]
		return true
	}
	return false
}

func (tb *TreeBuilder) _siblings() []Node {
	if n := len(tb.containerStack); n > 0 {
		return tb.containerStack[n-1].Children
	}
	return tb.rootNodes
}

func (tb *TreeBuilder) _addToParent(node Node) {
	if n := len(tb.containerStack); n > 0 {
		parent := tb.containerStack[n-1]
		parent.Children = append(parent.Children, node)
		return
	}
	tb.rootNodes = append(tb.rootNodes, node)
}
