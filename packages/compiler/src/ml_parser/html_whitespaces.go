package ml_parser

import (
	"regexp"
)

// Equivalent to \s with \u00a0 (non-breaking space) excluded
const wsChars = " \f\n\r\t\v\u1680\u180e\u2000-\u200a\u2028\u2029\u202f\u205f\u3000\ufeff"

var (
	noWsRegexp      = regexp.MustCompile(`[^` + wsChars + `]`)
	wsReplaceRegexp = regexp.MustCompile(`[` + wsChars + `]{2,}`)
)

// WhitespaceVisitor removes whitespace-only text nodes and collapses runs of
// whitespace to a single space. Elements listed by PreservesWhitespace are
// returned untouched together with their subtree.
type WhitespaceVisitor struct{}

// NewWhitespaceVisitor creates a new WhitespaceVisitor
func NewWhitespaceVisitor() *WhitespaceVisitor {
	return &WhitespaceVisitor{}
}

// VisitElement visits an element node
func (w *WhitespaceVisitor) VisitElement(element *Element, context interface{}) interface{} {
	if PreservesWhitespace(element.Name) {
		return element
	}
	return NewElement(
		element.Name,
		element.Attrs,
		toNodes(VisitAll(w, element.Children, context)),
		element.IsSelfClosing,
		element.IsVoid,
		element.SourceSpan(),
		element.StartSourceSpan,
		element.EndSourceSpan,
	)
}

// VisitAttribute visits an attribute node
func (w *WhitespaceVisitor) VisitAttribute(attribute *Attribute, context interface{}) interface{} {
	return attribute
}

// VisitText visits a text node
func (w *WhitespaceVisitor) VisitText(text *Text, context interface{}) interface{} {
	if !noWsRegexp.MatchString(text.Value) {
		return nil
	}
	return NewText(wsReplaceRegexp.ReplaceAllString(text.Value, " "), text.SourceSpan())
}

// VisitComment visits a comment node
func (w *WhitespaceVisitor) VisitComment(comment *Comment, context interface{}) interface{} {
	return comment
}

// RemoveWhitespaces returns a copy of result with insignificant whitespace removed
func RemoveWhitespaces(result *ParseTreeResult) *ParseTreeResult {
	return NewParseTreeResult(
		toNodes(VisitAll(NewWhitespaceVisitor(), result.RootNodes, nil)),
		result.Errors,
	)
}

func toNodes(results []interface{}) []Node {
	nodes := make([]Node, 0, len(results))
	for _, r := range results {
		if n, ok := r.(Node); ok {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

