package ml_parser_test

import (
	"fmt"

	"wcc-go/packages/compiler/src/ml_parser"
	"wcc-go/packages/compiler/src/util"
)

func HumanizeDom(parseResult *ml_parser.ParseTreeResult, addSourceSpan bool) []interface{} {
	if len(parseResult.Errors) > 0 {
		panic(fmt.Errorf("Unexpected parse errors:\n%s", util.JoinErrors(parseResult.Errors)))
	}

	return HumanizeNodes(parseResult.RootNodes, addSourceSpan)
}

func HumanizeDomSourceSpans(parseResult *ml_parser.ParseTreeResult) []interface{} {
	return HumanizeDom(parseResult, true)
}

func HumanizeNodes(nodes []ml_parser.Node, addSourceSpan bool) []interface{} {
	humanizer := NewHumanizer(addSourceSpan)
	ml_parser.VisitAll(humanizer, nodes, nil)
	return humanizer.Result
}

func HumanizeLineColumn(location *util.ParseLocation) string {
	return fmt.Sprintf("%d:%d", location.Line, location.Col)
}

func HumanizeErrors(errors []*util.ParseError) []interface{} {
	result := []interface{}{}
	for _, e := range errors {
		result = append(result, []interface{}{e.Msg, HumanizeLineColumn(e.Span.Start)})
	}
	return result
}

type Humanizer struct {
	Result            []interface{}
	elDepth           int
	includeSourceSpan bool
}

func NewHumanizer(includeSourceSpan bool) *Humanizer {
	return &Humanizer{
		Result:            []interface{}{},
		includeSourceSpan: includeSourceSpan,
	}
}

func (h *Humanizer) VisitElement(element *ml_parser.Element, context interface{}) interface{} {
	res := []interface{}{"Element", element.Name, h.elDepth}
	h.elDepth++
	if element.IsSelfClosing {
		res = append(res, "#selfClosing")
	}
	if h.includeSourceSpan {
		res = append(res, element.StartSourceSpan.String())
		if element.EndSourceSpan != nil {
			res = append(res, element.EndSourceSpan.String())
		} else {
			res = append(res, nil)
		}
	}
	h.Result = append(h.Result, res)
	for _, attr := range element.Attrs {
		attr.Visit(h, nil)
	}
	ml_parser.VisitAll(h, element.Children, nil)
	h.elDepth--
	return nil
}

func (h *Humanizer) VisitAttribute(attribute *ml_parser.Attribute, context interface{}) interface{} {
	res := []interface{}{"Attribute", attribute.Name, attribute.Value}
	if h.includeSourceSpan {
		res = append(res, attribute.SourceSpan().String())
	}
	h.Result = append(h.Result, res)
	return nil
}

func (h *Humanizer) VisitText(text *ml_parser.Text, context interface{}) interface{} {
	res := []interface{}{"Text", text.Value, h.elDepth}
	if h.includeSourceSpan {
		res = append(res, text.SourceSpan().String())
	}
	h.Result = append(h.Result, res)
	return nil
}

func (h *Humanizer) VisitComment(comment *ml_parser.Comment, context interface{}) interface{} {
	h.Result = append(h.Result, []interface{}{"Comment", comment.Value, h.elDepth})
	return nil
}
