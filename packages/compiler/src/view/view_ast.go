package view

import (
	"wcc-go/packages/compiler/src/ml_parser"
)

// Node represents a node of the view forest
type Node interface {
	Bindings() *BindingSet
	// RawNode is the markup node this view node came from. Diagnostics only.
	RawNode() ml_parser.Node
	// DomNodesCount is the number of DOM nodes the generator materializes for this node.
	DomNodesCount() int
	// IsDomNode is false for component nodes, whose content is owned by the component.
	IsDomNode() bool
	Visit(visitor Visitor, context interface{}) interface{}
}

// ComponentAnalyzer is handed to the code generator with each component node.
// It decides how the DOM placeholder of the component is materialized and is
// opaque to the template parser.
type ComponentAnalyzer interface{}

// Visitor visits view nodes
type Visitor interface {
	VisitHtmlElement(node *HtmlElementNode, context interface{}) interface{}
	VisitComponent(node *ComponentNode, context interface{}) interface{}
	VisitConditional(node *ConditionalNode, context interface{}) interface{}
	VisitRepeating(node *RepeatingNode, context interface{}) interface{}
	VisitInterpolation(node *InterpolationNode, context interface{}) interface{}
	VisitText(node *TextNode, context interface{}) interface{}
}

type baseNode struct {
	bindings      *BindingSet
	rawNode       ml_parser.Node
	domNodesCount int
	isDomNode     bool
}

func newBaseNode(rawNode ml_parser.Node, isDomNode bool) baseNode {
	return baseNode{
		bindings:      NewBindingSet(),
		rawNode:       rawNode,
		domNodesCount: 1,
		isDomNode:     isDomNode,
	}
}

func (n *baseNode) Bindings() *BindingSet   { return n.bindings }
func (n *baseNode) RawNode() ml_parser.Node { return n.rawNode }
func (n *baseNode) DomNodesCount() int      { return n.domNodesCount }
func (n *baseNode) IsDomNode() bool         { return n.isDomNode }

// HtmlElementNode is a plain DOM element
type HtmlElementNode struct {
	baseNode
	TagName string
}

// NewHtmlElementNode creates a new HtmlElementNode
func NewHtmlElementNode(tagName string, rawNode ml_parser.Node) *HtmlElementNode {
	return &HtmlElementNode{baseNode: newBaseNode(rawNode, true), TagName: tagName}
}

// Visit implements Node
func (n *HtmlElementNode) Visit(visitor Visitor, context interface{}) interface{} {
	return visitor.VisitHtmlElement(n, context)
}

// ComponentNode is a custom element backed by a component class.
// It materializes a single placeholder.
type ComponentNode struct {
	baseNode
	TagName   string
	ClassName string
	Analyzer  ComponentAnalyzer
}

// NewComponentNode creates a new ComponentNode
func NewComponentNode(tagName, className string, analyzer ComponentAnalyzer, rawNode ml_parser.Node) *ComponentNode {
	return &ComponentNode{
		baseNode:  newBaseNode(rawNode, false),
		TagName:   tagName,
		ClassName: className,
		Analyzer:  analyzer,
	}
}

// Visit implements Node
func (n *ComponentNode) Visit(visitor Visitor, context interface{}) interface{} {
	return visitor.VisitComponent(n, context)
}

// ConditionalNode renders its subtree depending on a ConditionalBinding.
// It materializes one anchor node.
type ConditionalNode struct {
	baseNode
}

// NewConditionalNode creates a new ConditionalNode
func NewConditionalNode(rawNode ml_parser.Node) *ConditionalNode {
	return &ConditionalNode{baseNode: newBaseNode(rawNode, true)}
}

// Binding returns the condition
func (n *ConditionalNode) Binding() *ConditionalBinding {
	b, _ := FirstOf[*ConditionalBinding](n.bindings)
	return b
}

// Visit implements Node
func (n *ConditionalNode) Visit(visitor Visitor, context interface{}) interface{} {
	return visitor.VisitConditional(n, context)
}

// RepeatingNode renders its subtree per item of a RepeatingBinding.
// It materializes one anchor node.
type RepeatingNode struct {
	baseNode
}

// NewRepeatingNode creates a new RepeatingNode
func NewRepeatingNode(rawNode ml_parser.Node) *RepeatingNode {
	return &RepeatingNode{baseNode: newBaseNode(rawNode, true)}
}

// Binding returns the repetition
func (n *RepeatingNode) Binding() *RepeatingBinding {
	b, _ := FirstOf[*RepeatingBinding](n.bindings)
	return b
}

// Visit implements Node
func (n *RepeatingNode) Visit(visitor Visitor, context interface{}) interface{} {
	return visitor.VisitRepeating(n, context)
}

// InterpolationNode is a text node whose content is bound
type InterpolationNode struct {
	baseNode
}

// NewInterpolationNode creates a new InterpolationNode
func NewInterpolationNode(rawNode ml_parser.Node) *InterpolationNode {
	return &InterpolationNode{baseNode: newBaseNode(rawNode, true)}
}

// Binding returns the interpolated value
func (n *InterpolationNode) Binding() *InterpolationBinding {
	b, _ := FirstOf[*InterpolationBinding](n.bindings)
	return b
}

// Visit implements Node
func (n *InterpolationNode) Visit(visitor Visitor, context interface{}) interface{} {
	return visitor.VisitInterpolation(n, context)
}

// TextNode is static text
type TextNode struct {
	baseNode
	Value string
}

// NewTextNode creates a new TextNode
func NewTextNode(value string, rawNode ml_parser.Node) *TextNode {
	return &TextNode{baseNode: newBaseNode(rawNode, true), Value: value}
}

// Visit implements Node
func (n *TextNode) Visit(visitor Visitor, context interface{}) interface{} {
	return visitor.VisitText(n, context)
}
