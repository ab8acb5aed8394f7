package view

import (
	"fmt"
	"strings"

	"wcc-go/packages/compiler/src/expression_parser"
)

// Humanizer flattens a forest into rows of the form
// [depth, kind, details...] followed by one row per binding.
type Humanizer struct {
	result [][]interface{}
	depth  int
}

// NewHumanizer creates a new Humanizer
func NewHumanizer() *Humanizer {
	return &Humanizer{}
}

// Humanize flattens forest into rows, trees depth-first
func Humanize(forest *Forest) [][]interface{} {
	h := NewHumanizer()
	forest.Walk(func(tree *Tree, depth int) bool {
		h.depth = depth
		tree.Node.Visit(h, nil)
		for _, b := range tree.Node.Bindings().All() {
			b.Visit(h, nil)
		}
		return true
	})
	return h.result
}

// Dump renders forest as indented text, one row per line
func Dump(forest *Forest) string {
	var b strings.Builder
	for _, row := range Humanize(forest) {
		depth := row[0].(int)
		b.WriteString(strings.Repeat("  ", depth))
		parts := make([]string, 0, len(row)-1)
		for _, cell := range row[1:] {
			parts = append(parts, fmt.Sprint(cell))
		}
		b.WriteString(strings.Join(parts, " "))
		b.WriteByte('\n')
	}
	return b.String()
}

func (h *Humanizer) add(cells ...interface{}) interface{} {
	h.result = append(h.result, append([]interface{}{h.depth}, cells...))
	return nil
}

func (h *Humanizer) addBinding(cells ...interface{}) interface{} {
	h.result = append(h.result, append([]interface{}{h.depth + 1}, cells...))
	return nil
}

func value(v expression_parser.BoundValue) string {
	switch v := v.(type) {
	case *expression_parser.Constant:
		return "Constant(" + v.Text + ")"
	case *expression_parser.PropertyAccess:
		return "PropertyAccess(" + v.Path + ")"
	case *expression_parser.MethodCall:
		return "MethodCall(" + expression_parser.Serialize(v) + ")"
	}
	return fmt.Sprintf("%T", v)
}

// VisitHtmlElement implements Visitor
func (h *Humanizer) VisitHtmlElement(node *HtmlElementNode, context interface{}) interface{} {
	return h.add("HtmlElement", node.TagName)
}

// VisitComponent implements Visitor
func (h *Humanizer) VisitComponent(node *ComponentNode, context interface{}) interface{} {
	return h.add("Component", node.TagName, node.ClassName)
}

// VisitConditional implements Visitor
func (h *Humanizer) VisitConditional(node *ConditionalNode, context interface{}) interface{} {
	return h.add("Conditional")
}

// VisitRepeating implements Visitor
func (h *Humanizer) VisitRepeating(node *RepeatingNode, context interface{}) interface{} {
	return h.add("Repeating")
}

// VisitInterpolation implements Visitor
func (h *Humanizer) VisitInterpolation(node *InterpolationNode, context interface{}) interface{} {
	return h.add("Interpolation")
}

// VisitText implements Visitor
func (h *Humanizer) VisitText(node *TextNode, context interface{}) interface{} {
	return h.add("Text", node.Value)
}

// VisitAttributeBinding implements BindingVisitor
func (h *Humanizer) VisitAttributeBinding(b *AttributeBinding, context interface{}) interface{} {
	return h.addBinding("@Attribute", b.Name(), value(b.Value()))
}

// VisitHtmlElementPropBinding implements BindingVisitor
func (h *Humanizer) VisitHtmlElementPropBinding(b *HtmlElementPropBinding, context interface{}) interface{} {
	return h.addBinding("@HtmlElementProp", b.Name(), value(b.Value()))
}

// VisitHtmlElementEventBinding implements BindingVisitor
func (h *Humanizer) VisitHtmlElementEventBinding(b *HtmlElementEventBinding, context interface{}) interface{} {
	return h.addBinding("@HtmlElementEvent", b.Name(), value(b.Value()))
}

// VisitComponentInputBinding implements BindingVisitor
func (h *Humanizer) VisitComponentInputBinding(b *ComponentInputBinding, context interface{}) interface{} {
	return h.addBinding("@ComponentInput", b.Name(), value(b.Value()))
}

// VisitComponentOutputBinding implements BindingVisitor
func (h *Humanizer) VisitComponentOutputBinding(b *ComponentOutputBinding, context interface{}) interface{} {
	return h.addBinding("@ComponentOutput", b.Name(), value(b.Value()))
}

// VisitConditionalBinding implements BindingVisitor
func (h *Humanizer) VisitConditionalBinding(b *ConditionalBinding, context interface{}) interface{} {
	return h.addBinding("@Conditional", b.IsNegated, value(b.Value()))
}

// VisitRepeatingBinding implements BindingVisitor
func (h *Humanizer) VisitRepeatingBinding(b *RepeatingBinding, context interface{}) interface{} {
	return h.addBinding("@Repeating", b.ItemVar, b.IndexVar, value(b.Value()), b.KeyPath)
}

// VisitInterpolationBinding implements BindingVisitor
func (h *Humanizer) VisitInterpolationBinding(b *InterpolationBinding, context interface{}) interface{} {
	return h.addBinding("@Interpolation", value(b.Value()))
}

// VisitTextBinding implements BindingVisitor
func (h *Humanizer) VisitTextBinding(b *TextBinding, context interface{}) interface{} {
	return h.addBinding("@Text", value(b.Value()))
}
