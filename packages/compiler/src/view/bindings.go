package view

import (
	"errors"
	"fmt"

	"wcc-go/packages/compiler/src/expression_parser"
)

// ErrDuplicateBinding is returned when a node already holds a binding of the same kind and name
var ErrDuplicateBinding = errors.New("duplicate binding")

// BindingKind tags the syntactic role of a binding
type BindingKind int

const (
	BindingKindAttribute BindingKind = iota
	BindingKindHtmlElementProp
	BindingKindHtmlElementEvent
	BindingKindComponentInput
	BindingKindComponentOutput
	BindingKindConditional
	BindingKindRepeating
	BindingKindInterpolation
	BindingKindText
)

var bindingKindNames = [...]string{
	BindingKindAttribute:        "Attribute",
	BindingKindHtmlElementProp:  "HtmlElementProp",
	BindingKindHtmlElementEvent: "HtmlElementEvent",
	BindingKindComponentInput:   "ComponentInput",
	BindingKindComponentOutput:  "ComponentOutput",
	BindingKindConditional:      "Conditional",
	BindingKindRepeating:        "Repeating",
	BindingKindInterpolation:    "Interpolation",
	BindingKindText:             "Text",
}

// String returns the kind name
func (k BindingKind) String() string {
	if int(k) < len(bindingKindNames) {
		return bindingKindNames[k]
	}
	return fmt.Sprintf("BindingKind(%d)", int(k))
}

// Binding associates a view node with one bound value
type Binding interface {
	Kind() BindingKind
	Name() string
	Value() expression_parser.BoundValue
	Visit(visitor BindingVisitor, context interface{}) interface{}
}

// BindingVisitor visits bindings
type BindingVisitor interface {
	VisitAttributeBinding(binding *AttributeBinding, context interface{}) interface{}
	VisitHtmlElementPropBinding(binding *HtmlElementPropBinding, context interface{}) interface{}
	VisitHtmlElementEventBinding(binding *HtmlElementEventBinding, context interface{}) interface{}
	VisitComponentInputBinding(binding *ComponentInputBinding, context interface{}) interface{}
	VisitComponentOutputBinding(binding *ComponentOutputBinding, context interface{}) interface{}
	VisitConditionalBinding(binding *ConditionalBinding, context interface{}) interface{}
	VisitRepeatingBinding(binding *RepeatingBinding, context interface{}) interface{}
	VisitInterpolationBinding(binding *InterpolationBinding, context interface{}) interface{}
	VisitTextBinding(binding *TextBinding, context interface{}) interface{}
}

type namedBinding struct {
	name  string
	value expression_parser.BoundValue
}

func (b *namedBinding) Name() string                        { return b.name }
func (b *namedBinding) Value() expression_parser.BoundValue { return b.value }

// AttributeBinding sets a DOM attribute, from `[attr.name]` or a hyphenated plain attribute
type AttributeBinding struct{ namedBinding }

// NewAttributeBinding creates a new AttributeBinding
func NewAttributeBinding(name string, value expression_parser.BoundValue) *AttributeBinding {
	return &AttributeBinding{namedBinding{name: name, value: value}}
}

// Kind implements Binding
func (b *AttributeBinding) Kind() BindingKind { return BindingKindAttribute }

// Visit implements Binding
func (b *AttributeBinding) Visit(visitor BindingVisitor, context interface{}) interface{} {
	return visitor.VisitAttributeBinding(b, context)
}

// HtmlElementPropBinding sets a DOM property of a plain element
type HtmlElementPropBinding struct{ namedBinding }

// NewHtmlElementPropBinding creates a new HtmlElementPropBinding
func NewHtmlElementPropBinding(name string, value expression_parser.BoundValue) *HtmlElementPropBinding {
	return &HtmlElementPropBinding{namedBinding{name: name, value: value}}
}

// Kind implements Binding
func (b *HtmlElementPropBinding) Kind() BindingKind { return BindingKindHtmlElementProp }

// Visit implements Binding
func (b *HtmlElementPropBinding) Visit(visitor BindingVisitor, context interface{}) interface{} {
	return visitor.VisitHtmlElementPropBinding(b, context)
}

// HtmlElementEventBinding listens to a DOM event of a plain element
type HtmlElementEventBinding struct{ namedBinding }

// NewHtmlElementEventBinding creates a new HtmlElementEventBinding
func NewHtmlElementEventBinding(name string, handler *expression_parser.MethodCall) *HtmlElementEventBinding {
	return &HtmlElementEventBinding{namedBinding{name: name, value: handler}}
}

// Kind implements Binding
func (b *HtmlElementEventBinding) Kind() BindingKind { return BindingKindHtmlElementEvent }

// Handler returns the method call run when the event fires
func (b *HtmlElementEventBinding) Handler() *expression_parser.MethodCall {
	return b.value.(*expression_parser.MethodCall)
}

// Visit implements Binding
func (b *HtmlElementEventBinding) Visit(visitor BindingVisitor, context interface{}) interface{} {
	return visitor.VisitHtmlElementEventBinding(b, context)
}

// ComponentInputBinding feeds a value into a component input
type ComponentInputBinding struct{ namedBinding }

// NewComponentInputBinding creates a new ComponentInputBinding
func NewComponentInputBinding(name string, value expression_parser.BoundValue) *ComponentInputBinding {
	return &ComponentInputBinding{namedBinding{name: name, value: value}}
}

// Kind implements Binding
func (b *ComponentInputBinding) Kind() BindingKind { return BindingKindComponentInput }

// Visit implements Binding
func (b *ComponentInputBinding) Visit(visitor BindingVisitor, context interface{}) interface{} {
	return visitor.VisitComponentInputBinding(b, context)
}

// ComponentOutputBinding subscribes a method call to a component output
type ComponentOutputBinding struct{ namedBinding }

// NewComponentOutputBinding creates a new ComponentOutputBinding
func NewComponentOutputBinding(name string, handler *expression_parser.MethodCall) *ComponentOutputBinding {
	return &ComponentOutputBinding{namedBinding{name: name, value: handler}}
}

// Kind implements Binding
func (b *ComponentOutputBinding) Kind() BindingKind { return BindingKindComponentOutput }

// Handler returns the method call run when the output emits
func (b *ComponentOutputBinding) Handler() *expression_parser.MethodCall {
	return b.value.(*expression_parser.MethodCall)
}

// Visit implements Binding
func (b *ComponentOutputBinding) Visit(visitor BindingVisitor, context interface{}) interface{} {
	return visitor.VisitComponentOutputBinding(b, context)
}

// ConditionalBinding renders its subtree while the value is truthy (falsy when IsNegated)
type ConditionalBinding struct {
	namedBinding
	IsNegated bool
}

// NewConditionalBinding creates a new ConditionalBinding
func NewConditionalBinding(value expression_parser.BoundValue, isNegated bool) *ConditionalBinding {
	return &ConditionalBinding{namedBinding: namedBinding{value: value}, IsNegated: isNegated}
}

// Kind implements Binding
func (b *ConditionalBinding) Kind() BindingKind { return BindingKindConditional }

// Visit implements Binding
func (b *ConditionalBinding) Visit(visitor BindingVisitor, context interface{}) interface{} {
	return visitor.VisitConditionalBinding(b, context)
}

// RepeatingBinding renders its subtree once per item of the source value.
// IndexVar and KeyPath are empty when not declared.
type RepeatingBinding struct {
	namedBinding
	ItemVar  string
	IndexVar string
	KeyPath  string
}

// NewRepeatingBinding creates a new RepeatingBinding
func NewRepeatingBinding(source expression_parser.BoundValue, itemVar, indexVar, keyPath string) *RepeatingBinding {
	return &RepeatingBinding{
		namedBinding: namedBinding{value: source},
		ItemVar:      itemVar,
		IndexVar:     indexVar,
		KeyPath:      keyPath,
	}
}

// Kind implements Binding
func (b *RepeatingBinding) Kind() BindingKind { return BindingKindRepeating }

// Visit implements Binding
func (b *RepeatingBinding) Visit(visitor BindingVisitor, context interface{}) interface{} {
	return visitor.VisitRepeatingBinding(b, context)
}

// InterpolationBinding renders the value as text
type InterpolationBinding struct{ namedBinding }

// NewInterpolationBinding creates a new InterpolationBinding
func NewInterpolationBinding(value expression_parser.BoundValue) *InterpolationBinding {
	return &InterpolationBinding{namedBinding{value: value}}
}

// Kind implements Binding
func (b *InterpolationBinding) Kind() BindingKind { return BindingKindInterpolation }

// Visit implements Binding
func (b *InterpolationBinding) Visit(visitor BindingVisitor, context interface{}) interface{} {
	return visitor.VisitInterpolationBinding(b, context)
}

// TextBinding holds static text; its value is always a *Constant
type TextBinding struct{ namedBinding }

// NewTextBinding creates a new TextBinding
func NewTextBinding(value *expression_parser.Constant) *TextBinding {
	return &TextBinding{namedBinding{value: value}}
}

// Kind implements Binding
func (b *TextBinding) Kind() BindingKind { return BindingKindText }

// Constant returns the text literal
func (b *TextBinding) Constant() *expression_parser.Constant {
	return b.value.(*expression_parser.Constant)
}

// Visit implements Binding
func (b *TextBinding) Visit(visitor BindingVisitor, context interface{}) interface{} {
	return visitor.VisitTextBinding(b, context)
}

// BindingKey identifies a binding within a node
type BindingKey struct {
	Kind BindingKind
	Name string
}

// BindingSet holds at most one binding per (kind, name). Iteration follows
// insertion order so generated code is deterministic.
type BindingSet struct {
	byKey map[BindingKey]Binding
	order []BindingKey
}

// NewBindingSet creates an empty BindingSet
func NewBindingSet() *BindingSet {
	return &BindingSet{byKey: map[BindingKey]Binding{}}
}

// Add inserts b, failing with ErrDuplicateBinding when its key is taken
func (s *BindingSet) Add(b Binding) error {
	key := BindingKey{Kind: b.Kind(), Name: b.Name()}
	if _, ok := s.byKey[key]; ok {
		return fmt.Errorf("%w: %s %q", ErrDuplicateBinding, key.Kind, key.Name)
	}
	s.byKey[key] = b
	s.order = append(s.order, key)
	return nil
}

// Get returns the binding stored under kind and name
func (s *BindingSet) Get(kind BindingKind, name string) (Binding, bool) {
	b, ok := s.byKey[BindingKey{Kind: kind, Name: name}]
	return b, ok
}

// Len returns the number of bindings
func (s *BindingSet) Len() int {
	return len(s.order)
}

// All returns the bindings in insertion order
func (s *BindingSet) All() []Binding {
	all := make([]Binding, 0, len(s.order))
	for _, key := range s.order {
		all = append(all, s.byKey[key])
	}
	return all
}

// BindingsOf returns the bindings of s that have concrete type T
func BindingsOf[T Binding](s *BindingSet) []T {
	var out []T
	for _, key := range s.order {
		if b, ok := s.byKey[key].(T); ok {
			out = append(out, b)
		}
	}
	return out
}

// FirstOf returns the first binding of s with concrete type T
func FirstOf[T Binding](s *BindingSet) (T, bool) {
	for _, key := range s.order {
		if b, ok := s.byKey[key].(T); ok {
			return b, true
		}
	}
	var zero T
	return zero, false
}
