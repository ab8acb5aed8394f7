package template_parser

import (
	"strings"

	"wcc-go/packages/compiler/src/expression_parser"
	"wcc-go/packages/compiler/src/ml_parser"
	"wcc-go/packages/compiler/src/util"
	"wcc-go/packages/compiler/src/view"
)

const (
	EXPLICIT_ATTR_START = "[attr."
	EXPLICIT_ATTR_END   = "]"
	PROP_BINDING_START  = "["
	PROP_BINDING_END    = "]"
	EVENT_BINDING_START = "("
	EVENT_BINDING_END   = ")"

	// EMPTY_STRING_CONSTANT is the value of an attribute written without one
	EMPTY_STRING_CONSTANT = "''"
)

// ElementRole is the role of the element owning an attribute
type ElementRole int

const (
	ElementRoleHtmlElement ElementRole = iota
	ElementRoleComponent
)

// String returns the role name
func (r ElementRole) String() string {
	if r == ElementRoleComponent {
		return "component"
	}
	return "element"
}

// delims is a pair of wrapping tokens such as `[` and `]`
type delims struct {
	start, end string
}

func (d delims) wraps(key string) bool {
	return len(key) >= len(d.start)+len(d.end) &&
		strings.HasPrefix(key, d.start) && strings.HasSuffix(key, d.end)
}

func (d delims) strip(key string) string {
	return key[len(d.start) : len(key)-len(d.end)]
}

var (
	explicitAttrDelims = delims{EXPLICIT_ATTR_START, EXPLICIT_ATTR_END}
	propBindingDelims  = delims{PROP_BINDING_START, PROP_BINDING_END}
	eventBindingDelims = delims{EVENT_BINDING_START, EVENT_BINDING_END}
)

// BindingClassifier decides which binding a raw attribute stands for.
//
// Precedence, highest first:
//  1. `[attr.NAME]`              AttributeBinding, value resolved
//  2. key with separator        AttributeBinding: string constant when plain,
//                                value resolved when `[NAME]`
//  3. `[NAME]`                   HtmlElementProp / ComponentInput, value resolved
//  4. `(NAME)`                   HtmlElementEvent / ComponentOutput, method call
//  5. plain key                  HtmlElementProp / ComponentInput, string constant
//
// A plain key without a value becomes an empty-string AttributeBinding.
type BindingClassifier struct {
	separator string
}

// NewBindingClassifier creates a new BindingClassifier. separator marks
// implicit attribute names (`aria-label`).
func NewBindingClassifier(separator string) *BindingClassifier {
	return &BindingClassifier{separator: separator}
}

// Classify returns the binding attr represents on an element of the given role
func (bc *BindingClassifier) Classify(attr *ml_parser.Attribute, role ElementRole) (view.Binding, error) {
	key := attr.Name
	switch {
	case explicitAttrDelims.wraps(key):
		if err := bc.requireValue(attr, "An attribute binding"); err != nil {
			return nil, err
		}
		return view.NewAttributeBinding(explicitAttrDelims.strip(key), expression_parser.ResolveBinding(attr.Value)), nil

	case bc.isPlain(key) && strings.Contains(key, bc.separator):
		return view.NewAttributeBinding(key, literalValue(attr)), nil

	case propBindingDelims.wraps(key) && strings.Contains(propBindingDelims.strip(key), bc.separator):
		if err := bc.requireValue(attr, "An attribute binding"); err != nil {
			return nil, err
		}
		return view.NewAttributeBinding(propBindingDelims.strip(key), expression_parser.ResolveBinding(attr.Value)), nil

	case propBindingDelims.wraps(key):
		name := propBindingDelims.strip(key)
		if role == ElementRoleComponent {
			if err := bc.requireValue(attr, "An input bound to a component"); err != nil {
				return nil, err
			}
			return view.NewComponentInputBinding(name, expression_parser.ResolveBinding(attr.Value)), nil
		}
		if err := bc.requireValue(attr, "A prop bound to an HTML element"); err != nil {
			return nil, err
		}
		return view.NewHtmlElementPropBinding(name, expression_parser.ResolveBinding(attr.Value)), nil

	case eventBindingDelims.wraps(key):
		name := eventBindingDelims.strip(key)
		what := "An event bound to an HTML element"
		if role == ElementRoleComponent {
			what = "An output bound to a component"
		}
		if err := bc.requireValue(attr, what); err != nil {
			return nil, err
		}
		handler, err := expression_parser.ParseMethodCall(attr.Value, valueSpan(attr))
		if err != nil {
			return nil, err
		}
		if role == ElementRoleComponent {
			return view.NewComponentOutputBinding(name, handler), nil
		}
		return view.NewHtmlElementEventBinding(name, handler), nil
	}

	if !attr.HasValue {
		return view.NewAttributeBinding(key, expression_parser.NewConstant(EMPTY_STRING_CONSTANT)), nil
	}
	if role == ElementRoleComponent {
		return view.NewComponentInputBinding(key, literalValue(attr)), nil
	}
	return view.NewHtmlElementPropBinding(key, literalValue(attr)), nil
}

func (bc *BindingClassifier) isPlain(key string) bool {
	return !propBindingDelims.wraps(key) && !eventBindingDelims.wraps(key)
}

func (bc *BindingClassifier) requireValue(attr *ml_parser.Attribute, what string) error {
	if attr.HasValue {
		return nil
	}
	return util.NewParseErrorf(attr.SourceSpan(), "%s must have a value: %q", what, attr.Name)
}

// literalValue wraps the attribute text as a string constant
func literalValue(attr *ml_parser.Attribute) *expression_parser.Constant {
	if !attr.HasValue {
		return expression_parser.NewConstant(EMPTY_STRING_CONSTANT)
	}
	return expression_parser.NewConstant(util.QuoteString(attr.Value))
}

func valueSpan(attr *ml_parser.Attribute) *util.ParseSourceSpan {
	if attr.ValueSpan != nil {
		return attr.ValueSpan
	}
	return attr.SourceSpan()
}
