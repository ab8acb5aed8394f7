package expression_parser

import (
	"fmt"
	"strings"

	"wcc-go/packages/compiler/src/core"
)

// PlaceholderToken is the template spelling of a Placeholder
const PlaceholderToken = string(rune(core.CharHASH))

// Serialize serializes the given value back into its template spelling
func Serialize(value BoundValue) string {
	return value.Visit(NewSerializeExpressionVisitor(), nil).(string)
}

// SerializeExpressionVisitor is a visitor that serializes bound values to strings
type SerializeExpressionVisitor struct{}

// NewSerializeExpressionVisitor creates a new SerializeExpressionVisitor
func NewSerializeExpressionVisitor() *SerializeExpressionVisitor {
	return &SerializeExpressionVisitor{}
}

// VisitConstant visits a constant
func (s *SerializeExpressionVisitor) VisitConstant(value *Constant, context interface{}) interface{} {
	return value.Text
}

// VisitPropertyAccess visits a property access
func (s *SerializeExpressionVisitor) VisitPropertyAccess(value *PropertyAccess, context interface{}) interface{} {
	return value.Path
}

// VisitMethodCall visits a method call
func (s *SerializeExpressionVisitor) VisitMethodCall(value *MethodCall, context interface{}) interface{} {
	args := make([]string, len(value.Args))
	for i, arg := range value.Args {
		args[i] = arg.Visit(s, context).(string)
	}
	return fmt.Sprintf("%s(%s)", value.Name, strings.Join(args, ", "))
}

// VisitPlaceholder visits a placeholder
func (s *SerializeExpressionVisitor) VisitPlaceholder(value *Placeholder, context interface{}) interface{} {
	return PlaceholderToken
}
