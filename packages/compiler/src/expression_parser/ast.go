package expression_parser

// BoundValue is the resolved form of an expression appearing in a binding
type BoundValue interface {
	Visit(visitor ValueVisitor, context interface{}) interface{}
}

// ValueVisitor visits bound values
type ValueVisitor interface {
	VisitConstant(value *Constant, context interface{}) interface{}
	VisitPropertyAccess(value *PropertyAccess, context interface{}) interface{}
	VisitMethodCall(value *MethodCall, context interface{}) interface{}
	VisitPlaceholder(value *Placeholder, context interface{}) interface{}
}

// Constant is a literal expression (string, number, boolean, null or
// undefined). Text is the literal exactly as it appears in code.
type Constant struct {
	Text string
}

// NewConstant creates a new Constant
func NewConstant(text string) *Constant {
	return &Constant{Text: text}
}

// Visit implements BoundValue
func (c *Constant) Visit(visitor ValueVisitor, context interface{}) interface{} {
	return visitor.VisitConstant(c, context)
}

// PropertyAccess is a dotted member-access path, kept opaque
type PropertyAccess struct {
	Path string
}

// NewPropertyAccess creates a new PropertyAccess
func NewPropertyAccess(path string) *PropertyAccess {
	return &PropertyAccess{Path: path}
}

// Visit implements BoundValue
func (p *PropertyAccess) Visit(visitor ValueVisitor, context interface{}) interface{} {
	return visitor.VisitPropertyAccess(p, context)
}

// MethodCall is a call of Name. Every argument is a *Constant, a
// *PropertyAccess or a *Placeholder.
type MethodCall struct {
	Name string
	Args []BoundValue
}

// NewMethodCall creates a new MethodCall
func NewMethodCall(name string, args []BoundValue) *MethodCall {
	return &MethodCall{Name: name, Args: args}
}

// Visit implements BoundValue
func (m *MethodCall) Visit(visitor ValueVisitor, context interface{}) interface{} {
	return visitor.VisitMethodCall(m, context)
}

// Placeholder stands for the event object supplied when a handler runs.
// It is only valid as a MethodCall argument.
type Placeholder struct{}

// NewPlaceholder creates a new Placeholder
func NewPlaceholder() *Placeholder {
	return &Placeholder{}
}

// Visit implements BoundValue
func (p *Placeholder) Visit(visitor ValueVisitor, context interface{}) interface{} {
	return visitor.VisitPlaceholder(p, context)
}
