package template_parser

import (
	"errors"
	"regexp"
	"strings"

	"wcc-go/packages/compiler/src/config"
	"wcc-go/packages/compiler/src/core"
	"wcc-go/packages/compiler/src/expression_parser"
	"wcc-go/packages/compiler/src/ml_parser"
	"wcc-go/packages/compiler/src/util"
	"wcc-go/packages/compiler/src/view"
)

const (
	DIRECTIVE_IF  = "if"
	DIRECTIVE_FOR = "for"

	FOR_KEY_CLAUSE = "key"
)

var (
	// optional negation followed by a dotted path
	conditionPathRegexp = regexp.MustCompile(`^!?[A-Za-z.]+$`)
	keyPathRegexp       = regexp.MustCompile(`^[A-Za-z.]+$`)
	forOfRegexp         = regexp.MustCompile(`\s+of\s+`)
)

// TemplateParserOptions represents the options of a template compile
type TemplateParserOptions struct {
	// PreserveWhitespaces keeps whitespace-only text between elements as TextNodes
	PreserveWhitespaces bool
	// Analyzers maps a component class name to the analyzer attached to its nodes
	Analyzers map[string]view.ComponentAnalyzer

	DirectivePrefix    string
	ComponentSeparator string
	InterpolationStart string
	InterpolationEnd   string
}

// DefaultTemplateParserOptions returns the options of a default CompilerConfig
func DefaultTemplateParserOptions() TemplateParserOptions {
	return OptionsFromConfig(config.NewCompilerConfig())
}

// OptionsFromConfig derives parser options from a compiler configuration
func OptionsFromConfig(cfg *config.CompilerConfig) TemplateParserOptions {
	return TemplateParserOptions{
		PreserveWhitespaces: cfg.PreserveWhitespaces,
		DirectivePrefix:     cfg.DirectivePrefix,
		ComponentSeparator:  cfg.ComponentSeparator,
		InterpolationStart:  cfg.InterpolationStart,
		InterpolationEnd:    cfg.InterpolationEnd,
	}
}

// ParseTemplate parses source into a view forest. The returned errors hold
// the markup errors followed by the first template error; when any is
// present the forest is nil.
func ParseTemplate(source, url string, options TemplateParserOptions) (*view.Forest, []*util.ParseError) {
	result := ml_parser.NewParser().Parse(source, url)
	if len(result.Errors) > 0 {
		return nil, result.Errors
	}
	if !options.PreserveWhitespaces {
		result = ml_parser.RemoveWhitespaces(result)
	}

	tp := NewTemplateParser(options)
	trees := tp.Transform(result.RootNodes)
	if len(tp.Errors) > 0 {
		return nil, tp.Errors
	}
	return view.NewForest(trees), nil
}

// TemplateParser transforms a markup tree into view trees. It stops at the
// first error, which is left in Errors.
type TemplateParser struct {
	options       TemplateParserOptions
	classifier    *BindingClassifier
	interpolation *regexp.Regexp
	Errors        []*util.ParseError
}

// NewTemplateParser creates a new TemplateParser
func NewTemplateParser(options TemplateParserOptions) *TemplateParser {
	return &TemplateParser{
		options:       options,
		classifier:    NewBindingClassifier(options.ComponentSeparator),
		interpolation: interpolationRegexp(options.InterpolationStart, options.InterpolationEnd),
	}
}

// interpolationRegexp matches `{{ expr }}` and captures expr without the
// surrounding whitespace. The expression may not contain delimiter characters.
func interpolationRegexp(start, end string) *regexp.Regexp {
	var exclude strings.Builder
	for _, c := range start + end {
		if c == '-' {
			exclude.WriteString(`\-`)
			continue
		}
		exclude.WriteString(regexp.QuoteMeta(string(c)))
	}
	return regexp.MustCompile(regexp.QuoteMeta(start) + `\s*([^` + exclude.String() + `]+?)\s*` + regexp.QuoteMeta(end))
}

// Transform converts nodes and their descendants, in order
func (tp *TemplateParser) Transform(nodes []ml_parser.Node) []*view.Tree {
	var trees []*view.Tree
	for _, node := range nodes {
		if tp.failed() {
			return nil
		}
		if result, ok := node.Visit(tp, nil).([]*view.Tree); ok {
			trees = append(trees, result...)
		}
	}
	if tp.failed() {
		return nil
	}
	return trees
}

func (tp *TemplateParser) failed() bool {
	return len(tp.Errors) > 0
}

func (tp *TemplateParser) reportError(err error, span *util.ParseSourceSpan) {
	var parseErr *util.ParseError
	if errors.As(err, &parseErr) {
		tp.Errors = append(tp.Errors, parseErr)
		return
	}
	tp.Errors = append(tp.Errors, util.NewParseError(span, err.Error()))
}

// VisitElement dispatches on the tag: directive, then component, then element
func (tp *TemplateParser) VisitElement(element *ml_parser.Element, context interface{}) interface{} {
	var node view.Node
	var err error
	switch {
	case tp.isDirective(element.Name):
		node, err = tp._visitDirective(element)
	case strings.Contains(element.Name, tp.options.ComponentSeparator):
		node, err = tp._visitComponent(element)
	default:
		node, err = tp._visitHtmlElement(element)
	}
	if err != nil {
		tp.reportError(err, element.StartSourceSpan)
		return nil
	}

	children := tp.Transform(element.Children)
	if tp.failed() {
		return nil
	}
	return []*view.Tree{view.NewTree(node, children)}
}

// VisitAttribute is not used: attributes are classified by their element
func (tp *TemplateParser) VisitAttribute(attribute *ml_parser.Attribute, context interface{}) interface{} {
	return nil
}

// VisitText splits the text on interpolations. Even chunks are literal text,
// odd chunks are bound expressions. An empty literal at either end is dropped.
func (tp *TemplateParser) VisitText(text *ml_parser.Text, context interface{}) interface{} {
	chunks := tp.splitInterpolation(text.Value)
	trees := make([]*view.Tree, 0, len(chunks))
	for i, chunk := range chunks {
		if (i == 0 || i == len(chunks)-1) && chunk == "" {
			continue
		}
		var node view.Node
		var binding view.Binding
		if i%2 == 0 {
			node = view.NewTextNode(chunk, text)
			binding = view.NewTextBinding(expression_parser.NewConstant(util.QuoteString(chunk)))
		} else {
			node = view.NewInterpolationNode(text)
			binding = view.NewInterpolationBinding(expression_parser.ResolveBinding(chunk))
		}
		if err := node.Bindings().Add(binding); err != nil {
			tp.reportError(err, text.SourceSpan())
			return nil
		}
		trees = append(trees, view.NewTree(node, nil))
	}
	return trees
}

// VisitComment contributes no view node
func (tp *TemplateParser) VisitComment(comment *ml_parser.Comment, context interface{}) interface{} {
	return nil
}

// splitInterpolation behaves like a regexp split that keeps the captured
// expressions: the result alternates literal and bound chunks and always has
// an odd length.
func (tp *TemplateParser) splitInterpolation(value string) []string {
	matches := tp.interpolation.FindAllStringSubmatchIndex(value, -1)
	chunks := make([]string, 0, 2*len(matches)+1)
	last := 0
	for _, m := range matches {
		chunks = append(chunks, value[last:m[0]], value[m[2]:m[3]])
		last = m[1]
	}
	return append(chunks, value[last:])
}

func (tp *TemplateParser) isDirective(tagName string) bool {
	prefix := tp.options.DirectivePrefix
	return len(tagName) > len(prefix) && strings.EqualFold(tagName[:len(prefix)], prefix)
}

func (tp *TemplateParser) _visitDirective(element *ml_parser.Element) (view.Node, error) {
	name := strings.ToLower(element.Name[len(tp.options.DirectivePrefix):])
	switch name {
	case DIRECTIVE_IF:
		return tp._visitIf(element)
	case DIRECTIVE_FOR:
		return tp._visitFor(element)
	}
	return nil, util.NewParseErrorf(element.StartSourceSpan, "Unsupported directive <%s%s>", tp.options.DirectivePrefix, name)
}

func (tp *TemplateParser) _visitIf(element *ml_parser.Element) (view.Node, error) {
	span := element.StartSourceSpan
	if len(element.Attrs) == 0 {
		return nil, util.NewParseErrorf(span, "Must specify the condition in <%s>", element.Name)
	}

	parts := make([]string, 0, len(element.Attrs))
	for _, attr := range element.Attrs {
		if attr.HasValue {
			parts = append(parts, attr.Name+" = "+attr.Value)
		} else {
			parts = append(parts, attr.Name)
		}
	}
	path := strings.Join(parts, " ")
	if !conditionPathRegexp.MatchString(path) {
		return nil, util.NewParseErrorf(span, "The condition of <%s> must be a property path, got %q", element.Name, path)
	}

	isNegated := path[0] == core.CharBANG
	if isNegated {
		path = path[1:]
	}

	node := view.NewConditionalNode(element)
	if err := node.Bindings().Add(view.NewConditionalBinding(expression_parser.ResolveBinding(path), isNegated)); err != nil {
		return nil, err
	}
	return node, nil
}

// _visitFor parses `item of items`, `(item, index) of items` and an optional
// `; key: item.path` clause from the attribute keys of the element.
func (tp *TemplateParser) _visitFor(element *ml_parser.Element) (view.Node, error) {
	span := element.StartSourceSpan
	keys := make([]string, 0, len(element.Attrs))
	for _, attr := range element.Attrs {
		keys = append(keys, strings.TrimSpace(attr.Name))
	}
	definition := strings.TrimSpace(strings.Join(keys, " "))
	if definition == "" {
		return nil, util.NewParseErrorf(span, "Must specify the iteration in <%s>", element.Name)
	}

	clauses := strings.Split(definition, ";")
	if len(clauses) > 2 {
		return nil, util.NewParseErrorf(span, "Too many %q in <%s>: %q", ";", element.Name, definition)
	}

	iteration := forOfRegexp.Split(strings.TrimSpace(clauses[0]), -1)
	if len(iteration) != 2 || strings.TrimSpace(iteration[0]) == "" || strings.TrimSpace(iteration[1]) == "" {
		return nil, util.NewParseErrorf(span, "Expected \"item of items\" in <%s>, got %q", element.Name, clauses[0])
	}
	itemVar, indexVar, err := parseForBinder(strings.TrimSpace(iteration[0]), span)
	if err != nil {
		return nil, err
	}

	keyPath := ""
	if len(clauses) == 2 {
		keyPath, err = parseForKey(strings.TrimSpace(clauses[1]), span)
		if err != nil {
			return nil, err
		}
	}

	source := expression_parser.ResolveBinding(iteration[1])
	node := view.NewRepeatingNode(element)
	if err := node.Bindings().Add(view.NewRepeatingBinding(source, itemVar, indexVar, keyPath)); err != nil {
		return nil, err
	}
	return node, nil
}

func parseForBinder(binder string, span *util.ParseSourceSpan) (itemVar, indexVar string, err error) {
	if !strings.HasPrefix(binder, "(") || !strings.HasSuffix(binder, ")") {
		if !core.IsIdentifier(binder) {
			return "", "", util.NewParseErrorf(span, "Invalid iteration variable %q", binder)
		}
		return binder, "", nil
	}

	names := strings.Split(binder[1:len(binder)-1], ",")
	if len(names) > 2 {
		return "", "", util.NewParseErrorf(span, "Expected \"(item, index)\", got %q", binder)
	}
	for i := range names {
		names[i] = strings.TrimSpace(names[i])
		if !core.IsIdentifier(names[i]) {
			return "", "", util.NewParseErrorf(span, "Invalid iteration variable %q in %q", names[i], binder)
		}
	}
	if len(names) == 2 {
		indexVar = names[1]
	}
	return names[0], indexVar, nil
}

func parseForKey(clause string, span *util.ParseSourceSpan) (string, error) {
	parts := util.SplitAtColon(clause, nil)
	if parts == nil {
		return "", util.NewParseErrorf(span, "Bad format after %q, expected \"key: path\", got %q", ";", clause)
	}
	if parts[0] != FOR_KEY_CLAUSE {
		return "", util.NewParseErrorf(span, "Key %q not supported, expected %q", parts[0], FOR_KEY_CLAUSE)
	}
	if !keyPathRegexp.MatchString(parts[1]) {
		return "", util.NewParseErrorf(span, "The key must be a simple property path, got %q", parts[1])
	}
	return parts[1], nil
}

func (tp *TemplateParser) _visitComponent(element *ml_parser.Element) (view.Node, error) {
	className := tp.componentClassName(element.Name)
	node := view.NewComponentNode(element.Name, className, tp.options.Analyzers[className], element)
	if err := tp.addBindings(node, element, ElementRoleComponent); err != nil {
		return nil, err
	}
	return node, nil
}

func (tp *TemplateParser) _visitHtmlElement(element *ml_parser.Element) (view.Node, error) {
	node := view.NewHtmlElementNode(element.Name, element)
	if err := tp.addBindings(node, element, ElementRoleHtmlElement); err != nil {
		return nil, err
	}
	return node, nil
}

func (tp *TemplateParser) addBindings(node view.Node, element *ml_parser.Element, role ElementRole) error {
	for _, attr := range element.Attrs {
		binding, err := tp.classifier.Classify(attr, role)
		if err != nil {
			return err
		}
		if err := node.Bindings().Add(binding); err != nil {
			return util.NewParseErrorf(attr.SourceSpan(), "%v on <%s>", err, element.Name)
		}
	}
	return nil
}

// componentClassName capitalizes and joins the separated parts of a tag name
func (tp *TemplateParser) componentClassName(tagName string) string {
	return util.DashCaseToPascalCase(strings.ReplaceAll(tagName, tp.options.ComponentSeparator, "-"))
}
