package rewrite

import (
	"context"
	"fmt"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"wcc-go/packages/compiler/src/util"
)

const (
	PROPERTY_THEN  = "then"
	PROPERTY_CATCH = "catch"

	CONSTRUCTOR_NAME = "constructor"
	ANONYMOUS_CLASS  = "<anonymous>"
)

var classNodeTypes = map[string]bool{
	"class_declaration":          true,
	"abstract_class_declaration": true,
	"class":                      true,
}

// Source is a parsed TypeScript file. The syntax tree is never mutated:
// rewrites are planned as edits against it.
type Source struct {
	Content []byte
	URL     string
	File    *util.ParseSourceFile
	tree    *sitter.Tree
}

// ParseSource parses content with the tree-sitter TypeScript grammar
func ParseSource(ctx context.Context, content []byte, url string) (*Source, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(typescript.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParse, url, err)
	}
	src := &Source{
		Content: content,
		URL:     url,
		File:    util.NewParseSourceFile(string(content), url),
		tree:    tree,
	}
	if root := tree.RootNode(); root == nil || root.HasError() {
		// nodes are only valid while the tree is open
		at := src.firstErrorAt(root)
		tree.Close()
		return nil, fmt.Errorf("%w: %s contains syntax errors%s", ErrParse, url, at)
	}
	return src, nil
}

func (s *Source) firstErrorAt(root *sitter.Node) string {
	if root == nil {
		return ""
	}
	var at *sitter.Node
	walk(root, func(n *sitter.Node) bool {
		if at != nil {
			return false
		}
		if n.Type() == "ERROR" || n.IsMissing() {
			at = n
			return false
		}
		return n.HasError()
	})
	if at == nil {
		return ""
	}
	return " at " + s.Location(at).String()
}

// Close releases the syntax tree
func (s *Source) Close() {
	s.tree.Close()
}

// Root returns the program node
func (s *Source) Root() *sitter.Node {
	return s.tree.RootNode()
}

// Text returns the original text of n
func (s *Source) Text(n *sitter.Node) string {
	return n.Content(s.Content)
}

// Location returns the start of n as a 0-based line/column location
func (s *Source) Location(n *sitter.Node) *util.ParseLocation {
	return s.File.LocationAt(int(n.StartByte()))
}

// Identifiers returns every identifier spelled anywhere in the file
func (s *Source) Identifiers() map[string]bool {
	names := map[string]bool{}
	walk(s.Root(), func(n *sitter.Node) bool {
		if strings.HasSuffix(n.Type(), "identifier") {
			names[s.Text(n)] = true
		}
		return true
	})
	return names
}

// Class is one class declaration or class expression
type Class struct {
	Name string
	Node *sitter.Node
	Body *sitter.Node
}

// Classes returns every class of the file, nested ones included, in source order
func (s *Source) Classes() []*Class {
	var classes []*Class
	walk(s.Root(), func(n *sitter.Node) bool {
		if !classNodeTypes[n.Type()] {
			return true
		}
		body := n.ChildByFieldName("body")
		if body == nil {
			return true
		}
		name := ANONYMOUS_CLASS
		if id := n.ChildByFieldName("name"); id != nil {
			name = s.Text(id)
		}
		classes = append(classes, &Class{Name: name, Node: n, Body: body})
		return true
	})
	return classes
}

// Method is a method of a class that has a body
type Method struct {
	Name string
	Node *sitter.Node
	Body *sitter.Node
}

// Methods returns the methods of c that have a body. The constructor and
// get/set accessors are left out.
func (s *Source) Methods(c *Class) []*Method {
	var methods []*Method
	for i := 0; i < int(c.Body.NamedChildCount()); i++ {
		member := c.Body.NamedChild(i)
		if member.Type() != "method_definition" || isAccessor(member) {
			continue
		}
		body := member.ChildByFieldName("body")
		name := member.ChildByFieldName("name")
		if body == nil || name == nil || s.Text(name) == CONSTRUCTOR_NAME {
			continue
		}
		methods = append(methods, &Method{Name: s.Text(name), Node: member, Body: body})
	}
	return methods
}

func isAccessor(method *sitter.Node) bool {
	for i := 0; i < int(method.ChildCount()); i++ {
		switch method.Child(i).Type() {
		case "get", "set":
			return true
		}
	}
	return false
}

// Constructor returns the constructor of c, or nil
func (s *Source) Constructor(c *Class) *sitter.Node {
	for i := 0; i < int(c.Body.NamedChildCount()); i++ {
		member := c.Body.NamedChild(i)
		if member.Type() != "method_definition" {
			continue
		}
		if name := member.ChildByFieldName("name"); name != nil && s.Text(name) == CONSTRUCTOR_NAME {
			return member
		}
	}
	return nil
}

// CallSite is a `.then(...)` or `.catch(...)` call inside a method
type CallSite struct {
	Class     string
	Method    string
	Property  string
	Receiver  *sitter.Node
	Call      *sitter.Node
	Arguments *sitter.Node
}

// Slot returns the single argument expression of the call. Comments do not
// count as arguments.
func (cs *CallSite) Slot() (*sitter.Node, error) {
	if cs.Arguments.Type() != "arguments" {
		return nil, fmt.Errorf("%w: .%s is not called with an argument list", ErrMalformedCallSite, cs.Property)
	}
	var slot *sitter.Node
	count := 0
	for i := 0; i < int(cs.Arguments.NamedChildCount()); i++ {
		arg := cs.Arguments.NamedChild(i)
		if arg.Type() == "comment" {
			continue
		}
		slot = arg
		count++
	}
	if count != 1 {
		return nil, fmt.Errorf("%w: .%s expects exactly one argument, got %d", ErrMalformedCallSite, cs.Property, count)
	}
	return slot, nil
}

// CallSites returns the then/catch calls in the body of m, innermost first.
// Nested classes are not searched: they are processed on their own.
func (s *Source) CallSites(c *Class, m *Method) []*CallSite {
	var sites []*CallSite
	walk(m.Body, func(n *sitter.Node) bool {
		if classNodeTypes[n.Type()] {
			return false
		}
		if n.Type() != "call_expression" {
			return true
		}
		callee := n.ChildByFieldName("function")
		args := n.ChildByFieldName("arguments")
		if callee == nil || args == nil || callee.Type() != "member_expression" {
			return true
		}
		property := callee.ChildByFieldName("property")
		if property == nil {
			return true
		}
		switch name := s.Text(property); name {
		case PROPERTY_THEN, PROPERTY_CATCH:
			sites = append(sites, &CallSite{
				Class:     c.Name,
				Method:    m.Name,
				Property:  name,
				Receiver:  callee.ChildByFieldName("object"),
				Call:      n,
				Arguments: args,
			})
		}
		return true
	})
	sortInnermostFirst(sites, func(cs *CallSite) *sitter.Node { return cs.Arguments })
	return sites
}

// sortInnermostFirst orders items in post-order: a node follows every node
// it encloses, disjoint nodes keep source order.
func sortInnermostFirst[T any](items []T, node func(T) *sitter.Node) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := node(items[i]), node(items[j])
		if a.EndByte() != b.EndByte() {
			return a.EndByte() < b.EndByte()
		}
		return a.StartByte() > b.StartByte()
	})
}

// walk visits n and its named descendants depth-first. Returning false
// from fn skips the children of a node.
func walk(n *sitter.Node, fn func(*sitter.Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		walk(n.NamedChild(i), fn)
	}
}
