package rewrite

import (
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// Param is a constructor parameter, `private scheduler: Scheduler`
type Param struct {
	Scope string
	Name  string
	Type  string
}

// String renders the parameter declaration
func (p Param) String() string {
	text := p.Name + ": " + p.Type
	if p.Scope != "" {
		text = p.Scope + " " + text
	}
	return text
}

// InjectParam plans adding param to the constructor of c. Without a
// constructor, `constructor(<param>) {}` is inserted as the first member;
// a derived class forwards the remaining arguments to `super`. Otherwise
// param is appended after the last parameter and everything else is kept
// verbatim. Calling it twice adds the parameter twice.
func InjectParam(s *Source, c *Class, plan *EditPlan, param Param) error {
	ctor := s.Constructor(c)
	if ctor == nil {
		return insertConstructor(s, c, plan, param)
	}

	params := ctor.ChildByFieldName("parameters")
	var last *sitter.Node
	for i := 0; i < int(params.NamedChildCount()); i++ {
		if p := params.NamedChild(i); p.Type() != "comment" {
			last = p
		}
	}
	if last == nil {
		plan.Insert(params.StartByte()+1, param.String())
		return nil
	}
	if isRestParameter(last) {
		return fmt.Errorf("%w: %s follows rest parameter %s", ErrUnsupportedConstructor, param.Name, s.Text(last))
	}
	plan.Insert(last.EndByte(), ", "+param.String())
	return nil
}

func insertConstructor(s *Source, c *Class, plan *EditPlan, param Param) error {
	ctor := CONSTRUCTOR_NAME + "(" + param.String() + ") {}"
	if base := superclass(c); base != nil {
		switch base.Type() {
		case "identifier", "member_expression":
		default:
			return fmt.Errorf("%w: cannot forward arguments to base class %s", ErrUnsupportedConstructor, s.Text(base))
		}
		ctor = CONSTRUCTOR_NAME + "(" + param.String() + ", ...args: ConstructorParameters<typeof " + s.Text(base) + ">) { super(...args); }"
	}
	open := c.Body.StartByte() + 1

	var first *sitter.Node
	for i := 0; i < int(c.Body.NamedChildCount()); i++ {
		if m := c.Body.NamedChild(i); m.Type() != "comment" {
			first = m
			break
		}
	}
	if first == nil {
		plan.Insert(open, " "+ctor+" ")
		return nil
	}
	plan.Insert(open, "\n"+memberIndent(s, first)+ctor)
	return nil
}

// superclass returns the expression c extends, or nil
func superclass(c *Class) *sitter.Node {
	for i := 0; i < int(c.Node.NamedChildCount()); i++ {
		heritage := c.Node.NamedChild(i)
		if heritage.Type() != "class_heritage" {
			continue
		}
		for j := 0; j < int(heritage.NamedChildCount()); j++ {
			if clause := heritage.NamedChild(j); clause.Type() == "extends_clause" {
				return clause.ChildByFieldName("value")
			}
		}
	}
	return nil
}

func isRestParameter(p *sitter.Node) bool {
	pattern := p.ChildByFieldName("pattern")
	return pattern != nil && pattern.Type() == "rest_pattern"
}

// memberIndent returns the indentation of the line member starts on
func memberIndent(s *Source, member *sitter.Node) string {
	start := int(member.StartByte())
	lineStart := strings.LastIndexByte(string(s.Content[:start]), '\n') + 1
	indent := string(s.Content[lineStart:start])
	if strings.TrimSpace(indent) != "" {
		return "  "
	}
	return indent
}

// ParamNames returns the names declared by the constructor of c
func ParamNames(s *Source, c *Class) []string {
	ctor := s.Constructor(c)
	if ctor == nil {
		return nil
	}
	params := ctor.ChildByFieldName("parameters")
	var names []string
	for i := 0; i < int(params.NamedChildCount()); i++ {
		pattern := params.NamedChild(i).ChildByFieldName("pattern")
		if pattern == nil {
			continue
		}
		if pattern.Type() == "rest_pattern" && pattern.NamedChildCount() > 0 {
			pattern = pattern.NamedChild(0)
		}
		names = append(names, s.Text(pattern))
	}
	return names
}

// checkReservedName fails with ErrReservedName when c already declares a
// member or constructor parameter called name
func checkReservedName(s *Source, c *Class, name string) (*sitter.Node, error) {
	for i := 0; i < int(c.Body.NamedChildCount()); i++ {
		member := c.Body.NamedChild(i)
		id := member.ChildByFieldName("name")
		if id != nil && s.Text(id) == name {
			return member, fmt.Errorf("%w: member %q already exists", ErrReservedName, name)
		}
	}
	if ctor := s.Constructor(c); ctor != nil {
		for _, p := range ParamNames(s, c) {
			if p == name {
				return ctor, fmt.Errorf("%w: constructor parameter %q already exists", ErrReservedName, name)
			}
		}
	}
	return nil, nil
}
