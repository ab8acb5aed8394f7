package rewrite

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// RestArgs is the parameter list of every generated callback
const RestArgs = "(...args)"

// Canonicalize returns the canonical text of a callback expression and
// whether it differs from the current text.
//
//	handler                   (...args) => { return handler(...args) }
//	this.h.bind(this)         (...args) => { return this.h.bind(this)(...args) }
//	x => x.id                 x => { return x.id }
//	() => ({ a: 1 })          () => { return { a: 1 } }
//
// Block-bodied arrows, function expressions and any other expression are
// returned unchanged. Applying it to its own output changes nothing.
func Canonicalize(slot *sitter.Node, r Renderer) (string, bool) {
	switch slot.Type() {
	case "identifier", "call_expression":
		return RestArgs + " => { return " + r.NodeText(slot) + RestArgs + " }", true
	case "arrow_function":
		return expandArrowFunction(slot, r)
	}
	return r.NodeText(slot), false
}

// expandArrowFunction turns an expression body into `{ return <expr> }`.
// The arrow keeps its own parameters.
func expandArrowFunction(arrow *sitter.Node, r Renderer) (string, bool) {
	body := arrow.ChildByFieldName("body")
	if body == nil || body.Type() == "statement_block" {
		return r.NodeText(arrow), false
	}

	value := r.NodeText(body)
	// () => ({}) returns the object, not a parenthesized expression
	if body.Type() == "parenthesized_expression" {
		value = strings.TrimSpace(r.Text(body.StartByte()+1, body.EndByte()-1))
	}
	head := r.Text(arrow.StartByte(), body.StartByte())
	return head + "{ return " + value + " }", true
}

// Writer collects the statements injected after a callback
type Writer struct {
	statements []string
}

// WriteLine appends a statement. A trailing `;` is dropped.
func (w *Writer) WriteLine(statement string) *Writer {
	statement = strings.TrimSpace(statement)
	statement = strings.TrimSpace(strings.TrimRight(statement, ";"))
	if statement != "" {
		w.statements = append(w.statements, statement)
	}
	return w
}

// Statements returns the statements written so far
func (w *Writer) Statements() []string {
	return w.statements
}

// WriterFunc writes injected statements
type WriterFunc func(w *Writer)

// Injector decides what to inject at a call site
type Injector func(site *CallSite) WriterFunc

// CallInjector injects `this.<field>.<method>()` at every call site
func CallInjector(field, method string) Injector {
	return func(*CallSite) WriterFunc {
		return func(w *Writer) {
			w.WriteLine("this." + field + "." + method + "()")
		}
	}
}

// Inject wraps a canonical callback so that the written statements run after
// it, once, and its result is still returned:
//
//	(...args) => { const <result> = (<callback>)(...args); <statements>; return <result> }
func Inject(callback, result string, write WriterFunc) string {
	w := &Writer{}
	if write != nil {
		write(w)
	}

	var b strings.Builder
	b.WriteString(RestArgs + " => { const ")
	b.WriteString(result)
	b.WriteString(" = (")
	b.WriteString(callback)
	b.WriteString(")" + RestArgs + "; ")
	for _, s := range w.statements {
		b.WriteString(s)
		b.WriteString("; ")
	}
	b.WriteString("return ")
	b.WriteString(result)
	b.WriteString(" }")
	return b.String()
}
