package expression_parser_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"wcc-go/packages/compiler/src/expression_parser"
	"wcc-go/packages/compiler/src/util"
)

func getFakeSpan(input string) *util.ParseSourceSpan {
	return util.NewParseSourceFile(input, "foo").SpanOf(0, len(input))
}

func TestResolveBinding(t *testing.T) {
	t.Run("should classify literals as constants", func(t *testing.T) {
		for _, text := range []string{"null", "undefined", "true", "false", "'a'", `"b"`, "42", ".5", " 3 "} {
			value := expression_parser.ResolveBinding(text)
			if _, ok := value.(*expression_parser.Constant); !ok {
				t.Errorf("ResolveBinding(%q) = %T, want *Constant", text, value)
			}
		}
	})

	t.Run("should classify everything else as property access", func(t *testing.T) {
		for _, text := range []string{"name", "user.name", "isNull", "trueish", "a.b.c"} {
			value := expression_parser.ResolveBinding(text)
			if _, ok := value.(*expression_parser.PropertyAccess); !ok {
				t.Errorf("ResolveBinding(%q) = %T, want *PropertyAccess", text, value)
			}
		}
	})

	t.Run("should trim the expression", func(t *testing.T) {
		value := expression_parser.ResolveBinding("  user.name ")
		if diff := cmp.Diff(expression_parser.NewPropertyAccess("user.name"), value); diff != "" {
			t.Errorf("ResolveBinding() mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestParseMethodCall(t *testing.T) {
	parse := func(t *testing.T, text string) *expression_parser.MethodCall {
		t.Helper()
		call, err := expression_parser.ParseMethodCall(text, getFakeSpan(text))
		if err != nil {
			t.Fatalf("ParseMethodCall(%q) returned error: %v", text, err)
		}
		return call
	}

	t.Run("should resolve each argument", func(t *testing.T) {
		expected := expression_parser.NewMethodCall("select", []expression_parser.BoundValue{
			expression_parser.NewPlaceholder(),
			expression_parser.NewPropertyAccess("item.id"),
			expression_parser.NewConstant("'x'"),
			expression_parser.NewConstant("1"),
		})
		if diff := cmp.Diff(expected, parse(t, "select(#, item.id, 'x', 1)")); diff != "" {
			t.Errorf("ParseMethodCall() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should not split on nested commas", func(t *testing.T) {
		call := parse(t, "log('a, b', fn(c, d))")
		if len(call.Args) != 2 {
			t.Fatalf("len(Args) = %d, want 2", len(call.Args))
		}
		if diff := cmp.Diff(expression_parser.NewConstant("'a, b'"), call.Args[0]); diff != "" {
			t.Errorf("Args[0] mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff(expression_parser.NewPropertyAccess("fn(c, d)"), call.Args[1]); diff != "" {
			t.Errorf("Args[1] mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should accept a dotted method name", func(t *testing.T) {
		if got := parse(t, " store.save(#) ").Name; got != "store.save" {
			t.Errorf("Name = %q, want store.save", got)
		}
	})

	t.Run("should report malformed calls", func(t *testing.T) {
		cases := map[string]string{
			"onClick":        "Missing argument group",
			"(a)":            "Missing method name",
			"onClick(a":      "Unterminated argument group",
			"onClick(a) + 1": "after argument group",
			"onClick()":      "Empty argument group",
			"onClick( )":     "Empty argument group",
			"onClick(a,)":    "Empty argument 2",
			"onClick([a)":    "Malformed arguments",
			"onClick(a], b)": "Malformed arguments",
		}
		for text, want := range cases {
			_, err := expression_parser.ParseMethodCall(text, getFakeSpan(text))
			if err == nil {
				t.Errorf("ParseMethodCall(%q) returned no error", text)
				continue
			}
			if !strings.Contains(err.Error(), want) {
				t.Errorf("ParseMethodCall(%q) error = %q, want it to contain %q", text, err, want)
			}
			var parseErr *util.ParseError
			if !errors.As(err, &parseErr) {
				t.Errorf("ParseMethodCall(%q) error is %T, want *util.ParseError", text, err)
			}
		}
	})
}

func TestSplitTopLevel(t *testing.T) {
	t.Run("should split on top level separators only", func(t *testing.T) {
		parts, err := expression_parser.SplitTopLevel(`a; {b; c}; "d;e"; [f;g]`, ';')
		if err != nil {
			t.Fatalf("SplitTopLevel() returned error: %v", err)
		}
		expected := []string{"a", " {b; c}", ` "d;e"`, " [f;g]"}
		if diff := cmp.Diff(expected, parts); diff != "" {
			t.Errorf("SplitTopLevel() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should honor escaped quotes", func(t *testing.T) {
		parts, err := expression_parser.SplitTopLevel(`'it\'s, fine', b`, ',')
		if err != nil {
			t.Fatalf("SplitTopLevel() returned error: %v", err)
		}
		if len(parts) != 2 {
			t.Errorf("SplitTopLevel() = %q, want 2 parts", parts)
		}
	})

	t.Run("should reject unbalanced input", func(t *testing.T) {
		for _, s := range []string{"(a", "a)", "[a}", "'a"} {
			if _, err := expression_parser.SplitTopLevel(s, ','); err == nil {
				t.Errorf("SplitTopLevel(%q) returned no error", s)
			}
		}
	})
}
