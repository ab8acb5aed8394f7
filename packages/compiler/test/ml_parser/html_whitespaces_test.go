package ml_parser_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"wcc-go/packages/compiler/src/ml_parser"
)

func TestRemoveWhitespaces(t *testing.T) {
	parseAndRemoveWS := func(template string) []interface{} {
		return HumanizeDom(ml_parser.RemoveWhitespaces(parse(template)), false)
	}

	t.Run("should remove blank text nodes", func(t *testing.T) {
		expected := []interface{}{}
		for _, template := range []string{" ", "\n", "\t", "    \t    \n "} {
			if diff := cmp.Diff(expected, parseAndRemoveWS(template)); diff != "" {
				t.Errorf("parseAndRemoveWS(%q) mismatch (-want +got):\n%s", template, diff)
			}
		}
	})

	t.Run("should remove whitespaces (space, tab, new line) between elements", func(t *testing.T) {
		expected := []interface{}{
			[]interface{}{"Element", "br", 0},
			[]interface{}{"Element", "br", 0},
			[]interface{}{"Element", "br", 0},
			[]interface{}{"Element", "br", 0},
		}
		result := parseAndRemoveWS("<br>  <br>\t<br>\n<br>")
		if diff := cmp.Diff(expected, result); diff != "" {
			t.Errorf("parseAndRemoveWS() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should remove whitespaces from child text nodes", func(t *testing.T) {
		expected := []interface{}{
			[]interface{}{"Element", "div", 0},
			[]interface{}{"Element", "span", 1},
		}
		result := parseAndRemoveWS("<div><span> </span></div>")
		if diff := cmp.Diff(expected, result); diff != "" {
			t.Errorf("parseAndRemoveWS() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should replace multiple whitespaces with one space", func(t *testing.T) {
		expected := []interface{}{
			[]interface{}{"Element", "div", 0},
			[]interface{}{"Text", " foo ", 1},
		}
		result := parseAndRemoveWS("<div>\n\n\n  foo  \t\t\t</div>")
		if diff := cmp.Diff(expected, result); diff != "" {
			t.Errorf("parseAndRemoveWS() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should not replace single tab and newline with spaces", func(t *testing.T) {
		expected := []interface{}{
			[]interface{}{"Element", "div", 0},
			[]interface{}{"Text", "a\tb\nc", 1},
		}
		result := parseAndRemoveWS("<div>a\tb\nc</div>")
		if diff := cmp.Diff(expected, result); diff != "" {
			t.Errorf("parseAndRemoveWS() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should not replace &nbsp;", func(t *testing.T) {
		expected := []interface{}{
			[]interface{}{"Element", "div", 0},
			[]interface{}{"Text", "\u00a0\u00a0", 1},
		}
		result := parseAndRemoveWS("<div>&nbsp;&nbsp;</div>")
		if diff := cmp.Diff(expected, result); diff != "" {
			t.Errorf("parseAndRemoveWS() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should preserve single whitespaces between interpolations", func(t *testing.T) {
		expected := []interface{}{
			[]interface{}{"Text", "{{fooExp}} {{barExp}}", 0},
		}
		result := parseAndRemoveWS("{{fooExp}} {{barExp}}")
		if diff := cmp.Diff(expected, result); diff != "" {
			t.Errorf("parseAndRemoveWS() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should preserve whitespaces inside <pre> elements", func(t *testing.T) {
		expected := []interface{}{
			[]interface{}{"Element", "pre", 0},
			[]interface{}{"Element", "strong", 1},
			[]interface{}{"Text", "foo", 2},
			[]interface{}{"Text", "\n   ", 1},
		}
		result := parseAndRemoveWS("<pre><strong>foo</strong>\n   </pre>")
		if diff := cmp.Diff(expected, result); diff != "" {
			t.Errorf("parseAndRemoveWS() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should skip whitespace trimming in <textarea>", func(t *testing.T) {
		expected := []interface{}{
			[]interface{}{"Element", "textarea", 0},
			[]interface{}{"Text", "  foo  ", 1},
		}
		result := parseAndRemoveWS("<textarea>  foo  </textarea>")
		if diff := cmp.Diff(expected, result); diff != "" {
			t.Errorf("parseAndRemoveWS() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should keep comments", func(t *testing.T) {
		expected := []interface{}{
			[]interface{}{"Comment", " c ", 0},
			[]interface{}{"Element", "p", 0},
		}
		result := parseAndRemoveWS("<!-- c -->\n<p></p>\n")
		if diff := cmp.Diff(expected, result); diff != "" {
			t.Errorf("parseAndRemoveWS() mismatch (-want +got):\n%s", diff)
		}
	})
}
