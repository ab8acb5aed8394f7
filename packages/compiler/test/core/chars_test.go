package core_test

import (
	"testing"

	"wcc-go/packages/compiler/src/core"
)

func TestIsIdentifier(t *testing.T) {
	t.Run("should accept plain identifiers", func(t *testing.T) {
		for _, name := range []string{"item", "_i", "$index", "a1", "Row_2"} {
			if !core.IsIdentifier(name) {
				t.Errorf("IsIdentifier(%q) = false, want true", name)
			}
		}
	})

	t.Run("should reject anything else", func(t *testing.T) {
		for _, name := range []string{"", "1a", "a-b", "a.b", "(a", "é"} {
			if core.IsIdentifier(name) {
				t.Errorf("IsIdentifier(%q) = true, want false", name)
			}
		}
	})
}

func TestBrackets(t *testing.T) {
	t.Run("should pair opening and closing brackets", func(t *testing.T) {
		for _, c := range "([{" {
			if !core.IsOpeningBracket(int(c)) || core.IsClosingBracket(int(c)) {
				t.Errorf("%q misclassified", c)
			}
		}
		for _, c := range ")]}" {
			if !core.IsClosingBracket(int(c)) || core.IsOpeningBracket(int(c)) {
				t.Errorf("%q misclassified", c)
			}
		}
	})
}
