package expression_parser

import (
	"fmt"
	"strings"

	"wcc-go/packages/compiler/src/core"
	"wcc-go/packages/compiler/src/util"
)

var literalKeywords = map[string]bool{
	"null":      true,
	"undefined": true,
	"true":      true,
	"false":     true,
}

// ResolveBinding classifies an expression as a literal *Constant or a
// *PropertyAccess path. Literals are the null/undefined/true/false keywords,
// quoted strings and numbers (leading digit or leading '.').
func ResolveBinding(text string) BoundValue {
	text = strings.TrimSpace(text)
	if IsLiteral(text) {
		return NewConstant(text)
	}
	return NewPropertyAccess(text)
}

// IsLiteral reports whether trimmed expression text is a literal constant
func IsLiteral(text string) bool {
	if literalKeywords[text] {
		return true
	}
	if text == "" {
		return false
	}
	first := int(text[0])
	return core.IsQuote(first) || core.IsDigit(first) || first == core.CharPERIOD
}

// ParseMethodCall parses `name(arg, ...)`. Arguments split on top-level
// commas; `#` becomes a *Placeholder and every other argument goes through
// ResolveBinding. span locates errors.
func ParseMethodCall(text string, span *util.ParseSourceSpan) (*MethodCall, error) {
	text = strings.TrimSpace(text)
	open := strings.IndexByte(text, byte(core.CharLPAREN))
	if open < 0 {
		return nil, util.NewParseErrorf(span, "Missing argument group in method call %q", text)
	}
	name := strings.TrimSpace(text[:open])
	if name == "" {
		return nil, util.NewParseErrorf(span, "Missing method name in %q", text)
	}
	close, err := matchingParen(text, open)
	if err != nil {
		return nil, util.NewParseErrorf(span, "Unterminated argument group in method call %q", text)
	}
	if rest := strings.TrimSpace(text[close+1:]); rest != "" {
		return nil, util.NewParseErrorf(span, "Unexpected %q after argument group in method call %q", rest, text)
	}

	parts, err := SplitTopLevel(text[open+1:close], byte(core.CharCOMMA))
	if err != nil {
		return nil, util.NewParseErrorf(span, "Malformed arguments in method call %q: %v", text, err)
	}
	args := make([]BoundValue, 0, len(parts))
	for i, part := range parts {
		part = strings.TrimSpace(part)
		switch part {
		case "":
			if len(parts) == 1 {
				return nil, util.NewParseErrorf(span, "Empty argument group in method call %q", text)
			}
			return nil, util.NewParseErrorf(span, "Empty argument %d in method call %q", i+1, text)
		case PlaceholderToken:
			args = append(args, NewPlaceholder())
		default:
			args = append(args, ResolveBinding(part))
		}
	}
	return NewMethodCall(name, args), nil
}

// SplitTopLevel splits s on sep, ignoring separators nested in brackets or quotes
func SplitTopLevel(s string, sep byte) ([]string, error) {
	var parts []string
	var stack []byte
	var quote byte
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == byte(core.CharBACKSLASH) {
				i++
			} else if c == quote {
				quote = 0
			}
			continue
		}
		switch {
		case core.IsQuote(int(c)):
			quote = c
		case core.IsOpeningBracket(int(c)):
			stack = append(stack, c)
		case core.IsClosingBracket(int(c)):
			if len(stack) == 0 || !bracketsMatch(stack[len(stack)-1], c) {
				return nil, &unbalancedError{at: i, char: c}
			}
			stack = stack[:len(stack)-1]
		case c == sep && len(stack) == 0:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	if quote != 0 {
		return nil, &unbalancedError{at: len(s), char: quote}
	}
	if len(stack) > 0 {
		return nil, &unbalancedError{at: len(s), char: stack[len(stack)-1]}
	}
	return append(parts, s[start:]), nil
}

func matchingParen(s string, open int) (int, error) {
	depth := 0
	var quote byte
	for i := open; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == byte(core.CharBACKSLASH) {
				i++
			} else if c == quote {
				quote = 0
			}
			continue
		}
		switch {
		case core.IsQuote(int(c)):
			quote = c
		case c == byte(core.CharLPAREN):
			depth++
		case c == byte(core.CharRPAREN):
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}
	return -1, &unbalancedError{at: len(s), char: byte(core.CharLPAREN)}
}

func bracketsMatch(open, close byte) bool {
	switch open {
	case byte(core.CharLPAREN):
		return close == byte(core.CharRPAREN)
	case byte(core.CharLBRACKET):
		return close == byte(core.CharRBRACKET)
	case byte(core.CharLBRACE):
		return close == byte(core.CharRBRACE)
	}
	return false
}

type unbalancedError struct {
	at   int
	char byte
}

func (e *unbalancedError) Error() string {
	return fmt.Sprintf("unbalanced %q at offset %d", e.char, e.at)
}
