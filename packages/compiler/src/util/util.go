package util

import (
	"regexp"
	"strings"
)

var (
	singleQuoteEscapeStringRe = regexp.MustCompile(`'|\\|\n|\r|\x{2028}|\x{2029}`)
)

// DashCaseToPascalCase converts a dash-case string to PascalCase (user-card -> UserCard)
func DashCaseToPascalCase(input string) string {
	var b strings.Builder
	for _, part := range strings.Split(input, "-") {
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}

// SplitAtColon splits a string at the colon character
func SplitAtColon(input string, defaultValues []string) []string {
	return splitAt(input, ':', defaultValues)
}

func splitAt(input string, character rune, defaultValues []string) []string {
	index := strings.IndexRune(input, character)
	if index == -1 {
		return defaultValues
	}
	return []string{
		strings.TrimSpace(input[:index]),
		strings.TrimSpace(input[index+1:]),
	}
}

// QuoteString renders input as a single-quoted JavaScript string literal
func QuoteString(input string) string {
	body := singleQuoteEscapeStringRe.ReplaceAllStringFunc(input, func(match string) string {
		switch match {
		case "\n":
			return "\\n"
		case "\r":
			return "\\r"
		case "\u2028":
			return "\\u2028"
		case "\u2029":
			return "\\u2029"
		default:
			return "\\" + match
		}
	})
	return "'" + body + "'"
}
