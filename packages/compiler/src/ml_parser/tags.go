package ml_parser

import (
	"strings"

	"golang.org/x/net/html/atom"
)

var voidElements = map[atom.Atom]bool{
	atom.Area:   true,
	atom.Base:   true,
	atom.Br:     true,
	atom.Col:    true,
	atom.Embed:  true,
	atom.Hr:     true,
	atom.Img:    true,
	atom.Input:  true,
	atom.Link:   true,
	atom.Meta:   true,
	atom.Source: true,
	atom.Track:  true,
	atom.Wbr:    true,
}

var preserveWhitespaceElements = map[atom.Atom]bool{
	atom.Pre:      true,
	atom.Textarea: true,
	atom.Script:   true,
	atom.Style:    true,
}

func lookupAtom(tagName string) atom.Atom {
	return atom.Lookup([]byte(strings.ToLower(tagName)))
}

// IsVoidElement reports whether tagName never has children or an end tag
func IsVoidElement(tagName string) bool {
	return voidElements[lookupAtom(tagName)]
}

// PreservesWhitespace reports whether whitespace inside tagName is significant
func PreservesWhitespace(tagName string) bool {
	return preserveWhitespaceElements[lookupAtom(tagName)]
}

type rawAttr struct {
	key        string
	value      string
	hasValue   bool
	keyStart   int
	keyEnd     int
	valueStart int
	valueEnd   int
	end        int
}

type rawTag struct {
	name  string
	attrs []rawAttr
}

func isTagSpace(c byte) bool {
	return c == ' ' || c == '\n' || c == '\r' || c == '\t' || c == '\f'
}

// scanStartTag re-reads the raw text of a start tag. The html tokenizer folds
// names to lower case, while bindings such as [innerHTML] are case sensitive,
// so names and values are recovered from the original bytes with the same
// splitting rules the tokenizer applies.
func scanStartTag(raw string) rawTag {
	i := 1
	for i < len(raw) && !isTagSpace(raw[i]) && raw[i] != '/' && raw[i] != '>' {
		i++
	}
	tag := rawTag{name: raw[1:i]}

	for i < len(raw) {
		for i < len(raw) && (isTagSpace(raw[i]) || raw[i] == '/') {
			i++
		}
		if i >= len(raw) || raw[i] == '>' {
			break
		}

		a := rawAttr{keyStart: i}
		// a leading '=' is part of the name
		i++
		for i < len(raw) && !isTagSpace(raw[i]) && raw[i] != '/' && raw[i] != '>' && raw[i] != '=' {
			i++
		}
		a.keyEnd = i
		a.key = raw[a.keyStart:a.keyEnd]

		j := i
		for j < len(raw) && isTagSpace(raw[j]) {
			j++
		}
		if j < len(raw) && raw[j] == '=' {
			j++
			for j < len(raw) && isTagSpace(raw[j]) {
				j++
			}
			a.hasValue = true
			if j < len(raw) && (raw[j] == '"' || raw[j] == '\'') {
				quote := raw[j]
				a.valueStart = j + 1
				k := strings.IndexByte(raw[a.valueStart:], quote)
				if k < 0 {
					a.valueEnd = len(raw)
					a.end = len(raw)
				} else {
					a.valueEnd = a.valueStart + k
					a.end = a.valueEnd + 1
				}
			} else {
				a.valueStart = j
				k := j
				for k < len(raw) && !isTagSpace(raw[k]) && raw[k] != '>' {
					k++
				}
				a.valueEnd = k
				a.end = k
			}
			a.value = raw[a.valueStart:a.valueEnd]
			i = a.end
		}
		tag.attrs = append(tag.attrs, a)
	}
	return tag
}

func scanEndTagName(raw string) string {
	name := strings.TrimPrefix(raw, "</")
	for i := 0; i < len(name); i++ {
		if isTagSpace(name[i]) || name[i] == '/' || name[i] == '>' {
			return name[:i]
		}
	}
	return name
}
