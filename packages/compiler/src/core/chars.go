package core

// Character code constants
const (
	CharBANG   = 33
	CharDQ     = 34
	CharHASH   = 35
	CharDollar = 36
	CharSQ     = 39
	CharLPAREN = 40
	CharRPAREN = 41
	CharCOMMA  = 44
	CharPERIOD = 46

	Char0 = 48
	Char9 = 57

	CharA = 65
	CharZ = 90

	CharLBRACKET   = 91
	CharBACKSLASH  = 92
	CharRBRACKET   = 93
	CharUnderscore = 95
	CharBT         = 96

	CharLowerA = 97
	CharLowerZ = 122

	CharLBRACE = 123
	CharRBRACE = 125
)

// IsDigit checks if a character code represents a digit
func IsDigit(code int) bool {
	return Char0 <= code && code <= Char9
}

// IsAsciiLetter checks if a character code represents an ASCII letter
func IsAsciiLetter(code int) bool {
	return (code >= CharLowerA && code <= CharLowerZ) || (code >= CharA && code <= CharZ)
}

// IsIdentifierStart checks if a character code can start a JavaScript identifier
func IsIdentifierStart(code int) bool {
	return IsAsciiLetter(code) || code == CharUnderscore || code == CharDollar
}

// IsIdentifierPart checks if a character code can continue a JavaScript identifier
func IsIdentifierPart(code int) bool {
	return IsIdentifierStart(code) || IsDigit(code)
}

// IsIdentifier reports whether name is a plain JavaScript identifier
func IsIdentifier(name string) bool {
	if name == "" || !IsIdentifierStart(int(name[0])) {
		return false
	}
	for i := 1; i < len(name); i++ {
		if !IsIdentifierPart(int(name[i])) {
			return false
		}
	}
	return true
}

// IsQuote checks if a character code represents a quote character
func IsQuote(code int) bool {
	return code == CharSQ || code == CharDQ || code == CharBT
}

// IsOpeningBracket reports whether code opens a nesting group: ( [ {
func IsOpeningBracket(code int) bool {
	return code == CharLPAREN || code == CharLBRACKET || code == CharLBRACE
}

// IsClosingBracket reports whether code closes a nesting group: ) ] }
func IsClosingBracket(code int) bool {
	return code == CharRPAREN || code == CharRBRACKET || code == CharRBRACE
}
