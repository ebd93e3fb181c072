package words

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Tokenize splits text on runs of whitespace, including the Unicode
// space separators and U+FEFF. Tokens keep their input order.
func Tokenize(text string) []string {
	text = norm.NFC.String(text)

	tokens := strings.FieldsFunc(text, isSpace)
	if tokens == nil {
		return []string{}
	}
	return tokens
}

// isSpace matches the Unicode White_Space characters and the byte order
// mark, but not NEL (U+0085).
func isSpace(r rune) bool {
	if r == '\uFEFF' {
		return true
	}
	return r != '\u0085' && unicode.IsSpace(r)
}

// HasWordChar reports whether the token contains at least one letter or digit.
func HasWordChar(token string) bool {
	for _, r := range token {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
