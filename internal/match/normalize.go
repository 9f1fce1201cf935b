package match

import (
	"strings"
	"unicode"
)

// Normalize lowercases s and drops word separators, so that "created_at",
// "createdAt" and "Created-At" all normalize to "createdat".
func Normalize(s string) string {
	return strings.Join(Words(s), "")
}

// Words splits an identifier into lowercase words on separators and on case
// transitions: "HTTPServerID" yields "http", "server", "id".
func Words(s string) []string {
	var (
		words []string
		word  strings.Builder
	)

	flush := func() {
		if word.Len() > 0 {
			words = append(words, strings.ToLower(word.String()))
			word.Reset()
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			flush()
			continue
		}

		if i > 0 && startsWord(runes, i) {
			flush()
		}

		word.WriteRune(r)
	}

	flush()

	return words
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == '.' || unicode.IsSpace(r)
}

// startsWord reports a lower-to-upper transition ("orderID") or the last
// capital of an acronym followed by a lowercase rune ("XMLParser").
func startsWord(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]
	if !unicode.IsUpper(r) {
		return false
	}

	if !unicode.IsUpper(prev) {
		return !isSeparator(prev)
	}

	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
