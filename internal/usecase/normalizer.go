package usecase

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// minTokenLength is the rune count a word must exceed to be indexed
const minTokenLength = 2

// wordRegex matches maximal runs of word characters
var wordRegex = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Normalize reduces a label to the form used for every comparison:
// non-breaking spaces become spaces, zero-width spaces are removed,
// punctuation is folded to spaces, whitespace is collapsed and trimmed,
// and the result is lower-cased.
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.ReplaceAll(s, "\u200b", "")
	s = strings.ToLower(s)
	s = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, s)

	return strings.Join(strings.Fields(s), " ")
}

// Tokens returns the significant words of a normalized label, in order.
// Words of two characters or fewer are skipped.
func Tokens(normalized string) []string {
	words := wordRegex.FindAllString(normalized, -1)

	tokens := make([]string, 0, len(words))
	for _, word := range words {
		if utf8.RuneCountInString(word) > minTokenLength {
			tokens = append(tokens, word)
		}
	}

	return tokens
}

// containsEither reports whether either string contains the other
func containsEither(a, b string) bool {
	return strings.Contains(a, b) || strings.Contains(b, a)
}
