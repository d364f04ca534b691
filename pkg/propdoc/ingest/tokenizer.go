package ingest

import (
	"strings"
	"unicode"
)

// Token is one word unit with its byte offsets into NormalizedText.
// Text is lowercased; Start/End satisfy 0 <= Start < End <= len(text).
type Token struct {
	Text  string
	Start int
	End   int
}

// Tokenize splits normalized text into word tokens. A token is a run of
// letters and digits; hyphens inside a run are kept ("PN-2024-07" stays
// one token) so that identifiers and numbers survive intact. Punctuation
// and whitespace never produce tokens. Empty input yields nil.
func Tokenize(text string) []Token {
	var tokens []Token
	start := -1

	flush := func(end int) {
		if start < 0 {
			return
		}
		word := strings.Trim(text[start:end], "-")
		if word != "" {
			// Trimming hyphens moves the span edges with the text.
			s := start + strings.Index(text[start:end], word)
			tokens = append(tokens, Token{
				Text:  strings.ToLower(word),
				Start: s,
				End:   s + len(word),
			})
		}
		start = -1
	}

	for i, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' {
			if start < 0 {
				start = i
			}
			continue
		}
		flush(i)
	}
	flush(len(text))

	return tokens
}
