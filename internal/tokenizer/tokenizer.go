package tokenizer

import "strings"

// Tokenize splits text on runs of ASCII space (0x20) and returns the words
// as views into the original string. Empty runs produce no token. No other
// byte is treated as a separator; tabs and newlines stay inside words and
// are caught later by validation.
func Tokenize(text string) []string {
	words := make([]string, 0)
	start := -1
	for i := 0; i < len(text); i++ {
		if text[i] == ' ' {
			if start >= 0 {
				words = append(words, text[start:i])
				start = -1
			}
		} else if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		words = append(words, text[start:])
	}
	return words
}

// TokenizeOwned behaves like Tokenize but returns independent copies of the
// words, safe to retain after the caller reuses or discards the input buffer.
func TokenizeOwned(text string) []string {
	words := Tokenize(text)
	for i, w := range words {
		words[i] = strings.Clone(w)
	}
	return words
}

// IsValidWord reports whether the word is free of control characters
// (bytes in the range 0x00..0x1F).
func IsValidWord(word string) bool {
	for i := 0; i < len(word); i++ {
		if word[i] < 0x20 {
			return false
		}
	}
	return true
}
