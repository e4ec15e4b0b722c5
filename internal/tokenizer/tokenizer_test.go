package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "plain words", text: "cat in the city", want: []string{"cat", "in", "the", "city"}},
		{name: "empty string", text: "", want: []string{}},
		{name: "only spaces", text: "   ", want: []string{}},
		{name: "leading and trailing spaces", text: "  cat dog ", want: []string{"cat", "dog"}},
		{name: "repeated inner spaces", text: "cat   dog", want: []string{"cat", "dog"}},
		{name: "single word", text: "cat", want: []string{"cat"}},
		{name: "tab is not a separator", text: "cat\tdog", want: []string{"cat\tdog"}},
		{name: "punctuation stays attached", text: "cat. dog!", want: []string{"cat.", "dog!"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.text))
		})
	}
}

func TestTokenizeOwned(t *testing.T) {
	text := "cat in the city"
	assert.Equal(t, Tokenize(text), TokenizeOwned(text))
}

func TestIsValidWord(t *testing.T) {
	tests := []struct {
		name string
		word string
		want bool
	}{
		{name: "plain word", word: "cat", want: true},
		{name: "empty word", word: "", want: true},
		{name: "leading minus", word: "-cat", want: true},
		{name: "control character", word: "ca\x10t", want: false},
		{name: "control character at edge", word: "cat\x01", want: false},
		{name: "high bytes allowed", word: "\xd0\xba\xd0\xbe\xd1\x82", want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidWord(tt.word))
		})
	}
}
