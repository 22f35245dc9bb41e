package search

import (
	"strings"
	"unicode"
)

// Stop words dropped from both queries and documents
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "be": true, "is": true, "are": true,
	"was": true, "to": true, "of": true, "and": true, "in": true, "that": true,
	"have": true, "it": true, "for": true, "not": true, "on": true, "with": true,
	"as": true, "you": true, "do": true, "at": true, "this": true, "but": true,
	"by": true, "from": true, "or": true, "its": true, "such": true, "shall": true,
}

// tokenizeAndFilter splits text on anything that isn't a letter or digit,
// lowercases, and removes stop words. Markup like <p> splits cleanly too.
func tokenizeAndFilter(text string) []string {
	words := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	filtered := make([]string, 0, len(words))

	for _, word := range words {
		cleaned := strings.ToLower(word)
		if !stopWords[cleaned] {
			filtered = append(filtered, cleaned)
		}
	}

	return filtered
}

// wordSet builds a lookup of the filtered words in text.
func wordSet(text string) map[string]bool {
	words := tokenizeAndFilter(text)
	set := make(map[string]bool, len(words))
	for _, word := range words {
		set[word] = true
	}
	return set
}

// containsAllWords reports whether every word is in set.
func containsAllWords(set map[string]bool, words []string) bool {
	for _, word := range words {
		if !set[word] {
			return false
		}
	}
	return true
}
