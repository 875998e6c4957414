package search

import "strings"

// Tokenize splits free text into whitespace-delimited keywords. Empty input
// yields no tokens. Case is preserved; matching folds case per field.
func Tokenize(text string) []string {
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return nil
	}
	return tokens
}
