package comment

import (
	"regexp"
	"strings"
)

// A sentence ends at a terminator followed by whitespace or end of text,
// or at the last non-whitespace character of the text.
var sentenceEnd = regexp.MustCompile(`[.?!](\s|$)|\S$`)

// CountSentences returns the number of sentence endings in body.
// Surrounding whitespace is ignored; an empty body has no sentences.
func CountSentences(body string) int {
	body = strings.TrimSpace(body)
	if body == "" {
		return 0
	}
	return len(sentenceEnd.FindAllStringIndex(body, -1))
}
