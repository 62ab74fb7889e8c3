// Package analysis extracts keywords from moment text and classifies event titles.
package analysis

import (
	"strings"
	"unicode"
)

var stopWords = toSet(
	"the", "a", "an", "and", "or", "but", "in", "on", "at", "to", "for", "of", "with",
	"by", "from", "up", "about", "into", "over", "after", "before", "between", "under",
	"is", "are", "was", "were", "be", "been", "being", "have", "has", "had", "do", "does",
	"did", "will", "would", "could", "should", "may", "might", "must", "can", "shall",
	"this", "that", "these", "those", "i", "me", "my", "we", "our", "you", "your", "he",
	"she", "it", "its", "they", "them", "their", "what", "which", "who", "whom", "when",
	"where", "why", "how", "all", "each", "every", "both", "few", "more", "most", "other",
	"some", "such", "no", "not", "only", "own", "same", "so", "than", "too", "very",
	"just", "also", "now", "then", "here", "there", "again", "once", "any", "going",
	"get", "got", "need", "want", "like", "really", "today", "tomorrow", "am", "pm",
)

func toSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

// IsStopWord reports whether a lower-cased word carries no meaning on its own
func IsStopWord(word string) bool {
	return stopWords[word]
}

// ExtractKeywords lower-cases the text, treats punctuation as whitespace and returns
// the distinct words longer than two characters that are not stop-words, in order of
// first appearance.
func ExtractKeywords(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, text)

	seen := make(map[string]bool)
	keywords := []string{}
	for _, word := range strings.Fields(cleaned) {
		if len([]rune(word)) <= 2 || stopWords[word] || seen[word] {
			continue
		}
		seen[word] = true
		keywords = append(keywords, word)
	}
	return keywords
}
